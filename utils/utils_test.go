package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectInt(t *testing.T) {
	assert.Equal(t, 5, SelectInt(0, 5))
	assert.Equal(t, 3, SelectInt(3, 5))
}

func TestSelectString(t *testing.T) {
	assert.Equal(t, "farm", SelectString("", "farm"))
	assert.Equal(t, "md5", SelectString("md5", "farm"))
}

func TestMin(t *testing.T) {
	assert.Equal(t, 1, Min(1, 2))
	assert.Equal(t, 1, Min(2, 1))
}

func TestStrSliceContains(t *testing.T) {
	s := []string{"a", "b"}
	assert.True(t, StrSliceContains(s, "a"))
	assert.False(t, StrSliceContains(s, "c"))
}

func TestDifference(t *testing.T) {
	d1, d2 := Difference([]string{"a", "b", "c"}, []string{"b", "c", "d"})
	assert.Equal(t, []string{"a"}, d1)
	assert.Equal(t, []string{"d"}, d2)
}

func TestGetCheckSumFromNodes(t *testing.T) {
	// Checksum is order independent.
	c1 := GetCheckSumFromNodes([]string{"n1", "n2", "n3"})
	c2 := GetCheckSumFromNodes([]string{"n3", "n1", "n2"})
	assert.Equal(t, c1, c2, "checksum should not depend on node order")

	c3 := GetCheckSumFromNodes([]string{"n1", "n2"})
	assert.NotEqual(t, c1, c3, "checksum should change with membership")
}

func TestShuffleStringsInPlace(t *testing.T) {
	s := []string{"a", "b", "c", "d"}
	ShuffleStringsInPlace(s)
	assert.Equal(t, 4, len(s))
	for _, v := range []string{"a", "b", "c", "d"} {
		assert.True(t, StrSliceContains(s, v))
	}
}
