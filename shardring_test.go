package shardring

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/justloop/shardring/hasher"
	"github.com/justloop/shardring/ring"
	"github.com/justloop/shardring/utils"
)

func TestNew(t *testing.T) {
	s, err := New(nil)
	assert.Nil(t, err, "New return error")
	assert.NotNil(t, s)

	debug := s.Debug()
	assert.Equal(t, hasher.NameFarm, debug["hasher"], "default hasher")
	assert.Equal(t, 1, debug["replicaPoints"], "default replica points")
}

func TestNewUnknownHasher(t *testing.T) {
	_, err := New(&Config{Hasher: "crc16"})
	assert.Equal(t, hasher.ErrUnknownHasher, err)
}

func TestEndToEnd(t *testing.T) {
	s, err := New(&Config{Hasher: hasher.NameXX, VirtualNodes: 100, ReplicaPoints: 2})
	assert.Nil(t, err, "New return error")

	for _, n := range []string{"n1", "n2", "n3"} {
		assert.Nil(t, s.AddNode(n), "AddNode return error")
	}
	assert.Nil(t, s.AddWeightedNode("n4", 2), "AddWeightedNode return error")

	for i := 0; i < 100; i++ {
		_, err := s.AddKey("user_" + strconv.Itoa(i))
		assert.Nil(t, err, "AddKey return error")
	}

	owner, err := s.Owner("user_1")
	assert.Nil(t, err, "Owner return error")
	owners, err := s.Owners("user_1")
	assert.Nil(t, err, "Owners return error")
	assert.Equal(t, 2, len(owners), "configured replica points")
	assert.Equal(t, owner, owners[0], "primary first")

	report := s.Stats()
	assert.Equal(t, 100, report.TotalKeys)
	assert.Equal(t, 4, len(report.Nodes))

	moved, err := s.Migrate("n1", "n2")
	assert.Nil(t, err, "Migrate return error")
	assert.Equal(t, moved, len(s.History()), "history records migrations")

	back, err := s.Rebalance()
	assert.Nil(t, err, "Rebalance return error")
	assert.Equal(t, moved, back, "rebalance undoes the migration")

	assert.Nil(t, s.RemoveNode("n3"), "RemoveNode return error")
	report = s.Stats()
	assert.Equal(t, 100, report.TotalKeys, "keys survive node departure")
	for _, load := range report.Nodes {
		assert.NotEqual(t, "n3", load.ID)
	}

	assert.Nil(t, s.RemoveKey("user_1"), "RemoveKey return error")
	assert.Equal(t, ring.ErrKeyNotFound, s.RemoveKey("user_1"))
}

func TestChecksumAcrossInstances(t *testing.T) {
	s1, _ := New(nil)
	s2, _ := New(nil)
	for _, n := range []string{"n1", "n2"} {
		_ = s1.AddNode(n)
	}
	for _, n := range []string{"n2", "n1"} {
		_ = s2.AddNode(n)
	}

	c1, err := s1.Checksum()
	assert.Nil(t, err)
	c2, err := s2.Checksum()
	assert.Nil(t, err)
	assert.Equal(t, c1, c2, "same membership should agree on checksum")
}

func TestDebug(t *testing.T) {
	s, _ := New(&Config{VirtualNodes: 50})
	_ = s.AddNode("n1")
	_, _ = s.AddKey("user_1")

	debug := s.Debug()
	nodes, _ := debug["nodes"].([]string)
	assert.True(t, utils.StrSliceContains(nodes, "n1"))
	assert.Equal(t, 1, debug["totalKeys"])
}
