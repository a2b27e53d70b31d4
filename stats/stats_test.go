package stats

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/justloop/shardring/ring"
)

func TestCollectEmptyRing(t *testing.T) {
	r := ring.NewTreeHashRing(ring.Options{VirtualNodes: 50})
	report := Collect(r)
	assert.Equal(t, 0, report.TotalKeys)
	assert.Equal(t, 0, len(report.Nodes))
	assert.Equal(t, 0.0, report.Mean)
	assert.Equal(t, 0.0, report.StdDev)
}

func TestCollectNoKeys(t *testing.T) {
	r := ring.NewTreeHashRing(ring.Options{VirtualNodes: 50})
	_ = r.AddNode("n1")
	_ = r.AddNode("n2")

	report := Collect(r)
	assert.Equal(t, 0, report.TotalKeys)
	assert.Equal(t, 2, len(report.Nodes))
	for _, load := range report.Nodes {
		assert.Equal(t, 0.0, load.Percent, "percent of zero total is zero")
		assert.Equal(t, 50, load.VirtualNodes)
	}
	assert.Equal(t, 0.0, report.StdDev, "no keys means no spread")
}

func TestCollect(t *testing.T) {
	r := ring.NewTreeHashRing(ring.Options{VirtualNodes: 150})
	_ = r.AddNode("a")
	_ = r.AddWeightedNode("b", 2)
	for i := 0; i < 300; i++ {
		_, _ = r.AddKey("user_" + strconv.Itoa(i))
	}

	report := Collect(r)
	assert.Equal(t, 300, report.TotalKeys)
	assert.Equal(t, 2, len(report.Nodes))
	assert.Equal(t, "a", report.Nodes[0].ID, "nodes ordered by id")
	assert.Equal(t, "b", report.Nodes[1].ID)
	assert.Equal(t, 150, report.Nodes[0].VirtualNodes)
	assert.Equal(t, 300, report.Nodes[1].VirtualNodes)
	assert.Equal(t, 2, report.Nodes[1].Weight)

	sum := 0.0
	keys := 0
	for _, load := range report.Nodes {
		sum += load.Percent
		keys += load.Keys
	}
	assert.Equal(t, 300, keys, "per node counts add up to the total")
	assert.InDelta(t, 100.0, sum, 1e-9, "percentages add up to 100")
	assert.Equal(t, 150.0, report.Mean)
}

func TestCollectReflectsCurrentState(t *testing.T) {
	r := ring.NewTreeHashRing(ring.Options{VirtualNodes: 100})
	_ = r.AddNode("a")
	_, _ = r.AddKey("user_1")

	before := Collect(r)
	assert.Equal(t, 1, before.TotalKeys)

	_ = r.RemoveKey("user_1")
	after := Collect(r)
	assert.Equal(t, 0, after.TotalKeys, "reports must not cache across calls")
}

func TestStdDev(t *testing.T) {
	r := ring.NewTreeHashRing(ring.Options{VirtualNodes: 100})
	_ = r.AddNode("a")
	_ = r.AddNode("b")
	for i := 0; i < 100; i++ {
		_, _ = r.AddKey("user_" + strconv.Itoa(i))
	}

	report := Collect(r)
	counts := []float64{float64(report.Nodes[0].Keys), float64(report.Nodes[1].Keys)}
	// With two nodes the deviation from the mean is half the gap.
	expected := (counts[0] - counts[1]) / 2
	if expected < 0 {
		expected = -expected
	}
	assert.InDelta(t, expected, report.StdDev, 1e-9)
}
