/*
Package stats computes read-only load distribution reports over a hash ring.
*/
package stats

import (
	"math"

	"github.com/justloop/shardring/ring"
)

// NodeLoad is the load of one node at collection time
type NodeLoad struct {
	ID           string
	Weight       int
	Keys         int
	VirtualNodes int
	Percent      float64
}

// Report is a point in time view of key distribution across the ring.
// It carries no state, collect again for fresh numbers.
type Report struct {
	TotalKeys int
	Nodes     []NodeLoad
	Mean      float64
	StdDev    float64
}

// Collect will build a Report from the ring's current state, O(number of
// nodes), nodes ordered by id
func Collect(r ring.HashRing) Report {
	infos := r.Snapshot()

	report := Report{Nodes: make([]NodeLoad, 0, len(infos))}
	for _, info := range infos {
		report.TotalKeys += info.NumKeys
	}
	for _, info := range infos {
		percent := 0.0
		if report.TotalKeys > 0 {
			percent = float64(info.NumKeys) / float64(report.TotalKeys) * 100
		}
		report.Nodes = append(report.Nodes, NodeLoad{
			ID:           info.ID,
			Weight:       info.Weight,
			Keys:         info.NumKeys,
			VirtualNodes: info.NumVirtualNodes,
			Percent:      percent,
		})
	}

	if len(infos) > 0 {
		report.Mean = float64(report.TotalKeys) / float64(len(infos))
		variance := 0.0
		for _, info := range infos {
			d := float64(info.NumKeys) - report.Mean
			variance += d * d
		}
		report.StdDev = math.Sqrt(variance / float64(len(infos)))
	}
	return report
}
