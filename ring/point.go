package ring

import "github.com/gobwas/avl"

// point is a single virtual node entry in the position index.
type point struct {
	vn VirtualNode
}

func (p *point) Compare(x avl.Item) int {
	return compare(p.vn.Position, x.(*point).vn.Position)
}

// position locates the point holding exactly this ring position.
type position uint64

func (s position) Compare(x avl.Item) int {
	return compare(uint64(s), x.(*point).vn.Position)
}

// lowerBound locates the first point at or after a hash value: it compares
// less than an equal point, so Successor(lowerBound(h)) yields the point at
// h itself when one exists.
type lowerBound uint64

func (s lowerBound) Compare(x avl.Item) int {
	if uint64(s) <= x.(*point).vn.Position {
		return -1
	}
	return 1
}

func compare(x0, x1 uint64) int {
	if x0 < x1 {
		return -1
	}
	if x0 > x1 {
		return 1
	}
	return 0
}
