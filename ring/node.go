package ring

import (
	"sort"
	"strconv"
)

// VirtualNode is one ring position representing a physical node. It is
// immutable once created. Generation is zero unless the position had to be
// regenerated because of an exact hash collision.
type VirtualNode struct {
	Owner      string
	Replica    int
	Generation int
	Position   uint64
}

// vnodeKey builds the byte string that is digested into a ring position,
// "owner#replica" with a "#generation" suffix for regenerated positions.
func vnodeKey(owner string, replica, generation int) []byte {
	key := owner + "#" + strconv.Itoa(replica)
	if generation > 0 {
		key += "#" + strconv.Itoa(generation)
	}
	return []byte(key)
}

// PhysicalNode is a named capacity unit on the ring. It exclusively owns the
// set of keys recorded against it, the ring itself only indexes positions.
type PhysicalNode struct {
	id        string
	weight    int
	keys      map[string]struct{}
	positions []uint64
}

func newPhysicalNode(id string, weight int) *PhysicalNode {
	return &PhysicalNode{
		id:     id,
		weight: weight,
		keys:   make(map[string]struct{}),
	}
}

// ID will return the node identifier
func (n *PhysicalNode) ID() string { return n.id }

// Weight will return the node weight
func (n *PhysicalNode) Weight() int { return n.weight }

// NumKeys will return the number of keys recorded on this node
func (n *PhysicalNode) NumKeys() int { return len(n.keys) }

// NumVirtualNodes will return the number of ring positions this node holds
func (n *PhysicalNode) NumVirtualNodes() int { return len(n.positions) }

// HasKey will return whether key is recorded on this node
func (n *PhysicalNode) HasKey(key string) bool {
	_, ok := n.keys[key]
	return ok
}

// Keys will return a sorted copy of the keys recorded on this node
func (n *PhysicalNode) Keys() []string {
	keys := make([]string, 0, len(n.keys))
	for key := range n.keys {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (n *PhysicalNode) addKey(key string)    { n.keys[key] = struct{}{} }
func (n *PhysicalNode) removeKey(key string) { delete(n.keys, key) }

// NodeInfo is a read side snapshot of one node's load
type NodeInfo struct {
	ID              string
	Weight          int
	NumKeys         int
	NumVirtualNodes int
}
