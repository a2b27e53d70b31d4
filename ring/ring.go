/*
Package ring is the consistent hashing ring core, it maps keys to a dynamic
set of physical nodes so that membership changes disturb only a bounded
fraction of assignments.

Each physical node is represented by many virtual node positions on a 64-bit
circular hash space, the position index is a balanced tree so that node
join/leave and key lookup all stay logarithmic in ring size.
*/
package ring

// HashRing is a consistent hashing ring with weighted virtual nodes and
// replica lookup buildin
type HashRing interface {

	// Checksum will return the checksum of current ring membership, using farmhash
	Checksum() (uint32, error)

	// AddNode will add one node with weight 1 to the ring
	AddNode(node string) error

	// AddWeightedNode will add one node to the ring with the given weight,
	// the node receives weight times the base virtual node count
	AddWeightedNode(node string, weight int) error

	// RemoveNode will remove one node from the ring and reassign every key
	// it held to the surviving nodes
	RemoveNode(node string) error

	// GetNodes return the list of nodes in the ring, not necessarily in order
	GetNodes() ([]string, error)

	// GetNumNodes return the number of nodes in the ring
	GetNumNodes() (int, error)

	// GetKeyNode return the node this key is hashed on
	GetKeyNode(key string) (string, error)

	// GetKeyNodes returns the first n distinct nodes this key is hashed on,
	// walking the ring clockwise, fewer if the ring has fewer nodes
	GetKeyNodes(key string, n int) ([]string, error)

	// AddKey will record key on the node that currently owns it and return
	// that node
	AddKey(key string) (string, error)

	// RemoveKey will erase a recorded key from its holding node
	RemoveKey(key string) error

	// MoveKey will relocate a recorded key from one node to another without
	// touching ring positions, used for explicit migrations
	MoveKey(key string, from string, to string) error

	// KeysOf return the keys currently recorded on a node, sorted
	KeysOf(node string) ([]string, error)

	// Snapshot returns a per node load view for read side reporting
	Snapshot() []NodeInfo
}
