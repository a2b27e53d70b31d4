package ring

import (
	"sort"
	"sync"

	"github.com/gobwas/avl"
	log "github.com/sirupsen/logrus"

	"github.com/justloop/shardring/hasher"
	"github.com/justloop/shardring/utils"
)

// logTagRing is the logging tag for TreeHashRing
var logTagRing = "shardring.ring"

// DefaultVirtualNodes is the default base virtual node count per unit of
// weight. Too low gives uneven load, too high only costs memory and update
// time.
const DefaultVirtualNodes = 150

// maxGenerations caps collision regeneration per virtual node, so a
// degenerate hasher fails the join instead of looping.
const maxGenerations = 64

// Options is the construction time configuration of a TreeHashRing
type Options struct {
	// Hasher is the hash function strategy, optional, default hasher.Farm
	Hasher hasher.Hasher

	// VirtualNodes is the base virtual node count per unit of weight,
	// optional, default DefaultVirtualNodes
	VirtualNodes int
}

// TreeHashRing is the HashRing implementation indexed by a balanced tree.
// The tree is persistent, every mutation builds a new root and swaps it
// under the write lock, so readers never observe a half updated index.
type TreeHashRing struct {
	hasher       hasher.Hasher
	virtualNodes int

	tree  avl.Tree // tree<*point>
	nodes map[string]*PhysicalNode
	sync.RWMutex
}

// NewTreeHashRing will create a new TreeHashRing instance
func NewTreeHashRing(opts Options) *TreeHashRing {
	h := opts.Hasher
	if h == nil {
		h = hasher.Farm{}
	}
	return &TreeHashRing{
		hasher:       h,
		virtualNodes: utils.SelectInt(opts.VirtualNodes, DefaultVirtualNodes),
		nodes:        make(map[string]*PhysicalNode),
	}
}

// AddNode will add one node with weight 1 to the ring
func (r *TreeHashRing) AddNode(node string) error {
	return r.AddWeightedNode(node, 1)
}

// AddWeightedNode will add one node to the ring with the given weight.
// A node of weight w receives w times the base virtual node count. On an
// exact position collision the later virtual node is regenerated with an
// incremented generation suffix, never overwriting the existing owner.
func (r *TreeHashRing) AddWeightedNode(node string, weight int) error {
	if weight < 1 {
		return ErrInvalidWeight
	}
	r.Lock()
	defer r.Unlock()

	if _, ok := r.nodes[node]; ok {
		return ErrNodeExists
	}

	count := r.virtualNodes * weight
	pn := newPhysicalNode(node, weight)
	pn.positions = make([]uint64, 0, count)

	// Stage every insert on a local root, nothing is committed until all
	// positions are placed.
	tree := r.tree
	for i := 0; i < count; i++ {
		placed := false
		for gen := 0; gen <= maxGenerations; gen++ {
			pos := r.hasher.Sum64(vnodeKey(node, i, gen))
			p := &point{vn: VirtualNode{
				Owner:      node,
				Replica:    i,
				Generation: gen,
				Position:   pos,
			}}
			next, existing := tree.Insert(p)
			if existing != nil {
				log.Debugf("%s: position collision at %d for %s#%d, regenerating", logTagRing, pos, node, i)
				continue
			}
			tree = next
			pn.positions = append(pn.positions, pos)
			placed = true
			break
		}
		if !placed {
			return ErrCollisionOverflow
		}
	}

	r.tree = tree
	r.nodes[node] = pn
	log.Debugf("%s: node %s joined with weight %d, %d positions", logTagRing, node, weight, count)
	return nil
}

// RemoveNode will remove one node from the ring. Every key the departing
// node held is re-looked-up against the smaller ring and handed to its new
// owner, keys of other nodes are untouched because their successor
// positions are untouched.
func (r *TreeHashRing) RemoveNode(node string) error {
	r.Lock()
	defer r.Unlock()

	pn, ok := r.nodes[node]
	if !ok {
		return ErrNodeNotFound
	}

	tree := r.tree
	for _, pos := range pn.positions {
		next, existed := tree.Delete(position(pos))
		if existed == nil {
			log.Warnf("%s: position %d of node %s missing from index", logTagRing, pos, node)
			continue
		}
		tree = next
	}
	r.tree = tree
	delete(r.nodes, node)

	moved, dropped := 0, 0
	for key := range pn.keys {
		p := r.locate(r.hasher.Sum64([]byte(key)))
		if p == nil {
			// Last node left, there is nowhere to reassign to.
			dropped++
			continue
		}
		r.nodes[p.vn.Owner].addKey(key)
		moved++
	}
	if dropped > 0 {
		log.Warnf("%s: node %s left an empty ring, %d keys dropped", logTagRing, node, dropped)
	}
	log.Debugf("%s: node %s removed, %d keys reassigned", logTagRing, node, moved)
	return nil
}

// GetNodes return the list of nodes in the ring, not necessarily in order
func (r *TreeHashRing) GetNodes() ([]string, error) {
	r.RLock()
	defer r.RUnlock()
	nodes := make([]string, 0, len(r.nodes))
	for id := range r.nodes {
		nodes = append(nodes, id)
	}
	return nodes, nil
}

// GetNumNodes return the number of nodes in the ring
func (r *TreeHashRing) GetNumNodes() (int, error) {
	r.RLock()
	defer r.RUnlock()
	return len(r.nodes), nil
}

// GetKeyNode return the node this key is hashed on
func (r *TreeHashRing) GetKeyNode(key string) (string, error) {
	r.RLock()
	defer r.RUnlock()
	p := r.locate(r.hasher.Sum64([]byte(key)))
	if p == nil {
		return "", ErrEmptyRing
	}
	return p.vn.Owner, nil
}

// GetKeyNodes returns the first n distinct nodes this key is hashed on,
// walking the ring clockwise from the key's position. The order is stable
// for a fixed ring state, the length is min(n, number of nodes).
func (r *TreeHashRing) GetKeyNodes(key string, n int) ([]string, error) {
	if n < 1 {
		return nil, ErrInvalidReplicas
	}
	r.RLock()
	defer r.RUnlock()

	p := r.locate(r.hasher.Sum64([]byte(key)))
	if p == nil {
		return nil, ErrEmptyRing
	}

	want := utils.Min(n, len(r.nodes))
	owners := make([]string, 0, want)
	seen := make(map[string]struct{}, want)
	for visited := 0; visited < r.tree.Size() && len(owners) < want; visited++ {
		if _, ok := seen[p.vn.Owner]; !ok {
			seen[p.vn.Owner] = struct{}{}
			owners = append(owners, p.vn.Owner)
		}
		p = r.next(p)
	}
	return owners, nil
}

// AddKey will record key on the node that currently owns it and return that
// node. A key has at most one holder, re-adding a key after a topology
// change relocates the stale record.
func (r *TreeHashRing) AddKey(key string) (string, error) {
	r.Lock()
	defer r.Unlock()

	p := r.locate(r.hasher.Sum64([]byte(key)))
	if p == nil {
		return "", ErrEmptyRing
	}
	owner := p.vn.Owner
	if holder, ok := r.findHolder(key); ok && holder != owner {
		r.nodes[holder].removeKey(key)
	}
	r.nodes[owner].addKey(key)
	return owner, nil
}

// RemoveKey will erase a recorded key from its holding node
func (r *TreeHashRing) RemoveKey(key string) error {
	r.Lock()
	defer r.Unlock()

	holder, ok := r.findHolder(key)
	if !ok {
		return ErrKeyNotFound
	}
	r.nodes[holder].removeKey(key)
	return nil
}

// MoveKey will relocate a recorded key from one node to another without
// touching ring positions
func (r *TreeHashRing) MoveKey(key string, from string, to string) error {
	r.Lock()
	defer r.Unlock()

	src, ok := r.nodes[from]
	if !ok {
		return ErrNodeNotFound
	}
	dst, ok := r.nodes[to]
	if !ok {
		return ErrNodeNotFound
	}
	if !src.HasKey(key) {
		return ErrKeyNotFound
	}
	src.removeKey(key)
	dst.addKey(key)
	return nil
}

// KeysOf return the keys currently recorded on a node, sorted
func (r *TreeHashRing) KeysOf(node string) ([]string, error) {
	r.RLock()
	defer r.RUnlock()
	pn, ok := r.nodes[node]
	if !ok {
		return nil, ErrNodeNotFound
	}
	return pn.Keys(), nil
}

// Snapshot returns a per node load view, sorted by node id
func (r *TreeHashRing) Snapshot() []NodeInfo {
	r.RLock()
	defer r.RUnlock()
	infos := make([]NodeInfo, 0, len(r.nodes))
	for _, pn := range r.nodes {
		infos = append(infos, NodeInfo{
			ID:              pn.ID(),
			Weight:          pn.Weight(),
			NumKeys:         pn.NumKeys(),
			NumVirtualNodes: pn.NumVirtualNodes(),
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

// Checksum will return the checksum of current ring membership, using farmhash
func (r *TreeHashRing) Checksum() (uint32, error) {
	nodes, err := r.GetNodes()
	if err != nil {
		return 0, err
	}
	return utils.GetCheckSumFromNodes(nodes), nil
}

// locate returns the point owning hash value h, wrapping past the maximum
// position back to the minimum. Nil only when the ring is empty.
// r must be locked.
func (r *TreeHashRing) locate(h uint64) *point {
	item := r.tree.Successor(lowerBound(h))
	if item == nil {
		item = r.tree.Min()
	}
	if item == nil {
		return nil
	}
	return item.(*point)
}

// next returns the point clockwise after p, wrapping.
// r must be locked.
func (r *TreeHashRing) next(p *point) *point {
	item := r.tree.Successor(position(p.vn.Position))
	if item == nil {
		item = r.tree.Min()
	}
	return item.(*point)
}

// findHolder returns the node currently recording key, if any.
// r must be locked.
func (r *TreeHashRing) findHolder(key string) (string, bool) {
	for id, pn := range r.nodes {
		if pn.HasKey(key) {
			return id, true
		}
	}
	return "", false
}
