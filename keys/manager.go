/*
Package keys tracks key to node assignments on top of a hash ring.

The manager's own index is a cache of the ring's derived assignment plus a
migration history for auditing, the ring lookup stays authoritative whenever
the two disagree.
*/
package keys

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/justloop/shardring/ring"
	"github.com/justloop/shardring/utils"
)

// logTagKeys is the logging tag for Manager
var logTagKeys = "shardring.keys"

// Migration is one audit record of a key moving between nodes. The history
// is append-only and never consulted for correctness.
type Migration struct {
	Key  string
	From string
	To   string
	At   time.Time
}

// Manager records key assignments against a HashRing and drives explicit
// migrations and reconciliation.
type Manager struct {
	ring    ring.HashRing
	index   map[string]string
	history []Migration
	sync.RWMutex
}

// NewManager will create a new Manager over a ring instance
func NewManager(r ring.HashRing) *Manager {
	return &Manager{
		ring:  r,
		index: make(map[string]string),
	}
}

// Add will assign key by current ring topology, record it on the owning
// node and in the manager index, and return the owner
func (m *Manager) Add(key string) (string, error) {
	m.Lock()
	defer m.Unlock()

	owner, err := m.ring.AddKey(key)
	if err != nil {
		return "", err
	}
	m.index[key] = owner
	return owner, nil
}

// Remove will erase key from its holding node and from the manager index
func (m *Manager) Remove(key string) error {
	m.Lock()
	defer m.Unlock()

	if err := m.ring.RemoveKey(key); err != nil {
		return err
	}
	delete(m.index, key)
	return nil
}

// Owner return the node key is assigned to by current ring topology. This
// is the authoritative lookup, use Recorded for the cached value.
func (m *Manager) Owner(key string) (string, error) {
	return m.ring.GetKeyNode(key)
}

// Recorded return the cached assignment of key, which may lag behind the
// ring after topology changes until the next Add or Rebalance
func (m *Manager) Recorded(key string) (string, bool) {
	m.RLock()
	defer m.RUnlock()
	owner, ok := m.index[key]
	return owner, ok
}

// Migrate will move every key currently on from to to, independent of ring
// topology, and return the number of keys moved. Intended for planned
// maintenance, each move is appended to the migration history.
func (m *Manager) Migrate(from string, to string) (int, error) {
	m.Lock()
	defer m.Unlock()

	if from == to {
		return 0, nil
	}
	nodes, err := m.ring.GetNodes()
	if err != nil {
		return 0, err
	}
	if !utils.StrSliceContains(nodes, to) {
		return 0, ring.ErrNodeNotFound
	}
	keys, err := m.ring.KeysOf(from)
	if err != nil {
		return 0, err
	}

	moved := 0
	for _, key := range keys {
		if err := m.ring.MoveKey(key, from, to); err != nil {
			return moved, err
		}
		m.record(key, from, to)
		moved++
	}
	log.Infof("%s: migrated %d keys from %s to %s", logTagKeys, moved, from, to)
	return moved, nil
}

// Rebalance will re-derive every key's owner from current ring topology,
// move any key recorded elsewhere, refresh the index, and return the number
// of keys moved. Zero on a ring whose keys were only ever placed by Add.
func (m *Manager) Rebalance() (int, error) {
	m.Lock()
	defer m.Unlock()

	nodes, err := m.ring.GetNodes()
	if err != nil {
		return 0, err
	}

	type move struct {
		key  string
		from string
		to   string
	}
	var moves []move
	for _, node := range nodes {
		keys, err := m.ring.KeysOf(node)
		if err != nil {
			return 0, err
		}
		for _, key := range keys {
			derived, err := m.ring.GetKeyNode(key)
			if err != nil {
				return 0, err
			}
			if derived != node {
				moves = append(moves, move{key: key, from: node, to: derived})
			} else {
				m.index[key] = node
			}
		}
	}

	for _, mv := range moves {
		if err := m.ring.MoveKey(mv.key, mv.from, mv.to); err != nil {
			return 0, err
		}
		m.record(mv.key, mv.from, mv.to)
	}
	if len(moves) > 0 {
		log.Infof("%s: rebalance moved %d keys", logTagKeys, len(moves))
	}
	return len(moves), nil
}

// History return a copy of the append-only migration log
func (m *Manager) History() []Migration {
	m.RLock()
	defer m.RUnlock()
	history := make([]Migration, len(m.history))
	copy(history, m.history)
	return history
}

// m must be locked.
func (m *Manager) record(key, from, to string) {
	m.index[key] = to
	m.history = append(m.history, Migration{
		Key:  key,
		From: from,
		To:   to,
		At:   time.Now(),
	})
}
