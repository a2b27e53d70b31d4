/*
Package shardring is the entry point for the consistent hashing ring
library, the ring, key manager and statistics layers are wrapped up here.

A Shardring instance is explicitly constructed and injected wherever
assignment decisions are needed, sharing one instance across goroutines is
the caller's choice, nothing here is a singleton.
*/
package shardring

import (
	log "github.com/sirupsen/logrus"

	"github.com/justloop/shardring/hasher"
	"github.com/justloop/shardring/keys"
	"github.com/justloop/shardring/ring"
	"github.com/justloop/shardring/stats"
)

// logTag is the logging tag related to this shardring
var logTag = "shardring.service"

// Shardring is interface for shardring package.
type Shardring interface {
	// Debug will return the debug information in shardring
	// as map[string]interface{}
	Debug() map[string]interface{}

	// AddNode will add one node with weight 1 to the ring
	AddNode(node string) error

	// AddWeightedNode will add one node with the given weight to the ring
	AddWeightedNode(node string, weight int) error

	// RemoveNode will remove one node from the ring, its keys are reassigned
	// to the surviving nodes
	RemoveNode(node string) error

	// Owner return the node this key is assigned to by current topology
	Owner(key string) (string, error)

	// Owners return the distinct nodes this key replicates to, up to the
	// configured replica points
	Owners(key string) ([]string, error)

	// AddKey will record key on its owning node and return that node
	AddKey(key string) (string, error)

	// RemoveKey will erase a recorded key
	RemoveKey(key string) error

	// Migrate will move every key on from to to and return the moved count
	Migrate(from string, to string) (int, error)

	// Rebalance will reconcile recorded keys with current topology and
	// return the moved count
	Rebalance() (int, error)

	// Stats will return the current load distribution report
	Stats() stats.Report

	// History will return the append-only migration log
	History() []keys.Migration

	// Checksum will return the checksum of current ring membership
	Checksum() (uint32, error)

	// HandleMemberEvent will apply a membership change to the ring and then
	// invoke the configured OnMemberEvent callback
	HandleMemberEvent(event MemberEvent) error
}

// Impl is the implementation of Shardring
type Impl struct {
	// config is the shardring configuration
	config *Config

	// ring is the hashring
	ring ring.HashRing

	// manager is the key assignment manager
	manager *keys.Manager

	// ringHandler applies member events to the ring
	ringHandler *RingEventHandler
}

// New will create a new Shardring instance
func New(config *Config) (Shardring, error) {
	config = setDefaultConfig(config)

	h, err := hasher.New(config.Hasher)
	if err != nil {
		return nil, err
	}

	r := ring.NewTreeHashRing(ring.Options{
		Hasher:       h,
		VirtualNodes: config.VirtualNodes,
	})
	log.Debugf("%s: HashRing created with hasher %s, %d virtual nodes", logTag, h.Name(), config.VirtualNodes)

	return &Impl{
		config:      config,
		ring:        r,
		manager:     keys.NewManager(r),
		ringHandler: NewRingEventHandler(r),
	}, nil
}

// Debug will return the list of debug info related to shardring
func (s *Impl) Debug() map[string]interface{} {
	debug := map[string]interface{}{}
	nodes, _ := s.ring.GetNodes()
	debug["nodes"] = nodes
	checksum, _ := s.ring.Checksum()
	debug["checksum"] = checksum
	debug["hasher"] = s.config.Hasher
	debug["replicaPoints"] = s.config.ReplicaPoints
	debug["totalKeys"] = s.Stats().TotalKeys
	return debug
}

// AddNode implements Shardring
func (s *Impl) AddNode(node string) error {
	return s.ring.AddNode(node)
}

// AddWeightedNode implements Shardring
func (s *Impl) AddWeightedNode(node string, weight int) error {
	return s.ring.AddWeightedNode(node, weight)
}

// RemoveNode implements Shardring
func (s *Impl) RemoveNode(node string) error {
	return s.ring.RemoveNode(node)
}

// Owner implements Shardring
func (s *Impl) Owner(key string) (string, error) {
	return s.ring.GetKeyNode(key)
}

// Owners implements Shardring
func (s *Impl) Owners(key string) ([]string, error) {
	return s.ring.GetKeyNodes(key, s.config.ReplicaPoints)
}

// AddKey implements Shardring
func (s *Impl) AddKey(key string) (string, error) {
	return s.manager.Add(key)
}

// RemoveKey implements Shardring
func (s *Impl) RemoveKey(key string) error {
	return s.manager.Remove(key)
}

// Migrate implements Shardring
func (s *Impl) Migrate(from string, to string) (int, error) {
	return s.manager.Migrate(from, to)
}

// Rebalance implements Shardring
func (s *Impl) Rebalance() (int, error) {
	return s.manager.Rebalance()
}

// Stats implements Shardring
func (s *Impl) Stats() stats.Report {
	return stats.Collect(s.ring)
}

// History implements Shardring
func (s *Impl) History() []keys.Migration {
	return s.manager.History()
}

// Checksum implements Shardring
func (s *Impl) Checksum() (uint32, error) {
	return s.ring.Checksum()
}

// HandleMemberEvent implements Shardring
func (s *Impl) HandleMemberEvent(event MemberEvent) error {
	if err := s.ringHandler.Handler(event); err != nil {
		return err
	}
	return s.config.OnMemberEvent(event)
}
