package shardring

import (
	"github.com/justloop/shardring/hasher"
	"github.com/justloop/shardring/ring"
	"github.com/justloop/shardring/utils"
)

const (
	// defaultReplicaPoints is the default replication factor
	defaultReplicaPoints = 1
)

// Config is the configuration related to Shardring
type Config struct {

	// Hasher is the name of the hash function strategy, optional, default "farm".
	// The strategy is fixed for the lifetime of the instance.
	Hasher string

	// VirtualNodes is the base virtual node count per unit of node weight,
	// optional, default ring.DefaultVirtualNodes
	VirtualNodes int

	// ReplicaPoints is the number of distinct nodes returned by Owners,
	// optional, default 1
	ReplicaPoints int

	// OnMemberEvent is the callback invoked after a member event has been
	// applied to the ring, optional, default no callback
	OnMemberEvent HandlerFunc
}

// setDefaultConfig sets the default config
func setDefaultConfig(config *Config) *Config {
	if config == nil {
		config = &Config{}
	}
	config.Hasher = utils.SelectString(config.Hasher, hasher.NameFarm)
	config.VirtualNodes = utils.SelectInt(config.VirtualNodes, ring.DefaultVirtualNodes)
	config.ReplicaPoints = utils.SelectInt(config.ReplicaPoints, defaultReplicaPoints)
	if config.OnMemberEvent == nil {
		config.OnMemberEvent = func(event MemberEvent) error { return nil }
	}
	return config
}
