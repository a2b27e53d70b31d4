/*
Package hasher contains the hash function strategies used to place virtual
nodes and keys on the ring.

A ring instance is bound to exactly one Hasher for its lifetime, changing the
hasher after keys are placed invalidates every assignment.
*/
package hasher

import (
	"crypto/md5"
	"crypto/sha1"
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/dgryski/go-farm"
)

// Hasher names for New.
const (
	NameFarm = "farm"
	NameXX   = "xxhash"
	NameMD5  = "md5"
	NameSHA1 = "sha1"
)

// Hasher maps an arbitrary byte string to a 64-bit ring position.
// Implementations must be pure and deterministic, any input is valid,
// including the empty slice.
type Hasher interface {
	// Name will return the registered name of this hasher
	Name() string

	// Sum64 will return the 64-bit digest of data
	Sum64(data []byte) uint64
}

// New will return the Hasher registered under name
func New(name string) (Hasher, error) {
	switch name {
	case NameFarm:
		return Farm{}, nil
	case NameXX:
		return XX{}, nil
	case NameMD5:
		return MD5{}, nil
	case NameSHA1:
		return SHA1{}, nil
	}
	return nil, ErrUnknownHasher
}

// Farm is the FarmHash Fingerprint64 strategy, fast and stable across
// library versions. This is the default strategy.
type Farm struct{}

// Name will return the registered name of this hasher
func (Farm) Name() string { return NameFarm }

// Sum64 will return the 64-bit digest of data
func (Farm) Sum64(data []byte) uint64 {
	return farm.Fingerprint64(data)
}

// XX is the XXH64 strategy, comparable speed to FarmHash with a different
// distribution.
type XX struct{}

// Name will return the registered name of this hasher
func (XX) Name() string { return NameXX }

// Sum64 will return the 64-bit digest of data
func (XX) Sum64(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// MD5 is the 128-bit digest strategy, slower but with well-studied
// distribution. The digest is folded to its first 8 bytes.
type MD5 struct{}

// Name will return the registered name of this hasher
func (MD5) Name() string { return NameMD5 }

// Sum64 will return the 64-bit digest of data
func (MD5) Sum64(data []byte) uint64 {
	sum := md5.Sum(data)
	return binary.BigEndian.Uint64(sum[:8])
}

// SHA1 is the 160-bit digest strategy. The digest is folded to its first
// 8 bytes.
type SHA1 struct{}

// Name will return the registered name of this hasher
func (SHA1) Name() string { return NameSHA1 }

// Sum64 will return the 64-bit digest of data
func (SHA1) Sum64(data []byte) uint64 {
	sum := sha1.Sum(data)
	return binary.BigEndian.Uint64(sum[:8])
}
