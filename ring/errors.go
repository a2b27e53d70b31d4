package ring

import "errors"

// All the errors related to ring
var (
	ErrNodeExists        = errors.New("Node already exists on the ring")
	ErrNodeNotFound      = errors.New("Node does not exist on the ring")
	ErrInvalidWeight     = errors.New("Node weight must be at least 1")
	ErrInvalidReplicas   = errors.New("Replica count must be at least 1")
	ErrEmptyRing         = errors.New("Ring has no nodes")
	ErrKeyNotFound       = errors.New("Key is not recorded on the ring")
	ErrCollisionOverflow = errors.New("Virtual node position could not be placed after maximum regenerations")
)
