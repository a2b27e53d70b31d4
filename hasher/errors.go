package hasher

import "errors"

// All the errors related to hasher
var (
	ErrUnknownHasher = errors.New("hasher: no hasher registered under this name")
)
