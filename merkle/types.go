package merkle

import "errors"

// HashBytes is the fixed width of leaf hashes and node hashes. The injected
// compression hasher must produce digests of exactly this size.
const HashBytes = 32

// Sides a proof step sibling can occupy relative to the node being proven.
const (
	SiblingLeft  uint8 = 0
	SiblingRight uint8 = 1
)

var (
	ErrEmptyLeaves     = errors.New("merkle: no leaves provided")
	ErrBadLeafSize     = errors.New("merkle: leaf hash must be 32 bytes")
	ErrBadHashSize     = errors.New("merkle: hasher digest must be 32 bytes")
	ErrIndexOutOfRange = errors.New("merkle: leaf index out of range")
	ErrNodeOutOfRange  = errors.New("merkle: node index out of range")
	ErrStaleRoot       = errors.New("merkle: root is stale until ComputeRoot is called")
	ErrStaleTree       = errors.New("merkle: tree has pending updates")
	ErrShapeMismatch   = errors.New("merkle: trees have different leaf counts")
	ErrBadProofStep    = errors.New("merkle: proof step direction invalid")
)
