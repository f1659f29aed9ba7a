// Package checkpoint produces and verifies signed commitments to a Merkle
// tree state. A checkpoint binds a root to the version label it was
// computed for, so a published root for "go-ethereum-1.4.19" can be
// attributed and re-verified long after the tree itself is gone.
package checkpoint

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/simewu/ethereum-version-compare/merkle"
)

var (
	ErrSignMalformed    = errors.New("checkpoint: signed message malformed")
	ErrNoPayload        = errors.New("checkpoint: signed message has no payload")
	ErrRootMissing      = errors.New("checkpoint: state root missing")
	ErrRootWidth        = errors.New("checkpoint: state root must be 32 bytes")
	ErrLeafCountNotPow2 = errors.New("checkpoint: leaf count must be a power of two")
)

// TreeState is the signed payload of a checkpoint. Field keys are small
// integers (keyasint) to keep the signed encoding compact and stable.
type TreeState struct {
	// LeafCount is the padded leaf count; with the compression function it
	// fully determines the tree shape the Root commits to.
	LeafCount uint64 `cbor:"1,keyasint"`
	Root      []byte `cbor:"2,keyasint"`

	// Timestamp is unix milliseconds at signing time. Including it allows
	// the same root to be re-signed.
	Timestamp int64 `cbor:"3,keyasint"`

	// Version is the label the surrounding tool built the tree for, for
	// example a release directory name.
	Version string `cbor:"4,keyasint"`

	// CheckpointID uniquely identifies this act of checkpointing, not the
	// state: re-signing the same root mints a fresh id.
	CheckpointID string `cbor:"5,keyasint"`
}

// NewTreeState captures the current state of tree under the given version
// label. The tree must be clean; a stale root fails with merkle.ErrStaleRoot.
func NewTreeState(version string, tree *merkle.Tree) (TreeState, error) {
	root, err := tree.Root()
	if err != nil {
		return TreeState{}, err
	}
	return TreeState{
		LeafCount:    tree.LeafCount(),
		Root:         root,
		Timestamp:    time.Now().UnixMilli(),
		Version:      version,
		CheckpointID: uuid.NewString(),
	}, nil
}

// checkState rejects states that could not have come from a well formed
// tree, before any signature work is done.
func checkState(state TreeState) error {
	if len(state.Root) == 0 {
		return ErrRootMissing
	}
	if len(state.Root) != merkle.HashBytes {
		return ErrRootWidth
	}
	if !merkle.IsPow2(state.LeafCount) {
		return ErrLeafCountNotPow2
	}
	return nil
}
