package merkle

import (
	"bytes"
	"hash"
)

// IncludedRoot folds the proof's sibling path over the claimed leaf hash and
// returns the root the proof commits to. Both sides of every compression
// come from the proof itself, so the result is meaningful only once compared
// against a trusted root.
//
// The hasher must be the tree's compression function; a proof generated
// under sha256 cannot verify under blake3.
func IncludedRoot(hasher hash.Hash, p Proof) []byte {
	running := p.LeafHash

	for _, step := range p.Steps {
		hasher.Reset()
		if step.Dir == SiblingLeft {
			_, _ = hasher.Write(step.Sibling[:])
			_, _ = hasher.Write(running[:])
		} else {
			_, _ = hasher.Write(running[:])
			_, _ = hasher.Write(step.Sibling[:])
		}
		sum := hasher.Sum(running[:0])
		copy(running[:], sum)
	}

	out := make([]byte, HashBytes)
	copy(out, running[:])
	return out
}

// VerifyInclusion reports whether the proof reproduces claimedRoot. It is
// side effect free: it reads only the proof and never touches a tree.
func VerifyInclusion(hasher hash.Hash, p Proof, claimedRoot []byte) bool {
	return bytes.Equal(IncludedRoot(hasher, p), claimedRoot)
}
