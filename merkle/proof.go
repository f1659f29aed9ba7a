package merkle

// ProofStep is one level of an authentication path. Dir records which side
// the sibling occupies when the two hashes are compressed: SiblingLeft means
// the parent is H(Sibling || running), SiblingRight the reverse.
type ProofStep struct {
	Dir     uint8           `cbor:"1,keyasint"`
	Sibling [HashBytes]byte `cbor:"2,keyasint"`
}

// Proof is an inclusion proof for a single leaf: the claimed leaf hash and
// index, and the sibling path ordered leaf to root. A Proof is a snapshot;
// it remains verifiable against the root it was generated under no matter
// how the tree is mutated afterwards.
type Proof struct {
	LeafIndex uint64          `cbor:"1,keyasint"`
	LeafHash  [HashBytes]byte `cbor:"2,keyasint"`
	Steps     []ProofStep     `cbor:"3,keyasint"`
}

// InclusionProof returns the authentication path for leafIndex against the
// current root. The tree must be clean: a pending update anywhere marks the
// root dirty and the proof would commit to a root nobody can read yet, so
// the call fails with ErrStaleTree until ComputeRoot is called.
//
// The path has exactly log2(LeafCount) steps; for a single leaf tree it is
// empty and the leaf hash is the root.
func (t *Tree) InclusionProof(leafIndex uint64) (Proof, error) {
	if leafIndex >= t.leafCount {
		return Proof{}, ErrIndexOutOfRange
	}
	if t.dirty[0] {
		return Proof{}, ErrStaleTree
	}

	i := t.LeafNodeIndex(leafIndex)

	p := Proof{
		LeafIndex: leafIndex,
		LeafHash:  t.nodes[i],
	}

	for i > 0 {
		iSibling := SiblingIndex(i)

		dir := SiblingRight
		if iSibling < i {
			dir = SiblingLeft
		}

		p.Steps = append(p.Steps, ProofStep{Dir: dir, Sibling: t.nodes[iSibling]})
		i = Parent(i)
	}
	return p, nil
}
