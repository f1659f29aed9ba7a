package merkle

// Update replaces the hash at leafIndex and marks the path from that leaf to
// the root stale. No other subtree is touched, and nothing is recomputed
// here: the root remains unreadable until ComputeRoot resolves the pending
// paths. Updates never change the leaf count.
func (t *Tree) Update(leafIndex uint64, newHash []byte) error {
	if leafIndex >= t.leafCount {
		return ErrIndexOutOfRange
	}
	if len(newHash) != HashBytes {
		return ErrBadLeafSize
	}

	i := t.LeafNodeIndex(leafIndex)
	copy(t.nodes[i][:], newHash)
	t.markAncestorsStale(i)
	return nil
}

// markAncestorsStale sets the dirty flag on node i and every ancestor up to
// the root. The walk stops early at an already dirty node: a dirty node was
// itself propagated to the root by an earlier update, so everything above it
// is already marked. The stop is an optimization only; ComputeRoot tolerates
// revisiting.
func (t *Tree) markAncestorsStale(i uint64) {
	for {
		if t.dirty[i] {
			return
		}
		t.dirty[i] = true
		if i == 0 {
			return
		}
		i = Parent(i)
	}
}

// ComputeRoot recomputes every dirty interior node from its children, clears
// the dirty flags, and returns the now clean root hash.
//
// Dirty nodes are visited in descending arena index order. In the heap
// layout children always have larger indices than their parent, so this
// order resolves children before parents, and an ancestor shared by several
// pending updates is recomputed exactly once. A dirty leaf already holds its
// new hash from Update, so for leaves only the flag is cleared.
//
// Cost is O(D) compressions for D distinct dirty interior nodes; a single
// pending update on a tree of L leaves costs log2(L) compressions. Calling
// ComputeRoot on a clean tree is a no-op read of the root.
func (t *Tree) ComputeRoot() []byte {
	firstLeaf := t.leafCount - 1
	for i := int64(len(t.nodes)) - 1; i >= 0; i-- {
		if !t.dirty[i] {
			continue
		}
		if uint64(i) < firstLeaf {
			t.nodes[i] = t.compress(t.nodes[LeftChild(uint64(i))], t.nodes[RightChild(uint64(i))])
		}
		t.dirty[i] = false
	}

	root := make([]byte, HashBytes)
	copy(root, t.nodes[0][:])
	return root
}
