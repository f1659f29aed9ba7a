package merkle

// DiffLeaves returns the indices of leaves whose hashes differ between two
// trees of identical shape, in ascending order.
//
// The walk descends only into subtrees whose root hashes disagree, so two
// trees differing in a handful of files cost O(d * log L) comparisons rather
// than a full leaf scan. Identical trees are detected at the root in O(1).
//
// Both trees must be clean (ErrStaleTree otherwise) and must have the same
// leaf count (ErrShapeMismatch). The trees are assumed to share a
// compression function; comparing trees built under different hashers
// reports every leaf as different, which is accurate if unhelpful.
func DiffLeaves(a, b *Tree) ([]uint64, error) {
	if a.leafCount != b.leafCount {
		return nil, ErrShapeMismatch
	}
	if a.dirty[0] || b.dirty[0] {
		return nil, ErrStaleTree
	}

	firstLeaf := a.leafCount - 1

	var differing []uint64

	// Iterative preorder walk. Pushing the right child first keeps the
	// emitted leaf indices in ascending order.
	stack := []uint64{0}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if a.nodes[i] == b.nodes[i] {
			continue
		}
		if i >= firstLeaf {
			differing = append(differing, i-firstLeaf)
			continue
		}
		stack = append(stack, RightChild(i), LeftChild(i))
	}
	return differing, nil
}
