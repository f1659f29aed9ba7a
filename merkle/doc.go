package merkle

/*

# Complete binary Merkle trees over content hashes

This package maintains a Merkle tree over an ordered sequence of fixed width
content hashes. The surrounding tooling decides what the hashes commit to
(for this project, the source files of a go-ethereum release, in stable path
order). This package owns only the tree: padding the leaf sequence to a full
binary shape, building the node hierarchy, applying incremental leaf updates
with lazy recomputation, and producing and verifying inclusion proofs.

The tree is realised as a flat arena in the classic heap layout rather than
as linked nodes:

- nodes[0] is the root
- the children of node i are at 2i+1 and 2i+2
- the parent of node i is at (i-1)/2
- the leaves occupy the tail of the arena, leaf j at leafCount-1+j

Because parents are reachable by index arithmetic alone there are no parent
pointers, and so no ownership cycles to manage. Dirty state is a parallel
bool slice over the same indices.

For a tree of four leaves the arena indices are:

	         0
	       /   \
	      1     2
	     / \   / \
	    3   4 5   6

A leaf update marks the leaf and its ancestors dirty. The marking walk stops
at the first ancestor that is already dirty: everything above it is
transitively stale from an earlier update. ComputeRoot then resolves dirty
nodes in descending arena index order, which in this layout is exactly
children before parents, so shared ancestors of a batch of updates are
recomputed once.

## Padding

A leaf count that is not a power of two is padded by repeating the existing
leaves cyclically from index 0 until the next power of two is reached. This
rule is load bearing: every root this project has ever published was
computed over cyclically padded sequences, so substituting zero fill or
sentinel fill would silently change every root. See PadLeaves.

The style here follows go-merklelog/mmr: small composable functions,
explicit index arithmetic, the hasher supplied by the caller, and a burden
of knowledge on the caller for the hot paths.

*/
