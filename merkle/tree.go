package merkle

import (
	"encoding/hex"
	"hash"
)

// Tree is a complete binary Merkle tree over a padded leaf sequence.
//
// The node hierarchy lives in a flat arena using the heap layout described
// in the package docs. The hasher is fixed at construction: the root and
// every proof are defined in terms of it, so it must never be swapped on a
// live tree.
//
// A Tree is a single writer structure. Update and ComputeRoot must not be
// called concurrently with anything else on the same tree; reads
// (Root, InclusionProof, Node) may run concurrently with each other.
type Tree struct {
	hasher    hash.Hash
	nodes     [][HashBytes]byte
	dirty     []bool
	leafCount uint64
}

// NewTree pads the provided leaves and builds the tree bottom up, computing
// every interior hash with compress = H(left || right). The returned tree is
// fully clean.
//
// The hasher must produce 32 byte digests (sha256 and blake3 both qualify).
// The build performs exactly leafCount-1 compressions.
func NewTree(hasher hash.Hash, leaves [][]byte) (*Tree, error) {
	if hasher == nil || hasher.Size() != HashBytes {
		return nil, ErrBadHashSize
	}

	padded, err := PadLeaves(leaves)
	if err != nil {
		return nil, err
	}

	leafCount := uint64(len(padded))
	nodeCount := 2*leafCount - 1

	t := &Tree{
		hasher:    hasher,
		nodes:     make([][HashBytes]byte, nodeCount),
		dirty:     make([]bool, nodeCount),
		leafCount: leafCount,
	}

	copy(t.nodes[leafCount-1:], padded)

	// Interior nodes all precede the leaves in the arena, so a single
	// descending pass visits children before parents.
	for i := int64(leafCount) - 2; i >= 0; i-- {
		t.nodes[i] = t.compress(t.nodes[LeftChild(uint64(i))], t.nodes[RightChild(uint64(i))])
	}
	return t, nil
}

// LeafCount returns the padded leaf count. It is always a power of two and
// never changes after construction.
func (t *Tree) LeafCount() uint64 { return t.leafCount }

// NodeCount returns the arena size, 2*LeafCount-1.
func (t *Tree) NodeCount() uint64 { return uint64(len(t.nodes)) }

// LeafNodeIndex converts a leaf index to its arena node index.
func (t *Tree) LeafNodeIndex(leafIndex uint64) uint64 {
	return t.leafCount - 1 + leafIndex
}

// Node returns the hash held at arena index i. Callers navigating with the
// index arithmetic helpers use this to inspect interior nodes; it makes no
// staleness check, that burden is on the caller.
func (t *Tree) Node(i uint64) ([]byte, error) {
	if i >= uint64(len(t.nodes)) {
		return nil, ErrNodeOutOfRange
	}
	value := make([]byte, HashBytes)
	copy(value, t.nodes[i][:])
	return value, nil
}

// LeafHash returns the current hash of leaf leafIndex.
func (t *Tree) LeafHash(leafIndex uint64) ([]byte, error) {
	if leafIndex >= t.leafCount {
		return nil, ErrIndexOutOfRange
	}
	return t.Node(t.LeafNodeIndex(leafIndex))
}

// Root returns the root hash. While updates are pending the stored root is
// stale and Root fails with ErrStaleRoot; call ComputeRoot first. There is
// deliberately no implicit recompute here, so that a read in a benchmark or
// test can never silently pay for a rebuild.
func (t *Tree) Root() ([]byte, error) {
	if t.dirty[0] {
		return nil, ErrStaleRoot
	}
	return t.Node(0)
}

// RootHex returns the canonical lower case hex encoding of the root hash.
func (t *Tree) RootHex() (string, error) {
	root, err := t.Root()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(root), nil
}

// compress combines two child hashes into their parent hash.
func (t *Tree) compress(left, right [HashBytes]byte) [HashBytes]byte {
	t.hasher.Reset()
	_, _ = t.hasher.Write(left[:])
	_, _ = t.hasher.Write(right[:])

	var out [HashBytes]byte
	sum := t.hasher.Sum(out[:0])
	copy(out[:], sum)
	return out
}

// Parent returns the arena index of the parent of node i. i must not be 0.
func Parent(i uint64) uint64 { return (i - 1) / 2 }

// LeftChild returns the arena index of the left child of interior node i.
func LeftChild(i uint64) uint64 { return 2*i + 1 }

// RightChild returns the arena index of the right child of interior node i.
func RightChild(i uint64) uint64 { return 2*i + 2 }

// SiblingIndex returns the arena index of the sibling of node i. i must not
// be 0; the root has no sibling.
func SiblingIndex(i uint64) uint64 {
	// Left children are at odd indices.
	if i%2 == 1 {
		return i + 1
	}
	return i - 1
}
