package merkle

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/blake3"

	"github.com/simewu/ethereum-version-compare/merkletesting"
)

// sha256Compress reproduces the tree's compression directly for expectation
// building in tests.
func sha256Compress(left, right []byte) []byte {
	h := sha256.New()
	h.Write(left)
	h.Write(right)
	return h.Sum(nil)
}

func TestNewTreeSingleLeaf(t *testing.T) {
	h0 := sha256.Sum256([]byte("h0"))

	tree, err := NewTree(sha256.New(), [][]byte{h0[:]})
	require.NoError(t, err)

	assert.Equal(t, uint64(1), tree.LeafCount())
	assert.Equal(t, uint64(1), tree.NodeCount())

	// With a single leaf there is nothing to compress, the root is the leaf.
	root, err := tree.Root()
	require.NoError(t, err)
	assert.Equal(t, h0[:], root)
}

func TestNewTreeTwoLeaves(t *testing.T) {
	h0 := sha256.Sum256([]byte("h0"))
	h1 := sha256.Sum256([]byte("h1"))

	tree, err := NewTree(sha256.New(), [][]byte{h0[:], h1[:]})
	require.NoError(t, err)

	root, err := tree.Root()
	require.NoError(t, err)
	assert.Equal(t, sha256Compress(h0[:], h1[:]), root)
}

// TestNewTreeThreeLeaves pins the padded shape: [H0, H1, H2] builds the
// tree over [H0, H1, H2, H0] and the root is
// compress(compress(H0,H1), compress(H2,H0)).
func TestNewTreeThreeLeaves(t *testing.T) {
	h0 := sha256.Sum256([]byte("h0"))
	h1 := sha256.Sum256([]byte("h1"))
	h2 := sha256.Sum256([]byte("h2"))

	tree, err := NewTree(sha256.New(), [][]byte{h0[:], h1[:], h2[:]})
	require.NoError(t, err)

	assert.Equal(t, uint64(4), tree.LeafCount())

	want := sha256Compress(
		sha256Compress(h0[:], h1[:]),
		sha256Compress(h2[:], h0[:]),
	)
	root, err := tree.Root()
	require.NoError(t, err)
	assert.Equal(t, want, root)
}

func TestNewTreeDeterministic(t *testing.T) {
	tc := merkletesting.NewTestContext(t, merkletesting.TestConfig{Seed: 4})
	leaves := tc.GenerateLeaves(100)

	a, err := NewTree(sha256.New(), leaves)
	require.NoError(t, err)
	b, err := NewTree(sha256.New(), leaves)
	require.NoError(t, err)

	rootA, err := a.RootHex()
	require.NoError(t, err)
	rootB, err := b.RootHex()
	require.NoError(t, err)
	assert.Equal(t, rootA, rootB)
}

// TestNewTreeHasherIsPartOfTheRoot checks the compression function is
// genuinely pluggable and that the root is defined in terms of it: the same
// leaves under blake3 must produce a different, equally deterministic root.
func TestNewTreeHasherIsPartOfTheRoot(t *testing.T) {
	tc := merkletesting.NewTestContext(t, merkletesting.TestConfig{Seed: 4})
	leaves := tc.GenerateLeaves(64)

	newHashers := map[string]func() hash.Hash{
		"sha256": sha256.New,
		"blake3": func() hash.Hash { return blake3.New() },
	}

	roots := map[string]string{}
	for name, newHasher := range newHashers {
		first, err := NewTree(newHasher(), leaves)
		require.NoError(t, err)
		again, err := NewTree(newHasher(), leaves)
		require.NoError(t, err)

		rootFirst, err := first.RootHex()
		require.NoError(t, err)
		rootAgain, err := again.RootHex()
		require.NoError(t, err)

		assert.Equal(t, rootFirst, rootAgain, "%s root must be deterministic", name)
		roots[name] = rootFirst
	}
	assert.NotEqual(t, roots["sha256"], roots["blake3"])
}

func TestNewTreeLeafCountIsNextPowTwo(t *testing.T) {
	tc := merkletesting.NewTestContext(t, merkletesting.TestConfig{Seed: 9})

	for _, n := range []int{1, 2, 3, 4, 5, 13, 16, 100} {
		tree, err := NewTree(sha256.New(), tc.GenerateLeaves(n))
		require.NoError(t, err)

		assert.Equal(t, NextPowTwo(uint64(n)), tree.LeafCount(), "n=%d", n)
		assert.Equal(t, 2*tree.LeafCount()-1, tree.NodeCount(), "n=%d", n)

		// a freshly built tree is clean
		_, err = tree.Root()
		assert.NoError(t, err, "n=%d", n)
	}
}

func TestNewTreeEmpty(t *testing.T) {
	_, err := NewTree(sha256.New(), nil)
	assert.ErrorIs(t, err, ErrEmptyLeaves)
}

func TestNewTreeBadHasher(t *testing.T) {
	h0 := sha256.Sum256([]byte("h0"))

	_, err := NewTree(nil, [][]byte{h0[:]})
	assert.ErrorIs(t, err, ErrBadHashSize)

	// sha512 digests are 64 bytes, which the fixed width arena rejects.
	_, err = NewTree(sha512.New(), [][]byte{h0[:]})
	assert.ErrorIs(t, err, ErrBadHashSize)
}

func TestRootHex(t *testing.T) {
	h0 := sha256.Sum256([]byte("h0"))
	h1 := sha256.Sum256([]byte("h1"))

	tree, err := NewTree(sha256.New(), [][]byte{h0[:], h1[:]})
	require.NoError(t, err)

	rootHex, err := tree.RootHex()
	require.NoError(t, err)

	root, err := tree.Root()
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(root), rootHex)
	assert.Equal(t, 64, len(rootHex))
}

func TestLeafHash(t *testing.T) {
	tc := merkletesting.NewTestContext(t, merkletesting.TestConfig{Seed: 11})
	leaves := tc.GenerateLeaves(6) // pads to 8

	tree, err := NewTree(sha256.New(), leaves)
	require.NoError(t, err)

	for i, leaf := range leaves {
		got, err := tree.LeafHash(uint64(i))
		require.NoError(t, err)
		assert.Equal(t, leaf, got)
	}

	// the padded tail repeats from leaf 0
	got, err := tree.LeafHash(6)
	require.NoError(t, err)
	assert.Equal(t, leaves[0], got)

	_, err = tree.LeafHash(8)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestNodeOutOfRange(t *testing.T) {
	h0 := sha256.Sum256([]byte("h0"))

	tree, err := NewTree(sha256.New(), [][]byte{h0[:]})
	require.NoError(t, err)

	_, err = tree.Node(1)
	assert.ErrorIs(t, err, ErrNodeOutOfRange)
}
