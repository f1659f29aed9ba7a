package checkpoint

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simewu/ethereum-version-compare/merkle"
	"github.com/simewu/ethereum-version-compare/merkletesting"
)

func TestNewTreeStateCapturesCleanTree(t *testing.T) {
	tc := merkletesting.NewTestContext(t, merkletesting.TestConfig{Seed: 50, LabelPrefix: "checkpoint"})

	tree, err := merkle.NewTree(sha256.New(), tc.ContentHashes(10))
	require.NoError(t, err)

	state, err := NewTreeState("go-ethereum-1.2.1", tree)
	require.NoError(t, err)

	root, err := tree.Root()
	require.NoError(t, err)

	assert.Equal(t, uint64(16), state.LeafCount)
	assert.Equal(t, root, state.Root)
	assert.Equal(t, "go-ethereum-1.2.1", state.Version)
	assert.NotEmpty(t, state.CheckpointID)
	assert.NotZero(t, state.Timestamp)
}

func TestNewTreeStateRefusesStaleTree(t *testing.T) {
	tc := merkletesting.NewTestContext(t, merkletesting.TestConfig{Seed: 51, LabelPrefix: "checkpoint"})

	tree, err := merkle.NewTree(sha256.New(), tc.ContentHashes(10))
	require.NoError(t, err)

	h := sha256.Sum256([]byte("pending"))
	require.NoError(t, tree.Update(0, h[:]))

	_, err = NewTreeState("go-ethereum-1.2.1", tree)
	assert.ErrorIs(t, err, merkle.ErrStaleRoot)
}

func TestNewTreeStateMintsFreshIDs(t *testing.T) {
	tc := merkletesting.NewTestContext(t, merkletesting.TestConfig{Seed: 52, LabelPrefix: "checkpoint"})

	tree, err := merkle.NewTree(sha256.New(), tc.ContentHashes(4))
	require.NoError(t, err)

	a, err := NewTreeState("v1", tree)
	require.NoError(t, err)
	b, err := NewTreeState("v1", tree)
	require.NoError(t, err)

	// same root, distinct checkpointing acts
	assert.Equal(t, a.Root, b.Root)
	assert.NotEqual(t, a.CheckpointID, b.CheckpointID)
}

// TestCodecDeterministicEncoding pins the property the signature scheme
// relies on: the same state always encodes to the same bytes.
func TestCodecDeterministicEncoding(t *testing.T) {
	codec, err := NewCBORCodec()
	require.NoError(t, err)

	state := TreeState{
		LeafCount:    8,
		Root:         make([]byte, 32),
		Timestamp:    1756100000000,
		Version:      "go-ethereum-0.9.36",
		CheckpointID: "b1946ac9-2492-4c27-8d1f-3c2e9a2e7c11",
	}

	first, err := codec.MarshalCBOR(state)
	require.NoError(t, err)
	second, err := codec.MarshalCBOR(state)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var decoded TreeState
	require.NoError(t, codec.UnmarshalInto(first, &decoded))
	assert.Equal(t, state, decoded)
}
