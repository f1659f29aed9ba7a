// Package versions tracks one Merkle tree per release label and answers the
// questions the comparison tool asks: what is the root for a version, do two
// versions match, and which leaves differ.
//
// The caller supplies the ordered content hashes for each version; how files
// are discovered, ordered and hashed is its concern, not this package's.
package versions

import (
	"crypto/sha256"
	"errors"
	"hash"
	"sync"

	"go.uber.org/zap"

	"github.com/simewu/ethereum-version-compare/checkpoint"
	"github.com/simewu/ethereum-version-compare/merkle"
)

var (
	ErrVersionExists  = errors.New("versions: version already registered")
	ErrVersionUnknown = errors.New("versions: version not registered")
)

type Option func(*Registry)

// WithHasher sets the compression hasher constructor used for every tree
// the registry builds. All trees in one registry share a compression
// function so their roots and diffs are comparable.
func WithHasher(newHasher func() hash.Hash) Option {
	return func(r *Registry) {
		r.newHasher = newHasher
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(r *Registry) {
		r.log = log
	}
}

// Registry holds the built trees keyed by version label. The mutex guards
// the map and serialises mutation of the trees, which are single writer
// structures.
type Registry struct {
	mu        sync.Mutex
	log       *zap.Logger
	newHasher func() hash.Hash
	trees     map[string]*merkle.Tree
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		log:       zap.NewNop(),
		newHasher: sha256.New,
		trees:     map[string]*merkle.Tree{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add builds the tree for a version from its ordered content hashes and
// registers it. Leaf 0 is a reserved identity slot, initially all zero; the
// content hashes follow it in the caller's order. Stamp the slot with
// SetIdentity once the version identity is known.
func (r *Registry) Add(version string, contentHashes [][]byte) (*merkle.Tree, error) {
	leaves := make([][]byte, 0, len(contentHashes)+1)
	leaves = append(leaves, make([]byte, merkle.HashBytes))
	leaves = append(leaves, contentHashes...)

	tree, err := merkle.NewTree(r.newHasher(), leaves)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.trees[version]; ok {
		return nil, ErrVersionExists
	}
	r.trees[version] = tree

	rootHex, _ := tree.RootHex()
	r.log.Info("version registered",
		zap.String("version", version),
		zap.Int("files", len(contentHashes)),
		zap.Uint64("leaves", tree.LeafCount()),
		zap.String("root", rootHex),
	)
	return tree, nil
}

// SetIdentity stamps the reserved identity leaf and immediately resolves the
// root, so the tree is clean again when the call returns.
func (r *Registry) SetIdentity(version string, idHash []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tree, ok := r.trees[version]
	if !ok {
		return ErrVersionUnknown
	}
	if err := tree.Update(0, idHash); err != nil {
		return err
	}
	tree.ComputeRoot()

	rootHex, _ := tree.RootHex()
	r.log.Info("version identity set",
		zap.String("version", version),
		zap.String("root", rootHex),
	)
	return nil
}

// Tree returns the registered tree for a version.
func (r *Registry) Tree(version string) (*merkle.Tree, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tree, ok := r.trees[version]
	if !ok {
		return nil, ErrVersionUnknown
	}
	return tree, nil
}

// RootHex returns the canonical hex root for a version.
func (r *Registry) RootHex(version string) (string, error) {
	tree, err := r.Tree(version)
	if err != nil {
		return "", err
	}
	return tree.RootHex()
}

// Compare reports whether two versions have identical roots. Equal roots
// mean identical padded leaf sequences for any collision resistant
// compression function.
func (r *Registry) Compare(a, b string) (bool, error) {
	rootA, err := r.RootHex(a)
	if err != nil {
		return false, err
	}
	rootB, err := r.RootHex(b)
	if err != nil {
		return false, err
	}
	return rootA == rootB, nil
}

// DiffVersions returns the leaf indices that differ between two versions.
// Index 0 is the identity slot; content hash j sits at leaf j+1.
func (r *Registry) DiffVersions(a, b string) ([]uint64, error) {
	treeA, err := r.Tree(a)
	if err != nil {
		return nil, err
	}
	treeB, err := r.Tree(b)
	if err != nil {
		return nil, err
	}
	return merkle.DiffLeaves(treeA, treeB)
}

// State captures a version's current tree state for checkpointing.
func (r *Registry) State(version string) (checkpoint.TreeState, error) {
	tree, err := r.Tree(version)
	if err != nil {
		return checkpoint.TreeState{}, err
	}
	return checkpoint.NewTreeState(version, tree)
}
