// Package merkletesting provides deterministic test data generation shared
// by the merkle, checkpoint and versions package tests.
package merkletesting

import (
	"crypto/sha256"
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/uuid"
)

type TestConfig struct {
	// Seed fixes the RNG so that generated leaf data is the same from run to
	// run. Tests that want run to run variation can pass the time.
	Seed int64

	// LabelPrefix namespaces generated version labels.
	LabelPrefix string
}

type TestContext struct {
	T   *testing.T
	Rng *rand.Rand
	Cfg TestConfig
}

func NewTestContext(t *testing.T, cfg TestConfig) TestContext {
	if cfg.LabelPrefix == "" {
		cfg.LabelPrefix = "merkletesting"
	}
	return TestContext{
		T:   t,
		Rng: rand.New(rand.NewSource(cfg.Seed)),
		Cfg: cfg,
	}
}

// GenerateLeaves returns n random 32 byte leaf hashes drawn from the seeded
// rng.
func (c *TestContext) GenerateLeaves(n int) [][]byte {
	leaves := make([][]byte, n)
	for i := range leaves {
		leaves[i] = make([]byte, 32)
		_, _ = c.Rng.Read(leaves[i])
	}
	return leaves
}

// ContentHashes returns the sha256 hashes of n synthetic file contents. The
// contents embed the label prefix and index so the hashes are stable and
// human traceable when a test fails.
func (c *TestContext) ContentHashes(n int) [][]byte {
	hashes := make([][]byte, n)
	for i := range hashes {
		h := sha256.Sum256(fmt.Appendf(nil, "%s/file-%d", c.Cfg.LabelPrefix, i))
		hashes[i] = h[:]
	}
	return hashes
}

// VersionLabel returns a unique version label for registry tests.
func (c *TestContext) VersionLabel() string {
	return fmt.Sprintf("%s-%s", c.Cfg.LabelPrefix, uuid.NewString())
}
