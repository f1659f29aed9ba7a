package merkle

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// debug utilities

func proofStepStringer(step ProofStep) string {
	side := "R"
	if step.Dir == SiblingLeft {
		side = "L"
	}
	return fmt.Sprintf("%s:%s", side, hex.EncodeToString(step.Sibling[:]))
}

func proofStringer(p Proof, sep string) string {
	var steps []string

	for _, step := range p.Steps {
		steps = append(steps, proofStepStringer(step))
	}
	return fmt.Sprintf("%d %s [%s]", p.LeafIndex, hex.EncodeToString(p.LeafHash[:]), strings.Join(steps, sep))
}

// levelStringer renders one arena level, shortened hashes, dirty nodes
// marked with a trailing '*'.
func (t *Tree) levelStringer(first, count uint64) string {
	var nodes []string

	for i := first; i < first+count; i++ {
		short := hex.EncodeToString(t.nodes[i][:4])
		if t.dirty[i] {
			short += "*"
		}
		nodes = append(nodes, short)
	}
	return strings.Join(nodes, " ")
}

// String renders the tree level by level, root first.
func (t *Tree) String() string {
	var levels []string

	for first, count := uint64(0), uint64(1); first < uint64(len(t.nodes)); first, count = LeftChild(first), count*2 {
		levels = append(levels, t.levelStringer(first, count))
	}
	return strings.Join(levels, "\n")
}
