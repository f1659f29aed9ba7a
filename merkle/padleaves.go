package merkle

import "math/bits"

// IsPow2 determins if the unsigned value n is a perfect power of 2.
func IsPow2(n uint64) bool {
	return n != 0 && n&(n-1) == 0
}

// NextPowTwo returns the smallest power of two >= n. n must be >= 1.
func NextPowTwo(n uint64) uint64 {
	if IsPow2(n) {
		return n
	}
	return 1 << bits.Len64(n)
}

// PadLeaves pads the ordered leaf sequence to the next power of two by
// repeating the existing leaves cyclically, starting again from index 0.
//
// Given [H0, H1, H2] the padded sequence is [H0, H1, H2, H0].
//
// The repetition rule is deliberate: published roots depend on it, so it
// must not be replaced with zero or sentinel fill. A sequence whose length
// is already a power of two (including a single leaf) is returned unchanged
// in content, though always as a fresh slice of copies.
func PadLeaves(leaves [][]byte) ([][HashBytes]byte, error) {
	if len(leaves) == 0 {
		return nil, ErrEmptyLeaves
	}

	target := NextPowTwo(uint64(len(leaves)))

	padded := make([][HashBytes]byte, target)
	for i, leaf := range leaves {
		if len(leaf) != HashBytes {
			return nil, ErrBadLeafSize
		}
		copy(padded[i][:], leaf)
	}
	for i := uint64(len(leaves)); i < target; i++ {
		padded[i] = padded[i-uint64(len(leaves))]
	}
	return padded, nil
}
