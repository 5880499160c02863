// Package bitset implements a minimal word-sliced bitset, used by
// ccwalker.go's NewComplexityWalker as the dense per-location membership set
// (cc_starts vs. non_cc_starts). It is not the trie-presence bitset
// (triegraph.Presence uses github.com/bits-and-blooms/bitset for that); this
// is the low-level primitive the rest of the module reaches for when it
// needs one bit per dense index and nothing heavier. Trimmed to Test/Set,
// the only operations any caller needs; see gaissmai-bart's own
// internal/bitset for the fuller rank/select primitive this was adapted
// from if a future caller needs Rank or NextSet.
package bitset

const wordSize = 64
const log2WordSize = 6

// BitSet is a slice of words.
type BitSet []uint64

func wordsNeeded(i uint) int {
	return int(i+wordSize) >> log2WordSize
}

func bitsIndex(i uint) uint {
	return i & (wordSize - 1)
}

func (b BitSet) bitsCapacity() uint {
	return uint(len(b) * wordSize)
}

func (b *BitSet) extend(i uint) {
	n := wordsNeeded(i)
	if len(*b) < n {
		grown := make([]uint64, n)
		copy(grown, *b)
		*b = grown
	}
}

// Test reports whether bit i is set.
func (b BitSet) Test(i uint) bool {
	if i >= b.bitsCapacity() {
		return false
	}
	return b[i>>log2WordSize]&(1<<bitsIndex(i)) != 0
}

// Set bit i to 1, growing the set if needed.
func (b *BitSet) Set(i uint) {
	b.extend(i)
	(*b)[i>>log2WordSize] |= 1 << bitsIndex(i)
}
