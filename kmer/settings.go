// Package kmer implements a bit-packed, variable-length k-mer: a single
// machine word carrying an on-mask bit, an incomplete flag, a length tag,
// and the letter bits themselves, plus the dense compressed-index
// bijections used by the trie (Compress/FromCompressed,
// CompressLeaf/FromCompressedLeaf).
//
// K and the on-mask are process-wide constants: they live in a Settings
// value created once before any Kmer, with a level-starts table built at
// runtime since K is configurable rather than fixed at compile time.
package kmer

import (
	"fmt"
	"sort"
)

// headerBits is the fixed header width: 1 on-mask bit + 1 incomplete-flag
// bit. The remaining 62 bits are split between the length tag and the
// letter data, the split depending on K (see lengthTagBits).
const headerBits = 2

// Settings is the process-wide k-mer configuration: K (trie depth) and the
// on-mask bit position. Construct exactly one Settings before creating any
// Kmer or decoding any compressed index.
type Settings struct {
	K        int
	bitsPerL uint
	lenBits  uint
	onMask   uint64
	// beg[l] is the first dense compressed index of level l, for l in
	// [0, K+1]; beg[K+1] is the total number of compressed indices.
	beg []uint64
}

// lengthTagBits returns the number of bits needed to represent every value
// in [0, k]: a single length field sized exactly to k, since K is a runtime
// constant here rather than a compile-time one.
func lengthTagBits(k int) uint {
	n := uint(0)
	for (1 << n) <= k {
		n++
	}
	if n == 0 {
		n = 1
	}
	return n
}

// DefaultOnMaskBit is the on-mask's bit position when not overridden: the
// word's top bit, so an empty k-mer's word is never numerically zero.
const DefaultOnMaskBit = 63

// NewSettings validates K against the word width and alphabet, and
// precomputes the BEG level-starts table used by Compress/FromCompressed.
// The on-mask bit is fixed at DefaultOnMaskBit; use NewSettingsWithOnMaskBit
// to set it explicitly (e.g. from the trie-kmer-on-mask config key).
func NewSettings(k int, bitsPerLetter uint) (Settings, error) {
	return NewSettingsWithOnMaskBit(k, bitsPerLetter, DefaultOnMaskBit)
}

// NewSettingsWithOnMaskBit is NewSettings with the on-mask bit position
// exposed as a parameter. The incomplete flag, length tag and letter data
// pack into bits [0, 63) below it (see kmer.go), so the current
// bit-packing only has room at bit 63: any other position is rejected
// rather than silently packing incorrectly. The parameter exists so the
// trie-kmer-on-mask config key has a real, validated landing spot instead
// of being parsed and discarded.
func NewSettingsWithOnMaskBit(k int, bitsPerLetter uint, onMaskBit uint) (Settings, error) {
	if k <= 0 {
		return Settings{}, fmt.Errorf("kmer: K=%d must be positive", k)
	}
	if bitsPerLetter == 0 {
		return Settings{}, fmt.Errorf("kmer: bitsPerLetter must be positive")
	}
	if onMaskBit != DefaultOnMaskBit {
		return Settings{}, fmt.Errorf("kmer: on-mask bit %d unsupported, the packed word layout only has room for it at bit %d", onMaskBit, DefaultOnMaskBit)
	}
	lenBits := lengthTagBits(k)
	dataBits := uint(k) * bitsPerLetter
	if lenBits+dataBits > 64-headerBits {
		return Settings{}, fmt.Errorf("kmer: K=%d with %d bits/letter does not fit in a 64-bit word (need %d header+length+data bits)", k, bitsPerLetter, headerBits+lenBits+dataBits)
	}
	s := Settings{K: k, bitsPerL: bitsPerLetter, lenBits: lenBits, onMask: uint64(1) << onMaskBit}

	sigma := uint64(1) << bitsPerLetter
	beg := make([]uint64, k+2)
	beg[0] = 0
	acc := uint64(1) // level 0 has exactly one (empty) k-mer
	beg[1] = 1
	levelCount := uint64(1)
	for l := 1; l <= k; l++ {
		levelCount *= sigma
		acc += levelCount
		beg[l+1] = acc
	}
	s.beg = beg
	return s, nil
}

// NewDefaultSettings returns Settings for the plain 4-letter DNA alphabet
// (2 bits/letter).
func NewDefaultSettings(k int) (Settings, error) {
	return NewSettings(k, 2)
}

// NumLeaves returns sigma^K, the number of complete k-mers.
func (s Settings) NumLeaves() uint64 {
	return s.beg[s.K+1] - s.beg[s.K]
}

// NumCompressed returns BEG[K+1], the total number of compressed indices
// across all levels 0..K.
func (s Settings) NumCompressed() uint64 {
	return s.beg[s.K+1]
}

// levelStart returns BEG[level].
func (s Settings) levelStart(level int) uint64 { return s.beg[level] }

// LevelStart is the exported form of levelStart.
func (s Settings) LevelStart(level int) uint64 { return s.levelStart(level) }

// levelOf returns the level (0..K) owning compressed index idx, via an
// upper-bound search over the level-starts table.
func (s Settings) levelOf(idx uint64) int {
	// sort.Search finds the first beg[l] > idx; level is l-1.
	l := sort.Search(len(s.beg), func(l int) bool { return s.beg[l] > idx })
	return l - 1
}

// LevelOf is the exported form of levelOf, used by the trie presence bitset
// to tell internal nodes (level < K) from leaves (level == K).
func (s Settings) LevelOf(idx uint64) int { return s.levelOf(idx) }

// AlphabetSize returns sigma, the branching factor of the trie.
func (s Settings) AlphabetSize() int { return 1 << s.bitsPerL }

// ParentCompressed returns the compressed index (full level space, as
// returned by Compress) of h's parent. For the root (h == 0) it returns 0,
// the root itself.
func (s Settings) ParentCompressed(h uint64) uint64 {
	return s.FromCompressed(h).Parent().Compress()
}

// ChildCompressed returns the compressed index of the child reached from the
// trie node at h (known to be at the given level) by appending letter l.
func (s Settings) ChildCompressed(h uint64, level int, l uint8) uint64 {
	return s.FromCompressed(h).Push(l).Compress()
}
