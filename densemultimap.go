package triegraph

import (
	"github.com/triegraph/triegraph/internal/compactvec"
	"github.com/triegraph/triegraph/internal/sortedvec"
)

// DenseMultimap is the CSR encoding of a multimap whose keys are a dense
// integer range [0, KeySpace): starts is indexed directly by key (no search
// needed to find a key's row), sized KeySpace+1 and backed by sortedvec since
// it is by construction non-decreasing; elems is every value, grouped by key,
// bit-packed by compactvec to the width actually needed. This is the
// structure both trie2graph and graph2trie (triedata.go) are built from.
type DenseMultimap struct {
	starts *sortedvec.Vector
	elems  *compactvec.Vector[uint64]
}

// BuildDenseMultimap builds a DenseMultimap over keySpace possible keys from
// pairs (need not be pre-sorted), packing values to valueBits wide and
// beaconing starts at the given stride (sortedvec.DefaultStride if <= 0).
func BuildDenseMultimap(keySpace int, pairs []Pair, valueBits uint, stride int) *DenseMultimap {
	counts := make([]uint64, keySpace+1)
	for _, p := range pairs {
		counts[p.A+1]++
	}
	for i := 1; i <= keySpace; i++ {
		counts[i] += counts[i-1]
	}

	cursor := append([]uint64(nil), counts[:keySpace]...)
	flat := make([]uint64, len(pairs))
	for _, p := range pairs {
		flat[cursor[p.A]] = p.B
		cursor[p.A]++
	}

	return &DenseMultimap{
		starts: sortedvec.Build(counts, stride),
		elems:  compactvec.FromSlice(valueBits, flat),
	}
}

// BuildDenseMultimapSwapped is BuildDenseMultimap but keyed by pairs[i].B
// with pairs[i].A as the value, so a (B, A) multimap can be built straight
// off a (A, B) pair slice someone else already holds (typically one that
// just built the (A, B) direction) without ever materializing a second pair
// slice with the columns swapped. The counting-sort cursor below is the only
// extra memory this needs, sized to the output rather than the input.
func BuildDenseMultimapSwapped(keySpace int, pairs []Pair, valueBits uint, stride int) *DenseMultimap {
	counts := make([]uint64, keySpace+1)
	for _, p := range pairs {
		counts[p.B+1]++
	}
	for i := 1; i <= keySpace; i++ {
		counts[i] += counts[i-1]
	}

	cursor := append([]uint64(nil), counts[:keySpace]...)
	flat := make([]uint64, len(pairs))
	for _, p := range pairs {
		flat[cursor[p.B]] = p.A
		cursor[p.B]++
	}

	return &DenseMultimap{
		starts: sortedvec.Build(counts, stride),
		elems:  compactvec.FromSlice(valueBits, flat),
	}
}

// KeySpace returns the number of distinct keys the map was built over.
func (m *DenseMultimap) KeySpace() int { return m.starts.Len() - 1 }

// NumValues returns the total number of (key, value) associations.
func (m *DenseMultimap) NumValues() int { return m.elems.Len() }

// Range returns the [lo, hi) index range into elems owned by key.
func (m *DenseMultimap) Range(key uint64) (lo, hi int) {
	return int(m.starts.Get(int(key))), int(m.starts.Get(int(key) + 1))
}

// HasKey reports whether key owns at least one value.
func (m *DenseMultimap) HasKey(key uint64) bool {
	return !m.starts.IsZeroDiff(int(key) + 1)
}

// At returns the i-th raw element (i in [0, NumValues())).
func (m *DenseMultimap) At(i int) uint64 { return m.elems.Get(i) }

// Lookup materializes every value owned by key.
func (m *DenseMultimap) Lookup(key uint64) []uint64 {
	lo, hi := m.Range(key)
	out := make([]uint64, 0, hi-lo)
	for i := lo; i < hi; i++ {
		out = append(out, m.elems.Get(i))
	}
	return out
}
