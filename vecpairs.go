package triegraph

import "sort"

// Pair is one (key, value) association collected while walking the graph to
// build the trie-to-graph bidirectional map: A is a compressed trie index,
// B is a Loc, or vice versa depending on which direction is being built.
type Pair struct {
	A, B uint64
}

// PairSet accumulates (A, B) pairs in arrival order, then sorts and dedupes
// them by one column; BuildDenseMultimap builds its CSR starts/elems from
// the resulting slice (AsSlice), and GroupByA extracts CSR-style
// keys/starts/elems directly. Kept as its own type rather than inlined so
// both trie2graph and graph2trie can reuse the same sort/unique machinery.
type PairSet struct {
	pairs []Pair
}

// NewPairSet preallocates capacity for n pairs.
func NewPairSet(capacity int) *PairSet {
	return &PairSet{pairs: make([]Pair, 0, capacity)}
}

// Add appends one (a, b) pair.
func (ps *PairSet) Add(a, b uint64) {
	ps.pairs = append(ps.pairs, Pair{A: a, B: b})
}

// Len returns the number of pairs currently held.
func (ps *PairSet) Len() int { return len(ps.pairs) }

// SortByA sorts pairs by A ascending, then B ascending (the "fwd" order:
// group by key, list values in increasing order).
func (ps *PairSet) SortByA() {
	sort.Slice(ps.pairs, func(i, j int) bool {
		if ps.pairs[i].A != ps.pairs[j].A {
			return ps.pairs[i].A < ps.pairs[j].A
		}
		return ps.pairs[i].B < ps.pairs[j].B
	})
}

// SortByB sorts pairs by B ascending, then A ascending (the "rev" order used
// to build the reverse map without re-walking the source).
func (ps *PairSet) SortByB() {
	sort.Slice(ps.pairs, func(i, j int) bool {
		if ps.pairs[i].B != ps.pairs[j].B {
			return ps.pairs[i].B < ps.pairs[j].B
		}
		return ps.pairs[i].A < ps.pairs[j].A
	})
}

// Unique removes consecutive duplicate pairs; call after one of the Sort
// methods. Safe to call on an empty set.
func (ps *PairSet) Unique() {
	if len(ps.pairs) == 0 {
		return
	}
	w := 1
	for r := 1; r < len(ps.pairs); r++ {
		if ps.pairs[r] != ps.pairs[w-1] {
			ps.pairs[w] = ps.pairs[r]
			w++
		}
	}
	ps.pairs = ps.pairs[:w]
}

// GroupByA builds CSR starts/elems out of pairs already sorted by A (via
// SortByA, optionally Unique'd): keys holds each distinct A value in
// ascending order, starts holds the offset into elems where that key's
// values begin (len(keys)+1 entries, last is len(elems)), and elems holds
// every B value grouped by key. Destructive: ps.pairs is consumed (set to
// nil) since both the flattened keys and a direct alias into the pair slice
// can't be kept addressable at once without pinning twice the memory.
func (ps *PairSet) GroupByA() (keys []uint64, starts []int, elems []uint64) {
	n := len(ps.pairs)
	if n == 0 {
		ps.pairs = nil
		return nil, []int{0}, nil
	}
	elems = make([]uint64, n)
	keys = make([]uint64, 0, n)
	starts = make([]int, 0, n+1)

	var cur uint64
	for i, p := range ps.pairs {
		elems[i] = p.B
		if i == 0 || p.A != cur {
			keys = append(keys, p.A)
			starts = append(starts, i)
			cur = p.A
		}
	}
	starts = append(starts, n)
	ps.pairs = nil
	return keys, starts, elems
}

// AsSlice exposes the held pairs without consuming them (for tests and
// callers that need to inspect state without triggering GroupByA's
// destructive extraction).
func (ps *PairSet) AsSlice() []Pair { return ps.pairs }
