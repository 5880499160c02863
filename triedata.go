package triegraph

import (
	"github.com/triegraph/triegraph/kmer"
)

// BuildMode selects how TrieData is assembled from a builder's hits. Every
// mode builds both trie2graph and graph2trie; the modes differ only in how
// much pair storage is live at once during construction.
type BuildMode int

const (
	// BuildSimple builds trie2graph and graph2trie from two independent
	// PairSets, each sorted by its own key column and deduplicated before
	// the multimap is built.
	BuildSimple BuildMode = iota
	// BuildDualDense loads hits into one PairSet, sorts and dedupes it once,
	// builds trie2graph off its backing array, then overwrites that same
	// array in place with the swapped (loc, leaf) pairs to build graph2trie
	// — one live pair array instead of BuildSimple's two.
	BuildDualDense
	// BuildZeroOverhead builds graph2trie straight off trie2graph's own
	// (leaf, loc) pairs via BuildDenseMultimapSwapped, never constructing a
	// second pair slice with the columns swapped at all — the cheapest of
	// the three variants. All three produce identical multimaps; they only
	// differ in how much pair storage is live at once during construction.
	BuildZeroOverhead
)

// TrieData is the bidirectional k-mer<->location index grafted onto the
// graph: trie2graph answers "where in the graph does this k-mer occur" and
// graph2trie answers "which complete k-mers end just before this location"
// (a hit is recorded one past the k-mer's last letter), plus the
// Presence bitset marking every trie node (all levels) reachable from some
// location.
type TrieData struct {
	settings   kmer.Settings
	presence   *Presence
	trie2graph *DenseMultimap // key: leaf-local compressed index [0, NumLeaves)
	graph2trie *DenseMultimap // key: Loc, value: leaf-local compressed index
	numLocs    Loc
}

// Settings returns the k-mer configuration the index was built under.
func (td *TrieData) Settings() kmer.Settings { return td.settings }

// Presence returns the full-level trie presence bitset.
func (td *TrieData) Presence() *Presence { return td.presence }

// LocsForLeaf returns every Loc where the complete k-mer decoded from the
// leaf-local index occurs.
func (td *TrieData) LocsForLeaf(leaf uint64) []Loc {
	raw := td.trie2graph.Lookup(leaf)
	out := make([]Loc, len(raw))
	for i, r := range raw {
		out[i] = Loc(r)
	}
	return out
}

// LeafAtLoc returns the leaf-local index of a complete k-mer whose last
// letter immediately precedes loc (the smallest such index when several
// k-mers end there), and whether one exists: none does when no path leading
// up to loc carries K letters.
func (td *TrieData) LeafAtLoc(loc Loc) (uint64, bool) {
	vals := td.graph2trie.Lookup(uint64(loc))
	if len(vals) == 0 {
		return 0, false
	}
	return vals[0], true
}

// hit is one (complete k-mer, location) occurrence collected while walking
// the graph; leaf is the k-mer's leaf-local compressed index (CompressLeaf).
type hit struct {
	leaf uint64
	loc  Loc
}

// buildTrieData assembles a TrieData from every (kmer, loc) occurrence a
// builder (builder_*.go) produced, plus the already-accumulated Presence
// (marked incrementally by the builder via Presence.MarkLeaf as it walked,
// since the builder is the one enumerating distinct k-mers level by level).
//
// hits is not itself unique: parallel identical graph segments routinely
// make two different walks complete the same k-mer at the same location
// (completionLocs maps both onto the same successor), so every build mode
// sorts and dedupes its pairs before handing them to BuildDenseMultimap,
// which does not dedupe on its own.
func buildTrieData(s kmer.Settings, presence *Presence, hits []hit, numLocs Loc, mode BuildMode) *TrieData {
	switch mode {
	case BuildDualDense:
		return buildTrieDataDualDense(s, presence, hits, numLocs)
	case BuildZeroOverhead:
		return buildTrieDataZeroOverhead(s, presence, hits, numLocs)
	default:
		return buildTrieDataSimple(s, presence, hits, numLocs)
	}
}

// buildTrieDataSimple sorts and dedupes trie2graph and graph2trie's pairs
// independently, each in its own PairSet.
func buildTrieDataSimple(s kmer.Settings, presence *Presence, hits []hit, numLocs Loc) *TrieData {
	locBits := bitWidth(uint64(numLocs))
	leafBits := bitWidth(s.NumLeaves())

	fwd := NewPairSet(len(hits))
	for _, h := range hits {
		fwd.Add(h.leaf, uint64(h.loc))
	}
	fwd.SortByA()
	fwd.Unique()
	trie2graph := BuildDenseMultimap(int(s.NumLeaves()), fwd.AsSlice(), locBits, 0)

	// A hit whose loc is the numLocs sentinel ("end of graph", emitted by a
	// completion with no graph successor) names no real letter location, so
	// it cannot be a graph2trie key; trie2graph still carries it as a value
	// above, since "this k-mer's match has nothing after it" is meaningful
	// there.
	rev := NewPairSet(len(hits))
	for _, h := range hits {
		if h.loc >= numLocs {
			continue
		}
		rev.Add(uint64(h.loc), h.leaf)
	}
	rev.SortByA()
	rev.Unique()
	graph2trie := BuildDenseMultimap(int(numLocs), rev.AsSlice(), leafBits, 0)

	return &TrieData{
		settings:   s,
		presence:   presence,
		trie2graph: trie2graph,
		graph2trie: graph2trie,
		numLocs:    numLocs,
	}
}

// buildTrieDataDualDense is BuildDualDense's take on buildTrieData: instead
// of allocating independent fwd and rev PairSets, it loads hits into a
// single PairSet, sorts and dedupes it once, builds trie2graph off its
// backing array, then overwrites that same array in place with the swapped
// (loc, leaf) pairs to build graph2trie. Swapping columns on an already-
// unique pair set cannot introduce a duplicate, so one Unique call covers
// both directions.
func buildTrieDataDualDense(s kmer.Settings, presence *Presence, hits []hit, numLocs Loc) *TrieData {
	locBits := bitWidth(uint64(numLocs))
	leafBits := bitWidth(s.NumLeaves())

	ps := NewPairSet(len(hits))
	for _, h := range hits {
		ps.Add(h.leaf, uint64(h.loc))
	}
	ps.SortByA()
	ps.Unique()
	trie2graph := BuildDenseMultimap(int(s.NumLeaves()), ps.AsSlice(), locBits, 0)

	fwd := ps.AsSlice()
	rev := fwd[:0]
	for _, p := range fwd {
		if p.B >= uint64(numLocs) {
			continue // sentinel loc: no real graph2trie key, see buildTrieDataSimple
		}
		rev = append(rev, Pair{A: p.B, B: p.A})
	}
	graph2trie := BuildDenseMultimap(int(numLocs), rev, leafBits, 0)

	return &TrieData{
		settings:   s,
		presence:   presence,
		trie2graph: trie2graph,
		graph2trie: graph2trie,
		numLocs:    numLocs,
	}
}

// buildTrieDataZeroOverhead is BuildZeroOverhead's take on buildTrieData: it
// sorts and dedupes hits into one PairSet exactly as buildTrieDataSimple's
// fwd does, builds trie2graph from it, then derives graph2trie straight off
// that same (leaf, loc) slice via BuildDenseMultimapSwapped, which reads
// pairs[i].B as the key and pairs[i].A as the value directly — no (loc,
// leaf)-shaped pair is ever constructed, matched or not. Sentinel locs are
// filtered out in place first, reusing the slice's own backing array exactly
// as buildTrieDataDualDense does for its swap.
func buildTrieDataZeroOverhead(s kmer.Settings, presence *Presence, hits []hit, numLocs Loc) *TrieData {
	locBits := bitWidth(uint64(numLocs))
	leafBits := bitWidth(s.NumLeaves())

	ps := NewPairSet(len(hits))
	for _, h := range hits {
		ps.Add(h.leaf, uint64(h.loc))
	}
	ps.SortByA()
	ps.Unique()
	fwd := ps.AsSlice()

	trie2graph := BuildDenseMultimap(int(s.NumLeaves()), fwd, locBits, 0)

	filtered := fwd[:0]
	for _, p := range fwd {
		if p.B < uint64(numLocs) {
			filtered = append(filtered, p)
		}
	}
	graph2trie := BuildDenseMultimapSwapped(int(numLocs), filtered, leafBits, 0)

	return &TrieData{
		settings:   s,
		presence:   presence,
		trie2graph: trie2graph,
		graph2trie: graph2trie,
		numLocs:    numLocs,
	}
}

// bitWidth returns the number of bits needed to hold values in [0, n]
// (at least 1, so a zero-sized domain still packs).
func bitWidth(n uint64) uint {
	b := uint(1)
	for (uint64(1) << b) <= n {
		b++
	}
	return b
}
