package triegraph

import (
	"github.com/triegraph/triegraph/graph"
	"github.com/triegraph/triegraph/kmer"
)

// defaultLBFSSetCutoff is how many distinct in-flight k-mer values a single
// location's live set tolerates before lbfsSet switches its membership test
// from a linear scan to a map (config key trie-builder-lbfs-set-cutoff).
const defaultLBFSSetCutoff = 500

// lbfsSet is a location's live set of distinct in-flight k-mer values
// (keyed by Kmer.Compress()). Below cutoff entries it's a linear scan,
// which is cheaper than hashing for the common case of one or two carries
// per location; past cutoff it switches to a map once and stays there.
type lbfsSet struct {
	cutoff int
	linear []uint64
	hash   map[uint64]bool
}

// addIfNew reports whether v was not already present, adding it either way.
func (s *lbfsSet) addIfNew(v uint64) bool {
	if s.hash != nil {
		if s.hash[v] {
			return false
		}
		s.hash[v] = true
		return true
	}
	for _, x := range s.linear {
		if x == v {
			return false
		}
	}
	s.linear = append(s.linear, v)
	if len(s.linear) > s.cutoff {
		s.hash = make(map[uint64]bool, len(s.linear))
		for _, x := range s.linear {
			s.hash[x] = true
		}
		s.linear = nil
	}
	return true
}

// lbfsWork is one pending step: the partial k-mer km is anchored at loc,
// meaning it has consumed every letter up to but not including the one at
// loc, and loc's letter is what it consumes next.
type lbfsWork struct {
	loc Loc
	km  kmer.Kmer
}

// buildLBFS is the location-BFS algorithm: rather than walking the graph
// once per start location (that's what buildBT does), it keeps one live set
// of distinct in-flight k-mer values per location and drives a worklist
// across locations, so that whenever two different start points' partial
// k-mers land on the same location with the same value, the second arrival
// is recognized as redundant by lbfsSet and dropped instead of re-walked.
// The worklist empties — and the build terminates — exactly when every
// arrival at every location has already been seen.
func buildLBFS(g graph.Graph, idx *LetterLocIndex, s kmer.Settings) *buildResult {
	n := idx.NumLocations()
	locs := make([]Loc, n)
	for i := range locs {
		locs[i] = Loc(i)
	}
	return runLBFS(g, idx, s, locs, defaultLBFSSetCutoff)
}

// buildLBFSFromLocs restricts the location-BFS worklist to exactly the given
// seed locations, used when a complexity component hands LBFS its cc_starts
// or non_cc_starts subset instead of every location in the graph.
func buildLBFSFromLocs(g graph.Graph, idx *LetterLocIndex, s kmer.Settings, locs []Loc, cutoff int) *buildResult {
	if cutoff <= 0 {
		cutoff = defaultLBFSSetCutoff
	}
	return runLBFS(g, idx, s, locs, cutoff)
}

func runLBFS(g graph.Graph, idx *LetterLocIndex, s kmer.Settings, seedLocs []Loc, cutoff int) *buildResult {
	res := newBuildResult(s)
	live := make(map[Loc]*lbfsSet)
	liveAt := func(loc Loc) *lbfsSet {
		set, ok := live[loc]
		if !ok {
			set = &lbfsSet{cutoff: cutoff}
			live[loc] = set
		}
		return set
	}

	var queue []lbfsWork
	for _, loc := range seedLocs {
		if liveAt(loc).addIfNew(s.Empty().Compress()) {
			queue = append(queue, lbfsWork{loc: loc, km: s.Empty()})
		}
	}

	for len(queue) > 0 {
		w := queue[0]
		queue = queue[1:]

		np := idx.Expand(w.loc)
		letter := uint8(g.Node(np.Node).At(np.Offset))
		pushed := w.km.Push(letter)

		if pushed.IsComplete() {
			for _, loc := range completionLocs(g, idx, np.Node, np.Offset) {
				res.emit(pushed, loc)
			}
			continue
		}

		nextLocs := nextLocsAfter(g, idx, np)
		for _, next := range nextLocs {
			if liveAt(next).addIfNew(pushed.Compress()) {
				queue = append(queue, lbfsWork{loc: next, km: pushed})
			}
		}
	}
	return res
}

// nextLocsAfter returns the locations that continue a walk sitting at np:
// the next offset in the same node, or offset 0 of every successor node
// when np is the node's last letter.
func nextLocsAfter(g graph.Graph, idx *LetterLocIndex, np NodePos) []Loc {
	if np.Offset+1 < g.Node(np.Node).Len() {
		return []Loc{idx.Compress(NodePos{Node: np.Node, Offset: np.Offset + 1})}
	}
	nbs := g.ForwardFrom(np.Node)
	if len(nbs) == 0 {
		return nil
	}
	out := make([]Loc, len(nbs))
	for i, nb := range nbs {
		out[i] = idx.Compress(NodePos{Node: nb.Node, Offset: 0})
	}
	return out
}
