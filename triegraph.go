package triegraph

import (
	"github.com/triegraph/triegraph/graph"
	"github.com/triegraph/triegraph/kmer"
)

// TrieGraph is the facade over a built index: the graph itself, the
// letter-location bijection, and the bidirectional trie<->graph data built
// by one of the builder_*.go algorithms.
type TrieGraph struct {
	graph graph.Graph
	locs  *LetterLocIndex
	data  *TrieData
}

// Graph returns the underlying variation graph.
func (tg *TrieGraph) Graph() graph.Graph { return tg.graph }

// Locations returns the letter-location bijection.
func (tg *TrieGraph) Locations() *LetterLocIndex { return tg.locs }

// Data returns the bidirectional trie<->graph index.
func (tg *TrieGraph) Data() *TrieData { return tg.data }

// RootHandle returns the trie handle for the empty k-mer.
func (tg *TrieGraph) RootHandle() Handle {
	return TrieHandleOf(tg.data.settings.Empty().Compress())
}

// UpTrieHandle returns h's parent trie handle. Panics if h is not a trie
// handle, or is already the root.
func (tg *TrieGraph) UpTrieHandle(h Handle) Handle {
	if !h.IsTrie() {
		panic("triegraph: UpTrieHandle on a non-trie handle")
	}
	if h.TrieIdx == 0 {
		panic("triegraph: UpTrieHandle on the root")
	}
	return TrieHandleOf(tg.data.settings.ParentCompressed(h.TrieIdx))
}

// PrevTrieHandles returns h's parent wrapped in a single-element slice (the
// trie is a tree, so there is exactly one), or nil at the root.
func (tg *TrieGraph) PrevTrieHandles(h Handle) []Handle {
	if !h.IsTrie() || h.TrieIdx == 0 {
		return nil
	}
	return []Handle{tg.UpTrieHandle(h)}
}

// PrevGraphHandles returns every graph handle one letter before h: the
// previous offset in the same node if h isn't at the node's start, or the
// last offset of every predecessor node otherwise.
func (tg *TrieGraph) PrevGraphHandles(h Handle) []Handle {
	if !h.IsGraph() {
		panic("triegraph: PrevGraphHandles on a non-graph handle")
	}
	np := tg.locs.Expand(h.Loc)
	if np.Offset > 0 {
		return []Handle{GraphHandleOf(h.Loc - 1)}
	}
	var out []Handle
	for _, nb := range tg.graph.BackwardFrom(np.Node) {
		n := tg.graph.Node(nb.Node).Len()
		if n == 0 {
			continue
		}
		prevLoc := tg.locs.Compress(NodePos{Node: nb.Node, Offset: n - 1})
		out = append(out, GraphHandleOf(prevLoc))
	}
	return out
}

// Reverse maps a graph handle to the same letter on its reverse-complement
// twin node (requires the graph to have been built with graph.WithTwins).
// Trie handles have no reverse-complement counterpart and are returned
// unchanged.
func (tg *TrieGraph) Reverse(h Handle) Handle {
	if !h.IsGraph() {
		return h
	}
	np := tg.locs.Expand(h.Loc)
	rev := tg.locs.Reverse(np, tg.graph)
	return GraphHandleOf(tg.locs.Compress(rev))
}

// NextMatchMany follows only Match edges, consuming query letter by letter
// from h, and returns every handle visited (including h itself as the first
// element). It stops as soon as a query letter isn't a Match (insertions,
// substitutions and deletions are not taken), so the returned slice's length
// minus one is the longest exact match length achieved.
func (tg *TrieGraph) NextMatchMany(h Handle, query []uint8) []Handle {
	path := make([]Handle, 1, len(query)+1)
	path[0] = h
	cur := h
	for _, q := range query {
		next, ok := tg.matchOnly(cur, q)
		if !ok {
			break
		}
		path = append(path, next)
		cur = next
	}
	return path
}

func (tg *TrieGraph) matchOnly(h Handle, query uint8) (Handle, bool) {
	for _, e := range tg.NextEditEdges(h) {
		if e.Kind == EditMatch && e.Letter == query {
			return e.To, true
		}
	}
	return Handle{}, false
}

// ExactShortMatch walks query from the root as far as an exact match holds,
// bounded by the indexed k-mer depth K. It returns the deepest handle
// reached and how many letters were matched; matched < len(query) or
// matched < K means the query (or its first K letters) isn't present
// verbatim in the index.
func (tg *TrieGraph) ExactShortMatch(query []uint8) (Handle, int) {
	if k := tg.data.settings.K; len(query) > k {
		query = query[:k]
	}
	path := tg.NextMatchMany(tg.RootHandle(), query)
	return path[len(path)-1], len(path) - 1
}

// Settings returns the k-mer configuration the index was built under.
func (tg *TrieGraph) Settings() kmer.Settings { return tg.data.settings }
