package triegraph

import "github.com/triegraph/triegraph/dna"

// NextEditEdges returns every alignment step out of h as a fully built,
// query-agnostic slice suitable for driving an external approximate
// search (beam/A*, the index's only intended client per the package's
// scope). Each reachable reference letter is classified against every
// possible next input letter up front (Match when it equals the reference,
// Sub otherwise), so a caller walking a specific query just filters by
// Letter rather than re-deriving the reference alphabet-wide. It dispatches
// to one of four shapes depending on h's kind and, for graph handles,
// whether the current location sits mid-node or at a node boundary:
//
//   - trie-inner: h is a trie handle above the leaf level; children come
//     from Presence.Children.
//   - trie-to-graph: h is a leaf trie handle (a fully matched k-mer); the
//     walk falls through to every graph location the k-mer occurs at.
//   - graph-fwd: h is a graph handle mid-node; there is exactly one
//     reference successor letter.
//   - graph-split: h is a graph handle at a node's last letter; successors
//     come from every outgoing edge. A node with none produces only the
//     Ins edges: insertions remain possible, but there is no reference to
//     match, substitute against, or delete (see spec's Open Question on
//     graph-split with no successors).
func (tg *TrieGraph) NextEditEdges(h Handle) []EditEdge {
	switch h.Kind {
	case HandleTrie:
		return tg.trieEditEdges(h)
	case HandleGraph:
		return tg.graphEditEdges(h)
	default:
		return nil
	}
}

// subMatchDelBlock emits, for a single reachable reference letter ref at
// target to, sigma Match/Sub edges (one per possible next letter) followed
// by a single Del edge (letter EPS).
func subMatchDelBlock(sigma int, ref uint8, to Handle) []EditEdge {
	out := make([]EditEdge, 0, sigma+1)
	for q := uint8(0); q < uint8(sigma); q++ {
		kind := EditSub
		if q == ref {
			kind = EditMatch
		}
		out = append(out, EditEdge{Kind: kind, Letter: q, To: to})
	}
	out = append(out, EditEdge{Kind: EditDel, Letter: uint8(dna.EPS), To: to})
	return out
}

// insBlock emits sigma Ins edges, one per possible next letter, all staying
// at stay (an insertion consumes a query letter without advancing the
// reference).
func insBlock(sigma int, stay Handle) []EditEdge {
	out := make([]EditEdge, sigma)
	for q := uint8(0); q < uint8(sigma); q++ {
		out[q] = EditEdge{Kind: EditIns, Letter: q, To: stay}
	}
	return out
}

func (tg *TrieGraph) trieEditEdges(h Handle) []EditEdge {
	s := tg.data.settings
	sigma := s.AlphabetSize()
	level := s.LevelOf(h.TrieIdx)

	if level < s.K {
		var out []EditEdge
		for _, c := range tg.data.presence.Children(h.TrieIdx) {
			out = append(out, subMatchDelBlock(sigma, c.Letter, TrieHandleOf(c.Compressed))...)
		}
		out = append(out, insBlock(sigma, h)...)
		return out
	}

	// Leaf: trie-to-graph. Every location the k-mer maps to already names
	// the continuation point one past the match (or the numLocs sentinel
	// for a dead end with nothing following); each names exactly one
	// concrete target, so there is no further branching to rediscover here
	// the way graph-fwd/graph-split would have to from a bare position.
	leaf := h.TrieIdx - s.LevelStart(s.K)
	var out []EditEdge
	for _, loc := range tg.data.LocsForLeaf(leaf) {
		if loc >= tg.locs.NumLocations() {
			continue // sentinel: this occurrence has no graph letter after it
		}
		np := tg.locs.Expand(loc)
		ref := uint8(tg.graph.Node(np.Node).At(np.Offset))
		out = append(out, subMatchDelBlock(sigma, ref, GraphHandleOf(loc))...)
	}
	out = append(out, insBlock(sigma, h)...)
	return out
}

func (tg *TrieGraph) graphEditEdges(h Handle) []EditEdge {
	s := tg.data.settings
	sigma := s.AlphabetSize()
	np := tg.locs.Expand(h.Loc)
	view := tg.graph.Node(np.Node)

	if np.Offset+1 < view.Len() {
		// graph-fwd: a single in-node successor letter. Order: Sub/Match
		// xsigma, Ins xsigma, Del x1.
		next := h.Loc + 1
		ref := uint8(view.At(np.Offset + 1))
		out := make([]EditEdge, 0, 2*sigma+1)
		for q := uint8(0); q < uint8(sigma); q++ {
			kind := EditSub
			if q == ref {
				kind = EditMatch
			}
			out = append(out, EditEdge{Kind: kind, Letter: q, To: GraphHandleOf(next)})
		}
		out = append(out, insBlock(sigma, h)...)
		out = append(out, EditEdge{Kind: EditDel, Letter: uint8(dna.EPS), To: GraphHandleOf(next)})
		return out
	}

	// graph-split: node boundary, branch across every outgoing edge. Each
	// outgoing edge contributes its own Sub/Match+Del block; the Ins block
	// is emitted once at the end regardless of how many (or how few)
	// outgoing edges exist.
	var out []EditEdge
	for _, nb := range tg.graph.ForwardFrom(np.Node) {
		nview := tg.graph.Node(nb.Node)
		if nview.Len() == 0 {
			continue
		}
		nextLoc := tg.locs.Compress(NodePos{Node: nb.Node, Offset: 0})
		ref := uint8(nview.At(0))
		out = append(out, subMatchDelBlock(sigma, ref, GraphHandleOf(nextLoc))...)
	}
	out = append(out, insBlock(sigma, h)...)
	return out
}
