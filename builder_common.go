package triegraph

import (
	"github.com/triegraph/triegraph/graph"
	"github.com/triegraph/triegraph/kmer"
)

// completionLocs returns the location(s) a k-mer that just completed by
// consuming the letter at (node, offset) should be recorded against: one
// past that letter within the same node when more of the node remains;
// otherwise the start of every real graph successor of node (a completion
// landing exactly on a node's last letter can continue into several
// branches, each recorded as its own pair); or, for a true dead end with no
// successors, the single sentinel location idx.NumLocations() ("end of
// graph", never a valid Loc to Expand, but a legitimate value to carry as a
// trie2graph continuation meaning "nothing follows").
func completionLocs(g graph.Graph, idx *LetterLocIndex, node graph.NodeID, offset int) []Loc {
	if offset+1 < g.Node(node).Len() {
		return []Loc{idx.Compress(NodePos{Node: node, Offset: offset + 1})}
	}
	nbs := g.ForwardFrom(node)
	if len(nbs) == 0 {
		return []Loc{idx.NumLocations()}
	}
	out := make([]Loc, len(nbs))
	for i, nb := range nbs {
		out[i] = idx.Compress(NodePos{Node: nb.Node, Offset: 0})
	}
	return out
}

// extendKmer extends km forward from (node, offset), following graph edges
// at node boundaries, emitting one hit per completed k-mer reached. Several
// completions are possible from a single start location when the remaining
// suffix crosses a branch point, and a single completion can itself fan out
// to several recorded pairs when it lands exactly on a node's last letter
// and that node has more than one successor (see completionLocs).
func extendKmer(g graph.Graph, idx *LetterLocIndex, node graph.NodeID, offset int, km kmer.Kmer, res *buildResult) {
	view := g.Node(node)
	if offset < view.Len() {
		pushed := km.Push(uint8(view.At(offset)))
		if pushed.IsComplete() {
			for _, loc := range completionLocs(g, idx, node, offset) {
				res.emit(pushed, loc)
			}
			return
		}
		extendKmer(g, idx, node, offset+1, pushed, res)
		return
	}
	for _, nb := range g.ForwardFrom(node) {
		extendKmer(g, idx, nb.Node, 0, km, res)
	}
	// A dead end (no successors) before the window fills leaves no hit for
	// this start location: the k-mer simply doesn't exist here.
}

// startKmersInNode enumerates every offset of node as a k-mer start location
// and extends from each, via extendKmer.
func startKmersInNode(g graph.Graph, idx *LetterLocIndex, s kmer.Settings, node graph.NodeID, res *buildResult) {
	n := g.Node(node).Len()
	for off := 0; off < n; off++ {
		extendKmer(g, idx, node, off, s.Empty(), res)
	}
}
