package triegraph

import (
	"github.com/triegraph/triegraph/graph"
	"github.com/triegraph/triegraph/kmer"
)

// buildBT is the back-track algorithm: a DFS over nodes in topological order
// (falling back to id order if the graph has cycles), walking forward from
// every start location with a fresh k-mer window. Each step down pushes a
// letter onto a value copy of the window, so returning from a branch needs
// no explicit Pop (see btWalk), and the window at any point in the walk is
// exactly the current path's letters since the start location.
func buildBT(g graph.Graph, idx *LetterLocIndex, s kmer.Settings) *buildResult {
	res := newBuildResult(s)
	order := g.TopoOrder()
	if order == nil {
		n := g.NumNodes()
		order = make([]graph.NodeID, n)
		for i := range order {
			order[i] = graph.NodeID(i)
		}
	}
	for _, node := range order {
		startKmersInNodeBT(g, idx, s, node, res)
	}
	return res
}

// buildBTFromLocs restricts the back-track walk to an explicit set of start
// locations, used when a complexity component hands BT its non_cc_starts
// subset instead of every offset of every node.
func buildBTFromLocs(g graph.Graph, idx *LetterLocIndex, s kmer.Settings, locs []Loc) *buildResult {
	res := newBuildResult(s)
	for _, l := range locs {
		np := idx.Expand(l)
		btWalk(g, idx, np.Node, np.Offset, s.Empty(), res)
	}
	return res
}

func startKmersInNodeBT(g graph.Graph, idx *LetterLocIndex, s kmer.Settings, node graph.NodeID, res *buildResult) {
	n := g.Node(node).Len()
	for off := 0; off < n; off++ {
		btWalk(g, idx, node, off, s.Empty(), res)
	}
}

// btWalk descends letter by letter, pushing onto km; the caller's km is
// left untouched on return since Kmer.Push/Pop are value-receiver and
// return a new Kmer rather than mutating in place — the "pop" on backtrack
// is implicit in simply not propagating the pushed value back up. A
// completed k-mer is recorded at one past the letter that completed it, not
// at the walk's start: that is the position a later graph-edit-edge search
// resumes from (see extendKmer in builder_common.go).
func btWalk(g graph.Graph, idx *LetterLocIndex, node graph.NodeID, offset int, km kmer.Kmer, res *buildResult) {
	view := g.Node(node)
	if offset < view.Len() {
		pushed := km.Push(uint8(view.At(offset)))
		if pushed.IsComplete() {
			for _, loc := range completionLocs(g, idx, node, offset) {
				res.emit(pushed, loc)
			}
			return
		}
		btWalk(g, idx, node, offset+1, pushed, res)
		return
	}
	for _, nb := range g.ForwardFrom(node) {
		btWalk(g, idx, nb.Node, 0, km, res)
	}
}
