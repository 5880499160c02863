package triegraph

import (
	"github.com/triegraph/triegraph/dna"
	"github.com/triegraph/triegraph/graph"
	"github.com/triegraph/triegraph/kmer"
)

// pbfsCarry is one in-flight k-mer window traveling across the BFS frontier:
// it has consumed everything up to some node boundary without yet reaching
// K letters.
type pbfsCarry struct {
	km kmer.Kmer
}

// buildPBFS is the point-BFS algorithm: nodes are visited in topological
// order (id order on a cyclic graph), and every not-yet-complete k-mer
// window reaching a node's end is handed to that node's successors as data
// (a pbfsCarry) rather than being re-derived by recursing into them, so a
// node with many converging predecessors processes each carry exactly once
// regardless of how many paths produced it.
func buildPBFS(g graph.Graph, idx *LetterLocIndex, s kmer.Settings) *buildResult {
	return buildPBFSFromLocs(g, idx, s, allStartOffsets(g), 0)
}

// buildPBFSFrom restricts point-BFS bookkeeping to a single node's own start
// locations (no carries in from elsewhere).
func buildPBFSFrom(g graph.Graph, idx *LetterLocIndex, s kmer.Settings, node graph.NodeID) *buildResult {
	starts := map[graph.NodeID][]int{}
	n := g.Node(node).Len()
	offs := make([]int, n)
	for i := range offs {
		offs[i] = i
	}
	starts[node] = offs
	return buildPBFSFromStarts(g, idx, s, starts, 0)
}

// buildPBFSFromLocs runs point-BFS seeded at exactly the given start
// locations (rather than every offset of every node), as used when a
// complexity component hands PBFS only its cc_starts subset. cutEarly, if
// nonzero, bounds the frontier: a node carrying more than cutEarly in-flight
// windows at once drops the overflow rather than extending it, trusting
// that the locations responsible for the dropped carries are re-covered as
// their own start locations elsewhere (see ComplexityWalker.CCStarts).
func buildPBFSFromLocs(g graph.Graph, idx *LetterLocIndex, s kmer.Settings, locs []Loc, cutEarly uint64) *buildResult {
	starts := map[graph.NodeID][]int{}
	for _, l := range locs {
		np := idx.Expand(l)
		starts[np.Node] = append(starts[np.Node], np.Offset)
	}
	return buildPBFSFromStarts(g, idx, s, starts, cutEarly)
}

func buildPBFSFromStarts(g graph.Graph, idx *LetterLocIndex, s kmer.Settings, starts map[graph.NodeID][]int, cutEarly uint64) *buildResult {
	res := newBuildResult(s)
	order := g.TopoOrder()
	if order == nil {
		order = idOrder(g)
	}
	incoming := make(map[graph.NodeID][]pbfsCarry)
	for _, node := range order {
		carries := incoming[node]
		if cutEarly > 0 && uint64(len(carries)) > cutEarly {
			carries = nil
		}
		pbfsVisit(g, idx, s, node, starts[node], carries, res, incoming)
		delete(incoming, node)
	}
	return res
}

func pbfsVisit(g graph.Graph, idx *LetterLocIndex, s kmer.Settings, node graph.NodeID, startOffsets []int, carries []pbfsCarry, res *buildResult, incoming map[graph.NodeID][]pbfsCarry) {
	view := g.Node(node)

	forward := func(km kmer.Kmer, startOff int) {
		final, ok := pbfsExtend(g, idx, node, view, startOff, km, res)
		if ok {
			for _, nb := range g.ForwardFrom(node) {
				incoming[nb.Node] = append(incoming[nb.Node], pbfsCarry{km: final})
			}
		}
	}

	for _, c := range carries {
		forward(c.km, 0)
	}
	for _, off := range startOffsets {
		forward(s.Empty(), off)
	}
}

// pbfsExtend pushes view's letters starting at offset start into km,
// emitting a hit as soon as km completes; the hit's location is one past
// the completing letter, computed from the node actually being walked, not
// from the window's start. Returns (partial-kmer, true) if the node ends
// before completion, so the caller can carry it forward.
func pbfsExtend(g graph.Graph, idx *LetterLocIndex, node graph.NodeID, view dna.View, start int, km kmer.Kmer, res *buildResult) (kmer.Kmer, bool) {
	for off := start; off < view.Len(); off++ {
		km = km.Push(uint8(view.At(off)))
		if km.IsComplete() {
			for _, loc := range completionLocs(g, idx, node, off) {
				res.emit(km, loc)
			}
			return km, false
		}
	}
	return km, true
}

func idOrder(g graph.Graph) []graph.NodeID {
	n := g.NumNodes()
	order := make([]graph.NodeID, n)
	for i := range order {
		order[i] = graph.NodeID(i)
	}
	return order
}

func allStartOffsets(g graph.Graph) map[graph.NodeID][]int {
	n := g.NumNodes()
	starts := make(map[graph.NodeID][]int, n)
	for i := 0; i < n; i++ {
		node := graph.NodeID(i)
		ln := g.Node(node).Len()
		offs := make([]int, ln)
		for j := range offs {
			offs[j] = j
		}
		starts[node] = offs
	}
	return starts
}
