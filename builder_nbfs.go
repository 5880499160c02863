package triegraph

import (
	"github.com/triegraph/triegraph/graph"
	"github.com/triegraph/triegraph/kmer"
)

// buildNBFS is the node-BFS algorithm: a plain BFS over the node adjacency
// starting from every source (indegree-0) node, visiting each node exactly
// once and, on first visit, enumerating every one of its start locations via
// extendKmer. Unlike buildPBFS it carries no in-flight state across the
// frontier; unlike buildBT it orders work by node-reachability rather than
// topological rank, so it also covers components a topo sort would have
// rejected (cyclic subgraphs), at the cost of potentially starting a k-mer
// walk mid-cycle.
func buildNBFS(g graph.Graph, idx *LetterLocIndex, s kmer.Settings) *buildResult {
	res := newBuildResult(s)
	n := g.NumNodes()
	visited := make([]bool, n)

	var queue []graph.NodeID
	for id := 0; id < n; id++ {
		if len(g.BackwardFrom(graph.NodeID(id))) == 0 {
			queue = append(queue, graph.NodeID(id))
			visited[id] = true
		}
	}
	// Graphs with no source (every node has a predecessor, i.e. made only of
	// cycles) still need a start; seed with node 0 in that case.
	if len(queue) == 0 && n > 0 {
		queue = append(queue, 0)
		visited[0] = true
	}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		startKmersInNode(g, idx, s, node, res)
		for _, nb := range g.ForwardFrom(node) {
			if !visited[nb.Node] {
				visited[nb.Node] = true
				queue = append(queue, nb.Node)
			}
		}
	}
	return res
}

// buildNBFSFromLocs restricts NBFS to an explicit set of start locations,
// each extended independently via extendKmer; the BFS node order of the
// whole-graph build above plays no part here.
func buildNBFSFromLocs(g graph.Graph, idx *LetterLocIndex, s kmer.Settings, locs []Loc) *buildResult {
	res := newBuildResult(s)
	for _, l := range locs {
		np := idx.Expand(l)
		extendKmer(g, idx, np.Node, np.Offset, s.Empty(), res)
	}
	return res
}
