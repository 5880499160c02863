package triegraph

import (
	"sort"

	"github.com/triegraph/triegraph/graph"
	"github.com/triegraph/triegraph/internal/bitset"
)

// complexityComponent is a maximal connected region of "short" nodes (graph
// nodes whose own length is below K, so no single node in it can anchor a
// complete k-mer on its own) that contains at least one hotspot. incoming
// holds every node bordering the component via a forward edge INTO it that
// is itself NOT short — by construction any such neighbor must be long,
// since the BFS that built the component already swept in every reachable
// short node regardless of whether it was itself hot. outgoing is the
// symmetric boundary the component feeds into; it doesn't contribute to
// cc_starts, but a caller walking back out of the component (e.g. the
// cold-node builder resuming past it) needs to know where that is.
type complexityComponent struct {
	nodes    map[graph.NodeID]bool
	incoming []graph.NodeID
	outgoing []graph.NodeID
}

// ComplexityWalker partitions every letter location in the graph into
// cc_starts (inside a complexity component, or within the last K-1 letters
// of a node feeding into one) and non_cc_starts (everything else). The two
// sets are disjoint and exhaustive over [0, NumLocations).
type ComplexityWalker struct {
	ccStarts    []Loc
	nonCCStarts []Loc
	components  []complexityComponent
}

// NewComplexityWalker builds the component set and the cc_starts/
// non_cc_starts partition. k is the indexed k-mer length, which decides
// which nodes are "short" and how many trailing letters of an incoming
// boundary node count as cc_starts.
func NewComplexityWalker(g graph.Graph, idx *LetterLocIndex, score ComplexityScore, cfg ComplexityConfig, k int) *ComplexityWalker {
	n := g.NumNodes()
	short := make([]bool, n)
	for id := 0; id < n; id++ {
		short[id] = g.Node(graph.NodeID(id)).Len() < k
	}

	assigned := make([]bool, n)
	var components []complexityComponent
	for id := 0; id < n; id++ {
		node := graph.NodeID(id)
		if !short[node] || assigned[node] || !IsHot(score, node, cfg) {
			continue
		}
		components = append(components, growShortComponent(g, short, assigned, node))
	}

	numLocs := int(idx.NumLocations())
	var inCC bitset.BitSet
	for _, comp := range components {
		for node := range comp.nodes {
			ln := g.Node(node).Len()
			for off := 0; off < ln; off++ {
				inCC.Set(uint(idx.Compress(NodePos{Node: node, Offset: off})))
			}
		}
		for _, in := range comp.incoming {
			ln := g.Node(in).Len()
			start := ln - (k - 1)
			if start < 0 {
				start = 0
			}
			for off := start; off < ln; off++ {
				inCC.Set(uint(idx.Compress(NodePos{Node: in, Offset: off})))
			}
		}
	}

	var ccStarts, nonCCStarts []Loc
	for l := 0; l < numLocs; l++ {
		if inCC.Test(uint(l)) {
			ccStarts = append(ccStarts, Loc(l))
		} else {
			nonCCStarts = append(nonCCStarts, Loc(l))
		}
	}

	return &ComplexityWalker{ccStarts: ccStarts, nonCCStarts: nonCCStarts, components: components}
}

// growShortComponent runs a 2-way BFS (following both ForwardFrom and
// BackwardFrom) over the short-node subgraph starting at start, marking
// every short node it reaches as assigned so a later hotspot in the same
// region doesn't re-grow it as a separate component.
func growShortComponent(g graph.Graph, short []bool, assigned []bool, start graph.NodeID) complexityComponent {
	comp := complexityComponent{nodes: map[graph.NodeID]bool{start: true}}
	incomingSet := map[graph.NodeID]bool{}
	outgoingSet := map[graph.NodeID]bool{}

	assigned[start] = true
	queue := []graph.NodeID{start}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		for _, nb := range g.ForwardFrom(node) {
			if !short[nb.Node] {
				outgoingSet[nb.Node] = true
				continue
			}
			if !assigned[nb.Node] {
				assigned[nb.Node] = true
				comp.nodes[nb.Node] = true
				queue = append(queue, nb.Node)
			}
		}
		for _, nb := range g.BackwardFrom(node) {
			if !short[nb.Node] {
				incomingSet[nb.Node] = true
				continue
			}
			if !assigned[nb.Node] {
				assigned[nb.Node] = true
				comp.nodes[nb.Node] = true
				queue = append(queue, nb.Node)
			}
		}
	}

	comp.incoming = sortedNodeIDs(incomingSet)
	comp.outgoing = sortedNodeIDs(outgoingSet)
	return comp
}

func sortedNodeIDs(set map[graph.NodeID]bool) []graph.NodeID {
	out := make([]graph.NodeID, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// CCStarts returns every letter location that belongs to a complexity
// component, or to the last K-1 letters of a node feeding into one.
func (cw *ComplexityWalker) CCStarts() []Loc { return cw.ccStarts }

// NonCCStarts returns every letter location CCStarts doesn't.
func (cw *ComplexityWalker) NonCCStarts() []Loc { return cw.nonCCStarts }
