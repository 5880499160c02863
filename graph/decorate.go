package graph

import "github.com/triegraph/triegraph/dna"

// WithTwins doubles the node set, appending the reverse-complement of every
// node so that node n's twin is n XOR 1 (twins adjacent in id, as Handle's
// Reverse relies on). Edges are mirrored: if u -> v in the original, then
// twin(v) -> twin(u) in the decorated graph.
func WithTwins(g *AdjacencyGraph, alpha dna.Alphabet) *AdjacencyGraph {
	n := g.NumNodes()
	nodes := make([]*dna.PackedString, 0, 2*n)
	for _, ps := range g.nodes {
		nodes = append(nodes, ps)
		nodes = append(nodes, reverseComplement(ps, alpha))
	}

	twin := func(id NodeID) NodeID { return id ^ 1 }

	b := &Builder{alpha: alpha, seg2id: map[string]NodeID{}}
	b.nodes = nodes
	b.fwdStart = make([]int, len(nodes))
	b.revStart = make([]int, len(nodes))
	for i := range b.fwdStart {
		b.fwdStart[i] = invalidEdge
		b.revStart[i] = invalidEdge
	}

	for _, e := range g.fwdEdges {
		u := NodeID(2 * int(e.From))
		v := NodeID(2 * int(e.To))
		b.AddEdge(u, v)
		b.AddEdge(twin(v), twin(u))
	}

	return b.Build()
}

func reverseComplement(ps *dna.PackedString, alpha dna.Alphabet) *dna.PackedString {
	n := ps.Len()
	letters := make([]dna.Letter, n)
	for i := 0; i < n; i++ {
		letters[n-1-i] = complement(ps.At(i))
	}
	return dna.NewPackedString(alpha, letters)
}

func complement(l dna.Letter) dna.Letter {
	switch l {
	case dna.A:
		return dna.T
	case dna.T:
		return dna.A
	case dna.C:
		return dna.G
	case dna.G:
		return dna.C
	default:
		return l // N complements to N
	}
}

// WithExtendSinks appends a single-letter sink node to every node with zero
// successors, so no real node has zero outgoing edges. This avoids the
// zero-successor edit-edge case entirely for graphs built this way.
func WithExtendSinks(g *AdjacencyGraph, alpha dna.Alphabet, sinkLetter dna.Letter) *AdjacencyGraph {
	n := g.NumNodes()
	b := &Builder{alpha: alpha, seg2id: map[string]NodeID{}}
	b.nodes = append(b.nodes, g.nodes...)
	b.fwdStart = append(b.fwdStart, g.fwdStart...)
	b.revStart = append(b.revStart, g.revStart...)

	// Sinks are added before any edge is copied in: Builder refuses AddNode
	// once it holds edges.
	var deadEnds, sinks []NodeID
	for id := 0; id < n; id++ {
		if b.fwdStart[id] == invalidEdge {
			sinkID, _ := b.AddNode(string(sinkLetter.ToByte()), "")
			deadEnds = append(deadEnds, NodeID(id))
			sinks = append(sinks, sinkID)
		}
	}
	b.fwd = append(b.fwd, g.fwdEdges...)
	b.rev = append(b.rev, g.revEdges...)
	for i, id := range deadEnds {
		b.AddEdge(id, sinks[i])
	}
	return b.Build()
}
