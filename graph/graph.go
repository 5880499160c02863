// Package graph implements the read-only variation-graph adapter consumed by
// the triegraph index: nodes carry DNA strings, edges are stored CSR-style
// (a per-node edge-head index plus a per-edge "next edge at this source"
// link) rather than as node objects linked by pointers. GFA and FASTA
// loading live here too, as the external
// collaborator a runnable index needs a graph to come from.
package graph

import "github.com/triegraph/triegraph/dna"

// NodeID identifies a node; node ids are dense in [0, NumNodes).
type NodeID int

// Edge is one directed arc, CSR-linked via Next (the next edge sharing the
// same source, or -1).
type Edge struct {
	From, To NodeID
	Next     int // index into the owning edge slice, or -1
}

// Neighbor is one step of forward/backward iteration.
type Neighbor struct {
	Node   NodeID
	EdgeID int
}

// Graph is the read-only interface the triegraph core consumes.
type Graph interface {
	NumNodes() int
	Node(id NodeID) dna.View
	ForwardFrom(id NodeID) []Neighbor
	BackwardFrom(id NodeID) []Neighbor
	ForwardEdges() []Edge
	ReverseEdges() []Edge
	// TopoOrder returns a topological order of node ids, or nil if the
	// graph has cycles (construction still proceeds; callers that need a
	// topo order, e.g. the complexity estimator, degrade accordingly).
	TopoOrder() []NodeID
}

const invalidEdge = -1

// AdjacencyGraph is a CSR-backed Graph built via Builder.
type AdjacencyGraph struct {
	nodes      []*dna.PackedString
	fwdEdges   []Edge
	revEdges   []Edge
	fwdStart   []int // per node, index of first outgoing edge, or invalidEdge
	revStart   []int // per node, index of first incoming edge, or invalidEdge
	topoOrder  []NodeID
	topoValid  bool
}

func (g *AdjacencyGraph) NumNodes() int { return len(g.nodes) }

func (g *AdjacencyGraph) Node(id NodeID) dna.View { return g.nodes[id].View() }

func (g *AdjacencyGraph) neighbors(start []int, edges []Edge, id NodeID) []Neighbor {
	var out []Neighbor
	for e := start[id]; e != invalidEdge; e = edges[e].Next {
		out = append(out, Neighbor{Node: edges[e].To, EdgeID: e})
	}
	return out
}

func (g *AdjacencyGraph) ForwardFrom(id NodeID) []Neighbor {
	return g.neighbors(g.fwdStart, g.fwdEdges, id)
}

func (g *AdjacencyGraph) BackwardFrom(id NodeID) []Neighbor {
	return g.neighbors(g.revStart, g.revEdges, id)
}

func (g *AdjacencyGraph) ForwardEdges() []Edge { return g.fwdEdges }
func (g *AdjacencyGraph) ReverseEdges() []Edge { return g.revEdges }

func (g *AdjacencyGraph) TopoOrder() []NodeID {
	if !g.topoValid {
		return nil
	}
	return g.topoOrder
}

// Builder assembles an AdjacencyGraph node-by-node, edge-by-edge: all nodes
// must be added before any edge.
type Builder struct {
	alpha      dna.Alphabet
	nodes      []*dna.PackedString
	fwd        []Edge
	rev        []Edge
	fwdStart   []int
	revStart   []int
	nodesDone  bool
	seg2id     map[string]NodeID
}

// NewBuilder starts a Builder over the given alphabet.
func NewBuilder(alpha dna.Alphabet) *Builder {
	return &Builder{alpha: alpha, seg2id: make(map[string]NodeID)}
}

// AddNode appends a node with the given DNA sequence and optional external
// segment id (for GFA's named segments); returns the assigned NodeID.
func (b *Builder) AddNode(seq string, segID string) (NodeID, error) {
	if len(b.fwd) > 0 || len(b.rev) > 0 {
		panic("graph: can not AddNode after AddEdge")
	}
	ps, err := dna.ParseString(b.alpha, seq)
	if err != nil {
		return 0, err
	}
	id := NodeID(len(b.nodes))
	b.nodes = append(b.nodes, ps)
	b.fwdStart = append(b.fwdStart, invalidEdge)
	b.revStart = append(b.revStart, invalidEdge)
	if segID != "" {
		b.seg2id[segID] = id
	}
	return id, nil
}

// LookupSeg resolves a GFA segment id to its NodeID.
func (b *Builder) LookupSeg(segID string) (NodeID, bool) {
	id, ok := b.seg2id[segID]
	return id, ok
}

// AddEdge records a directed arc from -> to.
func (b *Builder) AddEdge(from, to NodeID) {
	b.nodesDone = true

	fi := len(b.fwd)
	b.fwd = append(b.fwd, Edge{From: from, To: to, Next: b.fwdStart[from]})
	b.fwdStart[from] = fi

	ri := len(b.rev)
	b.rev = append(b.rev, Edge{From: to, To: from, Next: b.revStart[to]})
	b.revStart[to] = ri
}

// Build finalizes the graph, computing a topological order when the graph
// is acyclic.
func (b *Builder) Build() *AdjacencyGraph {
	g := &AdjacencyGraph{
		nodes:    b.nodes,
		fwdEdges: b.fwd,
		revEdges: b.rev,
		fwdStart: b.fwdStart,
		revStart: b.revStart,
	}
	g.topoOrder, g.topoValid = kahnTopoOrder(g)
	return g
}

// kahnTopoOrder computes a topological order via Kahn's algorithm; ok is
// false if the graph has a cycle.
func kahnTopoOrder(g *AdjacencyGraph) (order []NodeID, ok bool) {
	n := g.NumNodes()
	indeg := make([]int, n)
	for _, e := range g.fwdEdges {
		indeg[e.To]++
	}

	queue := make([]NodeID, 0, n)
	for id := 0; id < n; id++ {
		if indeg[id] == 0 {
			queue = append(queue, NodeID(id))
		}
	}

	order = make([]NodeID, 0, n)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)
		for _, nb := range g.ForwardFrom(id) {
			indeg[nb.Node]--
			if indeg[nb.Node] == 0 {
				queue = append(queue, nb.Node)
			}
		}
	}
	return order, len(order) == n
}
