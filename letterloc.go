package triegraph

import (
	"fmt"
	"sort"

	"github.com/triegraph/triegraph/graph"
)

// NodePos is the pair (node, offset) naming one letter in the graph.
type NodePos struct {
	Node   graph.NodeID
	Offset int
}

// Less gives NodePos a lexicographic order: node first, then offset.
func (p NodePos) Less(o NodePos) bool {
	if p.Node != o.Node {
		return p.Node < o.Node
	}
	return p.Offset < o.Offset
}

// Loc is a letter-location: a single integer naming a unique (node, offset)
// pair across the whole graph.
type Loc uint64

// LetterLocIndex is the bijection between Loc and NodePos: a prefix-sum of
// per-node lengths (nodeStart), plus an optional skip index that bounds the
// binary search in Expand to O(skipShift).
type LetterLocIndex struct {
	nodeStart []Loc // len = NumNodes+1; nodeStart[n+1]-nodeStart[n] == len(node n)
	numLocs   Loc
	skipShift uint
	skip      []graph.NodeID // skip[L>>skipShift] is a lower bound on the owning node
}

// BuildLetterLocIndex accumulates node_start over g and builds the optional
// skip index at the given shift (0 disables the skip index).
func BuildLetterLocIndex(g graph.Graph, skipShift uint) *LetterLocIndex {
	n := g.NumNodes()
	idx := &LetterLocIndex{nodeStart: make([]Loc, n+1), skipShift: skipShift}
	var acc Loc
	for i := 0; i < n; i++ {
		idx.nodeStart[i] = acc
		acc += Loc(g.Node(graph.NodeID(i)).Len())
	}
	idx.nodeStart[n] = acc
	idx.numLocs = acc

	if skipShift > 0 {
		numBuckets := int(acc>>skipShift) + 1
		idx.skip = make([]graph.NodeID, numBuckets)
		node := 0
		for b := 0; b < numBuckets; b++ {
			l := Loc(b) << skipShift
			for node+1 < n && idx.nodeStart[node+1] <= l {
				node++
			}
			idx.skip[b] = graph.NodeID(node)
		}
	}
	return idx
}

// NumLocations returns N, the total number of letters across all nodes.
func (idx *LetterLocIndex) NumLocations() Loc { return idx.numLocs }

// Compress maps a NodePos to its Loc: node_start[np.node] + np.offset.
func (idx *LetterLocIndex) Compress(np NodePos) Loc {
	return idx.nodeStart[np.Node] + Loc(np.Offset)
}

// loc2node returns the node owning L via upper_bound on nodeStart, minus
// one, optionally narrowed by the skip index.
func (idx *LetterLocIndex) loc2node(l Loc) graph.NodeID {
	lo := 0
	if idx.skip != nil {
		lo = int(idx.skip[l>>idx.skipShift])
	}
	hi := len(idx.nodeStart)
	i := sort.Search(hi-lo, func(i int) bool { return idx.nodeStart[lo+i] > l }) + lo
	return graph.NodeID(i - 1)
}

// Expand maps a Loc back to its unique NodePos.
func (idx *LetterLocIndex) Expand(l Loc) NodePos {
	if l >= idx.numLocs {
		panic(fmt.Sprintf("triegraph: Loc %d out of range [0,%d)", l, idx.numLocs))
	}
	n := idx.loc2node(l)
	return NodePos{Node: n, Offset: int(l - idx.nodeStart[n])}
}

// All iterates every (node, offset) pair in letter-location order.
func (idx *LetterLocIndex) All(yield func(Loc, NodePos) bool) {
	n := graph.NodeID(0)
	for l := Loc(0); l < idx.numLocs; l++ {
		for int(idx.nodeStart[n+1]) <= int(l) {
			n++
		}
		if !yield(l, NodePos{Node: n, Offset: int(l - idx.nodeStart[n])}) {
			return
		}
	}
}

// Reverse returns the NodePos of the same letter on np's reverse-complement
// twin node, assuming the graph was built with WithTwins (twins adjacent:
// np.Node XOR 1).
func (idx *LetterLocIndex) Reverse(np NodePos, g graph.Graph) NodePos {
	twin := np.Node ^ 1
	twinLen := g.Node(twin).Len()
	return NodePos{Node: twin, Offset: twinLen - 1 - np.Offset}
}
