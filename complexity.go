package triegraph

import (
	"github.com/triegraph/triegraph/graph"
	"github.com/triegraph/triegraph/kmer"
)

// ComplexityConfig tunes the complexity estimator and the hot/cold split it
// feeds to ccwalker.go.
type ComplexityConfig struct {
	// Cutoff is the ends[n] value above which a location is a hotspot seed
	// for a complexity component (config key cc-cutoff).
	Cutoff uint64
	// BackedgeInit seeds every node's score before the capped back-edge
	// relaxation pass runs on a cyclic graph (config key cc-backedge-init).
	BackedgeInit uint64
	// BackedgeMaxTrav bounds how many relaxation passes the back-edge
	// fallback runs (config key cc-backedge-max-trav).
	BackedgeMaxTrav int
}

// DefaultComplexityConfig picks a cutoff scaled to the alphabet: a location
// with more live extensions than 4 branches' worth is a hotspot.
func DefaultComplexityConfig(s kmer.Settings) ComplexityConfig {
	return ComplexityConfig{
		Cutoff:          4 * uint64(s.AlphabetSize()),
		BackedgeInit:    1,
		BackedgeMaxTrav: 2,
	}
}

// complexityCap bounds every estimate so a long run of converging branches
// can't overflow; it only needs to be comfortably above any realistic
// Cutoff.
const complexityCap = uint64(1) << 32

// ComplexityScore is the per-node starts/ends pair EstimateComplexity
// produces. starts[n] upper-bounds the number of distinct k-mers that could
// be anchored starting at node n's first letter; ends[n] upper-bounds the
// number that could complete ending at n's last letter. Between them they
// say which direction a node's letters are "busy" in, which is what
// ccwalker.go needs to decide a component's hotspot seeds and boundary.
type ComplexityScore struct {
	Starts map[graph.NodeID]uint64
	Ends   map[graph.NodeID]uint64
}

// EstimateComplexity computes starts and ends via two topological sweeps:
// starts[n] = max(1, sum of starts[m] for m in succ(n)), evaluated in
// reverse topological order so every successor is already final; ends[n] is
// the symmetric sweep over predecessors in forward topological order. On a
// cyclic graph, where no topological order exists, both sweeps fall back to
// a capped relaxation: every node is seeded at cfg.BackedgeInit and the sum
// is recomputed over all edges for cfg.BackedgeMaxTrav rounds, which bounds
// the work without requiring a DAG.
func EstimateComplexity(g graph.Graph, s kmer.Settings, cfg ComplexityConfig) ComplexityScore {
	order := g.TopoOrder()

	var starts, ends map[graph.NodeID]uint64
	if order != nil {
		starts = acyclicSweep(g, reversed(order), g.ForwardFrom)
		ends = acyclicSweep(g, order, g.BackwardFrom)
	} else {
		starts = cyclicSweep(g, cfg, g.ForwardFrom)
		ends = cyclicSweep(g, cfg, g.BackwardFrom)
	}
	return ComplexityScore{Starts: starts, Ends: ends}
}

func acyclicSweep(g graph.Graph, order []graph.NodeID, next func(graph.NodeID) []graph.Neighbor) map[graph.NodeID]uint64 {
	score := make(map[graph.NodeID]uint64, g.NumNodes())
	for _, node := range order {
		nbs := next(node)
		if len(nbs) == 0 {
			score[node] = 1
			continue
		}
		var sum uint64
		for _, nb := range nbs {
			sum += score[nb.Node]
		}
		if sum > complexityCap {
			sum = complexityCap
		}
		score[node] = sum
	}
	return score
}

func cyclicSweep(g graph.Graph, cfg ComplexityConfig, next func(graph.NodeID) []graph.Neighbor) map[graph.NodeID]uint64 {
	n := g.NumNodes()
	score := make(map[graph.NodeID]uint64, n)
	for id := 0; id < n; id++ {
		score[graph.NodeID(id)] = cfg.BackedgeInit
	}
	for pass := 0; pass < cfg.BackedgeMaxTrav; pass++ {
		next2 := make(map[graph.NodeID]uint64, n)
		for id := 0; id < n; id++ {
			node := graph.NodeID(id)
			nbs := next(node)
			if len(nbs) == 0 {
				if score[node] < 1 {
					next2[node] = 1
				} else {
					next2[node] = score[node]
				}
				continue
			}
			var sum uint64
			for _, nb := range nbs {
				sum += score[nb.Node]
			}
			if sum > complexityCap {
				sum = complexityCap
			}
			next2[node] = sum
		}
		score = next2
	}
	return score
}

func reversed(order []graph.NodeID) []graph.NodeID {
	out := make([]graph.NodeID, len(order))
	for i, n := range order {
		out[len(order)-1-i] = n
	}
	return out
}

// IsHot reports whether node's ends score exceeds cfg's cutoff: ends[n] is
// how many distinct k-mers could complete on n's last letter, which is what
// determines whether that location is a hotspot worth anchoring a
// complexity component to.
func IsHot(score ComplexityScore, node graph.NodeID, cfg ComplexityConfig) bool {
	return score.Ends[node] > cfg.Cutoff
}
