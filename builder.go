package triegraph

import (
	"time"

	"github.com/triegraph/triegraph/graph"
	"github.com/triegraph/triegraph/kmer"
)

// Algo names one of the four trie-construction strategies. They all produce
// the same (k-mer, location) occurrence set; they differ in traversal order
// and how much per-location work is shared, which is what makes some of them
// cheap on low-complexity graph regions and others necessary on the rest
// (see complexity.go/ccwalker.go for how a build picks between them).
type Algo int

const (
	// AlgoLBFS (location-BFS) seeds an empty k-mer at every location and
	// drives a worklist across locations, keeping one live set of distinct
	// partial k-mers per location so that an arrival already seen there is
	// dropped instead of re-walked (see builder_lbfs.go).
	AlgoLBFS Algo = iota
	// AlgoBT (back-track) walks forward from every start location in turn,
	// recursing through every outgoing path with one Kmer window per walk
	// and no memo shared between start locations; duplicate pairs are left
	// for the later sort+unique to remove.
	AlgoBT
	// AlgoPBFS (point-BFS) processes the graph in topological waves,
	// carrying one in-flight Kmer per frontier point and merging frontiers
	// that land on the same node, so converging paths share work.
	AlgoPBFS
	// AlgoNBFS (node-BFS) visits nodes in BFS order from the source nodes
	// and, on each node's first visit, extends a fresh k-mer from every one
	// of its offsets; no partial k-mers are carried between nodes.
	AlgoNBFS
)

func (a Algo) String() string {
	switch a {
	case AlgoLBFS:
		return "lbfs"
	case AlgoBT:
		return "bt"
	case AlgoPBFS:
		return "pbfs"
	case AlgoNBFS:
		return "nbfs"
	default:
		return "unknown"
	}
}

// BuildResult is everything a trie-construction algorithm produces: the
// presence bitset (built incrementally as distinct k-mers are discovered)
// and the flat hit list later folded into TrieData's dense multimaps.
type buildResult struct {
	presence *Presence
	hits     []hit
}

func newBuildResult(s kmer.Settings) *buildResult {
	return &buildResult{presence: NewPresence(s)}
}

func (r *buildResult) emit(km kmer.Kmer, loc Loc) {
	r.presence.MarkLeaf(km)
	r.hits = append(r.hits, hit{leaf: km.CompressLeaf(), loc: loc})
}

// runBuilder dispatches to the requested algorithm and returns the TrieData
// assembled from its output.
func runBuilder(algo Algo, g graph.Graph, idx *LetterLocIndex, s kmer.Settings, mode BuildMode) *TrieData {
	var res *buildResult
	switch algo {
	case AlgoBT:
		res = buildBT(g, idx, s)
	case AlgoPBFS:
		res = buildPBFS(g, idx, s)
	case AlgoNBFS:
		res = buildNBFS(g, idx, s)
	default:
		res = buildLBFS(g, idx, s)
	}
	return buildTrieData(s, res.presence, res.hits, idx.NumLocations(), mode)
}

// BuildTrieGraph constructs a full TrieGraph using algo to enumerate k-mer
// occurrences. Most callers should use BuildTrieGraphAuto instead, which
// mixes algorithms by region complexity.
func BuildTrieGraph(g graph.Graph, s kmer.Settings, algo Algo, mode BuildMode) *TrieGraph {
	idx := BuildLetterLocIndex(g, 0)
	td := runBuilder(algo, g, idx, s, mode)
	return &TrieGraph{graph: g, locs: idx, data: td}
}

// BuildTrieGraphAuto partitions every letter location into cc_starts (inside
// a complexity component ccwalker.go flags) and non_cc_starts (the rest),
// builds algoSlow over cc_starts and algoFast over non_cc_starts, then
// merges the two result sets. The usual choice is a frontier-sharing
// algorithm (PBFS) for algoSlow, since a component is exactly the region
// where many paths converge and sharing work pays off, and a cheap
// independent walk (BT or NBFS) for algoFast elsewhere.
func BuildTrieGraphAuto(g graph.Graph, s kmer.Settings, mode BuildMode, ccCfg ComplexityConfig, algoFast, algoSlow Algo, lbfsCutoff int, pbfsCutEarly uint64) *TrieGraph {
	start := time.Now()
	idx := BuildLetterLocIndex(g, 0)
	score := EstimateComplexity(g, s, ccCfg)
	cw := NewComplexityWalker(g, idx, score, ccCfg, s.K)

	log := logger.WithFields(map[string]any{
		"algo_fast": algoFast,
		"algo_slow": algoSlow,
	})
	log.WithFields(map[string]any{
		"cc_starts":     len(cw.CCStarts()),
		"non_cc_starts": len(cw.NonCCStarts()),
	}).Info("partitioned locations by complexity")

	res := newBuildResult(s)
	mergeInto(res, buildFromLocs(algoSlow, g, idx, s, cw.CCStarts(), lbfsCutoff, pbfsCutEarly))
	mergeInto(res, buildFromLocs(algoFast, g, idx, s, cw.NonCCStarts(), lbfsCutoff, pbfsCutEarly))

	td := buildTrieData(s, res.presence, res.hits, idx.NumLocations(), mode)
	log.WithFields(map[string]any{
		"hits":    len(res.hits),
		"elapsed": time.Since(start),
	}).Info("trie-graph build complete")
	return &TrieGraph{graph: g, locs: idx, data: td}
}

// buildFromLocs runs algo restricted to exactly the given start locations,
// rather than every offset of every node.
func buildFromLocs(algo Algo, g graph.Graph, idx *LetterLocIndex, s kmer.Settings, locs []Loc, lbfsCutoff int, pbfsCutEarly uint64) *buildResult {
	switch algo {
	case AlgoPBFS:
		return buildPBFSFromLocs(g, idx, s, locs, pbfsCutEarly)
	case AlgoNBFS:
		return buildNBFSFromLocs(g, idx, s, locs)
	case AlgoLBFS:
		return buildLBFSFromLocs(g, idx, s, locs, lbfsCutoff)
	default:
		return buildBTFromLocs(g, idx, s, locs)
	}
}

func mergeInto(dst *buildResult, src *buildResult) {
	dst.hits = append(dst.hits, src.hits...)
	dst.presence.unionFrom(src.presence)
}
