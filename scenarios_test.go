package triegraph

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/triegraph/triegraph/dna"
	"github.com/triegraph/triegraph/graph"
	"github.com/triegraph/triegraph/kmer"
)

// kmerString decodes a leaf-local compressed index back to its letters, for
// readable assertions against expected (kmer, loc) pairs.
func kmerString(s kmer.Settings, leaf uint64) string {
	km := s.FromCompressedLeaf(leaf)
	out := make([]byte, 0, km.Size())
	for _, l := range km.Letters() {
		out = append(out, dna.Letter(l).ToByte())
	}
	return string(out)
}

type expectedPair struct {
	kmer string
	loc  Loc
}

func collectPairs(t *testing.T, g graph.Graph, s kmer.Settings) []expectedPair {
	idx := BuildLetterLocIndex(g, 0)
	res := buildLBFS(g, idx, s)
	out := make([]expectedPair, len(res.hits))
	for i, h := range res.hits {
		out[i] = expectedPair{kmer: kmerString(s, h.leaf), loc: h.loc}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].kmer != out[j].kmer {
			return out[i].kmer < out[j].kmer
		}
		return out[i].loc < out[j].loc
	})
	return out
}

func requirePairs(t *testing.T, g graph.Graph, s kmer.Settings, want []expectedPair) {
	t.Helper()
	sort.Slice(want, func(i, j int) bool {
		if want[i].kmer != want[j].kmer {
			return want[i].kmer < want[j].kmer
		}
		return want[i].loc < want[j].loc
	})
	got := collectPairs(t, g, s)
	require.Equal(t, want, got)
}

// Scenario 1: a single linear node, K=4.
func TestScenarioLinearNodeFourMers(t *testing.T) {
	b := graph.NewBuilder(dna.DefaultAlphabet)
	_, err := b.AddNode("acgtacgtac", "")
	require.NoError(t, err)
	g := b.Build()

	s, err := kmer.NewDefaultSettings(4)
	require.NoError(t, err)

	requirePairs(t, g, s, []expectedPair{
		{"acgt", 4}, {"acgt", 8},
		{"cgta", 5}, {"cgta", 9},
		{"gtac", 6}, {"gtac", 10},
		{"tacg", 7},
	})
}

// Scenario 2: a small DAG with a single merge point, K=4.
func TestScenarioSmallDAGFourMers(t *testing.T) {
	b := graph.NewBuilder(dna.DefaultAlphabet)
	s1, err := b.AddNode("a", "s1")
	require.NoError(t, err)
	s2, err := b.AddNode("cg", "s2")
	require.NoError(t, err)
	s3, err := b.AddNode("t", "s3")
	require.NoError(t, err)
	s4, err := b.AddNode("ac", "s4")
	require.NoError(t, err)
	b.AddEdge(s1, s2)
	b.AddEdge(s1, s3)
	b.AddEdge(s2, s4)
	b.AddEdge(s3, s4)
	g := b.Build()

	settings, err := kmer.NewDefaultSettings(4)
	require.NoError(t, err)

	requirePairs(t, g, settings, []expectedPair{
		{"acga", 5},
		{"atac", 6},
		{"cgac", 6},
	})
}

// Scenario 3: multiple dead ends closed off by synthesized extend sinks,
// K=4.
func TestScenarioMultipleEndsWithExtendSinks(t *testing.T) {
	b := graph.NewBuilder(dna.DefaultAlphabet)
	s1, err := b.AddNode("acg", "s1")
	require.NoError(t, err)
	s2, err := b.AddNode("c", "s2")
	require.NoError(t, err)
	s3, err := b.AddNode("g", "s3")
	require.NoError(t, err)
	b.AddEdge(s1, s2)
	b.AddEdge(s1, s3)
	g := graph.WithExtendSinks(b.Build(), dna.DefaultAlphabet, dna.A)

	settings, err := kmer.NewDefaultSettings(4)
	require.NoError(t, err)

	requirePairs(t, g, settings, []expectedPair{
		{"acgc", 5},
		{"acgg", 6},
	})
}

// Scenario 4: the trie-inner edit-edge block out of "cg" (K=3) with children
// reachable at C and G only, enumerated over sigma=4.
func TestScenarioTrieInnerEditEdgeCount(t *testing.T) {
	b := graph.NewBuilder(dna.DefaultAlphabet)
	s1, err := b.AddNode("cg", "s1")
	require.NoError(t, err)
	s2, err := b.AddNode("c", "s2")
	require.NoError(t, err)
	s3, err := b.AddNode("g", "s3")
	require.NoError(t, err)
	b.AddEdge(s1, s2)
	b.AddEdge(s1, s3)
	g := b.Build()

	s, err := kmer.NewDefaultSettings(3)
	require.NoError(t, err)

	tg := BuildTrieGraph(g, s, AlgoLBFS, BuildSimple)

	cg := s.Empty().Push(uint8(dna.C)).Push(uint8(dna.G))
	h := TrieHandleOf(cg.Compress())

	edges := tg.NextEditEdges(h)
	require.Len(t, edges, 14)

	var matches, subs, dels, inss int
	for _, e := range edges {
		switch e.Kind {
		case EditMatch:
			matches++
		case EditSub:
			subs++
		case EditDel:
			dels++
		case EditIns:
			inss++
		}
	}
	require.Equal(t, 2, matches) // one per present child: 'c' and 'g'
	require.Equal(t, 6, subs)    // 3 non-matching letters per present child
	require.Equal(t, 2, dels)    // one per present child
	require.Equal(t, 4, inss)    // one sigma-wide block, letter only, no branching

	cgc := cg.Push(uint8(dna.C))
	cgg := cg.Push(uint8(dna.G))
	wantTargets := map[uint64]bool{cgc.Compress(): false, cgg.Compress(): false}
	for _, e := range edges {
		if e.Kind == EditMatch || e.Kind == EditSub || e.Kind == EditDel {
			require.True(t, e.To.IsTrie())
			_, ok := wantTargets[e.To.TrieIdx]
			require.True(t, ok, "unexpected edit-edge target %d", e.To.TrieIdx)
		}
		if e.Kind == EditIns {
			require.Equal(t, h, e.To)
		}
	}
}

// BuildDualDense and BuildZeroOverhead must answer every lookup identically
// to BuildSimple; they only change how much pair storage is live at once
// during construction.
func TestBuildModesAgree(t *testing.T) {
	b := graph.NewBuilder(dna.DefaultAlphabet)
	s1, err := b.AddNode("a", "s1")
	require.NoError(t, err)
	s2, err := b.AddNode("cg", "s2")
	require.NoError(t, err)
	s3, err := b.AddNode("t", "s3")
	require.NoError(t, err)
	s4, err := b.AddNode("ac", "s4")
	require.NoError(t, err)
	b.AddEdge(s1, s2)
	b.AddEdge(s1, s3)
	b.AddEdge(s2, s4)
	b.AddEdge(s3, s4)
	g := b.Build()

	settings, err := kmer.NewDefaultSettings(4)
	require.NoError(t, err)

	simple := BuildTrieGraph(g, settings, AlgoLBFS, BuildSimple)
	idx := BuildLetterLocIndex(g, 0)

	for _, mode := range []BuildMode{BuildDualDense, BuildZeroOverhead} {
		got := BuildTrieGraph(g, settings, AlgoLBFS, mode)

		require.Equal(t, simple.Data().Presence().Count(), got.Data().Presence().Count(), "mode %v", mode)

		for l := Loc(0); l < idx.NumLocations(); l++ {
			wantLeaf, wantOK := simple.Data().LeafAtLoc(l)
			gotLeaf, gotOK := got.Data().LeafAtLoc(l)
			require.Equal(t, wantOK, gotOK, "mode %v loc %d", mode, l)
			if wantOK {
				require.Equal(t, wantLeaf, gotLeaf, "mode %v loc %d", mode, l)
			}
		}
		for leaf := uint64(0); leaf < settings.NumLeaves(); leaf++ {
			require.ElementsMatch(t, simple.Data().LocsForLeaf(leaf), got.Data().LocsForLeaf(leaf), "mode %v leaf %d", mode, leaf)
		}
	}
}

// Two parallel nodes ("ca" and "ca") both feeding a shared successor "g"
// complete the same k-mer at the same location from two different walks;
// trie2graph/graph2trie must still come out deduplicated, not carrying two
// copies of the same (kmer, loc) pair.
func TestDuplicateCompletionsAreDeduplicated(t *testing.T) {
	b := graph.NewBuilder(dna.DefaultAlphabet)
	p, err := b.AddNode("ca", "p")
	require.NoError(t, err)
	q, err := b.AddNode("ca", "q")
	require.NoError(t, err)
	r, err := b.AddNode("g", "r")
	require.NoError(t, err)
	b.AddEdge(p, r)
	b.AddEdge(q, r)
	g := b.Build()

	s, err := kmer.NewDefaultSettings(2)
	require.NoError(t, err)

	idx := BuildLetterLocIndex(g, 0)
	rLoc := idx.Compress(NodePos{Node: r, Offset: 0})

	for _, mode := range []BuildMode{BuildSimple, BuildDualDense, BuildZeroOverhead} {
		tg := BuildTrieGraph(g, s, AlgoLBFS, mode)

		ca := s.Empty().Push(uint8(dna.C)).Push(uint8(dna.A))
		locs := tg.Data().LocsForLeaf(ca.CompressLeaf())
		require.Equal(t, []Loc{rLoc}, locs, "mode %v: trie2graph must not carry a duplicate (ca, rLoc) pair", mode)

		leaf, ok := tg.Data().LeafAtLoc(rLoc)
		require.True(t, ok, "mode %v", mode)
		require.Equal(t, ca.CompressLeaf(), leaf, "mode %v", mode)
	}
}

// Scenario 6: exact short match against the scenario 2 DAG.
func TestScenarioExactShortMatchOnDAG(t *testing.T) {
	b := graph.NewBuilder(dna.DefaultAlphabet)
	s1, err := b.AddNode("a", "s1")
	require.NoError(t, err)
	s2, err := b.AddNode("cg", "s2")
	require.NoError(t, err)
	s3, err := b.AddNode("t", "s3")
	require.NoError(t, err)
	s4, err := b.AddNode("ac", "s4")
	require.NoError(t, err)
	b.AddEdge(s1, s2)
	b.AddEdge(s1, s3)
	b.AddEdge(s2, s4)
	b.AddEdge(s3, s4)
	g := b.Build()

	settings, err := kmer.NewDefaultSettings(4)
	require.NoError(t, err)

	tg := BuildTrieGraph(g, settings, AlgoLBFS, BuildSimple)

	h, matched := tg.ExactShortMatch([]uint8{uint8(dna.A), uint8(dna.C), uint8(dna.G)})
	require.Equal(t, 3, matched)
	require.True(t, h.IsValid())
	require.True(t, h.IsTrie())

	_, matched = tg.ExactShortMatch([]uint8{uint8(dna.T), uint8(dna.T), uint8(dna.T)})
	require.Less(t, matched, 3)
}
