package triegraph

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/triegraph/triegraph/dna"
	"github.com/triegraph/triegraph/graph"
	"github.com/triegraph/triegraph/kmer"
)

func buildLinearTrieGraph(t *testing.T, seq string, k int) (*TrieGraph, graph.NodeID) {
	t.Helper()
	b := graph.NewBuilder(dna.DefaultAlphabet)
	n0, err := b.AddNode(seq, "n0")
	require.NoError(t, err)
	g := b.Build()
	s, err := kmer.NewDefaultSettings(k)
	require.NoError(t, err)
	return BuildTrieGraph(g, s, AlgoLBFS, BuildSimple), n0
}

func TestExactShortMatchFindsIndexedKmer(t *testing.T) {
	tg, _ := buildLinearTrieGraph(t, "acgtacgt", 3)
	// "acg" occurs at offset 0: letters a=0 c=1 g=2
	h, matched := tg.ExactShortMatch([]uint8{0, 1, 2})
	require.Equal(t, 3, matched)
	require.True(t, h.IsValid())
}

func TestExactShortMatchStopsOnMismatch(t *testing.T) {
	tg, _ := buildLinearTrieGraph(t, "acgtacgt", 3)
	// 'a','c' match, then a letter ('t' encoded 3) that isn't 'g' (2):
	// no occurrence of "act" in "acgtacgt", so the match stops short of 3.
	_, matched := tg.ExactShortMatch([]uint8{0, 1, 3})
	require.Less(t, matched, 3)
}

func TestNextMatchManyPastTheIndexedPrefix(t *testing.T) {
	tg, _ := buildLinearTrieGraph(t, "acgtacgt", 3)
	// Beyond the indexed k-mer prefix, NextMatchMany should fall through to
	// graph handles and keep matching "acgt" exactly.
	path := tg.NextMatchMany(tg.RootHandle(), []uint8{0, 1, 2, 3})
	require.Len(t, path, 5) // root + 4 matched letters
	require.True(t, path[len(path)-1].IsGraph())
}

func TestPrevGraphHandlesWithinNode(t *testing.T) {
	tg, n0 := buildLinearTrieGraph(t, "acgt", 2)
	loc := tg.locs.Compress(NodePos{Node: n0, Offset: 2})
	prev := tg.PrevGraphHandles(GraphHandleOf(loc))
	require.Len(t, prev, 1)
	require.Equal(t, loc-1, prev[0].Loc)
}

func TestPrevGraphHandlesAtNodeBoundary(t *testing.T) {
	b := graph.NewBuilder(dna.DefaultAlphabet)
	n0, _ := b.AddNode("ac", "n0")
	n1, _ := b.AddNode("gt", "n1")
	b.AddEdge(n0, n1)
	g := b.Build()
	s, err := kmer.NewDefaultSettings(2)
	require.NoError(t, err)
	tg := BuildTrieGraph(g, s, AlgoLBFS, BuildSimple)

	loc := tg.locs.Compress(NodePos{Node: n1, Offset: 0})
	prev := tg.PrevGraphHandles(GraphHandleOf(loc))
	require.Len(t, prev, 1)
	require.Equal(t, tg.locs.Compress(NodePos{Node: n0, Offset: 1}), prev[0].Loc)
}

func TestPrevTrieHandlesUpToRoot(t *testing.T) {
	tg, _ := buildLinearTrieGraph(t, "acgt", 2)
	s := tg.Settings()
	oneLetter := s.Empty().Push(0)       // "a"
	twoLetters := oneLetter.Push(1)      // "ac"
	h := TrieHandleOf(twoLetters.Compress())

	parent := tg.PrevTrieHandles(h)
	require.Len(t, parent, 1)
	require.Equal(t, TrieHandleOf(oneLetter.Compress()), parent[0])

	grandparent := tg.PrevTrieHandles(parent[0])
	require.Len(t, grandparent, 1)
	require.Equal(t, tg.RootHandle(), grandparent[0])

	require.Empty(t, tg.PrevTrieHandles(tg.RootHandle()))
}

func TestReverseRoundTrips(t *testing.T) {
	b := graph.NewBuilder(dna.DefaultAlphabet)
	n0, _ := b.AddNode("acgt", "n0")
	g := b.Build()
	tg2 := graph.WithTwins(g, dna.DefaultAlphabet)
	s, err := kmer.NewDefaultSettings(2)
	require.NoError(t, err)
	tg := BuildTrieGraph(tg2, s, AlgoLBFS, BuildSimple)

	loc := tg.locs.Compress(NodePos{Node: n0, Offset: 0})
	h := GraphHandleOf(loc)
	back := tg.Reverse(tg.Reverse(h))
	require.Equal(t, h, back)
}
