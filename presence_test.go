package triegraph

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/triegraph/triegraph/kmer"
)

func TestPresenceMarkLeafAncestorChain(t *testing.T) {
	s, err := kmer.NewDefaultSettings(3)
	require.NoError(t, err)
	p := NewPresence(s)

	km := s.Empty().Push(1).Push(2).Push(0)
	require.True(t, km.IsComplete())
	p.MarkLeaf(km)

	// Every ancestor, including the root, must be present.
	cur := km
	for {
		require.True(t, p.Test(cur.Compress()), "ancestor at size %d not marked", cur.Size())
		if cur.Size() == 0 {
			break
		}
		cur = cur.Parent()
	}
}

func TestPresenceChildrenOnlyReflectsMarked(t *testing.T) {
	s, err := kmer.NewDefaultSettings(2)
	require.NoError(t, err)
	p := NewPresence(s)

	p.MarkLeaf(s.Empty().Push(0).Push(1))
	p.MarkLeaf(s.Empty().Push(0).Push(2))

	root := s.Empty().Compress()
	afterA := s.Empty().Push(0).Compress()

	children := p.Children(root)
	require.Len(t, children, 1)
	require.Equal(t, uint8(0), children[0].Letter)
	require.Equal(t, afterA, children[0].Compressed)

	grandchildren := p.Children(afterA)
	require.Len(t, grandchildren, 2)
}

func TestPresenceCount(t *testing.T) {
	s, err := kmer.NewDefaultSettings(2)
	require.NoError(t, err)
	p := NewPresence(s)
	require.Equal(t, uint64(0), p.Count())

	p.MarkLeaf(s.Empty().Push(0).Push(1))
	// root + depth-1 node + leaf = 3 distinct present indices.
	require.Equal(t, uint64(3), p.Count())
}
