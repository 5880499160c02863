package bitset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitSetSetTest(t *testing.T) {
	var b BitSet

	require.False(t, b.Test(0))
	require.False(t, b.Test(200))

	b.Set(0)
	b.Set(63)
	b.Set(64)
	b.Set(200)

	require.True(t, b.Test(0))
	require.True(t, b.Test(63))
	require.True(t, b.Test(64))
	require.True(t, b.Test(200))
	require.False(t, b.Test(1))
	require.False(t, b.Test(199))
	require.False(t, b.Test(201))
}

func TestBitSetGrowsOnSet(t *testing.T) {
	var b BitSet
	require.Len(t, b, 0)

	b.Set(500)
	require.True(t, b.Test(500))
	require.GreaterOrEqual(t, len(b), wordsNeeded(500))
}
