package compactvec

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	for _, bits := range []uint{1, 3, 5, 8, 13, 31, 63, 64} {
		bits := bits
		t.Run("", func(t *testing.T) {
			mask := uint64(1)<<bits - 1
			if bits == 64 {
				mask = ^uint64(0)
			}
			n := 200
			xs := make([]uint64, n)
			for i := range xs {
				xs[i] = uint64(rand.Int63()) & mask
			}
			v := FromSlice(bits, xs)
			require.Equal(t, xs, v.AsSlice())
			for i, x := range xs {
				require.Equal(t, x, v.Get(i))
			}
		})
	}
}

func TestSortInPlace(t *testing.T) {
	xs := []uint64{9, 3, 7, 1, 8, 2, 0, 15, 4}
	v := FromSlice[uint64](4, xs)
	sort.Sort(SortInterface(v, func(a, b uint64) bool { return a < b }))
	got := v.AsSlice()
	require.True(t, sort.SliceIsSorted(got, func(i, j int) bool { return got[i] < got[j] }))
	want := append([]uint64(nil), xs...)
	sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })
	require.Equal(t, want, got)
}

func TestSwap(t *testing.T) {
	v := FromSlice[uint64](8, []uint64{1, 2, 3})
	v.Swap(0, 2)
	require.Equal(t, []uint64{3, 2, 1}, v.AsSlice())
}
