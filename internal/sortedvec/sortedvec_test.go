package sortedvec

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func nonDecreasing(n int, maxStep uint64) []uint64 {
	xs := make([]uint64, n)
	var cur uint64
	for i := range xs {
		cur += uint64(rand.Intn(int(maxStep) + 1))
		xs[i] = cur
	}
	return xs
}

func TestRoundTrip(t *testing.T) {
	for _, stride := range []int{1, 4, 16, 64} {
		xs := nonDecreasing(300, 5)
		v := Build(xs, stride)
		require.Equal(t, xs, v.AsSlice())
	}
}

func TestRoundTripWithOverflow(t *testing.T) {
	xs := nonDecreasing(100, 1<<20) // forces overflow spills
	v := Build(xs, 8)
	require.Equal(t, xs, v.AsSlice())
}

func TestBinarySearch(t *testing.T) {
	xs := []uint64{0, 0, 2, 2, 2, 5, 9, 9, 20}
	v := Build(xs, 4)
	for target := uint64(0); target < 20; target++ {
		i := v.BinarySearch(target)
		require.True(t, i >= 0 && i < v.Len())
		require.True(t, v.Get(i) <= target)
		if i+1 < v.Len() {
			require.True(t, v.Get(i+1) > target)
		}
	}
}

func TestIsZeroDiff(t *testing.T) {
	xs := []uint64{0, 0, 1, 1, 1, 4}
	v := Build(xs, 4)
	want := []bool{false, true, false, true, true, false}
	for i, w := range want {
		require.Equal(t, w, v.IsZeroDiff(i), "index %d", i)
	}
}
