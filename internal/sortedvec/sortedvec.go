// Package sortedvec implements a sorted vector: a non-decreasing integer
// sequence encoded as periodic beacons plus small per-step diffs,
// with overflow diffs spilled to a map. It supports O(1)-ish random access
// (a divmod into the beacon array plus a short walk of diffs) and binary
// search to invert the sequence.
package sortedvec

import (
	"sort"

	"github.com/triegraph/triegraph/internal/compactvec"
)

// DefaultStride is the beacon spacing used when callers don't pick one.
const DefaultStride = 64

// DiffBits is the width of a stored diff; values that don't fit spill into
// the overflow map keyed by absolute index.
const DiffBits = 16

const maxDiff = 1<<DiffBits - 1

// Vector is an immutable-after-Build, non-decreasing sequence of uint64.
type Vector struct {
	stride   int
	beacons  []uint64
	diffs    *compactvec.Vector[uint64]
	overflow map[int]uint64
	n        int
}

// Build packs the non-decreasing sequence xs into a Vector with the given
// beacon stride (DefaultStride if stride <= 0).
func Build(xs []uint64, stride int) *Vector {
	if stride <= 0 {
		stride = DefaultStride
	}
	v := &Vector{
		stride:   stride,
		n:        len(xs),
		diffs:    compactvec.New[uint64](DiffBits),
		overflow: make(map[int]uint64),
	}
	v.diffs.Reserve(len(xs))

	var prev uint64
	for i, x := range xs {
		if i%stride == 0 {
			v.beacons = append(v.beacons, x)
			v.diffs.Push(0)
		} else {
			d := x - prev
			if d > maxDiff {
				v.diffs.Push(0)
				v.overflow[i] = d
			} else {
				v.diffs.Push(d)
			}
		}
		prev = x
	}
	return v
}

// Len returns the number of elements encoded.
func (v *Vector) Len() int { return v.n }

// Get returns the value at index i by walking forward from the nearest
// beacon at or before i, summing diffs (and overflow entries) along the way.
func (v *Vector) Get(i int) uint64 {
	beaconIdx := i / v.stride
	val := v.beacons[beaconIdx]
	start := beaconIdx * v.stride
	for j := start + 1; j <= i; j++ {
		if d, ok := v.overflow[j]; ok {
			val += d
		} else {
			val += v.diffs.Get(j)
		}
	}
	return val
}

// IsZeroDiff reports whether element i equals element i-1 (used by dense
// multimaps to test "does key i own any elements?" without a full Get).
func (v *Vector) IsZeroDiff(i int) bool {
	if i == 0 {
		return false
	}
	if i%v.stride == 0 {
		return v.Get(i) == v.Get(i-1)
	}
	if d, ok := v.overflow[i]; ok {
		return d == 0
	}
	return v.diffs.Get(i) == 0
}

// BinarySearch returns the unique i such that v.Get(i) <= target < v.Get(i+1).
// The vector must be non-decreasing and target must lie within [v.Get(0),
// v.Get(n-1)).
func (v *Vector) BinarySearch(target uint64) int {
	return sort.Search(v.n, func(i int) bool {
		return v.Get(i) > target
	}) - 1
}

// AsSlice decodes the full sequence.
func (v *Vector) AsSlice() []uint64 {
	out := make([]uint64, v.n)
	for i := range out {
		out[i] = v.Get(i)
	}
	return out
}
