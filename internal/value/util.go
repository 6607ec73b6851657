package value

import "golang.org/x/exp/constraints"

// clamp bounds v to [lo, hi]; used by Str.Slice.
func clamp[T constraints.Integer](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
