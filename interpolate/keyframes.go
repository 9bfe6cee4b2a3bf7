package interpolate

import (
	"fmt"
	"sort"
)

// Keyframes is a piecewise linear schedule over strictly increasing knots.
// Evaluations outside of the knot range return the first or last value.
type Keyframes struct {
	ts, vals []float64
}

// NewKeyframes creates a schedule where the animation parameter ts[i] maps
// to vals[i]. ts must be strictly increasing and must not be modified
// throughout the lifetime of the Keyframes.
func NewKeyframes(ts, vals []float64) (*Keyframes, error) {
	if len(ts) != len(vals) {
		return nil, fmt.Errorf(
			"Keyframes given len(ts) = %d but len(vals) = %d.", len(ts), len(vals),
		)
	} else if len(ts) == 0 {
		return nil, fmt.Errorf("Keyframes given an empty table.")
	}
	for i := 1; i < len(ts); i++ {
		if !(ts[i-1] < ts[i]) {
			return nil, &DomainError{T0: ts[i-1], T1: ts[i]}
		}
	}
	return &Keyframes{ts: ts, vals: vals}, nil
}

// Eval returns the scheduled value at t.
func (kf *Keyframes) Eval(t float64) float64 {
	n := len(kf.ts)
	if t <= kf.ts[0] {
		return kf.vals[0]
	} else if t >= kf.ts[n-1] {
		return kf.vals[n-1]
	}

	// Index of the first knot strictly above t; always in [1, n-1] here.
	hi := sort.Search(n, func(i int) bool { return kf.ts[i] > t })
	lo := hi - 1
	return MustLerpClamped(kf.vals[lo], kf.vals[hi], t, kf.ts[lo], kf.ts[hi])
}

// EvalAll evaluates the schedule at all the given t values. If an output
// array is given, the output is written to that array (the array is still
// returned as a convenience).
func (kf *Keyframes) EvalAll(ts []float64, out ...[]float64) []float64 {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(ts))}
	}
	for i, t := range ts {
		out[0][i] = kf.Eval(t)
	}
	return out[0]
}
