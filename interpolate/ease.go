/*package interpolate contains the easing functions that map an animation
parameter onto scene quantities, along with a keyframe table for piecewise
schedules.

The clamped functions take a window [t0, t1] over which the animation
parameter is remapped to [0, 1]. Outside of that window they return the
matching endpoint exactly.
*/
package interpolate

import (
	"github.com/phil-mansfield/curvature/geom"
)

// Lerp linearly interpolates between a and b. t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Smoothstep interpolates between a and b along the curve t^2 (3 - 2t). t is
// not clamped.
func Smoothstep(a, b, t float64) float64 {
	return Lerp(a, b, t*t*(3-2*t))
}

// window maps t onto [0, 1] over [t0, t1]. ok is false if t lies outside of
// the window, in which case lo reports which side it fell on.
func window(t, t0, t1 float64) (f float64, lo, ok bool, err error) {
	if !(t0 < t1) {
		return 0, false, false, &DomainError{T0: t0, T1: t1}
	}
	if t <= t0 {
		return 0, true, false, nil
	} else if t >= t1 {
		return 1, false, false, nil
	}
	return (t - t0) / (t1 - t0), false, true, nil
}

// LerpClamped returns a for t <= t0, b for t >= t1 and linearly interpolates
// in between. A *DomainError is returned unless t0 < t1.
func LerpClamped(a, b, t, t0, t1 float64) (float64, error) {
	f, lo, ok, err := window(t, t0, t1)
	if err != nil {
		return 0, err
	} else if !ok {
		if lo {
			return a, nil
		}
		return b, nil
	}
	return Lerp(a, b, f), nil
}

// SmoothstepClamped is LerpClamped with the smoothstep curve.
func SmoothstepClamped(a, b, t, t0, t1 float64) (float64, error) {
	f, lo, ok, err := window(t, t0, t1)
	if err != nil {
		return 0, err
	} else if !ok {
		if lo {
			return a, nil
		}
		return b, nil
	}
	return Smoothstep(a, b, f), nil
}

// Lerp3 blends three values across [t1, t3]. The midpoint t2 = (t1 + t3)/2
// splits the window: a1 -> a2 is interpolated over [t1, t2] and a2 -> a3 over
// [t2, t3], and then the two results are themselves interpolated over the
// whole of [t1, t3].
//
// This is not a true piecewise function. The second blend softens the corner
// at t2, and callers depend on the exact shape of the result.
func Lerp3(a1, a2, a3, t, t1, t3 float64) (float64, error) {
	if !(t1 < t3) {
		return 0, &DomainError{T0: t1, T1: t3}
	}
	if t <= t1 {
		return a1, nil
	} else if t >= t3 {
		return a3, nil
	}

	t2 := (t1 + t3) / 2
	x, err := LerpClamped(a1, a2, t, t1, t2)
	if err != nil {
		return 0, err
	}
	y, err := LerpClamped(a2, a3, t, t2, t3)
	if err != nil {
		return 0, err
	}
	return LerpClamped(x, y, t, t1, t3)
}

// MustLerpClamped is LerpClamped for windows known to be valid. It panics on
// a DomainError.
func MustLerpClamped(a, b, t, t0, t1 float64) float64 {
	x, err := LerpClamped(a, b, t, t0, t1)
	if err != nil {
		panic(err.Error())
	}
	return x
}

// MustSmoothstepClamped is SmoothstepClamped for windows known to be valid.
// It panics on a DomainError.
func MustSmoothstepClamped(a, b, t, t0, t1 float64) float64 {
	x, err := SmoothstepClamped(a, b, t, t0, t1)
	if err != nil {
		panic(err.Error())
	}
	return x
}

// LerpVec3 linearly interpolates each component of two vectors.
func LerpVec3(a, b geom.Vec3, t float64) geom.Vec3 {
	return geom.Vec3{Lerp(a[0], b[0], t), Lerp(a[1], b[1], t), Lerp(a[2], b[2], t)}
}
