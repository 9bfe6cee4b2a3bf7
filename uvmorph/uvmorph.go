/*package uvmorph morphs a mesh between a sphere and a flat sheet. Both
surfaces are parametrized over the same (u, v) in [0, 1]^2, so a vertex can
be blended between its two images.

The morph runs on a two-window schedule: the first window carries the mesh
from its start surface to the other one, the mesh holds still there until
the second window starts, and the second window carries it back. With the
default schedule the mesh starts as a sphere and pauses as a plane.
*/
package uvmorph

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/curvature/buffer"
	"github.com/phil-mansfield/curvature/geom"
	"github.com/phil-mansfield/curvature/interpolate"
)

// SphereUV maps (u, v) onto a sphere of radius r. u runs around the equator
// and v runs from the north pole (v = 0) to the south pole (v = 1). The y
// axis points through the poles.
func SphereUV(u, v, r float64) geom.Vec3 {
	theta, phi := v*math.Pi, u*2*math.Pi
	sinT, cosT := math.Sincos(theta)
	sinP, cosP := math.Sincos(phi)
	return geom.Vec3{r * sinT * cosP, r * cosT, r * sinT * sinP}
}

// PlaneUV maps (u, v) onto the flat sheet obtained by unrolling SphereUV
// along the equator: a 2 pi r by pi r rectangle in the z = 0 plane.
func PlaneUV(u, v, r float64) geom.Vec3 {
	return geom.Vec3{(u - 0.5) * 2 * math.Pi * r, (0.5 - v) * math.Pi * r, 0}
}

// Direction says which blend the first window performs. The second window
// performs the reverse blend.
type Direction int

const (
	PlaneToSphere Direction = iota
	SphereToPlane
)

// ParseDirection converts a configuration string into a Direction. The empty
// string gives SphereToPlane.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "PlaneToSphere":
		return PlaneToSphere, nil
	case "", "SphereToPlane":
		return SphereToPlane, nil
	}
	return 0, fmt.Errorf(
		"Direction must be one of [PlaneToSphere | SphereToPlane], '%s' is "+
			"not recognized.", s,
	)
}

// Surfaces returns the surface the schedule starts on and the surface it
// pauses on.
func (d Direction) Surfaces(u, v, r float64) (start, pause geom.Vec3) {
	if d == PlaneToSphere {
		return PlaneUV(u, v, r), SphereUV(u, v, r)
	}
	return SphereUV(u, v, r), PlaneUV(u, v, r)
}

// Schedule describes the two morph windows. Windows must satisfy
// Start1 < End1 <= Start2 < End2, and Hold, the fraction of the morph done
// by the end of the first window, must lie in [0, 1].
type Schedule struct {
	Start1, End1, Start2, End2 float64
	Hold                       float64
	Direction                  Direction
}

// DefaultSchedule flattens the sphere over [0, 0.4], holds the plane, and
// wraps it back into a sphere over [0.6, 1].
func DefaultSchedule() Schedule {
	return Schedule{
		Start1: 0, End1: 0.4, Start2: 0.6, End2: 1,
		Hold: 1, Direction: SphereToPlane,
	}
}

// Validate checks the ordering of the windows.
func (s Schedule) Validate() error {
	if !(s.Start1 < s.End1) {
		return &interpolate.DomainError{T0: s.Start1, T1: s.End1}
	} else if !(s.Start2 < s.End2) {
		return &interpolate.DomainError{T0: s.Start2, T1: s.End2}
	} else if s.End1 > s.Start2 {
		return fmt.Errorf(
			"First morph window ends at %g, after the second starts at %g.",
			s.End1, s.Start2,
		)
	} else if s.Hold < 0 || s.Hold > 1 {
		return fmt.Errorf("Hold must be in the range [0, 1], but is %g.", s.Hold)
	}
	return nil
}

// Weight returns how far the mesh has moved from its start surface towards
// its pause surface at deformation d. It rises from 0 to Hold over the first
// window, stays at Hold between the windows and falls back to 0 over the
// second window.
func (s Schedule) Weight(d float64) (float64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if d <= (s.End1+s.Start2)/2 {
		return interpolate.SmoothstepClamped(0, s.Hold, d, s.Start1, s.End1)
	}
	return interpolate.SmoothstepClamped(s.Hold, 0, d, s.Start2, s.End2)
}

// Morph returns the image of (u, v) at deformation d. At weight 0 the start
// surface is returned exactly, and at weight 1 the pause surface.
func (s Schedule) Morph(d, u, v, r float64) (geom.Vec3, error) {
	w, err := s.Weight(d)
	if err != nil {
		return geom.Vec3{}, err
	}

	start, pause := s.Direction.Surfaces(u, v, r)
	switch {
	case w <= 0:
		return start, nil
	case w >= 1:
		return pause, nil
	}
	return interpolate.LerpVec3(start, pause, w), nil
}

// Mesh builds a wireframe of the morphed surface with segments cells along
// each parameter direction.
func (s Schedule) Mesh(d, r float64, segments int, color geom.Vec3) (*buffer.PointCloud, error) {
	if segments <= 0 {
		return nil, fmt.Errorf("Mesh needs a positive segment count, got %d.", segments)
	}

	l := geom.NewLattice(segments+1, segments+1)
	pts := make([]geom.Vec3, l.Area)
	for idx := range pts {
		u, v := l.UV(l.Coords(idx))
		p, err := s.Morph(d, u, v, r)
		if err != nil {
			return nil, err
		}
		pts[idx] = p
	}

	pc := buffer.New(buffer.Segments, 4*segments*(segments+1))
	for j := 0; j <= segments; j++ {
		for i := 0; i < segments; i++ {
			pc.AppendSegment(pts[l.Idx(i, j)], pts[l.Idx(i+1, j)], color)
		}
	}
	for i := 0; i <= segments; i++ {
		for j := 0; j < segments; j++ {
			pc.AppendSegment(pts[l.Idx(i, j)], pts[l.Idx(i, j+1)], color)
		}
	}
	return pc, nil
}
