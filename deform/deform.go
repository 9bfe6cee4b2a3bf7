/*package deform bends a flat grid with a hand-authored 2 x 2 x 2 Christoffel
tensor. The tensor is not derived from a metric: it is smoothstepped from all
zeros into one of two curved targets as the animation parameter runs from 0
to 1, and then used to advect one geodesic per grid line.

This is far cheaper than integrating through a metric.Field, which is what
lets a whole grid be rebuilt whenever the animation parameter changes.
*/
package deform

import (
	"fmt"

	"github.com/phil-mansfield/curvature/buffer"
	"github.com/phil-mansfield/curvature/geodesic"
	"github.com/phil-mansfield/curvature/geom"
	"github.com/phil-mansfield/curvature/interpolate"
)

// Tensor is a Christoffel tensor indexed [rho][mu][nu]. It must be symmetric
// in its last two indices.
type Tensor [2][2][2]float64

// Level selects the curved target tensor.
type Level int

const (
	Standard Level = iota
	Strong
)

func (l Level) String() string {
	switch l {
	case Standard:
		return "Standard"
	case Strong:
		return "Strong"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// ParseLevel converts a configuration string into a Level.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "", "Standard":
		return Standard, nil
	case "Strong":
		return Strong, nil
	}
	return 0, fmt.Errorf(
		"Level must be one of [Standard | Strong], '%s' is not recognized.", s,
	)
}

// The target tensors were tuned by eye. They have no physical meaning.
var (
	Flat   = Tensor{}
	Curved = Tensor{
		{{0.00, 0.05}, {0.05, 0.10}},
		{{-0.10, 0.00}, {0.00, 0.05}},
	}
	MoreCurved = Tensor{
		{{0.05, 0.15}, {0.15, 0.25}},
		{{-0.25, 0.05}, {0.05, 0.15}},
	}
)

// Target returns the curved tensor for a level.
func (l Level) Target() Tensor {
	if l == Strong {
		return MoreCurved
	}
	return Curved
}

// At returns the component-wise smoothstep between Flat and the level's
// target. t is not clamped.
func At(t float64, level Level) Tensor {
	target := level.Target()
	var out Tensor
	for rho := 0; rho < 2; rho++ {
		for mu := 0; mu < 2; mu++ {
			for nu := 0; nu < 2; nu++ {
				out[rho][mu][nu] = interpolate.Smoothstep(
					Flat[rho][mu][nu], target[rho][mu][nu], t,
				)
			}
		}
	}
	return out
}

// Step advances a position and velocity by one Euler step of size h using
// the same update as geodesic.Step. ok is false, and x and v are returned
// unchanged, if the new position leaves [-bound, bound] on either axis.
func (g *Tensor) Step(x, v geom.Vec2, h, bound float64) (nx, nv geom.Vec2, ok bool) {
	for rho := 0; rho < 2; rho++ {
		sum := 0.0
		for mu := 0; mu < 2; mu++ {
			for nu := 0; nu < 2; nu++ {
				sum += g[rho][mu][nu] * v[mu] * v[nu]
			}
		}
		nv[rho] = v[rho] - h*sum
	}
	nx = x.Add(nv.Scale(h))

	if nx[0] < -bound || nx[0] > bound || nx[1] < -bound || nx[1] > bound {
		return x, v, false
	}
	return nx, nv, true
}

// Line integrates a single grid line from x0 with velocity v0. Points after
// the line leaves the bound are set to the hidden sentinel.
func (g *Tensor) Line(x0, v0 geom.Vec2, steps int, h, bound float64) []geom.Vec3 {
	pts := make([]geom.Vec3, steps+1)
	x, v := x0, v0
	pts[0] = geom.Vec3{x[0], x[1], 0}
	hidden := false
	for i := 1; i <= steps; i++ {
		if !hidden {
			var ok bool
			x, v, ok = g.Step(x, v, h, bound)
			hidden = !ok
		}
		if hidden {
			pts[i] = buffer.Hidden()
		} else {
			pts[i] = geom.Vec3{x[0], x[1], 0}
		}
	}
	return pts
}

// IsSymmetric returns true if g[rho][mu][nu] == g[rho][nu][mu].
func (g *Tensor) IsSymmetric() bool {
	for rho := 0; rho < 2; rho++ {
		if g[rho][0][1] != g[rho][1][0] {
			return false
		}
	}
	return true
}

const (
	DefaultLines = 20
	DefaultSteps = geodesic.DefaultSteps
	// DefaultStepSize is chosen so that DefaultSteps steps cross the whole
	// grid.
	DefaultStepSize = geodesic.DefaultStepSize
	DefaultExtent   = geodesic.DefaultBound
)

// GridOptions controls GridLines. Zero values are replaced by the defaults.
type GridOptions struct {
	Lines    int
	Steps    int
	StepSize float64
	Extent   float64
	Color    geom.Vec3
}

func (opt GridOptions) withDefaults() GridOptions {
	if opt.Lines <= 0 {
		opt.Lines = DefaultLines
	}
	if opt.Steps <= 0 {
		opt.Steps = DefaultSteps
	}
	if opt.StepSize == 0 {
		opt.StepSize = DefaultStepSize
	}
	if opt.Extent <= 0 {
		opt.Extent = DefaultExtent
	}
	if opt.Color == (geom.Vec3{}) {
		opt.Color = geom.Vec3{0.6, 0.6, 0.7}
	}
	return opt
}

// GridLines builds the deformed grid at animation parameter t. One line is
// launched along +x from the left edge and one along +y from the bottom edge
// for each of opts.Lines evenly spaced offsets.
func GridLines(t float64, level Level, opts GridOptions) *buffer.PointCloud {
	opts = opts.withDefaults()
	g := At(t, level)

	pc := buffer.New(buffer.Segments, 2*opts.Lines*2*opts.Steps)
	ext := opts.Extent
	for i := 0; i < opts.Lines; i++ {
		c := -ext + 2*ext*(float64(i)+0.5)/float64(opts.Lines)

		horiz := g.Line(geom.Vec2{-ext, c}, geom.Vec2{1, 0},
			opts.Steps, opts.StepSize, ext)
		buffer.Polyline(pc, horiz, opts.Color)

		vert := g.Line(geom.Vec2{c, -ext}, geom.Vec2{0, 1},
			opts.Steps, opts.StepSize, ext)
		buffer.Polyline(pc, vert, opts.Color)
	}
	return pc
}
