/*package geodesic integrates the geodesic equation,

    dv^rho / dtau = -Gamma^rho_{mu nu} v^mu v^nu,

through a metric.Field with a fixed-step Euler scheme: each step updates the
velocity from the symbols at the current position and then moves the
position with the new velocity. The scheme is first order, so trajectories
drift over long runs. They are only ever drawn.
*/
package geodesic

import (
	"math"

	"github.com/phil-mansfield/curvature/metric"
)

const (
	DefaultSteps    = 100
	DefaultStepSize = 0.1
	// DefaultBound is the half-width of the box that advanced coordinates
	// must stay within to remain visible.
	DefaultBound = 5.0
)

// ReferenceAxes are the coordinates advanced by the space-time diagrams:
// time and the first spatial axis.
var ReferenceAxes = []int{0, 1}

// SymbolSource supplies Christoffel symbols. Both *metric.Field and
// *metric.Cache satisfy it.
type SymbolSource interface {
	Symbols(p float64, x []float64) *metric.Symbols
}

var (
	_ SymbolSource = &metric.Field{}
	_ SymbolSource = &metric.Cache{}
)

// Options controls a single integration. Zero values are replaced by the
// package defaults.
type Options struct {
	Steps    int
	StepSize float64
	// Axes lists the coordinates whose positions are advanced. Velocities
	// are updated for every coordinate. nil advances every coordinate.
	Axes []int
	// Bound is the half-width of the visible box. Use math.Inf(1) to
	// disable the check.
	Bound float64
}

func (opt Options) withDefaults(dim int) Options {
	if opt.Steps <= 0 {
		opt.Steps = DefaultSteps
	}
	if opt.StepSize == 0 {
		opt.StepSize = DefaultStepSize
	}
	if opt.Bound <= 0 {
		opt.Bound = DefaultBound
	}
	if opt.Axes == nil {
		opt.Axes = make([]int, dim)
		for i := range opt.Axes {
			opt.Axes[i] = i
		}
	}
	return opt
}

// Point is a single trajectory sample. Hidden points have left the visible
// box (or become non-finite) and carry the last visible position in X.
type Point struct {
	X      []float64
	Hidden bool
}

// Trajectory is the sequence of points produced by Integrate. Index 0 is
// the initial position.
type Trajectory []Point

// Integrate steps a geodesic from x0 with initial velocity v0 through the
// metric blended by percentage p. The result has opts.Steps + 1 points.
//
// Once a point is hidden, every later point is hidden too.
func Integrate(src SymbolSource, x0, v0 []float64, p float64, opts Options) Trajectory {
	if len(x0) != len(v0) {
		panic("Position and velocity have different dimensions.")
	}
	n := len(x0)
	opts = opts.withDefaults(n)

	x, v := make([]float64, n), make([]float64, n)
	copy(x, x0)
	copy(v, v0)
	acc := make([]float64, n)

	tr := make(Trajectory, opts.Steps+1)
	tr[0] = Point{X: copyOf(x), Hidden: !inBounds(x, opts)}
	hidden := tr[0].Hidden

	for i := 1; i <= opts.Steps; i++ {
		if !hidden {
			hidden = !Step(src, p, x, v, acc, opts)
		}
		tr[i] = Point{X: copyOf(x), Hidden: hidden}
	}
	return tr
}

// Step advances x and v in place by a single Euler step. acc is scratch
// space of the same length as x. Step returns false, leaving x and v
// unchanged, if the step would leave the visible box or produce a
// non-finite value.
func Step(src SymbolSource, p float64, x, v, acc []float64, opts Options) bool {
	opts = opts.withDefaults(len(x))
	h := opts.StepSize

	s := src.Symbols(p, x)
	s.Acceleration(v, acc)

	nx, nv := copyOf(x), copyOf(v)
	for rho := range nv {
		nv[rho] += h * acc[rho]
	}
	for _, rho := range opts.Axes {
		nx[rho] += h * nv[rho]
	}

	if !finite(nx) || !finite(nv) || !inBounds(nx, opts) {
		return false
	}
	copy(x, nx)
	copy(v, nv)
	return true
}

func inBounds(x []float64, opts Options) bool {
	for _, i := range opts.Axes {
		if x[i] < -opts.Bound || x[i] > opts.Bound {
			return false
		}
	}
	return true
}

func finite(x []float64) bool {
	for _, xi := range x {
		if math.IsNaN(xi) || math.IsInf(xi, 0) {
			return false
		}
	}
	return true
}

func copyOf(x []float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	return out
}

// Visible returns the number of points which are not hidden.
func (tr Trajectory) Visible() int {
	n := 0
	for _, pt := range tr {
		if !pt.Hidden {
			n++
		}
	}
	return n
}
