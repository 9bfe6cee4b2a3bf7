/*package metric evaluates space-time metrics that blend a flat reference
metric into a curved target, and computes Christoffel symbols from them with
forward finite differences.

Positions are slices with one entry per coordinate. Two and four dimensional
metrics are both supported; the flat reference is Euclidean in two
dimensions and Minkowski, diag(-1, 1, 1, 1), in four.
*/
package metric

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/curvature/mat"
)

// DefaultStep is the forward-difference step used for metric derivatives. It
// is a visual tuning constant, not a physical one.
const DefaultStep = 0.01

// Func returns the target metric at a position. The returned matrix must be
// Dim x Dim and symmetric.
type Func func(x []float64) *mat.Matrix

// Convention selects how the derivative terms of the Christoffel symbols are
// indexed.
type Convention int

const (
	// Reference sums ginv[rho][sigma] * (d_nu g_{rho sigma} +
	// d_rho g_{sigma nu} - d_sigma g_{nu rho}). This reproduces the
	// visualizations this engine was tuned against. The result does not
	// depend on mu.
	Reference Convention = iota
	// Standard is the textbook form, ginv[rho][sigma] * (d_mu g_{nu sigma} +
	// d_nu g_{mu sigma} - d_sigma g_{mu nu}), which is symmetric in mu and
	// nu.
	Standard
)

func (c Convention) String() string {
	switch c {
	case Reference:
		return "Reference"
	case Standard:
		return "Standard"
	}
	return fmt.Sprintf("Convention(%d)", int(c))
}

// ParseConvention converts a configuration string into a Convention.
func ParseConvention(s string) (Convention, error) {
	switch s {
	case "", "Reference":
		return Reference, nil
	case "Standard":
		return Standard, nil
	}
	return 0, fmt.Errorf(
		"Convention must be one of [Reference | Standard], '%s' is not "+
			"recognized.", s,
	)
}

// Field blends Flat into Target according to an interpolation percentage.
type Field struct {
	Dim        int
	Flat       *mat.Matrix
	Target     Func
	Step       float64
	Convention Convention
}

// NewField creates a field of the given dimension with the default flat
// metric and derivative step.
func NewField(dim int, target Func) *Field {
	var flat *mat.Matrix
	if dim == 4 {
		flat = Minkowski()
	} else {
		flat = Euclidean(dim)
	}
	return &Field{Dim: dim, Flat: flat, Target: target, Step: DefaultStep}
}

func (f *Field) checkPosition(x []float64) {
	if len(x) != f.Dim {
		panic(fmt.Sprintf(
			"Position has %d coordinates, but the metric is %d dimensional.",
			len(x), f.Dim,
		))
	}
}

// Evaluate returns the metric at x. p = 0 gives Flat and p = 1 gives
// Target(x), both exactly. p is not clamped; values outside of [0, 1]
// extrapolate.
func (f *Field) Evaluate(p float64, x []float64) *mat.Matrix {
	f.checkPosition(x)
	target := f.Target(x)
	if target.Width != f.Dim || target.Height != f.Dim {
		panic(fmt.Sprintf(
			"Target metric is %d x %d, expected %d x %d.",
			target.Height, target.Width, f.Dim, f.Dim,
		))
	}

	out := mat.Zeros(f.Dim)
	for i := range out.Vals {
		// (1 - p) a + p b rather than a + (b - a) p so that both endpoints
		// are reproduced without rounding.
		out.Vals[i] = (1-p)*f.Flat.Vals[i] + p*target.Vals[i]
	}
	return out
}

// Derivative returns the forward-difference derivative of the (mu, nu)
// metric component with respect to coordinate axis.
func (f *Field) Derivative(p float64, x []float64, axis, mu, nu int) float64 {
	g0 := f.Evaluate(p, x)
	g1 := f.Evaluate(p, shifted(x, axis, f.step()))
	return (g1.At(mu, nu) - g0.At(mu, nu)) / f.step()
}

// Inverse returns the inverse metric at x. A singular metric inverts to the
// zero matrix.
func (f *Field) Inverse(p float64, x []float64) *mat.Matrix {
	return f.Evaluate(p, x).Invert()
}

// Christoffel computes a single Christoffel symbol, Gamma^rho_{mu nu}, at x.
// Every call recomputes the inverse metric and the derivatives it needs;
// use Symbols or a Cache when many components are required.
func (f *Field) Christoffel(p float64, x []float64, rho, mu, nu int) float64 {
	ginv := f.Inverse(p, x)
	d := func(axis, i, j int) float64 { return f.Derivative(p, x, axis, i, j) }
	return christoffel(f.Convention, f.Dim, ginv, d, rho, mu, nu)
}

// Symbols computes every Christoffel symbol at x, sharing one inverse and
// one table of derivatives between them. The values are identical to those
// returned by Christoffel.
func (f *Field) Symbols(p float64, x []float64) *Symbols {
	n := f.Dim
	g0 := f.Evaluate(p, x)
	ginv := g0.Invert()

	h := f.step()
	dg := make([]float64, n*n*n)
	for axis := 0; axis < n; axis++ {
		g1 := f.Evaluate(p, shifted(x, axis, h))
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				dg[(axis*n+i)*n+j] = (g1.At(i, j) - g0.At(i, j)) / h
			}
		}
	}
	d := func(axis, i, j int) float64 { return dg[(axis*n+i)*n+j] }

	s := NewSymbols(n)
	for rho := 0; rho < n; rho++ {
		for mu := 0; mu < n; mu++ {
			for nu := 0; nu < n; nu++ {
				s.Set(rho, mu, nu, christoffel(f.Convention, n, ginv, d, rho, mu, nu))
			}
		}
	}
	return s
}

func christoffel(
	conv Convention, n int, ginv *mat.Matrix,
	d func(axis, i, j int) float64, rho, mu, nu int,
) float64 {
	sum := 0.0
	for sigma := 0; sigma < n; sigma++ {
		var term float64
		switch conv {
		case Standard:
			term = d(mu, nu, sigma) + d(nu, mu, sigma) - d(sigma, mu, nu)
		default:
			term = d(nu, rho, sigma) + d(rho, sigma, nu) - d(sigma, nu, rho)
		}
		sum += ginv.At(rho, sigma) * term
	}
	return 0.5 * sum
}

func (f *Field) step() float64 {
	if f.Step == 0 {
		return DefaultStep
	}
	return f.Step
}

func shifted(x []float64, axis int, h float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	out[axis] += h
	return out
}

// Symbols is a rank-3 array of Christoffel symbols indexed [rho][mu][nu].
type Symbols struct {
	Dim  int
	Vals []float64
}

// NewSymbols returns a zeroed Symbols array of the given dimension.
func NewSymbols(dim int) *Symbols {
	return &Symbols{Dim: dim, Vals: make([]float64, dim*dim*dim)}
}

func (s *Symbols) At(rho, mu, nu int) float64 {
	return s.Vals[(rho*s.Dim+mu)*s.Dim+nu]
}

func (s *Symbols) Set(rho, mu, nu int, val float64) {
	s.Vals[(rho*s.Dim+mu)*s.Dim+nu] = val
}

// Acceleration computes -Gamma^rho_{mu nu} v^mu v^nu for every rho and
// writes it to out.
func (s *Symbols) Acceleration(v, out []float64) []float64 {
	n := s.Dim
	for rho := 0; rho < n; rho++ {
		sum := 0.0
		for mu := 0; mu < n; mu++ {
			for nu := 0; nu < n; nu++ {
				sum += s.At(rho, mu, nu) * v[mu] * v[nu]
			}
		}
		out[rho] = -sum
	}
	return out
}

// IsZero returns true if every symbol is exactly zero.
func (s *Symbols) IsZero() bool {
	for _, v := range s.Vals {
		if v != 0 {
			return false
		}
	}
	return true
}

// Finite returns true if no symbol is NaN or infinite.
func (s *Symbols) Finite() bool {
	for _, v := range s.Vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
