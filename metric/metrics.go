package metric

import (
	"math"

	"github.com/phil-mansfield/curvature/mat"
)

// Minkowski returns the flat space-time metric diag(-1, 1, 1, 1).
func Minkowski() *mat.Matrix { return mat.Diag(-1, 1, 1, 1) }

// Euclidean returns the n x n identity metric.
func Euclidean(n int) *mat.Matrix { return mat.Identity(n) }

// Constant returns a metric function which ignores position.
func Constant(m *mat.Matrix) Func {
	return func(x []float64) *mat.Matrix { return m.Copy() }
}

// Sphere returns the metric of a sphere of radius r in (theta, phi)
// coordinates, diag(r^2, r^2 sin^2 theta).
func Sphere(r float64) Func {
	return func(x []float64) *mat.Matrix {
		sin := math.Sin(x[0])
		return mat.Diag(r*r, r*r*sin*sin)
	}
}

// WeakField returns a toy four dimensional metric around a point mass at the
// spatial origin:
//
//     diag(-(1 + 2 phi), 1 - 2 phi, 1 - 2 phi, 1 - 2 phi),
//     phi = -mass / sqrt(x^2 + y^2 + z^2 + softening^2).
//
// The softening length keeps the metric finite at the origin.
func WeakField(mass, softening float64) Func {
	return func(x []float64) *mat.Matrix {
		r := math.Sqrt(x[1]*x[1] + x[2]*x[2] + x[3]*x[3] + softening*softening)
		phi := -mass / r
		return mat.Diag(-(1 + 2*phi), 1-2*phi, 1-2*phi, 1-2*phi)
	}
}
