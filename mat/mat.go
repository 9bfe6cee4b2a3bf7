/*package mat contains routines for operating on the small dense matrices used
to represent metric tensors. Operations are split into easy to use methods
which allocate their output and slightly less easy to use methods which write
into caller-managed memory (the ...At methods).

Everything except multiplication only works on square matrices because metric
tensors are square.
*/
package mat

import (
	"fmt"
	"math"
)

// Matrix represents a row-major matrix of float64 values.
type Matrix struct {
	Vals          []float64
	Width, Height int
}

// LUFactors contains the data fields neccessary for solving and inverting
// general square matrices. Exporting this type allows calling routines to
// manage their memory and to avoid recomputing the same decomposition.
type LUFactors struct {
	lu    Matrix
	pivot []int
	d     float64
	// singular is set when a pivot column is exactly zero.
	singular bool
}

// NewMatrix creates a matrix with the specified values and dimensions.
func NewMatrix(vals []float64, width, height int) *Matrix {
	if width <= 0 {
		panic("width must be positive.")
	} else if height <= 0 {
		panic("height must be positive.")
	} else if width*height != len(vals) {
		panic("height * width must equal len(vals).")
	}

	return &Matrix{Vals: vals, Width: width, Height: height}
}

// Zeros returns an n x n matrix of zeros.
func Zeros(n int) *Matrix {
	return NewMatrix(make([]float64, n*n), n, n)
}

// Identity returns the n x n identity matrix.
func Identity(n int) *Matrix {
	m := Zeros(n)
	for i := 0; i < n; i++ {
		m.Vals[i*n+i] = 1
	}
	return m
}

// Diag returns a square matrix with the given values along its diagonal.
func Diag(vals ...float64) *Matrix {
	n := len(vals)
	m := Zeros(n)
	for i, v := range vals {
		m.Vals[i*n+i] = v
	}
	return m
}

// FromRows creates a matrix from nested rows. All rows must have the same
// length.
func FromRows(rows [][]float64) *Matrix {
	if len(rows) == 0 {
		panic("rows must be non-empty.")
	}
	w := len(rows[0])
	vals := make([]float64, 0, w*len(rows))
	for i, row := range rows {
		if len(row) != w {
			panic(fmt.Sprintf(
				"row %d has length %d, but row 0 has length %d.", i, len(row), w,
			))
		}
		vals = append(vals, row...)
	}
	return NewMatrix(vals, w, len(rows))
}

// At returns the element at row i, column j.
func (m *Matrix) At(i, j int) float64 { return m.Vals[i*m.Width+j] }

// Set sets the element at row i, column j.
func (m *Matrix) Set(i, j int, val float64) { m.Vals[i*m.Width+j] = val }

// Copy returns a deep copy of m.
func (m *Matrix) Copy() *Matrix {
	vals := make([]float64, len(m.Vals))
	copy(vals, m.Vals)
	return NewMatrix(vals, m.Width, m.Height)
}

// Equal returns true if both matrices have the same shape and exactly the
// same values.
func (m1 *Matrix) Equal(m2 *Matrix) bool {
	if m1.Width != m2.Width || m1.Height != m2.Height {
		return false
	}
	for i := range m1.Vals {
		if m1.Vals[i] != m2.Vals[i] {
			return false
		}
	}
	return true
}

// IsSymmetric returns true if m is square and m_ij == m_ji for every element.
func (m *Matrix) IsSymmetric() bool {
	if m.Width != m.Height {
		return false
	}
	n := m.Width
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if m.Vals[i*n+j] != m.Vals[j*n+i] {
				return false
			}
		}
	}
	return true
}

// Mult multiplies two matrices together.
func (m1 *Matrix) Mult(m2 *Matrix) *Matrix {
	h, w := m1.Height, m2.Width
	out := NewMatrix(make([]float64, h*w), w, h)
	return m1.MultAt(m2, out)
}

// MultAt multiplies two matrices together and writes the result to the
// specified matrix.
func (m1 *Matrix) MultAt(m2, out *Matrix) *Matrix {
	if m1.Width != m2.Height {
		panic("Multiplication of incompatible matrix sizes.")
	} else if out.Width != m2.Width || out.Height != m1.Height {
		panic("out matrix has the wrong dimensions.")
	}

	for i := range out.Vals {
		out.Vals[i] = 0
	}
	for i := 0; i < m1.Height; i++ {
		off := i * m1.Width
		for j := 0; j < m2.Width; j++ {
			outIdx := i*out.Width + j
			for k := 0; k < m1.Width; k++ {
				out.Vals[outIdx] += m1.Vals[off+k] * m2.Vals[k*m2.Width+j]
			}
		}
	}

	return out
}

// Invert computes the inverse of a square matrix. 4 x 4 matrices are inverted
// with the analytic cofactor expansion in Invert4; everything else goes
// through an LU decomposition. A singular matrix inverts to the zero matrix.
func (m *Matrix) Invert() *Matrix {
	if m.Width != m.Height {
		panic("m is non-square.")
	}

	if m.Width == 4 {
		var a [4][4]float64
		for i := 0; i < 4; i++ {
			copy(a[i][:], m.Vals[i*4:i*4+4])
		}
		inv := Invert4(a)
		out := Zeros(4)
		for i := 0; i < 4; i++ {
			copy(out.Vals[i*4:i*4+4], inv[i][:])
		}
		return out
	}

	lu := m.LU()
	inv := Zeros(m.Width)
	return lu.InvertAt(inv)
}

// Determinant computes the determinant of a square matrix.
func (m *Matrix) Determinant() float64 {
	if m.Width == 4 && m.Height == 4 {
		var a [4][4]float64
		for i := 0; i < 4; i++ {
			copy(a[i][:], m.Vals[i*4:i*4+4])
		}
		return Determinant4(a)
	}
	lu := m.LU()
	return lu.Determinant()
}

// SolveVector solves the equation m * xs = bs for xs.
func (m *Matrix) SolveVector(bs []float64) []float64 {
	xs := make([]float64, len(bs))
	lu := m.LU()
	return lu.SolveVector(bs, xs)
}

// NewLUFactors creates an LUFactors instance of the requested dimensions.
func NewLUFactors(n int) *LUFactors {
	luf := new(LUFactors)

	luf.lu.Vals, luf.lu.Width, luf.lu.Height = make([]float64, n*n), n, n
	luf.pivot = make([]int, n)
	luf.d = 1

	return luf
}

// LU returns the LU decomposition of a matrix.
func (m *Matrix) LU() *LUFactors {
	if m.Width != m.Height {
		panic("m is non-square.")
	}

	lu := NewLUFactors(m.Width)
	m.LUFactorsAt(lu)
	return lu
}

// LUFactorsAt stores the LU decomposition of a matrix at the specified
// location. Rows are pivoted on the largest remaining element of each column.
func (m *Matrix) LUFactorsAt(luf *LUFactors) {
	if luf.lu.Width != m.Width || luf.lu.Height != m.Height {
		panic("luf has different dimenstions than m.")
	}

	n := m.Width
	lu := luf.lu.Vals
	copy(lu, m.Vals)
	for i := 0; i < n; i++ {
		luf.pivot[i] = i
	}

	// Maintained for determinant calculations.
	luf.d = 1
	luf.singular = false

	for k := 0; k < n; k++ {
		maxRow := findMaxRow(n, lu, k)
		if k != maxRow {
			swapRows(k, maxRow, n, lu)
			luf.pivot[k], luf.pivot[maxRow] = luf.pivot[maxRow], luf.pivot[k]
			luf.d = -luf.d
		}

		kOffset := k * n
		if lu[kOffset+k] == 0 {
			luf.singular = true
			continue
		}

		for i := k + 1; i < n; i++ {
			iOffset := i * n
			lu[iOffset+k] /= lu[kOffset+k]
			tmp := lu[iOffset+k]
			for j := k + 1; j < n; j++ {
				lu[iOffset+j] -= tmp * lu[kOffset+j]
			}
		}
	}
}

// Finds the index of the row containing the maximum absolute value in the
// column. Ignores the rows above col since those have already been used as
// pivots.
func findMaxRow(n int, m []float64, col int) int {
	max, maxRow := -1.0, col

	for i := col; i < n; i++ {
		val := math.Abs(m[i*n+col])
		if val > max {
			max = val
			maxRow = i
		}
	}
	return maxRow
}

func swapRows(i1, i2, n int, lu []float64) {
	i1Offset, i2Offset := n*i1, n*i2
	for j := 0; j < n; j++ {
		idx1, idx2 := i1Offset+j, i2Offset+j
		lu[idx1], lu[idx2] = lu[idx2], lu[idx1]
	}
}

// Singular returns true if the decomposed matrix has a zero determinant.
func (luf *LUFactors) Singular() bool { return luf.singular }

// SolveVector solves M * xs = bs for xs.
//
// bs and xs may point to the same physical memory.
func (luf *LUFactors) SolveVector(bs, xs []float64) []float64 {
	n := luf.lu.Width
	if n != len(bs) {
		panic("len(b) != luf.Width")
	} else if n != len(xs) {
		panic("len(x) != luf.Width")
	}

	// A x = b -> (L U) x = b -> L (U x) = b -> L y = b
	ys := make([]float64, n)
	for i := 0; i < n; i++ {
		ys[i] = bs[luf.pivot[i]]
	}

	// Solve L * y = b for y.
	forwardSubst(n, luf.lu.Vals, ys)
	// Solve U * x = y for x.
	backSubst(n, luf.lu.Vals, ys, xs)

	return xs
}

// Solves L * y = b for y in place, where L has an implicit unit diagonal.
// y_i = b_i - sum_j=0^i-1 (alpha_ij y_j)
func forwardSubst(n int, lu, ys []float64) {
	for i := 0; i < n; i++ {
		sum := 0.0
		for j := 0; j < i; j++ {
			sum += lu[i*n+j] * ys[j]
		}
		ys[i] -= sum
	}
}

// Solves U * x = y for x.
// x_i = (y_i - sum_j=i+1^N-1 (beta_ij x_j)) / beta_ii
func backSubst(n int, lu, ys, xs []float64) {
	for i := n - 1; i >= 0; i-- {
		sum := 0.0
		for j := i + 1; j < n; j++ {
			sum += lu[i*n+j] * xs[j]
		}
		xs[i] = (ys[i] - sum) / lu[i*n+i]
	}
}

// InvertAt inverts the matrix represented by the given LU decomposition
// and writes the results into the specified out matrix. If the matrix is
// singular, out is set to zero.
func (luf *LUFactors) InvertAt(out *Matrix) *Matrix {
	n := luf.lu.Width
	if out.Width != out.Height {
		panic("out matrix is non-square.")
	} else if n != out.Width {
		panic("out matrix different size than m matrix.")
	}

	for i := range out.Vals {
		out.Vals[i] = 0
	}
	if luf.singular {
		return out
	}

	col, e := make([]float64, n), make([]float64, n)
	for j := 0; j < n; j++ {
		for i := range e {
			e[i] = 0
		}
		e[j] = 1
		luf.SolveVector(e, col)
		for i := 0; i < n; i++ {
			out.Vals[i*n+j] = col[i]
		}
	}

	return out
}

// Determinant computes the determinant of the matrix represented by the
// given LU decomposition.
func (luf *LUFactors) Determinant() float64 {
	if luf.singular {
		return 0
	}
	d := luf.d
	lu := luf.lu.Vals
	n := luf.lu.Width

	for i := 0; i < n; i++ {
		d *= lu[i*n+i]
	}
	return d
}
