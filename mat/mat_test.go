package mat

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEps = 1e-9

func randomMatrix4(gen *rand.Rand) [4][4]float64 {
	var a [4][4]float64
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			a[i][j] = gen.Float64()*2 - 1
		}
		// Diagonal dominance keeps the test matrices well conditioned.
		a[i][i] += 4
	}
	return a
}

func mult4(a, b [4][4]float64) [4][4]float64 {
	var out [4][4]float64
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				out[i][j] += a[i][k] * b[k][j]
			}
		}
	}
	return out
}

func TestInvert4Identity(t *testing.T) {
	gen := rand.New(rand.NewSource(7))
	for n := 0; n < 50; n++ {
		a := randomMatrix4(gen)
		prod := mult4(Invert4(a), a)
		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				want := 0.0
				if i == j {
					want = 1
				}
				assert.InDelta(t, want, prod[i][j], testEps, "%d) [%d][%d]", n, i, j)
			}
		}
	}
}

func TestInvert4RoundTrip(t *testing.T) {
	gen := rand.New(rand.NewSource(11))
	for n := 0; n < 50; n++ {
		a := randomMatrix4(gen)
		back := Invert4(Invert4(a))
		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				assert.InDelta(t, a[i][j], back[i][j], testEps)
			}
		}
	}
}

func TestInvert4Singular(t *testing.T) {
	a := [4][4]float64{
		{1, 2, 3, 4},
		{2, 4, 6, 8},
		{0, 1, 0, 1},
		{1, 0, 1, 0},
	}
	assert.Equal(t, [4][4]float64{}, Invert4(a))
	assert.Equal(t, [4][4]float64{}, Invert4([4][4]float64{}))
}

func TestInvert4Minkowski(t *testing.T) {
	a := [4][4]float64{
		{-1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
	assert.Equal(t, a, Invert4(a))
}

func TestDeterminant4(t *testing.T) {
	a := [4][4]float64{
		{2, 0, 0, 0},
		{0, 3, 0, 0},
		{0, 0, 4, 0},
		{1, 0, 0, 5},
	}
	assert.InDelta(t, 120.0, Determinant4(a), testEps)

	m := FromRows([][]float64{
		{2, 0, 0, 0},
		{0, 3, 0, 0},
		{0, 0, 4, 0},
		{1, 0, 0, 5},
	})
	assert.InDelta(t, 120.0, m.Determinant(), testEps)
}

func TestLUInvert(t *testing.T) {
	m := FromRows([][]float64{
		{1, 3, 5},
		{2, 4, 7},
		{1, 1, 0},
	})
	inv := m.Invert()
	prod := m.Mult(inv)
	id := Identity(3)
	for i := range id.Vals {
		assert.InDelta(t, id.Vals[i], prod.Vals[i], testEps)
	}
	assert.InDelta(t, 4.0, m.Determinant(), testEps)
}

func TestLUSingular(t *testing.T) {
	m := FromRows([][]float64{
		{1, 2},
		{2, 4},
	})
	lu := m.LU()
	require.True(t, lu.Singular())
	assert.Equal(t, 0.0, lu.Determinant())
	assert.True(t, m.Invert().Equal(Zeros(2)))
}

func TestSolveVector(t *testing.T) {
	m := FromRows([][]float64{
		{0, 2},
		{3, 1},
	})
	xs := m.SolveVector([]float64{4, 5})
	assert.InDelta(t, 1.0, xs[0], testEps)
	assert.InDelta(t, 2.0, xs[1], testEps)
}

func TestMatrixInvertDispatch(t *testing.T) {
	gen := rand.New(rand.NewSource(3))
	a := randomMatrix4(gen)
	m := Zeros(4)
	for i := 0; i < 4; i++ {
		copy(m.Vals[i*4:i*4+4], a[i][:])
	}
	inv := m.Invert()
	want := Invert4(a)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			assert.Equal(t, want[i][j], inv.At(i, j))
		}
	}
}

func TestSymmetric(t *testing.T) {
	assert.True(t, Diag(-1, 1, 1, 1).IsSymmetric())
	assert.False(t, FromRows([][]float64{{1, 2}, {3, 4}}).IsSymmetric())
}

func BenchmarkInvert4(b *testing.B) {
	a := randomMatrix4(rand.New(rand.NewSource(1)))
	for i := 0; i < b.N; i++ {
		Invert4(a)
	}
}
