package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3Arithmetic(t *testing.T) {
	a, b := Vec3{1, 2, 3}, Vec3{4, 5, 6}
	assert.Equal(t, Vec3{5, 7, 9}, a.Add(b))
	assert.Equal(t, Vec3{-3, -3, -3}, a.Sub(b))
	assert.Equal(t, 32.0, a.Dot(b))
	assert.Equal(t, Vec3{-3, 6, -3}, a.Cross(b))
	assert.InDelta(t, math.Sqrt(27), a.Dist(b), 1e-12)
}

func TestClampNorm(t *testing.T) {
	v := Vec3{3, 4, 0}
	assert.Equal(t, v, v.ClampNorm(10))
	assert.InDelta(t, 1.0, v.ClampNorm(1).Norm(), 1e-12)
	assert.Equal(t, Vec3{}, Vec3{}.ClampNorm(1))
}

func TestFinite(t *testing.T) {
	assert.True(t, Vec3{1, 2, 3}.Finite())
	assert.False(t, Vec3{math.NaN(), 0, 0}.Finite())
	assert.False(t, Vec3{0, math.Inf(-1), 0}.Finite())
}

func TestVec4(t *testing.T) {
	a, b := Vec4{1, 2, 3, 4}, Vec4{0.5, 0, -1, 2}
	assert.Equal(t, Vec3{2, 3, 4}, a.Spatial())
	assert.Equal(t, Vec4{2, 4, 6, 8}, a.Scale(2))
	assert.Equal(t, Vec4{1.5, 2, 2, 6}, a.Add(b))
	assert.Equal(t, a, a.Add(b).Sub(b))
}
