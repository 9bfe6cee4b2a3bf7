package uvmorph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/curvature/interpolate"
)

func TestSphereUV(t *testing.T) {
	p := SphereUV(0, 0.5, 2)
	assert.InDelta(t, 2.0, p[0], 1e-12)
	assert.InDelta(t, 0.0, p[1], 1e-12)

	north := SphereUV(0.3, 0, 2)
	assert.InDelta(t, 2.0, north[1], 1e-12)

	for _, uv := range [][2]float64{{0.1, 0.2}, {0.7, 0.9}, {0.5, 0.5}} {
		assert.InDelta(t, 3.0, SphereUV(uv[0], uv[1], 3).Norm(), 1e-12)
	}
}

func TestPlaneUV(t *testing.T) {
	p := PlaneUV(0.5, 0.5, 1)
	assert.Equal(t, 0.0, p[0])
	assert.Equal(t, 0.0, p[1])
	assert.Equal(t, 0.0, p[2])

	// Equator length matches the sphere's circumference.
	width := PlaneUV(1, 0.5, 1)[0] - PlaneUV(0, 0.5, 1)[0]
	assert.InDelta(t, 2*math.Pi, width, 1e-12)
}

func TestMorphEndpoints(t *testing.T) {
	s := DefaultSchedule()
	for _, uv := range [][2]float64{{0, 0}, {0.25, 0.6}, {0.9, 0.1}, {1, 1}} {
		u, v := uv[0], uv[1]

		for _, d := range []float64{-1, 0, 1, 2} {
			p, err := s.Morph(d, u, v, 1.5)
			require.NoError(t, err)
			assert.Equal(t, SphereUV(u, v, 1.5), p)
		}

		p, err := s.Morph(0.5, u, v, 1.5)
		require.NoError(t, err)
		assert.Equal(t, PlaneUV(u, v, 1.5), p)
	}

	s.Direction = PlaneToSphere
	p, err := s.Morph(0, 0.3, 0.3, 1)
	require.NoError(t, err)
	assert.Equal(t, PlaneUV(0.3, 0.3, 1), p)
	p, err = s.Morph(0.5, 0.3, 0.3, 1)
	require.NoError(t, err)
	assert.Equal(t, SphereUV(0.3, 0.3, 1), p)
	p, err = s.Morph(1, 0.3, 0.3, 1)
	require.NoError(t, err)
	assert.Equal(t, PlaneUV(0.3, 0.3, 1), p)
}

func TestMorphPauses(t *testing.T) {
	s := DefaultSchedule()
	for _, d := range []float64{0.4, 0.45, 0.5, 0.55, 0.6} {
		w, err := s.Weight(d)
		require.NoError(t, err)
		assert.Equal(t, s.Hold, w, "%g", d)

		for _, uv := range [][2]float64{{0, 0}, {0.3, 0.7}, {1, 0.5}} {
			p, err := s.Morph(d, uv[0], uv[1], 2)
			require.NoError(t, err)
			assert.Equal(t, PlaneUV(uv[0], uv[1], 2), p, "%g", d)
		}
	}

	s.Hold = 0.25
	w, err := s.Weight(0.5)
	require.NoError(t, err)
	assert.Equal(t, 0.25, w)
	p, err := s.Morph(0.5, 0.2, 0.2, 1)
	require.NoError(t, err)
	assert.Equal(t, interpolate.LerpVec3(
		SphereUV(0.2, 0.2, 1), PlaneUV(0.2, 0.2, 1), 0.25,
	), p)
}

func TestWeightShape(t *testing.T) {
	s := DefaultSchedule()
	prev := -1.0
	for i := 0; i <= 50; i++ {
		w, err := s.Weight(float64(i) / 100)
		require.NoError(t, err)
		assert.True(t, w >= prev, "weight must rise through the first window")
		prev = w
	}
	for i := 51; i <= 100; i++ {
		w, err := s.Weight(float64(i) / 100)
		require.NoError(t, err)
		assert.True(t, w <= prev, "weight must fall through the second window")
		prev = w
	}
	assert.Equal(t, 0.0, prev)
}

func TestScheduleValidate(t *testing.T) {
	bad := []Schedule{
		{Start1: 0.5, End1: 0.5, Start2: 0.6, End2: 1},
		{Start1: 0, End1: 0.7, Start2: 0.6, End2: 1},
		{Start1: 0, End1: 0.4, Start2: 1, End2: 1},
		{Start1: 0, End1: 0.4, Start2: 0.6, End2: 1, Hold: 2},
	}
	for i, s := range bad {
		assert.Error(t, s.Validate(), "%d", i)
		_, err := s.Morph(0.5, 0, 0, 1)
		assert.Error(t, err, "%d", i)
	}
	assert.NoError(t, DefaultSchedule().Validate())
}

func TestMesh(t *testing.T) {
	pc, err := DefaultSchedule().Mesh(1, 1, 4, [3]float64{1, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, 2*2*4*5, pc.Count())
	for i := 0; i < pc.Count(); i++ {
		assert.InDelta(t, 1.0, pc.Point(i).Norm(), 1e-6)
	}

	_, err = DefaultSchedule().Mesh(1, 1, 0, [3]float64{})
	assert.Error(t, err)
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("SphereToPlane")
	require.NoError(t, err)
	assert.Equal(t, SphereToPlane, d)
	d, err = ParseDirection("")
	require.NoError(t, err)
	assert.Equal(t, SphereToPlane, d)
	_, err = ParseDirection("Inside")
	assert.Error(t, err)
}
