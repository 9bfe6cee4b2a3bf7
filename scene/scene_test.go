package scene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/curvature/buffer"
	"github.com/phil-mansfield/curvature/geom"
	"github.com/phil-mansfield/curvature/io"
)

func testWrapper(visuals string) *io.SceneWrapper {
	wrap := io.DefaultSceneWrapper()
	wrap.Scene.Visuals = visuals
	wrap.Particles.Count = 200
	wrap.Morph.Segments = 8
	wrap.Grid.Lines = 4
	return wrap
}

func TestNew(t *testing.T) {
	s, err := New(testWrapper("Morph, grid, Axes, Geodesic, Particles"))
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"axes", "geodesic", "grid", "morph", "particles"}, s.Names(),
	)

	for _, name := range s.Names() {
		pc, err := s.Frame(name, 0.5, true)
		require.NoError(t, err, name)
		assert.True(t, pc.Count() > 0, name)
		assert.Equal(t, len(pc.Positions), len(pc.Colors), name)
	}

	_, err = s.Frame("teapot", 0, true)
	assert.Error(t, err)
	_, err = s.Frame("grid", math.NaN(), true)
	assert.Error(t, err)
}

func TestCachedFrames(t *testing.T) {
	s, err := New(testWrapper("Grid"))
	require.NoError(t, err)

	a, err := s.Frame("Grid", 0.3, true)
	require.NoError(t, err)
	b, err := s.Frame("grid", 0.3, true)
	require.NoError(t, err)
	c, err := s.Frame("grid", 0.7, true)
	require.NoError(t, err)
	assert.True(t, a == b)
	assert.False(t, a == c)
}

func TestMorphFrame(t *testing.T) {
	s, err := New(testWrapper("Morph"))
	require.NoError(t, err)

	pc, err := s.Frame("morph", 1, true)
	require.NoError(t, err)
	assert.Equal(t, buffer.Segments, pc.Mode)
	for i := 0; i < pc.Count(); i++ {
		assert.InDelta(t, 1.0, pc.Point(i).Norm(), 1e-6)
	}

	// Half way through, the mesh is held flat.
	pc, err = s.Frame("morph", 0.5, true)
	require.NoError(t, err)
	for i := 0; i < pc.Count(); i++ {
		assert.Equal(t, 0.0, pc.Point(i)[2])
	}
}

func TestEquatorGeodesic(t *testing.T) {
	s, err := New(testWrapper("Geodesic"))
	require.NoError(t, err)
	v := s.visuals["geodesic"].(*geodesicVisual)

	pc, err := s.Frame("geodesic", 1, true)
	require.NoError(t, err)

	// The first line of the fan runs along the equator and never leaves it.
	steps := io.DefaultSceneWrapper().Geodesic.Steps
	for i := 0; i < 2*steps; i++ {
		p := pc.Point(i)
		if buffer.IsHidden(p) {
			continue
		}
		assert.InDelta(t, 0.0, p[1], 1e-6, "point %d", i)
		assert.InDelta(t, 1.0, p.Norm(), 1e-6, "point %d", i)
	}
	assert.True(t, v.symbols.Len() > 0)
}

func TestWeakFieldGeodesic(t *testing.T) {
	wrap := testWrapper("Geodesic")
	wrap.Geodesic.Metric = "WeakField"
	s, err := New(wrap)
	require.NoError(t, err)
	steps := wrap.Geodesic.Steps

	flat, err := s.Frame("geodesic", 0, true)
	require.NoError(t, err)
	flatPos := append([]float32(nil), flat.Positions...)

	// In flat space every line is straight in the space-time diagram.
	for line := 0; line < fanCount; line++ {
		first := 2 * steps * line
		a, b := flat.Point(first), flat.Point(first+1)
		require.False(t, buffer.IsHidden(a))
		dx := b[0] - a[0]
		assert.True(t, dx != 0, "line %d", line)

		for i := first; i < first+2*steps; i += 2 {
			a, b := flat.Point(i), flat.Point(i+1)
			if buffer.IsHidden(a) {
				continue
			}
			assert.InDelta(t, dx, b[0]-a[0], 1e-5, "line %d", line)
		}
	}

	curved, err := s.Frame("geodesic", 1, true)
	require.NoError(t, err)
	assert.Equal(t, len(flatPos), len(curved.Positions))
	assert.NotEqual(t, flatPos, curved.Positions)

	wrap.Geodesic.Convention = "Standard"
	s, err = New(wrap)
	require.NoError(t, err)
	curved, err = s.Frame("geodesic", 1, true)
	require.NoError(t, err)
	assert.NotEqual(t, flatPos, curved.Positions)
}

func TestGeodesicPoses(t *testing.T) {
	s, err := New(testWrapper("Geodesic, Grid"))
	require.NoError(t, err)

	pc, err := s.Frame("geodesic", 1, true)
	require.NoError(t, err)
	poses, err := s.Poses("Geodesic", 1)
	require.NoError(t, err)
	require.Len(t, poses, fanCount)

	// The first line runs along the equator in the +phi direction, so its
	// marker sits on the head of the line.
	steps := io.DefaultSceneWrapper().Geodesic.Steps
	head := geom.Vec3{}
	for i := 0; i < 2*steps; i += 2 {
		if p := pc.Point(i + 1); !buffer.IsHidden(p) {
			head = p
		}
	}
	for k := 0; k < 3; k++ {
		assert.InDelta(t, head[k], poses[0].Position[k], 1e-6)
	}
	assert.InDelta(t, 0.0, poses[0].Position[1], 1e-9)

	again, err := s.Poses("geodesic", 1)
	require.NoError(t, err)
	assert.Equal(t, poses, again)

	poses, err = s.Poses("grid", 1)
	require.NoError(t, err)
	assert.Nil(t, poses)

	_, err = s.Poses("teapot", 1)
	assert.Error(t, err)
	_, err = s.Poses("geodesic", math.NaN())
	assert.Error(t, err)
}

func TestParticlesFrame(t *testing.T) {
	s, err := New(testWrapper("Particles"))
	require.NoError(t, err)

	pc, err := s.Frame("particles", 0, false)
	require.NoError(t, err)
	before := append([]float32(nil), pc.Positions...)

	pc, err = s.Frame("particles", 0, false)
	require.NoError(t, err)
	assert.Equal(t, before, pc.Positions)

	pc, err = s.Frame("particles", 0, true)
	require.NoError(t, err)
	assert.NotEqual(t, before, pc.Positions)
}

func TestBadConfig(t *testing.T) {
	wrap := testWrapper("Geodesic")
	wrap.Geodesic.Metric = "Kerr"
	_, err := New(wrap)
	assert.Error(t, err)

	wrap = testWrapper("Morph")
	wrap.Morph.End1 = 0.9
	_, err = New(wrap)
	assert.Error(t, err)

	wrap = testWrapper("Geodesic")
	wrap.Geodesic.InitialConditions = "does/not/exist.txt"
	_, err = New(wrap)
	assert.Error(t, err)
}

func TestLineColors(t *testing.T) {
	cs := LineColors(5)
	require.Len(t, cs, 5)
	assert.NotEqual(t, cs[0], cs[1])
	for _, c := range cs {
		for k := 0; k < 3; k++ {
			assert.True(t, c[k] >= 0 && c[k] <= 1)
		}
	}
}

func TestGeodesics(t *testing.T) {
	con := io.DefaultSceneWrapper().Geodesic
	g, err := NewGeodesics(&con)
	require.NoError(t, err)
	require.Len(t, g.X0s, fanCount)
	assert.Equal(t, 2, g.Field.Dim)

	trs := g.Integrate(g.Field, 0)
	require.Len(t, trs, fanCount)
	for _, tr := range trs {
		assert.Len(t, tr, con.Steps+1)
	}

	// In flat space the first fan line moves along phi only.
	last := trs[0][trs[0].Visible()-1].X
	assert.InDelta(t, math.Pi/2, last[0], 1e-12)
	assert.True(t, last[1] > 0)

	x0s, v0s := FanInitialConditions(4)
	for i := range x0s {
		assert.Equal(t, 1.0, v0s[i][0])
		assert.True(t, math.Abs(x0s[i][1]) < 2)
		// Lines head towards the origin.
		assert.True(t, x0s[i][1]*v0s[i][1] < 0)
	}
}

func TestSchedule(t *testing.T) {
	wrap := testWrapper("Morph")
	wrap.Scene.Schedule = "0:0.5, 1:1"
	s, err := New(wrap)
	require.NoError(t, err)

	// The schedule starts half way through the morph, so t = 0 shows the
	// plane.
	pc, err := s.Frame("morph", 0, true)
	require.NoError(t, err)
	for i := 0; i < pc.Count(); i++ {
		assert.Equal(t, 0.0, pc.Point(i)[2])
	}

	wrap.Scene.Schedule = "0:1, 0:0"
	_, err = New(wrap)
	assert.Error(t, err)
}
