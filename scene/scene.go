/*package scene assembles the buffer builders into the named visuals that a
renderer asks for. Each Scene owns its own caches and particle system, so
separate Scenes can be driven independently.
*/
package scene

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/phil-mansfield/curvature/advect"
	"github.com/phil-mansfield/curvature/buffer"
	"github.com/phil-mansfield/curvature/deform"
	"github.com/phil-mansfield/curvature/geodesic"
	"github.com/phil-mansfield/curvature/geom"
	"github.com/phil-mansfield/curvature/interpolate"
	"github.com/phil-mansfield/curvature/io"
	"github.com/phil-mansfield/curvature/metric"
)

// Visual builds the buffer shown at animation parameter t. visible is false
// when the visual is off screen.
type Visual interface {
	Frame(t float64, visible bool) *buffer.PointCloud
}

// Scene is a named collection of visuals. It is not safe for concurrent use.
type Scene struct {
	visuals  map[string]Visual
	names    []string
	schedule *interpolate.Keyframes
}

// New builds every visual listed in wrap.Scene.Visuals.
func New(wrap *io.SceneWrapper) (*Scene, error) {
	s := &Scene{visuals: map[string]Visual{}}

	var err error
	if s.schedule, err = wrap.Scene.Keyframes(); err != nil {
		return nil, err
	}

	for _, name := range wrap.Scene.VisualNames() {
		var (
			v   Visual
			err error
		)
		switch strings.ToLower(name) {
		case "axes":
			v = newAxesVisual(wrap.Grid.Extent, wrap.Grid.Lines)
		case "grid":
			v, err = newGridVisual(&wrap.Grid, wrap.Scene.CacheSize)
		case "geodesic":
			v, err = newGeodesicVisual(&wrap.Geodesic, wrap.Scene.CacheSize)
		case "particles":
			gen := rand.New(rand.NewSource(wrap.Scene.Seed))
			v = newParticleVisual(&wrap.Particles, gen)
		case "morph":
			v, err = newMorphVisual(&wrap.Morph, wrap.Scene.CacheSize)
		default:
			err = fmt.Errorf("Unrecognized visual '%s'.", name)
		}
		if err != nil {
			return nil, err
		}

		key := strings.ToLower(name)
		if _, ok := s.visuals[key]; !ok {
			s.names = append(s.names, key)
		}
		s.visuals[key] = v
	}

	sort.Strings(s.names)
	return s, nil
}

// Names returns the lower-case names of the visuals in the scene.
func (s *Scene) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Frame returns the buffer of the named visual at animation parameter t,
// after t has been passed through the configured Schedule. The result
// belongs to the Scene and is only valid until the next call for the same
// visual.
func (s *Scene) Frame(name string, t float64, visible bool) (*buffer.PointCloud, error) {
	v, t, err := s.lookup(name, t)
	if err != nil {
		return nil, err
	}
	return v.Frame(t, visible), nil
}

// Poser is implemented by visuals which place markers in the scene.
type Poser interface {
	Poses(t float64) []geom.Pose
}

// Poses returns the marker poses of the named visual at animation parameter
// t. Visuals without markers return nil.
func (s *Scene) Poses(name string, t float64) ([]geom.Pose, error) {
	v, t, err := s.lookup(name, t)
	if err != nil {
		return nil, err
	}
	if p, ok := v.(Poser); ok {
		return p.Poses(t), nil
	}
	return nil, nil
}

func (s *Scene) lookup(name string, t float64) (Visual, float64, error) {
	v, ok := s.visuals[strings.ToLower(name)]
	if !ok {
		return nil, 0, fmt.Errorf(
			"Scene has no visual '%s'. Available visuals are [%s].",
			name, strings.Join(s.names, " | "),
		)
	}
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return nil, 0, fmt.Errorf(
			"Animation parameter must be finite, got %g.", t,
		)
	}
	if s.schedule != nil {
		t = s.schedule.Eval(t)
	}
	return v, t, nil
}

// staticVisual is a buffer which does not depend on t.
type staticVisual struct {
	pc *buffer.PointCloud
}

func newAxesVisual(extent float64, lines int) *staticVisual {
	pc := buffer.Axes(extent)
	grid := buffer.Grid(lines, extent, geom.Vec3{0.25, 0.25, 0.3})
	pc.Positions = append(pc.Positions, grid.Positions...)
	pc.Colors = append(pc.Colors, grid.Colors...)
	return &staticVisual{pc}
}

func (v *staticVisual) Frame(t float64, visible bool) *buffer.PointCloud {
	return v.pc
}

// cachedVisual wraps a buffer.Cache.
type cachedVisual struct {
	cache *buffer.Cache
}

func (v *cachedVisual) Frame(t float64, visible bool) *buffer.PointCloud {
	return v.cache.Get(t)
}

func newGridVisual(con *io.GridConfig, cacheSize int) (*cachedVisual, error) {
	level, err := deform.ParseLevel(con.Level)
	if err != nil {
		return nil, err
	}
	opts := deform.GridOptions{
		Lines: con.Lines, Steps: con.Steps,
		StepSize: con.StepSize, Extent: con.Extent,
	}
	build := func(t float64) *buffer.PointCloud {
		return deform.GridLines(t, level, opts)
	}
	return &cachedVisual{buffer.NewCache(cacheSize, build)}, nil
}

func newMorphVisual(con *io.MorphConfig, cacheSize int) (*cachedVisual, error) {
	sched, err := con.Schedule()
	if err != nil {
		return nil, err
	} else if err = sched.Validate(); err != nil {
		return nil, err
	} else if con.Segments <= 0 {
		return nil, fmt.Errorf("Morph needs a positive segment count.")
	}

	r, segments := con.Radius, con.Segments
	color := geom.Vec3{0.8, 0.8, 0.9}
	build := func(t float64) *buffer.PointCloud {
		pc, err := sched.Mesh(t, r, segments, color)
		if err != nil {
			// The schedule and segment count were checked above.
			panic(err.Error())
		}
		return pc
	}
	return &cachedVisual{buffer.NewCache(cacheSize, build)}, nil
}

// Geodesics is the set of initial conditions and integration settings
// described by a [Geodesic] config section.
type Geodesics struct {
	Field      *metric.Field
	Options    geodesic.Options
	Projection geodesic.Projection
	X0s, V0s   [][]float64
	Colors     []geom.Vec3
}

// Geodesic fans launched when no initial conditions file is given.
const (
	fanCount = 8
	fanSpeed = 0.5
	// fanConverge sets how fast space-time lines head towards x = 0.
	fanConverge = 0.25
)

// NewGeodesics sets up the metric and initial conditions for con.
func NewGeodesics(con *io.GeodesicConfig) (*Geodesics, error) {
	conv, err := metric.ParseConvention(con.Convention)
	if err != nil {
		return nil, err
	}

	g := &Geodesics{}
	var (
		target metric.Func
		axes   []int
	)
	dim := con.Dim()
	switch con.Metric {
	case "Sphere":
		target = metric.Sphere(con.Radius)
		g.Projection = geodesic.OnSphere(con.Radius)
	case "WeakField":
		target = metric.WeakField(con.Mass, con.Softening)
		g.Projection, axes = geodesic.SpaceTime, geodesic.ReferenceAxes
	case "Minkowski":
		target = metric.Constant(metric.Minkowski())
		g.Projection, axes = geodesic.SpaceTime, geodesic.ReferenceAxes
	default:
		return nil, fmt.Errorf("Unrecognized metric '%s'.", con.Metric)
	}

	if con.ValidInitialConditions() {
		g.X0s, g.V0s, err = io.ReadInitialConditions(con.InitialConditions, dim)
		if err != nil {
			return nil, err
		}
		log.Printf(
			"Read %d geodesic initial conditions from %s.",
			len(g.X0s), con.InitialConditions,
		)
	} else {
		g.X0s, g.V0s = FanInitialConditions(dim)
	}

	g.Field = metric.NewField(dim, target)
	g.Field.Convention = conv
	g.Options = geodesic.Options{
		Steps: con.Steps, StepSize: con.StepSize,
		Axes: axes, Bound: con.Bound,
	}
	g.Colors = LineColors(len(g.X0s))
	return g, nil
}

// Integrate traces every geodesic through the metric at blend p, reading
// symbols from src.
func (g *Geodesics) Integrate(src geodesic.SymbolSource, p float64) []geodesic.Trajectory {
	trs := make([]geodesic.Trajectory, len(g.X0s))
	for i := range trs {
		trs[i] = geodesic.Integrate(src, g.X0s[i], g.V0s[i], p, g.Options)
	}
	return trs
}

// geodesicVisual draws one line per initial condition through a metric
// blended from flat space by t, with a marker on the head of each line.
type geodesicVisual struct {
	*cachedVisual
	symbols *metric.Cache
	g       *Geodesics

	posesT float64
	poses  []geom.Pose
}

func newGeodesicVisual(
	con *io.GeodesicConfig, cacheSize int,
) (*geodesicVisual, error) {
	g, err := NewGeodesics(con)
	if err != nil {
		return nil, err
	}
	n := len(g.X0s)
	symbols := metric.NewCache(g.Field, cacheSize*n*(con.Steps+1))

	build := func(t float64) *buffer.PointCloud {
		pc := buffer.New(buffer.Segments, 2*n*g.Options.Steps)
		hidden := 0
		for i, tr := range g.Integrate(symbols, t) {
			tr.AppendTo(pc, g.Projection, g.Colors[i])
			if tr.Visible() < len(tr) {
				hidden++
			}
		}
		if hidden > 0 {
			log.Printf(
				"%d of %d geodesics left the visible region at t = %g.",
				hidden, n, t,
			)
		}
		return pc
	}

	return &geodesicVisual{
		cachedVisual: &cachedVisual{buffer.NewCache(cacheSize, build)},
		symbols:      symbols,
		g:            g,
	}, nil
}

// Poses places a marker on the last visible point of each line, facing
// along the line. Lines with fewer than two visible points get no marker.
func (v *geodesicVisual) Poses(t float64) []geom.Pose {
	if v.poses != nil && v.posesT == t {
		return v.poses
	}

	poses := []geom.Pose{}
	for _, tr := range v.g.Integrate(v.symbols, t) {
		if pose, ok := tr.Pose(tr.Visible()-1, v.g.Projection); ok {
			poses = append(poses, pose)
		}
	}
	v.posesT, v.poses = t, poses
	return poses
}

// FanInitialConditions launches a fan of geodesics. In two dimensions they
// leave the equator of the sphere in evenly spaced directions. In four
// dimensions they start at evenly spaced positions along x and head towards
// x = 0, faster the further out they start. Under the Reference convention a
// line at rest is never bent, so every line is given a spatial velocity.
func FanInitialConditions(dim int) (x0s, v0s [][]float64) {
	x0s, v0s = make([][]float64, fanCount), make([][]float64, fanCount)
	for i := 0; i < fanCount; i++ {
		if dim == 2 {
			angle := 2 * math.Pi * float64(i) / fanCount
			x0s[i] = []float64{math.Pi / 2, 0}
			v0s[i] = []float64{
				fanSpeed * math.Sin(angle), fanSpeed * math.Cos(angle),
			}
			continue
		}

		x := -2 + 4*(float64(i)+0.5)/fanCount
		x0, v0 := geom.Vec4{0, x, 0, 0}, geom.Vec4{1, -fanConverge * x, 0, 0}
		x0s[i], v0s[i] = x0[:], v0[:]
	}
	return x0s, v0s
}

// LineColors returns n colors evenly spaced in hue.
func LineColors(n int) []geom.Vec3 {
	out := make([]geom.Vec3, n)
	for i := range out {
		c := colorful.Hsv(360*float64(i)/float64(n), 0.6, 0.95)
		out[i] = geom.Vec3{c.R, c.G, c.B}
	}
	return out
}

// particleVisual advances its tracers once per visible frame. t is ignored.
type particleVisual struct {
	sys *advect.System
}

func newParticleVisual(con *io.ParticlesConfig, gen *rand.Rand) *particleVisual {
	return &particleVisual{advect.NewSystem(con.Field(), con.AdvectConfig(), gen)}
}

func (v *particleVisual) Frame(t float64, visible bool) *buffer.PointCloud {
	v.sys.Update(visible)
	return v.sys.Buffer()
}
