/*package advect pushes tracer particles through the field of two
inverse-square sources, as in the field lines between two electric charges.

The advection is deliberately not physical: each tick a particle's position
is displaced by the field vector itself, with no mass or time step. The
velocity tracked alongside each particle is a clamped copy of that
displacement which is only used to pick the particle's color.
*/
package advect

import (
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/phil-mansfield/curvature/buffer"
	"github.com/phil-mansfield/curvature/geom"
)

// Source is a point source of strength Strength. Negative strengths are
// sinks.
type Source struct {
	Position geom.Vec3
	Strength float64
}

// Field is the superposition of two sources.
type Field struct {
	A, B Source
}

// Contribution returns strength / (4 pi r^2) directed from the source to x.
// The contribution at the source itself is zero.
func (src Source) Contribution(x geom.Vec3) geom.Vec3 {
	d := x.Sub(src.Position)
	r2 := d.Norm2()
	if r2 == 0 {
		return geom.Vec3{}
	}
	mag := src.Strength / (4 * math.Pi * r2)
	return d.Scale(mag / math.Sqrt(r2))
}

// At returns the field at x.
func (f Field) At(x geom.Vec3) geom.Vec3 {
	return f.A.Contribution(x).Add(f.B.Contribution(x))
}

// Config holds the tuning constants of a System. These were chosen by eye.
type Config struct {
	Count int
	// Particles respawn uniformly inside [-Extent, Extent]^3.
	Extent float64
	// Particles closer than MinDistance to a source, or sitting in a field
	// stronger than MaxField, respawn.
	MinDistance, MaxField float64
	// MaxSpeed clamps the velocity estimate used for coloring.
	MaxSpeed float64
	// Gain scales speeds before log compression.
	Gain float64

	Slow, Fast colorful.Color
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		Count:       5000,
		Extent:      3,
		MinDistance: 0.15,
		MaxField:    0.05,
		MaxSpeed:    0.02,
		Gain:        1000,
		Slow:        colorful.Color{R: 0.15, G: 0.25, B: 0.9},
		Fast:        colorful.Color{R: 1, G: 0.85, B: 0.3},
	}
}

// DefaultField returns a source and a sink of equal strength placed
// symmetrically on the x axis.
func DefaultField() Field {
	return Field{
		A: Source{Position: geom.Vec3{-1, 0, 0}, Strength: 0.02},
		B: Source{Position: geom.Vec3{1, 0, 0}, Strength: -0.02},
	}
}

// System is a set of tracers whose positions and colors live in a single
// buffer that is mutated in place by Update.
type System struct {
	Field Field

	cfg Config
	gen *rand.Rand
	pc  *buffer.PointCloud
	vel []geom.Vec3

	// Respawns counts every respawn since the System was created.
	Respawns int
}

// NewSystem scatters cfg.Count tracers through the bounding cube. All
// randomness is drawn from gen, so a seeded generator gives reproducible
// runs.
func NewSystem(field Field, cfg Config, gen *rand.Rand) *System {
	s := &System{
		Field: field,
		cfg:   cfg,
		gen:   gen,
		pc:    buffer.New(buffer.Points, cfg.Count),
		vel:   make([]geom.Vec3, cfg.Count),
	}
	slow := toVec(cfg.Slow)
	for i := 0; i < cfg.Count; i++ {
		s.pc.Append(s.randomPosition(), slow)
	}
	return s
}

func (s *System) randomPosition() geom.Vec3 {
	e := s.cfg.Extent
	return geom.Vec3{
		(2*s.gen.Float64() - 1) * e,
		(2*s.gen.Float64() - 1) * e,
		(2*s.gen.Float64() - 1) * e,
	}
}

// Buffer returns the positions and colors of every tracer. The buffer is
// overwritten by each Update.
func (s *System) Buffer() *buffer.PointCloud { return s.pc }

// Len returns the number of tracers.
func (s *System) Len() int { return len(s.vel) }

// Position returns the position of tracer i.
func (s *System) Position(i int) geom.Vec3 { return s.pc.Point(i) }

// Velocity returns the velocity estimate of tracer i.
func (s *System) Velocity(i int) geom.Vec3 { return s.vel[i] }

// Place moves tracer i to x and sets its velocity estimate.
func (s *System) Place(i int, x, v geom.Vec3) {
	s.pc.SetPoint(i, x)
	s.vel[i] = v
}

// Update advances every tracer by one tick. Nothing happens when the visual
// is not on screen; Update returns whether any work was done.
func (s *System) Update(visible bool) bool {
	if !visible {
		return false
	}

	for i := range s.vel {
		x := s.pc.Point(i)
		if s.singular(x) {
			s.respawn(i)
			continue
		}

		e := s.Field.At(x)
		if e.Norm() > s.cfg.MaxField || !e.Finite() {
			s.respawn(i)
			continue
		}

		s.pc.SetPoint(i, x.Add(e))
		s.vel[i] = e.ClampNorm(s.cfg.MaxSpeed)
		s.pc.SetColor(i, SpeedColor(s.vel[i].Norm(), s.cfg))
	}
	return true
}

func (s *System) singular(x geom.Vec3) bool {
	return x.Dist(s.Field.A.Position) < s.cfg.MinDistance ||
		x.Dist(s.Field.B.Position) < s.cfg.MinDistance
}

func (s *System) respawn(i int) {
	s.pc.SetPoint(i, s.randomPosition())
	s.vel[i] = geom.Vec3{}
	s.pc.SetColor(i, SpeedColor(0, s.cfg))
	s.Respawns++
}

// SpeedColor maps a speed onto the Slow -> Fast gradient. The speed is log
// compressed, clamped to the range reachable under MaxSpeed and then
// normalized.
func SpeedColor(speed float64, cfg Config) geom.Vec3 {
	max := math.Log1p(cfg.MaxSpeed * cfg.Gain)
	s := math.Log1p(speed * cfg.Gain)
	if s < 0 {
		s = 0
	} else if s > max {
		s = max
	}

	f := 0.0
	if max > 0 {
		f = s / max
	}
	return toVec(cfg.Slow.BlendRgb(cfg.Fast, f))
}

func toVec(c colorful.Color) geom.Vec3 {
	return geom.Vec3{c.R, c.G, c.B}
}
