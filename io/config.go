package io

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/curvature/advect"
	"github.com/phil-mansfield/curvature/anim"
	"github.com/phil-mansfield/curvature/deform"
	"github.com/phil-mansfield/curvature/geodesic"
	"github.com/phil-mansfield/curvature/interpolate"
	"github.com/phil-mansfield/curvature/metric"
	"github.com/phil-mansfield/curvature/uvmorph"
)

const (
	ExampleSceneFile = `[Scene]

#######################
# Required Parameters #
#######################

# Comma-separated list of the visuals which will be built. Supported visuals:
# [ Axes | Grid | Geodesic | Particles | Morph ]
Visuals = Axes, Grid, Geodesic, Particles, Morph

# Directory where rendered .pcb buffer files will be written to.
Output = path/to/output/dir

# Number of evenly spaced animation parameter values in [TStart, TEnd] which
# are rendered.
Frames = 50

#######################
# Optional Parameters #
#######################

# TStart = 0
# TEnd = 1

# Remaps the animation parameter before it reaches the visuals. Given as a
# comma-separated list of t:value pairs with strictly increasing t. Between
# pairs the value is linearly interpolated, and outside of them it is held.
# Schedule = 0:0, 0.5:0.8, 1:1

# Address the buffer server listens on in Serve mode.
# Addr = localhost:8080

# Seed for the particle respawn generator. Runs with the same seed are
# reproducible.
# Seed = 1

# Maximum number of buffers kept per visual before its cache is dropped.
# CacheSize = 64

# Output files which are useful for profiling and debugging. Generally, there
# isn't a reason to use these unless something goes wrong.
# ProfileFile = prof.out
# LogFile = log.out

[Geodesic]

# Metric must be one of [ Sphere | WeakField | Minkowski ].
# Metric = Sphere

# Radius of the Sphere metric.
# Radius = 1

# Mass and softening length of the WeakField metric.
# Mass = 0.1
# Softening = 0.5

# Index arrangement used for the Christoffel symbols, one of
# [ Reference | Standard ].
# Convention = Reference

# Steps = 100
# StepSize = 0.1
# Bound = 5

# Whitespace-separated table with one geodesic per row: the initial position
# followed by the initial velocity. If unset, a fan of geodesics is launched
# from the origin.
# InitialConditions = path/to/initial/conditions.txt

[Grid]

# Level must be one of [ Standard | Strong ].
# Level = Standard
# Lines = 20
# Steps = 100
# StepSize = 0.1
# Extent = 5

[Particles]

# Count = 5000
# Extent = 3
# Strength = 0.02
# Separation = 2
# MinDistance = 0.15
# MaxField = 0.05
# MaxSpeed = 0.02
# Gain = 1000

[Morph]

# Direction is the blend done by the first window; the second window undoes
# it. Must be one of [ SphereToPlane | PlaneToSphere ].
# Direction = SphereToPlane
# Radius = 1
# Segments = 32
# Start1 = 0
# End1 = 0.4
# Start2 = 0.6
# End2 = 1
# Hold = 1

[Spring]

# Smoothing applied to the animation parameter in Serve mode. Damping = 1 is
# critically damped.
# FPS = 60
# Frequency = 6
# Damping = 1`
)

type SceneConfig struct {
	// Required
	Visuals, Output string
	Frames          int

	// Optional
	TStart, TEnd         float64
	Schedule             string
	Addr                 string
	Seed                 int64
	CacheSize            int
	LogFile, ProfileFile string
}

func (con *SceneConfig) ValidOutput() bool {
	return con.Output != ""
}
func (con *SceneConfig) ValidFrames() bool {
	return con.Frames > 0
}
func (con *SceneConfig) ValidTRange() bool {
	return con.TStart <= con.TEnd
}
func (con *SceneConfig) ValidSchedule() bool {
	_, err := con.Keyframes()
	return err == nil
}
func (con *SceneConfig) ValidAddr() bool {
	return con.Addr != ""
}
func (con *SceneConfig) ValidCacheSize() bool {
	return con.CacheSize > 0
}
func (con *SceneConfig) ValidLogFile() bool {
	return con.LogFile != ""
}
func (con *SceneConfig) ValidProfileFile() bool {
	return con.ProfileFile != ""
}

// Keyframes parses Schedule. It returns nil if no schedule was given.
func (con *SceneConfig) Keyframes() (*interpolate.Keyframes, error) {
	if strings.TrimSpace(con.Schedule) == "" {
		return nil, nil
	}

	ts, vals := []float64{}, []float64{}
	for _, tok := range strings.Split(con.Schedule, ",") {
		pair := strings.Split(strings.TrimSpace(tok), ":")
		if len(pair) != 2 {
			return nil, fmt.Errorf(
				"Schedule entry '%s' is not of the form t:value.", tok,
			)
		}
		t, err := strconv.ParseFloat(strings.TrimSpace(pair[0]), 64)
		if err != nil {
			return nil, err
		}
		val, err := strconv.ParseFloat(strings.TrimSpace(pair[1]), 64)
		if err != nil {
			return nil, err
		}
		ts, vals = append(ts, t), append(vals, val)
	}
	return interpolate.NewKeyframes(ts, vals)
}

// VisualNames returns the trimmed entries of the Visuals list.
func (con *SceneConfig) VisualNames() []string {
	names := []string{}
	for _, tok := range strings.Split(con.Visuals, ",") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			names = append(names, tok)
		}
	}
	return names
}

func (con *SceneConfig) ValidVisuals() bool {
	names := con.VisualNames()
	if len(names) == 0 {
		return false
	}
	for _, name := range names {
		if !ValidVisual(name) {
			return false
		}
	}
	return true
}

// Visuals recognized by Scene.Visuals.
var VisualNames = []string{"Axes", "Grid", "Geodesic", "Particles", "Morph"}

// ValidVisual returns true if name is one of VisualNames, ignoring case.
func ValidVisual(name string) bool {
	for _, v := range VisualNames {
		if strings.ToLower(v) == strings.ToLower(name) {
			return true
		}
	}
	return false
}

type GeodesicConfig struct {
	Metric            string
	Radius            float64
	Mass, Softening   float64
	Convention        string
	Steps             int
	StepSize, Bound   float64
	InitialConditions string
}

func (con *GeodesicConfig) ValidMetric() bool {
	switch con.Metric {
	case "Sphere", "WeakField", "Minkowski":
		return true
	}
	return false
}
func (con *GeodesicConfig) ValidRadius() bool {
	return con.Radius > 0
}
func (con *GeodesicConfig) ValidSoftening() bool {
	return con.Softening > 0
}
func (con *GeodesicConfig) ValidConvention() bool {
	_, err := metric.ParseConvention(con.Convention)
	return err == nil
}
func (con *GeodesicConfig) ValidSteps() bool {
	return con.Steps > 0
}
func (con *GeodesicConfig) ValidStepSize() bool {
	return con.StepSize > 0
}
func (con *GeodesicConfig) ValidBound() bool {
	return con.Bound > 0
}
func (con *GeodesicConfig) ValidInitialConditions() bool {
	return con.InitialConditions != ""
}

// Dim returns the number of coordinates used by the configured metric.
func (con *GeodesicConfig) Dim() int {
	if con.Metric == "Sphere" {
		return 2
	}
	return 4
}

type GridConfig struct {
	Level    string
	Lines    int
	Steps    int
	StepSize float64
	Extent   float64
}

func (con *GridConfig) ValidLevel() bool {
	_, err := deform.ParseLevel(con.Level)
	return err == nil
}
func (con *GridConfig) ValidLines() bool {
	return con.Lines > 0
}
func (con *GridConfig) ValidSteps() bool {
	return con.Steps > 0
}
func (con *GridConfig) ValidStepSize() bool {
	return con.StepSize > 0
}
func (con *GridConfig) ValidExtent() bool {
	return con.Extent > 0
}

type ParticlesConfig struct {
	Count                 int
	Extent                float64
	Strength, Separation  float64
	MinDistance, MaxField float64
	MaxSpeed, Gain        float64
}

func (con *ParticlesConfig) ValidCount() bool {
	return con.Count > 0
}
func (con *ParticlesConfig) ValidExtent() bool {
	return con.Extent > 0
}
func (con *ParticlesConfig) ValidMinDistance() bool {
	return con.MinDistance >= 0
}
func (con *ParticlesConfig) ValidMaxField() bool {
	return con.MaxField > 0
}
func (con *ParticlesConfig) ValidMaxSpeed() bool {
	return con.MaxSpeed > 0
}
func (con *ParticlesConfig) ValidGain() bool {
	return con.Gain > 0
}

type MorphConfig struct {
	Direction                  string
	Radius                     float64
	Segments                   int
	Start1, End1, Start2, End2 float64
	Hold                       float64
}

func (con *MorphConfig) ValidDirection() bool {
	_, err := uvmorph.ParseDirection(con.Direction)
	return err == nil
}
func (con *MorphConfig) ValidRadius() bool {
	return con.Radius > 0
}
func (con *MorphConfig) ValidSegments() bool {
	return con.Segments > 0
}
func (con *MorphConfig) ValidSchedule() bool {
	s, err := con.Schedule()
	return err == nil && s.Validate() == nil
}

// Schedule converts the morph windows into a uvmorph.Schedule.
func (con *MorphConfig) Schedule() (uvmorph.Schedule, error) {
	dir, err := uvmorph.ParseDirection(con.Direction)
	if err != nil {
		return uvmorph.Schedule{}, err
	}
	return uvmorph.Schedule{
		Start1: con.Start1, End1: con.End1,
		Start2: con.Start2, End2: con.End2,
		Hold: con.Hold, Direction: dir,
	}, nil
}

type SpringConfig struct {
	FPS                int
	Frequency, Damping float64
}

func (con *SpringConfig) ValidFPS() bool {
	return con.FPS > 0
}
func (con *SpringConfig) ValidFrequency() bool {
	return con.Frequency > 0
}
func (con *SpringConfig) ValidDamping() bool {
	return con.Damping > 0
}

type SceneWrapper struct {
	Scene     SceneConfig
	Geodesic  GeodesicConfig
	Grid      GridConfig
	Particles ParticlesConfig
	Morph     MorphConfig
	Spring    SpringConfig
}

func DefaultSceneWrapper() *SceneWrapper {
	wrap := &SceneWrapper{}

	wrap.Scene.TStart = 0
	wrap.Scene.TEnd = 1
	wrap.Scene.Addr = "localhost:8080"
	wrap.Scene.Seed = 1
	wrap.Scene.CacheSize = 64

	wrap.Geodesic.Metric = "Sphere"
	wrap.Geodesic.Radius = 1
	wrap.Geodesic.Mass = 0.1
	wrap.Geodesic.Softening = 0.5
	wrap.Geodesic.Convention = metric.Reference.String()
	wrap.Geodesic.Steps = geodesic.DefaultSteps
	wrap.Geodesic.StepSize = geodesic.DefaultStepSize
	wrap.Geodesic.Bound = geodesic.DefaultBound

	wrap.Grid.Level = deform.Standard.String()
	wrap.Grid.Lines = deform.DefaultLines
	wrap.Grid.Steps = deform.DefaultSteps
	wrap.Grid.StepSize = deform.DefaultStepSize
	wrap.Grid.Extent = deform.DefaultExtent

	pc := advect.DefaultConfig()
	wrap.Particles.Count = pc.Count
	wrap.Particles.Extent = pc.Extent
	wrap.Particles.Strength = 0.02
	wrap.Particles.Separation = 2
	wrap.Particles.MinDistance = pc.MinDistance
	wrap.Particles.MaxField = pc.MaxField
	wrap.Particles.MaxSpeed = pc.MaxSpeed
	wrap.Particles.Gain = pc.Gain

	s := uvmorph.DefaultSchedule()
	wrap.Morph.Direction = "SphereToPlane"
	wrap.Morph.Radius = 1
	wrap.Morph.Segments = 32
	wrap.Morph.Start1, wrap.Morph.End1 = s.Start1, s.End1
	wrap.Morph.Start2, wrap.Morph.End2 = s.Start2, s.End2
	wrap.Morph.Hold = s.Hold

	wrap.Spring.FPS = anim.DefaultFPS
	wrap.Spring.Frequency = anim.DefaultFrequency
	wrap.Spring.Damping = anim.DefaultDamping

	return wrap
}

// ReadSceneConfig reads the given file over the defaults and checks every
// value which the visuals depend on. Output and Frames are only needed by
// Render mode and are left to the caller.
func ReadSceneConfig(fname string) (*SceneWrapper, error) {
	wrap := DefaultSceneWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	if err := wrap.Check(); err != nil {
		return nil, err
	}
	return wrap, nil
}

// ReadSceneString is ReadSceneConfig for an in-memory config file.
func ReadSceneString(text string) (*SceneWrapper, error) {
	wrap := DefaultSceneWrapper()
	if err := gcfg.ReadStringInto(wrap, text); err != nil {
		return nil, err
	}
	if err := wrap.Check(); err != nil {
		return nil, err
	}
	return wrap, nil
}

// Check returns a descriptive error for the first invalid value.
func (wrap *SceneWrapper) Check() error {
	sc, gc, grc := &wrap.Scene, &wrap.Geodesic, &wrap.Grid
	pc, mc, spc := &wrap.Particles, &wrap.Morph, &wrap.Spring

	switch {
	case !sc.ValidVisuals():
		return fmt.Errorf(
			"Invalid/non-existent 'Visuals' value, '%s'. Entries must be "+
				"one of [%s].", sc.Visuals, strings.Join(VisualNames, " | "),
		)
	case !sc.ValidTRange():
		return fmt.Errorf("'TStart' is larger than 'TEnd'.")
	case !sc.ValidSchedule():
		_, err := sc.Keyframes()
		return fmt.Errorf("Invalid 'Schedule' value: %s", err)
	case !sc.ValidCacheSize():
		return fmt.Errorf("Invalid 'CacheSize' value.")

	case !gc.ValidMetric():
		return fmt.Errorf(
			"Metric must be one of [Sphere | WeakField | Minkowski]. '%s' "+
				"is not recognized.", gc.Metric,
		)
	case !gc.ValidRadius():
		return fmt.Errorf("Invalid [Geodesic] 'Radius' value.")
	case !gc.ValidSoftening():
		return fmt.Errorf("Invalid [Geodesic] 'Softening' value.")
	case !gc.ValidConvention():
		return fmt.Errorf(
			"Convention must be one of [Reference | Standard]. '%s' is not "+
				"recognized.", gc.Convention,
		)
	case !gc.ValidSteps() || !gc.ValidStepSize() || !gc.ValidBound():
		return fmt.Errorf(
			"[Geodesic] 'Steps', 'StepSize', and 'Bound' must be positive.",
		)

	case !grc.ValidLevel():
		return fmt.Errorf(
			"Level must be one of [Standard | Strong]. '%s' is not "+
				"recognized.", grc.Level,
		)
	case !grc.ValidLines() || !grc.ValidSteps() ||
		!grc.ValidStepSize() || !grc.ValidExtent():
		return fmt.Errorf(
			"[Grid] 'Lines', 'Steps', 'StepSize', and 'Extent' must be " +
				"positive.",
		)

	case !pc.ValidCount():
		return fmt.Errorf("Invalid [Particles] 'Count' value.")
	case !pc.ValidExtent() || !pc.ValidMaxField() ||
		!pc.ValidMaxSpeed() || !pc.ValidGain():
		return fmt.Errorf(
			"[Particles] 'Extent', 'MaxField', 'MaxSpeed', and 'Gain' " +
				"must be positive.",
		)
	case !pc.ValidMinDistance():
		return fmt.Errorf("Invalid [Particles] 'MinDistance' value.")

	case !mc.ValidDirection():
		return fmt.Errorf(
			"Direction must be one of [PlaneToSphere | SphereToPlane]. "+
				"'%s' is not recognized.", mc.Direction,
		)
	case !mc.ValidRadius() || !mc.ValidSegments():
		return fmt.Errorf("[Morph] 'Radius' and 'Segments' must be positive.")
	case !mc.ValidSchedule():
		s, _ := mc.Schedule()
		return fmt.Errorf("Invalid [Morph] schedule: %s", s.Validate())

	case !spc.ValidFPS() || !spc.ValidFrequency() || !spc.ValidDamping():
		return fmt.Errorf(
			"[Spring] 'FPS', 'Frequency', and 'Damping' must be positive.",
		)
	}
	return nil
}

// AdvectConfig converts the [Particles] section into an advect.Config with
// the default colors.
func (con *ParticlesConfig) AdvectConfig() advect.Config {
	cfg := advect.DefaultConfig()
	cfg.Count = con.Count
	cfg.Extent = con.Extent
	cfg.MinDistance = con.MinDistance
	cfg.MaxField = con.MaxField
	cfg.MaxSpeed = con.MaxSpeed
	cfg.Gain = con.Gain
	return cfg
}

// Field returns the two opposite charges placed Separation apart on the x
// axis.
func (con *ParticlesConfig) Field() advect.Field {
	f := advect.DefaultField()
	f.A.Position[0], f.B.Position[0] = -con.Separation/2, con.Separation/2
	f.A.Strength, f.B.Strength = con.Strength, -con.Strength
	return f
}
