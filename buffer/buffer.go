/*package buffer contains the flat position and color buffers handed to the
renderer, along with builders for the static scene furniture (axes and
grids) and an instance-scoped cache for buffers that depend on a single
animation parameter.

Positions and colors are interleaved float32 triples. A point which should
not be drawn is written with its x coordinate set to Sentinel; this is the
only place where hidden points are represented numerically.
*/
package buffer

import (
	"fmt"

	"github.com/phil-mansfield/curvature/geom"
)

// Sentinel is the x coordinate given to hidden points. Renderers place it
// far outside of the visible scene.
const Sentinel = 1000

// Mode tells the renderer how to interpret a buffer.
type Mode int

const (
	// Points draws every position as a separate point.
	Points Mode = iota
	// Segments draws consecutive pairs of positions as line segments.
	Segments
)

func (m Mode) String() string {
	switch m {
	case Points:
		return "points"
	case Segments:
		return "segments"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode is the inverse of Mode.String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "points":
		return Points, nil
	case "segments":
		return Segments, nil
	}
	return 0, fmt.Errorf("Unrecognized draw mode '%s'.", s)
}

// PointCloud is a flat buffer of positions and a parallel buffer of colors.
type PointCloud struct {
	Mode      Mode
	Positions []float32
	Colors    []float32
}

// New creates an empty PointCloud with room for n points.
func New(mode Mode, n int) *PointCloud {
	return &PointCloud{
		Mode:      mode,
		Positions: make([]float32, 0, 3*n),
		Colors:    make([]float32, 0, 3*n),
	}
}

// Count returns the number of points in the buffer.
func (pc *PointCloud) Count() int { return len(pc.Positions) / 3 }

// Append adds a visible point.
func (pc *PointCloud) Append(p, color geom.Vec3) {
	pc.Positions = append(pc.Positions,
		float32(p[0]), float32(p[1]), float32(p[2]))
	pc.Colors = append(pc.Colors,
		float32(color[0]), float32(color[1]), float32(color[2]))
}

// AppendHidden adds a point which the renderer will not show.
func (pc *PointCloud) AppendHidden(color geom.Vec3) {
	pc.Append(Hidden(), color)
}

// AppendSegment adds the two endpoints of a line segment.
func (pc *PointCloud) AppendSegment(a, b, color geom.Vec3) {
	pc.Append(a, color)
	pc.Append(b, color)
}

// Point returns the i-th position.
func (pc *PointCloud) Point(i int) geom.Vec3 {
	return geom.Vec3{
		float64(pc.Positions[3*i]),
		float64(pc.Positions[3*i+1]),
		float64(pc.Positions[3*i+2]),
	}
}

// Color returns the i-th color.
func (pc *PointCloud) Color(i int) geom.Vec3 {
	return geom.Vec3{
		float64(pc.Colors[3*i]),
		float64(pc.Colors[3*i+1]),
		float64(pc.Colors[3*i+2]),
	}
}

// SetPoint overwrites the i-th position in place.
func (pc *PointCloud) SetPoint(i int, p geom.Vec3) {
	pc.Positions[3*i] = float32(p[0])
	pc.Positions[3*i+1] = float32(p[1])
	pc.Positions[3*i+2] = float32(p[2])
}

// SetColor overwrites the i-th color in place.
func (pc *PointCloud) SetColor(i int, c geom.Vec3) {
	pc.Colors[3*i] = float32(c[0])
	pc.Colors[3*i+1] = float32(c[1])
	pc.Colors[3*i+2] = float32(c[2])
}

// Visible returns the number of points which are not hidden.
func (pc *PointCloud) Visible() int {
	n := 0
	for i := 0; i < pc.Count(); i++ {
		if !IsHidden(pc.Point(i)) {
			n++
		}
	}
	return n
}

// Hidden returns the position used for points which should not be drawn.
func Hidden() geom.Vec3 { return geom.Vec3{Sentinel, 0, 0} }

// IsHidden returns true if p is the hidden sentinel position.
func IsHidden(p geom.Vec3) bool { return p[0] == Sentinel }
