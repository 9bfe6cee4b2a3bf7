package buffer

import (
	"github.com/phil-mansfield/curvature/geom"
)

var (
	// AxisColors are the colors of the x, y and z axes.
	AxisColors = [3]geom.Vec3{{1, 0.2, 0.2}, {0.2, 1, 0.2}, {0.3, 0.4, 1}}
)

// Axes builds three line segments from -length to +length along each axis.
func Axes(length float64) *PointCloud {
	pc := New(Segments, 6)
	for i := 0; i < 3; i++ {
		var lo, hi geom.Vec3
		lo[i], hi[i] = -length, length
		pc.AppendSegment(lo, hi, AxisColors[i])
	}
	return pc
}

// Grid builds a flat square grid of lines in the z = 0 plane with n cells
// along each side, spanning [-extent, extent].
func Grid(n int, extent float64, color geom.Vec3) *PointCloud {
	if n <= 0 {
		panic("Grid needs a positive number of cells.")
	}
	pc := New(Segments, 4*(n+1))
	for i := 0; i <= n; i++ {
		c := -extent + 2*extent*float64(i)/float64(n)
		pc.AppendSegment(geom.Vec3{c, -extent, 0}, geom.Vec3{c, extent, 0}, color)
		pc.AppendSegment(geom.Vec3{-extent, c, 0}, geom.Vec3{extent, c, 0}, color)
	}
	return pc
}

// Polyline converts a sequence of points into line segments between
// consecutive points. Segments touching a hidden point are emitted with both
// endpoints hidden so the renderer never draws a line to the sentinel.
func Polyline(pc *PointCloud, pts []geom.Vec3, color geom.Vec3) {
	if pc.Mode != Segments {
		panic("Polyline requires a Segments buffer.")
	}
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		if IsHidden(a) || IsHidden(b) {
			pc.AppendHidden(color)
			pc.AppendHidden(color)
			continue
		}
		pc.AppendSegment(a, b, color)
	}
}
