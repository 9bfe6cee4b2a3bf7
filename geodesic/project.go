package geodesic

import (
	"math"

	"github.com/phil-mansfield/curvature/buffer"
	"github.com/phil-mansfield/curvature/geom"
)

// Projection maps a trajectory coordinate onto a point in the scene.
type Projection func(x []float64) geom.Vec3

// SpaceTime draws a space-time diagram: the first spatial coordinate runs
// along the scene's x axis and time runs up the y axis.
func SpaceTime(x []float64) geom.Vec3 {
	return geom.Vec3{x[1], x[0], 0}
}

// Spatial drops the time coordinate of a four-position.
func Spatial(x []float64) geom.Vec3 {
	return geom.Vec4{x[0], x[1], x[2], x[3]}.Spatial()
}

// OnSphere places (theta, phi) coordinates on a sphere of radius r, with the
// y axis pointing through theta = 0.
func OnSphere(r float64) Projection {
	return func(x []float64) geom.Vec3 {
		sin, cos := math.Sincos(x[0])
		return geom.Vec3{
			r * sin * math.Cos(x[1]),
			r * cos,
			r * sin * math.Sin(x[1]),
		}
	}
}

// Positions projects every point, replacing hidden points with the buffer
// sentinel.
func (tr Trajectory) Positions(proj Projection) []geom.Vec3 {
	out := make([]geom.Vec3, len(tr))
	for i, pt := range tr {
		if pt.Hidden {
			out[i] = buffer.Hidden()
		} else {
			out[i] = proj(pt.X)
		}
	}
	return out
}

// AppendTo writes the trajectory into pc. Segments buffers receive one
// segment per step, Points buffers one point per sample.
func (tr Trajectory) AppendTo(pc *buffer.PointCloud, proj Projection, color geom.Vec3) {
	pts := tr.Positions(proj)
	switch pc.Mode {
	case buffer.Segments:
		buffer.Polyline(pc, pts, color)
	default:
		for _, p := range pts {
			pc.Append(p, color)
		}
	}
}

// Pose returns a pose for an object sitting on point i of the trajectory and
// facing along the direction of travel. ok is false if the point, or the
// point used to find the direction, is hidden.
func (tr Trajectory) Pose(i int, proj Projection) (pose geom.Pose, ok bool) {
	if i < 0 || i >= len(tr) || tr[i].Hidden {
		return geom.Pose{}, false
	}

	j, k := i, i+1
	if k >= len(tr) || tr[k].Hidden {
		j, k = i-1, i
	}
	if j < 0 || tr[j].Hidden {
		return geom.Pose{}, false
	}

	pos := proj(tr[i].X)
	dir := proj(tr[k].X).Sub(proj(tr[j].X))

	pose = geom.NewPose(pos)
	// Yaw about y, then pitch about the rotated x axis.
	pose.Rotation[1] = math.Atan2(dir[0], dir[2])
	pose.Rotation[0] = -math.Atan2(dir[1], math.Hypot(dir[0], dir[2]))
	return pose, true
}
