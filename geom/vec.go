package geom

import (
	"math"
)

// Vec2 is a two dimensional vector.
type Vec2 [2]float64

// Vec3 is a three dimensional vector.
type Vec3 [3]float64

// Vec4 is a space-time four-vector with the time component at index 0.
type Vec4 [4]float64

// Pose places a sub-object (an arrow, a label) in a scene.
type Pose struct {
	Position, Rotation, Scale Vec3
}

// NewPose returns a pose at the given position with no rotation and unit
// scale.
func NewPose(pos Vec3) Pose {
	return Pose{Position: pos, Scale: Vec3{1, 1, 1}}
}

func (v Vec2) Add(u Vec2) Vec2 { return Vec2{v[0] + u[0], v[1] + u[1]} }
func (v Vec2) Sub(u Vec2) Vec2 { return Vec2{v[0] - u[0], v[1] - u[1]} }
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v[0] * k, v[1] * k} }
func (v Vec2) Dot(u Vec2) float64 { return v[0]*u[0] + v[1]*u[1] }
func (v Vec2) Norm() float64 { return math.Sqrt(v.Dot(v)) }

func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{v[0] + u[0], v[1] + u[1], v[2] + u[2]}
}

func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{v[0] - u[0], v[1] - u[1], v[2] - u[2]}
}

func (v Vec3) Scale(k float64) Vec3 { return Vec3{v[0] * k, v[1] * k, v[2] * k} }

func (v Vec3) Dot(u Vec3) float64 { return v[0]*u[0] + v[1]*u[1] + v[2]*u[2] }

// Cross computes v x u.
func (v Vec3) Cross(u Vec3) Vec3 {
	return Vec3{
		v[1]*u[2] - v[2]*u[1],
		v[2]*u[0] - v[0]*u[2],
		v[0]*u[1] - v[1]*u[0],
	}
}

func (v Vec3) Norm() float64 { return math.Sqrt(v.Dot(v)) }

// Norm2 returns the squared length of v.
func (v Vec3) Norm2() float64 { return v.Dot(v) }

// Dist returns the distance between v and u.
func (v Vec3) Dist(u Vec3) float64 { return v.Sub(u).Norm() }

// Unit returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec3) Unit() Vec3 {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return v.Scale(1 / n)
}

// ClampNorm returns v rescaled so that its length is at most max.
func (v Vec3) ClampNorm(max float64) Vec3 {
	n := v.Norm()
	if n <= max || n == 0 {
		return v
	}
	return v.Scale(max / n)
}

// Finite returns true if no component is NaN or infinite.
func (v Vec3) Finite() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func (v Vec4) Add(u Vec4) Vec4 {
	return Vec4{v[0] + u[0], v[1] + u[1], v[2] + u[2], v[3] + u[3]}
}

func (v Vec4) Sub(u Vec4) Vec4 {
	return Vec4{v[0] - u[0], v[1] - u[1], v[2] - u[2], v[3] - u[3]}
}

func (v Vec4) Scale(k float64) Vec4 {
	return Vec4{v[0] * k, v[1] * k, v[2] * k, v[3] * k}
}

// Spatial returns the three spatial components of a four-vector.
func (v Vec4) Spatial() Vec3 { return Vec3{v[1], v[2], v[3]} }
