// Package geometry implements the closest-point primitives the distance
// field builder traces rays and queries against: segment/triangle
// projection in double precision, and the axis-aligned bounding box used
// to describe mesh and volume bounds.
package geometry

import "math"

// Vec3 is a 3-component vector. All geometry kernel arithmetic is double
// precision regardless of the precision of its inputs.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Mul is component-wise multiplication.
func (v Vec3) Mul(o Vec3) Vec3 { return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }

// Div is component-wise division.
func (v Vec3) Div(o Vec3) Vec3 { return Vec3{v.X / o.X, v.Y / o.Y, v.Z / o.Z} }

func Dot(a, b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func Cross(a, b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func (v Vec3) LengthSq() float64 { return Dot(v, v) }
func (v Vec3) Length() float64   { return math.Sqrt(v.LengthSq()) }

// Normalize returns the unit vector, or the zero vector if v is shorter
// than the given squared-length epsilon (mirrors the ray-hit-normal
// epsilon required by spec: 1e-16 applied to the squared length).
func (v Vec3) Normalize(sqEpsilon float64) Vec3 {
	sq := v.LengthSq()
	if sq < sqEpsilon {
		return Vec3{}
	}
	return v.Scale(1 / math.Sqrt(sq))
}

func MaxComponent(v Vec3) float64 {
	return math.Max(v.X, math.Max(v.Y, v.Z))
}

// MaxVec3 and MinVec3 are component-wise max/min, used for bounds math.
func MaxVec3(a, b Vec3) Vec3 {
	return Vec3{math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)}
}

func MinVec3(a, b Vec3) Vec3 {
	return Vec3{math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)}
}
