package accel

import "github.com/Locietta/distance-field-playground/pkg/geometry"

// hitNormalEpsilonSq is the squared-length epsilon spec §4.3 mandates
// for normalizing a ray hit's geometric face normal.
const hitNormalEpsilonSq = 1e-16

// intersectTriangle is the standard Möller-Trumbore ray/triangle test.
// It returns the hit distance t and the triangle's geometric
// (un-normalized) face normal cross(b-a, c-a); ok is false if the ray
// misses, is parallel to the plane, or the hit falls outside [0, tFar].
func intersectTriangle(origin, direction, a, b, c geometry.Vec3, tFar float64) (t float64, normal geometry.Vec3, ok bool) {
	const epsilon = 1e-12

	edge1 := b.Sub(a)
	edge2 := c.Sub(a)
	normal = geometry.Cross(edge1, edge2)

	pvec := geometry.Cross(direction, edge2)
	det := geometry.Dot(edge1, pvec)
	if det > -epsilon && det < epsilon {
		return 0, normal, false
	}
	invDet := 1 / det

	tvec := origin.Sub(a)
	u := geometry.Dot(tvec, pvec) * invDet
	if u < 0 || u > 1 {
		return 0, normal, false
	}

	qvec := geometry.Cross(tvec, edge1)
	v := geometry.Dot(direction, qvec) * invDet
	if v < 0 || u+v > 1 {
		return 0, normal, false
	}

	hitT := geometry.Dot(edge2, qvec) * invDet
	if hitT < 0 || hitT > tFar {
		return 0, normal, false
	}

	return hitT, normal, true
}
