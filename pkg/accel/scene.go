// Package accel adapts an acceleration structure to the two queries the
// brick task needs: closest-point-on-mesh distance, and ray casting with
// a geometric hit normal. Spec treats the acceleration structure itself
// as an external collaborator (a BVH such as Embree); this package
// defines that contract as an interface and ships one concrete
// implementation — a uniform spatial grid of triangle buckets — so the
// pipeline can run without a native BVH binding.
package accel

import "github.com/Locietta/distance-field-playground/pkg/geometry"

// RayHit is the result of a successful ray/triangle intersection: the
// hit parameter along the ray, and the geometric (un-normalized) face
// normal, as the traversal reports it. Callers normalize with a 1e-16
// squared-length epsilon per spec §4.3.
type RayHit struct {
	T      float64
	Normal geometry.Vec3
}

// Scene is the contract the brick task queries against. Implementations
// own no mesh state beyond borrowed vertex/index buffers; query contexts
// are expected to be cheap enough to create per brick-task execution.
type Scene interface {
	// ClosestDistance returns the distance from p to the nearest surface
	// point, or maxRadius if nothing is within maxRadius.
	ClosestDistance(p geometry.Vec3, maxRadius float64) float64

	// RayCast returns the nearest hit along direction from origin within
	// [0, tFar], or ok=false if nothing was hit.
	RayCast(origin, direction geometry.Vec3, tFar float64) (hit RayHit, ok bool)
}
