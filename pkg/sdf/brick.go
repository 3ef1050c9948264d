package sdf

import (
	"math"

	"github.com/Locietta/distance-field-playground/internal/quantization"
	"github.com/Locietta/distance-field-playground/pkg/accel"
	"github.com/Locietta/distance-field-playground/pkg/geometry"
)

// searchRadiusFactor widens the closest-point query beyond the trace
// distance so a voxel at the band edge still gets a tight radius after
// the traversal's first hit (the radius-shrinking contract of spec
// §4.3). Spec resolves the "1.5 vs 2" open question in favor of the
// newer 1.5 factor.
const searchRadiusFactor = 1.5

// pullbackEpsilon nudges the ray-cast origin off the surface along the
// sample direction before casting, so the ray doesn't immediately
// self-intersect the surface it started on.
const pullbackEpsilon = 1e-4

// BrickTask computes one BrickSize^3 quantized distance brick at a given
// indirection coordinate. All inputs are read-only and borrowed; a task
// owns no state beyond its own output.
type BrickTask struct {
	Scene                accel.Scene
	SampleDirections     []geometry.Vec3
	TraceDistance        float64 // mip-local narrow-band half-width, D
	VolumeBounds         geometry.Box
	BrickCoord           geometry.IVec3
	IndirectionVoxelSize geometry.Vec3

	// Outputs, populated by Execute.
	Volume [BrickVoxelCount]byte
	Min    byte
	Max    byte
}

// Execute fills Volume and computes Min/Max. It is safe to call from any
// goroutine; a task mutates only its own fields and reads only
// immutable, shared inputs (the scene, the direction set, the bounds).
func (t *BrickTask) Execute() {
	voxelSize := t.IndirectionVoxelSize.Scale(1.0 / UniqueDataBrickSize)
	brickMin := t.VolumeBounds.Min.Add(t.BrickCoord.ToVec3().Mul(t.IndirectionVoxelSize))

	q := quantization.NewDistanceQuantizer(t.TraceDistance)

	t.Min = math.MaxUint8
	t.Max = 0

	for z := 0; z < BrickSize; z++ {
		for y := 0; y < BrickSize; y++ {
			for x := 0; x < BrickSize; x++ {
				offset := geometry.Vec3{X: float64(x), Y: float64(y), Z: float64(z)}.Mul(voxelSize)
				p := brickMin.Add(offset)

				d := t.Scene.ClosestDistance(p, searchRadiusFactor*t.TraceDistance)

				if d <= t.TraceDistance {
					if t.voteInside(p, d) {
						d = -d
					}
				}

				encoded := q.Encode(d)

				idx := z*BrickSize*BrickSize + y*BrickSize + x
				t.Volume[idx] = encoded

				if encoded < t.Min {
					t.Min = encoded
				}
				if encoded > t.Max {
					t.Max = encoded
				}
			}
		}
	}
}

// voteInside casts a ray from p along every sample direction, capped at
// the trace distance, and counts "back hits" — hits whose normalized
// geometric normal faces the same way as the ray. If more than a
// quarter of the directions report a back hit, the voxel is classified
// as inside the mesh.
func (t *BrickTask) voteInside(p geometry.Vec3, d float64) bool {
	backHits := 0

	for _, dir := range t.SampleDirections {
		start := p.Sub(dir.Scale(pullbackEpsilon * t.TraceDistance))

		hit, ok := t.Scene.RayCast(start, dir, t.TraceDistance)
		if !ok {
			continue
		}

		normal := hit.Normal.Normalize(1e-16)
		if geometry.Dot(dir, normal) > 0 {
			backHits++
		}
	}

	return backHits > len(t.SampleDirections)/4
}

// IsEmpty reports whether every quantized voxel is either 0 (entirely
// outside the band) or 255 (entirely inside the band), i.e. the brick
// carries no useful near-surface information and can be dropped.
func (t *BrickTask) IsEmpty() bool {
	return t.Max == 0 || t.Min == 255
}
