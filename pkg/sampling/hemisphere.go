// Package sampling generates the stratified direction set the brick
// task casts rays along to vote a voxel inside or outside the mesh.
package sampling

import (
	"math"
	"math/rand"

	"github.com/Locietta/distance-field-playground/pkg/geometry"
)

// concentricMap maps a point in [-1,1]^2 to the unit hemisphere using
// the Shirley-Chiu low-distortion disk-to-square map. uv must already be
// in [-1,1]^2 (the caller maps the stratified [0,1) cell fraction).
func concentricMap(u, v float64) geometry.Vec3 {
	if u == 0 && v == 0 {
		return geometry.Vec3{}
	}

	var r, theta float64
	if math.Abs(u) > math.Abs(v) {
		r = u
		theta = math.Pi / 4 * (v / u)
	} else {
		r = v
		theta = math.Pi/2 - math.Pi/4*(u/v)
	}

	sampleU := r * math.Cos(theta)
	sampleV := r * math.Sin(theta)
	r2 := r * r

	return geometry.Vec3{
		X: sampleU * math.Sqrt(2-r2),
		Y: sampleV * math.Sqrt(2-r2),
		Z: 1 - r2,
	}
}

// StratifiedHemisphere draws m*m stratified samples over the unit
// hemisphere, m = floor(sqrt(n)). Each of the m*m cells draws two
// independent uniforms from rng and jitters within the cell before
// mapping through the concentric disk-to-hemisphere map.
//
// Note: frac2 is intentionally built from the x-axis cell index, not the
// y-axis one — this mirrors a stratification bug present in the
// original implementation (see SPEC_FULL.md Open Question decisions)
// and is preserved for output reproducibility rather than fixed.
func StratifiedHemisphere(n int, rng *rand.Rand) []geometry.Vec3 {
	m := int(math.Sqrt(float64(n)))
	samples := make([]geometry.Vec3, 0, m*m)

	for x := 0; x < m; x++ {
		for y := 0; y < m; y++ {
			u1 := rng.Float64()
			u2 := rng.Float64()

			frac1 := (float64(x) + u1) / float64(m)
			frac2 := (float64(x) + u2) / float64(m)

			samples = append(samples, concentricMap(frac1*2-1, frac2*2-1))
		}
	}

	return samples
}

// SphereDirections builds the full-sphere direction set the brick task
// votes inside/outside along: m*m stratified samples over the upper
// hemisphere, plus m*m more over the lower hemisphere obtained by negating
// the z component of an independent draw. |directions| == 2*m*m where
// m = floor(sqrt(n)).
func SphereDirections(n int, rng *rand.Rand) []geometry.Vec3 {
	upper := StratifiedHemisphere(n, rng)
	lower := StratifiedHemisphere(n, rng)

	directions := make([]geometry.Vec3, 0, len(upper)+len(lower))
	directions = append(directions, upper...)
	for _, d := range lower {
		directions = append(directions, geometry.Vec3{X: d.X, Y: d.Y, Z: -d.Z})
	}

	return directions
}
