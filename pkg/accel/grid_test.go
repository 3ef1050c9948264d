package accel

import (
	"math"
	"testing"

	"github.com/Locietta/distance-field-playground/pkg/geometry"
	"github.com/Locietta/distance-field-playground/pkg/mesh"
)

// singleTriangleMesh builds a single triangle in the z=0 plane spanning
// (0,0,0)-(1,0,0)-(0,1,0).
func singleTriangleMesh() *mesh.Mesh {
	return &mesh.Mesh{
		Vertices: []geometry.Vec3{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0},
		},
		Triangles: []mesh.Triangle{{0, 1, 2}},
	}
}

func TestGrid_ClosestDistance(t *testing.T) {
	g := NewGrid(singleTriangleMesh())

	d := g.ClosestDistance(geometry.Vec3{X: 0.2, Y: 0.2, Z: 5}, 100)
	if math.Abs(d-5) > 1e-6 {
		t.Errorf("ClosestDistance = %v, want ~5", d)
	}
}

func TestGrid_ClosestDistance_ClampsToMaxRadius(t *testing.T) {
	g := NewGrid(singleTriangleMesh())

	d := g.ClosestDistance(geometry.Vec3{X: 0.2, Y: 0.2, Z: 1000}, 1)
	if d != 1 {
		t.Errorf("ClosestDistance = %v, want clamped to maxRadius 1", d)
	}
}

func TestGrid_RayCast_Hit(t *testing.T) {
	g := NewGrid(singleTriangleMesh())

	hit, ok := g.RayCast(geometry.Vec3{X: 0.2, Y: 0.2, Z: 5}, geometry.Vec3{X: 0, Y: 0, Z: -1}, 10)
	if !ok {
		t.Fatal("expected a hit")
	}
	if math.Abs(hit.T-5) > 1e-6 {
		t.Errorf("hit.T = %v, want ~5", hit.T)
	}
	n := hit.Normal.Normalize(1e-16)
	if math.Abs(math.Abs(n.Z)-1) > 1e-6 {
		t.Errorf("hit normal %v not aligned with +-Z", n)
	}
}

func TestGrid_RayCast_Miss(t *testing.T) {
	g := NewGrid(singleTriangleMesh())

	_, ok := g.RayCast(geometry.Vec3{X: 5, Y: 5, Z: 5}, geometry.Vec3{X: 0, Y: 0, Z: -1}, 10)
	if ok {
		t.Error("expected no hit for a ray over empty space")
	}
}

func TestGrid_DegenerateBoundsDoesNotPanic(t *testing.T) {
	// A mesh whose vertices are all coincident has a zero-volume bounds
	// box; NewGrid must still produce a usable cell size.
	m := &mesh.Mesh{
		Vertices: []geometry.Vec3{
			{X: 1, Y: 1, Z: 1},
			{X: 1, Y: 1, Z: 1},
			{X: 1, Y: 1, Z: 1},
		},
		Triangles: []mesh.Triangle{{0, 1, 2}},
	}

	g := NewGrid(m)
	_ = g.ClosestDistance(geometry.Vec3{X: 0, Y: 0, Z: 0}, 10)
}
