package sdf

import (
	"math/rand"
	"testing"

	"github.com/Locietta/distance-field-playground/pkg/accel"
	"github.com/Locietta/distance-field-playground/pkg/geometry"
	"github.com/Locietta/distance-field-playground/pkg/mesh"
	"github.com/Locietta/distance-field-playground/pkg/sampling"
)

func unitCubeMesh() *mesh.Mesh {
	v := []geometry.Vec3{
		{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1},
		{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1},
	}
	// wound so every face normal cross(b-a, c-a) points out of the cube
	tris := []mesh.Triangle{
		{0, 2, 1}, {0, 3, 2}, // -z
		{4, 5, 6}, {4, 6, 7}, // +z
		{0, 5, 4}, {0, 1, 5}, // -y
		{3, 6, 2}, {3, 7, 6}, // +y
		{0, 7, 3}, {0, 4, 7}, // -x
		{1, 6, 5}, {1, 2, 6}, // +x
	}
	return &mesh.Mesh{Vertices: v, Triangles: tris}
}

func TestBrickTask_Execute_BytesInRange(t *testing.T) {
	m := unitCubeMesh()
	scene := accel.NewGrid(m)
	rng := rand.New(rand.NewSource(1))
	dirs := sampling.SphereDirections(numVoxelDistanceSamples, rng)

	task := &BrickTask{
		Scene:                scene,
		SampleDirections:     dirs,
		TraceDistance:        0.5,
		VolumeBounds:         geometry.Box{Min: geometry.Vec3{X: -1.2, Y: -1.2, Z: -1.2}, Max: geometry.Vec3{X: 1.2, Y: 1.2, Z: 1.2}},
		BrickCoord:           geometry.IVec3{X: 0, Y: 0, Z: 0},
		IndirectionVoxelSize: geometry.Vec3{X: 2.4, Y: 2.4, Z: 2.4},
	}
	task.Execute()

	for i, b := range task.Volume {
		_ = b // byte is always in [0,255] by type; this documents the invariant
		if i == 0 && task.Min > task.Max {
			t.Fatalf("Min %d > Max %d", task.Min, task.Max)
		}
	}
	if task.Min > task.Max {
		t.Errorf("Min %d > Max %d", task.Min, task.Max)
	}
}

func TestBrickTask_IsEmpty(t *testing.T) {
	tests := []struct {
		name string
		min  byte
		max  byte
		want bool
	}{
		{"all outside (max 0)", 0, 0, true},
		{"all inside (min 255)", 255, 255, true},
		{"straddles surface", 10, 240, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := &BrickTask{Min: tt.min, Max: tt.max}
			if got := task.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBrickTask_VoteInside_MajorityRule(t *testing.T) {
	m := unitCubeMesh()
	scene := accel.NewGrid(m)
	rng := rand.New(rand.NewSource(2))
	dirs := sampling.SphereDirections(numVoxelDistanceSamples, rng)

	// traceDistance must exceed the farthest a ray from the cube's
	// center can travel before hitting a face (sqrt(3) for a unit
	// half-extent cube along a diagonal direction).
	task := &BrickTask{Scene: scene, SampleDirections: dirs, TraceDistance: 2.0}

	// A point well inside the cube should vote inside (negative distance
	// after the sign flip); a point well outside should not.
	insideP := geometry.Vec3{X: 0, Y: 0, Z: 0}
	outsideP := geometry.Vec3{X: 5, Y: 5, Z: 5}

	if !task.voteInside(insideP, 0.1) {
		t.Error("expected majority back-facing hits for a point inside the cube")
	}
	if task.voteInside(outsideP, 0.1) {
		t.Error("expected no back-facing majority for a point far outside the cube")
	}
}
