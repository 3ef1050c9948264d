// Package mesh holds the triangle-soup input to the distance field
// builder: an ordered vertex buffer and an ordered triangle index
// buffer, consumed read-only by everything downstream.
package mesh

import (
	"math"

	"github.com/Locietta/distance-field-playground/pkg/geometry"
)

// Triangle is a triple of vertex indices into Mesh.Vertices.
type Triangle [3]uint32

// Mesh is a triangle soup in local (object) space.
type Mesh struct {
	Vertices  []geometry.Vec3
	Triangles []Triangle
}

// Bounds returns the axis-aligned bounding box of the mesh's vertices.
// For an empty mesh it returns the degenerate box at the origin.
func (m *Mesh) Bounds() geometry.Box {
	if len(m.Vertices) == 0 {
		return geometry.Box{}
	}

	min := geometry.Vec3{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	max := geometry.Vec3{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}

	for _, v := range m.Vertices {
		min = geometry.MinVec3(min, v)
		max = geometry.MaxVec3(max, v)
	}

	return geometry.Box{Min: min, Max: max}
}

// TrianglePositions returns the three vertex positions of triangle t.
func (m *Mesh) TrianglePositions(t Triangle) (a, b, c geometry.Vec3) {
	return m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]
}
