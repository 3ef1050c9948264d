package accel

import (
	"math"

	"github.com/Locietta/distance-field-playground/pkg/geometry"
	"github.com/Locietta/distance-field-playground/pkg/mesh"
)

// Grid is a uniform spatial grid of triangle-index buckets: each cell
// holds the indices of every triangle whose AABB overlaps it. It borrows
// the mesh's vertex/index buffers and owns only the bucket structure
// itself, matching the "borrowed buffers, cheap per-task handle"
// contract spec §4.3 describes for the adapter.
//
// Grounded on xernobyl/mesh2distance's createTriangleLists (bucketing by
// AABB overlap) and distanceUsingList (expanding-ring closest search),
// combined with the radius-shrinking point-query callback contract
// embree's point-query traversal exposes.
type Grid struct {
	mesh *mesh.Mesh
	bounds geometry.Box
	dims   [3]int
	cell   geometry.Vec3 // size of one cell
	bucket [][]uint32    // len(dims.x*dims.y*dims.z), triangle indices
}

// NewGrid builds a uniform grid over mesh's bounding box, sized so that
// each axis has roughly one cell per cube-root of the triangle count,
// clamped to a sane range.
func NewGrid(m *mesh.Mesh) *Grid {
	bounds := m.Bounds()
	// guard a degenerate (zero-volume) bounds so cell size is never zero
	bounds = bounds.ExpandBy(geometry.Vec3{X: 1e-4, Y: 1e-4, Z: 1e-4})

	n := len(m.Triangles)
	res := int(math.Cbrt(float64(n)))
	if res < 1 {
		res = 1
	}
	if res > 64 {
		res = 64
	}

	g := &Grid{
		mesh:   m,
		bounds: bounds,
		dims:   [3]int{res, res, res},
	}

	size := bounds.Size()
	g.cell = geometry.Vec3{X: size.X / float64(res), Y: size.Y / float64(res), Z: size.Z / float64(res)}

	g.bucket = make([][]uint32, res*res*res)
	for ti, tri := range m.Triangles {
		a, b, c := m.TrianglePositions(tri)
		triMin := geometry.MinVec3(a, geometry.MinVec3(b, c))
		triMax := geometry.MaxVec3(a, geometry.MaxVec3(b, c))

		minCell := g.cellCoordClamped(triMin)
		maxCell := g.cellCoordClamped(triMax)

		for z := minCell[2]; z <= maxCell[2]; z++ {
			for y := minCell[1]; y <= maxCell[1]; y++ {
				for x := minCell[0]; x <= maxCell[0]; x++ {
					idx := g.cellIndex(x, y, z)
					g.bucket[idx] = append(g.bucket[idx], uint32(ti))
				}
			}
		}
	}

	return g
}

func (g *Grid) cellCoordClamped(p geometry.Vec3) [3]int {
	rel := p.Sub(g.bounds.Min)
	coord := [3]int{
		int(rel.X / g.cell.X),
		int(rel.Y / g.cell.Y),
		int(rel.Z / g.cell.Z),
	}
	for i, d := range g.dims {
		if coord[i] < 0 {
			coord[i] = 0
		}
		if coord[i] >= d {
			coord[i] = d - 1
		}
	}
	return coord
}

func (g *Grid) cellIndex(x, y, z int) int {
	return (z*g.dims[1]+y)*g.dims[0] + x
}

// ClosestDistance implements an expanding-ring search: rings of cells at
// increasing Chebyshev distance from p's cell are visited; the running
// best distance shrinks the effective search radius so once a ring's
// nearest possible point is farther than the current best, the search
// stops — the same early-exit spec §4.3 requires of the point-query
// callback's radius shrinking.
func (g *Grid) ClosestDistance(p geometry.Vec3, maxRadius float64) float64 {
	center := g.cellCoordClamped(p)
	bestSq := maxRadius * maxRadius
	minCellDim := math.Min(g.cell.X, math.Min(g.cell.Y, g.cell.Z))

	maxDim := g.dims[0]
	if g.dims[1] > maxDim {
		maxDim = g.dims[1]
	}
	if g.dims[2] > maxDim {
		maxDim = g.dims[2]
	}

	for layer := 0; layer <= maxDim; layer++ {
		// once a full ring away, any triangle beyond is at least
		// (layer-1)*minCellDim from p; stop once that exceeds the best
		// found so far.
		if layer > 0 {
			ringMinDist := float64(layer-1) * minCellDim
			if ringMinDist*ringMinDist > bestSq {
				break
			}
		}

		g.forEachCellInRing(center, layer, func(x, y, z int) {
			for _, ti := range g.bucket[g.cellIndex(x, y, z)] {
				a, b, c := g.mesh.TrianglePositions(g.mesh.Triangles[ti])
				closest := geometry.ClosestPointOnTriangle(p, a, b, c)
				d := closest.Sub(p)
				distSq := d.LengthSq()
				if distSq < bestSq {
					bestSq = distSq
				}
			}
		})
	}

	best := math.Sqrt(bestSq)
	if best > maxRadius {
		return maxRadius
	}
	return best
}

// forEachCellInRing calls fn for every in-bounds cell at Chebyshev
// distance exactly `layer` from center.
func (g *Grid) forEachCellInRing(center [3]int, layer int, fn func(x, y, z int)) {
	if layer == 0 {
		fn(center[0], center[1], center[2])
		return
	}

	inBounds := func(x, y, z int) bool {
		return x >= 0 && x < g.dims[0] && y >= 0 && y < g.dims[1] && z >= 0 && z < g.dims[2]
	}

	lo := [3]int{center[0] - layer, center[1] - layer, center[2] - layer}
	hi := [3]int{center[0] + layer, center[1] + layer, center[2] + layer}

	for z := lo[2]; z <= hi[2]; z++ {
		for y := lo[1]; y <= hi[1]; y++ {
			for x := lo[0]; x <= hi[0]; x++ {
				onShell := x == lo[0] || x == hi[0] || y == lo[1] || y == hi[1] || z == lo[2] || z == hi[2]
				if onShell && inBounds(x, y, z) {
					fn(x, y, z)
				}
			}
		}
	}
}

// RayCast marches the ray in steps of half the smallest cell dimension, collecting candidate
// triangles from every cell it passes through, then returns the nearest
// Möller-Trumbore hit within [0, tFar].
func (g *Grid) RayCast(origin, direction geometry.Vec3, tFar float64) (RayHit, bool) {
	minCellDim := math.Min(g.cell.X, math.Min(g.cell.Y, g.cell.Z))
	step := minCellDim * 0.5
	if step <= 0 {
		step = tFar
	}

	visited := make(map[int]struct{})
	candidates := make(map[uint32]struct{})

	for t := 0.0; t <= tFar; t += step {
		p := origin.Add(direction.Scale(t))
		coord := g.cellCoordClamped(p)
		idx := g.cellIndex(coord[0], coord[1], coord[2])
		if _, ok := visited[idx]; ok {
			continue
		}
		visited[idx] = struct{}{}
		for _, ti := range g.bucket[idx] {
			candidates[ti] = struct{}{}
		}
	}

	bestT := tFar
	var bestNormal geometry.Vec3
	hitAny := false

	for ti := range candidates {
		a, b, c := g.mesh.TrianglePositions(g.mesh.Triangles[ti])
		t, normal, ok := intersectTriangle(origin, direction, a, b, c, bestT)
		if !ok {
			continue
		}
		if !hitAny || t < bestT {
			bestT = t
			bestNormal = normal
			hitAny = true
		}
	}

	if !hitAny {
		return RayHit{}, false
	}
	return RayHit{T: bestT, Normal: bestNormal}, true
}
