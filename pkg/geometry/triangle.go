package geometry

import "log"

// OnDegenerateTriangle is called when ClosestPointOnTriangle hits the
// impossible 111 region mask (all three edge planes report the query on
// their positive side, which cannot happen for a non-degenerate
// triangle). Builders that want the diagnostic routed through a
// rate-limited structured logger should replace this hook during
// startup; the default just logs to the standard logger, matching the
// original's unconditional stderr print.
var OnDegenerateTriangle = func(p, a, b, c Vec3) {
	log.Printf("geometry: impossible region mask in ClosestPointOnTriangle for p=%v a=%v b=%v c=%v", p, a, b, c)
}

// ClosestPointOnSegment projects P onto the line through A-B, clamping
// the interpolation parameter to [0,1].
//
// Formula: t = clamp(dot(P-A, B-A) / dot(B-A, B-A), 0, 1); A + t*(B-A)
func ClosestPointOnSegment(p, a, b Vec3) Vec3 {
	segment := b.Sub(a)
	toPoint := p.Sub(a)

	dot1 := Dot(toPoint, segment)
	if dot1 <= 0 {
		return a
	}

	dot2 := Dot(segment, segment)
	if dot2 <= dot1 {
		return b
	}

	return a.Add(segment.Scale(dot1 / dot2))
}

// ClosestPointOnTriangle returns the closest point to P on triangle ABC
// using the 7-region Voronoi classification: three "edge planes" through
// BA, AC, CB whose normals are cross(n, edge) partition space into the
// interior region, three edge regions and three vertex regions. All
// arithmetic is double precision.
func ClosestPointOnTriangle(p, a, b, c Vec3) Vec3 {
	ba := a.Sub(b)
	ac := c.Sub(a)
	cb := b.Sub(c)
	normal := Cross(ba, cb).Normalize(degenerateNormalEpsilon)

	planes := [3]Plane{
		NewPlane(b, Cross(normal, ba)),
		NewPlane(a, Cross(normal, ac)),
		NewPlane(c, Cross(normal, cb)),
	}

	mask := 0
	for i, pl := range planes {
		if pl.PlaneDot(p) > 0 {
			mask |= 1 << i
		}
	}

	switch mask {
	case 0: // 000 inside triangle
		return NewPlaneFromTriangle(a, b, c).PointProjection(p)
	case 1: // 001 beyond edge BA
		return ClosestPointOnSegment(p, b, a)
	case 2: // 010 beyond edge AC
		return ClosestPointOnSegment(p, a, c)
	case 3: // 011 near vertex A
		return a
	case 4: // 100 beyond edge CB
		return ClosestPointOnSegment(p, b, c)
	case 5: // 101 near vertex B
		return b
	case 6: // 110 near vertex C
		return c
	default: // 111 impossible
		OnDegenerateTriangle(p, a, b, c)
		return p
	}
}
