package geometry

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max Vec3
}

func (b Box) Size() Vec3   { return b.Max.Sub(b.Min) }
func (b Box) Extent() Vec3 { return b.Size().Scale(0.5) }
func (b Box) Center() Vec3 { return b.Min.Add(b.Max).Scale(0.5) }

// ExpandBy grows the box by v on every face, i.e. min -= v, max += v.
func (b Box) ExpandBy(v Vec3) Box {
	return Box{Min: b.Min.Sub(v), Max: b.Max.Add(v)}
}

// WithMinExtent returns a box centered the same as b whose extent is
// raised component-wise to at least minExtent.
func (b Box) WithMinExtent(minExtent Vec3) Box {
	center := b.Center()
	extent := MaxVec3(b.Extent(), minExtent)
	return Box{Min: center.Sub(extent), Max: center.Add(extent)}
}
