package geometry

import "testing"

func TestBox_SizeExtentCenter(t *testing.T) {
	b := Box{Min: Vec3{X: -1, Y: -2, Z: -3}, Max: Vec3{X: 1, Y: 2, Z: 3}}

	if size := b.Size(); size != (Vec3{X: 2, Y: 4, Z: 6}) {
		t.Errorf("Size = %v", size)
	}
	if extent := b.Extent(); extent != (Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("Extent = %v", extent)
	}
	if center := b.Center(); center != (Vec3{}) {
		t.Errorf("Center = %v, want origin", center)
	}
}

func TestBox_ExpandBy(t *testing.T) {
	b := Box{Min: Vec3{X: 0, Y: 0, Z: 0}, Max: Vec3{X: 1, Y: 1, Z: 1}}
	got := b.ExpandBy(Vec3{X: 0.5, Y: 0.5, Z: 0.5})
	want := Box{Min: Vec3{X: -0.5, Y: -0.5, Z: -0.5}, Max: Vec3{X: 1.5, Y: 1.5, Z: 1.5}}
	if got != want {
		t.Errorf("ExpandBy = %v, want %v", got, want)
	}
}

func TestBox_WithMinExtent(t *testing.T) {
	// A degenerate (zero-extent) box on one axis should be widened to
	// the given minimum extent, centered the same.
	b := Box{Min: Vec3{X: 5, Y: 0, Z: 0}, Max: Vec3{X: 5, Y: 2, Z: 2}}
	got := b.WithMinExtent(Vec3{X: 1, Y: 1, Z: 1})

	if got.Extent().X != 1 {
		t.Errorf("expanded extent.X = %v, want 1", got.Extent().X)
	}
	if got.Extent().Y != 1 {
		t.Errorf("unaffected extent.Y = %v, want 1 (unchanged from input)", got.Extent().Y)
	}
	if got.Center() != b.Center() {
		t.Errorf("WithMinExtent moved the center: got %v, want %v", got.Center(), b.Center())
	}
}
