package sdf

import (
	"bytes"
	"testing"

	"github.com/Locietta/distance-field-playground/pkg/geometry"
)

func TestSerializeDeserialize_RoundTrip_Empty(t *testing.T) {
	v := &VolumeData{}
	var buf bytes.Buffer

	if err := Serialize(&buf, v); err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	got, err := Deserialize(&buf)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}

	if got.LocalSpaceMeshBounds != v.LocalSpaceMeshBounds {
		t.Errorf("bounds = %v, want %v", got.LocalSpaceMeshBounds, v.LocalSpaceMeshBounds)
	}
	if len(got.AlwaysLoadedMip) != 0 || len(got.StreamableMips) != 0 {
		t.Error("expected empty buffers to round-trip as empty")
	}
}

func TestSerializeDeserialize_RoundTrip_Generated(t *testing.T) {
	m := unitCubeMesh()
	v, err := Generate(m, m.Bounds(), DefaultConfig())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	var buf bytes.Buffer
	if err := Serialize(&buf, v); err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	got, err := Deserialize(&buf)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}

	if got.LocalSpaceMeshBounds != v.LocalSpaceMeshBounds {
		t.Errorf("bounds = %v, want %v", got.LocalSpaceMeshBounds, v.LocalSpaceMeshBounds)
	}
	for k := range v.Mips {
		if got.Mips[k] != v.Mips[k] {
			t.Errorf("mip %d = %+v, want %+v", k, got.Mips[k], v.Mips[k])
		}
	}
	if !bytes.Equal(got.AlwaysLoadedMip, v.AlwaysLoadedMip) {
		t.Error("always-loaded mip bytes differ after round-trip")
	}
	if !bytes.Equal(got.StreamableMips, v.StreamableMips) {
		t.Error("streamable mips bytes differ after round-trip")
	}
}

func TestWriteReadBounds_RoundTrip(t *testing.T) {
	b := geometry.Box{Min: geometry.Vec3{X: -1.5, Y: 2, Z: 0}, Max: geometry.Vec3{X: 3, Y: 4.25, Z: 9}}
	var buf bytes.Buffer

	if err := writeBounds(&buf, b); err != nil {
		t.Fatalf("writeBounds: %v", err)
	}
	got, err := readBounds(&buf)
	if err != nil {
		t.Fatalf("readBounds: %v", err)
	}
	if got != b {
		t.Errorf("round-tripped bounds = %v, want %v", got, b)
	}
}

func TestWriteReadLengthPrefixed_RoundTrip(t *testing.T) {
	tests := [][]byte{nil, {}, {1, 2, 3}, bytes.Repeat([]byte{0xAB}, 1024)}

	for _, data := range tests {
		var buf bytes.Buffer
		if err := writeLengthPrefixed(&buf, data); err != nil {
			t.Fatalf("writeLengthPrefixed: %v", err)
		}
		got, err := readLengthPrefixed(&buf)
		if err != nil {
			t.Fatalf("readLengthPrefixed: %v", err)
		}
		if !bytes.Equal(got, data) {
			t.Errorf("round-tripped %d bytes, want %d bytes", len(got), len(data))
		}
	}
}
