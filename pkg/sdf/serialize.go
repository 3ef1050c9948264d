package sdf

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Locietta/distance-field-playground/pkg/geometry"
)

// Serialize writes v as a sequential, length-prefixed, native-endian
// blob (spec §4.6): the bounds, the fixed-size mip records, then the
// always-resident and streamable byte buffers each as [u32 length][bytes].
func Serialize(w io.Writer, v *VolumeData) error {
	if err := writeBounds(w, v.LocalSpaceMeshBounds); err != nil {
		return fmt.Errorf("write bounds: %w", err)
	}

	for i := range v.Mips {
		if err := writeMip(w, &v.Mips[i]); err != nil {
			return fmt.Errorf("write mip %d: %w", i, err)
		}
	}

	if err := writeLengthPrefixed(w, v.AlwaysLoadedMip); err != nil {
		return fmt.Errorf("write always-loaded mip: %w", err)
	}
	if err := writeLengthPrefixed(w, v.StreamableMips); err != nil {
		return fmt.Errorf("write streamable mips: %w", err)
	}

	return nil
}

// Deserialize mirrors Serialize's layout exactly.
func Deserialize(r io.Reader) (*VolumeData, error) {
	v := &VolumeData{}

	bounds, err := readBounds(r)
	if err != nil {
		return nil, fmt.Errorf("read bounds: %w", err)
	}
	v.LocalSpaceMeshBounds = bounds

	for i := range v.Mips {
		mip, err := readMip(r)
		if err != nil {
			return nil, fmt.Errorf("read mip %d: %w", i, err)
		}
		v.Mips[i] = mip
	}

	v.AlwaysLoadedMip, err = readLengthPrefixed(r)
	if err != nil {
		return nil, fmt.Errorf("read always-loaded mip: %w", err)
	}
	v.StreamableMips, err = readLengthPrefixed(r)
	if err != nil {
		return nil, fmt.Errorf("read streamable mips: %w", err)
	}

	return v, nil
}

func writeBounds(w io.Writer, b geometry.Box) error {
	fields := [6]float32{
		float32(b.Min.X), float32(b.Min.Y), float32(b.Min.Z),
		float32(b.Max.X), float32(b.Max.Y), float32(b.Max.Z),
	}
	return binary.Write(w, binary.NativeEndian, &fields)
}

func readBounds(r io.Reader) (geometry.Box, error) {
	var fields [6]float32
	if err := binary.Read(r, binary.NativeEndian, &fields); err != nil {
		return geometry.Box{}, err
	}
	return geometry.Box{
		Min: geometry.Vec3{X: float64(fields[0]), Y: float64(fields[1]), Z: float64(fields[2])},
		Max: geometry.Vec3{X: float64(fields[3]), Y: float64(fields[4]), Z: float64(fields[5])},
	}, nil
}

func writeMip(w io.Writer, m *SparseDistanceFieldMip) error {
	if err := binary.Write(w, binary.NativeEndian, &m.IndirectionDimensions); err != nil {
		return err
	}
	if err := binary.Write(w, binary.NativeEndian, m.NumDistanceFieldBricks); err != nil {
		return err
	}
	if err := binary.Write(w, binary.NativeEndian, &m.VolumeToVirtualUVScale); err != nil {
		return err
	}
	if err := binary.Write(w, binary.NativeEndian, &m.VolumeToVirtualUVAdd); err != nil {
		return err
	}
	if err := binary.Write(w, binary.NativeEndian, &m.DistanceFieldToVolumeScaleBias); err != nil {
		return err
	}
	if err := binary.Write(w, binary.NativeEndian, m.BulkOffset); err != nil {
		return err
	}
	return binary.Write(w, binary.NativeEndian, m.BulkSize)
}

func readMip(r io.Reader) (SparseDistanceFieldMip, error) {
	var m SparseDistanceFieldMip
	if err := binary.Read(r, binary.NativeEndian, &m.IndirectionDimensions); err != nil {
		return m, err
	}
	if err := binary.Read(r, binary.NativeEndian, &m.NumDistanceFieldBricks); err != nil {
		return m, err
	}
	if err := binary.Read(r, binary.NativeEndian, &m.VolumeToVirtualUVScale); err != nil {
		return m, err
	}
	if err := binary.Read(r, binary.NativeEndian, &m.VolumeToVirtualUVAdd); err != nil {
		return m, err
	}
	if err := binary.Read(r, binary.NativeEndian, &m.DistanceFieldToVolumeScaleBias); err != nil {
		return m, err
	}
	if err := binary.Read(r, binary.NativeEndian, &m.BulkOffset); err != nil {
		return m, err
	}
	return m, binary.Read(r, binary.NativeEndian, &m.BulkSize)
}

func writeLengthPrefixed(w io.Writer, data []byte) error {
	if err := binary.Write(w, binary.NativeEndian, uint32(len(data))); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	_, err := w.Write(data)
	return err
}

func readLengthPrefixed(r io.Reader) ([]byte, error) {
	var length uint32
	if err := binary.Read(r, binary.NativeEndian, &length); err != nil {
		return nil, err
	}
	if length == 0 {
		return nil, nil
	}
	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, err
	}
	return data, nil
}
