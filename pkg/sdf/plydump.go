package sdf

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/Locietta/distance-field-playground/pkg/geometry"
)

// DumpBricksPLY writes one ASCII PLY per mip, one vertex per indirection
// cell at the cell's center in local space, colored green for a cell that
// resolved to a real brick and red for a sentinel (-brick harness flag,
// spec §6). It recomputes each mip's volume bounds from the stored mesh
// bounds and indirection dimensions the same way Generate does, since
// VolumeData itself keeps only the compacted blob.
func DumpBricksPLY(v *VolumeData, pathPrefix string) error {
	for k := range v.Mips {
		path := fmt.Sprintf("%s_mip%d.ply", pathPrefix, k)
		if err := dumpMipBricksPLY(path, v.LocalSpaceMeshBounds, &v.Mips[k], mipBlob(v, k)); err != nil {
			return fmt.Errorf("sdf: dump mip %d bricks: %w", k, err)
		}
	}
	return nil
}

// mipBlob returns the raw [indirection_table | brick_bytes] bytes for
// mip k, whichever buffer it lives in.
func mipBlob(v *VolumeData, k int) []byte {
	if k == NumMips-1 {
		return v.AlwaysLoadedMip
	}
	mip := v.Mips[k]
	return v.StreamableMips[mip.BulkOffset : mip.BulkOffset+mip.BulkSize]
}

func dumpMipBricksPLY(path string, bounds geometry.Box, mip *SparseDistanceFieldMip, blob []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dims := mip.IndirectionDimensions
	numCells := int(dims.Prod())

	dimsInBrickSpace := dims.ToVec3().Scale(UniqueDataBrickSize)
	border2 := geometry.Vec3{X: 2 * ObjectBorder, Y: 2 * ObjectBorder, Z: 2 * ObjectBorder}
	texelSize := bounds.Size().Div(dimsInBrickSpace.Sub(border2))
	volumeBounds := bounds.ExpandBy(texelSize)
	indirectionVoxelSize := volumeBounds.Size().Div(dims.ToVec3())

	w := bufio.NewWriter(f)

	fmt.Fprintln(w, "ply")
	fmt.Fprintln(w, "format ascii 1.0")
	fmt.Fprintf(w, "element vertex %d\n", numCells)
	fmt.Fprintln(w, "property float x")
	fmt.Fprintln(w, "property float y")
	fmt.Fprintln(w, "property float z")
	fmt.Fprintln(w, "property uchar red")
	fmt.Fprintln(w, "property uchar green")
	fmt.Fprintln(w, "property uchar blue")
	fmt.Fprintln(w, "end_header")

	for z := uint32(0); z < dims.Z; z++ {
		for y := uint32(0); y < dims.Y; y++ {
			for x := uint32(0); x < dims.X; x++ {
				cellIdx := geometry.LinearIndex(geometry.IVec3{X: x, Y: y, Z: z}, dims)
				entry := readIndirectionEntry(blob, cellIdx)

				center := volumeBounds.Min.Add(
					geometry.Vec3{X: float64(x) + 0.5, Y: float64(y) + 0.5, Z: float64(z) + 0.5}.Mul(indirectionVoxelSize),
				)

				r, g, b := 200, 32, 32
				if entry != InvalidBrickIndex {
					r, g, b = 32, 200, 32
				}
				fmt.Fprintf(w, "%g %g %g %d %d %d\n", center.X, center.Y, center.Z, r, g, b)
			}
		}
	}

	return w.Flush()
}

func readIndirectionEntry(blob []byte, cellIdx uint32) uint32 {
	off := int(cellIdx) * 4
	return binary.NativeEndian.Uint32(blob[off : off+4])
}
