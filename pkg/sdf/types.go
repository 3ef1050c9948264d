package sdf

import "github.com/Locietta/distance-field-playground/pkg/geometry"

// SparseDistanceFieldMip is the plain-old-data metadata for one mip
// level: the indirection grid's shape, the affine transforms a GPU
// runtime needs to sample it, and the byte range it occupies inside the
// shared bulk buffer.
type SparseDistanceFieldMip struct {
	IndirectionDimensions          geometry.IVec3
	NumDistanceFieldBricks         uint32
	VolumeToVirtualUVScale         [3]float32
	VolumeToVirtualUVAdd           [3]float32
	DistanceFieldToVolumeScaleBias [2]float32
	BulkOffset                     uint32
	BulkSize                       uint32
}

// VolumeData is the product of Generate: an immutable, hierarchical
// sparse distance field ready to serialize or sample in-process.
type VolumeData struct {
	LocalSpaceMeshBounds geometry.Box
	Mips                 [NumMips]SparseDistanceFieldMip

	// AlwaysLoadedMip is the coarsest mip's [indirection table | brick
	// bytes], always resident.
	AlwaysLoadedMip []byte

	// StreamableMips concatenates the other mips' [indirection table |
	// brick bytes] blobs at their recorded BulkOffset.
	StreamableMips []byte
}
