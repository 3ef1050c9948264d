// Package sdf implements the sparse, mip-mapped, quantized signed
// distance field builder: the per-brick sampling task and the per-mip
// driver that sizes the indirection grid, dispatches brick tasks,
// compacts the sparse result, and assembles the final VolumeData.
package sdf

// Fixed constants, part of the on-disk contract (spec §3).
const (
	// UniqueDataBrickSize is the usable voxel count per brick axis.
	UniqueDataBrickSize = 7

	// BrickSize is the stored voxel count per brick axis (one voxel of
	// shared border on every side, for trilinear filtering across
	// brick boundaries).
	BrickSize = 8

	// BandSizeInVoxels is the narrow-band trace radius, in voxels.
	BandSizeInVoxels = 4

	// InvalidBrickIndex is the sentinel stored in the indirection table
	// for bricks that were discarded as empty.
	InvalidBrickIndex = 0xFFFFFFFF

	// MaxIndirectionDimension clamps the per-axis indirection extent.
	MaxIndirectionDimension = 1024

	// ObjectBorder is the extra voxel border reserved around the mesh
	// on every mip.
	ObjectBorder = 1

	// NumMips is the mip count; the last mip is always resident.
	NumMips = 3

	// BrickVoxelCount is the number of voxels stored per brick.
	BrickVoxelCount = BrickSize * BrickSize * BrickSize

	// numVoxelDistanceSamples is n in the hemisphere sampler (spec
	// §4.5 step 6): m = floor(sqrt(49)) = 7, so 2*7*7 = 98 directions.
	numVoxelDistanceSamples = 49
)
