package sdf

import (
	"encoding/binary"
	"math/rand"
	"sync"

	"github.com/Locietta/distance-field-playground/internal/quantization"
	"github.com/Locietta/distance-field-playground/pkg/accel"
	"github.com/Locietta/distance-field-playground/pkg/geometry"
	"github.com/Locietta/distance-field-playground/pkg/mesh"
	"github.com/Locietta/distance-field-playground/pkg/sampling"
)

// defaultNumWorkers is the worker-pool size used when Config.NumWorkers
// is left at zero.
const defaultNumWorkers = 8

// Config controls one Generate call. It replaces the source's
// process-wide parsed-CLI-option singleton with an explicit value passed
// by reference, so two concurrent Generate calls never share state.
type Config struct {
	VoxelDensity    float64 // typically 0.2
	ResolutionScale float64 // <= 0 aborts generation, producing no volume
	Parallel        bool
	Seed            int64 // seeds the sample-direction PRNG, for determinism
	NumWorkers      int   // 0 selects defaultNumWorkers
}

// DefaultConfig mirrors the harness's documented flag defaults (spec §6).
func DefaultConfig() Config {
	return Config{
		VoxelDensity:    0.2,
		ResolutionScale: 1.0,
		Parallel:        true,
		Seed:            1,
		NumWorkers:      defaultNumWorkers,
	}
}

// Generate builds a VolumeData for m within bounds according to cfg. A
// non-positive ResolutionScale returns an empty VolumeData and a nil
// error, matching the "return without mutating out_data" contract.
func Generate(m *mesh.Mesh, bounds geometry.Box, cfg Config) (*VolumeData, error) {
	if cfg.ResolutionScale <= 0 {
		return &VolumeData{}, nil
	}

	scene := accel.NewGrid(m)

	bounds = bounds.WithMinExtent(geometry.Vec3{X: 1, Y: 1, Z: 1})
	extent := bounds.Extent()
	localToVolumeScale := 1 / geometry.MaxComponent(extent)

	desiredFactor := cfg.VoxelDensity * cfg.ResolutionScale / UniqueDataBrickSize
	desired := bounds.Size().Scale(desiredFactor)
	mip0Dims := geometry.RoundVec3ToIVec3(desired).ClampScalar(1, MaxIndirectionDimension)

	rng := rand.New(rand.NewSource(cfg.Seed))
	directions := sampling.SphereDirections(numVoxelDistanceSamples, rng)

	v := &VolumeData{LocalSpaceMeshBounds: bounds}

	for k := 0; k < NumMips; k++ {
		v.Mips[k] = generateMip(scene, m, bounds, extent, localToVolumeScale, mip0Dims, k, directions, cfg, v)
	}

	return v, nil
}

// generateMip builds one mip level: it sizes the indirection grid,
// dispatches one brick task per cell, compacts the non-empty bricks into
// the mip's [indirection_table | brick_bytes] blob, appends that blob to
// v's always-resident or streamable buffer, and returns the mip's
// metadata record.
func generateMip(
	scene accel.Scene,
	m *mesh.Mesh,
	bounds geometry.Box,
	extent geometry.Vec3,
	localToVolumeScale float64,
	mip0Dims geometry.IVec3,
	k int,
	directions []geometry.Vec3,
	cfg Config,
	v *VolumeData,
) SparseDistanceFieldMip {
	dims := mip0Dims.CeilDivScalar(uint32(1) << uint(k))

	dimsInBrickSpace := dims.ToVec3().Scale(UniqueDataBrickSize)
	border2 := geometry.Vec3{X: 2 * ObjectBorder, Y: 2 * ObjectBorder, Z: 2 * ObjectBorder}
	texelSize := bounds.Size().Div(dimsInBrickSpace.Sub(border2))
	volumeBounds := bounds.ExpandBy(texelSize)
	indirectionVoxelSize := volumeBounds.Size().Div(dims.ToVec3())
	sdfVoxelSize := indirectionVoxelSize.Length() / UniqueDataBrickSize
	traceDistance := sdfVoxelSize * BandSizeInVoxels
	volumeSpaceMaxEncoding := traceDistance * localToVolumeScale

	tasks := buildBrickTasks(scene, directions, traceDistance, volumeBounds, indirectionVoxelSize, dims)
	executeTasks(tasks, cfg)

	indirectionTable, brickBytes, numBricks := compact(tasks)
	blob := encodeMipBlob(indirectionTable, brickBytes)

	mip := SparseDistanceFieldMip{
		IndirectionDimensions:  dims,
		NumDistanceFieldBricks: numBricks,
	}

	if k == NumMips-1 {
		v.AlwaysLoadedMip = blob
	} else {
		mip.BulkOffset = uint32(len(v.StreamableMips))
		mip.BulkSize = uint32(len(blob))
		v.StreamableMips = append(v.StreamableMips, blob...)
	}

	scale, bias := quantization.NewDistanceQuantizer(volumeSpaceMaxEncoding).ScaleBias()
	mip.DistanceFieldToVolumeScaleBias = [2]float32{float32(scale), float32(bias)}

	border := geometry.Vec3{X: ObjectBorder, Y: ObjectBorder, Z: ObjectBorder}
	virtualUVMin := border.Div(dimsInBrickSpace)
	virtualUVSize := dimsInBrickSpace.Sub(border2).Div(dimsInBrickSpace)

	volumeSpaceExtent := extent.Scale(localToVolumeScale)
	uvScale := virtualUVSize.Div(volumeSpaceExtent.Scale(2))
	uvAdd := volumeSpaceExtent.Mul(uvScale).Add(virtualUVMin)

	mip.VolumeToVirtualUVScale = vec3ToFloat32s(uvScale)
	mip.VolumeToVirtualUVAdd = vec3ToFloat32s(uvAdd)

	return mip
}

// buildBrickTasks allocates one BrickTask per indirection cell, in the
// fixed row-major enumeration (x fastest, then y, then z) spec §4.5
// requires for reproducible compaction.
func buildBrickTasks(
	scene accel.Scene,
	directions []geometry.Vec3,
	traceDistance float64,
	volumeBounds geometry.Box,
	indirectionVoxelSize geometry.Vec3,
	dims geometry.IVec3,
) []*BrickTask {
	tasks := make([]*BrickTask, 0, dims.Prod())
	for z := uint32(0); z < dims.Z; z++ {
		for y := uint32(0); y < dims.Y; y++ {
			for x := uint32(0); x < dims.X; x++ {
				tasks = append(tasks, &BrickTask{
					Scene:                scene,
					SampleDirections:     directions,
					TraceDistance:        traceDistance,
					VolumeBounds:         volumeBounds,
					BrickCoord:           geometry.IVec3{X: x, Y: y, Z: z},
					IndirectionVoxelSize: indirectionVoxelSize,
				})
			}
		}
	}
	return tasks
}

// executeTasks runs every task, either serially or across a fixed-size
// worker pool, mirroring the jobs-channel/WaitGroup pattern the teacher
// uses for batch vector inserts. Tasks are independent and mutate only
// their own fields, so no result aggregation or synchronization beyond
// the WaitGroup is needed.
func executeTasks(tasks []*BrickTask, cfg Config) {
	if len(tasks) == 0 {
		return
	}

	if !cfg.Parallel {
		for _, t := range tasks {
			t.Execute()
		}
		return
	}

	numWorkers := cfg.NumWorkers
	if numWorkers <= 0 {
		numWorkers = defaultNumWorkers
	}
	if numWorkers > len(tasks) {
		numWorkers = len(tasks)
	}

	jobs := make(chan int, len(tasks))
	var wg sync.WaitGroup

	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				tasks[i].Execute()
			}
		}()
	}

	for i := range tasks {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
}

// compact walks tasks in their fixed generation order (not completion
// order) and assigns brick indices: a task whose brick is not
// empty-valid gets the next sequential index and its 512 bytes appended
// to brickBytes; an empty-valid task's indirection entry is the sentinel.
// This is what makes the on-disk layout independent of goroutine
// scheduling.
func compact(tasks []*BrickTask) (indirectionTable []uint32, brickBytes []byte, numBricks uint32) {
	indirectionTable = make([]uint32, len(tasks))

	for i, t := range tasks {
		if t.IsEmpty() {
			indirectionTable[i] = InvalidBrickIndex
			continue
		}
		indirectionTable[i] = numBricks
		brickBytes = append(brickBytes, t.Volume[:]...)
		numBricks++
	}

	return indirectionTable, brickBytes, numBricks
}

// encodeMipBlob lays out [indirection_table | brick_bytes] as
// native-endian u32s followed by raw brick bytes, the exact byte range
// a mip's bulk_offset/bulk_size describe.
func encodeMipBlob(indirectionTable []uint32, brickBytes []byte) []byte {
	blob := make([]byte, len(indirectionTable)*4+len(brickBytes))
	for i, entry := range indirectionTable {
		binary.NativeEndian.PutUint32(blob[i*4:], entry)
	}
	copy(blob[len(indirectionTable)*4:], brickBytes)
	return blob
}

func vec3ToFloat32s(v geometry.Vec3) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}
