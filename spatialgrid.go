package cuboid

import (
	"encoding/binary"
	"math"
	"math/bits"
	"slices"

	"github.com/akmonengine/cuboid/actor"
	"github.com/cespare/xxhash/v2"
)

// ============================================================================
// Types
// ============================================================================

// CellKey is the integer coordinate of a grid cell, Z is 0 in 2D
type CellKey struct {
	X, Y, Z int
}

// bucket holds the items of every cell hashed to it
type bucket[T Indexable] struct {
	items []T
}

type gridEntry struct {
	minCell CellKey
	maxCell CellKey
	buckets []int
}

// SpatialGrid is a uniform grid hashed into a fixed array of buckets.
// Cells sharing a bucket only add false positives to the candidates.
type SpatialGrid[T Indexable] struct {
	dimension actor.Dimension
	cellSize  float64
	buckets   []bucket[T]
	mask      int

	entries  map[T]*gridEntry
	registry registry[T]
}

var _ BroadPhase[*actor.AABB] = (*SpatialGrid[*actor.AABB])(nil)

// ============================================================================
// Constructor
// ============================================================================

// NewSpatialGrid creates a grid of cellSize cells hashed into numBuckets buckets, rounded up
// to a power of two. The cell size cannot change once items are registered.
func NewSpatialGrid[T Indexable](dimension actor.Dimension, cellSize float64, numBuckets int) *SpatialGrid[T] {
	if cellSize <= 0 || math.IsNaN(cellSize) || math.IsInf(cellSize, 0) {
		panic("cuboid: grid cell size must be positive and finite")
	}
	numBuckets = nextPowerOfTwo(numBuckets)

	buckets := make([]bucket[T], numBuckets)
	for i := range buckets {
		buckets[i].items = make([]T, 0, 4)
	}

	return &SpatialGrid[T]{
		dimension: dimension,
		cellSize:  cellSize,
		buckets:   buckets,
		mask:      numBuckets - 1,
		entries:   make(map[T]*gridEntry),
		registry:  newRegistry[T](),
	}
}

// nextPowerOfTwo returns the smallest power of two >= n, and 1 for n < 1
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

func (sg *SpatialGrid[T]) CellSize() float64 {
	return sg.cellSize
}

func (sg *SpatialGrid[T]) Len() int {
	return len(sg.entries)
}

// ============================================================================
// Membership
// ============================================================================

// Add registers the item in every cell its bounds overlap. Adding twice is a no-op.
func (sg *SpatialGrid[T]) Add(item T) {
	bounds := item.Bounds()
	checkDimension(sg.dimension, bounds)
	if !sg.registry.register(item) {
		return
	}

	entry := &gridEntry{}
	entry.minCell, entry.maxCell = sg.cellRange(bounds)
	entry.buckets = sg.bucketsOf(entry.minCell, entry.maxCell)
	sg.entries[item] = entry
	sg.insert(item, entry.buckets)
}

// Remove drops the item from every bucket it was registered in. No-op if absent.
func (sg *SpatialGrid[T]) Remove(item T) {
	entry, ok := sg.entries[item]
	if !ok {
		return
	}

	sg.erase(item, entry.buckets)
	delete(sg.entries, item)
	sg.registry.unregister(item)
}

// Update re-registers the item when its cell range changed since the last Add or Update.
// An item that is not registered is added.
func (sg *SpatialGrid[T]) Update(item T) {
	entry, ok := sg.entries[item]
	if !ok {
		sg.Add(item)
		return
	}

	minCell, maxCell := sg.cellRange(item.Bounds())
	if minCell == entry.minCell && maxCell == entry.maxCell {
		return
	}

	sg.erase(item, entry.buckets)
	entry.minCell, entry.maxCell = minCell, maxCell
	entry.buckets = sg.bucketsOf(minCell, maxCell)
	sg.insert(item, entry.buckets)
}

func (sg *SpatialGrid[T]) insert(item T, buckets []int) {
	for _, idx := range buckets {
		sg.buckets[idx].items = append(sg.buckets[idx].items, item)
	}
}

func (sg *SpatialGrid[T]) erase(item T, buckets []int) {
	for _, idx := range buckets {
		items := sg.buckets[idx].items
		if i := slices.Index(items, item); i >= 0 {
			// swap-remove, order is restored by the registry
			last := len(items) - 1
			items[i] = items[last]
			var zero T
			items[last] = zero
			sg.buckets[idx].items = items[:last]
		}
	}
}

// ============================================================================
// Queries
// ============================================================================

// Candidates returns the union of the items sharing a bucket with item, minus item itself,
// without duplicates and in registration order.
func (sg *SpatialGrid[T]) Candidates(item T) []T {
	entry, ok := sg.entries[item]
	if !ok {
		return sg.Query(item.Bounds())
	}
	return sg.collect(entry.buckets, item, true)
}

// Query returns the items sharing a bucket with the cells overlapped by bounds.
func (sg *SpatialGrid[T]) Query(bounds *actor.AABB) []T {
	checkDimension(sg.dimension, bounds)
	minCell, maxCell := sg.cellRange(bounds)

	var none T
	return sg.collect(sg.bucketsOf(minCell, maxCell), none, false)
}

func (sg *SpatialGrid[T]) collect(buckets []int, self T, skipSelf bool) []T {
	seen := make(map[T]struct{})
	result := make([]T, 0, 8)

	for _, idx := range buckets {
		for _, other := range sg.buckets[idx].items {
			if skipSelf && other == self {
				continue
			}
			if _, ok := seen[other]; ok {
				continue
			}
			seen[other] = struct{}{}
			result = append(result, other)
		}
	}

	sg.registry.sort(result)
	return result
}

// Intersections runs the candidate-then-filter pipeline for every item.
func (sg *SpatialGrid[T]) Intersections() map[T][]T {
	result := make(map[T][]T, len(sg.entries))

	for item := range sg.entries {
		bounds := item.Bounds()
		var hits []T
		for _, other := range sg.Candidates(item) {
			if bounds.Intersects(other.Bounds()) {
				hits = append(hits, other)
			}
		}
		if len(hits) > 0 {
			result[item] = hits
		}
	}

	return result
}

// ============================================================================
// Cells
// ============================================================================

// worldToCell converts a world position into cell coordinates, flooring towards -inf
func (sg *SpatialGrid[T]) worldToCell(x, y, z float64) CellKey {
	return CellKey{
		X: int(math.Floor(x / sg.cellSize)),
		Y: int(math.Floor(y / sg.cellSize)),
		Z: int(math.Floor(z / sg.cellSize)),
	}
}

func (sg *SpatialGrid[T]) cellRange(bounds *actor.AABB) (CellKey, CellKey) {
	lo := bounds.PositionVec()
	hi := lo.Add(bounds.Extent())
	if bounds.Dimension() == actor.Dim2 {
		lo[2], hi[2] = 0, 0
	}
	return sg.worldToCell(lo[0], lo[1], lo[2]), sg.worldToCell(hi[0], hi[1], hi[2])
}

// bucketsOf returns the distinct buckets of the cells between minCell and maxCell inclusive.
// Ranges with at least as many cells as buckets cover every bucket.
func (sg *SpatialGrid[T]) bucketsOf(minCell, maxCell CellKey) []int {
	count := (maxCell.X - minCell.X + 1) * (maxCell.Y - minCell.Y + 1) * (maxCell.Z - minCell.Z + 1)
	if count >= len(sg.buckets) || count <= 0 {
		all := make([]int, len(sg.buckets))
		for i := range all {
			all[i] = i
		}
		return all
	}

	result := make([]int, 0, count)
	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				result = append(result, sg.hashCell(CellKey{x, y, z}))
			}
		}
	}

	slices.Sort(result)
	return slices.Compact(result)
}

// hashCell hashes a cell into a bucket index
func (sg *SpatialGrid[T]) hashCell(key CellKey) int {
	var buf [24]byte
	binary.LittleEndian.PutUint64(buf[0:], uint64(key.X))
	binary.LittleEndian.PutUint64(buf[8:], uint64(key.Y))
	binary.LittleEndian.PutUint64(buf[16:], uint64(key.Z))

	return int(xxhash.Sum64(buf[:]) & uint64(sg.mask))
}
