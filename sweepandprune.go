package cuboid

import (
	"github.com/akmonengine/cuboid/actor"
)

type sapPair[T Indexable] struct {
	a, b T
}

// SweepAndPrune keeps one list of items per active axis, sorted by their min bound. Lists are
// re-sorted lazily with an insertion sort, which stays close to linear while items move a
// little between steps.
type SweepAndPrune[T Indexable] struct {
	dimension actor.Dimension
	axes      [][]T

	registry registry[T]
	sorted   bool
	pairs    map[T][]T
}

var _ BroadPhase[*actor.Box] = (*SweepAndPrune[*actor.Box])(nil)

func NewSweepAndPrune[T Indexable](dimension actor.Dimension) *SweepAndPrune[T] {
	return &SweepAndPrune[T]{
		dimension: dimension,
		axes:      make([][]T, len(dimension.Axes())),
		registry:  newRegistry[T](),
	}
}

func (sap *SweepAndPrune[T]) Len() int {
	return len(sap.registry.order)
}

func (sap *SweepAndPrune[T]) Add(item T) {
	checkDimension(sap.dimension, item.Bounds())
	if !sap.registry.register(item) {
		return
	}
	for i := range sap.axes {
		sap.axes[i] = append(sap.axes[i], item)
	}
	sap.invalidate()
}

func (sap *SweepAndPrune[T]) Remove(item T) {
	if !sap.registry.unregister(item) {
		return
	}
	for i, list := range sap.axes {
		for j, other := range list {
			if other == item {
				sap.axes[i] = append(list[:j], list[j+1:]...)
				break
			}
		}
	}
	sap.invalidate()
}

// Update only marks the lists as unsorted, the sort happens on the next query.
func (sap *SweepAndPrune[T]) Update(item T) {
	if !sap.registry.contains(item) {
		sap.Add(item)
		return
	}
	sap.invalidate()
}

func (sap *SweepAndPrune[T]) invalidate() {
	sap.sorted = false
	sap.pairs = nil
}

// Candidates returns the items whose bounds intersect the bounds of item.
func (sap *SweepAndPrune[T]) Candidates(item T) []T {
	if sap.pairs != nil {
		return append([]T(nil), sap.pairs[item]...)
	}

	result := sap.Query(item.Bounds())
	n := 0
	for _, other := range result {
		if other != item {
			result[n] = other
			n++
		}
	}
	return result[:n]
}

// Query scans the first axis list up to the max bound of the volume.
func (sap *SweepAndPrune[T]) Query(bounds *actor.AABB) []T {
	checkDimension(sap.dimension, bounds)
	sap.sort()

	axis := sap.dimension.Axes()[0]
	var result []T
	for _, item := range sap.axes[0] {
		other := item.Bounds()
		if other.Min(axis) >= bounds.Max(axis) {
			break
		}
		if bounds.Intersects(other) {
			result = append(result, item)
		}
	}

	sap.registry.sort(result)
	return result
}

// Intersections sweeps every axis and keeps the pairs overlapping on all of them.
// The result is cached until the next Add, Remove or Update.
func (sap *SweepAndPrune[T]) Intersections() map[T][]T {
	if sap.pairs != nil {
		return sap.pairs
	}
	sap.sort()

	axes := sap.dimension.Axes()
	counts := make(map[sapPair[T]]int)
	for i, axis := range axes {
		sap.sweep(sap.axes[i], axis, counts)
	}

	pairs := make(map[T][]T)
	for pair, count := range counts {
		if count == len(axes) {
			pairs[pair.a] = append(pairs[pair.a], pair.b)
			pairs[pair.b] = append(pairs[pair.b], pair.a)
		}
	}
	for _, items := range pairs {
		sap.registry.sort(items)
	}

	sap.pairs = pairs
	return pairs
}

func (sap *SweepAndPrune[T]) sweep(list []T, axis actor.Axis, counts map[sapPair[T]]int) {
	active := make([]T, 0, 16)

	for _, cursor := range list {
		bounds := cursor.Bounds()
		lo := bounds.Min(axis)

		n := 0
		for _, item := range active {
			if item.Bounds().Max(axis) > lo {
				active[n] = item
				n++
			}
		}
		active = active[:n]

		hi := bounds.Max(axis)
		for _, item := range active {
			// zero-length items only touch
			if hi > item.Bounds().Min(axis) {
				counts[sap.makePair(item, cursor)]++
			}
		}
		active = append(active, cursor)
	}
}

// makePair orders the pair by registration sequence
func (sap *SweepAndPrune[T]) makePair(a, b T) sapPair[T] {
	if sap.registry.order[b] < sap.registry.order[a] {
		a, b = b, a
	}
	return sapPair[T]{a: a, b: b}
}

func (sap *SweepAndPrune[T]) sort() {
	if sap.sorted {
		return
	}
	for i, axis := range sap.dimension.Axes() {
		insertionSort(sap.axes[i], axis)
	}
	sap.sorted = true
}

func insertionSort[T Indexable](list []T, axis actor.Axis) {
	for i := 1; i < len(list); i++ {
		item := list[i]
		key := item.Bounds().Min(axis)
		j := i - 1
		for j >= 0 && list[j].Bounds().Min(axis) > key {
			list[j+1] = list[j]
			j--
		}
		list[j+1] = item
	}
}
