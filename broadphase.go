package cuboid

import (
	"slices"

	"github.com/akmonengine/cuboid/actor"
)

// Indexable is anything a broad phase can hold: *actor.AABB indexes itself, *actor.Box
// indexes its swept projection.
type Indexable interface {
	comparable
	Bounds() *actor.AABB
}

// BroadPhase narrows down the pairs worth an exact intersection test. Results are supersets:
// callers still run Intersects on what they get.
type BroadPhase[T Indexable] interface {
	Add(item T)
	Remove(item T)
	// Update must be called when a registered item moved
	Update(item T)
	// Candidates returns the items possibly intersecting item, never item itself
	Candidates(item T) []T
	// Query returns the items possibly intersecting an arbitrary volume
	Query(bounds *actor.AABB) []T
	// Intersections maps every item to the items whose bounds truly intersect its own
	Intersections() map[T][]T
	Len() int
}

type BroadPhaseKind uint8

const (
	BroadPhaseGrid BroadPhaseKind = iota
	BroadPhaseSweepAndPrune
)

func (k BroadPhaseKind) String() string {
	if k == BroadPhaseSweepAndPrune {
		return "sap"
	}
	return "grid"
}

// registry assigns a registration sequence to items, giving every broad phase a
// deterministic output order.
type registry[T Indexable] struct {
	seq   uint64
	order map[T]uint64
}

func newRegistry[T Indexable]() registry[T] {
	return registry[T]{order: make(map[T]uint64)}
}

func (r *registry[T]) register(item T) bool {
	if _, ok := r.order[item]; ok {
		return false
	}
	r.seq++
	r.order[item] = r.seq
	return true
}

func (r *registry[T]) unregister(item T) bool {
	if _, ok := r.order[item]; !ok {
		return false
	}
	delete(r.order, item)
	return true
}

func (r *registry[T]) contains(item T) bool {
	_, ok := r.order[item]
	return ok
}

func (r *registry[T]) sort(items []T) {
	slices.SortFunc(items, func(a, b T) int {
		oa, ob := r.order[a], r.order[b]
		switch {
		case oa < ob:
			return -1
		case oa > ob:
			return 1
		}
		return 0
	})
}

func checkDimension(expected actor.Dimension, bounds *actor.AABB) {
	if bounds.Dimension() != expected {
		panic(actor.ErrDimensionMismatch)
	}
}
