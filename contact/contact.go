// Package contact holds the narrow-phase geometry between two boxes: penetration
// classification of overlapping boxes and the swept test used against tunneling.
package contact

import (
	"math"

	"github.com/akmonengine/cuboid/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Point is the result of a narrow-phase test of a moving box against another box.
type Point struct {
	// Position is the centre of the overlap region, or the min corner of the moving box at
	// the time of impact for a sweep
	Position mgl64.Vec3
	// Face of the other box that was penetrated, FaceEqual for an exactly square overlap
	Face actor.Face
	// Depth is the smallest penetration, zero for a sweep hit
	Depth float64
	// Swept is set by Sweep, Time is then the time of impact in [0, 1] along the last motion
	Swept bool
	Time  float64
	// Volume of the overlap region (area in 2D)
	Volume float64

	// vertical tie-break, decided at classification
	tieFace actor.Face
}

// Resolved returns the face to resolve against.
// An exactly square overlap resolves vertically: Top when the moving box is centred at or
// above the other box, Bottom otherwise.
func (p Point) Resolved() actor.Face {
	if p.Face == actor.FaceEqual {
		return p.tieFace
	}
	return p.Face
}

// Overlap returns the penetration on the axis. Non-positive means separated.
func Overlap(a, b *actor.AABB, axis actor.Axis) float64 {
	return math.Min(a.Max(axis), b.Max(axis)) - math.Max(a.Min(axis), b.Min(axis))
}

// Classify finds which face of other the moving box penetrates, using the axis of minimum
// penetration. On that axis the side is decided by comparing centres.
// Separated or touching boxes return FaceNone.
func Classify(moving, other *actor.AABB) Point {
	if moving.Dimension() != other.Dimension() || !moving.Intersects(other) {
		return Point{Face: actor.FaceNone}
	}

	var p Point
	p.Volume = 1
	best := actor.AxisX
	bestDepth := math.Inf(1)
	tie := false

	for _, axis := range moving.Dimension().Axes() {
		depth := Overlap(moving, other, axis)
		p.Volume *= depth
		p.Position[axis] = math.Max(moving.Min(axis), other.Min(axis)) + depth/2

		switch {
		case depth < bestDepth:
			best, bestDepth, tie = axis, depth, false
		case depth == bestDepth:
			if axis == actor.AxisY {
				best = axis
			}
			tie = true
		}
	}

	p.Depth = bestDepth
	p.Face = actor.FaceOf(best, moving.Center(best) >= other.Center(best))
	if tie {
		// best is Y whenever Y is part of the tie
		p.tieFace, p.Face = p.Face, actor.FaceEqual
	}

	return p
}

// Sweep tests the motion of a box from its last position to its current one against other,
// a slab test of the moving box's min corner against other grown by the box extent.
// It reports a hit only when the box was separated at the start of the motion and enters
// other during it.
func Sweep(moving *actor.Box, other *actor.AABB) (Point, bool) {
	if moving.Dimension() != other.Dimension() {
		return Point{}, false
	}

	start := moving.LastPositionVec()
	delta := moving.PositionVec().Sub(start)
	extent := moving.Extent()

	entry := math.Inf(-1)
	exit := math.Inf(1)
	entryAxis := actor.AxisX
	moved := false

	for _, axis := range moving.Dimension().Axes() {
		lo := other.Min(axis) - extent[axis]
		hi := other.Max(axis)

		if delta[axis] == 0 {
			// open intervals: start must be strictly inside the grown slab
			if start[axis] <= lo || start[axis] >= hi {
				return Point{}, false
			}
			continue
		}
		moved = true

		t0 := (lo - start[axis]) / delta[axis]
		t1 := (hi - start[axis]) / delta[axis]
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > entry {
			entry, entryAxis = t0, axis
		}
		exit = math.Min(exit, t1)
	}

	if !moved || entry >= exit || entry < 0 || entry > 1 {
		return Point{}, false
	}

	p := Point{
		Swept:    true,
		Time:     entry,
		Position: start.Add(delta.Mul(entry)),
		// moving towards +axis hits the min face
		Face: actor.FaceOf(entryAxis, delta[entryAxis] < 0),
	}
	return p, true
}
