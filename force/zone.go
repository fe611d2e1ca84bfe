package force

import (
	"math"

	"github.com/akmonengine/cuboid/actor"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Zone is a persistent force region. Every step, each dynamic box intersecting it receives
// its push unconditionally.
type Zone interface {
	ID() uuid.UUID
	Dimension() actor.Dimension
	// Intersects reports whether the box is inside the zone
	Intersects(box *actor.Box) bool
	// PushOn computes the push for a box inside the zone
	PushOn(box *actor.Box) (actor.Push, bool)
}

var (
	_ Zone = (*CircleZone)(nil)
	_ Zone = (*SquareZone)(nil)
)

// CircleZone pushes boxes radially, away from its centre for a positive force and towards it
// for a negative one. It is a sphere in 3D.
type CircleZone struct {
	id        uuid.UUID
	dimension actor.Dimension

	Center mgl64.Vec3
	Radius float64
	Force  float64
}

func NewCircleZone2(x, y, radius, force float64) *CircleZone {
	return &CircleZone{id: uuid.New(), dimension: actor.Dim2, Center: mgl64.Vec3{x, y, 0}, Radius: radius, Force: force}
}

func NewCircleZone3(x, y, z, radius, force float64) *CircleZone {
	return &CircleZone{id: uuid.New(), dimension: actor.Dim3, Center: mgl64.Vec3{x, y, z}, Radius: radius, Force: force}
}

func (z *CircleZone) ID() uuid.UUID              { return z.id }
func (z *CircleZone) Dimension() actor.Dimension { return z.dimension }

// Intersects tests the circle against the closest point of the box.
func (z *CircleZone) Intersects(box *actor.Box) bool {
	if box.Dimension() != z.dimension {
		return false
	}

	var d2 float64
	for _, axis := range z.dimension.Axes() {
		closest := mgl64.Clamp(z.Center[axis], box.Min(axis), box.Max(axis))
		d := z.Center[axis] - closest
		d2 += d * d
	}
	return d2 < z.Radius*z.Radius
}

func (z *CircleZone) PushOn(box *actor.Box) (actor.Push, bool) {
	if !z.Intersects(box) {
		return actor.Push{}, false
	}

	offset := project(box.Origin().Sub(z.Center), z.dimension)
	push := newPush(z.Center, offset, offset.Len(), z.Radius, math.Abs(z.Force))
	if z.Force < 0 {
		push.Direction = mgl64.Vec3{}.Sub(push.Direction)
		push.Angle = math.Atan2(push.Direction.Y(), push.Direction.X())
	}
	return push, true
}

// SquareZone pushes boxes along a single axis, towards +axis for a positive force.
type SquareZone struct {
	actor.AABB

	Axis  actor.Axis
	Force float64
}

func NewSquareZone2(x, y, width, height float64, axis actor.Axis, force float64) *SquareZone {
	return &SquareZone{AABB: *actor.NewAABB2(x, y, width, height), Axis: axis, Force: force}
}

func NewSquareZone3(x, y, z, width, height, depth float64, axis actor.Axis, force float64) *SquareZone {
	return &SquareZone{AABB: *actor.NewAABB3(x, y, z, width, height, depth), Axis: axis, Force: force}
}

func (z *SquareZone) Intersects(box *actor.Box) bool {
	return box.Dimension() == z.Dimension() && z.AABB.Intersects(&box.AABB)
}

func (z *SquareZone) PushOn(box *actor.Box) (actor.Push, bool) {
	if !z.Intersects(box) || !z.Dimension().Supports(z.Axis) {
		return actor.Push{}, false
	}

	var direction mgl64.Vec3
	direction[z.Axis] = 1
	force := z.Force
	if force < 0 {
		direction[z.Axis] = -1
		force = -force
	}

	center := z.CenterVec()
	return actor.Push{
		Source:    center,
		Direction: direction,
		Angle:     math.Atan2(direction.Y(), direction.X()),
		Force:     force,
		Distance:  project(box.Origin().Sub(center), z.Dimension()).Len(),
	}, true
}
