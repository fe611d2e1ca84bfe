package actor

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// AABB represents an axis-aligned bounding box.
// Position is the min corner, extent is the width/height/depth. In 2D the Z components stay at zero.
type AABB struct {
	id        uuid.UUID
	dimension Dimension
	position  mgl64.Vec3
	extent    mgl64.Vec3
}

// NewAABB2 creates a 2D box with its min corner at (x, y)
func NewAABB2(x, y, width, height float64) *AABB {
	a := &AABB{}
	a.init(Dim2, mgl64.Vec3{x, y, 0}, mgl64.Vec3{width, height, 0})
	return a
}

// NewAABB3 creates a 3D box with its min corner at (x, y, z)
func NewAABB3(x, y, z, width, height, depth float64) *AABB {
	a := &AABB{}
	a.init(Dim3, mgl64.Vec3{x, y, z}, mgl64.Vec3{width, height, depth})
	return a
}

func (a *AABB) init(dimension Dimension, position, extent mgl64.Vec3) {
	for i, l := range extent {
		if l < 0 {
			panic(fmt.Errorf("%w: %v=%v", ErrNegativeExtent, Axis(i), l))
		}
	}
	a.id = uuid.New()
	a.dimension = dimension
	a.position = position
	a.extent = extent
}

// ID is stable for the lifetime of the box
func (a *AABB) ID() uuid.UUID {
	return a.id
}

func (a *AABB) Dimension() Dimension {
	return a.dimension
}

// Bounds returns the volume broad phases index this AABB by: itself.
func (a *AABB) Bounds() *AABB {
	return a
}

func (a *AABB) checkAxis(axis Axis) {
	if !a.dimension.Supports(axis) {
		panic(fmt.Errorf("%w: %v on a %v volume", ErrInvalidAxis, axis, a.dimension))
	}
}

// Position returns the min corner coordinate on the axis.
// It panics with ErrInvalidAxis when the axis is not part of the dimension.
func (a *AABB) Position(axis Axis) float64 {
	a.checkAxis(axis)
	return a.position[axis]
}

func (a *AABB) SetPosition(axis Axis, value float64) {
	a.checkAxis(axis)
	a.position[axis] = value
}

// Length returns the extent on the axis (width for X, height for Y, depth for Z).
func (a *AABB) Length(axis Axis) float64 {
	a.checkAxis(axis)
	return a.extent[axis]
}

func (a *AABB) Min(axis Axis) float64 {
	return a.Position(axis)
}

func (a *AABB) Max(axis Axis) float64 {
	a.checkAxis(axis)
	return a.position[axis] + a.extent[axis]
}

func (a *AABB) Center(axis Axis) float64 {
	a.checkAxis(axis)
	return a.position[axis] + a.extent[axis]/2
}

// PositionVec returns the min corner, Z is 0 in 2D.
func (a *AABB) PositionVec() mgl64.Vec3 {
	return a.position
}

func (a *AABB) Extent() mgl64.Vec3 {
	return a.extent
}

// CenterVec returns the centre point, Z is 0 in 2D.
func (a *AABB) CenterVec() mgl64.Vec3 {
	return a.position.Add(a.extent.Mul(0.5))
}

// Intersects checks if two AABBs overlap.
// Intervals are open: boxes sharing only an edge or a face do not intersect.
// It panics with ErrDimensionMismatch when a 2D box is tested against a 3D box.
func (a *AABB) Intersects(other *AABB) bool {
	if a.dimension != other.dimension {
		panic(fmt.Errorf("%w: %v against %v", ErrDimensionMismatch, a.dimension, other.dimension))
	}

	for _, axis := range a.dimension.Axes() {
		if a.position[axis] >= other.position[axis]+other.extent[axis] ||
			other.position[axis] >= a.position[axis]+a.extent[axis] {
			return false
		}
	}
	return true
}

// ContainsPoint checks if a point is inside the AABB, boundaries included. Z is ignored in 2D.
func (a *AABB) ContainsPoint(point mgl64.Vec3) bool {
	for _, axis := range a.dimension.Axes() {
		if point[axis] < a.position[axis] || point[axis] > a.position[axis]+a.extent[axis] {
			return false
		}
	}
	return true
}

// Cover sets the AABB to the smallest box covering the two placements of a box of the
// given extent, one at from and one at to.
func (a *AABB) Cover(from, to, extent mgl64.Vec3) {
	for _, axis := range a.dimension.Axes() {
		origin := min(from[axis], to[axis])
		a.position[axis] = origin
		a.extent[axis] = max(from[axis], to[axis]) + extent[axis] - origin
	}
}

func (a *AABB) String() string {
	if a.dimension == Dim3 {
		return fmt.Sprintf("AABB{pos=(%g, %g, %g) ext=(%g, %g, %g)}",
			a.position[0], a.position[1], a.position[2], a.extent[0], a.extent[1], a.extent[2])
	}
	return fmt.Sprintf("AABB{pos=(%g, %g) ext=(%g, %g)}", a.position[0], a.position[1], a.extent[0], a.extent[1])
}
