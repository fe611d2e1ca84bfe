// Package force implements the force fields of an environment: one-shot radial blooms
// (explosions) and persistent zones.
package force

import (
	"math"

	"github.com/akmonengine/cuboid/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// up is the push direction of a box sitting exactly on a force centre
var up = mgl64.Vec3{0, 1, 0}

// Bloom is a radial push from a point, fully applied at its centre and fading linearly to
// nothing at its radius. A bloom lives for exactly one step of an environment.
type Bloom struct {
	Position mgl64.Vec3
	Radius   float64
	Force    float64
}

func NewBloom2(x, y, radius, force float64) Bloom {
	return Bloom{Position: mgl64.Vec3{x, y, 0}, Radius: radius, Force: force}
}

func NewBloom3(x, y, z, radius, force float64) Bloom {
	return Bloom{Position: mgl64.Vec3{x, y, z}, Radius: radius, Force: force}
}

// PushOn computes the push the bloom offers to a box, measured from the box origin.
// It reports false when the box is at or beyond the radius.
func (b Bloom) PushOn(box *actor.Box) (actor.Push, bool) {
	if b.Radius <= 0 {
		return actor.Push{}, false
	}

	offset := project(box.Origin().Sub(b.Position), box.Dimension())
	distance := offset.Len()
	if distance >= b.Radius {
		return actor.Push{}, false
	}

	return newPush(b.Position, offset, distance, b.Radius, b.Force*(1-distance/b.Radius)), true
}

func newPush(source, offset mgl64.Vec3, distance, radius, force float64) actor.Push {
	direction := up
	if distance > 0 {
		direction = offset.Mul(1 / distance)
	}

	return actor.Push{
		Source:    source,
		Direction: direction,
		Angle:     math.Atan2(direction.Y(), direction.X()),
		Force:     force,
		Distance:  distance,
		Radius:    radius,
	}
}

// project drops the Z component of 2D vectors
func project(v mgl64.Vec3, dimension actor.Dimension) mgl64.Vec3 {
	if dimension == actor.Dim2 {
		v[2] = 0
	}
	return v
}
