package constraint

import (
	"github.com/akmonengine/cuboid/actor"
	"github.com/akmonengine/cuboid/contact"
)

// StaticContact pushes a dynamic box out of a static box.
type StaticContact struct {
	Dynamic *actor.Box
	Static  *actor.Box
	Point   contact.Point
}

// Solve repositions the dynamic box flush against the penetrated face, reflects its velocity
// on that axis and, for floor and ceiling contacts, damps the velocity on the other axes.
// It returns the face that was resolved, FaceNone if nothing was done.
func (c *StaticContact) Solve() actor.Face {
	face := c.Point.Resolved()
	axis, ok := face.Axis()
	if !ok {
		return actor.FaceNone
	}

	dynamic := c.Dynamic
	static := c.Static

	// a sweep hit first moves the box back to where the motion met the static box
	if c.Point.Swept {
		for _, a := range dynamic.Dimension().Axes() {
			if a != axis {
				dynamic.SetPosition(a, c.Point.Position[a])
			}
		}
	}

	// ========== PUSH OUT ==========
	if face.IsMax() {
		dynamic.SetPosition(axis, static.Max(axis))
	} else {
		dynamic.SetPosition(axis, static.Min(axis)-dynamic.Length(axis))
	}

	// ========== RESTITUTION ==========
	// only a velocity heading into the static box is reflected
	v := dynamic.Velocity(axis)
	if (face.IsMax() && v < 0) || (!face.IsMax() && v > 0) {
		dynamic.SetVelocity(axis, -v*ComputeRestitution(dynamic, static))
	}

	// ========== FRICTION ==========
	if face == actor.FaceTop || face == actor.FaceBottom {
		damping := 1 - ComputeFriction(dynamic, static)
		for _, a := range dynamic.Dimension().Axes() {
			if a != axis {
				dynamic.SetVelocity(a, dynamic.Velocity(a)*damping)
			}
		}
	}

	return face
}
