package cuboid

import (
	"cmp"
	"slices"

	"github.com/akmonengine/cuboid/actor"
	"github.com/akmonengine/cuboid/constraint"
	"github.com/akmonengine/cuboid/contact"
	"go.uber.org/zap"
)

// staticHit is a static box overlapping the dynamic box being resolved
type staticHit struct {
	box   *actor.Box
	point contact.Point
}

// narrowPhase tests a freshly integrated dynamic box against its broad-phase candidates.
// Static boxes it penetrates are resolved, the largest overlap first; if it penetrates none,
// the static box its last motion went through first is resolved instead.
// Dynamic overlaps are only reported, to both boxes. It returns true when the box was moved.
func (env *Environment) narrowPhase(box *actor.Box) bool {
	var overlaps, passed []staticHit

	for _, other := range env.broadPhase.Candidates(box) {
		if other == box || other.IsMarkedForDeletion() || other.IsDeleted() {
			continue
		}

		if other.IsDynamic() {
			env.reportDynamic(box, other)
			continue
		}

		if point := contact.Classify(&box.AABB, &other.AABB); point.Face != actor.FaceNone {
			overlaps = append(overlaps, staticHit{box: other, point: point})
		} else if box.Projection().Intersects(&other.AABB) {
			if point, ok := contact.Sweep(box, &other.AABB); ok {
				passed = append(passed, staticHit{box: other, point: point})
			}
		}
	}

	moved := false

	// candidates come in registration order, the stable sort keeps it among equal volumes
	slices.SortStableFunc(overlaps, func(a, b staticHit) int {
		return cmp.Compare(b.point.Volume, a.point.Volume)
	})
	for _, hit := range overlaps {
		// an earlier push-out may have separated them already
		point := contact.Classify(&box.AABB, &hit.box.AABB)
		if point.Face == actor.FaceNone {
			continue
		}
		if env.resolve(box, hit.box, point) {
			moved = true
		}
	}

	if !moved && len(passed) > 0 {
		first := slices.MinFunc(passed, func(a, b staticHit) int {
			return cmp.Compare(a.point.Time, b.point.Time)
		})
		if env.resolve(box, first.box, first.point) {
			moved = true
		}
	}

	return moved
}

// reportDynamic notifies both boxes of an overlap between two dynamic boxes, once per step.
// The other box gets the opposite face, as if it had detected the overlap itself.
func (env *Environment) reportDynamic(box, other *actor.Box) {
	if _, ok := env.reported[[2]*actor.Box{box, other}]; ok {
		return
	}
	point := contact.Classify(&box.AABB, &other.AABB)
	if point.Face == actor.FaceNone {
		return
	}
	env.reported[[2]*actor.Box{box, other}] = struct{}{}
	env.reported[[2]*actor.Box{other, box}] = struct{}{}

	face := point.Resolved()
	box.Hooks().OnCollisionWithDynamicBox(box, other, face)
	env.Events.emit(DynamicCollisionEvent{Box: box, Other: other, Face: face})

	other.Hooks().OnCollisionWithDynamicBox(other, box, face.Opposite())
	env.Events.emit(DynamicCollisionEvent{Box: other, Other: box, Face: face.Opposite()})
}

// resolve notifies the dynamic box then pushes it out of the static box
func (env *Environment) resolve(box, static *actor.Box, point contact.Point) bool {
	face := point.Resolved()
	box.Hooks().OnCollisionWithStaticBox(box, static, face)
	env.Events.emit(StaticCollisionEvent{Box: box, Other: static, Face: face, Swept: point.Swept})

	// the hook may have deleted either box
	if box.IsMarkedForDeletion() || static.IsMarkedForDeletion() {
		return false
	}

	c := constraint.StaticContact{Dynamic: box, Static: static, Point: point}
	resolved := c.Solve()

	if ce := env.logger.Check(zap.DebugLevel, "static contact"); ce != nil {
		ce.Write(
			zap.Stringer("box", box),
			zap.Stringer("static", static),
			zap.Stringer("face", resolved),
			zap.Bool("swept", point.Swept),
		)
	}

	return resolved != actor.FaceNone
}
