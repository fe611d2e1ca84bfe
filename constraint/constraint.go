package constraint

import (
	"math"

	"github.com/akmonengine/cuboid/actor"
)

// ComputeRestitution is the fraction of velocity reflected by a contact: the sum of both
// restitution coefficients, in [0, 2].
func ComputeRestitution(a, b *actor.Box) float64 {
	return a.Restitution() + b.Restitution()
}

// ComputeFriction is the fraction of tangential velocity removed by a floor or ceiling
// contact: the sum of both friction coefficients, capped at 1.
func ComputeFriction(a, b *actor.Box) float64 {
	return math.Min(1, a.Friction()+b.Friction())
}
