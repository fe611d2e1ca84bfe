package constraint

import (
	"testing"

	"github.com/akmonengine/cuboid/actor"
	"github.com/stretchr/testify/assert"
)

func TestComputeRestitution(t *testing.T) {
	a := actor.NewBox2(0, 0, 1, 1, actor.BodyTypeDynamic)
	b := actor.NewBox2(0, 0, 1, 1, actor.BodyTypeStatic)

	a.SetRestitution(0.5)
	assert.Equal(t, 0.5, ComputeRestitution(a, b))

	b.SetRestitution(0.8)
	assert.InDelta(t, 1.3, ComputeRestitution(a, b), 1e-12)
	assert.Equal(t, ComputeRestitution(a, b), ComputeRestitution(b, a))
}

func TestComputeFriction(t *testing.T) {
	a := actor.NewBox2(0, 0, 1, 1, actor.BodyTypeDynamic)
	b := actor.NewBox2(0, 0, 1, 1, actor.BodyTypeStatic)

	assert.Zero(t, ComputeFriction(a, b))

	a.SetFriction(0.25)
	b.SetFriction(0.25)
	assert.Equal(t, 0.5, ComputeFriction(a, b))

	b.SetFriction(0.9)
	assert.Equal(t, 1.0, ComputeFriction(a, b), "capped")
}
