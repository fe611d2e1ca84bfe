package force

import (
	"math"
	"testing"

	"github.com/akmonengine/cuboid/actor"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// box2 builds a 2x2 box centred on (x, y)
func box2(x, y float64) *actor.Box {
	return actor.NewBox2(x-1, y-1, 2, 2, actor.BodyTypeDynamic)
}

func TestBloom_PushOnFalloff(t *testing.T) {
	bloom := NewBloom2(0, 0, 10, 8)

	tests := []struct {
		name  string
		box   *actor.Box
		force float64
		dir   mgl64.Vec3
	}{
		{"right, quarter radius", box2(2.5, 0), 6, mgl64.Vec3{1, 0, 0}},
		{"left, half radius", box2(-5, 0), 4, mgl64.Vec3{-1, 0, 0}},
		{"above", box2(0, 7.5), 2, mgl64.Vec3{0, 1, 0}},
		{"diagonal", box2(3, 4), 4, mgl64.Vec3{0.6, 0.8, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			push, ok := bloom.PushOn(tt.box)
			require.True(t, ok)
			assert.InDelta(t, tt.force, push.Force, 1e-9)
			assert.True(t, push.Direction.ApproxEqual(tt.dir), "direction %v", push.Direction)
			assert.InDelta(t, math.Atan2(tt.dir.Y(), tt.dir.X()), push.Angle, 1e-9)
			assert.Equal(t, 10.0, push.Radius)
			assert.True(t, push.Impulse().ApproxEqual(tt.dir.Mul(tt.force)))
		})
	}
}

func TestBloom_AngleIsPushHeading(t *testing.T) {
	bloom := NewBloom2(0, 0, 10, 8)
	box := box2(-5, 0)

	push, ok := bloom.PushOn(box)
	require.True(t, ok)

	toSource := bloom.Position.Sub(box.Origin())
	assert.InDelta(t, 0, math.Atan2(toSource.Y(), toSource.X()), 1e-9)
	assert.InDelta(t, math.Pi, push.Angle, 1e-9, "heading away from the bloom")
	assert.InDelta(t, math.Cos(push.Angle), push.Direction.X(), 1e-9)
	assert.InDelta(t, math.Sin(push.Angle), push.Direction.Y(), 1e-9)
}

func TestBloom_OutOfRange(t *testing.T) {
	bloom := NewBloom2(0, 0, 10, 8)

	_, ok := bloom.PushOn(box2(10, 0))
	assert.False(t, ok, "no push at the boundary")

	_, ok = bloom.PushOn(box2(30, 30))
	assert.False(t, ok)

	_, ok = NewBloom2(0, 0, 0, 8).PushOn(box2(0, 0))
	assert.False(t, ok, "zero radius")
}

func TestBloom_AtCentreIsFullForce(t *testing.T) {
	push, ok := NewBloom2(5, 5, 10, 8).PushOn(box2(5, 5))

	require.True(t, ok)
	assert.Equal(t, 8.0, push.Force)
	assert.Zero(t, push.Distance)
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, push.Direction)
	assert.False(t, math.IsNaN(push.Angle))
}

func TestBloom_3D(t *testing.T) {
	bloom := NewBloom3(0, 0, 0, 10, 10)
	box := actor.NewBox3(-1, -1, 4, 2, 2, 2, actor.BodyTypeDynamic) // centred on (0, 0, 5)

	push, ok := bloom.PushOn(box)

	require.True(t, ok)
	assert.InDelta(t, 5, push.Force, 1e-9)
	assert.True(t, push.Direction.ApproxEqual(mgl64.Vec3{0, 0, 1}))
}

func TestBloom_2DIgnoresZ(t *testing.T) {
	bloom := Bloom{Position: mgl64.Vec3{0, 0, 100}, Radius: 10, Force: 10}

	push, ok := bloom.PushOn(box2(5, 0))

	require.True(t, ok)
	assert.InDelta(t, 5, push.Distance, 1e-9)
}
