package actor

import (
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// BodyType Tests
// =============================================================================

func TestBodyType_Constants(t *testing.T) {
	assert.NotEqual(t, BodyTypeDynamic, BodyTypeStatic)
	assert.Equal(t, BodyType(0), BodyTypeDynamic)
	assert.Equal(t, BodyType(1), BodyTypeStatic)
}

func TestNewBox_Defaults(t *testing.T) {
	dynamic := NewBox2(0, 0, 1, 1, BodyTypeDynamic)
	static := NewBox3(0, 0, 0, 1, 1, 1, BodyTypeStatic)

	assert.True(t, dynamic.AffectedByGravity)
	assert.False(t, static.AffectedByGravity)
	assert.Equal(t, DefaultMaxVelocity, dynamic.MaxVelocity(AxisX))
	assert.Equal(t, DefaultMaxVelocity, static.MaxVelocity(AxisZ))
	assert.Zero(t, dynamic.Friction())
	assert.Zero(t, dynamic.Restitution())
	assert.IsType(t, NopBehavior{}, dynamic.Hooks())
}

// =============================================================================
// Material Tests
// =============================================================================

func TestBox_MaterialClamping(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-1, 0},
		{0, 0},
		{0.25, 0.25},
		{1, 1},
		{3.5, 1},
	}

	for _, tt := range tests {
		b := NewBox2(0, 0, 1, 1, BodyTypeDynamic)
		b.SetFriction(tt.in)
		b.SetRestitution(tt.in)

		assert.Equal(t, tt.want, b.Friction(), "friction(%v)", tt.in)
		assert.Equal(t, tt.want, b.Restitution(), "restitution(%v)", tt.in)
	}

	m := NewMaterial(2, -2)
	assert.Equal(t, 1.0, m.Friction())
	assert.Equal(t, 0.0, m.Restitution())
}

func TestBox_MaterialClampingRandom(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	b := NewBox2(0, 0, 1, 1, BodyTypeDynamic)

	for i := 0; i < 1000; i++ {
		r := rng.Float64()*4 - 2
		b.SetRestitution(r)
		b.SetFriction(r)
		want := max(0, min(1, r))
		require.Equal(t, want, b.Restitution())
		require.Equal(t, want, b.Friction())
	}
}

// =============================================================================
// Velocity Tests
// =============================================================================

func TestBox_VelocityClamping(t *testing.T) {
	b := NewBox2(0, 0, 1, 1, BodyTypeDynamic)
	b.SetMaxVelocity(AxisX, 10)
	b.SetMaxVelocity(AxisY, -5) // sign ignored

	b.SetVelocity(AxisX, 50)
	assert.Equal(t, 10.0, b.Velocity(AxisX))

	b.SetVelocity(AxisY, -50)
	assert.Equal(t, -5.0, b.Velocity(AxisY))

	b.AddVelocity(AxisX, -100)
	assert.Equal(t, -10.0, b.Velocity(AxisX))

	b.SetMaxVelocity(AxisX, 2)
	assert.Equal(t, -2.0, b.Velocity(AxisX), "lowering the max re-clamps")
}

func TestBox_VelocityClampingRandomImpulses(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	b := NewBox3(0, 0, 0, 1, 1, 1, BodyTypeDynamic)
	b.SetMaxVelocity(AxisX, 3)
	b.SetMaxVelocity(AxisY, 7)
	b.SetMaxVelocity(AxisZ, 0.5)

	for i := 0; i < 1000; i++ {
		b.ApplyImpulse(mgl64.Vec3{rng.NormFloat64() * 5, rng.NormFloat64() * 5, rng.NormFloat64() * 5})
		for _, axis := range b.Dimension().Axes() {
			v := b.Velocity(axis)
			require.LessOrEqual(t, v, b.MaxVelocity(axis))
			require.GreaterOrEqual(t, v, -b.MaxVelocity(axis))
		}
	}
}

// =============================================================================
// Integration Tests
// =============================================================================

func TestIntegrate_Dynamic_NoGravity(t *testing.T) {
	b := NewBox2(0, 0, 1, 1, BodyTypeDynamic)
	b.SetVelocity(AxisX, 2)
	b.SetVelocity(AxisY, -1)

	b.Integrate(nil)

	assert.Equal(t, 2.0, b.Position(AxisX))
	assert.Equal(t, -1.0, b.Position(AxisY))
	assert.Equal(t, 0.0, b.LastPosition(AxisX))
	assert.Equal(t, 0.0, b.LastPosition(AxisY))
}

func TestIntegrate_Dynamic_WithGravity(t *testing.T) {
	b := NewBox2(0, 10, 1, 1, BodyTypeDynamic)
	gravity := &Gravity{Axis: AxisY, Magnitude: -0.5}

	b.Integrate(gravity)
	assert.Equal(t, -0.5, b.Velocity(AxisY))
	assert.Equal(t, 9.5, b.Position(AxisY))

	b.Integrate(gravity)
	assert.Equal(t, -1.0, b.Velocity(AxisY))
	assert.Equal(t, 8.5, b.Position(AxisY))
}

func TestIntegrate_NotAffectedByGravity(t *testing.T) {
	b := NewBox2(0, 10, 1, 1, BodyTypeDynamic)
	b.AffectedByGravity = false

	b.Integrate(&Gravity{Axis: AxisY, Magnitude: -1})

	assert.Equal(t, 10.0, b.Position(AxisY))
	assert.Zero(t, b.Velocity(AxisY))
}

func TestIntegrate_Static_NoMovement(t *testing.T) {
	b := NewBox2(0, 0, 1, 1, BodyTypeStatic)
	b.SetVelocity(AxisX, 5)

	b.Integrate(&Gravity{Axis: AxisY, Magnitude: -1})

	assert.Equal(t, 0.0, b.Position(AxisX))
	assert.Equal(t, 0.0, b.Position(AxisY))
}

func TestIntegrate_SnapsMicroVelocities(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want float64
	}{
		{"tiny positive", 0.0004, 0},
		{"tiny negative", -0.0004, 0},
		{"threshold positive kept", 0.0005, 0.0005},
		{"threshold negative kept", -0.0005, -0.0005},
		{"regular", 0.2, 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBox2(0, 0, 1, 1, BodyTypeDynamic)
			b.SetVelocity(AxisX, tt.v)

			b.Integrate(nil)

			assert.Equal(t, tt.want, b.Velocity(AxisX))
			assert.Equal(t, tt.want, b.Position(AxisX))
		})
	}
}

func TestIntegrate_Projection(t *testing.T) {
	b := NewBox2(10, 0, 2, 3, BodyTypeDynamic)
	b.SetVelocity(AxisX, -4)
	b.SetVelocity(AxisY, 1)

	b.Integrate(nil)

	p := b.Projection()
	assert.Equal(t, 6.0, p.Position(AxisX))
	assert.Equal(t, 6.0, p.Length(AxisX)) // max(10, 6) + 2 - 6
	assert.Equal(t, 0.0, p.Position(AxisY))
	assert.Equal(t, 4.0, p.Length(AxisY)) // max(0, 1) + 3 - 0
	assert.Same(t, p, b.Bounds())
}

func TestBox_SetPositionUpdatesProjection(t *testing.T) {
	b := NewBox2(0, 0, 1, 1, BodyTypeDynamic)

	b.SetPosition(AxisX, 5)
	assert.Equal(t, 0.0, b.Projection().Position(AxisX))
	assert.Equal(t, 6.0, b.Projection().Length(AxisX))

	b.Teleport(mgl64.Vec3{-3, 2, 0})
	assert.Equal(t, -3.0, b.Projection().Position(AxisX))
	assert.Equal(t, 1.0, b.Projection().Length(AxisX))
	assert.Equal(t, 2.0, b.LastPosition(AxisY))
}

// =============================================================================
// Sensors & lifecycle
// =============================================================================

func TestBox_AttachSensor(t *testing.T) {
	b := NewBox2(10, 20, 4, 4, BodyTypeDynamic)
	s := NewSensor2(0, -1, 4, 1)

	require.NoError(t, b.AttachSensor(s))
	assert.Same(t, b, s.Parent())
	assert.Equal(t, 10.0, s.Position(AxisX))
	assert.Equal(t, 19.0, s.Position(AxisY))

	assert.ErrorIs(t, b.AttachSensor(s), ErrSensorAttached)
	assert.ErrorIs(t, b.AttachSensor(NewSensor3(0, 0, 0, 1, 1, 1)), ErrDimensionMismatch)

	b.SetVelocity(AxisX, 3)
	b.Integrate(nil)
	assert.Equal(t, 13.0, s.Position(AxisX), "sensor moves in lockstep")

	b.SetPosition(AxisY, 0)
	assert.Equal(t, -1.0, s.Position(AxisY))

	require.NoError(t, b.DetachSensor(s))
	assert.Nil(t, s.Parent())
	assert.Empty(t, b.Sensors())
	assert.ErrorIs(t, b.DetachSensor(s), ErrSensorNotAttached)
}

func TestBox_Deletion(t *testing.T) {
	b := NewBox2(0, 0, 1, 1, BodyTypeDynamic)
	assert.False(t, b.IsMarkedForDeletion())

	b.MarkForDeletion()
	assert.True(t, b.IsMarkedForDeletion())
	assert.False(t, b.IsDeleted())

	b.SetDeleted()
	assert.True(t, b.IsDeleted())
}

func TestBox_StaticSetPositionDoesNotSweep(t *testing.T) {
	b := NewBox2(0, 0, 1, 1, BodyTypeStatic)

	b.SetPosition(AxisX, 10)

	assert.Equal(t, 10.0, b.LastPosition(AxisX))
	assert.Equal(t, 10.0, b.Projection().Position(AxisX))
	assert.Equal(t, 1.0, b.Projection().Length(AxisX))
}
