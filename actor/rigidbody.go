package actor

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// BodyType represents the type of box
type BodyType int

const (
	// BodyTypeDynamic boxes are moved by velocity, gravity, blooms and zones,
	// and get pushed out of static boxes
	BodyTypeDynamic BodyType = iota

	// BodyTypeStatic boxes are immovable (ground, walls, platforms)
	BodyTypeStatic
)

func (t BodyType) String() string {
	if t == BodyTypeStatic {
		return "static"
	}
	return "dynamic"
}

const (
	// DefaultMaxVelocity bounds every velocity component unless SetMaxVelocity says otherwise.
	DefaultMaxVelocity = 1000.0

	// Velocities strictly within this threshold snap to zero at integration.
	VelocitySnapThreshold = 0.0005
)

// Material holds the contact coefficients of a box, both clamped to [0, 1].
type Material struct {
	friction    float64
	restitution float64
}

func (m Material) Friction() float64    { return m.friction }
func (m Material) Restitution() float64 { return m.restitution }

// Gravity is a constant velocity change applied every step on one axis.
type Gravity struct {
	Axis      Axis
	Magnitude float64
}

// Box is an AABB with physics state.
type Box struct {
	AABB

	Name     string
	UserData any
	BodyType BodyType
	// AffectedByGravity is only honoured for dynamic boxes
	AffectedByGravity bool
	// Behavior receives the engine hooks, nil behaves like NopBehavior
	Behavior Behavior

	velocity    mgl64.Vec3
	maxVelocity mgl64.Vec3
	Material    Material

	// position prior to the most recent integration
	lastPosition mgl64.Vec3
	// covers the box at lastPosition and at its current position
	projection AABB

	sensors []*Sensor

	markedForDeletion bool
	deleted           bool
}

// NewBox2 creates a 2D box with its min corner at (x, y)
func NewBox2(x, y, width, height float64, bodyType BodyType) *Box {
	b := &Box{}
	b.init(Dim2, mgl64.Vec3{x, y, 0}, mgl64.Vec3{width, height, 0}, bodyType)
	return b
}

// NewBox3 creates a 3D box with its min corner at (x, y, z)
func NewBox3(x, y, z, width, height, depth float64, bodyType BodyType) *Box {
	b := &Box{}
	b.init(Dim3, mgl64.Vec3{x, y, z}, mgl64.Vec3{width, height, depth}, bodyType)
	return b
}

func (b *Box) init(dimension Dimension, position, extent mgl64.Vec3, bodyType BodyType) {
	b.AABB.init(dimension, position, extent)
	b.BodyType = bodyType
	b.AffectedByGravity = bodyType == BodyTypeDynamic
	b.lastPosition = position
	b.projection = AABB{id: b.id, dimension: dimension}
	for _, axis := range dimension.Axes() {
		b.maxVelocity[axis] = DefaultMaxVelocity
	}
	b.updateProjection()
}

func (b *Box) IsDynamic() bool { return b.BodyType == BodyTypeDynamic }
func (b *Box) IsStatic() bool  { return b.BodyType == BodyTypeStatic }

// Origin is the point force fields measure distances from: the centre of the box.
func (b *Box) Origin() mgl64.Vec3 {
	return b.CenterVec()
}

// SetPosition moves the box on one axis, keeping the projection and the attached sensors in lockstep.
// Static boxes never integrate, so for them the move also becomes the previous position.
func (b *Box) SetPosition(axis Axis, value float64) {
	b.AABB.SetPosition(axis, value)
	if b.BodyType == BodyTypeStatic {
		b.lastPosition[axis] = b.position[axis]
	}
	b.updateProjection()
	b.syncSensors()
}

// Teleport moves the box without sweeping: the previous position is reset as well.
func (b *Box) Teleport(position mgl64.Vec3) {
	for _, axis := range b.dimension.Axes() {
		b.position[axis] = position[axis]
	}
	b.lastPosition = b.position
	b.updateProjection()
	b.syncSensors()
}

func (b *Box) LastPosition(axis Axis) float64 {
	b.checkAxis(axis)
	return b.lastPosition[axis]
}

func (b *Box) LastPositionVec() mgl64.Vec3 {
	return b.lastPosition
}

func (b *Box) Velocity(axis Axis) float64 {
	b.checkAxis(axis)
	return b.velocity[axis]
}

func (b *Box) VelocityVec() mgl64.Vec3 {
	return b.velocity
}

// SetVelocity sets one component, clamped to [-max, +max] of that axis.
func (b *Box) SetVelocity(axis Axis, value float64) {
	b.checkAxis(axis)
	limit := b.maxVelocity[axis]
	b.velocity[axis] = mgl64.Clamp(value, -limit, limit)
}

// AddVelocity applies an instantaneous velocity change on one axis.
func (b *Box) AddVelocity(axis Axis, delta float64) {
	b.SetVelocity(axis, b.Velocity(axis)+delta)
}

// ApplyImpulse adds a velocity change on every active axis.
func (b *Box) ApplyImpulse(impulse mgl64.Vec3) {
	for _, axis := range b.dimension.Axes() {
		b.AddVelocity(axis, impulse[axis])
	}
}

func (b *Box) MaxVelocity(axis Axis) float64 {
	b.checkAxis(axis)
	return b.maxVelocity[axis]
}

// SetMaxVelocity changes the velocity bound of one axis and re-clamps the current velocity.
// The sign is ignored.
func (b *Box) SetMaxVelocity(axis Axis, value float64) {
	b.checkAxis(axis)
	if value < 0 {
		value = -value
	}
	b.maxVelocity[axis] = value
	b.SetVelocity(axis, b.velocity[axis])
}

func (b *Box) Friction() float64 {
	return b.Material.friction
}

// SetFriction clamps to [0, 1]
func (b *Box) SetFriction(friction float64) {
	b.Material.friction = mgl64.Clamp(friction, 0, 1)
}

func (b *Box) Restitution() float64 {
	return b.Material.restitution
}

// SetRestitution clamps to [0, 1]
func (b *Box) SetRestitution(restitution float64) {
	b.Material.restitution = mgl64.Clamp(restitution, 0, 1)
}

// Projection is the swept volume of the last step: the smallest AABB covering the box at its
// previous and at its current position.
func (b *Box) Projection() *AABB {
	return &b.projection
}

// Bounds returns the volume broad phases index the box by: its projection.
func (b *Box) Bounds() *AABB {
	return &b.projection
}

func (b *Box) updateProjection() {
	b.projection.Cover(b.lastPosition, b.position, b.extent)
}

// Integrate advances a dynamic box by one step. Static boxes are left untouched.
func (b *Box) Integrate(gravity *Gravity) {
	if b.BodyType == BodyTypeStatic {
		return
	}

	b.lastPosition = b.position

	if gravity != nil && b.AffectedByGravity && b.dimension.Supports(gravity.Axis) {
		b.AddVelocity(gravity.Axis, gravity.Magnitude)
	}

	for _, axis := range b.dimension.Axes() {
		if v := b.velocity[axis]; v > -VelocitySnapThreshold && v < VelocitySnapThreshold {
			b.velocity[axis] = 0
		}
		b.position[axis] += b.velocity[axis]
	}

	b.updateProjection()
	b.syncSensors()
}

// AttachSensor makes the box own the sensor. The sensor is moved to its offset from the box.
func (b *Box) AttachSensor(sensor *Sensor) error {
	if sensor.dimension != b.dimension {
		return fmt.Errorf("%w: %v sensor on a %v box", ErrDimensionMismatch, sensor.dimension, b.dimension)
	}
	if sensor.parent != nil {
		return ErrSensorAttached
	}

	sensor.parent = b
	sensor.follow()
	b.sensors = append(b.sensors, sensor)

	return nil
}

func (b *Box) DetachSensor(sensor *Sensor) error {
	for i, s := range b.sensors {
		if s == sensor {
			b.sensors = append(b.sensors[:i], b.sensors[i+1:]...)
			sensor.parent = nil
			sensor.reset()
			return nil
		}
	}
	return ErrSensorNotAttached
}

// Sensors returns the attached sensors. The slice must not be modified.
func (b *Box) Sensors() []*Sensor {
	return b.sensors
}

func (b *Box) syncSensors() {
	for _, s := range b.sensors {
		s.follow()
	}
}

// MarkForDeletion flags the box; the environment removes it at the start of the next step.
func (b *Box) MarkForDeletion() {
	b.markedForDeletion = true
}

func (b *Box) IsMarkedForDeletion() bool {
	return b.markedForDeletion
}

// IsDeleted reports whether the box has been removed from its environment.
func (b *Box) IsDeleted() bool {
	return b.deleted
}

// SetDeleted is called by the environment once the box has left the world.
func (b *Box) SetDeleted() {
	b.markedForDeletion = true
	b.deleted = true
}

// Hooks returns the box behaviour, never nil.
func (b *Box) Hooks() Behavior {
	if b.Behavior == nil {
		return NopBehavior{}
	}
	return b.Behavior
}

func (b *Box) String() string {
	name := b.Name
	if name == "" {
		name = b.id.String()[:8]
	}
	return fmt.Sprintf("Box{%s %v %v}", name, b.BodyType, &b.AABB)
}

// NewMaterial builds a material, clamping both coefficients to [0, 1].
func NewMaterial(friction, restitution float64) Material {
	return Material{
		friction:    mgl64.Clamp(friction, 0, 1),
		restitution: mgl64.Clamp(restitution, 0, 1),
	}
}
