// Package cuboid is an axis-aligned box collision engine for 2D and 3D games.
//
// An Environment owns a set of boxes and advances them one fixed step at a time. Static boxes
// never move; dynamic boxes integrate their velocity, receive gravity, bloom and zone pushes,
// and are pushed flush out of the static boxes they penetrate. Game logic plugs in through the
// actor.Behavior hooks of each box and through the Events queue drained after every step.
package cuboid

import (
	"fmt"
	"math"
	"slices"

	"github.com/akmonengine/cuboid/actor"
	"github.com/akmonengine/cuboid/force"
	"go.uber.org/zap"
)

const (
	DEFAULT_CELL_SIZE = 64.0
	DEFAULT_BUCKETS   = 1024
)

type Environment struct {
	dimension actor.Dimension
	gravity   *actor.Gravity

	// live boxes in insertion order, members maps each known box to whether it is live (true)
	// or waiting in pendingBoxes (false)
	boxes   []*actor.Box
	members map[*actor.Box]bool

	blooms []force.Bloom
	zones  []force.Zone

	pendingBoxes    []*actor.Box
	pendingRemovals []*actor.Box

	broadPhase BroadPhase[*actor.Box]
	Events     Events

	// dynamic pairs already reported this step, stored in both orders
	reported map[[2]*actor.Box]struct{}

	logger   *zap.Logger
	updating bool
	steps    uint64
}

// ============================================================================
// Options
// ============================================================================

type options struct {
	gravity    *actor.Gravity
	broadPhase BroadPhaseKind
	cellSize   float64
	buckets    int
	logger     *zap.Logger
}

type Option func(*options)

// WithGravity enables gravity: magnitude is added every step to the velocity on axis.
func WithGravity(axis actor.Axis, magnitude float64) Option {
	return func(o *options) {
		o.gravity = &actor.Gravity{Axis: axis, Magnitude: magnitude}
	}
}

func WithBroadPhase(kind BroadPhaseKind) Option {
	return func(o *options) {
		o.broadPhase = kind
	}
}

// WithCellSize sets the grid cell size. Ignored by sweep and prune.
func WithCellSize(size float64) Option {
	return func(o *options) {
		o.cellSize = size
	}
}

// WithBuckets sets the number of grid buckets, rounded up to a power of two. Ignored by sweep and prune.
func WithBuckets(n int) Option {
	return func(o *options) {
		o.buckets = n
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// NewEnvironment creates an empty environment of the given dimension.
func NewEnvironment(dimension actor.Dimension, opts ...Option) (*Environment, error) {
	if !dimension.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDimension, dimension)
	}

	o := options{
		broadPhase: BroadPhaseGrid,
		cellSize:   DEFAULT_CELL_SIZE,
		buckets:    DEFAULT_BUCKETS,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.gravity != nil && !dimension.Supports(o.gravity.Axis) {
		return nil, fmt.Errorf("%w: gravity on %v in %v", actor.ErrInvalidAxis, o.gravity.Axis, dimension)
	}

	var broadPhase BroadPhase[*actor.Box]
	switch o.broadPhase {
	case BroadPhaseGrid:
		if o.cellSize <= 0 || math.IsNaN(o.cellSize) || math.IsInf(o.cellSize, 0) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCellSize, o.cellSize)
		}
		if o.buckets <= 0 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidBuckets, o.buckets)
		}
		broadPhase = NewSpatialGrid[*actor.Box](dimension, o.cellSize, o.buckets)
	case BroadPhaseSweepAndPrune:
		broadPhase = NewSweepAndPrune[*actor.Box](dimension)
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidBroadPhase, o.broadPhase)
	}

	logger := o.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Environment{
		dimension:  dimension,
		gravity:    o.gravity,
		members:    make(map[*actor.Box]bool),
		reported:   make(map[[2]*actor.Box]struct{}),
		broadPhase: broadPhase,
		Events:     NewEvents(),
		logger:     logger.With(zap.Stringer("dimension", dimension), zap.Stringer("broad_phase", o.broadPhase)),
	}, nil
}

// ============================================================================
// Accessors
// ============================================================================

func (env *Environment) Dimension() actor.Dimension {
	return env.dimension
}

// Gravity returns a copy of the gravity, false when disabled
func (env *Environment) Gravity() (actor.Gravity, bool) {
	if env.gravity == nil {
		return actor.Gravity{}, false
	}
	return *env.gravity, true
}

func (env *Environment) SetGravity(axis actor.Axis, magnitude float64) error {
	if !env.dimension.Supports(axis) {
		return fmt.Errorf("%w: gravity on %v in %v", actor.ErrInvalidAxis, axis, env.dimension)
	}
	env.gravity = &actor.Gravity{Axis: axis, Magnitude: magnitude}
	return nil
}

func (env *Environment) ClearGravity() {
	env.gravity = nil
}

// Steps returns the number of completed calls to Update
func (env *Environment) Steps() uint64 {
	return env.steps
}

// Boxes returns a snapshot of the live boxes in insertion order. Boxes added during the
// current step are not part of it until the step ends.
func (env *Environment) Boxes() []*actor.Box {
	return slices.Clone(env.boxes)
}

// Contains reports whether the box is live or waiting to be added.
func (env *Environment) Contains(box *actor.Box) bool {
	_, ok := env.members[box]
	return ok
}

// Query returns the live boxes whose AABB intersects bounds, in insertion order.
func (env *Environment) Query(bounds *actor.AABB) []*actor.Box {
	var result []*actor.Box
	for _, box := range env.broadPhase.Query(bounds) {
		if !box.IsMarkedForDeletion() && bounds.Intersects(&box.AABB) {
			result = append(result, box)
		}
	}
	return result
}

// ============================================================================
// Boxes
// ============================================================================

// AddBox inserts a box. During a step the box is buffered and joins at the end of the step.
func (env *Environment) AddBox(box *actor.Box) error {
	if box.Dimension() != env.dimension {
		return fmt.Errorf("%w: %v box in a %v environment", ErrDimensionMismatch, box.Dimension(), env.dimension)
	}
	if box.IsDeleted() {
		return fmt.Errorf("%w: %v", ErrBoxDeleted, box)
	}
	if _, ok := env.members[box]; ok {
		return fmt.Errorf("%w: %v", ErrBoxAlreadyAdded, box)
	}

	if env.updating {
		env.members[box] = false
		env.pendingBoxes = append(env.pendingBoxes, box)
		return nil
	}

	env.insert(box)
	return nil
}

func (env *Environment) insert(box *actor.Box) {
	env.members[box] = true
	env.boxes = append(env.boxes, box)
	env.broadPhase.Add(box)

	if ce := env.logger.Check(zap.DebugLevel, "box added"); ce != nil {
		ce.Write(zap.Stringer("box", box), zap.Uint64("step", env.steps))
	}
}

// RemoveBox deletes a box from the environment and calls its OnDeletion hook.
// During a step the box is only marked, and leaves at the end of the step.
func (env *Environment) RemoveBox(box *actor.Box) error {
	live, ok := env.members[box]
	if !ok {
		return fmt.Errorf("%w: %v", ErrBoxNotFound, box)
	}

	if env.updating {
		if live && !slices.Contains(env.pendingRemovals, box) {
			box.MarkForDeletion()
			env.pendingRemovals = append(env.pendingRemovals, box)
		} else if !live {
			env.pendingBoxes = slices.DeleteFunc(env.pendingBoxes, func(b *actor.Box) bool { return b == box })
			env.release(box)
		}
		return nil
	}

	env.remove(box)
	return nil
}

func (env *Environment) remove(box *actor.Box) {
	if live := env.members[box]; !live {
		env.pendingBoxes = slices.DeleteFunc(env.pendingBoxes, func(b *actor.Box) bool { return b == box })
		env.release(box)
		return
	}

	if i := slices.Index(env.boxes, box); i >= 0 {
		env.boxes = slices.Delete(env.boxes, i, i+1)
	}
	env.broadPhase.Remove(box)
	env.release(box)
}

// release finalises the removal of a box that is no longer referenced by the environment
func (env *Environment) release(box *actor.Box) {
	delete(env.members, box)
	box.SetDeleted()
	box.Hooks().OnDeletion(box)
	env.Events.emit(DeletionEvent{Box: box})

	if ce := env.logger.Check(zap.DebugLevel, "box deleted"); ce != nil {
		ce.Write(zap.Stringer("box", box), zap.Uint64("step", env.steps))
	}
}

// ============================================================================
// Force fields
// ============================================================================

// AddBloom queues a one-shot radial push, applied during the next step then discarded.
func (env *Environment) AddBloom(bloom force.Bloom) {
	env.blooms = append(env.blooms, bloom)
}

func (env *Environment) AddZone(zone force.Zone) error {
	if zone.Dimension() != env.dimension {
		return fmt.Errorf("%w: %v zone in a %v environment", ErrDimensionMismatch, zone.Dimension(), env.dimension)
	}
	env.zones = append(env.zones, zone)
	return nil
}

func (env *Environment) RemoveZone(zone force.Zone) error {
	i := slices.IndexFunc(env.zones, func(z force.Zone) bool { return z.ID() == zone.ID() })
	if i < 0 {
		return ErrZoneNotFound
	}
	env.zones = slices.Delete(env.zones, i, i+1)
	return nil
}

// Zones returns a snapshot of the zones
func (env *Environment) Zones() []force.Zone {
	return slices.Clone(env.zones)
}

// ============================================================================
// Step
// ============================================================================

// Update advances the environment by one step. Hooks are called synchronously from within;
// they may add or remove boxes, which takes effect at the end of the step.
func (env *Environment) Update() {
	env.updating = true
	clear(env.reported)

	// Phase 1: catch up with boxes moved between steps
	env.syncBroadPhase()

	// Phase 2: drop the boxes marked for deletion
	env.cleanup()

	// Phase 3: force fields
	env.applyBlooms()
	env.applyZones()

	// Phase 4: integrate and resolve, one box at a time
	for _, box := range env.boxes {
		if box.IsMarkedForDeletion() {
			continue
		}
		env.step(box)
	}

	// Phase 5: sensors see the resolved positions
	env.reviewSensors()

	env.updating = false
	env.steps++
	env.commit()

	if ce := env.logger.Check(zap.DebugLevel, "step"); ce != nil {
		ce.Write(
			zap.Uint64("step", env.steps),
			zap.Int("boxes", len(env.boxes)),
			zap.Int("zones", len(env.zones)),
			zap.Int("events", env.Events.Pending()),
		)
	}

	env.Events.flush()
}

func (env *Environment) syncBroadPhase() {
	for _, box := range env.boxes {
		env.broadPhase.Update(box)
	}
}

func (env *Environment) cleanup() {
	var marked []*actor.Box
	for _, box := range env.boxes {
		if box.IsMarkedForDeletion() {
			marked = append(marked, box)
		}
	}
	for _, box := range marked {
		env.remove(box)
	}
}

func (env *Environment) applyBlooms() {
	blooms := env.blooms
	env.blooms = nil

	for _, bloom := range blooms {
		for _, box := range env.boxes {
			if !box.IsDynamic() || box.IsMarkedForDeletion() {
				continue
			}
			push, ok := bloom.PushOn(box)
			if !ok {
				continue
			}

			accepted := box.Hooks().OnBloomPush(box, push)
			if accepted {
				box.ApplyImpulse(push.Impulse())
			}
			env.Events.emit(BloomPushEvent{Box: box, Push: push, Accepted: accepted})

			if ce := env.logger.Check(zap.DebugLevel, "bloom push"); ce != nil {
				ce.Write(zap.Stringer("box", box), zap.Float64("force", push.Force), zap.Bool("accepted", accepted))
			}
		}
	}
}

func (env *Environment) applyZones() {
	for _, zone := range env.zones {
		for _, box := range env.boxes {
			if !box.IsDynamic() || box.IsMarkedForDeletion() || !zone.Intersects(box) {
				continue
			}
			if push, ok := zone.PushOn(box); ok {
				box.ApplyImpulse(push.Impulse())
			}
		}
	}
}

func (env *Environment) step(box *actor.Box) {
	hooks := box.Hooks()
	hooks.OnBeforeUpdate(box)

	if box.IsDynamic() && !box.IsMarkedForDeletion() {
		box.Integrate(env.gravity)
		env.broadPhase.Update(box)

		if env.narrowPhase(box) {
			env.broadPhase.Update(box)
		}
	}

	hooks.OnAfterUpdate(box)
}

func (env *Environment) reviewSensors() {
	for _, box := range env.boxes {
		if box.IsMarkedForDeletion() {
			continue
		}
		for _, sensor := range box.Sensors() {
			entered, exited := sensor.Review(env.broadPhase.Query(&sensor.AABB))

			hooks := box.Hooks()
			for _, other := range exited {
				hooks.OnSensorExit(sensor, other)
				env.Events.emit(SensorExitEvent{Sensor: sensor, Box: other})
			}
			for _, other := range entered {
				hooks.OnSensorEntry(sensor, other)
				env.Events.emit(SensorEnterEvent{Sensor: sensor, Box: other})
			}
		}
	}
}

// commit applies the removals then the additions requested during the step
func (env *Environment) commit() {
	removals := env.pendingRemovals
	env.pendingRemovals = nil
	for _, box := range removals {
		if _, ok := env.members[box]; ok {
			env.remove(box)
		}
	}

	additions := env.pendingBoxes
	env.pendingBoxes = nil
	for _, box := range additions {
		env.insert(box)
	}
}
