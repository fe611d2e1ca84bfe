package cuboid

import (
	"testing"

	"github.com/akmonengine/cuboid/actor"
	"github.com/stretchr/testify/assert"
)

type eventCapture struct {
	events []Event
}

func (ec *eventCapture) capture(event Event) {
	ec.events = append(ec.events, event)
}

func (ec *eventCapture) types() []EventType {
	types := make([]EventType, len(ec.events))
	for i, e := range ec.events {
		types[i] = e.Type()
	}
	return types
}

func TestEvents_FlushInEmissionOrder(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	events.Subscribe(BOX_DELETED, capture.capture)
	events.Subscribe(COLLISION_STATIC, capture.capture)

	a := actor.NewBox2(0, 0, 1, 1, actor.BodyTypeDynamic)
	b := actor.NewBox2(0, 0, 1, 1, actor.BodyTypeStatic)
	events.emit(StaticCollisionEvent{Box: a, Other: b, Face: actor.FaceTop})
	events.emit(SensorEnterEvent{Box: b})
	events.emit(DeletionEvent{Box: a})
	assert.Equal(t, 3, events.Pending())

	events.flush()

	assert.Equal(t, []EventType{COLLISION_STATIC, BOX_DELETED}, capture.types())
	assert.Zero(t, events.Pending())

	events.flush()
	assert.Len(t, capture.events, 2, "flushed events are not delivered twice")
}

func TestEvents_MultipleListeners(t *testing.T) {
	events := NewEvents()
	first, second := &eventCapture{}, &eventCapture{}
	events.Subscribe(SENSOR_EXIT, first.capture)
	events.Subscribe(SENSOR_EXIT, second.capture)

	events.emit(SensorExitEvent{})
	events.flush()

	assert.Len(t, first.events, 1)
	assert.Len(t, second.events, 1)
}

func TestEvents_EmittedDuringFlushWaitForNextFlush(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	events.Subscribe(BLOOM_PUSH, func(e Event) {
		capture.capture(e)
		events.emit(DeletionEvent{})
	})
	events.Subscribe(BOX_DELETED, capture.capture)

	events.emit(BloomPushEvent{Accepted: true})
	events.flush()
	assert.Equal(t, []EventType{BLOOM_PUSH}, capture.types())
	assert.Equal(t, 1, events.Pending())

	events.flush()
	assert.Equal(t, []EventType{BLOOM_PUSH, BOX_DELETED}, capture.types())
}

func TestEvents_ZeroValueSubscribe(t *testing.T) {
	var events Events
	capture := &eventCapture{}
	events.Subscribe(COLLISION_DYNAMIC, capture.capture)
	events.emit(DynamicCollisionEvent{})
	events.flush()

	assert.Len(t, capture.events, 1)
}

func TestEventType_String(t *testing.T) {
	assert.Equal(t, "collision_static", COLLISION_STATIC.String())
	assert.Equal(t, "box_deleted", BOX_DELETED.String())
	assert.Equal(t, "unknown", EventType(99).String())
}
