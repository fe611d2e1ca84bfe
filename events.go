package cuboid

import (
	"github.com/akmonengine/cuboid/actor"
)

const (
	COLLISION_STATIC EventType = iota
	COLLISION_DYNAMIC
	SENSOR_ENTER
	SENSOR_EXIT
	BLOOM_PUSH
	BOX_DELETED
)

type EventType uint8

func (t EventType) String() string {
	switch t {
	case COLLISION_STATIC:
		return "collision_static"
	case COLLISION_DYNAMIC:
		return "collision_dynamic"
	case SENSOR_ENTER:
		return "sensor_enter"
	case SENSOR_EXIT:
		return "sensor_exit"
	case BLOOM_PUSH:
		return "bloom_push"
	case BOX_DELETED:
		return "box_deleted"
	}
	return "unknown"
}

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// Collision events

// StaticCollisionEvent is emitted before a dynamic box is pushed out of a static one.
// Face is the face of Other that was resolved.
type StaticCollisionEvent struct {
	Box   *actor.Box
	Other *actor.Box
	Face  actor.Face
	Swept bool
}

func (e StaticCollisionEvent) Type() EventType { return COLLISION_STATIC }

// DynamicCollisionEvent is emitted once per step by each dynamic box overlapping another dynamic box.
type DynamicCollisionEvent struct {
	Box   *actor.Box
	Other *actor.Box
	Face  actor.Face
}

func (e DynamicCollisionEvent) Type() EventType { return COLLISION_DYNAMIC }

// Sensor events
type SensorEnterEvent struct {
	Sensor *actor.Sensor
	Box    *actor.Box
}

func (e SensorEnterEvent) Type() EventType { return SENSOR_ENTER }

type SensorExitEvent struct {
	Sensor *actor.Sensor
	Box    *actor.Box
}

func (e SensorExitEvent) Type() EventType { return SENSOR_EXIT }

// BloomPushEvent reports every push offered by a bloom, Accepted tells whether it was applied.
type BloomPushEvent struct {
	Box      *actor.Box
	Push     actor.Push
	Accepted bool
}

func (e BloomPushEvent) Type() EventType { return BLOOM_PUSH }

type DeletionEvent struct {
	Box *actor.Box
}

func (e DeletionEvent) Type() EventType { return BOX_DELETED }

// EventListener - callback for events
type EventListener func(event Event)

// Events buffers what happened during a step and hands it to the listeners once the step is over.
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event
}

func NewEvents() Events {
	return Events{
		listeners: make(map[EventType][]EventListener),
		buffer:    make([]Event, 0, 256),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	if e.listeners == nil {
		e.listeners = make(map[EventType][]EventListener)
	}
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// Pending returns the number of events waiting for the next flush
func (e *Events) Pending() int {
	return len(e.buffer)
}

func (e *Events) emit(event Event) {
	e.buffer = append(e.buffer, event)
}

// flush sends all buffered events in emission order and clears the buffer.
// Events emitted by listeners are delivered by the next flush.
func (e *Events) flush() {
	buffer := e.buffer
	e.buffer = make([]Event, 0, cap(buffer))

	for _, event := range buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
}
