package actor

import "github.com/go-gl/mathgl/mgl64"

// Push describes a velocity change offered to a box by a bloom or a zone.
type Push struct {
	// Source is the centre of the bloom or zone
	Source mgl64.Vec3
	// Direction is a unit vector pointing away from Source
	Direction mgl64.Vec3
	// Angle is the heading of Direction in the XY plane (radians). It points from Source to
	// the box, so it is the box to source angle turned by Pi.
	Angle float64
	// Force is the magnitude of the velocity change, already attenuated
	Force    float64
	Distance float64
	Radius   float64
}

// Impulse is the velocity change the push applies.
func (p Push) Impulse() mgl64.Vec3 {
	return p.Direction.Mul(p.Force)
}

// Behavior is the set of hooks the engine calls on the owner of a box.
// These are the only points where domain logic plugs into the simulation.
type Behavior interface {
	// OnCollisionWithStaticBox is called before the box is pushed out of other.
	// face is the face of other that was penetrated.
	OnCollisionWithStaticBox(self, other *Box, face Face)
	// OnCollisionWithDynamicBox is called for dynamic overlaps, which are never resolved.
	OnCollisionWithDynamicBox(self, other *Box, face Face)
	OnSensorEntry(sensor *Sensor, other *Box)
	OnSensorExit(sensor *Sensor, other *Box)
	// OnBloomPush is advisory: the push is applied only when it returns true.
	OnBloomPush(self *Box, push Push) bool
	OnBeforeUpdate(self *Box)
	OnAfterUpdate(self *Box)
	// OnDeletion is called once the box has left its environment.
	OnDeletion(self *Box)
}

// NopBehavior ignores every hook and accepts every bloom push.
// Embed it to override only the hooks you need.
type NopBehavior struct{}

func (NopBehavior) OnCollisionWithStaticBox(self, other *Box, face Face)  {}
func (NopBehavior) OnCollisionWithDynamicBox(self, other *Box, face Face) {}
func (NopBehavior) OnSensorEntry(sensor *Sensor, other *Box)              {}
func (NopBehavior) OnSensorExit(sensor *Sensor, other *Box)               {}
func (NopBehavior) OnBloomPush(self *Box, push Push) bool                 { return true }
func (NopBehavior) OnBeforeUpdate(self *Box)                              {}
func (NopBehavior) OnAfterUpdate(self *Box)                               {}
func (NopBehavior) OnDeletion(self *Box)                                  {}
