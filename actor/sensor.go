package actor

import "github.com/go-gl/mathgl/mgl64"

// Sensor is a trigger volume attached to a box. It never pushes anything, it only reports
// which boxes started or stopped overlapping it since the previous review.
type Sensor struct {
	AABB

	Name string

	// non-owning back-reference, the box owns its sensors
	parent *Box
	offset mgl64.Vec3

	intersecting []*Box
	lookup       map[*Box]struct{}
}

// NewSensor2 creates a 2D sensor placed at (offsetX, offsetY) from the min corner of its parent
func NewSensor2(offsetX, offsetY, width, height float64) *Sensor {
	s := &Sensor{}
	s.init(Dim2, mgl64.Vec3{offsetX, offsetY, 0}, mgl64.Vec3{width, height, 0})
	s.offset = s.position
	return s
}

// NewSensor3 creates a 3D sensor placed at (offsetX, offsetY, offsetZ) from the min corner of its parent
func NewSensor3(offsetX, offsetY, offsetZ, width, height, depth float64) *Sensor {
	s := &Sensor{}
	s.init(Dim3, mgl64.Vec3{offsetX, offsetY, offsetZ}, mgl64.Vec3{width, height, depth})
	s.offset = s.position
	return s
}

func (s *Sensor) Parent() *Box {
	return s.parent
}

func (s *Sensor) Offset() mgl64.Vec3 {
	return s.offset
}

// SetOffset moves the sensor relative to its parent.
func (s *Sensor) SetOffset(offset mgl64.Vec3) {
	s.offset = offset
	s.follow()
}

// Intersecting returns the boxes overlapping the sensor at the last review, in entry order.
func (s *Sensor) Intersecting() []*Box {
	return s.intersecting
}

func (s *Sensor) IsIntersecting(box *Box) bool {
	_, ok := s.lookup[box]
	return ok
}

func (s *Sensor) follow() {
	if s.parent == nil {
		s.position = s.offset
		return
	}
	s.position = s.parent.position.Add(s.offset)
}

func (s *Sensor) reset() {
	s.position = s.offset
	s.intersecting = nil
	s.lookup = nil
}

// Review re-evaluates the overlapping boxes among candidates and returns the transitions
// since the previous review. The parent and boxes deleted or marked for deletion never count.
// Entered boxes keep the candidates order, exited boxes keep their entry order.
func (s *Sensor) Review(candidates []*Box) (entered, exited []*Box) {
	current := make(map[*Box]struct{}, len(s.lookup))
	overlapping := make([]*Box, 0, len(s.intersecting))

	for _, box := range candidates {
		if box == s.parent || box.deleted || box.markedForDeletion || box.dimension != s.dimension {
			continue
		}
		if _, dup := current[box]; dup {
			continue
		}
		if !s.AABB.Intersects(&box.AABB) {
			continue
		}
		current[box] = struct{}{}
		overlapping = append(overlapping, box)
	}

	next := make([]*Box, 0, len(overlapping))
	for _, box := range s.intersecting {
		if _, ok := current[box]; ok {
			next = append(next, box)
		} else {
			exited = append(exited, box)
		}
	}
	for _, box := range overlapping {
		if _, ok := s.lookup[box]; !ok {
			entered = append(entered, box)
			next = append(next, box)
		}
	}

	s.intersecting = next
	s.lookup = current

	return entered, exited
}
