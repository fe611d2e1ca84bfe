package actor

import "errors"

var (
	// ErrInvalidAxis is raised when an axis is requested that the dimension does not support,
	// e.g. Z on a 2D AABB.
	ErrInvalidAxis = errors.New("invalid axis")
	// ErrDimensionMismatch is raised when 2D and 3D volumes are mixed in one relationship.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrNegativeExtent is raised when an AABB is built with a negative width, height or depth.
	ErrNegativeExtent = errors.New("negative extent")

	ErrSensorAttached    = errors.New("sensor already attached to a box")
	ErrSensorNotAttached = errors.New("sensor not attached to this box")
)
