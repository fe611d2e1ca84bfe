package cuboid

import (
	"errors"

	"github.com/akmonengine/cuboid/actor"
)

var (
	// Environment errors

	ErrInvalidDimension  = errors.New("dimension must be 2 or 3")
	ErrDimensionMismatch = actor.ErrDimensionMismatch
	ErrBoxAlreadyAdded   = errors.New("box already added")
	ErrBoxDeleted        = errors.New("box was deleted")
	ErrBoxNotFound       = errors.New("box not found")
	ErrZoneNotFound      = errors.New("zone not found")

	// Broad phase errors

	ErrInvalidCellSize   = errors.New("cell size must be positive and finite")
	ErrInvalidBuckets    = errors.New("bucket count must be positive")
	ErrInvalidBroadPhase = errors.New("unknown broad phase")

	// Config errors

	ErrInvalidConfig   = errors.New("invalid config")
	ErrInvalidLogLevel = errors.New("invalid log level")
)
