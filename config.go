package cuboid

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/akmonengine/cuboid/actor"
	"gopkg.in/yaml.v3"
)

// Config describes an environment in YAML:
//
//	dimension: 2
//	gravity:
//	  axis: y
//	  magnitude: -0.5
//	broad_phase: grid
//	cell_size: 64
//	buckets: 1024
//	log_level: info
type Config struct {
	Dimension  int            `yaml:"dimension"`
	Gravity    *GravityConfig `yaml:"gravity,omitempty"`
	BroadPhase string         `yaml:"broad_phase,omitempty"`
	CellSize   float64        `yaml:"cell_size,omitempty"`
	Buckets    int            `yaml:"buckets,omitempty"`
	LogLevel   string         `yaml:"log_level,omitempty"`
}

type GravityConfig struct {
	Axis      string  `yaml:"axis"`
	Magnitude float64 `yaml:"magnitude"`
}

// DefaultConfig is a 2D grid environment without gravity
func DefaultConfig() Config {
	return Config{
		Dimension:  int(actor.Dim2),
		BroadPhase: BroadPhaseGrid.String(),
		CellSize:   DEFAULT_CELL_SIZE,
		Buckets:    DEFAULT_BUCKETS,
		LogLevel:   "info",
	}
}

// LoadConfig decodes a YAML config. Missing keys keep their DefaultConfig value.
func LoadConfig(r io.Reader) (*Config, error) {
	c := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadConfig(f)
}

// Validate checks every field without building anything.
func (c *Config) Validate() error {
	if c.Dimension != int(actor.Dim2) && c.Dimension != int(actor.Dim3) {
		return fmt.Errorf("%w: %w: %d", ErrInvalidConfig, ErrInvalidDimension, c.Dimension)
	}
	dimension := actor.Dimension(c.Dimension)
	if c.Gravity != nil {
		axis, err := actor.ParseAxis(c.Gravity.Axis)
		if err != nil {
			return fmt.Errorf("%w: gravity: %w", ErrInvalidConfig, err)
		}
		if !dimension.Supports(axis) {
			return fmt.Errorf("%w: gravity: %w: %v in %v", ErrInvalidConfig, actor.ErrInvalidAxis, axis, dimension)
		}
	}
	if _, err := c.broadPhase(); err != nil {
		return err
	}
	if c.CellSize <= 0 || math.IsNaN(c.CellSize) || math.IsInf(c.CellSize, 0) {
		return fmt.Errorf("%w: %w: %v", ErrInvalidConfig, ErrInvalidCellSize, c.CellSize)
	}
	if c.Buckets <= 0 {
		return fmt.Errorf("%w: %w: %d", ErrInvalidConfig, ErrInvalidBuckets, c.Buckets)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (c *Config) broadPhase() (BroadPhaseKind, error) {
	switch c.BroadPhase {
	case "", "grid":
		return BroadPhaseGrid, nil
	case "sap", "sweep_and_prune":
		return BroadPhaseSweepAndPrune, nil
	}
	return 0, fmt.Errorf("%w: %w: %q", ErrInvalidConfig, ErrInvalidBroadPhase, c.BroadPhase)
}

// Options converts the config into environment options. The logger is not part of them.
func (c *Config) Options() ([]Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	kind, _ := c.broadPhase()
	opts := []Option{
		WithBroadPhase(kind),
		WithCellSize(c.CellSize),
		WithBuckets(c.Buckets),
	}
	if c.Gravity != nil {
		axis, _ := actor.ParseAxis(c.Gravity.Axis)
		opts = append(opts, WithGravity(axis, c.Gravity.Magnitude))
	}
	return opts, nil
}

// NewEnvironmentFromConfig builds an environment logging at the configured level.
func NewEnvironmentFromConfig(c *Config) (*Environment, error) {
	opts, err := c.Options()
	if err != nil {
		return nil, err
	}

	logger, err := NewLogger(c.LogLevel)
	if err != nil {
		return nil, err
	}

	return NewEnvironment(actor.Dimension(c.Dimension), append(opts, WithLogger(logger))...)
}
