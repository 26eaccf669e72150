package config

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/gridastar/geometry"
	"github.com/katalvlaran/gridastar/grid"
)

// Sentinel errors for configuration handling.
var (
	// ErrInvalid marks every validation failure.
	ErrInvalid = errors.New("config: invalid configuration")

	// ErrBadScale indicates a negative or non-finite heuristic scale.
	ErrBadScale = errors.New("config: h_scale must be finite and >= 0")

	// ErrBadSpacing indicates a negative or non-finite lattice spacing.
	ErrBadSpacing = errors.New("config: spacing must be finite and >= 0")

	// ErrUnsupportedFormat indicates an unknown config file extension.
	ErrUnsupportedFormat = errors.New("config: unsupported file format")
)

// Reference deployment values.
const (
	DefaultRows   = 10
	DefaultCols   = 20
	DefaultHScale = 1.0
)

// Weights describes edge weights. Setting Min or Max selects a random integer
// range [Min, Max]; otherwise every edge gets Fixed.
type Weights struct {
	Fixed float64 `toml:"fixed,omitempty" yaml:"fixed,omitempty" json:"fixed,omitempty"`
	Min   int     `toml:"min,omitempty" yaml:"min,omitempty" json:"min,omitempty"`
	Max   int     `toml:"max,omitempty" yaml:"max,omitempty" json:"max,omitempty"`
}

// IsRange reports whether the range form is used.
func (w Weights) IsRange() bool { return w.Min != 0 || w.Max != 0 }

// Spec converts w to a grid.WeightSpec.
func (w Weights) Spec() grid.WeightSpec {
	if w.IsRange() {
		return grid.RangeWeight(w.Min, w.Max)
	}
	return grid.FixedWeight(w.Fixed)
}

// Config is the full parameter set of one run.
type Config struct {
	Rows      int           `toml:"rows" yaml:"rows" json:"rows"`
	Cols      int           `toml:"cols" yaml:"cols" json:"cols"`
	Spacing   float64       `toml:"spacing,omitempty" yaml:"spacing,omitempty" json:"spacing,omitempty"`
	Heuristic geometry.Kind `toml:"heuristic" yaml:"heuristic" json:"heuristic"`
	HScale    float64       `toml:"h_scale" yaml:"h_scale" json:"h_scale"`
	Weights   Weights       `toml:"weights" yaml:"weights" json:"weights"`
	Start     int           `toml:"start" yaml:"start" json:"start"`
	Target    int           `toml:"target" yaml:"target" json:"target"`
	Disabled  []int         `toml:"disabled,omitempty" yaml:"disabled,omitempty" json:"disabled,omitempty"`
	// Seed drives random edge weights. Zero picks a time-based seed per build.
	Seed int64 `toml:"seed,omitempty" yaml:"seed,omitempty" json:"seed,omitempty"`
}

// Default returns the reference configuration: a 10×20 lattice with spacing 1,
// fixed weight 2, Euclidean heuristic at scale 1, start 1 and target 200.
func Default() Config {
	return Config{
		Rows:      DefaultRows,
		Cols:      DefaultCols,
		Spacing:   grid.DefaultSpacing,
		Heuristic: geometry.KindEuclidean,
		HScale:    DefaultHScale,
		Weights:   Weights{Fixed: grid.DefaultWeight},
		Start:     1,
		Target:    DefaultRows * DefaultCols,
	}
}

// N returns the number of lattice nodes.
func (c Config) N() int { return c.Rows * c.Cols }

// Validate checks every field. The returned error wraps ErrInvalid and the
// specific cause.
func (c Config) Validate() error {
	if c.Rows < 1 || c.Cols < 1 {
		return invalid(fmt.Errorf("%w: got rows=%d, cols=%d", grid.ErrInvalidDimensions, c.Rows, c.Cols))
	}
	if err := c.Weights.Spec().Validate(); err != nil {
		return invalid(err)
	}
	if _, err := geometry.Lookup(c.Heuristic); err != nil {
		return invalid(err)
	}
	if c.HScale < 0 || math.IsNaN(c.HScale) || math.IsInf(c.HScale, 0) {
		return invalid(fmt.Errorf("%w: got %g", ErrBadScale, c.HScale))
	}
	// Zero selects grid.DefaultSpacing.
	if c.Spacing < 0 || math.IsNaN(c.Spacing) || math.IsInf(c.Spacing, 0) {
		return invalid(fmt.Errorf("%w: got %g", ErrBadSpacing, c.Spacing))
	}
	n := c.N()
	if c.Start < 1 || c.Start > n {
		return invalid(fmt.Errorf("start: %w: id %d not in 1..%d", grid.ErrOutOfRange, c.Start, n))
	}
	if c.Target < 1 || c.Target > n {
		return invalid(fmt.Errorf("target: %w: id %d not in 1..%d", grid.ErrOutOfRange, c.Target, n))
	}
	for _, id := range c.Disabled {
		if id < 1 || id > n {
			return invalid(fmt.Errorf("disabled: %w: id %d not in 1..%d", grid.ErrOutOfRange, id, n))
		}
	}

	return nil
}

// GridOptions translates c into grid.Build options.
func (c Config) GridOptions() []grid.Option {
	opts := []grid.Option{
		grid.WithWeights(c.Weights.Spec()),
		grid.WithEndpoints(c.Start, c.Target),
		grid.WithSpacing(c.Spacing),
	}
	if c.Seed != 0 {
		opts = append(opts, grid.WithSeed(c.Seed))
	}
	return opts
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	c.Disabled = slices.Clone(c.Disabled)
	return c
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalid, err)
}
