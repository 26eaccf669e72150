package grid

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// DefaultWeight is the fixed edge weight used when no spec is given.
const DefaultWeight float64 = 2

// WeightFn produces one edge weight. It must be deterministic for a given RNG state.
type WeightFn func(rng *rand.Rand) float64

// Validate checks the spec: a fixed weight must be finite and > 0, a range must
// satisfy 1 <= Min <= Max.
func (s WeightSpec) Validate() error {
	switch s.Mode {
	case WeightFixed:
		if !(s.Value > 0) || math.IsInf(s.Value, 1) {
			return fmt.Errorf("%w: fixed weight must be positive and finite, got %g", ErrInvalidWeights, s.Value)
		}
	case WeightRange:
		if s.Min < 1 || s.Max < s.Min {
			return fmt.Errorf("%w: require 1 <= min <= max, got [%d, %d]", ErrInvalidWeights, s.Min, s.Max)
		}
	default:
		return fmt.Errorf("%w: unknown mode %d", ErrInvalidWeights, s.Mode)
	}

	return nil
}

// Random reports whether weights drawn from s depend on the RNG.
func (s WeightSpec) Random() bool {
	return s.Mode == WeightRange && s.Max > s.Min
}

// String implements fmt.Stringer.
func (s WeightSpec) String() string {
	if s.Mode == WeightRange {
		return fmt.Sprintf("[%d, %d]", s.Min, s.Max)
	}
	return fmt.Sprintf("%g", s.Value)
}

// fn turns a validated spec into a WeightFn.
func (s WeightSpec) fn() WeightFn {
	if s.Mode == WeightFixed {
		v := s.Value
		return func(_ *rand.Rand) float64 { return v }
	}
	lo, hi := s.Min, s.Max
	if lo == hi {
		// Degenerate interval: constant, the RNG is left untouched.
		return func(_ *rand.Rand) float64 { return float64(lo) }
	}
	span := hi - lo + 1

	return func(rng *rand.Rand) float64 {
		return float64(lo + rng.Intn(span))
	}
}

// resolveRand returns r, or a time-seeded RNG when r is nil and spec needs one.
func resolveRand(r *rand.Rand, spec WeightSpec) *rand.Rand {
	if r != nil || !spec.Random() {
		return r
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
