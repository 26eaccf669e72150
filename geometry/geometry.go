package geometry

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Sentinel errors for geometry lookups.
var (
	// ErrUnknownKind indicates that a distance kind name is not recognised.
	ErrUnknownKind = errors.New("geometry: unknown distance kind")

	// ErrBadExponent indicates a Minkowski exponent below 1.
	ErrBadExponent = errors.New("geometry: minkowski exponent must be >= 1")
)

// Point is a position in grid units.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// String implements fmt.Stringer.
func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// DistanceFunc measures the distance between two points.
// Implementations must be pure and never return a negative value.
type DistanceFunc func(p, q Point) float64

// Euclidean returns the straight-line distance between p and q.
func Euclidean(p, q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Manhattan returns the sum of absolute coordinate differences.
func Manhattan(p, q Point) float64 {
	return math.Abs(p.X-q.X) + math.Abs(p.Y-q.Y)
}

// Minkowski returns the L^p distance. p=1 is Manhattan, p=2 is Euclidean.
// Returns ErrBadExponent if p < 1 or p is NaN.
func Minkowski(p float64) (DistanceFunc, error) {
	if !(p >= 1) {
		return nil, fmt.Errorf("%w: got %g", ErrBadExponent, p)
	}
	switch p {
	case 1:
		return Manhattan, nil
	case 2:
		return Euclidean, nil
	}
	if math.IsInf(p, 1) {
		return chebyshev, nil
	}

	return func(a, b Point) float64 {
		dx := math.Abs(a.X - b.X)
		dy := math.Abs(a.Y - b.Y)
		return math.Pow(math.Pow(dx, p)+math.Pow(dy, p), 1/p)
	}, nil
}

// chebyshev is the L^inf limit of Minkowski.
func chebyshev(a, b Point) float64 {
	return math.Max(math.Abs(a.X-b.X), math.Abs(a.Y-b.Y))
}

// Kind names a distance function selectable from configuration.
type Kind string

const (
	// KindEuclidean selects Euclidean.
	KindEuclidean Kind = "euclidean"
	// KindManhattan selects Manhattan.
	KindManhattan Kind = "manhattan"
	// KindChebyshev selects the L^inf distance.
	KindChebyshev Kind = "chebyshev"
)

// minkowskiPrefix introduces a parameterised kind such as "minkowski:3".
const minkowskiPrefix = "minkowski:"

// Kinds lists every fixed kind in a stable order. Minkowski kinds are
// parameterised and not listed.
func Kinds() []Kind {
	return []Kind{KindEuclidean, KindManhattan, KindChebyshev}
}

// MinkowskiKind returns the kind name selecting Minkowski(p).
func MinkowskiKind(p float64) Kind {
	return Kind(minkowskiPrefix + strconv.FormatFloat(p, 'g', -1, 64))
}

// Lookup resolves a kind name (case-insensitive, surrounding spaces ignored)
// to its DistanceFunc. An empty name selects Euclidean; "minkowski:<p>"
// selects Minkowski(p).
func Lookup(kind Kind) (DistanceFunc, error) {
	name := Kind(strings.ToLower(strings.TrimSpace(string(kind))))
	switch name {
	case "", KindEuclidean:
		return Euclidean, nil
	case KindManhattan:
		return Manhattan, nil
	case KindChebyshev:
		return chebyshev, nil
	}
	if raw, ok := strings.CutPrefix(string(name), minkowskiPrefix); ok {
		p, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: bad exponent", ErrUnknownKind, kind)
		}
		return Minkowski(p)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}
