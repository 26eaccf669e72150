package grid

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/gridastar/geometry"
)

// Sentinel errors for lattice construction and lookup.
var (
	// ErrInvalidDimensions indicates rows < 1 or cols < 1.
	ErrInvalidDimensions = errors.New("grid: rows and cols must be >= 1")

	// ErrInvalidWeights indicates a malformed edge-weight specification.
	ErrInvalidWeights = errors.New("grid: invalid edge weight specification")

	// ErrOutOfRange indicates a node id outside 1..N.
	ErrOutOfRange = errors.New("grid: node id out of range")
)

// NoParent is the Parent value of a node that has not been reached.
const NoParent = 0

// DefaultSpacing is the distance between adjacent lattice positions. With unit
// spacing, h never drops by more than 1 across an edge, so Euclidean and
// Manhattan at scale ≤ 1 stay consistent for every integer weight ≥ 1.
const DefaultSpacing float64 = 1

// Node is one lattice vertex plus the cost bookkeeping the search mutates.
//
// G starts at +Inf and is only lowered by relaxation. H is written once when the
// heuristic is initialised. F is derived on every read and never stored.
// Parent is the id of the node the current best path came from (NoParent if none).
type Node struct {
	ID     int
	Pos    geometry.Point
	G      float64
	H      float64
	Parent int
}

// F returns G + H.
func (n *Node) F() float64 { return n.G + n.H }

// HasParent reports whether a predecessor has been recorded.
func (n *Node) HasParent() bool { return n.Parent != NoParent }

// Reached reports whether the node has a finite G.
func (n *Node) Reached() bool { return !math.IsInf(n.G, 1) }

// String implements fmt.Stringer.
func (n *Node) String() string { return fmt.Sprintf("%d", n.ID) }

// Neighbor is one adjacency entry: the adjacent node id and the edge weight.
type Neighbor struct {
	ID     int
	Weight float64
}

// Edge is an undirected weighted lattice edge. From is always the larger id
// (the node that emitted it during construction).
type Edge struct {
	From, To int
	Weight   float64
}

// WeightMode selects how edge weights are produced.
type WeightMode int

const (
	// WeightFixed gives every edge the same value.
	WeightFixed WeightMode = iota
	// WeightRange samples each edge independently from [Min, Max].
	WeightRange
)

// WeightSpec describes edge weights. Build it with FixedWeight or RangeWeight.
type WeightSpec struct {
	Mode  WeightMode
	Value float64 // used when Mode == WeightFixed
	Min   int     // used when Mode == WeightRange
	Max   int     // used when Mode == WeightRange
}

// FixedWeight returns a spec assigning value to every edge.
func FixedWeight(value float64) WeightSpec {
	return WeightSpec{Mode: WeightFixed, Value: value}
}

// RangeWeight returns a spec sampling each edge uniformly from the integers in [min, max].
func RangeWeight(min, max int) WeightSpec {
	return WeightSpec{Mode: WeightRange, Min: min, Max: max}
}

// Options configures Build.
type Options struct {
	Weights WeightSpec // default FixedWeight(DefaultWeight)
	Rand    *rand.Rand // RNG for WeightRange; nil means a time-seeded source
	Spacing float64    // lattice spacing; default DefaultSpacing
	Start   int        // start id; default 1
	Target  int        // target id; default N (last node)
}

// Option mutates Options.
type Option func(*Options)

// WithWeights sets the edge-weight specification.
func WithWeights(spec WeightSpec) Option {
	return func(o *Options) { o.Weights = spec }
}

// WithSeed seeds a dedicated RNG for weight sampling.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Rand = rand.New(rand.NewSource(seed)) }
}

// WithRand uses r for weight sampling.
func WithRand(r *rand.Rand) Option {
	return func(o *Options) { o.Rand = r }
}

// WithSpacing sets the lattice spacing. Non-positive values are ignored.
func WithSpacing(s float64) Option {
	return func(o *Options) {
		if s > 0 {
			o.Spacing = s
		}
	}
}

// WithEndpoints sets the start and target ids. They are checked lazily by
// StartNode and TargetNode.
func WithEndpoints(start, target int) Option {
	return func(o *Options) {
		o.Start = start
		o.Target = target
	}
}

// DefaultOptions returns the options Build starts from.
func DefaultOptions() Options {
	return Options{
		Weights: FixedWeight(DefaultWeight),
		Spacing: DefaultSpacing,
	}
}
