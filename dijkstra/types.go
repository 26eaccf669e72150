package dijkstra

import (
	"errors"
	"math"
)

// Sentinel errors returned by ShortestPaths.
var (
	// ErrNilGraph indicates that a nil *grid.Graph was passed.
	ErrNilGraph = errors.New("dijkstra: graph is nil")

	// ErrVertexNotFound indicates that the source id is not in the graph.
	ErrVertexNotFound = errors.New("dijkstra: source vertex not found in graph")

	// ErrBadMaxDistance indicates that MaxDistance was set to a negative value.
	ErrBadMaxDistance = errors.New("dijkstra: MaxDistance must be non-negative")
)

// Options configures ShortestPaths.
//
// Source      – starting node id (must lie in 1..N).
// ReturnPath  – if true, return the predecessor map; otherwise prev is nil.
// MaxDistance – nodes farther than this are not settled. Default +Inf.
// Disabled    – node ids that are never entered nor settled.
type Options struct {
	Source      int
	ReturnPath  bool
	MaxDistance float64
	Disabled    map[int]bool
}

// Option represents a functional option for configuring ShortestPaths.
type Option func(*Options)

// Source sets the starting node id.
func Source(id int) Option {
	return func(o *Options) {
		o.Source = id
	}
}

// WithReturnPath enables the predecessor map in the result.
func WithReturnPath() Option {
	return func(o *Options) {
		o.ReturnPath = true
	}
}

// WithMaxDistance caps exploration. Panics with ErrBadMaxDistance if max < 0.
func WithMaxDistance(max float64) Option {
	return func(o *Options) {
		if max < 0 {
			panic(ErrBadMaxDistance.Error())
		}
		o.MaxDistance = max
	}
}

// WithDisabled excludes the given ids from the search.
func WithDisabled(ids ...int) Option {
	return func(o *Options) {
		if o.Disabled == nil {
			o.Disabled = make(map[int]bool, len(ids))
		}
		for _, id := range ids {
			o.Disabled[id] = true
		}
	}
}

// DefaultOptions returns Options with no cap, no disabled nodes and ReturnPath=false.
func DefaultOptions(source int) Options {
	return Options{
		Source:      source,
		MaxDistance: math.Inf(1),
	}
}
