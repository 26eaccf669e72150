package astar

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/gridastar/geometry"
	"github.com/katalvlaran/gridastar/grid"
)

// Sentinel errors returned by the engine.
var (
	// ErrConfig indicates a malformed configuration; no engine is built.
	ErrConfig = errors.New("astar: invalid configuration")

	// ErrAlgorithmFinished indicates a step was requested after Found or Exhausted.
	ErrAlgorithmFinished = errors.New("astar: algorithm already finished")

	// ErrInconsistentHeuristic indicates that a closed node was found to need reopening,
	// which only happens with an inconsistent heuristic or a negative edge weight.
	ErrInconsistentHeuristic = errors.New("astar: closed node needs reopening (inconsistent heuristic)")

	// ErrInvariant indicates an internal bookkeeping defect in the engine.
	ErrInvariant = errors.New("astar: internal invariant violated")

	// ErrNodeClosed indicates that a closed node cannot be disabled.
	ErrNodeClosed = errors.New("astar: node is already closed")
)

// State is the engine's lifecycle state.
type State int

const (
	Ready State = iota
	Running
	Found
	Exhausted
	Halted
)

var stateNames = [...]string{"ready", "running", "found", "exhausted", "halted"}

// String implements fmt.Stringer.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	for i, name := range stateNames {
		if name == string(text) {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("astar: unknown state %q", text)
}

// Terminal reports whether no further step can succeed.
func (s State) Terminal() bool { return s == Found || s == Exhausted || s == Halted }

// StepEvent describes one successful AdvanceOne call.
type StepEvent struct {
	Step     int           // 1-based step number
	Node     int           // id of the node closed by this step
	Pushed   int           // neighbours newly added to open
	Updated  int           // open neighbours whose g decreased
	Open     int           // open set size after the step
	Closed   int           // closed set size after the step
	Duration time.Duration // wall time spent in the step
}

// Observer receives engine events. Implementations must be fast; they are
// called synchronously from the stepping goroutine.
type Observer interface {
	OnStep(ev StepEvent)
	OnTerminal(state State, steps int)
	OnError(err error)
}

type nopObserver struct{}

func (nopObserver) OnStep(StepEvent)      {}
func (nopObserver) OnTerminal(State, int) {}
func (nopObserver) OnError(error)         {}

// HeuristicFunc computes h for a node given the target.
type HeuristicFunc func(n, target *grid.Node) float64

// Options configures an Engine beyond its config.Config.
type Options struct {
	// Logger receives step (debug), terminal (info) and invariant (error) records.
	// Defaults to a logger that discards everything.
	Logger *log.Logger
	// Observer receives step and terminal events. Defaults to a no-op.
	Observer Observer
	// Distance overrides the metric named by the configuration.
	Distance geometry.DistanceFunc
	// Heuristic overrides h entirely; the configured scale is not applied.
	Heuristic HeuristicFunc
}

// Option mutates Options.
type Option func(*Options)

// WithLogger sets the engine logger.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithObserver sets the event observer.
func WithObserver(obs Observer) Option {
	return func(o *Options) { o.Observer = obs }
}

// WithDistance replaces the configured distance function.
func WithDistance(fn geometry.DistanceFunc) Option {
	return func(o *Options) { o.Distance = fn }
}

// WithHeuristic replaces the heuristic computation.
func WithHeuristic(h HeuristicFunc) Option {
	return func(o *Options) { o.Heuristic = h }
}

// DefaultOptions returns Options with a discarding logger and a no-op observer.
func DefaultOptions() Options {
	return Options{
		Logger:   log.New(io.Discard),
		Observer: nopObserver{},
	}
}
