package astar

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/gridastar/config"
	"github.com/katalvlaran/gridastar/geometry"
	"github.com/katalvlaran/gridastar/grid"
)

// Engine runs A* over one lattice built from one configuration.
type Engine struct {
	cfg   config.Config
	opts  Options
	graph *grid.Graph

	start, target *grid.Node
	open          *openQueue
	closed        map[int]bool
	disabled      map[int]bool
	current       *grid.Node

	state State
	steps int
	err   error // sticky once Halted

	log *log.Logger
	obs Observer
}

// New validates cfg, builds the lattice, initialises the heuristic on every
// node and enqueues the start node with g = 0. Any configuration problem is
// returned wrapped in ErrConfig and no engine is built.
func New(cfg config.Config, opts ...Option) (*Engine, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = DefaultOptions().Logger
	}
	if o.Observer == nil {
		o.Observer = nopObserver{}
	}
	return build(cfg.Clone(), o)
}

func build(cfg config.Config, o Options) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	g, err := grid.Build(cfg.Rows, cfg.Cols, cfg.GridOptions()...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	start, err := g.StartNode()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	target, err := g.TargetNode()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	e := &Engine{
		cfg:      cfg,
		opts:     o,
		graph:    g,
		start:    start,
		target:   target,
		open:     newOpenQueue(g.Len()),
		closed:   make(map[int]bool, g.Len()),
		disabled: make(map[int]bool, len(cfg.Disabled)),
		state:    Ready,
		log:      o.Logger,
		obs:      o.Observer,
	}
	for _, id := range cfg.Disabled {
		e.disabled[id] = true
	}
	if err := e.initHeuristic(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if !e.disabled[start.ID] {
		start.G = 0
		e.open.push(start)
	}

	e.log.Debug("engine ready",
		"rows", cfg.Rows, "cols", cfg.Cols, "start", start.ID, "target", target.ID,
		"heuristic", cfg.Heuristic, "h_scale", cfg.HScale, "weights", cfg.Weights.Spec(),
		"disabled", len(e.disabled))
	return e, nil
}

// initHeuristic writes h on every node. It runs once per engine.
func (e *Engine) initHeuristic() error {
	h := e.opts.Heuristic
	if h == nil {
		dist := e.opts.Distance
		if dist == nil {
			var err error
			if dist, err = geometry.Lookup(e.cfg.Heuristic); err != nil {
				return err
			}
		}
		scale := e.cfg.HScale
		h = func(n, target *grid.Node) float64 {
			return scale * dist(n.Pos, target.Pos)
		}
	}
	for _, n := range e.graph.Nodes() {
		n.H = h(n, e.target)
	}
	return nil
}

// SetLogger replaces the engine logger. A nil logger discards.
func (e *Engine) SetLogger(l *log.Logger) {
	if l == nil {
		l = DefaultOptions().Logger
	}
	e.opts.Logger = l
	e.log = l
}

// SetObserver replaces the event observer. A nil observer is a no-op.
func (e *Engine) SetObserver(obs Observer) {
	if obs == nil {
		obs = nopObserver{}
	}
	e.opts.Observer = obs
	e.obs = obs
}

// Reset discards the lattice and search state and rebuilds both from cfg,
// keeping the engine's options. On error the engine is left unchanged.
func (e *Engine) Reset(cfg config.Config) error {
	fresh, err := build(cfg.Clone(), e.opts)
	if err != nil {
		return err
	}
	*e = *fresh
	return nil
}

// Disable excludes id from the rest of the search. A node still in the open set
// stays queued and is discarded when it reaches the front. Closed nodes cannot
// be disabled.
func (e *Engine) Disable(id int) error {
	if e.state.Terminal() {
		if e.err != nil {
			return e.err
		}
		return ErrAlgorithmFinished
	}
	if !e.graph.Contains(id) {
		return fmt.Errorf("disable: %w: id %d", grid.ErrOutOfRange, id)
	}
	if e.closed[id] {
		return fmt.Errorf("disable %d: %w", id, ErrNodeClosed)
	}
	e.disabled[id] = true
	return nil
}

// AdvanceOne performs one A* step and returns the node it closed.
//
// When the open set is empty the engine moves to Exhausted and AdvanceOne
// returns (nil, nil). In Found or Exhausted it returns ErrAlgorithmFinished.
// After an *InconsistentHeuristicError or *InvariantError the engine is Halted
// and every later call returns that same error.
func (e *Engine) AdvanceOne() (*grid.Node, error) {
	if e.err != nil {
		return nil, e.err
	}
	if e.state.Terminal() {
		return nil, ErrAlgorithmFinished
	}
	began := time.Now()

	// 1) Discard disabled entries at the front.
	for e.open.Len() > 0 && e.disabled[e.open.peek().ID] {
		n := e.open.pop()
		e.log.Debug("discarded disabled node", "node", n.ID)
	}
	if e.open.Len() == 0 {
		e.finish(Exhausted)
		return nil, nil
	}
	cur := e.open.peek()

	// 2) A closed node can never be queued.
	if e.closed[cur.ID] {
		return nil, e.halt(e.invariant(cur.ID, "popped node is already closed"))
	}

	// 3) Target: close without expanding.
	if cur == e.target {
		e.open.pop()
		e.close(cur)
		e.obs.OnStep(StepEvent{Step: e.steps, Node: cur.ID, Open: e.open.Len(), Closed: len(e.closed), Duration: time.Since(began)})
		e.finish(Found)
		return cur, nil
	}

	// 4) Plan every relaxation before mutating anything.
	plan, err := e.plan(cur)
	if err != nil {
		return nil, e.halt(err)
	}
	e.open.pop()
	e.close(cur)

	ev := StepEvent{Step: e.steps, Node: cur.ID}
	for _, r := range plan {
		r.node.G = r.g
		r.node.Parent = cur.ID
		if r.queued {
			e.open.fix(r.node.ID)
			ev.Updated++
		} else {
			e.open.push(r.node)
			ev.Pushed++
		}
	}
	ev.Open, ev.Closed, ev.Duration = e.open.Len(), len(e.closed), time.Since(began)

	e.log.Debug("step", "step", e.steps, "node", cur.ID, "g", cur.G, "f", cur.F(),
		"pushed", ev.Pushed, "updated", ev.Updated, "open", ev.Open, "closed", ev.Closed)
	e.obs.OnStep(ev)

	// 5) Return the closed node.
	return cur, nil
}

// relaxation is one planned cost update.
type relaxation struct {
	node   *grid.Node
	g      float64
	queued bool // already in open: decrease-key instead of push
}

// plan examines the enabled neighbours of cur without side effects.
func (e *Engine) plan(cur *grid.Node) ([]relaxation, error) {
	nbs := e.graph.Neighbors(cur.ID)
	out := make([]relaxation, 0, len(nbs))
	for _, nb := range nbs {
		if e.disabled[nb.ID] {
			continue
		}
		n, _ := e.graph.Node(nb.ID)
		gNew := cur.G + nb.Weight
		switch {
		case e.open.contains(nb.ID):
			if gNew < n.G {
				out = append(out, relaxation{node: n, g: gNew, queued: true})
			}
		case e.closed[nb.ID]:
			if gNew < n.G {
				return nil, &InconsistentHeuristicError{
					Step: e.steps + 1, Node: cur.ID, Neighbor: nb.ID, OldG: n.G, NewG: gNew,
				}
			}
		default:
			out = append(out, relaxation{node: n, g: gNew})
		}
	}
	return out, nil
}

func (e *Engine) close(n *grid.Node) {
	e.closed[n.ID] = true
	e.current = n
	e.steps++
	e.state = Running
}

func (e *Engine) finish(s State) {
	e.state = s
	cost := math.Inf(1)
	if s == Found {
		cost = e.target.G
	}
	e.log.Info("search finished", "state", s, "steps", e.steps, "closed", len(e.closed), "cost", cost)
	e.obs.OnTerminal(s, e.steps)
}

// halt moves the engine to Halted with a sticky error.
func (e *Engine) halt(err error) error {
	e.state = Halted
	e.err = err
	e.log.Error("search halted", "err", err)
	e.obs.OnError(err)
	e.obs.OnTerminal(Halted, e.steps)
	return err
}

// invariant builds an *InvariantError and logs the full state dump.
func (e *Engine) invariant(id int, reason string) *InvariantError {
	err := &InvariantError{Step: e.steps + 1, Node: id, Reason: reason, Dump: e.dump()}
	e.log.Error("invariant violation", "step", err.Step, "node", id, "reason", reason, "state", err.Dump)
	return err
}

// RunToCompletion steps until the engine is terminal and reports whether the
// target was found. It is exactly equivalent to calling AdvanceOne in a loop.
func (e *Engine) RunToCompletion() (bool, error) {
	return e.RunContext(context.Background())
}

// RunContext is RunToCompletion with cancellation checked between steps.
func (e *Engine) RunContext(ctx context.Context) (bool, error) {
	for {
		if e.err != nil {
			return false, e.err
		}
		if e.state.Terminal() {
			return e.state == Found, nil
		}
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if _, err := e.AdvanceOne(); err != nil {
			return false, err
		}
	}
}

// Advance performs at most n steps, stopping early at a terminal state, and
// returns how many AdvanceOne calls succeeded.
func (e *Engine) Advance(n int) (int, error) {
	done := 0
	for done < n {
		if e.state.Terminal() {
			if e.err != nil {
				return done, e.err
			}
			break
		}
		if _, err := e.AdvanceOne(); err != nil {
			return done, err
		}
		done++
	}
	return done, nil
}
