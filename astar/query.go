package astar

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/katalvlaran/gridastar/config"
	"github.com/katalvlaran/gridastar/geometry"
	"github.com/katalvlaran/gridastar/grid"
)

// NodeView is a read-only copy of one node together with its set membership.
type NodeView struct {
	ID       int            `json:"id"`
	Pos      geometry.Point `json:"pos"`
	G        float64        `json:"g"`
	H        float64        `json:"h"`
	F        float64        `json:"f"`
	Parent   int            `json:"parent,omitempty"`
	Open     bool           `json:"open,omitempty"`
	Closed   bool           `json:"closed,omitempty"`
	Disabled bool           `json:"disabled,omitempty"`
}

// String formats v the way a node is inspected interactively.
func (v NodeView) String() string {
	return fmt.Sprintf("Node %d: f(%g) = g(%g) + h(%g)", v.ID, v.F, v.G, v.H)
}

// MarshalJSON implements json.Marshaler. Unreached costs (+Inf) encode as null.
func (v NodeView) MarshalJSON() ([]byte, error) {
	type plain NodeView
	return json.Marshal(struct {
		plain
		G *float64 `json:"g"`
		F *float64 `json:"f"`
	}{plain: plain(v), G: finite(v.G), F: finite(v.F)})
}

func finite(x float64) *float64 {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return nil
	}
	return &x
}

// Snapshot is a consistent copy of the observable engine state.
type Snapshot struct {
	State    State  `json:"state"`
	Steps    int    `json:"steps"`
	Current  int    `json:"current,omitempty"`
	Start    int    `json:"start"`
	Target   int    `json:"target"`
	Open     []int  `json:"open"`
	Closed   []int  `json:"closed"`
	Disabled []int  `json:"disabled,omitempty"`
	Path     []int  `json:"path,omitempty"`
	Err      string `json:"error,omitempty"`
}

func (e *Engine) view(n *grid.Node) NodeView {
	return NodeView{
		ID:       n.ID,
		Pos:      n.Pos,
		G:        n.G,
		H:        n.H,
		F:        n.F(),
		Parent:   n.Parent,
		Open:     e.open.contains(n.ID) && !e.disabled[n.ID],
		Closed:   e.closed[n.ID],
		Disabled: e.disabled[n.ID],
	}
}

// Node returns a view of node id.
func (e *Engine) Node(id int) (NodeView, error) {
	n, err := e.graph.Node(id)
	if err != nil {
		return NodeView{}, err
	}
	return e.view(n), nil
}

// Nodes returns views of every node in id order.
func (e *Engine) Nodes() []NodeView {
	nodes := e.graph.Nodes()
	out := make([]NodeView, len(nodes))
	for i, n := range nodes {
		out[i] = e.view(n)
	}
	return out
}

// Inspect returns the node whose position lies within tol of p.
func (e *Engine) Inspect(p geometry.Point, tol float64) (NodeView, bool) {
	n, ok := e.graph.NodeAt(p, tol)
	if !ok {
		return NodeView{}, false
	}
	return e.view(n), true
}

// OpenIDs returns the ids in the open set, ascending. Disabled entries still
// awaiting removal are not reported.
func (e *Engine) OpenIDs() []int {
	ids := e.open.ids()
	ids = slices.DeleteFunc(ids, func(id int) bool { return e.disabled[id] })
	slices.Sort(ids)
	return ids
}

// ClosedIDs returns the closed ids, ascending.
func (e *Engine) ClosedIDs() []int { return sortedKeys(e.closed) }

// DisabledIDs returns the disabled ids, ascending.
func (e *Engine) DisabledIDs() []int { return sortedKeys(e.disabled) }

func sortedKeys(m map[int]bool) []int {
	out := make([]int, 0, len(m))
	for id, ok := range m {
		if ok {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}

// Current returns the node closed by the most recent step, or nil.
func (e *Engine) Current() *grid.Node { return e.current }

// State returns the lifecycle state.
func (e *Engine) State() State { return e.state }

// Steps returns the number of successful steps.
func (e *Engine) Steps() int { return e.steps }

// Err returns the sticky error of a Halted engine.
func (e *Engine) Err() error { return e.err }

// Graph returns the lattice the engine searches.
func (e *Engine) Graph() *grid.Graph { return e.graph }

// Config returns a copy of the configuration the engine was built from.
func (e *Engine) Config() config.Config { return e.cfg.Clone() }

// Start returns the start node.
func (e *Engine) Start() *grid.Node { return e.start }

// Target returns the target node.
func (e *Engine) Target() *grid.Node { return e.target }

// ReconstructPath follows parent links from id back to the start and returns
// the nodes start first. The result is empty when id is out of range, or when
// id is neither the start nor has a parent.
func (e *Engine) ReconstructPath(id int) []*grid.Node {
	n, err := e.graph.Node(id)
	if err != nil {
		return nil
	}
	if !n.HasParent() && n != e.start {
		return nil
	}
	path := []*grid.Node{n}
	for hops := 0; n.HasParent() && hops < e.graph.Len(); hops++ {
		n, _ = e.graph.Node(n.Parent)
		path = append(path, n)
	}
	slices.Reverse(path)
	return path
}

// Path returns the start→target path once the target is Found, else nil.
func (e *Engine) Path() []*grid.Node {
	if e.state != Found {
		return nil
	}
	return e.ReconstructPath(e.target.ID)
}

// PathIDs is Path as ids.
func (e *Engine) PathIDs() []int {
	path := e.Path()
	if path == nil {
		return nil
	}
	ids := make([]int, len(path))
	for i, n := range path {
		ids[i] = n.ID
	}
	return ids
}

// Snapshot copies the observable state.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		State:  e.state,
		Steps:  e.steps,
		Start:  e.start.ID,
		Target: e.target.ID,
		Open:   e.OpenIDs(),
		Closed: e.ClosedIDs(),
		Path:   e.PathIDs(),
	}
	if ids := e.DisabledIDs(); len(ids) > 0 {
		s.Disabled = ids
	}
	if e.current != nil {
		s.Current = e.current.ID
	}
	if e.err != nil {
		s.Err = e.err.Error()
	}
	return s
}

// dump renders the search state for invariant reports.
func (e *Engine) dump() string {
	var b strings.Builder
	fmt.Fprintf(&b, "state=%s steps=%d open=%v closed=%v disabled=%v",
		e.state, e.steps, e.open.ids(), e.ClosedIDs(), e.DisabledIDs())
	for _, id := range e.open.ids() {
		n, _ := e.graph.Node(id)
		fmt.Fprintf(&b, "\n  %s parent=%d", e.view(n), n.Parent)
	}
	return b.String()
}
