package render

import (
	"github.com/katalvlaran/gridastar/astar"
	"github.com/katalvlaran/gridastar/grid"
)

// Source is the read-only engine surface a renderer needs. *astar.Engine
// satisfies it.
type Source interface {
	Graph() *grid.Graph
	Nodes() []astar.NodeView
	Current() *grid.Node
	PathIDs() []int
}

// Class is the display category of a node.
type Class int

const (
	Plain Class = iota
	Open
	Closed
	Disabled
	Current
	Path
	Start
	Target
)

var classNames = [...]string{"plain", "open", "closed", "disabled", "current", "path", "start", "target"}

// String implements fmt.Stringer.
func (c Class) String() string {
	if c < 0 || int(c) >= len(classNames) {
		return "unknown"
	}
	return classNames[c]
}

// Classify assigns one class per node, indexed by id-1. When several apply the
// highest wins, in the order start, target, path, current, disabled, closed, open.
func Classify(src Source) []Class {
	g := src.Graph()
	views := src.Nodes()
	out := make([]Class, len(views))

	for i, v := range views {
		switch {
		case v.Disabled:
			out[i] = Disabled
		case v.Closed:
			out[i] = Closed
		case v.Open:
			out[i] = Open
		}
	}
	if cur := src.Current(); cur != nil {
		out[cur.ID-1] = Current
	}
	for _, id := range src.PathIDs() {
		out[id-1] = Path
	}
	out[g.StartID()-1] = Start
	out[g.TargetID()-1] = Target

	return out
}
