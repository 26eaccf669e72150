package grid

import (
	"fmt"
	"math"

	"github.com/katalvlaran/gridastar/geometry"
)

// Graph is a rows×cols lattice of nodes with undirected weighted edges between
// orthogonal neighbours. Topology and weights are immutable once built; only the
// cost fields of the nodes change during a search.
type Graph struct {
	rows, cols int
	spacing    float64
	nodes      []*Node      // nodes[id-1]
	adj        [][]Neighbor // adj[id-1], ordered Left, Right, Up, Down
	edges      []Edge       // emission order
	start      int
	target     int
}

// Build constructs a rows×cols lattice.
//
// Ids are assigned row-major starting at 1; node (row, col) sits at
// ((col+1)·spacing, (row+1)·spacing). For every node the edge to its left
// neighbour is emitted first, then the edge to the node above; each emitted edge
// draws one weight. Returns ErrInvalidDimensions or ErrInvalidWeights on bad input.
func Build(rows, cols int, opts ...Option) (*Graph, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: got rows=%d, cols=%d", ErrInvalidDimensions, rows, cols)
	}
	if err := cfg.Weights.Validate(); err != nil {
		return nil, err
	}

	n := rows * cols
	weight := cfg.Weights.fn()
	rng := resolveRand(cfg.Rand, cfg.Weights)

	g := &Graph{
		rows:    rows,
		cols:    cols,
		spacing: cfg.Spacing,
		nodes:   make([]*Node, n),
		adj:     make([][]Neighbor, n),
		edges:   make([]Edge, 0, 2*n),
		start:   cfg.Start,
		target:  cfg.Target,
	}
	if g.start == 0 {
		g.start = 1
	}
	if g.target == 0 {
		g.target = n
	}

	// left[i] / up[i] hold the weight of the edge from node i+1 to its left / upper
	// neighbour, or NaN at the boundary.
	left := make([]float64, n)
	up := make([]float64, n)

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			id := r*cols + c + 1
			g.nodes[id-1] = &Node{
				ID:  id,
				Pos: geometry.Pt(float64(c+1)*g.spacing, float64(r+1)*g.spacing),
				G:   math.Inf(1),
			}
			left[id-1], up[id-1] = math.NaN(), math.NaN()
			if c > 0 {
				w := weight(rng)
				left[id-1] = w
				g.edges = append(g.edges, Edge{From: id, To: id - 1, Weight: w})
			}
			if r > 0 {
				w := weight(rng)
				up[id-1] = w
				g.edges = append(g.edges, Edge{From: id, To: id - cols, Weight: w})
			}
		}
	}

	for i := 0; i < n; i++ {
		id := i + 1
		r, c := i/cols, i%cols
		nb := make([]Neighbor, 0, 4)
		if c > 0 {
			nb = append(nb, Neighbor{ID: id - 1, Weight: left[i]})
		}
		if c+1 < cols {
			nb = append(nb, Neighbor{ID: id + 1, Weight: left[i+1]})
		}
		if r > 0 {
			nb = append(nb, Neighbor{ID: id - cols, Weight: up[i]})
		}
		if r+1 < rows {
			nb = append(nb, Neighbor{ID: id + cols, Weight: up[i+cols]})
		}
		g.adj[i] = nb
	}

	return g, nil
}

// Dims returns the lattice dimensions.
func (g *Graph) Dims() (rows, cols int) { return g.rows, g.cols }

// Len returns the number of nodes N.
func (g *Graph) Len() int { return len(g.nodes) }

// Spacing returns the distance between adjacent lattice positions.
func (g *Graph) Spacing() float64 { return g.spacing }

// Contains reports whether id lies in 1..N.
func (g *Graph) Contains(id int) bool { return id >= 1 && id <= len(g.nodes) }

// Node returns the node with the given id, or ErrOutOfRange.
func (g *Graph) Node(id int) (*Node, error) {
	if !g.Contains(id) {
		return nil, fmt.Errorf("%w: id %d not in 1..%d", ErrOutOfRange, id, len(g.nodes))
	}
	return g.nodes[id-1], nil
}

// Nodes returns all nodes in id order. The slice is a copy; the nodes are shared.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Edges returns every undirected edge once, in emission order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Neighbors returns the adjacency of id in Left, Right, Up, Down order.
// It returns nil for ids outside 1..N. The result must not be modified.
func (g *Graph) Neighbors(id int) []Neighbor {
	if !g.Contains(id) {
		return nil
	}
	return g.adj[id-1]
}

// Weight returns the weight of edge u–v and whether it exists.
func (g *Graph) Weight(u, v int) (float64, bool) {
	for _, nb := range g.Neighbors(u) {
		if nb.ID == v {
			return nb.Weight, true
		}
	}
	return 0, false
}

// StartID returns the configured start id (unchecked).
func (g *Graph) StartID() int { return g.start }

// TargetID returns the configured target id (unchecked).
func (g *Graph) TargetID() int { return g.target }

// StartNode looks up the configured start node.
func (g *Graph) StartNode() (*Node, error) {
	n, err := g.Node(g.start)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	return n, nil
}

// TargetNode looks up the configured target node.
func (g *Graph) TargetNode() (*Node, error) {
	n, err := g.Node(g.target)
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}
	return n, nil
}

// RowCol converts an id to its 0-based (row, col). The id is not checked.
func (g *Graph) RowCol(id int) (row, col int) {
	return (id - 1) / g.cols, (id - 1) % g.cols
}

// ID converts a 0-based (row, col) to an id.
func (g *Graph) ID(row, col int) (int, bool) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return 0, false
	}
	return row*g.cols + col + 1, true
}

// NodeAt returns the node whose position lies within tol of p on both axes,
// preferring the nearest one. It reports false when no node is that close.
func (g *Graph) NodeAt(p geometry.Point, tol float64) (*Node, bool) {
	col := int(math.Round(p.X/g.spacing)) - 1
	row := int(math.Round(p.Y/g.spacing)) - 1
	id, ok := g.ID(row, col)
	if !ok {
		return nil, false
	}
	n := g.nodes[id-1]
	if math.Abs(n.Pos.X-p.X) > tol || math.Abs(n.Pos.Y-p.Y) > tol {
		return nil, false
	}
	return n, true
}
