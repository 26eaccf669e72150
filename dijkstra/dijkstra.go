package dijkstra

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/gridastar/grid"
)

// ShortestPaths computes the distance from Options.Source to every node of g.
//
// Returns:
//
//   - dist: node id → minimum distance, +Inf if unreachable (or disabled).
//   - prev: predecessor map if WithReturnPath was given, nil otherwise.
//     prev[v] == u means one shortest path to v ends with the edge u→v.
//     Unreached nodes and the source have no entry.
//   - err:  ErrNilGraph or ErrVertexNotFound.
//
// A disabled source yields all distances +Inf.
func ShortestPaths(g *grid.Graph, opts ...Option) (map[int]float64, map[int]int, error) {
	cfg := DefaultOptions(0)
	for _, opt := range opts {
		opt(&cfg)
	}

	if g == nil {
		return nil, nil, ErrNilGraph
	}
	if !g.Contains(cfg.Source) {
		return nil, nil, fmt.Errorf("%w: %d", ErrVertexNotFound, cfg.Source)
	}

	r := &runner{
		g:       g,
		options: cfg,
		dist:    make(map[int]float64, g.Len()),
		prev:    make(map[int]int, g.Len()),
		visited: make(map[int]bool, g.Len()),
		pq:      make(nodePQ, 0, g.Len()),
	}
	r.init()
	r.process()

	if !cfg.ReturnPath {
		return r.dist, nil, nil
	}
	return r.dist, r.prev, nil
}

// Path rebuilds the node sequence source→…→target from prev.
// It returns nil when target was not reached.
func Path(prev map[int]int, source, target int) []int {
	path := []int{target}
	for cur := target; cur != source; {
		p, ok := prev[cur]
		if !ok {
			return nil
		}
		path = append(path, p)
		cur = p
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// runner holds the mutable state for a single execution.
type runner struct {
	g       *grid.Graph
	options Options
	dist    map[int]float64
	prev    map[int]int
	visited map[int]bool
	pq      nodePQ
}

// init sets dist to +Inf everywhere and seeds the heap with the source.
func (r *runner) init() {
	for id := 1; id <= r.g.Len(); id++ {
		r.dist[id] = math.Inf(1)
	}
	heap.Init(&r.pq)
	if r.options.Disabled[r.options.Source] {
		return
	}
	r.dist[r.options.Source] = 0
	heap.Push(&r.pq, &nodeItem{id: r.options.Source, dist: 0})
}

// process pops the closest unsettled node until the heap drains or MaxDistance is passed.
func (r *runner) process() {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		u := item.id

		// Stale duplicate left behind by lazy decrease-key.
		if r.visited[u] {
			continue
		}
		if item.dist > r.options.MaxDistance {
			break
		}
		r.visited[u] = true
		r.relax(u)
	}
}

// relax improves the distance of every enabled neighbour of u.
// Only strict improvements are recorded, so equal-cost ties keep the first parent.
func (r *runner) relax(u int) {
	for _, nb := range r.g.Neighbors(u) {
		v := nb.ID
		if r.options.Disabled[v] || r.visited[v] {
			continue
		}
		newDist := r.dist[u] + nb.Weight
		if newDist > r.options.MaxDistance || newDist >= r.dist[v] {
			continue
		}
		r.dist[v] = newDist
		r.prev[v] = u
		heap.Push(&r.pq, &nodeItem{id: v, dist: newDist})
	}
}

// nodeItem is one heap entry: a node and its tentative distance.
type nodeItem struct {
	id   int
	dist float64
}

// nodePQ is a min-heap of *nodeItem ordered by dist, ties by id.
// It uses lazy decrease-key: improved nodes are pushed again and the stale
// entries are skipped in process via visited.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].id < pq[j].id
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
