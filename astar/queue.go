package astar

import (
	"container/heap"

	"github.com/katalvlaran/gridastar/grid"
)

// openItem is one entry of the open set.
type openItem struct {
	node  *grid.Node
	seq   uint64 // arrival order into the open set, the f tie-break
	index int    // position in the heap, maintained by Swap
}

// openHeap implements heap.Interface ordered by f, then seq.
type openHeap []*openItem

func (h openHeap) Len() int { return len(h) }

func (h openHeap) Less(i, j int) bool {
	fi, fj := h[i].node.F(), h[j].node.F()
	if fi != fj {
		return fi < fj
	}
	return h[i].seq < h[j].seq
}

func (h openHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *openHeap) Push(x any) {
	item := x.(*openItem)
	item.index = len(*h)
	*h = append(*h, item)
}

func (h *openHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*h = old[:n-1]
	return item
}

// openQueue is the open set: a decrease-key heap plus an id index.
type openQueue struct {
	heap openHeap
	byID map[int]*openItem
	seq  uint64
}

func newOpenQueue(capacity int) *openQueue {
	return &openQueue{
		heap: make(openHeap, 0, capacity),
		byID: make(map[int]*openItem, capacity),
	}
}

func (q *openQueue) Len() int { return q.heap.Len() }

func (q *openQueue) contains(id int) bool {
	_, ok := q.byID[id]
	return ok
}

// push adds n. The caller guarantees n is not already queued.
func (q *openQueue) push(n *grid.Node) {
	item := &openItem{node: n, seq: q.seq}
	q.seq++
	q.byID[n.ID] = item
	heap.Push(&q.heap, item)
}

// peek returns the minimum node without removing it.
func (q *openQueue) peek() *grid.Node {
	if q.heap.Len() == 0 {
		return nil
	}
	return q.heap[0].node
}

// pop removes and returns the minimum node.
func (q *openQueue) pop() *grid.Node {
	item := heap.Pop(&q.heap).(*openItem)
	delete(q.byID, item.node.ID)
	return item.node
}

// fix restores heap order after the f of id decreased. Arrival order is kept.
func (q *openQueue) fix(id int) {
	if item, ok := q.byID[id]; ok {
		heap.Fix(&q.heap, item.index)
	}
}

// ids returns the queued node ids in heap order.
func (q *openQueue) ids() []int {
	out := make([]int, len(q.heap))
	for i, item := range q.heap {
		out[i] = item.node.ID
	}
	return out
}
