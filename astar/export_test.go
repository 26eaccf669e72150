package astar

// CloseFrontForTest marks the node at the front of the open set as closed
// without removing it from the queue, producing the state a broken bookkeeping
// path would leave behind. It returns the id of that node, or 0 if open is empty.
func CloseFrontForTest(e *Engine) int {
	n := e.open.peek()
	if n == nil {
		return 0
	}
	e.closed[n.ID] = true
	return n.ID
}

// QueuedForTest reports whether id is in the open queue, disabled or not.
func QueuedForTest(e *Engine, id int) bool { return e.open.contains(id) }
