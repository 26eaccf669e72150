// Package astar implements the A* best-first search over a grid.Graph with a
// single-step and a full-run entry point, so that callers can observe the open
// set, closed set, current node and reconstructed path at any point.
//
// Lifecycle:
//
//	Ready ──AdvanceOne──▶ Running ──AdvanceOne──▶ Found | Exhausted
//	                         │
//	                         └──(reopening / invariant error)──▶ Halted
//
//   - Ready:     constructed, heuristic initialised, start enqueued with g = 0.
//   - Running:   at least one node closed, target not yet closed.
//   - Found:     the target was popped and closed.
//   - Exhausted: the open set drained before the target was closed.
//   - Halted:    a step reported *InconsistentHeuristicError or *InvariantError;
//     every later step returns the same error.
//
// Step (AdvanceOne):
//
//  1. Pop the minimum-f node; disabled entries are discarded and the pop repeats.
//  2. A popped node that is already closed is an internal invariant violation.
//  3. Close it. If it is the target, stop without expanding it.
//  4. Relax each enabled neighbour with g' = g(cur) + w:
//     open and g' < g → lower g, set parent, re-prioritise (decrease-key);
//     closed and g' < g → *InconsistentHeuristicError;
//     unseen → set g and parent, push.
//  5. Return the closed node.
//
// Queue contract:
//
//   - The open set is a binary heap with decrease-key (heap.Fix). Every node is in
//     the heap at most once; duplicates are never pushed.
//   - Order: smallest f = g + h first, ties by arrival order into the open set.
//     f is computed from the node on every comparison and never cached.
//
// Atomicity:
//
//   - A step that fails leaves open, closed and every node cost exactly as they
//     were before the call: neighbours are examined before anything is popped.
//
// Heuristic:
//
//   - h(n) = scale · distance(n.pos, target.pos), computed once at construction.
//     Admissibility and consistency are the caller's contract. Any built-in
//     kind with scale in [0, 1] and integer weights ≥ spacing never triggers a
//     reopening. At the default spacing of 1 that is every integer weight.
//
// Concurrency:
//
//   - An Engine is not safe for concurrent use. A host that steps it from a worker
//     goroutine must own it exclusively for the run and publish results through
//     its own hand-off. RunContext allows cancellation between steps; Advance
//     bounds the number of steps.
//
// Errors:
//
//   - ErrConfig:                construction rejected (wraps the precise cause).
//   - ErrAlgorithmFinished:     step requested in Found or Exhausted.
//   - ErrInconsistentHeuristic: a closed node would need reopening.
//   - ErrInvariant:             internal bookkeeping defect (logged with a state dump).
//   - ErrNodeClosed:            Disable was called on an already closed node.
package astar
