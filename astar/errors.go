package astar

import "fmt"

// InconsistentHeuristicError reports the reopening case: relaxing Node found a
// strictly cheaper path to the already closed Neighbor.
type InconsistentHeuristicError struct {
	Step     int     // step number that detected it
	Node     int     // node being expanded
	Neighbor int     // closed node that would need reopening
	OldG     float64 // g recorded when Neighbor was closed
	NewG     float64 // cheaper g found through Node
}

// Error implements error.
func (e *InconsistentHeuristicError) Error() string {
	return fmt.Sprintf("%v: step %d: node %d offers g=%g to closed node %d (closed with g=%g)",
		ErrInconsistentHeuristic, e.Step, e.Node, e.NewG, e.Neighbor, e.OldG)
}

// Is matches ErrInconsistentHeuristic.
func (e *InconsistentHeuristicError) Is(target error) bool {
	return target == ErrInconsistentHeuristic
}

// InvariantError reports an engine bookkeeping defect together with a dump of
// the search state at the moment it was detected.
type InvariantError struct {
	Step   int
	Node   int
	Reason string
	Dump   string
}

// Error implements error.
func (e *InvariantError) Error() string {
	return fmt.Sprintf("%v: step %d: node %d: %s", ErrInvariant, e.Step, e.Node, e.Reason)
}

// Is matches ErrInvariant.
func (e *InvariantError) Is(target error) bool {
	return target == ErrInvariant
}
