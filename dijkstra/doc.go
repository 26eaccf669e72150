// Package dijkstra computes exact single-source shortest paths over a grid.Graph.
//
// Overview:
//
//   - ShortestPaths settles every reachable node in order of increasing distance
//     using a container/heap min-heap, ignoring disabled nodes entirely.
//   - It is the exhaustive reference against which the A* engine is checked: for
//     non-negative weights and an admissible, consistent heuristic, A*'s g(target)
//     must equal dist[target] computed here.
//
// Key features:
//
//   - Functional options: Source (required), WithReturnPath, WithMaxDistance,
//     WithDisabled.
//   - Path rebuilds the node sequence from the predecessor map.
//
// Performance and complexity:
//
//   - Time:  O((V + E) log V); on a lattice E ≤ 2V so this is O(V log V).
//   - Space: O(V + E); the heap may hold stale duplicates under lazy decrease-key.
//
// Error handling (sentinel errors):
//
//   - ErrNilGraph:       nil *grid.Graph.
//   - ErrVertexNotFound: Source outside 1..N.
//   - ErrBadMaxDistance: WithMaxDistance received a negative value (panics).
//
// Thread safety:
//
//   - ShortestPaths only reads edge weights, never node cost fields, so it may run
//     on a graph that an A* engine is searching, provided the caller does not
//     rebuild the graph concurrently.
package dijkstra
