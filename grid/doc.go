// Package grid builds the fixed rectangular lattice that gridastar searches.
//
// What:
//
//   - Build(rows, cols, opts...) creates rows×cols nodes with 1-based ids assigned
//     row-major, positioned on an integer-spaced lattice.
//   - Every node is linked to its left neighbour and to the neighbour directly above,
//     which together yield a 4-connected undirected grid.
//   - Edge weights are either one fixed positive value or sampled once per edge from a
//     closed integer range [min, max] at construction time.
//   - Start and target are designated by id and looked up with StartNode/TargetNode.
//
// Determinism:
//
//   - Node order: row-major (row asc, then col asc), ids 1..N.
//   - Edge emission order: for each node, Left then Up, so a fixed seed reproduces the
//     same weights.
//   - Neighbors returns Left, Right, Up, Down (those that exist), so relaxation order is
//     reproducible for a fixed graph.
//   - A degenerate range (min == max) never touches the RNG.
//
// Complexity:
//
//   - Build:     O(rows×cols) time and memory.
//   - Neighbors: O(1) (precomputed adjacency).
//   - NodeAt:    O(1).
//
// Errors:
//
//   - ErrInvalidDimensions: rows < 1 or cols < 1.
//   - ErrInvalidWeights:    non-positive fixed weight, or empty/inverted/non-positive range.
//   - ErrOutOfRange:        an id outside 1..N (node lookup, start or target).
package grid
