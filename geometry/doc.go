// Package geometry provides the planar primitives used by gridastar:
// a 2D Point and a family of interchangeable distance functions.
//
// What:
//
//   - Point is an immutable (X, Y) pair in grid units.
//   - DistanceFunc is the strategy signature shared by every metric.
//   - Euclidean, Manhattan and Minkowski(p) implement it.
//   - Kind names a metric so it can be chosen from configuration; Lookup resolves it.
//     "euclidean", "manhattan" and "chebyshev" are fixed names, "minkowski:<p>"
//     selects Minkowski(p).
//
// Contract:
//
//   - Every DistanceFunc is pure, symmetric and returns a non-negative value.
//   - The search engine treats the function as an opaque heuristic strategy.
//     Whether h = scale·distance(p, target) is admissible for a given set of edge
//     weights is the caller's responsibility; nothing here checks it.
//
// Complexity:
//
//   - All metrics are O(1) time and memory.
//
// Errors:
//
//   - ErrUnknownKind: Lookup received a name that is not a known metric.
//   - ErrBadExponent: Minkowski (or a "minkowski:<p>" kind) was asked for p < 1.
package geometry
