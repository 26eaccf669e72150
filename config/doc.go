// Package config holds the parameter bundle a gridastar run is built from.
//
// A Config is created once by the caller (Default plus overrides, or Load from a
// file), may be edited between runs, and is consumed exactly once when an
// astar.Engine is constructed. Nothing reads it during a run.
//
// File formats, chosen by extension:
//
//   - .toml        github.com/BurntSushi/toml
//   - .yaml, .yml  gopkg.in/yaml.v3
//   - .json        encoding/json
//
// Example (TOML):
//
//	rows      = 10
//	cols      = 20
//	heuristic = "manhattan"
//	h_scale   = 1.0
//	start     = 1
//	target    = 200
//	disabled  = [45, 65, 85]
//	seed      = 7
//
//	[weights]
//	min = 1
//	max = 5
//
// Validate reports every malformed field as an error wrapping ErrInvalid and the
// precise grid/geometry sentinel (grid.ErrInvalidDimensions, grid.ErrOutOfRange,
// grid.ErrInvalidWeights, geometry.ErrUnknownKind, ErrBadScale).
package config
