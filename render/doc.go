// Package render turns the observable state of an [astar.Engine] into pictures.
//
// Every node is assigned exactly one [Class] (start, target, path, current,
// closed, open, disabled or plain), and the class drives the colour of the node
// in both outputs:
//
//   - [ToDOT] writes an undirected Graphviz graph with every node pinned at its
//     lattice position and edges labelled with their weights. [RenderSVG] lays
//     it out with the neato engine of go-graphviz.
//   - [Text] draws the lattice as a terminal grid styled with lipgloss, one cell
//     per node, for the CLI and the interactive stepper.
//
// The package only reads engine state; it never steps or mutates the engine.
package render
