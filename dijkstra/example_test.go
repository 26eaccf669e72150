package dijkstra_test

import (
	"fmt"

	"github.com/katalvlaran/gridastar/dijkstra"
	"github.com/katalvlaran/gridastar/grid"
)

// ExampleShortestPaths computes the exact distance across a 3×3 unit lattice.
func ExampleShortestPaths() {
	g, _ := grid.Build(3, 3, grid.WithWeights(grid.FixedWeight(1)))
	dist, prev, err := dijkstra.ShortestPaths(g, dijkstra.Source(1), dijkstra.WithReturnPath())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("dist[9]=%g path=%v\n", dist[9], dijkstra.Path(prev, 1, 9))
	// Output: dist[9]=4 path=[1 2 3 6 9]
}
