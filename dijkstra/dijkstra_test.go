package dijkstra_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridastar/dijkstra"
	"github.com/katalvlaran/gridastar/grid"
)

func mustGrid(t *testing.T, rows, cols int, opts ...grid.Option) *grid.Graph {
	t.Helper()
	g, err := grid.Build(rows, cols, opts...)
	require.NoError(t, err)
	return g
}

// ------------------------------------------------------------------------
// 1. Validation
// ------------------------------------------------------------------------

func TestShortestPaths_NilGraph(t *testing.T) {
	_, _, err := dijkstra.ShortestPaths(nil, dijkstra.Source(1))
	assert.ErrorIs(t, err, dijkstra.ErrNilGraph)
}

func TestShortestPaths_SourceNotFound(t *testing.T) {
	g := mustGrid(t, 2, 2)
	_, _, err := dijkstra.ShortestPaths(g)
	assert.ErrorIs(t, err, dijkstra.ErrVertexNotFound)
	_, _, err = dijkstra.ShortestPaths(g, dijkstra.Source(5))
	assert.ErrorIs(t, err, dijkstra.ErrVertexNotFound)
}

func TestWithMaxDistance_PanicsOnNegative(t *testing.T) {
	assert.PanicsWithValue(t, dijkstra.ErrBadMaxDistance.Error(), func() {
		dijkstra.WithMaxDistance(-1)
	})
}

// ------------------------------------------------------------------------
// 2. Basic functionality
// ------------------------------------------------------------------------

func TestShortestPaths_Row(t *testing.T) {
	g := mustGrid(t, 1, 3, grid.WithWeights(grid.FixedWeight(2)))
	dist, prev, err := dijkstra.ShortestPaths(g, dijkstra.Source(1), dijkstra.WithReturnPath())
	require.NoError(t, err)
	assert.Equal(t, map[int]float64{1: 0, 2: 2, 3: 4}, dist)
	assert.Equal(t, []int{1, 2, 3}, dijkstra.Path(prev, 1, 3))
}

func TestShortestPaths_NoPathMap(t *testing.T) {
	g := mustGrid(t, 2, 2)
	_, prev, err := dijkstra.ShortestPaths(g, dijkstra.Source(1))
	require.NoError(t, err)
	assert.Nil(t, prev)
}

// TestShortestPaths_Lattice: with unit weights the distance is the Manhattan
// distance between lattice coordinates.
func TestShortestPaths_Lattice(t *testing.T) {
	g := mustGrid(t, 4, 5, grid.WithWeights(grid.FixedWeight(1)))
	dist, _, err := dijkstra.ShortestPaths(g, dijkstra.Source(1))
	require.NoError(t, err)
	for id := 1; id <= g.Len(); id++ {
		r, c := g.RowCol(id)
		assert.Equal(t, float64(r+c), dist[id], "dist[%d]", id)
	}
}

// ------------------------------------------------------------------------
// 3. Disabled nodes and caps
// ------------------------------------------------------------------------

func TestShortestPaths_DisabledCutsRow(t *testing.T) {
	g := mustGrid(t, 1, 3, grid.WithWeights(grid.FixedWeight(2)))
	dist, prev, err := dijkstra.ShortestPaths(g, dijkstra.Source(1), dijkstra.WithDisabled(2), dijkstra.WithReturnPath())
	require.NoError(t, err)
	assert.True(t, math.IsInf(dist[3], 1))
	assert.True(t, math.IsInf(dist[2], 1))
	assert.Nil(t, dijkstra.Path(prev, 1, 3))
}

// TestShortestPaths_DetourAroundWall on a 3×3 lattice with the middle column
// blocked except the bottom cell:
//
//	1 # 3
//	4 # 6
//	7 8 9
func TestShortestPaths_DetourAroundWall(t *testing.T) {
	g := mustGrid(t, 3, 3, grid.WithWeights(grid.FixedWeight(1)))
	dist, prev, err := dijkstra.ShortestPaths(g, dijkstra.Source(1), dijkstra.WithDisabled(2, 5), dijkstra.WithReturnPath())
	require.NoError(t, err)
	assert.Equal(t, 6.0, dist[3])
	assert.Equal(t, []int{1, 4, 7, 8, 9, 6, 3}, dijkstra.Path(prev, 1, 3))
}

func TestShortestPaths_DisabledSource(t *testing.T) {
	g := mustGrid(t, 2, 2)
	dist, _, err := dijkstra.ShortestPaths(g, dijkstra.Source(1), dijkstra.WithDisabled(1))
	require.NoError(t, err)
	for id := 1; id <= 4; id++ {
		assert.True(t, math.IsInf(dist[id], 1))
	}
}

func TestShortestPaths_MaxDistance(t *testing.T) {
	g := mustGrid(t, 1, 5, grid.WithWeights(grid.FixedWeight(1)))
	dist, _, err := dijkstra.ShortestPaths(g, dijkstra.Source(1), dijkstra.WithMaxDistance(2))
	require.NoError(t, err)
	assert.Equal(t, 2.0, dist[3])
	assert.True(t, math.IsInf(dist[4], 1))
}

// TestShortestPaths_RandomWeightsTriangle checks the triangle inequality
// dist[v] <= dist[u] + w(u,v) on every edge of a random lattice.
func TestShortestPaths_RandomWeightsTriangle(t *testing.T) {
	g := mustGrid(t, 6, 7, grid.WithWeights(grid.RangeWeight(1, 9)), grid.WithSeed(3))
	dist, _, err := dijkstra.ShortestPaths(g, dijkstra.Source(10))
	require.NoError(t, err)
	for _, e := range g.Edges() {
		assert.LessOrEqual(t, dist[e.To], dist[e.From]+e.Weight)
		assert.LessOrEqual(t, dist[e.From], dist[e.To]+e.Weight)
	}
}
