package grid_test

import (
	"testing"

	"github.com/katalvlaran/gridastar/grid"
)

func BenchmarkBuild_Fixed(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = grid.Build(100, 100)
	}
}

func BenchmarkBuild_Range(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = grid.Build(100, 100, grid.WithWeights(grid.RangeWeight(1, 9)), grid.WithSeed(int64(i)))
	}
}
