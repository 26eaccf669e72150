package grid_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/gridastar/grid"
)

func TestWeightSpec_Validate(t *testing.T) {
	cases := []struct {
		name string
		spec grid.WeightSpec
		ok   bool
	}{
		{"Fixed", grid.FixedWeight(2), true},
		{"FixedFraction", grid.FixedWeight(0.5), true},
		{"FixedZero", grid.FixedWeight(0), false},
		{"FixedNaN", grid.FixedWeight(math.NaN()), false},
		{"FixedInf", grid.FixedWeight(math.Inf(1)), false},
		{"Range", grid.RangeWeight(2, 5), true},
		{"RangeDegenerate", grid.RangeWeight(1, 1), true},
		{"RangeInverted", grid.RangeWeight(3, 2), false},
		{"RangeZeroMin", grid.RangeWeight(0, 4), false},
		{"UnknownMode", grid.WeightSpec{Mode: 7}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.spec.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, grid.ErrInvalidWeights)
			}
		})
	}
}

func TestWeightSpec_RandomAndString(t *testing.T) {
	assert.False(t, grid.FixedWeight(3).Random())
	assert.False(t, grid.RangeWeight(4, 4).Random())
	assert.True(t, grid.RangeWeight(1, 2).Random())

	assert.Equal(t, "3", grid.FixedWeight(3).String())
	assert.Equal(t, "[1, 5]", grid.RangeWeight(1, 5).String())
}
