package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridastar/config"
	"github.com/katalvlaran/gridastar/geometry"
)

func TestParseNodeList(t *testing.T) {
	tests := []struct {
		in   string
		want []int
	}{
		{"", nil},
		{"7", []int{7}},
		{"3,5-8", []int{3, 5, 6, 7, 8}},
		{"4, 2 ,4", []int{4, 2}},
		{"2-2", []int{2}},
	}
	for _, tt := range tests {
		got, err := parseNodeList(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"a", "3-x", "8-5", "1,,-2"} {
		_, err := parseNodeList(bad)
		assert.ErrorIs(t, err, errBadList, bad)
	}
}

func TestParseRange(t *testing.T) {
	lo, hi, err := parseRange("1,9")
	require.NoError(t, err)
	assert.Equal(t, [2]int{1, 9}, [2]int{lo, hi})

	lo, hi, err = parseRange("2-4")
	require.NoError(t, err)
	assert.Equal(t, [2]int{2, 4}, [2]int{lo, hi})

	_, _, err = parseRange("5")
	assert.ErrorIs(t, err, errBadList)
	_, _, err = parseRange("x,3")
	assert.ErrorIs(t, err, errBadList)
}

// resolveArgs parses args into a throwaway command and resolves the config.
func resolveArgs(t *testing.T, args ...string) (config.Config, error) {
	t.Helper()
	var f configFlags
	cmd := &cobra.Command{Use: "test"}
	f.bind(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return f.resolve(cmd)
}

func TestResolve_Defaults(t *testing.T) {
	cfg, err := resolveArgs(t)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestResolve_DimsMoveTarget(t *testing.T) {
	cfg, err := resolveArgs(t, "--rows", "3", "--cols", "4")
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Target)

	cfg, err = resolveArgs(t, "--rows", "3", "--cols", "4", "--target", "5")
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Target)
}

func TestResolve_Overrides(t *testing.T) {
	cfg, err := resolveArgs(t,
		"--rows", "4", "--cols", "5",
		"--heuristic", "manhattan", "--h-scale", "0.5",
		"--weights", "1,5", "--seed", "42",
		"--disable", "2,7-8",
	)
	require.NoError(t, err)
	assert.Equal(t, geometry.KindManhattan, cfg.Heuristic)
	assert.Equal(t, 0.5, cfg.HScale)
	assert.Equal(t, config.Weights{Min: 1, Max: 5}, cfg.Weights)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, []int{2, 7, 8}, cfg.Disabled)
}

func TestResolve_Invalid(t *testing.T) {
	_, err := resolveArgs(t, "--rows", "2", "--cols", "2", "--start", "9")
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = resolveArgs(t, "--disable", "x")
	assert.ErrorIs(t, err, errBadList)
}
