package metrics_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridastar/astar"
	"github.com/katalvlaran/gridastar/config"
	"github.com/katalvlaran/gridastar/grid"
	"github.com/katalvlaran/gridastar/metrics"
)

func TestObserver_FoundRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	cfg := config.Default()
	cfg.Rows, cfg.Cols, cfg.Target = 1, 4, 4
	e, err := astar.New(cfg, astar.WithObserver(m))
	require.NoError(t, err)
	_, err = e.RunToCompletion()
	require.NoError(t, err)

	expected := `
# HELP gridastar_searches_total Finished searches by terminal state
# TYPE gridastar_searches_total counter
gridastar_searches_total{state="found"} 1
# HELP gridastar_steps_total Total successful search steps
# TYPE gridastar_steps_total counter
gridastar_steps_total 4
# HELP gridastar_nodes_pushed_total Nodes added to an open set
# TYPE gridastar_nodes_pushed_total counter
gridastar_nodes_pushed_total 3
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"gridastar_searches_total", "gridastar_steps_total", "gridastar_nodes_pushed_total"))

	n, err := testutil.GatherAndCount(reg, "gridastar_step_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestObserver_Errors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	spiky := func(n, _ *grid.Node) float64 {
		switch n.ID {
		case 2:
			return 50
		case 9:
			return 60
		}
		return 0
	}
	cfg := config.Default()
	cfg.Rows, cfg.Cols, cfg.Target, cfg.Spacing = 3, 3, 9, 1
	cfg.Weights = config.Weights{Fixed: 1}
	e, err := astar.New(cfg, astar.WithObserver(m), astar.WithHeuristic(spiky))
	require.NoError(t, err)
	_, err = e.RunToCompletion()
	require.ErrorIs(t, err, astar.ErrInconsistentHeuristic)

	expected := `
# HELP gridastar_errors_total Search errors by kind
# TYPE gridastar_errors_total counter
gridastar_errors_total{kind="inconsistent_heuristic"} 1
# HELP gridastar_searches_total Finished searches by terminal state
# TYPE gridastar_searches_total counter
gridastar_searches_total{state="halted"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"gridastar_errors_total", "gridastar_searches_total"))
}

func TestSessionCreated(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	m.SessionCreated()
	m.SessionCreated()

	expected := `
# HELP gridastar_sessions_created_total Sessions created through the HTTP API
# TYPE gridastar_sessions_created_total counter
gridastar_sessions_created_total 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"gridastar_sessions_created_total"))
}

func TestErrorKind(t *testing.T) {
	cases := map[string]error{
		"inconsistent_heuristic": &astar.InconsistentHeuristicError{},
		"invariant":              fmt.Errorf("wrapped: %w", &astar.InvariantError{}),
		"config":                 astar.ErrConfig,
		"finished":               astar.ErrAlgorithmFinished,
		"other":                  assert.AnError,
	}
	for want, err := range cases {
		assert.Equal(t, want, metrics.ErrorKind(err))
	}
}
