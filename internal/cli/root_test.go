package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridastar/config"
)

// execute runs the root command with args and returns stdout and the log.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	root := New(&out, &logs, LogInfo).RootCommand()
	root.SetErr(&logs)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), logs.String(), err
}

func TestSetVersion(t *testing.T) {
	v, c, d := version, commit, date
	t.Cleanup(func() { SetVersion(v, c, d) })

	SetVersion("1.0.0", "abc123", "2026-01-01")
	assert.Equal(t, "1.0.0", version)
	assert.Equal(t, "abc123", commit)
	assert.Equal(t, "2026-01-01", date)
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, &bytes.Buffer{}, LogInfo).RootCommand()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"run", "step", "render", "verify", "serve", "config"} {
		assert.Contains(t, names, want)
	}
}

func TestRun_Default(t *testing.T) {
	out, logs, err := execute(t, "run")
	require.NoError(t, err)
	assert.Contains(t, out, "path found")
	assert.Contains(t, out, "56")
	assert.Contains(t, logs, "search finished")
}

func TestRun_Line(t *testing.T) {
	out, _, err := execute(t, "run", "--rows", "1", "--cols", "3", "--spacing", "1", "--weight", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "1 → 2 → 3")
}

func TestRun_NoPath(t *testing.T) {
	out, _, err := execute(t, "run", "--rows", "1", "--cols", "3", "--disable", "2", "--grid")
	require.NoError(t, err)
	assert.Contains(t, out, "no path")
	assert.Contains(t, out, "#")
}

func TestRun_BadConfig(t *testing.T) {
	_, _, err := execute(t, "run", "--rows", "0")
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestRender_Formats(t *testing.T) {
	out, _, err := execute(t, "render", "--rows", "2", "--cols", "2", "-f", "dot")
	require.NoError(t, err)
	assert.Contains(t, out, "graph G {")
	assert.Contains(t, out, "penwidth")

	out, _, err = execute(t, "render", "--rows", "2", "--cols", "3", "--steps", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "S")
	assert.Contains(t, out, "T")

	_, _, err = execute(t, "render", "-f", "png")
	assert.Error(t, err)
}

func TestRender_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.dot")
	_, logs, err := execute(t, "render", "--rows", "2", "--cols", "2", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, logs, "wrote")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "layout=neato")
}

func TestInferFormat(t *testing.T) {
	assert.Equal(t, formatDOT, inferFormat("a.gv"))
	assert.Equal(t, formatDOT, inferFormat("a.DOT"))
	assert.Equal(t, formatSVG, inferFormat("out/a.svg"))
	assert.Equal(t, formatText, inferFormat(""))
	assert.Equal(t, formatText, inferFormat("a.txt"))
}

func TestVerify_Admissible(t *testing.T) {
	out, logs, err := execute(t, "verify", "--rows", "4", "--cols", "5", "--spacing", "1",
		"--weights", "1,5", "--seed", "7", "--trials", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "5 trials match")
	assert.Contains(t, logs, "failed=0")
}

func TestVerifyTrial(t *testing.T) {
	cfg := config.Default()
	cfg.Rows, cfg.Cols, cfg.Target = 3, 3, 9
	cfg.Disabled = []int{2, 4}

	res := verifyTrial(cfg)
	require.NoError(t, res.Err)
	assert.True(t, res.ok())
	assert.True(t, res.AStar > 1e300, "start is walled in")
}

func TestConfigCommand(t *testing.T) {
	out, _, err := execute(t, "config", "--rows", "2", "--cols", "3", "-f", "json")
	require.NoError(t, err)

	cfg, err := config.Parse([]byte(out), config.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Rows)
	assert.Equal(t, 3, cfg.Cols)
	assert.Equal(t, 6, cfg.Target)

	out, _, err = execute(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "rows = 10")

	_, _, err = execute(t, "config", "-f", "ini")
	assert.ErrorIs(t, err, config.ErrUnsupportedFormat)
}

func TestConfigFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.yaml")
	out, _, err := execute(t, "config", "--rows", "1", "--cols", "3", "--spacing", "1", "--weight", "1", "-f", "yaml")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte(out), 0o644))

	out, _, err = execute(t, "run", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "1 → 2 → 3")
}
