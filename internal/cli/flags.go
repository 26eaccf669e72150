package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/gridastar/config"
	"github.com/katalvlaran/gridastar/geometry"
)

var errBadList = errors.New("invalid node list")

// configFlags holds the search flags shared by run, step, render and verify.
// Flags override values from --config, which override the defaults.
type configFlags struct {
	file      string
	rows      int
	cols      int
	spacing   float64
	heuristic string
	hScale    float64
	weight    float64
	weights   string // "min,max"
	start     int
	target    int
	disable   string // "3,5-8"
	seed      int64
}

func (f *configFlags) bind(cmd *cobra.Command) {
	d := config.Default()
	fs := cmd.Flags()
	fs.StringVarP(&f.file, "config", "c", "", "config file (.toml, .yaml or .json)")
	fs.IntVar(&f.rows, "rows", d.Rows, "lattice rows")
	fs.IntVar(&f.cols, "cols", d.Cols, "lattice columns")
	fs.Float64Var(&f.spacing, "spacing", d.Spacing, "distance between adjacent nodes")
	fs.StringVar(&f.heuristic, "heuristic", string(d.Heuristic), "distance function: euclidean, manhattan, chebyshev or minkowski:<p>")
	fs.Float64Var(&f.hScale, "h-scale", d.HScale, "heuristic scale factor")
	fs.Float64Var(&f.weight, "weight", d.Weights.Fixed, "fixed edge weight")
	fs.StringVar(&f.weights, "weights", "", `random integer edge weights "min,max"`)
	fs.IntVar(&f.start, "start", d.Start, "start node id")
	fs.IntVar(&f.target, "target", 0, "target node id (default: last node)")
	fs.StringVar(&f.disable, "disable", "", `disabled node ids, e.g. "3,5-8"`)
	fs.Int64Var(&f.seed, "seed", 0, "seed for random weights (0: time based)")
}

// resolve builds the validated configuration for cmd.
func (f *configFlags) resolve(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if f.file != "" {
		var err error
		if cfg, err = config.Load(f.file); err != nil {
			return config.Config{}, err
		}
	}

	changed := cmd.Flags().Changed
	dimsChanged := false
	if changed("rows") {
		cfg.Rows, dimsChanged = f.rows, true
	}
	if changed("cols") {
		cfg.Cols, dimsChanged = f.cols, true
	}
	if changed("spacing") {
		cfg.Spacing = f.spacing
	}
	if changed("heuristic") {
		cfg.Heuristic = geometry.Kind(f.heuristic)
	}
	if changed("h-scale") {
		cfg.HScale = f.hScale
	}
	if changed("weight") {
		cfg.Weights = config.Weights{Fixed: f.weight}
	}
	if changed("weights") {
		lo, hi, err := parseRange(f.weights)
		if err != nil {
			return config.Config{}, fmt.Errorf("--weights: %w", err)
		}
		cfg.Weights = config.Weights{Min: lo, Max: hi}
	}
	if changed("start") {
		cfg.Start = f.start
	}
	switch {
	case changed("target"):
		cfg.Target = f.target
	case dimsChanged:
		cfg.Target = cfg.N()
	}
	if changed("disable") {
		ids, err := parseNodeList(f.disable)
		if err != nil {
			return config.Config{}, fmt.Errorf("--disable: %w", err)
		}
		cfg.Disabled = ids
	}
	if changed("seed") {
		cfg.Seed = f.seed
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// parseRange parses "min,max" or "min-max".
func parseRange(s string) (int, int, error) {
	sep := ","
	if !strings.Contains(s, sep) {
		sep = "-"
	}
	lo, hi, ok := strings.Cut(s, sep)
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q, want min,max", errBadList, s)
	}
	a, err1 := strconv.Atoi(strings.TrimSpace(lo))
	b, err2 := strconv.Atoi(strings.TrimSpace(hi))
	if err1 != nil || err2 != nil {
		return 0, 0, fmt.Errorf("%w: %q, want min,max", errBadList, s)
	}
	return a, b, nil
}

// parseNodeList parses comma separated ids and inclusive ranges ("3,5-8").
// Whitespace is ignored and duplicates are dropped, first occurrence kept.
func parseNodeList(s string) ([]int, error) {
	var out []int
	seen := map[int]bool{}
	add := func(id int) {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' }) {
		lo, hi, isRange := strings.Cut(part, "-")
		a, err := strconv.Atoi(lo)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", errBadList, part)
		}
		if !isRange {
			add(a)
			continue
		}
		b, err := strconv.Atoi(hi)
		if err != nil || b < a {
			return nil, fmt.Errorf("%w: %q", errBadList, part)
		}
		for id := a; id <= b; id++ {
			add(id)
		}
	}
	return out, nil
}
