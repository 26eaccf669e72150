package cli

import (
	"errors"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/gridastar/astar"
	"github.com/katalvlaran/gridastar/config"
	"github.com/katalvlaran/gridastar/dijkstra"
)

var errMismatch = errors.New("A* cost differs from exact shortest path")

// trialResult is the outcome of one verification trial.
type trialResult struct {
	Seed  int64
	AStar float64 // +Inf when not found
	Exact float64 // +Inf when unreachable
	Err   error
}

func (r trialResult) ok() bool { return r.Err == nil && r.AStar == r.Exact }

// verifyTrial searches cfg with A* and compares the cost with Dijkstra on the
// same lattice.
func verifyTrial(cfg config.Config) trialResult {
	res := trialResult{Seed: cfg.Seed, AStar: math.Inf(1)}
	e, err := astar.New(cfg)
	if err != nil {
		res.Err = err
		return res
	}
	found, err := e.RunToCompletion()
	if err != nil {
		res.Err = err
		return res
	}
	if found {
		res.AStar = e.Target().G
	}

	dist, _, err := dijkstra.ShortestPaths(e.Graph(),
		dijkstra.Source(cfg.Start), dijkstra.WithDisabled(cfg.Disabled...))
	if err != nil {
		res.Err = err
		return res
	}
	res.Exact = dist[cfg.Target]
	return res
}

func (c *CLI) verifyCommand() *cobra.Command {
	var (
		flags  configFlags
		trials int
	)
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check A* costs against an exhaustive Dijkstra search",
		Long: `Verify runs the configured search over --trials consecutive seeds and
compares the A* cost with the exact shortest-path cost. With random weights
each trial uses a different lattice. Mismatches mean the heuristic
overestimates for these weights and spacing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			logger := loggerFromContext(cmd.Context())
			out := cmd.OutOrStdout()
			if cfg.Seed == 0 {
				cfg.Seed = 1
			}

			prog := newProgress(logger)
			failed := 0
			for i := 0; i < trials; i++ {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				res := verifyTrial(cfg)
				if !res.ok() {
					failed++
					msg := fmt.Sprintf("seed %d: astar=%g exact=%g", res.Seed, res.AStar, res.Exact)
					if res.Err != nil {
						msg = fmt.Sprintf("seed %d: %v", res.Seed, res.Err)
					}
					fmt.Fprintln(out, styleError.Render(iconError+" "+msg))
				}
				logger.Debug("trial", "seed", res.Seed, "astar", res.AStar, "exact", res.Exact, "err", res.Err)
				cfg.Seed++
			}
			prog.done("verification finished", "trials", trials, "failed", failed)

			if failed > 0 {
				return fmt.Errorf("%w: %d of %d trials", errMismatch, failed, trials)
			}
			fmt.Fprintln(out, styleSuccess.Render(fmt.Sprintf("%s %d trials match", iconSuccess, trials)))
			return nil
		},
	}
	flags.bind(cmd)
	cmd.Flags().IntVarP(&trials, "trials", "n", 20, "number of seeds to try")
	return cmd
}
