package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/gridastar/astar"
	"github.com/katalvlaran/gridastar/render"
)

func (c *CLI) runCommand() *cobra.Command {
	var (
		flags    configFlags
		showGrid bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a search to completion and print the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			logger := loggerFromContext(cmd.Context())
			e, err := astar.New(cfg, astar.WithLogger(logger))
			if err != nil {
				return err
			}

			prog := newProgress(latticeLogger(logger, e))
			_, err = e.RunContext(cmd.Context())
			if e.State().Terminal() {
				prog.searched(e)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printResult(out, e)
			if showGrid {
				fmt.Fprintln(out)
				fmt.Fprint(out, render.Text(e, render.TextOptions{Legend: true}))
			}
			return nil
		},
	}
	flags.bind(cmd)
	cmd.Flags().BoolVarP(&showGrid, "grid", "g", false, "draw the lattice after the search")
	return cmd
}

// printResult writes the outcome of a terminal engine.
func printResult(w io.Writer, e *astar.Engine) {
	rows, cols := e.Graph().Dims()
	fmt.Fprintln(w, styleTitle.Render(fmt.Sprintf("A* %d×%d  %d → %d", rows, cols, e.Start().ID, e.Target().ID)))

	if e.State() != astar.Found {
		fmt.Fprintln(w, styleError.Render(iconError+" no path"), styleLabel.Render(fmt.Sprintf("(%s after %d steps)", e.State(), e.Steps())))
		return
	}
	fmt.Fprintln(w, styleSuccess.Render(iconSuccess+" path found"))
	fmt.Fprintln(w, kv("cost", e.Target().G))
	fmt.Fprintln(w, kv("steps", e.Steps()))
	fmt.Fprintln(w, kv("path", formatPath(e.PathIDs())))
}

func formatPath(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, " → ")
}
