package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/gridastar/astar"
	"github.com/katalvlaran/gridastar/render"
)

const (
	formatDOT  = "dot"
	formatSVG  = "svg"
	formatText = "text"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	output string // output file; "-" or empty writes to stdout
	format string // dot, svg or text; inferred from output when empty
	steps  int    // steps before rendering; negative runs to completion
	costs  bool   // show g and h in node labels
	ids    bool   // text format: print ids instead of glyphs
}

func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags configFlags
		opts  renderOpts
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the search state as DOT, SVG or a text grid",
		Long: `Render builds the lattice, advances the search (to completion by default,
or --steps steps) and writes the state with start, target, open, closed,
current, path and disabled nodes marked.`,
		Args: cobra.NoArgs,
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
			if opts.steps < 0 {
				_, err = e.RunContext(cmd.Context())
			} else {
				_, err = e.Advance(opts.steps)
			}
			if err != nil {
				logger.Warn("rendering halted search", "err", err)
			}

			format := opts.format
			if format == "" {
				format = inferFormat(opts.output)
			}
			data, err := renderAs(cmd, e, format, opts)
			if err != nil {
				return err
			}

			if opts.output == "" || opts.output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(opts.output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", opts.output, err)
			}
			latticeLogger(logger, e).Info("wrote", "file", opts.output, "format", format, "bytes", len(data))
			return nil
		},
	}
	flags.bind(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "dot, svg or text (default from --output extension, else text)")
	cmd.Flags().IntVar(&opts.steps, "steps", -1, "steps to take before rendering (-1: run to completion)")
	cmd.Flags().BoolVar(&opts.costs, "costs", false, "show g and h in DOT node labels")
	cmd.Flags().BoolVar(&opts.ids, "ids", false, "text format: print node ids")
	return cmd
}

func inferFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dot", ".gv":
		return formatDOT
	case ".svg":
		return formatSVG
	default:
		return formatText
	}
}

func renderAs(cmd *cobra.Command, e *astar.Engine, format string, opts renderOpts) ([]byte, error) {
	dotOpts := render.DefaultOptions()
	dotOpts.Costs = opts.costs

	switch format {
	case formatDOT:
		return []byte(render.ToDOT(e, dotOpts)), nil
	case formatSVG:
		return render.RenderSVG(cmd.Context(), render.ToDOT(e, dotOpts))
	case formatText:
		return []byte(render.Text(e, render.TextOptions{IDs: opts.ids, Legend: true})), nil
	default:
		return nil, fmt.Errorf("unknown format %q (want dot, svg or text)", format)
	}
}
