package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/gridastar/astar"
)

func (c *CLI) stepCommand() *cobra.Command {
	var flags configFlags
	cmd := &cobra.Command{
		Use:   "step",
		Short: "Step through a search interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			// Step records would tear the full-screen view; only errors are logged.
			logger := loggerFromContext(cmd.Context()).With("cmd", "step")
			logger.SetLevel(LogError)
			e, err := astar.New(cfg, astar.WithLogger(logger))
			if err != nil {
				return err
			}

			p := tea.NewProgram(NewStepperModel(e, cfg),
				tea.WithContext(cmd.Context()),
				tea.WithAltScreen(),
			)
			final, err := p.Run()
			if err != nil {
				return err
			}
			if m, ok := final.(StepperModel); ok && m.Engine.State().Terminal() {
				printResult(cmd.OutOrStdout(), m.Engine)
			}
			return nil
		},
	}
	flags.bind(cmd)
	return cmd
}
