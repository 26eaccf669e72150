package cli

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/gridastar/config"
)

func (c *CLI) configCommand() *cobra.Command {
	var (
		flags  configFlags
		format string
	)
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Config resolves defaults, --config and flags exactly like the search
commands and prints the result. The output can be saved and passed back
with --config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			data, err := config.Encode(cfg, config.Format(format))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	flags.bind(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", string(config.FormatTOML), "toml, yaml or json")
	return cmd
}
