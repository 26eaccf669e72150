// Package cli implements the gridastar command-line interface.
//
// # Commands
//
//   - run: search a lattice to completion and print the outcome
//   - step: step through a search interactively in the terminal
//   - render: write the search state as DOT, SVG or a text grid
//   - verify: compare A* costs against an exhaustive Dijkstra search
//   - serve: expose search sessions over HTTP
//   - config: print the effective configuration
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which includes
// one record per search step. Loggers are passed through context.Context.
package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// appName is the application name used for display and key prefixes.
const appName = "gridastar"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogError = log.ErrorLevel
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version, commit, date = v, c, d
}

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	out    io.Writer
}

// New creates a CLI that logs to logw and prints results to out.
func New(out, logw io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(logw, level), out: out}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Gridastar runs and visualises A* on a weighted grid",
		Long:         `Gridastar builds a rectangular 4-connected lattice with fixed or random edge weights and runs A* over it, either to completion or one step at a time.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("%s %s\ncommit: %s\nbuilt: %s\n", appName, version, commit, date))
	root.SetOut(c.out)

	root.AddCommand(c.runCommand())
	root.AddCommand(c.stepCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.verifyCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())

	return root
}
