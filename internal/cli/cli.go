// Package cli implements the staggergrid command-line interface.
//
// The CLI packs item lists read from projects, CSV, XLSX or DXF files and
// writes the arranged layout as JSON, PDF, XLSX or QR tag sheets. It is built
// on cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - pack: arrange items and write the layout
//   - compare: arrange items under what-if settings and print a table
//   - order: search for an item order that packs shorter
//   - preview: draw the layout in the terminal
//   - serve: run the HTTP packing service
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// traces every packing step. Loggers are passed through context.Context.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const appName = "staggergrid"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Out    io.Writer // Command results; logs go to the logger
}

// New creates a CLI that prints results to out and logs to logw.
func New(out, logw io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(logw, level), Out: out}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   appName,
		Short: "StaggerGrid packs tiles into a staggered grid",
		Long: `StaggerGrid packs an ordered list of rectangular tiles into a container that
is bounded on one axis and grows on the other, snapping placements to a grid
and aligning each tile inside its cell.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(appName + " {{.Version}}\ncommit: " + commit + "\nbuilt: " + date + "\n")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.packCommand())
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.orderCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())

	return root
}
