// Package cli implements the mcis command-line interface: a thin cobra
// front end over pkg/dispatch that loads graphs from JSON files, runs an
// installed engine, and prints or exports the result.
package cli

import (
	"io"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sebaraj/mcis-engine/pkg/buildinfo"
	"github.com/sebaraj/mcis-engine/pkg/engine"
)

// Log levels exported for use in main.go.
const (
	LogDebug = charmlog.DebugLevel
	LogInfo  = charmlog.InfoLevel
)

// CLI holds state shared by every subcommand.
type CLI struct {
	Logger *charmlog.Logger
}

// New creates a CLI with a logger writing to w at the given level.
func New(w io.Writer, level charmlog.Level) *CLI {
	return &CLI{
		Logger: charmlog.NewWithOptions(w, charmlog.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the CLI logger's level.
func (c *CLI) SetLogLevel(level charmlog.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand builds the root cobra command with every subcommand
// registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "mcis",
		Short:        "mcis computes the maximum common induced subgraph across computation DAGs",
		Long:         `mcis loads graphs from JSON files and runs the Bron-Kerbosch or KPT engine to find their maximum common induced subgraph.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}
	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.runCommand())
	root.AddCommand(c.exportCommand())
	return root
}

func parseAlgorithm(name string) (engine.Algorithm, bool) {
	switch name {
	case "bron-kerbosch", "bron-kerbosch-serial", "bk":
		return engine.BronKerboschSerial, true
	case "kpt":
		return engine.KPT, true
	default:
		return 0, false
	}
}
