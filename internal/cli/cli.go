// Package cli implements the readmegen command-line interface.
//
// This package provides commands for fetching aggregated GitHub profiles,
// generating Markdown README documents from them, serving the HTTP API, and
// creating a starter configuration interactively. The CLI is built using
// cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - generate: Fetch a profile and write the composed README
//   - profile: Fetch a profile and print it as JSON
//   - serve: Run the HTTP API server
//   - init: Interactively write a readmegen.toml
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lmoreno/readmegen/pkg/buildinfo"
)

// appName is the application name used for display and config files.
const appName = "readmegen"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "readmegen turns a GitHub profile into a Markdown README",
		Long:         `readmegen fetches a user's public GitHub data (repos, languages, stats), aggregates it into a profile record, and renders a configurable Markdown README with optional badges and charts.`,
		SilenceUsage: true,
		Version:      buildinfo.Version,
	}
	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.profileCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.initCommand())

	return root
}
