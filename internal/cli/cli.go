// Package cli implements the wikiflow command-line interface.
//
// This package provides commands for analyzing first-link graphs, querying
// heat and click distances, exporting Graphviz neighborhoods, and serving the
// analysis over HTTP. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - analyze: Run the full analysis over an edge file or shard directory
//   - distance: Show the first-link click path from a title to the target
//   - top: Rank titles by heat
//   - graph: Export a title's neighborhood as DOT or SVG
//   - serve: Serve the analysis as an HTTP API
//   - cache: Manage the local analysis cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/wikiflowhq/wikiflow/pkg/buildinfo"
	"github.com/wikiflowhq/wikiflow/pkg/cache"
	"github.com/wikiflowhq/wikiflow/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "wikiflow"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config
}

// New creates a new CLI instance with a default logger and the on-disk
// config (missing config files fall back to defaults).
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
	cfg, err := LoadConfig("")
	if err != nil {
		c.Logger.Warn("ignoring config file", "err", err)
		cfg = DefaultConfig()
	}
	c.Config = cfg
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Wikiflow analyzes where first links lead",
		Long:         `Wikiflow analyzes Wikipedia-style first-link graphs: which articles everything flows through, which cycles trap the walk, and how many clicks it takes to reach Philosophy.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.distanceCommand())
	root.AddCommand(c.topCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.runsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/wikiflow/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// edgesPath resolves the edge source for a command: an explicit flag wins,
// then the config file.
func (c *CLI) edgesPath(flag string) string {
	if flag != "" {
		return flag
	}
	return c.Config.Defaults.Edges
}

// target resolves the convergence target the same way.
func (c *CLI) target(flag string) string {
	if flag != "" {
		return flag
	}
	if c.Config.Defaults.Target != "" {
		return c.Config.Defaults.Target
	}
	return pipeline.DefaultTarget
}
