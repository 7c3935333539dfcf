// Package cli implements the cargo-authors command-line interface.
package cli

import (
	"io"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cargoauthors/pkg/authors"
	"github.com/matzehuels/cargoauthors/pkg/buildinfo"
	"github.com/matzehuels/cargoauthors/pkg/cache"
	"github.com/matzehuels/cargoauthors/pkg/cargo"
	errs "github.com/matzehuels/cargoauthors/pkg/errors"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for the binary and config file.
	appName = "cargo-authors"

	// cargoSubcommand is the argument Cargo inserts when run as `cargo authors`.
	cargoSubcommand = "authors"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// SourceFactory builds the package source for one invocation.
type SourceFactory func(cfg Config, logger *log.Logger) authors.Source

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Stdout io.Writer

	// NewSource builds the package source. Defaults to the local Cargo resolver.
	NewSource SourceFactory

	verbose bool
}

// New creates a new CLI instance writing reports to stdout and logs to stderr.
func New(stdout, stderr io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:    newLogger(stderr, level),
		Stdout:    stdout,
		NewSource: cargoSource,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	c.Logger.SetReportCaller(level <= log.DebugLevel)
}

// RootCommand creates the root cobra command with all subcommands registered.
// The root command itself prints the authors report.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "List the authors of all crates a Cargo project depends on",
		Long: `cargo-authors reads a Cargo project's lock file and the manifests of every
package it resolves to, and lists each author with the crates they wrote.

Run it as "cargo authors" or "cargo-authors" inside a Cargo project, or point
it elsewhere with --path. Dependency sources must already be fetched.`,
		Version:       buildinfo.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := LogInfo
			if c.verbose {
				level = LogDebug
			}
			c.SetLogLevel(level)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			return c.report(cmd.Context(), cfg)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Stdout)

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	registerFlags(root.PersistentFlags())

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// cargoSource is the default [SourceFactory]: the local Cargo resolver with
// its progress routed to debug logs.
func cargoSource(cfg Config, logger *log.Logger) authors.Source {
	return cargo.NewResolver(cargo.Options{
		CargoHome: cfg.CargoHome,
		Logger:    func(msg string, args ...any) { logger.Debugf(msg, args...) },
	})
}

// servedSource builds the package source for the serve command. With a
// positive cfg.CacheTTL, resolutions are shared across requests for that
// long.
func (c *CLI) servedSource(cfg Config, logger *log.Logger) authors.Source {
	src := c.NewSource(cfg, logger)
	if cfg.CacheTTL <= 0 {
		return src
	}
	logger.Debugf("Caching resolutions for %s", cfg.CacheTTL)
	return cache.NewSource(src, cache.NewMemoryCache(), cfg.CacheTTL)
}

// =============================================================================
// Arguments
// =============================================================================

// NormalizeArgs validates raw process arguments (without the program name)
// and drops the subcommand name Cargo passes when invoked as `cargo authors`.
func NormalizeArgs(args []string) ([]string, error) {
	for _, a := range args {
		if !utf8.ValidString(a) {
			return nil, errs.New(errs.ErrCodeArgumentEncoding, "invalid argument detected: %q", a)
		}
	}
	if len(args) > 0 && args[0] == cargoSubcommand {
		return args[1:], nil
	}
	return args, nil
}
