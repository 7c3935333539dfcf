// Package cli implements the cargo-authors command-line interface.
//
// The root command resolves a Cargo project, aggregates the authors of every
// package in its lock file and prints the result. The CLI is built using
// cobra, reads its options through viper and logs via charmbracelet/log.
//
// # Commands
//
//   - cargo-authors: print the authors report (text, json, yaml, dot or svg)
//   - serve: expose the report over HTTP
//   - completion: generate shell completion scripts
//
// # Configuration
//
// Options come from flags, CARGO_AUTHORS_* environment variables and a
// .cargo-authors.yaml file, in that order of precedence. See [LoadConfig].
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	c := cli.New(os.Stdout, os.Stderr, cli.LogInfo)
//	root := c.RootCommand()
//	if err := root.ExecuteContext(ctx); err != nil {
//	    os.Exit(1)
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// logTimeFormat renders timestamps as e.g. "14:32:01.45".
const logTimeFormat = "15:04:05.00"

// newLogger returns a logger writing to w at level. Debug output also
// reports the calling file, which is only useful when chasing a resolver
// problem with -v.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		ReportCaller:    level <= log.DebugLevel,
		TimeFormat:      logTimeFormat,
		Level:           level,
	})
}

// progress times one step of a run.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at info level with the elapsed time, rounded to the
// millisecond, followed by keyvals:
//
//	14:32:01.45 INFO Resolved 42 packages elapsed=1.234s path=.
func (p *progress) done(msg string, keyvals ...any) {
	kv := make([]any, 0, len(keyvals)+2)
	kv = append(kv, "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, append(kv, keyvals...)...)
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by the root command, or
// log.Default() outside a command run.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
