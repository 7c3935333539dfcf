package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/matzehuels/cargoauthors/pkg/authors"
	errs "github.com/matzehuels/cargoauthors/pkg/errors"
	"github.com/matzehuels/cargoauthors/pkg/observability"
	"github.com/matzehuels/cargoauthors/pkg/render"
)

// report resolves the project, aggregates its authors and presents the
// result according to cfg.
func (c *CLI) report(ctx context.Context, cfg Config) error {
	logger := loggerFromContext(ctx)

	format, err := cfg.OutputFormat()
	if err != nil {
		return err
	}

	res, err := c.resolve(ctx, cfg)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	m := authors.Build(res, cfg.Options())
	observability.Run().OnBuildComplete(ctx, len(m), m.EdgeCount())
	prog.done(summary(m, cfg.ByCrate), "by_crate", cfg.ByCrate)
	if len(m) == 0 {
		printWarning("No authors found in %s", cfg.Path)
	}

	r := render.Report{Entries: m, ByCrate: cfg.ByCrate}
	if cfg.Interactive {
		return c.browse(ctx, r)
	}
	return c.write(r, format, cfg.Output)
}

// resolve runs the package source, showing a spinner on interactive
// terminals unless debug logging is enabled.
func (c *CLI) resolve(ctx context.Context, cfg Config) (*authors.Resolution, error) {
	logger := loggerFromContext(ctx)
	src := c.NewSource(cfg, logger)

	logger.Debugf("Resolving %s", cfg.Path)
	prog := newProgress(logger)

	var spinner *Spinner
	if c.Logger.GetLevel() > LogDebug && isTerminal(os.Stderr) {
		spinner = newSpinnerWithContext(ctx, "Resolving dependencies...")
		spinner.Start()
	}

	res, err := authors.Resolve(ctx, src, cfg.Path)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return nil, err
	}

	prog.done(fmt.Sprintf("Resolved %s", english.Plural(len(res.Packages), "package", "")), "root", res.Root)
	return res, nil
}

// write renders r to stdout or to the file at path.
func (c *CLI) write(r render.Report, format render.Format, path string) error {
	out, err := openOutput(c.Stdout, path)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidPath, err, "failed to create output file `%s`", path)
	}

	styled := path == "" && format == render.FormatText && isTerminal(c.Stdout)
	if err := render.Write(out, format, r, render.Options{Styled: styled}); err != nil {
		out.Close()
		discardOutput(path)
		return err
	}
	if err := out.Close(); err != nil {
		discardOutput(path)
		return errs.Wrap(errs.ErrCodeInternal, err, "failed to write `%s`", path)
	}

	if path != "" {
		size := ""
		if info, err := os.Stat(path); err == nil {
			size = humanize.Bytes(uint64(info.Size()))
		}
		printFile(path, size)
	}
	return nil
}

// browse opens the interactive viewer on r.
func (c *CLI) browse(ctx context.Context, r render.Report) error {
	if !isTerminal(c.Stdout) {
		return errs.New(errs.ErrCodeInvalidInput, "--interactive requires a terminal")
	}
	p := tea.NewProgram(newEntryListModel(r), tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errs.Wrap(errs.ErrCodeInternal, err, "interactive viewer failed")
	}
	return nil
}

// summary describes the size of m for the progress log.
func summary(m authors.Mapping, byCrate bool) string {
	noun := "author"
	if byCrate {
		noun = "crate"
	}
	edges := m.EdgeCount()
	return fmt.Sprintf("Grouped %s under %s %s",
		english.Plural(edges, "relation", ""),
		humanize.Comma(int64(len(m))),
		english.PluralWord(len(m), noun, ""))
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns stdout wrapped in nopCloser when path is empty, and
// otherwise creates the file at path, overwriting it if it exists.
func openOutput(stdout io.Writer, path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{stdout}, nil
	}
	return os.Create(path)
}

// discardOutput removes a partially written output file.
func discardOutput(path string) {
	if path != "" {
		os.Remove(path)
	}
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(f.Fd())
}
