package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cargoauthors/pkg/authors"
)

// runWithLogs executes the root command against src and returns the log
// stream instead of the report.
func runWithLogs(t *testing.T, src authors.Source, args ...string) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var logs bytes.Buffer
	c := New(io.Discard, &logs, LogInfo)
	c.NewSource = func(Config, *log.Logger) authors.Source { return src }

	root := c.RootCommand()
	root.SetArgs(args)
	root.SetErr(io.Discard)
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute: %v", err)
	}
	return logs.String()
}

func TestReport_ProgressLines(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "by author",
			want: []string{
				"Resolved 4 packages", "root=app",
				"Grouped 4 relations under 3 authors", "by_crate=false",
			},
		},
		{
			name: "by crate without self",
			args: []string{"--by-crate", "--ignore-self"},
			want: []string{
				"Resolved 4 packages",
				"Grouped 3 relations under 2 crates", "by_crate=true",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := runWithLogs(t, sampleSource(), tt.args...)
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("logs missing %q:\n%s", w, out)
				}
			}
			if n := strings.Count(out, "elapsed="); n != 2 {
				t.Errorf("got %d timed lines, want 2:\n%s", n, out)
			}
			if strings.Contains(out, "Resolving") {
				t.Errorf("debug line logged at info level:\n%s", out)
			}
		})
	}
}

func TestReport_VerboseLogsResolution(t *testing.T) {
	out := runWithLogs(t, sampleSource(), "-v", "--path", "crates/app")
	if !strings.Contains(out, "Resolving crates/app") {
		t.Errorf("verbose logs missing resolve line:\n%s", out)
	}
	if !strings.Contains(out, "DEBU") {
		t.Errorf("verbose logs have no debug level entries:\n%s", out)
	}
}

func TestProgress_FieldOrder(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, LogInfo)).done("Resolved 1 package", "root", "solo")

	out := buf.String()
	msg := strings.Index(out, "Resolved 1 package")
	elapsed := strings.Index(out, "elapsed=")
	root := strings.Index(out, "root=solo")
	if msg < 0 || elapsed < msg || root < elapsed {
		t.Errorf("want message, elapsed, then keyvals; got %q", out)
	}
}

func TestProgress_SilentBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.WarnLevel)).done("Resolved 1 package")
	if buf.Len() != 0 {
		t.Errorf("progress logged at warn level: %q", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("want log.Default() without an attached logger")
	}

	l := newLogger(io.Discard, LogDebug)
	if loggerFromContext(withLogger(context.Background(), l)) != l {
		t.Error("want the attached logger")
	}
}
