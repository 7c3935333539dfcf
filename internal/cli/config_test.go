package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/matzehuels/cargoauthors/pkg/authors"
	errs "github.com/matzehuels/cargoauthors/pkg/errors"
	"github.com/matzehuels/cargoauthors/pkg/render"
)

func newFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	registerFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return fs
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig(newFlagSet(t))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := Config{Format: "text", Path: ".", Addr: defaultAddr}
	if cfg != want {
		t.Errorf("LoadConfig = %+v, want %+v", cfg, want)
	}
}

func TestLoadConfig_Precedence(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, `
format: yaml
ignore_self: true
hide_emails: true
path: /from/file
cargo_home: /file/cargo
cache_ttl: 90s
`)

	t.Setenv("CARGO_AUTHORS_PATH", "/from/env")
	t.Setenv("CARGO_AUTHORS_BY_CRATE", "true")

	cfg, err := LoadConfig(newFlagSet(t, "--config", path, "-f", "dot", "--hide-emails=false"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	checks := []struct {
		name string
		got  any
		want any
	}{
		{"flag beats file", cfg.Format, "dot"},
		{"flag false beats file true", cfg.HideEmails, false},
		{"env beats file", cfg.Path, "/from/env"},
		{"env sets bool", cfg.ByCrate, true},
		{"file beats default", cfg.IgnoreSelf, true},
		{"file sets string", cfg.CargoHome, "/file/cargo"},
		{"file sets duration", cfg.CacheTTL, 90 * time.Second},
		{"default kept", cfg.HideAuthors, false},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s: got %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tests := []struct {
		name string
		args []string
		code errs.Code
	}{
		{"missing explicit config", []string{"--config", filepath.Join(t.TempDir(), "nope.yaml")}, errs.ErrCodeInvalidInput},
		{"malformed config", []string{"--config", writeConfig(t, "format: [unterminated")}, errs.ErrCodeInvalidInput},
		{"bad format", []string{"-f", "pdf"}, errs.ErrCodeInvalidFormat},
		{"interactive json", []string{"--interactive", "--json"}, errs.ErrCodeInvalidInput},
		{"negative cache ttl", []string{"--config", writeConfig(t, "cache_ttl: -1m\n")}, errs.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(newFlagSet(t, tt.args...))
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errs.GetCode(err); got != tt.code {
				t.Errorf("code = %v, want %v (err: %v)", got, tt.code, err)
			}
		})
	}
}

func TestConfig_Options(t *testing.T) {
	cfg := Config{HideAuthors: true, HideCrates: true, IgnoreSelf: true, ByCrate: true}
	want := authors.Options{HideAuthors: true, HideCrates: true, IgnoreSelf: true, ByCrate: true}
	if got := cfg.Options(); got != want {
		t.Errorf("Options = %+v, want %+v", got, want)
	}
}

func TestConfig_OutputFormat(t *testing.T) {
	tests := []struct {
		cfg  Config
		want render.Format
	}{
		{Config{}, render.FormatText},
		{Config{Format: "svg"}, render.FormatSVG},
		{Config{Format: "yaml", JSON: true}, render.FormatJSON},
	}
	for _, tt := range tests {
		got, err := tt.cfg.OutputFormat()
		if err != nil {
			t.Errorf("OutputFormat(%+v): %v", tt.cfg, err)
			continue
		}
		if got != tt.want {
			t.Errorf("OutputFormat(%+v) = %q, want %q", tt.cfg, got, tt.want)
		}
	}
}
