package cli

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/matzehuels/cargoauthors/pkg/authors"
	errs "github.com/matzehuels/cargoauthors/pkg/errors"
	"github.com/matzehuels/cargoauthors/pkg/render"
)

// configName is the config file name without extension.
const configName = ".cargo-authors"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for cargo-authors settings.
const envPrefix = "CARGO_AUTHORS"

// defaultAddr is the listen address of the serve command.
const defaultAddr = ":7878"

// Config is the resolved configuration of one invocation. It is built once
// by [LoadConfig] and passed by value.
type Config struct {
	JSON        bool   `mapstructure:"json"`
	Format      string `mapstructure:"format"`
	HideAuthors bool   `mapstructure:"hide_authors"`
	HideEmails  bool   `mapstructure:"hide_emails"`
	HideCrates  bool   `mapstructure:"hide_crates"`
	IgnoreSelf  bool   `mapstructure:"ignore_self"`
	ByCrate     bool   `mapstructure:"by_crate"`
	Path        string `mapstructure:"path"`
	Output      string `mapstructure:"output"`
	CargoHome   string `mapstructure:"cargo_home"`
	Interactive bool   `mapstructure:"interactive"`
	Addr        string `mapstructure:"addr"`

	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// Options returns the aggregation options selected by c.
func (c Config) Options() authors.Options {
	return authors.Options{
		HideAuthors: c.HideAuthors,
		HideEmails:  c.HideEmails,
		HideCrates:  c.HideCrates,
		IgnoreSelf:  c.IgnoreSelf,
		ByCrate:     c.ByCrate,
	}
}

// OutputFormat returns the report format. --json overrides --format.
func (c Config) OutputFormat() (render.Format, error) {
	if c.JSON {
		return render.FormatJSON, nil
	}
	return render.ParseFormat(c.Format)
}

// Validate checks option combinations that cannot be honored together.
func (c Config) Validate() error {
	if _, err := c.OutputFormat(); err != nil {
		return err
	}
	if c.CacheTTL < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "--cache-ttl must not be negative")
	}
	if c.Interactive && c.Output != "" {
		return errs.New(errs.ErrCodeInvalidInput, "--interactive cannot be combined with --output")
	}
	if c.Interactive && (c.JSON || (c.Format != "" && c.Format != string(render.FormatText))) {
		return errs.New(errs.ErrCodeInvalidInput, "--interactive only supports text output")
	}
	return nil
}

// flagKeys maps config keys to the flags that override them.
var flagKeys = map[string]string{
	"json":         "json",
	"format":       "format",
	"hide_authors": "hide-authors",
	"hide_emails":  "hide-emails",
	"hide_crates":  "hide-crates",
	"ignore_self":  "ignore-self",
	"by_crate":     "by-crate",
	"path":         "path",
	"output":       "output",
	"cargo_home":   "cargo-home",
	"interactive":  "interactive",
	"addr":         "addr",
	"cache_ttl":    "cache-ttl",
}

// registerFlags defines the option flags shared by every command.
func registerFlags(fs *pflag.FlagSet) {
	fs.BoolP("json", "j", false, "output the result as JSON (same as --format json)")
	fs.StringP("format", "f", string(render.FormatText), "output format: text, json, yaml, dot, svg")
	fs.BoolP("hide-authors", "a", false, "replace all authors with their respective hashes in the output")
	fs.BoolP("hide-emails", "e", false, "replace all emails with their respective hashes in the output")
	fs.BoolP("hide-crates", "c", false, "replace all crates with their respective hashes in the output")
	fs.BoolP("ignore-self", "i", false, "ignore the authors of the crate being inspected")
	fs.Bool("by-crate", false, "group by crate instead of by author")
	fs.StringP("path", "p", ".", "path to the crate to inspect")
	fs.StringP("output", "o", "", "write the report to a file instead of stdout")
	fs.String("cargo-home", "", "cargo home holding fetched sources (default: $CARGO_HOME or ~/.cargo)")
	fs.Bool("interactive", false, "browse the report in an interactive viewer")
	fs.String("config", "", "config file (default: ./"+configName+".yaml or ~/"+configName+".yaml)")
}

// LoadConfig resolves the configuration from flags, environment variables
// (CARGO_AUTHORS_*), the config file and defaults, in that order of
// precedence. A missing config file is not an error.
func LoadConfig(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	applyDefaults(v)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for key, name := range flagKeys {
		if f := fs.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, errs.Wrap(errs.ErrCodeInternal, err, "failed to bind flag --%s", name)
			}
		}
	}

	configPath, _ := fs.GetString("config")
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "failed to read config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "failed to decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("json", false)
	v.SetDefault("format", string(render.FormatText))
	v.SetDefault("hide_authors", false)
	v.SetDefault("hide_emails", false)
	v.SetDefault("hide_crates", false)
	v.SetDefault("ignore_self", false)
	v.SetDefault("by_crate", false)
	v.SetDefault("path", ".")
	v.SetDefault("output", "")
	v.SetDefault("cargo_home", "")
	v.SetDefault("interactive", false)
	v.SetDefault("addr", defaultAddr)
	v.SetDefault("cache_ttl", time.Duration(0))
}
