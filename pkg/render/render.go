package render

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/matzehuels/cargoauthors/pkg/authors"
	errs "github.com/matzehuels/cargoauthors/pkg/errors"
)

// Format names an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatDOT  Format = "dot"
	FormatSVG  Format = "svg"
)

// Formats lists every supported format in display order.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatDOT, FormatSVG}

// ParseFormat returns the Format named by s (case-insensitive).
// An empty string selects [FormatText].
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatText, nil
	}
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Formats, f) {
		return "", errs.New(errs.ErrCodeInvalidFormat,
			"unknown format %q (valid: %s)", s, formatList())
	}
	return f, nil
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// ContentType returns the MIME type used when serving f over HTTP.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	case FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	case FormatSVG:
		return "image/svg+xml"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Report is a mapping ready for presentation. ByCrate records whether the
// keys are crates (true) or authors (false).
type Report struct {
	Entries authors.Mapping
	ByCrate bool
}

// Options configures presentation.
type Options struct {
	// Styled colors text output. Other formats ignore it.
	Styled bool
}

// Write renders r to w in format f.
func Write(w io.Writer, f Format, r Report, opts Options) error {
	switch f {
	case FormatText, "":
		return WriteText(w, r, opts)
	case FormatJSON:
		return WriteJSON(w, r)
	case FormatYAML:
		return WriteYAML(w, r)
	case FormatDOT:
		_, err := io.WriteString(w, ToDOT(r))
		return err
	case FormatSVG:
		svg, err := RenderSVG(ToDOT(r))
		if err != nil {
			return err
		}
		_, err = w.Write(svg)
		return err
	default:
		return errs.New(errs.ErrCodeInvalidFormat, "unknown format %q", f)
	}
}

// Banner returns the heading printed above text output.
func (r Report) Banner() string {
	if r.ByCrate {
		return "Crates and their respective authors for this crate:"
	}
	return "Authors and their respective crates for this crate:"
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}
