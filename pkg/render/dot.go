package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/goccy/go-graphviz"
)

// ToDOT converts a report to Graphviz DOT source. Every key points at each
// of its values. Authors are drawn as ellipses and crates as boxes, whichever
// side they are on.
func ToDOT(r Report) string {
	keyShape, valueShape := "ellipse", "box"
	keyPrefix, valuePrefix := "author:", "crate:"
	if r.ByCrate {
		keyShape, valueShape = valueShape, keyShape
		keyPrefix, valuePrefix = valuePrefix, keyPrefix
	}

	var buf bytes.Buffer
	buf.WriteString("digraph authors {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=1.2;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	keys := r.Entries.Keys()
	for _, k := range keys {
		fmt.Fprintf(&buf, "  %s [label=%s, shape=%s];\n", dotQuote(keyPrefix+k), dotQuote(k), keyShape)
	}

	seen := make(map[string]bool)
	for _, e := range r.Entries.Edges() {
		if seen[e.To] {
			continue
		}
		seen[e.To] = true
		fmt.Fprintf(&buf, "  %s [label=%s, shape=%s];\n", dotQuote(valuePrefix+e.To), dotQuote(e.To), valueShape)
	}

	buf.WriteString("\n")
	for _, e := range r.Entries.Edges() {
		fmt.Fprintf(&buf, "  %s -> %s;\n", dotQuote(keyPrefix+e.From), dotQuote(valuePrefix+e.To))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// dotQuote renders s as a double-quoted DOT string. Quotes and backslashes
// are escaped, newlines become \n, other control characters are dropped and
// invalid UTF-8 is replaced with U+FFFD.
func dotQuote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range strings.ToValidUTF8(s, "\uFFFD") {
		switch {
		case r == '"' || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// RenderSVG lays out DOT source with Graphviz and returns the SVG document.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the drawing scales from the
// origin with pixel dimensions equal to its view box.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
