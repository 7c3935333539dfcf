package render

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/cargoauthors/pkg/authors"
)

var (
	styleBanner = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	styleKey    = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
	styleSep    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleValues = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
)

// WriteText writes the banner, a blank line and one line per key. Keys are
// left-aligned to the widest key's display width.
func WriteText(w io.Writer, r Report, opts Options) error {
	banner := r.Banner()
	if opts.Styled {
		banner = styleBanner.Render(banner)
	}
	if err := writef(w, "%s\n\n", banner); err != nil {
		return err
	}

	for _, line := range TextLines(r.Entries, opts.Styled) {
		if err := writef(w, "%s\n", line); err != nil {
			return err
		}
	}
	return nil
}

// TextLines formats each key of m as "key: v1, v2", padded to KeyWidth(m).
func TextLines(m authors.Mapping, styled bool) []string {
	keys := m.Keys()
	width := KeyWidth(m)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		padded := k + strings.Repeat(" ", width-lipgloss.Width(k))
		values := strings.Join(m.Values(k), ", ")
		if styled {
			lines = append(lines, styleKey.Render(padded)+styleSep.Render(": ")+styleValues.Render(values))
			continue
		}
		lines = append(lines, padded+": "+values)
	}
	return lines
}

// KeyWidth returns the display width of the widest key, or 0 when m is empty.
func KeyWidth(m authors.Mapping) int {
	width := 0
	for k := range m {
		width = max(width, lipgloss.Width(k))
	}
	return width
}
