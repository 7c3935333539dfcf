package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/cargoauthors/pkg/render"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// EntryListModel - Interactive report viewer
// =============================================================================

// entry is one key of a report with its sorted values.
type entry struct {
	Key    string
	Values []string
}

// EntryListModel is the bubbletea model for browsing a report. The cursor
// selects a key; the selected key's values are listed in full below the list.
type EntryListModel struct {
	Title   string
	Entries []entry
	Width   int
	Cursor  int
	Height  int
	Offset  int
}

func newEntryListModel(r render.Report) EntryListModel {
	keys := r.Entries.Keys()
	entries := make([]entry, len(keys))
	for i, k := range keys {
		entries[i] = entry{Key: k, Values: r.Entries.Values(k)}
	}
	return EntryListModel{
		Title:   r.Banner(),
		Entries: entries,
		Width:   render.KeyWidth(r.Entries),
		Height:  15,
	}
}

func (m EntryListModel) Init() tea.Cmd {
	return nil
}

func (m EntryListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.Height)
		case "pgdown":
			m.move(m.Height)
		case "home", "g":
			m.move(-len(m.Entries))
		case "end", "G":
			m.move(len(m.Entries))
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
		m.move(0)
	}
	return m, nil
}

// move shifts the cursor by delta, clamped to the list, and scrolls the
// window so the cursor stays visible.
func (m *EntryListModel) move(delta int) {
	if len(m.Entries) == 0 {
		return
	}
	m.Cursor = min(max(m.Cursor+delta, 0), len(m.Entries)-1)
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m EntryListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  pgup/pgdn page  q quit"))
	b.WriteString("\n\n")

	if len(m.Entries) == 0 {
		b.WriteString(listDimStyle.Render("  (no entries)"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Entries))
	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		key := e.Key + strings.Repeat(" ", m.Width-lipgloss.Width(e.Key))
		count := fmt.Sprintf("%3d", len(e.Values))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(cursor+key) + "  " + StyleHighlight.Render(count))
		} else {
			b.WriteString(listNormalStyle.Render(cursor+key) + "  " + listDimStyle.Render(count))
		}
		b.WriteString("\n")
	}

	selected := m.Entries[m.Cursor]
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(strings.Repeat("─", 40)))
	b.WriteString("\n")
	b.WriteString(StyleValue.Render(strings.Join(selected.Values, ", ")))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))

	return b.String()
}
