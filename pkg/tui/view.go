package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/pluqqy/cmdk/pkg/api"
	"github.com/pluqqy/cmdk/pkg/search"
)

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.searchBar.View())
	b.WriteString("\n")

	width := m.width
	if width <= 0 {
		width = 80
	}

	// rows that fit below the search bar, hints and status line
	maxRows := len(m.rows)
	if m.height > 0 {
		maxRows = max(m.height-8, 3)
	}
	start := 0
	if m.cursor >= maxRows {
		start = m.cursor - maxRows + 1
	}

	section := ""
	for i := start; i < len(m.rows) && i < start+maxRows; i++ {
		r := m.rows[i]
		if r.section != section {
			section = r.section
			b.WriteString(sectionStyle.Render(section))
			b.WriteString("\n")
		}
		b.WriteString(m.renderRow(r, i == m.cursor, width))
		b.WriteString("\n")
	}

	for _, e := range []struct {
		action string
		err    error
	}{
		{"search tasks", m.results.Tasks.Err},
		{"load workspaces", m.results.Workspaces.Err},
	} {
		if e.err != nil {
			b.WriteString(errorStyle.Render(api.UserMessage(e.action, e.err)))
			b.WriteString("\n")
		}
	}

	switch {
	case m.loading:
		b.WriteString(hintStyle.Render("Searching..."))
		b.WriteString("\n")
	case len(m.rows) == 0 && m.query != "":
		b.WriteString(hintStyle.Render("No results for \"" + m.query + "\""))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("↑/↓ move • enter open • ctrl+y copy link • esc close"))

	content := b.String()
	if m.statusMsg != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, content, statusStyle.Render(m.statusMsg))
	}
	return content
}

func (m *Model) renderRow(r row, selected bool, width int) string {
	title := r.title
	if r.result != nil && m.query != "" {
		title = search.Highlight(r.title, m.query, func(s string) string { return matchStyle.Render(s) })
	}

	line := title
	if r.result != nil {
		item := r.result.Item
		switch {
		case m.showPaths && len(item.Path) > 1:
			line += "  " + pathStyle.Render(strings.Join(item.Path[:len(item.Path)-1], " › "))
		case item.BoardName != "":
			line += "  " + pathStyle.Render(item.BoardName)
		}
		if m.showIcons && item.Icon != "" {
			line = hintStyle.Render("["+item.Icon+"]") + " " + line
		}
	} else {
		line = "⌕ " + line
	}

	line = truncate.StringWithTail(line, uint(max(width-4, 10)), "…")
	if selected {
		return selectedRowStyle.Render(line)
	}
	return rowStyle.Render(line)
}
