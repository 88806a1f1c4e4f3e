package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SearchBar is the palette's query input
type SearchBar struct {
	input textinput.Model
	width int
}

// NewSearchBar creates a focused search bar
func NewSearchBar() *SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Search pages, tasks and workspaces..."
	ti.CharLimit = 200
	ti.Prompt = ""
	ti.Width = 50 // adjusted on resize
	ti.Focus()

	return &SearchBar{input: ti}
}

// SetWidth sets the outer width of the search bar
func (s *SearchBar) SetWidth(width int) {
	s.width = width
	// borders, padding and the icon
	s.input.Width = max(width-12, 10)
}

// Value returns the current search text
func (s *SearchBar) Value() string {
	return s.input.Value()
}

// SetValue replaces the search text and moves the cursor to the end
func (s *SearchBar) SetValue(value string) {
	s.input.SetValue(value)
	s.input.CursorEnd()
}

// Update handles tea messages for the search bar
func (s *SearchBar) Update(msg tea.Msg) (*SearchBar, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// View renders the search bar
func (s *SearchBar) View() string {
	style := searchBorderStyle
	if s.width > 0 {
		style = style.Width(s.width - 4)
	}

	icon := searchIconStyle.Render("⌕")
	content := lipgloss.JoinHorizontal(lipgloss.Center, icon, " ", s.input.View())

	return lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1).Render(style.Render(content))
}
