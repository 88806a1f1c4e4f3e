package tui

import "github.com/charmbracelet/lipgloss"

var searchBorderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("170")).
	Padding(0, 1)

var searchIconStyle = lipgloss.NewStyle().
	Background(lipgloss.Color("170")).
	Foreground(lipgloss.Color("255")).
	Bold(true).
	Padding(0, 1)

var selectedRowStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("62")).
	PaddingLeft(2)

var statusStyle = lipgloss.NewStyle().
	Background(lipgloss.Color("62")).
	Foreground(lipgloss.Color("230")).
	Padding(0, 1)

var (
	sectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true).PaddingLeft(2)
	rowStyle     = lipgloss.NewStyle().PaddingLeft(2)
	matchStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true)
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).PaddingLeft(2)
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).PaddingLeft(2)
)
