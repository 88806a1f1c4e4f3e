// Package tui is the interactive command palette.
package tui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pluqqy/cmdk/pkg/palette"
	"github.com/pluqqy/cmdk/pkg/recent"
	"github.com/pluqqy/cmdk/pkg/search"
)

// DefaultDebounce is how long typing must pause before a query runs.
const DefaultDebounce = 300 * time.Millisecond

const statusDuration = 2 * time.Second

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// Config configures a Model.
type Config struct {
	Palette     *palette.Palette
	Debounce    time.Duration
	RecentLimit int
	ShowPaths   bool
	ShowIcons   bool
	// Context bounds every query; defaults to context.Background.
	Context context.Context
}

// row is one selectable line. Exactly one of result and search is set.
type row struct {
	section string
	result  *search.Result[palette.Candidate]
	search  string
	title   string
}

// Model is the bubbletea model for the palette.
type Model struct {
	palette     *palette.Palette
	ctx         context.Context
	debounce    time.Duration
	recentLimit int
	showPaths   bool
	showIcons   bool

	searchBar *SearchBar
	query     string
	// gen identifies the latest query; results carrying an older value
	// are discarded.
	gen     int
	loading bool

	results palette.Results
	recents []recent.Item
	rows    []row
	cursor  int

	chosen    *palette.Candidate
	statusMsg string
	width     int
	height    int
}

// Messages
type (
	debounceMsg struct{ gen int }

	resultsMsg struct {
		gen     int
		results palette.Results
	}

	// StatusMsg shows a transient message in the status bar.
	StatusMsg string

	clearStatusMsg struct{}
)

// New creates the palette model.
func New(cfg Config) *Model {
	m := &Model{
		palette:     cfg.Palette,
		ctx:         cfg.Context,
		debounce:    cfg.Debounce,
		recentLimit: cfg.RecentLimit,
		showPaths:   cfg.ShowPaths,
		showIcons:   cfg.ShowIcons,
		searchBar:   NewSearchBar(),
	}
	if m.ctx == nil {
		m.ctx = context.Background()
	}
	if m.debounce <= 0 {
		m.debounce = DefaultDebounce
	}
	if m.recentLimit <= 0 {
		m.recentLimit = recent.DefaultLimit
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	m.loading = true
	return tea.Batch(textinput.Blink, m.runQuery(m.gen, ""))
}

// Chosen returns the candidate the user selected, or nil if the palette
// was dismissed.
func (m *Model) Chosen() *palette.Candidate {
	return m.chosen
}

// Query returns the current query text.
func (m *Model) Query() string {
	return m.query
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.searchBar.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case debounceMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = true
		return m, m.runQuery(msg.gen, m.query)

	case resultsMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		m.results = msg.results
		if m.query == "" {
			m.recents = m.palette.Recents(m.recentLimit)
		} else {
			m.recents = nil
		}
		m.buildRows()
		return m, nil

	case StatusMsg:
		m.statusMsg = string(msg)
		return m, tea.Tick(statusDuration, func(time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.searchBar, cmd = m.searchBar.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		if m.searchBar.Value() != "" {
			m.searchBar.SetValue("")
			return m, m.queryChanged()
		}
		return m, tea.Quit

	case "up", "ctrl+p":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "ctrl+n":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		return m, nil

	case "enter":
		return m.selectRow()

	case "ctrl+y":
		r := m.current()
		if r == nil || r.result == nil || r.result.Item.Href == "" {
			return m, nil
		}
		href := r.result.Item.Href
		return m, func() tea.Msg {
			if err := writeClipboard(href); err != nil {
				return StatusMsg("Clipboard unavailable: " + err.Error())
			}
			return StatusMsg(href + " → clipboard")
		}
	}

	var cmd tea.Cmd
	m.searchBar, cmd = m.searchBar.Update(msg)
	if m.searchBar.Value() != m.query {
		return m, tea.Batch(cmd, m.queryChanged())
	}
	return m, cmd
}

// queryChanged starts a new generation and schedules its query after the
// debounce delay.
func (m *Model) queryChanged() tea.Cmd {
	m.query = m.searchBar.Value()
	m.gen++
	gen := m.gen
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return debounceMsg{gen: gen}
	})
}

func (m *Model) runQuery(gen int, q string) tea.Cmd {
	p, ctx := m.palette, m.ctx
	return func() tea.Msg {
		return resultsMsg{gen: gen, results: p.Query(ctx, q)}
	}
}

func (m *Model) selectRow() (tea.Model, tea.Cmd) {
	r := m.current()
	if r == nil {
		return m, nil
	}

	if r.result == nil {
		// A recent search reruns that query.
		m.searchBar.SetValue(r.search)
		return m, m.queryChanged()
	}

	chosen := r.result.Item
	m.chosen = &chosen
	m.palette.Select(chosen)
	m.palette.RecordSearch(m.query)
	return m, tea.Quit
}

func (m *Model) current() *row {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return &m.rows[m.cursor]
}

func (m *Model) buildRows() {
	m.rows = m.rows[:0]

	for _, item := range m.recents {
		r := row{section: "Recent", title: recent.Title(item)}
		switch it := item.(type) {
		case *recent.Page:
			r.result = &search.Result[palette.Candidate]{
				Item: palette.Candidate{Kind: palette.KindNavigation, Title: it.Title, Href: it.Href},
			}
		case *recent.Task:
			r.title = it.TaskName
			r.result = &search.Result[palette.Candidate]{
				Item: palette.Candidate{
					Kind:        palette.KindTask,
					Title:       it.TaskName,
					TaskID:      it.TaskID,
					BoardName:   it.BoardName,
					WorkspaceID: m.palette.WorkspaceID(),
					Href:        palette.TaskHref(m.palette.WorkspaceID(), it.TaskID),
				},
			}
		case *recent.Search:
			r.search = it.Query
		}
		m.rows = append(m.rows, r)
	}

	sections := []struct {
		name string
		s    palette.Section
	}{
		{"Navigation", m.results.Navigation},
		{"Tasks", m.results.Tasks},
		{"Workspaces", m.results.Workspaces},
	}
	for _, sec := range sections {
		for i := range sec.s.Results {
			res := sec.s.Results[i]
			m.rows = append(m.rows, row{section: sec.name, result: &res, title: res.Item.Title})
		}
	}

	m.cursor = 0
}
