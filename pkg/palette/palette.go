// Package palette ties the search engine, the recents store and the
// workspace backend together into the command palette: one query yields
// ranked navigation, task and workspace sections, and selecting a result
// feeds the recents store.
package palette

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pluqqy/cmdk/pkg/api"
	"github.com/pluqqy/cmdk/pkg/models"
	"github.com/pluqqy/cmdk/pkg/navigation"
	"github.com/pluqqy/cmdk/pkg/recent"
	"github.com/pluqqy/cmdk/pkg/search"
)

// ErrNoBackend is returned by operations that need the workspace backend
// when none is configured.
var ErrNoBackend = errors.New("no backend configured")

// Backend is the part of the workspace API the palette uses.
type Backend interface {
	ListWorkspaces(ctx context.Context) ([]models.Workspace, error)
	ListBoards(ctx context.Context, workspaceID string) ([]models.Board, error)
	SearchTasks(ctx context.Context, workspaceID, query string, mode api.SearchMode, limit int) ([]models.Task, error)
	CreateTask(ctx context.Context, workspaceID string, req api.CreateTaskRequest) (models.Task, error)
}

// Config configures a Palette. Navigation and Recent are required.
type Config struct {
	Navigation []navigation.Item
	Recent     *recent.Store

	// Backend is optional; without it only navigation is searched.
	Backend     Backend
	WorkspaceID string

	Limit          int
	MinScore       int
	TaskSearchMode api.SearchMode
	IncludeTasks   bool

	Logger *zap.Logger
}

// Section is one group of ranked results. Err is set when the source
// failed; the other sections are unaffected.
type Section struct {
	Kind    Kind                       `json:"kind" yaml:"kind"`
	Results []search.Result[Candidate] `json:"results" yaml:"results"`
	Err     error                      `json:"-" yaml:"-"`
}

// Results is the answer to one query.
type Results struct {
	Query      string  `json:"query" yaml:"query"`
	Navigation Section `json:"navigation" yaml:"navigation"`
	Tasks      Section `json:"tasks" yaml:"tasks"`
	Workspaces Section `json:"workspaces" yaml:"workspaces"`
}

// All returns every result in display order: navigation, tasks, then
// workspaces.
func (r Results) All() []search.Result[Candidate] {
	all := make([]search.Result[Candidate], 0,
		len(r.Navigation.Results)+len(r.Tasks.Results)+len(r.Workspaces.Results))
	all = append(all, r.Navigation.Results...)
	all = append(all, r.Tasks.Results...)
	all = append(all, r.Workspaces.Results...)
	return all
}

// Errors returns the section errors joined, or nil.
func (r Results) Errors() error {
	return errors.Join(r.Navigation.Err, r.Tasks.Err, r.Workspaces.Err)
}

// Palette answers queries and records selections.
type Palette struct {
	nav     []Candidate
	recent  *recent.Store
	backend Backend
	ws      string

	limit        int
	minScore     int
	mode         api.SearchMode
	includeTasks bool
	logger       *zap.Logger

	mu         sync.Mutex
	workspaces []models.Workspace
}

// New builds a Palette from cfg.
func New(cfg Config) (*Palette, error) {
	if cfg.Recent == nil {
		return nil, fmt.Errorf("recent store is required")
	}

	p := &Palette{
		recent:       cfg.Recent,
		backend:      cfg.Backend,
		ws:           cfg.WorkspaceID,
		limit:        cfg.Limit,
		minScore:     cfg.MinScore,
		mode:         cfg.TaskSearchMode,
		includeTasks: cfg.IncludeTasks,
		logger:       cfg.Logger,
	}
	if p.limit <= 0 {
		p.limit = search.DefaultLimit
	}
	if p.minScore <= 0 {
		p.minScore = search.DefaultMinScore
	}
	if p.mode == "" {
		p.mode = api.SearchText
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}

	p.nav = make([]Candidate, 0, len(cfg.Navigation))
	for _, item := range cfg.Navigation {
		p.nav = append(p.nav, fromNav(item))
	}
	return p, nil
}

// WorkspaceID returns the workspace tasks are searched and created in.
func (p *Palette) WorkspaceID() string {
	return p.ws
}

// Query ranks every source against q. Sources are queried concurrently
// and fail independently; a failed source leaves its section empty with
// Err set.
func (p *Palette) Query(ctx context.Context, q string) Results {
	q = strings.TrimSpace(q)
	res := Results{
		Query:      q,
		Navigation: Section{Kind: KindNavigation},
		Tasks:      Section{Kind: KindTask},
		Workspaces: Section{Kind: KindWorkspace},
	}

	res.Navigation.Results = search.SearchItems(p.nav, q, search.Options[Candidate]{
		Limit:    p.limit,
		MinScore: p.minScore,
		Boost:    func(c Candidate) int { return p.recent.RecencyBoost(c.Href) },
	})

	if p.backend == nil {
		return res
	}

	// Sources record their own errors so one failure never cancels the
	// others.
	g, gctx := errgroup.WithContext(ctx)

	if p.includeTasks && q != "" && p.ws != "" {
		g.Go(func() error {
			res.Tasks.Results, res.Tasks.Err = p.queryTasks(gctx, q)
			return nil
		})
	}
	g.Go(func() error {
		res.Workspaces.Results, res.Workspaces.Err = p.queryWorkspaces(gctx, q)
		return nil
	})
	_ = g.Wait()

	for _, s := range []Section{res.Tasks, res.Workspaces} {
		if s.Err != nil {
			p.logger.Debug("Palette source failed",
				zap.String("source", string(s.Kind)),
				zap.String("query", q),
				zap.Error(s.Err))
		}
	}
	return res
}

func (p *Palette) queryTasks(ctx context.Context, q string) ([]search.Result[Candidate], error) {
	tasks, err := p.backend.SearchTasks(ctx, p.ws, q, p.mode, p.limit)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(tasks))
	for _, t := range tasks {
		candidates = append(candidates, fromTask(p.ws, t))
	}

	// Semantic hits rarely share text with the query, so keep the
	// server's ranking instead of rescoring.
	if p.mode == api.SearchSemantic {
		if len(candidates) > p.limit {
			candidates = candidates[:p.limit]
		}
		out := make([]search.Result[Candidate], 0, len(candidates))
		for _, c := range candidates {
			out = append(out, search.Result[Candidate]{Item: c, MatchedText: c.Title})
		}
		return out, nil
	}

	return search.SearchItems(candidates, q, search.Options[Candidate]{
		Limit:    p.limit,
		MinScore: p.minScore,
	}), nil
}

func (p *Palette) queryWorkspaces(ctx context.Context, q string) ([]search.Result[Candidate], error) {
	workspaces, err := p.Workspaces(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(workspaces))
	for _, w := range workspaces {
		candidates = append(candidates, fromWorkspace(w))
	}
	return search.SearchItems(candidates, q, search.Options[Candidate]{
		Limit:    p.limit,
		MinScore: p.minScore,
		Boost:    func(c Candidate) int { return p.recent.RecencyBoost(c.Href) },
	}), nil
}

// Workspaces returns the caller's workspaces, fetching them once and
// caching the list for later queries.
func (p *Palette) Workspaces(ctx context.Context) ([]models.Workspace, error) {
	if p.backend == nil {
		return nil, ErrNoBackend
	}

	p.mu.Lock()
	cached := p.workspaces
	p.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	workspaces, err := p.backend.ListWorkspaces(ctx)
	if err != nil {
		return nil, err
	}
	if workspaces == nil {
		workspaces = []models.Workspace{}
	}

	p.mu.Lock()
	p.workspaces = workspaces
	p.mu.Unlock()
	return workspaces, nil
}

// Select records that c was chosen.
func (p *Palette) Select(c Candidate) {
	switch c.Kind {
	case KindTask:
		p.recent.AddTask(c.TaskID, c.Title, c.BoardName)
	case KindWorkspace:
		href := c.Href
		if href == "" {
			href = WorkspaceHref(c.WorkspaceID)
		}
		p.recent.AddPage(href, c.Title)
	default:
		p.recent.AddPage(c.Href, c.Title)
	}
}

// RecordSearch remembers a submitted query. Blank queries are ignored.
func (p *Palette) RecordSearch(q string) {
	q = strings.TrimSpace(q)
	if q == "" {
		return
	}
	p.recent.AddSearch(q)
}

// Recents returns the most recent pages, tasks and searches.
func (p *Palette) Recents(limit int) []recent.Item {
	return p.recent.Items(limit)
}

// CreateTaskInput describes a task to create. BoardID and ListID fall back
// to the workspace's remembered defaults when both are empty.
type CreateTaskInput struct {
	Name        string
	Description string
	BoardID     string
	ListID      string
}

// CreateTask creates a task in the palette's workspace. On success the
// board and list become the workspace's defaults and the task is added to
// recents.
func (p *Palette) CreateTask(ctx context.Context, in CreateTaskInput) (models.Task, error) {
	if p.backend == nil {
		return models.Task{}, ErrNoBackend
	}
	if p.ws == "" {
		return models.Task{}, api.ErrMissingWorkspace
	}

	req := api.CreateTaskRequest{
		Name:        in.Name,
		Description: in.Description,
		BoardID:     in.BoardID,
		ListID:      in.ListID,
	}

	var boards []models.Board
	if req.BoardID == "" && req.ListID == "" {
		var err error
		boards, err = p.backend.ListBoards(ctx, p.ws)
		if err != nil {
			return models.Task{}, err
		}
		if d, ok := p.recent.TaskDefaults(p.ws, boards); ok {
			req.BoardID, req.ListID = d.BoardID, d.ListID
		}
	}
	if err := req.Validate(); err != nil {
		return models.Task{}, err
	}

	task, err := p.backend.CreateTask(ctx, p.ws, req)
	if err != nil {
		return models.Task{}, err
	}

	p.recent.SaveTaskDefaults(p.ws, req.BoardID, req.ListID)

	boardName := task.BoardName
	if boardName == "" {
		if b, ok := models.FindBoard(boards, req.BoardID); ok {
			boardName = b.Name
		}
	}
	p.recent.AddTask(task.ID, task.Name, boardName)

	p.logger.Debug("Task created",
		zap.String("workspace", p.ws),
		zap.String("task", task.ID),
		zap.String("board", req.BoardID),
		zap.String("list", req.ListID))
	return task, nil
}
