// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/pluqqy/cmdk/pkg/api"
	"github.com/pluqqy/cmdk/pkg/models"
)

// FakeBackend is an in-memory workspace backend for testing.
type FakeBackend struct {
	mu         sync.RWMutex
	workspaces []models.Workspace
	boards     map[string][]models.Board // workspaceID -> boards
	tasks      map[string][]models.Task  // workspaceID -> tasks
	nextID     int

	// Recorded calls
	WorkspaceCalls int
	SearchCalls    []string
	Created        []api.CreateTaskRequest

	// Error injection for testing
	ListWorkspacesErr error
	ListBoardsErr     error
	SearchTasksErr    error
	CreateTaskErr     error
}

// NewFakeBackend creates an empty FakeBackend.
func NewFakeBackend() *FakeBackend {
	return &FakeBackend{
		boards: make(map[string][]models.Board),
		tasks:  make(map[string][]models.Task),
	}
}

// AddWorkspace adds a workspace.
func (f *FakeBackend) AddWorkspace(id, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.workspaces = append(f.workspaces, models.Workspace{ID: id, Name: name})
}

// AddBoard adds a board with the given lists to a workspace.
func (f *FakeBackend) AddBoard(workspaceID string, board models.Board) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.boards[workspaceID] = append(f.boards[workspaceID], board)
}

// AddTask adds a task to a workspace.
func (f *FakeBackend) AddTask(workspaceID string, task models.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	task.WorkspaceID = workspaceID
	f.tasks[workspaceID] = append(f.tasks[workspaceID], task)
}

// ListWorkspaces implements palette.Backend.
func (f *FakeBackend) ListWorkspaces(ctx context.Context) ([]models.Workspace, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.WorkspaceCalls++
	if f.ListWorkspacesErr != nil {
		return nil, f.ListWorkspacesErr
	}
	return append([]models.Workspace(nil), f.workspaces...), nil
}

// ListBoards implements palette.Backend.
func (f *FakeBackend) ListBoards(ctx context.Context, workspaceID string) ([]models.Board, error) {
	if f.ListBoardsErr != nil {
		return nil, f.ListBoardsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]models.Board(nil), f.boards[workspaceID]...), nil
}

// SearchTasks implements palette.Backend. It returns tasks whose name
// contains query, ignoring case, in insertion order.
func (f *FakeBackend) SearchTasks(ctx context.Context, workspaceID, query string, mode api.SearchMode, limit int) ([]models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SearchCalls = append(f.SearchCalls, query)
	if f.SearchTasksErr != nil {
		return nil, f.SearchTasksErr
	}

	var out []models.Task
	q := strings.ToLower(query)
	for _, t := range f.tasks[workspaceID] {
		if mode == api.SearchSemantic || strings.Contains(strings.ToLower(t.Name), q) {
			out = append(out, t)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// CreateTask implements palette.Backend.
func (f *FakeBackend) CreateTask(ctx context.Context, workspaceID string, req api.CreateTaskRequest) (models.Task, error) {
	if err := req.Validate(); err != nil {
		return models.Task{}, err
	}
	if f.CreateTaskErr != nil {
		return models.Task{}, f.CreateTaskErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.Created = append(f.Created, req)
	f.nextID++
	task := models.Task{
		ID:          fmt.Sprintf("task-%d", f.nextID),
		Name:        strings.TrimSpace(req.Name),
		BoardID:     req.BoardID,
		ListID:      req.ListID,
		WorkspaceID: workspaceID,
	}
	f.tasks[workspaceID] = append(f.tasks[workspaceID], task)
	return task, nil
}
