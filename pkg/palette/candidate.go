package palette

import (
	"github.com/pluqqy/cmdk/pkg/models"
	"github.com/pluqqy/cmdk/pkg/navigation"
)

// Kind says where a candidate came from.
type Kind string

const (
	KindNavigation Kind = "navigation"
	KindTask       Kind = "task"
	KindWorkspace  Kind = "workspace"
)

// Candidate is a single row the palette can show and select.
type Candidate struct {
	Kind    Kind     `json:"kind" yaml:"kind"`
	Title   string   `json:"title" yaml:"title"`
	Href    string   `json:"href,omitempty" yaml:"href,omitempty"`
	Aliases []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Path    []string `json:"path,omitempty" yaml:"path,omitempty"`
	Icon    string   `json:"icon,omitempty" yaml:"icon,omitempty"`

	TaskID      string `json:"task_id,omitempty" yaml:"task_id,omitempty"`
	BoardName   string `json:"board_name,omitempty" yaml:"board_name,omitempty"`
	WorkspaceID string `json:"workspace_id,omitempty" yaml:"workspace_id,omitempty"`
}

func (c Candidate) SearchTitle() string     { return c.Title }
func (c Candidate) SearchAliases() []string { return c.Aliases }

// WorkspaceHref is the page a workspace candidate navigates to.
func WorkspaceHref(id string) string {
	return "/" + id
}

// TaskHref is the page a task candidate navigates to.
func TaskHref(workspaceID, taskID string) string {
	return "/" + workspaceID + "/tasks/" + taskID
}

func fromNav(item navigation.Item) Candidate {
	return Candidate{
		Kind:    KindNavigation,
		Title:   item.Title,
		Href:    item.Href,
		Aliases: item.Aliases,
		Path:    item.Path,
		Icon:    item.Icon,
	}
}

func fromTask(workspaceID string, t models.Task) Candidate {
	ws := t.WorkspaceID
	if ws == "" {
		ws = workspaceID
	}
	return Candidate{
		Kind:        KindTask,
		Title:       t.Name,
		Href:        TaskHref(ws, t.ID),
		TaskID:      t.ID,
		BoardName:   t.BoardName,
		WorkspaceID: ws,
	}
}

func fromWorkspace(w models.Workspace) Candidate {
	return Candidate{
		Kind:        KindWorkspace,
		Title:       w.Name,
		Href:        WorkspaceHref(w.ID),
		WorkspaceID: w.ID,
	}
}
