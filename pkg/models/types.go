package models

type Workspace struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

type List struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

type Board struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Lists []List `json:"lists" yaml:"lists"`
}

type Task struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	BoardID     string `json:"boardId,omitempty" yaml:"board_id,omitempty"`
	BoardName   string `json:"boardName,omitempty" yaml:"board_name,omitempty"`
	ListID      string `json:"listId,omitempty" yaml:"list_id,omitempty"`
	ListName    string `json:"listName,omitempty" yaml:"list_name,omitempty"`
	WorkspaceID string `json:"workspaceId,omitempty" yaml:"workspace_id,omitempty"`
}

// FindList returns the board's list with the given id.
func (b Board) FindList(id string) (List, bool) {
	for _, l := range b.Lists {
		if l.ID == id {
			return l, true
		}
	}
	return List{}, false
}

// FindBoard returns the board with the given id.
func FindBoard(boards []Board, id string) (Board, bool) {
	for _, b := range boards {
		if b.ID == id {
			return b, true
		}
	}
	return Board{}, false
}
