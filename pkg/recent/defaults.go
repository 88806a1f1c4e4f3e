package recent

import (
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/pluqqy/cmdk/pkg/models"
	"github.com/pluqqy/cmdk/pkg/storage"
)

// TaskDefaults remembers the board and list last used to create a task
// in a workspace.
type TaskDefaults struct {
	BoardID   string `json:"boardId"`
	ListID    string `json:"listId"`
	Timestamp int64  `json:"timestamp"`
}

func taskDefaultsKey(workspaceID string) string {
	return TaskDefaultsPrefix + workspaceID
}

// SaveTaskDefaults stores boardID/listID as the workspace's defaults.
func (s *Store) SaveTaskDefaults(workspaceID, boardID, listID string) {
	d := TaskDefaults{BoardID: boardID, ListID: listID, Timestamp: s.nowMillis()}
	data, err := json.Marshal(d)
	if err != nil {
		return
	}

	key := taskDefaultsKey(workspaceID)
	if err := s.kv.Set(key, string(data)); err != nil {
		s.logger.Debug("Dropping task defaults write", zap.String("key", key), zap.Error(err))
	}
}

// TaskDefaults returns the workspace's saved defaults if they are
// unexpired and still name a board in boards and a list on that board.
func (s *Store) TaskDefaults(workspaceID string, boards []models.Board) (TaskDefaults, bool) {
	key := taskDefaultsKey(workspaceID)

	raw, err := s.kv.Get(key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Debug("Ignoring unreadable task defaults", zap.String("key", key), zap.Error(err))
		}
		return TaskDefaults{}, false
	}

	var d TaskDefaults
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		s.logger.Debug("Ignoring corrupt task defaults", zap.String("key", key), zap.Error(err))
		return TaskDefaults{}, false
	}

	if !s.fresh(d.Timestamp) {
		return TaskDefaults{}, false
	}

	board, ok := models.FindBoard(boards, d.BoardID)
	if !ok {
		return TaskDefaults{}, false
	}
	if _, ok := board.FindList(d.ListID); !ok {
		return TaskDefaults{}, false
	}
	return d, true
}

// ClearTaskDefaults forgets the workspace's defaults.
func (s *Store) ClearTaskDefaults(workspaceID string) {
	s.remove(taskDefaultsKey(workspaceID))
}
