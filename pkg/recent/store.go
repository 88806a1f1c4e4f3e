package recent

import (
	"encoding/json"
	"errors"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pluqqy/cmdk/pkg/storage"
)

// Storage keys owned by the store.
const (
	PagesKey           = "cmdk_recent_pages"
	TasksKey           = "cmdk_recent_tasks"
	SearchesKey        = "cmdk_recent_searches"
	TaskDefaultsPrefix = "cmdk_task_defaults_"
)

const (
	// MaxPerKind caps each of the three lists.
	MaxPerKind = 20

	// Expiry is how long an entry stays visible after it was written.
	Expiry = 30 * 24 * time.Hour

	// DefaultLimit is the number of entries Items returns when asked for
	// a non-positive count.
	DefaultLimit = 5
)

// Store reads and writes recent items through a storage.KV.
type Store struct {
	kv     storage.KV
	now    func() time.Time
	logger *zap.Logger

	// mu serializes read-modify-write cycles within this process
	mu sync.Mutex
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger used for swallowed storage errors
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// NewStore creates a store on top of kv
func NewStore(kv storage.KV, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddPage records a visit to href, replacing any earlier visit.
func (s *Store) AddPage(href, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := readList[Page](s, PagesKey)
	entry := Page{Href: href, Title: title, Timestamp: s.nowMillis()}
	s.writeList(PagesKey, prepend(list, entry, func(p Page) bool { return p.Href == href }))
}

// AddTask records that a task was opened, replacing any earlier entry
// for the same task.
func (s *Store) AddTask(taskID, taskName, boardName string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := readList[Task](s, TasksKey)
	entry := Task{TaskID: taskID, TaskName: taskName, BoardName: boardName, Timestamp: s.nowMillis()}
	s.writeList(TasksKey, prepend(list, entry, func(t Task) bool { return t.TaskID == taskID }))
}

// AddSearch records a submitted query, replacing any earlier identical one.
func (s *Store) AddSearch(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := readList[Search](s, SearchesKey)
	entry := Search{Query: query, Timestamp: s.nowMillis()}
	s.writeList(SearchesKey, prepend(list, entry, func(q Search) bool { return q.Query == query }))
}

// Pages returns unexpired page visits, most recent first.
func (s *Store) Pages() []*Page {
	var out []*Page
	for _, p := range readList[Page](s, PagesKey) {
		if s.fresh(p.Timestamp) {
			out = append(out, &p)
		}
	}
	return out
}

// Tasks returns unexpired task entries, most recent first.
func (s *Store) Tasks() []*Task {
	var out []*Task
	for _, t := range readList[Task](s, TasksKey) {
		if s.fresh(t.Timestamp) {
			out = append(out, &t)
		}
	}
	return out
}

// Searches returns unexpired searches, most recent first.
func (s *Store) Searches() []*Search {
	var out []*Search
	for _, q := range readList[Search](s, SearchesKey) {
		if s.fresh(q.Timestamp) {
			out = append(out, &q)
		}
	}
	return out
}

// Items merges all three lists, newest first, and returns at most limit
// entries. A non-positive limit means DefaultLimit.
func (s *Store) Items(limit int) []Item {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var items []Item
	for _, p := range s.Pages() {
		items = append(items, p)
	}
	for _, t := range s.Tasks() {
		items = append(items, t)
	}
	for _, q := range s.Searches() {
		items = append(items, q)
	}

	slices.SortStableFunc(items, func(a, b Item) int {
		return b.Time().Compare(a.Time())
	})

	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

// Boost steps for RecencyBoost, checked in order.
var boostSteps = []struct {
	within time.Duration
	boost  int
}{
	{time.Hour, 200},
	{6 * time.Hour, 150},
	{24 * time.Hour, 100},
	{3 * 24 * time.Hour, 50},
	{7 * 24 * time.Hour, 25},
}

// RecencyBoost returns a score bonus for href based on how long ago it
// was last visited: 200 within the hour, falling stepwise to 0 after a
// week or if it was never visited.
func (s *Store) RecencyBoost(href string) int {
	var last *Page
	for _, p := range s.Pages() {
		if p.Href == href && (last == nil || p.Timestamp > last.Timestamp) {
			last = p
		}
	}
	if last == nil {
		return 0
	}

	age := s.now().Sub(last.Time())
	for _, step := range boostSteps {
		if age < step.within {
			return step.boost
		}
	}
	return 0
}

// Clear removes every entry of one kind.
func (s *Store) Clear(kind Kind) {
	var key string
	switch kind {
	case KindPage:
		key = PagesKey
	case KindTask:
		key = TasksKey
	case KindSearch:
		key = SearchesKey
	default:
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(key)
}

// ClearAll removes all recent pages, tasks and searches.
func (s *Store) ClearAll() {
	for _, kind := range Kinds {
		s.Clear(kind)
	}
}

func (s *Store) nowMillis() int64 {
	return s.now().UnixMilli()
}

func (s *Store) fresh(timestamp int64) bool {
	return s.now().Sub(time.UnixMilli(timestamp)) <= Expiry
}

func readList[T any](s *Store, key string) []T {
	raw, err := s.kv.Get(key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Debug("Ignoring unreadable recent list", zap.String("key", key), zap.Error(err))
		}
		return nil
	}

	var list []T
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		s.logger.Debug("Ignoring corrupt recent list", zap.String("key", key), zap.Error(err))
		return nil
	}
	return list
}

func (s *Store) writeList(key string, list any) {
	data, err := json.Marshal(list)
	if err != nil {
		s.logger.Debug("Dropping recent list write", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.kv.Set(key, string(data)); err != nil {
		s.logger.Debug("Dropping recent list write", zap.String("key", key), zap.Error(err))
	}
}

func (s *Store) remove(key string) {
	if err := s.kv.Remove(key); err != nil {
		s.logger.Debug("Failed to clear recent list", zap.String("key", key), zap.Error(err))
	}
}

// prepend puts entry first, drops anything same reports as a duplicate
// and caps the result at MaxPerKind.
func prepend[T any](list []T, entry T, same func(T) bool) []T {
	out := make([]T, 0, min(len(list)+1, MaxPerKind))
	out = append(out, entry)
	for _, e := range list {
		if len(out) == MaxPerKind {
			break
		}
		if !same(e) {
			out = append(out, e)
		}
	}
	return out
}
