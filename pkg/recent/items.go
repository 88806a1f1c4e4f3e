// Package recent keeps the palette's recently used pages, tasks and
// searches, plus per-workspace defaults for task creation.
//
// Everything here is a convenience cache. Storage failures are logged and
// otherwise ignored: a failed read looks like an empty list and a failed
// write is dropped.
package recent

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Kind discriminates the Item variants.
type Kind string

const (
	KindPage   Kind = "page"
	KindTask   Kind = "task"
	KindSearch Kind = "search"
)

// Kinds lists every Kind in display order.
var Kinds = []Kind{KindPage, KindTask, KindSearch}

// ParseKind accepts a kind name in singular or plural form.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "page", "pages":
		return KindPage, nil
	case "task", "tasks":
		return KindTask, nil
	case "search", "searches":
		return KindSearch, nil
	default:
		return "", fmt.Errorf("unknown recent kind %q (must be: pages, tasks, or searches)", s)
	}
}

// Item is one of *Page, *Task or *Search. The set is closed; consumers
// should switch on the concrete type.
type Item interface {
	Kind() Kind
	Time() time.Time
	isItem()
}

// Page is a visited navigation target, keyed by Href.
type Page struct {
	Href      string `json:"href"`
	Title     string `json:"title"`
	Timestamp int64  `json:"timestamp"`
}

// Task is a task opened from the palette, keyed by TaskID.
type Task struct {
	TaskID    string `json:"taskId"`
	TaskName  string `json:"taskName"`
	BoardName string `json:"boardName,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// Search is a submitted query, keyed by its text.
type Search struct {
	Query     string `json:"query"`
	Timestamp int64  `json:"timestamp"`
}

func (*Page) Kind() Kind   { return KindPage }
func (*Task) Kind() Kind   { return KindTask }
func (*Search) Kind() Kind { return KindSearch }

func (p *Page) Time() time.Time   { return time.UnixMilli(p.Timestamp) }
func (t *Task) Time() time.Time   { return time.UnixMilli(t.Timestamp) }
func (s *Search) Time() time.Time { return time.UnixMilli(s.Timestamp) }

func (*Page) isItem()   {}
func (*Task) isItem()   {}
func (*Search) isItem() {}

// The stored form carries a "type" field alongside the variant's own
// fields so each persisted list is self-describing.

func (p Page) MarshalJSON() ([]byte, error) {
	type plain Page
	return json.Marshal(struct {
		Type Kind `json:"type"`
		plain
	}{KindPage, plain(p)})
}

func (t Task) MarshalJSON() ([]byte, error) {
	type plain Task
	return json.Marshal(struct {
		Type Kind `json:"type"`
		plain
	}{KindTask, plain(t)})
}

func (s Search) MarshalJSON() ([]byte, error) {
	type plain Search
	return json.Marshal(struct {
		Type Kind `json:"type"`
		plain
	}{KindSearch, plain(s)})
}

// Title returns the text shown for an item in lists.
func Title(item Item) string {
	switch it := item.(type) {
	case *Page:
		return it.Title
	case *Task:
		if it.BoardName != "" {
			return it.TaskName + " (" + it.BoardName + ")"
		}
		return it.TaskName
	case *Search:
		return it.Query
	default:
		panic(fmt.Sprintf("recent: unexpected item %T", item))
	}
}
