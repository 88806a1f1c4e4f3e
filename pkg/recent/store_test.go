package recent

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/cmdk/pkg/storage"
)

// testClock is a settable clock for Store.
type testClock struct {
	t time.Time
}

func (c *testClock) Now() time.Time          { return c.t }
func (c *testClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(t *testing.T) (*Store, *storage.Memory, *testClock) {
	t.Helper()
	kv := storage.NewMemory()
	clock := &testClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	return NewStore(kv, WithClock(clock.Now)), kv, clock
}

// brokenKV fails every operation.
type brokenKV struct{}

var errBroken = errors.New("quota exceeded")

func (brokenKV) Get(string) (string, error) { return "", errBroken }
func (brokenKV) Set(string, string) error   { return errBroken }
func (brokenKV) Remove(string) error        { return errBroken }

func TestStore_AddPageDedupes(t *testing.T) {
	store, _, clock := newTestStore(t)

	store.AddPage("/billing", "Billing")
	clock.Advance(time.Minute)
	store.AddPage("/members", "Members")
	clock.Advance(time.Minute)
	store.AddPage("/billing", "Billing & Plans")

	pages := store.Pages()
	require.Len(t, pages, 2)
	assert.Equal(t, "/billing", pages[0].Href)
	assert.Equal(t, "Billing & Plans", pages[0].Title)
	assert.Equal(t, clock.Now().UnixMilli(), pages[0].Timestamp)
	assert.Equal(t, "/members", pages[1].Href)
}

func TestStore_AddTaskAndSearchDedupe(t *testing.T) {
	store, _, clock := newTestStore(t)

	store.AddTask("t1", "Write docs", "Docs")
	store.AddTask("t2", "Fix login", "")
	clock.Advance(time.Second)
	store.AddTask("t1", "Write better docs", "Docs")

	tasks := store.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, "t1", tasks[0].TaskID)
	assert.Equal(t, "Write better docs", tasks[0].TaskName)

	store.AddSearch("invoice")
	store.AddSearch("members")
	store.AddSearch("invoice")

	searches := store.Searches()
	require.Len(t, searches, 2)
	assert.Equal(t, "invoice", searches[0].Query)
	assert.Equal(t, "members", searches[1].Query)
}

func TestStore_CapsEachList(t *testing.T) {
	store, _, clock := newTestStore(t)

	for i := 0; i < MaxPerKind+5; i++ {
		store.AddPage(fmt.Sprintf("/page/%d", i), fmt.Sprintf("Page %d", i))
		store.AddSearch(fmt.Sprintf("query %d", i))
		clock.Advance(time.Second)
	}
	store.AddTask("only", "Only task", "")

	pages := store.Pages()
	require.Len(t, pages, MaxPerKind)
	assert.Equal(t, fmt.Sprintf("/page/%d", MaxPerKind+4), pages[0].Href)
	assert.Equal(t, "/page/5", pages[MaxPerKind-1].Href)

	assert.Len(t, store.Searches(), MaxPerKind)
	assert.Len(t, store.Tasks(), 1)
}

func TestStore_ItemsMergesNewestFirst(t *testing.T) {
	store, _, clock := newTestStore(t)

	store.AddPage("/billing", "Billing")
	clock.Advance(time.Minute)
	store.AddSearch("invoices")
	clock.Advance(time.Minute)
	store.AddTask("t1", "Pay invoice", "Finance")
	clock.Advance(time.Minute)
	store.AddPage("/members", "Members")

	items := store.Items(10)
	require.Len(t, items, 4)

	var kinds []Kind
	for _, it := range items {
		kinds = append(kinds, it.Kind())
	}
	assert.Equal(t, []Kind{KindPage, KindTask, KindSearch, KindPage}, kinds)
	assert.Equal(t, "/members", items[0].(*Page).Href)

	assert.Len(t, store.Items(2), 2)
	assert.Len(t, store.Items(0), DefaultLimit-1)
}

func TestStore_ItemsDefaultLimit(t *testing.T) {
	store, _, clock := newTestStore(t)
	for i := 0; i < 8; i++ {
		store.AddSearch(fmt.Sprintf("q%d", i))
		clock.Advance(time.Second)
	}

	assert.Len(t, store.Items(0), DefaultLimit)
	assert.Len(t, store.Items(-3), DefaultLimit)
}

func TestStore_ExpiredEntriesAreHidden(t *testing.T) {
	store, kv, clock := newTestStore(t)

	store.AddPage("/old", "Old")
	store.AddTask("old", "Old task", "")
	clock.Advance(20 * 24 * time.Hour)
	store.AddPage("/new", "New")

	clock.Advance(11 * 24 * time.Hour)

	items := store.Items(10)
	require.Len(t, items, 1)
	assert.Equal(t, "/new", items[0].(*Page).Href)
	for _, it := range items {
		assert.LessOrEqual(t, clock.Now().Sub(it.Time()), Expiry)
	}

	// expired entries are hidden, not purged
	raw, err := kv.Get(PagesKey)
	require.NoError(t, err)
	assert.Contains(t, raw, "/old")
}

func TestStore_RecencyBoost(t *testing.T) {
	tests := []struct {
		name string
		age  time.Duration
		want int
	}{
		{"30 seconds", 30 * time.Second, 200},
		{"59 minutes", 59 * time.Minute, 200},
		{"1 hour", time.Hour, 150},
		{"5 hours", 5 * time.Hour, 150},
		{"12 hours", 12 * time.Hour, 100},
		{"2 days", 2 * 24 * time.Hour, 50},
		{"5 days", 5 * 24 * time.Hour, 25},
		{"8 days", 8 * 24 * time.Hour, 0},
		{"40 days", 40 * 24 * time.Hour, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _, clock := newTestStore(t)
			store.AddPage("/billing", "Billing")
			clock.Advance(tt.age)

			assert.Equal(t, tt.want, store.RecencyBoost("/billing"))
		})
	}
}

func TestStore_RecencyBoostNeverVisited(t *testing.T) {
	store, _, _ := newTestStore(t)
	assert.Equal(t, 0, store.RecencyBoost("/nowhere"))

	store.AddPage("/billing", "Billing")
	assert.Equal(t, 0, store.RecencyBoost("/nowhere"))
}

func TestStore_Clear(t *testing.T) {
	store, _, _ := newTestStore(t)

	store.AddPage("/billing", "Billing")
	store.AddTask("t1", "Task", "")
	store.AddSearch("q")

	store.Clear(KindTask)
	assert.Empty(t, store.Tasks())
	assert.Len(t, store.Pages(), 1)
	assert.Len(t, store.Searches(), 1)

	store.ClearAll()
	assert.Empty(t, store.Items(10))
}

func TestStore_ClearKeepsTaskDefaults(t *testing.T) {
	store, kv, _ := newTestStore(t)
	store.SaveTaskDefaults("ws1", "b1", "l1")
	store.ClearAll()

	_, err := kv.Get(TaskDefaultsPrefix + "ws1")
	assert.NoError(t, err)
}

func TestStore_CorruptDataReadsAsEmpty(t *testing.T) {
	store, kv, _ := newTestStore(t)

	require.NoError(t, kv.Set(PagesKey, "{not json"))
	assert.Empty(t, store.Pages())
	assert.Equal(t, 0, store.RecencyBoost("/billing"))

	// the next write replaces the corrupt value
	store.AddPage("/billing", "Billing")
	assert.Len(t, store.Pages(), 1)
}

func TestStore_BrokenStorageIsSilent(t *testing.T) {
	store := NewStore(brokenKV{})

	assert.NotPanics(t, func() {
		store.AddPage("/billing", "Billing")
		store.AddTask("t1", "Task", "")
		store.AddSearch("q")
		store.ClearAll()
		store.SaveTaskDefaults("ws", "b", "l")
	})
	assert.Empty(t, store.Items(5))
	assert.Equal(t, 0, store.RecencyBoost("/billing"))
}

func TestStore_PersistedShape(t *testing.T) {
	store, kv, clock := newTestStore(t)
	store.AddPage("/billing", "Billing")

	raw, err := kv.Get(PagesKey)
	require.NoError(t, err)
	want := fmt.Sprintf(`[{"type":"page","href":"/billing","title":"Billing","timestamp":%d}]`, clock.Now().UnixMilli())
	assert.JSONEq(t, want, raw)
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{"pages": KindPage, "Task": KindTask, "searches": KindSearch} {
		got, err := ParseKind(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseKind("boards")
	assert.Error(t, err)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Billing", Title(&Page{Title: "Billing"}))
	assert.Equal(t, "Fix login (Web)", Title(&Task{TaskName: "Fix login", BoardName: "Web"}))
	assert.Equal(t, "Fix login", Title(&Task{TaskName: "Fix login"}))
	assert.Equal(t, "invoices", Title(&Search{Query: "invoices"}))
}
