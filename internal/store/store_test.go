package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/dshills/tally/internal/persist"
)

// recordingSaver captures snapshots synchronously.
type recordingSaver struct {
	mu    sync.Mutex
	calls []snapshot
}

type snapshot struct {
	key    string
	values []string
}

func (r *recordingSaver) Enqueue(key string, values []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, snapshot{key: key, values: append([]string(nil), values...)})
}

func (r *recordingSaver) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func (r *recordingSaver) last() snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[len(r.calls)-1]
}

func newTestStore(capacity int) (*Store, *recordingSaver) {
	saver := &recordingSaver{}
	s := New(Config{Key: "test", Capacity: capacity, Saver: saver})
	return s, saver
}

func TestAddInsertsAtFront(t *testing.T) {
	s, saver := newTestStore(10)

	s.Add("first")
	s.Add("second")

	items := s.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0] != "second" || items[1] != "first" {
		t.Errorf("items = %v, want [second first]", items)
	}
	if saver.count() != 2 {
		t.Errorf("expected 2 persistence writes, got %d", saver.count())
	}
}

func TestAddDeduplicates(t *testing.T) {
	s, saver := newTestStore(10)

	s.Add("5+5 = 10")
	s.Add("5+5 = 10")

	if s.Len() != 1 {
		t.Errorf("expected 1 item after duplicate add, got %d", s.Len())
	}
	if saver.count() != 1 {
		t.Errorf("duplicate add must not persist; got %d writes", saver.count())
	}
}

func TestAddBlankIsNoOp(t *testing.T) {
	s, saver := newTestStore(10)

	s.Add("")
	s.Add("   ")

	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d items", s.Len())
	}
	if saver.count() != 0 {
		t.Errorf("blank add must not persist; got %d writes", saver.count())
	}
}

func TestAddEvictsFromTailAtCapacity(t *testing.T) {
	s, _ := newTestStore(100)

	for i := 0; i < 100; i++ {
		s.Add(fmt.Sprintf("item-%d", i))
	}
	if s.Len() != 100 {
		t.Fatalf("expected full store, got %d", s.Len())
	}

	s.Add("item-100")

	items := s.Items()
	if len(items) != 100 {
		t.Fatalf("expected capacity held at 100, got %d", len(items))
	}
	if items[0] != "item-100" {
		t.Errorf("front = %q, want item-100", items[0])
	}
	// item-0 was the oldest (at the tail) and must be gone.
	if items[len(items)-1] != "item-1" {
		t.Errorf("tail = %q, want item-1", items[len(items)-1])
	}
}

func TestRemoveAt(t *testing.T) {
	s, saver := newTestStore(10)
	s.Add("a")
	s.Add("b")
	s.Add("c") // items: c b a

	s.RemoveAt(1)

	items := s.Items()
	if len(items) != 2 || items[0] != "c" || items[1] != "a" {
		t.Errorf("items = %v, want [c a]", items)
	}
	if saver.last().values[0] != "c" {
		t.Errorf("last persisted snapshot = %v", saver.last().values)
	}
}

func TestRemoveAtOutOfRangeIsNoOp(t *testing.T) {
	s, saver := newTestStore(10)
	s.Add("a")
	writes := saver.count()

	s.RemoveAt(-1)
	s.RemoveAt(1)
	s.RemoveAt(99)

	if s.Len() != 1 {
		t.Errorf("expected item to survive, got %d items", s.Len())
	}
	if saver.count() != writes {
		t.Errorf("out-of-range remove must not persist; got %d extra writes", saver.count()-writes)
	}
}

func TestClearPersistsEmptyList(t *testing.T) {
	s, saver := newTestStore(10)
	s.Add("a")
	s.Add("b")

	s.Clear()

	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d items", s.Len())
	}
	if got := saver.last(); len(got.values) != 0 {
		t.Errorf("last persisted snapshot = %v, want empty", got.values)
	}
}

func TestLoadReplacesItems(t *testing.T) {
	m := persist.NewMemory()
	m.Seed("test", []string{"x", "y"})
	s := New(Config{Key: "test", Loader: m})

	s.Load(context.Background())

	items := s.Items()
	if len(items) != 2 || items[0] != "x" || items[1] != "y" {
		t.Errorf("items = %v, want [x y]", items)
	}
}

func TestLoadTruncatesOverCapacity(t *testing.T) {
	m := persist.NewMemory()
	m.Seed("test", []string{"a", "b", "c", "d"})
	s := New(Config{Key: "test", Capacity: 2, Loader: m})

	s.Load(context.Background())

	if s.Len() != 2 {
		t.Errorf("expected 2 items after truncating load, got %d", s.Len())
	}
}

func TestLoadFailureLeavesStoreEmpty(t *testing.T) {
	m := persist.NewMemory()
	m.FailLoads(errors.New("corrupt file"))
	s := New(Config{Key: "test", Loader: m})

	s.Load(context.Background())

	if s.Len() != 0 {
		t.Errorf("expected empty store after failed load, got %d items", s.Len())
	}
}

func TestSaveFailureLeavesMemoryIntact(t *testing.T) {
	m := persist.NewMemory()
	m.FailSaves(errors.New("disk full"))
	w := persist.NewWriter(m, nil)
	s := New(Config{Key: "test", Saver: w})

	s.Add("a")
	w.Close()

	if s.Len() != 1 {
		t.Errorf("in-memory state must survive a failed save; got %d items", s.Len())
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	s, _ := newTestStore(10)
	s.Add("a")

	items := s.Items()
	items[0] = "mutated"

	if got := s.Items()[0]; got != "a" {
		t.Errorf("store item = %q, want %q", got, "a")
	}
}
