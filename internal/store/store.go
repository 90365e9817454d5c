// Package store provides the bounded, deduplicated record lists behind
// the calculator's history and saved formulas.
//
// A Store is an ordered string list with three invariants: it never
// exceeds its capacity, no two items share a canonical key, and new
// items enter at the front while eviction happens at the tail. Every
// mutation commits in memory first and then hands a snapshot to the
// saver as a best-effort, write-behind persistence step.
package store

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// DefaultCapacity bounds a store when no capacity is configured.
const DefaultCapacity = 100

// Loader reads a persisted string list; an absent key loads as empty.
type Loader interface {
	Load(ctx context.Context, key string) ([]string, error)
}

// Saver schedules a best-effort write of a store snapshot. Writes for
// the same key must be serialized by the implementation.
type Saver interface {
	Enqueue(key string, values []string)
}

// Config configures a Store.
type Config struct {
	// Key is the persistence key for this store.
	Key string

	// Capacity caps the item count; DefaultCapacity if <= 0.
	Capacity int

	// Canon maps an item to its canonical key for blank detection and
	// deduplication. Identity when nil.
	Canon func(string) string

	// Loader populates the store at session start. Optional.
	Loader Loader

	// Saver receives a snapshot after every mutation. Optional.
	Saver Saver

	// Logger records swallowed persistence failures. Optional.
	Logger *zap.Logger
}

// Store is a size-capped, deduplicated, most-recent-first string list.
// All methods are safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	key      string
	capacity int
	canon    func(string) string
	loader   Loader
	saver    Saver
	logger   *zap.Logger
	items    []string
}

// New creates an empty store. Call Load once at session start to pull
// the persisted list.
func New(cfg Config) *Store {
	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	canon := cfg.Canon
	if canon == nil {
		canon = func(s string) string { return s }
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		key:      cfg.Key,
		capacity: capacity,
		canon:    canon,
		loader:   cfg.Loader,
		saver:    cfg.Saver,
		logger:   logger,
	}
}

// Load replaces the items with the persisted list. A load failure
// leaves the store empty and is logged, not returned: persistence is
// never fatal to the session.
func (s *Store) Load(ctx context.Context) {
	if s.loader == nil {
		return
	}

	values, err := s.loader.Load(ctx, s.key)
	if err != nil {
		s.logger.Warn("persistence load failed",
			zap.String("key", s.key),
			zap.Error(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(values) > s.capacity {
		values = values[:s.capacity]
	}
	s.items = append([]string(nil), values...)
}

// Add inserts item at the front. It is a no-op when the canonical key
// is blank or already present. Beyond capacity the oldest items are
// evicted from the tail. The new snapshot is persisted afterward.
func (s *Store) Add(item string) {
	key := s.canon(item)
	if strings.TrimSpace(key) == "" {
		return
	}

	s.mu.Lock()
	for _, existing := range s.items {
		if s.canon(existing) == key {
			s.mu.Unlock()
			return
		}
	}

	s.items = append([]string{item}, s.items...)
	if len(s.items) > s.capacity {
		s.items = s.items[:s.capacity]
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(snapshot)
}

// RemoveAt deletes the item at index. Out-of-range indexes are a
// no-op, matching permissive UI semantics, and issue no write.
func (s *Store) RemoveAt(index int) {
	s.mu.Lock()
	if index < 0 || index >= len(s.items) {
		s.mu.Unlock()
		return
	}

	s.items = append(s.items[:index], s.items[index+1:]...)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(snapshot)
}

// Clear empties the store and persists the empty list.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()

	s.persist(nil)
}

// Items returns a snapshot copy, most recent first.
func (s *Store) Items() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Len returns the current item count.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) snapshotLocked() []string {
	return append([]string(nil), s.items...)
}

func (s *Store) persist(snapshot []string) {
	if s.saver == nil {
		return
	}
	s.saver.Enqueue(s.key, snapshot)
}
