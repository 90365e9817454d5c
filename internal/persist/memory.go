package persist

import (
	"context"
	"sync"
)

// Memory is a map-backed Gateway for tests and ephemeral sessions.
// Load and save faults can be injected.
type Memory struct {
	mu      sync.Mutex
	data    map[string][]string
	saves   map[string]int
	loadErr error
	saveErr error
}

// NewMemory creates an empty in-memory gateway.
func NewMemory() *Memory {
	return &Memory{
		data:  make(map[string][]string),
		saves: make(map[string]int),
	}
}

// Load returns a copy of the list stored under key.
func (m *Memory) Load(ctx context.Context, key string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]string(nil), m.data[key]...), nil
}

// Save replaces the list stored under key with a copy of values.
func (m *Memory) Save(ctx context.Context, key string, values []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.saves[key]++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data[key] = append([]string(nil), values...)
	return nil
}

// Seed stores values under key without counting as a save.
func (m *Memory) Seed(key string, values []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]string(nil), values...)
}

// FailLoads makes subsequent loads return err (nil restores normal
// behavior).
func (m *Memory) FailLoads(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}

// FailSaves makes subsequent saves return err (nil restores normal
// behavior). Failed saves still count toward SaveCount.
func (m *Memory) FailSaves(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// SaveCount returns how many saves were attempted for key.
func (m *Memory) SaveCount(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves[key]
}

// Values returns a copy of the list currently stored under key.
func (m *Memory) Values(key string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.data[key]...)
}
