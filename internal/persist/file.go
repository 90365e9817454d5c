package persist

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// FileGateway persists all keys in one TOML document:
//
//	history = ["5+5 = 10"]
//	saved_formulas = ["3*4"]
//
// Saves are read-modify-write under a mutex and land via a temp file
// plus rename, so readers never observe a partial document.
type FileGateway struct {
	mu        sync.Mutex
	path      string
	lastWrite atomic.Int64 // unix nanos of our most recent save
}

// NewFileGateway creates a gateway backed by the TOML file at path.
// The file is created on first save; a missing file loads as empty.
func NewFileGateway(path string) *FileGateway {
	return &FileGateway{path: path}
}

// Path returns the backing file path.
func (g *FileGateway) Path() string {
	return g.path
}

// LastWrite returns the time of the gateway's most recent save, or the
// zero time if it has never saved. Watchers use it to tell self-writes
// from external modifications.
func (g *FileGateway) LastWrite() time.Time {
	ns := g.lastWrite.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}

// Load returns the list stored under key, or an empty list if the file
// or the key is absent.
func (g *FileGateway) Load(ctx context.Context, key string) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	doc, err := g.read()
	if err != nil {
		return nil, err
	}
	return doc[key], nil
}

// Save replaces the list stored under key, preserving all other keys.
func (g *FileGateway) Save(ctx context.Context, key string, values []string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	doc, err := g.read()
	if err != nil {
		return err
	}
	if doc == nil {
		doc = make(map[string][]string)
	}
	doc[key] = values

	if err := g.write(doc); err != nil {
		return err
	}
	g.lastWrite.Store(time.Now().UnixNano())
	return nil
}

// read parses the backing file. A missing file is not an error.
func (g *FileGateway) read() (map[string][]string, error) {
	data, err := os.ReadFile(g.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", g.path, err)
	}

	var doc map[string][]string
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", g.path, err)
	}
	return doc, nil
}

// write marshals the document and swaps it in atomically.
func (g *FileGateway) write(doc map[string][]string) error {
	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", g.path, err)
	}

	dir := filepath.Dir(g.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(g.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, g.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", g.path, err)
	}
	return nil
}
