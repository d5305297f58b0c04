// Package storage persists one JSON document per record under a root
// directory. No separate index file exists: the in-memory id index is
// rebuilt by scanning the root on startup, skipping files that fail to
// decode so a single corrupt record never blocks the whole store.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/kmccarty/recordvault/internal/model"
)

// ErrNotFound is returned when no record exists for an id.
var ErrNotFound = errors.New("record not found")

// ErrInvalidID is returned for ids that cannot name a record file.
var ErrInvalidID = errors.New("invalid record id")

const fileExt = ".json"

// Manager owns the record files under one root directory.
type Manager struct {
	root string
	log  *slog.Logger

	mu    sync.RWMutex
	index map[string]bool

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewManager opens (creating if needed) the root directory and rebuilds
// the id index from the files found there.
func NewManager(root string, log *slog.Logger) (*Manager, error) {
	if log == nil {
		log = slog.Default()
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create root: %w", err)
	}
	m := &Manager{
		root:  root,
		log:   log,
		index: make(map[string]bool),
		locks: make(map[string]*sync.Mutex),
	}
	if err := m.scan(); err != nil {
		return nil, fmt.Errorf("scan root: %w", err)
	}
	return m, nil
}

// Root returns the root directory path.
func (m *Manager) Root() string { return m.root }

func (m *Manager) scan() error {
	entries, err := os.ReadDir(m.root)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		rec, err := m.read(filepath.Join(m.root, e.Name()))
		if err != nil {
			m.log.Warn("skipping unreadable record file", "file", e.Name(), "error", err)
			continue
		}
		m.index[rec.ID] = true
	}
	return nil
}

func validID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty", ErrInvalidID)
	}
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

func (m *Manager) path(id string) string {
	return filepath.Join(m.root, id+fileExt)
}

func (m *Manager) idLock(id string) *sync.Mutex {
	m.locksMu.Lock()
	defer m.locksMu.Unlock()
	l, ok := m.locks[id]
	if !ok {
		l = &sync.Mutex{}
		m.locks[id] = l
	}
	return l
}

// Store writes the record file atomically (temp file + rename) and
// updates the index. Writes to the same id are serialized.
func (m *Manager) Store(rec *model.Record) error {
	if err := validID(rec.ID); err != nil {
		return err
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode record %s: %w", rec.ID, err)
	}

	lock := m.idLock(rec.ID)
	lock.Lock()
	defer lock.Unlock()

	tmp, err := os.CreateTemp(m.root, rec.ID+".tmp-")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write record %s: %w", rec.ID, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close record %s: %w", rec.ID, err)
	}
	if err := os.Rename(tmpName, m.path(rec.ID)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename record %s: %w", rec.ID, err)
	}

	m.mu.Lock()
	m.index[rec.ID] = true
	m.mu.Unlock()
	return nil
}

// Get loads a record by id. The content is returned exactly as
// persisted; callers decode compressed or sealed payloads themselves.
func (m *Manager) Get(id string) (*model.Record, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	m.mu.RLock()
	known := m.index[id]
	m.mu.RUnlock()
	if !known {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	rec, err := m.read(m.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("load record %s: %w", id, err)
	}
	return rec, nil
}

func (m *Manager) read(path string) (*model.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rec model.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if rec.ID == "" {
		return nil, fmt.Errorf("decode: missing id")
	}
	return &rec, nil
}

// Has reports whether a record exists for the id.
func (m *Manager) Has(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.index[id]
}

// IDs returns all known ids in sorted order. The sorted order is the
// stable encounter order search results tie-break on.
func (m *Manager) IDs() []string {
	m.mu.RLock()
	ids := make([]string, 0, len(m.index))
	for id := range m.index {
		ids = append(ids, id)
	}
	m.mu.RUnlock()
	sort.Strings(ids)
	return ids
}

// Count returns the number of indexed records.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.index)
}

// List returns records matching the filters. Both filters are
// exact-match and combine with AND semantics; empty filters match all.
// Records that can no longer be loaded are skipped, not fatal.
func (m *Manager) List(category, kind string) ([]model.Record, error) {
	var out []model.Record
	for _, id := range m.IDs() {
		rec, err := m.read(m.path(id))
		if err != nil {
			m.log.Warn("skipping unreadable record", "id", id, "error", err)
			continue
		}
		if category != "" && rec.Metadata.Category != category {
			continue
		}
		if kind != "" && rec.Metadata.Kind != kind {
			continue
		}
		out = append(out, *rec)
	}
	return out, nil
}

// DiskUsage sums the sizes of all record files under the root.
func (m *Manager) DiskUsage() (int64, error) {
	entries, err := os.ReadDir(m.root)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		total += info.Size()
	}
	return total, nil
}
