package store

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"sync"

	"gibberish/internal/gibberish"
)

// MemoryStore is an in-memory implementation of the Store interface.
// It is safe for concurrent use and is mostly useful for testing.
type MemoryStore struct {
	files map[string][]byte
	mu    sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{files: make(map[string][]byte)}
}

// Exists reports whether name is present.
func (m *MemoryStore) Exists(name string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.files[name]
	return ok, nil
}

// Get writes the content of name to w.
func (m *MemoryStore) Get(name string, w io.Writer) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.files[name]
	if !ok {
		return &gibberish.NotFoundError{Path: name}
	}

	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write content: %w", err)
	}
	return nil
}

// Put stores size bytes read from r under name.
func (m *MemoryStore) Put(name string, r io.Reader, size int64) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read content: %w", err)
	}

	if int64(len(data)) != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, len(data))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[name] = data
	return nil
}

// ValidateSetup always succeeds for the in-memory store.
func (m *MemoryStore) ValidateSetup() error {
	return nil
}

// Names returns the stored names in sorted order.
func (m *MemoryStore) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.files))
	for name := range m.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Compile-time check that MemoryStore implements gibberish.Store interface
var _ gibberish.Store = (*MemoryStore)(nil)
