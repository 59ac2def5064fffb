package testutil

import (
	"bytes"
	"testing"

	"gibberish/internal/store"
)

// NewMemoryStore returns a MemoryStore pre-populated with files.
func NewMemoryStore(t *testing.T, files map[string][]byte) *store.MemoryStore {
	t.Helper()

	s := store.NewMemoryStore()
	for name, data := range files {
		if err := s.Put(name, bytes.NewReader(data), int64(len(data))); err != nil {
			t.Fatalf("seeding %s: %v", name, err)
		}
	}
	return s
}

// ReadFile returns the content stored under name, failing the test if it is absent.
func ReadFile(t *testing.T, s *store.MemoryStore, name string) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := s.Get(name, &buf); err != nil {
		t.Fatalf("reading %s: %v", name, err)
	}
	return buf.Bytes()
}
