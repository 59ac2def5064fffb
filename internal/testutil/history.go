package testutil

import (
	"testing"

	"gibberish/internal/database"
	"gibberish/internal/gibberish"
)

// NewTestHistory creates an in-memory SQLite history with the schema applied.
// It is closed automatically when the test completes.
func NewTestHistory(t *testing.T) gibberish.History {
	t.Helper()

	h, err := database.NewSQLiteHistory(":memory:")
	if err != nil {
		t.Fatalf("failed to open history: %v", err)
	}

	t.Cleanup(func() {
		h.Close()
	})

	return h
}
