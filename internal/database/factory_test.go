package database

import (
	"os"
	"path/filepath"
	"testing"

	"gibberish/internal/config"
)

func TestNewHistoryFromConfig(t *testing.T) {
	t.Run("sqlite", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "db")
		h, err := NewHistoryFromConfig(config.HistoryConfig{Type: "sqlite", DataDir: dir})
		if err != nil {
			t.Fatalf("NewHistoryFromConfig() error = %v", err)
		}
		defer h.Close()

		if _, ok := h.(*SQLiteHistory); !ok {
			t.Errorf("NewHistoryFromConfig() returned %T, want *SQLiteHistory", h)
		}
		if _, err := os.Stat(filepath.Join(dir, HistoryFileName)); err != nil {
			t.Errorf("history file not created: %v", err)
		}
	})

	t.Run("sqlite without data dir", func(t *testing.T) {
		if _, err := NewHistoryFromConfig(config.HistoryConfig{Type: "sqlite"}); err == nil {
			t.Error("NewHistoryFromConfig() expected error for missing data_dir, got nil")
		}
	})

	t.Run("memory", func(t *testing.T) {
		h, err := NewHistoryFromConfig(config.HistoryConfig{Type: "memory"})
		if err != nil {
			t.Fatalf("NewHistoryFromConfig() error = %v", err)
		}
		defer h.Close()
		if _, ok := h.(*SQLiteHistory); !ok {
			t.Errorf("NewHistoryFromConfig() returned %T, want *SQLiteHistory", h)
		}
	})

	t.Run("none", func(t *testing.T) {
		h, err := NewHistoryFromConfig(config.HistoryConfig{Type: "none"})
		if err != nil {
			t.Fatalf("NewHistoryFromConfig() error = %v", err)
		}
		if _, ok := h.(NopHistory); !ok {
			t.Errorf("NewHistoryFromConfig() returned %T, want NopHistory", h)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, err := NewHistoryFromConfig(config.HistoryConfig{Type: "postgres"}); err == nil {
			t.Error("NewHistoryFromConfig() expected error for unknown type, got nil")
		}
	})
}
