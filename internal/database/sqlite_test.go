package database

import (
	"path/filepath"
	"testing"
	"time"

	"gibberish/internal/gibberish"
)

func newTestHistory(t *testing.T) *SQLiteHistory {
	t.Helper()
	h, err := NewSQLiteHistory(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteHistory() error = %v", err)
	}
	t.Cleanup(func() { h.Close() })
	return h
}

func testOperation(id, mode, status string, started time.Time) *gibberish.Operation {
	return &gibberish.Operation{
		InvocationID: id,
		Mode:         mode,
		Input:        "report.pdf",
		Target:       "report.gibberish",
		Status:       status,
		StartedAt:    started,
		FinishedAt:   started.Add(250 * time.Millisecond),
	}
}

func TestSQLiteHistory_RecordAndList(t *testing.T) {
	h := newTestHistory(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first := testOperation("inv-1", gibberish.ModeEncode, gibberish.StatusSuccess, base)
	second := testOperation("inv-2", gibberish.ModeDecode, gibberish.StatusError, base.Add(time.Minute))
	second.Error = "failed to decode gibberish"

	for _, op := range []*gibberish.Operation{first, second} {
		if err := h.RecordOperation(op); err != nil {
			t.Fatalf("RecordOperation(%s) error = %v", op.InvocationID, err)
		}
		if op.ID == 0 {
			t.Errorf("RecordOperation(%s) did not set ID", op.InvocationID)
		}
	}

	ops, err := h.ListOperations(10)
	if err != nil {
		t.Fatalf("ListOperations() error = %v", err)
	}
	if len(ops) != 2 {
		t.Fatalf("ListOperations() returned %d operations, want 2", len(ops))
	}

	got := ops[0]
	if got.InvocationID != "inv-2" {
		t.Errorf("ListOperations()[0].InvocationID = %q, want %q (newest first)", got.InvocationID, "inv-2")
	}
	if got.Mode != gibberish.ModeDecode || got.Status != gibberish.StatusError {
		t.Errorf("ListOperations()[0] mode/status = %s/%s, want decode/error", got.Mode, got.Status)
	}
	if got.Error != "failed to decode gibberish" {
		t.Errorf("ListOperations()[0].Error = %q", got.Error)
	}
	if !got.StartedAt.Equal(second.StartedAt) {
		t.Errorf("ListOperations()[0].StartedAt = %v, want %v", got.StartedAt, second.StartedAt)
	}
	if !got.FinishedAt.Equal(second.FinishedAt) {
		t.Errorf("ListOperations()[0].FinishedAt = %v, want %v", got.FinishedAt, second.FinishedAt)
	}
}

func TestSQLiteHistory_ListLimit(t *testing.T) {
	h := newTestHistory(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c", "d"} {
		op := testOperation(id, gibberish.ModeEncode, gibberish.StatusSuccess, base.Add(time.Duration(i)*time.Second))
		if err := h.RecordOperation(op); err != nil {
			t.Fatalf("RecordOperation(%s) error = %v", id, err)
		}
	}

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{name: "limited", limit: 2, want: []string{"d", "c"}},
		{name: "larger than table", limit: 10, want: []string{"d", "c", "b", "a"}},
		{name: "zero means all", limit: 0, want: []string{"d", "c", "b", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops, err := h.ListOperations(tt.limit)
			if err != nil {
				t.Fatalf("ListOperations(%d) error = %v", tt.limit, err)
			}
			if len(ops) != len(tt.want) {
				t.Fatalf("ListOperations(%d) returned %d operations, want %d", tt.limit, len(ops), len(tt.want))
			}
			for i, op := range ops {
				if op.InvocationID != tt.want[i] {
					t.Errorf("ops[%d].InvocationID = %q, want %q", i, op.InvocationID, tt.want[i])
				}
			}
		})
	}
}

func TestSQLiteHistory_DuplicateInvocation(t *testing.T) {
	h := newTestHistory(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if err := h.RecordOperation(testOperation("dup", gibberish.ModeEncode, gibberish.StatusSuccess, now)); err != nil {
		t.Fatalf("RecordOperation() error = %v", err)
	}
	if err := h.RecordOperation(testOperation("dup", gibberish.ModeEncode, gibberish.StatusSuccess, now)); err == nil {
		t.Error("RecordOperation() with duplicate invocation id expected error, got nil")
	}
}

func TestSQLiteHistory_RejectsUnknownStatus(t *testing.T) {
	h := newTestHistory(t)
	op := testOperation("x", gibberish.ModeEncode, "pending", time.Now())

	if err := h.RecordOperation(op); err == nil {
		t.Error("RecordOperation() with unknown status expected error, got nil")
	}
}

func TestSQLiteHistory_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), HistoryFileName)

	h, err := NewSQLiteHistory(path)
	if err != nil {
		t.Fatalf("NewSQLiteHistory() error = %v", err)
	}
	if err := h.RecordOperation(testOperation("kept", gibberish.ModeEncode, gibberish.StatusSuccess, time.Now())); err != nil {
		t.Fatalf("RecordOperation() error = %v", err)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	h, err = NewSQLiteHistory(path)
	if err != nil {
		t.Fatalf("reopening NewSQLiteHistory() error = %v", err)
	}
	defer h.Close()

	ops, err := h.ListOperations(0)
	if err != nil {
		t.Fatalf("ListOperations() error = %v", err)
	}
	if len(ops) != 1 || ops[0].InvocationID != "kept" {
		t.Errorf("ListOperations() after reopen = %v, want single 'kept' operation", ops)
	}
}

func TestNopHistory(t *testing.T) {
	var h gibberish.History = NopHistory{}

	if err := h.RecordOperation(&gibberish.Operation{InvocationID: "x"}); err != nil {
		t.Errorf("RecordOperation() error = %v", err)
	}
	ops, err := h.ListOperations(5)
	if err != nil {
		t.Errorf("ListOperations() error = %v", err)
	}
	if len(ops) != 0 {
		t.Errorf("ListOperations() = %v, want empty", ops)
	}
}
