package database

import (
	"database/sql"
	"fmt"

	"gibberish/internal/database/migrations"
	"gibberish/internal/gibberish"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteHistory implements gibberish.History using SQLite.
type SQLiteHistory struct {
	db   *sql.DB
	path string
}

// NewSQLiteHistory opens the history database at path and brings its schema
// up to date. path can be a file path or ":memory:".
func NewSQLiteHistory(path string) (*SQLiteHistory, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating history database: %w", err)
	}
	if err := migrations.CheckDBMigrationStatus(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("history schema out of date: %w", err)
	}

	return &SQLiteHistory{db: db, path: path}, nil
}

// OpenConnection opens and configures a SQLite database connection.
// path can be a file path or ":memory:" for in-memory database.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return db, nil
}

const insertOperation = `INSERT INTO operations
	(invocation_id, mode, input, target, status, error, started_at, finished_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

func (h *SQLiteHistory) RecordOperation(op *gibberish.Operation) error {
	res, err := h.db.Exec(insertOperation,
		op.InvocationID,
		op.Mode,
		op.Input,
		op.Target,
		op.Status,
		op.Error,
		op.StartedAt.UTC(),
		op.FinishedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("recording operation %s: %w", op.InvocationID, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading operation id: %w", err)
	}
	op.ID = id
	return nil
}

const listOperations = `SELECT
	id, invocation_id, mode, input, target, status, error, started_at, finished_at
	FROM operations
	ORDER BY id DESC
	LIMIT ?`

func (h *SQLiteHistory) ListOperations(limit int) ([]*gibberish.Operation, error) {
	if limit <= 0 {
		limit = -1 // SQLite treats a negative LIMIT as unbounded
	}

	rows, err := h.db.Query(listOperations, limit)
	if err != nil {
		return nil, fmt.Errorf("listing operations: %w", err)
	}
	defer rows.Close()

	var ops []*gibberish.Operation
	for rows.Next() {
		op := &gibberish.Operation{}
		if err := rows.Scan(
			&op.ID,
			&op.InvocationID,
			&op.Mode,
			&op.Input,
			&op.Target,
			&op.Status,
			&op.Error,
			&op.StartedAt,
			&op.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning operation: %w", err)
		}
		ops = append(ops, op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing operations: %w", err)
	}
	return ops, nil
}

func (h *SQLiteHistory) Close() error {
	return h.db.Close()
}

var _ gibberish.History = (*SQLiteHistory)(nil)
