// Package history records completed count runs in a local SQLite database so
// past results can be listed and compared. Only run summaries are stored; the
// partition itself is transient and rebuilt from input each run.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// schema contains the DDL executed on first open. Using IF NOT EXISTS makes
// it safe to run on every startup.
const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    nodes_source     TEXT NOT NULL,
    conns_source     TEXT NOT NULL,
    node_count       INTEGER NOT NULL,
    connection_count INTEGER NOT NULL,
    set_count        INTEGER NOT NULL,
    duration_ms      INTEGER NOT NULL,
    created_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Run is one recorded count run.
type Run struct {
	ID              int64
	NodesSource     string // node file or manifest path
	ConnsSource     string // connection file path, or the manifest path again
	NodeCount       int
	ConnectionCount int
	SetCount        int
	Duration        time.Duration
	CreatedAt       time.Time
}

// Store is a SQLite-backed run log.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the run log at dbPath, enables WAL mode and a busy
// timeout, and creates the parent directory and schema if they do not exist.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("history: creating directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}

	// SQLite supports a single writer; one connection avoids SQLITE_BUSY
	// contention between pooled connections that each need PRAGMA setup.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Record appends a run to the log and returns its assigned ID.
func (s *Store) Record(ctx context.Context, run Run) (int64, error) {
	const q = `
		INSERT INTO runs (nodes_source, conns_source, node_count, connection_count, set_count, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q,
		run.NodesSource, run.ConnsSource,
		run.NodeCount, run.ConnectionCount, run.SetCount,
		run.Duration.Milliseconds())
	if err != nil {
		return 0, fmt.Errorf("history: record run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("history: last insert id: %w", err)
	}
	return id, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
		SELECT id, nodes_source, conns_source, node_count, connection_count, set_count, duration_ms, created_at
		FROM runs ORDER BY id DESC LIMIT ?`
	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("history: query recent runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMS int64
		if err := rows.Scan(&r.ID, &r.NodesSource, &r.ConnsSource,
			&r.NodeCount, &r.ConnectionCount, &r.SetCount,
			&durationMS, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("history: scan run: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: iterate runs: %w", err)
	}
	return runs, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
