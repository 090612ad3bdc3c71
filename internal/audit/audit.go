// Package audit is an optional evaluation log for cmd/ridectl's --audit
// flag: each call to Log.Write records a request id, the expression's
// resolved type and result (or the diagnostic that aborted
// resolution/evaluation), and a timestamp. It is wired to modernc.org/sqlite — declared in the pack but
// never exercised by funvibe-funxy's own source — through the standard
// library's database/sql, the only idiomatic way to drive that driver.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Log writes evaluation outcomes to a SQLite database.
type Log struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at path and ensures its
// schema exists.
func Open(path string) (*Log, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("audit: open %s: %w", path, err)
	}
	const schema = `
CREATE TABLE IF NOT EXISTS evaluations (
	id          TEXT PRIMARY KEY,
	recorded_at TEXT NOT NULL,
	result_type TEXT,
	result      TEXT,
	error       TEXT
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("audit: create schema: %w", err)
	}
	return &Log{db: db}, nil
}

func (l *Log) Close() error { return l.db.Close() }

// Record is one evaluation outcome. On success ResultType and Result are
// set and Err is nil; on failure Err is set, Result is empty, and
// ResultType holds the resolved type when only evaluation failed.
type Record struct {
	RequestID  string
	ResultType string
	Result     string
	Err        error
}

// Write inserts r, timestamped at call time.
func (l *Log) Write(ctx context.Context, r Record) error {
	var errMsg sql.NullString
	if r.Err != nil {
		errMsg = sql.NullString{String: r.Err.Error(), Valid: true}
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO evaluations (id, recorded_at, result_type, result, error) VALUES (?, ?, ?, ?, ?)`,
		r.RequestID, time.Now().UTC().Format(time.RFC3339Nano), r.ResultType, r.Result, errMsg,
	)
	if err != nil {
		return fmt.Errorf("audit: insert: %w", err)
	}
	return nil
}
