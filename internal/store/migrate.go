package store

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS students (
		id           TEXT PRIMARY KEY,
		name         TEXT NOT NULL,
		program      TEXT NOT NULL,
		current_term INTEGER NOT NULL,
		created_at   INTEGER NOT NULL,
		updated_at   INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS student_credits (
		student_id TEXT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
		category   TEXT NOT NULL,
		credits    INTEGER NOT NULL,
		PRIMARY KEY (student_id, category)
	)`,
	`CREATE TABLE IF NOT EXISTS evaluations (
		id                  TEXT PRIMARY KEY,
		student_id          TEXT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
		program             TEXT NOT NULL,
		term                INTEGER NOT NULL,
		earned_total        INTEGER NOT NULL,
		expected_by_now     INTEGER NOT NULL,
		pending_total       INTEGER NOT NULL,
		future_locked_total INTEGER NOT NULL,
		ratio               REAL NOT NULL,
		status              TEXT NOT NULL,
		risk                TEXT NOT NULL,
		missing             TEXT NOT NULL,
		created_at          INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_evaluations_student ON evaluations(student_id, created_at)`,
}

// migrate creates all tables in a single transaction.
func migrate(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", firstLine(stmt), err)
		}
	}
	return tx.Commit()
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
