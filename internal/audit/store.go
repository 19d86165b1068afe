package audit

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Store is a SQLite-backed decision log.
// Uses WAL mode so readers are not blocked by the single writer.
type Store struct {
	db *sql.DB
}

// Open creates or opens the decision log at path. Pragmas and schema
// are applied on every open; the function is idempotent.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite allows one writer; keep a single connection to avoid
	// SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record writes a decision. Re-recording the same decision is a no-op:
// content addressing makes the id the idempotency key.
func (s *Store) Record(ctx context.Context, d Decision) error {
	outcome := 0
	if d.Outcome {
		outcome = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO decisions (id, session, seq, relation, lhs, rhs, outcome)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Session, d.Seq, d.Relation, d.LHS, d.RHS, outcome)
	if err != nil {
		return fmt.Errorf("failed to record decision %s: %w", d.ID, err)
	}
	return nil
}

// List returns a session's decisions in logical-clock order.
func (s *Store) List(ctx context.Context, session string) ([]Decision, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session, seq, relation, lhs, rhs, outcome
		FROM decisions WHERE session = ? ORDER BY seq`, session)
	if err != nil {
		return nil, fmt.Errorf("failed to query decisions: %w", err)
	}
	defer rows.Close()

	var out []Decision
	for rows.Next() {
		var d Decision
		var outcome int
		if err := rows.Scan(&d.ID, &d.Session, &d.Seq, &d.Relation, &d.LHS, &d.RHS, &outcome); err != nil {
			return nil, fmt.Errorf("failed to scan decision: %w", err)
		}
		d.Outcome = outcome != 0
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read decisions: %w", err)
	}
	return out, nil
}

// applyPragmas sets the required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}
