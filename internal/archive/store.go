// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive persists a write-only audit log of pipeline runs in a
// SQLite database. The pipeline never reads the archive back; the
// curated markdown document remains the only state it depends on.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/curator/pkg/types"
)

// Store manages the run archive database.
type Store struct {
	db *sql.DB
}

// RunSummary describes one pipeline run for archival.
type RunSummary struct {
	StartedAt time.Time
	Topic     string
	Strategy  string
	Collected int
	Deduped   int
	Ranked    int
	Merged    bool
}

// Open creates or opens the archive database at path, creating the
// schema when absent.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening archive database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating archive schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			topic TEXT NOT NULL,
			strategy TEXT NOT NULL,
			collected INTEGER NOT NULL,
			deduped INTEGER NOT NULL,
			ranked INTEGER NOT NULL,
			merged INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS items (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			type TEXT NOT NULL,
			url TEXT,
			authors TEXT,
			stars INTEGER NOT NULL,
			citations INTEGER NOT NULL,
			impact REAL NOT NULL,
			PRIMARY KEY (run_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_items_title ON items(title)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RecordRun appends one run and its ranked items in a single
// transaction.
func (s *Store) RecordRun(ctx context.Context, summary RunSummary, records []types.ContentRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, topic, strategy, collected, deduped, ranked, merged)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		summary.StartedAt.UTC().Format(time.RFC3339),
		summary.Topic, summary.Strategy,
		summary.Collected, summary.Deduped, summary.Ranked,
		boolInt(summary.Merged),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO items (run_id, position, title, type, url, authors, stars, citations, impact)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing item insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		_, err := stmt.ExecContext(ctx,
			runID, i+1, rec.Title, string(rec.Type), rec.PrimaryLink(),
			strings.Join(rec.Authors, ", "),
			rec.Metrics.Stars, rec.Citations, rec.ImpactScore,
		)
		if err != nil {
			return fmt.Errorf("inserting item %d: %w", i+1, err)
		}
	}

	return tx.Commit()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
