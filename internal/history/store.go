// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a SQLite log of completed image searches. The log
// is write-mostly: it is listed and exported, never read back to answer a
// search.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pixabay-gallery/internal/gallery"
	"github.com/pdiddy/pixabay-gallery/pkg/types"
)

const defaultMaxResults = 20

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Entry is one logged fetch.
type Entry struct {
	ID        int64     `json:"id" yaml:"id"`
	Query     string    `json:"query" yaml:"query"`
	Page      int       `json:"page" yaml:"page"`
	Hits      int       `json:"hits" yaml:"hits"`
	TotalHits int       `json:"total_hits" yaml:"total_hits"`
	Outcome   string    `json:"outcome" yaml:"outcome"`
	Error     string    `json:"error,omitempty" yaml:"error,omitempty"`
	At        time.Time `json:"at" yaml:"at"`
}

// QueryStats summarises all fetches for one query text.
type QueryStats struct {
	Query     string    `json:"query" yaml:"query"`
	Fetches   int       `json:"fetches" yaml:"fetches"`
	MaxPage   int       `json:"max_page" yaml:"max_page"`
	TotalHits int       `json:"total_hits" yaml:"total_hits"`
	LastAt    time.Time `json:"last_at" yaml:"last_at"`
}

// Store manages the history SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the database at cfg.DBPath and creates the
// schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("history database path is empty")
	}
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS fetches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			query TEXT NOT NULL,
			page INTEGER NOT NULL,
			hits INTEGER NOT NULL,
			total_hits INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			error TEXT,
			at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fetches_query ON fetches(query)`,
		`CREATE INDEX IF NOT EXISTS idx_fetches_at ON fetches(at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends f to the log. It satisfies gallery.Recorder.
func (s *Store) Record(ctx context.Context, f gallery.Fetch) error {
	at := f.At
	if at.IsZero() {
		at = time.Now()
	}
	var errText sql.NullString
	if f.Err != nil {
		errText = sql.NullString{String: f.Err.Error(), Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO fetches (query, page, hits, total_hits, outcome, error, at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		f.Query, f.Page, f.Hits, f.TotalHits, string(f.Outcome), errText,
		at.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting fetch: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first. A limit of zero uses
// the configured default.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query, page, hits, total_hits, outcome, error, at
		 FROM fetches ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying fetches: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e       Entry
			errText sql.NullString
			at      string
		)
		if err := rows.Scan(&e.ID, &e.Query, &e.Page, &e.Hits, &e.TotalHits, &e.Outcome, &errText, &at); err != nil {
			return nil, fmt.Errorf("scanning fetch: %w", err)
		}
		e.Error = errText.String
		if t, parseErr := time.Parse(timeLayout, at); parseErr == nil {
			e.At = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Queries returns per-query statistics, most recently used first.
func (s *Store) Queries(ctx context.Context, limit int) ([]QueryStats, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT query, count(*), max(page), max(total_hits), max(at)
		 FROM fetches GROUP BY query ORDER BY max(at) DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying query stats: %w", err)
	}
	defer rows.Close()

	var stats []QueryStats
	for rows.Next() {
		var (
			q  QueryStats
			at string
		)
		if err := rows.Scan(&q.Query, &q.Fetches, &q.MaxPage, &q.TotalHits, &at); err != nil {
			return nil, fmt.Errorf("scanning query stats: %w", err)
		}
		if t, parseErr := time.Parse(timeLayout, at); parseErr == nil {
			q.LastAt = t
		}
		stats = append(stats, q)
	}
	return stats, rows.Err()
}
