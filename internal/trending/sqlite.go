package trending

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/lepinkainen/marquee/internal/tmdb"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps trending counters in a local SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// NewSQLiteStore opens (creating if needed) the database at dbPath and
// ensures the counters table exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trending database: %w", err)
	}

	// Single writer; record calls arrive from background goroutines.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to connect to trending database: %w", err), closeErr)
	}

	if _, err := db.Exec(SearchCountsSchema); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to create trending table: %w", err), closeErr)
	}

	return &SQLiteStore{
		db:   db,
		path: dbPath,
	}, nil
}

// RecordSearch increments the counter for the normalized term.
func (s *SQLiteStore) RecordSearch(ctx context.Context, term string, top tmdb.Movie) error {
	key := NormalizeTerm(term)
	if key == "" {
		return ErrEmptyTerm
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, upsertSearchSQL, key, top.ID, top.Title, top.PosterPath); err != nil {
		return fmt.Errorf("failed to record search %q: %w", key, err)
	}
	return nil
}

// Top returns the most searched terms.
func (s *SQLiteStore) Top(ctx context.Context, limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, topSearchesSQL, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query trending searches: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := make([]Entry, 0, normalizeLimit(limit))
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.SearchTerm, &e.Count, &e.MovieID, &e.Title, &e.PosterPath); err != nil {
			return nil, fmt.Errorf("failed to scan trending row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read trending rows: %w", err)
	}

	return assignRanks(entries), nil
}

// Clear deletes every counter.
func (s *SQLiteStore) Clear(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, "DELETE FROM search_counts")
	if err != nil {
		return 0, fmt.Errorf("failed to delete trending entries: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	slog.Debug("Trending counters cleared", "database", s.path, "rows_deleted", rowsAffected)
	return rowsAffected, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
