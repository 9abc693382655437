// Package trending records completed searches and ranks them by how often
// they were made.
package trending

import (
	"context"
	"errors"
	"strings"

	"github.com/lepinkainen/marquee/internal/tmdb"
)

const (
	// DefaultLimit is the size of the ranked list when no limit is given.
	DefaultLimit = 5

	posterBaseURL = "https://image.tmdb.org/t/p/w500"
)

// ErrEmptyTerm is returned when a search term normalizes to nothing.
var ErrEmptyTerm = errors.New("trending: empty search term")

// Entry is one ranked trending search with the movie it currently points at.
type Entry struct {
	Rank       int    `json:"rank" yaml:"rank"`
	SearchTerm string `json:"search_term" yaml:"search_term"`
	Count      int64  `json:"count" yaml:"count"`
	MovieID    int    `json:"movie_id" yaml:"movie_id"`
	Title      string `json:"title" yaml:"title"`
	PosterPath string `json:"poster_path,omitempty" yaml:"poster_path,omitempty"`
}

// PosterURL returns the w500 poster URL, or "" when the movie has no poster.
func (e Entry) PosterURL() string {
	if e.PosterPath == "" {
		return ""
	}
	return posterBaseURL + e.PosterPath
}

// Store is a counter store keyed by normalized search text.
type Store interface {
	// RecordSearch increments the counter for term and associates it with
	// top. Every call increments.
	RecordSearch(ctx context.Context, term string, top tmdb.Movie) error

	// Top returns at most limit entries, highest count first, ranked from 1.
	Top(ctx context.Context, limit int) ([]Entry, error)

	// Clear removes all counters and returns how many terms were dropped.
	Clear(ctx context.Context) (int64, error)

	Close() error
}

// NormalizeTerm lower-cases term and collapses all whitespace runs.
func NormalizeTerm(term string) string {
	return strings.Join(strings.Fields(strings.ToLower(term)), " ")
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}

func assignRanks(entries []Entry) []Entry {
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
