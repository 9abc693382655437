// Package search keeps search input, pagination and catalog results
// consistent while requests are in flight.
package search

import (
	"context"
	"slices"
	"time"

	"github.com/lepinkainen/marquee/internal/tmdb"
	"github.com/lepinkainen/marquee/internal/trending"
)

const (
	// DefaultDebounce is the quiet period after the last keystroke before
	// the typed text drives a fetch.
	DefaultDebounce = 500 * time.Millisecond
	// DefaultTotalPages is the size of the pagination window.
	DefaultTotalPages = 5

	// FetchErrorMessage is shown for any transport failure of a search or discover call.
	FetchErrorMessage = "Error fetching movies. Please try again later."
	// TrendingErrorMessage is shown when the trending list cannot be loaded.
	TrendingErrorMessage = "Error fetching trending movies. Please try again later."
)

// Catalog is the movie catalog queried by the synchronizer.
type Catalog interface {
	SearchMovies(ctx context.Context, query string, page int) (*tmdb.MoviePage, error)
	DiscoverMovies(ctx context.Context, page int) (*tmdb.MoviePage, error)
}

// Recorder receives one event per completed, non-empty search.
type Recorder interface {
	RecordSearch(ctx context.Context, term string, top tmdb.Movie) error
}

// TrendingSource provides the ranked trending list.
type TrendingSource interface {
	Top(ctx context.Context, limit int) ([]trending.Entry, error)
}

// Query is the user's search input. RawText follows every keystroke;
// SettledText only changes once typing has paused.
type Query struct {
	RawText     string
	SettledText string
	Page        int
}

// Session is the full view state of the search screen. Results and Err
// are never both set once a fetch has resolved.
type Session struct {
	Query      Query
	TotalPages int
	Results    []tmdb.Movie
	Loading    bool
	Err        string
}

// Window returns the pagination window for the session.
func (s Session) Window() PageWindow {
	return PageWindow{Current: s.Query.Page, Total: s.TotalPages}
}

func (s Session) clone() Session {
	s.Results = slices.Clone(s.Results)
	return s
}

// TrendingSession is the view state of the trending list.
type TrendingSession struct {
	Items  []trending.Entry
	Err    string
	Loaded bool
}
