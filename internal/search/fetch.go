package search

import (
	"context"
	"log/slog"

	merrors "github.com/lepinkainen/marquee/internal/errors"
	"github.com/lepinkainen/marquee/internal/tmdb"
)

type fetchKind int

const (
	kindDiscover fetchKind = iota
	kindSearch
)

func (k fetchKind) String() string {
	if k == kindSearch {
		return "search"
	}
	return "discover"
}

type fetchRequest struct {
	seq  uint64
	kind fetchKind
	text string
	page int
}

type fetchResult struct {
	req    fetchRequest
	movies []tmdb.Movie
	err    error
}

// planFetch decides which catalog query the settled input maps to.
func planFetch(seq uint64, q Query) fetchRequest {
	if q.SettledText != "" {
		return fetchRequest{seq: seq, kind: kindSearch, text: q.SettledText, page: q.Page}
	}
	return fetchRequest{seq: seq, kind: kindDiscover, page: q.Page}
}

func runFetch(ctx context.Context, catalog Catalog, req fetchRequest) fetchResult {
	var (
		page *tmdb.MoviePage
		err  error
	)
	switch req.kind {
	case kindSearch:
		page, err = catalog.SearchMovies(ctx, req.text, req.page)
	default:
		page, err = catalog.DiscoverMovies(ctx, req.page)
	}
	if err != nil {
		return fetchResult{req: req, err: err}
	}
	movies := []tmdb.Movie{}
	if page != nil && page.Results != nil {
		movies = page.Results
	}
	return fetchResult{req: req, movies: movies}
}

// shouldRecord reports whether res counts as a completed, non-empty search.
func (res fetchResult) shouldRecord() bool {
	return res.err == nil && res.req.kind == kindSearch && len(res.movies) > 0
}

// resolve replaces the session's results or error with the outcome of res.
func (s *Session) resolve(res fetchResult, logger *slog.Logger) {
	s.Loading = false
	if res.err != nil {
		s.Results = []tmdb.Movie{}
		if msg, ok := merrors.ServiceMessage(res.err); ok && msg != "" {
			s.Err = msg
			logger.Info("Catalog reported failure", "kind", res.req.kind, "page", res.req.page, "message", msg)
			return
		}
		s.Err = FetchErrorMessage
		logger.Debug("Catalog fetch failed", "kind", res.req.kind, "page", res.req.page, "error", res.err)
		return
	}
	s.Results = res.movies
	s.Err = ""
}

// Lookup performs a single fetch for text and page with the same rules the
// Synchronizer applies, recording a trending event for a non-empty search
// before returning. recorder may be nil.
func Lookup(ctx context.Context, catalog Catalog, recorder Recorder, text string, page int) Session {
	session := Session{
		Query: Query{
			RawText:     text,
			SettledText: text,
			Page:        PageWindow{}.Clamp(page),
		},
	}

	res := runFetch(ctx, catalog, planFetch(1, session.Query))
	session.resolve(res, slog.Default())

	if res.shouldRecord() && recorder != nil {
		if err := recorder.RecordSearch(ctx, text, res.movies[0]); err != nil {
			slog.Warn("Failed to record trending search", "query", text, "error", err)
		}
	}
	return session
}
