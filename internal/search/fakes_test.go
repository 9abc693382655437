package search

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/lepinkainen/marquee/internal/tmdb"
	"github.com/lepinkainen/marquee/internal/trending"
)

type catalogCall struct {
	kind  string
	query string
	page  int
}

type catalogHandler func(ctx context.Context, call catalogCall) (*tmdb.MoviePage, error)

type fakeCatalog struct {
	mu      sync.Mutex
	calls   []catalogCall
	handler catalogHandler
}

func (f *fakeCatalog) SearchMovies(ctx context.Context, query string, page int) (*tmdb.MoviePage, error) {
	return f.serve(ctx, catalogCall{kind: "search", query: query, page: page})
}

func (f *fakeCatalog) DiscoverMovies(ctx context.Context, page int) (*tmdb.MoviePage, error) {
	return f.serve(ctx, catalogCall{kind: "discover", page: page})
}

func (f *fakeCatalog) serve(ctx context.Context, call catalogCall) (*tmdb.MoviePage, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	handler := f.handler
	f.mu.Unlock()

	if handler != nil {
		return handler(ctx, call)
	}
	return pageFor(call), nil
}

func (f *fakeCatalog) setHandler(h catalogHandler) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handler = h
}

func (f *fakeCatalog) Calls() []catalogCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]catalogCall(nil), f.calls...)
}

func (f *fakeCatalog) countKind(kind string) int {
	n := 0
	for _, c := range f.Calls() {
		if c.kind == kind {
			n++
		}
	}
	return n
}

func (f *fakeCatalog) last() catalogCall {
	calls := f.Calls()
	if len(calls) == 0 {
		return catalogCall{}
	}
	return calls[len(calls)-1]
}

// pageFor returns one movie whose title identifies the call that produced it.
func pageFor(call catalogCall) *tmdb.MoviePage {
	title := fmt.Sprintf("Popular %d", call.page)
	id := 1000 + call.page
	if call.kind == "search" {
		title = fmt.Sprintf("%s %d", call.query, call.page)
		id = len(call.query)*100 + call.page
	}
	return &tmdb.MoviePage{
		Page:         call.page,
		Results:      []tmdb.Movie{{ID: id, Title: title}},
		TotalPages:   10,
		TotalResults: 200,
	}
}

type recordedSearch struct {
	term string
	top  tmdb.Movie
}

type fakeRecorder struct {
	mu      sync.Mutex
	records []recordedSearch
	err     error
}

func (f *fakeRecorder) RecordSearch(_ context.Context, term string, top tmdb.Movie) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, recordedSearch{term: term, top: top})
	return f.err
}

func (f *fakeRecorder) Records() []recordedSearch {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedSearch(nil), f.records...)
}

type fakeTrendingSource struct {
	mu      sync.Mutex
	entries []trending.Entry
	err     error
	calls   int
}

func (f *fakeTrendingSource) Top(_ context.Context, limit int) ([]trending.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if len(f.entries) > limit {
		return append([]trending.Entry(nil), f.entries[:limit]...), nil
	}
	return append([]trending.Entry(nil), f.entries...), nil
}

func (f *fakeTrendingSource) set(entries []trending.Entry, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = entries
	f.err = err
}

func (f *fakeTrendingSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
