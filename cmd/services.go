package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/lepinkainen/marquee/internal/config"
	"github.com/lepinkainen/marquee/internal/tmdb"
	"github.com/lepinkainen/marquee/internal/trending"
	"github.com/lepinkainen/marquee/internal/tui"
)

var (
	newCatalog = func() *tmdb.Client {
		return tmdb.NewClient(config.TMDBAPIKey,
			tmdb.WithBaseURL(config.TMDBBaseURL),
			tmdb.WithImageBaseURL(config.TMDBImageBaseURL),
		)
	}
	openStore = func(ctx context.Context) (trending.Store, error) {
		return trending.Open(ctx, trending.Options{
			Backend:  config.TrendingBackend,
			DBFile:   config.TrendingDBFile,
			RedisURL: config.TrendingRedisURL,
		})
	}
	runBrowser = tui.Browse

	stdout io.Writer = os.Stdout
)

// unavailableStore stands in for a trending store that could not be
// opened. Searches keep working; every trending call reports err.
type unavailableStore struct {
	err error
}

func (u unavailableStore) RecordSearch(context.Context, string, tmdb.Movie) error { return u.err }
func (u unavailableStore) Top(context.Context, int) ([]trending.Entry, error)    { return nil, u.err }
func (u unavailableStore) Clear(context.Context) (int64, error)                  { return 0, u.err }
func (u unavailableStore) Close() error                                          { return nil }

// openStoreOrDegrade opens the trending store, falling back to an
// unavailable store so that search does not depend on it.
func openStoreOrDegrade(ctx context.Context) trending.Store {
	store, err := openStore(ctx)
	if err != nil {
		slog.Warn("Trending store unavailable", "backend", config.TrendingBackend, "error", err)
		return unavailableStore{err: err}
	}
	return store
}

// closeStore closes the trending store, logging instead of failing the
// command since its output has already been written.
func closeStore(store trending.Store) {
	if err := store.Close(); err != nil {
		slog.Warn("Failed to close trending store", "backend", config.TrendingBackend, "error", err)
	}
}
