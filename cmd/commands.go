package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/lepinkainen/marquee/internal/config"
	"github.com/lepinkainen/marquee/internal/details"
	"github.com/lepinkainen/marquee/internal/search"
)

func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func (b *BrowseCmd) Run() error {
	ctx, cancel := commandContext()
	defer cancel()

	restore := initFileLogging(config.LogFile, config.Verbose)
	defer restore()
	slog.Info("Starting browser", "backend", config.TrendingBackend, "debounce", config.SearchDebounce)

	store := openStoreOrDegrade(ctx)
	defer closeStore(store)

	client := newCatalog()
	synchronizer := search.New(client, store,
		search.WithDebounce(config.SearchDebounce),
		search.WithTotalPages(config.SearchTotalPages),
		search.WithLogger(slog.Default()),
	)
	synchronizer.Start(ctx)
	defer synchronizer.Close()

	trend := search.NewTrending(store, config.TrendingLimit)

	return runBrowser(ctx, synchronizer, trend, client)
}

func (s *SearchCmd) Run() error {
	ctx, cancel := commandContext()
	defer cancel()

	query := strings.Join(s.Query, " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("search text is required")
	}

	store := openStoreOrDegrade(ctx)
	defer closeStore(store)

	session := search.Lookup(ctx, newCatalog(), store, query, s.Page)
	session.TotalPages = config.SearchTotalPages
	if session.Err != "" {
		return errors.New(session.Err)
	}
	return writeMovies(stdout, s.Format, session)
}

func (d *DiscoverCmd) Run() error {
	ctx, cancel := commandContext()
	defer cancel()

	session := search.Lookup(ctx, newCatalog(), nil, "", d.Page)
	session.TotalPages = config.SearchTotalPages
	if session.Err != "" {
		return errors.New(session.Err)
	}
	return writeMovies(stdout, d.Format, session)
}

func (l *TrendingListCmd) Run() error {
	ctx, cancel := commandContext()
	defer cancel()

	store, err := openStore(ctx)
	if err != nil {
		return fmt.Errorf("open trending store: %w", err)
	}
	defer closeStore(store)

	limit := l.Limit
	if limit <= 0 {
		limit = config.TrendingLimit
	}

	session := search.NewTrending(store, limit).Load(ctx)
	if session.Err != "" {
		return errors.New(session.Err)
	}
	return writeTrending(stdout, l.Format, session.Items)
}

func (r *TrendingResetCmd) Run() error {
	ctx, cancel := commandContext()
	defer cancel()

	store, err := openStore(ctx)
	if err != nil {
		return fmt.Errorf("open trending store: %w", err)
	}
	defer closeStore(store)

	removed, err := store.Clear(ctx)
	if err != nil {
		return fmt.Errorf("clear trending searches: %w", err)
	}
	slog.Info("Trending searches cleared", "backend", config.TrendingBackend, "removed", removed)
	_, err = fmt.Fprintf(stdout, "Cleared %d trending searches\n", removed)
	return err
}

func (d *DetailsCmd) Run() error {
	ctx, cancel := commandContext()
	defer cancel()

	client := newCatalog()

	// The rank is a nicety; a missing store never blocks the details view.
	store := openStoreOrDegrade(ctx)
	defer closeStore(store)
	top := search.NewTrending(store, config.TrendingLimit).Load(ctx)

	view := details.Load(ctx, client, d.ID, top.Items)
	if view.Err != "" {
		return errors.New(view.Err)
	}

	if d.Poster != "" {
		if err := client.DownloadPoster(ctx, view.Movie, d.Poster, d.PosterWidth); err != nil {
			return fmt.Errorf("download poster: %w", err)
		}
		slog.Info("Poster saved", "path", d.Poster)
	}

	return writeDetails(stdout, d.Format, view)
}
