package search

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/lepinkainen/marquee/internal/trending"
)

// TrendingSynchronizer loads the ranked trending list. Its error is kept
// apart from the search session's error.
type TrendingSynchronizer struct {
	source TrendingSource
	limit  int
	logger *slog.Logger

	loadOnce sync.Once
	fetchMu  sync.Mutex

	mu      sync.RWMutex
	session TrendingSession
}

// TrendingOption configures a TrendingSynchronizer.
type TrendingOption func(*TrendingSynchronizer)

// WithTrendingLogger sets the logger used for diagnostics.
func WithTrendingLogger(logger *slog.Logger) TrendingOption {
	return func(t *TrendingSynchronizer) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// NewTrending creates a TrendingSynchronizer returning at most limit entries.
func NewTrending(source TrendingSource, limit int, opts ...TrendingOption) *TrendingSynchronizer {
	if limit <= 0 {
		limit = trending.DefaultLimit
	}
	t := &TrendingSynchronizer{
		source: source,
		limit:  limit,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Load fetches the trending list the first time it is called. Later calls
// return immediately; use Reload to fetch again.
func (t *TrendingSynchronizer) Load(ctx context.Context) TrendingSession {
	t.loadOnce.Do(func() {
		t.fetch(ctx)
	})
	return t.Snapshot()
}

// Reload fetches the trending list unconditionally.
func (t *TrendingSynchronizer) Reload(ctx context.Context) TrendingSession {
	t.fetch(ctx)
	return t.Snapshot()
}

// Snapshot returns a copy of the current trending state.
func (t *TrendingSynchronizer) Snapshot() TrendingSession {
	t.mu.RLock()
	defer t.mu.RUnlock()
	snap := t.session
	snap.Items = slices.Clone(snap.Items)
	return snap
}

func (t *TrendingSynchronizer) fetch(ctx context.Context) {
	t.fetchMu.Lock()
	defer t.fetchMu.Unlock()

	items, err := t.source.Top(ctx, t.limit)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.session.Loaded = true
	if err != nil {
		t.logger.Warn("Failed to load trending searches", "error", err)
		t.session.Err = TrendingErrorMessage
		return
	}
	if items == nil {
		items = []trending.Entry{}
	}
	t.session.Items = items
	t.session.Err = ""
}
