package trending

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/marquee/internal/tmdb"
)

// Requires a disposable Redis instance; the test clears the trending keys.
func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	url := os.Getenv("MARQUEE_TEST_REDIS_URL")
	if url == "" {
		t.Skip("MARQUEE_TEST_REDIS_URL not set")
	}
	store, err := OpenRedis(context.Background(), url)
	require.NoError(t, err)
	_, err = store.Clear(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = store.Clear(context.Background())
		_ = store.Close()
	})
	return store
}

func TestRedisStore_RecordAndTop(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.RecordSearch(ctx, "Dune", tmdb.Movie{ID: 438631, Title: "Dune", PosterPath: "/dune.jpg"}))
	require.NoError(t, store.RecordSearch(ctx, "dune", tmdb.Movie{ID: 438631, Title: "Dune", PosterPath: "/dune.jpg"}))
	require.NoError(t, store.RecordSearch(ctx, "heat", tmdb.Movie{ID: 949, Title: "Heat"}))
	require.NoError(t, store.RecordSearch(ctx, "alien", tmdb.Movie{ID: 348, Title: "Alien"}))

	entries, err := store.Top(ctx, 5)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "dune", entries[0].SearchTerm)
	assert.Equal(t, int64(2), entries[0].Count)
	assert.Equal(t, 438631, entries[0].MovieID)
	assert.Equal(t, "/dune.jpg", entries[0].PosterPath)
	assert.Equal(t, "alien", entries[1].SearchTerm)
	assert.Equal(t, "heat", entries[2].SearchTerm)
	assert.Equal(t, 3, entries[2].Rank)
}

func TestRedisStore_Clear(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.RecordSearch(ctx, "dune", tmdb.Movie{ID: 1, Title: "Dune"}))

	deleted, err := store.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	entries, err := store.Top(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRedisStore_TopBreaksTiesAtLimit(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.RecordSearch(ctx, "dune", tmdb.Movie{ID: 1, Title: "Dune"}))
	require.NoError(t, store.RecordSearch(ctx, "dune", tmdb.Movie{ID: 1, Title: "Dune"}))
	for _, term := range []string{"zodiac", "heat", "alien"} {
		require.NoError(t, store.RecordSearch(ctx, term, tmdb.Movie{ID: len(term), Title: term}))
	}

	entries, err := store.Top(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "dune", entries[0].SearchTerm)
	assert.Equal(t, "alien", entries[1].SearchTerm)
	assert.Equal(t, 2, entries[1].Rank)
}
