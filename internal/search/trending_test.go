package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/marquee/internal/trending"
)

func sampleEntries() []trending.Entry {
	return []trending.Entry{
		{Rank: 1, SearchTerm: "dune", Count: 4, MovieID: 438631, Title: "Dune", PosterPath: "/d5NXSklXo0qyIYkgV94XAgMIckC.jpg"},
		{Rank: 2, SearchTerm: "alien", Count: 2, MovieID: 348, Title: "Alien"},
		{Rank: 3, SearchTerm: "heat", Count: 1, MovieID: 949, Title: "Heat"},
	}
}

func TestTrendingLoadRunsOnce(t *testing.T) {
	source := &fakeTrendingSource{entries: sampleEntries()}
	tr := NewTrending(source, 5, WithTrendingLogger(discardLogger()))

	sess := tr.Load(context.Background())
	require.True(t, sess.Loaded)
	assert.Empty(t, sess.Err)
	assert.Equal(t, sampleEntries(), sess.Items)

	tr.Load(context.Background())
	assert.Equal(t, 1, source.Calls())

	tr.Reload(context.Background())
	assert.Equal(t, 2, source.Calls())
}

func TestTrendingRespectsLimit(t *testing.T) {
	source := &fakeTrendingSource{entries: sampleEntries()}
	tr := NewTrending(source, 2)

	sess := tr.Load(context.Background())
	require.Len(t, sess.Items, 2)
	assert.Equal(t, "dune", sess.Items[0].SearchTerm)
	assert.Equal(t, 2, sess.Items[1].Rank)
}

func TestTrendingDefaultLimit(t *testing.T) {
	tr := NewTrending(&fakeTrendingSource{}, 0)
	assert.Equal(t, trending.DefaultLimit, tr.limit)
}

func TestTrendingFailureKeepsItems(t *testing.T) {
	source := &fakeTrendingSource{entries: sampleEntries()}
	tr := NewTrending(source, 5, WithTrendingLogger(discardLogger()))
	tr.Load(context.Background())

	source.set(nil, errors.New("connection refused"))
	sess := tr.Reload(context.Background())

	assert.Equal(t, TrendingErrorMessage, sess.Err)
	assert.Equal(t, sampleEntries(), sess.Items, "previous items stay visible")

	source.set(sampleEntries()[:1], nil)
	sess = tr.Reload(context.Background())
	assert.Empty(t, sess.Err)
	assert.Len(t, sess.Items, 1)
}

func TestTrendingInitialFailure(t *testing.T) {
	source := &fakeTrendingSource{err: errors.New("no such table: search_counts")}
	tr := NewTrending(source, 5, WithTrendingLogger(discardLogger()))

	sess := tr.Load(context.Background())
	assert.True(t, sess.Loaded)
	assert.Equal(t, TrendingErrorMessage, sess.Err)
	assert.Empty(t, sess.Items)
}

func TestTrendingEmptyStore(t *testing.T) {
	tr := NewTrending(&fakeTrendingSource{}, 5)

	sess := tr.Load(context.Background())
	assert.Empty(t, sess.Err)
	assert.NotNil(t, sess.Items)
	assert.Empty(t, sess.Items)
}

func TestTrendingErrorIndependentOfSearch(t *testing.T) {
	source := &fakeTrendingSource{err: errors.New("redis: connection refused")}
	tr := NewTrending(source, 5, WithTrendingLogger(discardLogger()))
	catalog := &fakeCatalog{}
	s := startSynchronizer(t, catalog, nil)

	tsess := tr.Load(context.Background())
	sess := waitUntil(t, s, settledWith("Popular 1"), "discover should resolve")

	assert.Equal(t, TrendingErrorMessage, tsess.Err)
	assert.Empty(t, sess.Err)
}

func TestTrendingSnapshotIsACopy(t *testing.T) {
	tr := NewTrending(&fakeTrendingSource{entries: sampleEntries()}, 5)
	sess := tr.Load(context.Background())

	sess.Items[0].Title = "mutated"
	assert.Equal(t, "Dune", tr.Snapshot().Items[0].Title)
}
