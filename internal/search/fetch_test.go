package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	merrors "github.com/lepinkainen/marquee/internal/errors"
	"github.com/lepinkainen/marquee/internal/tmdb"
)

func TestPlanFetch(t *testing.T) {
	req := planFetch(7, Query{RawText: "dun", SettledText: "dune", Page: 2})
	assert.Equal(t, fetchRequest{seq: 7, kind: kindSearch, text: "dune", page: 2}, req)

	req = planFetch(8, Query{RawText: "dune", Page: 1})
	assert.Equal(t, fetchRequest{seq: 8, kind: kindDiscover, page: 1}, req)
	assert.Equal(t, "discover", req.kind.String())
}

func TestLookupSearchRecords(t *testing.T) {
	catalog := &fakeCatalog{}
	recorder := &fakeRecorder{}

	sess := Lookup(context.Background(), catalog, recorder, "dune", 2)

	assert.False(t, sess.Loading)
	assert.Empty(t, sess.Err)
	require.Len(t, sess.Results, 1)
	assert.Equal(t, "dune 2", sess.Results[0].Title)
	assert.Equal(t, []catalogCall{{kind: "search", query: "dune", page: 2}}, catalog.Calls())

	records := recorder.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "dune", records[0].term)
	assert.Equal(t, sess.Results[0], records[0].top)
}

func TestLookupDiscover(t *testing.T) {
	catalog := &fakeCatalog{}
	recorder := &fakeRecorder{}

	sess := Lookup(context.Background(), catalog, recorder, "", 0)

	assert.Equal(t, 1, sess.Query.Page)
	assert.Equal(t, []catalogCall{{kind: "discover", page: 1}}, catalog.Calls())
	assert.Empty(t, recorder.Records())
}

func TestLookupErrors(t *testing.T) {
	catalog := &fakeCatalog{}
	catalog.setHandler(func(context.Context, catalogCall) (*tmdb.MoviePage, error) {
		return nil, merrors.NewTransportError("tmdb", errors.New("dial tcp: connection refused"))
	})

	sess := Lookup(context.Background(), catalog, nil, "dune", 1)
	assert.Equal(t, FetchErrorMessage, sess.Err)
	assert.Empty(t, sess.Results)

	catalog.setHandler(func(context.Context, catalogCall) (*tmdb.MoviePage, error) {
		return nil, merrors.NewServiceError("Invalid API key")
	})
	sess = Lookup(context.Background(), catalog, nil, "dune", 1)
	assert.Equal(t, "Invalid API key", sess.Err)
}

func TestLookupRecordFailureIgnored(t *testing.T) {
	catalog := &fakeCatalog{}
	recorder := &fakeRecorder{err: errors.New("read-only database")}

	sess := Lookup(context.Background(), catalog, recorder, "dune", 1)
	assert.Empty(t, sess.Err)
	assert.Len(t, sess.Results, 1)
	assert.Len(t, recorder.Records(), 1)
}

func TestResolveEmptyServiceMessageFallsBack(t *testing.T) {
	sess := Session{Loading: true, Results: []tmdb.Movie{{ID: 1}}}
	sess.resolve(fetchResult{err: merrors.NewServiceError("")}, discardLogger())

	assert.False(t, sess.Loading)
	assert.Equal(t, FetchErrorMessage, sess.Err)
	assert.Empty(t, sess.Results)
}
