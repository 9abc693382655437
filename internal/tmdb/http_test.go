package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	merrors "github.com/lepinkainen/marquee/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingHTTPDoer struct {
	calls int
}

func (f *failingHTTPDoer) Do(*http.Request) (*http.Response, error) {
	f.calls++
	return nil, errors.New("connection refused")
}

func TestGetJSONSendsBearerAndAcceptHeaders(t *testing.T) {
	var auth, accept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		accept = r.Header.Get("accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	client := NewClient("secret-token", WithBaseURL(server.URL), WithHTTPClient(server.Client()))

	var payload map[string]string
	require.NoError(t, client.getJSON(context.Background(), server.URL, &payload))
	assert.Equal(t, "ok", payload["status"])
	assert.Equal(t, "Bearer secret-token", auth)
	assert.Equal(t, "application/json", accept)
}

func TestGetJSONDoesNotRetryNetworkErrors(t *testing.T) {
	doer := &failingHTTPDoer{}
	client := NewClient("key", WithHTTPClient(doer))

	var payload map[string]any
	err := client.getJSON(context.Background(), "http://example.test/", &payload)
	require.Error(t, err)
	assert.True(t, merrors.IsTransportError(err))
	assert.Equal(t, 1, doer.calls)
}

func TestGetJSONStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("oops"))
	}))
	defer server.Close()

	client := NewClient("key", WithBaseURL(server.URL), WithHTTPClient(server.Client()))

	var payload map[string]any
	err := client.getJSON(context.Background(), server.URL, &payload)
	require.Error(t, err)
	assert.True(t, merrors.IsTransportError(err))
	assert.Contains(t, err.Error(), "unexpected status 500")

	var transportErr *merrors.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusInternalServerError, transportErr.StatusCode)
}

func TestGetJSONDecodeErrorIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer server.Close()

	client := NewClient("key", WithHTTPClient(server.Client()))

	var payload map[string]any
	err := client.getJSON(context.Background(), server.URL, &payload)
	require.Error(t, err)
	assert.True(t, merrors.IsTransportError(err))
}
