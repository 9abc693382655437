package cmd

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/marquee/internal/testutil"
)

const (
	waitTimeout  = 2 * time.Second
	pollInterval = 10 * time.Millisecond
)

// fakeTMDB serves the handful of TMDB endpoints the commands call.
func fakeTMDB(t *testing.T) *httptest.Server {
	t.Helper()

	movies := map[string]map[string]any{
		"dune":  {"id": 438631, "title": "Dune", "release_date": "2021-09-15", "poster_path": "/dune.png", "vote_average": 7.8, "vote_count": 12345},
		"alien": {"id": 348, "title": "Alien", "release_date": "1979-05-25", "vote_average": 8.1, "vote_count": 15000},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-tmdb-key" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"status_code":7,"status_message":"Invalid API key"}`))
			return
		}

		switch {
		case r.URL.Path == "/search/movie":
			query := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("query")))
			if query == "broken" {
				writeJSON(t, w, map[string]any{"success": false, "status_message": "The resource you requested could not be found."})
				return
			}
			results := []map[string]any{}
			if movie, ok := movies[query]; ok {
				results = append(results, movie)
			}
			writeJSON(t, w, map[string]any{"page": 1, "results": results, "total_pages": 1, "total_results": len(results)})

		case r.URL.Path == "/discover/movie":
			page, _ := strconv.Atoi(r.URL.Query().Get("page"))
			writeJSON(t, w, map[string]any{
				"page":    page,
				"results": []map[string]any{{"id": 7, "title": "Popular Movie", "release_date": "2024-01-01", "vote_average": 6.5, "vote_count": 900}},
			})

		case r.URL.Path == "/movie/438631":
			writeJSON(t, w, map[string]any{
				"id":           438631,
				"title":        "Dune",
				"tagline":      "Beyond fear, destiny awaits.",
				"overview":     "Paul Atreides travels to Arrakis.",
				"status":       "Released",
				"release_date": "2021-09-15",
				"runtime":      155,
				"budget":       165000000,
				"revenue":      402027830,
				"vote_average": 7.8,
				"vote_count":   12345,
				"poster_path":  "/dune.png",
				"genres":       []map[string]any{{"id": 878, "name": "Science Fiction"}},
			})

		case r.URL.Path == "/images/dune.png":
			w.Header().Set("Content-Type", "image/png")
			img := image.NewRGBA(image.Rect(0, 0, 40, 60))
			for x := 0; x < 40; x++ {
				for y := 0; y < 60; y++ {
					img.Set(x, y, color.RGBA{R: 200, G: 150, B: 50, A: 255})
				}
			}
			require.NoError(t, png.Encode(w, img))

		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"success":false,"status_code":34,"status_message":"The resource you requested could not be found."}`))
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// setupCommandEnv points the commands at a fake TMDB server and a
// sandboxed trending database, capturing stdout.
func setupCommandEnv(t *testing.T) (*testutil.TestEnv, *bytes.Buffer) {
	t.Helper()

	env := testutil.NewTestEnv(t)
	server := fakeTMDB(t)
	testutil.SetTestConfig(t,
		testutil.WithTMDBBaseURL(server.URL),
		testutil.WithTrendingDBFile(env.Path("trending.db")),
	)

	out := &bytes.Buffer{}
	origStdout := stdout
	stdout = out
	t.Cleanup(func() { stdout = origStdout })

	return env, out
}

func parseCLI(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()

	originalArgs := os.Args
	os.Args = append([]string{"marquee"}, args...)
	t.Cleanup(func() { os.Args = originalArgs })

	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("marquee"),
		kong.Description("Search, page through and track trending movies from TMDB."),
		kong.UsageOnError(),
		kong.Exit(func(code int) {
			t.Fatalf("unexpected Kong exit %d", code)
		}),
	)

	return cli, ctx
}

// runCLI parses args, applies global flags and runs the selected command.
func runCLI(t *testing.T, args ...string) error {
	t.Helper()

	cli, ctx := parseCLI(t, args...)
	updateGlobalConfig(cli)
	return ctx.Run()
}
