package testutil

import (
	"testing"
	"time"

	"github.com/lepinkainen/marquee/internal/config"
	"github.com/spf13/viper"
)

// ConfigState holds the state of the config package variables.
type ConfigState struct {
	TMDBAPIKey       string
	TMDBBaseURL      string
	TMDBImageBaseURL string
	SearchDebounce   time.Duration
	SearchTotalPages int
	TrendingBackend  string
	TrendingDBFile   string
	TrendingRedisURL string
	TrendingLimit    int
	LogFile          string
	Verbose          bool
}

// SaveConfigState captures the current state of config package variables.
func SaveConfigState() ConfigState {
	return ConfigState{
		TMDBAPIKey:       config.TMDBAPIKey,
		TMDBBaseURL:      config.TMDBBaseURL,
		TMDBImageBaseURL: config.TMDBImageBaseURL,
		SearchDebounce:   config.SearchDebounce,
		SearchTotalPages: config.SearchTotalPages,
		TrendingBackend:  config.TrendingBackend,
		TrendingDBFile:   config.TrendingDBFile,
		TrendingRedisURL: config.TrendingRedisURL,
		TrendingLimit:    config.TrendingLimit,
		LogFile:          config.LogFile,
		Verbose:          config.Verbose,
	}
}

// RestoreConfigState restores the config package variables to a saved state.
func RestoreConfigState(state ConfigState) {
	config.TMDBAPIKey = state.TMDBAPIKey
	config.TMDBBaseURL = state.TMDBBaseURL
	config.TMDBImageBaseURL = state.TMDBImageBaseURL
	config.SearchDebounce = state.SearchDebounce
	config.SearchTotalPages = state.SearchTotalPages
	config.TrendingBackend = state.TrendingBackend
	config.TrendingDBFile = state.TrendingDBFile
	config.TrendingRedisURL = state.TrendingRedisURL
	config.TrendingLimit = state.TrendingLimit
	config.LogFile = state.LogFile
	config.Verbose = state.Verbose
}

// SetTestConfigOption is a functional option for configuring test config.
type SetTestConfigOption func(*ConfigState)

// WithTMDBAPIKey sets the TMDB API key.
func WithTMDBAPIKey(key string) SetTestConfigOption {
	return func(s *ConfigState) {
		s.TMDBAPIKey = key
	}
}

// WithTMDBBaseURL points the TMDB client at a test server.
func WithTMDBBaseURL(url string) SetTestConfigOption {
	return func(s *ConfigState) {
		s.TMDBBaseURL = url
		s.TMDBImageBaseURL = url + "/images"
	}
}

// WithTrendingDBFile sets the SQLite trending database path.
func WithTrendingDBFile(path string) SetTestConfigOption {
	return func(s *ConfigState) {
		s.TrendingBackend = "sqlite"
		s.TrendingDBFile = path
	}
}

// WithSearchDebounce sets the debounce delay.
func WithSearchDebounce(d time.Duration) SetTestConfigOption {
	return func(s *ConfigState) {
		s.SearchDebounce = d
	}
}

// SetTestConfig resets viper and installs a test configuration. The
// previous state is restored when the test completes.
func SetTestConfig(t *testing.T, opts ...SetTestConfigOption) {
	t.Helper()

	saved := SaveConfigState()
	viper.Reset()

	state := ConfigState{
		TMDBAPIKey:       "test-tmdb-key",
		TMDBBaseURL:      "http://127.0.0.1:0",
		TMDBImageBaseURL: "http://127.0.0.1:0/images",
		SearchDebounce:   20 * time.Millisecond,
		SearchTotalPages: 5,
		TrendingBackend:  "sqlite",
		TrendingDBFile:   ":memory:",
		TrendingLimit:    5,
		LogFile:          "",
	}
	for _, opt := range opts {
		opt(&state)
	}
	RestoreConfigState(state)

	t.Cleanup(func() {
		RestoreConfigState(saved)
		viper.Reset()
	})
}

// SetViperValue sets a viper configuration value and restores the
// previous value when the test completes.
func SetViperValue(t *testing.T, key string, value any) {
	t.Helper()

	oldValue := viper.Get(key)
	hadValue := viper.IsSet(key)
	viper.Set(key, value)

	t.Cleanup(func() {
		if hadValue {
			viper.Set(key, oldValue)
		}
		// viper has no Unset; an unset key keeps the test value.
	})
}
