package config

import (
	"time"

	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// TMDBAPIKey is the bearer token for TheMovieDB
	TMDBAPIKey string
	// TMDBBaseURL is the root of the TMDB v3 API
	TMDBBaseURL string
	// TMDBImageBaseURL is the prefix for poster paths
	TMDBImageBaseURL string

	// SearchDebounce is the quiet period before typed text triggers a search
	SearchDebounce time.Duration
	// SearchTotalPages is the size of the pagination window
	SearchTotalPages int

	// TrendingBackend selects the trending store ("sqlite" or "redis")
	TrendingBackend string
	// TrendingDBFile is the SQLite database used by the sqlite backend
	TrendingDBFile string
	// TrendingRedisURL is the connection URL used by the redis backend
	TrendingRedisURL string
	// TrendingLimit is the number of trending entries shown
	TrendingLimit int

	// LogFile receives logs while the terminal UI owns the screen
	LogFile string
	// Verbose enables debug logging
	Verbose bool
)

// SetDefaults registers the default value of every configuration key.
func SetDefaults() {
	viper.SetDefault("tmdb.baseurl", "https://api.themoviedb.org/3")
	viper.SetDefault("tmdb.imagebaseurl", "https://image.tmdb.org/t/p/w500")

	viper.SetDefault("search.debounce", "500ms")
	viper.SetDefault("search.totalpages", 5)

	viper.SetDefault("trending.backend", "sqlite")
	viper.SetDefault("trending.dbfile", "./trending.db")
	viper.SetDefault("trending.redisurl", "")
	viper.SetDefault("trending.limit", 5)

	viper.SetDefault("log.file", "./marquee.log")
}

// InitConfig initializes the global configuration
func InitConfig() {
	SetDefaults()

	TMDBAPIKey = viper.GetString("TMDBAPIKey")
	TMDBBaseURL = viper.GetString("tmdb.baseurl")
	TMDBImageBaseURL = viper.GetString("tmdb.imagebaseurl")

	SearchDebounce = viper.GetDuration("search.debounce")
	SearchTotalPages = viper.GetInt("search.totalpages")

	TrendingBackend = viper.GetString("trending.backend")
	TrendingDBFile = viper.GetString("trending.dbfile")
	TrendingRedisURL = viper.GetString("trending.redisurl")
	TrendingLimit = viper.GetInt("trending.limit")

	LogFile = viper.GetString("log.file")
}

// SetTrendingBackend overrides the trending backend when backend is non-empty
func SetTrendingBackend(backend string) {
	if backend != "" {
		TrendingBackend = backend
	}
}

// SetTrendingDBFile overrides the SQLite path when path is non-empty
func SetTrendingDBFile(path string) {
	if path != "" {
		TrendingDBFile = path
	}
}

// SetTrendingRedisURL overrides the Redis URL when url is non-empty
func SetTrendingRedisURL(url string) {
	if url != "" {
		TrendingRedisURL = url
	}
}

// SetLogFile overrides the log file when path is non-empty
func SetLogFile(path string) {
	if path != "" {
		LogFile = path
	}
}

// SetVerbose sets the Verbose flag
func SetVerbose(verbose bool) {
	Verbose = verbose
}
