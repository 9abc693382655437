package cmd

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/spf13/viper"

	"github.com/lepinkainen/marquee/internal/config"
)

// CLI represents the complete command structure for the marquee application
type CLI struct {
	// Global flags
	Verbose bool `short:"v" help:"Enable debug logging"`

	// Trending store flags; empty values keep the config file settings
	TrendingBackend string `name:"trending-backend" help:"Trending store backend (sqlite or redis)"`
	TrendingDB      string `name:"trending-db" help:"Path to the trending SQLite database"`
	RedisURL        string `name:"redis-url" help:"Redis URL for the redis trending backend"`

	LogFile string `name:"log-file" help:"Log file used while the browser is running"`

	Browse   BrowseCmd   `cmd:"" default:"1" help:"Browse, search and inspect movies interactively"`
	Search   SearchCmd   `cmd:"" help:"Search the movie catalog"`
	Discover DiscoverCmd `cmd:"" help:"List popular movies"`
	Trending TrendingCmd `cmd:"" help:"Inspect or reset trending searches"`
	Details  DetailsCmd  `cmd:"" help:"Show full details for a movie"`
}

// BrowseCmd represents the interactive browser
type BrowseCmd struct{}

// SearchCmd represents a one-shot search
type SearchCmd struct {
	Query  []string `arg:"" help:"Search text"`
	Page   int      `short:"p" help:"Result page" default:"1"`
	Format string   `short:"f" help:"Output format" enum:"table,json,yaml" default:"table"`
}

// DiscoverCmd represents the popular movies listing
type DiscoverCmd struct {
	Page   int    `short:"p" help:"Result page" default:"1"`
	Format string `short:"f" help:"Output format" enum:"table,json,yaml" default:"table"`
}

// TrendingCmd groups the trending subcommands
type TrendingCmd struct {
	List  TrendingListCmd  `cmd:"" default:"1" help:"Show the most searched terms"`
	Reset TrendingResetCmd `cmd:"" help:"Clear all trending counters"`
}

// TrendingListCmd represents the trending listing
type TrendingListCmd struct {
	Limit  int    `short:"n" help:"Number of entries (defaults to trending.limit)"`
	Format string `short:"f" help:"Output format" enum:"table,json,yaml" default:"table"`
}

// TrendingResetCmd represents trending counter removal
type TrendingResetCmd struct{}

// DetailsCmd represents the movie details view
type DetailsCmd struct {
	ID          int    `arg:"" help:"TMDB movie ID"`
	Format      string `short:"f" help:"Output format" enum:"table,json,yaml" default:"table"`
	Poster      string `help:"Download the poster to this path"`
	PosterWidth int    `help:"Maximum poster width in pixels" default:"1000"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging(os.Stderr, false)
	initConfig()

	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("marquee"),
		kong.Description("Search, page through and track trending movies from TMDB."),
		kong.UsageOnError(),
	)

	updateGlobalConfig(&cli)
	initLogging(os.Stderr, config.Verbose)

	if err := ctx.Run(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	config.SetDefaults()

	viper.AutomaticEnv()
	if err := viper.BindEnv("TMDBAPIKey", "TMDB_API_KEY"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Info("Config file not found, writing default config file")
			if err := viper.SafeWriteConfig(); err != nil {
				slog.Warn("Error writing config file", "error", err)
			}
		} else {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	config.SetVerbose(cli.Verbose)
	config.SetTrendingBackend(cli.TrendingBackend)
	config.SetTrendingDBFile(cli.TrendingDB)
	config.SetTrendingRedisURL(cli.RedisURL)
	config.SetLogFile(cli.LogFile)

	viper.Set("trending.backend", config.TrendingBackend)
	viper.Set("trending.dbfile", config.TrendingDBFile)
	viper.Set("trending.redisurl", config.TrendingRedisURL)
	viper.Set("log.file", config.LogFile)
}
