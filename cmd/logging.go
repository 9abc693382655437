package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/lepinkainen/humanlog"
	"gopkg.in/natefinch/lumberjack.v2"
)

func logLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// initLogging installs a human-readable default logger writing to w.
func initLogging(w io.Writer, verbose bool) {
	handler := humanlog.NewHandler(w, &humanlog.Options{
		Level: logLevel(verbose),
	})
	slog.SetDefault(slog.New(handler))
}

// initFileLogging redirects the default logger to a rotating file while
// the browser owns the terminal. The returned func restores stderr logging.
func initFileLogging(path string, verbose bool) func() {
	if path == "" {
		// Nothing may be written to the terminal while the UI runs.
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return func() { initLogging(os.Stderr, verbose) }
	}

	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // Megabytes
		MaxBackups: 3,
		MaxAge:     30, // Days
		Compress:   true,
	}
	initLogging(rotator, verbose)

	return func() {
		_ = rotator.Close()
		initLogging(os.Stderr, verbose)
	}
}
