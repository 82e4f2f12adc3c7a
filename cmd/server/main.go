package main // Entry point package

import (
	"io"       // io abstracts the log destination
	"log/slog" // structured logging
	"os"       // process exit codes
	"strings"  // level parsing

	"github.com/spf13/cobra" // command line parsing
)

var rootCmd = &cobra.Command{
	Use:           "fyyur",
	Short:         "Venue, artist and show listing service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("fyyur exited", "err", err)
		os.Exit(1)
	}
}

// newLogger builds the process logger from LOG_LEVEL and LOG_FORMAT values.
// Unknown levels fall back to info and unknown formats to json.
func newLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
