// =============================================================================
// Retail Marts - Logging Setup
// =============================================================================

// Package logging builds the slog logger injected into the pipeline stages.
// Stage observability (row counts, artifact paths, downgraded warnings)
// flows through the returned logger; the end-of-run summaries stay on
// stdout for human consumption.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// New returns a text-handler logger at the configured level, writing to
// stderr so log lines never interleave with report output. The verbose
// switch forces debug regardless of the configured level.
func New(levelStr string, verbose bool) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(levelStr) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
