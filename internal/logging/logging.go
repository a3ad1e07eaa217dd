// Package logging builds the structured loggers shared by the commands.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// ParseLevel maps a case-insensitive level name onto a slog level. Unknown
// names fall back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a logger writing to w. format is "text", "json" or "auto";
// auto writes text to a terminal and JSON everywhere else.
func New(level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var h slog.Handler
	if useJSON(format, w) {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h)
}

func useJSON(format string, w io.Writer) bool {
	switch strings.ToLower(format) {
	case "json":
		return true
	case "auto":
		f, ok := w.(*os.File)
		if !ok {
			return true
		}
		return !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
	default:
		return false
	}
}
