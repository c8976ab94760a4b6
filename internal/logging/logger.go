// Package logging builds the leveled stderr logger shared by the CLI and the
// convergence study. Stdout is reserved for the error table.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// LevelTrace is one notch under Debug. The study uses it for the final
// numeric and exact values of every trajectory.
const LevelTrace = slog.LevelDebug - 4

// ParseLevel reads the --log-level flag. Anything it does not recognise runs
// at info, which keeps the singular-step warnings visible.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "warn", "warning":
		return slog.LevelWarn
	case "debug":
		return slog.LevelDebug
	case "trace":
		return LevelTrace
	default:
		return slog.LevelInfo
	}
}

// NewLogger returns a text logger on w that drops records below level.
// Trace records print as level=TRACE rather than slog's DEBUG-4.
func NewLogger(level string, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       ParseLevel(level),
		ReplaceAttr: labelTrace,
	}))
}

func labelTrace(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	if l, ok := a.Value.Any().(slog.Level); ok && l == LevelTrace {
		return slog.String(slog.LevelKey, "TRACE")
	}
	return a
}
