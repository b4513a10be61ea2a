package logging

import (
	"io"
	"log/slog"
	"os"
)

// New returns a JSON logger writing to w at the given level, tagged with
// the component name.
func New(w io.Writer, level slog.Level, component string) *slog.Logger {
	return slog.New(
		slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}),
	).With("component", component)
}

// SetupJSON sets slog's default logger to use JSON output on stdout at the
// given level.
func SetupJSON(level slog.Level, component string) {
	slog.SetDefault(New(os.Stdout, level, component))
}
