// Package logging provides the JSON structured logger shared by every Lambda.
package logging

import (
	"io"
	"log/slog"
	"os"
)

var root = New(os.Stdout)

// New creates a JSON logger writing to w at info level.
func New(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// For returns the process logger tagged with a component name.
func For(component string) *slog.Logger {
	return root.With(slog.String("component", component))
}
