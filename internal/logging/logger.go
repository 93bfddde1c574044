// Package logging configures the process-wide slog logger for the rota
// backend.
package logging

import (
	"log/slog"
	"os"
)

// Setup routes all slog output through a JSON handler on stdout.
func Setup() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))
}
