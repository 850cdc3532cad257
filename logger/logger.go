// Package logger configures the process-wide slog logger.
package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/milk9111/catcafe/config"
)

// Setup configures the global slog logger based on environment
func Setup(cfg *config.Config) *slog.Logger {
	return SetupTo(os.Stdout, cfg)
}

// SetupTo is Setup writing to w.
func SetupTo(w io.Writer, cfg *config.Config) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// WithAgent adds the agent id to logger context
func WithAgent(logger *slog.Logger, id string) *slog.Logger {
	return logger.With("agent", id)
}

// WithError adds error to logger context
func WithError(logger *slog.Logger, err error) *slog.Logger {
	return logger.With("error", err.Error())
}
