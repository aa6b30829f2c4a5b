package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"github.com/lexicard/lexicard-api/internal/config"
)

// ParseLevel converts a configured level name to a slog.Level.
// Unknown names fall back to info and report ok=false.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// NewHandler builds the slog handler selected by cfg.LogFormat: structured
// JSON for "json" (the default) and colored tint output for "text".
func NewHandler(cfg config.ServerConfig, w io.Writer) slog.Handler {
	level, _ := ParseLevel(cfg.LogLevel)

	if strings.EqualFold(cfg.LogFormat, "text") {
		return tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	}

	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}

// Setup initializes the application's logger from the server configuration
// and installs it as the slog default.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	if _, ok := ParseLevel(cfg.LogLevel); !ok {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Warn(
			"invalid log level configured, using default level",
			slog.String("configured_level", cfg.LogLevel),
			slog.String("default_level", "info"))
	}

	logger := slog.New(NewHandler(cfg, os.Stdout))
	slog.SetDefault(logger)

	return logger, nil
}
