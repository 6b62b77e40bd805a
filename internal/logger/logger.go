// Package logger configures the application's structured logging.
//
// It uses zerolog throughout: one root logger built at startup from
// LoggingConfig, from which middleware derives request-scoped child
// loggers carrying correlation fields.
package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/vendorrs/backend/internal/config"
)

// New builds the root application logger from config.
//
// Format "console" emits human-friendly colored output for local
// development; "json" emits machine-parseable lines for log pipelines.
// Unknown levels fall back to info rather than failing, since config
// validation already rejected real typos.
func New(cfg *config.LoggingConfig) zerolog.Logger {
	level := parseLevel(cfg.Level)

	if cfg.Format == "console" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().
			Logger()
	}

	return zerolog.New(os.Stderr).
		Level(level).
		With().Timestamp().
		Logger()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	}
	return zerolog.InfoLevel
}
