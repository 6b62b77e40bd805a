package config

import (
	"fmt"
)

// LoggingConfig holds application logging configuration.
//
// It is optional at the root level; DefaultLoggingConfig supplies
// environment-appropriate values when it is omitted.
type LoggingConfig struct {
	// Level is the verbosity threshold (debug/info/warn/error).
	// Logs below this level are discarded.
	Level string `koanf:"level"`

	// Format selects the output format: "json" (log pipelines) or
	// "console" (human-readable local output).
	Format string `koanf:"format"`
}

// DefaultLoggingConfig provides defaults keyed on the environment:
// production gets quiet JSON output, everything else gets verbose
// console output.
func DefaultLoggingConfig(environment string) *LoggingConfig {
	if environment == "production" {
		return &LoggingConfig{
			Level:  "info",
			Format: "json",
		}
	}
	return &LoggingConfig{
		Level:  "debug",
		Format: "console",
	}
}

// Validate applies rules that go beyond struct tags: enums for level
// and format. This prevents typos like "inf" silently degrading into
// nonsense.
func (c *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Level] {
		return fmt.Errorf("invalid logging level: %s (must be one of: debug, info, warn, error)", c.Level)
	}

	switch c.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid logging format: %s (must be json or console)", c.Format)
	}

	return nil
}
