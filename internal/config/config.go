// Package config manages environment variables.
//
// It reads variables from the process environment (optionally seeded
// from a `.env` file), loads them into structured Go types, and
// validates that required values are present so the application fails
// fast on bad or missing config.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional config blocks (e.g. logging).
package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it is loaded into the
	// process env before any env var is read. No explicit call needed.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf maps values from; env vars
// use the VENDORRS_ prefix and "." nesting, so VENDORRS_SERVER.PORT
// lands on Config.Server.Port. The `validate:"required"` tags are
// enforced with go-playground/validator after unmarshalling.
//
// Logging is a pointer because it is optional; defaults are injected
// when it is absent.
type Config struct {
	Primary     Primary           `koanf:"primary" validate:"required"`
	Server      ServerConfig      `koanf:"server" validate:"required"`
	Database    DatabaseConfig    `koanf:"database" validate:"required"`
	Redis       RedisConfig       `koanf:"redis" validate:"required"`
	Auth        AuthConfig        `koanf:"auth" validate:"required"`
	Integration IntegrationConfig `koanf:"integration"`
	Logging     *LoggingConfig    `koanf:"logging"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// IsProduction reports whether the application runs in production mode.
// Production tightens error responses (no stack traces) and switches
// logging to JSON output.
func (p Primary) IsProduction() bool {
	return p.Env == "production"
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are stored as integer seconds in the environment and
// converted to time.Duration where they are applied.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	BodyLimit          string   `koanf:"body_limit"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains MongoDB connection parameters.
type DatabaseConfig struct {
	// URI is the full connection string, e.g.
	// mongodb://localhost:27017/?retryWrites=true
	URI string `koanf:"uri" validate:"required"`

	// Name is the database name holding the application collections.
	Name string `koanf:"name" validate:"required"`
}

// RedisConfig contains Redis connection details ("host:port"). Redis
// backs the background job queue.
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig stores authentication-related settings.
//
// SecretKey signs and verifies bearer tokens. Keep it out of source
// control; a leaked key lets anyone mint valid identities.
type AuthConfig struct {
	SecretKey string `koanf:"secret_key" validate:"required"`

	// TokenTTLHours bounds how long an issued bearer token stays valid.
	TokenTTLHours int `koanf:"token_ttl_hours" validate:"required"`

	// ResetTokenTTLMinutes bounds the password-reset token lifetime.
	ResetTokenTTLMinutes int `koanf:"reset_token_ttl_minutes" validate:"required"`
}

// IntegrationConfig holds third-party API credentials.
type IntegrationConfig struct {
	// ResendAPIKey authenticates against the Resend email API. Empty
	// means email delivery is disabled (jobs log and fail the task).
	ResendAPIKey string `koanf:"resend_api_key"`
}

// Load loads configuration from environment variables, unmarshals it
// into Config, validates it, applies defaults, and returns the result.
//
// Behavior summary:
//   - Loads env vars with prefix VENDORRS_
//   - Converts env keys into koanf keys using "." nesting
//   - Unmarshals into Config
//   - Validates required config blocks/fields (fatal on failure)
//   - Injects default logging config if missing
func Load() (*Config, error) {
	// Bootstrap logger: config loading happens before the real logger
	// exists, so failures here go to a bare console writer on stderr.
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	// "." is the key-path delimiter koanf uses to represent nesting,
	// e.g. "server.port" means Config.Server.Port.
	k := koanf.New(".")

	err := k.Load(env.Provider("VENDORRS_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "VENDORRS_"))
	}), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("Could not load initial env variables.")
	}

	mainConfig := &Config{}

	// "" unmarshals everything from the root.
	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("Could not unmarshal main config.")
	}

	// Enforce the validate:"required" tags; a missing required field
	// aborts startup rather than failing at first use.
	validate := validator.New()
	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("Config validation failed.")
	}

	// Logging is a pointer field, so nil means "missing".
	if mainConfig.Logging == nil {
		mainConfig.Logging = DefaultLoggingConfig(mainConfig.Primary.Env)
	}

	if err := mainConfig.Logging.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid logging config")
	}

	return mainConfig, nil
}
