package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/eshaffer321/studio-go/internal/types"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Config holds all configuration for the studio tools
type Config struct {
	// Env is "development" or "production"
	Env string

	// API Configuration
	API APIConfig

	// Logging Configuration
	Logging LoggingConfig

	// SentryDSN enables error tracking when set
	SentryDSN string
}

// APIConfig holds the backend and navigation settings
type APIConfig struct {
	BaseURL     string
	LoginPath   string
	DefaultPath string
	MaxRetries  int
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // json, console
}

// IsDevelopment reports whether the development proxy is used
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	env := strings.ToLower(os.Getenv("STUDIO_ENV"))
	if env == "" {
		env = "production"
	}
	if env != "development" && env != "production" {
		return nil, errors.Errorf("STUDIO_ENV must be development or production, got %q", env)
	}

	// The API URL follows the environment unless overridden
	baseURL := os.Getenv("STUDIO_API_URL")
	if baseURL == "" {
		baseURL = types.DefaultBaseURL
		if env == "development" {
			baseURL = types.DevelopmentBaseURL
		}
	}
	baseURL = strings.TrimRight(baseURL, "/")

	loginPath := os.Getenv("STUDIO_LOGIN_PATH")
	if loginPath == "" {
		loginPath = types.DefaultLoginPath
	}

	defaultPath := os.Getenv("STUDIO_DEFAULT_PATH")
	if defaultPath == "" {
		defaultPath = types.DefaultAreaPath
	}

	maxRetries := types.DefaultMaxRetries
	if v := os.Getenv("STUDIO_MAX_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, errors.Errorf("STUDIO_MAX_RETRIES must be a non-negative integer, got %q", v)
		}
		maxRetries = n
	}

	// Logging configuration
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "console"
	}

	return &Config{
		Env: env,
		API: APIConfig{
			BaseURL:     baseURL,
			LoginPath:   loginPath,
			DefaultPath: defaultPath,
			MaxRetries:  maxRetries,
		},
		Logging: LoggingConfig{
			Level:  logLevel,
			Format: logFormat,
		},
		SentryDSN: os.Getenv("SENTRY_DSN"),
	}, nil
}

// RetryConfig returns the rate-limit retry policy for this configuration
func (c *Config) RetryConfig() *types.RetryConfig {
	rc := types.DefaultRetryConfig()
	rc.MaxRetries = c.API.MaxRetries
	return rc
}
