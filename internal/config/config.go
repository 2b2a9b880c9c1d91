// Package config builds the process-wide export configuration from the
// environment, once at startup. There is no ambient mutable state: the
// resulting struct is passed into every component constructor.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Configuration validation errors.
var (
	ErrMissingSubdomain = errors.New("API_SUBDOMAIN is required")
	ErrMissingEmail     = errors.New("API_EMAIL is required")
	ErrMissingToken     = errors.New("API_TOKEN is required")
	ErrInvalidTokens    = errors.New("TARGET_TOKENS must be positive and not exceed MAX_TOKENS")
)

// Config holds the complete export configuration.
type Config struct {
	// Help-center API credentials. All three are required.
	Subdomain string
	Email     string
	APIToken  string

	// AllowedCategories and AllowedSections gate which articles are
	// exported: an article passes if its resolved category name or
	// section name appears in either list. Both empty disables
	// filtering entirely.
	AllowedCategories []string
	AllowedSections   []string

	// OutDir receives articles.jsonl and chunks.jsonl.
	OutDir string

	// Chunk sizing in tokens.
	TargetTokens int
	MaxTokens    int

	// RedisURL enables response caching when non-empty.
	RedisURL string

	// RequestsPerSecond caps outbound request rate (0 disables).
	RequestsPerSecond float64

	// Logging.
	LogLevel  string
	LogPretty bool
}

// FromEnv reads configuration from the environment and validates it.
// Missing required values are fatal before any network activity.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Subdomain:         os.Getenv("API_SUBDOMAIN"),
		Email:             os.Getenv("API_EMAIL"),
		APIToken:          os.Getenv("API_TOKEN"),
		AllowedCategories: splitList(os.Getenv("ALLOWED_CATEGORIES")),
		AllowedSections:   splitList(os.Getenv("ALLOWED_SECTIONS")),
		OutDir:            envDefault("OUT_DIR", "hc_export"),
		TargetTokens:      envInt("TARGET_TOKENS", 800),
		MaxTokens:         envInt("MAX_TOKENS", 1200),
		RedisURL:          os.Getenv("REDIS_URL"),
		RequestsPerSecond: envFloat("REQUESTS_PER_SECOND", 5),
		LogLevel:          envDefault("LOG_LEVEL", "info"),
		LogPretty:         os.Getenv("LOG_PRETTY") == "true",
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	if c.Subdomain == "" {
		return ErrMissingSubdomain
	}
	if c.Email == "" {
		return ErrMissingEmail
	}
	if c.APIToken == "" {
		return ErrMissingToken
	}
	if c.TargetTokens <= 0 || c.MaxTokens <= 0 || c.TargetTokens > c.MaxTokens {
		return fmt.Errorf("%w (target=%d, max=%d)", ErrInvalidTokens, c.TargetTokens, c.MaxTokens)
	}
	return nil
}

// BaseURL returns the help-center instance root URL.
func (c *Config) BaseURL() string {
	return fmt.Sprintf("https://%s.zendesk.com", c.Subdomain)
}

// splitList parses a comma-separated list, trimming whitespace and
// dropping empty entries.
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func envDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}
