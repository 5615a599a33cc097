package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is built once at process start and passed by reference into the
// components that need it. Core logic never reads the environment directly.
type Config struct {
	ListenAddr string

	// Empty key disables the live path entirely.
	ProviderAPIKey  string
	ProviderBaseURL string
	ProviderTimeout time.Duration

	DefaultCity string

	RetryCount uint
	RetryWait  time.Duration
}

func Load() *Config {
	return &Config{
		ListenAddr:      envOr("LISTEN_ADDR", ":8080"),
		ProviderAPIKey:  strings.TrimSpace(os.Getenv("OPENWEATHER_API_KEY")),
		ProviderBaseURL: strings.TrimSpace(os.Getenv("OPENWEATHER_BASE_URL")),
		ProviderTimeout: envDurationOr("PROVIDER_TIMEOUT", 5*time.Second),
		DefaultCity:     envOr("DEFAULT_CITY", "Hyderabad"),
		RetryCount:      envUintOr("PROVIDER_RETRIES", 2),
		RetryWait:       envDurationOr("PROVIDER_RETRY_WAIT", 400*time.Millisecond),
	}
}

// LiveEnabled reports whether a provider credential is configured.
func (c *Config) LiveEnabled() bool {
	return c.ProviderAPIKey != ""
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func envUintOr(key string, fallback uint) uint {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			return uint(n)
		}
	}
	return fallback
}
