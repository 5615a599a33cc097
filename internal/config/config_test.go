package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// t.Setenv scopes env mutation to this test.
	t.Setenv("OPENWEATHER_API_KEY", "")
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("DEFAULT_CITY", "")
	t.Setenv("PROVIDER_TIMEOUT", "")
	t.Setenv("PROVIDER_RETRIES", "")

	cfg := Load()
	if cfg.LiveEnabled() {
		t.Error("LiveEnabled() = true without a key")
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", cfg.ListenAddr)
	}
	if cfg.DefaultCity != "Hyderabad" {
		t.Errorf("DefaultCity = %q, want Hyderabad", cfg.DefaultCity)
	}
	if cfg.ProviderTimeout != 5*time.Second {
		t.Errorf("ProviderTimeout = %v, want 5s", cfg.ProviderTimeout)
	}
	if cfg.RetryCount != 2 {
		t.Errorf("RetryCount = %d, want 2", cfg.RetryCount)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "  key-123  ")
	t.Setenv("DEFAULT_CITY", "London")
	t.Setenv("PROVIDER_TIMEOUT", "2s")
	t.Setenv("PROVIDER_RETRIES", "5")
	t.Setenv("PROVIDER_RETRY_WAIT", "bogus")

	cfg := Load()
	if cfg.ProviderAPIKey != "key-123" {
		t.Errorf("ProviderAPIKey = %q, want trimmed key-123", cfg.ProviderAPIKey)
	}
	if cfg.DefaultCity != "London" {
		t.Errorf("DefaultCity = %q, want London", cfg.DefaultCity)
	}
	if cfg.ProviderTimeout != 2*time.Second {
		t.Errorf("ProviderTimeout = %v, want 2s", cfg.ProviderTimeout)
	}
	if cfg.RetryCount != 5 {
		t.Errorf("RetryCount = %d, want 5", cfg.RetryCount)
	}
	if cfg.RetryWait != 400*time.Millisecond {
		t.Errorf("RetryWait = %v, want the 400ms fallback on a bad value", cfg.RetryWait)
	}
}
