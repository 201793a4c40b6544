package app

import (
	"os"
	"testing"
	"time"

	"github.com/pulsegrid/console/internal/api"
)

// clearEnv removes a variable for the test. envconfig only applies
// default tags to absent variables, not present-but-empty ones, so
// t.Setenv alone is not enough; it is still called first to restore the
// original value on cleanup.
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CSRF_SECRET", "test-secret")
	clearEnv(t, "API_BASE_URL", "APP_ADDR", "TOKEN_KEY", "TOKEN_TTL", "APP_ENV")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.AppAddr != ":8080" {
		t.Fatalf("expected default addr :8080, got %q", cfg.AppAddr)
	}
	if cfg.APIBaseURL != api.DefaultBaseURL {
		t.Fatalf("expected API base fallback %q, got %q", api.DefaultBaseURL, cfg.APIBaseURL)
	}
	if cfg.TokenKey != "pg_token" {
		t.Fatalf("expected default token key pg_token, got %q", cfg.TokenKey)
	}
	if cfg.TokenTTL != 720*time.Hour {
		t.Fatalf("expected default token ttl 720h, got %s", cfg.TokenTTL)
	}
	if cfg.IsProduction() {
		t.Fatal("development must not report production")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("CSRF_SECRET", "test-secret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("API_BASE_URL", "https://api.internal:5000")
	t.Setenv("APP_REQUEST_TIMEOUT", "45s")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !cfg.IsProduction() {
		t.Fatal("expected production env")
	}
	if cfg.APIBaseURL != "https://api.internal:5000" {
		t.Fatalf("unexpected API base %q", cfg.APIBaseURL)
	}
	if cfg.AppRequestTimeout != 45*time.Second {
		t.Fatalf("unexpected request timeout %s", cfg.AppRequestTimeout)
	}
}

func TestLoadConfigRequiresCSRFSecret(t *testing.T) {
	clearEnv(t, "CSRF_SECRET")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected an error without a csrf secret")
	}
}
