package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("HTTP.Addr = %q, want :8080", cfg.HTTP.Addr)
	}
	if cfg.API.BaseURL != "http://localhost:1123" {
		t.Errorf("API.BaseURL = %q, want http://localhost:1123", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("API.Timeout = %v, want 10s", cfg.API.Timeout)
	}
	if cfg.Redis.URI != "localhost:6379" {
		t.Errorf("Redis.URI = %q, want localhost:6379", cfg.Redis.URI)
	}
	if cfg.IsDev {
		t.Error("IsDev should default to false")
	}
}

func TestAppConfig_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("RECORDS_API_URL", "https://records.example.edu/api/")
	t.Setenv("REDIS_URI", "redis:6379")
	t.Setenv("REDIS_USE_SENTINEL", "true")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.HTTP.Addr != ":9090" {
		t.Errorf("HTTP.Addr = %q, want :9090", cfg.HTTP.Addr)
	}
	// The client expects the base URL without a trailing slash.
	if cfg.API.BaseURL != "https://records.example.edu/api" {
		t.Errorf("API.BaseURL = %q, want trimmed URL", cfg.API.BaseURL)
	}
	if cfg.Redis.URI != "redis:6379" {
		t.Errorf("Redis.URI = %q, want redis:6379", cfg.Redis.URI)
	}
	if !cfg.Redis.UseSentinel {
		t.Error("Redis.UseSentinel should be true")
	}
}

func TestAPIConfig_SanitizeClampsTimeout(t *testing.T) {
	a := APIConfig{BaseURL: "http://localhost:1123", Timeout: -time.Second}
	a.Sanitize()
	if a.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", a.Timeout)
	}
}

func TestAppConfig_DetectDevModeFromNodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if !cfg.IsDev {
		t.Error("IsDev should be true when NODE_ENV=development")
	}
}
