package config

import (
	"testing"
	"time"
)

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("OPENHOUSE_DB_DSN", "postgres://localhost:5432/openhouse")
	t.Setenv("OPENHOUSE_JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.App.Port != "8080" {
		t.Fatalf("unexpected default port %q", cfg.App.Port)
	}
	if !cfg.App.IsDev() {
		t.Fatalf("expected development default env")
	}
	if cfg.JWT.ExpirationMinutes != 10080 {
		t.Fatalf("expected 7 day token default, got %d minutes", cfg.JWT.ExpirationMinutes)
	}
	if cfg.JWT.Expiration() != 7*24*time.Hour {
		t.Fatalf("unexpected expiration duration %s", cfg.JWT.Expiration())
	}
	if cfg.Redis.Enabled() {
		t.Fatalf("redis should be disabled when unconfigured")
	}
	if cfg.AuthRateLimit.LoginWindow != time.Minute {
		t.Fatalf("unexpected login window %s", cfg.AuthRateLimit.LoginWindow)
	}
}

func TestLoadRequiresDSNAndSecret(t *testing.T) {
	t.Setenv("OPENHOUSE_DB_DSN", "")
	t.Setenv("OPENHOUSE_JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when required settings are missing")
	}
}

func TestIsProd(t *testing.T) {
	t.Setenv("OPENHOUSE_DB_DSN", "postgres://localhost:5432/openhouse")
	t.Setenv("OPENHOUSE_JWT_SECRET", "test-secret")
	t.Setenv("OPENHOUSE_APP_ENV", "PRODUCTION")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.App.IsProd() {
		t.Fatalf("expected case-insensitive production match")
	}
}
