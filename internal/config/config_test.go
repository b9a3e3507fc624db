package config

import (
	"errors"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "LevelMinds")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("JWT_ACCESS_SECRET", "a")
	t.Setenv("JWT_REFRESH_SECRET", "r")
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("JWT_ACCESS_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "")

	_, err := Load()
	if !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("expected errMissingRequiredEnv, got %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("JOB_MATCHING_DEFAULT", "")
	t.Setenv("DB_MAX_CONNS", "")
	t.Setenv("REDIS_TTL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !cfg.Matching.DefaultEnabled {
		t.Fatalf("expected job matching enabled by default")
	}
	if cfg.Database.PoolMaxConns != 10 {
		t.Fatalf("expected 10 max conns, got %d", cfg.Database.PoolMaxConns)
	}
	if cfg.Redis.TTL != 10*time.Minute {
		t.Fatalf("expected 10m ttl, got %s", cfg.Redis.TTL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("JOB_MATCHING_DEFAULT", "false")
	t.Setenv("JWT_ACCESS_EXPIRES_IN", "900")
	t.Setenv("DB_CONN_MAX_IDLE_TIME", "45s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Matching.DefaultEnabled {
		t.Fatalf("expected job matching disabled")
	}
	if cfg.JWT.AccessExpiresIn != 15*time.Minute {
		t.Fatalf("expected 15m, got %s", cfg.JWT.AccessExpiresIn)
	}
	if cfg.Database.PoolMaxConnIdleTime != 45*time.Second {
		t.Fatalf("expected 45s, got %s", cfg.Database.PoolMaxConnIdleTime)
	}
}
