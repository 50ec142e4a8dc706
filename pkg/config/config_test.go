package config

import (
	"testing"
	"time"
)

func TestLoad_RedisBackend(t *testing.T) {
	t.Setenv("TOKOKITA_STORAGE_BACKEND", "redis")
	t.Setenv("TOKOKITA_REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.Storage.Backend != StorageBackendRedis {
		t.Fatalf("unexpected backend %q", cfg.Storage.Backend)
	}
	if cfg.Storage.LogKey != "transactions" {
		t.Fatalf("unexpected log key %q", cfg.Storage.LogKey)
	}
	if cfg.Catalog.CacheTTL != 5*time.Minute {
		t.Fatalf("expected catalog cache ttl 5m, got %v", cfg.Catalog.CacheTTL)
	}
}

func TestLoad_RedisBackendRequiresAddress(t *testing.T) {
	t.Setenv("TOKOKITA_STORAGE_BACKEND", "redis")
	t.Setenv("TOKOKITA_REDIS_URL", "")
	t.Setenv("TOKOKITA_REDIS_ADDR", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected redis backend without address to fail")
	}
}

func TestLoad_SQLiteBackendRequiresDSN(t *testing.T) {
	t.Setenv("TOKOKITA_STORAGE_BACKEND", "sqlite")
	t.Setenv("TOKOKITA_DB_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected sqlite backend without DSN to fail")
	}

	t.Setenv("TOKOKITA_DB_DSN", "file:tokokita.db")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.DB.DSN != "file:tokokita.db" {
		t.Fatalf("unexpected DSN %q", cfg.DB.DSN)
	}
}

func TestLoad_UnknownBackend(t *testing.T) {
	t.Setenv("TOKOKITA_STORAGE_BACKEND", "dynamo")

	if _, err := Load(); err == nil {
		t.Fatal("expected unknown backend to fail")
	}
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "prod"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
}
