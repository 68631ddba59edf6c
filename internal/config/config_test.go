package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HTTP_PORT", ":9090")
	t.Setenv("NOTIFY_WEBHOOK_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Http.Port != ":9090" {
		t.Fatalf("expected :9090 got %s", cfg.Http.Port)
	}
	if cfg.Auth.TokenTTL != 30*24*time.Hour {
		t.Fatalf("expected 30 day tokens, got %s", cfg.Auth.TokenTTL)
	}
	if !cfg.Notify.Disabled {
		t.Fatalf("notifications without a webhook URL must be disabled")
	}
}

func TestLoad_RejectsBadPort(t *testing.T) {
	t.Setenv("HTTP_PORT", "8080")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for port without colon")
	}
}

func TestLoad_StorageDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("POSTGRES_HOST", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("memory driver must not need postgres: %v", err)
	}
	if cfg.Storage != StorageMemory {
		t.Fatalf("expected memory got %s", cfg.Storage)
	}

	t.Setenv("STORAGE_DRIVER", "sqlite")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestPostgresURL(t *testing.T) {
	t.Parallel()

	p := PostgresConfig{Host: "db", Port: 5432, Database: "acadia", User: "u", Password: "p@ss", SSLMode: "disable"}
	got := p.URL("pgx5")
	want := "pgx5://u:p%40ss@db:5432/acadia?sslmode=disable"
	if got != want {
		t.Fatalf("expected %s got %s", want, got)
	}
}

func TestLoadClient(t *testing.T) {
	t.Setenv("ACADIA_API_URL", "http://api.test:8080/")
	t.Setenv("ACADIA_HOME", t.TempDir())
	t.Setenv("ACADIA_ESCORT_STRATEGY", "simulate")

	cfg, err := LoadClient()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.BaseURL != "http://api.test:8080" {
		t.Fatalf("trailing slash should be trimmed, got %s", cfg.BaseURL)
	}
	if cfg.EscortStrategy != EscortSimulate {
		t.Fatalf("expected simulate got %s", cfg.EscortStrategy)
	}
}

func TestLoadClient_RejectsUnknownStrategy(t *testing.T) {
	t.Setenv("ACADIA_HOME", t.TempDir())
	t.Setenv("ACADIA_ESCORT_STRATEGY", "push")

	if _, err := LoadClient(); err == nil {
		t.Fatalf("expected error for unknown strategy")
	}
}
