package config_test

import (
	"testing"
	"time"

	"github.com/lumessence/concierge/internal/config"
)

func setBase(t *testing.T) {
	t.Helper()
	t.Setenv("UPSTREAM_URL", "http://localhost:9000/v1/chat")
	t.Setenv("PORT", "")
	t.Setenv("UPSTREAM_TIMEOUT_SECONDS", "")
	t.Setenv("DATA_DIR", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_PRETTY", "")
}

func TestLoadDefaults(t *testing.T) {
	setBase(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("unexpected addr: %s", cfg.Server.Addr)
	}
	if cfg.Upstream.Timeout != 30*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.Upstream.Timeout)
	}
	if cfg.Storage.Path != "./data/conversations" {
		t.Fatalf("unexpected storage path: %s", cfg.Storage.Path)
	}
	if cfg.Log.Level != "info" || cfg.Log.Pretty {
		t.Fatalf("unexpected log config: %+v", cfg.Log)
	}
}

func TestLoadPortVariants(t *testing.T) {
	setBase(t)

	t.Setenv("PORT", "9090")
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Fatalf("unexpected addr: %s", cfg.Server.Addr)
	}

	t.Setenv("PORT", "127.0.0.1:7000")
	cfg, err = config.Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:7000" {
		t.Fatalf("unexpected addr: %s", cfg.Server.Addr)
	}

	t.Setenv("PORT", "bad value")
	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for PORT with spaces")
	}
}

func TestLoadRequiresUpstreamURL(t *testing.T) {
	setBase(t)
	t.Setenv("UPSTREAM_URL", "")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error when UPSTREAM_URL is missing")
	}
}

func TestLoadUpstreamTimeout(t *testing.T) {
	setBase(t)

	t.Setenv("UPSTREAM_TIMEOUT_SECONDS", "5")
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Upstream.Timeout != 5*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.Upstream.Timeout)
	}

	t.Setenv("UPSTREAM_TIMEOUT_SECONDS", "0")
	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for non-positive timeout")
	}

	t.Setenv("UPSTREAM_TIMEOUT_SECONDS", "ten")
	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for non-numeric timeout")
	}
}

func TestLoadLogPretty(t *testing.T) {
	setBase(t)

	t.Setenv("LOG_PRETTY", "true")
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if !cfg.Log.Pretty {
		t.Fatal("LOG_PRETTY=true not honored")
	}

	t.Setenv("LOG_PRETTY", "nope")
	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for invalid LOG_PRETTY")
	}
}
