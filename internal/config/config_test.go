package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("default addr %q", cfg.HTTPAddr)
	}
	if cfg.DBDriver != "sqlite" {
		t.Fatalf("default driver %q", cfg.DBDriver)
	}
	if cfg.PassThreshold != 60 {
		t.Fatalf("default threshold %d", cfg.PassThreshold)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://localhost:3000" {
		t.Fatalf("default origins %v", cfg.CORSOrigins)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("QUIZ_PASS_THRESHOLD", "70")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg := FromEnv()
	if cfg.HTTPAddr != ":9090" {
		t.Fatalf("addr %q", cfg.HTTPAddr)
	}
	if cfg.PassThreshold != 70 {
		t.Fatalf("threshold %d", cfg.PassThreshold)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("origins %v", cfg.CORSOrigins)
	}
}

func TestFromEnvBadIntFallsBack(t *testing.T) {
	t.Setenv("QUIZ_PASS_THRESHOLD", "not-a-number")
	if got := FromEnv().PassThreshold; got != 60 {
		t.Fatalf("threshold %d, want default 60", got)
	}
}

func TestLoadOverlaysYAML(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "http_addr: \":7070\"\npass_threshold: 80\nredis_addr: \"localhost:6379\"\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	// File wins over env.
	if cfg.HTTPAddr != ":7070" {
		t.Fatalf("addr %q", cfg.HTTPAddr)
	}
	if cfg.PassThreshold != 80 {
		t.Fatalf("threshold %d", cfg.PassThreshold)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("redis %q", cfg.RedisAddr)
	}
	// Keys absent from the file keep their env values.
	if cfg.DBDriver != "sqlite" {
		t.Fatalf("driver %q", cfg.DBDriver)
	}
}

func TestLoadMissingFileIsFine(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("addr %q", cfg.HTTPAddr)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("http_addr: [unclosed"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestTTLDuration(t *testing.T) {
	if got := TTLDuration("", time.Hour); got != time.Hour {
		t.Fatalf("empty: %v", got)
	}
	if got := TTLDuration("90s", time.Hour); got != 90*time.Second {
		t.Fatalf("parse: %v", got)
	}
	if got := TTLDuration("garbage", time.Hour); got != time.Hour {
		t.Fatalf("malformed: %v", got)
	}
}
