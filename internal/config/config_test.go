package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.DBPath != "data/app.db" {
		t.Errorf("expected default db path, got %q", cfg.DBPath)
	}
	if cfg.SessionLimit != 12 {
		t.Errorf("expected default session limit 12, got %d", cfg.SessionLimit)
	}
	if cfg.Bridge.Timeout != 15*time.Second {
		t.Errorf("expected default bridge timeout 15s, got %v", cfg.Bridge.Timeout)
	}
}

func TestLoad_MissingFileIsFine(t *testing.T) {
	cfg, err := Load("does/not/exist.yaml")
	if err != nil {
		t.Fatalf("expected missing config file to be tolerated, got %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected defaults, got port %q", cfg.Port)
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
port: "9090"
db_path: /tmp/mentors.db
session_limit: 5
bridge:
  url: https://bridge.example.com/chat
  timeout: 3s
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %q", cfg.Port)
	}
	if cfg.DBPath != "/tmp/mentors.db" {
		t.Errorf("expected db path from file, got %q", cfg.DBPath)
	}
	if cfg.SessionLimit != 5 {
		t.Errorf("expected session limit 5, got %d", cfg.SessionLimit)
	}
	if cfg.Bridge.URL != "https://bridge.example.com/chat" {
		t.Errorf("expected bridge url from file, got %q", cfg.Bridge.URL)
	}
	if cfg.Bridge.Timeout != 3*time.Second {
		t.Errorf("expected bridge timeout 3s, got %v", cfg.Bridge.Timeout)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("DB_PATH", "/tmp/override.db")
	t.Setenv("BRIDGE_URL", "https://env.example.com/chat")
	t.Setenv("SESSION_LIMIT", "3")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Port != "7070" {
		t.Errorf("expected env port 7070, got %q", cfg.Port)
	}
	if cfg.DBPath != "/tmp/override.db" {
		t.Errorf("expected env db path, got %q", cfg.DBPath)
	}
	if cfg.Bridge.URL != "https://env.example.com/chat" {
		t.Errorf("expected env bridge url, got %q", cfg.Bridge.URL)
	}
	if cfg.SessionLimit != 3 {
		t.Errorf("expected env session limit 3, got %d", cfg.SessionLimit)
	}
}
