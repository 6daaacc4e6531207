package config

import (
	"os"
	"path/filepath"
	"testing"
)

// clearEnv blanks the variables Load consults so the developer's shell
// cannot leak into assertions. Load treats empty as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TWEETVAULT_DB", "")
	t.Setenv("TWEETVAULT_ADDR", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tweetvault.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	// Point the default location at an empty directory so a real
	// ~/.tweetvault.yaml cannot interfere.
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Addr != "127.0.0.1:8080" {
		t.Errorf("Expected default addr, got %q", cfg.Addr)
	}
	if cfg.PageSize != 50 {
		t.Errorf("Expected default page size 50, got %d", cfg.PageSize)
	}
	if cfg.DBPath != "" {
		t.Errorf("Expected empty default db path, got %q", cfg.DBPath)
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, "db: /tmp/vault.db\naddr: 0.0.0.0:9999\npage_size: 25\nanthropic_model: claude-test\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DBPath != "/tmp/vault.db" {
		t.Errorf("Expected file db path, got %q", cfg.DBPath)
	}
	if cfg.Addr != "0.0.0.0:9999" {
		t.Errorf("Expected file addr, got %q", cfg.Addr)
	}
	if cfg.PageSize != 25 {
		t.Errorf("Expected file page size, got %d", cfg.PageSize)
	}
	if cfg.AnthropicModel != "claude-test" {
		t.Errorf("Expected file model, got %q", cfg.AnthropicModel)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, "db: /tmp/file.db\naddr: 0.0.0.0:9999\n")

	t.Setenv("TWEETVAULT_DB", "/tmp/env.db")
	t.Setenv("TWEETVAULT_ADDR", "127.0.0.1:7777")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DBPath != "/tmp/env.db" {
		t.Errorf("Expected env db path to win, got %q", cfg.DBPath)
	}
	if cfg.Addr != "127.0.0.1:7777" {
		t.Errorf("Expected env addr to win, got %q", cfg.Addr)
	}
	if cfg.AnthropicKey != "sk-test" {
		t.Errorf("Expected api key from env, got %q", cfg.AnthropicKey)
	}
}

func TestLoadExplicitPathMustExist(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("Expected error for explicitly given missing file")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, "addr: [not\n  closed")

	_, err := Load(path)
	if err == nil {
		t.Error("Expected error for malformed YAML")
	}
}

func TestLoadClampsPageSize(t *testing.T) {
	clearEnv(t)

	for _, raw := range []string{"page_size: 0", "page_size: -5", "page_size: 5000"} {
		path := writeConfigFile(t, raw+"\n")
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load failed for %q: %v", raw, err)
		}
		if cfg.PageSize != 50 {
			t.Errorf("Expected page size reset to 50 for %q, got %d", raw, cfg.PageSize)
		}
	}
}
