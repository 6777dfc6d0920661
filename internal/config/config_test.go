package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Addr != ":8420" {
		t.Errorf("expected default addr ':8420', got %q", cfg.Server.Addr)
	}

	if cfg.Defaults.MaxTokens != 10000 {
		t.Errorf("expected default max_tokens 10000, got %d", cfg.Defaults.MaxTokens)
	}

	if cfg.Defaults.Priority != "medium" {
		t.Errorf("expected default priority 'medium', got %q", cfg.Defaults.Priority)
	}

	if cfg.Ledger.Capacity != 0 {
		t.Errorf("expected unbounded ledger capacity, got %d", cfg.Ledger.Capacity)
	}

	if cfg.Catalog.Path != "" {
		t.Errorf("expected empty catalog path, got %q", cfg.Catalog.Path)
	}

	if cfg.Catalog.Watch {
		t.Error("expected catalog.watch to be false")
	}

	if cfg.Log.Path != "" {
		t.Errorf("expected empty log path, got %q", cfg.Log.Path)
	}
}

func TestLoadFromPath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  addr: ":9000"
defaults:
  max_tokens: 50000
  priority: high
ledger:
  capacity: 200
catalog:
  path: /etc/swarmrouter/dances.yaml
  watch: true
log:
  path: /tmp/swarmrouter.log
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.Server.Addr != ":9000" {
		t.Errorf("expected addr ':9000', got %q", cfg.Server.Addr)
	}

	if cfg.Defaults.MaxTokens != 50000 {
		t.Errorf("expected max_tokens 50000, got %d", cfg.Defaults.MaxTokens)
	}

	if cfg.Defaults.Priority != "high" {
		t.Errorf("expected priority 'high', got %q", cfg.Defaults.Priority)
	}

	if cfg.Ledger.Capacity != 200 {
		t.Errorf("expected ledger capacity 200, got %d", cfg.Ledger.Capacity)
	}

	if cfg.Catalog.Path != "/etc/swarmrouter/dances.yaml" {
		t.Errorf("expected catalog path '/etc/swarmrouter/dances.yaml', got %q", cfg.Catalog.Path)
	}

	if !cfg.Catalog.Watch {
		t.Error("expected catalog.watch to be true")
	}

	if cfg.Log.Path != "/tmp/swarmrouter.log" {
		t.Errorf("expected log path '/tmp/swarmrouter.log', got %q", cfg.Log.Path)
	}
}

func TestLoadFromPathPartial(t *testing.T) {
	// Keys absent from the file keep their defaults.
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  addr: "127.0.0.1:8421"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.Server.Addr != "127.0.0.1:8421" {
		t.Errorf("expected addr '127.0.0.1:8421', got %q", cfg.Server.Addr)
	}

	if cfg.Defaults.MaxTokens != 10000 {
		t.Errorf("expected default max_tokens 10000, got %d", cfg.Defaults.MaxTokens)
	}

	if cfg.Defaults.Priority != "medium" {
		t.Errorf("expected default priority 'medium', got %q", cfg.Defaults.Priority)
	}
}

func TestLoadFromPathMissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestExpandEnvInPaths(t *testing.T) {
	os.Setenv("SWARM_TEST_DIR", "/var/lib/swarm")
	defer os.Unsetenv("SWARM_TEST_DIR")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
catalog:
  path: ${SWARM_TEST_DIR}/dances.yaml
log:
  path: ${SWARM_TEST_DIR}/debug.log
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.Catalog.Path != "/var/lib/swarm/dances.yaml" {
		t.Errorf("expected expanded catalog path, got %q", cfg.Catalog.Path)
	}

	if cfg.Log.Path != "/var/lib/swarm/debug.log" {
		t.Errorf("expected expanded log path, got %q", cfg.Log.Path)
	}
}

func TestSaveAndReload(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfg := Default()
	cfg.Server.Addr = ":7777"
	cfg.Ledger.Capacity = 50

	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadFromPath(GetUserConfigPath())
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}

	if loaded.Server.Addr != ":7777" {
		t.Errorf("expected addr ':7777', got %q", loaded.Server.Addr)
	}

	if loaded.Ledger.Capacity != 50 {
		t.Errorf("expected capacity 50, got %d", loaded.Ledger.Capacity)
	}
}
