package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Default log level mismatch: got %s, want info", cfg.LogLevel)
	}
	if cfg.Module.Dir != "./module" {
		t.Errorf("Default module dir mismatch: got %s, want ./module", cfg.Module.Dir)
	}
	if cfg.Wasm.MemoryPages != 256 {
		t.Errorf("Default memory pages mismatch: got %d, want 256", cfg.Wasm.MemoryPages)
	}
	if cfg.Wasm.Debug {
		t.Error("Wasm debug should be disabled by default")
	}
	if cfg.Server.BaseURL != "http://localhost:3100/api" {
		t.Errorf("Default base URL mismatch: got %s", cfg.Server.BaseURL)
	}
	if cfg.Server.TimeoutSeconds != 30 {
		t.Errorf("Default timeout mismatch: got %d, want 30", cfg.Server.TimeoutSeconds)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "config*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	configContent := `
log_level: debug
module:
  dir: /opt/resume/module
wasm:
  memory_pages: 128
server:
  base_url: https://resume.example.com/api
`
	if _, err := tmpfile.Write([]byte(configContent)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("Log level mismatch: got %s, want debug", cfg.LogLevel)
	}
	if cfg.Module.Dir != "/opt/resume/module" {
		t.Errorf("Module dir mismatch: got %s", cfg.Module.Dir)
	}
	if cfg.Wasm.MemoryPages != 128 {
		t.Errorf("Memory pages mismatch: got %d, want 128", cfg.Wasm.MemoryPages)
	}
	if cfg.Server.BaseURL != "https://resume.example.com/api" {
		t.Errorf("Base URL mismatch: got %s", cfg.Server.BaseURL)
	}
	// Untouched keys keep their defaults.
	if cfg.Server.TimeoutSeconds != 30 {
		t.Errorf("Timeout mismatch: got %d, want 30", cfg.Server.TimeoutSeconds)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("Load() should fail for a missing config file")
	}
}
