package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/conformd/posixprobe/internal/config"
)

// TestDefaultConfig tests default configuration
func TestDefaultConfig(t *testing.T) {
	t.Run("creates default config", func(t *testing.T) {
		cfg := config.DefaultConfig()

		if cfg == nil {
			t.Fatal("expected non-nil config")
		}
		if len(cfg.Probes) == 0 {
			t.Error("expected default probes")
		}
		if cfg.Color != "auto" {
			t.Errorf("expected auto color mode, got %q", cfg.Color)
		}
	})

	t.Run("default config is valid", func(t *testing.T) {
		cfg := config.DefaultConfig()

		if err := cfg.Validate(); err != nil {
			t.Errorf("default config should be valid: %v", err)
		}
	})
}

// TestConfigValidation tests configuration validation
func TestConfigValidation(t *testing.T) {
	t.Run("rejects unknown color mode", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Color = "sometimes"

		if err := cfg.Validate(); err == nil {
			t.Error("should reject unknown color mode")
		}
	})

	t.Run("rejects empty probe list", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Probes = nil

		if err := cfg.Validate(); err == nil {
			t.Error("should reject empty probe list")
		}
	})

	t.Run("rejects empty probe name", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Probes = []string{"scantext", ""}

		if err := cfg.Validate(); err == nil {
			t.Error("should reject empty probe name")
		}
	})

	t.Run("rejects missing workdir", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Workdir = filepath.Join(t.TempDir(), "does-not-exist")

		if err := cfg.Validate(); err == nil {
			t.Error("should reject nonexistent workdir")
		}
	})

	t.Run("accepts existing workdir", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Workdir = t.TempDir()

		if err := cfg.Validate(); err != nil {
			t.Errorf("should accept existing workdir: %v", err)
		}
	})
}

// TestConfigRoundTrip tests save and load
func TestConfigRoundTrip(t *testing.T) {
	t.Run("saved config loads back identically", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Workdir = t.TempDir()
		cfg.KeepScratch = true
		cfg.Probes = []string{"fsmeta", "timestamp"}

		path := filepath.Join(t.TempDir(), "posixprobe.yaml")
		if err := config.SaveConfig(cfg, path); err != nil {
			t.Fatalf("failed to save config: %v", err)
		}

		loaded, err := config.LoadConfig(path)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if diff := cmp.Diff(cfg, loaded); diff != "" {
			t.Errorf("config round trip mismatch (-saved +loaded):\n%s", diff)
		}
	})

	t.Run("minimal config file gets defaults for missing fields", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "posixprobe.yaml")
		if err := os.WriteFile(path, []byte("probes: [scantext]\n"), 0o644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		cfg, err := config.LoadConfig(path)
		if err != nil {
			t.Fatalf("minimal config should load: %v", err)
		}
		if cfg.Color != "auto" {
			t.Errorf("expected default color mode, got %q", cfg.Color)
		}
		if len(cfg.Probes) != 1 || cfg.Probes[0] != "scantext" {
			t.Errorf("explicit probes must survive defaulting, got %v", cfg.Probes)
		}
	})

	t.Run("empty config file loads as the defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "posixprobe.yaml")
		if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		cfg, err := config.LoadConfig(path)
		if err != nil {
			t.Fatalf("empty config should load: %v", err)
		}
		if len(cfg.Probes) == 0 {
			t.Error("expected the default probe list")
		}
	})

	t.Run("load rejects invalid color mode", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		data := "color: rainbow\nprobes: [scantext]\n"
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		if _, err := config.LoadConfig(path); err == nil {
			t.Error("should reject invalid config file")
		}
	})

	t.Run("load rejects missing file", func(t *testing.T) {
		if _, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
			t.Error("should reject missing config file")
		}
	})

	t.Run("load rejects malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mangled.yaml")
		if err := os.WriteFile(path, []byte("probes: [unterminated"), 0o644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		if _, err := config.LoadConfig(path); err == nil {
			t.Error("should reject malformed yaml")
		}
	})
}
