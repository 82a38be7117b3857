package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/conformd/posixprobe/internal/cli"
	"github.com/conformd/posixprobe/internal/config"
)

// TestInitCommand tests writing the default config file
func TestInitCommand(t *testing.T) {
	t.Run("writes a loadable default config", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cmd := cli.NewRootCommand("test", "abc123", "2026-01-01")
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"init"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("init failed: %v", err)
		}

		cfg, err := config.LoadConfig("posixprobe.yaml")
		if err != nil {
			t.Fatalf("written config does not load: %v", err)
		}
		if len(cfg.Probes) == 0 {
			t.Error("written config has no probes")
		}
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		if err := os.WriteFile(filepath.Join(dir, "posixprobe.yaml"), []byte("probes: [scantext]\ncolor: auto\n"), 0o644); err != nil {
			t.Fatalf("failed to seed config: %v", err)
		}

		cmd := cli.NewRootCommand("test", "abc123", "2026-01-01")
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"init"})

		if err := cmd.Execute(); err == nil {
			t.Error("expected error without --force")
		}
	})

	t.Run("overwrites with force", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		if err := os.WriteFile(filepath.Join(dir, "posixprobe.yaml"), []byte("probes: [scantext]\ncolor: auto\n"), 0o644); err != nil {
			t.Fatalf("failed to seed config: %v", err)
		}

		cmd := cli.NewRootCommand("test", "abc123", "2026-01-01")
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{"init", "--force"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("init --force failed: %v", err)
		}
	})
}
