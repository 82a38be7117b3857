package integration_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/conformd/posixprobe/internal/cli"
	"github.com/conformd/posixprobe/internal/config"
)

// TestEndToEndRun drives the full command path: config file, probe
// selection, scratch management, verdicts, and the exit decision.
//
// The pingpong probe is exercised in its own package with a re-exec helper;
// running it here would spawn the test binary, so the end-to-end set names
// the in-process probes explicitly.
func TestEndToEndRun(t *testing.T) {
	workdir := t.TempDir()

	t.Run("all probes pass", func(t *testing.T) {
		cmd := cli.NewRootCommand("test", "abc123", "2026-01-01")
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		cmd.SetArgs([]string{
			"run", "scantext", "fsmeta", "timestamp", "localstate",
			"--workdir", workdir, "--color", "never",
		})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("run failed: %v\n%s", err, out.String())
		}

		text := out.String()
		for _, want := range []string{
			"PASS scantext",
			"PASS fsmeta",
			"PASS timestamp",
			"PASS localstate",
			"4 probe(s) run, 0 failed",
		} {
			if !strings.Contains(text, want) {
				t.Errorf("missing %q in output:\n%s", want, text)
			}
		}
		if strings.Contains(text, "FAIL") {
			t.Errorf("unexpected failure verdict:\n%s", text)
		}
	})

	t.Run("scratch directories are cleaned up", func(t *testing.T) {
		entries, err := os.ReadDir(workdir)
		if err != nil {
			t.Fatalf("failed to read workdir: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("expected empty workdir after run, found %d entries", len(entries))
		}
	})

	t.Run("keep-scratch leaves directories behind", func(t *testing.T) {
		keepDir := t.TempDir()
		cmd := cli.NewRootCommand("test", "abc123", "2026-01-01")
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		cmd.SetArgs([]string{"run", "fsmeta", "--workdir", keepDir, "--keep-scratch", "--color", "never"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("run failed: %v\n%s", err, out.String())
		}

		entries, err := os.ReadDir(keepDir)
		if err != nil {
			t.Fatalf("failed to read workdir: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("expected one kept scratch directory, found %d", len(entries))
		}
		if !strings.HasPrefix(entries[0].Name(), "posixprobe-fsmeta-") {
			t.Errorf("unexpected scratch directory name %q", entries[0].Name())
		}
		// The fsmeta subject survives inside the kept scratch.
		subject := filepath.Join(keepDir, entries[0].Name(), "test_file.txt")
		if _, err := os.Stat(subject); err != nil {
			t.Errorf("expected kept probe subject: %v", err)
		}
	})

	t.Run("probe selection comes from the config file", func(t *testing.T) {
		dir := t.TempDir()
		cfg := config.DefaultConfig()
		cfg.Probes = []string{"scantext", "localstate"}
		cfg.Color = "never"
		cfgPath := filepath.Join(dir, "posixprobe.yaml")
		if err := config.SaveConfig(cfg, cfgPath); err != nil {
			t.Fatalf("failed to save config: %v", err)
		}

		cmd := cli.NewRootCommand("test", "abc123", "2026-01-01")
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		cmd.SetArgs([]string{"run", "--config", cfgPath, "--workdir", t.TempDir()})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("run failed: %v\n%s", err, out.String())
		}
		if !strings.Contains(out.String(), "2 probe(s) run, 0 failed") {
			t.Errorf("expected the two configured probes to run:\n%s", out.String())
		}
	})
}
