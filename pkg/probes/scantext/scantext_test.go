package scantext_test

import (
	"bytes"
	"testing"

	"github.com/conformd/posixprobe/pkg/check"
	"github.com/conformd/posixprobe/pkg/probe"
	"github.com/conformd/posixprobe/pkg/probes/scantext"
)

// TestScantextProbe runs the full probe against the real scanner
func TestScantextProbe(t *testing.T) {
	dir := t.TempDir()
	ws, err := probe.NewLocalWorkspace(dir)
	if err != nil {
		t.Fatalf("failed to create workspace: %v", err)
	}

	var buf bytes.Buffer
	st := check.New(&buf)
	env := &probe.Env{Store: ws, Dir: dir, Out: &buf}

	scantext.New().Run(st, env)

	if st.Failed() {
		t.Errorf("scantext probe failed:\n%s", buf.String())
	}
	if buf.Len() != 0 {
		t.Errorf("passing probe should emit no diagnostics, got:\n%s", buf.String())
	}
}

// TestScantextWithoutPaths verifies the resource-failure path: a workspace
// with no backing directory fails the file-scan block but nothing else
// aborts.
func TestScantextWithoutPaths(t *testing.T) {
	var buf bytes.Buffer
	st := check.New(&buf)
	env := &probe.Env{Store: probe.NewMemoryWorkspace(), Out: &buf}

	scantext.New().Run(st, env)

	if !st.Failed() {
		t.Error("expected the file-scan block to record a failure")
	}
	if buf.Len() == 0 {
		t.Error("expected a diagnostic for the missing scratch path")
	}
}
