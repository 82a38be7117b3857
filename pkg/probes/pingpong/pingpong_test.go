package pingpong_test

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/conformd/posixprobe/pkg/check"
	"github.com/conformd/posixprobe/pkg/probe"
	"github.com/conformd/posixprobe/pkg/probes/pingpong"
)

const childEnvVar = "POSIXPROBE_PINGPONG_CHILD"

// TestMain doubles as the child process when re-exec'd by the probe.
func TestMain(m *testing.M) {
	if os.Getenv(childEnvVar) == "1" {
		pingpong.ChildMain()
		return
	}
	os.Exit(m.Run())
}

// TestChild tests the child half in-process over plain pipes
func TestChild(t *testing.T) {
	t.Run("echoes the sentinel", func(t *testing.T) {
		in := bytes.NewReader([]byte{pingpong.Sentinel})
		var out, diag bytes.Buffer
		st := check.New(&diag)

		pingpong.Child(in, &out, st)

		if st.Failed() {
			t.Errorf("child failed:\n%s", diag.String())
		}
		if out.Len() != 1 || out.Bytes()[0] != pingpong.Sentinel {
			t.Errorf("expected echoed sentinel, got %q", out.Bytes())
		}
	})

	t.Run("records a failure on empty input", func(t *testing.T) {
		var out, diag bytes.Buffer
		st := check.New(&diag)

		pingpong.Child(bytes.NewReader(nil), &out, st)

		if !st.Failed() {
			t.Error("child should fail without a ping byte")
		}
		if out.Len() != 0 {
			t.Errorf("child must not write without a ping, got %q", out.Bytes())
		}
	})
}

// TestPingPongProbe spawns the test binary as the child process
func TestPingPongProbe(t *testing.T) {
	var buf bytes.Buffer
	st := check.New(&buf)
	env := &probe.Env{
		Store: probe.NewMemoryWorkspace(),
		Out:   io.Discard,
		Child: probe.ChildSpec{
			Argv: []string{os.Args[0]},
			Env:  []string{childEnvVar + "=1"},
		},
	}

	pingpong.New().Run(st, env)

	if st.Failed() {
		t.Errorf("pingpong probe failed:\n%s", buf.String())
	}
}

// TestPingPongWithoutChild verifies the resource-failure path
func TestPingPongWithoutChild(t *testing.T) {
	var buf bytes.Buffer
	st := check.New(&buf)
	env := &probe.Env{Store: probe.NewMemoryWorkspace(), Out: &buf}

	pingpong.New().Run(st, env)

	if !st.Failed() {
		t.Error("probe should fail without a child command")
	}
}
