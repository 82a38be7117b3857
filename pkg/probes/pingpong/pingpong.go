// Package pingpong probes parent/child coordination over a byte-stream
// channel: the parent writes a sentinel byte into the child's stdin, the
// child echoes it back on stdout and exits, and the parent blocks on the
// child's termination.
//
// Go has no fork, so the child is a re-exec of the running binary; the two
// processes share nothing but the pipes. The parent's exit code reflects
// only the parent's own assertions — the child's internal state crosses the
// boundary solely as its exit status.
package pingpong

import (
	"io"
	"os"
	"os/exec"

	"github.com/conformd/posixprobe/pkg/check"
	"github.com/conformd/posixprobe/pkg/probe"
)

// Sentinel is the ping byte, echoed back verbatim by the child.
const Sentinel = byte('x')

// New returns the pingpong probe.
func New() probe.Probe {
	return probe.Probe{
		Name:    "pingpong",
		Summary: "parent/child pipe ping-pong",
		Run:     run,
	}
}

func run(st *check.State, env *probe.Env) {
	if !st.Assert(len(env.Child.Argv) > 0, "no child command configured\n") {
		return
	}

	cmd := exec.Command(env.Child.Argv[0], env.Child.Argv[1:]...)
	cmd.Env = append(os.Environ(), env.Child.Env...)
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if !st.Assert(err == nil, "failed to create stdin pipe: %v\n", err) {
		return
	}
	stdout, err := cmd.StdoutPipe()
	if !st.Assert(err == nil, "failed to create stdout pipe: %v\n", err) {
		return
	}

	if !st.Assert(cmd.Start() == nil, "failed to start child\n") {
		return
	}

	// Ping.
	n, err := stdin.Write([]byte{Sentinel})
	st.Assert(n == 1 && err == nil, "ping write: n=%d err=%v\n", n, err)
	st.Assert(stdin.Close() == nil, "failed to close ping pipe\n")

	// Pong: the echoed sentinel, then end of stream.
	reply := make([]byte, 1)
	_, err = io.ReadFull(stdout, reply)
	if st.Assert(err == nil, "pong read: %v\n", err) {
		st.Val(int64(reply[0]), "==", int64(Sentinel))
	}
	_, err = stdout.Read(make([]byte, 1))
	st.Assert(err == io.EOF, "expected EOF after pong, got %v\n", err)

	// The child's own checks surface here as its exit status.
	st.Assert(cmd.Wait() == nil, "child exited with failure\n")
}

// Child implements the child half over the given streams: read the ping
// byte, echo it back, report any protocol violation on the child's own
// state.
func Child(in io.Reader, out io.Writer, st *check.State) {
	buf := make([]byte, 1)
	n, err := io.ReadFull(in, buf)
	if !st.Assert(n == 1 && err == nil, "ping read: n=%d err=%v\n", n, err) {
		return
	}
	st.Val(int64(buf[0]), "==", int64(Sentinel))

	n, err = out.Write(buf)
	st.Assert(n == 1 && err == nil, "pong write: n=%d err=%v\n", n, err)
}

// ChildMain runs Child over the process's stdin/stdout and exits with the
// harness status. Diagnostics go to stderr: stdout is the protocol channel
// here.
func ChildMain() {
	st := check.New(os.Stderr)
	Child(os.Stdin, os.Stdout, st)
	st.Exit()
}
