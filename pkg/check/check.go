// Package check is the assertion harness shared by all conformance probes.
//
// It follows the classic libc-test protocol: a sticky pass/fail flag, one
// bounded diagnostic line per failed assertion prefixed with the call site,
// and a process exit status equal to the flag. Failed assertions never abort
// the run; a probe keeps going so a single run yields as many diagnostics as
// possible.
package check

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
)

// State is the pass/fail state for one probe run. The zero status is pass;
// any failed assertion flips it to fail and nothing flips it back.
type State struct {
	failed bool
	out    io.Writer
}

// New creates a State whose diagnostics are written to out.
// A nil out selects stdout, matching the original harness which writes
// diagnostics to fd 1 so they interleave with ordinary program output.
func New(out io.Writer) *State {
	if out == nil {
		out = os.Stdout
	}
	return &State{out: out}
}

// Assert records a pass if cond is true. Otherwise it marks the state
// failed, emits a diagnostic built from format and args prefixed with the
// caller's file:line, and returns false.
func (s *State) Assert(cond bool, format string, args ...interface{}) bool {
	return s.record(cond, callerLocation(1), format, args...)
}

// Val compares got against want under the relational operator rel
// ("==", "!=", "<", "<=", ">", ">="). The failure diagnostic carries both
// values. An unknown operator is itself a failure.
func (s *State) Val(got int64, rel string, want int64) bool {
	loc := callerLocation(1)
	ok, known := compare(got, rel, want)
	if !known {
		return s.record(false, loc, "unknown relation %q\n", rel)
	}
	return s.record(ok, loc, "value check failed: got %d, want %s %d\n", got, rel, want)
}

// Eq compares two strings for exact equality. The failure diagnostic
// contains both strings verbatim.
func (s *State) Eq(got, want string) bool {
	return s.record(got == want, callerLocation(1), "string mismatch: got %q, want %q\n", got, want)
}

// Failed reports whether any assertion has failed so far.
func (s *State) Failed() bool {
	return s.failed
}

// Status returns the process exit status for this state: 0 pass, 1 fail.
func (s *State) Status() int {
	if s.failed {
		return 1
	}
	return 0
}

// Exit terminates the process with the harness status, printing the pass
// banner first when nothing failed. It is the only consumer of Status in a
// standalone probe process.
func (s *State) Exit() {
	if !s.failed {
		fmt.Fprintln(s.out, "Pass!")
	}
	os.Exit(s.Status())
}

func (s *State) record(cond bool, loc, format string, args ...interface{}) bool {
	if cond {
		return true
	}
	s.failed = true
	// A failed diagnostic write is deliberately not asserted on; correctness
	// must not depend on diagnostic delivery.
	_, _ = Emit(s.out, loc, format, args...)
	return false
}

func compare(got int64, rel string, want int64) (ok, known bool) {
	switch rel {
	case "==":
		return got == want, true
	case "!=":
		return got != want, true
	case "<":
		return got < want, true
	case "<=":
		return got <= want, true
	case ">":
		return got > want, true
	case ">=":
		return got >= want, true
	}
	return false, false
}

// callerLocation builds the file:line stamp the C harness got from
// __FILE__/__LINE__ macro expansion.
func callerLocation(skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "???:0"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}
