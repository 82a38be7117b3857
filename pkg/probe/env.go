package probe

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
)

// ChildSpec describes how to launch the re-exec'd child half of a
// parent/child probe. Argv[0] is the executable; Env entries are appended to
// the inherited environment.
type ChildSpec struct {
	Argv []string
	Env  []string
}

// Env is the per-run environment handed to a probe. Store holds scratch
// objects; Dir is the path-backed scratch root when the workspace lives on
// the real filesystem (probes exercising stat or utimensat need real paths).
type Env struct {
	Store   Workspace
	Dir     string
	Out     io.Writer
	Verbose bool
	Child   ChildSpec
}

// Path maps a scratch object key to a filesystem path. It fails when the
// environment is not path-backed (e.g. an in-memory workspace in tests).
func (e *Env) Path(key string) (string, error) {
	if e.Dir == "" {
		return "", fmt.Errorf("workspace is not path-backed")
	}
	return filepath.Join(e.Dir, filepath.FromSlash(key)), nil
}

// ScratchKey returns a collision-free object key for stem. Probes use it for
// scratch files that must not clash across repeated runs in a kept workdir.
func (e *Env) ScratchKey(stem string) string {
	return fmt.Sprintf("%s-%s", stem, uuid.NewString()[:8])
}

// Logf writes a progress line when verbose output is enabled.
func (e *Env) Logf(format string, args ...interface{}) {
	if e.Verbose && e.Out != nil {
		fmt.Fprintf(e.Out, format+"\n", args...)
	}
}
