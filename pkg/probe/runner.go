package probe

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/conformd/posixprobe/pkg/check"
)

// Runner executes probes sequentially, each against a fresh assertion state
// and a fresh scratch workspace. The exit contract stays per-run: the caller
// maps the failed count to the process exit code.
type Runner struct {
	// Out receives probe diagnostics, verdict lines, and the summary.
	// Defaults to stdout.
	Out io.Writer

	// WorkRoot is where scratch directories are created. Empty selects the
	// system temp directory.
	WorkRoot string

	// Keep leaves scratch directories behind for inspection.
	Keep bool

	// Verbose enables per-probe progress lines.
	Verbose bool

	// Child describes how probes spawn their re-exec'd child half.
	Child ChildSpec
}

// Run executes the named probes (all registered probes when names is empty)
// and returns how many failed. A scratch setup error aborts the run; probe
// assertion failures do not.
func (r *Runner) Run(reg *Registry, names []string) (int, error) {
	probes, err := reg.Select(names)
	if err != nil {
		return 0, err
	}

	out := r.Out
	if out == nil {
		out = os.Stdout
	}

	failed := 0
	for _, p := range probes {
		env, ws, err := r.newEnv(p.Name, out)
		if err != nil {
			return failed, fmt.Errorf("failed to prepare scratch for %s: %w", p.Name, err)
		}

		env.Logf("=== %s (%s)", p.Name, env.Dir)
		st := check.New(out)
		p.Run(st, env)

		if !r.Keep {
			if err := ws.Cleanup(); err != nil {
				env.Logf("scratch cleanup: %v", err)
			}
		}

		if st.Failed() {
			failed++
			fmt.Fprintf(out, "%s %s\n", color.RedString("FAIL"), p.Name)
		} else {
			fmt.Fprintf(out, "%s %s\n", color.GreenString("PASS"), p.Name)
		}
	}

	fmt.Fprintf(out, "%d probe(s) run, %d failed\n", len(probes), failed)
	return failed, nil
}

func (r *Runner) newEnv(name string, out io.Writer) (*Env, *LocalWorkspace, error) {
	root := r.WorkRoot
	if root == "" {
		root = os.TempDir()
	}
	dir := filepath.Join(root, fmt.Sprintf("posixprobe-%s-%s", name, uuid.NewString()[:8]))

	ws, err := NewLocalWorkspace(dir)
	if err != nil {
		return nil, nil, err
	}

	return &Env{
		Store:   ws,
		Dir:     dir,
		Out:     out,
		Verbose: r.Verbose,
		Child:   r.Child,
	}, ws, nil
}
