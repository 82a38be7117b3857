package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conformd/posixprobe/pkg/probe"
)

type runOptions struct {
	workdir     string
	keepScratch bool
	colorMode   string
}

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run [probe...]",
		Short: "Run conformance probes",
		Long: `Run the named probes, or every configured probe when none are named.

Each probe gets a fresh scratch directory and a fresh assertion state.
Failed assertions print one diagnostic line each; the probe keeps going
so a single run yields as many diagnostics as possible.

Example:
  posixprobe run
  posixprobe run fsmeta timestamp
  posixprobe run --workdir /tmp/probes --keep-scratch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProbes(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.workdir, "workdir", "", "scratch root (overrides config)")
	cmd.Flags().BoolVar(&opts.keepScratch, "keep-scratch", false, "leave scratch directories behind")
	cmd.Flags().StringVar(&opts.colorMode, "color", "", "verdict coloring: auto, always, or never (overrides config)")

	return cmd
}

func runProbes(cmd *cobra.Command, opts *runOptions, names []string) error {
	cfg := GetConfig()

	// Override config with command line flags
	if opts.workdir != "" {
		cfg.Workdir = opts.workdir
	}
	if opts.keepScratch {
		cfg.KeepScratch = true
	}
	if opts.colorMode != "" {
		cfg.Color = opts.colorMode
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	switch cfg.Color {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}

	if len(names) == 0 {
		names = cfg.Probes
	}

	runner := &probe.Runner{
		Out:      cmd.OutOrStdout(),
		WorkRoot: cfg.Workdir,
		Keep:     cfg.KeepScratch,
		Verbose:  verbose,
		Child:    childSpec(),
	}

	failed, err := runner.Run(defaultRegistry(), names)
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d probe(s) failed", failed, len(names))
	}
	return nil
}

// childSpec points re-exec probes back at this binary's hidden child
// command.
func childSpec() probe.ChildSpec {
	exe, err := os.Executable()
	if err != nil {
		// The pingpong probe records the missing child as its own failure.
		return probe.ChildSpec{}
	}
	return probe.ChildSpec{Argv: []string{exe, "ping-child"}}
}
