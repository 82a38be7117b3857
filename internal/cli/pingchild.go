package cli

import (
	"github.com/spf13/cobra"

	"github.com/conformd/posixprobe/pkg/probes/pingpong"
)

// NewPingChildCommand creates the hidden child half of the pingpong probe.
// The parent probe re-execs this binary with this command, pipes a sentinel
// byte to its stdin, and expects it echoed on stdout.
func NewPingChildCommand() *cobra.Command {
	return &cobra.Command{
		Use:    "ping-child",
		Short:  "Child half of the pingpong probe",
		Hidden: true,
		Args:   cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			// Never returns; exits with the child's harness status.
			pingpong.ChildMain()
		},
	}
}
