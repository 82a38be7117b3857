package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available probes",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := defaultRegistry()
			for _, name := range reg.Names() {
				p, _ := reg.Lookup(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", p.Name, p.Summary)
			}
			return nil
		},
	}
}
