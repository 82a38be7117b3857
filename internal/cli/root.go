package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/conformd/posixprobe/internal/config"
)

// Global flags
var (
	cfgFile string
	verbose bool
	cfg     *config.Config
)

// NewRootCommand creates the root cobra command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "posixprobe",
		Short: "POSIX behavior conformance probes",
		Long: `posixprobe runs small, self-contained conformance probes against the
running operating system: formatted input scanning, stat/fstat file
metadata, utimensat/futimens timestamp handling, per-worker state
isolation, and parent/child pipe coordination.

Each probe is an independent sequence of assertions; a failed assertion
prints one diagnostic line and marks the probe failed without stopping
it. The process exits 0 only when every selected probe passed.`,
		Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./posixprobe.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Initialize configuration
	cobra.OnInitialize(initConfig)

	// Add subcommands
	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewListCommand())
	rootCmd.AddCommand(NewInitCommand())
	rootCmd.AddCommand(NewPingChildCommand())

	return rootCmd
}

// initConfig loads configuration from file
func initConfig() {
	if cfgFile == "" {
		// Try default locations
		if _, err := os.Stat("posixprobe.yaml"); err == nil {
			cfgFile = "posixprobe.yaml"
		} else if _, err := os.Stat("posixprobe.yml"); err == nil {
			cfgFile = "posixprobe.yml"
		}
	}

	if cfgFile != "" {
		var err error
		cfg, err = config.LoadConfig(cfgFile)
		if err != nil {
			if verbose {
				fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
			}
		}
	}
}

// GetConfig returns the loaded configuration, falling back to defaults
func GetConfig() *config.Config {
	if cfg == nil {
		return config.DefaultConfig()
	}
	return cfg
}
