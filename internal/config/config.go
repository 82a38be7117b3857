package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the posixprobe runner configuration
type Config struct {
	// Workdir is where probe scratch directories are created.
	// Empty means the system temp directory.
	Workdir string `yaml:"workdir"`

	// Probes run by default when none are named on the command line.
	Probes []string `yaml:"probes"`

	// Color controls verdict coloring: auto, always, or never.
	Color string `yaml:"color"`

	// KeepScratch leaves probe scratch directories behind for inspection.
	KeepScratch bool `yaml:"keep_scratch"`
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyDefaults fills unset fields so a minimal hand-written config file
// loads instead of failing validation.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Color == "" {
		c.Color = defaults.Color
	}
	if len(c.Probes) == 0 {
		c.Probes = defaults.Probes
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color mode %q (want auto, always, or never)", c.Color)
	}

	if len(c.Probes) == 0 {
		return fmt.Errorf("at least one probe is required")
	}
	for _, name := range c.Probes {
		if name == "" {
			return fmt.Errorf("probe names must be non-empty")
		}
	}

	if c.Workdir != "" {
		info, err := os.Stat(c.Workdir)
		if err != nil {
			return fmt.Errorf("workdir is not usable: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("workdir %s is not a directory", c.Workdir)
		}
	}

	return nil
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Workdir: "",
		Probes: []string{
			"scantext",
			"fsmeta",
			"timestamp",
			"localstate",
			"pingpong",
		},
		Color:       "auto",
		KeepScratch: false,
	}
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, path string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
