// Package config loads plainspec settings from YAML files.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/denizgursoy/plainspec/pkg/runner"
	"gopkg.in/yaml.v3"
)

// FileName is the project-level config file searched in the working directory.
const FileName = "plainspec.yaml"

// Config is the on-disk configuration.
type Config struct {
	// Paths are the directories or files searched for specifications.
	Paths    []string `yaml:"paths"`
	Tags     string   `yaml:"tags"`
	Strict   bool     `yaml:"strict"`
	FailFast bool     `yaml:"fail_fast"`
	NoColor  bool     `yaml:"no_color"`
	Summary  bool     `yaml:"summary"`
	Verbose  bool     `yaml:"verbose"`

	// Stubs configures the stubs command.
	Stubs StubsConfig `yaml:"stubs"`
}

type StubsConfig struct {
	Output  string `yaml:"output"`
	Package string `yaml:"package"`
}

// Load reads and parses a config from the given YAML file path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadDefault loads the first config found in the standard locations.
// Search order: ./plainspec.yaml, ~/.plainspec/config.yaml. An empty config
// is returned when none exists.
func LoadDefault() (*Config, error) {
	candidates := []string{FileName}

	home, err := os.UserHomeDir()
	if err == nil {
		candidates = append(candidates, filepath.Join(home, ".plainspec", "config.yaml"))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}

	return &Config{}, nil
}

// Merge combines configs; later configs override earlier ones (last wins).
func Merge(configs ...*Config) *Config {
	result := &Config{}

	for _, cfg := range configs {
		if cfg == nil {
			continue
		}

		if len(cfg.Paths) > 0 {
			result.Paths = cfg.Paths
		}
		if cfg.Tags != "" {
			result.Tags = cfg.Tags
		}
		if cfg.Strict {
			result.Strict = true
		}
		if cfg.FailFast {
			result.FailFast = true
		}
		if cfg.NoColor {
			result.NoColor = true
		}
		if cfg.Summary {
			result.Summary = true
		}
		if cfg.Verbose {
			result.Verbose = true
		}
		if cfg.Stubs.Output != "" {
			result.Stubs.Output = cfg.Stubs.Output
		}
		if cfg.Stubs.Package != "" {
			result.Stubs.Package = cfg.Stubs.Package
		}
	}

	return result
}

// Runner converts the file settings into a runner configuration.
func (c *Config) Runner(output io.Writer, logger *slog.Logger) *runner.Config {
	return &runner.Config{
		FailFast: c.FailFast,
		Strict:   c.Strict,
		NoColor:  c.NoColor,
		Summary:  c.Summary,
		Tags:     c.Tags,
		Output:   output,
		Logger:   logger,
	}
}
