package runner

import (
	"io"
	"log/slog"
)

// Config holds runtime configuration settings for a run.
// Settings are merged from all given configs (last wins).
type Config struct {
	// FailFast stops the run after the first failed specification.
	FailFast bool

	// Strict makes undefined and pending steps fail their scenario.
	Strict bool

	// NoColor disables colored step symbols.
	NoColor bool

	// Summary prints scenario and step totals at the end of the run.
	Summary bool

	// Tags is a tag expression selecting the scenarios to run, e.g. "@smoke and not @slow".
	Tags string

	// Output receives the report. If nil, stdout is used.
	Output io.Writer

	// Logger receives parse warnings and verification records. If nil, logs are discarded.
	Logger *slog.Logger
}

// MergeConfigs combines multiple configs into one.
// Later configs override earlier ones (last wins).
func MergeConfigs(configs ...*Config) *Config {
	result := &Config{}

	for _, cfg := range configs {
		if cfg == nil {
			continue
		}

		if cfg.FailFast {
			result.FailFast = true
		}
		if cfg.Strict {
			result.Strict = true
		}
		if cfg.NoColor {
			result.NoColor = true
		}
		if cfg.Summary {
			result.Summary = true
		}
		if cfg.Tags != "" {
			result.Tags = cfg.Tags
		}
		if cfg.Output != nil {
			result.Output = cfg.Output
		}
		if cfg.Logger != nil {
			result.Logger = cfg.Logger
		}
	}

	return result
}
