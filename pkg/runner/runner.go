package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/denizgursoy/plainspec/pkg/document"
	"github.com/denizgursoy/plainspec/pkg/executor"
	"github.com/denizgursoy/plainspec/pkg/gherkin_parser"
	"github.com/denizgursoy/plainspec/pkg/plaintext"
	"github.com/denizgursoy/plainspec/pkg/reporter"
	"github.com/denizgursoy/plainspec/pkg/spec"
)

// ErrFailed is returned by Run when at least one specification failed.
var ErrFailed = errors.New("specifications failed")

type (
	// Runner discovers specification files, verifies each one as a
	// document and reports it.
	Runner struct {
		config             *Config
		featureDirectories []string
		steps              []stepDefinition
		customTypes        []executor.CustomType
		patterns           map[string]bool
		hooks              []*spec.Hooks
		reporter           document.Reporter
		errs               []error
	}

	stepDefinition struct {
		pattern  string
		function any
	}

	summaryPrinter interface {
		PrintSummary() error
	}
)

func NewRunner() *Runner {
	return &Runner{
		config:   &Config{},
		patterns: make(map[string]bool),
	}
}

func (r *Runner) WithConfig(configs ...*Config) *Runner {
	r.config = MergeConfigs(append([]*Config{r.config}, configs...)...)

	return r
}

func (r *Runner) WithConfigFunc(configFunction func() *Config) *Runner {
	if configFunction != nil {
		r.WithConfig(configFunction())
	}

	return r
}

func (r *Runner) WithFeaturesDirectories(directories ...string) *Runner {
	r.featureDirectories = directories

	return r
}

func (r *Runner) WithHooks(hooks ...*spec.Hooks) *Runner {
	r.hooks = append(r.hooks, hooks...)

	return r
}

// WithReporter replaces the plain-text reporter writing to Config.Output.
func (r *Runner) WithReporter(rep document.Reporter) *Runner {
	r.reporter = rep

	return r
}

// RegisterStep adds a step definition. Registration errors are returned by Run.
func (r *Runner) RegisterStep(pattern string, function any) *Runner {
	if r.patterns[pattern] {
		r.errs = append(r.errs, fmt.Errorf("duplicate step pattern: %s", pattern))
		return r
	}
	r.patterns[pattern] = true
	r.steps = append(r.steps, stepDefinition{pattern: pattern, function: function})

	return r
}

// RegisterCustomType restricts step parameters of the named type to the
// given values, matched case-insensitively.
func (r *Runner) RegisterCustomType(name, underlying string, values map[string]string) *Runner {
	r.customTypes = append(r.customTypes, executor.CustomType{Name: name, Underlying: underlying, Values: values})

	return r
}

// Run verifies every .specs and .feature file found in the feature
// directories (the working directory by default). It returns an error
// wrapping ErrFailed when any specification failed.
func (r *Runner) Run(ctx context.Context) error {
	if len(r.errs) > 0 {
		return errors.Join(r.errs...)
	}

	if len(r.featureDirectories) == 0 {
		r.featureDirectories = append(r.featureDirectories, ".")
	}

	logger := r.config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	files, err := gherkin_parser.SearchFeatureFilesIn(r.featureDirectories, gherkin_parser.FeatureExtension, plaintext.Extension)
	if err != nil {
		return err
	}
	logger.Debug("specification files found", "count", len(files))

	registry := executor.NewStepExecutor()
	for _, ct := range r.customTypes {
		registry.RegisterCustomType(ct.Name, ct.Underlying, ct.Values)
	}
	for _, step := range r.steps {
		if err := registry.RegisterStep(step.pattern, step.function); err != nil {
			return err
		}
	}

	rep := r.reporter
	if rep == nil {
		output := r.config.Output
		if output == nil {
			output = os.Stdout
		}
		rep = reporter.NewPlainTextReporter(output, reporter.WithColors(!r.config.NoColor))
	}

	failed := make([]string, 0)
	for _, file := range files {
		doc, err := document.New(
			document.WithStepDefinitions(registry),
			document.WithReporter(rep),
			document.WithLogger(logger),
			document.WithHooks(r.hooks...),
			document.WithStrict(r.config.Strict),
			document.WithTags(r.config.Tags),
		)
		if err != nil {
			return err
		}

		if err := doc.LoadFile(file); err != nil {
			return err
		}

		if !doc.Verify(ctx) {
			failed = append(failed, file)
		}

		if err := doc.Report(); err != nil {
			return err
		}

		if len(failed) > 0 && r.config.FailFast {
			break
		}
	}

	if printer, ok := rep.(summaryPrinter); ok && r.config.Summary {
		if err := printer.PrintSummary(); err != nil {
			return err
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("%w: %d of %d: %v", ErrFailed, len(failed), len(files), failed)
	}
	return nil
}
