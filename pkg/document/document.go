// Package document loads a specification, verifies its scenarios against
// a step-definition registry and reports the outcome.
package document

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tagexpressions "github.com/cucumber/tag-expressions/go/v6"
	"github.com/denizgursoy/plainspec/pkg/executor"
	"github.com/denizgursoy/plainspec/pkg/gherkin_parser"
	"github.com/denizgursoy/plainspec/pkg/plaintext"
	"github.com/denizgursoy/plainspec/pkg/reporter"
	"github.com/denizgursoy/plainspec/pkg/spec"
	"github.com/google/uuid"
)

// documentReporter is implemented by reporters that render a whole document
// at once, dividing scenarios.
type documentReporter interface {
	ReportDocument(name string, scenarios []*spec.Scenario) error
}

// Document is a loaded specification. It owns its scenarios and the
// registry they are bound to. A Document is not safe for concurrent use;
// independent documents may run in parallel.
type Document struct {
	name      string
	named     bool
	registry  *executor.StepExecutor
	scenarios []*spec.Scenario
	passed    bool

	reporter Reporter
	logger   *slog.Logger
	hooks    []*spec.Hooks
	strict   bool

	tags   string
	filter tagexpressions.Evaluatable

	parsers       map[string]Parser
	defaultParser Parser
}

// Option configures a Document.
type Option func(*Document)

// WithName names the document. Without it the name comes from the loaded text.
func WithName(name string) Option {
	return func(d *Document) {
		d.name = name
		d.named = name != ""
	}
}

// WithReporter sets the reporter used by Report.
func WithReporter(r Reporter) Option {
	return func(d *Document) {
		d.reporter = r
	}
}

// WithLogger sets the logger for parse anomalies and verification records.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Document) {
		d.logger = logger
	}
}

// WithHooks adds lifecycle hooks run during Verify.
func WithHooks(hooks ...*spec.Hooks) Option {
	return func(d *Document) {
		d.hooks = append(d.hooks, hooks...)
	}
}

// WithStrict makes undefined and pending steps fail their scenario.
func WithStrict(strict bool) Option {
	return func(d *Document) {
		d.strict = strict
	}
}

// WithTags keeps only the scenarios matching a tag expression such as
// "@smoke and not @slow".
func WithTags(expression string) Option {
	return func(d *Document) {
		d.tags = expression
	}
}

// WithStepDefinitions shares an existing registry instead of creating one.
func WithStepDefinitions(registry *executor.StepExecutor) Option {
	return func(d *Document) {
		d.registry = registry
	}
}

// WithParser parses files with the given extension using p.
func WithParser(extension string, p Parser) Option {
	return func(d *Document) {
		d.parsers[extension] = p
	}
}

// New creates an empty document.
func New(opts ...Option) (*Document, error) {
	d := &Document{
		scenarios: make([]*spec.Scenario, 0),
		parsers:   make(map[string]Parser),
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = slog.New(slog.DiscardHandler)
	}
	if d.registry == nil {
		d.registry = executor.NewStepExecutor()
	}
	if d.reporter == nil {
		d.reporter = reporter.NewPlainTextReporter(os.Stdout)
	}

	d.defaultParser = plaintext.NewReader(d.logger)
	if _, ok := d.parsers[plaintext.Extension]; !ok {
		d.parsers[plaintext.Extension] = d.defaultParser
	}
	if _, ok := d.parsers[gherkin_parser.FeatureExtension]; !ok {
		d.parsers[gherkin_parser.FeatureExtension] = gherkin_parser.NewReader()
	}

	if strings.TrimSpace(d.tags) != "" {
		filter, err := tagexpressions.Parse(d.tags)
		if err != nil {
			return nil, fmt.Errorf("invalid tag expression %q: %w", d.tags, err)
		}
		d.filter = filter
	}

	return d, nil
}

// Name returns the document name.
func (d *Document) Name() string {
	return d.name
}

// StepDefinitions returns the registry shared by every scenario of the document.
func (d *Document) StepDefinitions() *executor.StepExecutor {
	return d.registry
}

// Scenarios returns the loaded scenarios in document order.
func (d *Document) Scenarios() []*spec.Scenario {
	return d.scenarios
}

// Passed reports the result of the last Verify. It is false before Verify.
func (d *Document) Passed() bool {
	return d.passed
}

// LoadText parses plain-text specification text. Loading again replaces the
// scenarios of an earlier load.
func (d *Document) LoadText(text string) error {
	return d.load(d.defaultParser, d.explicitName(""), text)
}

// LoadFile reads and parses a specification file. The parser is chosen by
// file extension; unknown extensions are read as plain text.
func (d *Document) LoadFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read %s: %w", path, err)
	}

	parser, ok := d.parsers[filepath.Ext(path)]
	if !ok {
		parser = d.defaultParser
	}

	name := d.explicitName(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	return d.load(parser, name, string(content))
}

// explicitName returns the name given with WithName, or fallback.
func (d *Document) explicitName(fallback string) string {
	if d.named {
		return d.name
	}
	return fallback
}

func (d *Document) load(parser Parser, name, text string) error {
	source, err := parser.Parse(name, text)
	if err != nil {
		return err
	}

	if !d.named {
		d.name = source.Name
		if d.name == "" {
			d.name = name
		}
	}

	scenarios := make([]*spec.Scenario, 0, len(source.Scenarios))
	for _, scenario := range source.Scenarios {
		if d.filter != nil && !d.filter.Evaluate(scenario.Tags) {
			continue
		}
		scenario.StepDefinitions = d.registry
		scenarios = append(scenarios, scenario)
	}

	d.scenarios = scenarios
	d.passed = false
	d.logger.Debug("specification loaded", "document", d.name, "scenarios", len(scenarios))
	return nil
}

// Verify runs every scenario in order and reports whether all of them
// passed. A failing scenario never stops the following ones.
func (d *Document) Verify(ctx context.Context) bool {
	logger := d.logger.With("run", uuid.NewString(), "document", d.name)
	hooks := spec.NewHookExecutor(d.hooks...)
	cfg := spec.VerifyConfig{Hooks: hooks, Strict: d.strict}

	hooks.ExecuteBeforeAll()

	passed := true
	for _, scenario := range d.scenarios {
		scenario.Verify(ctx, cfg)
		if scenario.Passed() {
			logger.Debug("scenario passed", "scenario", scenario.Name)
			continue
		}
		logger.Info("scenario failed", "scenario", scenario.Name, "error", scenario.Err())
		passed = false
	}

	hooks.ExecuteAfterAll()

	d.passed = passed
	return passed
}

// UndefinedSteps returns the distinct undefined steps of all scenarios.
func (d *Document) UndefinedSteps() []*spec.Step {
	return spec.UndefinedSteps(d.scenarios)
}

// Report renders the verified scenarios, then the undefined steps. Reporters
// able to render a whole document do so in one call. Only write failures
// are returned.
func (d *Document) Report() error {
	if r, ok := d.reporter.(documentReporter); ok {
		return r.ReportDocument(d.name, d.scenarios)
	}

	if err := d.reporter.Begin(d.name); err != nil {
		return err
	}
	for _, scenario := range d.scenarios {
		if err := d.reporter.ReportScenario(scenario); err != nil {
			return err
		}
	}
	if err := d.reporter.ReportUndefinedSteps(d.UndefinedSteps()); err != nil {
		return err
	}
	return d.reporter.End()
}
