// Package reporter renders verified scenarios as plain text, one scenario at
// a time, followed by stub code for the undefined steps.
package reporter

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/denizgursoy/plainspec/pkg/spec"
	"github.com/denizgursoy/plainspec/pkg/stub"
)

// UndefinedStepsHeader introduces the stub code of undefined steps.
const UndefinedStepsHeader = "Your undefined steps can be defined with the following code:"

// Divider separates scenarios in full-document mode.
const Divider = "---"

// Symbols for step results
const (
	symbolUndefined = "?"
	symbolPending   = "*"
	symbolPassed    = " "
	symbolFailed    = "!"
	symbolSkipped   = "-"
)

var (
	// "  at <frame> in <file>:line <N>"; the frame runs to the last " in ".
	atFrame = regexp.MustCompile(`  at (.+) in (.+):line (\d+)`)
	// "<frame>\n\t<file>:<N> +0x1f" as printed by runtime/debug.Stack
	goFrame = regexp.MustCompile(`(?m)^(\S[^\n]*)\n\t([^\n]+?):(\d+)(?: \+0x[0-9a-f]+)?$`)
)

// Symbol returns the one-character marker printed before a step.
func Symbol(result spec.StepResult) string {
	switch result {
	case spec.Undefined:
		return symbolUndefined
	case spec.Pending:
		return symbolPending
	case spec.Passed:
		return symbolPassed
	case spec.Failed:
		return symbolFailed
	default:
		return symbolSkipped
	}
}

// Clickable rewrites stack frames into "<file>(<N>): <frame>" lines that
// editors and terminals recognise as source locations.
func Clickable(trace string) string {
	trace = atFrame.ReplaceAllString(trace, "${2}(${3}): ${1}")
	return goFrame.ReplaceAllString(trace, "${2}(${3}): ${1}")
}

// Summary counts what the reporter has rendered.
type Summary struct {
	ScenariosTotal  int
	ScenariosPassed int
	ScenariosFailed int
	StepsTotal      int
	Steps           map[spec.StepResult]int
}

// Option configures a PlainTextReporter.
type Option func(*PlainTextReporter)

// WithColors colours the step symbols.
func WithColors(useColors bool) Option {
	return func(r *PlainTextReporter) {
		r.useColors = useColors
	}
}

// WithSummary makes End print scenario and step totals.
func WithSummary(enabled bool) Option {
	return func(r *PlainTextReporter) {
		r.printSummary = enabled
	}
}

// PlainTextReporter writes the plain-text report. Consecutive steps of the
// same kind are grouped; a blank line is written whenever the kind changes.
// The last kind is kept across scenarios and documents until Reset is called.
// It is not safe for concurrent use.
type PlainTextReporter struct {
	out          *errWriter
	useColors    bool
	printSummary bool
	styles       map[spec.StepResult]lipgloss.Style

	lastKind spec.StepKind
	summary  Summary
}

// NewPlainTextReporter creates a reporter writing to w; a nil w means stdout.
func NewPlainTextReporter(w io.Writer, opts ...Option) *PlainTextReporter {
	if w == nil {
		w = os.Stdout
	}

	r := &PlainTextReporter{
		out: &errWriter{w: w},
		styles: map[spec.StepResult]lipgloss.Style{
			spec.Undefined: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
			spec.Pending:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
			spec.Failed:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
			spec.Skipped:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	r.summary.Steps = make(map[spec.StepResult]int)
	return r
}

// Reset forgets the kind of the last rendered step.
func (r *PlainTextReporter) Reset() {
	r.lastKind = spec.Unknown
}

// Summary returns the totals collected so far.
func (r *PlainTextReporter) Summary() Summary {
	return r.summary
}

// Begin starts a document. Nothing is written; it returns any earlier write error.
func (r *PlainTextReporter) Begin(name string) error {
	return r.out.err
}

// ReportScenario writes the scenario header, one status line per step with
// its block, and the failure detail if the scenario failed.
func (r *PlainTextReporter) ReportScenario(scenario *spec.Scenario) error {
	r.out.line("Scenario: " + scenario.Name)
	r.out.line("")

	for _, step := range scenario.Steps {
		if r.lastKind != spec.Unknown && step.Kind != r.lastKind {
			r.out.line("")
		}
		r.lastKind = step.Kind

		r.out.line(r.symbol(step.Result()) + " " + step.Text)
		if step.Block != nil {
			r.out.write(step.Block.Format())
		}
		r.count(step)
	}

	r.out.line("")

	if err := scenario.Err(); err != nil {
		r.out.line(err.Error())
		r.out.line("")
		if trace := spec.TraceOf(err); trace != "" {
			r.out.line(strings.TrimRight(Clickable(trace), "\n"))
			r.out.line("")
		}
	}

	r.summary.ScenariosTotal++
	if scenario.Passed() {
		r.summary.ScenariosPassed++
	} else {
		r.summary.ScenariosFailed++
	}

	return r.out.err
}

// ReportUndefinedSteps writes stub code for each step in the given order.
// Nothing is written for an empty list.
func (r *PlainTextReporter) ReportUndefinedSteps(steps []*spec.Step) error {
	if len(steps) == 0 {
		return r.out.err
	}

	r.out.line(UndefinedStepsHeader)
	r.out.line("")
	for _, step := range steps {
		r.out.line(stub.Code(step))
		r.out.line("")
	}
	return r.out.err
}

// End finishes a document, printing the summary when enabled.
func (r *PlainTextReporter) End() error {
	if r.printSummary {
		return r.PrintSummary()
	}
	return r.out.err
}

// ReportDocument renders a whole document: every scenario followed by a
// divider, then the undefined steps of all scenarios.
func (r *PlainTextReporter) ReportDocument(name string, scenarios []*spec.Scenario) error {
	if err := r.Begin(name); err != nil {
		return err
	}
	for _, scenario := range scenarios {
		if err := r.ReportScenario(scenario); err != nil {
			return err
		}
		r.out.line(Divider)
		r.out.line("")
	}
	if err := r.ReportUndefinedSteps(spec.UndefinedSteps(scenarios)); err != nil {
		return err
	}
	return r.End()
}

func (r *PlainTextReporter) symbol(result spec.StepResult) string {
	symbol := Symbol(result)
	if !r.useColors {
		return symbol
	}
	if style, ok := r.styles[result]; ok {
		return style.Render(symbol)
	}
	return symbol
}

func (r *PlainTextReporter) count(step *spec.Step) {
	r.summary.StepsTotal++
	r.summary.Steps[step.Result()]++
}

// PrintSummary writes the scenario and step totals collected so far.
func (r *PlainTextReporter) PrintSummary() error {
	r.out.line(fmt.Sprintf("%d scenario(s)%s", r.summary.ScenariosTotal, breakdown(
		tally{r.summary.ScenariosPassed, "passed"},
		tally{r.summary.ScenariosFailed, "failed"},
	)))
	r.out.line(fmt.Sprintf("%d step(s)%s", r.summary.StepsTotal, breakdown(
		tally{r.summary.Steps[spec.Passed], "passed"},
		tally{r.summary.Steps[spec.Failed], "failed"},
		tally{r.summary.Steps[spec.Undefined], "undefined"},
		tally{r.summary.Steps[spec.Pending], "pending"},
		tally{r.summary.Steps[spec.Skipped], "skipped"},
	)))
	return r.out.err
}

type tally struct {
	n     int
	label string
}

// breakdown renders " (2 passed, 1 failed)", leaving out zero counts.
func breakdown(tallies ...tally) string {
	parts := make([]string, 0, len(tallies))
	for _, t := range tallies {
		if t.n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", t.n, t.label))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

// errWriter remembers the first write error and drops all later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) write(s string) {
	if e.err != nil {
		return
	}
	if _, err := io.WriteString(e.w, s); err != nil {
		e.err = fmt.Errorf("write report: %w", err)
	}
}

func (e *errWriter) line(s string) {
	e.write(s + "\n")
}
