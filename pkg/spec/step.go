// Package spec holds the data model shared by the parsers, the step
// registry, the document and the reporters: steps, scenarios, blocks and
// the outcome of verifying them.
package spec

import (
	"context"
	"strings"
)

// Block is auxiliary data attached to a step, such as a table or a text
// blob. It knows how to render itself and which parameter a step definition
// should declare to receive it.
type Block interface {
	// Format renders the block as report text, including trailing newlines.
	Format() string
	// SuggestedParameterType is the Go type a step definition declares for the block.
	SuggestedParameterType() string
	// SuggestedParameterName is the parameter name used in generated stubs.
	SuggestedParameterName() string
}

// Action is a step definition bound to one step. It receives the scenario
// context and may return a replacement for it.
type Action func(ctx context.Context) (context.Context, error)

// Registry resolves steps to executable actions.
type Registry interface {
	Resolve(step *Step) (Action, bool)
}

// Outcome is the tagged result of executing a single step.
type Outcome struct {
	Result StepResult
	Err    error
}

// Step is one Given/When/Then line of a scenario.
type Step struct {
	// Text is the whole step line including its leading keyword
	// (e.g. "Given I am logged in").
	Text string

	// Keyword is the leading keyword of Text when the parser knows it, such
	// as "Etant donné que" in a localized feature. Empty means the first word.
	Keyword string

	// Kind is the resolved kind; And/But lines take the kind of the step before them.
	Kind StepKind

	// Block is the optional table or text attached to the step.
	Block Block

	// Line is the 1-based source line, 0 when unknown.
	Line int

	result StepResult
	err    error
}

// NewStep creates a step that has not been verified yet.
func NewStep(kind StepKind, text string) *Step {
	return &Step{
		Kind: kind,
		Text: text,
	}
}

// Result returns the verification result of the step.
func (s *Step) Result() StepResult {
	return s.result
}

// Err returns the failure detail recorded for a failed or pending step.
func (s *Step) Err() error {
	return s.err
}

// Body returns the step text without its leading keyword. This is the text
// step definitions are matched against.
func (s *Step) Body() string {
	text := strings.TrimSpace(s.Text)
	if s.Keyword != "" {
		if rest, ok := strings.CutPrefix(text, s.Keyword); ok {
			return strings.TrimSpace(rest)
		}
	}

	_, body, found := strings.Cut(text, " ")
	if !found {
		return ""
	}
	return strings.TrimSpace(body)
}

func (s *Step) record(o Outcome) {
	if s.result != NotRun {
		return
	}
	s.result = o.Result
	s.err = o.Err
}

func (s *Step) reset() {
	s.result = NotRun
	s.err = nil
}
