package spec

import "strings"

// StepKind is the Given/When/Then family a step belongs to.
type StepKind int

const (
	// Unknown is the zero value. Reporters use it to detect the first step.
	Unknown StepKind = iota
	Given
	When
	Then
)

// String returns the kind name as written in a step file.
func (k StepKind) String() string {
	switch k {
	case Given:
		return "Given"
	case When:
		return "When"
	case Then:
		return "Then"
	default:
		return "Unknown"
	}
}

// ParseStepKind maps a step keyword to its kind, ignoring case.
// It reports false for continuation keywords (And, But, *) and anything else.
func ParseStepKind(keyword string) (StepKind, bool) {
	switch strings.ToLower(strings.TrimSpace(keyword)) {
	case "given":
		return Given, true
	case "when":
		return When, true
	case "then":
		return Then, true
	default:
		return Unknown, false
	}
}

// StepResult represents the verification outcome of a step.
type StepResult int

const (
	// NotRun is the result of a step that has not been verified yet.
	NotRun StepResult = iota
	// Passed indicates the step executed successfully.
	Passed
	// Failed indicates the step failed (panic or returned error).
	Failed
	// Undefined indicates no step definition matched the step text.
	Undefined
	// Pending indicates the step definition is not finished yet.
	Pending
	// Skipped indicates the step was not executed due to an earlier step.
	Skipped
)

// String returns a human-readable label for the step result.
func (r StepResult) String() string {
	switch r {
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	case Undefined:
		return "undefined"
	case Pending:
		return "pending"
	case Skipped:
		return "skipped"
	default:
		return "not run"
	}
}
