package spec

import (
	"errors"
	"fmt"
)

// ErrPending is returned (or wrapped) by a step definition that is not
// implemented yet. The step is then reported as pending instead of failed.
var ErrPending = errors.New("step is pending")

// StepError is the failure detail recorded when a step panics.
type StepError struct {
	Message string
	Stack   string
}

func (e *StepError) Error() string {
	return e.Message
}

// Trace returns the stack captured when the step failed.
func (e *StepError) Trace() string {
	return e.Stack
}

// NewStepError builds a StepError from a recovered panic value.
func NewStepError(recovered any, stack []byte) *StepError {
	var msg string
	switch v := recovered.(type) {
	case error:
		msg = v.Error()
	case string:
		msg = v
	default:
		msg = fmt.Sprint(v)
	}

	return &StepError{
		Message: msg,
		Stack:   string(stack),
	}
}

// TraceOf returns the trace carried by err, or an empty string when err has none.
func TraceOf(err error) string {
	var tracer interface{ Trace() string }
	if errors.As(err, &tracer) {
		return tracer.Trace()
	}
	return ""
}
