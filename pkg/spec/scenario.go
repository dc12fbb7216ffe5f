package spec

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
)

// Scenario is a named, ordered sequence of steps.
type Scenario struct {
	// Name is the scenario name as written in the source file.
	Name string

	// Tags contains the tag names attached to the scenario (e.g. "@smoke"),
	// including inherited ones.
	Tags []string

	// Line is the 1-based source line of the scenario header, 0 when unknown.
	Line int

	Steps []*Step

	// StepDefinitions is the registry steps are resolved against. It is
	// shared with the owning document, never copied.
	StepDefinitions Registry

	passed bool
	err    error
}

// VerifyConfig tunes a scenario verification.
type VerifyConfig struct {
	// Hooks runs step and scenario hooks. May be nil.
	Hooks *HookExecutor

	// Strict makes undefined and pending steps fail the scenario.
	Strict bool
}

// Passed reports whether the last verification passed.
func (s *Scenario) Passed() bool {
	return s.passed
}

// Err returns the failure detail of the last verification, nil if it passed.
func (s *Scenario) Err() error {
	return s.err
}

// Verify resolves and runs every step in order. After a failed step the
// remaining steps are skipped. After an undefined or pending step the
// remaining steps are not executed; those without a definition are still
// reported as undefined so that stubs can be offered for them.
func (s *Scenario) Verify(ctx context.Context, cfg VerifyConfig) {
	s.passed = true
	s.err = nil
	for _, step := range s.Steps {
		step.reset()
	}

	cfg.Hooks.ExecuteBeforeScenario(s)

	halt := NotRun
	for _, step := range s.Steps {
		if halt != NotRun {
			step.record(s.notExecuted(step, halt))
			continue
		}

		cfg.Hooks.ExecuteBeforeStep(s, step)

		var outcome Outcome
		ctx, outcome = s.execute(ctx, step)
		step.record(outcome)

		cfg.Hooks.ExecuteAfterStep(s, step, outcome)

		switch outcome.Result {
		case Failed:
			halt = Failed
			s.fail(outcome.Err)
		case Undefined:
			halt = Undefined
			if cfg.Strict {
				s.fail(fmt.Errorf("undefined step: %s", step.Text))
			}
		case Pending:
			halt = Pending
			if cfg.Strict {
				s.fail(fmt.Errorf("pending step %q: %w", step.Text, outcome.Err))
			}
		}
	}

	cfg.Hooks.ExecuteAfterScenario(s)
}

func (s *Scenario) fail(err error) {
	s.passed = false
	s.err = err
}

func (s *Scenario) notExecuted(step *Step, halt StepResult) Outcome {
	if halt == Failed {
		return Outcome{Result: Skipped}
	}
	if s.StepDefinitions == nil {
		return Outcome{Result: Undefined}
	}
	if _, ok := s.StepDefinitions.Resolve(step); !ok {
		return Outcome{Result: Undefined}
	}
	return Outcome{Result: Skipped}
}

func (s *Scenario) execute(ctx context.Context, step *Step) (next context.Context, outcome Outcome) {
	next = ctx
	if s.StepDefinitions == nil {
		return next, Outcome{Result: Undefined}
	}

	action, ok := s.StepDefinitions.Resolve(step)
	if !ok {
		return next, Outcome{Result: Undefined}
	}

	defer func() {
		if r := recover(); r != nil {
			outcome = Outcome{Result: Failed, Err: NewStepError(r, debug.Stack())}
		}
	}()

	newCtx, err := action(ctx)
	if newCtx != nil {
		next = newCtx
	}

	switch {
	case err == nil:
		return next, Outcome{Result: Passed}
	case errors.Is(err, ErrPending):
		return next, Outcome{Result: Pending, Err: err}
	default:
		return next, Outcome{Result: Failed, Err: err}
	}
}
