package reporter

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/denizgursoy/plainspec/pkg/block"
	"github.com/denizgursoy/plainspec/pkg/spec"
	"github.com/stretchr/testify/require"
)

type registry map[string]spec.Action

func (r registry) Resolve(step *spec.Step) (spec.Action, bool) {
	action, ok := r[step.Body()]
	return action, ok
}

func pass(ctx context.Context) (context.Context, error) {
	return ctx, nil
}

func verified(name string, reg registry, steps ...*spec.Step) *spec.Scenario {
	s := &spec.Scenario{Name: name, Steps: steps, StepDefinitions: reg}
	s.Verify(context.Background(), spec.VerifyConfig{})
	return s
}

type failingWriter struct {
	writes int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	w.writes++
	return 0, errors.New("disk full")
}

func TestPlainTextReporter_ReportScenario(t *testing.T) {
	t.Run("should group steps by kind", func(t *testing.T) {
		var out bytes.Buffer
		r := NewPlainTextReporter(&out)
		s := verified("grouping", registry{"a": pass, "b": pass, "c": pass, "d": pass},
			spec.NewStep(spec.Given, "Given a"),
			spec.NewStep(spec.Given, "And b"),
			spec.NewStep(spec.When, "When c"),
			spec.NewStep(spec.Then, "Then d"),
		)

		err := r.ReportScenario(s)

		require.NoError(t, err)
		require.Equal(t, "Scenario: grouping\n\n"+
			"  Given a\n"+
			"  And b\n"+
			"\n"+
			"  When c\n"+
			"\n"+
			"  Then d\n"+
			"\n", out.String())
	})

	t.Run("should print a symbol for each result", func(t *testing.T) {
		var out bytes.Buffer
		r := NewPlainTextReporter(&out)
		s := verified("symbols", registry{
			"a": pass,
			"b": func(ctx context.Context) (context.Context, error) { return ctx, errors.New("boom") },
			"c": pass,
		},
			spec.NewStep(spec.Given, "Given a"),
			spec.NewStep(spec.Given, "Given b"),
			spec.NewStep(spec.Given, "Given c"),
		)

		require.NoError(t, r.ReportScenario(s))

		require.Equal(t, "Scenario: symbols\n\n"+
			"  Given a\n"+
			"! Given b\n"+
			"- Given c\n"+
			"\n"+
			"boom\n"+
			"\n", out.String())
	})

	t.Run("should mark undefined and pending steps", func(t *testing.T) {
		var out bytes.Buffer
		r := NewPlainTextReporter(&out)
		pending := verified("pending", registry{
			"a": func(ctx context.Context) (context.Context, error) { return ctx, spec.ErrPending },
		}, spec.NewStep(spec.Given, "Given a"))
		undefined := verified("undefined", registry{}, spec.NewStep(spec.Given, "Given b"))

		require.NoError(t, r.ReportScenario(pending))
		require.NoError(t, r.ReportScenario(undefined))

		require.Contains(t, out.String(), "* Given a\n")
		require.Contains(t, out.String(), "? Given b\n")
	})

	t.Run("should keep the last kind across scenarios", func(t *testing.T) {
		var out bytes.Buffer
		r := NewPlainTextReporter(&out)
		first := verified("first", registry{"a": pass}, spec.NewStep(spec.Then, "Then a"))
		second := verified("second", registry{"a": pass}, spec.NewStep(spec.Given, "Given a"))

		require.NoError(t, r.ReportScenario(first))
		require.NoError(t, r.ReportScenario(second))

		require.Contains(t, out.String(), "Scenario: second\n\n\n  Given a\n")
	})

	t.Run("should start a new group after reset", func(t *testing.T) {
		var out bytes.Buffer
		r := NewPlainTextReporter(&out)
		first := verified("first", registry{"a": pass}, spec.NewStep(spec.Then, "Then a"))
		second := verified("second", registry{"a": pass}, spec.NewStep(spec.Given, "Given a"))

		require.NoError(t, r.ReportScenario(first))
		r.Reset()
		require.NoError(t, r.ReportScenario(second))

		require.Contains(t, out.String(), "Scenario: second\n\n  Given a\n")
	})

	t.Run("should render blocks right after their step", func(t *testing.T) {
		var out bytes.Buffer
		r := NewPlainTextReporter(&out)
		step := spec.NewStep(spec.Given, "Given accounts")
		step.Block = block.NewTable([][]string{{"name", "balance"}, {"bob", "10"}})
		s := verified("blocks", registry{"accounts": func(ctx context.Context) (context.Context, error) { return ctx, nil }}, step)

		require.NoError(t, r.ReportScenario(s))

		require.Equal(t, "Scenario: blocks\n\n"+
			"  Given accounts\n"+
			"    | name | balance |\n"+
			"    | bob  | 10      |\n"+
			"\n", out.String())
	})

	t.Run("should print a clickable trace for panics", func(t *testing.T) {
		var out bytes.Buffer
		r := NewPlainTextReporter(&out)
		s := verified("panics", registry{
			"a": func(ctx context.Context) (context.Context, error) { panic("kaboom") },
		}, spec.NewStep(spec.Given, "Given a"))

		require.NoError(t, r.ReportScenario(s))

		require.Contains(t, out.String(), "! Given a\n\nkaboom\n\n")
		require.Contains(t, out.String(), "plaintext_test.go(")
	})

	t.Run("should return write errors", func(t *testing.T) {
		w := &failingWriter{}
		r := NewPlainTextReporter(w)
		s := verified("broken", registry{"a": pass}, spec.NewStep(spec.Given, "Given a"))

		err := r.ReportScenario(s)

		require.ErrorContains(t, err, "disk full")
		require.Equal(t, 1, w.writes)
		require.Error(t, r.ReportUndefinedSteps([]*spec.Step{spec.NewStep(spec.Given, "Given b")}))
		require.Error(t, r.End())
		require.Equal(t, 1, w.writes)
	})
}

func TestPlainTextReporter_ReportUndefinedSteps(t *testing.T) {
	t.Run("should write nothing without undefined steps", func(t *testing.T) {
		var out bytes.Buffer
		r := NewPlainTextReporter(&out)

		require.NoError(t, r.ReportUndefinedSteps(nil))
		require.Empty(t, out.String())
	})

	t.Run("should write stub code for every step", func(t *testing.T) {
		var out bytes.Buffer
		r := NewPlainTextReporter(&out)

		err := r.ReportUndefinedSteps([]*spec.Step{
			spec.NewStep(spec.When, "When I deposit $50.00"),
			spec.NewStep(spec.Given, `Given a user named "Bob"`),
		})

		require.NoError(t, err)
		require.True(t, strings.HasPrefix(out.String(), UndefinedStepsHeader+"\n\n"))
		require.Contains(t, out.String(), "func when_i_deposit_arg1(arg1 float64) {")
		require.Contains(t, out.String(), "func given_a_user_named_arg1(arg1 string) {")
		require.True(t, strings.HasSuffix(out.String(), "}\n\n"))
	})
}

func TestPlainTextReporter_ReportDocument(t *testing.T) {
	t.Run("should divide scenarios and list undefined steps once", func(t *testing.T) {
		var out bytes.Buffer
		r := NewPlainTextReporter(&out)
		first := verified("first", registry{}, spec.NewStep(spec.Given, "Given I am logged in"))
		second := verified("second", registry{}, spec.NewStep(spec.Given, "GIVEN I AM LOGGED IN"))

		err := r.ReportDocument("doc", []*spec.Scenario{first, second})

		require.NoError(t, err)
		require.Equal(t, 2, strings.Count(out.String(), Divider+"\n\n"))
		require.Equal(t, 1, strings.Count(out.String(), "func given_i_am_logged_in()"))
	})

	t.Run("should print the summary when enabled", func(t *testing.T) {
		var out bytes.Buffer
		r := NewPlainTextReporter(&out, WithSummary(true))
		ok := verified("ok", registry{"a": pass}, spec.NewStep(spec.Given, "Given a"))
		missing := verified("missing", registry{"a": pass},
			spec.NewStep(spec.Given, "Given a"),
			spec.NewStep(spec.When, "When b"),
		)

		require.NoError(t, r.ReportDocument("doc", []*spec.Scenario{ok, missing}))

		require.Contains(t, out.String(), "2 scenario(s) (2 passed)\n")
		require.Contains(t, out.String(), "3 step(s) (2 passed, 1 undefined)\n")
		require.Equal(t, 3, r.Summary().StepsTotal)
	})

	t.Run("should keep symbols uncoloured by default", func(t *testing.T) {
		var out bytes.Buffer
		r := NewPlainTextReporter(&out)
		s := verified("plain", registry{}, spec.NewStep(spec.Given, "Given a"))

		require.NoError(t, r.ReportDocument("doc", []*spec.Scenario{s}))
		require.NotContains(t, out.String(), "\x1b[")
	})
}

func TestClickable(t *testing.T) {
	t.Run("should rewrite at-in-line frames", func(t *testing.T) {
		trace := "  at Bank.Deposit() in C:\\src\\Bank.cs:line 42"

		require.Equal(t, "C:\\src\\Bank.cs(42): Bank.Deposit()", Clickable(trace))
	})

	t.Run("should split at the last in of a frame", func(t *testing.T) {
		trace := "  at Bank.Check in Range() in /src/Bank.cs:line 7\n  at Bank.Run() in /src/Run.cs:line 9"

		require.Equal(t, "/src/Bank.cs(7): Bank.Check in Range()\n/src/Run.cs(9): Bank.Run()", Clickable(trace))
	})

	t.Run("should rewrite go frames", func(t *testing.T) {
		trace := "goroutine 1 [running]:\nmain.deposit(...)\n\t/src/bank/main.go:12 +0x1d\nmain.main()\n\t/src/bank/main.go:20 +0x25\n"

		require.Equal(t, "goroutine 1 [running]:\n/src/bank/main.go(12): main.deposit(...)\n/src/bank/main.go(20): main.main()\n", Clickable(trace))
	})

	t.Run("should leave other text alone", func(t *testing.T) {
		require.Equal(t, "nothing to see", Clickable("nothing to see"))
	})
}

func TestSymbol(t *testing.T) {
	require.Equal(t, "?", Symbol(spec.Undefined))
	require.Equal(t, "*", Symbol(spec.Pending))
	require.Equal(t, " ", Symbol(spec.Passed))
	require.Equal(t, "!", Symbol(spec.Failed))
	require.Equal(t, "-", Symbol(spec.Skipped))
}
