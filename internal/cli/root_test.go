package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/denizgursoy/plainspec/pkg/reporter"
	"github.com/denizgursoy/plainspec/pkg/runner"
	"github.com/denizgursoy/plainspec/pkg/spec"
	"github.com/denizgursoy/plainspec/pkg/stub"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(t.Context())
	return stdout.String(), stderr.String(), err
}

func TestNewRootCmd(t *testing.T) {
	t.Run("registers every subcommand with RunE", func(t *testing.T) {
		names := make([]string, 0)
		for _, sub := range NewRootCmd().Commands() {
			require.NotNil(t, sub.RunE, sub.Name())
			names = append(names, sub.Name())
		}

		require.ElementsMatch(t, []string{"run", "stubs", "bind"}, names)
	})

	t.Run("shows help without arguments", func(t *testing.T) {
		stdout, _, err := execute(t)

		require.NoError(t, err)
		require.Contains(t, stdout, "plainspec")
	})
}

func TestRunCmd(t *testing.T) {
	t.Run("lists undefined steps", func(t *testing.T) {
		stdout, _, err := execute(t, "run", "testdata", "--no-color")

		require.NoError(t, err)
		require.Contains(t, stdout, "? Given a greeting\n")
		require.Contains(t, stdout, reporter.UndefinedStepsHeader)
	})

	t.Run("filters with tags", func(t *testing.T) {
		stdout, _, err := execute(t, "run", "testdata", "--no-color", "--tags", "@smoke")

		require.NoError(t, err)
		require.Contains(t, stdout, "Scenario: greet\n")
		require.NotContains(t, stdout, "Scenario: wave\n")
	})

	t.Run("fails in strict mode", func(t *testing.T) {
		_, _, err := execute(t, "run", "testdata", "--no-color", "--strict")

		require.ErrorIs(t, err, runner.ErrFailed)
	})

	t.Run("prints the summary", func(t *testing.T) {
		stdout, _, err := execute(t, "run", "testdata", "--no-color", "--summary")

		require.NoError(t, err)
		require.Contains(t, stdout, "2 scenario(s) (2 passed)\n")
		require.Contains(t, stdout, "2 step(s) (2 undefined)\n")
	})

	t.Run("logs debug output when verbose", func(t *testing.T) {
		_, stderr, err := execute(t, "run", "testdata", "--no-color", "--verbose")

		require.NoError(t, err)
		require.Contains(t, stderr, "level=DEBUG")
	})

	t.Run("reports a broken config file", func(t *testing.T) {
		config := filepath.Join(t.TempDir(), "broken.yaml")
		require.NoError(t, os.WriteFile(config, []byte("tags: [unclosed\n"), 0o644))

		_, _, err := execute(t, "run", "testdata", "--config", config)

		require.ErrorContains(t, err, "parsing config YAML")
	})
}

func TestStubsCmd(t *testing.T) {
	t.Run("writes the stub file", func(t *testing.T) {
		output := filepath.Join(t.TempDir(), "steps.go")

		stdout, _, err := execute(t, "stubs", "testdata", "--out", output, "--package", "steps")

		require.NoError(t, err)
		require.Equal(t, "wrote 2 stub(s) to "+output+"\n", stdout)

		content, err := os.ReadFile(output)
		require.NoError(t, err)
		require.Contains(t, string(content), "package steps")
		require.Contains(t, string(content), "func given_a_wave() {")
	})
}

func TestBindCmd(t *testing.T) {
	t.Run("writes the bindings test file", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/app\n\ngo 1.25\n"), 0o644))
		output := filepath.Join(root, "plainspec_test.go")

		stdout, _, err := execute(t, "bind", filepath.Join("..", "comment_parser", "testdata", "bank"), "--out", output)

		require.NoError(t, err)
		require.Equal(t, "bound 3 step(s) in "+output+"\n", stdout)

		content, err := os.ReadFile(output)
		require.NoError(t, err)
		require.Contains(t, string(content), "func TestSpecifications(t *testing.T) {")
		require.Contains(t, string(content), "bank.IDeposit")
	})

	t.Run("binds pasted stubs into their own package", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/bank\n\ngo 1.25\n"), 0o644))
		source := "package bank\n\n" +
			stub.Code(spec.NewStep(spec.Given, "Given an account with $10.00")) + "\n\n" +
			stub.Code(spec.NewStep(spec.When, "When I deposit $5.00")) + "\n"
		require.NoError(t, os.WriteFile(filepath.Join(root, "steps.go"), []byte(source), 0o644))
		output := filepath.Join(root, "plainspec_test.go")

		stdout, _, err := execute(t, "bind", root, "--out", output)

		require.NoError(t, err)
		require.Equal(t, "bound 2 step(s) in "+output+"\n", stdout)

		content, err := os.ReadFile(output)
		require.NoError(t, err)
		require.Contains(t, string(content), "package bank")
		require.Contains(t, string(content), "given_an_account_with_arg1).")
		require.Contains(t, string(content), "when_i_deposit_arg1).")
	})
}
