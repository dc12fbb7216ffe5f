package comment_parser

import (
	"context"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/denizgursoy/plainspec/internal/generator"
	"github.com/denizgursoy/plainspec/pkg/spec"
	"github.com/denizgursoy/plainspec/pkg/stub"
	"github.com/stretchr/testify/require"
)

const testdataPackage = "github.com/denizgursoy/plainspec/internal/comment_parser/testdata/bank"

func TestGetComments(t *testing.T) {
	t.Run("parses step definitions, configs and hooks from testdata", func(t *testing.T) {
		bindings, err := NewGoSourceFileParser().
			ParseFunctionCommentsOfGoFilesInDirectoryRecursively(context.Background(), filepath.Join("testdata", "bank"))

		require.NoError(t, err)
		require.Equal(t, []*generator.StepFunctionLocator{
			{
				StepName:        `^an account with \$([\d.]+)$`,
				FunctionLocator: &generator.FunctionLocator{FullPackageName: testdataPackage, FunctionName: "AnAccountWith"},
			},
			{
				StepName:        `^I deposit \$([\d.]+)$`,
				FunctionLocator: &generator.FunctionLocator{FullPackageName: testdataPackage, FunctionName: "IDeposit"},
			},
			{
				StepName:        `^the balance is \$([\d.]+)$`,
				FunctionLocator: &generator.FunctionLocator{FullPackageName: testdataPackage, FunctionName: "TheBalanceIs"},
			},
		}, bindings.StepFunctions)

		require.Equal(t, []*generator.FunctionLocator{
			{FullPackageName: testdataPackage + "/support", FunctionName: "Config"},
		}, bindings.ConfigFunctions)
		require.Equal(t, []*generator.FunctionLocator{
			{FullPackageName: testdataPackage + "/support", FunctionName: "Hooks"},
		}, bindings.HooksFunctions)
	})

	t.Run("binds generated stubs", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/bank\n\ngo 1.25\n"), 0o644))
		step := spec.NewStep(spec.When, "When I deposit $50.00")
		source := "package bank\n\n" + stub.Code(step) + "\n"
		require.NoError(t, os.WriteFile(filepath.Join(root, "steps.go"), []byte(source), 0o644))

		bindings, err := NewGoSourceFileParser().
			ParseFunctionCommentsOfGoFilesInDirectoryRecursively(context.Background(), root)

		require.NoError(t, err)
		require.Equal(t, []*generator.StepFunctionLocator{
			{
				StepName:        stub.Synthesize(step).Pattern,
				FunctionLocator: &generator.FunctionLocator{FullPackageName: "example.com/bank", FunctionName: "when_i_deposit_arg1"},
			},
		}, bindings.StepFunctions)
	})

	t.Run("rejects duplicate step patterns", func(t *testing.T) {
		_, err := NewGoSourceFileParser().
			ParseFunctionCommentsOfGoFilesInDirectoryRecursively(context.Background(), filepath.Join("testdata", "duplicate"))

		require.ErrorContains(t, err, `duplicate step pattern "^same$"`)
	})

	t.Run("returns error for a missing directory", func(t *testing.T) {
		_, err := NewGoSourceFileParser().
			ParseFunctionCommentsOfGoFilesInDirectoryRecursively(context.Background(), filepath.Join("testdata", "missing"))

		require.Error(t, err)
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewGoSourceFileParser().
			ParseFunctionCommentsOfGoFilesInDirectoryRecursively(ctx, filepath.Join("testdata", "bank"))

		require.ErrorIs(t, err, context.Canceled)
	})
}

func parseFunc(t *testing.T, src string) *ast.FuncDecl {
	t.Helper()

	file, err := parser.ParseFile(token.NewFileSet(), "src.go", "package p\n\n"+src, parser.ParseComments)
	require.NoError(t, err)
	return file.Decls[0].(*ast.FuncDecl)
}

func TestIsStepFunction(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		step    string
		matches bool
	}{
		{"plain pattern", "// @step ^a$\nfunc A() {}", "^a$", true},
		{"backtick pattern", "// @step `^a (\\d+)$`\nfunc A() {}", `^a (\d+)$`, true},
		{"after a doc line", "// A does a.\n// @step ^a$\nfunc A() {}", "^a$", true},
		{"no comment", "func A() {}", "", false},
		{"other keyword", "// @stepping ^a$\nfunc A() {}", "", false},
		{"empty pattern", "// @step ``\nfunc A() {}", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			step, ok := IsStepFunction(parseFunc(t, tt.src))

			require.Equal(t, tt.matches, ok)
			require.Equal(t, tt.step, step)
		})
	}
}

func TestReturnedType(t *testing.T) {
	t.Run("resolves aliased imports", func(t *testing.T) {
		file, err := parser.ParseFile(token.NewFileSet(), "src.go",
			"package p\n\nimport r \"example.com/x/runner\"\n\nfunc C() *r.Config { return nil }\n", 0)
		require.NoError(t, err)

		require.Equal(t, "*example.com/x/runner.Config", returnedType(file.Decls[1].(*ast.FuncDecl), file.Imports))
	})

	t.Run("ignores functions with parameters", func(t *testing.T) {
		fn := parseFunc(t, "func C(n int) *Config { return nil }")

		require.Empty(t, returnedType(fn, nil))
	})
}
