package generator

import (
	"context"
	"fmt"
	"go/parser"
	"go/token"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/denizgursoy/plainspec/pkg/document"
	"github.com/denizgursoy/plainspec/pkg/gherkin_parser"
	"github.com/denizgursoy/plainspec/pkg/plaintext"
	"github.com/denizgursoy/plainspec/pkg/reporter"
	"github.com/denizgursoy/plainspec/pkg/spec"
	"github.com/denizgursoy/plainspec/pkg/stub"
	"golang.org/x/mod/modfile"
)

const (
	// DefaultOutput is the file written when no output path is given.
	DefaultOutput = "plainspec_steps.go"

	RunnerPackage = "github.com/denizgursoy/plainspec/pkg/runner"
	SpecPackage   = "github.com/denizgursoy/plainspec/pkg/spec"
)

// Generator writes step definition stubs for specification files.
type Generator struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Generator{logger: logger}
}

// Generate collects the distinct steps of every specification under paths
// and writes one stub per step to output. The package name is detected from
// the output directory unless pkgName is set. It returns the number of stubs.
func (g *Generator) Generate(ctx context.Context, paths []string, output, pkgName string) (int, error) {
	if output == "" {
		output = DefaultOutput
	}

	steps, err := g.CollectSteps(ctx, paths)
	if err != nil {
		return 0, err
	}

	if pkgName == "" {
		pkgName, err = detectPackageName(filepath.Dir(output))
		if err != nil {
			g.logger.Warn("could not detect package, using main", "error", err)
			pkgName = "main"
		}
	}

	file, err := os.Create(output)
	if err != nil {
		return 0, fmt.Errorf("could not create %s: %w", output, err)
	}
	defer file.Close()

	if err := Render(file, pkgName, steps); err != nil {
		return 0, err
	}

	g.logger.Info("stubs written", "file", output, "package", pkgName, "stubs", len(steps))
	return len(steps), nil
}

// CollectSteps verifies the specifications under paths against an empty
// registry and returns their distinct steps in order of appearance.
func (g *Generator) CollectSteps(ctx context.Context, paths []string) ([]*spec.Step, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	files, err := gherkin_parser.SearchFeatureFilesIn(paths, gherkin_parser.FeatureExtension, plaintext.Extension)
	if err != nil {
		return nil, err
	}

	scenarios := make([]*spec.Scenario, 0)
	for _, path := range files {
		doc, err := document.New(
			document.WithReporter(reporter.NewNoopReporter()),
			document.WithLogger(g.logger),
		)
		if err != nil {
			return nil, err
		}
		if err := doc.LoadFile(path); err != nil {
			return nil, err
		}
		doc.Verify(ctx)
		scenarios = append(scenarios, doc.Scenarios()...)
	}

	return spec.UndefinedSteps(scenarios), nil
}

// Render writes a Go file with one stub per step and a RegisterSteps
// function registering all of them on a runner.
func Render(w io.Writer, pkgName string, steps []*spec.Step) error {
	file := jen.NewFile(pkgName)
	file.HeaderComment("Step definition stubs generated by plainspec.")

	chain := jen.Return(jen.Id("r")).Id(".").Line()
	registered := 0

	patterns := make(map[string]bool)
	identifiers := make(map[string]int)
	for _, step := range steps {
		candidate := stub.Synthesize(step)
		if patterns[candidate.Pattern] {
			continue
		}
		patterns[candidate.Pattern] = true

		name := stub.GoIdentifier(candidate.Identifier)
		identifiers[name]++
		if n := identifiers[name]; n > 1 {
			name = fmt.Sprintf("%s_%d", name, n)
		}
		candidate.Identifier = name

		file.Add(candidate.Statement())
		file.Line()

		if registered > 0 {
			chain.Id(".").Line()
		}
		chain.Id("RegisterStep").Call(jen.Lit(candidate.Pattern), jen.Id(name))
		registered++
	}

	register := jen.Return(jen.Id("r"))
	if registered > 0 {
		register = chain
	}

	file.Comment("RegisterSteps registers every stub in this file.")
	file.Func().Id("RegisterSteps").Params(
		jen.Id("r").Op("*").Qual(RunnerPackage, "Runner"),
	).Op("*").Qual(RunnerPackage, "Runner").Block(register)

	if err := file.Render(w); err != nil {
		return fmt.Errorf("could not render stubs: %w", err)
	}
	return nil
}

// detectPackageName detects the Go package name for the given directory.
// It first tries to read the package clause from existing Go files.
// If no Go files exist, it falls back to deriving the name from the directory
// path (or the module path for the module root).
func detectPackageName(dir string) (string, error) {
	fset := token.NewFileSet()
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("cannot read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		if name == DefaultOutput {
			continue
		}

		f, parseErr := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.PackageClauseOnly)
		if parseErr != nil {
			continue
		}
		if f.Name != nil && f.Name.Name != "" {
			return f.Name.Name, nil
		}
	}

	return packageNameFromDir(dir)
}

// packageNameFromDir uses the last segment of the module path at a module
// root and the sanitised directory name elsewhere.
func packageNameFromDir(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	goModPath := filepath.Join(absDir, "go.mod")
	if data, readErr := os.ReadFile(goModPath); readErr == nil {
		modFile, parseErr := modfile.Parse(goModPath, data, nil)
		if parseErr == nil && modFile.Module != nil {
			if name := sanitizePackageName(filepath.Base(modFile.Module.Mod.Path)); name != "" {
				return name, nil
			}
		}
	}

	if name := sanitizePackageName(filepath.Base(absDir)); name != "" {
		return name, nil
	}

	return "", fmt.Errorf("cannot derive package name from directory %s", dir)
}

// sanitizePackageName lower-cases raw, turns hyphens and dots into
// underscores, drops other invalid characters and prefixes a leading digit.
func sanitizePackageName(raw string) string {
	if raw == "" || raw == "." || raw == "/" {
		return ""
	}

	var b strings.Builder
	for i, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r - 'A' + 'a')
		case r == '-' || r == '.':
			if i > 0 {
				b.WriteRune('_')
			}
		}
	}

	name := b.String()
	if name != "" && name[0] >= '0' && name[0] <= '9' {
		name = "_" + name
	}
	return name
}
