package generator

import (
	"fmt"
	"go/token"
	"io"
	"os"
	"path/filepath"

	"github.com/dave/jennifer/jen"
	"golang.org/x/mod/modfile"
)

// DefaultBindingsOutput is the test file written by the bind command.
const DefaultBindingsOutput = "plainspec_test.go"

type (
	FunctionLocator struct {
		FullPackageName string
		FunctionName    string
	}

	StepFunctionLocator struct {
		StepName string
		*FunctionLocator
	}

	// Bindings lists the Go functions wired into a generated test.
	Bindings struct {
		ConfigFunctions    []*FunctionLocator // Functions returning *runner.Config
		HooksFunctions     []*FunctionLocator // Functions returning *spec.Hooks
		StepFunctions      []*StepFunctionLocator
		CurrentPackagePath string // Import path of the package receiving the test file
		PackageName        string // Defaults to "main"
	}
)

func (b *Bindings) isSamePackage(fullPkg string) bool {
	return b.CurrentPackagePath != "" && fullPkg == b.CurrentPackagePath
}

// qualOrLocal calls same-package functions without an import qualifier.
func (b *Bindings) qualOrLocal(fullPkg, funcName string) *jen.Statement {
	if b.isSamePackage(fullPkg) {
		return jen.Id(funcName)
	}
	return jen.Qual(fullPkg, funcName)
}

// Generate writes a test file whose TestSpecifications function registers
// every bound step on a runner and fails the test when verification fails.
func (b *Bindings) Generate(writer io.Writer) error {
	pkgName := b.PackageName
	if pkgName == "" {
		pkgName = "main"
	}
	file := jen.NewFile(pkgName)
	file.HeaderComment("Code generated by plainspec. DO NOT EDIT.")

	var statements []jen.Code

	if len(b.ConfigFunctions) > 0 {
		configCalls := make([]jen.Code, 0, len(b.ConfigFunctions))
		for _, cf := range b.ConfigFunctions {
			configCalls = append(configCalls, b.qualOrLocal(cf.FullPackageName, cf.FunctionName).Call())
		}
		statements = append(statements,
			jen.Id("config").Op(":=").Qual(RunnerPackage, "MergeConfigs").Call(configCalls...),
		)
	}

	if len(b.HooksFunctions) > 0 {
		hooksCalls := make([]jen.Code, 0, len(b.HooksFunctions))
		for _, hf := range b.HooksFunctions {
			hooksCalls = append(hooksCalls, b.qualOrLocal(hf.FullPackageName, hf.FunctionName).Call())
		}
		statements = append(statements,
			jen.Id("hooks").Op(":=").Index().Op("*").Qual(SpecPackage, "Hooks").Values(hooksCalls...),
		)
	}

	chain := jen.Id("err").Op(":=").Qual(RunnerPackage, "NewRunner").Call().Id(".").Line()

	if len(b.ConfigFunctions) > 0 {
		chain.Id("WithConfig").Call(jen.Id("config")).Id(".").Line()
	}

	if len(b.HooksFunctions) > 0 {
		chain.Id("WithHooks").Call(jen.Id("hooks").Op("...")).Id(".").Line()
	}

	for _, function := range b.StepFunctions {
		if !token.IsExported(function.FunctionName) && !b.isSamePackage(function.FullPackageName) {
			return fmt.Errorf("step function %s in %s is unexported: write the bindings into that package",
				function.FunctionName, function.FullPackageName)
		}
		chain.Id("RegisterStep").Call(
			jen.Lit(function.StepName),
			b.qualOrLocal(function.FullPackageName, function.FunctionName),
		).Id(".").Line()
	}

	chain.Id("Run").Call(jen.Id("t").Dot("Context").Call())

	statements = append(statements,
		chain,
		jen.If(jen.Id("err").Op("!=").Nil()).Block(
			jen.Id("t").Dot("Fatal").Call(jen.Id("err")),
		),
	)

	file.Func().Id("TestSpecifications").Params(
		jen.Id("t").Op("*").Qual("testing", "T"),
	).Block(statements...)

	if err := file.Render(writer); err != nil {
		return fmt.Errorf("could not render bindings: %w", err)
	}
	return nil
}

// WriteBindings fills in the package of the output directory and writes the
// generated test file.
func WriteBindings(bindings *Bindings, output string) error {
	if output == "" {
		output = DefaultBindingsOutput
	}
	dir := filepath.Dir(output)

	if bindings.PackageName == "" {
		name, err := detectPackageName(dir)
		if err != nil {
			return err
		}
		bindings.PackageName = name
	}
	if bindings.CurrentPackagePath == "" {
		path, err := DetectImportPath(dir)
		if err != nil {
			return err
		}
		bindings.CurrentPackagePath = path
	}

	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", output, err)
	}
	defer file.Close()

	return bindings.Generate(file)
}

// DetectImportPath resolves the import path of dir from the nearest go.mod.
func DetectImportPath(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for root := absDir; ; root = filepath.Dir(root) {
		goModPath := filepath.Join(root, "go.mod")
		data, readErr := os.ReadFile(goModPath)
		if readErr == nil {
			modulePath := modfile.ModulePath(data)
			if modulePath == "" {
				return "", fmt.Errorf("no module path in %s", goModPath)
			}
			rel, err := filepath.Rel(root, absDir)
			if err != nil {
				return "", err
			}
			if rel == "." {
				return modulePath, nil
			}
			return modulePath + "/" + filepath.ToSlash(rel), nil
		}

		if filepath.Dir(root) == root {
			return "", fmt.Errorf("no go.mod found for %s", dir)
		}
	}
}
