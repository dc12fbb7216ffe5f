package comment_parser

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/denizgursoy/plainspec/internal/generator"
)

const (
	StepPrefix = "@step"
)

// GoSourceFileParser finds step definitions, configs and hooks in Go sources.
type GoSourceFileParser struct {
}

func NewGoSourceFileParser() *GoSourceFileParser {
	return &GoSourceFileParser{}
}

// ParseFunctionCommentsOfGoFilesInDirectoryRecursively scans every package
// under parentDirectory. Functions documented with "// @step <pattern>"
// become step definitions, exported or not, so generated stubs bind as
// they are. Exported parameterless functions returning *runner.Config or
// *spec.Hooks become config and hooks functions.
func (g *GoSourceFileParser) ParseFunctionCommentsOfGoFilesInDirectoryRecursively(ctx context.Context, parentDirectory string) (
	*generator.Bindings, error) {
	directories, err := getAllDirectories(parentDirectory)
	if err != nil {
		return nil, err
	}

	output := &generator.Bindings{
		StepFunctions: make([]*generator.StepFunctionLocator, 0),
	}
	patterns := make(map[string]string)

	for _, dir := range directories {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		packagesInTheDirectory, err := parser.ParseDir(token.NewFileSet(), dir, isSourceFile, parser.ParseComments)
		if err != nil {
			return nil, err
		}
		if len(packagesInTheDirectory) == 0 {
			continue
		}

		importPath, err := generator.DetectImportPath(dir)
		if err != nil {
			return nil, err
		}

		for _, pkg := range packagesInTheDirectory {
			for _, fileName := range sortedFileNames(pkg) {
				node := pkg.Files[fileName]
				for _, dec := range node.Decls {
					decl, ok := dec.(*ast.FuncDecl)
					if !ok || decl.Recv != nil {
						continue
					}

					locator := &generator.FunctionLocator{
						FullPackageName: importPath,
						FunctionName:    decl.Name.Name,
					}

					if step, isStepFunction := IsStepFunction(decl); isStepFunction {
						if previous, ok := patterns[step]; ok {
							return nil, fmt.Errorf("duplicate step pattern %q in %s and %s", step, previous, decl.Name.Name)
						}
						patterns[step] = decl.Name.Name
						output.StepFunctions = append(output.StepFunctions, &generator.StepFunctionLocator{
							StepName:        step,
							FunctionLocator: locator,
						})
						continue
					}

					if !decl.Name.IsExported() {
						continue
					}

					switch returnedType(decl, node.Imports) {
					case "*" + generator.RunnerPackage + ".Config":
						output.ConfigFunctions = append(output.ConfigFunctions, locator)
					case "*" + generator.SpecPackage + ".Hooks":
						output.HooksFunctions = append(output.HooksFunctions, locator)
					}
				}
			}
		}
	}

	return output, nil
}

// IsStepFunction returns the pattern of a function documented with
// "// @step <pattern>". The pattern may be wrapped in backticks.
func IsStepFunction(decl *ast.FuncDecl) (string, bool) {
	with := GetCommentLineStartingWith(StepPrefix, decl)
	if with == nil {
		return "", false
	}

	step := strings.Trim(strings.TrimSpace(*with), "`")
	if step == "" {
		return "", false
	}
	return step, true
}

// GetCommentLineStartingWith returns the rest of the first doc comment line
// starting with the keyword.
func GetCommentLineStartingWith(keyword string, fnDecl *ast.FuncDecl) *string {
	if fnDecl.Doc == nil {
		return nil
	}

	prefix := "// " + keyword + " "
	for _, comment := range fnDecl.Doc.List {
		if rest, ok := strings.CutPrefix(comment.Text, prefix); ok {
			return &rest
		}
	}
	return nil
}

// returnedType resolves the single result type of a parameterless function
// to "<import path>.<name>", e.g. "*github.com/x/runner.Config".
func returnedType(fnDecl *ast.FuncDecl, imports []*ast.ImportSpec) string {
	if fnDecl.Type.Params != nil && len(fnDecl.Type.Params.List) > 0 {
		return ""
	}
	if fnDecl.Type.Results == nil || len(fnDecl.Type.Results.List) != 1 {
		return ""
	}
	return analyzeExpr(fnDecl.Type.Results.List[0].Type, imports)
}

func analyzeExpr(expr ast.Expr, imports []*ast.ImportSpec) string {
	switch expr := expr.(type) {
	case *ast.Ident:
		return expr.Name
	case *ast.SelectorExpr:
		return fmt.Sprintf("%s.%s", resolveImport(analyzeExpr(expr.X, imports), imports), expr.Sel.Name)
	case *ast.StarExpr:
		return "*" + analyzeExpr(expr.X, imports)
	case *ast.ParenExpr:
		return analyzeExpr(expr.X, imports)
	default:
		return "unknown"
	}
}

// resolveImport maps a package name used in a file to its import path.
func resolveImport(name string, imports []*ast.ImportSpec) string {
	for _, spec := range imports {
		path := strings.Trim(spec.Path.Value, `"`)
		if spec.Name != nil {
			if spec.Name.Name == name {
				return path
			}
			continue
		}
		if filepath.Base(path) == name {
			return path
		}
	}
	return name
}

func isSourceFile(info fs.FileInfo) bool {
	return !strings.HasSuffix(info.Name(), "_test.go")
}

func sortedFileNames(pkg *ast.Package) []string {
	names := make([]string, 0, len(pkg.Files))
	for name := range pkg.Files {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// getAllDirectories returns dirPath and all directories below it, skipping
// hidden directories and testdata.
func getAllDirectories(dirPath string) ([]string, error) {
	directories := make([]string, 0)

	err := filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dirPath && (strings.HasPrefix(d.Name(), ".") || d.Name() == "testdata" || d.Name() == "vendor") {
			return filepath.SkipDir
		}
		directories = append(directories, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not scan %s: %w", dirPath, err)
	}

	return directories, nil
}
