// Package app holds the operations behind the plainspec commands.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/denizgursoy/plainspec/internal/generator"
	"github.com/denizgursoy/plainspec/pkg/runner"
)

type Application struct {
	codeParser GoCodeParser
	stubs      StubGenerator
	logger     *slog.Logger
}

func NewApplication(codeParser GoCodeParser, stubs StubGenerator, logger *slog.Logger) *Application {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Application{
		codeParser: codeParser,
		stubs:      stubs,
		logger:     logger,
	}
}

// Run verifies the specifications under paths. No step definitions are
// registered, so it lists every step as undefined together with its stub.
func (a *Application) Run(ctx context.Context, paths []string, config *runner.Config) error {
	return runner.NewRunner().
		WithConfig(config).
		WithFeaturesDirectories(paths...).
		Run(ctx)
}

// Stubs writes stubs for the undefined steps found under paths.
func (a *Application) Stubs(ctx context.Context, paths []string, output, pkgName string) (int, error) {
	return a.stubs.Generate(ctx, paths, output, pkgName)
}

// Bind collects the step definitions, configs and hooks of every source
// directory (the working directory by default) and writes a test file
// registering them on a runner.
func (a *Application) Bind(ctx context.Context, sources []string, output string) (*generator.Bindings, error) {
	if len(sources) == 0 {
		directory, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		sources = append(sources, directory)
	}

	merged := &generator.Bindings{}
	for _, source := range sources {
		bindings, err := a.codeParser.ParseFunctionCommentsOfGoFilesInDirectoryRecursively(ctx, source)
		if err != nil {
			return nil, err
		}
		a.logger.Debug("bindings found", "source", source, "steps", len(bindings.StepFunctions))

		if err := mergeBindings(merged, bindings); err != nil {
			return nil, err
		}
	}

	if output == "" {
		output = generator.DefaultBindingsOutput
	}
	if err := generator.WriteBindings(merged, output); err != nil {
		return nil, err
	}

	a.logger.Info("bindings written", "file", output, "steps", len(merged.StepFunctions))
	return merged, nil
}

func mergeBindings(into, from *generator.Bindings) error {
	for _, step := range from.StepFunctions {
		for _, existing := range into.StepFunctions {
			if existing.StepName == step.StepName {
				return fmt.Errorf("duplicate step pattern %q in %s and %s",
					step.StepName, existing.FullPackageName, step.FullPackageName)
			}
		}
		into.StepFunctions = append(into.StepFunctions, step)
	}
	into.ConfigFunctions = append(into.ConfigFunctions, from.ConfigFunctions...)
	into.HooksFunctions = append(into.HooksFunctions, from.HooksFunctions...)

	return nil
}
