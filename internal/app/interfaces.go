//go:generate mockgen -source=interfaces.go -destination=interface_mock.go -package=app
package app

import (
	"context"

	"github.com/denizgursoy/plainspec/internal/generator"
)

type (
	GoCodeParser interface {
		ParseFunctionCommentsOfGoFilesInDirectoryRecursively(context.Context, string) (*generator.Bindings, error)
	}
	StubGenerator interface {
		Generate(ctx context.Context, paths []string, output, pkgName string) (int, error)
	}
)
