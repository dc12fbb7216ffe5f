package support

import (
	pr "github.com/denizgursoy/plainspec/pkg/runner"
	"github.com/denizgursoy/plainspec/pkg/spec"
)

func Config() *pr.Config {
	return &pr.Config{Strict: true}
}

func Hooks() *spec.Hooks {
	return &spec.Hooks{}
}

// NotHooks takes a parameter so it cannot be called by the generated test.
func NotHooks(name string) *spec.Hooks {
	return nil
}
