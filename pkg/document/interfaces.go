//go:generate mockgen -source=interfaces.go -destination=interface_mock.go -package=document
package document

import "github.com/denizgursoy/plainspec/pkg/spec"

type (
	// Reporter renders a verified document one scenario at a time.
	Reporter interface {
		Begin(name string) error
		ReportScenario(scenario *spec.Scenario) error
		ReportUndefinedSteps(steps []*spec.Step) error
		End() error
	}

	// Parser turns the text of a specification file into scenarios.
	Parser interface {
		Parse(name, text string) (*spec.Source, error)
	}
)
