package reporter

import "github.com/denizgursoy/plainspec/pkg/spec"

// NoopReporter discards all output.
type NoopReporter struct{}

// NewNoopReporter creates a reporter that discards all output
func NewNoopReporter() *NoopReporter {
	return &NoopReporter{}
}

func (r *NoopReporter) Begin(name string) error                     { return nil }
func (r *NoopReporter) ReportScenario(scenario *spec.Scenario) error { return nil }
func (r *NoopReporter) ReportUndefinedSteps(steps []*spec.Step) error { return nil }
func (r *NoopReporter) End() error                                  { return nil }
