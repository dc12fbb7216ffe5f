package spec

import "strings"

// UndefinedSteps collects the undefined steps of all scenarios in document
// order. Steps whose text is equal ignoring case are reported once; the
// first occurrence wins.
func UndefinedSteps(scenarios []*Scenario) []*Step {
	undefined := make([]*Step, 0)

	for _, scenario := range scenarios {
		for _, step := range scenario.Steps {
			if step.Result() != Undefined || containsText(undefined, step.Text) {
				continue
			}
			undefined = append(undefined, step)
		}
	}

	return undefined
}

func containsText(steps []*Step, text string) bool {
	for _, s := range steps {
		if strings.EqualFold(s.Text, text) {
			return true
		}
	}
	return false
}
