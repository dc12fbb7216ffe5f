package spec

import (
	"slices"
	"sort"
)

// Hooks is a set of lifecycle callbacks run while a document is verified.
type Hooks struct {
	// Order determines execution order, lower first. Sets with the same
	// Order run in registration order.
	Order int

	// Tags limits the scenario and step callbacks to scenarios carrying at
	// least one of these tags. Empty means every scenario.
	Tags []string

	// BeforeAll runs once before the first scenario of a document.
	BeforeAll func()

	// AfterAll runs once after the last scenario of a document.
	AfterAll func()

	// BeforeScenario runs before the first step of a scenario.
	BeforeScenario func(*Scenario)

	// AfterScenario runs once every step has a result; use Passed and Err
	// on the scenario to inspect it.
	AfterScenario func(*Scenario)

	// BeforeStep runs before a step is executed. Steps that are not
	// executed (skipped after a failure, or after an undefined step) get no
	// step callbacks.
	BeforeStep func(*Scenario, *Step)

	// AfterStep receives the outcome recorded for the executed step.
	AfterStep func(*Scenario, *Step, Outcome)
}

func (h *Hooks) appliesTo(scenario *Scenario) bool {
	if len(h.Tags) == 0 || scenario == nil {
		return true
	}
	for _, tag := range h.Tags {
		if slices.Contains(scenario.Tags, tag) {
			return true
		}
	}
	return false
}

// SortHooks returns the hook sets ordered by Order. The sort is stable.
func SortHooks(hooks []*Hooks) []*Hooks {
	sorted := make([]*Hooks, len(hooks))
	copy(sorted, hooks)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})

	return sorted
}

// HookExecutor runs hook sets in order. A nil *HookExecutor runs nothing.
type HookExecutor struct {
	hooks []*Hooks
}

// NewHookExecutor drops nil sets and sorts the rest.
func NewHookExecutor(hooks ...*Hooks) *HookExecutor {
	valid := make([]*Hooks, 0, len(hooks))
	for _, h := range hooks {
		if h != nil {
			valid = append(valid, h)
		}
	}

	return &HookExecutor{hooks: SortHooks(valid)}
}

// each calls fn for every hook set applying to scenario. Document level
// callbacks pass a nil scenario and reach every set.
func (e *HookExecutor) each(scenario *Scenario, fn func(*Hooks)) {
	if e == nil {
		return
	}
	for _, h := range e.hooks {
		if h.appliesTo(scenario) {
			fn(h)
		}
	}
}

func (e *HookExecutor) ExecuteBeforeAll() {
	e.each(nil, func(h *Hooks) {
		if h.BeforeAll != nil {
			h.BeforeAll()
		}
	})
}

func (e *HookExecutor) ExecuteAfterAll() {
	e.each(nil, func(h *Hooks) {
		if h.AfterAll != nil {
			h.AfterAll()
		}
	})
}

func (e *HookExecutor) ExecuteBeforeScenario(scenario *Scenario) {
	e.each(scenario, func(h *Hooks) {
		if h.BeforeScenario != nil {
			h.BeforeScenario(scenario)
		}
	})
}

func (e *HookExecutor) ExecuteAfterScenario(scenario *Scenario) {
	e.each(scenario, func(h *Hooks) {
		if h.AfterScenario != nil {
			h.AfterScenario(scenario)
		}
	})
}

func (e *HookExecutor) ExecuteBeforeStep(scenario *Scenario, step *Step) {
	e.each(scenario, func(h *Hooks) {
		if h.BeforeStep != nil {
			h.BeforeStep(scenario, step)
		}
	})
}

func (e *HookExecutor) ExecuteAfterStep(scenario *Scenario, step *Step, outcome Outcome) {
	e.each(scenario, func(h *Hooks) {
		if h.AfterStep != nil {
			h.AfterStep(scenario, step, outcome)
		}
	})
}
