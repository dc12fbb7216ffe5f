// Package plaintext parses the line-oriented plain-text specification
// format into scenarios.
//
//	Specification: Banking
//
//	@smoke
//	Scenario: Deposit
//	  Given an account with $10.00
//	  When I deposit $5.00
//	  Then the balance is $15.00
//	  And the history contains
//	    | kind    | amount |
//	    | deposit | 5.00   |
package plaintext

import (
	"log/slog"
	"strings"

	"github.com/denizgursoy/plainspec/pkg/block"
	"github.com/denizgursoy/plainspec/pkg/spec"
	"github.com/denizgursoy/plainspec/pkg/textparser"
)

// Extension is the file extension of plain-text specifications.
const Extension = ".specs"

var (
	titlePrefixes    = []string{"specification:", "specifications:", "feature:", "story:"}
	scenarioPrefix   = "scenario:"
	continuationKeys = []string{"and", "but", "*"}
)

// Reader parses plain-text specifications.
type Reader struct {
	logger *slog.Logger
}

// NewReader creates a Reader that reports ignored lines to logger.
// A nil logger discards them.
func NewReader(logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Reader{logger: logger}
}

// Parse reads text into a Source. Lines that fit no rule are logged and
// skipped; parsing itself never fails.
func (r *Reader) Parse(name, text string) (*spec.Source, error) {
	p := &parse{
		logger: r.logger.With("source", name),
		source: &spec.Source{Scenarios: make([]*spec.Scenario, 0)},
	}

	for _, line := range textparser.GetLines(text) {
		p.line(line)
	}
	p.finish()

	return p.source, nil
}

// parse holds the state of one Parse call.
type parse struct {
	logger *slog.Logger
	source *spec.Source

	scenario *spec.Scenario
	step     *spec.Step
	tags     []string

	rows     [][]string
	inText   bool
	textType string
	text     []string
}

func (p *parse) line(line string) {
	if p.inText {
		if line == block.Fence {
			p.closeText()
			return
		}
		p.text = append(p.text, line)
		return
	}

	if block.IsRow(line) {
		if p.step == nil {
			p.logger.Warn("ignoring table row without a step", "line", line)
			return
		}
		p.rows = append(p.rows, block.ParseRow(line))
		return
	}
	p.flushTable()

	lower := strings.ToLower(line)
	switch {
	case strings.HasPrefix(line, block.Fence):
		if p.step == nil {
			p.logger.Warn("ignoring text block without a step", "line", line)
		}
		p.inText = true
		p.textType = strings.TrimSpace(strings.TrimPrefix(line, block.Fence))
		p.text = nil

	case strings.HasPrefix(line, "@"):
		p.tags = append(p.tags, strings.Fields(line)...)

	case strings.HasPrefix(lower, scenarioPrefix):
		p.scenario = &spec.Scenario{
			Name: strings.TrimSpace(line[len(scenarioPrefix):]),
			Tags: p.tags,
		}
		p.tags = nil
		p.step = nil
		p.source.Scenarios = append(p.source.Scenarios, p.scenario)

	case p.scenario == nil && hasAnyPrefix(lower, titlePrefixes):
		_, title, _ := strings.Cut(line, ":")
		p.source.Name = strings.TrimSpace(title)

	default:
		if kind, ok := p.stepKind(line); ok {
			p.addStep(kind, line)
			return
		}
		if p.scenario == nil && p.source.Name == "" {
			p.source.Name = line
			return
		}
		p.logger.Warn("ignoring unrecognised line", "line", line)
	}
}

// stepKind resolves the kind of a step line. Continuation keywords take
// the kind of the previous step of the scenario.
func (p *parse) stepKind(line string) (spec.StepKind, bool) {
	keyword, _, _ := strings.Cut(line, " ")
	if kind, ok := spec.ParseStepKind(keyword); ok {
		return kind, true
	}

	for _, k := range continuationKeys {
		if strings.EqualFold(keyword, k) {
			if p.step != nil {
				return p.step.Kind, true
			}
			p.logger.Warn("continuation step without a previous step", "line", line)
			return spec.Given, true
		}
	}
	return spec.Unknown, false
}

func (p *parse) addStep(kind spec.StepKind, line string) {
	if p.scenario == nil {
		p.scenario = &spec.Scenario{Name: p.source.Name, Tags: p.tags}
		p.tags = nil
		p.source.Scenarios = append(p.source.Scenarios, p.scenario)
	}

	p.step = spec.NewStep(kind, line)
	p.scenario.Steps = append(p.scenario.Steps, p.step)
}

func (p *parse) flushTable() {
	if len(p.rows) == 0 {
		return
	}
	p.step.Block = block.NewTable(p.rows)
	p.rows = nil
}

func (p *parse) closeText() {
	p.inText = false
	if p.step == nil {
		p.text = nil
		return
	}
	text := block.NewText(p.text)
	text.MediaType = p.textType
	p.step.Block = text
	p.text = nil
}

func (p *parse) finish() {
	p.flushTable()
	if p.inText {
		p.logger.Warn("text block is not closed")
		p.closeText()
	}
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}
