package gherkin_parser

import (
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	gherkin "github.com/cucumber/gherkin/go/v26"
	messages "github.com/cucumber/messages/go/v21"
	"github.com/denizgursoy/plainspec/pkg/block"
	"github.com/denizgursoy/plainspec/pkg/spec"
)

const (
	FeatureExtension = ".feature"
)

// SearchFeatureFilesIn walks the given directories (or files) and returns
// every file ending with one of the extensions, in walk order.
// Without extensions only .feature files are returned.
func SearchFeatureFilesIn(directories []string, extensions ...string) ([]string, error) {
	if len(extensions) == 0 {
		extensions = []string{FeatureExtension}
	}

	featureFiles := make([]string, 0)

	for _, directory := range directories {
		err := filepath.Walk(directory, func(path string, info fs.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() && hasExtension(info.Name(), extensions) {
				featureFiles = append(featureFiles, path)
			}
			return nil
		})

		if err != nil {
			return nil, fmt.Errorf("could not search %s: %w", directory, err)
		}
	}
	return featureFiles, nil
}

func hasExtension(name string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func ParseGherkinFile(reader io.Reader) (*messages.GherkinDocument, error) {
	id := (&messages.Incrementing{}).NewId
	document, err := gherkin.ParseGherkinDocument(reader, id)
	if err != nil {
		return nil, err
	}
	return document, nil
}

// Reader turns Gherkin feature files into scenarios. Backgrounds are
// prepended to every scenario they apply to and scenario outlines are
// expanded into one scenario per example row.
type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

// Parse parses a feature file's text into a Source named after the feature.
func (r *Reader) Parse(name, text string) (*spec.Source, error) {
	document, err := ParseGherkinFile(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("gherkin parse error in %s: %w", name, err)
	}

	return FromDocument(document), nil
}

// FromDocument flattens a parsed Gherkin document into scenarios.
func FromDocument(document *messages.GherkinDocument) *spec.Source {
	source := &spec.Source{Scenarios: make([]*spec.Scenario, 0)}
	if document == nil || document.Feature == nil {
		return source
	}

	feature := document.Feature
	source.Name = feature.Name
	featureTags := extractTagNames(feature.Tags)

	var featureBackground *messages.Background
	for _, child := range feature.Children {
		switch {
		case child.Background != nil:
			featureBackground = child.Background
		case child.Rule != nil:
			source.Scenarios = append(source.Scenarios, fromRule(child.Rule, featureBackground, featureTags)...)
		case child.Scenario != nil:
			source.Scenarios = append(source.Scenarios, fromScenario(child.Scenario, featureTags, featureBackground)...)
		}
	}

	return source
}

func fromRule(rule *messages.Rule, featureBackground *messages.Background, featureTags []string) []*spec.Scenario {
	scenarios := make([]*spec.Scenario, 0)
	tags := mergeTags(featureTags, extractTagNames(rule.Tags))

	var ruleBackground *messages.Background
	for _, child := range rule.Children {
		switch {
		case child.Background != nil:
			ruleBackground = child.Background
		case child.Scenario != nil:
			scenarios = append(scenarios, fromScenario(child.Scenario, tags, featureBackground, ruleBackground)...)
		}
	}
	return scenarios
}

// fromScenario converts a scenario, expanding outlines into one scenario
// per example row.
func fromScenario(scenario *messages.Scenario, parentTags []string, backgrounds ...*messages.Background) []*spec.Scenario {
	tags := mergeTags(parentTags, extractTagNames(scenario.Tags))

	if len(scenario.Examples) == 0 {
		return []*spec.Scenario{newScenario(scenario, scenario.Name, tags, nil, backgrounds)}
	}

	scenarios := make([]*spec.Scenario, 0)
	for _, examples := range scenario.Examples {
		if examples.TableHeader == nil {
			continue
		}
		exampleTags := mergeTags(tags, extractTagNames(examples.Tags))

		for i, row := range examples.TableBody {
			values := make(placeholders, 0, len(examples.TableHeader.Cells))
			for j, header := range examples.TableHeader.Cells {
				if j < len(row.Cells) {
					values = append(values, placeholder{name: header.Value, value: row.Cells[j].Value})
				}
			}

			name := substitute(scenario.Name, values)
			if examples.Name != "" {
				name += " -- " + examples.Name
			}
			name = fmt.Sprintf("%s (#%d)", name, i+1)

			scenarios = append(scenarios, newScenario(scenario, name, exampleTags, values, backgrounds))
		}
	}
	return scenarios
}

func newScenario(scenario *messages.Scenario, name string, tags []string, values placeholders, backgrounds []*messages.Background) *spec.Scenario {
	s := &spec.Scenario{
		Name: name,
		Tags: tags,
	}
	if scenario.Location != nil {
		s.Line = int(scenario.Location.Line)
	}

	kind := spec.Given
	for _, background := range backgrounds {
		if background == nil {
			continue
		}
		for _, step := range background.Steps {
			var converted *spec.Step
			converted, kind = newStep(step, kind, nil)
			s.Steps = append(s.Steps, converted)
		}
	}

	kind = spec.Given
	for _, step := range scenario.Steps {
		var converted *spec.Step
		converted, kind = newStep(step, kind, values)
		s.Steps = append(s.Steps, converted)
	}

	return s
}

// newStep converts a Gherkin step. The kind comes from the keyword type of
// the dialect; conjunctions and "*" take the kind of the previous step.
func newStep(step *messages.Step, previous spec.StepKind, values placeholders) (*spec.Step, spec.StepKind) {
	kind := previous
	switch step.KeywordType {
	case messages.StepKeywordType_CONTEXT:
		kind = spec.Given
	case messages.StepKeywordType_ACTION:
		kind = spec.When
	case messages.StepKeywordType_OUTCOME:
		kind = spec.Then
	}

	keyword := strings.TrimSpace(step.Keyword)
	converted := spec.NewStep(kind, keyword+" "+substitute(step.Text, values))
	converted.Keyword = keyword
	if step.Location != nil {
		converted.Line = int(step.Location.Line)
	}

	switch {
	case step.DataTable != nil:
		converted.Block = substituteTable(block.NewTableFromDataTable(step.DataTable), values)
	case step.DocString != nil:
		converted.Block = block.Text{
			Content:   substitute(step.DocString.Content, values),
			MediaType: step.DocString.MediaType,
		}
	}

	return converted, kind
}

type (
	placeholder struct {
		name  string
		value string
	}

	// placeholders are the example values of one row in header order.
	placeholders []placeholder
)

// substitute replaces <name> placeholders with example values, one header
// at a time in header order.
func substitute(text string, values placeholders) string {
	for _, p := range values {
		text = strings.ReplaceAll(text, "<"+p.name+">", p.value)
	}
	return text
}

func substituteTable(table block.Table, values placeholders) block.Table {
	if len(values) == 0 {
		return table
	}

	data := make([][]string, 0, table.Len())
	for _, row := range table.All() {
		cells := row.Values()
		for i := range cells {
			cells[i] = substitute(cells[i], values)
		}
		data = append(data, cells)
	}
	return block.NewTable(data)
}

func extractTagNames(tags []*messages.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return names
}

func mergeTags(parent, child []string) []string {
	merged := make([]string, 0, len(parent)+len(child))
	merged = append(merged, parent...)
	return append(merged, child...)
}
