package spec

// Source is what a structural parser produces from one specification text.
type Source struct {
	// Name is the document title, empty when the text has none.
	Name string

	Scenarios []*Scenario
}
