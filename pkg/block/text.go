package block

import "strings"

// Indent prefixes every rendered block line so blocks stand out under their step.
const Indent = "    "

// Fence opens and closes a text block in plain-text specifications.
const Fence = `"""`

// Text is a free-form text block attached to a step.
type Text struct {
	Content   string
	MediaType string
}

// NewText creates a text block from its lines.
func NewText(lines []string) Text {
	return Text{Content: strings.Join(lines, "\n")}
}

// Format renders the text between fences.
func (t Text) Format() string {
	var b strings.Builder
	b.WriteString(Indent + Fence + t.MediaType + "\n")
	if t.Content != "" {
		for _, line := range strings.Split(t.Content, "\n") {
			b.WriteString(Indent + line + "\n")
		}
	}
	b.WriteString(Indent + Fence + "\n")
	return b.String()
}

// Value returns the content handed to a step definition's string parameter.
func (t Text) Value() any {
	return t.Content
}

// SuggestedParameterType is the type a step definition declares to receive the text.
func (t Text) SuggestedParameterType() string {
	return "string"
}

// SuggestedParameterName is the parameter name used in generated stubs.
func (t Text) SuggestedParameterName() string {
	return "text"
}
