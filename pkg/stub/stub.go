// Package stub builds ready-to-paste step definition code for steps that
// have no matching definition.
package stub

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/dave/jennifer/jen"
	"github.com/denizgursoy/plainspec/pkg/spec"
	"github.com/denizgursoy/plainspec/pkg/steptext"
)

// Go types used for argument parameters.
const (
	IntegerType = "int"
	DecimalType = "float64"
	StringType  = "string"
)

// Capture groups used in generated step patterns. They accept exactly what
// the step registry can convert to the parameter types above.
const (
	integerGroup  = `([+-]?\d+)`
	decimalGroup  = `([+-]?(?:\d+(?:,\d{3})*(?:\.\d*)?|\.\d+))`
	currencyGroup = `\$` + decimalGroup
	stringGroup   = `"(.*)"`

	// wordSeparator matches the run of spaces between two tokens.
	wordSeparator = ` +`
)

// Parameter is one parameter of a generated step definition.
type Parameter struct {
	Type string
	Name string
}

// Candidate is a suggested step definition for an undefined step.
type Candidate struct {
	// Identifier is the function name derived from the step text.
	Identifier string

	// Parameters are the argument parameters in text order, followed by the
	// block parameter when the step has a block.
	Parameters []Parameter

	// Pattern is a step pattern matching the step text without its keyword.
	Pattern string
}

// Synthesize derives the stub candidate for step.
func Synthesize(step *spec.Step) Candidate {
	tokens := keywordFirst(step, steptext.Split(step.Text))

	return Candidate{
		Identifier: identifier(step.Kind, tokens),
		Parameters: parameters(tokens, step.Block),
		Pattern:    pattern(tokens),
	}
}

// Code renders the stub code for step.
func Code(step *spec.Step) string {
	return Synthesize(step).Code()
}

// keywordFirst merges the words of a multi-word keyword into the first token.
func keywordFirst(step *spec.Step, tokens []string) []string {
	if n := len(strings.Fields(step.Keyword)); n > 1 && len(tokens) >= n {
		return append([]string{step.Keyword}, tokens[n:]...)
	}
	return tokens
}

// identifier replaces argument tokens with argN, the leading keyword with
// the step kind, and joins everything lower-cased with underscores.
func identifier(kind spec.StepKind, tokens []string) string {
	parts := make([]string, 0, len(tokens))

	arg := 1
	for i, token := range tokens {
		switch {
		case steptext.Classify(token).IsArgument():
			parts = append(parts, fmt.Sprintf("arg%d", arg))
			arg++
		case i == 0:
			parts = append(parts, kind.String())
		default:
			parts = append(parts, token)
		}
	}

	return strings.ToLower(strings.Join(parts, "_"))
}

func parameters(tokens []string, block spec.Block) []Parameter {
	params := make([]Parameter, 0)

	arg := 1
	for _, token := range tokens {
		var typ string
		switch steptext.Classify(token) {
		case steptext.Integer:
			typ = IntegerType
		case steptext.Decimal, steptext.CurrencyDecimal:
			typ = DecimalType
		case steptext.QuotedString:
			typ = StringType
		default:
			continue
		}
		params = append(params, Parameter{Type: typ, Name: fmt.Sprintf("arg%d", arg)})
		arg++
	}

	if block != nil {
		params = append(params, Parameter{
			Type: block.SuggestedParameterType(),
			Name: block.SuggestedParameterName(),
		})
	}

	return params
}

// pattern matches the step body the way Step.Body returns it: arguments
// become capture groups, words are literal and any run of spaces separates
// them.
func pattern(tokens []string) string {
	parts := make([]string, 0, len(tokens))
	for i, token := range tokens {
		if i == 0 || token == "" {
			continue
		}

		switch steptext.Classify(token) {
		case steptext.Integer:
			parts = append(parts, integerGroup)
		case steptext.Decimal:
			parts = append(parts, decimalGroup)
		case steptext.CurrencyDecimal:
			parts = append(parts, currencyGroup)
		case steptext.QuotedString:
			parts = append(parts, stringGroup)
		default:
			parts = append(parts, regexp.QuoteMeta(token))
		}
	}

	return "^" + strings.Join(parts, wordSeparator) + "$"
}

// Signature renders the parameter list, e.g. "arg1 int, table block.Table".
func (c Candidate) Signature() string {
	params := make([]string, len(c.Parameters))
	for i, p := range c.Parameters {
		params[i] = p.Name + " " + p.Type
	}
	return strings.Join(params, ", ")
}

// Statement builds the stub as a jennifer statement: a pattern comment and
// a function whose body panics with "not implemented".
func (c Candidate) Statement() *jen.Statement {
	params := make([]jen.Code, len(c.Parameters))
	for i, p := range c.Parameters {
		params[i] = jen.Id(GoIdentifier(p.Name)).Add(typeCode(p.Type))
	}

	return jen.Comment("@step " + c.Pattern).Line().
		Func().Id(GoIdentifier(c.Identifier)).Params(params...).Block(
		jen.Panic(jen.Lit("not implemented")),
	)
}

// BlockPackage is the import path of the block types used in stub parameters.
const BlockPackage = "github.com/denizgursoy/plainspec/pkg/block"

// typeCode qualifies block types so that files rendering stubs import them.
func typeCode(typ string) jen.Code {
	if name, ok := strings.CutPrefix(typ, "block."); ok {
		return jen.Qual(BlockPackage, name)
	}
	return jen.Id(typ)
}

// Code renders the stub as Go source. If the parameter types do not form
// valid Go the unformatted text is returned instead.
func (c Candidate) Code() string {
	var buf bytes.Buffer
	if err := c.Statement().Render(&buf); err != nil {
		return fmt.Sprintf("// @step %s\nfunc %s(%s) {\n\tpanic(\"not implemented\")\n}",
			c.Pattern, GoIdentifier(c.Identifier), c.Signature())
	}
	return strings.TrimRight(buf.String(), "\n")
}

// GoIdentifier turns a raw name into a valid Go identifier. Characters that
// are not letters, digits or underscores become underscores, and a leading
// digit is prefixed with an underscore.
func GoIdentifier(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}

	name := b.String()
	if name == "" {
		return "_"
	}
	if unicode.IsDigit([]rune(name)[0]) {
		name = "_" + name
	}
	return name
}
