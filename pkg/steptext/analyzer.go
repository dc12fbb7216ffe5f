// Package steptext segments step text into words and classifies each word
// as a literal or as an argument (number or quoted string).
package steptext

import (
	"regexp"
	"strconv"
)

// TokenType is the scalar type inferred for a token of step text.
type TokenType int

const (
	Word TokenType = iota
	Integer
	Decimal
	CurrencyDecimal
	QuotedString
)

func (t TokenType) String() string {
	switch t {
	case Integer:
		return "integer"
	case Decimal:
		return "decimal"
	case CurrencyDecimal:
		return "currency decimal"
	case QuotedString:
		return "quoted string"
	default:
		return "word"
	}
}

// IsArgument reports whether tokens of this type become step arguments.
func (t TokenType) IsArgument() bool {
	return t != Word
}

// decimalPattern accepts plain and thousands-grouped fractional numbers.
// Exponents and the special float spellings (NaN, Inf) are not decimals.
var decimalPattern = regexp.MustCompile(`^[+-]?(\d+(,\d{3})*(\.\d*)?|\.\d+)$`)

// Split breaks text on spaces that are outside double quotes. Quotes are
// kept in the token; an unmatched quote quotes the rest of the text. Empty
// tokens between consecutive spaces are dropped, but the final token is
// always returned, even when it is empty.
func Split(text string) []string {
	parts := make([]string, 0)

	quoted := false
	start := 0
	for i := 0; i < len(text); i++ {
		c := text[i]

		if c == '"' {
			quoted = !quoted
		}

		if !quoted && c == ' ' {
			if start < i {
				parts = append(parts, text[start:i])
			}
			start = i + 1
		}
	}

	return append(parts, text[start:])
}

// Classify returns the type of a single token. Checks run in priority
// order: integer, decimal (optionally "$"-prefixed), quoted string, word.
func Classify(token string) TokenType {
	switch {
	case IsInteger(token):
		return Integer
	case IsDecimal(token):
		return Decimal
	case IsCurrency(token):
		return CurrencyDecimal
	case IsString(token):
		return QuotedString
	default:
		return Word
	}
}

// IsInteger reports whether token is a base-10 whole number with an optional sign.
func IsInteger(token string) bool {
	_, err := strconv.Atoi(token)
	return err == nil
}

// IsDecimal reports whether token is a fractional (or whole) number.
func IsDecimal(token string) bool {
	return decimalPattern.MatchString(token)
}

// IsCurrency reports whether token is a "$"-prefixed decimal such as "$19.99".
func IsCurrency(token string) bool {
	return len(token) >= 2 && token[0] == '$' && IsDecimal(token[1:])
}

// IsString reports whether token is wrapped in double quotes. A bare pair of
// quotes ("") is too short to count.
func IsString(token string) bool {
	return len(token) > 2 && token[0] == '"' && token[len(token)-1] == '"'
}

// Unquote strips the surrounding quotes of a quoted-string token.
func Unquote(token string) string {
	if IsString(token) {
		return token[1 : len(token)-1]
	}
	return token
}
