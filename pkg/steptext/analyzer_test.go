package steptext

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "keeps quoted phrases and currency together",
			text:     `Given I have "Bob Smith" and 42 and $19.99`,
			expected: []string{"Given", "I", "have", `"Bob Smith"`, "and", "42", "and", "$19.99"},
		},
		{
			name:     "drops empty tokens between consecutive spaces",
			text:     "When  I   wait",
			expected: []string{"When", "I", "wait"},
		},
		{
			name:     "always keeps the trailing token even if empty",
			text:     "Then done ",
			expected: []string{"Then", "done", ""},
		},
		{
			name:     "empty text",
			text:     "",
			expected: []string{""},
		},
		{
			name:     "unmatched quote swallows the rest",
			text:     `Given a "b c d`,
			expected: []string{"Given", "a", `"b c d`},
		},
		{
			name:     "quotes inside a word",
			text:     `Given say"hi there"now ok`,
			expected: []string{"Given", `say"hi there"now`, "ok"},
		},
		{
			name:     "empty quoted string",
			text:     `Given "" x`,
			expected: []string{"Given", `""`, "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, Split(tt.text))
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		token    string
		expected TokenType
	}{
		{"42", Integer},
		{"-7", Integer},
		{"+7", Integer},
		{"3.14", Decimal},
		{"-0.5", Decimal},
		{".5", Decimal},
		{"1,000.25", Decimal},
		{"10.", Decimal},
		{"$3.14", CurrencyDecimal},
		{"$50.00", CurrencyDecimal},
		{"$5", CurrencyDecimal},
		{`"hello"`, QuotedString},
		{`"Bob Smith"`, QuotedString},
		{`""`, Word},
		{`"`, Word},
		{"hello", Word},
		{"$", Word},
		{"$abc", Word},
		{"NaN", Word},
		{"Inf", Word},
		{"1e5", Word},
		{"", Word},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			require.Equal(t, tt.expected, Classify(tt.token))
		})
	}
}

func TestTokenType_IsArgument(t *testing.T) {
	require.False(t, Word.IsArgument())
	require.True(t, Integer.IsArgument())
	require.True(t, Decimal.IsArgument())
	require.True(t, CurrencyDecimal.IsArgument())
	require.True(t, QuotedString.IsArgument())
}

func TestUnquote(t *testing.T) {
	require.Equal(t, "Bob", Unquote(`"Bob"`))
	require.Equal(t, `""`, Unquote(`""`))
	require.Equal(t, "word", Unquote("word"))
}
