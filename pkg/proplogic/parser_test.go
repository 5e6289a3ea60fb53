package proplogic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a", "a"},
		{"!a", "!a"},
		{"a>b", "a>b"},
		{"a*b", "a*b"},
		{"a|b", "a|b"},
		{"!!a", "a"},
		{"(a>b)>c", "(a>b)>c"},
		{"a>(b>a)", "a>(b>a)"},
		{"(a*b)>c", "(a*b)>c"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			expr, err := Parse(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, expr.String())
		})
	}
}

func TestParseSamePriorityIsRightAssociative(t *testing.T) {
	// Strict '>' comparison during shunting-yard means an operator only
	// pops the stack for a STRICTLY higher-priority predecessor; equal
	// priority operators therefore group to the right, not the left
	// (DESIGN.md, Open Question 1 on parser associativity).
	expr, err := Parse("a+b+c")
	require.NoError(t, err)
	assert.Equal(t, "a+(b+c)", expr.String())
}

func TestParseUnaryNegationBindsTighter(t *testing.T) {
	expr, err := Parse("!a*b")
	require.NoError(t, err)
	assert.Equal(t, "!a*b", expr.String())

	// the root must be Conjunction, not Negation, confirming !a bound first
	assert.Equal(t, OpConjunction, expr.At(0).Op)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unmatched close", "a)"},
		{"unmatched open", "(a"},
		{"double operator", "a>>b"},
		{"invalid character", "a?b"},
		{"empty", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.input)
			require.Error(t, err)
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
		})
	}
}
