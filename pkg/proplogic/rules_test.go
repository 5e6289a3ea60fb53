package proplogic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModusTollensDerivesNegatedAntecedent(t *testing.T) {
	aImpB := parse(t, "p>q")
	negB := parse(t, "!q")

	result := ModusTollens(aImpB, negB)

	assert.False(t, result.Empty())
	assert.Equal(t, OpNegation, result.At(0).Op)
}

func TestModusTollensFailsOnMismatch(t *testing.T) {
	// Rigid (constant) premises: with schema variables, !r would unify
	// with any negated formula and the rule would succeed.
	aImpB := constant(t, "p>q")
	wrong := constant(t, "!r")

	result := ModusTollens(aImpB, wrong)

	assert.True(t, result.Empty())
}

func TestDisjunctiveSyllogismDerivesOtherDisjunct(t *testing.T) {
	negA := parse(t, "!p")
	aOrB := parse(t, "p|q")

	result := DisjunctiveSyllogism(negA, aOrB)

	assert.False(t, result.Empty())
}

func TestHypotheticalSyllogismChainsImplications(t *testing.T) {
	aImpB := parse(t, "p>q")
	bImpC := parse(t, "q>r")

	result := HypotheticalSyllogism(aImpB, bImpC)

	assert.False(t, result.Empty())
	assert.Equal(t, OpImplication, result.At(0).Op)
}

func TestSimpleConstructiveDilemma(t *testing.T) {
	aImpC := parse(t, "p>r")
	bImpC := parse(t, "q>r")
	aOrB := parse(t, "p|q")

	result := SimpleConstructiveDilemma(aImpC, bImpC, aOrB)

	assert.False(t, result.Empty())
}

func TestSimpleDestructiveDilemma(t *testing.T) {
	aImpC := parse(t, "p>r")
	aImpB := parse(t, "p>q")
	negBOrNegC := parse(t, "!q|!r")

	result := SimpleDestructiveDilemma(aImpC, aImpB, negBOrNegC)

	assert.False(t, result.Empty())
	assert.Equal(t, OpNegation, result.At(0).Op)
}

func TestDefaultExtraRulesShape(t *testing.T) {
	rules := DefaultExtraRules()

	assert.Len(t, rules, 3)
	for _, r := range rules {
		assert.Equal(t, 2, r.Arity)
		assert.NotEmpty(t, r.Name)
	}
}
