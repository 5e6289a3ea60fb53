package proplogic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpString(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{OpNop, ""},
		{OpNegation, "!"},
		{OpImplication, ">"},
		{OpDisjunction, "|"},
		{OpConjunction, "*"},
		{OpXor, "+"},
		{OpEquivalent, "="},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.op.String())
		})
	}
}

func TestPriorityOrdering(t *testing.T) {
	require.Greater(t, priority(OpNegation), priority(OpConjunction))
	require.Greater(t, priority(OpConjunction), priority(OpDisjunction))
	require.Greater(t, priority(OpDisjunction), priority(OpXor))
	require.Equal(t, priority(OpXor), priority(OpEquivalent))
	require.Greater(t, priority(OpXor), priority(OpImplication))
}

func TestIsCommutative(t *testing.T) {
	assert.False(t, isCommutative(OpNop))
	assert.False(t, isCommutative(OpNegation))
	assert.False(t, isCommutative(OpImplication))
	assert.True(t, isCommutative(OpDisjunction))
	assert.True(t, isCommutative(OpConjunction))
	assert.True(t, isCommutative(OpXor))
	assert.True(t, isCommutative(OpEquivalent))
}

func TestOpposite(t *testing.T) {
	tests := []struct {
		op   Op
		want Op
	}{
		{OpNop, OpNop},
		{OpNegation, OpNegation},
		{OpDisjunction, OpConjunction},
		{OpImplication, OpConjunction},
		{OpConjunction, OpImplication},
		{OpXor, OpEquivalent},
		{OpEquivalent, OpXor},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, opposite(tc.op), "opposite(%s)", tc.op)
	}
}

func TestTermEqual(t *testing.T) {
	a := Term{Kind: KindVariable, Op: OpNop, Value: 1}
	b := Term{Kind: KindVariable, Op: OpNop, Value: 1}
	c := Term{Kind: KindVariable, Op: OpNegation, Value: 1}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestIncreaseIndex(t *testing.T) {
	assert.Equal(t, Invalid, increaseIndex(Invalid, 5))
	assert.Equal(t, 7, increaseIndex(2, 5))
}
