package proplogic

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSolverRequiresThreeAxioms(t *testing.T) {
	target := parse(t, "a>a")

	_, err := NewSolver([]Expression{parse(t, "a"), parse(t, "b")}, target)

	assert.ErrorIs(t, err, ErrTooFewAxioms)
}

func TestNewSolverStandardizesAndFreezesTarget(t *testing.T) {
	target := parse(t, "a|b")

	solver, err := NewSolver(StandardAxioms(), target)

	require.NoError(t, err)
	require.Len(t, solver.targets, 1)
	assert.Equal(t, "!A>B", solver.targets[0].String())
	for i := 0; i < solver.targets[0].Size(); i++ {
		assert.NotEqual(t, KindVariable, solver.targets[0].At(i).Kind)
	}
}

func TestSolveProvesIdentity(t *testing.T) {
	target := parse(t, "a>a")

	solver, err := NewSolver(
		StandardAxioms(),
		target,
		WithTimeLimit(10*time.Second),
		WithLengthBound(30),
	)
	require.NoError(t, err)

	err = solver.Solve(context.Background())

	require.NoError(t, err)
	assert.True(t, solver.Solved())
	assert.False(t, solver.Proof().Empty())
	assert.NotEmpty(t, solver.ThoughtChain())
}

func TestSolveRespectsCancelledContext(t *testing.T) {
	target := parse(t, "a>a")
	solver, err := NewSolver(StandardAxioms(), target, WithTimeLimit(10*time.Second))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = solver.Solve(ctx)

	assert.Error(t, err)
	assert.False(t, solver.Solved())
}

func TestSolveReturnsNoProofFoundWhenDeadlineTooShort(t *testing.T) {
	// An implausibly hard target with a near-zero time budget should
	// exhaust the search without ever reaching it.
	target := parse(t, "(((a>b)>c)>d)>(((e>f)>g)>h)")
	solver, err := NewSolver(StandardAxioms(), target, WithTimeLimit(time.Nanosecond))
	require.NoError(t, err)

	err = solver.Solve(context.Background())

	assert.ErrorIs(t, err, ErrNoProofFound)
	assert.False(t, solver.Solved())
}

func TestIsGoodExpressionRejectsOversizedAndRootConjunction(t *testing.T) {
	solver, err := NewSolver(StandardAxioms(), parse(t, "a>a"), WithLengthBound(3))
	require.NoError(t, err)

	big := parse(t, "(a>(b>(c>(d>e))))")
	assert.False(t, solver.isGoodExpression(big))

	rootConjunction := parse(t, "a*b")
	assert.False(t, solver.isGoodExpression(rootConjunction))

	assert.False(t, solver.isGoodExpression(Expression{}))
}

func TestIsGoodExpressionRespectsConjunctionBudget(t *testing.T) {
	solver, err := NewSolver(StandardAxioms(), parse(t, "a>a"), WithConjunctionBudget(0))
	require.NoError(t, err)

	oneConjunction := parse(t, "(a*b)>c")
	assert.False(t, solver.isGoodExpression(oneConjunction))
}

func TestDeductionTheoremDecompositionPeelsImplication(t *testing.T) {
	solver, err := NewSolver(StandardAxioms(), parse(t, "a>(b>a)"))
	require.NoError(t, err)

	baseTargets := len(solver.targets)
	ok := solver.deductionTheoremDecomposition(solver.targets[len(solver.targets)-1])

	require.True(t, ok)
	assert.Len(t, solver.targets, baseTargets+1)
	assert.Len(t, solver.axioms, len(StandardAxioms())+1)
}

func TestDeductionTheoremDecompositionStopsOnNonImplication(t *testing.T) {
	solver, err := NewSolver(StandardAxioms(), parse(t, "a"))
	require.NoError(t, err)

	ok := solver.deductionTheoremDecomposition(solver.targets[len(solver.targets)-1])

	assert.False(t, ok)
}

func TestWithExtraRulesConstructsSolver(t *testing.T) {
	solver, err := NewSolver(
		StandardAxioms(),
		parse(t, "a>a"),
		WithExtraRules(DefaultExtraRules()...),
	)

	require.NoError(t, err)
	assert.Len(t, solver.cfg.extraRules, 3)
}
