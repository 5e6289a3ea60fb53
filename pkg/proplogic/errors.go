package proplogic

import "github.com/pkg/errors"

// Sentinel errors returned by Unify (spec.md §4.3/§7). All of them are
// local failure modes: callers discard the attempted inference and move
// on, exactly as spec.md §7's error table requires.
var (
	// ErrOperatorMismatch is returned when two Function nodes at the
	// same position use different connectives.
	ErrOperatorMismatch = errors.New("unify: operator mismatch")
	// ErrConstantMismatch is returned when two Constant leaves at the
	// same position carry different values or disagree on polarity.
	ErrConstantMismatch = errors.New("unify: constant mismatch")
	// ErrPolarityMismatch is returned when the same variable is required
	// to be both negated and unnegated at once.
	ErrPolarityMismatch = errors.New("unify: polarity mismatch on equal variables")
	// ErrOccursCheck is returned when a binding would make a variable
	// occur within its own expansion, directly or after chasing through
	// the substitution graph.
	ErrOccursCheck = errors.New("unify: occurs-check violation")
	// ErrShapeMismatch is returned for any other unexpected kind
	// combination (spec.md §4.3 case 7).
	ErrShapeMismatch = errors.New("unify: incompatible term shapes")
)

// ErrTooFewAxioms is returned by NewSolver when fewer than three axioms
// are supplied (spec.md §4.5/§7: fatal, surfaced at construction).
var ErrTooFewAxioms = errors.New("solver: at least three axioms are required")

// ErrNoProofFound is returned by Solver.Solve when the search exhausts
// its time budget (or the caller's context deadline) without deriving
// any registered target (spec.md §4.5/§7). A cancelled context is
// reported as ctx.Err() instead.
var ErrNoProofFound = errors.New("solver: no proof was found in the time allotted")
