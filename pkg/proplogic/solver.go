package proplogic

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Solver performs bounded saturation search over modus ponens (and any
// registered extra rules), using the deduction theorem to decompose an
// implicational goal before search begins (spec.md §4.5). A Solver is
// single-use: construct one per proof attempt and call Solve once.
//
// The core engine is intentionally single-threaded and non-blocking —
// cmd/provebatch achieves batch throughput by running independent
// Solver instances across a worker pool rather than by parallelizing
// one search (SPEC_FULL.md §3.2).
type Solver struct {
	cfg *solverConfig

	knownAxioms map[string]struct{}
	axioms      []Expression
	produced    []Expression
	targets     []Expression

	log   *DerivationLog
	notes []string

	proof  Expression
	target Expression
	solved bool
}

// NewSolver builds a Solver for target given at least three axioms
// (spec.md §7). target is standardized and frozen (its variables
// promoted to constants) before being stored, so callers pass in the
// raw parsed goal.
func NewSolver(axioms []Expression, target Expression, opts ...SolverOption) (*Solver, error) {
	if len(axioms) < 3 {
		return nil, ErrTooFewAxioms
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	goal := target.Clone()
	goal.Standardize()
	goal.MakePermanent()

	s := &Solver{
		cfg:         cfg,
		knownAxioms: make(map[string]struct{}, 10000),
		axioms:      append([]Expression(nil), axioms...),
		targets:     []Expression{goal},
		log:         newDerivationLog(cfg.sink),
	}
	bootstrapLemmas(s.log)
	return s, nil
}

// ThoughtChain returns the human-readable proof narrative assembled by
// the most recent Solve call: deduction-theorem decomposition steps,
// the numbered axiom-first proof chain, and — when the proof found is a
// schema whose variables unify with the (frozen) target — the assignment
// that specializes the proof to the target.
func (s *Solver) ThoughtChain() string {
	return strings.Join(s.notes, "\n")
}

// Solved reports whether the most recent Solve call found a proof.
func (s *Solver) Solved() bool {
	return s.solved
}

// Proof returns the normalized expression that was found to prove the
// (possibly decomposed) target, or the zero Expression if Solve has not
// yet succeeded.
func (s *Solver) Proof() Expression {
	return s.proof
}

// Solve runs the saturation search until a proof is found, ctx is
// cancelled, or the configured time limit elapses. It returns nil once
// a proof is found; otherwise it returns ctx.Err() or ErrNoProofFound.
func (s *Solver) Solve(ctx context.Context) error {
	deadline := time.Now().Add(s.cfg.timeLimit)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	for s.deductionTheoremDecomposition(s.targets[len(s.targets)-1]) {
		prev := s.targets[len(s.targets)-2]
		curr := s.targets[len(s.targets)-1]
		axiom := s.axioms[len(s.axioms)-1]
		s.notes = append(s.notes, fmt.Sprintf(
			"deduction theorem: Γ ⊢ %s <=> Γ U {%s} ⊢ %s",
			prev.String(), axiom.String(), curr.String()))
		s.cfg.logger.Debug("deduction theorem decomposition", "from", prev.String(), "axiom", axiom.String(), "to", curr.String())
	}

	for i := range s.axioms {
		s.axioms[i].Normalize()
		s.produced = append(s.produced, s.axioms[i])
		s.log.recordAxiom(s.axioms[i].String())
	}

	s.produced = append(s.produced, implicationSwap())
	s.axioms = s.axioms[:0]
	s.knownAxioms = make(map[string]struct{}, 10000)

	for time.Now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.produce(deadline)

		if len(s.axioms) > 0 && s.isTargetProvedBy(s.axioms[len(s.axioms)-1]) {
			break
		}
	}

	provedIdx := -1
	for i, axiom := range s.axioms {
		if s.isTargetProvedBy(axiom) {
			provedIdx = i
			break
		}
	}
	if provedIdx == -1 {
		s.notes = append(s.notes, "No proof was found in the time allotted")
		s.cfg.logger.Info("search exhausted without a proof", "axioms_tried", len(s.axioms))
		return ErrNoProofFound
	}

	proof := s.axioms[provedIdx]
	var provedTarget Expression
	for _, t := range s.targets {
		if IsEqual(t, proof) {
			provedTarget = t
			break
		}
	}

	s.proof, s.target, s.solved = proof, provedTarget, true
	s.cfg.logger.Info("proof found", "expression", proof.String())
	s.buildThoughtChain(proof, provedTarget)
	return nil
}

// deductionTheoremDecomposition implements Γ ⊢ A→B ⇔ Γ∪{A} ⊢ B: if expr
// is an Implication, its antecedent becomes a new axiom and its
// consequent becomes a new target, and true is returned so the caller
// keeps peeling implications off of the newest target.
func (s *Solver) deductionTheoremDecomposition(expr Expression) bool {
	if expr.Empty() || expr.At(0).Op != OpImplication {
		return false
	}
	s.axioms = append(s.axioms, expr.SubtreeCopy(expr.Subtree(0).Left))
	s.targets = append(s.targets, expr.SubtreeCopy(expr.Subtree(0).Right))
	return true
}

// isTargetProvedBy reports whether expr is equal (up to variable
// renaming) to any currently registered target.
func (s *Solver) isTargetProvedBy(expr Expression) bool {
	if expr.Empty() {
		return false
	}
	for _, t := range s.targets {
		if IsEqual(t, expr) {
			return true
		}
	}
	return false
}

// isGoodExpression filters the heuristic junk out of a saturation wave
// (spec.md §4.5): oversized expressions, a root-level Conjunction
// (never useful as a fact to combine further), and expressions with
// more Conjunction nodes than cfg.conjunctionBudget allows.
func (s *Solver) isGoodExpression(expr Expression) bool {
	if expr.Empty() {
		return false
	}
	if expr.Size() > s.cfg.lengthBound {
		return false
	}
	if expr.At(0).Op == OpConjunction {
		return false
	}
	if expr.Operations(OpConjunction) > s.cfg.conjunctionBudget {
		return false
	}
	return true
}

// produce runs one saturation wave: every expression carried over from
// the previous wave is normalized and promoted to a known axiom, then
// combined via modus ponens (and any WithExtraRules) against every
// axiom seen so far, in both argument orders. Newly produced
// expressions become the next wave, sorted by size (spec.md §4.5
// "produce").
func (s *Solver) produce(deadline time.Time) {
	if len(s.produced) == 0 {
		return
	}

	newlyProduced := make([]Expression, 0, 2*len(s.produced))

	for _, expression := range s.produced {
		if time.Now().After(deadline) {
			break
		}
		if expression.Size() > s.cfg.lengthBound {
			continue
		}

		expression.Normalize()
		s.axioms = append(s.axioms, expression)
		s.log.recordAxiom(expression.String())

		if s.isTargetProvedBy(s.axioms[len(s.axioms)-1]) {
			return
		}

		last := s.axioms[len(s.axioms)-1]
		n := len(s.axioms)
		for j := 0; j < n; j++ {
			if s.tryCombine(s.axioms[j], last, &newlyProduced) {
				return
			}
			if j+1 == n {
				break
			}
			if s.tryCombine(last, s.axioms[j], &newlyProduced) {
				return
			}
		}
	}

	if time.Now().After(deadline) {
		return
	}

	sort.Slice(newlyProduced, func(i, j int) bool {
		return newlyProduced[i].Size() < newlyProduced[j].Size()
	})
	s.produced = newlyProduced
}

// tryCombine applies modus ponens (and any two-premise extra rules) to
// the ordered pair (a, b), keeping every result that passes
// isGoodExpression and has not been seen before. It returns true the
// moment a result proves a target, having already pushed that result
// onto s.axioms so the caller's post-produce check finds it.
func (s *Solver) tryCombine(a, b Expression, newlyProduced *[]Expression) bool {
	type candidate struct {
		expr Expression
		rule string
	}

	candidates := []candidate{{ModusPonens(a, b), "mp"}}
	for _, rule := range s.cfg.extraRules {
		if rule.Arity == 2 {
			candidates = append(candidates, candidate{rule.Apply(a, b), rule.Name})
		}
	}

	for _, cand := range candidates {
		if !s.isGoodExpression(cand.expr) {
			continue
		}

		repr := cand.expr.String()
		if _, seen := s.knownAxioms[repr]; seen {
			continue
		}

		*newlyProduced = append(*newlyProduced, cand.expr)
		s.knownAxioms[repr] = struct{}{}
		s.log.recordStep(repr, cand.rule, a.String(), b.String())

		if s.isTargetProvedBy(cand.expr) {
			s.axioms = append(s.axioms, cand.expr)
			return true
		}
	}
	return false
}

// buildThoughtChain replays the derivation log backward from proof,
// assigning axioms the lowest indices (in the order their dependency
// chains bottom out), then numbers every step in that order and —
// if unifying provedTarget with proof binds any of proof's variables —
// reports that assignment (spec.md §4.6).
func (s *Solver) buildThoughtChain(proof, provedTarget Expression) {
	indices := make(map[string]int)
	chain := make(map[int]DerivationRecord)
	processed := make(map[string]bool)
	nextIndex := 1

	levels := [][]string{{proof.String()}}
	for len(levels[len(levels)-1]) > 0 {
		var level []string
		for _, expr := range levels[len(levels)-1] {
			rec, ok := s.log.lookup(expr)
			if !ok || processed[rec.Expression] {
				continue
			}

			if rec.Rule == "axiom" {
				if _, seen := indices[rec.Expression]; !seen {
					chain[nextIndex] = rec
					indices[rec.Expression] = nextIndex
					nextIndex++
				}
			}

			level = append(level, rec.Dependencies...)
			processed[rec.Expression] = true
		}
		levels = append(levels, level)
	}

	for i, j := 0, len(levels)-1; i < j; i, j = i+1, j-1 {
		levels[i], levels[j] = levels[j], levels[i]
	}

	for _, level := range levels {
		for _, expr := range level {
			if _, seen := indices[expr]; seen {
				continue
			}
			rec, ok := s.log.lookup(expr)
			if !ok {
				continue
			}
			chain[nextIndex] = rec
			indices[expr] = nextIndex
			nextIndex++
		}
	}

	for i := 1; i < nextIndex; i++ {
		rec := chain[i]
		if rec.Rule == "axiom" {
			s.notes = append(s.notes, fmt.Sprintf("%d. axiom: %s", i, rec.Expression))
			continue
		}

		deps := make([]string, len(rec.Dependencies))
		for k, dep := range rec.Dependencies {
			deps[k] = fmt.Sprintf("%d", indices[dep])
		}
		s.notes = append(s.notes, fmt.Sprintf("%d. %s(%s): %s", i, rec.Rule, strings.Join(deps, ","), rec.Expression))
	}

	sub, err := Unify(provedTarget, proof)
	if err != nil || len(sub) == 0 {
		return
	}

	s.notes = append(s.notes, fmt.Sprintf("change variables: %s", proof.String()))

	vars := make([]int32, 0, len(sub))
	for v := range sub {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i] < vars[j] })
	for _, v := range vars {
		s.notes = append(s.notes, fmt.Sprintf("%c -> %s", rune('A'+v-1), sub[v].String()))
	}

	s.notes = append(s.notes, fmt.Sprintf("proved: %s", provedTarget.String()))
}
