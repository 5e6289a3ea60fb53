package proplogic

// StandardAxioms returns the three Hilbert axiom schemas this engine
// searches from by default (spec.md §4.5): the same three schemas
// task1.cpp hands the original solver. Callers of NewSolver that don't
// supply their own axiom set should pass this.
func StandardAxioms() []Expression {
	return standardAxioms()
}

func standardAxioms() []Expression {
	return []Expression{
		mustParse("a>(b>a)"),
		mustParse("(a>(b>c))>((a>b)>(a>c))"),
		mustParse("(!a>!b)>((!a>b)>a)"),
	}
}

// implicationSwap is the contraposition-swap lemma (¬a→¬b)→(b→a). It is
// seeded directly into the first production wave alongside the
// normalized base axioms without itself being derived from them
// (DESIGN.md, Open Question 3) — matching the original engine's
// "isr rule" seed.
func implicationSwap() Expression {
	return mustParse("(!a>!b)>(b>a)")
}

// bootstrapLemmas derives the eight classical lemmas reachable from
// standardAxioms by this fixed modus-ponens sequence, recording every
// step into log. The lemmas document well-known theorems of the system
// but are not themselves added to the live search state — mirroring the
// original engine, whose constructor computes the identical sequence
// purely to seed its derivation dump.
func bootstrapLemmas(log *DerivationLog) []Expression {
	base := standardAxioms()
	for _, a := range base {
		log.recordAxiom(a.String())
	}

	lemmas := make([]Expression, 0, 8)
	step := func(a, b Expression) Expression {
		c := ModusPonens(a, b)
		log.recordStep(c.String(), "mp", a.String(), b.String())
		lemmas = append(lemmas, c)
		return c
	}

	a0, a1, a2 := base[0], base[1], base[2]
	l3 := step(a0, a0)
	l4 := step(a1, a0)
	l5 := step(l3, a1)
	l6 := step(l4, a1)
	l7 := step(a2, l5)
	l8 := step(l6, l6)
	l9 := step(l7, l8)
	step(l3, l9)

	return lemmas
}

// mustParse parses a fixed schema string known at compile time to be
// valid surface syntax; it panics on failure, which would indicate a
// typo in this file rather than anything a caller could recover from.
func mustParse(input string) Expression {
	expr, err := Parse(input)
	if err != nil {
		panic("proplogic: invalid built-in axiom schema " + input + ": " + err.Error())
	}
	return expr
}
