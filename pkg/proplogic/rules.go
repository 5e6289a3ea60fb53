package proplogic

// Rule is a named inference step usable via WithExtraRules or called
// directly. Apply receives exactly Arity premises, in order, and
// returns the derived conclusion, or the zero Expression if the
// premises do not match the rule's shape (SPEC_FULL.md §5).
//
// These rules are classical derived inference forms taken as given,
// not re-derived from standardAxioms within this package; that is why
// they live outside the trusted modus-ponens-only saturation core and
// must be opted into explicitly.
type Rule struct {
	Name  string
	Arity int
	Apply func(premises ...Expression) Expression
}

// chain threads premises through a fixed macro-implication schema via
// repeated ModusPonens: schema must parse to premises[0] > (premises[1]
// > ... > conclusion). Returns the zero Expression if any step fails to
// unify.
func chain(schema string, premises ...Expression) Expression {
	result := mustParse(schema)
	for _, p := range premises {
		result = ModusPonens(p, result)
		if result.Empty() {
			return Expression{}
		}
	}
	return result
}

// ModusTollens derives ¬a from a>b and ¬b.
func ModusTollens(aImpB, negB Expression) Expression {
	return chain("(a>b)>(!b>!a)", aImpB, negB)
}

// DisjunctiveSyllogism derives b from ¬a and a|b.
func DisjunctiveSyllogism(negA, aOrB Expression) Expression {
	return chain("!a>((a|b)>b)", negA, aOrB)
}

// HypotheticalSyllogism derives a>c from a>b and b>c.
func HypotheticalSyllogism(aImpB, bImpC Expression) Expression {
	return chain("(a>b)>((b>c)>(a>c))", aImpB, bImpC)
}

// SimpleConstructiveDilemma derives c from a>c, b>c, and a|b.
func SimpleConstructiveDilemma(aImpC, bImpC, aOrB Expression) Expression {
	return chain("(a>c)>((b>c)>((a|b)>c))", aImpC, bImpC, aOrB)
}

// SimpleDestructiveDilemma derives ¬a from a>c, a>b, and ¬b|¬c.
func SimpleDestructiveDilemma(aImpC, aImpB, negBOrNegC Expression) Expression {
	return chain("(a>c)>((a>b)>((!b|!c)>!a))", aImpC, aImpB, negBOrNegC)
}

// DefaultExtraRules returns the two-premise supplemented rules wired
// for use with WithExtraRules: ModusTollens, DisjunctiveSyllogism and
// HypotheticalSyllogism. The three-premise dilemmas are not candidates
// for WithExtraRules (the saturation loop only ever combines pairs) and
// are meant to be called directly.
func DefaultExtraRules() []Rule {
	return []Rule{
		{Name: "mt", Arity: 2, Apply: func(p ...Expression) Expression { return ModusTollens(p[0], p[1]) }},
		{Name: "ds", Arity: 2, Apply: func(p ...Expression) Expression { return DisjunctiveSyllogism(p[0], p[1]) }},
		{Name: "hs", Arity: 2, Apply: func(p ...Expression) Expression { return HypotheticalSyllogism(p[0], p[1]) }},
	}
}
