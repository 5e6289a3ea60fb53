package proplogic

// ModusPonens attempts to derive a conclusion from lhs and rhs using
// generalized modus ponens: rhs must be a Function headed by
// Implication, and lhs must unify with rhs's antecedent. On success the
// consequent, under the unifying substitution, is returned in
// normalized form. On any failure (empty input, rhs not an Implication,
// or unification failure) the zero Expression is returned (spec.md
// §4.4).
//
// rhs is renamed to a disjoint variable range before being used, so
// repeated calls against the same stored axioms never leak bindings
// between uses.
func ModusPonens(lhs, rhs Expression) Expression {
	if lhs.Empty() || rhs.Empty() {
		return Expression{}
	}
	if rhs.At(0).Op != OpImplication {
		return Expression{}
	}

	antecedent := rhs.SubtreeCopy(rhs.Subtree(0).Left)
	sub, err := Unify(lhs, antecedent)
	if err != nil {
		return Expression{}
	}

	result := rhs.Clone()
	result.ChangeVariables(lhs.MaxValue() + 1)

	for _, v := range result.Variables() {
		change, ok := sub[v]
		if !ok {
			continue
		}
		change = derefVar(change, sub)
		result.Replace(v, change)
	}

	result = result.SubtreeCopy(result.Subtree(0).Right)
	result.Normalize()
	return result
}

// IsEqual reports whether left and right denote the same formula up to
// variable renaming: a cheap size/root-operator check followed by
// normalizing independent copies of both sides and comparing them with
// Equals(true) (spec.md §4.4 "is_equal").
func IsEqual(left, right Expression) bool {
	if left.Size() != right.Size() {
		return false
	}
	if left.At(0).Op != right.At(0).Op {
		return false
	}

	l := left.Clone()
	r := right.Clone()
	l.Normalize()
	r.Normalize()
	return l.Equals(r, true)
}
