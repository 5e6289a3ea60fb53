package proplogic

// pending is one positional pair queued during Unify's BFS walk.
type pending struct {
	left, right int
}

// Unify produces a most-general Substitution unifying left and right
// treating Variable terms as unification variables and Constant/Function
// terms as rigid (spec.md §4.3). right is unified against left: right's
// variables are first renamed to ids strictly above left's, so the two
// inputs never collide.
func Unify(left, right Expression) (Substitution, error) {
	rightCopy := right.Clone()
	rightCopy.ChangeVariables(left.MaxValue() + 1)
	v := rightCopy.MaxValue() + 1

	sub := make(Substitution)
	queue := []pending{{left: left.Subtree(0).Self, right: rightCopy.Subtree(0).Self}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		lt := left.At(cur.left)
		rt := rightCopy.At(cur.right)

		if lt.Kind == KindFunction && rt.Kind == KindFunction {
			if lt.Op != rt.Op {
				return nil, ErrOperatorMismatch
			}
			queue = append(queue,
				pending{left.Subtree(cur.left).Left, rightCopy.Subtree(cur.right).Left},
				pending{left.Subtree(cur.left).Right, rightCopy.Subtree(cur.right).Right},
			)
			continue
		}

		lhs := left.SubtreeCopy(cur.left)
		rhs := rightCopy.SubtreeCopy(cur.right)

		lhs = derefVar(lhs, sub)
		rhs = derefVar(rhs, sub)

		lv, rv := lhs.At(0), rhs.At(0)

		switch {
		case lv.Kind == KindConstant && rv.Kind == KindConstant:
			if !lv.Equal(rv) {
				return nil, ErrConstantMismatch
			}

		case lv.Kind == KindConstant && rv.Kind == KindVariable:
			if rv.Op == OpNegation {
				lv.Op = flipOp(lv.Op)
			}
			if !addConstraint(rv, NewLeaf(lv), sub) {
				return nil, ErrOccursCheck
			}

		case lv.Kind == KindVariable && rv.Kind == KindConstant:
			if lv.Op == OpNegation {
				rv.Op = flipOp(rv.Op)
			}
			if !addConstraint(lv, NewLeaf(rv), sub) {
				return nil, ErrOccursCheck
			}

		case lv.Kind == KindVariable && rv.Kind == KindVariable:
			if lv.Value == rv.Value {
				if lv.Op != rv.Op {
					return nil, ErrPolarityMismatch
				}
				continue
			}

			freshOp := OpNop
			if lv.Op == OpNegation || rv.Op == OpNegation {
				freshOp = OpNegation
			}
			fresh := NewLeaf(Term{Kind: KindVariable, Op: freshOp, Value: v})
			v++
			freshNeg := fresh.Clone()
			freshNeg.Negation()

			if lv.Op == OpNegation {
				addConstraint(lv, freshNeg, sub)
			} else {
				addConstraint(lv, fresh, sub)
			}
			if rv.Op == OpNegation {
				addConstraint(rv, freshNeg, sub)
			} else {
				addConstraint(rv, fresh, sub)
			}

		case lv.Kind == KindFunction:
			if rv.Kind != KindVariable {
				return nil, ErrShapeMismatch
			}
			if rv.Op == OpNegation {
				lhs.Negation()
			}
			if !addConstraint(rv, lhs, sub) {
				return nil, ErrOccursCheck
			}

		case rv.Kind == KindFunction:
			if lv.Kind != KindVariable {
				return nil, ErrShapeMismatch
			}
			if lv.Op == OpNegation {
				rhs.Negation()
			}
			if !addConstraint(lv, rhs, sub) {
				return nil, ErrOccursCheck
			}

		default:
			return nil, ErrShapeMismatch
		}
	}

	return closeSubstitution(sub, v)
}

// flipOp toggles a leaf's polarity (Nop <-> Negation).
func flipOp(op Op) Op {
	if op == OpNegation {
		return OpNop
	}
	return OpNegation
}

// closeSubstitution runs the post-pass described in spec.md §4.3/§9: a
// directed graph where a binding x↦E contributes edges from every
// variable occurring in E to x, a topological sort over that graph, and
// — for every variable in topological order whose binding is a Function
// — substitution of each occurring variable by its recursively chased
// binding, failing if chasing ever reveals a cycle.
func closeSubstitution(sub Substitution, v int32) (Substitution, error) {
	n := v - 1
	if n < 0 {
		n = 0
	}
	adj := make([][]int32, n)
	for variable, expr := range sub {
		for _, w := range expr.Variables() {
			if w-1 >= 0 && w-1 < n {
				adj[w-1] = append(adj[w-1], variable-1)
			}
		}
	}

	order := topologicalSort(adj, n)

	for _, idx := range order {
		variable := idx + 1
		expr, ok := sub[variable]
		if !ok {
			continue
		}
		if expr.At(0).Kind != KindFunction {
			continue
		}

		for _, occ := range expr.Variables() {
			bound, ok := sub[occ]
			if !ok {
				continue
			}

			replacement := derefVar(bound.Clone(), sub)

			if replacement.Contains(Term{Kind: KindVariable, Op: OpNop, Value: occ}) {
				return nil, ErrOccursCheck
			}

			expr.Replace(occ, replacement)
		}

		sub[variable] = expr
	}

	return sub, nil
}
