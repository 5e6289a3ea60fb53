package proplogic

// Substitution maps a variable id to the Expression it is bound to. It
// is acyclic after Unify's topological closure pass (spec.md §3/§9) and
// lives only for the duration of one Unify call and the inference step
// that consumes it.
type Substitution map[int32]Expression

// clone returns an independent copy of s; each bound Expression is
// deep-copied so mutating one entry (e.g. while chasing chains) never
// aliases another.
func (s Substitution) clone() Substitution {
	out := make(Substitution, len(s))
	for k, v := range s {
		out[k] = v.Clone()
	}
	return out
}

// addConstraint binds term's variable id to substitution in sub, unless
// substitution is a Function subtree that already contains term — the
// first layer of the occurs-check (spec.md §4.3 "Binding").
func addConstraint(term Term, substitution Expression, sub Substitution) bool {
	if substitution.At(0).Kind == KindFunction && substitution.Contains(term) {
		return false
	}
	sub[term.Value] = substitution.Clone()
	return true
}

// derefVar repeatedly follows e's variable binding through sub,
// accumulating polarity flips, until e is no longer a bound variable.
// Each step clones the bound Expression so the caller can freely mutate
// the result without aliasing the substitution map.
func derefVar(e Expression, sub Substitution) Expression {
	for e.At(0).Kind == KindVariable {
		bound, ok := sub[e.At(0).Value]
		if !ok {
			break
		}
		negate := e.At(0).Op == OpNegation
		e = bound.Clone()
		if negate {
			e.Negation()
		}
	}
	return e
}

// topologicalSort returns a permutation of 0..n-1 such that every edge
// u->v in adj (u must be processed before v) is respected; it never
// reports cycles itself (the substitution graph built from a sound
// binding set built via addConstraint is acyclic by construction here;
// true cyclic bindings are caught later, during closure, by an explicit
// occurs check on the fully-chased expansion — spec.md §9).
func topologicalSort(adj [][]int32, n int32) []int32 {
	visited := make([]bool, n)
	var stack []int32

	var visit func(v int32)
	visit = func(v int32) {
		visited[v] = true
		for _, w := range adj[v] {
			if !visited[w] {
				visit(w)
			}
		}
		stack = append(stack, v)
	}

	for v := int32(0); v < n; v++ {
		if !visited[v] {
			visit(v)
		}
	}

	order := make([]int32, len(stack))
	for i, v := range stack {
		order[len(stack)-1-i] = v
	}
	return order
}
