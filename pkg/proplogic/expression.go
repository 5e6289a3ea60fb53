package proplogic

import (
	"strings"
)

// node pairs a Term with its structural Relation inside an Expression's
// flat buffer.
type node struct {
	term Term
	rel  Relation
}

// Expression is an immutable-in-shape expression tree held in a flat
// indexed buffer: node 0 is always the root. Every transformation either
// mutates in place (Negation, Replace, Standardize, MakePermanent,
// Normalize, ChangeVariables — see SPEC_FULL.md §2.3/§4.1) or returns a
// fresh value (everything else). The zero value is the empty expression.
type Expression struct {
	nodes []node
	repr  string
	dirty bool
}

// NewLeaf builds a single-node Expression around term.
func NewLeaf(term Term) Expression {
	return Expression{
		nodes: []node{{term: term, rel: Relation{Self: 0, Left: Invalid, Right: Invalid, Parent: Invalid}}},
		dirty: true,
	}
}

func (e *Expression) inRange(idx int) bool {
	return idx >= 0 && idx < len(e.nodes)
}

// Empty reports whether the expression holds no nodes at all.
func (e Expression) Empty() bool {
	return len(e.nodes) == 0
}

// Size returns the number of nodes in the expression's buffer.
func (e Expression) Size() int {
	return len(e.nodes)
}

// At returns the term stored at idx, or the zero Term (KindNone) if idx
// is out of range.
func (e Expression) At(idx int) Term {
	if idx < 0 || idx >= len(e.nodes) {
		return Term{}
	}
	return e.nodes[idx].term
}

// setAt overwrites the term at idx. Callers must mark the expression
// dirty themselves; setAt is a low-level primitive shared by several
// mutating operations.
func (e *Expression) setAt(idx int, t Term) {
	e.nodes[idx].term = t
}

// Operations counts the Function nodes using connective op.
func (e Expression) Operations(op Op) int {
	count := 0
	for _, n := range e.nodes {
		if n.term.Kind == KindFunction && n.term.Op == op {
			count++
		}
	}
	return count
}

// Variables returns the multiset of variable ids occurring in the
// expression, in buffer order (duplicates included).
func (e Expression) Variables() []int32 {
	vars := make([]int32, 0, len(e.nodes))
	for _, n := range e.nodes {
		if n.term.Kind == KindVariable {
			vars = append(vars, n.term.Value)
		}
	}
	return vars
}

// MaxValue returns the largest variable id occurring in the expression,
// or 0 if it has none.
func (e Expression) MaxValue() int32 {
	var max int32
	for _, n := range e.nodes {
		if n.term.Kind == KindVariable && n.term.Value > max {
			max = n.term.Value
		}
	}
	return max
}

// MinValue returns the smallest variable id occurring in the expression.
// If the expression has no variables, it returns math.MaxInt32 (mirroring
// the original's sentinel); callers should check Variables() first in
// that case, which ChangeVariables does internally.
func (e Expression) MinValue() int32 {
	const maxInt32 = int32(1<<31 - 1)
	min := maxInt32
	for _, n := range e.nodes {
		if n.term.Kind == KindVariable && n.term.Value < min {
			min = n.term.Value
		}
	}
	return min
}

// Subtree returns the Relation stored at idx, or the empty (all-Invalid)
// Relation if idx is out of range.
func (e Expression) Subtree(idx int) Relation {
	if !e.inRange(idx) {
		return Relation{Self: Invalid, Left: Invalid, Right: Invalid, Parent: Invalid}
	}
	return e.nodes[idx].rel
}

// HasLeft reports whether the node at idx has an in-range left child.
func (e Expression) HasLeft(idx int) bool {
	if !e.inRange(idx) {
		return false
	}
	return e.inRange(e.nodes[idx].rel.Left)
}

// HasRight reports whether the node at idx has an in-range right child.
func (e Expression) HasRight(idx int) bool {
	if !e.inRange(idx) {
		return false
	}
	return e.inRange(e.nodes[idx].rel.Right)
}

// Contains reports whether any Variable or Constant leaf in the
// expression carries the same Value as term (term itself must be a
// Variable or Constant; Function terms never match). Polarity (the Op
// field) is intentionally ignored, matching the occurs-check's use of
// this primitive in Unify.
func (e Expression) Contains(term Term) bool {
	if term.Kind != KindVariable && term.Kind != KindConstant {
		return false
	}
	for _, n := range e.nodes {
		if n.term.Kind != KindVariable && n.term.Kind != KindConstant {
			continue
		}
		if n.term.Value == term.Value {
			return true
		}
	}
	return false
}

// SubtreeCopy deep-copies the subtree rooted at idx into a new,
// zero-indexed buffer, detaching the parent link of the new root.
func (e Expression) SubtreeCopy(idx int) Expression {
	root := e.Subtree(idx).Self
	var out []node
	remap := make(map[int]int)

	var traverse func(rel Relation)
	traverse = func(rel Relation) {
		if rel.Self == Invalid {
			return
		}
		remap[rel.Self] = len(out)
		out = append(out, e.nodes[rel.Self])
		traverse(e.Subtree(rel.Left))
		traverse(e.Subtree(rel.Right))
	}
	traverse(e.Subtree(root))

	if len(out) == 0 {
		return Expression{dirty: true}
	}

	out[0].rel.Parent = Invalid
	for i := range out {
		refs := [3]*int{&out[i].rel.Self, &out[i].rel.Left, &out[i].rel.Right}
		for _, r := range refs {
			if nv, ok := remap[*r]; ok {
				*r = nv
			}
		}
		if nv, ok := remap[out[i].rel.Parent]; ok {
			out[i].rel.Parent = nv
		}
	}

	return Expression{nodes: out, dirty: true}
}

// negationAt pushes negation through the subtree rooted at idx using a
// BFS over the De Morgan-like rewrite table fixed by this system's normal
// form (SPEC_FULL.md §4.1 / spec.md §4.1). Leaves flip their Op between
// Nop and Negation; Disjunction becomes Conjunction with both children
// negated; Conjunction and Implication both become their opposite with
// only the right child negated; Xor and Equivalent swap with no
// recursion.
func (e *Expression) negationAt(idx int) {
	if !e.inRange(idx) {
		return
	}

	queue := []int{idx}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur == Invalid {
			continue
		}

		t := e.nodes[cur].term
		if t.Kind != KindFunction {
			if t.Op == OpNegation {
				t.Op = OpNop
			} else {
				t.Op = OpNegation
			}
			e.nodes[cur].term = t
			continue
		}

		originalOp := t.Op
		t.Op = opposite(t.Op)
		e.nodes[cur].term = t

		// Branch on the operator as it was BEFORE opposite() ran:
		// opposite() never produces OpDisjunction, so switching on the
		// post-opposite value would make this case unreachable and
		// leave !(a|b) half-negated (only the right child flipped).
		switch originalOp {
		case OpImplication, OpConjunction:
			queue = append(queue, e.nodes[cur].rel.Right)
		case OpDisjunction:
			queue = append(queue, e.nodes[cur].rel.Left, e.nodes[cur].rel.Right)
		}
	}

	e.dirty = true
}

// Negation toggles the truth polarity of the whole expression in place.
func (e *Expression) Negation() {
	e.negationAt(0)
}

// Standardize rewrites every Disjunction node into an Implication with
// its left child negated (a∨b ≡ ¬a→b), BFS over the whole tree. Combined
// with Negation's rewrite table, every formula reduces to the
// {Implication, Conjunction, Xor, Equivalent, Negation} fragment that the
// rest of this system assumes.
func (e *Expression) Standardize() {
	queue := []int{0}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur == Invalid || !e.inRange(cur) {
			continue
		}

		if e.nodes[cur].term.Kind != KindFunction {
			continue
		}

		if e.nodes[cur].term.Op == OpDisjunction {
			e.nodes[cur].term.Op = OpImplication
			e.negationAt(e.nodes[cur].rel.Left)
		}

		if e.HasLeft(cur) {
			queue = append(queue, e.nodes[cur].rel.Left)
		}
		if e.HasRight(cur) {
			queue = append(queue, e.nodes[cur].rel.Right)
		}
	}

	e.dirty = true
}

// MakePermanent promotes every Variable term to Constant, freezing it
// against unification. Used once on the user-supplied goal.
func (e *Expression) MakePermanent() {
	for i := range e.nodes {
		if e.nodes[i].term.Kind == KindVariable {
			e.nodes[i].term.Kind = KindConstant
		}
	}
	e.dirty = true
}

// Normalize renumbers every variable to the dense sequence 1, 2, … in
// first-occurrence in-order traversal order. Idempotent; required before
// structural equality checks (IsEqual) and before logging a conclusion.
func (e *Expression) Normalize() {
	var order []int32
	var traverse func(rel Relation)
	traverse = func(rel Relation) {
		if rel.Self == Invalid {
			return
		}
		traverse(e.Subtree(rel.Left))
		if e.nodes[rel.Self].term.Kind == KindVariable {
			order = append(order, e.nodes[rel.Self].term.Value)
		}
		traverse(e.Subtree(rel.Right))
	}
	traverse(e.Subtree(0))

	remap := make(map[int32]int32, len(order))
	next := int32(1)
	for _, v := range order {
		if _, ok := remap[v]; ok {
			continue
		}
		remap[v] = next
		next++
	}

	for i := range e.nodes {
		if e.nodes[i].term.Kind != KindVariable {
			continue
		}
		e.nodes[i].term.Value = remap[e.nodes[i].term.Value]
	}

	e.dirty = true
}

// ChangeVariables adds (bound − minimum occurring variable id) to every
// variable id, guaranteeing the result's variable ids are all ≥ bound.
// A no-op when the expression has no variables.
func (e *Expression) ChangeVariables(bound int32) {
	vars := e.Variables()
	if len(vars) == 0 {
		return
	}
	delta := bound - e.MinValue()
	for i := range e.nodes {
		if e.nodes[i].term.Kind == KindVariable {
			e.nodes[i].term.Value += delta
		}
	}
	e.dirty = true
}

// Replace substitutes every Variable node with id value by a copy of
// expr (or ¬expr if that particular occurrence was itself negated),
// splicing the copy's nodes into the receiver's buffer and repairing
// parent/child links. Returns the receiver for chaining. A no-op if expr
// is empty or value does not occur.
func (e *Expression) Replace(value int32, expr Expression) *Expression {
	if expr.Empty() {
		return e
	}

	positive := expr
	negative := expr.Clone()
	negative.Negation()

	var indices []int
	for _, n := range e.nodes {
		if n.term.Kind == KindVariable && n.term.Value == value {
			indices = append(indices, n.rel.Self)
		}
	}
	if len(indices) == 0 {
		return e
	}

	offset := len(e.nodes)
	for _, entry := range indices {
		replacement := positive
		if e.nodes[entry].term.Op == OpNegation {
			replacement = negative
		}

		e.nodes[entry] = node{
			term: replacement.nodes[0].term,
			rel: Relation{
				Self:   e.nodes[entry].rel.Self,
				Left:   increaseIndex(replacement.Subtree(0).Left, offset-1),
				Right:  increaseIndex(replacement.Subtree(0).Right, offset-1),
				Parent: e.nodes[entry].rel.Parent,
			},
		}

		for i := 1; i < len(replacement.nodes); i++ {
			n := replacement.nodes[i]
			n.rel = Relation{
				Self:   increaseIndex(n.rel.Self, offset-1),
				Left:   increaseIndex(n.rel.Left, offset-1),
				Right:  increaseIndex(n.rel.Right, offset-1),
				Parent: increaseIndex(n.rel.Parent, offset-1),
			}
			e.nodes = append(e.nodes, n)
		}

		if left := e.Subtree(entry).Left; e.inRange(left) {
			e.nodes[left].rel.Parent = entry
		}
		if right := e.Subtree(entry).Right; e.inRange(right) {
			e.nodes[right].rel.Parent = entry
		}

		offset = len(e.nodes)
	}

	e.dirty = true
	return e
}

// Construct builds a new Expression whose root is a Function term with
// connective op, splicing in copies of lhs then rhs and rewiring their
// former roots' parents to point at the new root (index 0). op must be
// binary; use Negation for unary negation.
func Construct(lhs Expression, op Op, rhs Expression) Expression {
	out := Expression{dirty: true}
	out.nodes = append(out.nodes, node{
		term: Term{Kind: KindFunction, Op: op},
		rel:  Relation{Self: 0, Left: 1, Right: 1 + lhs.Size(), Parent: Invalid},
	})

	offset := 1
	for _, n := range lhs.nodes {
		n.rel = Relation{
			Self:   increaseIndex(n.rel.Self, offset),
			Left:   increaseIndex(n.rel.Left, offset),
			Right:  increaseIndex(n.rel.Right, offset),
			Parent: increaseIndex(n.rel.Parent, offset),
		}
		if n.rel.Parent == Invalid {
			n.rel.Parent = 0
		}
		out.nodes = append(out.nodes, n)
	}

	offset += lhs.Size()
	for _, n := range rhs.nodes {
		n.rel = Relation{
			Self:   increaseIndex(n.rel.Self, offset),
			Left:   increaseIndex(n.rel.Left, offset),
			Right:  increaseIndex(n.rel.Right, offset),
			Parent: increaseIndex(n.rel.Parent, offset),
		}
		if n.rel.Parent == Invalid {
			n.rel.Parent = 0
		}
		out.nodes = append(out.nodes, n)
	}

	return out
}

// Equals performs a position-by-position structural comparison. When
// varIgnore is true (the default use from IsEqual), two Variable leaves
// match each other or a Constant leaf regardless of numeric id, provided
// they agree on negation; two Constant leaves must still match exactly.
// When varIgnore is false, Kind and Value must match exactly everywhere.
func (e Expression) Equals(other Expression, varIgnore bool) bool {
	if e.Size() != other.Size() {
		return false
	}

	for i := range e.nodes {
		a, b := e.nodes[i].term, other.nodes[i].term

		aFunc := a.Kind == KindFunction
		bFunc := b.Kind == KindFunction
		if aFunc != bFunc {
			return false
		}
		if aFunc {
			if a.Op != b.Op {
				return false
			}
			continue
		}

		// Leaves must always agree on polarity.
		if a.Op != b.Op {
			return false
		}

		if !varIgnore {
			if a.Kind != b.Kind || a.Value != b.Value {
				return false
			}
			continue
		}

		if a.Kind == KindConstant && b.Kind == KindConstant && a.Value != b.Value {
			return false
		}
	}

	return true
}

// String renders the expression in infix notation, parenthesizing every
// function-rooted subtree whose parent is itself a function node. The
// rendering is cached until the next mutation.
func (e *Expression) String() string {
	if e.Empty() {
		return "empty"
	}
	if e.dirty {
		e.recalculate()
	}
	return e.repr
}

func (e *Expression) recalculate() {
	if e.Empty() {
		e.repr = "empty"
		e.dirty = false
		return
	}

	var b strings.Builder
	var render func(rel Relation)
	render = func(rel Relation) {
		if rel.Self == Invalid {
			return
		}

		brackets := rel.Parent != Invalid && e.nodes[rel.Self].term.Kind == KindFunction
		if brackets {
			b.WriteByte('(')
		}

		render(e.Subtree(rel.Left))
		b.WriteString(e.nodes[rel.Self].term.String())
		render(e.Subtree(rel.Right))

		if brackets {
			b.WriteByte(')')
		}
	}

	render(e.Subtree(0))
	e.repr = b.String()
	e.dirty = false
}

// Clone returns an independent copy of the expression (equivalent to
// SubtreeCopy(0) but preserves emptiness without surprising zero-sizing).
func (e Expression) Clone() Expression {
	if e.Empty() {
		return Expression{}
	}
	return e.SubtreeCopy(0)
}
