// Package unification: persistent substitutions.
// This file declares Subst, the immutable variable-to-term mapping
// accumulated by successful unifications. A Subst is a parent-pointing
// chain: extension allocates one node and shares the entire prefix, so
// divergent search branches extend a common ancestor without copying or
// coordination. nil is the valid empty substitution.
package unification

// Subst is a persistent mapping from *Var to Term.
//
// Invariants:
//   - extension never overwrites: a variable is bound at most once per
//     lineage (Engine.Extend enforces this with ErrRebind);
//   - with the occurs check enabled, chains of bindings are acyclic by
//     construction and Walk always terminates;
//   - a nil *Subst is the empty substitution and every method is
//     nil-safe.
//
// Complexity: Extend O(1), Lookup/Walk O(d) where d is chain depth.
type Subst struct {
	v      *Var
	term   Term
	parent *Subst
	size   int
}

// Empty returns the substitution with no bindings. It is the unit of
// composition; nil works everywhere a *Subst is accepted.
func Empty() *Subst { return nil }

// Len returns the number of bindings in this lineage.
func (s *Subst) Len() int {
	if s == nil {
		return 0
	}
	return s.size
}

// Lookup returns the term bound to v, if any. Shallow: the result may
// itself be a variable; use Walk to follow chains.
func (s *Subst) Lookup(v *Var) (Term, bool) {
	for n := s; n != nil; n = n.parent {
		if n.v == v {
			return n.term, true
		}
	}
	return nil, false
}

// Bound reports whether v is bound in this substitution.
func (s *Subst) Bound(v *Var) bool {
	_, ok := s.Lookup(v)
	return ok
}

// Walk shallowly resolves t: while t is a bound variable, follow its
// binding; stop at the first unbound variable or non-variable term. Walk
// does not recurse into composite structure.
//
// Walk always terminates: the number of followed bindings is bounded by
// Len(). Exceeding that bound proves a binding cycle (only constructible
// with the occurs check disabled) and yields ErrCyclicSubstitution
// instead of looping.
func (s *Subst) Walk(t Term) (Term, error) {
	steps := 0
	for {
		v, ok := t.(*Var)
		if !ok || v == nil {
			return t, nil
		}
		next, bound := s.Lookup(v)
		if !bound {
			return v, nil
		}
		steps++
		if steps > s.Len() {
			return nil, ErrCyclicSubstitution
		}
		t = next
	}
}

// Bindings returns a snapshot of all bindings as a map. Intended for
// inspection and tests; the chain itself remains the source of truth.
func (s *Subst) Bindings() map[*Var]Term {
	out := make(map[*Var]Term, s.Len())
	for n := s; n != nil; n = n.parent {
		out[n.v] = n.term
	}
	return out
}

// extend appends one binding without any checking. Engine.Extend is the
// public, checked entry point (rebind guard + occurs check).
func (s *Subst) extend(v *Var, t Term) *Subst {
	return &Subst{v: v, term: t, parent: s, size: s.Len() + 1}
}
