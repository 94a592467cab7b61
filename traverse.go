// Package unification: shared structural traversal.
// One iterative walker serves the occurs check, IsGround and
// UngroundVars: it visits every distinct subterm of a term under a
// substitution, expanding bound variables exactly once and detecting
// binding cycles instead of looping on them.
package unification

import "fmt"

// traverseOp is one pending step of the walker: either a term to visit,
// or a marker recording that the expansion of a bound variable is
// complete (pop != nil).
type traverseOp struct {
	term Term
	pop  *Var
}

// traverse visits the subterms of t under s, calling onVar for every
// unbound variable encountered. onVar returning true stops the walk
// early (reported via stopped). Bound variables are expanded through
// their walked value; each variable expands at most once, so shared
// subterms cost linear work and true binding cycles surface as
// ErrCyclicTerm.
func traverse(t Term, s *Subst, onVar func(*Var) bool) (stopped bool, err error) {
	stack := []traverseOp{{term: t}}
	var (
		onPath map[*Var]bool // variables whose expansion is in progress
		done   map[*Var]bool // variables already fully expanded
	)

	for len(stack) > 0 {
		op := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if op.pop != nil {
			delete(onPath, op.pop)
			done[op.pop] = true
			continue
		}

		w, err := s.Walk(op.term)
		if err != nil {
			return false, err
		}
		if v, ok := w.(*Var); ok {
			// Walk stops only at unbound variables or non-variables.
			if onVar(v) {
				return true, nil
			}
			continue
		}

		// When the original term was a bound variable, its expansion is
		// tracked: revisiting it while still expanding proves a cycle.
		if v0, ok := op.term.(*Var); ok {
			if onPath[v0] {
				return false, fmt.Errorf("%s expands through itself: %w", v0, ErrCyclicTerm)
			}
			if done[v0] {
				continue
			}
			if onPath == nil {
				onPath = make(map[*Var]bool)
				done = make(map[*Var]bool)
			}
			onPath[v0] = true
			stack = append(stack, traverseOp{pop: v0})
		}

		kids := subtermsOf(w)
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, traverseOp{term: kids[i]})
		}
	}
	return false, nil
}

// occurs reports whether v appears, after walking, anywhere inside t's
// structure under s.
func occurs(v *Var, t Term, s *Subst) (bool, error) {
	return traverse(t, s, func(w *Var) bool { return w == v })
}

// IsGround reports whether t contains no unbound variables under s.
// A true binding cycle in s (occurs check disabled at construction)
// yields ErrCyclicTerm or ErrCyclicSubstitution.
func (e *Engine) IsGround(t Term, s *Subst) (bool, error) {
	stopped, err := traverse(t, s, func(*Var) bool { return true })
	if err != nil {
		return false, err
	}
	return !stopped, nil
}

// UngroundVars returns the distinct unbound variables remaining in t
// under s, in first-occurrence order of a deterministic left-to-right
// traversal (sorted key order inside keyed composites).
func (e *Engine) UngroundVars(t Term, s *Subst) ([]*Var, error) {
	var out []*Var
	seen := make(map[*Var]bool)
	_, err := traverse(t, s, func(v *Var) bool {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
		return false
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
