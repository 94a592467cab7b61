// Package unification: the unification engine.
// Engine.Unify runs the classical algorithm on an explicit work stack,
// so call-stack depth stays constant no matter how deeply the inputs
// nest. Composite decomposition goes through the registry; variable
// binding stays here.
package unification

import "fmt"

// Unify finds the minimal extension of s under which a and b are
// structurally equal.
//
// Algorithm, per popped pair:
//  1. Shallowly resolve both sides through s (Walk).
//  2. Identical terms (same variable, same composite identity, equal
//     atoms) succeed without extending s.
//  3. Exactly one side an unbound variable: bind it to the other side.
//  4. Two distinct unbound variables: the younger binds to the older, a
//     fixed policy that makes repeated unifications of the same pair
//     reproduce the same direction.
//  5. Otherwise dispatch on the pair's runtime shapes: the resolved
//     strategy either fails or schedules element pairs, which are
//     processed strictly left-to-right, threading s through each step
//     and short-circuiting on the first failure.
//
// On failure the returned error matches ErrUnify (occurs violations
// additionally match ErrOccurs); s is returned unchanged in meaning —
// the input substitution is never mutated either way.
//
// Complexity: O(n) shape work for n total subterms, plus O(d) per
// variable lookup where d is the binding-chain depth.
func (e *Engine) Unify(a, b Term, s *Subst) (*Subst, error) {
	stack := []termPair{{a: a, b: b}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		wa, err := s.Walk(p.a)
		if err != nil {
			return nil, err
		}
		wb, err := s.Walk(p.b)
		if err != nil {
			return nil, err
		}

		if sameTerm(wa, wb) {
			continue
		}

		va, aVar := wa.(*Var)
		vb, bVar := wb.(*Var)
		switch {
		case aVar && bVar:
			// Both unbound and distinct; orient younger → older.
			if va.seq < vb.seq {
				s, err = e.Extend(s, vb, va)
			} else {
				s, err = e.Extend(s, va, vb)
			}
		case aVar:
			s, err = e.Extend(s, va, wb)
		case bVar:
			s, err = e.Extend(s, vb, wa)
		default:
			fn := e.registry.resolveUnify(wa, wb)
			if fn == nil {
				if atomEqual(wa, wb) {
					continue
				}
				return nil, fmt.Errorf("atoms %#v and %#v differ: %w", wa, wb, ErrUnify)
			}
			var q Worklist
			if err = fn(wa, wb, s, &q); err != nil {
				return nil, err
			}
			// Reverse push: the pair scheduled first is unified first.
			for i := len(q.pairs) - 1; i >= 0; i-- {
				stack = append(stack, q.pairs[i])
			}
			continue
		}
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Extend returns a new substitution deriving from s with v bound to t.
// s itself is unchanged and remains valid, which is what lets divergent
// branches extend a shared prefix.
//
// Errors:
//   - ErrNilVar  — v is nil.
//   - ErrRebind  — v is already bound in s (a logic error, deliberately
//     distinct from unification failure).
//   - ErrOccurs  — the occurs check is enabled and v appears, after
//     walking, anywhere inside t's structure.
//   - ErrCyclicSubstitution — s already contains a binding cycle
//     (possible only if it was built with the occurs check disabled).
func (e *Engine) Extend(s *Subst, v *Var, t Term) (*Subst, error) {
	if v == nil {
		return nil, ErrNilVar
	}
	if s.Bound(v) {
		return nil, fmt.Errorf("%s: %w", v, ErrRebind)
	}
	if e.occursCheck {
		hit, err := occurs(v, t, s)
		if err != nil {
			return nil, err
		}
		if hit {
			return nil, fmt.Errorf("%s appears inside its own binding: %w", v, ErrOccurs)
		}
	}
	return s.extend(v, t), nil
}
