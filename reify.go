// Package unification: the reification engine.
// Engine.Reify resolves a term fully against a substitution on an
// explicit frame stack: composites are decomposed, their subterms
// reified left-to-right, and a new composite of the same shape is built
// only when something inside actually changed — untouched subtrees are
// returned by identity.
package unification

import "fmt"

// reifyFrame tracks one composite mid-rebuild.
type reifyFrame struct {
	src     Term   // walked composite
	v       *Var   // bound variable whose expansion produced src, if any
	kids    []Term // direct subterms, in deterministic order
	build   builder
	out     []Term
	changed bool
}

// Reify replaces every bound variable inside t with its value under s,
// recursively, producing the most concrete equivalent term.
//
// Behavior:
//   - an unbound variable reifies to itself (still open);
//   - atomic terms are returned as-is;
//   - composites are rebuilt shape-for-shape (same slice/map/struct
//     type, same key set), but a composite whose subterms all reified
//     unchanged is returned by identity with no allocation — a fully
//     ground term comes back exactly as it went in;
//   - each bound variable is resolved once and the result reused, so
//     shared subterms do not multiply work;
//   - a true binding cycle (constructible only with the occurs check
//     disabled) yields ErrCyclicTerm instead of nontermination.
//
// Custom shapes dispatch through their registered ReifyStrategy; built-in
// categories run directly on the frame stack, keeping call-stack depth
// constant regardless of input nesting.
func (e *Engine) Reify(t Term, s *Subst) (Term, error) {
	var (
		stack  []*reifyFrame
		onPath map[*Var]bool
		memo   map[*Var]Term
	)

	cur := t
	for {
		ret, pushed, err := e.reifyStep(cur, s, &stack, &onPath, memo)
		if err != nil {
			return nil, err
		}
		if pushed {
			cur = stack[len(stack)-1].kids[0]
			continue
		}
		if v, ok := cur.(*Var); ok && v != nil && !IsVar(ret) {
			if memo == nil {
				memo = make(map[*Var]Term)
			}
			memo[v] = ret
		}

		// Deliver ret upward until some frame still wants a subterm.
		delivered := false
		for !delivered {
			if len(stack) == 0 {
				return ret, nil
			}
			f := stack[len(stack)-1]
			if !f.changed && !sameTerm(ret, f.kids[len(f.out)]) {
				f.changed = true
			}
			f.out = append(f.out, ret)
			if len(f.out) < len(f.kids) {
				cur = f.kids[len(f.out)]
				delivered = true
				continue
			}

			// Frame complete: rebuild or short-circuit.
			stack = stack[:len(stack)-1]
			if f.v != nil {
				delete(onPath, f.v)
			}
			if f.changed {
				built, err := f.build(f.out)
				if err != nil {
					return nil, err
				}
				ret = built
			} else {
				ret = f.src
			}
			if f.v != nil {
				if memo == nil {
					memo = make(map[*Var]Term)
				}
				memo[f.v] = ret
			}
		}
	}
}

// reifyStep evaluates one term: it either produces a finished result
// (pushed=false) or pushes a frame for a built-in composite whose
// subterms still need reification (pushed=true).
func (e *Engine) reifyStep(cur Term, s *Subst, stack *[]*reifyFrame, onPath *map[*Var]bool, memo map[*Var]Term) (ret Term, pushed bool, err error) {
	var ev *Var
	if v, ok := cur.(*Var); ok && v != nil {
		if m, hit := memo[v]; hit {
			return m, false, nil
		}
		ev = v
	}

	w, err := s.Walk(cur)
	if err != nil {
		return nil, false, err
	}
	if v, ok := w.(*Var); ok {
		return v, false, nil // still open
	}

	if ev != nil && (*onPath)[ev] {
		return nil, false, fmt.Errorf("%s expands through itself: %w", ev, ErrCyclicTerm)
	}

	fn, structural := e.registry.resolveReify(w)
	switch {
	case fn != nil:
		// TODO: thread the active cycle/memo context into custom
		// strategies so their recursive Reify calls share detection with
		// the built-in frames.
		out, err := fn(w, s, e)
		if err != nil {
			return nil, false, err
		}
		return out, false, nil
	case structural:
		kids, build, ok := decomposeBuiltin(w)
		if !ok || len(kids) == 0 {
			return w, false, nil
		}
		if ev != nil {
			if *onPath == nil {
				*onPath = make(map[*Var]bool)
			}
			(*onPath)[ev] = true
		}
		*stack = append(*stack, &reifyFrame{
			src:   w,
			v:     ev,
			kids:  kids,
			build: build,
			out:   make([]Term, 0, len(kids)),
		})
		return nil, true, nil
	default:
		return w, false, nil // atomic
	}
}
