// Package unification: core type vocabulary.
// This file declares the Term alias, the structural categories used by
// dispatch, the strategy function types, and the shared shape helpers
// (category classification, identity and atomic-equality predicates).
package unification

import (
	"fmt"
	"reflect"
)

// Term is any value participating in unification: an atomic value, a
// *Var, or a composite (slice/array, map, struct, or a registered custom
// shape). The alias keeps native Go values first-class — no wrapping is
// required to unify ordinary slices, maps and structs.
type Term = any

// Category is the structural category of a term's shape, used by the
// registry when no exact-type strategy matches.
type Category int

const (
	// CategoryAtomic — no registered decomposition; compared by value
	// equality. Strings, numbers, pointers and channels all land here.
	CategoryAtomic Category = iota

	// CategoryOrdered — order-significant sequence: slices and arrays.
	CategoryOrdered

	// CategoryKeyed — maps: key sets significant, iteration order not.
	CategoryKeyed

	// CategoryRecord — structs with at least one exported field; fields
	// unify pairwise in declared order.
	CategoryRecord
)

// String returns the category name for diagnostics.
func (c Category) String() string {
	switch c {
	case CategoryAtomic:
		return "atomic"
	case CategoryOrdered:
		return "ordered"
	case CategoryKeyed:
		return "keyed"
	case CategoryRecord:
		return "record"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// UnifyStrategy decomposes two equally shaped composite terms into
// element pairs, or reports failure. Implementations must not recurse:
// they schedule sub-unifications on q via q.Push(a, b), and the engine
// processes scheduled pairs strictly left-to-right on its own work
// stack. The substitution is read-only context (Lookup/Walk); binding is
// the engine's job. Returned failures should wrap ErrUnify so search
// layers can prune via errors.Is.
type UnifyStrategy func(a, b Term, s *Subst, q *Worklist) error

// ReifyStrategy resolves a composite term fully against a substitution,
// rebuilding a term of the same shape. Implementations reify subterms
// through e.Reify. When nothing inside the term changed, return the
// input itself so the engine's identity short-circuit is preserved.
type ReifyStrategy func(t Term, s *Subst, e *Engine) (Term, error)

// Walkable lets a custom composite expose its direct subterms to the
// structural traversals (occurs check, ground checks, unbound-variable
// collection). Built-in composites are traversed without it; a custom
// shape registered via Register should implement Walkable so that the
// occurs check can see through it.
type Walkable interface {
	// Subterms returns the direct subterms in deterministic order.
	Subterms() []Term
}

// Worklist collects sub-unification pairs scheduled by a UnifyStrategy.
// Pairs are processed by the engine in Push order, left-to-right,
// threading the substitution through each step.
type Worklist struct {
	pairs []termPair
}

// termPair is one pending sub-unification.
type termPair struct {
	a, b Term
}

// Push schedules unification of a against b. Pairs pushed first are
// unified first.
func (q *Worklist) Push(a, b Term) {
	q.pairs = append(q.pairs, termPair{a: a, b: b})
}

// Len reports the number of scheduled pairs.
func (q *Worklist) Len() int { return len(q.pairs) }

// categoryOf classifies a term's runtime shape. *Var is handled by the
// engine before classification and never reaches dispatch.
func categoryOf(t Term) Category {
	rt := reflect.TypeOf(t)
	if rt == nil {
		return CategoryAtomic
	}
	switch rt.Kind() {
	case reflect.Slice, reflect.Array:
		return CategoryOrdered
	case reflect.Map:
		return CategoryKeyed
	case reflect.Struct:
		if hasExportedFields(rt) {
			return CategoryRecord
		}
		// Opaque structs (e.g. time.Time) have no visible slots; they
		// compare as atoms.
		return CategoryAtomic
	default:
		return CategoryAtomic
	}
}

// hasExportedFields reports whether the struct type exposes at least one
// exported field.
func hasExportedFields(rt reflect.Type) bool {
	for i := 0; i < rt.NumField(); i++ {
		if rt.Field(i).IsExported() {
			return true
		}
	}
	return false
}

// sameTerm reports whether a and b are identical: the same *Var, equal
// comparable values, or the same slice/map/pointer identity. It is the
// no-growth fast path of the engine and never panics on uncomparable
// dynamic types.
func sameTerm(a, b Term) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta == nil {
		return true // both untyped nil
	}
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	// Comparability must be checked per value, not per type: an array or
	// struct type whose interface slots hold slices is uncomparable at
	// runtime even though the type says otherwise. Such composites skip
	// the fast path and go through structural dispatch instead.
	if av.Comparable() {
		return av.Equal(bv)
	}
	switch av.Kind() {
	case reflect.Slice:
		// Same backing view: same base pointer and same length.
		return av.Len() == bv.Len() && av.UnsafePointer() == bv.UnsafePointer()
	case reflect.Map, reflect.Func:
		return av.UnsafePointer() == bv.UnsafePointer()
	default:
		return false
	}
}

// atomEqual is the value-equality fallback for terms with no resolved
// strategy. Values comparable at runtime compare directly; the rest fall back to
// reflect.DeepEqual. Equality is type-strict: int(1) does not equal
// float64(1).
func atomEqual(a, b Term) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta == nil || tb == nil {
		return ta == tb
	}
	if ta != tb {
		return false
	}
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	if av.Comparable() {
		return av.Equal(bv)
	}
	return reflect.DeepEqual(a, b)
}
