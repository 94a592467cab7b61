// Package unification: built-in shape strategies.
// This file implements the default strategies for the three structural
// categories — ordered (slice/array), keyed (map), record (struct) —
// plus the shared decomposition and rebuild helpers used by the engines'
// structural traversals. All iteration orders here are deterministic:
// index order for ordered composites, sorted key order for keyed ones,
// declared field order for records.
package unification

import (
	"fmt"
	"reflect"
	"sort"
)

// builder rebuilds a composite of the source's shape from reified
// subterms. Produced by decomposeBuiltin alongside the subterm list.
type builder func(kids []Term) (Term, error)

// unifyOrdered is the built-in strategy for slices and arrays. Length
// mismatch fails immediately; otherwise element pairs are scheduled in
// index order.
func unifyOrdered(a, b Term, _ *Subst, q *Worklist) error {
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	if av.Kind() != bv.Kind() {
		// Slice vs array mirrors list vs tuple: distinct ordered shapes.
		return fmt.Errorf("ordered shapes %s and %s differ: %w", av.Kind(), bv.Kind(), ErrUnify)
	}
	if av.Len() != bv.Len() {
		return fmt.Errorf("ordered lengths %d and %d differ: %w", av.Len(), bv.Len(), ErrUnify)
	}
	for i := 0; i < av.Len(); i++ {
		q.Push(av.Index(i).Interface(), bv.Index(i).Interface())
	}
	return nil
}

// unifyKeyed is the built-in strategy for maps. Key sets must be equal;
// values for shared keys are scheduled in sorted key order so that
// threading is reproducible run to run.
func unifyKeyed(a, b Term, _ *Subst, q *Worklist) error {
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	if av.Len() != bv.Len() {
		return fmt.Errorf("keyed sizes %d and %d differ: %w", av.Len(), bv.Len(), ErrUnify)
	}
	for _, entry := range mapEntries(av) {
		bval, ok := mapLookup(bv, entry.key)
		if !ok {
			return fmt.Errorf("key %v missing from right operand: %w", entry.key, ErrUnify)
		}
		q.Push(entry.val, bval)
	}
	return nil
}

// unifyRecord is the built-in strategy for structs. Both operands must
// share the exact struct type (differing types mean differing slot
// sets); exported fields are scheduled pairwise in declared order.
// Unexported fields do not participate.
func unifyRecord(a, b Term, _ *Subst, q *Worklist) error {
	at, bt := reflect.TypeOf(a), reflect.TypeOf(b)
	if at != bt {
		return fmt.Errorf("record types %v and %v differ: %w", at, bt, ErrUnify)
	}
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	for i := 0; i < at.NumField(); i++ {
		if !at.Field(i).IsExported() {
			continue
		}
		q.Push(av.Field(i).Interface(), bv.Field(i).Interface())
	}
	return nil
}

// mapEntry is one key/value pair of a keyed composite, extracted into
// plain interface values.
type mapEntry struct {
	key Term
	val Term
}

// mapEntries snapshots a map's entries sorted by canonical key text,
// giving every traversal of a keyed composite the same order.
func mapEntries(m reflect.Value) []mapEntry {
	keys := m.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return canonicalKey(keys[i].Interface()) < canonicalKey(keys[j].Interface())
	})
	entries := make([]mapEntry, len(keys))
	for i, k := range keys {
		entries[i] = mapEntry{key: k.Interface(), val: m.MapIndex(k).Interface()}
	}
	return entries
}

// canonicalKey renders a map key as a sortable string. The type name is
// included so that keys of distinct types in an interface-keyed map
// never collide.
func canonicalKey(k Term) string {
	return fmt.Sprintf("%T\x00%#v", k, k)
}

// mapLookup fetches m[key], unwrapping interface-typed keys and
// checking assignability so maps with different key types can still be
// compared where their runtime keys agree.
func mapLookup(m reflect.Value, key Term) (Term, bool) {
	kt := m.Type().Key()
	var kv reflect.Value
	if key == nil {
		switch kt.Kind() {
		case reflect.Interface, reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
			kv = reflect.Zero(kt)
		default:
			return nil, false
		}
	} else {
		kv = reflect.ValueOf(key)
		if !kv.Type().AssignableTo(kt) {
			return nil, false
		}
	}
	out := m.MapIndex(kv)
	if !out.IsValid() {
		return nil, false
	}
	return out.Interface(), true
}

// decomposeBuiltin splits a built-in composite into its direct subterms
// and a builder that reassembles a value of the same shape. ok is false
// for atomic terms and custom shapes.
func decomposeBuiltin(t Term) (kids []Term, build builder, ok bool) {
	switch categoryOf(t) {
	case CategoryOrdered:
		v := reflect.ValueOf(t)
		kids = make([]Term, v.Len())
		for i := range kids {
			kids[i] = v.Index(i).Interface()
		}
		return kids, buildOrdered(v.Type()), true

	case CategoryKeyed:
		v := reflect.ValueOf(t)
		entries := mapEntries(v)
		kids = make([]Term, len(entries))
		keys := make([]Term, len(entries))
		for i, e := range entries {
			kids[i] = e.val
			keys[i] = e.key
		}
		return kids, buildKeyed(v.Type(), keys), true

	case CategoryRecord:
		v := reflect.ValueOf(t)
		rt := v.Type()
		var idx []int
		for i := 0; i < rt.NumField(); i++ {
			if rt.Field(i).IsExported() {
				idx = append(idx, i)
				kids = append(kids, v.Field(i).Interface())
			}
		}
		return kids, buildRecord(v, idx), true

	default:
		return nil, nil, false
	}
}

// subtermsOf returns a term's direct subterms for structural traversals
// (occurs check, ground checks). Custom shapes participate through the
// Walkable adapter; atomic terms return nil.
func subtermsOf(t Term) []Term {
	if w, ok := t.(Walkable); ok {
		return w.Subterms()
	}
	kids, _, ok := decomposeBuiltin(t)
	if !ok {
		return nil
	}
	return kids
}

// buildOrdered reassembles a slice or array of type rt.
func buildOrdered(rt reflect.Type) builder {
	return func(kids []Term) (Term, error) {
		var out reflect.Value
		if rt.Kind() == reflect.Slice {
			out = reflect.MakeSlice(rt, len(kids), len(kids))
		} else {
			out = reflect.New(rt).Elem()
		}
		for i, kid := range kids {
			if err := setValue(out.Index(i), kid); err != nil {
				return nil, fmt.Errorf("element %d of %v: %w", i, rt, err)
			}
		}
		return out.Interface(), nil
	}
}

// buildKeyed reassembles a map of type rt with the captured key order.
func buildKeyed(rt reflect.Type, keys []Term) builder {
	return func(kids []Term) (Term, error) {
		out := reflect.MakeMapWithSize(rt, len(kids))
		slot := reflect.New(rt.Elem()).Elem()
		for i, kid := range kids {
			if err := setValue(slot, kid); err != nil {
				return nil, fmt.Errorf("value for key %v of %v: %w", keys[i], rt, err)
			}
			kv := reflect.Zero(rt.Key())
			if keys[i] != nil {
				kv = reflect.ValueOf(keys[i])
			}
			out.SetMapIndex(kv, slot)
		}
		return out.Interface(), nil
	}
}

// buildRecord reassembles a struct, copying the source value first so
// unexported fields carry over untouched, then overwriting the exported
// slots with their reified subterms.
func buildRecord(src reflect.Value, idx []int) builder {
	return func(kids []Term) (Term, error) {
		out := reflect.New(src.Type()).Elem()
		out.Set(src)
		for i, fi := range idx {
			if err := setValue(out.Field(fi), kids[i]); err != nil {
				return nil, fmt.Errorf("field %s of %v: %w", src.Type().Field(fi).Name, src.Type(), err)
			}
		}
		return out.Interface(), nil
	}
}

// setValue assigns an interface value into a reflected slot, handling
// nil and rejecting impossible assignments instead of panicking.
func setValue(dst reflect.Value, v Term) error {
	if v == nil {
		switch dst.Kind() {
		case reflect.Interface, reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
			dst.Set(reflect.Zero(dst.Type()))
			return nil
		default:
			return fmt.Errorf("unification: cannot place nil into %v", dst.Type())
		}
	}
	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(dst.Type()) {
		return fmt.Errorf("unification: cannot place %T into %v", v, dst.Type())
	}
	dst.Set(rv)
	return nil
}
