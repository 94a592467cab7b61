// Package unification: the dispatch registry.
// This file declares Registry, the mapping from term shapes to
// unify/reify strategies. Resolution order is fixed: exact type pair
// first, then structural category, then the atomic-equality fallback.
// Registration is setup-phase work; lookups are read-locked and safe to
// run concurrently once registration has finished.
package unification

import (
	"fmt"
	"reflect"
	"sync"
)

// typePair keys the exact-pair unify table by the dynamic types of both
// operands. A nil reflect.Type (untyped nil term) is a valid component.
type typePair [2]reflect.Type

// catEntry holds the strategies installed for one structural category.
// builtin marks the engine-native categories, whose reification runs on
// the engine's iterative machine rather than through a callback.
type catEntry struct {
	unify   UnifyStrategy
	reify   ReifyStrategy
	builtin bool
}

// Registry maps term shapes to unification and reification strategies.
//
// A Registry is pre-populated with built-in strategies for the three
// structural categories (ordered, keyed, record); exact-type strategies
// registered by callers take precedence over them. Exactly one strategy
// resolves for any concrete pair of runtime shapes: exact match wins,
// then a shared structural category, then atomic equality.
type Registry struct {
	mu         sync.RWMutex
	exactUnify map[typePair]UnifyStrategy
	exactReify map[reflect.Type]ReifyStrategy
	categories map[Category]catEntry
}

// NewRegistry returns a registry pre-populated with the deterministic
// built-in strategies for ordered, keyed and record composites. Use
// NewBareRegistry to start from nothing.
func NewRegistry() *Registry {
	r := NewBareRegistry()
	r.categories[CategoryOrdered] = catEntry{unify: unifyOrdered, builtin: true}
	r.categories[CategoryKeyed] = catEntry{unify: unifyKeyed, builtin: true}
	r.categories[CategoryRecord] = catEntry{unify: unifyRecord, builtin: true}
	return r
}

// NewBareRegistry returns an empty registry with no built-in strategies
// installed. Every shape dispatches to the atomic-equality fallback
// until strategies are registered. Intended for fully custom dispatch
// tables; most callers want NewRegistry.
func NewBareRegistry() *Registry {
	return &Registry{
		exactUnify: make(map[typePair]UnifyStrategy),
		exactReify: make(map[reflect.Type]ReifyStrategy),
		categories: make(map[Category]catEntry),
	}
}

// defaultRegistry is the process-wide registry used by the default
// engine and the package-level Register. Built once, deterministically.
var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *Registry
)

// DefaultRegistry returns the shared registry backing the package-level
// functions. The first call populates it with the built-in strategies;
// subsequent calls return the same instance.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Register installs unify and reify strategies for one concrete shape:
// the unify strategy handles the (shape, shape) pair and the reify
// strategy handles the shape alone. Either may be nil to install only
// the other. Registering a shape that already has the corresponding
// strategy fails with ErrDuplicateStrategy and leaves the registry
// unchanged.
func (r *Registry) Register(shape reflect.Type, unify UnifyStrategy, reify ReifyStrategy) error {
	if unify == nil && reify == nil {
		return fmt.Errorf("shape %v: %w", shape, ErrNilStrategy)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	pair := typePair{shape, shape}
	if unify != nil {
		if _, dup := r.exactUnify[pair]; dup {
			return fmt.Errorf("unify for %v: %w", shape, ErrDuplicateStrategy)
		}
	}
	if reify != nil {
		if _, dup := r.exactReify[shape]; dup {
			return fmt.Errorf("reify for %v: %w", shape, ErrDuplicateStrategy)
		}
	}
	// Both checked before either is installed: a conflict never leaves a
	// half-registered shape behind.
	if unify != nil {
		r.exactUnify[pair] = unify
	}
	if reify != nil {
		r.exactReify[shape] = reify
	}
	return nil
}

// RegisterPair installs a unify strategy for the exact ordered pair of
// operand shapes (a, b). Use this for asymmetric custom matching, e.g. a
// pattern shape against a concrete shape.
func (r *Registry) RegisterPair(a, b reflect.Type, unify UnifyStrategy) error {
	if unify == nil {
		return fmt.Errorf("pair (%v, %v): %w", a, b, ErrNilStrategy)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	pair := typePair{a, b}
	if _, dup := r.exactUnify[pair]; dup {
		return fmt.Errorf("unify for (%v, %v): %w", a, b, ErrDuplicateStrategy)
	}
	r.exactUnify[pair] = unify
	return nil
}

// RegisterCategory installs strategies for a whole structural category.
// Categories occupied by the built-ins (every category on a NewRegistry)
// conflict with ErrDuplicateStrategy; build on NewBareRegistry to own
// category dispatch outright.
func (r *Registry) RegisterCategory(c Category, unify UnifyStrategy, reify ReifyStrategy) error {
	if unify == nil && reify == nil {
		return fmt.Errorf("category %v: %w", c, ErrNilStrategy)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.categories[c]; dup {
		return fmt.Errorf("category %v: %w", c, ErrDuplicateStrategy)
	}
	r.categories[c] = catEntry{unify: unify, reify: reify}
	return nil
}

// resolveUnify returns the strategy for the walked operand pair, or nil
// when the pair falls through to the atomic-equality fallback.
func (r *Registry) resolveUnify(a, b Term) UnifyStrategy {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if fn, ok := r.exactUnify[typePair{reflect.TypeOf(a), reflect.TypeOf(b)}]; ok {
		return fn
	}
	ca, cb := categoryOf(a), categoryOf(b)
	if ca != cb || ca == CategoryAtomic {
		return nil
	}
	if entry, ok := r.categories[ca]; ok {
		return entry.unify
	}
	return nil
}

// resolveReify returns the reify dispatch for a walked term: a callback
// strategy (exact or custom-category), or structural=true for a built-in
// category handled on the engine's iterative machine. (nil, false) means
// the term is atomic for reification purposes.
func (r *Registry) resolveReify(t Term) (fn ReifyStrategy, structural bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if fn, ok := r.exactReify[reflect.TypeOf(t)]; ok {
		return fn, false
	}
	c := categoryOf(t)
	if c == CategoryAtomic {
		return nil, false
	}
	entry, ok := r.categories[c]
	if !ok {
		return nil, false
	}
	if entry.builtin {
		return nil, true
	}
	return entry.reify, false
}
