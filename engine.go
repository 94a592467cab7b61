// Package unification: engine construction and the package-level facade.
// An Engine pairs a dispatch registry with configuration; isolated
// engines with independent registries can coexist (tests, embedded
// interpreters). The package-level functions delegate to a process-wide
// default engine built deterministically on first use.
package unification

import (
	"reflect"
	"sync"
)

// Engine performs unification and reification against one registry and
// one configuration. Engines are purely functional with respect to
// their inputs: Unify and Reify never mutate a term, a variable or an
// input substitution, so one Engine may serve many goroutines as long
// as registration has finished.
type Engine struct {
	registry    *Registry
	occursCheck bool
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithRegistry makes the engine dispatch through r instead of the
// shared default registry. nil is ignored.
func WithRegistry(r *Registry) Option {
	return func(e *Engine) {
		if r != nil {
			e.registry = r
		}
	}
}

// WithOccursCheck toggles the occurs check on Extend. It defaults to
// enabled: binding a variable to a structure containing that variable
// fails with ErrOccurs. Disabling it removes the per-binding structural
// scan — callers then own termination, and a constructed cycle surfaces
// later as ErrCyclicSubstitution or ErrCyclicTerm rather than a hang.
func WithOccursCheck(enabled bool) Option {
	return func(e *Engine) { e.occursCheck = enabled }
}

// New builds an Engine. Without options it uses the shared default
// registry and keeps the occurs check enabled.
func New(opts ...Option) *Engine {
	e := &Engine{registry: DefaultRegistry(), occursCheck: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the engine's dispatch registry.
func (e *Engine) Registry() *Registry { return e.registry }

// Walk shallowly resolves t through s. Engine configuration does not
// affect shallow resolution; the method exists for call-site symmetry
// with Unify and Reify.
func (e *Engine) Walk(t Term, s *Subst) (Term, error) { return s.Walk(t) }

// OccursCheck reports whether the occurs check is enabled.
func (e *Engine) OccursCheck() bool { return e.occursCheck }

var (
	defaultEngineOnce sync.Once
	defaultEngine     *Engine
)

// DefaultEngine returns the engine backing the package-level functions:
// default registry, occurs check enabled.
func DefaultEngine() *Engine {
	defaultEngineOnce.Do(func() {
		defaultEngine = New()
	})
	return defaultEngine
}

// Unify finds a substitution extending s under which a and b are equal,
// using the default engine. nil is the empty substitution. See
// Engine.Unify.
func Unify(a, b Term, s *Subst) (*Subst, error) {
	return DefaultEngine().Unify(a, b, s)
}

// Reify resolves t fully against s using the default engine. See
// Engine.Reify.
func Reify(t Term, s *Subst) (Term, error) {
	return DefaultEngine().Reify(t, s)
}

// Walk shallowly resolves t through s's binding chain. Equivalent to
// s.Walk(t).
func Walk(t Term, s *Subst) (Term, error) {
	return s.Walk(t)
}

// Extend binds v to t in a new substitution derived from s, using the
// default engine's occurs-check setting. See Engine.Extend.
func Extend(s *Subst, v *Var, t Term) (*Subst, error) {
	return DefaultEngine().Extend(s, v, t)
}

// Register installs unify/reify strategies for a concrete shape on the
// shared default registry. Fails with ErrDuplicateStrategy on
// conflicting re-registration.
func Register(shape reflect.Type, unify UnifyStrategy, reify ReifyStrategy) error {
	return DefaultRegistry().Register(shape, unify, reify)
}

// IsGround reports whether t contains no unbound variables under s,
// using the default engine. See Engine.IsGround.
func IsGround(t Term, s *Subst) (bool, error) {
	return DefaultEngine().IsGround(t, s)
}

// UngroundVars returns the distinct unbound variables remaining in t
// under s, using the default engine. See Engine.UngroundVars.
func UngroundVars(t Term, s *Subst) ([]*Var, error) {
	return DefaultEngine().UngroundVars(t, s)
}
