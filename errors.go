// Package unification: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the
// engine. All operations return these sentinels (optionally wrapped with
// fmt.Errorf("ctx: %w", ...) for context) and tests check them via
// errors.Is. No operation panics on caller-triggered error conditions.
package unification

import (
	"errors"
	"fmt"
)

var (
	// ErrUnify marks ordinary unification failure: the two terms cannot be
	// made equal (length mismatch, key-set mismatch, shape mismatch, or
	// unequal atomic values). This is an expected outcome, not an
	// exceptional one — search layers treat it as branch pruning.
	ErrUnify = errors.New("unification: terms do not unify")

	// ErrOccurs indicates an occurs-check violation: a variable would be
	// bound to a structure that contains that same variable. It wraps
	// ErrUnify, so errors.Is(err, ErrUnify) also holds — an occurs failure
	// is an ordinary unification failure from a search layer's viewpoint.
	ErrOccurs = fmt.Errorf("%w: occurs check failed", ErrUnify)

	// ErrRebind reports an attempt to bind an already-bound variable within
	// one substitution lineage. This is a programmer error, deliberately
	// distinct from ErrUnify.
	ErrRebind = errors.New("unification: variable already bound")

	// ErrCyclicSubstitution reports a binding cycle discovered while
	// walking a variable chain. Only reachable when the occurs check was
	// disabled during construction of the substitution.
	ErrCyclicSubstitution = errors.New("unification: cyclic substitution chain")

	// ErrCyclicTerm reports a true binding cycle discovered during
	// reification (a variable bound, transitively, to a term containing
	// itself). Only reachable when the occurs check was disabled.
	ErrCyclicTerm = errors.New("unification: cyclic term")

	// ErrDuplicateStrategy reports a conflicting registration: a strategy
	// already exists for the exact shape (or category). Raised at
	// registration time, never deferred to first use.
	ErrDuplicateStrategy = errors.New("unification: strategy already registered for shape")

	// ErrNilVar indicates a nil *Var was passed where a variable is required.
	ErrNilVar = errors.New("unification: nil variable")

	// ErrNilStrategy indicates a nil strategy function was passed to a
	// registration call.
	ErrNilStrategy = errors.New("unification: nil strategy function")
)
