// Package unification_test: shared fixtures for the test suite.
package unification_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rlouf/unification"
)

// cons is a custom composite shape used to exercise adapter
// registration: a pointer type, so the built-in categories never claim
// it, and the registry must dispatch it explicitly.
type cons struct {
	car unification.Term
	cdr unification.Term
}

// Subterms exposes the cell to the structural traversals (occurs check,
// ground checks).
func (c *cons) Subterms() []unification.Term {
	return []unification.Term{c.car, c.cdr}
}

// unifyCons schedules pairwise unification of both cells.
func unifyCons(a, b unification.Term, _ *unification.Subst, q *unification.Worklist) error {
	ca := a.(*cons)
	cb := b.(*cons)
	q.Push(ca.car, cb.car)
	q.Push(ca.cdr, cb.cdr)
	return nil
}

// reifyCons rebuilds the cell from reified cells.
func reifyCons(t unification.Term, s *unification.Subst, e *unification.Engine) (unification.Term, error) {
	c := t.(*cons)
	car, err := e.Reify(c.car, s)
	if err != nil {
		return nil, err
	}
	cdr, err := e.Reify(c.cdr, s)
	if err != nil {
		return nil, err
	}
	return &cons{car: car, cdr: cdr}, nil
}

// consType is the registered shape descriptor for cons cells.
var consType = reflect.TypeOf(&cons{})

// newConsEngine builds an isolated engine whose registry additionally
// dispatches cons cells. Isolation keeps the shared default registry
// clean across tests.
func newConsEngine(t *testing.T) *unification.Engine {
	t.Helper()
	reg := unification.NewRegistry()
	require.NoError(t, reg.Register(consType, unifyCons, reifyCons))
	return unification.New(unification.WithRegistry(reg))
}

// nest wraps leaf in depth layers of single-element slices.
func nest(depth int, leaf unification.Term) unification.Term {
	t := leaf
	for i := 0; i < depth; i++ {
		t = []any{t}
	}
	return t
}
