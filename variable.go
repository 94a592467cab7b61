// Package unification: logic variables.
// This file declares Var, the identity-only placeholder type, and its
// constructors. Identity is by pointer: two *Var values are the same
// variable iff they are the same allocation.
package unification

import (
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// varSeq is the process-wide creation counter. It orders variables by
// age, which fixes the binding direction when two unbound variables are
// unified (the younger binds to the older).
var varSeq atomic.Uint64

// Var is a logic variable: an opaque identity standing for an
// as-yet-unknown term. A Var carries no value of its own and is never
// mutated after construction; it participates in terms by pointer, so
// equality and map keying are by identity only.
type Var struct {
	// seq is the creation sequence number; strictly increasing.
	seq uint64

	// token is the debug label, either caller-supplied or auto-generated.
	token string
}

// NewVar creates a fresh variable, distinct from every other variable
// ever created. At most one label is honored; anonymous variables get an
// auto-generated token of the form "_3f2a9c1d" (UUID-derived), so two
// anonymous variables never share a token either.
//
//	x := unification.NewVar("x")  // renders as ~x
//	y := unification.NewVar()     // renders as ~_3f2a9c1d
func NewVar(label ...string) *Var {
	v := &Var{seq: varSeq.Add(1)}
	if len(label) > 0 && label[0] != "" {
		v.token = label[0]
	} else {
		// Take the first UUID group: short, unique enough for debugging.
		v.token = "_" + strings.SplitN(uuid.NewString(), "-", 2)[0]
	}
	return v
}

// Fresh returns n distinct anonymous variables.
func Fresh(n int) []*Var {
	vs := make([]*Var, n)
	for i := range vs {
		vs[i] = NewVar()
	}
	return vs
}

// IsVar reports whether x is a logic variable.
func IsVar(x Term) bool {
	v, ok := x.(*Var)
	return ok && v != nil
}

// Token returns the variable's debug label.
func (v *Var) Token() string { return v.token }

// String renders the variable as "~token", mirroring conventional logic
// notation for unbound placeholders.
func (v *Var) String() string { return "~" + v.token }
