// Package unification_test verifies logic-variable identity semantics.
package unification_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlouf/unification"
)

// TestNewVar_Distinct ensures every constructed variable is distinct,
// even when two variables share a label.
func TestNewVar_Distinct(t *testing.T) {
	a := unification.NewVar("x")
	b := unification.NewVar("x")

	assert.NotSame(t, a, b, "two constructions must yield distinct variables")
	assert.True(t, unification.IsVar(a))
	assert.True(t, unification.IsVar(b))

	// Same label, still different identities: they must not unify into a
	// no-op — unifying them binds one to the other.
	s, err := unification.Unify(a, b, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len(), "distinct vars with equal labels still need a binding")
}

// TestNewVar_Labels checks label retrieval and rendering.
func TestNewVar_Labels(t *testing.T) {
	x := unification.NewVar("x")
	assert.Equal(t, "x", x.Token())
	assert.Equal(t, "~x", x.String())

	anon := unification.NewVar()
	assert.NotEmpty(t, anon.Token(), "anonymous variables get an auto token")
	assert.Equal(t, byte('_'), anon.Token()[0], "auto tokens are underscore-prefixed")

	anon2 := unification.NewVar()
	assert.NotEqual(t, anon.Token(), anon2.Token(), "auto tokens never collide")
}

// TestFresh returns the requested number of pairwise distinct variables.
func TestFresh(t *testing.T) {
	vs := unification.Fresh(5)
	require.Len(t, vs, 5)
	seen := make(map[*unification.Var]bool, len(vs))
	for _, v := range vs {
		assert.False(t, seen[v], "Fresh must not repeat a variable")
		seen[v] = true
	}
}

// TestIsVar rejects everything that is not a *Var.
func TestIsVar(t *testing.T) {
	assert.False(t, unification.IsVar(nil))
	assert.False(t, unification.IsVar(42))
	assert.False(t, unification.IsVar("x"))
	assert.False(t, unification.IsVar([]any{unification.NewVar()}))
	assert.False(t, unification.IsVar((*unification.Var)(nil)), "a nil *Var is not a variable")
}
