// Package unification_test verifies that independent substitution
// lineages can be extended concurrently off a shared prefix, and that
// concurrent registry lookups are safe after setup.
package unification_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/rlouf/unification"
)

// TestMain verifies no goroutine leaks across the package's tests.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// TestConcurrentBranches runs many unifications in parallel, all
// extending one shared prefix. Every branch must see its own binding
// and the shared one; the prefix itself must stay untouched.
func TestConcurrentBranches(t *testing.T) {
	shared := unification.NewVar("shared")
	prefix, err := unification.Extend(nil, shared, "common")
	require.NoError(t, err)

	const branches = 128
	results := make([]*unification.Subst, branches)
	vars := make([]*unification.Var, branches)
	for i := range vars {
		vars[i] = unification.NewVar(fmt.Sprintf("b%d", i))
	}

	var wg sync.WaitGroup
	wg.Add(branches)
	for i := 0; i < branches; i++ {
		go func(i int) {
			defer wg.Done()
			s, err := unification.Unify(
				[]any{shared, vars[i]},
				[]any{"common", i},
				prefix,
			)
			assert.NoError(t, err)
			results[i] = s
		}(i)
	}
	wg.Wait()

	for i, s := range results {
		require.NotNil(t, s, "branch %d", i)
		got, ok := s.Lookup(vars[i])
		require.True(t, ok)
		assert.Equal(t, i, got)
		// No cross-branch leakage.
		if i > 0 {
			assert.False(t, s.Bound(vars[i-1]), "branch %d must not see branch %d", i, i-1)
		}
	}
	assert.Equal(t, 1, prefix.Len(), "shared prefix unchanged")
}

// TestConcurrentReify reifies the same term against sibling
// substitutions in parallel.
func TestConcurrentReify(t *testing.T) {
	x := unification.NewVar("x")
	pattern := []any{"value", x}

	const workers = 64
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			s, err := unification.Extend(nil, x, i)
			assert.NoError(t, err)
			out, err := unification.Reify(pattern, s)
			assert.NoError(t, err)
			assert.Equal(t, []any{"value", i}, out)
		}(i)
	}
	wg.Wait()
}
