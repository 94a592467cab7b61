// Package unification is a generic term unification and substitution
// engine: it computes a minimal set of variable bindings that makes two
// structured values equal, and resolves ("reifies") values against such
// bindings to obtain fully concrete results.
//
// 🚀 What is unification?
//
//	The classical structural-matching primitive behind logic programming
//	and symbolic rewriting, generalized to arbitrary Go values:
//	  • Atomic values — opaque, compared by value equality
//	  • Variables     — identity-only placeholders (*Var)
//	  • Ordered composites — slices and arrays, order-significant
//	  • Keyed composites   — maps, key sets significant, order not
//	  • Record composites  — structs, exported fields in declared order
//
// ✨ Key features:
//   - Persistent substitutions — every success yields a *new* Subst;
//     divergent search branches share a common prefix without copying
//   - Extensible dispatch — register unify/reify strategies per concrete
//     type; built-ins cover the three structural categories
//   - Deterministic — left-to-right threading, fixed binding direction,
//     sorted key order for keyed composites
//   - Iterative engines — explicit work stacks bound call-stack depth
//     independent of input nesting
//   - Occurs check — on by default, switchable per engine instance
//
// ⚙️ Usage:
//
//	import "github.com/rlouf/unification"
//
//	x := unification.NewVar("x")
//	s, err := unification.Unify([]any{1, x, 3}, []any{1, 2, 3}, nil)
//	if err != nil {
//	  // errors.Is(err, unification.ErrUnify) → terms do not match
//	}
//	out, _ := unification.Reify([]any{1, x, 3}, s) // [1 2 3]
//
// Unify never mutates its inputs: terms, variables and the input Subst
// are all left untouched, which makes concurrent use over independent
// substitution lineages safe without coordination.
//
// Performance:
//
//   - Unify/Reify: O(n) in term size for a bounded number of variables
//   - Extend: O(1) allocation plus O(d) guards; Walk: O(d), where d is
//     the binding-chain depth
//
// See example_test.go for runnable scenarios and bench_test.go for the
// size-parameterized benchmark families.
package unification
