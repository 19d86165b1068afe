// Package formula provides canonical representations of monotone boolean
// functions over principal variables.
//
// The package is organized around the Store contract: a Store interns
// formulas into a canonical form so that logical equality and handle
// equality coincide. Every downstream comparison in the label algebra
// reduces to Store.Implies, so canonicalization is the correctness
// foundation of the whole system.
//
// Two conforming backends are provided:
//   - BDD: reduced ordered binary decision diagrams with a hash-consed
//     unique table. This is the production backend.
//   - Table: a naive truth table over a small universe. This exists to
//     cross-check the BDD in tests and to demonstrate that the algebra
//     is backend-agnostic.
//
// CRITICAL PATTERNS:
//
// Canonical handles:
// Formula values are immutable and comparable. Two handles from the same
// store are == exactly when they denote the same boolean function. No
// operation consumes a handle; all operations produce new handles.
//
// Explicit store, fail-fast misuse:
// Handles are tagged with their owning store. Passing a handle to a
// different store is a precondition violation, not a recoverable error;
// it fails fast with a panic wrapping ErrForeignFormula rather than
// producing silently wrong results. The same applies to principal ids
// outside the declared universe (ErrUnknownPrincipal).
package formula
