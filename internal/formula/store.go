package formula

import "errors"

// Store maintains canonical, immutable representations of monotone boolean
// functions over a fixed universe of principal variables.
//
// All handles returned by a Store are tied to that Store instance. The
// label algebra passes the Store explicitly to every operation; it is
// never ambient state.
type Store interface {
	// Variable returns the formula that is true exactly when principal
	// id is asserted. id must be within the declared universe.
	Variable(id int) Formula

	// Bottom returns the constant-false formula.
	Bottom() Formula

	// Top returns the constant-true formula.
	Top() Formula

	// And returns the canonical conjunction of a and b.
	And(a, b Formula) Formula

	// Or returns the canonical disjunction of a and b.
	Or(a, b Formula) Formula

	// Implies reports whether a implies b is a tautology: every
	// assignment satisfying a also satisfies b. This is the fundamental
	// order-decision primitive; all label comparisons reduce to it.
	Implies(a, b Formula) bool

	// Metrics returns diagnostic size measures for f. Used only for
	// human-readable rendering, never for correctness.
	Metrics(f Formula) Metrics

	// Universe returns the number of principal variables the store was
	// created with.
	Universe() int
}

// Formula is an opaque handle to one canonical monotone boolean function.
// Handles are immutable, freely copyable, and comparable with ==; within
// a single store, handle equality is logical equality.
type Formula interface {
	formulaNode()
}

// Metrics holds diagnostic size measures for a formula.
type Metrics struct {
	// NodeCount is the structural size of the canonical representation.
	NodeCount int

	// SatCount is the number of assignments over the declared universe
	// that satisfy the formula.
	SatCount uint64
}

// Precondition violations. These are programming errors, not runtime
// conditions: stores panic with an error wrapping one of these rather
// than returning it.
var (
	// ErrForeignFormula indicates a handle was passed to a store other
	// than the one that produced it.
	ErrForeignFormula = errors.New("formula: handle belongs to a different store")

	// ErrUnknownPrincipal indicates a principal id outside the store's
	// declared universe.
	ErrUnknownPrincipal = errors.New("formula: principal not declared in this store")

	// ErrUniverseSize indicates an unsupported universe size at store
	// construction.
	ErrUniverseSize = errors.New("formula: unsupported universe size")
)
