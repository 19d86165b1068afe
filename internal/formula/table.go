package formula

import (
	"fmt"
	"math/bits"
)

// Table is a Store backed by explicit truth tables.
//
// A formula is represented as a bitmask over all 2^n assignments of the
// universe, which is canonical by construction. The universe is capped
// at 6 principals so a table fits in a single uint64. Table exists to
// cross-check the BDD backend and to keep the label algebra honest about
// being backend-agnostic; it is not intended for production use.
type Table struct {
	universe int
	rows     uint64 // number of assignments, 1 << universe
	vars     []uint64
}

// maxTableUniverse keeps a whole truth table in one uint64.
const maxTableUniverse = 6

// tableFormula is the handle type produced by a Table store. The mask
// has bit i set when assignment i satisfies the formula.
type tableFormula struct {
	owner *Table
	mask  uint64
}

func (tableFormula) formulaNode() {}

// NewTable creates a truth-table store over n principals, 1 <= n <= 6.
func NewTable(n int) (*Table, error) {
	if n < 1 || n > maxTableUniverse {
		return nil, fmt.Errorf("%w: %d principals (want 1..%d)", ErrUniverseSize, n, maxTableUniverse)
	}
	s := &Table{
		universe: n,
		rows:     1 << uint(n),
		vars:     make([]uint64, n),
	}
	for id := 0; id < n; id++ {
		var mask uint64
		for row := uint64(0); row < s.rows; row++ {
			if row&(1<<uint(id)) != 0 {
				mask |= 1 << row
			}
		}
		s.vars[id] = mask
	}
	return s, nil
}

// Universe returns the number of principal variables.
func (s *Table) Universe() int {
	return s.universe
}

// full returns the mask covering every assignment.
func (s *Table) full() uint64 {
	if s.rows == 64 {
		return ^uint64(0)
	}
	return (1 << s.rows) - 1
}

// Variable returns the formula for a single asserted principal.
func (s *Table) Variable(id int) Formula {
	if id < 0 || id >= s.universe {
		panic(fmt.Errorf("%w: id %d (universe %d)", ErrUnknownPrincipal, id, s.universe))
	}
	return tableFormula{owner: s, mask: s.vars[id]}
}

// Bottom returns the constant-false formula.
func (s *Table) Bottom() Formula {
	return tableFormula{owner: s}
}

// Top returns the constant-true formula.
func (s *Table) Top() Formula {
	return tableFormula{owner: s, mask: s.full()}
}

// And returns the conjunction of a and b.
func (s *Table) And(a, b Formula) Formula {
	return tableFormula{owner: s, mask: s.mask(a) & s.mask(b)}
}

// Or returns the disjunction of a and b.
func (s *Table) Or(a, b Formula) Formula {
	return tableFormula{owner: s, mask: s.mask(a) | s.mask(b)}
}

// Implies reports whether every assignment satisfying a satisfies b.
func (s *Table) Implies(a, b Formula) bool {
	return s.mask(a)&^s.mask(b) == 0
}

// Metrics reports the table width as the structural size; every formula
// in this backend occupies the full table.
func (s *Table) Metrics(f Formula) Metrics {
	return Metrics{
		NodeCount: int(s.rows),
		SatCount:  uint64(bits.OnesCount64(s.mask(f))),
	}
}

// mask unwraps a handle, failing fast on handles from other stores.
func (s *Table) mask(f Formula) uint64 {
	h, ok := f.(tableFormula)
	if !ok || h.owner != s {
		panic(fmt.Errorf("%w: %T", ErrForeignFormula, f))
	}
	return h.mask
}
