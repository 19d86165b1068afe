package label

import (
	"fmt"

	"github.com/troupe-ifc/flam/internal/formula"
)

// Principal identifies an atomic trust entity. It is a variable id in
// the formula store's universe and has no structure beyond identity.
type Principal int

// Label is an ordered pair of formula handles: confidentiality (who may
// read) and integrity (whose influence the value carries). Both handles
// must come from the same store. Labels are immutable and comparable;
// because the store canonicalizes formulas, two labels are == exactly
// when they are logically equal.
type Label struct {
	confidentiality formula.Formula
	integrity       formula.Formula
}

// New creates the label <p, p>: the principal guards reading and is the
// sole recorded influence.
func New(st formula.Store, p Principal) Label {
	return NewPair(st, p, p)
}

// NewPair creates the label <conf, integ> with independent
// confidentiality and integrity principals.
func NewPair(st formula.Store, conf, integ Principal) Label {
	return Label{
		confidentiality: st.Variable(int(conf)),
		integrity:       st.Variable(int(integ)),
	}
}

// Make assembles a label directly from formula handles. Both handles
// must come from st's context.
func Make(confidentiality, integrity formula.Formula) Label {
	return Label{confidentiality: confidentiality, integrity: integrity}
}

// Top returns the most restrictive label <false, true>: unreadable by
// anyone, writable by anyone.
func Top(st formula.Store) Label {
	return Label{confidentiality: st.Bottom(), integrity: st.Top()}
}

// Bot returns the least restrictive label <true, false>: freely
// readable, carrying no recorded influence.
func Bot(st formula.Store) Label {
	return Label{confidentiality: st.Top(), integrity: st.Bottom()}
}

// Nil returns the minimal-authority label <true, true>.
func Nil(st formula.Store) Label {
	return Label{confidentiality: st.Top(), integrity: st.Top()}
}

// Root returns the maximal-authority label <false, false>: it satisfies
// every confidentiality restriction and every integrity guarantee.
func Root(st formula.Store) Label {
	return Label{confidentiality: st.Bottom(), integrity: st.Bottom()}
}

// Confidentiality returns the label's confidentiality formula.
func (l Label) Confidentiality() formula.Formula {
	return l.confidentiality
}

// Integrity returns the label's integrity formula.
func (l Label) Integrity() formula.Formula {
	return l.integrity
}

// FlowsTo reports whether information may move from a value labeled l
// to a context labeled other.
//
// Confidentiality gets more restrictive downstream (the destination's
// requirement must imply the source's), while integrity weakens (the
// source's guarantee must imply what the destination declares).
func (l Label) FlowsTo(st formula.Store, other Label) bool {
	c := st.Implies(other.confidentiality, l.confidentiality)
	i := st.Implies(l.integrity, other.integrity)
	return c && i
}

// ActsFor reports whether l may exercise the authority of other. Both
// components of l must be at least as restrictive as other's; unlike
// FlowsTo, the order is componentwise in the same direction.
func (l Label) ActsFor(st formula.Store, other Label) bool {
	c := st.Implies(l.confidentiality, other.confidentiality)
	i := st.Implies(l.integrity, other.integrity)
	return c && i
}

// Join returns the least upper bound under FlowsTo:
// <S1 AND S2, I1 OR I2>.
func (l Label) Join(st formula.Store, other Label) Label {
	return Label{
		confidentiality: st.And(l.confidentiality, other.confidentiality),
		integrity:       st.Or(l.integrity, other.integrity),
	}
}

// Meet returns the greatest lower bound under FlowsTo, the dual of
// Join: <S1 OR S2, I1 AND I2>.
func (l Label) Meet(st formula.Store, other Label) Label {
	return Label{
		confidentiality: st.Or(l.confidentiality, other.confidentiality),
		integrity:       st.And(l.integrity, other.integrity),
	}
}

// View projects the label's integrity into a fresh confidentiality
// slot, discarding its own confidentiality. Part of the nonmalleable
// IFC transform pair with Voice.
func (l Label) View(st formula.Store) Label {
	return Label{confidentiality: l.integrity, integrity: st.Top()}
}

// Voice projects the label's confidentiality into a fresh integrity
// slot, discarding its own integrity. Dual of View.
func (l Label) Voice(st formula.Store) Label {
	return Label{confidentiality: st.Top(), integrity: l.confidentiality}
}

// Render returns a diagnostic string for the label: for each component
// the canonical structural size and the satisfying-assignment count,
// as reported by the store. Purely informational; never used for
// comparisons.
func (l Label) Render(st formula.Store) string {
	c := st.Metrics(l.confidentiality)
	i := st.Metrics(l.integrity)
	return fmt.Sprintf("⟨ %d|%d , %d|%d ⟩", c.NodeCount, c.SatCount, i.NodeCount, i.SatCount)
}
