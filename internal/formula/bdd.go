package formula

import (
	"fmt"
	"sync"
)

// BDD is a Store backed by reduced ordered binary decision diagrams.
//
// Nodes are hash-consed through a unique table, so construction yields
// the canonical reduced form directly: two handles are == exactly when
// they denote the same function. Variable order is the principal id
// order, which is fixed for the lifetime of the store.
//
// All public methods serialize on an internal mutex, so a single BDD may
// be shared by concurrent callers. Handles themselves are immutable and
// need no locking.
type BDD struct {
	mu       sync.Mutex
	universe int32

	// nodes[0] and nodes[1] are the false/true terminals; both carry
	// level == universe so cofactoring treats them as below every
	// variable.
	nodes  []bddNode
	unique map[bddNode]int32
	apply  map[applyKey]int32
	leq    map[leqKey]bool
	sat    map[int32]uint64
}

type bddNode struct {
	level  int32
	lo, hi int32
}

type applyKey struct {
	op   byte
	a, b int32
}

type leqKey struct {
	a, b int32
}

const (
	opAnd byte = iota
	opOr
)

const (
	falseNode int32 = 0
	trueNode  int32 = 1
)

// maxUniverse bounds the universe so satisfying-assignment counts fit in
// a uint64.
const maxUniverse = 63

// bddFormula is the handle type produced by a BDD store.
type bddFormula struct {
	owner *BDD
	node  int32
}

func (bddFormula) formulaNode() {}

// NewBDD creates a BDD store over a universe of n principal variables,
// 1 <= n <= 63.
func NewBDD(n int) (*BDD, error) {
	if n < 1 || n > maxUniverse {
		return nil, fmt.Errorf("%w: %d principals (want 1..%d)", ErrUniverseSize, n, maxUniverse)
	}
	s := &BDD{
		universe: int32(n),
		unique:   make(map[bddNode]int32),
		apply:    make(map[applyKey]int32),
		leq:      make(map[leqKey]bool),
		sat:      make(map[int32]uint64),
	}
	s.nodes = []bddNode{
		{level: s.universe, lo: falseNode, hi: falseNode},
		{level: s.universe, lo: trueNode, hi: trueNode},
	}
	return s, nil
}

// Universe returns the number of principal variables.
func (s *BDD) Universe() int {
	return int(s.universe)
}

// Variable returns the formula for a single asserted principal.
// Panics with ErrUnknownPrincipal if id is outside the universe.
func (s *BDD) Variable(id int) Formula {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id < 0 || int32(id) >= s.universe {
		panic(fmt.Errorf("%w: id %d (universe %d)", ErrUnknownPrincipal, id, s.universe))
	}
	return s.handle(s.mk(int32(id), falseNode, trueNode))
}

// Bottom returns the constant-false formula.
func (s *BDD) Bottom() Formula {
	return bddFormula{owner: s, node: falseNode}
}

// Top returns the constant-true formula.
func (s *BDD) Top() Formula {
	return bddFormula{owner: s, node: trueNode}
}

// And returns the canonical conjunction of a and b.
func (s *BDD) And(a, b Formula) Formula {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle(s.applyOp(opAnd, s.node(a), s.node(b)))
}

// Or returns the canonical disjunction of a and b.
func (s *BDD) Or(a, b Formula) Formula {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle(s.applyOp(opOr, s.node(a), s.node(b)))
}

// Implies reports whether a -> b is a tautology. Decided structurally on
// the diagrams; no negation is ever materialized, so the store stays
// within monotone functions.
func (s *BDD) Implies(a, b Formula) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.leqRec(s.node(a), s.node(b))
}

// Metrics returns the decision-node count and the number of satisfying
// assignments over the declared universe.
func (s *BDD) Metrics(f Formula) Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.node(f)
	return Metrics{
		NodeCount: s.countNodes(n),
		SatCount:  s.satRec(n) << uint(s.nodes[n].level),
	}
}

// handle wraps a node index as a Formula tied to this store.
func (s *BDD) handle(n int32) Formula {
	return bddFormula{owner: s, node: n}
}

// node unwraps a handle, failing fast on handles from other stores.
func (s *BDD) node(f Formula) int32 {
	h, ok := f.(bddFormula)
	if !ok || h.owner != s {
		panic(fmt.Errorf("%w: %T", ErrForeignFormula, f))
	}
	return h.node
}

// mk interns a decision node, applying the BDD reduction rules.
func (s *BDD) mk(level, lo, hi int32) int32 {
	if lo == hi {
		return lo
	}
	key := bddNode{level: level, lo: lo, hi: hi}
	if n, ok := s.unique[key]; ok {
		return n
	}
	n := int32(len(s.nodes))
	s.nodes = append(s.nodes, key)
	s.unique[key] = n
	return n
}

func (s *BDD) applyOp(op byte, a, b int32) int32 {
	switch op {
	case opAnd:
		switch {
		case a == falseNode || b == falseNode:
			return falseNode
		case a == trueNode:
			return b
		case b == trueNode:
			return a
		case a == b:
			return a
		}
	case opOr:
		switch {
		case a == trueNode || b == trueNode:
			return trueNode
		case a == falseNode:
			return b
		case b == falseNode:
			return a
		case a == b:
			return a
		}
	}

	// Both ops are commutative; normalize the cache key.
	ka, kb := a, b
	if ka > kb {
		ka, kb = kb, ka
	}
	key := applyKey{op: op, a: ka, b: kb}
	if r, ok := s.apply[key]; ok {
		return r
	}

	level := s.nodes[a].level
	if l := s.nodes[b].level; l < level {
		level = l
	}
	a0, a1 := s.cofactor(a, level)
	b0, b1 := s.cofactor(b, level)
	r := s.mk(level, s.applyOp(op, a0, b0), s.applyOp(op, a1, b1))
	s.apply[key] = r
	return r
}

// cofactor returns the restriction of n to level set false/true. Nodes
// below level are untouched by the restriction.
func (s *BDD) cofactor(n, level int32) (lo, hi int32) {
	if s.nodes[n].level == level {
		return s.nodes[n].lo, s.nodes[n].hi
	}
	return n, n
}

// leqRec decides a <= b pointwise, i.e. whether a -> b is a tautology.
func (s *BDD) leqRec(a, b int32) bool {
	switch {
	case a == b:
		return true
	case a == falseNode:
		return true
	case b == trueNode:
		return true
	case a == trueNode || b == falseNode:
		return false
	}

	key := leqKey{a: a, b: b}
	if r, ok := s.leq[key]; ok {
		return r
	}

	level := s.nodes[a].level
	if l := s.nodes[b].level; l < level {
		level = l
	}
	a0, a1 := s.cofactor(a, level)
	b0, b1 := s.cofactor(b, level)
	r := s.leqRec(a0, b0) && s.leqRec(a1, b1)
	s.leq[key] = r
	return r
}

// satRec counts satisfying assignments over the variables at or below
// the node's own level. The caller scales by 2^level for the variables
// above the root.
func (s *BDD) satRec(n int32) uint64 {
	if n == falseNode {
		return 0
	}
	if n == trueNode {
		return 1
	}
	if c, ok := s.sat[n]; ok {
		return c
	}
	nd := s.nodes[n]
	lo := s.satRec(nd.lo) << uint(s.nodes[nd.lo].level-nd.level-1)
	hi := s.satRec(nd.hi) << uint(s.nodes[nd.hi].level-nd.level-1)
	c := lo + hi
	s.sat[n] = c
	return c
}

// countNodes counts distinct decision nodes reachable from n. Constants
// report 1 (the terminal itself).
func (s *BDD) countNodes(n int32) int {
	if n == falseNode || n == trueNode {
		return 1
	}
	seen := make(map[int32]bool)
	var walk func(int32)
	walk = func(m int32) {
		if m == falseNode || m == trueNode || seen[m] {
			return
		}
		seen[m] = true
		walk(s.nodes[m].lo)
		walk(s.nodes[m].hi)
	}
	walk(n)
	return len(seen)
}
