package harness

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/troupe-ifc/flam/internal/formula"
	"github.com/troupe-ifc/flam/internal/label"
	"github.com/troupe-ifc/flam/internal/model"
)

// Relation names accepted in checks.
const (
	RelationFlowsTo = "flows-to"
	RelationActsFor = "acts-for"
)

// Harness is a scenario built against a live formula store.
type Harness struct {
	Scenario *Scenario
	Model    *model.Model
	Store    formula.Store
	Labels   map[string]label.Label
}

// New builds a scenario's labels against a fresh BDD store.
func New(t *testing.T, s *Scenario) *Harness {
	t.Helper()

	m, err := s.Model()
	require.NoError(t, err)

	st, err := formula.NewBDD(len(m.Principals))
	require.NoError(t, err)

	labels, err := m.Build(st)
	require.NoError(t, err)

	return &Harness{Scenario: s, Model: m, Store: st, Labels: labels}
}

// Load reads a scenario file and builds it.
func Load(t *testing.T, path string) *Harness {
	t.Helper()
	s, err := LoadScenario(path)
	require.NoError(t, err)
	return New(t, s)
}

// RunChecks asserts every expected outcome in the scenario.
func (h *Harness) RunChecks(t *testing.T) {
	t.Helper()
	for i, c := range h.Scenario.Checks {
		got, err := h.Evaluate(c)
		require.NoError(t, err, "check %d", i)
		assert.Equal(t, c.Expect, got, "check %d: %s %s %s", i, c.LHS, c.Relation, c.RHS)
	}
}

// Evaluate decides one check against the store.
func (h *Harness) Evaluate(c Check) (bool, error) {
	lhs, ok := h.Labels[c.LHS]
	if !ok {
		return false, fmt.Errorf("unknown label %q", c.LHS)
	}
	rhs, ok := h.Labels[c.RHS]
	if !ok {
		return false, fmt.Errorf("unknown label %q", c.RHS)
	}
	switch c.Relation {
	case RelationFlowsTo:
		return lhs.FlowsTo(h.Store, rhs), nil
	case RelationActsFor:
		return lhs.ActsFor(h.Store, rhs), nil
	default:
		return false, fmt.Errorf("unknown relation %q", c.Relation)
	}
}
