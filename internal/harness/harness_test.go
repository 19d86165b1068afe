package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioPath(name string) string {
	return filepath.Join("testdata", "scenarios", name+".yaml")
}

func TestLoadScenario(t *testing.T) {
	s, err := LoadScenario(scenarioPath("two-principals"))
	require.NoError(t, err)

	assert.Equal(t, "two-principals", s.Name)
	assert.Equal(t, []string{"alice", "bob"}, s.Principals)
	assert.Len(t, s.Labels, 4)
	assert.Len(t, s.Checks, 7)
	assert.Equal(t, Check{LHS: "alice", Relation: "flows-to", RHS: "bob", Expect: false}, s.Checks[0])
}

func TestLoadScenarioErrors(t *testing.T) {
	_, err := LoadScenario(filepath.Join("testdata", "scenarios", "missing.yaml"))
	assert.Error(t, err)
}

func TestScenarioChecks(t *testing.T) {
	for _, name := range []string{"two-principals", "extrema"} {
		t.Run(name, func(t *testing.T) {
			h := Load(t, scenarioPath(name))
			h.RunChecks(t)
		})
	}
}

func TestScenarioGolden(t *testing.T) {
	for _, name := range []string{"two-principals", "extrema"} {
		t.Run(name, func(t *testing.T) {
			h := Load(t, scenarioPath(name))
			h.AssertGolden(t)
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	h := Load(t, scenarioPath("two-principals"))

	_, err := h.Evaluate(Check{LHS: "mallory", Relation: "flows-to", RHS: "alice"})
	assert.Error(t, err)
	_, err = h.Evaluate(Check{LHS: "alice", Relation: "flows-to", RHS: "mallory"})
	assert.Error(t, err)
	_, err = h.Evaluate(Check{LHS: "alice", Relation: "subsumes", RHS: "bob"})
	assert.Error(t, err)
}
