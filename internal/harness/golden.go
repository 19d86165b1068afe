package harness

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Snapshot renders the scenario's labels and the complete ordered-pair
// relation matrix as stable text.
func (h *Harness) Snapshot() string {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario: %s\n", h.Scenario.Name)
	fmt.Fprintf(&b, "universe: %d principal(s)\n\n", len(h.Model.Principals))

	for _, spec := range h.Model.Labels {
		fmt.Fprintf(&b, "%s = %s\n", spec.Name, h.Labels[spec.Name].Render(h.Store))
	}
	b.WriteByte('\n')

	for _, lhs := range h.Model.Labels {
		for _, rhs := range h.Model.Labels {
			l, r := h.Labels[lhs.Name], h.Labels[rhs.Name]
			fmt.Fprintf(&b, "%s flows-to %s: %t\n", lhs.Name, rhs.Name, l.FlowsTo(h.Store, r))
			fmt.Fprintf(&b, "%s acts-for %s: %t\n", lhs.Name, rhs.Name, l.ActsFor(h.Store, r))
		}
	}
	return b.String()
}

// AssertGolden compares the snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func (h *Harness) AssertGolden(t *testing.T) {
	t.Helper()
	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"))
	g.Assert(t, h.Scenario.Name, []byte(h.Snapshot()))
}
