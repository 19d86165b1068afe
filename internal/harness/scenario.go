package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/troupe-ifc/flam/internal/model"
)

// Scenario is a YAML-described label model plus expected relation
// outcomes.
type Scenario struct {
	Name       string       `yaml:"name"`
	Principals []string     `yaml:"principals"`
	Labels     []LabelEntry `yaml:"labels"`
	Checks     []Check      `yaml:"checks"`
}

// LabelEntry mirrors the model formats' label attributes.
type LabelEntry struct {
	Name            string `yaml:"name"`
	Kind            string `yaml:"kind,omitempty"`
	Principal       string `yaml:"principal,omitempty"`
	Confidentiality string `yaml:"confidentiality,omitempty"`
	Integrity       string `yaml:"integrity,omitempty"`
}

// Check is one expected relation outcome.
type Check struct {
	LHS      string `yaml:"lhs"`
	Relation string `yaml:"relation"` // "flows-to" | "acts-for"
	RHS      string `yaml:"rhs"`
	Expect   bool   `yaml:"expect"`
}

// LoadScenario reads a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s has no name", path)
	}
	return &s, nil
}

// Model converts the scenario's declarations into a label model.
func (s *Scenario) Model() (*model.Model, error) {
	m := &model.Model{Principals: append([]string(nil), s.Principals...)}
	for _, entry := range s.Labels {
		spec, err := model.ResolveSpec(entry.Name, entry.Kind, entry.Principal, entry.Confidentiality, entry.Integrity)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
		}
		m.Labels = append(m.Labels, spec)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return m, nil
}
