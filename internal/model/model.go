package model

import (
	"fmt"

	"github.com/troupe-ifc/flam/internal/formula"
	"github.com/troupe-ifc/flam/internal/label"
)

// Label kinds. KindPair labels name their component principals; the
// remaining kinds are the lattice constants.
const (
	KindPair = "pair"
	KindTop  = "top"
	KindBot  = "bot"
	KindNil  = "nil"
	KindRoot = "root"
)

// ValidKinds defines the allowed label kinds.
var ValidKinds = map[string]bool{
	KindPair: true,
	KindTop:  true,
	KindBot:  true,
	KindNil:  true,
	KindRoot: true,
}

// Model is a loaded label model. Principal order is document order and
// fixes the variable ids in the formula store.
type Model struct {
	// Principals holds the principal names; the index is the id.
	Principals []string

	// Labels holds the named label specs in document order.
	Labels []LabelSpec
}

// LabelSpec describes one named label.
type LabelSpec struct {
	Name string
	Kind string

	// Confidentiality and Integrity are principal names; set only for
	// KindPair.
	Confidentiality string
	Integrity       string
}

// PrincipalID returns the id of a named principal.
func (m *Model) PrincipalID(name string) (label.Principal, bool) {
	for id, p := range m.Principals {
		if p == name {
			return label.Principal(id), true
		}
	}
	return 0, false
}

// Validate checks internal consistency: a nonempty principal universe,
// no duplicate principal or label names, known kinds, and pair
// components that reference declared principals.
func (m *Model) Validate() error {
	if len(m.Principals) == 0 {
		return &LoadError{Code: ErrCodeNoPrincipals, Message: "model declares no principals"}
	}

	seen := make(map[string]bool, len(m.Principals))
	for _, p := range m.Principals {
		if p == "" {
			return &LoadError{Code: ErrCodeDuplicatePrincipal, Message: "principal with empty name"}
		}
		if seen[p] {
			return &LoadError{Code: ErrCodeDuplicatePrincipal, Message: fmt.Sprintf("duplicate principal %q", p)}
		}
		seen[p] = true
	}

	names := make(map[string]bool, len(m.Labels))
	for _, l := range m.Labels {
		if l.Name == "" {
			return &LoadError{Code: ErrCodeDuplicateLabel, Message: "label with empty name"}
		}
		if names[l.Name] {
			return &LoadError{Code: ErrCodeDuplicateLabel, Message: fmt.Sprintf("duplicate label %q", l.Name)}
		}
		names[l.Name] = true

		if !ValidKinds[l.Kind] {
			return &LoadError{Code: ErrCodeBadKind, Message: fmt.Sprintf("label %q: unknown kind %q", l.Name, l.Kind)}
		}
		if l.Kind == KindPair {
			if !seen[l.Confidentiality] {
				return &LoadError{Code: ErrCodeUnknownPrincipal, Message: fmt.Sprintf("label %q: unknown principal %q", l.Name, l.Confidentiality)}
			}
			if !seen[l.Integrity] {
				return &LoadError{Code: ErrCodeUnknownPrincipal, Message: fmt.Sprintf("label %q: unknown principal %q", l.Name, l.Integrity)}
			}
		}
	}
	return nil
}

// Build constructs every label of the model against st. st must have
// been created with a universe of at least len(Principals) variables.
func (m *Model) Build(st formula.Store) (map[string]label.Label, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	out := make(map[string]label.Label, len(m.Labels))
	for _, spec := range m.Labels {
		switch spec.Kind {
		case KindTop:
			out[spec.Name] = label.Top(st)
		case KindBot:
			out[spec.Name] = label.Bot(st)
		case KindNil:
			out[spec.Name] = label.Nil(st)
		case KindRoot:
			out[spec.Name] = label.Root(st)
		case KindPair:
			conf, _ := m.PrincipalID(spec.Confidentiality)
			integ, _ := m.PrincipalID(spec.Integrity)
			out[spec.Name] = label.NewPair(st, conf, integ)
		}
	}
	return out, nil
}
