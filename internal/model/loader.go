package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// LoadError is a typed loading/validation failure.
type LoadError struct {
	Code    string
	Path    string
	Message string
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error code constants - unified across both model formats.
const (
	ErrCodeGeneric  = "E001" // Generic/unknown error
	ErrCodeNotFound = "E002" // Model file not found
	ErrCodeRead     = "E003" // File read error
	ErrCodeFormat   = "E004" // Unsupported file extension
	ErrCodeParse    = "E005" // Syntax error in model file

	// Model validation errors
	ErrCodeNoPrincipals       = "E101" // Empty principal universe
	ErrCodeDuplicatePrincipal = "E102" // Duplicate principal name
	ErrCodeUnknownPrincipal   = "E103" // Label references undeclared principal
	ErrCodeDuplicateLabel     = "E104" // Duplicate label name
	ErrCodeBadKind            = "E105" // Unknown label kind
	ErrCodeBadPair            = "E106" // Incomplete pair components
)

// Load reads and validates a model file, dispatching on its extension
// (.xml or .cue). All principal and label names are NFC-normalized at
// this boundary so lookups downstream are exact.
func Load(path string) (*Model, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Path: path, Message: "model file does not exist"}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeRead, Path: path, Message: fmt.Sprintf("error accessing model file: %v", err)}
	}
	if info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Path: path, Message: "model path is a directory"}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeRead, Path: path, Message: fmt.Sprintf("error reading model file: %v", err)}
	}

	var m *Model
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		m, err = parseXML(path, data)
	case ".cue":
		m, err = parseCUE(path, data)
	default:
		return nil, &LoadError{Code: ErrCodeFormat, Path: path, Message: fmt.Sprintf("unsupported model format %q (want .xml or .cue)", filepath.Ext(path))}
	}
	if err != nil {
		return nil, err
	}

	m.normalize()

	if err := m.Validate(); err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return nil, le
		}
		return nil, err
	}
	return m, nil
}

// ResolveSpec turns the raw attributes of a label entry into a
// LabelSpec. Shared by both formats: an explicit constant kind stands
// alone, a single principal fills both components, and otherwise both
// components must be named.
func ResolveSpec(name, kind, principal, conf, integ string) (LabelSpec, error) {
	switch {
	case kind != "" && kind != KindPair:
		if !ValidKinds[kind] {
			return LabelSpec{}, &LoadError{Code: ErrCodeBadKind, Message: fmt.Sprintf("label %q: unknown kind %q", name, kind)}
		}
		if principal != "" || conf != "" || integ != "" {
			return LabelSpec{}, &LoadError{Code: ErrCodeBadPair, Message: fmt.Sprintf("label %q: kind %q takes no principals", name, kind)}
		}
		return LabelSpec{Name: name, Kind: kind}, nil
	case principal != "":
		if conf != "" || integ != "" {
			return LabelSpec{}, &LoadError{Code: ErrCodeBadPair, Message: fmt.Sprintf("label %q: principal and confidentiality/integrity are mutually exclusive", name)}
		}
		return LabelSpec{Name: name, Kind: KindPair, Confidentiality: principal, Integrity: principal}, nil
	case conf != "" && integ != "":
		return LabelSpec{Name: name, Kind: KindPair, Confidentiality: conf, Integrity: integ}, nil
	default:
		return LabelSpec{}, &LoadError{Code: ErrCodeBadPair, Message: fmt.Sprintf("label %q: need a kind, a principal, or both confidentiality and integrity", name)}
	}
}

// normalize NFC-normalizes every name in the model.
func (m *Model) normalize() {
	for i, p := range m.Principals {
		m.Principals[i] = norm.NFC.String(p)
	}
	for i := range m.Labels {
		m.Labels[i].Name = norm.NFC.String(m.Labels[i].Name)
		m.Labels[i].Confidentiality = norm.NFC.String(m.Labels[i].Confidentiality)
		m.Labels[i].Integrity = norm.NFC.String(m.Labels[i].Integrity)
	}
}
