package model

import (
	"errors"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// parseCUE reads the CUE model form:
//
//	principals: ["alice", "bob"]
//
//	label: secret: {principal: "alice"}
//	label: shared: {confidentiality: "alice", integrity: "bob"}
//	label: public: {kind: "bot"}
//
// The principals list fixes variable ids; label declaration order is
// preserved.
func parseCUE(path string, data []byte) (*Model, error) {
	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeParse, Path: path, Message: fmt.Sprintf("invalid CUE: %v", err)}
	}

	m := &Model{}

	principalsVal := value.LookupPath(cue.ParsePath("principals"))
	if principalsVal.Exists() {
		iter, err := principalsVal.List()
		if err != nil {
			return nil, &LoadError{Code: ErrCodeParse, Path: path, Message: fmt.Sprintf("principals must be a list of names: %v", err)}
		}
		for iter.Next() {
			name, err := iter.Value().String()
			if err != nil {
				return nil, &LoadError{Code: ErrCodeParse, Path: path, Message: fmt.Sprintf("principal name must be a string: %v", err)}
			}
			m.Principals = append(m.Principals, name)
		}
	}

	labelsVal := value.LookupPath(cue.ParsePath("label"))
	if labelsVal.Exists() {
		iter, err := labelsVal.Fields()
		if err != nil {
			return nil, &LoadError{Code: ErrCodeParse, Path: path, Message: fmt.Sprintf("iterating labels: %v", err)}
		}
		for iter.Next() {
			spec, err := compileCUELabel(iter.Label(), iter.Value())
			if err != nil {
				var le *LoadError
				if errors.As(err, &le) {
					le.Path = path
					return nil, le
				}
				return nil, &LoadError{Code: ErrCodeParse, Path: path, Message: err.Error()}
			}
			m.Labels = append(m.Labels, spec)
		}
	}

	return m, nil
}

// compileCUELabel turns one label entry into a LabelSpec.
func compileCUELabel(name string, entry cue.Value) (LabelSpec, error) {
	kind, err := cueString(entry, "kind")
	if err != nil {
		return LabelSpec{}, fmt.Errorf("label %q: %w", name, err)
	}
	principal, err := cueString(entry, "principal")
	if err != nil {
		return LabelSpec{}, fmt.Errorf("label %q: %w", name, err)
	}
	conf, err := cueString(entry, "confidentiality")
	if err != nil {
		return LabelSpec{}, fmt.Errorf("label %q: %w", name, err)
	}
	integ, err := cueString(entry, "integrity")
	if err != nil {
		return LabelSpec{}, fmt.Errorf("label %q: %w", name, err)
	}
	return ResolveSpec(name, kind, principal, conf, integ)
}

// cueString reads an optional string field; absence is the empty string.
func cueString(v cue.Value, field string) (string, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return "", nil
	}
	s, err := fv.String()
	if err != nil {
		return "", fmt.Errorf("field %q must be a string: %v", field, err)
	}
	return s, nil
}
