package cli

import (
	"errors"
	"fmt"

	"github.com/troupe-ifc/flam/internal/formula"
	"github.com/troupe-ifc/flam/internal/label"
	"github.com/troupe-ifc/flam/internal/model"
)

// modelSession is a loaded model together with the formula store sized
// to its universe and the labels built against it. Every command works
// from one of these.
type modelSession struct {
	Model  *model.Model
	Store  formula.Store
	Labels map[string]label.Label
}

// loadModelSession loads the model named by -f and builds its labels.
// Load and build failures are command errors (exit code 2) carrying the
// loader's error code.
func loadModelSession(opts *RootOptions, formatter *OutputFormatter) (*modelSession, error) {
	m, err := model.Load(opts.ModelPath)
	if err != nil {
		return nil, commandError(formatter, err)
	}
	formatter.VerboseLog("loaded model %s: %d principal(s), %d label(s)",
		opts.ModelPath, len(m.Principals), len(m.Labels))

	st, err := formula.NewBDD(len(m.Principals))
	if err != nil {
		return nil, commandError(formatter, err)
	}

	labels, err := m.Build(st)
	if err != nil {
		return nil, commandError(formatter, err)
	}

	return &modelSession{Model: m, Store: st, Labels: labels}, nil
}

// commandError emits a formatted diagnostic and wraps err as a
// command-level ExitError.
func commandError(formatter *OutputFormatter, err error) error {
	code := model.ErrCodeGeneric
	var le *model.LoadError
	if errors.As(err, &le) {
		code = le.Code
	}
	_ = formatter.Error(code, err.Error())
	return WrapExitError(ExitCommandError, "command failed", err)
}

// lookupLabel resolves a label name from the model, failing with the
// list of known names.
func (s *modelSession) lookupLabel(name string) (label.Label, error) {
	l, ok := s.Labels[name]
	if !ok {
		names := make([]string, 0, len(s.Model.Labels))
		for _, spec := range s.Model.Labels {
			names = append(names, spec.Name)
		}
		return label.Label{}, fmt.Errorf("unknown label %q (model defines %v)", name, names)
	}
	return l, nil
}
