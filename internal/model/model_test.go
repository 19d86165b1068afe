package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/troupe-ifc/flam/internal/formula"
	"github.com/troupe-ifc/flam/internal/label"
)

func TestLoadXML(t *testing.T) {
	m, err := Load(filepath.Join("testdata", "two.xml"))
	require.NoError(t, err)

	assert.Equal(t, []string{"alice", "bob"}, m.Principals)
	require.Len(t, m.Labels, 5)
	assert.Equal(t, LabelSpec{Name: "alice", Kind: KindPair, Confidentiality: "alice", Integrity: "alice"}, m.Labels[0])
	assert.Equal(t, LabelSpec{Name: "shared", Kind: KindPair, Confidentiality: "alice", Integrity: "bob"}, m.Labels[2])
	assert.Equal(t, LabelSpec{Name: "secret", Kind: KindTop}, m.Labels[3])
	assert.Equal(t, LabelSpec{Name: "public", Kind: KindBot}, m.Labels[4])
}

func TestLoadCUE(t *testing.T) {
	xmlModel, err := Load(filepath.Join("testdata", "two.xml"))
	require.NoError(t, err)
	cueModel, err := Load(filepath.Join("testdata", "two.cue"))
	require.NoError(t, err)

	// Both formats describe the same model.
	assert.Equal(t, xmlModel, cueModel)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	tests := []struct {
		name string
		path string
		code string
	}{
		{"missing file", filepath.Join(dir, "nope.xml"), ErrCodeNotFound},
		{"directory", dir, ErrCodeNotFound},
		{"unsupported extension", write("model.toml", "x = 1"), ErrCodeFormat},
		{"broken xml", filepath.Join("testdata", "broken.xml"), ErrCodeParse},
		{"broken cue", write("model.cue", "principals: ["), ErrCodeParse},
		{"unknown principal", filepath.Join("testdata", "unknown-principal.xml"), ErrCodeUnknownPrincipal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			require.Error(t, err)
			var le *LoadError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, tt.code, le.Code)
		})
	}
}

func TestValidate(t *testing.T) {
	valid := Model{
		Principals: []string{"alice", "bob"},
		Labels: []LabelSpec{
			{Name: "a", Kind: KindPair, Confidentiality: "alice", Integrity: "bob"},
		},
	}

	tests := []struct {
		name   string
		mutate func(m *Model)
		code   string
	}{
		{"no principals", func(m *Model) { m.Principals = nil }, ErrCodeNoPrincipals},
		{"duplicate principal", func(m *Model) { m.Principals = []string{"alice", "alice"} }, ErrCodeDuplicatePrincipal},
		{"empty principal", func(m *Model) { m.Principals = []string{""} }, ErrCodeDuplicatePrincipal},
		{"duplicate label", func(m *Model) { m.Labels = append(m.Labels, m.Labels[0]) }, ErrCodeDuplicateLabel},
		{"bad kind", func(m *Model) { m.Labels[0].Kind = "lattice" }, ErrCodeBadKind},
		{"unknown conf principal", func(m *Model) { m.Labels[0].Confidentiality = "mallory" }, ErrCodeUnknownPrincipal},
		{"unknown integ principal", func(m *Model) { m.Labels[0].Integrity = "mallory" }, ErrCodeUnknownPrincipal},
	}

	require.NoError(t, valid.Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Model{
				Principals: append([]string(nil), valid.Principals...),
				Labels:     append([]LabelSpec(nil), valid.Labels...),
			}
			tt.mutate(&m)
			err := m.Validate()
			require.Error(t, err)
			var le *LoadError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, tt.code, le.Code)
		})
	}
}

func TestResolveSpec(t *testing.T) {
	tests := []struct {
		name                         string
		kind, principal, conf, integ string
		want                         LabelSpec
		wantCode                     string
	}{
		{name: "constant", kind: "root", want: LabelSpec{Name: "l", Kind: KindRoot}},
		{name: "single principal", principal: "p", want: LabelSpec{Name: "l", Kind: KindPair, Confidentiality: "p", Integrity: "p"}},
		{name: "explicit pair", conf: "a", integ: "b", want: LabelSpec{Name: "l", Kind: KindPair, Confidentiality: "a", Integrity: "b"}},
		{name: "pair kind with principal", kind: "pair", principal: "p", want: LabelSpec{Name: "l", Kind: KindPair, Confidentiality: "p", Integrity: "p"}},
		{name: "bad kind", kind: "secret", wantCode: ErrCodeBadKind},
		{name: "constant with principal", kind: "top", principal: "p", wantCode: ErrCodeBadPair},
		{name: "principal and pair", principal: "p", conf: "a", integ: "b", wantCode: ErrCodeBadPair},
		{name: "half a pair", conf: "a", wantCode: ErrCodeBadPair},
		{name: "nothing", wantCode: ErrCodeBadPair},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := ResolveSpec("l", tt.kind, tt.principal, tt.conf, tt.integ)
			if tt.wantCode != "" {
				var le *LoadError
				require.ErrorAs(t, err, &le)
				assert.Equal(t, tt.wantCode, le.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, spec)
		})
	}
}

func TestBuild(t *testing.T) {
	m, err := Load(filepath.Join("testdata", "two.xml"))
	require.NoError(t, err)

	st, err := formula.NewBDD(len(m.Principals))
	require.NoError(t, err)

	labels, err := m.Build(st)
	require.NoError(t, err)
	require.Len(t, labels, 5)

	alice := labels["alice"]
	bob := labels["bob"]
	assert.Equal(t, label.New(st, 0), alice)
	assert.Equal(t, label.New(st, 1), bob)
	assert.Equal(t, label.NewPair(st, 0, 1), labels["shared"])
	assert.Equal(t, label.Top(st), labels["secret"])
	assert.Equal(t, label.Bot(st), labels["public"])

	assert.False(t, alice.FlowsTo(st, bob))
	assert.True(t, labels["public"].FlowsTo(st, alice))
	assert.True(t, alice.FlowsTo(st, labels["secret"]))
}

func TestLoadNormalizesNames(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nfc.xml")
	// Principal declared decomposed (e + combining acute), referenced
	// precomposed; NFC normalization must unify them.
	content := "<model><principals><principal name=\"re\u0301a\"/></principals>" +
		"<labels><label name=\"l\" principal=\"r\u00e9a\"/></labels></model>"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"r\u00e9a"}, m.Principals)
	assert.Equal(t, "r\u00e9a", m.Labels[0].Confidentiality)
}
