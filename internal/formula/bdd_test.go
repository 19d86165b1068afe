package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBDDUniverseBounds(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		wantErr bool
	}{
		{"zero", 0, true},
		{"negative", -1, true},
		{"one", 1, false},
		{"two", 2, false},
		{"max", 63, false},
		{"too large", 64, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewBDD(tt.n)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUniverseSize)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.n, s.Universe())
		})
	}
}

func TestBDDCanonicalHandles(t *testing.T) {
	s, err := NewBDD(3)
	require.NoError(t, err)

	a := s.Variable(0)
	b := s.Variable(1)

	// Logically equal constructions yield identical handles.
	assert.Equal(t, s.And(a, b), s.And(b, a))
	assert.Equal(t, s.Or(a, b), s.Or(b, a))
	assert.Equal(t, a, s.And(a, a))
	assert.Equal(t, a, s.Or(a, a))
	assert.Equal(t, a, s.Variable(0))

	// Absorption: a AND (a OR b) == a, a OR (a AND b) == a.
	assert.Equal(t, a, s.And(a, s.Or(a, b)))
	assert.Equal(t, a, s.Or(a, s.And(a, b)))

	// Constants absorb and annihilate.
	assert.Equal(t, s.Bottom(), s.And(a, s.Bottom()))
	assert.Equal(t, a, s.And(a, s.Top()))
	assert.Equal(t, s.Top(), s.Or(a, s.Top()))
	assert.Equal(t, a, s.Or(a, s.Bottom()))
}

func TestBDDImplies(t *testing.T) {
	s, err := NewBDD(3)
	require.NoError(t, err)

	a := s.Variable(0)
	b := s.Variable(1)
	ab := s.And(a, b)
	aOrB := s.Or(a, b)

	tests := []struct {
		name string
		x, y Formula
		want bool
	}{
		{"reflexive", a, a, true},
		{"and implies conjunct", ab, a, true},
		{"conjunct does not imply and", a, ab, false},
		{"disjunct implies or", a, aOrB, true},
		{"or does not imply disjunct", aOrB, a, false},
		{"and implies or", ab, aOrB, true},
		{"distinct vars unrelated", a, b, false},
		{"bottom implies anything", s.Bottom(), a, true},
		{"anything implies top", ab, s.Top(), true},
		{"top implies var fails", s.Top(), a, false},
		{"var implies bottom fails", a, s.Bottom(), false},
		{"bottom implies bottom", s.Bottom(), s.Bottom(), true},
		{"top implies top", s.Top(), s.Top(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Implies(tt.x, tt.y))
		})
	}
}

func TestBDDMetrics(t *testing.T) {
	s, err := NewBDD(2)
	require.NoError(t, err)

	a := s.Variable(0)
	b := s.Variable(1)

	tests := []struct {
		name      string
		f         Formula
		nodeCount int
		satCount  uint64
	}{
		{"bottom", s.Bottom(), 1, 0},
		{"top", s.Top(), 1, 4},
		{"single var", a, 1, 2},
		{"a and b", s.And(a, b), 2, 1},
		{"a or b", s.Or(a, b), 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := s.Metrics(tt.f)
			assert.Equal(t, tt.nodeCount, m.NodeCount, "node count")
			assert.Equal(t, tt.satCount, m.SatCount, "sat count")
		})
	}
}

func TestBDDUnknownPrincipalPanics(t *testing.T) {
	s, err := NewBDD(2)
	require.NoError(t, err)

	assert.PanicsWithError(t, "formula: principal not declared in this store: id 2 (universe 2)", func() {
		s.Variable(2)
	})
	assert.Panics(t, func() { s.Variable(-1) })
}

func TestBDDForeignHandlePanics(t *testing.T) {
	s1, err := NewBDD(2)
	require.NoError(t, err)
	s2, err := NewBDD(2)
	require.NoError(t, err)

	a := s1.Variable(0)
	b := s2.Variable(0)

	assert.Panics(t, func() { s1.And(a, b) })
	assert.Panics(t, func() { s1.Implies(b, a) })
	assert.Panics(t, func() { s2.Metrics(a) })
}
