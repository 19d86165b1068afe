package formula

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildRandom constructs the same random monotone formula in every store,
// driven by a shared operation script so the stores stay in lockstep.
func buildRandom(rng *rand.Rand, depth int, stores []Store) []Formula {
	if depth == 0 {
		switch rng.Intn(6) {
		case 0:
			out := make([]Formula, len(stores))
			for i, s := range stores {
				out[i] = s.Bottom()
			}
			return out
		case 1:
			out := make([]Formula, len(stores))
			for i, s := range stores {
				out[i] = s.Top()
			}
			return out
		default:
			id := rng.Intn(stores[0].Universe())
			out := make([]Formula, len(stores))
			for i, s := range stores {
				out[i] = s.Variable(id)
			}
			return out
		}
	}

	lhs := buildRandom(rng, depth-1, stores)
	rhs := buildRandom(rng, depth-1, stores)
	conj := rng.Intn(2) == 0
	out := make([]Formula, len(stores))
	for i, s := range stores {
		if conj {
			out[i] = s.And(lhs[i], rhs[i])
		} else {
			out[i] = s.Or(lhs[i], rhs[i])
		}
	}
	return out
}

// TestBackendsAgree cross-checks the BDD against the truth-table backend
// on randomly built monotone formulas: satisfying-assignment counts and
// all pairwise implication answers must coincide.
func TestBackendsAgree(t *testing.T) {
	const universe = 5

	bdd, err := NewBDD(universe)
	require.NoError(t, err)
	table, err := NewTable(universe)
	require.NoError(t, err)
	stores := []Store{bdd, table}

	rng := rand.New(rand.NewSource(7))

	const samples = 40
	formulas := make([][]Formula, samples)
	for i := range formulas {
		formulas[i] = buildRandom(rng, 3, stores)
	}

	for i, fs := range formulas {
		assert.Equal(t,
			table.Metrics(fs[1]).SatCount,
			bdd.Metrics(fs[0]).SatCount,
			"sat count mismatch for formula %d", i)
	}

	for i, xs := range formulas {
		for j, ys := range formulas {
			assert.Equal(t,
				table.Implies(xs[1], ys[1]),
				bdd.Implies(xs[0], ys[0]),
				"implies mismatch for pair (%d, %d)", i, j)
		}
	}
}

func TestTableCanonicalHandles(t *testing.T) {
	s, err := NewTable(3)
	require.NoError(t, err)

	a := s.Variable(0)
	b := s.Variable(1)

	assert.Equal(t, s.And(a, b), s.And(b, a))
	assert.Equal(t, a, s.Or(a, s.And(a, b)))
	assert.Equal(t, s.Top(), s.Or(s.Top(), a))
}

func TestTableUniverseBounds(t *testing.T) {
	_, err := NewTable(0)
	assert.ErrorIs(t, err, ErrUniverseSize)
	_, err = NewTable(7)
	assert.ErrorIs(t, err, ErrUniverseSize)

	s, err := NewTable(6)
	require.NoError(t, err)
	assert.Equal(t, uint64(64), s.Metrics(s.Top()).SatCount)
}

func TestTableForeignHandlePanics(t *testing.T) {
	s1, err := NewTable(2)
	require.NoError(t, err)
	s2, err := NewTable(2)
	require.NoError(t, err)

	assert.Panics(t, func() { s1.Implies(s2.Top(), s1.Top()) })
}
