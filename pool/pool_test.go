package pool_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/adaptgo/operator"
	"github.com/hupe1980/adaptgo/pool"
)

func TestNewDeduplicatesByKey(t *testing.T) {
	y0 := operator.Scale(1, operator.SingleY(0, 2))
	y1 := operator.Scale(1, operator.SingleY(1, 2))

	p, err := pool.New(2, y0, y1, y0)
	require.NoError(t, err)

	assert.Equal(t, 2, p.Len())
	assert.Equal(t, operator.Generator(y0), p.Generator(0))
	assert.Equal(t, operator.Generator(y1), p.Generator(1))
}

func TestNewEmpty(t *testing.T) {
	_, err := pool.New(2)
	require.ErrorIs(t, err, pool.ErrEmptyPool)

	// All duplicates collapsing to nothing new still leaves one candidate.
	y := operator.Scale(1, operator.SingleY(0, 2))
	p, err := pool.New(2, y, y, y)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Len())
}

func TestNewQubitMismatch(t *testing.T) {
	_, err := pool.New(3, operator.Scale(1, operator.SingleY(0, 2)))
	assert.Error(t, err)
}

func TestGeneratorsReturnsCopy(t *testing.T) {
	p, err := pool.SingleQubitY(3)
	require.NoError(t, err)

	gens := p.Generators()
	gens[0] = operator.Scale(1, operator.SingleX(0, 3))

	assert.Equal(t, operator.Generator(operator.Scale(1, operator.SingleY(0, 3))), p.Generator(0))
}

func TestSingleQubitY(t *testing.T) {
	p, err := pool.SingleQubitY(4)
	require.NoError(t, err)

	require.Equal(t, 4, p.Len())
	for i := 0; i < 4; i++ {
		sp, ok := p.Generator(i).(operator.ScaledPauli)
		require.True(t, ok)
		assert.Equal(t, operator.SingleY(i, 4), sp.Word)
	}
}

func TestTwoLocalSize(t *testing.T) {
	n := 4
	p, err := pool.TwoLocal(n)
	require.NoError(t, err)

	// n singles + 2 per unordered pair.
	assert.Equal(t, n+n*(n-1), p.Len())
}

func TestQAOADoubleSizeAndContent(t *testing.T) {
	n := 3
	p, err := pool.QAOADouble(n)
	require.NoError(t, err)

	// Global mixer + 2n singles + 4 per unordered pair.
	assert.Equal(t, 1+2*n+2*n*(n-1), p.Len())

	_, ok := p.Generator(0).(operator.CommutingSum)
	assert.True(t, ok, "first candidate is the global transverse-field mixer")

	for i := 1; i < p.Len(); i++ {
		_, ok := p.Generator(i).(operator.ScaledPauli)
		assert.True(t, ok)
	}
}

func TestErdosRenyiDeterministic(t *testing.T) {
	a := pool.ErdosRenyi(6, 0.5, 0)
	b := pool.ErdosRenyi(6, 0.5, 0)
	assert.Equal(t, a, b)

	full := pool.ErdosRenyi(5, 1.0, 7)
	assert.Len(t, full.Edges, 10)

	empty := pool.ErdosRenyi(5, 0.0, 7)
	assert.Empty(t, empty.Edges)
}

func TestMaxCutHamiltonian(t *testing.T) {
	g := pool.Graph{N: 3, Edges: []pool.Edge{{A: 0, B: 1, Weight: 1}, {A: 1, B: 2, Weight: 2}}}

	h, err := pool.MaxCutHamiltonian(g)
	require.NoError(t, err)

	require.Len(t, h.Terms(), 2)
	assert.True(t, h.Diagonal())

	_, err = pool.MaxCutHamiltonian(pool.Graph{N: 3})
	assert.Error(t, err)

	_, err = pool.MaxCutHamiltonian(pool.Graph{N: 2, Edges: []pool.Edge{{A: 0, B: 5, Weight: 1}}})
	assert.Error(t, err)
}
