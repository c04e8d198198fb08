package adaptgo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/adaptgo"
	"github.com/hupe1980/adaptgo/ansatz"
	"github.com/hupe1980/adaptgo/core"
	"github.com/hupe1980/adaptgo/operator"
	"github.com/hupe1980/adaptgo/pool"
	"github.com/hupe1980/adaptgo/state"
	"github.com/hupe1980/adaptgo/testutil"
)

func TestValidateBasicCombination(t *testing.T) {
	rng := testutil.NewRNG(7)
	n := 3

	obs := testutil.RandomPauliSum(rng, n, 6)
	ref := testutil.RandomState(rng, n)

	a := ansatz.NewBasic(n)
	require.NoError(t, a.Append(
		[]operator.Generator{
			operator.Scale(0.8, testutil.RandomPauli(rng, n)),
			operator.Scale(-0.4, testutil.RandomPauli(rng, n)),
			operator.Scale(1.2, testutil.RandomPauli(rng, n)),
		},
		[]core.Parameter{0.3, -0.7, 0.5},
	))

	pl, err := pool.TwoLocal(n)
	require.NoError(t, err)

	err = adaptgo.Validate(context.Background(), a, pl, obs, ref, adaptgo.DefaultTolerances())
	assert.NoError(t, err)
}

func TestValidateQAOACombination(t *testing.T) {
	n := 4
	g := pool.ErdosRenyi(n, 0.8, 3)
	require.NotEmpty(t, g.Edges)

	h, err := pool.MaxCutHamiltonian(g)
	require.NoError(t, err)

	a, err := ansatz.NewQAOA(h, 0.01)
	require.NoError(t, err)
	require.NoError(t, a.Append(
		[]operator.Generator{operator.Scale(1, operator.SingleX(0, n))},
		[]core.Parameter{0.4},
	))

	pl, err := pool.QAOADouble(n)
	require.NoError(t, err)

	err = adaptgo.Validate(context.Background(), a, pl, h, state.NewUniformVector(n), adaptgo.DefaultTolerances())
	assert.NoError(t, err)
}

func TestValidateSurfacesNotImplemented(t *testing.T) {
	n := 2
	obs := mustPauliSum(t,
		operator.Scale(1, operator.SingleX(0, n)),
		operator.Scale(1, operator.SingleZ(0, n)),
	)

	// A non-commuting sum generator has no sparse rotation path.
	a := ansatz.NewBasic(n)
	require.NoError(t, a.Append([]operator.Generator{obs}, []core.Parameter{0.3}))

	pl, err := pool.SingleQubitY(n)
	require.NoError(t, err)

	err = adaptgo.Validate(context.Background(), a, pl, obs, state.NewMap(n), adaptgo.DefaultTolerances())
	require.Error(t, err)
	assert.ErrorIs(t, err, adaptgo.ErrNotImplemented)
}

func TestValidateReportsDeviation(t *testing.T) {
	obs, pl := transverseField(t)

	a := ansatz.NewBasic(2)
	require.NoError(t, a.Append(
		[]operator.Generator{operator.Scale(1, operator.SingleY(0, 2))},
		[]core.Parameter{0.5},
	))

	// An unreachable tolerance turns the zero deviation of the first check
	// into a reported failure.
	tol := adaptgo.DefaultTolerances()
	tol.Evolve = -1

	err := adaptgo.Validate(context.Background(), a, pl, obs, state.NewVector(2), tol)
	var ev *adaptgo.ErrValidation
	require.ErrorAs(t, err, &ev)
	assert.Equal(t, "evolve vs evolve-in-place", ev.Check)
	assert.Equal(t, float64(-1), ev.Tolerance)
}
