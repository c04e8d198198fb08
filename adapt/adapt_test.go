package adapt_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/adaptgo/adapt"
	"github.com/hupe1980/adaptgo/ansatz"
	"github.com/hupe1980/adaptgo/callback"
	"github.com/hupe1980/adaptgo/core"
	"github.com/hupe1980/adaptgo/evolve"
	"github.com/hupe1980/adaptgo/operator"
	"github.com/hupe1980/adaptgo/pool"
	"github.com/hupe1980/adaptgo/state"
	"github.com/hupe1980/adaptgo/testutil"
	"github.com/hupe1980/adaptgo/trace"
)

// counter tallies pipeline invocations; terminate forces a stop signal.
type counter struct {
	iterations  int
	adaptations int
	terminate   bool
	setConverge bool
}

func (c *counter) OnIteration(*callback.Data, ansatz.Ansatz, *trace.Trace) bool {
	c.iterations++
	return c.terminate
}

func (c *counter) OnAdaptation(_ *callback.Data, a ansatz.Ansatz, _ *trace.Trace) bool {
	c.adaptations++
	if c.setConverge {
		a.SetConverged(true)
	}
	return c.terminate
}

func mustPauliSum(t *testing.T, terms ...operator.ScaledPauli) *operator.PauliSum {
	t.Helper()

	ps, err := operator.NewPauliSum(terms)
	require.NoError(t, err)

	return ps
}

func mustPool(t *testing.T, n int, gens ...operator.Generator) *pool.Pool {
	t.Helper()

	p, err := pool.New(n, gens...)
	require.NoError(t, err)

	return p
}

func TestScoresExactValues(t *testing.T) {
	n := 2
	obs := mustPauliSum(t,
		operator.Scale(1, operator.SingleX(0, n)),
		operator.Scale(0.5, operator.SingleX(1, n)),
	)
	pl := mustPool(t, n,
		operator.Scale(1, operator.SingleY(0, n)),
		operator.Scale(1, operator.SingleY(1, n)),
	)

	scores, err := adapt.Scores(context.Background(), ansatz.NewBasic(n), pl, obs, state.NewVector(n))
	require.NoError(t, err)

	require.Len(t, scores, 2)
	assert.InDelta(t, 2.0, scores[0], 1e-12)
	assert.InDelta(t, 1.0, scores[1], 1e-12)
}

func TestScoresMatchAppendedPartial(t *testing.T) {
	rng := testutil.NewRNG(53)
	n := 3

	obs := testutil.RandomPauliSum(rng, n, 5)
	ref := testutil.RandomState(rng, n)

	a := ansatz.NewBasic(n)
	require.NoError(t, a.Append(
		[]operator.Generator{
			operator.Scale(0.7, testutil.RandomPauli(rng, n)),
			operator.Scale(-0.3, testutil.RandomPauli(rng, n)),
		},
		[]core.Parameter{0.4, 0.9},
	))

	pl := mustPool(t, n,
		operator.Scale(1, testutil.RandomPauli(rng, n)),
		operator.Scale(1, testutil.RandomPauli(rng, n)),
		operator.Scale(1, testutil.RandomPauli(rng, n)),
	)

	scores, err := adapt.Scores(context.Background(), a, pl, obs, ref)
	require.NoError(t, err)

	// Each score equals the gradient the candidate would have if appended
	// with parameter zero.
	for i := 0; i < pl.Len(); i++ {
		probe := ansatz.NewBasic(n)
		require.NoError(t, probe.Append(append([]operator.Generator{}, pickGens(a)...), a.Angles()))
		require.NoError(t, probe.Append([]operator.Generator{pl.Generator(i)}, []core.Parameter{0}))

		p, err := evolve.Partial(probe.Len()-1, probe, obs, ref)
		require.NoError(t, err)
		assert.InDelta(t, p, scores[i], 1e-10, "candidate %d", i)
	}
}

func pickGens(a *ansatz.Basic) []operator.Generator {
	gens := make([]operator.Generator, a.Len())
	for i := range gens {
		gens[i] = a.Generator(i)
	}
	return gens
}

func TestScoresEmptyPool(t *testing.T) {
	_, err := adapt.Scores(context.Background(), ansatz.NewBasic(2), nil, mustPauliSum(t, operator.Scale(1, operator.SingleZ(0, 2))), state.NewVector(2))
	require.ErrorIs(t, err, pool.ErrEmptyPool)
}

// scoringSpy observes whether the extension point is preferred over plain
// evolution.
type scoringSpy struct {
	*ansatz.Basic
	called bool
}

func (s *scoringSpy) ScoringState(ref state.State) (state.State, error) {
	s.called = true
	return evolve.Evolve(s.Basic, ref)
}

func TestScoresUsesScoringStateExtension(t *testing.T) {
	n := 2
	spy := &scoringSpy{Basic: ansatz.NewBasic(n)}
	pl := mustPool(t, n, operator.Scale(1, operator.SingleY(0, n)))
	obs := mustPauliSum(t, operator.Scale(1, operator.SingleX(0, n)))

	_, err := adapt.Scores(context.Background(), spy, pl, obs, state.NewVector(n))
	require.NoError(t, err)
	assert.True(t, spy.called)
}

func TestVanillaSelectsLargestScore(t *testing.T) {
	n := 2
	obs := mustPauliSum(t,
		operator.Scale(1, operator.SingleX(0, n)),
		operator.Scale(0.5, operator.SingleX(1, n)),
	)
	pl := mustPool(t, n,
		operator.Scale(1, operator.SingleY(1, n)),
		operator.Scale(1, operator.SingleY(0, n)),
	)

	a := ansatz.NewBasic(n)
	a.SetOptimized(true)
	cb := &counter{}

	made, err := adapt.Vanilla{}.Adapt(context.Background(), a, pl, obs, state.NewVector(n), []callback.Callback{cb}, trace.New())
	require.NoError(t, err)

	assert.True(t, made)
	require.Equal(t, 1, a.Len())
	g, theta := a.Rotation(0)
	assert.Equal(t, operator.Scale(1, operator.SingleY(0, n)), g)
	assert.Equal(t, core.Parameter(0), theta)
	assert.False(t, a.Optimized(), "append clears the optimized flag")
	assert.Equal(t, 1, cb.adaptations)
	assert.Equal(t, 0, cb.iterations)
}

func TestVanillaTieBreaksByFirstOccurrence(t *testing.T) {
	n := 2
	obs := mustPauliSum(t,
		operator.Scale(1, operator.SingleX(0, n)),
		operator.Scale(1, operator.SingleX(1, n)),
	)
	pl := mustPool(t, n,
		operator.Scale(1, operator.SingleY(0, n)),
		operator.Scale(1, operator.SingleY(1, n)),
	)

	a := ansatz.NewBasic(n)
	made, err := adapt.Vanilla{}.Adapt(context.Background(), a, pl, obs, state.NewVector(n), nil, trace.New())
	require.NoError(t, err)

	assert.True(t, made)
	require.Equal(t, 1, a.Len())
	g, _ := a.Rotation(0)
	assert.Equal(t, operator.Scale(1, operator.SingleY(0, n)), g)
}

func TestVanillaConvergenceByExhaustionSkipsCallbacks(t *testing.T) {
	n := 2
	// Every candidate commutes with the observable and the reference is an
	// eigenstate, so all scores vanish identically.
	obs := mustPauliSum(t,
		operator.Scale(1, operator.SingleZ(0, n)),
		operator.Scale(1, operator.SingleZ(1, n)),
	)
	pl := mustPool(t, n,
		operator.Scale(1, operator.SingleZ(0, n)),
		operator.Scale(1, operator.ZZ(0, 1, n)),
	)

	a := ansatz.NewBasic(n)
	cb := &counter{}

	made, err := adapt.Vanilla{}.Adapt(context.Background(), a, pl, obs, state.NewVector(n), []callback.Callback{cb}, trace.New())
	require.NoError(t, err)

	assert.False(t, made)
	assert.True(t, a.Converged())
	assert.Equal(t, 0, a.Len())
	assert.Equal(t, 0, cb.adaptations, "exhaustion must bypass the callback pipeline entirely")
	assert.Equal(t, 0, cb.iterations)
}

func TestVanillaCallbackTerminationAborts(t *testing.T) {
	n := 2
	obs := mustPauliSum(t, operator.Scale(1, operator.SingleX(0, n)))
	pl := mustPool(t, n, operator.Scale(1, operator.SingleY(0, n)))

	a := ansatz.NewBasic(n)
	cb := &counter{terminate: true}

	made, err := adapt.Vanilla{}.Adapt(context.Background(), a, pl, obs, state.NewVector(n), []callback.Callback{cb}, trace.New())
	require.NoError(t, err)

	assert.False(t, made)
	assert.Equal(t, 0, a.Len(), "termination aborts before mutation")
	assert.False(t, a.Converged())
}

func TestVanillaCallbackConvergenceAborts(t *testing.T) {
	n := 2
	obs := mustPauliSum(t, operator.Scale(1, operator.SingleX(0, n)))
	pl := mustPool(t, n, operator.Scale(1, operator.SingleY(0, n)))

	a := ansatz.NewBasic(n)
	cb := &counter{setConverge: true}

	made, err := adapt.Vanilla{}.Adapt(context.Background(), a, pl, obs, state.NewVector(n), []callback.Callback{cb}, trace.New())
	require.NoError(t, err)

	assert.False(t, made)
	assert.Equal(t, 0, a.Len())
	assert.True(t, a.Converged())
}

func TestTetrisSelectsDisjointSupports(t *testing.T) {
	n := 2
	obs := mustPauliSum(t,
		operator.Scale(1, operator.SingleX(0, n)),
		operator.Scale(1, operator.SingleX(1, n)),
	)
	// Candidate 1 overlaps both single-qubit candidates and must lose to the
	// earlier equal-magnitude candidate 0.
	twoQubit := operator.MustPauli("ZY")
	pl := mustPool(t, n,
		operator.Scale(1, operator.SingleY(1, n)),
		operator.Scale(1, twoQubit),
		operator.Scale(1, operator.SingleY(0, n)),
	)

	a := ansatz.NewBasic(n)
	made, err := adapt.Tetris{}.Adapt(context.Background(), a, pl, obs, state.NewVector(n), nil, trace.New())
	require.NoError(t, err)

	assert.True(t, made)
	require.Equal(t, 2, a.Len())

	g0, _ := a.Rotation(0)
	g1, _ := a.Rotation(1)
	assert.Equal(t, operator.Scale(1, operator.SingleY(1, n)), g0)
	assert.Equal(t, operator.Scale(1, operator.SingleY(0, n)), g1)
	assert.False(t, g0.Support().Intersects(g1.Support()))
}

func TestTetrisThresholdFilters(t *testing.T) {
	n := 2
	obs := mustPauliSum(t,
		operator.Scale(1, operator.SingleX(0, n)),
		operator.Scale(0.5, operator.SingleX(1, n)),
	)
	pl := mustPool(t, n,
		operator.Scale(1, operator.SingleY(0, n)),
		operator.Scale(1, operator.SingleY(1, n)),
	)

	a := ansatz.NewBasic(n)
	made, err := adapt.Tetris{Threshold: 1.5}.Adapt(context.Background(), a, pl, obs, state.NewVector(n), nil, trace.New())
	require.NoError(t, err)

	assert.True(t, made)
	require.Equal(t, 1, a.Len())
	g, _ := a.Rotation(0)
	assert.Equal(t, operator.Scale(1, operator.SingleY(0, n)), g)
}

func TestTetrisExhaustionSkipsCallbacks(t *testing.T) {
	n := 2
	obs := mustPauliSum(t, operator.Scale(1, operator.SingleZ(0, n)))
	pl := mustPool(t, n, operator.Scale(1, operator.SingleZ(1, n)))

	a := ansatz.NewBasic(n)
	cb := &counter{}

	made, err := adapt.Tetris{}.Adapt(context.Background(), a, pl, obs, state.NewVector(n), []callback.Callback{cb}, trace.New())
	require.NoError(t, err)

	assert.False(t, made)
	assert.True(t, a.Converged())
	assert.Equal(t, 0, cb.adaptations)
}

func TestDegenerateDeterministicPerSeed(t *testing.T) {
	n := 2
	obs := mustPauliSum(t,
		operator.Scale(1, operator.SingleX(0, n)),
		operator.Scale(1, operator.SingleX(1, n)),
	)

	pick := func(seed int64) operator.Generator {
		pl := mustPool(t, n,
			operator.Scale(1, operator.SingleY(0, n)),
			operator.Scale(1, operator.SingleY(1, n)),
		)
		a := ansatz.NewBasic(n)
		made, err := adapt.NewDegenerate(0, seed).Adapt(context.Background(), a, pl, obs, state.NewVector(n), nil, trace.New())
		require.NoError(t, err)
		require.True(t, made)
		g, _ := a.Rotation(0)
		return g
	}

	seen := map[string]bool{}
	for seed := int64(0); seed < 10; seed++ {
		first := pick(seed)
		assert.Equal(t, first, pick(seed), "same seed must select the same candidate")
		seen[first.Key()] = true
	}
	assert.Len(t, seen, 2, "across seeds both tied candidates should appear")
}
