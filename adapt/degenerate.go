package adapt

import (
	"context"
	"math"
	"math/rand"

	"github.com/hupe1980/adaptgo/ansatz"
	"github.com/hupe1980/adaptgo/callback"
	"github.com/hupe1980/adaptgo/core"
	"github.com/hupe1980/adaptgo/operator"
	"github.com/hupe1980/adaptgo/pool"
	"github.com/hupe1980/adaptgo/state"
	"github.com/hupe1980/adaptgo/trace"
)

// Degenerate is Vanilla with randomized tie-breaking: when several candidates
// share the exact largest magnitude, one is drawn uniformly from a seeded
// source instead of taking the first. Symmetric problems otherwise bias the
// ansatz toward low pool indices.
type Degenerate struct {
	// Epsilon is the exhaustion threshold; non-positive selects the default.
	Epsilon core.Score

	rng *rand.Rand
}

var _ Protocol = (*Degenerate)(nil)

// NewDegenerate returns a Degenerate protocol drawing ties from seed.
func NewDegenerate(epsilon core.Score, seed int64) *Degenerate {
	return &Degenerate{
		Epsilon: epsilon,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

func (dg *Degenerate) epsilon() core.Score {
	if dg.Epsilon > 0 {
		return dg.Epsilon
	}
	return defaultEpsilon
}

// Adapt implements Protocol.
func (dg *Degenerate) Adapt(ctx context.Context, a ansatz.Ansatz, pl *pool.Pool, obs operator.Observable, ref state.State, cbs []callback.Callback, tr *trace.Trace) (bool, error) {
	scores, err := Scores(ctx, a, pl, obs, ref)
	if err != nil {
		return false, err
	}

	best, _ := maxAbsScore(scores)
	if best < dg.epsilon() {
		a.SetConverged(true)
		return false, nil
	}

	var tied []int
	for i, s := range scores {
		if math.Abs(s) == best {
			tied = append(tied, i)
		}
	}
	idx := tied[dg.rng.Intn(len(tied))]

	gens := []operator.Generator{pl.Generator(idx)}
	params := []core.Parameter{0}

	d := callback.NewAdaptationData(scores, []int{idx}, gens, params)
	if callback.RunAdaptation(cbs, d, a, tr) || a.Converged() {
		return false, nil
	}

	if err := a.Append(gens, params); err != nil {
		return false, err
	}
	return true, nil
}
