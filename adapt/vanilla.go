package adapt

import (
	"context"

	"github.com/hupe1980/adaptgo/ansatz"
	"github.com/hupe1980/adaptgo/callback"
	"github.com/hupe1980/adaptgo/core"
	"github.com/hupe1980/adaptgo/operator"
	"github.com/hupe1980/adaptgo/pool"
	"github.com/hupe1980/adaptgo/state"
	"github.com/hupe1980/adaptgo/trace"
)

// Vanilla is the standard ADAPT step: score every candidate, append the
// single largest-magnitude one with parameter zero.
//
// When every score magnitude is below Epsilon the step sets Converged and
// returns without growing the ansatz and without invoking any callback;
// exhaustion leaves nothing to report. Ties are broken by first occurrence.
type Vanilla struct {
	// Epsilon is the exhaustion threshold; non-positive selects the default.
	Epsilon core.Score
}

var _ Protocol = Vanilla{}

func (v Vanilla) epsilon() core.Score {
	if v.Epsilon > 0 {
		return v.Epsilon
	}
	return defaultEpsilon
}

// Adapt implements Protocol.
func (v Vanilla) Adapt(ctx context.Context, a ansatz.Ansatz, pl *pool.Pool, obs operator.Observable, ref state.State, cbs []callback.Callback, tr *trace.Trace) (bool, error) {
	scores, err := Scores(ctx, a, pl, obs, ref)
	if err != nil {
		return false, err
	}

	best, idx := maxAbsScore(scores)
	if best < v.epsilon() {
		a.SetConverged(true)
		return false, nil
	}

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
