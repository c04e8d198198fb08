package adapt

import (
	"context"
	"math"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/adaptgo/ansatz"
	"github.com/hupe1980/adaptgo/callback"
	"github.com/hupe1980/adaptgo/core"
	"github.com/hupe1980/adaptgo/operator"
	"github.com/hupe1980/adaptgo/pool"
	"github.com/hupe1980/adaptgo/state"
	"github.com/hupe1980/adaptgo/trace"
)

// Tetris is the batched ADAPT step: after dropping candidates scoring below
// Threshold, it greedily takes the largest-magnitude candidate, removes every
// remaining candidate whose qubit support overlaps the taken one, and repeats
// until nothing is eligible. All taken candidates are appended in one step,
// so one adaptation can tile a full register of disjoint rotations.
type Tetris struct {
	// Epsilon is the exhaustion threshold; non-positive selects the default.
	Epsilon core.Score
	// Threshold filters candidates before selection; values below Epsilon
	// are clamped to it.
	Threshold core.Score
}

var _ Protocol = Tetris{}

func (t Tetris) epsilon() core.Score {
	if t.Epsilon > 0 {
		return t.Epsilon
	}
	return defaultEpsilon
}

func (t Tetris) threshold() core.Score {
	if th := t.Threshold; th > t.epsilon() {
		return th
	}
	return t.epsilon()
}

// Adapt implements Protocol.
func (t Tetris) Adapt(ctx context.Context, a ansatz.Ansatz, pl *pool.Pool, obs operator.Observable, ref state.State, cbs []callback.Callback, tr *trace.Trace) (bool, error) {
	scores, err := Scores(ctx, a, pl, obs, ref)
	if err != nil {
		return false, err
	}

	best, _ := maxAbsScore(scores)
	if best < t.epsilon() {
		a.SetConverged(true)
		return false, nil
	}

	selected := t.selectDisjoint(scores, pl)

	gens := make([]operator.Generator, len(selected))
	params := make([]core.Parameter, len(selected))
	for i, idx := range selected {
		gens[i] = pl.Generator(idx)
	}

	d := callback.NewAdaptationData(scores, selected, gens, params)
	if callback.RunAdaptation(cbs, d, a, tr) || a.Converged() {
		return false, nil
	}

	if err := a.Append(gens, params); err != nil {
		return false, err
	}
	return true, nil
}

// selectDisjoint returns pool indices in descending score magnitude whose
// qubit supports are pairwise disjoint, considering only candidates at or
// above the threshold. Stable sort keeps first-occurrence order on exact
// ties.
func (t Tetris) selectDisjoint(scores []core.Score, pl *pool.Pool) []int {
	th := t.threshold()

	order := make([]int, 0, len(scores))
	for i, s := range scores {
		if math.Abs(s) >= th {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(x, y int) bool {
		return math.Abs(scores[order[x]]) > math.Abs(scores[order[y]])
	})

	taken := roaring.New()
	selected := make([]int, 0, len(order))
	for _, idx := range order {
		supp := pl.Generator(idx).Support()
		if taken.Intersects(supp) {
			continue
		}
		taken.Or(supp)
		selected = append(selected, idx)
	}
	return selected
}
