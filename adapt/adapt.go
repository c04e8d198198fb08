// Package adapt implements the operator-selection protocols: scoring every
// pool candidate against the current state and growing the ansatz by the
// strongest candidates.
package adapt

import (
	"context"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/adaptgo/ansatz"
	"github.com/hupe1980/adaptgo/callback"
	"github.com/hupe1980/adaptgo/core"
	"github.com/hupe1980/adaptgo/evolve"
	"github.com/hupe1980/adaptgo/operator"
	"github.com/hupe1980/adaptgo/pool"
	"github.com/hupe1980/adaptgo/state"
	"github.com/hupe1980/adaptgo/trace"
)

// defaultEpsilon is the exhaustion threshold used when a protocol is
// configured with a non-positive epsilon.
const defaultEpsilon = 1e-8

// Protocol runs one adaptation step. It reports whether the ansatz was grown;
// false with a nil error means either convergence-by-exhaustion (the ansatz
// Converged flag is set) or a callback abort (it is not).
type Protocol interface {
	Adapt(ctx context.Context, a ansatz.Ansatz, pl *pool.Pool, obs operator.Observable, ref state.State, cbs []callback.Callback, tr *trace.Trace) (bool, error)
}

// ScoringStater is the ansatz extension point for protocol-specific scoring
// states. An ansatz implementing it is scored against the returned state
// instead of the plain evolved one; QAOA uses this to insert the phase layer
// an appended mixer would sit behind.
type ScoringStater interface {
	ScoringState(ref state.State) (state.State, error)
}

func scoringState(a ansatz.Ansatz, ref state.State) (state.State, error) {
	if s, ok := a.(ScoringStater); ok {
		return s.ScoringState(ref)
	}
	return evolve.Evolve(a, ref)
}

// Scores returns the selection score per pool candidate: the energy gradient
// a candidate would have if appended with parameter zero,
// 2·Im⟨Hψ|Aψ⟩ = ⟨ψ|i[A,H]|ψ⟩. Candidates are scored in parallel; ψ and Hψ
// are shared read-only across the workers.
func Scores(ctx context.Context, a ansatz.Ansatz, pl *pool.Pool, obs operator.Observable, ref state.State) ([]core.Score, error) {
	if pl == nil || pl.Len() == 0 {
		return nil, pool.ErrEmptyPool
	}

	psi, err := scoringState(a, ref)
	if err != nil {
		return nil, err
	}
	lambda, err := evolve.Apply(obs, psi)
	if err != nil {
		return nil, err
	}

	scores := make([]core.Score, pl.Len())

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < pl.Len(); i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			phi, err := evolve.Apply(pl.Generator(i), psi)
			if err != nil {
				return err
			}
			d, err := lambda.Dot(phi)
			if err != nil {
				return err
			}
			scores[i] = 2 * imag(d)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}

// maxAbsScore returns the largest magnitude and the index of its first
// occurrence.
func maxAbsScore(scores []core.Score) (core.Score, int) {
	best, idx := core.Score(-1), -1
	for i, s := range scores {
		if abs := math.Abs(s); abs > best {
			best, idx = abs, i
		}
	}
	return best, idx
}
