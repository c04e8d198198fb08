// Package optimize implements the parameter-refinement protocols: adapters
// over gonum's numerical minimizers plus the no-op Free protocol.
package optimize

import (
	"context"

	"github.com/hupe1980/adaptgo/ansatz"
	"github.com/hupe1980/adaptgo/callback"
	"github.com/hupe1980/adaptgo/core"
	"github.com/hupe1980/adaptgo/evolve"
	"github.com/hupe1980/adaptgo/operator"
	"github.com/hupe1980/adaptgo/state"
	"github.com/hupe1980/adaptgo/trace"
)

// Result summarizes one optimization run.
type Result struct {
	// X is the final parameter vector, also bound into the ansatz.
	X []core.Parameter
	// Energy is the cost at X.
	Energy core.Energy
	// Converged reports numerical convergence. After a callback halt it
	// reflects whether a callback flagged the ansatz optimized.
	Converged bool
	// Halted reports a callback-forced stop.
	Halted bool

	Iterations int
	FuncEvals  int
	GradEvals  int
}

// Protocol refines all current ansatz parameters toward a local minimum of
// the observable expectation, invoking callbacks on every accepted iterate.
// On normal convergence the ansatz Optimized flag is set.
type Protocol interface {
	Optimize(ctx context.Context, a ansatz.Ansatz, obs operator.Observable, ref state.State, cbs []callback.Callback, tr *trace.Trace) (*Result, error)
}

// Free performs zero iterations: one energy evaluation, one callback round,
// and always sets Optimized. For fixed-angle ansatz exploration where
// parameter refinement is not wanted.
type Free struct{}

var _ Protocol = Free{}

// Optimize implements Protocol.
func (Free) Optimize(ctx context.Context, a ansatz.Ansatz, obs operator.Observable, ref state.State, cbs []callback.Callback, tr *trace.Trace) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	energy, err := evaluate(a, obs, ref)
	if err != nil {
		return nil, err
	}

	callback.RunIteration(cbs, callback.NewIterationData(energy), a, tr)
	a.SetOptimized(true)

	return &Result{
		X:         a.Angles(),
		Energy:    energy,
		Converged: true,
		FuncEvals: 1,
	}, nil
}

func evaluate(a ansatz.Ansatz, obs operator.Observable, ref state.State) (core.Energy, error) {
	st, err := evolve.Evolve(a, ref)
	if err != nil {
		return 0, err
	}
	return evolve.Evaluate(obs, st)
}
