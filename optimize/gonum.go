package optimize

import (
	"context"
	"errors"
	"math"

	gopt "gonum.org/v1/gonum/optimize"

	"github.com/hupe1980/adaptgo/ansatz"
	"github.com/hupe1980/adaptgo/callback"
	"github.com/hupe1980/adaptgo/core"
	"github.com/hupe1980/adaptgo/evolve"
	"github.com/hupe1980/adaptgo/operator"
	"github.com/hupe1980/adaptgo/state"
	"github.com/hupe1980/adaptgo/trace"
)

// errHalted aborts gonum's loop when a callback signals termination.
var errHalted = errors.New("optimization halted by callback")

// Gonum adapts a gonum/optimize Method to the Protocol contract.
//
// Cost and gradient closures bind trial vectors into the ansatz only for the
// duration of one evaluation and restore the prior parameters before
// returning, so line-search and simplex probe points never leak into
// callback-visible state. Accepted major iterates are bound permanently
// before the callback pipeline fires, and stay bound on a halt.
//
// Optimizer non-convergence is a non-fatal outcome recorded in the Result.
type Gonum struct {
	// Method is the minimizer; nil selects BFGS.
	Method gopt.Method
	// GradientThreshold overrides gonum's default convergence threshold on
	// the gradient infinity norm when positive.
	GradientThreshold float64
	// MaxIterations caps major iterations when positive.
	MaxIterations int
}

var _ Protocol = (*Gonum)(nil)

// NewBFGS returns the gradient-based default protocol.
func NewBFGS() *Gonum {
	return &Gonum{Method: &gopt.BFGS{}}
}

// NewNelderMead returns a gradient-free protocol.
func NewNelderMead() *Gonum {
	return &Gonum{Method: &gopt.NelderMead{}}
}

// Optimize implements Protocol.
func (g *Gonum) Optimize(ctx context.Context, a ansatz.Ansatz, obs operator.Observable, ref state.State, cbs []callback.Callback, tr *trace.Trace) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// An empty ansatz has nothing to refine; degenerate to the Free
	// behavior so the run loop still gets its energy callback.
	if a.Len() == 0 {
		return Free{}.Optimize(ctx, a, obs, ref, cbs, tr)
	}

	run := &gonumRun{ctx: ctx, a: a, obs: obs, ref: ref, cbs: cbs, tr: tr}

	problem := gopt.Problem{
		Func: run.cost,
		Grad: run.grad,
	}
	settings := &gopt.Settings{Recorder: run}
	if g.GradientThreshold > 0 {
		settings.GradientThreshold = g.GradientThreshold
	}
	if g.MaxIterations > 0 {
		settings.MajorIterations = g.MaxIterations
	}

	method := g.Method
	if method == nil {
		method = &gopt.BFGS{}
	}

	result, err := gopt.Minimize(problem, a.Angles(), settings, method)
	if run.evalErr != nil {
		return nil, run.evalErr
	}

	res := &Result{
		X:          append([]core.Parameter(nil), result.X...),
		Energy:     result.F,
		Iterations: result.Stats.MajorIterations,
		FuncEvals:  result.Stats.FuncEvaluations,
		GradEvals:  result.Stats.GradEvaluations,
	}

	switch {
	case errors.Is(err, errHalted):
		// The halted iterate is already bound. Converged only if a callback
		// flagged the ansatz optimized; honor it either way.
		res.Halted = true
		res.Converged = a.Optimized()
	case err != nil:
		// Method failure without a usable verdict: keep the best point,
		// leave Optimized unset.
		if bindErr := a.Bind(res.X); bindErr != nil {
			return nil, bindErr
		}
	default:
		if bindErr := a.Bind(res.X); bindErr != nil {
			return nil, bindErr
		}
		res.Converged = convergedStatus(result.Status)
		if res.Converged {
			a.SetOptimized(true)
		}
	}
	return res, nil
}

func convergedStatus(s gopt.Status) bool {
	switch s {
	case gopt.Success, gopt.FunctionThreshold, gopt.FunctionConvergence,
		gopt.GradientThreshold, gopt.StepConvergence, gopt.MethodConverge:
		return true
	default:
		return false
	}
}

// gonumRun carries one Minimize call's shared state: the evaluation closures
// and the recorder feeding accepted iterates to the callback pipeline.
type gonumRun struct {
	ctx context.Context
	a   ansatz.Ansatz
	obs operator.Observable
	ref state.State
	cbs []callback.Callback
	tr  *trace.Trace

	evalErr error
}

// cost evaluates a trial vector without leaking it into the ansatz.
func (r *gonumRun) cost(x []float64) float64 {
	if r.evalErr != nil {
		return math.NaN()
	}
	saved := r.a.Angles()
	if err := r.a.Bind(x); err != nil {
		r.evalErr = err
		return math.NaN()
	}
	defer func() {
		if err := r.a.Bind(saved); err != nil && r.evalErr == nil {
			r.evalErr = err
		}
	}()

	if err := r.ctx.Err(); err != nil {
		r.evalErr = err
		return math.NaN()
	}
	e, err := evaluate(r.a, r.obs, r.ref)
	if err != nil {
		r.evalErr = err
		return math.NaN()
	}
	return e
}

// grad writes the analytic gradient at a trial vector, same non-leak rule.
func (r *gonumRun) grad(dst, x []float64) {
	if r.evalErr != nil {
		return
	}
	saved := r.a.Angles()
	if err := r.a.Bind(x); err != nil {
		r.evalErr = err
		return
	}
	defer func() {
		if err := r.a.Bind(saved); err != nil && r.evalErr == nil {
			r.evalErr = err
		}
	}()

	g, err := evolve.Gradient(r.a, r.obs, r.ref)
	if err != nil {
		r.evalErr = err
		return
	}
	copy(dst, g)
}

// Init implements gonum's Recorder.
func (r *gonumRun) Init() error { return nil }

// Record implements gonum's Recorder: on each accepted major iterate, bind it
// into the ansatz and run the callback pipeline.
func (r *gonumRun) Record(loc *gopt.Location, op gopt.Operation, _ *gopt.Stats) error {
	if op != gopt.MajorIteration {
		return nil
	}
	if err := r.a.Bind(loc.X); err != nil {
		return err
	}
	if callback.RunIteration(r.cbs, callback.NewIterationData(loc.F), r.a, r.tr) {
		return errHalted
	}
	return nil
}
