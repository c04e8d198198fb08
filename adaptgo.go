package adaptgo

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/adaptgo/adapt"
	"github.com/hupe1980/adaptgo/ansatz"
	"github.com/hupe1980/adaptgo/callback"
	"github.com/hupe1980/adaptgo/core"
	"github.com/hupe1980/adaptgo/evolve"
	"github.com/hupe1980/adaptgo/operator"
	"github.com/hupe1980/adaptgo/optimize"
	"github.com/hupe1980/adaptgo/pool"
	"github.com/hupe1980/adaptgo/state"
	"github.com/hupe1980/adaptgo/trace"
	"github.com/hupe1980/adaptgo/tracestore"
)

// VQE is one configured ADAPT-VQE run: the problem (observable, pool,
// reference state), the mutable ansatz, and the protocols that drive it.
//
// VQE is not safe for concurrent use; one run mutates the ansatz and trace
// throughout.
type VQE struct {
	observable operator.Observable
	ansatz     ansatz.Ansatz
	pool       *pool.Pool
	reference  state.State
	adapter    adapt.Protocol
	optimizer  optimize.Protocol
	callbacks  []callback.Callback
	trace      *trace.Trace
	store      tracestore.Store
	metrics    MetricsCollector
	logger     *Logger
}

// New creates a VQE over the given problem. The ansatz may already carry
// generators (warm start); its flags decide where Run picks up.
func New(obs operator.Observable, a ansatz.Ansatz, pl *pool.Pool, ref state.State, optFns ...Option) (*VQE, error) {
	if obs == nil {
		return nil, fmt.Errorf("nil observable")
	}
	if a == nil {
		return nil, fmt.Errorf("nil ansatz")
	}
	if ref == nil {
		return nil, fmt.Errorf("nil reference state")
	}
	if pl == nil || pl.Len() == 0 {
		return nil, ErrEmptyPool
	}

	n := a.NumQubits()
	if obs.NumQubits() != n {
		return nil, &ErrDimensionMismatch{Expected: n, Actual: obs.NumQubits()}
	}
	if ref.NumQubits() != n {
		return nil, &ErrDimensionMismatch{Expected: n, Actual: ref.NumQubits()}
	}
	if pl.NumQubits() != n {
		return nil, &ErrDimensionMismatch{Expected: n, Actual: pl.NumQubits()}
	}

	opts := applyOptions(optFns)

	return &VQE{
		observable: obs,
		ansatz:     a,
		pool:       pl,
		reference:  ref,
		adapter:    opts.adaptProtocol,
		optimizer:  opts.optimizeProtocol,
		callbacks:  opts.callbacks,
		trace:      opts.trace,
		store:      opts.snapshotStore,
		metrics:    opts.metricsCollector,
		logger:     opts.logger.WithQubits(n).WithPoolSize(pl.Len()),
	}, nil
}

// Ansatz returns the mutable ansatz the run operates on.
func (vqe *VQE) Ansatz() ansatz.Ansatz { return vqe.ansatz }

// Trace returns the trace the run records into.
func (vqe *VQE) Trace() *trace.Trace { return vqe.trace }

// Energy evaluates the observable expectation at the current parameters.
func (vqe *VQE) Energy() (core.Energy, error) {
	st, err := evolve.Evolve(vqe.ansatz, vqe.reference)
	if err != nil {
		return 0, translateError(err)
	}
	e, err := evolve.Evaluate(vqe.observable, st)
	if err != nil {
		return 0, translateError(err)
	}
	return e, nil
}

// Run drives the adaptive loop until convergence or a stop signal:
//
//	for {
//	    if converged { return true }
//	    if !optimized { optimize; if still !optimized { return converged } }
//	    adapt; if not grown { return converged }
//	}
//
// The returned bool is the ansatz Converged flag at exit: true means the
// pool is exhausted (all scores below the protocol epsilon) or a callback
// declared convergence; false means a callback halted the run early.
//
// Run has no implicit iteration cap. Bound it with a stopper callback
// (ParameterStopper, DeadlineStopper) or through ctx.
func (vqe *VQE) Run(ctx context.Context) (bool, error) {
	round := 0
	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if vqe.ansatz.Converged() {
			vqe.logger.LogRun(ctx, true, round, vqe.ansatz.Len(), nil)
			return true, nil
		}

		if !vqe.ansatz.Optimized() {
			if err := vqe.optimizeOnce(ctx, round); err != nil {
				vqe.logger.LogRun(ctx, false, round, vqe.ansatz.Len(), err)
				return false, err
			}
			if !vqe.ansatz.Optimized() {
				// Halted mid-optimization without a callback flagging the
				// parameters optimal.
				converged := vqe.ansatz.Converged()
				vqe.logger.LogRun(ctx, converged, round, vqe.ansatz.Len(), nil)
				return converged, nil
			}
			if vqe.ansatz.Converged() {
				continue
			}
		}

		grown, err := vqe.adaptOnce(ctx, round)
		if err != nil {
			vqe.logger.LogRun(ctx, false, round, vqe.ansatz.Len(), err)
			return false, err
		}
		if !grown {
			converged := vqe.ansatz.Converged()
			vqe.logger.LogRun(ctx, converged, round, vqe.ansatz.Len(), nil)
			return converged, nil
		}
		round++
	}
}

func (vqe *VQE) optimizeOnce(ctx context.Context, round int) error {
	logger := vqe.logger.WithRound(round)
	start := time.Now()

	res, err := vqe.optimizer.Optimize(ctx, vqe.ansatz, vqe.observable, vqe.reference, vqe.callbacks, vqe.trace)
	if err != nil {
		err = translateError(err)
		vqe.metrics.RecordOptimization(0, time.Since(start), err)
		logger.LogOptimization(ctx, vqe.ansatz.Len(), 0, false, err)
		return err
	}

	vqe.metrics.RecordOptimization(res.Iterations, time.Since(start), nil)
	logger.LogOptimization(ctx, vqe.ansatz.Len(), res.Energy, res.Converged, nil)
	return nil
}

func (vqe *VQE) adaptOnce(ctx context.Context, round int) (bool, error) {
	logger := vqe.logger.WithRound(round)
	before := vqe.ansatz.Len()
	start := time.Now()

	grown, err := vqe.adapter.Adapt(ctx, vqe.ansatz, vqe.pool, vqe.observable, vqe.reference, vqe.callbacks, vqe.trace)
	elapsed := time.Since(start)
	if err != nil {
		err = translateError(err)
		vqe.metrics.RecordScorePass(vqe.pool.Len(), elapsed, err)
		vqe.metrics.RecordAdaptation(0, elapsed, err)
		logger.LogAdaptation(ctx, false, vqe.ansatz.Len(), err)
		return false, err
	}

	vqe.metrics.RecordScorePass(vqe.pool.Len(), elapsed, nil)
	vqe.metrics.RecordAdaptation(vqe.ansatz.Len()-before, elapsed, nil)
	logger.LogAdaptation(ctx, grown, vqe.ansatz.Len(), nil)
	return grown, nil
}

// Snapshot serializes the current trace and writes it to the configured
// snapshot store under name.
func (vqe *VQE) Snapshot(ctx context.Context, name string) error {
	if vqe.store == nil {
		return ErrNoSnapshotStore
	}

	start := time.Now()
	data, err := vqe.trace.Snapshot().Marshal()
	if err != nil {
		vqe.metrics.RecordSnapshot(0, time.Since(start), err)
		vqe.logger.LogSnapshot(ctx, name, 0, err)
		return err
	}

	err = vqe.store.Put(ctx, name, data)
	vqe.metrics.RecordSnapshot(len(data), time.Since(start), err)
	vqe.logger.LogSnapshot(ctx, name, len(data), err)
	return err
}

// LoadTrace reads a snapshot from store and reconstructs the trace.
// Pass the result to WithTrace to resume recording into it.
func LoadTrace(ctx context.Context, store tracestore.Store, name string) (*trace.Trace, error) {
	data, err := store.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	snap, err := trace.UnmarshalSnapshot(data)
	if err != nil {
		return nil, err
	}
	return trace.FromSnapshot(snap)
}
