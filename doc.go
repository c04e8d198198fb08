// Package adaptgo provides an embedded adaptive variational quantum
// eigensolver (ADAPT-VQE) for Go.
//
// Adaptgo grows a parameterized ansatz one operator at a time: each round it
// refines the current rotation angles toward a local energy minimum, then
// scores every candidate in an operator pool and appends the strongest one.
// The library includes:
//
//   - Pauli-word algebra with bitmask representation (up to 64 qubits)
//   - Dense and sparse state vectors with exact rotation kernels
//   - Krylov-subspace exponentiation for non-commuting generator sums
//   - Analytic adjoint gradients (two state passes, any ansatz length)
//   - Selection protocols: Vanilla, Tetris (disjoint supports), Degenerate
//   - Optimization via gonum (BFGS, Nelder-Mead) or fixed angles (Free)
//   - Callback pipeline: tracing, rate-limited printing, stop conditions
//   - Trace snapshots persisted to local disk, S3, MinIO, or memory
//
// # Quick Start
//
// Solve MaxCut on a random graph with a QAOA-style ansatz:
//
//	g := pool.ErdosRenyi(6, 0.5, 0)
//	h, err := pool.MaxCutHamiltonian(g)
//	if err != nil {
//	    panic(err)
//	}
//
//	a, err := ansatz.NewQAOA(h, 0.01)
//	if err != nil {
//	    panic(err)
//	}
//
//	pl, err := pool.QAOADouble(6)
//	if err != nil {
//	    panic(err)
//	}
//
//	vqe, err := adaptgo.New(h, a, pl, state.NewUniformVector(6),
//	    adaptgo.WithCallbacks(
//	        callback.NewTracer(),
//	        &callback.ScoreStopper{Epsilon: 1e-3},
//	    ),
//	)
//	if err != nil {
//	    panic(err)
//	}
//
//	converged, err := vqe.Run(context.Background())
//
// Inspect the energy trajectory afterwards:
//
//	energies := vqe.Trace().Series(trace.KeyEnergy)
//
// # Stop Conditions
//
// Run has no implicit iteration cap: without a stop condition it loops until
// the pool scores vanish. Configure stoppers for bounded runs:
//
//	adaptgo.WithCallbacks(
//	    callback.NewTracer(),
//	    &callback.ScoreStopper{Epsilon: 1e-3},
//	    &callback.ParameterStopper{Max: 100},
//	    callback.NewDeadlineStopper(5*time.Minute),
//	)
//
// # Persistence
//
// Trace snapshots go through the tracestore.Store abstraction:
//
//	store, _ := tracestore.NewLocalStore("./runs")
//	vqe, _ := adaptgo.New(h, a, pl, ref,
//	    adaptgo.WithSnapshotStore(tracestore.NewCompressedStore(store, tracestore.CompressionZSTD)),
//	)
//	// ... run ...
//	_ = vqe.Snapshot(ctx, "runs/maxcut-6.json")
package adaptgo
