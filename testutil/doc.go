// Package testutil provides testing utilities for adaptgo.
//
// This package is intended for use in tests and benchmarks only. It provides
// seeded random operators and states for reproducible cases, plus
// finite-difference reference gradients for checking the analytic engine.
//
// # Random Inputs
//
//	rng := testutil.NewRNG(seed)
//	h := testutil.RandomPauliSum(rng, 4, 6)
//	psi := testutil.RandomState(rng, 4)
//
// # Reference Gradients
//
//	grad := testutil.GradientFD(cost, x, 1e-4)
package testutil
