// Package evolve implements adaptgo's state-evolution and analytic-gradient
// engine.
//
// The canonical primitive is Rotate, which applies exp(-iθG) to a state in
// place for a single generator G. EvolveInPlace folds a whole rotation
// sequence over a state; Evolve is the non-mutating variant (deep copy
// internally, the caller's reference state is never touched).
//
// Gradients use the adjoint-state method: one forward sweep to build the
// evolved state and the costate H|ψ>, then one backward sweep un-rotating
// both while reading off 2·Re<σ|λ> per parameter. This is O(L) generator
// applications for L parameters; Partial is the O(L)-per-index reference path
// kept for consistency checking.
//
// Generator/state combinations without an exact implementation fail with
// ErrNotImplemented; the engine never substitutes a silent approximation.
package evolve
