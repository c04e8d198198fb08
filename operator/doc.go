// Package operator implements the weighted Pauli algebra underlying adaptgo's
// generators and observables.
//
// A Pauli word is stored as two bitmasks over qubits (X-type and Z-type
// action, with Y = overlap), which keeps word products, commutation checks and
// state application at bit-twiddling cost. All operators are Hermitian by
// construction and immutable once built; identity is value-based via Key,
// which pool tiling uses for deduplication.
//
// Three generator representations exist, mirroring how they are exponentiated:
//
//   - ScaledPauli: a single weighted word. exp(-iθG) applied in closed form.
//   - CommutingSum: pairwise-commuting weighted words. The product of the
//     per-term rotations equals the exact exponential.
//   - PauliSum: a general weighted sum, possibly non-commuting. Exact
//     exponentiation via Krylov subspace methods (see package evolve). Also
//     the Observable type.
package operator
