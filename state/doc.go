// Package state provides the quantum state representations evolved by adaptgo.
//
// Two representations are supported: Vector, a dense complex amplitude array
// indexed by basis ket, and Map, a sparse ket-to-amplitude mapping for states
// with few occupied basis states. Both are mutable; the evolution engine never
// mutates a caller's reference state (it deep-copies first), so normalization
// is preserved by unitarity rather than enforced per operation.
package state
