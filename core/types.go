// Package core defines the semantic scalar categories shared across adaptgo.
package core

// Parameter is a variational rotation angle.
type Parameter = float64

// Energy is an observable expectation value.
type Energy = float64

// Score is the importance measure used to rank pool candidates.
type Score = float64

// Amplitude is a complex state-vector amplitude.
type Amplitude = complex128

// Ket is a computational basis state, one bit per qubit.
// Bit q set means qubit q is |1>.
type Ket uint64

// MaxQubits is the largest qubit count representable by a Ket.
const MaxQubits = 64
