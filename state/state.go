package state

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	"github.com/hupe1980/adaptgo/core"
	"github.com/hupe1980/adaptgo/internal/cvec"
)

// ErrMixedRepresentation is returned when a binary state operation receives
// two different concrete representations.
var ErrMixedRepresentation = errors.New("mixed state representations")

// ErrShapeMismatch is returned when two states disagree on qubit count.
var ErrShapeMismatch = errors.New("state shape mismatch")

// State is a mutable quantum state vector.
//
// Binary operations (AXPY, Dot) require both operands to share the same
// concrete representation and qubit count.
type State interface {
	NumQubits() int
	// Clone returns an independent deep copy.
	Clone() State
	// ZeroLike returns a zero state of the same shape and representation.
	ZeroLike() State
	// Scale multiplies the state by a in place.
	Scale(a complex128)
	// AXPY adds a*other to the state in place.
	AXPY(a complex128, other State) error
	// Dot returns the inner product <s|other>.
	Dot(other State) (complex128, error)
	// Norm returns the L2 norm.
	Norm() float64
	// Amplitude returns the amplitude of basis ket k.
	Amplitude(k core.Ket) complex128
}

// Vector is a dense state over all 2^n basis kets.
type Vector struct {
	amps []complex128
	n    int
}

// NewVector returns the all-zeros reference state |0...0> on n qubits.
func NewVector(n int) *Vector {
	v := zeroVector(n)
	v.amps[0] = 1
	return v
}

// NewBasisVector returns the computational basis state |k> on n qubits.
func NewBasisVector(n int, k core.Ket) *Vector {
	v := zeroVector(n)
	v.amps[k] = 1
	return v
}

// NewUniformVector returns the uniform superposition |+...+> on n qubits,
// the conventional QAOA reference state.
func NewUniformVector(n int) *Vector {
	v := zeroVector(n)
	a := complex(1/math.Sqrt(float64(len(v.amps))), 0)
	for i := range v.amps {
		v.amps[i] = a
	}
	return v
}

// NewVectorFromAmps wraps an amplitude slice whose length must be a power of
// two. The slice is owned by the Vector afterwards.
func NewVectorFromAmps(amps []complex128) (*Vector, error) {
	if len(amps) == 0 || bits.OnesCount(uint(len(amps))) != 1 {
		return nil, fmt.Errorf("amplitude count %d is not a power of two", len(amps))
	}
	return &Vector{amps: amps, n: bits.TrailingZeros(uint(len(amps)))}, nil
}

func zeroVector(n int) *Vector {
	if n <= 0 || n > 30 {
		panic(fmt.Sprintf("state: dense vector qubit count %d out of range [1,30]", n))
	}
	return &Vector{amps: make([]complex128, 1<<n), n: n}
}

// NumQubits returns the qubit count.
func (v *Vector) NumQubits() int { return v.n }

// Amps exposes the underlying amplitude slice. Hot-path accessor for the
// evolution engine; callers must not resize it.
func (v *Vector) Amps() []complex128 { return v.amps }

// Clone returns an independent deep copy.
func (v *Vector) Clone() State {
	amps := make([]complex128, len(v.amps))
	copy(amps, v.amps)
	return &Vector{amps: amps, n: v.n}
}

// ZeroLike returns a dense zero state of the same shape.
func (v *Vector) ZeroLike() State {
	return &Vector{amps: make([]complex128, len(v.amps)), n: v.n}
}

// CopyFrom overwrites the amplitudes with those of src.
func (v *Vector) CopyFrom(src *Vector) error {
	if v.n != src.n {
		return ErrShapeMismatch
	}
	copy(v.amps, src.amps)
	return nil
}

// Zero clears all amplitudes in place.
func (v *Vector) Zero() { cvec.Zero(v.amps) }

// Scale multiplies the state by a in place.
func (v *Vector) Scale(a complex128) { cvec.Scale(v.amps, a) }

// AXPY adds a*other in place.
func (v *Vector) AXPY(a complex128, other State) error {
	o, ok := other.(*Vector)
	if !ok {
		return ErrMixedRepresentation
	}
	if v.n != o.n {
		return ErrShapeMismatch
	}
	cvec.AXPY(v.amps, o.amps, a)
	return nil
}

// Dot returns <v|other>.
func (v *Vector) Dot(other State) (complex128, error) {
	o, ok := other.(*Vector)
	if !ok {
		return 0, ErrMixedRepresentation
	}
	if v.n != o.n {
		return 0, ErrShapeMismatch
	}
	return cvec.Dot(v.amps, o.amps), nil
}

// Norm returns the L2 norm.
func (v *Vector) Norm() float64 { return math.Sqrt(cvec.Norm2(v.amps)) }

// Amplitude returns the amplitude of basis ket k.
func (v *Vector) Amplitude(k core.Ket) complex128 { return v.amps[k] }
