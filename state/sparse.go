package state

import (
	"math"
	"math/cmplx"

	"github.com/hupe1980/adaptgo/core"
)

// Map is a sparse state storing only occupied basis kets. Suited to reference
// states and shallow evolutions on large qubit counts where the dense 2^n
// array is out of reach.
type Map struct {
	amps map[core.Ket]complex128
	n    int
}

// NewMap returns the sparse all-zeros reference state |0...0> on n qubits.
func NewMap(n int) *Map {
	m := &Map{amps: make(map[core.Ket]complex128, 1), n: n}
	m.amps[0] = 1
	return m
}

// NewBasisMap returns the sparse basis state |k> on n qubits.
func NewBasisMap(n int, k core.Ket) *Map {
	m := &Map{amps: make(map[core.Ket]complex128, 1), n: n}
	m.amps[k] = 1
	return m
}

// NumQubits returns the qubit count.
func (m *Map) NumQubits() int { return m.n }

// Len returns the number of occupied basis kets.
func (m *Map) Len() int { return len(m.amps) }

// Clone returns an independent deep copy.
func (m *Map) Clone() State {
	amps := make(map[core.Ket]complex128, len(m.amps))
	for k, a := range m.amps {
		amps[k] = a
	}
	return &Map{amps: amps, n: m.n}
}

// ZeroLike returns an empty sparse state of the same shape.
func (m *Map) ZeroLike() State {
	return &Map{amps: make(map[core.Ket]complex128), n: m.n}
}

// Scale multiplies the state by a in place.
func (m *Map) Scale(a complex128) {
	for k := range m.amps {
		m.amps[k] *= a
	}
}

// Add accumulates a into the amplitude of ket k.
func (m *Map) Add(k core.Ket, a complex128) {
	m.amps[k] += a
}

// AXPY adds a*other in place.
func (m *Map) AXPY(a complex128, other State) error {
	o, ok := other.(*Map)
	if !ok {
		return ErrMixedRepresentation
	}
	if m.n != o.n {
		return ErrShapeMismatch
	}
	for k, v := range o.amps {
		m.amps[k] += a * v
	}
	return nil
}

// Dot returns <m|other>, iterating the smaller operand.
func (m *Map) Dot(other State) (complex128, error) {
	o, ok := other.(*Map)
	if !ok {
		return 0, ErrMixedRepresentation
	}
	if m.n != o.n {
		return 0, ErrShapeMismatch
	}
	small, big := m.amps, o.amps
	conjSmall := true
	if len(big) < len(small) {
		small, big = big, small
		conjSmall = false
	}
	var acc complex128
	for k, a := range small {
		b, ok := big[k]
		if !ok {
			continue
		}
		if conjSmall {
			acc += cmplx.Conj(a) * b
		} else {
			acc += cmplx.Conj(b) * a
		}
	}
	return acc, nil
}

// Norm returns the L2 norm.
func (m *Map) Norm() float64 {
	var acc float64
	for _, a := range m.amps {
		r, im := real(a), imag(a)
		acc += r*r + im*im
	}
	return math.Sqrt(acc)
}

// Amplitude returns the amplitude of basis ket k.
func (m *Map) Amplitude(k core.Ket) complex128 { return m.amps[k] }

// Amplitudes exposes the underlying ket map. Hot-path accessor for the
// evolution engine; callers must not hold it across mutations.
func (m *Map) Amplitudes() map[core.Ket]complex128 { return m.amps }

// Replace swaps in the contents of o, which must share the qubit count.
// o must not be used afterwards.
func (m *Map) Replace(o *Map) error {
	if m.n != o.n {
		return ErrShapeMismatch
	}
	m.amps = o.amps
	return nil
}

// ForEach visits every occupied ket. Mutating the map during iteration is not
// supported.
func (m *Map) ForEach(fn func(k core.Ket, a complex128)) {
	for k, a := range m.amps {
		fn(k, a)
	}
}

// Prune drops amplitudes with magnitude below eps, bounding map growth over
// long evolutions.
func (m *Map) Prune(eps float64) {
	for k, a := range m.amps {
		if cmplx.Abs(a) < eps {
			delete(m.amps, k)
		}
	}
}

// ToVector materializes the sparse state as a dense Vector. Reference path
// for tests and validation; requires n within dense range.
func (m *Map) ToVector() *Vector {
	v := zeroVector(m.n)
	for k, a := range m.amps {
		v.amps[k] = a
	}
	return v
}
