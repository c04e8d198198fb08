package operator

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/adaptgo/core"
)

// Pauli is a Hermitian Pauli word on N qubits.
//
// The word is the tensor product over qubits of I, X, Y or Z, encoded as two
// bitmasks: bit q of X set means the word acts with X or Y on qubit q, bit q
// of Z set means Z or Y. Y is the overlap. The implicit phase i^|Y| that makes
// the word Hermitian is folded into Phase.
type Pauli struct {
	X core.Ket
	Z core.Ket
	N int
}

var iPow = [4]complex128{1, 1i, -1, -1i}

// NewPauli parses a Pauli word from a letter string, e.g. "XIZY".
// Character position is the qubit index (qubit 0 first).
func NewPauli(s string) (Pauli, error) {
	if len(s) == 0 || len(s) > core.MaxQubits {
		return Pauli{}, fmt.Errorf("pauli word length %d out of range [1,%d]", len(s), core.MaxQubits)
	}
	var p Pauli
	p.N = len(s)
	for q, c := range s {
		bit := core.Ket(1) << q
		switch c {
		case 'I', 'i':
		case 'X', 'x':
			p.X |= bit
		case 'Y', 'y':
			p.X |= bit
			p.Z |= bit
		case 'Z', 'z':
			p.Z |= bit
		default:
			return Pauli{}, fmt.Errorf("invalid pauli letter %q at qubit %d", c, q)
		}
	}
	return p, nil
}

// MustPauli is NewPauli that panics on malformed input. For tests and
// literal pool definitions.
func MustPauli(s string) Pauli {
	p, err := NewPauli(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Identity reports whether the word acts trivially on every qubit.
func (p Pauli) Identity() bool { return p.X == 0 && p.Z == 0 }

// Dest returns the basis ket the word maps |k> to (up to phase).
func (p Pauli) Dest(k core.Ket) core.Ket { return k ^ p.X }

// Phase returns the amplitude factor in P|k> = Phase(k) |Dest(k)>.
func (p Pauli) Phase(k core.Ket) complex128 {
	ph := iPow[bits.OnesCount64(uint64(p.X&p.Z))&3]
	if bits.OnesCount64(uint64(k&p.Z))&1 == 1 {
		return -ph
	}
	return ph
}

// Diagonal reports whether the word is diagonal in the computational basis.
func (p Pauli) Diagonal() bool { return p.X == 0 }

// Commutes reports whether two words commute.
// Words commute iff their symplectic product is even.
func (p Pauli) Commutes(q Pauli) bool {
	a := bits.OnesCount64(uint64(p.X & q.Z))
	b := bits.OnesCount64(uint64(p.Z & q.X))
	return (a+b)&1 == 0
}

// Support returns the set of qubits the word acts on non-trivially.
func (p Pauli) Support() *roaring.Bitmap {
	rb := roaring.New()
	m := uint64(p.X | p.Z)
	for m != 0 {
		q := bits.TrailingZeros64(m)
		rb.Add(uint32(q))
		m &= m - 1
	}
	return rb
}

// String returns the letter form of the word, qubit 0 first.
func (p Pauli) String() string {
	var sb strings.Builder
	sb.Grow(p.N)
	for q := 0; q < p.N; q++ {
		bit := core.Ket(1) << q
		switch {
		case p.X&bit != 0 && p.Z&bit != 0:
			sb.WriteByte('Y')
		case p.X&bit != 0:
			sb.WriteByte('X')
		case p.Z&bit != 0:
			sb.WriteByte('Z')
		default:
			sb.WriteByte('I')
		}
	}
	return sb.String()
}

// SingleX returns the word with X on qubit q of n.
func SingleX(q, n int) Pauli { return Pauli{X: 1 << q, N: n} }

// SingleY returns the word with Y on qubit q of n.
func SingleY(q, n int) Pauli { return Pauli{X: 1 << q, Z: 1 << q, N: n} }

// SingleZ returns the word with Z on qubit q of n.
func SingleZ(q, n int) Pauli { return Pauli{Z: 1 << q, N: n} }

// ZZ returns the word with Z on qubits a and b of n.
func ZZ(a, b, n int) Pauli {
	return Pauli{Z: core.Ket(1)<<a | core.Ket(1)<<b, N: n}
}
