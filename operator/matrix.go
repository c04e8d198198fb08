package operator

import (
	"fmt"
	"math"
	"math/bits"

	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/adaptgo/core"
)

// Matrix returns the dense 2^N x 2^N matrix of the word.
// Brute-force reference path; exponential in N by nature.
func (p Pauli) Matrix() *mat.CDense {
	dim := 1 << p.N
	m := mat.NewCDense(dim, dim, nil)
	for k := 0; k < dim; k++ {
		m.Set(int(p.Dest(core.Ket(k))), k, p.Phase(core.Ket(k)))
	}
	return m
}

// Matrix returns the dense matrix of an Observable (or Generator, via its
// Terms). Brute-force reference path for validation harnesses.
func Matrix(o Observable) *mat.CDense {
	dim := 1 << o.NumQubits()
	m := mat.NewCDense(dim, dim, nil)
	for _, t := range o.Terms() {
		c := complex(t.Coeff, 0)
		for k := 0; k < dim; k++ {
			i := int(t.Word.Dest(core.Ket(k)))
			m.Set(i, k, m.At(i, k)+c*t.Word.Phase(core.Ket(k)))
		}
	}
	return m
}

// DiagonalFloor returns the exact smallest eigenvalue of a diagonal
// observable by scanning its diagonal. Returns an error if any term is
// non-diagonal.
func DiagonalFloor(o Observable) (core.Energy, error) {
	terms := o.Terms()
	for i, t := range terms {
		if !t.Word.Diagonal() {
			return 0, fmt.Errorf("term %d (%s) is not diagonal", i, t.Word)
		}
	}
	dim := core.Ket(1) << o.NumQubits()
	floor := math.Inf(1)
	for k := core.Ket(0); k < dim; k++ {
		var e float64
		for _, t := range terms {
			if bits.OnesCount64(uint64(k&t.Word.Z))&1 == 1 {
				e -= t.Coeff
			} else {
				e += t.Coeff
			}
		}
		if e < floor {
			floor = e
		}
	}
	return floor, nil
}
