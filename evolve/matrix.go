package evolve

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/adaptgo/core"
	"github.com/hupe1980/adaptgo/operator"
)

// Matrix returns the dense unitary of the whole rotation sequence on n
// qubits, built term by term with brute-force linear algebra. Reference path
// for round-trip validation; exponential in n by nature.
func Matrix(seq Sequence, n int) (*mat.CDense, error) {
	dim := 1 << n
	u := eyeC(dim)
	for i := 0; i < seq.Len(); i++ {
		g, theta := seq.Rotation(i)
		if g.NumQubits() != n {
			return nil, &ErrDimensionMismatch{Operator: g.NumQubits(), State: n}
		}
		ug, err := generatorUnitary(g, theta)
		if err != nil {
			return nil, err
		}
		next := mat.NewCDense(dim, dim, nil)
		next.Mul(ug, u)
		u = next
	}
	return u, nil
}

func generatorUnitary(g operator.Generator, theta core.Parameter) (*mat.CDense, error) {
	switch gen := g.(type) {
	case operator.ScaledPauli:
		return termUnitary(gen, theta), nil
	case operator.CommutingSum:
		dim := 1 << gen.NumQubits()
		u := eyeC(dim)
		for _, t := range gen.Terms() {
			next := mat.NewCDense(dim, dim, nil)
			next.Mul(termUnitary(t, theta), u)
			u = next
		}
		return u, nil
	case *operator.PauliSum:
		var bound float64
		for _, t := range gen.Terms() {
			bound += math.Abs(t.Coeff)
		}
		h := operator.Matrix(gen)
		dim := 1 << gen.NumQubits()
		a := mat.NewCDense(dim, dim, nil)
		a.Scale(complex(0, -theta), h)
		return expmTaylor(a, math.Abs(theta)*bound), nil
	default:
		return nil, ErrNotImplemented
	}
}

// termUnitary returns exp(-iθ·c·P) = cos(θc)·I - i·sin(θc)·P exactly.
func termUnitary(t operator.ScaledPauli, theta core.Parameter) *mat.CDense {
	angle := theta * t.Coeff
	dim := 1 << t.Word.N
	u := t.Word.Matrix()
	u.Scale(complex(0, -math.Sin(angle)), u)
	c := complex(math.Cos(angle), 0)
	for i := 0; i < dim; i++ {
		u.Set(i, i, u.At(i, i)+c)
	}
	return u
}

// expmTaylor computes exp(a) by scaling-and-squaring with a Taylor series,
// using normBound as an upper bound on the spectral norm of a.
func expmTaylor(a *mat.CDense, normBound float64) *mat.CDense {
	dim, _ := a.Dims()

	s := 0
	for normBound > 0.5 {
		normBound /= 2
		s++
	}
	scaled := mat.NewCDense(dim, dim, nil)
	scaled.Scale(complex(1/math.Pow(2, float64(s)), 0), a)

	u := eyeC(dim)
	term := eyeC(dim)
	for k := 1; k <= 24; k++ {
		next := mat.NewCDense(dim, dim, nil)
		next.Mul(term, scaled)
		next.Scale(complex(1/float64(k), 0), next)
		term = next

		sum := mat.NewCDense(dim, dim, nil)
		sum.Add(u, term)
		u = sum
	}
	for ; s > 0; s-- {
		sq := mat.NewCDense(dim, dim, nil)
		sq.Mul(u, u)
		u = sq
	}
	return u
}

func eyeC(dim int) *mat.CDense {
	m := mat.NewCDense(dim, dim, nil)
	for i := 0; i < dim; i++ {
		m.Set(i, i, 1)
	}
	return m
}
