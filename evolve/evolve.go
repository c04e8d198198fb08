package evolve

import (
	"github.com/hupe1980/adaptgo/core"
	"github.com/hupe1980/adaptgo/operator"
	"github.com/hupe1980/adaptgo/state"
)

// Sequence is an ordered list of (generator, angle) rotations, lowest index
// applied to the state first. Ansatz implementations satisfy it.
type Sequence interface {
	Len() int
	Rotation(i int) (operator.Generator, core.Parameter)
}

// Rotate applies exp(-iθG) to st in place.
//
// ScaledPauli rotations are applied in closed form; CommutingSum rotations
// apply each term sequentially with the shared angle (exact, since the terms
// commute); PauliSum rotations use Krylov-subspace exponentiation and are
// implemented for dense states only.
func Rotate(g operator.Generator, theta core.Parameter, st state.State) error {
	if g.NumQubits() != st.NumQubits() {
		return &ErrDimensionMismatch{Operator: g.NumQubits(), State: st.NumQubits()}
	}

	switch gen := g.(type) {
	case operator.ScaledPauli:
		return rotateTerm(gen, theta, st)
	case operator.CommutingSum:
		for _, t := range gen.Terms() {
			if err := rotateTerm(t, theta, st); err != nil {
				return err
			}
		}
		return nil
	case *operator.PauliSum:
		v, ok := st.(*state.Vector)
		if !ok {
			return ErrNotImplemented
		}
		return krylovRotate(gen, theta, v)
	default:
		return ErrNotImplemented
	}
}

func rotateTerm(t operator.ScaledPauli, theta core.Parameter, st state.State) error {
	angle := theta * t.Coeff
	switch s := st.(type) {
	case *state.Vector:
		rotateWordDense(t.Word, angle, s)
		return nil
	case *state.Map:
		rotateWordSparse(t.Word, angle, s)
		return nil
	default:
		return ErrNotImplemented
	}
}

// EvolveInPlace mutates st by every rotation of the sequence in order.
// This is the canonical implementation the non-mutating variants build on;
// it allocates at most once per generator, never per qubit.
func EvolveInPlace(seq Sequence, st state.State) error {
	for i := 0; i < seq.Len(); i++ {
		g, theta := seq.Rotation(i)
		if err := Rotate(g, theta, st); err != nil {
			return err
		}
	}
	return nil
}

// Evolve returns the reference state carried through the sequence, leaving
// ref untouched.
func Evolve(seq Sequence, ref state.State) (state.State, error) {
	st := ref.Clone()
	if err := EvolveInPlace(seq, st); err != nil {
		return nil, err
	}
	return st, nil
}

// unwind un-applies rotations i in [hi, lo] (descending) from st.
func unwind(seq Sequence, st state.State, hi, lo int) error {
	for i := hi; i >= lo; i-- {
		g, theta := seq.Rotation(i)
		if err := Rotate(g, -theta, st); err != nil {
			return err
		}
	}
	return nil
}

// Evaluate returns the expectation value <st|O|st>, real part only (the
// observable is assumed Hermitian).
func Evaluate(o operator.Observable, st state.State) (core.Energy, error) {
	applied, err := Apply(o, st)
	if err != nil {
		return 0, err
	}
	d, err := st.Dot(applied)
	if err != nil {
		return 0, err
	}
	return real(d), nil
}
