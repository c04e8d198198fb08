package evolve

import (
	"fmt"

	"github.com/hupe1980/adaptgo/core"
	"github.com/hupe1980/adaptgo/operator"
	"github.com/hupe1980/adaptgo/state"
)

// Differential returns ∂/∂θ[exp(-iθG)] applied to pre, evaluated at theta.
//
// For a single-term or exactly-exponentiated generator this is -iG acting on
// the rotated state. For a multi-term product-formula generator the
// derivative splits per term: rotate by the terms before k, reflect by
// -i·term_k, rotate by the terms from k onward, and sum over k. CommutingSum
// uses the per-term form; its terms commute, so the two agree there.
func Differential(g operator.Generator, theta core.Parameter, pre state.State) (state.State, error) {
	if g.NumQubits() != pre.NumQubits() {
		return nil, &ErrDimensionMismatch{Operator: g.NumQubits(), State: pre.NumQubits()}
	}

	switch gen := g.(type) {
	case operator.ScaledPauli, *operator.PauliSum:
		rotated := pre.Clone()
		if err := Rotate(g, theta, rotated); err != nil {
			return nil, err
		}
		sigma, err := Apply(g, rotated)
		if err != nil {
			return nil, err
		}
		sigma.Scale(-1i)
		return sigma, nil

	case operator.CommutingSum:
		terms := gen.Terms()
		sigma := pre.ZeroLike()
		branch := pre.ZeroLike()
		reflected := pre.ZeroLike()
		for k := range terms {
			if err := copyInto(branch, pre); err != nil {
				return nil, err
			}
			for _, t := range terms[:k] {
				if err := rotateTerm(t, theta, branch); err != nil {
					return nil, err
				}
			}
			if err := applyTermsInto(reflected, branch, terms[k:k+1]); err != nil {
				return nil, err
			}
			reflected.Scale(-1i)
			for _, t := range terms[k:] {
				if err := rotateTerm(t, theta, reflected); err != nil {
					return nil, err
				}
			}
			if err := sigma.AXPY(1, reflected); err != nil {
				return nil, err
			}
		}
		return sigma, nil

	default:
		return nil, ErrNotImplemented
	}
}

// Gradient returns ∂<O>/∂θ_i for every rotation of the sequence, computed by
// one forward evolution and one backward (adjoint) sweep: O(L) generator
// applications for L parameters. The two full-state work vectors are the only
// per-call state allocations beyond the per-index costate.
func Gradient(seq Sequence, obs operator.Observable, ref state.State) ([]core.Energy, error) {
	psi, err := Evolve(seq, ref)
	if err != nil {
		return nil, err
	}
	lambda, err := Apply(obs, psi)
	if err != nil {
		return nil, err
	}

	grad := make([]core.Energy, seq.Len())
	for i := seq.Len() - 1; i >= 0; i-- {
		g, theta := seq.Rotation(i)
		// psi currently holds the state evolved through rotation i; drop back
		// to the pre-rotation state before taking the differential.
		if err := Rotate(g, -theta, psi); err != nil {
			return nil, err
		}
		sigma, err := Differential(g, theta, psi)
		if err != nil {
			return nil, err
		}
		d, err := sigma.Dot(lambda)
		if err != nil {
			return nil, err
		}
		grad[i] = 2 * real(d)
		if err := Rotate(g, -theta, lambda); err != nil {
			return nil, err
		}
	}
	return grad, nil
}

// Partial returns ∂<O>/∂θ_index alone, by forward-evolve / reflect /
// finish-evolve. O(L) work per index, so the full vector costs O(L²): the
// reference and consistency-check path, not the production one. Gradient and
// Partial must agree exactly.
func Partial(index int, seq Sequence, obs operator.Observable, ref state.State) (core.Energy, error) {
	if index < 0 || index >= seq.Len() {
		return 0, fmt.Errorf("partial: index %d out of range [0,%d)", index, seq.Len())
	}

	// Evolve through the rotations before index; empty when index is 0.
	head := ref.Clone()
	for i := 0; i < index; i++ {
		g, theta := seq.Rotation(i)
		if err := Rotate(g, theta, head); err != nil {
			return 0, err
		}
	}

	g, theta := seq.Rotation(index)
	sigma, err := Differential(g, theta, head)
	if err != nil {
		return 0, err
	}
	if err := Rotate(g, theta, head); err != nil {
		return 0, err
	}

	// Finish both branches through the remaining rotations; empty when index
	// is the last.
	for i := index + 1; i < seq.Len(); i++ {
		gi, ti := seq.Rotation(i)
		if err := Rotate(gi, ti, sigma); err != nil {
			return 0, err
		}
		if err := Rotate(gi, ti, head); err != nil {
			return 0, err
		}
	}

	lambda, err := Apply(obs, head)
	if err != nil {
		return 0, err
	}
	d, err := sigma.Dot(lambda)
	if err != nil {
		return 0, err
	}
	return 2 * real(d), nil
}
