package evolve

import (
	"math"
	"math/bits"

	"github.com/hupe1980/adaptgo/core"
	"github.com/hupe1980/adaptgo/operator"
	"github.com/hupe1980/adaptgo/state"
)

// rotateWordDense applies exp(-i·angle·P) to a dense state in place.
// Diagonal words reduce to per-amplitude phases; off-diagonal words couple
// disjoint (k, k^X) pairs, so the update is aliasing-free.
func rotateWordDense(w operator.Pauli, angle float64, v *state.Vector) {
	amps := v.Amps()
	c := complex(math.Cos(angle), 0)
	s := complex(0, -math.Sin(angle)) // -i·sin

	if w.X == 0 {
		for k := range amps {
			amps[k] *= c + s*w.Phase(core.Ket(k))
		}
		return
	}

	msb := core.Ket(1) << (63 - bits.LeadingZeros64(uint64(w.X)))
	for k := range amps {
		kk := core.Ket(k)
		if kk&msb != 0 {
			continue
		}
		j := kk ^ w.X
		ak, aj := amps[kk], amps[j]
		amps[kk] = c*ak + s*w.Phase(j)*aj
		amps[j] = c*aj + s*w.Phase(kk)*ak
	}
}

// rotateWordSparse applies exp(-i·angle·P) to a sparse state in place.
// One map allocation per rotation; amplitudes below noise are not pruned
// automatically (see state.Map.Prune).
func rotateWordSparse(w operator.Pauli, angle float64, m *state.Map) {
	c := complex(math.Cos(angle), 0)
	s := complex(0, -math.Sin(angle))

	src := m.Amplitudes()
	if w.X == 0 {
		for k := range src {
			src[k] *= c + s*w.Phase(k)
		}
		return
	}

	out := m.ZeroLike().(*state.Map)
	for k, a := range src {
		out.Add(k, c*a)
		out.Add(k^w.X, s*w.Phase(k)*a)
	}
	_ = m.Replace(out)
}

// applyTermDense accumulates coeff·P·src into dst.
func applyTermDense(dst, src *state.Vector, t operator.ScaledPauli) {
	da, sa := dst.Amps(), src.Amps()
	c := complex(t.Coeff, 0)
	for k := range sa {
		kk := core.Ket(k)
		j := kk ^ t.Word.X
		da[j] += c * t.Word.Phase(kk) * sa[kk]
	}
}

// applyTermSparse accumulates coeff·P·src into dst.
func applyTermSparse(dst, src *state.Map, t operator.ScaledPauli) {
	c := complex(t.Coeff, 0)
	src.ForEach(func(k core.Ket, a complex128) {
		dst.Add(k^t.Word.X, c*t.Word.Phase(k)*a)
	})
}

// applyTermsInto overwrites dst with (Σ terms)·src. dst and src must share
// shape and representation.
func applyTermsInto(dst, src state.State, terms []operator.ScaledPauli) error {
	switch s := src.(type) {
	case *state.Vector:
		d, ok := dst.(*state.Vector)
		if !ok {
			return state.ErrMixedRepresentation
		}
		d.Zero()
		for _, t := range terms {
			applyTermDense(d, s, t)
		}
		return nil
	case *state.Map:
		d, ok := dst.(*state.Map)
		if !ok {
			return state.ErrMixedRepresentation
		}
		if err := d.Replace(d.ZeroLike().(*state.Map)); err != nil {
			return err
		}
		for _, t := range terms {
			applyTermSparse(d, s, t)
		}
		return nil
	default:
		return ErrNotImplemented
	}
}

// Apply returns O·st as a fresh state, leaving st untouched.
func Apply(o operator.Observable, st state.State) (state.State, error) {
	if o.NumQubits() != st.NumQubits() {
		return nil, &ErrDimensionMismatch{Operator: o.NumQubits(), State: st.NumQubits()}
	}
	out := st.ZeroLike()
	if err := applyTermsInto(out, st, o.Terms()); err != nil {
		return nil, err
	}
	return out, nil
}

// copyInto overwrites dst with src, reusing dst's storage where the
// representation allows. Both must share shape and representation.
func copyInto(dst, src state.State) error {
	switch d := dst.(type) {
	case *state.Vector:
		s, ok := src.(*state.Vector)
		if !ok {
			return state.ErrMixedRepresentation
		}
		return d.CopyFrom(s)
	case *state.Map:
		s, ok := src.(*state.Map)
		if !ok {
			return state.ErrMixedRepresentation
		}
		return d.Replace(s.Clone().(*state.Map))
	default:
		return ErrNotImplemented
	}
}
