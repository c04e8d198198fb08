package ansatz

import (
	"fmt"

	"github.com/hupe1980/adaptgo/core"
	"github.com/hupe1980/adaptgo/evolve"
	"github.com/hupe1980/adaptgo/operator"
	"github.com/hupe1980/adaptgo/state"
)

// QAOA is the ADAPT-QAOA ansatz: each layer first rotates by the
// observable-derived phase operator exp(-iγ_k·H), then by the selected mixer
// exp(-iβ_k·A_k).
//
// Internally γ and β live in separate sub-vectors, but the public
// Angles/Bind contract presents a single interleaved vector in the fixed
// order γ₁,β₁,γ₂,β₂,… so optimizers and gradients see one flat layout.
type QAOA struct {
	phase     operator.CommutingSum
	mixers    []operator.Generator
	gammas    []core.Parameter
	betas     []core.Parameter
	gamma0    core.Parameter
	n         int
	optimized bool
	converged bool
}

var _ Ansatz = (*QAOA)(nil)

// NewQAOA builds an empty QAOA ansatz from an observable whose terms must
// pairwise commute (diagonal cost Hamiltonians always do). New layers start
// with γ = gamma0 and β = whatever the adapt protocol selects (typically 0);
// a zero gamma0 would zero out every phase-layer gradient, so a small
// symmetry-breaking value such as 0.01 is conventional.
func NewQAOA(obs operator.Observable, gamma0 core.Parameter) (*QAOA, error) {
	phase, err := operator.NewCommutingSum(obs.Terms())
	if err != nil {
		return nil, fmt.Errorf("observable is not usable as a phase rotation: %w", err)
	}
	return &QAOA{phase: phase, gamma0: gamma0, n: obs.NumQubits()}, nil
}

// NumQubits returns the qubit count.
func (a *QAOA) NumQubits() int { return a.n }

// Len returns the rotation count: two per layer.
func (a *QAOA) Len() int { return 2 * len(a.mixers) }

// Rotation returns rotation i of the interleaved sequence: even indices are
// phase rotations, odd indices mixers.
func (a *QAOA) Rotation(i int) (operator.Generator, core.Parameter) {
	if i%2 == 0 {
		return a.phase, a.gammas[i/2]
	}
	return a.mixers[i/2], a.betas[i/2]
}

// Layers returns the number of (phase, mixer) layers.
func (a *QAOA) Layers() int { return len(a.mixers) }

// Mixer returns the mixer generator of layer k.
func (a *QAOA) Mixer(k int) operator.Generator { return a.mixers[k] }

// Append adds one layer per generator: γ initialized to gamma0, β to the
// supplied parameter. Clears Optimized, never touches Converged.
func (a *QAOA) Append(gens []operator.Generator, params []core.Parameter) error {
	if len(gens) != len(params) {
		return &ErrLengthMismatch{Expected: len(gens), Actual: len(params)}
	}
	for _, g := range gens {
		if g.NumQubits() != a.n {
			return fmt.Errorf("mixer acts on %d qubits, ansatz has %d", g.NumQubits(), a.n)
		}
	}
	a.mixers = append(a.mixers, gens...)
	for _, p := range params {
		a.gammas = append(a.gammas, a.gamma0)
		a.betas = append(a.betas, p)
	}
	a.optimized = false
	return nil
}

// Angles returns the interleaved parameter vector γ₁,β₁,γ₂,β₂,…
func (a *QAOA) Angles() []core.Parameter {
	out := make([]core.Parameter, 0, a.Len())
	for k := range a.mixers {
		out = append(out, a.gammas[k], a.betas[k])
	}
	return out
}

// Bind overwrites all parameters from an interleaved vector.
func (a *QAOA) Bind(x []core.Parameter) error {
	if len(x) != a.Len() {
		return &ErrLengthMismatch{Expected: a.Len(), Actual: len(x)}
	}
	for k := range a.mixers {
		a.gammas[k] = x[2*k]
		a.betas[k] = x[2*k+1]
	}
	return nil
}

// ScoringState prepares the state candidate scores are taken against: the
// fully evolved state carried through one extra phase rotation at gamma0,
// matching where an appended layer's mixer would act.
func (a *QAOA) ScoringState(ref state.State) (state.State, error) {
	st, err := evolve.Evolve(a, ref)
	if err != nil {
		return nil, err
	}
	if err := evolve.Rotate(a.phase, a.gamma0, st); err != nil {
		return nil, err
	}
	return st, nil
}

// Optimized reports whether the current parameters are locally optimal.
func (a *QAOA) Optimized() bool { return a.optimized }

// SetOptimized sets the optimized flag.
func (a *QAOA) SetOptimized(v bool) { a.optimized = v }

// Converged reports whether mixer selection has converged.
func (a *QAOA) Converged() bool { return a.converged }

// SetConverged sets the converged flag.
func (a *QAOA) SetConverged(v bool) { a.converged = v }
