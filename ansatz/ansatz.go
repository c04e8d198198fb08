// Package ansatz holds the ADAPT algorithm's frozen-in-time progress: the
// ordered generator/parameter sequence plus the two convergence flags.
//
// The flags are orthogonal by contract: Optimized means the current
// parameters are locally optimal for the current generator sequence;
// Converged means no further generator should be added. Appending clears
// Optimized (a fresh parameter invalidates the optimum) and never touches
// Converged. Flags are set exclusively by protocols and callbacks, never
// inferred by the ansatz itself.
package ansatz

import (
	"fmt"

	"github.com/hupe1980/adaptgo/core"
	"github.com/hupe1980/adaptgo/evolve"
	"github.com/hupe1980/adaptgo/operator"
)

// ErrLengthMismatch indicates a parameter vector of the wrong length.
type ErrLengthMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrLengthMismatch) Error() string {
	return fmt.Sprintf("parameter length mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// Ansatz is the mutable algorithm state shared by the adapt and optimize
// protocols. It is an evolve.Sequence plus parameter-vector access and the
// two convergence flags.
//
// Angles presents the full parameter vector in a single flat layout; Bind
// overwrites it in place without touching structure or flags. Variant
// implementations may store parameter sub-vectors internally (see QAOA) but
// must present the same flat contract.
type Ansatz interface {
	evolve.Sequence

	NumQubits() int
	// Angles returns a copy of the full parameter vector.
	Angles() []core.Parameter
	// Bind overwrites the full parameter vector in place. Same length only.
	Bind(x []core.Parameter) error
	// Append adds generators with initial parameters and clears Optimized.
	Append(gens []operator.Generator, params []core.Parameter) error

	Optimized() bool
	SetOptimized(v bool)
	Converged() bool
	SetConverged(v bool)
}

// Basic is the standard ADAPT ansatz: one parameter per generator, applied
// lowest index first.
type Basic struct {
	gens      []operator.Generator
	params    []core.Parameter
	n         int
	optimized bool
	converged bool
}

var _ Ansatz = (*Basic)(nil)

// NewBasic returns an empty ansatz on n qubits.
func NewBasic(n int) *Basic {
	return &Basic{n: n}
}

// NumQubits returns the qubit count.
func (a *Basic) NumQubits() int { return a.n }

// Len returns the number of (generator, parameter) pairs.
func (a *Basic) Len() int { return len(a.gens) }

// Rotation returns pair i.
func (a *Basic) Rotation(i int) (operator.Generator, core.Parameter) {
	return a.gens[i], a.params[i]
}

// Generator returns the generator at index i.
func (a *Basic) Generator(i int) operator.Generator { return a.gens[i] }

// Parameter returns the parameter at index i.
func (a *Basic) Parameter(i int) core.Parameter { return a.params[i] }

// SetParameter overwrites the parameter at index i. Flags are untouched;
// invalidation is the caller's concern.
func (a *Basic) SetParameter(i int, v core.Parameter) { a.params[i] = v }

// Set overwrites pair i.
func (a *Basic) Set(i int, g operator.Generator, v core.Parameter) error {
	if g.NumQubits() != a.n {
		return fmt.Errorf("generator acts on %d qubits, ansatz has %d", g.NumQubits(), a.n)
	}
	a.gens[i] = g
	a.params[i] = v
	return nil
}

// Append adds one or more pairs and clears Optimized. Converged is never
// touched here; generator-selection convergence is an orthogonal signal.
func (a *Basic) Append(gens []operator.Generator, params []core.Parameter) error {
	if len(gens) != len(params) {
		return &ErrLengthMismatch{Expected: len(gens), Actual: len(params)}
	}
	for _, g := range gens {
		if g.NumQubits() != a.n {
			return fmt.Errorf("generator acts on %d qubits, ansatz has %d", g.NumQubits(), a.n)
		}
	}
	a.gens = append(a.gens, gens...)
	a.params = append(a.params, params...)
	a.optimized = false
	return nil
}

// Truncate shrinks the ansatz to its first k pairs.
func (a *Basic) Truncate(k int) error {
	if k < 0 || k > len(a.gens) {
		return fmt.Errorf("truncate length %d out of range [0,%d]", k, len(a.gens))
	}
	a.gens = a.gens[:k]
	a.params = a.params[:k]
	return nil
}

// Angles returns a copy of the parameter vector; the ansatz owns its storage
// exclusively.
func (a *Basic) Angles() []core.Parameter {
	out := make([]core.Parameter, len(a.params))
	copy(out, a.params)
	return out
}

// Bind overwrites the parameter vector in place.
func (a *Basic) Bind(x []core.Parameter) error {
	if len(x) != len(a.params) {
		return &ErrLengthMismatch{Expected: len(a.params), Actual: len(x)}
	}
	copy(a.params, x)
	return nil
}

// Optimized reports whether the current parameters are locally optimal.
func (a *Basic) Optimized() bool { return a.optimized }

// SetOptimized sets the optimized flag.
func (a *Basic) SetOptimized(v bool) { a.optimized = v }

// Converged reports whether generator selection has converged.
func (a *Basic) Converged() bool { return a.converged }

// SetConverged sets the converged flag.
func (a *Basic) SetConverged(v bool) { a.converged = v }
