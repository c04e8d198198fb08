// Package pool builds and holds operator pools: the fixed candidate
// generators the adapt protocols score and select from.
package pool

import (
	"errors"
	"fmt"

	"github.com/hupe1980/adaptgo/operator"
)

// ErrEmptyPool is returned when a pool without candidates is constructed or
// scored.
var ErrEmptyPool = errors.New("operator pool is empty")

// Pool is an ordered, immutable set of candidate generators on a fixed qubit
// count. Duplicates (by canonical operator key) are dropped at construction,
// first occurrence wins.
type Pool struct {
	gens []operator.Generator
	n    int
}

// New builds a pool from candidates. Candidates must agree on qubit count;
// at least one distinct candidate is required.
func New(n int, gens ...operator.Generator) (*Pool, error) {
	seen := make(map[string]bool, len(gens))
	kept := make([]operator.Generator, 0, len(gens))
	for _, g := range gens {
		if g.NumQubits() != n {
			return nil, fmt.Errorf("pool candidate acts on %d qubits, pool has %d", g.NumQubits(), n)
		}
		k := g.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		kept = append(kept, g)
	}
	if len(kept) == 0 {
		return nil, ErrEmptyPool
	}
	return &Pool{gens: kept, n: n}, nil
}

// Len returns the number of candidates.
func (p *Pool) Len() int { return len(p.gens) }

// NumQubits returns the qubit count.
func (p *Pool) NumQubits() int { return p.n }

// Generator returns candidate i.
func (p *Pool) Generator(i int) operator.Generator { return p.gens[i] }

// Generators returns a copy of the candidate slice.
func (p *Pool) Generators() []operator.Generator {
	out := make([]operator.Generator, len(p.gens))
	copy(out, p.gens)
	return out
}

// SingleQubitY returns the minimal pool of one Y rotation per qubit.
func SingleQubitY(n int) (*Pool, error) {
	gens := make([]operator.Generator, 0, n)
	for q := 0; q < n; q++ {
		gens = append(gens, operator.Scale(1, operator.SingleY(q, n)))
	}
	return New(n, gens...)
}

// TwoLocal returns the qubit-excitation style pool: one Y per qubit plus the
// XY and YX words for every qubit pair.
func TwoLocal(n int) (*Pool, error) {
	gens := make([]operator.Generator, 0, n+n*(n-1))
	for q := 0; q < n; q++ {
		gens = append(gens, operator.Scale(1, operator.SingleY(q, n)))
	}
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			gens = append(gens,
				operator.Scale(1, twoQubit(operator.SingleX(a, n), operator.SingleY(b, n))),
				operator.Scale(1, twoQubit(operator.SingleY(a, n), operator.SingleX(b, n))),
			)
		}
	}
	return New(n, gens...)
}

// QAOADouble returns the ADAPT-QAOA mixer pool: the global transverse-field
// mixer, single-qubit X and Y mixers, and the two-qubit XX, YY, XY and YX
// mixers for every pair.
func QAOADouble(n int) (*Pool, error) {
	gens := make([]operator.Generator, 0, 1+2*n+2*n*(n-1))

	global, err := GlobalX(n)
	if err != nil {
		return nil, err
	}
	gens = append(gens, global)

	for q := 0; q < n; q++ {
		gens = append(gens,
			operator.Scale(1, operator.SingleX(q, n)),
			operator.Scale(1, operator.SingleY(q, n)),
		)
	}
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			gens = append(gens,
				operator.Scale(1, twoQubit(operator.SingleX(a, n), operator.SingleX(b, n))),
				operator.Scale(1, twoQubit(operator.SingleY(a, n), operator.SingleY(b, n))),
				operator.Scale(1, twoQubit(operator.SingleX(a, n), operator.SingleY(b, n))),
				operator.Scale(1, twoQubit(operator.SingleY(a, n), operator.SingleX(b, n))),
			)
		}
	}
	return New(n, gens...)
}

// GlobalX returns the standard QAOA mixer sum_q X_q as a commuting sum.
func GlobalX(n int) (operator.CommutingSum, error) {
	terms := make([]operator.ScaledPauli, 0, n)
	for q := 0; q < n; q++ {
		terms = append(terms, operator.Scale(1, operator.SingleX(q, n)))
	}
	return operator.NewCommutingSum(terms)
}

// twoQubit merges two single-qubit words on disjoint qubits into one word.
func twoQubit(a, b operator.Pauli) operator.Pauli {
	return operator.Pauli{X: a.X | b.X, Z: a.Z | b.Z, N: a.N}
}
