package operator

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

// Generator is the Hermitian operator G of a parameterized rotation exp(-iθG).
//
// Implementations are immutable; Key is a canonical value identity used for
// pool deduplication. How a generator is exponentiated depends on its concrete
// representation (see package evolve).
type Generator interface {
	NumQubits() int
	Terms() []ScaledPauli
	Support() *roaring.Bitmap
	Key() string
}

// Observable is the operator whose expectation value defines the cost
// function. Any Generator doubles as an Observable; the canonical concrete
// type is PauliSum.
type Observable interface {
	NumQubits() int
	Terms() []ScaledPauli
	Key() string
}

// ScaledPauli is a single real-weighted Pauli word. Real weights keep the
// operator Hermitian.
type ScaledPauli struct {
	Coeff float64
	Word  Pauli
}

// Scale returns a ScaledPauli with coefficient c.
func Scale(c float64, w Pauli) ScaledPauli { return ScaledPauli{Coeff: c, Word: w} }

// NumQubits returns the qubit count of the word.
func (s ScaledPauli) NumQubits() int { return s.Word.N }

// Terms returns the operator as a one-term slice.
func (s ScaledPauli) Terms() []ScaledPauli { return []ScaledPauli{s} }

// Support returns the qubits the operator acts on.
func (s ScaledPauli) Support() *roaring.Bitmap { return s.Word.Support() }

// Key returns the canonical value identity.
func (s ScaledPauli) Key() string {
	return fmt.Sprintf("P[%+g %s]", s.Coeff, s.Word)
}

func (s ScaledPauli) String() string { return fmt.Sprintf("%+g*%s", s.Coeff, s.Word) }

// CommutingSum is a sum of pairwise-commuting weighted words. Because the
// terms commute, the product of per-term rotations equals the exact
// exponential, so evolution Trotterizes trivially.
type CommutingSum struct {
	terms []ScaledPauli
	n     int
}

// NewCommutingSum builds a CommutingSum after verifying dimensions and
// pairwise commutation.
func NewCommutingSum(terms []ScaledPauli) (CommutingSum, error) {
	if len(terms) == 0 {
		return CommutingSum{}, fmt.Errorf("commuting sum needs at least one term")
	}
	n := terms[0].Word.N
	for i, t := range terms {
		if t.Word.N != n {
			return CommutingSum{}, fmt.Errorf("term %d acts on %d qubits, want %d", i, t.Word.N, n)
		}
		for j := i + 1; j < len(terms); j++ {
			if !t.Word.Commutes(terms[j].Word) {
				return CommutingSum{}, fmt.Errorf("terms %d and %d do not commute", i, j)
			}
		}
	}
	cp := make([]ScaledPauli, len(terms))
	copy(cp, terms)
	return CommutingSum{terms: cp, n: n}, nil
}

// NumQubits returns the qubit count.
func (c CommutingSum) NumQubits() int { return c.n }

// Terms returns the terms in application order.
func (c CommutingSum) Terms() []ScaledPauli { return c.terms }

// Support returns the union of the term supports.
func (c CommutingSum) Support() *roaring.Bitmap {
	rb := roaring.New()
	for _, t := range c.terms {
		rb.Or(t.Word.Support())
	}
	return rb
}

// Key returns the canonical value identity. Term order is part of the value:
// evolution applies terms in order, and two orderings are distinct generators
// even though they exponentiate identically.
func (c CommutingSum) Key() string { return termsKey("C", c.terms) }

// PauliSum is a general weighted sum of Pauli words, not necessarily
// commuting. Duplicate words are merged at construction and vanishing terms
// dropped; terms are kept in canonical word order, making Key order-free.
type PauliSum struct {
	terms []ScaledPauli
	n     int
}

// NewPauliSum builds a PauliSum from terms on a shared qubit count.
func NewPauliSum(terms []ScaledPauli) (*PauliSum, error) {
	if len(terms) == 0 {
		return nil, fmt.Errorf("pauli sum needs at least one term")
	}
	n := terms[0].Word.N
	merged := make(map[Pauli]float64, len(terms))
	for i, t := range terms {
		if t.Word.N != n {
			return nil, fmt.Errorf("term %d acts on %d qubits, want %d", i, t.Word.N, n)
		}
		merged[t.Word] += t.Coeff
	}
	out := make([]ScaledPauli, 0, len(merged))
	for w, c := range merged {
		if math.Abs(c) < 1e-15 {
			continue
		}
		out = append(out, ScaledPauli{Coeff: c, Word: w})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("pauli sum is numerically zero")
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Word.X != out[j].Word.X {
			return out[i].Word.X < out[j].Word.X
		}
		return out[i].Word.Z < out[j].Word.Z
	})
	return &PauliSum{terms: out, n: n}, nil
}

// NumQubits returns the qubit count.
func (p *PauliSum) NumQubits() int { return p.n }

// Terms returns the canonicalized terms.
func (p *PauliSum) Terms() []ScaledPauli { return p.terms }

// Support returns the union of the term supports.
func (p *PauliSum) Support() *roaring.Bitmap {
	rb := roaring.New()
	for _, t := range p.terms {
		rb.Or(t.Word.Support())
	}
	return rb
}

// Key returns the canonical value identity.
func (p *PauliSum) Key() string { return termsKey("S", p.terms) }

// Diagonal reports whether every term is diagonal in the computational basis.
func (p *PauliSum) Diagonal() bool {
	for _, t := range p.terms {
		if !t.Word.Diagonal() {
			return false
		}
	}
	return true
}

// Commuting reports whether all terms pairwise commute.
func (p *PauliSum) Commuting() bool {
	for i := range p.terms {
		for j := i + 1; j < len(p.terms); j++ {
			if !p.terms[i].Word.Commutes(p.terms[j].Word) {
				return false
			}
		}
	}
	return true
}

func termsKey(tag string, terms []ScaledPauli) string {
	var sb strings.Builder
	sb.WriteString(tag)
	sb.WriteByte('[')
	for i, t := range terms {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%+g %s", t.Coeff, t.Word)
	}
	sb.WriteByte(']')
	return sb.String()
}
