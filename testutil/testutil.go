package testutil

import (
	"math"
	"math/rand"
	"sync"

	"github.com/hupe1980/adaptgo/core"
	"github.com/hupe1980/adaptgo/operator"
	"github.com/hupe1980/adaptgo/state"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 { return r.seed }

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0,1).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// NormFloat64 returns a standard-normal pseudo-random number.
func (r *RNG) NormFloat64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.NormFloat64()
}

// RandomPauli returns a random non-identity Pauli word on n qubits.
func RandomPauli(rng *RNG, n int) operator.Pauli {
	for {
		var p operator.Pauli
		p.N = n
		for q := 0; q < n; q++ {
			bit := core.Ket(1) << q
			switch rng.Intn(4) {
			case 1:
				p.X |= bit
			case 2:
				p.X |= bit
				p.Z |= bit
			case 3:
				p.Z |= bit
			}
		}
		if !p.Identity() {
			return p
		}
	}
}

// RandomPauliSum returns a random Hermitian Pauli sum on n qubits with the
// given number of distinct terms and coefficients in [-1,1).
func RandomPauliSum(rng *RNG, n, terms int) *operator.PauliSum {
	seen := make(map[operator.Pauli]bool, terms)
	out := make([]operator.ScaledPauli, 0, terms)
	for len(out) < terms {
		w := RandomPauli(rng, n)
		if seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, operator.Scale(2*rng.Float64()-1, w))
	}
	ps, err := operator.NewPauliSum(out)
	if err != nil {
		panic(err)
	}
	return ps
}

// RandomState returns a random normalized dense state on n qubits.
func RandomState(rng *RNG, n int) *state.Vector {
	amps := make([]complex128, 1<<n)
	for i := range amps {
		amps[i] = complex(rng.NormFloat64(), rng.NormFloat64())
	}
	v, err := state.NewVectorFromAmps(amps)
	if err != nil {
		panic(err)
	}
	v.Scale(complex(1/v.Norm(), 0))
	return v
}

// GradientFD returns the 5-point central finite-difference gradient of f at
// x with step h. Truncation error is O(h^4).
func GradientFD(f func(x []core.Parameter) (core.Energy, error), x []core.Parameter, h float64) ([]core.Energy, error) {
	grad := make([]core.Energy, len(x))
	probe := make([]core.Parameter, len(x))
	copy(probe, x)

	eval := func(i int, delta float64) (core.Energy, error) {
		probe[i] = x[i] + delta
		defer func() { probe[i] = x[i] }()
		return f(probe)
	}

	for i := range x {
		fp2, err := eval(i, 2*h)
		if err != nil {
			return nil, err
		}
		fp1, err := eval(i, h)
		if err != nil {
			return nil, err
		}
		fm1, err := eval(i, -h)
		if err != nil {
			return nil, err
		}
		fm2, err := eval(i, -2*h)
		if err != nil {
			return nil, err
		}
		grad[i] = (-fp2 + 8*fp1 - 8*fm1 + fm2) / (12 * h)
	}
	return grad, nil
}

// NearlyEqualSlices reports whether two float slices agree within tol.
func NearlyEqualSlices(a, b []float64, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}
