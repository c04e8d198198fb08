package evolve

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/adaptgo/internal/cvec"
	"github.com/hupe1980/adaptgo/operator"
	"github.com/hupe1980/adaptgo/state"
)

const (
	// krylovMaxDim caps the Lanczos subspace. Convergence for exp(-iθH) on
	// bounded Pauli sums is typically reached well below this.
	krylovMaxDim = 30
	// krylovBreakdownTol detects an invariant subspace (happy breakdown).
	krylovBreakdownTol = 1e-13
)

// krylovRotate applies exp(-iθ·H) to v in place via a Lanczos subspace,
// never forming the dense exponential. H is Hermitian, so the projected
// operator is real symmetric tridiagonal and its exponential action follows
// from an eigendecomposition of a krylovMaxDim-sized matrix.
//
// Cost: O(m) applications of H plus O(m·dim) basis storage per call.
func krylovRotate(sum *operator.PauliSum, theta float64, v *state.Vector) error {
	dim := len(v.Amps())
	m := krylovMaxDim
	if dim < m {
		m = dim
	}

	beta0 := v.Norm()
	if beta0 == 0 {
		return fmt.Errorf("krylov: zero state")
	}

	basis := make([][]complex128, 1, m)
	v0 := make([]complex128, dim)
	copy(v0, v.Amps())
	cvec.Scale(v0, complex(1/beta0, 0))
	basis[0] = v0

	alpha := make([]float64, 0, m)
	beta := make([]float64, 0, m)

	work, _ := state.NewVectorFromAmps(make([]complex128, dim))
	terms := sum.Terms()

	for j := 0; j < m; j++ {
		vj, _ := state.NewVectorFromAmps(basis[j])
		if err := applyTermsInto(work, vj, terms); err != nil {
			return err
		}
		w := work.Amps()

		a := real(cvec.Dot(basis[j], w))
		alpha = append(alpha, a)
		cvec.AXPY(w, basis[j], complex(-a, 0))
		if j > 0 {
			cvec.AXPY(w, basis[j-1], complex(-beta[j-1], 0))
		}
		// Full reorthogonalization; cheap at this subspace size and it keeps
		// the tridiagonal model honest for clustered spectra.
		for k := 0; k <= j; k++ {
			overlap := cvec.Dot(basis[k], w)
			cvec.AXPY(w, basis[k], -overlap)
		}

		b := math.Sqrt(cvec.Norm2(w))
		if b < krylovBreakdownTol || j == m-1 {
			break
		}
		beta = append(beta, b)
		next := make([]complex128, dim)
		copy(next, w)
		cvec.Scale(next, complex(1/b, 0))
		basis = append(basis, next)
	}

	k := len(alpha)
	// Projected exponential: T = tridiag(beta, alpha, beta), real symmetric.
	t := mat.NewSymDense(k, nil)
	for i := 0; i < k; i++ {
		t.SetSym(i, i, alpha[i])
		if i+1 < k {
			t.SetSym(i, i+1, beta[i])
		}
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(t, true); !ok {
		return fmt.Errorf("krylov: tridiagonal eigendecomposition failed")
	}
	var q mat.Dense
	eig.VectorsTo(&q)
	vals := eig.Values(nil)

	// u = Q · exp(-iθΛ) · Qᵀ · e1, scaled back by the input norm.
	u := make([]complex128, k)
	for r := 0; r < k; r++ {
		var acc complex128
		for c := 0; c < k; c++ {
			phase := cmplx.Exp(complex(0, -theta*vals[c]))
			acc += complex(q.At(r, c), 0) * phase * complex(q.At(0, c), 0)
		}
		u[r] = acc * complex(beta0, 0)
	}

	out := v.Amps()
	cvec.Zero(out)
	for j := 0; j < len(basis) && j < k; j++ {
		cvec.AXPY(out, basis[j], u[j])
	}
	return nil
}
