package adaptgo

import (
	"context"
	"fmt"
	"math"

	"github.com/hupe1980/adaptgo/adapt"
	"github.com/hupe1980/adaptgo/ansatz"
	"github.com/hupe1980/adaptgo/core"
	"github.com/hupe1980/adaptgo/evolve"
	"github.com/hupe1980/adaptgo/operator"
	"github.com/hupe1980/adaptgo/pool"
	"github.com/hupe1980/adaptgo/state"
)

// Tolerances bounds the per-category deviations Validate accepts.
type Tolerances struct {
	// Evolve bounds the distance between Evolve and EvolveInPlace results.
	Evolve float64
	// Gradient bounds the Gradient vs Partial deviation per index.
	Gradient float64
	// Score bounds the score vs appended-at-zero partial deviation per
	// candidate.
	Score float64
	// Matrix bounds the deviation from the brute-force dense unitary for
	// evolution and evaluation.
	Matrix float64
}

// DefaultTolerances returns bounds suitable for double precision at small
// qubit counts.
func DefaultTolerances() Tolerances {
	return Tolerances{
		Evolve:   1e-12,
		Gradient: 1e-8,
		Score:    1e-8,
		Matrix:   1e-9,
	}
}

// ErrValidation reports one failed consistency check.
type ErrValidation struct {
	Check     string
	Deviation float64
	Tolerance float64
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation check %q failed: deviation %g exceeds tolerance %g", e.Check, e.Deviation, e.Tolerance)
}

// Validate cross-checks one problem combination (ansatz, pool, observable,
// reference) through every independent code path before committing to a long
// run: Evolve against EvolveInPlace, analytic gradients against per-index
// partials, pool scores against the gradient each candidate would have if
// appended at angle zero, and (for dense references) everything against the
// brute-force dense unitary.
//
// Any representation gap surfaces here as ErrNotImplemented rather than deep
// inside a run.
func Validate(ctx context.Context, a ansatz.Ansatz, pl *pool.Pool, obs operator.Observable, ref state.State, tol Tolerances) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := validateEvolution(a, ref, tol); err != nil {
		return translateError(err)
	}
	if err := validateGradient(a, obs, ref, tol); err != nil {
		return translateError(err)
	}
	if err := validateScores(ctx, a, pl, obs, ref, tol); err != nil {
		return translateError(err)
	}
	if err := validateMatrix(a, obs, ref, tol); err != nil {
		return translateError(err)
	}
	return nil
}

func validateEvolution(a ansatz.Ansatz, ref state.State, tol Tolerances) error {
	evolved, err := evolve.Evolve(a, ref)
	if err != nil {
		return err
	}

	inPlace := ref.Clone()
	if err := evolve.EvolveInPlace(a, inPlace); err != nil {
		return err
	}

	d, err := stateDistance(evolved, inPlace)
	if err != nil {
		return err
	}
	if d > tol.Evolve {
		return &ErrValidation{Check: "evolve vs evolve-in-place", Deviation: d, Tolerance: tol.Evolve}
	}
	return nil
}

func validateGradient(a ansatz.Ansatz, obs operator.Observable, ref state.State, tol Tolerances) error {
	grad, err := evolve.Gradient(a, obs, ref)
	if err != nil {
		return err
	}

	for i := 0; i < a.Len(); i++ {
		partial, err := evolve.Partial(i, a, obs, ref)
		if err != nil {
			return err
		}
		if d := math.Abs(grad[i] - partial); d > tol.Gradient {
			return &ErrValidation{Check: fmt.Sprintf("gradient vs partial at index %d", i), Deviation: d, Tolerance: tol.Gradient}
		}
	}
	return nil
}

// appendedAtZero is the one-rotation sequence a scored candidate would add.
type appendedAtZero struct {
	gen operator.Generator
}

func (s appendedAtZero) Len() int { return 1 }

func (s appendedAtZero) Rotation(int) (operator.Generator, core.Parameter) {
	return s.gen, 0
}

func validateScores(ctx context.Context, a ansatz.Ansatz, pl *pool.Pool, obs operator.Observable, ref state.State, tol Tolerances) error {
	scores, err := adapt.Scores(ctx, a, pl, obs, ref)
	if err != nil {
		return err
	}

	// Score against the same state the protocols score against.
	var scored state.State
	if s, ok := a.(adapt.ScoringStater); ok {
		scored, err = s.ScoringState(ref)
	} else {
		scored, err = evolve.Evolve(a, ref)
	}
	if err != nil {
		return err
	}

	for i := 0; i < pl.Len(); i++ {
		partial, err := evolve.Partial(0, appendedAtZero{gen: pl.Generator(i)}, obs, scored)
		if err != nil {
			return err
		}
		if d := math.Abs(scores[i] - partial); d > tol.Score {
			return &ErrValidation{Check: fmt.Sprintf("score vs appended partial for candidate %d", i), Deviation: d, Tolerance: tol.Score}
		}
	}
	return nil
}

func validateMatrix(a ansatz.Ansatz, obs operator.Observable, ref state.State, tol Tolerances) error {
	vec, ok := ref.(*state.Vector)
	if !ok {
		// The brute-force unitary check needs a dense reference.
		return nil
	}

	u, err := evolve.Matrix(a, a.NumQubits())
	if err != nil {
		return err
	}

	dim := 1 << a.NumQubits()
	amps := make([]complex128, dim)
	for i := 0; i < dim; i++ {
		var sum complex128
		for j := 0; j < dim; j++ {
			sum += u.At(i, j) * vec.Amps()[j]
		}
		amps[i] = sum
	}
	brute, err := state.NewVectorFromAmps(amps)
	if err != nil {
		return err
	}

	evolved, err := evolve.Evolve(a, ref)
	if err != nil {
		return err
	}

	d, err := stateDistance(evolved, brute)
	if err != nil {
		return err
	}
	if d > tol.Matrix {
		return &ErrValidation{Check: "evolve vs dense unitary", Deviation: d, Tolerance: tol.Matrix}
	}

	bruteEnergy, err := evolve.Evaluate(obs, brute)
	if err != nil {
		return err
	}
	energy, err := evolve.Evaluate(obs, evolved)
	if err != nil {
		return err
	}
	if d := math.Abs(energy - bruteEnergy); d > tol.Matrix {
		return &ErrValidation{Check: "evaluate vs dense unitary", Deviation: d, Tolerance: tol.Matrix}
	}
	return nil
}

func stateDistance(a, b state.State) (float64, error) {
	diff := a.Clone()
	if err := diff.AXPY(-1, b); err != nil {
		return 0, err
	}
	return diff.Norm(), nil
}
