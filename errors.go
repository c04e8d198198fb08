package adaptgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/adaptgo/evolve"
	"github.com/hupe1980/adaptgo/pool"
)

var (
	// ErrNotImplemented is returned when an operator/state representation
	// pairing has no implementation.
	ErrNotImplemented = errors.New("operation not implemented for this representation")

	// ErrEmptyPool is returned when a run is started with an empty operator
	// pool.
	ErrEmptyPool = errors.New("operator pool is empty")

	// ErrNoSnapshotStore is returned when a snapshot is requested but no
	// store was configured.
	ErrNoSnapshotStore = errors.New("no snapshot store configured")
)

// ErrDimensionMismatch indicates an operator/state qubit-count mismatch.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("qubit count mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, evolve.ErrNotImplemented) {
		return fmt.Errorf("%w: %w", ErrNotImplemented, err)
	}
	if errors.Is(err, pool.ErrEmptyPool) {
		return fmt.Errorf("%w: %w", ErrEmptyPool, err)
	}

	var dm *evolve.ErrDimensionMismatch
	if errors.As(err, &dm) {
		return &ErrDimensionMismatch{Expected: dm.Operator, Actual: dm.State, cause: err}
	}

	return err
}
