package evolve

import (
	"errors"
	"fmt"
)

// ErrNotImplemented is returned when no exact implementation exists for a
// generator/state or observable/state combination. Always distinguishable
// from a computational failure so validation harnesses can detect missing
// plugins rather than misbehaving ones.
var ErrNotImplemented = errors.New("not implemented for this operator/state combination")

// ErrDimensionMismatch indicates an operator and state disagree on qubit count.
//
// Fatal and propagated immediately; the engine performs no recovery.
type ErrDimensionMismatch struct {
	Operator int
	State    int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: operator acts on %d qubits, state has %d", e.Operator, e.State)
}
