package callback

import (
	"math"
	"time"

	"github.com/hupe1980/adaptgo/ansatz"
	"github.com/hupe1980/adaptgo/core"
	"github.com/hupe1980/adaptgo/trace"
)

// Stoppers signal convergence through the ansatz flags and return false, by
// convention. Only DeadlineStopper forces unconditional termination through
// the return value, since a wall-clock cutoff is not a convergence statement.

// ScoreStopper flags generator-selection convergence once the best candidate
// score drops below Epsilon. Strictly looser than the protocol's own
// machine-epsilon exhaustion check when Epsilon is larger.
type ScoreStopper struct {
	Epsilon core.Score
}

var _ Callback = (*ScoreStopper)(nil)

// OnIteration implements Callback.
func (c *ScoreStopper) OnIteration(*Data, ansatz.Ansatz, *trace.Trace) bool { return false }

// OnAdaptation implements Callback.
func (c *ScoreStopper) OnAdaptation(d *Data, a ansatz.Ansatz, _ *trace.Trace) bool {
	if d.MaxAbsScore() < c.Epsilon {
		a.SetConverged(true)
	}
	return false
}

// FloorStopper flags full convergence once the energy reaches a known lower
// bound within tolerance, e.g. the exact diagonal minimum of a cost
// Hamiltonian.
type FloorStopper struct {
	Floor     core.Energy
	Tolerance float64
}

var _ Callback = (*FloorStopper)(nil)

// OnIteration implements Callback.
func (c *FloorStopper) OnIteration(d *Data, a ansatz.Ansatz, _ *trace.Trace) bool {
	if e, ok := d.Energy(); ok && e <= c.Floor+c.Tolerance {
		a.SetOptimized(true)
		a.SetConverged(true)
	}
	return false
}

// OnAdaptation implements Callback.
func (c *FloorStopper) OnAdaptation(*Data, ansatz.Ansatz, *trace.Trace) bool { return false }

// ParameterStopper flags selection convergence when the next adaptation would
// grow the ansatz beyond Max parameters.
type ParameterStopper struct {
	Max int
}

var _ Callback = (*ParameterStopper)(nil)

// OnIteration implements Callback.
func (c *ParameterStopper) OnIteration(*Data, ansatz.Ansatz, *trace.Trace) bool { return false }

// OnAdaptation implements Callback.
func (c *ParameterStopper) OnAdaptation(d *Data, a ansatz.Ansatz, _ *trace.Trace) bool {
	if a.Len()+len(d.Selected()) > c.Max {
		a.SetConverged(true)
	}
	return false
}

// SlowStopper flags selection convergence when the energy improvement across
// the last Window recorded iterations falls below MinImprovement. Requires a
// Tracer ahead of it in the pipeline to populate the energy series.
type SlowStopper struct {
	Window         int
	MinImprovement float64
}

var _ Callback = (*SlowStopper)(nil)

// OnIteration implements Callback.
func (c *SlowStopper) OnIteration(*Data, ansatz.Ansatz, *trace.Trace) bool { return false }

// OnAdaptation implements Callback.
func (c *SlowStopper) OnAdaptation(_ *Data, a ansatz.Ansatz, tr *trace.Trace) bool {
	energies := tr.Series(trace.KeyEnergy)
	if c.Window <= 0 || len(energies) < c.Window+1 {
		return false
	}
	recent := energies[len(energies)-c.Window-1:]
	if math.Abs(recent[0]-recent[len(recent)-1]) < c.MinImprovement {
		a.SetConverged(true)
	}
	return false
}

// DeadlineStopper forces unconditional termination once the wall clock passes
// the deadline. The run loop reports this as an unconverged halt.
type DeadlineStopper struct {
	Deadline time.Time

	// now is swappable for tests.
	now func() time.Time
}

var _ Callback = (*DeadlineStopper)(nil)

// NewDeadlineStopper returns a stopper firing after d from now.
func NewDeadlineStopper(d time.Duration) *DeadlineStopper {
	return &DeadlineStopper{Deadline: time.Now().Add(d)}
}

func (c *DeadlineStopper) expired() bool {
	now := c.now
	if now == nil {
		now = time.Now
	}
	return now().After(c.Deadline)
}

// OnIteration implements Callback.
func (c *DeadlineStopper) OnIteration(*Data, ansatz.Ansatz, *trace.Trace) bool {
	return c.expired()
}

// OnAdaptation implements Callback.
func (c *DeadlineStopper) OnAdaptation(*Data, ansatz.Ansatz, *trace.Trace) bool {
	return c.expired()
}
