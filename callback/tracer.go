package callback

import (
	"github.com/hupe1980/adaptgo/ansatz"
	"github.com/hupe1980/adaptgo/trace"
)

// Tracer appends the standard record keys into the trace: per-iteration
// energy and parameter rows, per-adaptation best score, and the running
// iteration/adaptation counters.
type Tracer struct{}

var _ Callback = (*Tracer)(nil)

// NewTracer returns a Tracer.
func NewTracer() *Tracer { return &Tracer{} }

// OnIteration implements Callback.
func (c *Tracer) OnIteration(d *Data, a ansatz.Ansatz, tr *trace.Trace) bool {
	if e, ok := d.Energy(); ok {
		tr.Append(trace.KeyEnergy, e)
	}
	tr.AppendParams(a.Angles())
	tr.Increment(trace.KeyIteration)
	return false
}

// OnAdaptation implements Callback.
func (c *Tracer) OnAdaptation(d *Data, _ ansatz.Ansatz, tr *trace.Trace) bool {
	tr.Append(trace.KeyScore, d.MaxAbsScore())
	tr.Increment(trace.KeyAdaptation)
	return false
}
