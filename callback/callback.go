// Package callback implements the observer pipeline both protocol families
// invoke: tracing, printing, and convergence-signaling stoppers.
//
// Callbacks execute strictly in list order. Once one returns true the
// remaining callbacks of that invocation are skipped, but the ones before it
// have already run and their effects on the trace and ansatz persist. A true
// return forces unconditional termination; stoppers conventionally signal
// through the ansatz flags instead and return false.
package callback

import (
	"github.com/hupe1980/adaptgo/ansatz"
	"github.com/hupe1980/adaptgo/core"
	"github.com/hupe1980/adaptgo/operator"
	"github.com/hupe1980/adaptgo/trace"
)

// Callback observes both protocol contexts and may no-op in either.
// The returned bool means "terminate now".
type Callback interface {
	// OnIteration fires once per optimizer parameter update.
	OnIteration(d *Data, a ansatz.Ansatz, tr *trace.Trace) bool
	// OnAdaptation fires once per adapt step that selected candidates.
	OnAdaptation(d *Data, a ansatz.Ansatz, tr *trace.Trace) bool
}

// Data is the per-invocation transient record a protocol hands to callbacks.
// Read-only from the callback's perspective; discarded after the invocation.
type Data struct {
	energy    core.Energy
	hasEnergy bool
	scores    []core.Score
	selected  []int
	gens      []operator.Generator
	params    []core.Parameter
}

// NewIterationData builds the record for one optimization iteration.
func NewIterationData(energy core.Energy) *Data {
	return &Data{energy: energy, hasEnergy: true}
}

// NewAdaptationData builds the record for one adapt step: the full score
// vector plus the selected candidate indices, generators and initial
// parameters.
func NewAdaptationData(scores []core.Score, selected []int, gens []operator.Generator, params []core.Parameter) *Data {
	return &Data{scores: scores, selected: selected, gens: gens, params: params}
}

// Energy returns the iteration energy; ok is false in adaptation context.
func (d *Data) Energy() (core.Energy, bool) { return d.energy, d.hasEnergy }

// Scores returns the score per pool candidate; nil in iteration context.
func (d *Data) Scores() []core.Score { return d.scores }

// Selected returns the selected pool indices; nil in iteration context.
func (d *Data) Selected() []int { return d.selected }

// Generators returns the selected generators.
func (d *Data) Generators() []operator.Generator { return d.gens }

// Parameters returns the initial parameters of the selected generators.
func (d *Data) Parameters() []core.Parameter { return d.params }

// MaxAbsScore returns the largest score magnitude, zero when empty.
func (d *Data) MaxAbsScore() core.Score {
	var m core.Score
	for _, s := range d.scores {
		if s < 0 {
			s = -s
		}
		if s > m {
			m = s
		}
	}
	return m
}

// RunIteration drives the pipeline in iteration context, short-circuiting
// after the first terminate signal. Reports whether any callback signaled.
func RunIteration(cbs []Callback, d *Data, a ansatz.Ansatz, tr *trace.Trace) bool {
	for _, cb := range cbs {
		if cb.OnIteration(d, a, tr) {
			return true
		}
	}
	return false
}

// RunAdaptation drives the pipeline in adaptation context, short-circuiting
// after the first terminate signal.
func RunAdaptation(cbs []Callback, d *Data, a ansatz.Ansatz, tr *trace.Trace) bool {
	for _, cb := range cbs {
		if cb.OnAdaptation(d, a, tr) {
			return true
		}
	}
	return false
}

// NoopCallback ignores both contexts. Embed it to implement one side only.
type NoopCallback struct{}

// OnIteration implements Callback.
func (NoopCallback) OnIteration(*Data, ansatz.Ansatz, *trace.Trace) bool { return false }

// OnAdaptation implements Callback.
func (NoopCallback) OnAdaptation(*Data, ansatz.Ansatz, *trace.Trace) bool { return false }
