// Package trace records one run's full history: append-only keyed series,
// the parameter trajectory, and named counters.
//
// A Trace is owned by the top-level caller and shared by reference with every
// callback invocation. It is never reset mid-run and is not safe for
// concurrent use; a run is a single logical thread of control.
package trace

import (
	"sort"

	"github.com/hupe1980/adaptgo/core"
)

// Well-known series and counter keys written by the standard callbacks.
const (
	KeyEnergy     = "energy"
	KeyScore      = "score"
	KeyIteration  = "iteration"
	KeyAdaptation = "adaptation"
)

// Trace is the append-only run history.
type Trace struct {
	series   map[string][]float64
	params   [][]core.Parameter
	counters map[string]int
}

// New returns an empty trace.
func New() *Trace {
	return &Trace{
		series:   make(map[string][]float64),
		counters: make(map[string]int),
	}
}

// Append appends one value to the series under key, creating it on first use.
func (t *Trace) Append(key string, v float64) {
	t.series[key] = append(t.series[key], v)
}

// Series returns the recorded values under key; nil if never written.
// The returned slice is the live backing array and must not be mutated.
func (t *Trace) Series(key string) []float64 { return t.series[key] }

// Last returns the most recent value under key.
func (t *Trace) Last(key string) (float64, bool) {
	s := t.series[key]
	if len(s) == 0 {
		return 0, false
	}
	return s[len(s)-1], true
}

// Len returns the number of values recorded under key.
func (t *Trace) Len(key string) int { return len(t.series[key]) }

// Keys returns all series keys in sorted order.
func (t *Trace) Keys() []string {
	keys := make([]string, 0, len(t.series))
	for k := range t.series {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// AppendParams appends one row to the parameter trajectory. The row is
// copied; rows may differ in length as the ansatz grows.
func (t *Trace) AppendParams(x []core.Parameter) {
	row := make([]core.Parameter, len(x))
	copy(row, x)
	t.params = append(t.params, row)
}

// Params returns the parameter trajectory, one row per recorded iteration.
func (t *Trace) Params() [][]core.Parameter { return t.params }

// Increment adds one to the named counter and returns the new value.
func (t *Trace) Increment(name string) int {
	t.counters[name]++
	return t.counters[name]
}

// Counter returns the named counter's value, zero if never incremented.
func (t *Trace) Counter(name string) int { return t.counters[name] }
