package adaptgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    adaptCounter    prometheus.Counter
//	    optimizeLatency prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordAdaptation(selected int, duration time.Duration, err error) {
//	    p.adaptCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordScorePass is called after each pool scoring pass.
	// poolSize is the number of candidates scored.
	RecordScorePass(poolSize int, duration time.Duration, err error)

	// RecordOptimization is called after each parameter-optimization pass.
	// iterations is the number of accepted optimizer iterates.
	RecordOptimization(iterations int, duration time.Duration, err error)

	// RecordAdaptation is called after each operator-selection pass.
	// selected is the number of generators appended (zero on convergence
	// or abort).
	RecordAdaptation(selected int, duration time.Duration, err error)

	// RecordSnapshot is called after each trace snapshot write.
	// size is the serialized snapshot size in bytes.
	RecordSnapshot(size int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordScorePass(int, time.Duration, error)    {}
func (NoopMetricsCollector) RecordOptimization(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordAdaptation(int, time.Duration, error)   {}
func (NoopMetricsCollector) RecordSnapshot(int, time.Duration, error)     {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ScorePassCount     atomic.Int64
	ScorePassErrors    atomic.Int64
	ScoredCandidates   atomic.Int64
	OptimizeCount      atomic.Int64
	OptimizeErrors     atomic.Int64
	OptimizeIterations atomic.Int64
	OptimizeTotalNanos atomic.Int64
	AdaptationCount    atomic.Int64
	AdaptationErrors   atomic.Int64
	SelectedGenerators atomic.Int64
	SnapshotCount      atomic.Int64
	SnapshotErrors     atomic.Int64
	SnapshotTotalBytes atomic.Int64
}

// RecordScorePass implements MetricsCollector.
func (b *BasicMetricsCollector) RecordScorePass(poolSize int, duration time.Duration, err error) {
	b.ScorePassCount.Add(1)
	b.ScoredCandidates.Add(int64(poolSize))
	if err != nil {
		b.ScorePassErrors.Add(1)
	}
}

// RecordOptimization implements MetricsCollector.
func (b *BasicMetricsCollector) RecordOptimization(iterations int, duration time.Duration, err error) {
	b.OptimizeCount.Add(1)
	b.OptimizeIterations.Add(int64(iterations))
	b.OptimizeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.OptimizeErrors.Add(1)
	}
}

// RecordAdaptation implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAdaptation(selected int, duration time.Duration, err error) {
	b.AdaptationCount.Add(1)
	b.SelectedGenerators.Add(int64(selected))
	if err != nil {
		b.AdaptationErrors.Add(1)
	}
}

// RecordSnapshot implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshot(size int, duration time.Duration, err error) {
	b.SnapshotCount.Add(1)
	b.SnapshotTotalBytes.Add(int64(size))
	if err != nil {
		b.SnapshotErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ScorePassCount:     b.ScorePassCount.Load(),
		ScorePassErrors:    b.ScorePassErrors.Load(),
		ScoredCandidates:   b.ScoredCandidates.Load(),
		OptimizeCount:      b.OptimizeCount.Load(),
		OptimizeErrors:     b.OptimizeErrors.Load(),
		OptimizeIterations: b.OptimizeIterations.Load(),
		OptimizeAvgNanos:   b.getAvgOptimizeNanos(),
		AdaptationCount:    b.AdaptationCount.Load(),
		AdaptationErrors:   b.AdaptationErrors.Load(),
		SelectedGenerators: b.SelectedGenerators.Load(),
		SnapshotCount:      b.SnapshotCount.Load(),
		SnapshotErrors:     b.SnapshotErrors.Load(),
		SnapshotTotalBytes: b.SnapshotTotalBytes.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgOptimizeNanos() int64 {
	count := b.OptimizeCount.Load()
	if count == 0 {
		return 0
	}
	return b.OptimizeTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ScorePassCount     int64
	ScorePassErrors    int64
	ScoredCandidates   int64
	OptimizeCount      int64
	OptimizeErrors     int64
	OptimizeIterations int64
	OptimizeAvgNanos   int64
	AdaptationCount    int64
	AdaptationErrors   int64
	SelectedGenerators int64
	SnapshotCount      int64
	SnapshotErrors     int64
	SnapshotTotalBytes int64
}
