package adaptgo

import (
	"log/slog"

	"github.com/hupe1980/adaptgo/adapt"
	"github.com/hupe1980/adaptgo/callback"
	"github.com/hupe1980/adaptgo/optimize"
	"github.com/hupe1980/adaptgo/trace"
	"github.com/hupe1980/adaptgo/tracestore"
)

type options struct {
	adaptProtocol    adapt.Protocol
	optimizeProtocol optimize.Protocol
	callbacks        []callback.Callback
	trace            *trace.Trace
	snapshotStore    tracestore.Store
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures VQE constructor behavior.
//
// Today options primarily exist to avoid exploding the API surface
// (e.g. protocol-specific constructor variants).
type Option func(*options)

// WithAdaptProtocol configures the operator-selection protocol.
//
// If nil is passed, adapt.Vanilla with its default epsilon is used.
func WithAdaptProtocol(p adapt.Protocol) Option {
	return func(o *options) {
		if p == nil {
			p = adapt.Vanilla{}
		}
		o.adaptProtocol = p
	}
}

// WithOptimizeProtocol configures the parameter-refinement protocol.
//
// If nil is passed, a BFGS optimizer with default settings is used.
func WithOptimizeProtocol(p optimize.Protocol) Option {
	return func(o *options) {
		if p == nil {
			p = optimize.NewBFGS()
		}
		o.optimizeProtocol = p
	}
}

// WithCallbacks configures the callback list. Callbacks run in list order on
// every optimizer iterate and every adaptation; the first one returning true
// terminates the run.
//
// The list replaces the default (a single callback.Tracer); include your own
// Tracer to keep trace recording.
func WithCallbacks(cbs ...callback.Callback) Option {
	return func(o *options) {
		o.callbacks = cbs
	}
}

// WithTrace shares a caller-owned trace instead of the run-private default.
// Useful for resuming a run from a restored snapshot.
func WithTrace(tr *trace.Trace) Option {
	return func(o *options) {
		if tr != nil {
			o.trace = tr
		}
	}
}

// WithSnapshotStore configures the blob store used by VQE.Snapshot.
//
// Example with a local directory store:
//
//	store, _ := tracestore.NewLocalStore("./runs")
//	vqe, _ := adaptgo.New(h, a, pl, ref, adaptgo.WithSnapshotStore(store))
func WithSnapshotStore(store tracestore.Store) Option {
	return func(o *options) {
		o.snapshotStore = store
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &adaptgo.BasicMetricsCollector{}
//	vqe, _ := adaptgo.New(h, a, pl, ref, adaptgo.WithMetricsCollector(metrics))
//	// ... run ...
//	stats := metrics.GetStats()
//	fmt.Printf("Adaptations: %d, Avg optimize latency: %dns\n", stats.AdaptationCount, stats.OptimizeAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := adaptgo.NewJSONLogger(slog.LevelInfo)
//	vqe, _ := adaptgo.New(h, a, pl, ref, adaptgo.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		adaptProtocol:    adapt.Vanilla{},
		optimizeProtocol: optimize.NewBFGS(),
		callbacks:        []callback.Callback{callback.NewTracer()},
		trace:            trace.New(),
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
