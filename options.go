package clustergo

import (
	"log/slog"

	"github.com/hupe1980/clustergo/codec"
	"github.com/hupe1980/clustergo/particle"
	"github.com/hupe1980/clustergo/resource"
)

type options struct {
	codec             codec.Codec
	metricsCollector  MetricsCollector
	logger            *Logger
	parallelism       int
	singletonClusters bool
	controller        *resource.Controller
	box               particle.Box
}

// Option configures ClusterStructure behavior.
type Option func(*options)

// WithCodec configures the codec used for snapshot sections.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithSingletonClusters controls how particles with no neighbor edge are
// treated. By default they belong to no cluster and are absent from all read
// views; with this option enabled, each isolated particle becomes its own
// one-member cluster during the merge pass.
func WithSingletonClusters(enabled bool) Option {
	return func(o *options) {
		o.singletonClusters = enabled
	}
}

// WithParallelism configures how many goroutines evaluate the neighbor
// criterion during the pair scan. Only the criterion evaluation is
// parallelized; discovered edges are applied to the union-find serially and
// in deterministic order, so the resulting partition is identical to a
// single-threaded run.
//
// Values <= 1 disable parallel evaluation (default). Worth enabling for
// expensive criteria (e.g. energy-based); for trivial predicates the fan-out
// overhead usually dominates.
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

// WithResourceController attaches a shared resource controller. The analysis
// reserves an O(n) memory estimate and an analysis slot before scanning, and
// snapshot IO is throttled by the controller's IO limit.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}

// WithBox records the simulation box geometry in snapshots. The analysis
// itself never consults the box (distance handling lives in the criterion);
// it is carried so a snapshot is a self-contained description of the system.
func WithBox(box particle.Box) Option {
	return func(o *options) {
		o.box = box
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &clustergo.BasicMetricsCollector{}
//	cs, _ := clustergo.New(store, clustergo.WithMetricsCollector(metrics))
//	// ... run analyses ...
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := clustergo.NewJSONLogger(slog.LevelInfo)
//	cs, _ := clustergo.New(store, clustergo.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
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
		codec:            codec.Default,
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
