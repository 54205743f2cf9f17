package vectree

import (
	"log/slog"

	"github.com/hupe1980/vectree/index"
	"github.com/hupe1980/vectree/resource"
)

type options struct {
	leafSize         int
	seed             uint64
	policy           index.ResultPolicy
	metricsCollector MetricsCollector
	logger           *Logger
	queryCacheSize   int
	controller       *resource.Controller
}

// Option configures DB constructor behavior.
type Option func(*options)

// WithLeafSize sets the subset size below which a tree node becomes a leaf.
// Defaults to index.DefaultLeafSize.
func WithLeafSize(leafSize int) Option {
	return func(o *options) {
		o.leafSize = leafSize
	}
}

// WithSeed seeds the random projection sampler so that RP trees are
// reproducible. Zero (the default) draws a random seed. KD trees ignore it.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithResultPolicy selects how search keeps its top-k candidates.
func WithResultPolicy(p index.ResultPolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &vectree.BasicMetricsCollector{}
//	db, _ := vectree.New(model.KindKD, vectree.WithMetricsCollector(metrics))
//	// ... use db ...
//	stats := metrics.GetStats()
//	fmt.Printf("Searches: %d, Avg latency: %dns\n", stats.SearchCount, stats.SearchAvgNanos)
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
//	logger := vectree.NewJSONLogger(slog.LevelInfo)
//	db, _ := vectree.New(model.KindRP, vectree.WithLogger(logger))
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

// WithQueryCache caches up to size search results. Entries are keyed by the
// tree generation, so a rebuild never serves stale neighbours. Zero disables
// the cache.
func WithQueryCache(size int) Option {
	return func(o *options) {
		o.queryCacheSize = size
	}
}

// WithResourceController shares a resource controller between DBs. It bounds
// concurrent searches and throttles ingestion reads.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}

// WithSearchConcurrency is a shortcut for a private controller allowing n
// concurrent searches.
func WithSearchConcurrency(n int) Option {
	return func(o *options) {
		o.controller = resource.NewController(resource.Config{
			MaxConcurrentSearches: int64(n),
		})
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		leafSize:         index.DefaultLeafSize,
		policy:           index.PolicyMaxHeap,
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
