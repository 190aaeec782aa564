// config.go defines the functional options accepted by NewCacheTable and
// NewShardedTable. A generic Option is used so that callbacks retain full
// type-safety with respect to the concrete key/value types chosen by the
// caller.
//
// Design notes
// ------------
// - All fields are initialised with sensible defaults in defaultConfig().
// - Options never allocate unless strictly necessary - they just capture
//   pointers to external objects (registry, logger, callback).
// - The config struct itself is unexported: callers can only influence
//   behaviour via Option[K,V], which keeps the door open to add knobs later
//   without breaking callers.
//
// © 2025 arena-cache authors. MIT License.
package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// EjectCallback is invoked synchronously whenever an insert evicts the log
// entry at the current head. It runs in the calling goroutine and must not
// block — heavy work should be deferred to another goroutine by the caller.
type EjectCallback[K comparable, V any] func(key K, value V)

// Option is the functional option accepted by NewCacheTable/NewShardedTable.
// It is generic because WithEjectCallback refers to the concrete K/V types.
type Option[K comparable, V any] func(*config[K, V])

// config bundles every knob that influences cache behaviour beyond the
// mandatory logCapacity/setCount (and, for a ShardedTable, shardCount)
// constructor arguments.
type config[K comparable, V any] struct {
	registry *prometheus.Registry
	logger   *zap.Logger
	ejectCb  EjectCallback[K, V]
}

func defaultConfig[K comparable, V any]() *config[K, V] {
	return &config[K, V]{
		logger:   zap.NewNop(),
		registry: nil, // user must opt in to metrics
	}
}

// WithMetrics enables Prometheus metrics collection against reg. Passing nil
// disables metrics, which is also the default.
func WithMetrics[K comparable, V any](reg *prometheus.Registry) Option[K, V] {
	return func(c *config[K, V]) {
		c.registry = reg
	}
}

// WithLogger plugs an external zap.Logger. Nothing on the SingleCache hot
// path ever logs; only slow, rare events (shard registration, ownership
// violations) are emitted through this logger.
func WithLogger[K comparable, V any](l *zap.Logger) Option[K, V] {
	return func(c *config[K, V]) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithEjectCallback registers a function invoked whenever an insert evicts
// the record currently at the log head. The callback runs in the calling
// goroutine and must not block.
func WithEjectCallback[K comparable, V any](cb EjectCallback[K, V]) Option[K, V] {
	return func(c *config[K, V]) {
		c.ejectCb = cb
	}
}

// applyOptions copies user-supplied options into cfg.
func applyOptions[K comparable, V any](cfg *config[K, V], opts []Option[K, V]) {
	for _, opt := range opts {
		opt(cfg)
	}
}
