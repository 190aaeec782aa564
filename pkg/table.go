// table.go exposes the two public entry points of this package:
//
//   - CacheTable wraps a single SingleCache for callers that need no
//     sharding at all.
//   - ShardedTable owns a fixed vector of independently-registered Shards.
//     It performs no key-to-shard hashing itself — routing a key to a shard
//     is entirely the caller's responsibility, so that callers already
//     partitioning work (per-worker, per-connection, per-CPU) are never
//     forced to hash twice.
//
// © 2025 arena-cache authors. MIT License.
package cache

import "fmt"

// CacheTable is a standalone, single-writer, set-associative cache. See
// SingleCache for the algorithm; CacheTable only adds option handling and
// metrics wiring on top.
type CacheTable[K comparable, V any] struct {
	cache *SingleCache[K, V]
}

// NewCacheTable constructs a CacheTable with logCapacity log entries and
// setCount sets (both must be powers of two, or construction panics).
func NewCacheTable[K comparable, V any](logCapacity, setCount int, opts ...Option[K, V]) *CacheTable[K, V] {
	cfg := defaultConfig[K, V]()
	applyOptions(cfg, opts)

	metrics := newMetricsSink(cfg.registry)
	return &CacheTable[K, V]{
		cache: newSingleCache[K, V](logCapacity, setCount, cfg.ejectCb, metrics, 0),
	}
}

// Insert makes key map to value, subject to capacity. See SingleCache.Insert.
func (t *CacheTable[K, V]) Insert(key K, value V) { t.cache.Insert(key, value) }

// Get returns the value most recently inserted for key. See SingleCache.Get.
func (t *CacheTable[K, V]) Get(key K) (V, bool) { return t.cache.Get(key) }

// Invalidate marks key absent if present. See SingleCache.Invalidate.
func (t *CacheTable[K, V]) Invalidate(key K) { t.cache.Invalidate(key) }

// Len returns the number of entries currently considered live.
func (t *CacheTable[K, V]) Len() int { return t.cache.Len() }

// Stats returns the running hit/miss/eviction counters.
func (t *CacheTable[K, V]) Stats() (hits, misses, evictions uint64) { return t.cache.Stats() }

// ShardedTable owns a fixed number of independently-registered Shards. It
// performs no internal key hashing: callers decide which shard a given key
// belongs to (e.g. by hashing the key themselves, or by a static
// per-worker/per-connection assignment) and call Shard(id) to reach it.
type ShardedTable[K comparable, V any] struct {
	shards []*Shard[K, V]
}

// NewShardedTable constructs a ShardedTable of shardCount independent
// shards, each a SingleCache with logCapacity log entries and setCount
// sets. shardCount need not be a power of two or bear any relationship to
// setCount — the two are deliberately decoupled, since shard count is
// chosen to match the caller's concurrency (CPU count, worker count) while
// set count is chosen to match the expected working-set size per shard.
func NewShardedTable[K comparable, V any](logCapacity, setCount, shardCount int, opts ...Option[K, V]) *ShardedTable[K, V] {
	if shardCount <= 0 {
		panic(fmt.Sprintf("cache: shard count %d must be > 0", shardCount))
	}

	cfg := defaultConfig[K, V]()
	applyOptions(cfg, opts)

	metrics := newMetricsSink(cfg.registry)
	shards := make([]*Shard[K, V], shardCount)
	for i := range shards {
		shards[i] = newShard[K, V](logCapacity, setCount, cfg.ejectCb, metrics, i, cfg.logger)
	}
	return &ShardedTable[K, V]{shards: shards}
}

// ShardCount reports the number of shards the table was constructed with.
func (t *ShardedTable[K, V]) ShardCount() int { return len(t.shards) }

// Shard returns the shard at shardID. Panics if shardID is out of range —
// an out-of-range shard id is always a caller bug, since the shard count is
// fixed at construction time and known to every caller that partitions keys.
func (t *ShardedTable[K, V]) Shard(shardID int) *Shard[K, V] {
	if shardID < 0 || shardID >= len(t.shards) {
		panic(fmt.Sprintf("cache: shard id %d out of range [0,%d)", shardID, len(t.shards)))
	}
	return t.shards[shardID]
}
