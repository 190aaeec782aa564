// Package cache implements a bounded, single-writer, set-associative
// key-value cache over a circular append-only log. The index (a fixed vector
// of internal/wayset.Set groups) locates entries by 8-bit hash fingerprints;
// the log (internal/fplog.Log) owns the storage and implicitly evicts the
// oldest record on wraparound. ShardedTable partitions independent copies of
// this structure across single-writer shards to eliminate synchronisation on
// the hot path.
//
// The code relies only on the standard library and the internal packages
// declared in this repository for the core path; there is **no cgo** and
// everything is safe for cross-compilation.
//
// © 2025 arena-cache authors. MIT License.
package cache

import (
	"fmt"

	"github.com/arena-cache/setcache/internal/fphash"
	"github.com/arena-cache/setcache/internal/fplog"
	"github.com/arena-cache/setcache/internal/unsafehelpers"
	"github.com/arena-cache/setcache/internal/wayset"
)

// SingleCache is the set-associative, circular-log cache that is the core of
// this package: S sets of W=16 ways each, backed by one L-entry circular
// log. It assumes single-writer, single-reader access from the same caller
// — see Shard for the registration gate that enforces this from concurrent
// code.
type SingleCache[K comparable, V any] struct {
	sets    []wayset.Set
	log     *fplog.Log[K, V]
	hasher  fphash.Hasher
	setMask uint64

	ejectCb func(K, V)
	metrics metricsSink
	shardID int

	hits      uint64
	misses    uint64
	evictions uint64

	// entries mirrors the live-entry count exactly as Len's validMask scan
	// would compute it, maintained incrementally (+1 per fresh key installed,
	// -1 per slot invalidated by Invalidate or eviction) so the
	// entries_in_use gauge can be pushed in O(1) from the hot path instead of
	// rescanning every set on each call.
	entries int64
}

// newSingleCache constructs a SingleCache with logCapacity log entries and
// setCount sets. Both must be powers of two; violating this is a
// construction-time configuration error and panics immediately rather than
// returning an error, matching the "halt construction with a clear
// diagnostic" requirement for invalid size parameters. shardID labels the
// metrics this cache reports and is 0 for a standalone CacheTable.
func newSingleCache[K comparable, V any](logCapacity, setCount int, ejectCb func(K, V), metrics metricsSink, shardID int) *SingleCache[K, V] {
	if !unsafehelpers.IsPowerOfTwo(setCount) {
		panic(fmt.Sprintf("cache: set count %d must be a power of two", setCount))
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}

	return &SingleCache[K, V]{
		sets:    make([]wayset.Set, setCount),
		log:     fplog.New[K, V](logCapacity),
		hasher:  fphash.New(),
		setMask: uint64(setCount - 1),
		ejectCb: ejectCb,
		metrics: metrics,
		shardID: shardID,
	}
}

// probe computes the set index and fingerprint for key and searches the
// corresponding set for a live slot. hit reports whether one was found; when
// it is, slot identifies the winning index within sets[setIdx].
func (c *SingleCache[K, V]) probe(key K) (setIdx uint64, fingerprint byte, slot int, hit bool) {
	h := fphash.Sum64(c.hasher, key)
	setIdx = fphash.SetIndex(h, c.setMask)
	fingerprint = fphash.Fingerprint(h)
	slot, hit = c.sets[setIdx].Probe(fingerprint)
	return setIdx, fingerprint, slot, hit
}

// Insert idempotently makes key map to value, subject to capacity. It never
// fails: on a hit it overwrites the existing log entry in place (the log
// head does not move); on a miss it evicts whatever key currently occupies
// log_head, installs the new record there, and advances the head.
func (c *SingleCache[K, V]) Insert(key K, value V) {
	setIdx, fingerprint, slot, hit := c.probe(key)
	set := &c.sets[setIdx]

	if hit {
		pos := uint64(set.Pointer(slot))
		c.log.Write(pos, key, value)
		return
	}

	pos := c.log.Head()
	c.evictAt(pos)

	newSlot := set.NextSlot()
	set.SetFinger(newSlot, fingerprint)
	set.SetPointer(newSlot, int(pos))
	set.MarkValid(newSlot)

	c.log.Write(pos, key, value)
	c.log.Advance()

	c.entries++
	c.metrics.setEntries(c.shardID, c.entries)
}

// evictAt invalidates whichever set slot currently references log position
// pos, since the record that slot describes is about to be overwritten.
// Without this step a stale set slot could still probe-hit after the new
// record lands at pos, returning a value that belongs to a different key.
func (c *SingleCache[K, V]) evictAt(pos uint64) {
	oldKey := c.log.KeyAt(pos)
	oldVal := c.log.ValueAt(pos)

	setIdx, _, slot, hit := c.probe(oldKey)
	if !hit || uint64(c.sets[setIdx].Pointer(slot)) != pos {
		return
	}
	c.sets[setIdx].Invalidate(slot)
	c.entries--
	c.evictions++
	c.metrics.incEvict(c.shardID)
	if c.ejectCb != nil {
		c.ejectCb(oldKey, oldVal)
	}
}

// Get returns the value most recently inserted for key, unless it has since
// been invalidated or overwritten by eviction. It does not verify that the
// log entry's key actually equals the query key: a fingerprint collision
// within a set (up to Ways candidates sharing 8 bits) can make Get return a
// value belonging to a different key. This trade buys a branchless lookup;
// see internal/wayset for the probe itself.
func (c *SingleCache[K, V]) Get(key K) (V, bool) {
	setIdx, _, slot, hit := c.probe(key)
	if !hit {
		c.misses++
		c.metrics.incMiss(c.shardID)
		var zero V
		return zero, false
	}
	c.hits++
	c.metrics.incHit(c.shardID)
	pos := uint64(c.sets[setIdx].Pointer(slot))
	return c.log.ValueAt(pos), true
}

// Invalidate marks key absent if present; otherwise it is a no-op. The log
// entry itself is left untouched — only the set's valid bit is cleared.
func (c *SingleCache[K, V]) Invalidate(key K) {
	setIdx, _, slot, hit := c.probe(key)
	if hit {
		c.sets[setIdx].Invalidate(slot)
		c.entries--
		c.metrics.setEntries(c.shardID, c.entries)
	}
}

// Len returns the number of entries currently considered live across all
// sets. It reflects the sets' valid-bit counts rather than a separately
// maintained counter — cheap enough for occasional metrics scraping, not
// intended for the hot path.
func (c *SingleCache[K, V]) Len() int {
	total := 0
	for i := range c.sets {
		total += c.sets[i].Occupancy()
	}
	return total
}

// Stats returns the running hit/miss/eviction counters.
func (c *SingleCache[K, V]) Stats() (hits, misses, evictions uint64) {
	return c.hits, c.misses, c.evictions
}
