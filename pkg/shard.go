// shard.go binds a single SingleCache to a one-shot registration gate. After
// a successful Register, only the holder of the returned Token may call
// Insert/Get/Invalidate on that shard for the remainder of its lifetime.
//
// Go has no supported user-space primitive for "the identity of the calling
// OS thread" — goroutines are multiplexed across OS threads by the runtime,
// so a design that compares the caller's thread id against a registered
// owner has no direct Go equivalent. The realisation kept here is an
// explicit capability: Register returns an opaque Token, and every
// subsequent call must present it. A caller cannot satisfy the gate by
// accident, only by holding the token, while the one-shot-CAS and
// panic-on-violation behaviour is preserved exactly.
//
// © 2025 arena-cache authors. MIT License.
package cache

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// tokenSeq hands out globally unique, never-zero token ids. Zero is reserved
// to mean "unregistered" in Shard.ownerID.
var tokenSeq atomic.Uint64

// Token is the capability returned by Shard.Register. It must be presented
// to every subsequent Insert/Get/Invalidate call on that shard.
type Token struct {
	id uint64
}

// Shard binds a SingleCache to a one-shot registration gate. The zero value
// is not usable; shards are constructed by ShardedTable.
type Shard[K comparable, V any] struct {
	cache   *SingleCache[K, V]
	ownerID atomic.Uint64
	logger  *zap.Logger
}

func newShard[K comparable, V any](logCapacity, setCount int, ejectCb func(K, V), metrics metricsSink, shardID int, logger *zap.Logger) *Shard[K, V] {
	return &Shard[K, V]{
		cache:  newSingleCache[K, V](logCapacity, setCount, ejectCb, metrics, shardID),
		logger: logger,
	}
}

// Register atomically claims ownership of the shard. It returns a fresh
// Token and true on the first call; every subsequent call returns the zero
// Token and false, regardless of which caller invokes it.
func (s *Shard[K, V]) Register() (Token, bool) {
	id := tokenSeq.Add(1)
	if s.ownerID.CompareAndSwap(0, id) {
		s.logger.Debug("shard registered", zap.Uint64("token", id))
		return Token{id: id}, true
	}
	return Token{}, false
}

// assertOwner panics if tok does not match the currently registered owner.
// This is a programming-error gate reached only on the slow path of a
// misused shard, never during correct single-writer usage, so logging here
// does not violate the no-logging-on-the-hot-path rule that governs
// SingleCache itself.
func (s *Shard[K, V]) assertOwner(tok Token) {
	owner := s.ownerID.Load()
	if owner == 0 || tok.id != owner {
		s.logger.Error("shard accessed without a valid registration token",
			zap.Uint64("presented", tok.id), zap.Uint64("owner", owner))
		panic("cache: shard accessed without a valid registration token")
	}
}

// Insert delegates to the wrapped SingleCache after verifying tok.
func (s *Shard[K, V]) Insert(tok Token, key K, value V) {
	s.assertOwner(tok)
	s.cache.Insert(key, value)
}

// Get delegates to the wrapped SingleCache after verifying tok.
func (s *Shard[K, V]) Get(tok Token, key K) (V, bool) {
	s.assertOwner(tok)
	return s.cache.Get(key)
}

// Invalidate delegates to the wrapped SingleCache after verifying tok.
func (s *Shard[K, V]) Invalidate(tok Token, key K) {
	s.assertOwner(tok)
	s.cache.Invalidate(key)
}

// Len reports the shard's live entry count. Does not require a token: it is
// a diagnostic accessor, not part of the single-writer hot path.
func (s *Shard[K, V]) Len() int {
	return s.cache.Len()
}

// Stats reports the shard's running hit/miss/eviction counters.
func (s *Shard[K, V]) Stats() (hits, misses, evictions uint64) {
	return s.cache.Stats()
}
