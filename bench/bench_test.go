// Package bench provides reproducible micro-benchmarks for the cache.
// Run via:  go test ./bench -bench=. -benchmem -cpu 1,4,16
//
// The benchmarks use a single key/value shape so results are comparable
// across versions:
//   - Key   — uint64 (cheap hashing, fits in a register)
//   - Value — 64-byte struct (large enough to matter, small enough to cache)
//
// We measure:
//  1. Insert      — write-only workload
//  2. Get         — read-only workload (after warm-up)
//  3. GetParallel — concurrent reads across independent shards
//
// NOTE: Unit tests live in pkg/*_test.go; this file is only for performance.
//
// © 2025 arena-cache authors. MIT License.
package bench

import (
	"math/rand"
	"sync/atomic"
	"testing"

	cache "github.com/arena-cache/setcache/pkg"
)

type value64 struct {
	_ [64]byte
}

const (
	logCapacity = 1 << 16
	setCount    = 1 << 12
	shardCount  = 16
	keys        = 1 << 20 // 1M keys for dataset
)

func newTestCache() *cache.CacheTable[uint64, value64] {
	return cache.NewCacheTable[uint64, value64](logCapacity, setCount)
}

func newTestShardedTable() *cache.ShardedTable[uint64, value64] {
	return cache.NewShardedTable[uint64, value64](logCapacity, setCount, shardCount)
}

var ds = func() []uint64 {
	rnd := rand.New(rand.NewSource(42))
	arr := make([]uint64, keys)
	for i := range arr {
		arr[i] = rnd.Uint64()
	}
	return arr
}()

func BenchmarkInsert(b *testing.B) {
	c := newTestCache()
	val := value64{}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := ds[i&(keys-1)]
		c.Insert(key, val)
	}
}

func BenchmarkGet(b *testing.B) {
	c := newTestCache()
	val := value64{}
	for _, k := range ds {
		c.Insert(k, val)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		k := ds[i&(keys-1)]
		_, _ = c.Get(k)
	}
}

// BenchmarkGetParallel exercises ShardedTable's intended usage: each
// goroutine registers for and owns exactly one shard, so concurrent reads
// never contend on any lock. Shard assignment is round-robin over a
// per-goroutine counter rather than random, so no two goroutines touch the
// same shard as long as GOMAXPROCS (the number of goroutines RunParallel
// starts) is at most shardCount; beyond that, the shard ids wrap around.
func BenchmarkGetParallel(b *testing.B) {
	table := newTestShardedTable()
	val := value64{}

	tokens := make([]cache.Token, shardCount)
	for i := 0; i < shardCount; i++ {
		tok, ok := table.Shard(i).Register()
		if !ok {
			b.Fatal("shard already registered")
		}
		tokens[i] = tok
	}
	for i, k := range ds {
		shardID := i % shardCount
		table.Shard(shardID).Insert(tokens[shardID], k, val)
	}

	var nextShard atomic.Int32
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		shardID := int(nextShard.Add(1)-1) % shardCount
		tok := tokens[shardID]
		shard := table.Shard(shardID)
		idx := shardID
		for pb.Next() {
			idx = (idx + shardCount) & (keys - 1)
			_, _ = shard.Get(tok, ds[idx])
		}
	})
}
