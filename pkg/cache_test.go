package cache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestSingleCache[K comparable, V any](logCapacity, setCount int) *SingleCache[K, V] {
	return newSingleCache[K, V](logCapacity, setCount, nil, nil, 0)
}

// Scenario 1: basic round trip.
func TestSingleCache_BasicRoundTrip(t *testing.T) {
	c := newTestSingleCache[int, []int](2, 32)
	c.Insert(10, []int{10})

	v, ok := c.Get(10)
	require.True(t, ok)
	require.Equal(t, []int{10}, v)
}

// Scenario 2: miss.
func TestSingleCache_Miss(t *testing.T) {
	c := newTestSingleCache[int, []int](2, 32)
	c.Insert(10, []int{10})

	_, ok := c.Get(11)
	require.False(t, ok)
}

// Scenario 3: invalidate.
func TestSingleCache_Invalidate(t *testing.T) {
	c := newTestSingleCache[int, []int](2, 32)
	c.Insert(10, []int{10})
	c.Invalidate(10)

	_, ok := c.Get(10)
	require.False(t, ok)
}

// Scenario 4: update in place does not advance the log head, so an
// unrelated key inserted immediately afterward still fits in the log's
// remaining slot instead of evicting the update.
func TestSingleCache_UpdateDoesNotEvict(t *testing.T) {
	c := newTestSingleCache[int, []int](2, 32)
	c.Insert(10, []int{10})
	c.Insert(10, []int{20}) // hit path: overwrites in place, log_head unmoved
	c.Insert(15, []int{30}) // miss path: takes the log's one remaining slot

	v, ok := c.Get(15)
	require.True(t, ok)
	require.Equal(t, []int{30}, v)

	v, ok = c.Get(10)
	require.True(t, ok)
	require.Equal(t, []int{20}, v)
}

// Invariant: two successive inserts of the same key leave log_head
// unchanged relative to its state after the first insert.
func TestSingleCache_UpdateInPlaceLeavesHeadUnchanged(t *testing.T) {
	c := newTestSingleCache[int, int](4, 8)
	c.Insert(1, 1)
	headAfterFirst := c.log.Head()

	c.Insert(1, 2)
	require.Equal(t, headAfterFirst, c.log.Head())
}

// Invariant: capacity — at most L distinct keys are ever simultaneously
// Present. With L=8 and S=8 (8 sets of 16 ways each, plenty of
// associativity), inserting more than L distinct keys must still leave no
// more than L live entries.
func TestSingleCache_CapacityBound(t *testing.T) {
	c := newTestSingleCache[int, int](8, 8)
	for i := 0; i < 50; i++ {
		c.Insert(i, i)
	}
	require.LessOrEqual(t, c.Len(), 8)
}

// Scenario 6: over-capacity eviction tolerance. With L=8, S=8, inserting
// keys 0..50 sequentially must leave at least 5 of the last 10 keys
// (40..49) retrievable.
func TestSingleCache_RecentKeysSurvive(t *testing.T) {
	c := newTestSingleCache[int, int](8, 8)
	for i := 0; i < 50; i++ {
		c.Insert(i, i)
	}

	survivors := 0
	for i := 40; i < 50; i++ {
		if v, ok := c.Get(i); ok && v == i {
			survivors++
		}
	}
	require.GreaterOrEqual(t, survivors, 5)
}

// Round-trip under non-colliding keys: a sequence of <= L keys (here 4 keys
// over 64 sets of 16 ways, so no set can overflow) must all remain
// retrievable.
func TestSingleCache_RoundTripNonColliding(t *testing.T) {
	c := newTestSingleCache[int, int](4, 64)
	keys := []int{1, 2, 3, 4}
	for _, k := range keys {
		c.Insert(k, k*100)
	}
	for _, k := range keys {
		v, ok := c.Get(k)
		require.True(t, ok)
		require.Equal(t, k*100, v)
	}
}

func TestSingleCache_EjectCallbackFiresOnEviction(t *testing.T) {
	var evicted []int
	c := newSingleCache[int, int](2, 32, func(k, v int) {
		evicted = append(evicted, k)
	}, nil, 0)

	c.Insert(1, 1)
	c.Insert(2, 2)
	c.Insert(3, 3) // evicts key 1 (log_head wraps back to position 0)

	require.Contains(t, evicted, 1)
}

func TestNewSingleCache_PanicsOnNonPowerOfTwoSetCount(t *testing.T) {
	require.Panics(t, func() {
		newTestSingleCache[int, int](4, 3)
	})
}

// fakeMetrics records every setEntries call so tests can assert the gauge
// mirrors the live-entry count without pulling in a real Prometheus registry.
type fakeMetrics struct {
	entries map[int]int64
}

func (f *fakeMetrics) incHit(int)   {}
func (f *fakeMetrics) incMiss(int)  {}
func (f *fakeMetrics) incEvict(int) {}
func (f *fakeMetrics) setEntries(shard int, value int64) {
	if f.entries == nil {
		f.entries = make(map[int]int64)
	}
	f.entries[shard] = value
}

// entries_in_use must track net present-key count: it rises on a fresh
// insert, holds steady on an in-place update, and falls on eviction or
// explicit invalidation.
func TestSingleCache_EntriesInUseGaugeTracksLiveCount(t *testing.T) {
	fm := &fakeMetrics{}
	c := newSingleCache[int, int](2, 32, nil, fm, 0)

	c.Insert(1, 1)
	require.Equal(t, int64(1), fm.entries[0])

	c.Insert(1, 2) // hit path: no entries change, gauge untouched
	require.Equal(t, int64(1), fm.entries[0])

	c.Insert(2, 2) // miss path, log not yet full: entries grows
	require.Equal(t, int64(2), fm.entries[0])

	c.Insert(3, 3) // miss path, evicts key 1: net unchanged
	require.Equal(t, int64(2), fm.entries[0])

	c.Invalidate(2)
	require.Equal(t, int64(1), fm.entries[0])
	require.Equal(t, int64(1), int64(c.Len()))
}
