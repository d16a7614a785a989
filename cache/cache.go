package cache

import (
	"iter"
	"sync"
)

// DefaultCapacity is used when a non-positive capacity is requested.
const DefaultCapacity = 256

// LRU is a thread-safe cache that evicts the least recently used entry
// once it holds more than its capacity.
//
// LRU must not be copied after creation (has mutex).
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	entries  map[K]*lruEntry[K, V]
	lru      *lruList[K]
	capacity int
	onEvict  func(K, V)

	hits      uint64
	misses    uint64
	evictions uint64
}

type lruEntry[K comparable, V any] struct {
	value V
	node  *lruNode[K]
}

// NewLRU creates a cache holding at most capacity entries. onEvict, if not
// nil, is called with the lock held for every entry evicted for capacity;
// it is not called for Delete or Clear.
func NewLRU[K comparable, V any](capacity int, onEvict func(K, V)) *LRU[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &LRU[K, V]{
		entries:  make(map[K]*lruEntry[K, V]),
		lru:      newLRUList[K](),
		capacity: capacity,
		onEvict:  onEvict,
	}
}

// Get retrieves a value and marks it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.lru.MoveToFront(e.node)
	return e.value, true
}

// Peek retrieves a value without touching recency or statistics.
func (c *LRU[K, V]) Peek(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores a value, evicting the oldest entries beyond capacity.
func (c *LRU[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.lru.MoveToFront(e.node)
		return
	}
	for c.lru.Len() >= c.capacity {
		oldest, ok := c.lru.RemoveOldest()
		if !ok {
			break
		}
		evicted := c.entries[oldest]
		delete(c.entries, oldest)
		c.evictions++
		if c.onEvict != nil {
			c.onEvict(oldest, evicted.value)
		}
	}
	c.entries[key] = &lruEntry[K, V]{value: value, node: c.lru.PushFront(key)}
}

// Delete removes an entry. Returns true if it was present.
func (c *LRU[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return false
	}
	c.lru.Remove(e.node)
	delete(c.entries, key)
	return true
}

// Clear removes all entries.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*lruEntry[K, V])
	c.lru.Clear()
}

// Len returns the number of entries.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Capacity returns the maximum number of entries.
func (c *LRU[K, V]) Capacity() int {
	return c.capacity
}

// Keys iterates keys from least to most recently used. The cache must not
// be modified during iteration.
func (c *LRU[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		c.mu.Lock()
		keys := make([]K, 0, len(c.entries))
		c.lru.each(func(k K) bool {
			keys = append(keys, k)
			return true
		})
		c.mu.Unlock()
		for _, k := range keys {
			if !yield(k) {
				return
			}
		}
	}
}

// Stats returns cache statistics.
func (c *LRU[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return newStats(len(c.entries), c.capacity, c.hits, c.misses, c.evictions)
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Capacity is the maximum number of entries (per shard for ShardedCache).
	Capacity int
	// Hits is the number of lookups that found an entry.
	Hits uint64
	// Misses is the number of lookups that found nothing.
	Misses uint64
	// HitRate is Hits / (Hits + Misses), or 0 before any lookup.
	HitRate float64
	// Evictions is the number of entries evicted for capacity.
	Evictions uint64
}

func newStats(n, capacity int, hits, misses, evictions uint64) Stats {
	var rate float64
	if total := hits + misses; total > 0 {
		rate = float64(hits) / float64(total)
	}
	return Stats{
		Len:       n,
		Capacity:  capacity,
		Hits:      hits,
		Misses:    misses,
		HitRate:   rate,
		Evictions: evictions,
	}
}
