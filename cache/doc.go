// Package cache provides the LRU primitives behind the editor bitmap cache.
//
// # LRU[K, V]
//
// A strict least-recently-used cache with an eviction callback:
//
//	c := cache.NewLRU[string, int](100, nil)
//	c.Set("key", 42)
//	value, ok := c.Get("key")
//
// # Bitmaps
//
// A bidirectional bitmap cache: every entry is reachable by the string key
// that produced it and by a monotonically increasing integer id, so a cell
// can hold a cheap id instead of a key string.
//
// # ShardedCache[K, V]
//
// A sharded, thread-safe LRU used for pure lookups that may run on any
// goroutine, such as text measurement.
package cache
