// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cache

import (
	"sync"
	"sync/atomic"
)

// DefaultCapacity is used when New is given a non-positive capacity.
const DefaultCapacity = 256

// EvictFunc is called for every entry that leaves the cache, whether by
// capacity eviction, replacement, Delete or Clear.
type EvictFunc[K comparable, V any] func(key K, value V)

// Cache is a thread-safe LRU cache with a hard capacity.
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	entries  map[K]*entry[K, V]
	order    recency[K]
	capacity int
	onEvict  EvictFunc[K, V]

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type entry[K comparable, V any] struct {
	value V
	node  *node[K]
}

// evicted is an entry removed under the lock, reported after it is released.
type evicted[K comparable, V any] struct {
	key   K
	value V
}

// New creates a cache holding at most capacity entries.
// onEvict may be nil.
func New[K comparable, V any](capacity int, onEvict EvictFunc[K, V]) *Cache[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache[K, V]{
		entries:  make(map[K]*entry[K, V]),
		capacity: capacity,
		onEvict:  onEvict,
	}
}

// Get returns the value for key and marks it most recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	var out V
	ok := c.GetFunc(key, func(v V) { out = v })
	return out, ok
}

// GetFunc is Get, but calls fn with the value before the cache lock is
// released, so no concurrent eviction can report the entry while fn runs.
// fn must not call back into c. It reports whether key was present.
func (c *Cache[K, V]) GetFunc(key K, fn func(V)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses.Add(1)
		return false
	}
	c.hits.Add(1)
	c.order.touch(e.node)
	fn(e.value)
	return true
}

// Peek returns the value for key without updating recency or statistics.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		return e.value, true
	}
	var zero V
	return zero, false
}

// Set stores value under key. A previous value for key is reported to the
// eviction callback, as is the oldest entry if the cache is over capacity.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	out := c.setLocked(key, value)
	c.mu.Unlock()

	c.report(out)
}

// GetOrCreate returns the cached value for key, or calls create and caches
// its result. create runs under the cache lock, so concurrent callers for
// the same key never create twice; it must not call back into c.
// Errors from create are returned and nothing is cached.
func (c *Cache[K, V]) GetOrCreate(key K, create func() (V, error)) (V, error) {
	var out V
	err := c.GetOrCreateFunc(key, create, func(v V) { out = v })
	return out, err
}

// GetOrCreateFunc is GetOrCreate, but hands the value to fn under the cache
// lock, as GetFunc does. fn is not called when create fails.
func (c *Cache[K, V]) GetOrCreateFunc(key K, create func() (V, error), fn func(V)) error {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		c.hits.Add(1)
		c.order.touch(e.node)
		fn(e.value)
		c.mu.Unlock()
		return nil
	}
	c.misses.Add(1)

	v, err := create()
	if err != nil {
		c.mu.Unlock()
		return err
	}
	out := c.setLocked(key, v)
	fn(v)
	c.mu.Unlock()

	c.report(out)
	return nil
}

// Delete removes key and reports it to the eviction callback.
// Returns true if the entry was present.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	e, ok := c.entries[key]
	if ok {
		delete(c.entries, key)
		c.order.remove(e.node)
	}
	c.mu.Unlock()

	if ok {
		c.report([]evicted[K, V]{{key, e.value}})
	}
	return ok
}

// Clear removes every entry, reporting each to the eviction callback.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	out := make([]evicted[K, V], 0, len(c.entries))
	for k, e := range c.entries {
		out = append(out, evicted[K, V]{k, e.value})
	}
	c.entries = make(map[K]*entry[K, V])
	c.order.clear()
	c.mu.Unlock()

	c.report(out)
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Capacity returns the maximum number of entries.
func (c *Cache[K, V]) Capacity() int {
	return c.capacity
}

// Stats returns a snapshot of the cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	s := Stats{
		Len:       c.Len(),
		Capacity:  c.capacity,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
	if total := s.Hits + s.Misses; total > 0 {
		s.HitRate = float64(s.Hits) / float64(total)
	}
	return s
}

// ResetStats zeroes the hit, miss and eviction counters.
func (c *Cache[K, V]) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
}

// setLocked inserts or replaces key and trims to capacity.
// Caller must hold c.mu.
func (c *Cache[K, V]) setLocked(key K, value V) []evicted[K, V] {
	var out []evicted[K, V]
	if e, ok := c.entries[key]; ok {
		out = append(out, evicted[K, V]{key, e.value})
		e.value = value
		c.order.touch(e.node)
		return out
	}

	c.entries[key] = &entry[K, V]{value: value, node: c.order.pushFront(key)}
	for c.order.len() > c.capacity {
		old := c.order.oldest()
		e := c.entries[old.key]
		c.order.remove(old)
		delete(c.entries, old.key)
		c.evictions.Add(1)
		out = append(out, evicted[K, V]{old.key, e.value})
	}
	return out
}

func (c *Cache[K, V]) report(out []evicted[K, V]) {
	if c.onEvict == nil {
		return
	}
	for _, e := range out {
		c.onEvict(e.key, e.value)
	}
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Capacity is the maximum number of entries.
	Capacity int
	// Hits is the number of lookups that found an entry.
	Hits uint64
	// Misses is the number of lookups that did not.
	Misses uint64
	// HitRate is Hits / (Hits + Misses), 0 when nothing was looked up.
	HitRate float64
	// Evictions counts entries dropped to stay within capacity.
	Evictions uint64
}
