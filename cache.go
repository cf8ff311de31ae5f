// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

import (
	"fmt"

	"github.com/gogpu/texture/cache"
)

// DefaultCacheCapacity is the number of textures a Cache keeps by default.
const DefaultCacheCapacity = 128

// Cache is a keyed LRU of textures. It owns one reference per entry and
// hands out clones, so an evicted texture stays valid for every caller that
// still holds a clone; the GPU object is deleted once the last of them is
// released.
//
// Cache is safe for concurrent use: handles are cloned before the entry can
// be evicted, so a returned handle is always live. Evictions release
// textures on the calling goroutine, so the final delete of an evicted
// texture happens wherever its last handle is released.
type Cache struct {
	lru *cache.Cache[string, *Texture]
}

// NewCache creates a texture cache holding at most capacity entries.
// capacity <= 0 uses DefaultCacheCapacity.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &Cache{
		lru: cache.New[string, *Texture](capacity, func(key string, t *Texture) {
			Logger().Debug("texture: cache release", "key", key, "label", t.Label())
			t.Release()
		}),
	}
}

// Get returns a new handle to the texture cached under key, or nil.
// The caller must release it.
func (c *Cache) Get(key string) *Texture {
	var clone *Texture
	if !c.lru.GetFunc(key, func(t *Texture) { clone = t.Clone() }) {
		return nil
	}
	Logger().Debug("texture: cache hit", "key", key)
	return clone
}

// GetOrCreate returns a handle to the texture cached under key, creating
// and caching it with create on a miss. The caller must release the returned
// handle; the cache keeps its own. Errors from create are returned
// unchanged and nothing is cached.
func (c *Cache) GetOrCreate(key string, create func() (*Texture, error)) (*Texture, error) {
	var clone *Texture
	if err := c.lru.GetOrCreateFunc(key, create, func(t *Texture) { clone = t.Clone() }); err != nil {
		return nil, err
	}
	if clone == nil {
		return nil, fmt.Errorf("%w: cached texture %q", ErrReleased, key)
	}
	return clone, nil
}

// Put caches a clone of t under key, releasing any texture previously
// cached there. The caller keeps ownership of t.
func (c *Cache) Put(key string, t *Texture) {
	clone := t.Clone()
	if clone == nil {
		return
	}
	c.lru.Set(key, clone)
}

// Delete drops the cache's reference to key. Returns true if it was cached.
func (c *Cache) Delete(key string) bool {
	return c.lru.Delete(key)
}

// Clear drops every cached reference.
func (c *Cache) Clear() {
	c.lru.Clear()
}

// Len returns the number of cached textures.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Stats returns hit, miss and eviction counters.
func (c *Cache) Stats() cache.Stats {
	return c.lru.Stats()
}
