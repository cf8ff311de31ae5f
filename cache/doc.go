// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package cache provides a generic LRU cache whose evictions are reported
// through a callback, so values that own external resources can release them.
//
//	c := cache.New[string, *texture.Texture](64, func(_ string, t *texture.Texture) {
//		t.Release()
//	})
//
// # Thread Safety
//
// Cache is safe for concurrent use and must not be copied after creation.
// The eviction callback runs after the cache lock is released, on the
// goroutine whose call caused the eviction.
package cache
