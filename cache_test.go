// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

import (
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
)

func TestCache_GetOrCreateSharesTexture(t *testing.T) {
	ctx := newMockContext()
	c := NewCache(4)
	t.Cleanup(c.Clear)

	created := 0
	create := func() (*Texture, error) {
		created++
		return NewDefault(ctx, 2, 2)
	}

	a, err := c.GetOrCreate("a.png", create)
	if err != nil {
		t.Fatalf("GetOrCreate() = %v", err)
	}
	b, err := c.GetOrCreate("a.png", create)
	if err != nil {
		t.Fatalf("GetOrCreate() = %v", err)
	}
	if created != 1 {
		t.Errorf("created %d textures, want 1", created)
	}
	if a == b || a.raw() != b.raw() {
		t.Error("expected distinct handles to the same texture")
	}

	a.Release()
	b.Release()
	if ctx.totalDeletes() != 0 {
		t.Error("texture deleted while still cached")
	}

	c.Clear()
	if ctx.deleted[1] != 1 {
		t.Errorf("deletes = %v, want handle 1 once", ctx.deleted)
	}
}

func TestCache_EvictionKeepsOutstandingClones(t *testing.T) {
	ctx := newMockContext()
	c := NewCache(1)

	first, err := c.GetOrCreate("first", func() (*Texture, error) { return NewDefault(ctx, 1, 1) })
	if err != nil {
		t.Fatalf("GetOrCreate(first) = %v", err)
	}
	second, err := c.GetOrCreate("second", func() (*Texture, error) { return NewDefault(ctx, 1, 1) })
	if err != nil {
		t.Fatalf("GetOrCreate(second) = %v", err)
	}

	if c.Get("first") != nil {
		t.Error("first should have been evicted")
	}
	if ctx.totalDeletes() != 0 {
		t.Fatal("evicted texture deleted while a clone is held")
	}
	first.Release()
	if ctx.deleted[1] != 1 {
		t.Errorf("evicted texture not deleted after last release: %v", ctx.deleted)
	}

	second.Release()
	c.Clear()
	if ctx.totalDeletes() != 2 {
		t.Errorf("deletes = %d, want 2", ctx.totalDeletes())
	}
	if s := c.Stats(); s.Evictions != 1 || s.Misses < 2 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestCache_PutGetDelete(t *testing.T) {
	ctx := newMockContext()
	c := NewCache(0)

	tex, _ := NewDefault(ctx, 1, 1)
	c.Put("k", tex)
	tex.Release()

	got := c.Get("k")
	if got == nil {
		t.Fatal("Get(k) = nil after Put")
	}
	got.Release()
	if ctx.totalDeletes() != 0 {
		t.Fatal("cached texture deleted")
	}

	if !c.Delete("k") || c.Len() != 0 {
		t.Error("Delete(k) did not remove the entry")
	}
	if ctx.deleted[1] != 1 {
		t.Errorf("deletes = %v, want handle 1 once", ctx.deleted)
	}

	c.Put("released", tex)
	if c.Len() != 0 {
		t.Error("Put cached a released texture")
	}
}

func TestCache_CreateErrorNotCached(t *testing.T) {
	c := NewCache(2)
	_, err := c.GetOrCreate("bad", func() (*Texture, error) {
		return NewDefault(newMockContext(), 0, 0)
	})
	if !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("error = %v, want ErrInvalidSize", err)
	}
	if c.Len() != 0 {
		t.Error("failed creation cached")
	}
}

func TestCache_ConcurrentHandlesStayLive(t *testing.T) {
	ctx := &lockedContext{m: newMockContext()}
	c := NewCache(1)

	var created atomic.Int32
	create := func() (*Texture, error) {
		created.Add(1)
		return NewDefault(ctx, 1, 1)
	}

	var wg sync.WaitGroup
	var dead atomic.Int32
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 2000 {
				key := strconv.Itoa((g + i) % 3)
				tex, err := c.GetOrCreate(key, create)
				if err != nil {
					t.Errorf("GetOrCreate(%s) = %v", key, err)
					return
				}
				if tex == nil || tex.raw() == NoHandle {
					dead.Add(1)
					continue
				}
				tex.Release()

				if hit := c.Get(key); hit != nil {
					if hit.raw() == NoHandle {
						dead.Add(1)
					}
					hit.Release()
				}
			}
		}()
	}
	wg.Wait()

	if n := dead.Load(); n != 0 {
		t.Errorf("%d handles came back torn down", n)
	}
	c.Clear()
	if got, want := ctx.totalDeletes(), int(created.Load()); got != want {
		t.Errorf("deletes = %d, want one per created texture (%d)", got, want)
	}
	if ctx.maxDeletes() > 1 {
		t.Error("a texture was deleted more than once")
	}
}
