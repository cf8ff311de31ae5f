// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/gogpu/texture/internal/texref"
)

func init() {
	texref.Lookup = lookup
}

// resource is the GPU-backed state shared by every Texture handle that
// aliases it. It owns the GPU object and deletes it exactly once, when the
// last handle is released.
type resource struct {
	// desc is immutable after creation.
	desc Descriptor

	// mu guards handle and ctx, which are cleared on teardown.
	mu     sync.Mutex
	handle Handle
	ctx    Context

	refs     atomic.Int32
	teardown sync.Once
}

// newResource wraps a realized GPU object. The returned resource holds no
// references yet.
func newResource(ctx Context, h Handle, desc *Descriptor) *resource {
	return &resource{desc: *desc, handle: h, ctx: ctx}
}

// live returns the handle and context, or NoHandle after teardown.
func (r *resource) live() (Handle, Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.handle, r.ctx
}

func (r *resource) acquire() {
	r.refs.Add(1)
}

// tryAcquire adds a reference unless the resource has already been torn
// down.
func (r *resource) tryAcquire() bool {
	for {
		n := r.refs.Load()
		if n <= 0 {
			return false
		}
		if r.refs.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

func (r *resource) release() {
	n := r.refs.Add(-1)
	switch {
	case n == 0:
		r.teardown.Do(r.destroy)
	case n < 0:
		panic("texture: resource released more times than acquired")
	}
}

// destroy deletes the GPU object if there is one and its context is alive.
func (r *resource) destroy() {
	r.mu.Lock()
	h, ctx := r.handle, r.ctx
	r.handle, r.ctx = NoHandle, nil
	r.mu.Unlock()

	if h == NoHandle || ctx == nil {
		return
	}
	if !ctx.Alive() {
		Logger().Warn("texture: context gone, delete skipped",
			"label", r.desc.Label, "handle", uint32(h))
		return
	}
	ctx.DeleteTexture(h)
	Logger().Debug("texture: deleted",
		"label", r.desc.Label, "handle", uint32(h))
}

// Texture is a shared handle to a GPU texture.
//
// Every *Texture returned by a constructor or by Clone owns one reference
// and must be released with Release. The GPU object is deleted when the
// last handle referencing it is released; releasing a handle twice has no
// effect.
//
// Texture follows the single-threaded model of its Context: creation,
// Update and the final Release must happen on the goroutine that drives the
// context. Read-only queries are safe from any goroutine.
type Texture struct {
	res      *resource
	released atomic.Bool
	cleanup  runtime.Cleanup
}

// leakInfo is what the cleanup of an unreleased handle reports.
type leakInfo struct {
	label  string
	handle Handle
}

// newTexture creates a handle owning one new reference to res.
func newTexture(res *resource) *Texture {
	res.acquire()
	return wrapTexture(res)
}

// wrapTexture creates a handle for a reference already taken on res.
func wrapTexture(res *resource) *Texture {
	t := &Texture{res: res}
	h, _ := res.live()
	t.cleanup = runtime.AddCleanup(t, reportLeak, leakInfo{label: res.desc.Label, handle: h})
	return t
}

// reportLeak runs on the collector goroutine, so it only logs: deleting a
// GPU object there would issue graphics calls off the context's thread.
func reportLeak(info leakInfo) {
	Logger().Warn("texture: handle collected without Release",
		"label", info.label, "handle", uint32(info.handle))
}

// Clone returns a new handle sharing t's GPU texture. The clone must be
// released independently. Clone returns nil if t is nil, has been
// released, or its GPU texture has already been torn down.
func (t *Texture) Clone() *Texture {
	if t == nil || t.released.Load() || !t.res.tryAcquire() {
		return nil
	}
	return wrapTexture(t.res)
}

// Release drops this handle's reference. When it was the last one, the GPU
// texture is deleted through the context that created it, unless that
// context is no longer alive.
//
// Release is idempotent.
func (t *Texture) Release() {
	if !t.released.CompareAndSwap(false, true) {
		return
	}
	t.cleanup.Stop()
	t.res.release()
}

// IsReleased reports whether Release has been called on this handle.
func (t *Texture) IsReleased() bool {
	return t.released.Load()
}

// Width returns the texture width in pixels.
func (t *Texture) Width() float32 {
	return float32(t.res.desc.Width)
}

// Height returns the texture height in pixels.
func (t *Texture) Height() float32 {
	return float32(t.res.desc.Height)
}

// Size returns the integer dimensions.
func (t *Texture) Size() (width, height int) {
	return t.res.desc.Width, t.res.desc.Height
}

// Format returns the internal (storage) format the texture was created with.
func (t *Texture) Format() PixelFormat {
	return t.res.desc.InternalFormat
}

// DataFormat returns the format of the pixel data the texture accepts.
func (t *Texture) DataFormat() PixelFormat {
	return t.res.desc.Format
}

// Filters returns the minification and magnification filters.
func (t *Texture) Filters() (minFilter, magFilter Filter) {
	return t.res.desc.MinFilter, t.res.desc.MagFilter
}

// Label returns the debug label.
func (t *Texture) Label() string {
	return t.res.desc.Label
}

// Descriptor returns a copy of the descriptor the texture was created with.
func (t *Texture) Descriptor() Descriptor {
	return t.res.desc
}

// ByteSize returns the size of level 0 in bytes.
func (t *Texture) ByteSize() int {
	d := &t.res.desc
	return d.Width * d.Height * BytesPerPixel(d.InternalFormat, d.Format)
}

// raw returns the GPU handle for drawing code, or NoHandle once the texture
// has been torn down. Backends reach it through internal/texref.
func (t *Texture) raw() Handle {
	if t.released.Load() {
		return NoHandle
	}
	h, _ := t.res.live()
	return h
}

// lookup resolves a *Texture for the backends in this module.
func lookup(v any) (uint32, any) {
	t, ok := v.(*Texture)
	if !ok || t == nil || t.released.Load() {
		return 0, nil
	}
	h, ctx := t.res.live()
	if h == NoHandle || ctx == nil {
		return 0, nil
	}
	return uint32(h), ctx
}

// Update replaces the texture contents. pixels must hold exactly
// ByteSize() bytes laid out in DataFormat().
func (t *Texture) Update(pixels []byte) error {
	h := t.raw()
	if h == NoHandle {
		return ErrReleased
	}
	_, ctx := t.res.live()
	if ctx == nil {
		return ErrReleased
	}
	if !ctx.Alive() {
		return ErrContextLost
	}
	if want := t.ByteSize(); len(pixels) != want {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrPixelDataSize, len(pixels), want)
	}
	d := &t.res.desc
	if err := upload(ctx, h, d, BytesPerPixel(d.InternalFormat, d.Format), pixels, false); err != nil {
		return err
	}
	Logger().Debug("texture: updated", "label", d.Label, "handle", uint32(h))
	return nil
}
