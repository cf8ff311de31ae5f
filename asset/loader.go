// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package asset

import (
	"context"
	"fmt"

	"github.com/gogpu/texture"
)

// Option configures a Loader.
type Option func(*Loader)

// WithSingleChannel stores images as one-byte luminance (R8) textures.
func WithSingleChannel() Option {
	return func(l *Loader) {
		l.decode.SingleChannel = true
	}
}

// WithMaxDimension scales larger images down to fit n pixels per side.
func WithMaxDimension(n int) Option {
	return func(l *Loader) {
		l.decode.MaxDimension = n
	}
}

// WithTextureOptions passes opts to every texture the Loader creates.
// Each texture is labelled with its name unless opts set another label.
func WithTextureOptions(opts ...texture.Option) Option {
	return func(l *Loader) {
		l.texOpts = append(l.texOpts, opts...)
	}
}

// WithCache shares loaded textures through c, keyed by name. Loading a
// cached name is immediate and returns a new handle to the same texture.
func WithCache(c *texture.Cache) Option {
	return func(l *Loader) {
		l.cache = c
	}
}

// Loader turns named image files into textures on one context.
//
// Loader is not safe for concurrent use: Load, Update and Wait must be
// called from the goroutine that drives the context.
type Loader struct {
	ctx     texture.Context
	src     Source
	async   *AsyncSource
	decode  DecodeOptions
	texOpts []texture.Option
	cache   *texture.Cache

	// pending maps names being fetched to the Results waiting on them.
	pending map[string][]*Result
}

// NewLoader creates a Loader reading from src. If src is an *AsyncSource,
// loads complete through Update.
func NewLoader(ctx texture.Context, src Source, opts ...Option) *Loader {
	l := &Loader{
		ctx:     ctx,
		src:     src,
		pending: make(map[string][]*Result),
	}
	if a, ok := src.(*AsyncSource); ok {
		l.async = a
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load starts loading name. With a synchronous source the returned Result
// is ready; with an AsyncSource it is pending unless the texture is cached.
// Concurrent loads of the same name share one fetch.
func (l *Loader) Load(name string) *Result {
	if l.cache != nil {
		if tex := l.cache.Get(name); tex != nil {
			texture.Logger().Debug("asset: cache hit", "name", name)
			return newReady(name, tex, nil)
		}
	}

	if l.async == nil {
		data, err := l.src.Fetch(name)
		if err != nil {
			return newReady(name, nil, err)
		}
		tex, err := l.create(name, data)
		return newReady(name, tex, err)
	}

	if l.async.closed() {
		return newReady(name, nil, fmt.Errorf("%w: %q", ErrClosed, name))
	}
	r := newPending(name)
	if _, busy := l.pending[name]; !busy {
		l.async.start(name)
	}
	l.pending[name] = append(l.pending[name], r)
	return r
}

// Pending returns the number of Results still waiting.
func (l *Loader) Pending() int {
	n := 0
	for _, rs := range l.pending {
		n += len(rs)
	}
	return n
}

// Update finishes every background fetch that has completed: it decodes the
// data, creates the texture and completes the waiting Results, running their
// OnLoad callbacks. It returns the number of Results completed and never
// blocks. Synchronous loaders have nothing to do.
func (l *Loader) Update() int {
	if l.async == nil {
		return 0
	}
	n := 0
	for _, f := range l.async.drain() {
		n += l.finish(f)
	}
	return n
}

// Wait calls Update until nothing is pending or ctx is done.
func (l *Loader) Wait(ctx context.Context) error {
	for {
		l.Update()
		if l.Pending() == 0 {
			return nil
		}
		select {
		case <-l.async.ready:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// finish completes the Results waiting on f.
func (l *Loader) finish(f fetched) int {
	waiting := l.pending[f.name]
	delete(l.pending, f.name)
	if len(waiting) == 0 {
		return 0
	}

	var tex *texture.Texture
	err := f.err
	if err == nil {
		tex, err = l.create(f.name, f.data)
	}

	// Every Result owns its own handle; the creator's is handed to the last.
	for i, r := range waiting {
		var t *texture.Texture
		if tex != nil {
			if i == len(waiting)-1 {
				t = tex
			} else {
				t = tex.Clone()
			}
		}
		r.complete(t, err)
	}
	return len(waiting)
}

// create decodes data and creates the texture, through the cache if set.
func (l *Loader) create(name string, data []byte) (*texture.Texture, error) {
	build := func() (*texture.Texture, error) {
		p, err := Decode(data, l.decode)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", name, err)
		}
		opts := append([]texture.Option{texture.WithLabel(name)}, l.texOpts...)
		tex, err := texture.NewFromPixels(l.ctx, p.Width, p.Height, p.Internal, p.Format, p.Data, opts...)
		if err != nil {
			return nil, fmt.Errorf("asset: %q: %w", name, err)
		}
		texture.Logger().Debug("asset: loaded",
			"name", name, "source", p.Source, "width", p.Width, "height", p.Height)
		return tex, nil
	}

	if l.cache == nil {
		return build()
	}
	return l.cache.GetOrCreate(name, build)
}
