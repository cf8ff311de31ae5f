// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

import (
	"fmt"

	"github.com/gogpu/gpucontext"
)

// Creator adapts a Context to gpucontext.TextureCreator, so libraries that
// only know the gpucontext interfaces can allocate textures on it.
//
// Example:
//
//	var tc gpucontext.TextureCreator = texture.NewCreator(ctx, texture.WithLabel("ui"))
//	t, err := tc.NewTextureFromRGBA(w, h, pixels)
type Creator struct {
	ctx  Context
	opts []Option
}

var _ gpucontext.TextureCreator = (*Creator)(nil)

// NewCreator returns a Creator that applies opts to every texture it makes.
func NewCreator(ctx Context, opts ...Option) *Creator {
	return &Creator{ctx: ctx, opts: opts}
}

// NewTextureFromRGBA creates an RGBA texture from tightly packed pixel data.
// The result also implements gpucontext.TextureUpdater and has a Destroy
// method that releases it.
func (c *Creator) NewTextureFromRGBA(width, height int, data []byte) (gpucontext.Texture, error) {
	t, err := NewFromPixels(c.ctx, width, height, FormatRGBA, FormatRGBA, data, c.opts...)
	if err != nil {
		return nil, err
	}
	return &contextTexture{t: t}, nil
}

// contextTexture exposes a *Texture through the gpucontext interfaces.
type contextTexture struct {
	t *Texture
}

var (
	_ gpucontext.Texture        = (*contextTexture)(nil)
	_ gpucontext.TextureUpdater = (*contextTexture)(nil)
)

func (c *contextTexture) Width() int {
	w, _ := c.t.Size()
	return w
}

func (c *contextTexture) Height() int {
	_, h := c.t.Size()
	return h
}

// UpdateData re-uploads the full texture contents.
func (c *contextTexture) UpdateData(data []byte) error {
	if err := c.t.Update(data); err != nil {
		return fmt.Errorf("texture: update %q: %w", c.t.Label(), err)
	}
	return nil
}

// Destroy releases the texture. It matches the Destroy method that
// gpucontext consumers call on textures they no longer need.
func (c *contextTexture) Destroy() {
	c.t.Release()
}

// FromGPUContext returns a new handle to the texture behind t if t was
// created by a Creator. The caller must release it.
func FromGPUContext(t gpucontext.Texture) (*Texture, bool) {
	ct, ok := t.(*contextTexture)
	if !ok {
		return nil, false
	}
	clone := ct.t.Clone()
	return clone, clone != nil
}
