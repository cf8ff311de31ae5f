// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/texture"
	"github.com/gogpu/texture/backend"
	"github.com/gogpu/texture/internal/glenum"
	"github.com/gogpu/texture/internal/texref"
	"github.com/gogpu/wgpu"
)

// ErrUnsupportedDevice is returned when a provider's device is not a
// *wgpu.Device.
var ErrUnsupportedDevice = errors.New("wgpu: provider device is not a gogpu/wgpu device")

// ErrForeignTexture is returned for a texture created on another context.
var ErrForeignTexture = errors.New("wgpu: texture belongs to another context")

// object is the emulated state of one texture name.
type object struct {
	params map[uint32]int32

	tex     *wgpu.Texture
	view    *wgpu.TextureView
	sampler *wgpu.Sampler
	format  gputypes.TextureFormat
	width   int
	height  int
}

// release frees the GPU resources of o.
func (o *object) release() {
	o.releaseSampler()
	if o.view != nil {
		o.view.Release()
		o.view = nil
	}
	if o.tex != nil {
		o.tex.Release()
		o.tex = nil
	}
}

func (o *object) releaseSampler() {
	if o.sampler != nil {
		o.sampler.Release()
		o.sampler = nil
	}
}

// Context emulates texture.Context on a WebGPU device.
type Context struct {
	mu        sync.Mutex
	device    *wgpu.Device
	queue     *wgpu.Queue
	objects   map[texture.Handle]*object
	next      texture.Handle
	bound     texture.Handle
	alignment int32
	maxSize   int
	closed    bool
}

var _ texture.Context = (*Context)(nil)

// Open creates a Context on the provider's device. The device stays owned
// by the provider; Close releases only textures created through the context.
func Open(provider gpucontext.DeviceProvider) (*Context, error) {
	if provider == nil {
		return nil, errors.New("wgpu: nil DeviceProvider")
	}
	device, ok := provider.Device().(*wgpu.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: got %T", ErrUnsupportedDevice, provider.Device())
	}
	queue, _ := provider.Queue().(*wgpu.Queue)
	if queue == nil {
		queue = device.Queue()
	}

	texture.Logger().Debug("wgpu: context opened", "adapter", provider.AdapterInfo().Name)
	return &Context{
		device:    device,
		queue:     queue,
		objects:   make(map[texture.Handle]*object),
		alignment: glenum.DefaultUnpackAlignment,
		maxSize:   int(gputypes.DefaultLimits().MaxTextureDimension2D),
	}, nil
}

// Register makes provider available as the "wgpu" backend.
func Register(provider gpucontext.DeviceProvider) {
	backend.Register(driver{provider: provider})
}

type driver struct {
	provider gpucontext.DeviceProvider
}

func (driver) Name() string { return backend.BackendWGPU }

func (d driver) Open() (texture.Context, error) {
	return Open(d.provider)
}

// CreateTexture implements texture.Context. The GPU texture itself is
// created by the first TexImage2D.
func (c *Context) CreateTexture() (texture.Handle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return texture.NoHandle, backend.ErrContextClosed
	}
	c.next++
	c.objects[c.next] = &object{params: make(map[uint32]int32)}
	return c.next, nil
}

// BindTexture2D implements texture.Context.
func (c *Context) BindTexture2D(h texture.Handle) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return backend.ErrContextClosed
	}
	if h != texture.NoHandle {
		if _, ok := c.objects[h]; !ok {
			return &backend.GLError{Op: "glBindTexture", Code: glenum.InvalidOperation}
		}
	}
	c.bound = h
	return nil
}

// TexParameter implements texture.Context. Changing a parameter drops the
// cached sampler.
func (c *Context) TexParameter(pname uint32, value int32) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	const op = "glTexParameteri"
	o, err := c.boundObject(op)
	if err != nil {
		return err
	}
	var ok bool
	switch pname {
	case glenum.TextureMinFilter, glenum.TextureMagFilter:
		_, ok = glenum.FilterMode(value)
	case glenum.TextureWrapS, glenum.TextureWrapT:
		_, ok = glenum.AddressMode(value)
	}
	if !ok {
		return &backend.GLError{Op: op, Code: glenum.InvalidEnum}
	}
	if o.params[pname] != value {
		o.params[pname] = value
		o.releaseSampler()
	}
	return nil
}

// PixelStoreAlignment implements texture.Context.
func (c *Context) PixelStoreAlignment(alignment int32) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return backend.ErrContextClosed
	}
	switch alignment {
	case 1, 2, 4, 8:
		c.alignment = alignment
		return nil
	default:
		return &backend.GLError{Op: "glPixelStorei", Code: glenum.InvalidValue}
	}
}

// TexImage2D implements texture.Context. The GPU texture is recreated when
// the size or format changes, then written through the queue.
func (c *Context) TexImage2D(level int32, internalFormat uint32, width, height int32, format, dataType uint32, pixels []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	const op = "glTexImage2D"
	o, err := c.boundObject(op)
	if err != nil {
		return err
	}

	comps := glenum.Components(format)
	storage, ok := glenum.TextureFormat(internalFormat)
	switch {
	case comps == 0 || dataType != glenum.UnsignedByte:
		return &backend.GLError{Op: op, Code: glenum.InvalidEnum}
	case !ok || level != 0:
		return &backend.GLError{Op: op, Code: glenum.InvalidValue}
	case width <= 0 || height <= 0 || int(width) > c.maxSize || int(height) > c.maxSize:
		return &backend.GLError{Op: op, Code: glenum.InvalidValue}
	}

	w, h := int(width), int(height)
	data := make([]byte, w*h*texelSize(storage))
	if pixels != nil {
		if data, ok = repack(pixels, w, h, comps, int(c.alignment), storage); !ok {
			return &backend.GLError{Op: op, Code: glenum.InvalidOperation}
		}
	}

	if o.tex == nil || o.width != w || o.height != h || o.format != storage {
		if err := c.allocate(o, w, h, storage); err != nil {
			return err
		}
	}

	size := wgpu.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1}
	err = c.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  o.tex,
			MipLevel: 0,
			Aspect:   gputypes.TextureAspectAll,
		},
		data,
		&wgpu.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(w * texelSize(storage)),
			RowsPerImage: uint32(h),
		},
		&size,
	)
	if err != nil {
		return fmt.Errorf("wgpu: write texture: %w", err)
	}
	return nil
}

// allocate replaces the GPU texture and view of o. Caller must hold c.mu.
func (c *Context) allocate(o *object, w, h int, format gputypes.TextureFormat) error {
	o.release()

	tex, err := c.device.CreateTexture(&wgpu.TextureDescriptor{
		Size:          wgpu.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         gputypes.TextureUsageCopyDst | gputypes.TextureUsageTextureBinding,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create texture %dx%d: %w", w, h, err)
	}
	view, err := c.device.CreateTextureView(tex, &wgpu.TextureViewDescriptor{
		Format:          format,
		Dimension:       gputypes.TextureViewDimension2D,
		Aspect:          gputypes.TextureAspectAll,
		MipLevelCount:   1,
		ArrayLayerCount: 1,
	})
	if err != nil {
		tex.Release()
		return fmt.Errorf("wgpu: create texture view: %w", err)
	}

	o.tex, o.view = tex, view
	o.width, o.height, o.format = w, h, format
	return nil
}

// DeleteTexture implements texture.Context. Unknown names are ignored.
func (c *Context) DeleteTexture(h texture.Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	o, ok := c.objects[h]
	if !ok {
		return
	}
	o.release()
	delete(c.objects, h)
	if c.bound == h {
		c.bound = texture.NoHandle
	}
}

// Alive implements texture.Context.
func (c *Context) Alive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed
}

// MaxTextureSize reports the WebGPU default 2D dimension limit.
func (c *Context) MaxTextureSize() int {
	return c.maxSize
}

// Close releases every texture created through c. Afterwards Alive reports
// false. The device is not released.
func (c *Context) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	for _, o := range c.objects {
		o.release()
	}
	c.objects = nil
	c.bound = texture.NoHandle
	c.closed = true
}

// View returns the texture view of h for binding in a render pass, or nil
// before the first upload.
func (c *Context) View(h texture.Handle) *wgpu.TextureView {
	c.mu.Lock()
	defer c.mu.Unlock()

	if o, ok := c.objects[h]; ok {
		return o.view
	}
	return nil
}

// Sampler returns a sampler matching the wrap and filter parameters of h,
// creating it on first use.
func (c *Context) Sampler(h texture.Handle) (*wgpu.Sampler, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	o, ok := c.objects[h]
	if !ok {
		return nil, &backend.GLError{Op: "sampler", Code: glenum.InvalidOperation}
	}
	if o.sampler != nil {
		return o.sampler, nil
	}

	desc := samplerDescriptor(o.params)
	s, err := c.device.CreateSampler(&desc)
	if err != nil {
		return nil, fmt.Errorf("wgpu: create sampler: %w", err)
	}
	o.sampler = s
	return s, nil
}

// TextureView returns the view of tex for binding in a render pass.
// tex must have been created on c and not yet released.
func (c *Context) TextureView(tex *texture.Texture) (*wgpu.TextureView, error) {
	h, err := c.handleOf(tex)
	if err != nil {
		return nil, err
	}
	if v := c.View(h); v != nil {
		return v, nil
	}
	return nil, &backend.GLError{Op: "texture view", Code: glenum.InvalidOperation}
}

// TextureSampler returns the sampler matching the parameters of tex.
func (c *Context) TextureSampler(tex *texture.Texture) (*wgpu.Sampler, error) {
	h, err := c.handleOf(tex)
	if err != nil {
		return nil, err
	}
	return c.Sampler(h)
}

// handleOf returns the name of tex after checking that c owns it.
func (c *Context) handleOf(tex *texture.Texture) (texture.Handle, error) {
	h, owner := texref.Lookup(tex)
	if h == 0 {
		return texture.NoHandle, texture.ErrReleased
	}
	if owner != any(c) {
		return texture.NoHandle, ErrForeignTexture
	}
	return texture.Handle(h), nil
}

// samplerDescriptor translates GL texture parameters. Unset parameters use
// the GL defaults except the minification filter, which has no mipmaps to
// sample and falls back to linear.
func samplerDescriptor(params map[uint32]int32) wgpu.SamplerDescriptor {
	filter := func(pname uint32) gputypes.FilterMode {
		if m, ok := glenum.FilterMode(params[pname]); ok {
			return m
		}
		return gputypes.FilterModeLinear
	}
	address := func(pname uint32) gputypes.AddressMode {
		if m, ok := glenum.AddressMode(params[pname]); ok {
			return m
		}
		return gputypes.AddressModeRepeat
	}
	return wgpu.SamplerDescriptor{
		AddressModeU: address(glenum.TextureWrapS),
		AddressModeV: address(glenum.TextureWrapT),
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    filter(glenum.TextureMagFilter),
		MinFilter:    filter(glenum.TextureMinFilter),
		MipmapFilter: gputypes.FilterModeNearest,
		LodMinClamp:  0,
		LodMaxClamp:  32,
		Anisotropy:   1,
	}
}

// boundObject returns the bound object. Caller must hold c.mu.
func (c *Context) boundObject(op string) (*object, error) {
	if c.closed {
		return nil, backend.ErrContextClosed
	}
	o, ok := c.objects[c.bound]
	if !ok {
		return nil, &backend.GLError{Op: op, Code: glenum.InvalidOperation}
	}
	return o, nil
}
