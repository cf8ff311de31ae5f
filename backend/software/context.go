// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"slices"
	"sync"

	"github.com/gogpu/texture"
	"github.com/gogpu/texture/backend"
	"github.com/gogpu/texture/internal/glenum"
	"github.com/gogpu/texture/internal/texref"
)

// DefaultMaxTextureSize is the dimension limit of a new Context.
const DefaultMaxTextureSize = 16384

func init() {
	backend.Register(driver{})
}

type driver struct{}

func (driver) Name() string { return backend.BackendSoftware }

func (driver) Open() (texture.Context, error) {
	return New(), nil
}

// Option configures a Context.
type Option func(*Context)

// WithMaxTextureSize sets the reported maximum texture dimension.
func WithMaxTextureSize(n int) Option {
	return func(c *Context) {
		if n > 0 {
			c.maxSize = n
		}
	}
}

// Image is the state of one texture object.
type Image struct {
	Width, Height  int
	InternalFormat uint32
	Format         uint32

	// Params holds every TexParameter value set on the texture, by name.
	Params map[uint32]int32

	// Pixels holds level 0 with rows tightly packed.
	Pixels []byte

	// Uploads counts TexImage2D calls.
	Uploads int
}

// Stats counts calls made on a Context.
type Stats struct {
	Created int
	Deleted int
	Uploads int
	Live    int
}

// Context is an in-memory texture.Context.
//
// Unlike a real GL context it is safe for concurrent use; calls are
// serialized by a mutex.
type Context struct {
	mu        sync.Mutex
	images    map[texture.Handle]*Image
	next      texture.Handle
	bound     texture.Handle
	alignment int32
	maxSize   int
	closed    bool
	stats     Stats
}

var _ texture.Context = (*Context)(nil)

// New returns an open Context with the default unpack alignment of 4.
func New(opts ...Option) *Context {
	c := &Context{
		images:    make(map[texture.Handle]*Image),
		alignment: glenum.DefaultUnpackAlignment,
		maxSize:   DefaultMaxTextureSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateTexture implements texture.Context.
func (c *Context) CreateTexture() (texture.Handle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return texture.NoHandle, backend.ErrContextClosed
	}
	c.next++
	c.images[c.next] = &Image{Params: defaultParams()}
	c.stats.Created++
	return c.next, nil
}

// defaultParams are the initial parameter values of a GL texture object.
func defaultParams() map[uint32]int32 {
	return map[uint32]int32{
		glenum.TextureWrapS:     int32(glenum.Repeat),
		glenum.TextureWrapT:     int32(glenum.Repeat),
		glenum.TextureMagFilter: int32(glenum.Linear),
		// NEAREST_MIPMAP_LINEAR
		glenum.TextureMinFilter: 0x2702,
	}
}

// BindTexture2D implements texture.Context.
func (c *Context) BindTexture2D(h texture.Handle) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return backend.ErrContextClosed
	}
	if h != texture.NoHandle {
		if _, ok := c.images[h]; !ok {
			return &backend.GLError{Op: "glBindTexture", Code: glenum.InvalidOperation}
		}
	}
	c.bound = h
	return nil
}

// TexParameter implements texture.Context.
func (c *Context) TexParameter(pname uint32, value int32) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	const op = "glTexParameteri"
	img, err := c.boundImage(op)
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
	img.Params[pname] = value
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

// TexImage2D implements texture.Context. Client rows are read with the
// current unpack alignment, so a row whose byte length is not a multiple
// of it is expected to be followed by padding.
func (c *Context) TexImage2D(level int32, internalFormat uint32, width, height int32, format, dataType uint32, pixels []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	const op = "glTexImage2D"
	img, err := c.boundImage(op)
	if err != nil {
		return err
	}

	comps := glenum.Components(format)
	switch {
	case comps == 0 || dataType != glenum.UnsignedByte:
		return &backend.GLError{Op: op, Code: glenum.InvalidEnum}
	case level != 0:
		return &backend.GLError{Op: op, Code: glenum.InvalidValue}
	case width < 0 || height < 0 || int(width) > c.maxSize || int(height) > c.maxSize:
		return &backend.GLError{Op: op, Code: glenum.InvalidValue}
	}
	if _, ok := glenum.TextureFormat(internalFormat); !ok {
		return &backend.GLError{Op: op, Code: glenum.InvalidValue}
	}

	w, h := int(width), int(height)
	row := w * comps
	stride := alignUp(row, int(c.alignment))
	packed := make([]byte, row*h)
	if pixels != nil && h > 0 {
		if need := stride*(h-1) + row; len(pixels) < need {
			return &backend.GLError{Op: op, Code: glenum.InvalidOperation}
		}
		for y := range h {
			copy(packed[y*row:(y+1)*row], pixels[y*stride:y*stride+row])
		}
	}

	img.Width, img.Height = w, h
	img.InternalFormat, img.Format = internalFormat, format
	img.Pixels = packed
	img.Uploads++
	c.stats.Uploads++
	return nil
}

// DeleteTexture implements texture.Context. Unknown names are ignored.
func (c *Context) DeleteTexture(h texture.Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.images[h]; !ok {
		return
	}
	delete(c.images, h)
	if c.bound == h {
		c.bound = texture.NoHandle
	}
	c.stats.Deleted++
}

// Alive implements texture.Context.
func (c *Context) Alive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed
}

// MaxTextureSize reports the largest accepted dimension.
func (c *Context) MaxTextureSize() int {
	return c.maxSize
}

// Close destroys every texture at once. Afterwards Alive reports false
// and every call fails.
func (c *Context) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.images = make(map[texture.Handle]*Image)
	c.bound = texture.NoHandle
}

// Texture returns a copy of the state of h.
func (c *Context) Texture(h texture.Handle) (Image, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	img, ok := c.images[h]
	if !ok {
		return Image{}, false
	}
	out := *img
	out.Pixels = slices.Clone(img.Pixels)
	out.Params = make(map[uint32]int32, len(img.Params))
	for k, v := range img.Params {
		out.Params[k] = v
	}
	return out, true
}

// TextureImage returns a copy of the state of tex. It reports false if tex
// was not created on c or has been released.
func (c *Context) TextureImage(tex *texture.Texture) (Image, bool) {
	h, owner := texref.Lookup(tex)
	if h == 0 || owner != any(c) {
		return Image{}, false
	}
	return c.Texture(texture.Handle(h))
}

// Handles returns the live texture names in ascending order.
func (c *Context) Handles() []texture.Handle {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]texture.Handle, 0, len(c.images))
	for h := range c.images {
		out = append(out, h)
	}
	slices.Sort(out)
	return out
}

// Bound returns the texture bound to the 2D target.
func (c *Context) Bound() texture.Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bound
}

// Alignment returns the current unpack alignment.
func (c *Context) Alignment() int32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.alignment
}

// Stats returns call counters.
func (c *Context) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Live = len(c.images)
	return s
}

// boundImage returns the bound texture. Caller must hold c.mu.
func (c *Context) boundImage(op string) (*Image, error) {
	if c.closed {
		return nil, backend.ErrContextClosed
	}
	img, ok := c.images[c.bound]
	if !ok {
		return nil, &backend.GLError{Op: op, Code: glenum.InvalidOperation}
	}
	return img, nil
}

func alignUp(n, a int) int {
	return (n + a - 1) / a * a
}
