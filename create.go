// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/texture/internal/glenum"
)

// Descriptor describes a texture to create.
type Descriptor struct {
	// Label is an optional debug name used in log records.
	Label string

	// Width and Height are the dimensions in pixels. Both must be positive.
	Width  int
	Height int

	// InternalFormat is the storage format; Format is the layout of the
	// uploaded data. The pair determines BytesPerPixel.
	InternalFormat PixelFormat
	Format         PixelFormat

	// MinFilter and MagFilter select sampling interpolation.
	MinFilter Filter
	MagFilter Filter

	// MaxSize overrides the context's maximum texture dimension.
	// Zero uses the context limit, if the context reports one.
	MaxSize int
}

// Create allocates a GPU texture described by desc and uploads pixels as
// level 0. A nil pixels slice uploads zeroes so the storage is never left
// undefined.
//
// The calls issued on ctx are, in order: CreateTexture, PixelStoreAlignment(1)
// when the format is single-byte, BindTexture2D, TexParameter for both wrap
// axes (clamp to edge) and both filters, TexImage2D, BindTexture2D(NoHandle),
// and PixelStoreAlignment(4) to restore the default. On return no texture is
// bound.
//
// If any call after CreateTexture fails, the new object is deleted before
// the error is returned, so a failed creation never leaks a GPU object.
func Create(ctx Context, desc *Descriptor, pixels []byte) (*Texture, error) {
	if err := validate(ctx, desc, pixels); err != nil {
		return nil, err
	}

	bpp := BytesPerPixel(desc.InternalFormat, desc.Format)
	if pixels == nil {
		pixels = make([]byte, desc.Width*desc.Height*bpp)
	}

	h, err := ctx.CreateTexture()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAllocation, err)
	}
	if h == NoHandle {
		return nil, fmt.Errorf("%w: context returned no texture name", ErrAllocation)
	}

	if err := upload(ctx, h, desc, bpp, pixels, true); err != nil {
		ctx.DeleteTexture(h)
		Logger().Debug("texture: deleted object of failed creation",
			"label", desc.Label, "handle", uint32(h), "err", err)
		return nil, err
	}

	Logger().Debug("texture: created",
		"label", desc.Label,
		"handle", uint32(h),
		"width", desc.Width,
		"height", desc.Height,
		"internal", desc.InternalFormat,
		"format", desc.Format)

	return newTexture(newResource(ctx, h, desc)), nil
}

// New creates a zero-filled texture.
func New(ctx Context, width, height int, internal, format PixelFormat, minFilter, magFilter Filter, opts ...Option) (*Texture, error) {
	desc := newDescriptor(width, height, internal, format, opts)
	desc.MinFilter = minFilter
	desc.MagFilter = magFilter
	return Create(ctx, &desc, nil)
}

// NewDefault creates a zero-filled RGBA texture with nearest filtering.
// WithFilters overrides the filters.
func NewDefault(ctx Context, width, height int, opts ...Option) (*Texture, error) {
	desc := newDescriptor(width, height, FormatRGBA, FormatRGBA, opts)
	return Create(ctx, &desc, nil)
}

// NewFromPixels creates a texture from already-decoded pixel data.
// pixels must hold width * height * BytesPerPixel(internal, format) bytes,
// rows tightly packed top to bottom. Filters default to nearest and can be
// set with WithFilters.
func NewFromPixels(ctx Context, width, height int, internal, format PixelFormat, pixels []byte, opts ...Option) (*Texture, error) {
	if pixels == nil {
		return nil, fmt.Errorf("%w: nil pixel data", ErrPixelDataSize)
	}
	desc := newDescriptor(width, height, internal, format, opts)
	return Create(ctx, &desc, pixels)
}

// MustNew is like New but panics on error.
// Use only when errors are programming mistakes.
func MustNew(ctx Context, width, height int, internal, format PixelFormat, minFilter, magFilter Filter, opts ...Option) *Texture {
	t, err := New(ctx, width, height, internal, format, minFilter, magFilter, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// validate checks desc and pixels before any GPU call is made.
func validate(ctx Context, desc *Descriptor, pixels []byte) error {
	switch {
	case ctx == nil:
		return ErrNilContext
	case desc == nil:
		return errors.New("texture: descriptor is nil")
	case !ctx.Alive():
		return ErrContextLost
	case desc.Width <= 0 || desc.Height <= 0:
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidSize, desc.Width, desc.Height)
	case !desc.InternalFormat.Valid() || !desc.Format.Valid():
		return fmt.Errorf("%w: internal=%v, format=%v", ErrUnsupportedFormat, desc.InternalFormat, desc.Format)
	case !desc.MinFilter.Valid() || !desc.MagFilter.Valid():
		return fmt.Errorf("%w: min filter=%v, mag filter=%v", ErrUnsupportedFormat, desc.MinFilter, desc.MagFilter)
	}

	limit := desc.MaxSize
	if limit <= 0 {
		if l, ok := ctx.(sizeLimiter); ok {
			limit = l.MaxTextureSize()
		}
	}
	if limit <= 0 || limit > math.MaxInt32 {
		limit = math.MaxInt32
	}
	if desc.Width > limit || desc.Height > limit {
		return fmt.Errorf("%w: %dx%d exceeds %d", ErrTextureTooLarge, desc.Width, desc.Height, limit)
	}

	bpp := BytesPerPixel(desc.InternalFormat, desc.Format)
	if desc.Width > math.MaxInt/desc.Height/bpp {
		return fmt.Errorf("%w: %dx%d does not fit in memory", ErrTextureTooLarge, desc.Width, desc.Height)
	}
	if pixels != nil {
		if want := desc.Width * desc.Height * bpp; len(pixels) != want {
			return fmt.Errorf("%w: got %d bytes, want %d", ErrPixelDataSize, len(pixels), want)
		}
	}
	return nil
}

// texParam is one TexParameter call.
type texParam struct {
	name  uint32
	value int32
}

// upload binds h, optionally sets wrap and filter parameters, uploads level
// 0 and unbinds. Single-byte formats temporarily lower the unpack alignment
// to 1 so rows of odd widths are read without padding.
//
// Order matters: parameters and the upload act on the bound texture, and the
// alignment must be in effect before the upload.
func upload(ctx Context, h Handle, d *Descriptor, bpp int, pixels []byte, configure bool) (err error) {
	if bpp == 1 {
		if err := ctx.PixelStoreAlignment(1); err != nil {
			return fmt.Errorf("%w: unpack alignment: %w", ErrConfiguration, err)
		}
		defer func() {
			rerr := ctx.PixelStoreAlignment(glenum.DefaultUnpackAlignment)
			switch {
			case rerr == nil:
			case err == nil:
				err = fmt.Errorf("%w: restore unpack alignment: %w", ErrConfiguration, rerr)
			default:
				Logger().Warn("texture: restore unpack alignment", "err", rerr)
			}
		}()
	}

	if err := ctx.BindTexture2D(h); err != nil {
		return fmt.Errorf("%w: bind: %w", ErrConfiguration, err)
	}
	defer func() {
		uerr := ctx.BindTexture2D(NoHandle)
		switch {
		case uerr == nil:
		case err == nil:
			err = fmt.Errorf("%w: unbind: %w", ErrConfiguration, uerr)
		default:
			Logger().Warn("texture: unbind", "err", uerr)
		}
	}()

	if configure {
		params := [...]texParam{
			{glenum.TextureWrapS, int32(glenum.ClampToEdge)},
			{glenum.TextureWrapT, int32(glenum.ClampToEdge)},
			{glenum.TextureMagFilter, WireFilter(d.MagFilter)},
			{glenum.TextureMinFilter, WireFilter(d.MinFilter)},
		}
		for _, p := range params {
			if err := ctx.TexParameter(p.name, p.value); err != nil {
				return fmt.Errorf("%w: parameter 0x%04X: %w", ErrConfiguration, p.name, err)
			}
		}
	}

	err = ctx.TexImage2D(0, WireFormat(d.InternalFormat), int32(d.Width), int32(d.Height),
		WireFormat(d.Format), glenum.UnsignedByte, pixels)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUpload, err)
	}
	return nil
}
