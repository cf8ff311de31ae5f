// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package asset

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/texture"
)

// Pixels is a decoded image ready for upload.
type Pixels struct {
	Width, Height int

	// Internal and Format are the texture formats Data is laid out for.
	Internal texture.PixelFormat
	Format   texture.PixelFormat

	// Data holds rows top to bottom, tightly packed.
	Data []byte

	// Source is the name of the detected file format ("png", "bmp", ...).
	Source string
}

// DecodeOptions controls Decode.
type DecodeOptions struct {
	// SingleChannel converts the image to 8-bit luminance stored as R8.
	SingleChannel bool

	// MaxDimension scales images whose larger side exceeds it down to fit,
	// keeping the aspect ratio. Zero disables scaling.
	MaxDimension int
}

// Decode decodes an encoded image into tightly packed pixels: non-premultiplied
// RGBA by default, or one luminance byte per pixel with SingleChannel.
func Decode(data []byte, opts DecodeOptions) (Pixels, error) {
	if len(data) == 0 {
		return Pixels{}, fmt.Errorf("%w: empty data", ErrDecode)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Pixels{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	src := img
	if opts.MaxDimension > 0 {
		src = fit(img, opts.MaxDimension)
	}
	b := src.Bounds()
	if b.Empty() {
		return Pixels{}, fmt.Errorf("%w: %s image has no pixels", ErrDecode, format)
	}

	p := Pixels{Width: b.Dx(), Height: b.Dy(), Source: format}
	if opts.SingleChannel {
		dst := image.NewGray(image.Rect(0, 0, p.Width, p.Height))
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
		p.Internal, p.Format = texture.FormatR8, texture.FormatRed
		p.Data = packRows(dst.Pix, dst.Stride, p.Width, p.Height)
		return p, nil
	}

	var rgba *image.NRGBA
	if n, ok := src.(*image.NRGBA); ok {
		rgba = n
	} else {
		rgba = image.NewNRGBA(image.Rect(0, 0, p.Width, p.Height))
		draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)
	}
	p.Internal, p.Format = texture.FormatRGBA, texture.FormatRGBA
	p.Data = packRows(rgba.Pix[rgba.PixOffset(rgba.Rect.Min.X, rgba.Rect.Min.Y):], rgba.Stride, p.Width*4, p.Height)
	return p, nil
}

// fit scales img down so neither side exceeds maxDim.
func fit(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}
	if w >= h {
		h = max(1, h*maxDim/w)
		w = maxDim
	} else {
		w = max(1, w*maxDim/h)
		h = maxDim
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// packRows copies height rows of rowLen bytes from a buffer with the given
// stride, dropping row padding. A buffer that is already tight is returned
// as is.
func packRows(pix []byte, stride, rowLen, height int) []byte {
	if stride == rowLen && len(pix) == rowLen*height {
		return pix
	}
	out := make([]byte, rowLen*height)
	for y := range height {
		copy(out[y*rowLen:(y+1)*rowLen], pix[y*stride:y*stride+rowLen])
	}
	return out
}
