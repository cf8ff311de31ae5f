// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/texture/internal/glenum"
)

// PixelFormat is the abstract layout of texture storage or of the pixel data
// supplied for an upload.
type PixelFormat uint8

const (
	// FormatRGBA is four 8-bit channels.
	FormatRGBA PixelFormat = iota
	// FormatRed is a single 8-bit red channel, used as upload data format.
	FormatRed
	// FormatR8 is a single 8-bit channel, used as internal storage format.
	FormatR8
)

// String returns the format name.
func (f PixelFormat) String() string {
	switch f {
	case FormatRGBA:
		return "RGBA"
	case FormatRed:
		return "Red"
	case FormatR8:
		return "R8"
	default:
		return fmt.Sprintf("PixelFormat(%d)", uint8(f))
	}
}

// Valid reports whether f is one of the declared formats.
func (f PixelFormat) Valid() bool {
	return f <= FormatR8
}

// Filter is the sampling interpolation used when a texture is drawn smaller
// (minification) or larger (magnification) than its native size.
type Filter uint8

const (
	// FilterNearest picks the closest texel.
	FilterNearest Filter = iota
	// FilterLinear interpolates between neighbouring texels.
	FilterLinear
)

// String returns the filter name.
func (f Filter) String() string {
	switch f {
	case FilterNearest:
		return "Nearest"
	case FilterLinear:
		return "Linear"
	default:
		return fmt.Sprintf("Filter(%d)", uint8(f))
	}
}

// Valid reports whether f is one of the declared filters.
func (f Filter) Valid() bool {
	return f <= FilterLinear
}

// BytesPerPixel returns the CPU-side stride of one pixel for an
// internal/format pair. Only (R8, Red) is single-byte; every other supported
// pairing is four bytes.
//
// New formats must extend this table together with WireFormat.
func BytesPerPixel(internal, format PixelFormat) int {
	if internal == FormatR8 && format == FormatRed {
		return 1
	}
	return 4
}

// WireFormat returns the OpenGL enum for f.
func WireFormat(f PixelFormat) uint32 {
	switch f {
	case FormatRed:
		return glenum.Red
	case FormatR8:
		return glenum.R8
	default:
		return glenum.RGBA
	}
}

// WireFilter returns the OpenGL parameter value for f.
func WireFilter(f Filter) int32 {
	if f == FilterLinear {
		return int32(glenum.Linear)
	}
	return int32(glenum.Nearest)
}

// GPUFormat returns the WebGPU format that stores f.
func GPUFormat(f PixelFormat) gputypes.TextureFormat {
	switch f {
	case FormatRed, FormatR8:
		return gputypes.TextureFormatR8Unorm
	default:
		return gputypes.TextureFormatRGBA8Unorm
	}
}

// GPUFilter returns the WebGPU filter mode for f.
func GPUFilter(f Filter) gputypes.FilterMode {
	if f == FilterLinear {
		return gputypes.FilterModeLinear
	}
	return gputypes.FilterModeNearest
}

// GPUAddressMode returns the address mode every texture is created with.
// Wrapping is not configurable.
func GPUAddressMode() gputypes.AddressMode {
	return gputypes.AddressModeClampToEdge
}
