// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package glenum holds the OpenGL enum values issued by the texture creation
// pipeline, together with their WebGPU equivalents.
//
// The values match the Khronos registry, so they can be passed unchanged to
// any OpenGL binding (go-gl, glow, WebGL).
package glenum

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// Texture targets and parameter names.
const (
	Texture2D        uint32 = 0x0DE1
	TextureMagFilter uint32 = 0x2800
	TextureMinFilter uint32 = 0x2801
	TextureWrapS     uint32 = 0x2802
	TextureWrapT     uint32 = 0x2803
	UnpackAlignment  uint32 = 0x0CF5
)

// Parameter values.
const (
	Nearest     uint32 = 0x2600
	Linear      uint32 = 0x2601
	ClampToEdge uint32 = 0x812F
	Repeat      uint32 = 0x2901
)

// Pixel formats and data types.
const (
	RGBA         uint32 = 0x1908
	Red          uint32 = 0x1903
	R8           uint32 = 0x8229
	UnsignedByte uint32 = 0x1401
)

// Error codes returned by glGetError.
const (
	NoError          uint32 = 0
	InvalidEnum      uint32 = 0x0500
	InvalidValue     uint32 = 0x0501
	InvalidOperation uint32 = 0x0502
	OutOfMemory      uint32 = 0x0505
)

// DefaultUnpackAlignment is the initial value of UNPACK_ALIGNMENT on every
// OpenGL context.
const DefaultUnpackAlignment = 4

// TextureFormat maps an internal format to the WebGPU format with the same
// storage layout.
func TextureFormat(internal uint32) (gputypes.TextureFormat, bool) {
	switch internal {
	case RGBA:
		return gputypes.TextureFormatRGBA8Unorm, true
	case Red, R8:
		return gputypes.TextureFormatR8Unorm, true
	default:
		return gputypes.TextureFormatUndefined, false
	}
}

// Components returns the number of one-byte components per pixel that an
// upload with the given client format reads, or 0 for unknown formats.
func Components(format uint32) int {
	switch format {
	case RGBA:
		return 4
	case Red, R8:
		return 1
	default:
		return 0
	}
}

// FilterMode maps a MIN/MAG filter parameter value to WebGPU.
func FilterMode(param int32) (gputypes.FilterMode, bool) {
	switch uint32(param) {
	case Nearest:
		return gputypes.FilterModeNearest, true
	case Linear:
		return gputypes.FilterModeLinear, true
	default:
		return 0, false
	}
}

// AddressMode maps a WRAP_S/WRAP_T parameter value to WebGPU.
func AddressMode(param int32) (gputypes.AddressMode, bool) {
	switch uint32(param) {
	case ClampToEdge:
		return gputypes.AddressModeClampToEdge, true
	case Repeat:
		return gputypes.AddressModeRepeat, true
	default:
		return 0, false
	}
}

// ErrorString returns the symbolic name of a glGetError code.
func ErrorString(code uint32) string {
	switch code {
	case NoError:
		return "GL_NO_ERROR"
	case InvalidEnum:
		return "GL_INVALID_ENUM"
	case InvalidValue:
		return "GL_INVALID_VALUE"
	case InvalidOperation:
		return "GL_INVALID_OPERATION"
	case OutOfMemory:
		return "GL_OUT_OF_MEMORY"
	default:
		return fmt.Sprintf("GL error 0x%04X", code)
	}
}
