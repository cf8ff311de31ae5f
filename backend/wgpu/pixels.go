// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"github.com/gogpu/gputypes"
)

// texelSize returns bytes per texel of the storage formats the context uses.
func texelSize(f gputypes.TextureFormat) int {
	if f == gputypes.TextureFormatR8Unorm {
		return 1
	}
	return 4
}

// repack reads a width x height image whose client rows have comps bytes per
// pixel and are padded to alignment, and returns it tightly packed in the
// storage layout of dst. Red data stored as RGBA becomes (r, 0, 0, 255);
// RGBA data stored as R8 keeps the red channel.
//
// ok is false when src is too short for the given alignment.
func repack(src []byte, width, height, comps, alignment int, dst gputypes.TextureFormat) (out []byte, ok bool) {
	row := width * comps
	stride := (row + alignment - 1) / alignment * alignment
	size := texelSize(dst)
	out = make([]byte, width*height*size)
	if height == 0 || width == 0 {
		return out, true
	}
	if len(src) < stride*(height-1)+row {
		return nil, false
	}

	for y := range height {
		in := src[y*stride : y*stride+row]
		o := out[y*width*size : (y+1)*width*size]
		switch {
		case comps == size:
			copy(o, in)
		case comps == 1: // Red into RGBA
			for x, r := range in {
				o[x*4] = r
				o[x*4+3] = 0xFF
			}
		default: // RGBA into R8
			for x := range width {
				o[x] = in[x*comps]
			}
		}
	}
	return out, true
}
