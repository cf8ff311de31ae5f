// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package texture manages the lifecycle of 2D GPU textures: format and filter
// translation, creation and upload through a narrow graphics context, and
// reference-counted teardown.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/texture"
//		"github.com/gogpu/texture/backend"
//		_ "github.com/gogpu/texture/backend/software"
//	)
//
//	ctx, err := backend.Open("")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	tex, err := texture.NewDefault(ctx, 256, 256)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer tex.Release()
//
// # Ownership
//
// A *Texture is a handle to shared GPU state. Clone returns another handle to
// the same state; each handle is released on its own. The GPU object is
// deleted exactly once, when the last handle is released, through the context
// that created it. If that context is no longer alive the delete is skipped.
// A handle that is garbage collected without Release is reported through the
// package logger; the GPU object is not freed in that case.
//
// # Formats
//
// Two storage layouts exist: four-byte RGBA and one-byte red. The pair
// (FormatR8, FormatRed) selects the one-byte path; every other pair is four
// bytes per pixel. See BytesPerPixel.
//
// # Contexts
//
// A Context follows OpenGL's bind-then-configure model. Implementations live
// in backend/opengl (go-gl), backend/wgpu (gogpu/wgpu) and backend/software
// (in memory, for headless use and tests). The backend package selects one
// by name or priority.
//
// # Related Packages
//
//   - asset: decodes image files into textures, synchronously or with
//     bounded background fetching
//   - cache: generic LRU used by Cache
package texture

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
