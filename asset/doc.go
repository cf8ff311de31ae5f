// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package asset loads image files into textures.
//
// A Loader reads bytes from a Source, decodes them and creates the texture on
// the caller's goroutine, which must be the goroutine that drives the
// texture.Context. Synchronous sources produce a ready Result from Load.
// An AsyncSource fetches on background goroutines; its Results stay pending
// until Loader.Update (or Wait) finishes them on the caller's goroutine.
//
//	l := asset.NewLoader(ctx, asset.Async(asset.Dir("assets"), 4))
//	r := l.Load("player.png")
//	r.OnLoad(func(t *texture.Texture, err error) { ... })
//
//	for running {
//		l.Update()
//		...
//	}
//
// Supported formats: PNG, JPEG and GIF from the standard library, BMP, TIFF
// and WebP from golang.org/x/image.
package asset
