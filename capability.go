// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

// Handle is an opaque GPU texture object name issued by a Context.
type Handle uint32

// NoHandle is the zero Handle. Binding it leaves no texture bound.
const NoHandle Handle = 0

// Context is the narrow slice of a graphics context that textures need.
// It follows OpenGL semantics: parameter and upload calls act on the texture
// currently bound to the 2D target.
//
// Implementations are not required to be safe for concurrent use. Every call
// made by this package happens on the goroutine that called the texture
// operation.
//
// Implementations:
//   - backend/opengl wraps a current OpenGL 4.1 context
//   - backend/wgpu emulates the calls on a WebGPU device
//   - backend/software keeps textures in memory (headless, tests)
type Context interface {
	// CreateTexture allocates a new texture object name.
	CreateTexture() (Handle, error)

	// BindTexture2D binds h to the 2D target. NoHandle unbinds.
	BindTexture2D(h Handle) error

	// TexParameter sets an integer parameter (wrap or filter) of the
	// bound texture.
	TexParameter(pname uint32, value int32) error

	// PixelStoreAlignment sets the row alignment, in bytes, that uploads
	// assume for client pixel data.
	PixelStoreAlignment(alignment int32) error

	// TexImage2D uploads pixels as the given mip level of the bound texture.
	TexImage2D(level int32, internalFormat uint32, width, height int32, format, dataType uint32, pixels []byte) error

	// DeleteTexture frees h. Deleting a name that is not (or no longer)
	// a texture must be a no-op.
	DeleteTexture(h Handle)

	// Alive reports whether the context still owns its GPU objects.
	// After a context is destroyed individual deletes are invalid and are
	// skipped.
	Alive() bool
}

// sizeLimiter is implemented by contexts that know their maximum texture
// dimension.
type sizeLimiter interface {
	MaxTextureSize() int
}
