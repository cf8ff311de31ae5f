// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

import "errors"

// Texture errors.
var (
	// ErrNilContext is returned when creating a texture without a context.
	ErrNilContext = errors.New("texture: context is nil")

	// ErrContextLost is returned when the context has already destroyed
	// its resources.
	ErrContextLost = errors.New("texture: context is no longer alive")

	// ErrInvalidSize is returned when width or height is not positive.
	ErrInvalidSize = errors.New("texture: invalid texture size")

	// ErrTextureTooLarge is returned when a dimension exceeds the maximum
	// texture size.
	ErrTextureTooLarge = errors.New("texture: texture too large")

	// ErrUnsupportedFormat is returned for a pixel format or filter outside
	// the declared set.
	ErrUnsupportedFormat = errors.New("texture: unsupported format")

	// ErrPixelDataSize is returned when pixel data does not match
	// width * height * bytes per pixel.
	ErrPixelDataSize = errors.New("texture: pixel data size mismatch")

	// ErrAllocation is returned when the GPU texture object cannot be created.
	ErrAllocation = errors.New("texture: allocation failed")

	// ErrConfiguration is returned when binding or a parameter call fails.
	ErrConfiguration = errors.New("texture: configuration failed")

	// ErrUpload is returned when the image upload fails.
	ErrUpload = errors.New("texture: upload failed")

	// ErrReleased is returned when operating on a released texture.
	ErrReleased = errors.New("texture: texture has been released")
)
