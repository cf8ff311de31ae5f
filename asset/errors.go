// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package asset

import "errors"

// Asset errors.
var (
	// ErrFetch is returned when a source cannot provide the file.
	ErrFetch = errors.New("asset: fetch failed")

	// ErrDecode is returned when the file is not a decodable image.
	ErrDecode = errors.New("asset: decode failed")

	// ErrPending is returned by Result.Texture before the load finished.
	ErrPending = errors.New("asset: load pending")

	// ErrClosed is returned for loads started after the source was closed.
	ErrClosed = errors.New("asset: source closed")
)
