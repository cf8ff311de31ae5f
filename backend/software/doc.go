// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package software implements texture.Context in memory.
//
// It follows OpenGL's rules closely enough to catch the mistakes a real
// driver would reject: unknown enums, calls without a bound texture, and
// pixel data that is too short for the current unpack alignment. Uploaded
// rows are stored tightly packed and can be inspected with Texture.
//
// Importing the package registers the "software" driver:
//
//	import _ "github.com/gogpu/texture/backend/software"
package software
