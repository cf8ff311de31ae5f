// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package opengl implements texture.Context on an OpenGL 4.1 core context
// through go-gl.
//
// The context must be current on the calling goroutine, and that goroutine
// must be locked to its OS thread (runtime.LockOSThread), as for any go-gl
// program. Importing the package registers the "opengl" driver; its Open
// fails when no context is current.
//
// Every call checks glGetError and reports failures as *backend.GLError.
package opengl
