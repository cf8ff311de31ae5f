// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package backend selects the graphics context textures are created on.
//
// Each implementation lives in its own package and registers a Driver from
// init, so importing it is enough to make it available:
//
//	import _ "github.com/gogpu/texture/backend/software"
//
// # Backend Selection
//
// Open a driver by name, or pass "" to take the best available one:
//
//	ctx, err := backend.Open("")
//
// Priority order: opengl > wgpu > software. A driver whose Open fails is
// skipped and the next one is tried. Drivers implementing ExplicitDriver,
// such as opengl, are only opened by name.
//
// # Available Backends
//
//   - "opengl": a current OpenGL 4.1 core context, through go-gl; open it
//     by name once the context is current
//   - "wgpu": a WebGPU device from a gpucontext.DeviceProvider, through
//     gogpu/wgpu (registered by wgpu.Register with the provider)
//   - "software": in-memory, always available, used headless and in tests
package backend
