// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package wgpu implements texture.Context on a WebGPU device from
// gogpu/wgpu.
//
// WebGPU has no bind points or mutable sampler state, so the context
// emulates them: a texture name is allocated by CreateTexture, the GPU
// texture is (re)created by TexImage2D once its size is known, and the
// wrap and filter parameters become a sampler built on first use.
//
// The device comes from a gpucontext.DeviceProvider, typically the host
// application:
//
//	ctx, err := wgpu.Open(app.GPUContextProvider())
//
// Register makes the same provider available through backend.Open.
package wgpu
