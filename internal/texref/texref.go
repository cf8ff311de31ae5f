// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package texref gives the backends of this module the GPU object behind a
// *texture.Texture, which package texture does not export.
package texref

// Lookup returns the GPU texture name of tex, a *texture.Texture, and the
// context that owns it. It returns (0, nil) for nil or released textures
// and for values of any other type.
//
// Package texture installs Lookup when it is initialized.
var Lookup = func(tex any) (handle uint32, owner any) { return 0, nil }
