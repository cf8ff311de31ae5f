// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package opengl

import (
	"errors"
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/gogpu/texture"
	"github.com/gogpu/texture/backend"
)

// ErrNoCurrentContext is returned by Open when no GL context is current.
var ErrNoCurrentContext = errors.New("opengl: no current GL context")

// maxDrainedErrors bounds the loop that clears stale error flags.
const maxDrainedErrors = 16

func init() {
	backend.Register(driver{})
}

type driver struct{}

func (driver) Name() string { return backend.BackendOpenGL }

func (driver) Open() (texture.Context, error) {
	return Open()
}

// Explicit keeps the driver out of automatic selection: probing GL without
// a current context can crash the process on some drivers.
func (driver) Explicit() bool { return true }

// Context issues texture calls on the current OpenGL context.
type Context struct {
	maxSize int
	closed  atomic.Bool
}

var _ texture.Context = (*Context)(nil)

// Open loads the GL entry points and queries the context limits.
//
// A GL context must be current on the calling thread. Open reports
// ErrNoCurrentContext when the driver says none is, but many drivers crash
// instead, so callers must not use Open to detect GL support. The registry
// only opens this backend when it is requested by name.
func Open() (*Context, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("opengl: init: %w", err)
	}
	if gl.GetString(gl.VERSION) == nil {
		return nil, ErrNoCurrentContext
	}

	var maxSize int32
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &maxSize)
	drainErrors()

	texture.Logger().Debug("opengl: context opened",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"max_texture_size", maxSize)
	return &Context{maxSize: int(maxSize)}, nil
}

// CreateTexture implements texture.Context.
func (c *Context) CreateTexture() (texture.Handle, error) {
	drainErrors()
	var name uint32
	gl.GenTextures(1, &name)
	if err := check("glGenTextures"); err != nil {
		return texture.NoHandle, err
	}
	return texture.Handle(name), nil
}

// BindTexture2D implements texture.Context.
func (c *Context) BindTexture2D(h texture.Handle) error {
	gl.BindTexture(gl.TEXTURE_2D, uint32(h))
	return check("glBindTexture")
}

// TexParameter implements texture.Context.
func (c *Context) TexParameter(pname uint32, value int32) error {
	gl.TexParameteri(gl.TEXTURE_2D, pname, value)
	return check("glTexParameteri")
}

// PixelStoreAlignment implements texture.Context.
func (c *Context) PixelStoreAlignment(alignment int32) error {
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, alignment)
	return check("glPixelStorei")
}

// TexImage2D implements texture.Context. A nil or empty pixels slice
// allocates storage without uploading.
func (c *Context) TexImage2D(level int32, internalFormat uint32, width, height int32, format, dataType uint32, pixels []byte) error {
	var ptr unsafe.Pointer
	if len(pixels) > 0 {
		ptr = gl.Ptr(pixels)
	}
	gl.TexImage2D(gl.TEXTURE_2D, level, int32(internalFormat), width, height, 0, format, dataType, ptr)
	return check("glTexImage2D")
}

// DeleteTexture implements texture.Context.
func (c *Context) DeleteTexture(h texture.Handle) {
	name := uint32(h)
	if name == 0 || !gl.IsTexture(name) {
		return
	}
	gl.DeleteTextures(1, &name)
	if err := check("glDeleteTextures"); err != nil {
		texture.Logger().Warn("opengl: delete texture", "handle", name, "err", err)
	}
}

// Alive implements texture.Context.
func (c *Context) Alive() bool {
	return !c.closed.Load()
}

// MaxTextureSize returns GL_MAX_TEXTURE_SIZE.
func (c *Context) MaxTextureSize() int {
	return c.maxSize
}

// Close marks the context as destroyed. Call it when the window owning the
// GL context goes away; textures released afterwards skip their delete.
func (c *Context) Close() {
	c.closed.Store(true)
}

// check converts a pending GL error into a *backend.GLError.
func check(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		drainErrors()
		return &backend.GLError{Op: op, Code: code}
	}
	return nil
}

// drainErrors clears error flags left by earlier calls.
func drainErrors() {
	for range maxDrainedErrors {
		if gl.GetError() == gl.NO_ERROR {
			return
		}
	}
}
