// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"errors"
	"fmt"

	"github.com/gogpu/texture"
	"github.com/gogpu/texture/internal/glenum"
)

// Backend name constants.
const (
	// BackendOpenGL is the name of the go-gl backend.
	BackendOpenGL = "opengl"
	// BackendWGPU is the name of the WebGPU backend (gogpu/wgpu).
	BackendWGPU = "wgpu"
	// BackendSoftware is the name of the in-memory backend.
	BackendSoftware = "software"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not
	// registered or none can be opened.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrContextClosed is returned by contexts after Close.
	ErrContextClosed = errors.New("backend: context closed")
)

// Driver opens graphics contexts of one kind.
type Driver interface {
	// Name returns the backend identifier (e.g. "software", "opengl").
	Name() string

	// Open returns a ready context. It fails if the backend cannot run
	// here, for example without a current GL context.
	Open() (texture.Context, error)
}

// ExplicitDriver is implemented by drivers that must be selected by name.
// Open("") and Default skip a driver whose Explicit method returns true,
// typically because probing it is unsafe when the process is not set up
// for it.
type ExplicitDriver interface {
	Driver
	Explicit() bool
}

// GLError is an error reported by a context in OpenGL terms.
type GLError struct {
	// Op is the failing call, e.g. "glTexImage2D".
	Op string
	// Code is the glGetError value.
	Code uint32
}

// Error implements error.
func (e *GLError) Error() string {
	return fmt.Sprintf("backend: %s: %s", e.Op, glenum.ErrorString(e.Code))
}

// Is reports whether target is a GLError with the same code, so callers can
// match on codes with errors.Is(err, &GLError{Code: ...}).
func (e *GLError) Is(target error) bool {
	t, ok := target.(*GLError)
	return ok && t.Code == e.Code && (t.Op == "" || t.Op == e.Op)
}
