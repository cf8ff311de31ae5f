// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/texture"
)

// fakeContext is the smallest texture.Context.
type fakeContext struct{ name string }

func (fakeContext) CreateTexture() (texture.Handle, error) { return 1, nil }
func (fakeContext) BindTexture2D(texture.Handle) error     { return nil }
func (fakeContext) TexParameter(uint32, int32) error       { return nil }
func (fakeContext) PixelStoreAlignment(int32) error        { return nil }
func (fakeContext) DeleteTexture(texture.Handle)           {}
func (fakeContext) Alive() bool                            { return true }

func (fakeContext) TexImage2D(int32, uint32, int32, int32, uint32, uint32, []byte) error {
	return nil
}

type fakeDriver struct {
	name   string
	err    error
	opened int
}

func (d *fakeDriver) Name() string { return d.name }

func (d *fakeDriver) Open() (texture.Context, error) {
	d.opened++
	if d.err != nil {
		return nil, d.err
	}
	return fakeContext{name: d.name}, nil
}

// explicitDriver is a fakeDriver that must be selected by name.
type explicitDriver struct{ fakeDriver }

func (*explicitDriver) Explicit() bool { return true }

// isolate swaps in an empty registry for the duration of the test.
func isolate(t *testing.T) {
	t.Helper()
	registryMu.Lock()
	saved := drivers
	drivers = make(map[string]Driver)
	registryMu.Unlock()
	t.Cleanup(func() {
		registryMu.Lock()
		drivers = saved
		registryMu.Unlock()
	})
}

func TestRegistryRegisterAndGet(t *testing.T) {
	isolate(t)
	d := &fakeDriver{name: BackendSoftware}
	Register(d)

	if !IsRegistered(BackendSoftware) {
		t.Error("IsRegistered(software) = false")
	}
	if Get(BackendSoftware) != d {
		t.Error("Get(software) returned a different driver")
	}
	if Get("nonexistent") != nil {
		t.Error("Get(nonexistent) should be nil")
	}
}

func TestRegistryAvailableAndUnregister(t *testing.T) {
	isolate(t)
	Register(&fakeDriver{name: "b"})
	Register(&fakeDriver{name: "a"})

	if got := Available(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Available() = %v", got)
	}
	Unregister("a")
	if IsRegistered("a") {
		t.Error("a still registered after Unregister")
	}
}

func TestRegistryDefaultPriority(t *testing.T) {
	isolate(t)
	if Default() != nil {
		t.Fatal("Default() on empty registry should be nil")
	}

	Register(&fakeDriver{name: "custom"})
	Register(&fakeDriver{name: BackendSoftware})
	Register(&fakeDriver{name: BackendWGPU})
	if got := Default().Name(); got != BackendWGPU {
		t.Errorf("Default() = %q, want wgpu", got)
	}
	Register(&fakeDriver{name: BackendOpenGL})
	if got := Default().Name(); got != BackendOpenGL {
		t.Errorf("Default() = %q, want opengl", got)
	}
}

func TestOpenFallsBack(t *testing.T) {
	isolate(t)
	gl := &fakeDriver{name: BackendOpenGL, err: errors.New("no current context")}
	sw := &fakeDriver{name: BackendSoftware}
	Register(gl)
	Register(sw)

	ctx, err := Open("")
	if err != nil {
		t.Fatalf("Open(\"\") = %v", err)
	}
	if fc := ctx.(fakeContext); fc.name != BackendSoftware {
		t.Errorf("opened %q, want software", fc.name)
	}
	if gl.opened != 1 || sw.opened != 1 {
		t.Errorf("open attempts: opengl=%d software=%d", gl.opened, sw.opened)
	}
}

func TestOpenSkipsExplicitDrivers(t *testing.T) {
	isolate(t)
	gl := &explicitDriver{fakeDriver{name: BackendOpenGL}}
	sw := &fakeDriver{name: BackendSoftware}
	Register(gl)
	Register(sw)

	if got := Default(); got != Driver(sw) {
		t.Errorf("Default() = %v, want software", got)
	}
	ctx, err := Open("")
	if err != nil {
		t.Fatalf("Open(\"\") = %v", err)
	}
	if fc := ctx.(fakeContext); fc.name != BackendSoftware {
		t.Errorf("opened %q, want software", fc.name)
	}
	if gl.opened != 0 {
		t.Errorf("explicit driver probed %d times", gl.opened)
	}

	if _, err := Open(BackendOpenGL); err != nil || gl.opened != 1 {
		t.Errorf("Open(opengl) = %v after %d opens, want it opened by name", err, gl.opened)
	}

	Unregister(BackendSoftware)
	if _, err := Open(""); !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("Open(\"\") with only explicit drivers = %v", err)
	}
}

func TestOpenErrors(t *testing.T) {
	isolate(t)
	if _, err := Open(""); !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("Open on empty registry = %v", err)
	}
	if _, err := Open("missing"); !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("Open(missing) = %v", err)
	}

	cause := errors.New("driver failed")
	Register(&fakeDriver{name: BackendWGPU, err: cause})
	if _, err := Open(BackendWGPU); !errors.Is(err, cause) {
		t.Errorf("Open(wgpu) = %v, want wrapped cause", err)
	}
	if _, err := Open(""); !errors.Is(err, ErrBackendNotAvailable) || !errors.Is(err, cause) {
		t.Errorf("Open(\"\") = %v, want not available wrapping cause", err)
	}
}

func TestMustOpenPanics(t *testing.T) {
	isolate(t)
	defer func() {
		if recover() == nil {
			t.Error("MustOpen did not panic")
		}
	}()
	MustOpen("")
}
