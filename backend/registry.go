// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/texture"
)

// registry holds registered drivers.
var (
	registryMu sync.RWMutex
	drivers    = make(map[string]Driver)
	// Priority order for Open("") (first that opens wins).
	// Hardware before emulation, software is the fallback.
	driverPriority = []string{BackendOpenGL, BackendWGPU, BackendSoftware}
)

// Register registers a driver under d.Name().
// This is typically called from init() functions in backend packages.
// A driver with the same name is replaced.
func Register(d Driver) {
	registryMu.Lock()
	defer registryMu.Unlock()
	drivers[d.Name()] = d
}

// Unregister removes a driver from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(drivers, name)
}

// Available returns the registered driver names, sorted.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered checks if a driver with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := drivers[name]
	return ok
}

// Get returns the driver registered under name, or nil.
func Get(name string) Driver {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return drivers[name]
}

// ordered returns the drivers eligible for automatic selection in priority
// order, unknown names last in name order.
func ordered() []Driver {
	registryMu.RLock()
	defer registryMu.RUnlock()

	out := make([]Driver, 0, len(drivers))
	for _, name := range driverPriority {
		if d, ok := drivers[name]; ok && !explicit(d) {
			out = append(out, d)
		}
	}
	rest := make([]string, 0)
	for name, d := range drivers {
		if !slices.Contains(driverPriority, name) && !explicit(d) {
			rest = append(rest, name)
		}
	}
	slices.Sort(rest)
	for _, name := range rest {
		out = append(out, drivers[name])
	}
	return out
}

func explicit(d Driver) bool {
	e, ok := d.(ExplicitDriver)
	return ok && e.Explicit()
}

// Default returns the highest-priority registered driver, or nil.
// Drivers that must be selected by name are not considered.
// It does not try to open it; use Open("") for that.
func Default() Driver {
	if ds := ordered(); len(ds) > 0 {
		return ds[0]
	}
	return nil
}

// Open opens the driver registered under name. An empty name tries every
// registered driver in priority order and returns the first context that
// opens.
func Open(name string) (texture.Context, error) {
	if name != "" {
		d := Get(name)
		if d == nil {
			return nil, fmt.Errorf("%w: %q (registered: %v)", ErrBackendNotAvailable, name, Available())
		}
		ctx, err := d.Open()
		if err != nil {
			return nil, fmt.Errorf("backend: open %s: %w", name, err)
		}
		texture.Logger().Info("backend: opened", "backend", name)
		return ctx, nil
	}

	var errs []error
	for _, d := range ordered() {
		ctx, err := d.Open()
		if err != nil {
			texture.Logger().Debug("backend: skipped", "backend", d.Name(), "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", d.Name(), err))
			continue
		}
		texture.Logger().Info("backend: selected", "backend", d.Name())
		return ctx, nil
	}
	if len(errs) == 0 {
		return nil, fmt.Errorf("%w: no drivers registered", ErrBackendNotAvailable)
	}
	return nil, fmt.Errorf("%w: %w", ErrBackendNotAvailable, errors.Join(errs...))
}

// MustOpen is like Open but panics on error.
func MustOpen(name string) texture.Context {
	ctx, err := Open(name)
	if err != nil {
		panic(err)
	}
	return ctx
}
