// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package asset

import (
	"fmt"
	"sync"

	"github.com/gogpu/texture"
)

// Result is the outcome of Loader.Load: either ready, holding a texture or
// an error, or pending until the Loader finishes it.
//
// A ready Result with a texture owns one reference to it. Release drops it;
// callers that keep the texture beyond the Result must Clone it first.
// After Release, Texture reports texture.ErrReleased.
type Result struct {
	name string

	mu        sync.Mutex
	ready     bool
	released  bool
	tex       *texture.Texture
	err       error
	callbacks []func(*texture.Texture, error)
}

func newPending(name string) *Result {
	return &Result{name: name}
}

func newReady(name string, tex *texture.Texture, err error) *Result {
	return &Result{name: name, ready: true, tex: tex, err: err}
}

// Name returns the name passed to Load.
func (r *Result) Name() string {
	return r.name
}

// Ready reports whether the load has finished, successfully or not.
func (r *Result) Ready() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ready
}

// Texture returns the loaded texture, the load error, or ErrPending.
func (r *Result) Texture() (*texture.Texture, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.ready {
		return nil, fmt.Errorf("%w: %q", ErrPending, r.name)
	}
	if r.released && r.err == nil {
		return nil, fmt.Errorf("%w: %q", texture.ErrReleased, r.name)
	}
	return r.tex, r.err
}

// OnLoad registers fn to run when the load finishes. If it already has,
// fn runs immediately. Otherwise fn runs from Loader.Update on the
// goroutine that calls it.
func (r *Result) OnLoad(fn func(*texture.Texture, error)) {
	r.mu.Lock()
	if !r.ready {
		r.callbacks = append(r.callbacks, fn)
		r.mu.Unlock()
		return
	}
	tex, err := r.tex, r.err
	if r.released && err == nil {
		err = fmt.Errorf("%w: %q", texture.ErrReleased, r.name)
	}
	r.mu.Unlock()
	fn(tex, err)
}

// Release drops the Result's reference to its texture. Releasing a pending
// Result releases the texture as soon as the load finishes.
func (r *Result) Release() {
	r.mu.Lock()
	tex := r.tex
	r.tex = nil
	r.released = true
	r.mu.Unlock()

	if tex != nil {
		tex.Release()
	}
}

// complete finishes a pending Result and runs its callbacks.
func (r *Result) complete(tex *texture.Texture, err error) {
	r.mu.Lock()
	if r.ready {
		r.mu.Unlock()
		if tex != nil {
			tex.Release()
		}
		return
	}
	if r.released && tex != nil {
		tex.Release()
		tex = nil
		if err == nil {
			err = fmt.Errorf("%w: %q", texture.ErrReleased, r.name)
		}
	}
	r.ready, r.tex, r.err = true, tex, err
	cbs := r.callbacks
	r.callbacks = nil
	r.mu.Unlock()

	for _, fn := range cbs {
		fn(tex, err)
	}
}
