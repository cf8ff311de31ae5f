// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package asset

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"
)

// DefaultMaxInFlight is the fetch concurrency of Async when given n <= 0.
const DefaultMaxInFlight = 4

// fetched is a completed background fetch.
type fetched struct {
	name string
	data []byte
	err  error
}

// AsyncSource fetches from another Source on background goroutines, with at
// most a fixed number of fetches running at once. Completed fetches are
// collected until a Loader drains them.
type AsyncSource struct {
	src Source
	sem *semaphore.Weighted

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	done   []fetched
	ready  chan struct{}
	active sync.WaitGroup
}

// Async wraps src so that Loader fetches from it in the background, with at
// most maxInFlight concurrent fetches.
func Async(src Source, maxInFlight int) *AsyncSource {
	if maxInFlight <= 0 {
		maxInFlight = DefaultMaxInFlight
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &AsyncSource{
		src:    src,
		sem:    semaphore.NewWeighted(int64(maxInFlight)),
		ctx:    ctx,
		cancel: cancel,
		ready:  make(chan struct{}, 1),
	}
}

// Fetch reads name synchronously from the wrapped source.
func (a *AsyncSource) Fetch(name string) ([]byte, error) {
	return a.src.Fetch(name)
}

// start begins fetching name in the background.
func (a *AsyncSource) start(name string) {
	a.active.Add(1)
	go func() {
		defer a.active.Done()

		if err := a.sem.Acquire(a.ctx, 1); err != nil {
			a.finish(fetched{name: name, err: fmt.Errorf("%w: %q: %w", ErrClosed, name, err)})
			return
		}
		data, err := a.src.Fetch(name)
		a.sem.Release(1)
		if err != nil && !errors.Is(err, ErrFetch) {
			err = fmt.Errorf("%w: %w", ErrFetch, err)
		}
		a.finish(fetched{name: name, data: data, err: err})
	}()
}

func (a *AsyncSource) finish(f fetched) {
	a.mu.Lock()
	a.done = append(a.done, f)
	a.mu.Unlock()

	select {
	case a.ready <- struct{}{}:
	default:
	}
}

// drain returns and clears the completed fetches.
func (a *AsyncSource) drain() []fetched {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := a.done
	a.done = nil
	return out
}

// Close cancels fetches still waiting for a slot and waits for running ones.
// Their Results complete with ErrClosed on the next Loader.Update.
func (a *AsyncSource) Close() {
	a.cancel()
	a.active.Wait()
}

// closed reports whether Close was called.
func (a *AsyncSource) closed() bool {
	return a.ctx.Err() != nil
}
