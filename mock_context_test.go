// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

import (
	"errors"
	"fmt"
	"sync"
)

var errMock = errors.New("mock failure")

// mockContext records every call and can be told to fail any of them.
type mockContext struct {
	calls     []string
	next      Handle
	bound     Handle
	alignment int32
	alive     bool
	maxSize   int

	// failOn maps a call name (e.g. "TexImage2D") to the error it returns.
	failOn map[string]error
	// noHandle makes CreateTexture return NoHandle without error.
	noHandle bool

	deleted map[Handle]int
	uploads []mockUpload
}

type mockUpload struct {
	handle    Handle
	alignment int32
	internal  uint32
	format    uint32
	width     int32
	height    int32
	size      int
}

func newMockContext() *mockContext {
	return &mockContext{
		alignment: 4,
		alive:     true,
		failOn:    make(map[string]error),
		deleted:   make(map[Handle]int),
	}
}

func (m *mockContext) record(format string, args ...any) {
	m.calls = append(m.calls, fmt.Sprintf(format, args...))
}

func (m *mockContext) CreateTexture() (Handle, error) {
	m.record("CreateTexture")
	if err := m.failOn["CreateTexture"]; err != nil {
		return NoHandle, err
	}
	if m.noHandle {
		return NoHandle, nil
	}
	m.next++
	return m.next, nil
}

func (m *mockContext) BindTexture2D(h Handle) error {
	m.record("BindTexture2D(%d)", h)
	key := "BindTexture2D"
	if h == NoHandle {
		key = "Unbind"
	}
	if err := m.failOn[key]; err != nil {
		return err
	}
	m.bound = h
	return nil
}

func (m *mockContext) TexParameter(pname uint32, value int32) error {
	m.record("TexParameter(0x%04X, 0x%04X)", pname, value)
	if err := m.failOn[fmt.Sprintf("TexParameter(0x%04X)", pname)]; err != nil {
		return err
	}
	return m.failOn["TexParameter"]
}

func (m *mockContext) PixelStoreAlignment(alignment int32) error {
	m.record("PixelStoreAlignment(%d)", alignment)
	if err := m.failOn[fmt.Sprintf("PixelStoreAlignment(%d)", alignment)]; err != nil {
		return err
	}
	m.alignment = alignment
	return nil
}

func (m *mockContext) TexImage2D(level int32, internalFormat uint32, width, height int32, format, dataType uint32, pixels []byte) error {
	m.record("TexImage2D(%d, 0x%04X, %d, %d, 0x%04X, 0x%04X, %d)",
		level, internalFormat, width, height, format, dataType, len(pixels))
	if err := m.failOn["TexImage2D"]; err != nil {
		return err
	}
	m.uploads = append(m.uploads, mockUpload{
		handle:    m.bound,
		alignment: m.alignment,
		internal:  internalFormat,
		format:    format,
		width:     width,
		height:    height,
		size:      len(pixels),
	})
	return nil
}

func (m *mockContext) DeleteTexture(h Handle) {
	m.record("DeleteTexture(%d)", h)
	m.deleted[h]++
}

func (m *mockContext) Alive() bool { return m.alive }

// limitedContext adds a maximum texture size to mockContext.
type limitedContext struct {
	*mockContext
}

func (l limitedContext) MaxTextureSize() int { return l.maxSize }

// totalDeletes returns the number of DeleteTexture calls.
func (m *mockContext) totalDeletes() int {
	n := 0
	for _, c := range m.deleted {
		n += c
	}
	return n
}

// lockedContext serializes calls to a mockContext so it can be shared by
// goroutines.
type lockedContext struct {
	mu sync.Mutex
	m  *mockContext
}

func (l *lockedContext) CreateTexture() (Handle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.m.CreateTexture()
}

func (l *lockedContext) BindTexture2D(h Handle) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.m.BindTexture2D(h)
}

func (l *lockedContext) TexParameter(pname uint32, value int32) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.m.TexParameter(pname, value)
}

func (l *lockedContext) PixelStoreAlignment(alignment int32) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.m.PixelStoreAlignment(alignment)
}

func (l *lockedContext) TexImage2D(level int32, internalFormat uint32, width, height int32, format, dataType uint32, pixels []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.m.TexImage2D(level, internalFormat, width, height, format, dataType, pixels)
}

func (l *lockedContext) DeleteTexture(h Handle) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.m.DeleteTexture(h)
}

func (l *lockedContext) Alive() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.m.Alive()
}

func (l *lockedContext) totalDeletes() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.m.totalDeletes()
}

// maxDeletes returns the largest number of deletes issued for one handle.
func (l *lockedContext) maxDeletes() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, c := range l.m.deleted {
		n = max(n, c)
	}
	return n
}
