// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package asset

import (
	"fmt"
	"io/fs"
	"os"
)

// Source provides the raw bytes of named files.
type Source interface {
	Fetch(name string) ([]byte, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(name string) ([]byte, error)

// Fetch calls f(name).
func (f SourceFunc) Fetch(name string) ([]byte, error) {
	return f(name)
}

// fsSource reads from an fs.FS.
type fsSource struct {
	fsys fs.FS
}

// FS returns a Source reading from fsys. Names use fs.FS path rules:
// slash-separated, relative, no "..".
func FS(fsys fs.FS) Source {
	return fsSource{fsys: fsys}
}

// Dir returns a Source reading files under root. Names cannot escape root.
func Dir(root string) Source {
	return fsSource{fsys: os.DirFS(root)}
}

func (s fsSource) Fetch(name string) ([]byte, error) {
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("%w: %q: %w", ErrFetch, name, fs.ErrInvalid)
	}
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	return data, nil
}
