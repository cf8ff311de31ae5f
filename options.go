// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

// Option configures texture creation in New, NewDefault and NewFromPixels.
//
// Example:
//
//	tex, err := texture.NewDefault(ctx, 256, 256,
//		texture.WithLabel("atlas"),
//		texture.WithFilters(texture.FilterLinear, texture.FilterLinear))
type Option func(*options)

// options holds optional configuration for texture creation.
type options struct {
	label     string
	minFilter Filter
	magFilter Filter
	maxSize   int
}

// defaultOptions returns nearest filtering, no label and the context's own
// size limit.
func defaultOptions() options {
	return options{
		minFilter: FilterNearest,
		magFilter: FilterNearest,
	}
}

// WithLabel sets the debug label reported in log records.
func WithLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}

// WithFilters sets the minification and magnification filters.
// New ignores it in favour of its explicit filter arguments.
func WithFilters(minFilter, magFilter Filter) Option {
	return func(o *options) {
		o.minFilter = minFilter
		o.magFilter = magFilter
	}
}

// WithMaxSize caps both dimensions at n pixels, overriding the limit the
// context reports. n <= 0 restores the context limit.
func WithMaxSize(n int) Option {
	return func(o *options) {
		o.maxSize = n
	}
}

// newDescriptor applies opts on top of the defaults.
func newDescriptor(width, height int, internal, format PixelFormat, opts []Option) Descriptor {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return Descriptor{
		Label:          o.label,
		Width:          width,
		Height:         height,
		InternalFormat: internal,
		Format:         format,
		MinFilter:      o.minFilter,
		MagFilter:      o.magFilter,
		MaxSize:        o.maxSize,
	}
}
