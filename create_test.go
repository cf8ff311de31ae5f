// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

import (
	"errors"
	"slices"
	"testing"
)

func TestNewDefault_CallSequence(t *testing.T) {
	ctx := newMockContext()

	tex, err := NewDefault(ctx, 3, 5)
	if err != nil {
		t.Fatalf("NewDefault() = %v", err)
	}
	t.Cleanup(tex.Release)

	want := []string{
		"CreateTexture",
		"BindTexture2D(1)",
		"TexParameter(0x2802, 0x812F)",
		"TexParameter(0x2803, 0x812F)",
		"TexParameter(0x2800, 0x2600)",
		"TexParameter(0x2801, 0x2600)",
		"TexImage2D(0, 0x1908, 3, 5, 0x1908, 0x1401, 60)",
		"BindTexture2D(0)",
	}
	if !slices.Equal(ctx.calls, want) {
		t.Errorf("calls =\n%q\nwant\n%q", ctx.calls, want)
	}
	if ctx.bound != NoHandle {
		t.Errorf("texture %d left bound", ctx.bound)
	}
	if tex.Width() != 3 || tex.Height() != 5 {
		t.Errorf("size = %vx%v, want 3x5", tex.Width(), tex.Height())
	}
	if tex.Format() != FormatRGBA || tex.ByteSize() != 60 {
		t.Errorf("Format() = %v, ByteSize() = %d", tex.Format(), tex.ByteSize())
	}
}

func TestNew_SingleChannelAlignment(t *testing.T) {
	ctx := newMockContext()

	tex, err := New(ctx, 2, 2, FormatR8, FormatRed, FilterLinear, FilterLinear)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	t.Cleanup(tex.Release)

	if ctx.calls[1] != "PixelStoreAlignment(1)" {
		t.Errorf("alignment must be lowered before binding, calls = %q", ctx.calls)
	}
	if len(ctx.uploads) != 1 {
		t.Fatalf("uploads = %d, want 1", len(ctx.uploads))
	}
	up := ctx.uploads[0]
	if up.alignment != 1 || up.size != 4 || up.internal != 0x8229 || up.format != 0x1903 {
		t.Errorf("upload = %+v, want alignment 1, 4 bytes, R8/RED", up)
	}
	if ctx.alignment != 4 {
		t.Errorf("alignment after creation = %d, want 4", ctx.alignment)
	}
	if !slices.Contains(ctx.calls, "TexParameter(0x2801, 0x2601)") {
		t.Errorf("linear min filter not set, calls = %q", ctx.calls)
	}
}

func TestNew_RGBADoesNotTouchAlignment(t *testing.T) {
	ctx := newMockContext()
	tex := MustNew(ctx, 4, 4, FormatRGBA, FormatRGBA, FilterNearest, FilterLinear)
	t.Cleanup(tex.Release)

	for _, c := range ctx.calls {
		if c == "PixelStoreAlignment(1)" || c == "PixelStoreAlignment(4)" {
			t.Errorf("unexpected alignment call %q", c)
		}
	}
	if minF, magF := tex.Filters(); minF != FilterNearest || magF != FilterLinear {
		t.Errorf("Filters() = %v, %v", minF, magF)
	}
}

func TestNewFromPixels(t *testing.T) {
	ctx := newMockContext()
	pixels := make([]byte, 3*1)

	tex, err := NewFromPixels(ctx, 3, 1, FormatR8, FormatRed, pixels,
		WithLabel("glyphs"), WithFilters(FilterLinear, FilterNearest))
	if err != nil {
		t.Fatalf("NewFromPixels() = %v", err)
	}
	t.Cleanup(tex.Release)

	if tex.Label() != "glyphs" || tex.DataFormat() != FormatRed || tex.Format() != FormatR8 {
		t.Errorf("descriptor = %+v", tex.Descriptor())
	}
	if ctx.uploads[0].size != 3 {
		t.Errorf("uploaded %d bytes, want 3", ctx.uploads[0].size)
	}
}

func TestCreate_ValidationFailsBeforeGPUCalls(t *testing.T) {
	dead := newMockContext()
	dead.alive = false

	tests := []struct {
		name   string
		ctx    Context
		desc   *Descriptor
		pixels []byte
		want   error
	}{
		{"nil context", nil, &Descriptor{Width: 1, Height: 1}, nil, ErrNilContext},
		{"dead context", dead, &Descriptor{Width: 1, Height: 1}, nil, ErrContextLost},
		{"zero width", newMockContext(), &Descriptor{Width: 0, Height: 1}, nil, ErrInvalidSize},
		{"negative height", newMockContext(), &Descriptor{Width: 1, Height: -2}, nil, ErrInvalidSize},
		{"bad format", newMockContext(), &Descriptor{Width: 1, Height: 1, Format: 9}, nil, ErrUnsupportedFormat},
		{"bad filter", newMockContext(), &Descriptor{Width: 1, Height: 1, MagFilter: 5}, nil, ErrUnsupportedFormat},
		{"short pixels", newMockContext(), &Descriptor{Width: 2, Height: 2}, make([]byte, 15), ErrPixelDataSize},
		{"max size option", newMockContext(), &Descriptor{Width: 65, Height: 1, MaxSize: 64}, nil, ErrTextureTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tex, err := Create(tt.ctx, tt.desc, tt.pixels)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Create() error = %v, want %v", err, tt.want)
			}
			if tex != nil {
				t.Error("Create() returned a texture on error")
			}
			if m, ok := tt.ctx.(*mockContext); ok && len(m.calls) != 0 {
				t.Errorf("GPU calls issued before validation: %q", m.calls)
			}
		})
	}
}

func TestCreate_ContextSizeLimit(t *testing.T) {
	ctx := limitedContext{newMockContext()}
	ctx.maxSize = 16

	if _, err := NewDefault(ctx, 17, 1); !errors.Is(err, ErrTextureTooLarge) {
		t.Errorf("NewDefault(17x1) error = %v, want ErrTextureTooLarge", err)
	}
	tex, err := NewDefault(ctx, 16, 16)
	if err != nil {
		t.Fatalf("NewDefault(16x16) = %v", err)
	}
	tex.Release()

	// WithMaxSize overrides the context limit.
	tex, err = NewDefault(ctx, 32, 1, WithMaxSize(32))
	if err != nil {
		t.Fatalf("NewDefault with WithMaxSize = %v", err)
	}
	tex.Release()
}

func TestCreate_AllocationFailure(t *testing.T) {
	ctx := newMockContext()
	ctx.failOn["CreateTexture"] = errMock

	_, err := NewDefault(ctx, 1, 1)
	if !errors.Is(err, ErrAllocation) || !errors.Is(err, errMock) {
		t.Fatalf("error = %v, want ErrAllocation wrapping mock failure", err)
	}
	if ctx.totalDeletes() != 0 {
		t.Error("nothing was allocated, nothing should be deleted")
	}

	ctx = newMockContext()
	ctx.noHandle = true
	if _, err := NewDefault(ctx, 1, 1); !errors.Is(err, ErrAllocation) {
		t.Errorf("NoHandle error = %v, want ErrAllocation", err)
	}
	if len(ctx.calls) != 1 {
		t.Errorf("calls after NoHandle = %q", ctx.calls)
	}
}

func TestCreate_FailureDeletesOrphan(t *testing.T) {
	tests := []struct {
		name    string
		failOn  string
		want    error
		r8      bool
		unbound bool
	}{
		{"bind", "BindTexture2D", ErrConfiguration, false, false},
		{"wrap", "TexParameter(0x2802)", ErrConfiguration, false, true},
		{"min filter", "TexParameter(0x2801)", ErrConfiguration, false, true},
		{"upload", "TexImage2D", ErrUpload, false, true},
		{"unbind", "Unbind", ErrConfiguration, false, false},
		{"alignment", "PixelStoreAlignment(1)", ErrConfiguration, true, false},
		{"restore alignment", "PixelStoreAlignment(4)", ErrConfiguration, true, true},
		{"upload single channel", "TexImage2D", ErrUpload, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newMockContext()
			ctx.failOn[tt.failOn] = errMock

			internal, format := FormatRGBA, FormatRGBA
			if tt.r8 {
				internal, format = FormatR8, FormatRed
			}
			tex, err := New(ctx, 2, 2, internal, format, FilterNearest, FilterNearest)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			if tex != nil {
				t.Fatal("texture returned on failure")
			}
			if ctx.deleted[1] != 1 {
				t.Errorf("orphan deleted %d times, want 1", ctx.deleted[1])
			}
			if tt.unbound && ctx.bound != NoHandle {
				t.Errorf("texture %d left bound after failure", ctx.bound)
			}
			if tt.r8 && tt.failOn != "PixelStoreAlignment(4)" && ctx.alignment != 4 {
				t.Errorf("alignment = %d after failure, want 4", ctx.alignment)
			}
		})
	}
}

func TestMustNew_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNew did not panic on invalid size")
		}
	}()
	MustNew(newMockContext(), 0, 0, FormatRGBA, FormatRGBA, FilterNearest, FilterNearest)
}

func TestNewFromPixels_NilData(t *testing.T) {
	if _, err := NewFromPixels(newMockContext(), 1, 1, FormatRGBA, FormatRGBA, nil); !errors.Is(err, ErrPixelDataSize) {
		t.Errorf("error = %v, want ErrPixelDataSize", err)
	}
}

func TestOptions_NilIgnored(t *testing.T) {
	d := newDescriptor(1, 1, FormatRGBA, FormatRGBA, []Option{nil, WithLabel("x")})
	if d.Label != "x" || d.MinFilter != FilterNearest {
		t.Errorf("descriptor = %+v", d)
	}
}

func BenchmarkNewDefault(b *testing.B) {
	ctx := newMockContext()
	b.ReportAllocs()
	for b.Loop() {
		tex, err := NewDefault(ctx, 16, 16)
		if err != nil {
			b.Fatal(err)
		}
		tex.Release()
		ctx.calls = ctx.calls[:0]
		ctx.uploads = ctx.uploads[:0]
	}
}
