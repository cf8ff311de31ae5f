// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command texinfo loads image files as textures and prints what was created.
//
// Usage:
//
//	texinfo [-backend software] [-format rgba|r8] [-filter nearest|linear] [-max N] [-v] FILE...
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/gogpu/texture"
	"github.com/gogpu/texture/asset"
	"github.com/gogpu/texture/backend"
	"github.com/gogpu/texture/backend/software"
)

func main() {
	var (
		backendName = flag.String("backend", backend.BackendSoftware, "texture backend (empty selects the best available)")
		format      = flag.String("format", "rgba", "storage format: rgba or r8")
		filter      = flag.String("filter", "nearest", "min/mag filter: nearest or linear")
		maxDim      = flag.Int("max", 0, "scale images down to fit this many pixels per side")
		verbose     = flag.Bool("v", false, "log texture lifecycle events")
	)
	flag.Parse()
	log.SetFlags(0)

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: texinfo [flags] FILE...")
		flag.PrintDefaults()
		os.Exit(2)
	}
	if *verbose {
		texture.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	f, err := parseFilter(*filter)
	if err != nil {
		log.Fatal(err)
	}
	opts := []asset.Option{
		asset.WithTextureOptions(texture.WithFilters(f, f)),
		asset.WithMaxDimension(*maxDim),
	}
	switch *format {
	case "rgba":
	case "r8":
		opts = append(opts, asset.WithSingleChannel())
	default:
		log.Fatalf("texinfo: unknown format %q", *format)
	}

	ctx, err := backend.Open(*backendName)
	if err != nil {
		log.Fatalf("texinfo: %v", err)
	}

	failed := 0
	for _, path := range flag.Args() {
		if err := describe(ctx, path, opts); err != nil {
			log.Printf("%s: %v", path, err)
			failed++
		}
	}

	if sw, ok := ctx.(*software.Context); ok {
		s := sw.Stats()
		fmt.Printf("software: created=%d deleted=%d uploads=%d live=%d\n", s.Created, s.Deleted, s.Uploads, s.Live)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// describe loads one file and prints the resulting texture.
func describe(ctx texture.Context, path string, opts []asset.Option) error {
	l := asset.NewLoader(ctx, asset.Dir(filepath.Dir(path)), opts...)
	r := l.Load(filepath.Base(path))
	defer r.Release()

	tex, err := r.Texture()
	if err != nil {
		return err
	}
	w, h := tex.Size()
	minF, magF := tex.Filters()
	fmt.Printf("%s: %dx%d %v/%v %d bytes min=%v mag=%v\n",
		path, w, h, tex.Format(), tex.DataFormat(), tex.ByteSize(), minF, magF)

	if sw, ok := ctx.(*software.Context); ok {
		printParams(sw, tex)
	}
	return nil
}

// printParams prints the parameters stored for tex.
func printParams(sw *software.Context, tex *texture.Texture) {
	img, ok := sw.TextureImage(tex)
	if !ok {
		return
	}
	names := make([]uint32, 0, len(img.Params))
	for name := range img.Params {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Printf("\tparam 0x%04X = 0x%04X\n", name, img.Params[name])
	}
}

func parseFilter(s string) (texture.Filter, error) {
	switch s {
	case "nearest":
		return texture.FilterNearest, nil
	case "linear":
		return texture.FilterLinear, nil
	}
	return 0, fmt.Errorf("texinfo: unknown filter %q", s)
}
