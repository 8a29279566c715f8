// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command colorconv converts an image file to another color representation
// and reports the conversion plan.
//
// Usage:
//
//	colorconv -in photo.jpg -colorspace ycbcr -chroma 420 -dump planes.zst
//	colorconv -in logo.png -chroma 444 -alpha solid -bg navy -out flat.png
package main

import (
	"errors"
	"flag"
	"image"
	_ "image/jpeg"
	"image/png"
	"log"
	"log/slog"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/text/language"

	"github.com/gogpu/colorconv"
	"github.com/gogpu/colorconv/colorstate"
	"github.com/gogpu/colorconv/pixbuf"
)

func main() {
	var (
		input      = flag.String("in", "", "input image (png, jpeg, bmp, tiff, webp)")
		output     = flag.String("out", "", "write the result as PNG")
		dump       = flag.String("dump", "", "write the raw planes of the result, zstd-compressed")
		colorspace = flag.String("colorspace", "ycbcr", "target colorspace: rgb, ycbcr, mono")
		chroma     = flag.String("chroma", "420", "target layout: 420, 422, 444, mono, rgb, rgba, rrggbb_be, rrggbbaa_be, rrggbb_le, rrggbbaa_le")
		depth      = flag.Int("depth", 0, "target bit depth, 0 keeps the input depth")
		matrix     = flag.Int("matrix", -1, "H.273 matrix coefficients, -1 keeps the input matrix")
		rng        = flag.String("range", "", "target range: full, limited, empty keeps the input range")
		down       = flag.String("down", "average", "chroma downsampling: nearest, average, sharp")
		up         = flag.String("up", "bilinear", "chroma upsampling: nearest, bilinear")
		anyAlgo    = flag.Bool("any-algorithm", false, "let the planner pick any resampling algorithm")
		alpha      = flag.String("alpha", "none", "alpha removal: none, solid, checkerboard")
		bg         = flag.String("bg", "white", "background color name or hex")
		bg2        = flag.String("bg2", "#cccccc", "second checkerboard color")
		tile       = flag.Int("tile", 16, "checkerboard tile size")
		lang       = flag.String("lang", "en", "language for the report")
		cacheSize  = flag.Int("plan-cache", 0, "memoize up to n plans")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *verbose {
		colorconv.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	target, err := parseTarget(*colorspace, *chroma, *depth, *matrix, *rng)
	if err != nil {
		log.Fatalf("Invalid target: %v", err)
	}
	opts, err := parseOptions(*down, *up, *anyAlgo, *alpha, *bg, *bg2, *tile)
	if err != nil {
		log.Fatalf("Invalid options: %v", err)
	}
	tag, err := language.Parse(*lang)
	if err != nil {
		log.Fatalf("Invalid language: %v", err)
	}

	src, err := decode(*input)
	if err != nil {
		log.Fatalf("Failed to decode: %v", err)
	}
	img, err := pixbuf.FromImage(src, pixbuf.WithLimits(pixbuf.DefaultLimits()))
	if err != nil {
		log.Fatalf("Failed to import: %v", err)
	}

	c := colorconv.NewConverter(colorconv.WithPlanCache(*cacheSize))
	plan, err := c.Plan(img.State(), target, opts)
	if err != nil {
		log.Fatalf("No conversion: %v", err)
	}
	out, err := plan.Execute(img, opts)
	if err != nil {
		log.Fatalf("Conversion failed: %v", err)
	}

	report(os.Stdout, tag, img, out, plan)

	if *dump != "" {
		if err := writeDump(*dump, out); err != nil {
			log.Fatalf("Failed to dump: %v", err)
		}
		log.Printf("Planes dumped to %s\n", *dump)
	}
	if *output != "" {
		if err := writePNG(*output, c, out, opts); err != nil {
			log.Fatalf("Failed to save: %v", err)
		}
		log.Printf("Result saved to %s (%dx%d)\n", *output, out.Width(), out.Height())
	}
}

func decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

// writePNG encodes img, converting it to interleaved RGBA first when the
// standard library has no matching image type.
func writePNG(path string, c *colorconv.Converter, img *pixbuf.Image, opts colorconv.Options) error {
	std, err := img.ToImage()
	if errors.Is(err, pixbuf.ErrUnsupportedImage) {
		rgba, cerr := c.Convert(img, colorconv.Target{
			Colorspace: colorstate.ColorspaceRGB,
			Chroma:     colorstate.ChromaInterleavedRGBA,
		}, opts)
		if cerr != nil {
			return cerr
		}
		std, err = rgba.ToImage()
	}
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, std); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
