// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/gogpu/colorconv"
	"github.com/gogpu/colorconv/colorstate"
	"github.com/gogpu/colorconv/conv"
)

func parseColorspace(s string) (colorstate.Colorspace, error) {
	for c := colorstate.ColorspaceRGB; c.IsValid(); c++ {
		if strings.EqualFold(c.String(), s) {
			return c, nil
		}
	}
	if strings.EqualFold(s, "monochrome") {
		return colorstate.ColorspaceMonochrome, nil
	}
	return 0, fmt.Errorf("unknown colorspace %q", s)
}

func parseChroma(s string) (colorstate.Chroma, error) {
	for c := colorstate.ChromaMonochrome; c.IsValid(); c++ {
		if strings.EqualFold(c.String(), s) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown chroma %q", s)
}

// parseTarget builds a target; matrix < 0 and an empty range keep the
// input's values.
func parseTarget(colorspace, chroma string, depth, matrix int, rng string) (colorconv.Target, error) {
	cs, err := parseColorspace(colorspace)
	if err != nil {
		return colorconv.Target{}, err
	}
	ch, err := parseChroma(chroma)
	if err != nil {
		return colorconv.Target{}, err
	}

	cm := colorstate.Unspecified()
	if matrix >= 0 {
		cm.MatrixCoefficients = colorstate.MatrixCoefficients(matrix)
	}
	switch strings.ToLower(rng) {
	case "":
	case "full":
		cm.Range = colorstate.RangeFull
	case "limited", "tv", "studio":
		cm.Range = colorstate.RangeLimited
	default:
		return colorconv.Target{}, fmt.Errorf("unknown range %q", rng)
	}

	return colorconv.Target{Colorspace: cs, Chroma: ch, Colorimetry: cm, BitDepth: depth}, nil
}

func parseOptions(down, up string, anyAlgo bool, alpha, bg, bg2 string, tile int) (colorconv.Options, error) {
	opts := colorconv.DefaultOptions()
	opts.OnlyUsePreferredChromaAlgorithm = !anyAlgo

	switch strings.ToLower(down) {
	case "nearest":
		opts.PreferredChromaDownsampling = conv.DownsamplingNearestNeighbor
	case "average":
		opts.PreferredChromaDownsampling = conv.DownsamplingAverage
	case "sharp":
		opts.PreferredChromaDownsampling = conv.DownsamplingSharp
	default:
		return opts, fmt.Errorf("unknown downsampling %q", down)
	}
	switch strings.ToLower(up) {
	case "nearest":
		opts.PreferredChromaUpsampling = conv.UpsamplingNearestNeighbor
	case "bilinear":
		opts.PreferredChromaUpsampling = conv.UpsamplingBilinear
	default:
		return opts, fmt.Errorf("unknown upsampling %q", up)
	}
	switch strings.ToLower(alpha) {
	case "none":
		opts.AlphaComposition = conv.CompositionNone
	case "solid":
		opts.AlphaComposition = conv.CompositionSolidColor
	case "checkerboard":
		opts.AlphaComposition = conv.CompositionCheckerboard
	default:
		return opts, fmt.Errorf("unknown alpha composition %q", alpha)
	}

	var err error
	if opts.BackgroundColor, err = parseColor(bg); err != nil {
		return opts, err
	}
	if opts.SecondaryBackgroundColor, err = parseColor(bg2); err != nil {
		return opts, err
	}
	if tile <= 0 {
		return opts, fmt.Errorf("tile size %d must be positive", tile)
	}
	opts.CheckerboardSquareSize = tile
	return opts, nil
}

// parseColor accepts an SVG color name or a 3 or 6 digit hex code.
func parseColor(s string) (conv.Color16, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[name]; ok {
		return conv.Color16{R: uint16(c.R) * 257, G: uint16(c.G) * 257, B: uint16(c.B) * 257}, nil
	}

	hex := strings.TrimPrefix(name, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return conv.Color16{}, fmt.Errorf("unknown color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return conv.Color16{}, fmt.Errorf("unknown color %q: %w", s, err)
	}
	r, g, b := uint16(v>>16&0xff), uint16(v>>8&0xff), uint16(v&0xff)
	return conv.Color16{R: r * 257, G: g * 257, B: b * 257}, nil
}
