// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package conv

import "fmt"

// ChromaDownsampling selects the 4:4:4 to 4:2:x reduction algorithm.
type ChromaDownsampling uint8

const (
	// DownsamplingNearestNeighbor keeps the top-left sample of each block.
	DownsamplingNearestNeighbor ChromaDownsampling = iota
	// DownsamplingAverage box-averages each block.
	DownsamplingAverage
	// DownsamplingSharp uses the iterative gamma-aware kernel (RGB input only).
	DownsamplingSharp
)

// String returns the algorithm name.
func (d ChromaDownsampling) String() string {
	switch d {
	case DownsamplingNearestNeighbor:
		return "nearest"
	case DownsamplingAverage:
		return "average"
	case DownsamplingSharp:
		return "sharp"
	default:
		return fmt.Sprintf("ChromaDownsampling(%d)", d)
	}
}

// ChromaUpsampling selects the 4:2:x to 4:4:4 expansion algorithm.
type ChromaUpsampling uint8

const (
	// UpsamplingNearestNeighbor replicates each chroma sample.
	UpsamplingNearestNeighbor ChromaUpsampling = iota
	// UpsamplingBilinear interpolates with 3/4 and 1/4 taps.
	UpsamplingBilinear
)

// String returns the algorithm name.
func (u ChromaUpsampling) String() string {
	switch u {
	case UpsamplingNearestNeighbor:
		return "nearest"
	case UpsamplingBilinear:
		return "bilinear"
	default:
		return fmt.Sprintf("ChromaUpsampling(%d)", u)
	}
}

// AlphaComposition selects how alpha is removed when the target has none.
type AlphaComposition uint8

const (
	// CompositionNone discards the alpha plane.
	CompositionNone AlphaComposition = iota
	// CompositionSolidColor blends over Options.BackgroundColor.
	CompositionSolidColor
	// CompositionCheckerboard blends over a two-color checkerboard.
	CompositionCheckerboard
)

// String returns the composition mode name.
func (a AlphaComposition) String() string {
	switch a {
	case CompositionNone:
		return "none"
	case CompositionSolidColor:
		return "solid"
	case CompositionCheckerboard:
		return "checkerboard"
	default:
		return fmt.Sprintf("AlphaComposition(%d)", a)
	}
}

// Color16 is a color with 16 bits per channel.
type Color16 struct {
	R, G, B uint16
}

// Options are the global settings consulted by every operator.
// Options is comparable and may be used as a map key.
type Options struct {
	PreferredChromaDownsampling ChromaDownsampling
	PreferredChromaUpsampling   ChromaUpsampling

	// OnlyUsePreferredChromaAlgorithm offers exactly the preferred variant
	// of a resampling family instead of every variant.
	OnlyUsePreferredChromaAlgorithm bool

	AlphaComposition AlphaComposition

	// BackgroundColor is the solid color and the first checkerboard color.
	BackgroundColor Color16

	// SecondaryBackgroundColor is the second checkerboard color.
	SecondaryBackgroundColor Color16

	// CheckerboardSquareSize is the tile edge in pixels.
	CheckerboardSquareSize int
}

// DefaultOptions returns box-average downsampling, bilinear upsampling,
// preferred algorithms only, no alpha composition, white and light gray
// backgrounds and 16 pixel checkerboard tiles.
func DefaultOptions() Options {
	return Options{
		PreferredChromaDownsampling:     DownsamplingAverage,
		PreferredChromaUpsampling:       UpsamplingBilinear,
		OnlyUsePreferredChromaAlgorithm: true,
		AlphaComposition:                CompositionNone,
		BackgroundColor:                 Color16{R: 0xffff, G: 0xffff, B: 0xffff},
		SecondaryBackgroundColor:        Color16{R: 0xcccc, G: 0xcccc, B: 0xcccc},
		CheckerboardSquareSize:          16,
	}
}

// AllowsDownsampling reports whether the downsampling variant d may be offered.
func (o Options) AllowsDownsampling(d ChromaDownsampling) bool {
	return !o.OnlyUsePreferredChromaAlgorithm || o.PreferredChromaDownsampling == d
}

// AllowsUpsampling reports whether the upsampling variant u may be offered.
func (o Options) AllowsUpsampling(u ChromaUpsampling) bool {
	return !o.OnlyUsePreferredChromaAlgorithm || o.PreferredChromaUpsampling == u
}
