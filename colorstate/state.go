// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package colorstate describes the format of a pixel buffer independently of
// its pixel values: color space, chroma layout, alpha presence, bit depth and
// colorimetry.
//
// A State is a small comparable value. The conversion pipeline uses States as
// graph nodes, so equality is defined to ignore the transfer characteristic:
// no operator changes it and it never affects which conversions are possible.
package colorstate

import (
	"errors"
	"fmt"
	"strings"
)

// Colorspace is the color model of the samples.
type Colorspace uint8

const (
	// ColorspaceUndefined marks a state that has not been set.
	ColorspaceUndefined Colorspace = iota
	// ColorspaceRGB stores red, green and blue samples.
	ColorspaceRGB
	// ColorspaceYCbCr stores a luma plane and two color-difference planes.
	ColorspaceYCbCr
	// ColorspaceMonochrome stores a single luma plane.
	ColorspaceMonochrome

	colorspaceCount
)

// String returns a short name for the colorspace.
func (c Colorspace) String() string {
	switch c {
	case ColorspaceUndefined:
		return "undefined"
	case ColorspaceRGB:
		return "RGB"
	case ColorspaceYCbCr:
		return "YCbCr"
	case ColorspaceMonochrome:
		return "mono"
	default:
		return "Unknown"
	}
}

// IsValid reports whether c is a known colorspace.
func (c Colorspace) IsValid() bool {
	return c < colorspaceCount
}

// Chroma is the sampling and packing layout of the samples.
type Chroma uint8

const (
	// ChromaUndefined marks a layout that has not been set.
	ChromaUndefined Chroma = iota

	// ChromaMonochrome is a single planar luma channel.
	ChromaMonochrome

	// Chroma420 is planar with chroma halved in both directions.
	Chroma420

	// Chroma422 is planar with chroma halved horizontally.
	Chroma422

	// Chroma444 is planar with all channels at full resolution.
	Chroma444

	// ChromaInterleavedRGB packs 8-bit R, G, B per pixel.
	ChromaInterleavedRGB

	// ChromaInterleavedRGBA packs 8-bit R, G, B, A per pixel.
	ChromaInterleavedRGBA

	// ChromaInterleavedRRGGBBBE packs 16-bit big-endian R, G, B per pixel.
	ChromaInterleavedRRGGBBBE

	// ChromaInterleavedRRGGBBAABE packs 16-bit big-endian R, G, B, A per pixel.
	ChromaInterleavedRRGGBBAABE

	// ChromaInterleavedRRGGBBLE packs 16-bit little-endian R, G, B per pixel.
	ChromaInterleavedRRGGBBLE

	// ChromaInterleavedRRGGBBAALE packs 16-bit little-endian R, G, B, A per pixel.
	ChromaInterleavedRRGGBBAALE

	chromaCount
)

// chromaInfo contains layout metadata for a chroma value.
type chromaInfo struct {
	name        string
	samples     int // interleaved samples per pixel, 1 for planar layouts
	alpha       bool
	wide        bool // 2 bytes per interleaved sample
	bigEndian   bool
	subsampleX  int
	subsampleY  int
	interleaved bool
}

var chromaInfoTable = [chromaCount]chromaInfo{
	ChromaUndefined:             {name: "undefined", samples: 1, subsampleX: 1, subsampleY: 1},
	ChromaMonochrome:            {name: "mono", samples: 1, subsampleX: 1, subsampleY: 1},
	Chroma420:                   {name: "420", samples: 1, subsampleX: 2, subsampleY: 2},
	Chroma422:                   {name: "422", samples: 1, subsampleX: 2, subsampleY: 1},
	Chroma444:                   {name: "444", samples: 1, subsampleX: 1, subsampleY: 1},
	ChromaInterleavedRGB:        {name: "RGB", samples: 3, subsampleX: 1, subsampleY: 1, interleaved: true},
	ChromaInterleavedRGBA:       {name: "RGBA", samples: 4, alpha: true, subsampleX: 1, subsampleY: 1, interleaved: true},
	ChromaInterleavedRRGGBBBE:   {name: "RRGGBB_BE", samples: 3, wide: true, bigEndian: true, subsampleX: 1, subsampleY: 1, interleaved: true},
	ChromaInterleavedRRGGBBAABE: {name: "RRGGBBAA_BE", samples: 4, alpha: true, wide: true, bigEndian: true, subsampleX: 1, subsampleY: 1, interleaved: true},
	ChromaInterleavedRRGGBBLE:   {name: "RRGGBB_LE", samples: 3, wide: true, subsampleX: 1, subsampleY: 1, interleaved: true},
	ChromaInterleavedRRGGBBAALE: {name: "RRGGBBAA_LE", samples: 4, alpha: true, wide: true, subsampleX: 1, subsampleY: 1, interleaved: true},
}

func (c Chroma) info() chromaInfo {
	if c >= chromaCount {
		return chromaInfo{name: "Unknown", samples: 1, subsampleX: 1, subsampleY: 1}
	}
	return chromaInfoTable[c]
}

// String returns a short name for the layout.
func (c Chroma) String() string {
	return c.info().name
}

// IsValid reports whether c is a known layout.
func (c Chroma) IsValid() bool {
	return c < chromaCount
}

// IsInterleaved reports whether all channels share one interleaved plane.
func (c Chroma) IsInterleaved() bool {
	return c.info().interleaved
}

// IsPlanar reports whether each channel has its own plane.
func (c Chroma) IsPlanar() bool {
	switch c {
	case ChromaMonochrome, Chroma420, Chroma422, Chroma444:
		return true
	default:
		return false
	}
}

// InterleavedSamples returns the number of samples per pixel for interleaved
// layouts and 1 for planar layouts.
func (c Chroma) InterleavedSamples() int {
	return c.info().samples
}

// HasAlpha reports whether an interleaved layout carries an alpha sample.
func (c Chroma) HasAlpha() bool {
	return c.info().alpha
}

// IsHDRInterleaved reports whether c is one of the RRGGBB[AA] layouts.
func (c Chroma) IsHDRInterleaved() bool {
	return c.info().wide
}

// IsBigEndian reports whether an RRGGBB[AA] layout is big-endian.
func (c Chroma) IsBigEndian() bool {
	return c.info().bigEndian
}

// Subsampling returns the horizontal and vertical chroma subsampling factors.
func (c Chroma) Subsampling() (x, y int) {
	info := c.info()
	return info.subsampleX, info.subsampleY
}

// ChromaSize returns the chroma plane dimensions for a luma plane of the
// given size. Odd sizes round up.
func (c Chroma) ChromaSize(width, height int) (int, int) {
	sx, sy := c.Subsampling()
	return (width + sx - 1) / sx, (height + sy - 1) / sy
}

// WithAlpha returns the interleaved layout matching c with or without alpha.
// Planar layouts are returned unchanged.
func (c Chroma) WithAlpha(alpha bool) Chroma {
	switch c {
	case ChromaInterleavedRGB, ChromaInterleavedRGBA:
		if alpha {
			return ChromaInterleavedRGBA
		}
		return ChromaInterleavedRGB
	case ChromaInterleavedRRGGBBBE, ChromaInterleavedRRGGBBAABE:
		if alpha {
			return ChromaInterleavedRRGGBBAABE
		}
		return ChromaInterleavedRRGGBBBE
	case ChromaInterleavedRRGGBBLE, ChromaInterleavedRRGGBBAALE:
		if alpha {
			return ChromaInterleavedRRGGBBAALE
		}
		return ChromaInterleavedRRGGBBLE
	default:
		return c
	}
}

// SwapEndianness returns the RRGGBB[AA] layout with the opposite byte order.
// Other layouts are returned unchanged.
func (c Chroma) SwapEndianness() Chroma {
	switch c {
	case ChromaInterleavedRRGGBBBE:
		return ChromaInterleavedRRGGBBLE
	case ChromaInterleavedRRGGBBLE:
		return ChromaInterleavedRRGGBBBE
	case ChromaInterleavedRRGGBBAABE:
		return ChromaInterleavedRRGGBBAALE
	case ChromaInterleavedRRGGBBAALE:
		return ChromaInterleavedRRGGBBAABE
	default:
		return c
	}
}

// ErrInvalidState is returned by Validate for inconsistent states.
var ErrInvalidState = errors.New("colorstate: invalid state")

// State is the format descriptor of a pixel buffer.
type State struct {
	Colorspace   Colorspace
	Chroma       Chroma
	HasAlpha     bool
	BitsPerPixel int
	Colorimetry  Colorimetry
}

// Equal reports whether both states describe the same format.
// The transfer characteristic is not compared.
func (s State) Equal(o State) bool {
	return s.Colorspace == o.Colorspace &&
		s.Chroma == o.Chroma &&
		s.HasAlpha == o.HasAlpha &&
		s.BitsPerPixel == o.BitsPerPixel &&
		s.Colorimetry.EqualIgnoringTransfer(o.Colorimetry)
}

// Key returns a canonical comparable value such that
// a.Key() == b.Key() exactly when a.Equal(b).
func (s State) Key() State {
	s.Colorimetry.TransferCharacteristics = 0
	if s.Colorimetry.FullRange() {
		s.Colorimetry.Range = RangeFull
	}
	return s
}

// Validate checks the structural invariants of the state.
func (s State) Validate() error {
	if !s.Colorspace.IsValid() || !s.Chroma.IsValid() {
		return fmt.Errorf("%w: unknown colorspace or chroma in %v", ErrInvalidState, s)
	}
	if s.BitsPerPixel < 8 || s.BitsPerPixel > 16 {
		return fmt.Errorf("%w: %d bits per pixel", ErrInvalidState, s.BitsPerPixel)
	}

	switch s.Colorspace {
	case ColorspaceYCbCr:
		if s.Chroma != Chroma420 && s.Chroma != Chroma422 && s.Chroma != Chroma444 {
			return fmt.Errorf("%w: YCbCr with %v layout", ErrInvalidState, s.Chroma)
		}
	case ColorspaceRGB:
		if s.Chroma != Chroma444 && !s.Chroma.IsInterleaved() {
			return fmt.Errorf("%w: RGB with %v layout", ErrInvalidState, s.Chroma)
		}
	case ColorspaceMonochrome:
		if s.Chroma != ChromaMonochrome {
			return fmt.Errorf("%w: monochrome with %v layout", ErrInvalidState, s.Chroma)
		}
	case ColorspaceUndefined:
		return fmt.Errorf("%w: undefined colorspace", ErrInvalidState)
	}

	if s.Chroma.IsInterleaved() {
		if s.Chroma.InterleavedSamples() <= 1 {
			return fmt.Errorf("%w: interleaved layout with one sample", ErrInvalidState)
		}
		if s.HasAlpha != s.Chroma.HasAlpha() {
			return fmt.Errorf("%w: alpha flag disagrees with %v", ErrInvalidState, s.Chroma)
		}
		if s.Chroma.IsHDRInterleaved() {
			if s.BitsPerPixel <= 8 {
				return fmt.Errorf("%w: %v needs more than 8 bits", ErrInvalidState, s.Chroma)
			}
		} else if s.BitsPerPixel != 8 {
			return fmt.Errorf("%w: %v needs 8 bits", ErrInvalidState, s.Chroma)
		}
	}
	return nil
}

// String returns a compact description such as
// "YCbCr/420 10bit alpha mc=9 cp=9 tc=16 full".
func (s State) String() string {
	var b strings.Builder
	b.WriteString(s.Colorspace.String())
	b.WriteByte('/')
	b.WriteString(s.Chroma.String())
	fmt.Fprintf(&b, " %dbit", s.BitsPerPixel)
	if s.HasAlpha {
		b.WriteString(" alpha")
	}
	b.WriteByte(' ')
	b.WriteString(s.Colorimetry.String())
	return b.String()
}
