// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package colorconv

import "github.com/gogpu/colorconv/colorstate"

// Target describes the representation a conversion should produce.
//
// Colorimetry fields left at their Unspecified code points take the
// input's value; the zero Colorimetry is treated as fully unspecified.
// A zero BitDepth keeps the input's depth, except that 8-bit interleaved
// layouts always use 8 bits and RRGGBB layouts use 16 bits for 8-bit
// input.
//
// Interleaved targets carry alpha exactly when their layout does. Planar
// targets keep the input's alpha presence.
type Target struct {
	Colorspace  colorstate.Colorspace
	Chroma      colorstate.Chroma
	Colorimetry colorstate.Colorimetry
	BitDepth    int
}

// TargetOf returns a target equal to s with all fields explicit.
func TargetOf(s colorstate.State) Target {
	return Target{
		Colorspace:  s.Colorspace,
		Chroma:      s.Chroma,
		Colorimetry: s.Colorimetry,
		BitDepth:    s.BitsPerPixel,
	}
}

// Resolve returns the concrete state the target denotes for input in.
func (t Target) Resolve(in colorstate.State) colorstate.State {
	cm := t.Colorimetry
	if cm == (colorstate.Colorimetry{}) {
		cm = colorstate.Unspecified()
	}

	out := colorstate.State{
		Colorspace:  t.Colorspace,
		Chroma:      t.Chroma,
		Colorimetry: cm.Resolve(in.Colorimetry),
	}

	if t.Chroma.IsInterleaved() {
		out.HasAlpha = t.Chroma.HasAlpha()
	} else {
		out.HasAlpha = in.HasAlpha
	}

	switch {
	case t.BitDepth != 0:
		out.BitsPerPixel = t.BitDepth
	case t.Chroma.IsInterleaved() && !t.Chroma.IsHDRInterleaved():
		out.BitsPerPixel = 8
	case t.Chroma.IsHDRInterleaved() && in.BitsPerPixel <= 8:
		out.BitsPerPixel = 16
	default:
		out.BitsPerPixel = in.BitsPerPixel
	}
	return out
}
