// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ops

import (
	"encoding/binary"

	"github.com/gogpu/colorconv/colorstate"
	"github.com/gogpu/colorconv/conv"
	"github.com/gogpu/colorconv/pixbuf"
)

var rgbChannels = [4]pixbuf.Channel{pixbuf.ChannelR, pixbuf.ChannelG, pixbuf.ChannelB, pixbuf.ChannelAlpha}

// interleavedTargets returns the alpha variants of an interleaved family
// reachable from a planar state. Existing alpha is always kept; alpha is
// synthesized only when the target asks for it.
func interleavedTargets(in, target colorstate.State) []bool {
	if in.HasAlpha {
		return []bool{true}
	}
	if target.HasAlpha {
		return []bool{false, true}
	}
	return []bool{false}
}

func isPlanarRGB(s colorstate.State) bool {
	return s.Colorspace == colorstate.ColorspaceRGB && s.Chroma == colorstate.Chroma444
}

// RGBToInterleaved packs 8-bit planar RGB into RGB or RGBA.
type RGBToInterleaved struct{}

// Name implements conv.Operator.
func (RGBToInterleaved) Name() string { return "rgb_to_interleaved" }

// ReachableStates implements conv.Operator.
func (RGBToInterleaved) ReachableStates(in, target colorstate.State, _ conv.Options) []conv.Candidate {
	if !isPlanarRGB(in) || in.BitsPerPixel != 8 {
		return nil
	}
	var out []conv.Candidate
	for _, alpha := range interleavedTargets(in, target) {
		s := in
		s.HasAlpha = alpha
		s.Chroma = colorstate.ChromaInterleavedRGB.WithAlpha(alpha)
		out = append(out, conv.Candidate{State: s, Cost: conv.CostOptimized})
	}
	return out
}

// Apply implements conv.Operator.
func (op RGBToInterleaved) Apply(img *pixbuf.Image, in, out colorstate.State, _ conv.Options) (*pixbuf.Image, error) {
	if err := checkInput(op.Name(), img, in); err != nil {
		return nil, err
	}
	dst, err := allocate(op.Name(), img, out)
	if err != nil {
		return nil, err
	}
	n := out.Chroma.InterleavedSamples()
	d := dst.Plane(pixbuf.ChannelInterleaved)
	for c := range n {
		if c == 3 && !in.HasAlpha {
			for y := range d.Height() {
				row := d.Row8(y)
				for x := range img.Width() {
					row[n*x+3] = 0xff
				}
			}
			continue
		}
		src := img.Plane(rgbChannels[c])
		for y := range d.Height() {
			s, row := src.Row8(y), d.Row8(y)
			for x, v := range s {
				row[n*x+c] = v
			}
		}
	}
	return dst, nil
}

// InterleavedToRGB unpacks RGB or RGBA into 8-bit planar RGB.
type InterleavedToRGB struct{}

// Name implements conv.Operator.
func (InterleavedToRGB) Name() string { return "interleaved_to_rgb" }

// ReachableStates implements conv.Operator.
func (InterleavedToRGB) ReachableStates(in, _ colorstate.State, _ conv.Options) []conv.Candidate {
	if in.Chroma != colorstate.ChromaInterleavedRGB && in.Chroma != colorstate.ChromaInterleavedRGBA {
		return nil
	}
	out := in
	out.Chroma = colorstate.Chroma444
	return candidates(out, conv.CostOptimized)
}

// Apply implements conv.Operator.
func (op InterleavedToRGB) Apply(img *pixbuf.Image, in, out colorstate.State, _ conv.Options) (*pixbuf.Image, error) {
	if err := checkInput(op.Name(), img, in); err != nil {
		return nil, err
	}
	dst, err := allocate(op.Name(), img, out)
	if err != nil {
		return nil, err
	}
	n := in.Chroma.InterleavedSamples()
	src := img.Plane(pixbuf.ChannelInterleaved)
	for c := range n {
		d := dst.Plane(rgbChannels[c])
		for y := range d.Height() {
			s, row := src.Row8(y), d.Row8(y)
			for x := range row {
				row[x] = s[n*x+c]
			}
		}
	}
	return dst, nil
}

// RGBToRRGGBB packs planar RGB deeper than 8 bits into RRGGBB[AA] with
// explicit byte order.
type RGBToRRGGBB struct{}

// Name implements conv.Operator.
func (RGBToRRGGBB) Name() string { return "rgb_to_rrggbb" }

// ReachableStates implements conv.Operator.
func (RGBToRRGGBB) ReachableStates(in, target colorstate.State, _ conv.Options) []conv.Candidate {
	if !isPlanarRGB(in) || in.BitsPerPixel <= 8 {
		return nil
	}
	var out []conv.Candidate
	for _, alpha := range interleavedTargets(in, target) {
		for _, base := range []colorstate.Chroma{colorstate.ChromaInterleavedRRGGBBBE, colorstate.ChromaInterleavedRRGGBBLE} {
			s := in
			s.HasAlpha = alpha
			s.Chroma = base.WithAlpha(alpha)
			out = append(out, conv.Candidate{State: s, Cost: conv.CostOptimized})
		}
	}
	return out
}

// Apply implements conv.Operator.
func (op RGBToRRGGBB) Apply(img *pixbuf.Image, in, out colorstate.State, _ conv.Options) (*pixbuf.Image, error) {
	if err := checkInput(op.Name(), img, in); err != nil {
		return nil, err
	}
	dst, err := allocate(op.Name(), img, out)
	if err != nil {
		return nil, err
	}
	order := byteOrder(out.Chroma)
	n := out.Chroma.InterleavedSamples()
	d := dst.Plane(pixbuf.ChannelInterleaved)
	maxVal := uint16(d.MaxValue())
	for c := range n {
		if c == 3 && !in.HasAlpha {
			for y := range d.Height() {
				row := d.Row(y)
				for x := range img.Width() {
					order.PutUint16(row[2*(n*x+3):], maxVal)
				}
			}
			continue
		}
		src := img.Plane(rgbChannels[c])
		for y := range d.Height() {
			s, row := src.Row16(y), d.Row(y)
			for x, v := range s {
				order.PutUint16(row[2*(n*x+c):], v)
			}
		}
	}
	return dst, nil
}

// RRGGBBToRGB unpacks RRGGBB[AA] into planar RGB.
type RRGGBBToRGB struct{}

// Name implements conv.Operator.
func (RRGGBBToRGB) Name() string { return "rrggbb_to_rgb" }

// ReachableStates implements conv.Operator.
func (RRGGBBToRGB) ReachableStates(in, _ colorstate.State, _ conv.Options) []conv.Candidate {
	if !in.Chroma.IsHDRInterleaved() {
		return nil
	}
	out := in
	out.Chroma = colorstate.Chroma444
	return candidates(out, conv.CostOptimized)
}

// Apply implements conv.Operator.
func (op RRGGBBToRGB) Apply(img *pixbuf.Image, in, out colorstate.State, _ conv.Options) (*pixbuf.Image, error) {
	if err := checkInput(op.Name(), img, in); err != nil {
		return nil, err
	}
	dst, err := allocate(op.Name(), img, out)
	if err != nil {
		return nil, err
	}
	order := byteOrder(in.Chroma)
	n := in.Chroma.InterleavedSamples()
	src := img.Plane(pixbuf.ChannelInterleaved)
	for c := range n {
		d := dst.Plane(rgbChannels[c])
		for y := range d.Height() {
			s, row := src.Row(y), d.Row16(y)
			for x := range row {
				row[x] = order.Uint16(s[2*(n*x+c):])
			}
		}
	}
	return dst, nil
}

// SwapEndianness converts RRGGBB[AA] between big and little endian.
type SwapEndianness struct{}

// Name implements conv.Operator.
func (SwapEndianness) Name() string { return "rrggbb_swap_endianness" }

// ReachableStates implements conv.Operator.
func (SwapEndianness) ReachableStates(in, _ colorstate.State, _ conv.Options) []conv.Candidate {
	if !in.Chroma.IsHDRInterleaved() {
		return nil
	}
	out := in
	out.Chroma = in.Chroma.SwapEndianness()
	return candidates(out, conv.CostOptimized)
}

// Apply implements conv.Operator.
func (op SwapEndianness) Apply(img *pixbuf.Image, in, out colorstate.State, _ conv.Options) (*pixbuf.Image, error) {
	if err := checkInput(op.Name(), img, in); err != nil {
		return nil, err
	}
	dst, err := allocate(op.Name(), img, out)
	if err != nil {
		return nil, err
	}
	src, d := img.Plane(pixbuf.ChannelInterleaved), dst.Plane(pixbuf.ChannelInterleaved)
	for y := range src.Height() {
		s, row := src.Row(y), d.Row(y)
		for i := 0; i+1 < len(s); i += 2 {
			row[i], row[i+1] = s[i+1], s[i]
		}
	}
	return dst, nil
}

func byteOrder(c colorstate.Chroma) binary.ByteOrder {
	if c.IsBigEndian() {
		return binary.BigEndian
	}
	return binary.LittleEndian
}
