// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ops

import (
	"github.com/gogpu/colorconv/colorstate"
	"github.com/gogpu/colorconv/conv"
	"github.com/gogpu/colorconv/pixbuf"
)

// depthConvertible reports whether the planes of s may change bit depth.
func depthConvertible(s colorstate.State) bool {
	if !isPlanar(s) {
		return false
	}
	return s.Colorspace != colorstate.ColorspaceYCbCr ||
		s.Colorimetry.MatrixCoefficients != colorstate.MatrixYCgCoRe
}

// ExpandBitDepth widens every plane to the target depth by bit replication.
type ExpandBitDepth struct{}

// Name implements conv.Operator.
func (ExpandBitDepth) Name() string { return "expand_bit_depth" }

// ReachableStates implements conv.Operator.
func (ExpandBitDepth) ReachableStates(in, target colorstate.State, _ conv.Options) []conv.Candidate {
	if !depthConvertible(in) || target.BitsPerPixel <= in.BitsPerPixel || target.BitsPerPixel > 16 {
		return nil
	}
	out := in
	out.BitsPerPixel = target.BitsPerPixel
	return candidates(out, conv.CostOptimized)
}

// Apply implements conv.Operator.
func (op ExpandBitDepth) Apply(img *pixbuf.Image, in, out colorstate.State, _ conv.Options) (*pixbuf.Image, error) {
	return changeDepth(op.Name(), img, in, out)
}

// ReduceBitDepth narrows every plane to the target depth by truncation.
type ReduceBitDepth struct{}

// Name implements conv.Operator.
func (ReduceBitDepth) Name() string { return "reduce_bit_depth" }

// ReachableStates implements conv.Operator.
func (ReduceBitDepth) ReachableStates(in, target colorstate.State, _ conv.Options) []conv.Candidate {
	if !depthConvertible(in) || target.BitsPerPixel >= in.BitsPerPixel || target.BitsPerPixel < 8 {
		return nil
	}
	out := in
	out.BitsPerPixel = target.BitsPerPixel
	return candidates(out, conv.CostOptimized)
}

// Apply implements conv.Operator.
func (op ReduceBitDepth) Apply(img *pixbuf.Image, in, out colorstate.State, _ conv.Options) (*pixbuf.Image, error) {
	return changeDepth(op.Name(), img, in, out)
}

func changeDepth(op string, img *pixbuf.Image, in, out colorstate.State) (*pixbuf.Image, error) {
	if err := checkInput(op, img, in); err != nil {
		return nil, err
	}
	dst, err := allocate(op, img, out)
	if err != nil {
		return nil, err
	}
	from, to := in.BitsPerPixel, out.BitsPerPixel
	for _, ch := range pixbuf.LayoutChannels(in.Colorspace, in.Chroma, in.HasAlpha) {
		s, d := img.Plane(ch), dst.Plane(ch)
		switch {
		case from > 8 && to > 8:
			rescalePlane[uint16, uint16](d, s, from, to)
		case from > 8:
			rescalePlane[uint16, uint8](d, s, from, to)
		case to > 8:
			rescalePlane[uint8, uint16](d, s, from, to)
		default:
			rescalePlane[uint8, uint8](d, s, from, to)
		}
	}
	return dst, nil
}

func rescalePlane[S, D pixbuf.Sample](dst, src *pixbuf.Plane, from, to int) {
	for y := range src.Height() {
		s := pixbuf.Row[S](src, y)
		d := pixbuf.Row[D](dst, y)
		if to < from {
			shift := from - to
			for x, v := range s {
				d[x] = D(int(v) >> shift)
			}
			continue
		}
		for x, v := range s {
			d[x] = D(Replicate(int(v), from, to))
		}
	}
}

// Replicate widens a from-bit sample to to bits by repeating its bit
// pattern, e.g. v10 = v8<<2 | v8>>6.
func Replicate(v, from, to int) int {
	if to <= from || from <= 0 {
		return v
	}
	out := v << (to - from)
	for shift := to - 2*from; ; shift -= from {
		if shift >= 0 {
			out |= v << shift
			continue
		}
		out |= v >> -shift
		break
	}
	return out
}
