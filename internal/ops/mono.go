// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ops

import (
	"github.com/gogpu/colorconv/colorstate"
	"github.com/gogpu/colorconv/conv"
	"github.com/gogpu/colorconv/pixbuf"
)

// MonoToYCbCr420 adds neutral chroma planes to a monochrome image.
type MonoToYCbCr420 struct{}

// Name implements conv.Operator.
func (MonoToYCbCr420) Name() string { return "mono_to_ycbcr420" }

// ReachableStates implements conv.Operator.
func (MonoToYCbCr420) ReachableStates(in, target colorstate.State, _ conv.Options) []conv.Candidate {
	if in.Colorspace != colorstate.ColorspaceMonochrome {
		return nil
	}
	out := in
	out.Colorspace = colorstate.ColorspaceYCbCr
	out.Chroma = colorstate.Chroma420
	if target.Colorspace == colorstate.ColorspaceYCbCr {
		out.Colorimetry.MatrixCoefficients = target.Colorimetry.MatrixCoefficients
	}
	if !neutralChroma(out.Colorimetry.MatrixCoefficients) {
		return nil
	}
	return candidates(out, conv.CostOptimized)
}

// Apply implements conv.Operator.
func (op MonoToYCbCr420) Apply(img *pixbuf.Image, in, out colorstate.State, _ conv.Options) (*pixbuf.Image, error) {
	if err := checkInput(op.Name(), img, in); err != nil {
		return nil, err
	}
	dst, err := allocate(op.Name(), img, out)
	if err != nil {
		return nil, err
	}
	copyChannels(dst, img, pixbuf.ChannelY)
	if in.HasAlpha {
		copyChannels(dst, img, pixbuf.ChannelAlpha)
	}
	half := 1 << (out.BitsPerPixel - 1)
	for _, ch := range []pixbuf.Channel{pixbuf.ChannelCb, pixbuf.ChannelCr} {
		p := dst.Plane(ch)
		if p.BitDepth() > 8 {
			fillPlane[uint16](p, uint16(half))
		} else {
			fillPlane[uint8](p, uint8(half))
		}
	}
	return dst, nil
}

// neutralChroma reports whether Y under matrix m is luma and half-range
// chroma is gray. GBR stores green in Y; YCgCo-R offsets its chroma.
func neutralChroma(m colorstate.MatrixCoefficients) bool {
	return m != colorstate.MatrixIdentity && m != colorstate.MatrixYCgCoRe
}

func fillPlane[T pixbuf.Sample](p *pixbuf.Plane, v T) {
	for _, row := range pixbuf.Rows[T](p) {
		for x := range row {
			row[x] = v
		}
	}
}

// YCbCrToMono keeps the luma plane of a YCbCr image.
type YCbCrToMono struct{}

// Name implements conv.Operator.
func (YCbCrToMono) Name() string { return "ycbcr_to_mono" }

// ReachableStates implements conv.Operator.
func (YCbCrToMono) ReachableStates(in, target colorstate.State, _ conv.Options) []conv.Candidate {
	if in.Colorspace != colorstate.ColorspaceYCbCr {
		return nil
	}
	if !neutralChroma(in.Colorimetry.MatrixCoefficients) {
		return nil
	}
	out := in
	out.Colorspace = colorstate.ColorspaceMonochrome
	out.Chroma = colorstate.ChromaMonochrome
	if target.Colorspace == colorstate.ColorspaceMonochrome {
		out.Colorimetry.MatrixCoefficients = target.Colorimetry.MatrixCoefficients
	}
	return candidates(out, conv.CostTrivial)
}

// Apply implements conv.Operator.
func (op YCbCrToMono) Apply(img *pixbuf.Image, in, out colorstate.State, _ conv.Options) (*pixbuf.Image, error) {
	if err := checkInput(op.Name(), img, in); err != nil {
		return nil, err
	}
	dst, err := allocate(op.Name(), img, out)
	if err != nil {
		return nil, err
	}
	copyChannels(dst, img, pixbuf.ChannelY)
	if in.HasAlpha {
		copyChannels(dst, img, pixbuf.ChannelAlpha)
	}
	return dst, nil
}

// MonoToRGB replicates full-range luma into the R, G and B planes.
type MonoToRGB struct{}

// Name implements conv.Operator.
func (MonoToRGB) Name() string { return "mono_to_rgb" }

// ReachableStates implements conv.Operator.
func (MonoToRGB) ReachableStates(in, target colorstate.State, _ conv.Options) []conv.Candidate {
	if in.Colorspace != colorstate.ColorspaceMonochrome || !in.Colorimetry.FullRange() {
		return nil
	}
	out := in
	out.Colorspace = colorstate.ColorspaceRGB
	out.Chroma = colorstate.Chroma444
	if target.Colorspace == colorstate.ColorspaceRGB {
		out.Colorimetry.MatrixCoefficients = target.Colorimetry.MatrixCoefficients
	}
	return candidates(out, conv.CostOptimized)
}

// Apply implements conv.Operator.
func (op MonoToRGB) Apply(img *pixbuf.Image, in, out colorstate.State, _ conv.Options) (*pixbuf.Image, error) {
	if err := checkInput(op.Name(), img, in); err != nil {
		return nil, err
	}
	dst, err := allocate(op.Name(), img, out)
	if err != nil {
		return nil, err
	}
	y := img.Plane(pixbuf.ChannelY)
	for _, ch := range []pixbuf.Channel{pixbuf.ChannelR, pixbuf.ChannelG, pixbuf.ChannelB} {
		copyPlane(dst.Plane(ch), y)
	}
	if in.HasAlpha {
		copyChannels(dst, img, pixbuf.ChannelAlpha)
	}
	return dst, nil
}
