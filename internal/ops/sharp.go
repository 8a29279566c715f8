// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ops

import (
	"github.com/gogpu/colorconv/colorstate"
	"github.com/gogpu/colorconv/conv"
	"github.com/gogpu/colorconv/internal/sharpyuv"
	"github.com/gogpu/colorconv/pixbuf"
)

// SharpYCbCr420 converts 8-bit planar RGB straight to YCbCr 4:2:0 with the
// iterative sharp kernel. It competes with the other downsamplers by cost
// unless the options restrict resampling to a different preferred
// algorithm.
type SharpYCbCr420 struct{}

// Name implements conv.Operator.
func (SharpYCbCr420) Name() string { return "rgb_to_ycbcr420_sharp" }

// ReachableStates implements conv.Operator.
func (SharpYCbCr420) ReachableStates(in, target colorstate.State, opts conv.Options) []conv.Candidate {
	if !sharpyuv.Available() || !opts.AllowsDownsampling(conv.DownsamplingSharp) {
		return nil
	}
	if !isPlanarRGB(in) || in.BitsPerPixel != 8 {
		return nil
	}
	out := in
	out.Colorspace = colorstate.ColorspaceYCbCr
	out.Chroma = colorstate.Chroma420
	out.Colorimetry = relabel(in, target, colorstate.ColorspaceYCbCr)
	switch out.Colorimetry.MatrixCoefficients {
	case colorstate.MatrixIdentity, colorstate.MatrixYCgCo, colorstate.MatrixYCgCoRe, colorstate.MatrixYCgCoRo:
		return nil
	}
	return candidates(out, conv.CostSlow)
}

// Apply implements conv.Operator.
func (op SharpYCbCr420) Apply(img *pixbuf.Image, in, out colorstate.State, _ conv.Options) (*pixbuf.Image, error) {
	if err := checkInput(op.Name(), img, in); err != nil {
		return nil, err
	}
	dst, err := allocate(op.Name(), img, out)
	if err != nil {
		return nil, err
	}
	if in.HasAlpha {
		copyChannels(dst, img, pixbuf.ChannelAlpha)
	}

	cm := out.Colorimetry
	w := colorstate.LumaWeights(cm.MatrixCoefficients, cm.ColorPrimaries)
	if !w.IsDefined() {
		w = colorstate.LumaWeights(colorstate.MatrixBT601, cm.ColorPrimaries)
	}
	m := sharpyuv.ComputeMatrix(w.Kr, w.Kb, cm.FullRange())
	tf := sharpyuv.TransferSRGB
	if in.Colorimetry.TransferCharacteristics == colorstate.TransferLinear {
		tf = sharpyuv.TransferLinear
	}

	err = sharpyuv.Convert(
		sharpPlane(img.Plane(pixbuf.ChannelR)),
		sharpPlane(img.Plane(pixbuf.ChannelG)),
		sharpPlane(img.Plane(pixbuf.ChannelB)),
		img.Width(), img.Height(),
		sharpPlane(dst.Plane(pixbuf.ChannelY)),
		sharpPlane(dst.Plane(pixbuf.ChannelCb)),
		sharpPlane(dst.Plane(pixbuf.ChannelCr)),
		m, tf,
	)
	if err != nil {
		pixbuf.Release(dst)
		return nil, conv.Internal(op.Name(), err)
	}
	return dst, nil
}

func sharpPlane(p *pixbuf.Plane) sharpyuv.Plane {
	return sharpyuv.Plane{Pix: p.Data(), Stride: p.Stride()}
}
