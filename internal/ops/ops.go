// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package ops implements the built-in conversion operators.
//
// Every operator is a stateless value. Multi-variant families (nearest,
// average, bilinear) are separate values so the pipeline can weigh them
// against each other by cost. Sample-width specific kernels are generic over
// pixbuf.Sample and are instantiated once per plane, outside the pixel loop.
package ops

import (
	"github.com/gogpu/colorconv/colorstate"
	"github.com/gogpu/colorconv/conv"
	"github.com/gogpu/colorconv/pixbuf"
)

// ConvertFunc converts img from state in to target through a pipeline.
// Operators that composite in another layout use it for their nested
// conversions.
type ConvertFunc func(img *pixbuf.Image, in, target colorstate.State, opts conv.Options) (*pixbuf.Image, error)

// Default returns the built-in operators in registry order. convert backs
// alpha flattening; when it is nil that operator is omitted.
func Default(convert ConvertFunc) []conv.Operator {
	ops := []conv.Operator{
		DropAlpha{},
	}
	if convert != nil {
		ops = append(ops, FlattenAlpha{Convert: convert})
	}
	ops = append(ops,
		ChromaDownsample{Chroma: colorstate.Chroma420, Algorithm: conv.DownsamplingAverage},
		ChromaDownsample{Chroma: colorstate.Chroma422, Algorithm: conv.DownsamplingAverage},
		ChromaDownsample{Chroma: colorstate.Chroma420, Algorithm: conv.DownsamplingNearestNeighbor},
		ChromaDownsample{Chroma: colorstate.Chroma422, Algorithm: conv.DownsamplingNearestNeighbor},
		ChromaUpsample{Chroma: colorstate.Chroma420, Algorithm: conv.UpsamplingBilinear},
		ChromaUpsample{Chroma: colorstate.Chroma422, Algorithm: conv.UpsamplingBilinear},
		ChromaUpsample{Chroma: colorstate.Chroma420, Algorithm: conv.UpsamplingNearestNeighbor},
		ChromaUpsample{Chroma: colorstate.Chroma422, Algorithm: conv.UpsamplingNearestNeighbor},
		RGBToYCbCr{},
		YCbCrToRGB{},
		RGBToInterleaved{},
		InterleavedToRGB{},
		RGBToRRGGBB{},
		RRGGBBToRGB{},
		SwapEndianness{},
		ExpandBitDepth{},
		ReduceBitDepth{},
		SharpYCbCr420{},
		MonoToYCbCr420{},
		YCbCrToMono{},
		MonoToRGB{},
	)
	return ops
}

// planeDepth returns the bit depth a plane of ch carries in state s.
// YCgCo-R chroma planes carry one extra bit.
func planeDepth(s colorstate.State, ch pixbuf.Channel) int {
	if s.Colorspace == colorstate.ColorspaceYCbCr &&
		s.Colorimetry.MatrixCoefficients == colorstate.MatrixYCgCoRe &&
		(ch == pixbuf.ChannelCb || ch == pixbuf.ChannelCr) {
		return s.BitsPerPixel + 1
	}
	return s.BitsPerPixel
}

func isChromaChannel(ch pixbuf.Channel) bool {
	return ch == pixbuf.ChannelCb || ch == pixbuf.ChannelCr
}

// isPlanar reports whether s stores one plane per channel.
func isPlanar(s colorstate.State) bool {
	return s.Chroma.IsPlanar()
}

// checkInput re-validates the live image against the state handed to Apply.
func checkInput(op string, img *pixbuf.Image, in colorstate.State) error {
	if img == nil {
		return conv.Internalf(op, "nil image")
	}
	if img.Colorspace() != in.Colorspace || img.Chroma() != in.Chroma {
		return conv.Internalf(op, "image is %v/%v, state is %v/%v",
			img.Colorspace(), img.Chroma(), in.Colorspace, in.Chroma)
	}

	w, h := img.Width(), img.Height()
	if in.Chroma.IsInterleaved() {
		p := img.Plane(pixbuf.ChannelInterleaved)
		if p == nil {
			return conv.Internalf(op, "missing interleaved plane")
		}
		if p.Width() != w || p.Height() != h {
			return conv.Internalf(op, "interleaved plane is %dx%d, image is %dx%d", p.Width(), p.Height(), w, h)
		}
		if p.BitDepth() != in.BitsPerPixel {
			return conv.Internalf(op, "interleaved plane has %d bits, state has %d", p.BitDepth(), in.BitsPerPixel)
		}
		return nil
	}

	for _, ch := range pixbuf.LayoutChannels(in.Colorspace, in.Chroma, in.HasAlpha) {
		p := img.Plane(ch)
		if p == nil {
			return conv.Internalf(op, "missing %v plane", ch)
		}
		pw, ph := w, h
		if isChromaChannel(ch) {
			pw, ph = in.Chroma.ChromaSize(w, h)
		}
		if p.Width() != pw || p.Height() != ph {
			return conv.Internalf(op, "%v plane is %dx%d, want %dx%d", ch, p.Width(), p.Height(), pw, ph)
		}
		if want := planeDepth(in, ch); p.BitDepth() != want {
			return conv.Internalf(op, "%v plane has %d bits, want %d", ch, p.BitDepth(), want)
		}
	}
	if !in.HasAlpha && img.HasChannel(pixbuf.ChannelAlpha) {
		return conv.Internalf(op, "alpha plane present but state has no alpha")
	}
	return nil
}

// allocate creates the output image for state out with every plane the
// layout needs, sized like src and bound by src's limits.
func allocate(op string, src *pixbuf.Image, out colorstate.State) (*pixbuf.Image, error) {
	w, h := src.Width(), src.Height()
	img, err := pixbuf.New(w, h, out.Colorspace, out.Chroma, pixbuf.WithLimits(src.Limits()))
	if err != nil {
		return nil, conv.Internal(op, err)
	}
	for _, ch := range pixbuf.LayoutChannels(out.Colorspace, out.Chroma, out.HasAlpha) {
		pw, ph := w, h
		if isChromaChannel(ch) {
			pw, ph = out.Chroma.ChromaSize(w, h)
		}
		if _, err := img.AddPlane(ch, pw, ph, planeDepth(out, ch)); err != nil {
			pixbuf.Release(img)
			return nil, conv.Internal(op, err)
		}
	}
	return img, nil
}

// copyPlane copies the samples of src into dst of identical geometry.
func copyPlane(dst, src *pixbuf.Plane) {
	for y := range src.Height() {
		copy(dst.Row(y), src.Row(y))
	}
}

// copyChannels copies the listed planes from src to dst.
func copyChannels(dst, src *pixbuf.Image, chans ...pixbuf.Channel) {
	for _, ch := range chans {
		copyPlane(dst.Plane(ch), src.Plane(ch))
	}
}

// relabel returns the colorimetry of a colorspace-changing step: matrix and
// range follow the target when the target is in the produced colorspace.
func relabel(in, target colorstate.State, produced colorstate.Colorspace) colorstate.Colorimetry {
	c := in.Colorimetry
	if target.Colorspace == produced {
		c.MatrixCoefficients = target.Colorimetry.MatrixCoefficients
		c.Range = target.Colorimetry.Range
	}
	return c
}

// clampInt limits v to [0, maxVal].
func clampInt(v, maxVal int) int {
	if v < 0 {
		return 0
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// roundClamp rounds f to the nearest integer and limits it to [0, maxVal].
func roundClamp(f float64, maxVal int) int {
	if f <= 0 {
		return 0
	}
	return clampInt(int(f+0.5), maxVal)
}

func candidates(s colorstate.State, cost conv.Cost) []conv.Candidate {
	return []conv.Candidate{{State: s, Cost: cost}}
}
