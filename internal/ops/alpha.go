// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ops

import (
	"github.com/gogpu/colorconv/colorstate"
	"github.com/gogpu/colorconv/conv"
	"github.com/gogpu/colorconv/pixbuf"
)

// DropAlpha discards the alpha plane of a planar image.
type DropAlpha struct{}

// Name implements conv.Operator.
func (DropAlpha) Name() string { return "drop_alpha" }

// ReachableStates implements conv.Operator.
func (DropAlpha) ReachableStates(in, target colorstate.State, opts conv.Options) []conv.Candidate {
	if !isPlanar(in) || !in.HasAlpha || target.HasAlpha {
		return nil
	}
	if opts.AlphaComposition != conv.CompositionNone {
		return nil
	}
	out := in
	out.HasAlpha = false
	return candidates(out, conv.CostTrivial)
}

// Apply implements conv.Operator.
func (op DropAlpha) Apply(img *pixbuf.Image, in, out colorstate.State, _ conv.Options) (*pixbuf.Image, error) {
	if err := checkInput(op.Name(), img, in); err != nil {
		return nil, err
	}
	dst, err := allocate(op.Name(), img, out)
	if err != nil {
		return nil, err
	}
	copyChannels(dst, img, pixbuf.LayoutChannels(out.Colorspace, out.Chroma, false)...)
	return dst, nil
}

// FlattenAlpha composites a planar image over a solid color or a
// checkerboard and removes its alpha plane. The blend runs in RGB 4:4:4;
// Convert performs the nested conversions into and out of that layout.
// The result is never marked as premultiplied.
type FlattenAlpha struct {
	Convert ConvertFunc
}

// Name implements conv.Operator.
func (FlattenAlpha) Name() string { return "flatten_alpha" }

// ReachableStates implements conv.Operator.
func (FlattenAlpha) ReachableStates(in, target colorstate.State, opts conv.Options) []conv.Candidate {
	if !isPlanar(in) || !in.HasAlpha || target.HasAlpha {
		return nil
	}
	if opts.AlphaComposition == conv.CompositionNone {
		return nil
	}
	out := in
	out.HasAlpha = false
	return candidates(out, conv.CostUnoptimized)
}

// Apply implements conv.Operator.
func (op FlattenAlpha) Apply(img *pixbuf.Image, in, out colorstate.State, opts conv.Options) (*pixbuf.Image, error) {
	if err := checkInput(op.Name(), img, in); err != nil {
		return nil, err
	}
	if op.Convert == nil {
		return nil, conv.Internalf(op.Name(), "no nested converter")
	}

	rgbAlpha := colorstate.State{
		Colorspace:   colorstate.ColorspaceRGB,
		Chroma:       colorstate.Chroma444,
		HasAlpha:     true,
		BitsPerPixel: in.BitsPerPixel,
		Colorimetry:  in.Colorimetry,
	}
	rgbOpaque := rgbAlpha
	rgbOpaque.HasAlpha = false

	src := img
	if !in.Equal(rgbAlpha) {
		var err error
		src, err = op.Convert(img, in, rgbAlpha, opts)
		if err != nil {
			return nil, err
		}
	}

	flat, err := allocate(op.Name(), src, rgbOpaque)
	if err != nil {
		if src != img {
			pixbuf.Release(src)
		}
		return nil, err
	}
	flat.CopyMetadataFrom(src)
	blendRGB(flat, src, opts)
	flat.Metadata().PremultipliedAlpha = false
	if src != img {
		pixbuf.Release(src)
	}

	if out.Equal(rgbOpaque) {
		return flat, nil
	}
	res, err := op.Convert(flat, rgbOpaque, out, opts)
	if err != nil {
		pixbuf.Release(flat)
		return nil, err
	}
	if res != flat {
		pixbuf.Release(flat)
	}
	return res, nil
}

// blendRGB composites the R, G, B planes of src over the background.
func blendRGB(dst, src *pixbuf.Image, opts conv.Options) {
	alpha := src.Plane(pixbuf.ChannelAlpha)
	premul := src.Metadata().PremultipliedAlpha
	for i, ch := range []pixbuf.Channel{pixbuf.ChannelR, pixbuf.ChannelG, pixbuf.ChannelB} {
		bg := backgroundChannel(opts, i)
		if alpha.BitDepth() > 8 {
			blendPlane[uint16](dst.Plane(ch), src.Plane(ch), alpha, bg, premul, opts)
		} else {
			blendPlane[uint8](dst.Plane(ch), src.Plane(ch), alpha, bg, premul, opts)
		}
	}
}

// backgroundChannel returns channel i (R, G, B) of both background colors.
func backgroundChannel(opts conv.Options, i int) [2]uint16 {
	pick := func(c conv.Color16) uint16 {
		switch i {
		case 0:
			return c.R
		case 1:
			return c.G
		default:
			return c.B
		}
	}
	return [2]uint16{pick(opts.BackgroundColor), pick(opts.SecondaryBackgroundColor)}
}

func blendPlane[T pixbuf.Sample](dst, src, alpha *pixbuf.Plane, bg [2]uint16, premul bool, opts conv.Options) {
	bpp := src.BitDepth()
	maxVal := src.MaxValue()
	half := maxVal / 2
	bg0 := int(bg[0] >> (16 - bpp))
	bg1 := int(bg[1] >> (16 - bpp))

	size := opts.CheckerboardSquareSize
	if size <= 0 {
		size = 1
	}
	checker := opts.AlphaComposition == conv.CompositionCheckerboard

	for y := range src.Height() {
		s := pixbuf.Row[T](src, y)
		a := pixbuf.Row[T](alpha, y)
		d := pixbuf.Row[T](dst, y)
		for x := range s {
			b := bg0
			if checker && ((x/size)+(y/size))%2 != 0 {
				b = bg1
			}
			av := int(a[x])
			sv := int(s[x])
			var v int
			if premul {
				v = sv + (b*(maxVal-av)+half)/maxVal
			} else {
				v = (sv*av + b*(maxVal-av) + half) / maxVal
			}
			d[x] = T(clampInt(v, maxVal))
		}
	}
}
