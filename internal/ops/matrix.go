// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ops

import (
	"github.com/gogpu/colorconv/colorstate"
	"github.com/gogpu/colorconv/conv"
	"github.com/gogpu/colorconv/pixbuf"
)

// Limited range scales luma by 219/256 and chroma by 224/256 of the full
// code value range.
const (
	limitedLumaScale   = 219.0 / 256.0
	limitedChromaScale = 224.0 / 256.0
)

// matrixSupported reports whether the RGB/YCbCr transform can use matrix m
// at the given range and depth. Integer transforms are full range only.
func matrixSupported(m colorstate.MatrixCoefficients, fullRange bool, bpp int) bool {
	switch m {
	case colorstate.MatrixIdentity, colorstate.MatrixYCgCo:
		return fullRange
	case colorstate.MatrixYCgCoRe:
		return fullRange && bpp <= 15
	case colorstate.MatrixYCgCoRo:
		return false
	default:
		return true
	}
}

// RGBToYCbCr transforms planar RGB 4:4:4 into YCbCr 4:4:4.
type RGBToYCbCr struct{}

// Name implements conv.Operator.
func (RGBToYCbCr) Name() string { return "rgb_to_ycbcr" }

// ReachableStates implements conv.Operator.
func (RGBToYCbCr) ReachableStates(in, target colorstate.State, _ conv.Options) []conv.Candidate {
	if in.Colorspace != colorstate.ColorspaceRGB || in.Chroma != colorstate.Chroma444 {
		return nil
	}
	out := in
	out.Colorspace = colorstate.ColorspaceYCbCr
	out.Colorimetry = relabel(in, target, colorstate.ColorspaceYCbCr)
	if !matrixSupported(out.Colorimetry.MatrixCoefficients, out.Colorimetry.FullRange(), out.BitsPerPixel) {
		return nil
	}
	return candidates(out, conv.CostUnoptimized)
}

// Apply implements conv.Operator.
func (op RGBToYCbCr) Apply(img *pixbuf.Image, in, out colorstate.State, _ conv.Options) (*pixbuf.Image, error) {
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

	r, g, b := img.Plane(pixbuf.ChannelR), img.Plane(pixbuf.ChannelG), img.Plane(pixbuf.ChannelB)
	py, pcb, pcr := dst.Plane(pixbuf.ChannelY), dst.Plane(pixbuf.ChannelCb), dst.Plane(pixbuf.ChannelCr)
	cm := out.Colorimetry
	wide := in.BitsPerPixel > 8

	switch cm.MatrixCoefficients {
	case colorstate.MatrixIdentity:
		copyPlane(py, g)
		copyPlane(pcb, b)
		copyPlane(pcr, r)
	case colorstate.MatrixYCgCo:
		if wide {
			rgbToYCgCo[uint16](py, pcb, pcr, r, g, b)
		} else {
			rgbToYCgCo[uint8](py, pcb, pcr, r, g, b)
		}
	case colorstate.MatrixYCgCoRe:
		rgbToYCgCoR(py, pcb, pcr, r, g, b)
	default:
		coeffs := colorstate.RGBToYCbCr(cm.MatrixCoefficients, cm.ColorPrimaries)
		if wide {
			rgbToYCbCr[uint16](py, pcb, pcr, r, g, b, coeffs, cm.FullRange())
		} else {
			rgbToYCbCr[uint8](py, pcb, pcr, r, g, b, coeffs, cm.FullRange())
		}
	}
	return dst, nil
}

func rgbToYCbCr[T pixbuf.Sample](py, pcb, pcr, pr, pg, pb *pixbuf.Plane, c colorstate.RGBToYCbCrCoefficients, full bool) {
	bpp := pr.BitDepth()
	maxVal := pr.MaxValue()
	half := float64(int(1) << (bpp - 1))
	lumaScale, chromaScale, lumaOffset := 1.0, 1.0, 0.0
	if !full {
		lumaScale, chromaScale = limitedLumaScale, limitedChromaScale
		lumaOffset = float64(int(16) << (bpp - 8))
	}

	for y := range pr.Height() {
		rr, gr, br := pixbuf.Row[T](pr, y), pixbuf.Row[T](pg, y), pixbuf.Row[T](pb, y)
		yr, cbr, crr := pixbuf.Row[T](py, y), pixbuf.Row[T](pcb, y), pixbuf.Row[T](pcr, y)
		for x := range rr {
			r, g, b := float64(rr[x]), float64(gr[x]), float64(br[x])
			yv := c[0][0]*r + c[0][1]*g + c[0][2]*b
			cb := c[1][0]*r + c[1][1]*g + c[1][2]*b
			cr := c[2][0]*r + c[2][1]*g + c[2][2]*b
			yr[x] = T(roundClamp(yv*lumaScale+lumaOffset, maxVal))
			cbr[x] = T(roundClamp(cb*chromaScale+half, maxVal))
			crr[x] = T(roundClamp(cr*chromaScale+half, maxVal))
		}
	}
}

// rgbToYCgCo computes the YCgCo transform at four times the sample scale
// and narrows with round-half-up:
//
//	Y  = (R + 2G + B + 2) >> 2
//	Cg = (-R + 2G - B + 2) >> 2 + half
//	Co = (2R - 2B + 2) >> 2 + half
func rgbToYCgCo[T pixbuf.Sample](py, pcg, pco, pr, pg, pb *pixbuf.Plane) {
	maxVal := pr.MaxValue()
	half := 1 << (pr.BitDepth() - 1)
	for y := range pr.Height() {
		rr, gr, br := pixbuf.Row[T](pr, y), pixbuf.Row[T](pg, y), pixbuf.Row[T](pb, y)
		yr, cgr, cor := pixbuf.Row[T](py, y), pixbuf.Row[T](pcg, y), pixbuf.Row[T](pco, y)
		for x := range rr {
			r, g, b := int(rr[x]), int(gr[x]), int(br[x])
			yr[x] = T(clampInt((r+2*g+b+2)>>2, maxVal))
			cgr[x] = T(clampInt(((-r+2*g-b+2)>>2)+half, maxVal))
			cor[x] = T(clampInt(((2*r-2*b+2)>>2)+half, maxVal))
		}
	}
}

// rgbToYCgCoR is the reversible YCgCo-R lifting transform. Co and Cg are
// stored with an offset of 1<<bpp in planes one bit deeper than luma.
func rgbToYCgCoR(py, pcg, pco, pr, pg, pb *pixbuf.Plane) {
	offset := 1 << pr.BitDepth()
	n := pr.Width()
	r, g, b := make([]int, n), make([]int, n), make([]int, n)
	yv, cg, co := make([]int, n), make([]int, n), make([]int, n)
	for y := range pr.Height() {
		loadRow(r, pr, y)
		loadRow(g, pg, y)
		loadRow(b, pb, y)
		for x := range n {
			c := r[x] - b[x]
			t := b[x] + (c >> 1)
			gg := g[x] - t
			yv[x] = t + (gg >> 1)
			co[x] = c + offset
			cg[x] = gg + offset
		}
		storeRow(py, y, yv)
		storeRow(pcg, y, cg)
		storeRow(pco, y, co)
	}
}

// YCbCrToRGB transforms YCbCr 4:4:4 into planar RGB 4:4:4.
type YCbCrToRGB struct{}

// Name implements conv.Operator.
func (YCbCrToRGB) Name() string { return "ycbcr_to_rgb" }

// ReachableStates implements conv.Operator.
func (YCbCrToRGB) ReachableStates(in, target colorstate.State, _ conv.Options) []conv.Candidate {
	if in.Colorspace != colorstate.ColorspaceYCbCr || in.Chroma != colorstate.Chroma444 {
		return nil
	}
	if !matrixSupported(in.Colorimetry.MatrixCoefficients, in.Colorimetry.FullRange(), in.BitsPerPixel) {
		return nil
	}
	out := in
	out.Colorspace = colorstate.ColorspaceRGB
	out.Colorimetry = relabel(in, target, colorstate.ColorspaceRGB)
	return candidates(out, conv.CostUnoptimized)
}

// Apply implements conv.Operator.
func (op YCbCrToRGB) Apply(img *pixbuf.Image, in, out colorstate.State, _ conv.Options) (*pixbuf.Image, error) {
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

	py, pcb, pcr := img.Plane(pixbuf.ChannelY), img.Plane(pixbuf.ChannelCb), img.Plane(pixbuf.ChannelCr)
	r, g, b := dst.Plane(pixbuf.ChannelR), dst.Plane(pixbuf.ChannelG), dst.Plane(pixbuf.ChannelB)
	cm := in.Colorimetry
	wide := in.BitsPerPixel > 8

	switch cm.MatrixCoefficients {
	case colorstate.MatrixIdentity:
		copyPlane(g, py)
		copyPlane(b, pcb)
		copyPlane(r, pcr)
	case colorstate.MatrixYCgCo:
		if wide {
			ycgcoToRGB[uint16](r, g, b, py, pcb, pcr)
		} else {
			ycgcoToRGB[uint8](r, g, b, py, pcb, pcr)
		}
	case colorstate.MatrixYCgCoRe:
		ycgcoRToRGB(r, g, b, py, pcb, pcr)
	default:
		coeffs := colorstate.YCbCrToRGB(cm.MatrixCoefficients, cm.ColorPrimaries)
		if wide {
			ycbcrToRGB[uint16](r, g, b, py, pcb, pcr, coeffs, cm.FullRange())
		} else {
			ycbcrToRGB[uint8](r, g, b, py, pcb, pcr, coeffs, cm.FullRange())
		}
	}
	return dst, nil
}

func ycbcrToRGB[T pixbuf.Sample](pr, pg, pb, py, pcb, pcr *pixbuf.Plane, c colorstate.YCbCrToRGBCoefficients, full bool) {
	bpp := py.BitDepth()
	maxVal := py.MaxValue()
	half := float64(int(1) << (bpp - 1))
	lumaScale, chromaScale, lumaOffset := 1.0, 1.0, 0.0
	if !full {
		lumaScale, chromaScale = 1/limitedLumaScale, 1/limitedChromaScale
		lumaOffset = float64(int(16) << (bpp - 8))
	}

	for y := range py.Height() {
		yr, cbr, crr := pixbuf.Row[T](py, y), pixbuf.Row[T](pcb, y), pixbuf.Row[T](pcr, y)
		rr, gr, br := pixbuf.Row[T](pr, y), pixbuf.Row[T](pg, y), pixbuf.Row[T](pb, y)
		for x := range yr {
			yv := (float64(yr[x]) - lumaOffset) * lumaScale
			cb := (float64(cbr[x]) - half) * chromaScale
			cr := (float64(crr[x]) - half) * chromaScale
			rr[x] = T(roundClamp(yv+c.RCr*cr, maxVal))
			gr[x] = T(roundClamp(yv+c.GCb*cb+c.GCr*cr, maxVal))
			br[x] = T(roundClamp(yv+c.BCb*cb, maxVal))
		}
	}
}

// ycgcoToRGB inverts rgbToYCgCo:
//
//	t = Y - (Cg - half)
//	G = Y + (Cg - half)
//	R = t + (Co - half)
//	B = t - (Co - half)
func ycgcoToRGB[T pixbuf.Sample](pr, pg, pb, py, pcg, pco *pixbuf.Plane) {
	maxVal := py.MaxValue()
	half := 1 << (py.BitDepth() - 1)
	for y := range py.Height() {
		yr, cgr, cor := pixbuf.Row[T](py, y), pixbuf.Row[T](pcg, y), pixbuf.Row[T](pco, y)
		rr, gr, br := pixbuf.Row[T](pr, y), pixbuf.Row[T](pg, y), pixbuf.Row[T](pb, y)
		for x := range yr {
			yv := int(yr[x])
			cg := int(cgr[x]) - half
			co := int(cor[x]) - half
			t := yv - cg
			gr[x] = T(clampInt(yv+cg, maxVal))
			rr[x] = T(clampInt(t+co, maxVal))
			br[x] = T(clampInt(t-co, maxVal))
		}
	}
}

// ycgcoRToRGB inverts rgbToYCgCoR exactly.
func ycgcoRToRGB(pr, pg, pb, py, pcg, pco *pixbuf.Plane) {
	offset := 1 << py.BitDepth()
	maxVal := py.MaxValue()
	n := py.Width()
	yv, cg, co := make([]int, n), make([]int, n), make([]int, n)
	r, g, b := make([]int, n), make([]int, n), make([]int, n)
	for y := range py.Height() {
		loadRow(yv, py, y)
		loadRow(cg, pcg, y)
		loadRow(co, pco, y)
		for x := range n {
			gg := cg[x] - offset
			c := co[x] - offset
			t := yv[x] - (gg >> 1)
			g[x] = clampInt(gg+t, maxVal)
			b[x] = clampInt(t-(c>>1), maxVal)
			r[x] = clampInt(b[x]+c, maxVal)
		}
		storeRow(pr, y, r)
		storeRow(pg, y, g)
		storeRow(pb, y, b)
	}
}

// loadRow widens row y of p into dst.
func loadRow(dst []int, p *pixbuf.Plane, y int) {
	if p.BitDepth() > 8 {
		for x, v := range p.Row16(y) {
			dst[x] = int(v)
		}
		return
	}
	for x, v := range p.Row8(y) {
		dst[x] = int(v)
	}
}

// storeRow narrows src into row y of p.
func storeRow(p *pixbuf.Plane, y int, src []int) {
	if p.BitDepth() > 8 {
		row := p.Row16(y)
		for x := range row {
			row[x] = uint16(src[x])
		}
		return
	}
	row := p.Row8(y)
	for x := range row {
		row[x] = uint8(src[x])
	}
}
