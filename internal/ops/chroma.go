// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ops

import (
	"fmt"

	"github.com/gogpu/colorconv/colorstate"
	"github.com/gogpu/colorconv/conv"
	"github.com/gogpu/colorconv/pixbuf"
)

// resamplable reports whether the chroma planes of s can be resampled.
// YCgCo-R keeps its lossless chroma at full resolution.
func resamplable(s colorstate.State) bool {
	return s.Colorspace == colorstate.ColorspaceYCbCr &&
		s.Colorimetry.MatrixCoefficients != colorstate.MatrixYCgCoRe
}

// ChromaDownsample reduces YCbCr 4:4:4 to 4:2:0 or 4:2:2.
type ChromaDownsample struct {
	// Chroma is the produced layout, Chroma420 or Chroma422.
	Chroma colorstate.Chroma

	// Algorithm is DownsamplingAverage or DownsamplingNearestNeighbor.
	Algorithm conv.ChromaDownsampling
}

// Name implements conv.Operator.
func (op ChromaDownsample) Name() string {
	return fmt.Sprintf("ycbcr444_to_%s_%s", op.Chroma, op.Algorithm)
}

func (op ChromaDownsample) cost() conv.Cost {
	if op.Algorithm == conv.DownsamplingNearestNeighbor {
		return conv.CostOptimized
	}
	return conv.CostUnoptimized
}

// ReachableStates implements conv.Operator.
func (op ChromaDownsample) ReachableStates(in, _ colorstate.State, opts conv.Options) []conv.Candidate {
	if !resamplable(in) || in.Chroma != colorstate.Chroma444 {
		return nil
	}
	if !opts.AllowsDownsampling(op.Algorithm) {
		return nil
	}
	out := in
	out.Chroma = op.Chroma
	return candidates(out, op.cost())
}

// Apply implements conv.Operator.
func (op ChromaDownsample) Apply(img *pixbuf.Image, in, out colorstate.State, _ conv.Options) (*pixbuf.Image, error) {
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

	vertical := op.Chroma == colorstate.Chroma420
	for _, ch := range []pixbuf.Channel{pixbuf.ChannelCb, pixbuf.ChannelCr} {
		s, d := img.Plane(ch), dst.Plane(ch)
		switch {
		case op.Algorithm == conv.DownsamplingNearestNeighbor && s.BitDepth() > 8:
			downsampleNearest[uint16](d, s, vertical)
		case op.Algorithm == conv.DownsamplingNearestNeighbor:
			downsampleNearest[uint8](d, s, vertical)
		case s.BitDepth() > 8:
			downsampleAverage[uint16](d, s, vertical)
		default:
			downsampleAverage[uint8](d, s, vertical)
		}
	}
	return dst, nil
}

// downsampleAverage box-averages 2x2 (vertical) or 2x1 blocks. Blocks cut by
// an odd edge average the samples they have; a lone corner is copied.
func downsampleAverage[T pixbuf.Sample](dst, src *pixbuf.Plane, vertical bool) {
	sw, sh := src.Width(), src.Height()
	for cy := range dst.Height() {
		y0 := cy
		y1 := cy
		if vertical {
			y0 = 2 * cy
			y1 = min(y0+1, sh-1)
		}
		r0 := pixbuf.Row[T](src, y0)
		r1 := pixbuf.Row[T](src, y1)
		d := pixbuf.Row[T](dst, cy)
		for cx := range d {
			x0 := 2 * cx
			x1 := x0 + 1
			hasX := x1 < sw
			hasY := y1 != y0
			switch {
			case hasX && hasY:
				d[cx] = T((int(r0[x0]) + int(r0[x1]) + int(r1[x0]) + int(r1[x1]) + 2) >> 2)
			case hasX:
				d[cx] = T((int(r0[x0]) + int(r0[x1]) + 1) >> 1)
			case hasY:
				d[cx] = T((int(r0[x0]) + int(r1[x0]) + 1) >> 1)
			default:
				d[cx] = r0[x0]
			}
		}
	}
}

// downsampleNearest keeps the top-left sample of each block.
func downsampleNearest[T pixbuf.Sample](dst, src *pixbuf.Plane, vertical bool) {
	for cy := range dst.Height() {
		sy := cy
		if vertical {
			sy = 2 * cy
		}
		s := pixbuf.Row[T](src, sy)
		d := pixbuf.Row[T](dst, cy)
		for cx := range d {
			d[cx] = s[2*cx]
		}
	}
}

// ChromaUpsample expands YCbCr 4:2:0 or 4:2:2 to 4:4:4.
type ChromaUpsample struct {
	// Chroma is the consumed layout, Chroma420 or Chroma422.
	Chroma colorstate.Chroma

	// Algorithm is UpsamplingBilinear or UpsamplingNearestNeighbor.
	Algorithm conv.ChromaUpsampling
}

// Name implements conv.Operator.
func (op ChromaUpsample) Name() string {
	return fmt.Sprintf("ycbcr%s_to_444_%s", op.Chroma, op.Algorithm)
}

func (op ChromaUpsample) cost() conv.Cost {
	if op.Algorithm == conv.UpsamplingNearestNeighbor {
		return conv.CostOptimized
	}
	return conv.CostUnoptimized
}

// ReachableStates implements conv.Operator.
func (op ChromaUpsample) ReachableStates(in, _ colorstate.State, opts conv.Options) []conv.Candidate {
	if !resamplable(in) || in.Chroma != op.Chroma {
		return nil
	}
	if !opts.AllowsUpsampling(op.Algorithm) {
		return nil
	}
	out := in
	out.Chroma = colorstate.Chroma444
	return candidates(out, op.cost())
}

// Apply implements conv.Operator.
func (op ChromaUpsample) Apply(img *pixbuf.Image, in, out colorstate.State, _ conv.Options) (*pixbuf.Image, error) {
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

	vertical := op.Chroma == colorstate.Chroma420
	for _, ch := range []pixbuf.Channel{pixbuf.ChannelCb, pixbuf.ChannelCr} {
		s, d := img.Plane(ch), dst.Plane(ch)
		switch {
		case op.Algorithm == conv.UpsamplingNearestNeighbor && s.BitDepth() > 8:
			upsampleNearest[uint16](d, s, vertical)
		case op.Algorithm == conv.UpsamplingNearestNeighbor:
			upsampleNearest[uint8](d, s, vertical)
		case s.BitDepth() > 8:
			upsampleBilinear[uint16](d, s, vertical)
		default:
			upsampleBilinear[uint8](d, s, vertical)
		}
	}
	return dst, nil
}

// neighbors returns the two chroma positions bracketing full-resolution
// position x and whether the nearer one is first. Even positions sit
// between c-1 and c, odd positions between c and c+1; both are clamped.
func neighbors(x, n int) (near, far int) {
	c := x >> 1
	near = c
	if x&1 == 0 {
		far = max(c-1, 0)
	} else {
		far = min(c+1, n-1)
	}
	return near, far
}

// upsampleBilinear interpolates with 3/4 and 1/4 taps. Interior samples
// weigh (9, 3, 3, 1)/16, edge samples (3, 1)/4, and corners are copied.
func upsampleBilinear[T pixbuf.Sample](dst, src *pixbuf.Plane, vertical bool) {
	cw, ch := src.Width(), src.Height()
	for y := range dst.Height() {
		ny, fy := y, y
		if vertical {
			ny, fy = neighbors(y, ch)
		}
		rn := pixbuf.Row[T](src, ny)
		rf := pixbuf.Row[T](src, fy)
		d := pixbuf.Row[T](dst, y)
		for x := range d {
			nx, fx := neighbors(x, cw)
			if vertical {
				a := int(rn[nx])
				b := int(rn[fx])
				c := int(rf[nx])
				e := int(rf[fx])
				d[x] = T((9*a + 3*b + 3*c + e + 8) >> 4)
			} else {
				d[x] = T((3*int(rn[nx]) + int(rn[fx]) + 2) >> 2)
			}
		}
	}
}

// upsampleNearest replicates each chroma sample over its block.
func upsampleNearest[T pixbuf.Sample](dst, src *pixbuf.Plane, vertical bool) {
	for y := range dst.Height() {
		sy := y
		if vertical {
			sy = y >> 1
		}
		s := pixbuf.Row[T](src, sy)
		d := pixbuf.Row[T](dst, y)
		for x := range d {
			d[x] = s[x>>1]
		}
	}
}
