// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package sharpyuv converts 8-bit planar RGB to YCbCr 4:2:0 while
// minimizing chroma subsampling artifacts.
//
// The kernel estimates luma and chroma residuals in linear light and
// refines them iteratively so that the upsampled result approaches the
// source. It follows the libwebp sharpyuv algorithm.
package sharpyuv

import "errors"

const (
	numIterations = 4
	yuvFix        = 16
	yuvHalf       = 1 << (yuvFix - 1)

	// sfix extra bits of working precision over the 8-bit input.
	sfix      = 2
	workDepth = 8 + sfix
)

// ErrInvalidInput is returned for inconsistent plane geometry.
var ErrInvalidInput = errors.New("sharpyuv: invalid input")

// Available reports whether the sharp kernel can be used.
// The kernel is pure Go and always available.
func Available() bool {
	return available
}

var available = true

// Plane is a view of 8-bit samples stored in rows of Stride bytes.
type Plane struct {
	Pix    []uint8
	Stride int
}

func (p Plane) covers(w, h int) bool {
	return p.Stride >= w && len(p.Pix) >= (h-1)*p.Stride+w
}

// Convert writes the sharp YCbCr 4:2:0 conversion of the width x height
// RGB planes r, g, b into y and the (width+1)/2 x (height+1)/2 planes
// u and v.
func Convert(r, g, b Plane, width, height int, y, u, v Plane, m Matrix, tf Transfer) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidInput
	}
	uvW, uvH := (width+1)>>1, (height+1)>>1
	for _, p := range []Plane{r, g, b, y} {
		if !p.covers(width, height) {
			return ErrInvalidInput
		}
	}
	if !u.covers(uvW, uvH) || !v.covers(uvW, uvH) {
		return ErrInvalidInput
	}

	c := newCurve(tf, workDepth)
	w := (width + 1) &^ 1
	h := (height + 1) &^ 1

	tmp1 := make([]uint16, 3*w)
	tmp2 := make([]uint16, 3*w)
	bestY := make([]uint16, w*h)
	targetY := make([]uint16, w*h)
	bestUV := make([]int16, 3*uvW*uvH)
	targetUV := make([]int16, 3*uvW*uvH)
	bestRGBY := make([]uint16, 2*w)
	bestRGBUV := make([]int16, 3*uvW)

	for j := 0; j < height; j += 2 {
		importRow(r, g, b, j, width, w, tmp1)
		if j+1 < height {
			importRow(r, g, b, j+1, width, w, tmp2)
		} else {
			copy(tmp2, tmp1)
		}

		row := j * w
		uvRow := (j >> 1) * 3 * uvW
		storeGray(tmp1, bestY[row:], w)
		storeGray(tmp2, bestY[row+w:], w)
		updateW(tmp1, targetY[row:], w, c)
		updateW(tmp2, targetY[row+w:], w, c)
		updateChroma(tmp1, tmp2, targetUV[uvRow:], uvW, c)
		copy(bestUV[uvRow:uvRow+3*uvW], targetUV[uvRow:uvRow+3*uvW])
	}

	threshold := uint64(3 * w * h)
	prevDiff := ^uint64(0)
	for iter := range numIterations {
		var diff uint64
		for j := 0; j < h; j += 2 {
			jUV := j >> 1
			cur := jUV * 3 * uvW
			prev := max(jUV-1, 0) * 3 * uvW
			next := min(jUV+1, uvH-1) * 3 * uvW

			interpolateTwoRows(bestY[j*w:], bestUV[prev:], bestUV[cur:], bestUV[next:], w, tmp1, tmp2)
			updateW(tmp1, bestRGBY[:w], w, c)
			updateW(tmp2, bestRGBY[w:], w, c)
			updateChroma(tmp1, tmp2, bestRGBUV, uvW, c)

			diff += updateY(targetY[j*w:], bestRGBY, bestY[j*w:], 2*w)
			updateUV(targetUV[cur:], bestRGBUV, bestUV[cur:], 3*uvW)
		}
		if iter > 0 && (diff < threshold || diff > prevDiff) {
			break
		}
		prevDiff = diff
	}

	toYUV(bestY, bestUV, y, u, v, width, height, w, uvW, uvH, m)
	return nil
}

func importRow(r, g, b Plane, row, width, w int, dst []uint16) {
	rr := r.Pix[row*r.Stride:]
	gr := g.Pix[row*g.Stride:]
	br := b.Pix[row*b.Stride:]
	for i := range width {
		dst[i] = uint16(rr[i]) << sfix
		dst[i+w] = uint16(gr[i]) << sfix
		dst[i+2*w] = uint16(br[i]) << sfix
	}
	if width < w {
		dst[width] = dst[width-1]
		dst[width+w] = dst[width+w-1]
		dst[width+2*w] = dst[width+2*w-1]
	}
}

// rgbToGray uses BT.709 luma weights in 16-bit fixed point.
func rgbToGray(r, g, b int64) int {
	return int((13933*r + 46871*g + 4732*b + yuvHalf) >> yuvFix)
}

func storeGray(src, dst []uint16, w int) {
	for i := range w {
		dst[i] = uint16(rgbToGray(int64(src[i]), int64(src[i+w]), int64(src[i+2*w])))
	}
}

func updateW(src, dst []uint16, w int, c curve) {
	for i := range w {
		r := c.toLinear(src[i])
		g := c.toLinear(src[i+w])
		b := c.toLinear(src[i+2*w])
		dst[i] = c.fromLinear(uint32(rgbToGray(int64(r), int64(g), int64(b))))
	}
}

// scaleDown averages a 2x2 block in linear light.
func scaleDown(a, b, d, e uint16, c curve) int {
	sum := c.toLinear(a) + c.toLinear(b) + c.toLinear(d) + c.toLinear(e)
	return int(c.fromLinear((sum + 2) >> 2))
}

func updateChroma(src1, src2 []uint16, dst []int16, uvW int, c curve) {
	w := 2 * uvW
	for i := range uvW {
		x := 2 * i
		r := scaleDown(src1[x], src1[x+1], src2[x], src2[x+1], c)
		g := scaleDown(src1[x+w], src1[x+w+1], src2[x+w], src2[x+w+1], c)
		b := scaleDown(src1[x+2*w], src1[x+2*w+1], src2[x+2*w], src2[x+2*w+1], c)
		gray := rgbToGray(int64(r), int64(g), int64(b))
		dst[i] = int16(r - gray)
		dst[i+uvW] = int16(g - gray)
		dst[i+2*uvW] = int16(b - gray)
	}
}

func clipY(v int) uint16 {
	const maxY = 1<<workDepth - 1
	if v < 0 {
		return 0
	}
	if v > maxY {
		return maxY
	}
	return uint16(v)
}

func filter2(a, b, w0 int) uint16 {
	return clipY((a*3+b+2)>>2 + w0)
}

// interpolateTwoRows reconstructs two rows of RGB from luma and the
// bilinearly upsampled chroma residuals of the surrounding rows.
func interpolateTwoRows(bestY []uint16, prevUV, curUV, nextUV []int16, w int, out1, out2 []uint16) {
	uvW := w >> 1
	n := (w - 1) >> 1
	for k := range 3 {
		cu := curUV[k*uvW:]
		pu := prevUV[k*uvW:]
		nu := nextUV[k*uvW:]
		o1 := out1[k*w:]
		o2 := out2[k*w:]

		o1[0] = filter2(int(cu[0]), int(pu[0]), int(bestY[0]))
		o2[0] = filter2(int(cu[0]), int(nu[0]), int(bestY[w]))
		filterRow(cu, pu, n, bestY[1:], o1[1:])
		filterRow(cu, nu, n, bestY[w+1:], o2[1:])
		o1[w-1] = filter2(int(cu[uvW-1]), int(pu[uvW-1]), int(bestY[w-1]))
		o2[w-1] = filter2(int(cu[uvW-1]), int(nu[uvW-1]), int(bestY[2*w-1]))
	}
}

func filterRow(a, b []int16, n int, bestY, out []uint16) {
	for i := range n {
		a0, a1 := int(a[i]), int(a[i+1])
		b0, b1 := int(b[i]), int(b[i+1])
		v0 := (a0*9 + a1*3 + b0*3 + b1 + 8) >> 4
		v1 := (a1*9 + a0*3 + b1*3 + b0 + 8) >> 4
		out[2*i] = clipY(int(bestY[2*i]) + v0)
		out[2*i+1] = clipY(int(bestY[2*i+1]) + v1)
	}
}

func updateY(target, src, dst []uint16, n int) uint64 {
	var diff uint64
	for i := range n {
		d := int(target[i]) - int(src[i])
		dst[i] = clipY(int(dst[i]) + d)
		if d < 0 {
			d = -d
		}
		diff += uint64(d)
	}
	return diff
}

func updateUV(target, src, dst []int16, n int) {
	for i := range n {
		dst[i] += target[i] - src[i]
	}
}

func yuvComponent(r, g, b int64, coeffs [4]int32) uint8 {
	const rounder = 1 << (yuvFix + sfix - 1)
	v := int64(coeffs[0])*r + int64(coeffs[1])*g + int64(coeffs[2])*b + int64(coeffs[3])<<sfix + rounder
	v >>= yuvFix + sfix
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func toYUV(bestY []uint16, bestUV []int16, y, u, v Plane, width, height, w, uvW, uvH int, m Matrix) {
	for j := range height {
		yr := y.Pix[j*y.Stride:]
		uvRow := (j >> 1) * 3 * uvW
		for i := range width {
			wv := int64(bestY[j*w+i])
			off := uvRow + i>>1
			r := int64(bestUV[off]) + wv
			g := int64(bestUV[off+uvW]) + wv
			b := int64(bestUV[off+2*uvW]) + wv
			yr[i] = yuvComponent(r, g, b, m.RGBToY)
		}
	}
	for j := range uvH {
		ur := u.Pix[j*u.Stride:]
		vr := v.Pix[j*v.Stride:]
		uvRow := j * 3 * uvW
		for i := range uvW {
			r := int64(bestUV[uvRow+i])
			g := int64(bestUV[uvRow+i+uvW])
			b := int64(bestUV[uvRow+i+2*uvW])
			ur[i] = yuvComponent(r, g, b, m.RGBToU)
			vr[i] = yuvComponent(r, g, b, m.RGBToV)
		}
	}
}
