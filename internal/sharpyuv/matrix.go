// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sharpyuv

import "math"

// Matrix holds RGB to YCbCr coefficients in 16-bit fixed point:
//
//	y = (RGBToY[0]*r + RGBToY[1]*g + RGBToY[2]*b + RGBToY[3] + 1<<15) >> 16
//
// and likewise for U and V.
type Matrix struct {
	RGBToY [4]int32
	RGBToU [4]int32
	RGBToV [4]int32
}

func toFixed16(f float64) int32 {
	return int32(math.Floor(f*(1<<16) + 0.5))
}

// ComputeMatrix derives an 8-bit conversion matrix from luma weights.
// Limited range scales luma to 16..235 and chroma to 16..240.
func ComputeMatrix(kr, kb float64, fullRange bool) Matrix {
	kg := 1 - kr - kb
	cb := 0.5 / (1 - kb)
	cr := 0.5 / (1 - kr)

	scaleY, addY := 1.0, 0.0
	scaleU, scaleV := cb, cr
	const addUV = 128.0

	if !fullRange {
		scaleY *= 219.0 / 255.0
		scaleU *= 224.0 / 255.0
		scaleV *= 224.0 / 255.0
		addY = 16
	}

	return Matrix{
		RGBToY: [4]int32{
			toFixed16(kr * scaleY),
			toFixed16(kg * scaleY),
			toFixed16(kb * scaleY),
			toFixed16(addY),
		},
		RGBToU: [4]int32{
			toFixed16(-kr * scaleU),
			toFixed16(-kg * scaleU),
			toFixed16((1 - kb) * scaleU),
			toFixed16(addUV),
		},
		RGBToV: [4]int32{
			toFixed16((1 - kr) * scaleV),
			toFixed16(-kg * scaleV),
			toFixed16(-kb * scaleV),
			toFixed16(addUV),
		},
	}
}
