// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package colorstate

// Chromaticity is a CIE 1931 xy coordinate.
type Chromaticity struct {
	X, Y float64
}

// PrimariesTable holds the chromaticities of the red, green and blue
// primaries and the white point.
type PrimariesTable struct {
	Red, Green, Blue, White Chromaticity
}

var primariesBT709 = PrimariesTable{
	Red:   Chromaticity{0.640, 0.330},
	Green: Chromaticity{0.300, 0.600},
	Blue:  Chromaticity{0.150, 0.060},
	White: Chromaticity{0.3127, 0.3290},
}

var primariesTables = map[ColorPrimaries]PrimariesTable{
	PrimariesBT709: primariesBT709,
	PrimariesBT470M: {
		Red:   Chromaticity{0.67, 0.33},
		Green: Chromaticity{0.21, 0.71},
		Blue:  Chromaticity{0.14, 0.08},
		White: Chromaticity{0.310, 0.316},
	},
	PrimariesBT470BG: {
		Red:   Chromaticity{0.64, 0.33},
		Green: Chromaticity{0.29, 0.60},
		Blue:  Chromaticity{0.15, 0.06},
		White: Chromaticity{0.3127, 0.3290},
	},
	PrimariesBT601: {
		Red:   Chromaticity{0.630, 0.340},
		Green: Chromaticity{0.310, 0.595},
		Blue:  Chromaticity{0.155, 0.070},
		White: Chromaticity{0.3127, 0.3290},
	},
	PrimariesSMPTE240M: {
		Red:   Chromaticity{0.630, 0.340},
		Green: Chromaticity{0.310, 0.595},
		Blue:  Chromaticity{0.155, 0.070},
		White: Chromaticity{0.3127, 0.3290},
	},
	PrimariesGenericFilm: {
		Red:   Chromaticity{0.681, 0.319},
		Green: Chromaticity{0.243, 0.692},
		Blue:  Chromaticity{0.145, 0.049},
		White: Chromaticity{0.310, 0.316},
	},
	PrimariesBT2020: {
		Red:   Chromaticity{0.708, 0.292},
		Green: Chromaticity{0.170, 0.797},
		Blue:  Chromaticity{0.131, 0.046},
		White: Chromaticity{0.3127, 0.3290},
	},
	PrimariesXYZ: {
		Red:   Chromaticity{1.0, 0.0},
		Green: Chromaticity{0.0, 1.0},
		Blue:  Chromaticity{0.0, 0.0},
		White: Chromaticity{0.333333, 0.33333},
	},
	PrimariesSMPTE431: {
		Red:   Chromaticity{0.680, 0.320},
		Green: Chromaticity{0.265, 0.690},
		Blue:  Chromaticity{0.150, 0.060},
		White: Chromaticity{0.314, 0.351},
	},
	PrimariesSMPTE432: {
		Red:   Chromaticity{0.680, 0.320},
		Green: Chromaticity{0.265, 0.690},
		Blue:  Chromaticity{0.150, 0.060},
		White: Chromaticity{0.3127, 0.3290},
	},
	PrimariesEBU3213: {
		Red:   Chromaticity{0.630, 0.340},
		Green: Chromaticity{0.295, 0.605},
		Blue:  Chromaticity{0.155, 0.077},
		White: Chromaticity{0.3127, 0.3290},
	},
}

// Primaries returns the chromaticity table for a primaries code point.
// Unknown code points fall back to BT.709.
func Primaries(p ColorPrimaries) PrimariesTable {
	if t, ok := primariesTables[p]; ok {
		return t
	}
	return primariesBT709
}

// KrKb holds the red and blue luma weights of a YCbCr matrix.
type KrKb struct {
	Kr, Kb float64
}

// IsDefined reports whether the weights describe a usable transform.
func (k KrKb) IsDefined() bool {
	return k.Kr != 0 || k.Kb != 0
}

// LumaWeights returns Kr and Kb for a matrix coefficients code point.
// Matrices 12 and 13 derive the weights from the primaries' chromaticities.
// Indices without a luma/color-difference interpretation return zero weights.
func LumaWeights(matrix MatrixCoefficients, primaries ColorPrimaries) KrKb {
	switch matrix {
	case MatrixChromaticityNonConst, MatrixChromaticityConstant:
		return lumaWeightsFromPrimaries(Primaries(primaries))
	case MatrixBT709:
		return KrKb{Kr: 0.2126, Kb: 0.0722}
	case MatrixFCC:
		return KrKb{Kr: 0.30, Kb: 0.11}
	case MatrixBT470BG, MatrixBT601:
		return KrKb{Kr: 0.299, Kb: 0.114}
	case MatrixSMPTE240M:
		return KrKb{Kr: 0.212, Kb: 0.087}
	case MatrixBT2020NonConstant, MatrixBT2020Constant:
		return KrKb{Kr: 0.2627, Kb: 0.0593}
	default:
		return KrKb{}
	}
}

// lumaWeightsFromPrimaries follows ITU-T H.273 equations (39) to (44).
func lumaWeightsFromPrimaries(p PrimariesTable) KrKb {
	xr, yr := p.Red.X, p.Red.Y
	xg, yg := p.Green.X, p.Green.Y
	xb, yb := p.Blue.X, p.Blue.Y
	xw, yw := p.White.X, p.White.Y

	zr := 1 - (xr + yr)
	zg := 1 - (xg + yg)
	zb := 1 - (xb + yb)
	zw := 1 - (xw + yw)

	denom := yw * (xr*(yg*zb-yb*zg) + xg*(yb*zr-yr*zb) + xb*(yr*zg-yg*zr))
	if denom == 0 {
		return KrKb{}
	}

	kr := (yr * (xw*(yg*zb-yb*zg) + yw*(xb*zg-xg*zb) + zw*(xg*yb-xb*yg))) / denom
	kb := (yb * (xw*(yr*zg-yg*zr) + yw*(xg*zr-xr*zg) + zw*(xr*yg-xg*yr))) / denom
	return KrKb{Kr: kr, Kb: kb}
}

// YCbCrToRGBCoefficients are the factors of
//
//	R = Y + RCr*Cr
//	G = Y + GCb*Cb + GCr*Cr
//	B = Y + BCb*Cb
type YCbCrToRGBCoefficients struct {
	RCr, GCb, GCr, BCb float64
}

// DefaultYCbCrToRGB is the BT.601 set used when a matrix has no weights.
var DefaultYCbCrToRGB = YCbCrToRGBCoefficients{
	RCr: 1.402,
	GCb: -0.344136,
	GCr: -0.714136,
	BCb: 1.772,
}

// YCbCrToRGB returns the inverse transform coefficients for a matrix.
func YCbCrToRGB(matrix MatrixCoefficients, primaries ColorPrimaries) YCbCrToRGBCoefficients {
	k := LumaWeights(matrix, primaries)
	if !k.IsDefined() {
		return DefaultYCbCrToRGB
	}
	kr, kb := k.Kr, k.Kb
	return YCbCrToRGBCoefficients{
		RCr: 2 * (-kr + 1),
		GCb: 2 * kb * (-kb + 1) / (kb + kr - 1),
		GCr: 2 * kr * (-kr + 1) / (kb + kr - 1),
		BCb: 2 * (-kb + 1),
	}
}

// RGBToYCbCrCoefficients is a row-major 3x3 matrix mapping (R, G, B) to
// (Y, Cb, Cr) with Cb and Cr centered on zero.
type RGBToYCbCrCoefficients [3][3]float64

// DefaultRGBToYCbCr is the BT.601 matrix used when a matrix has no weights.
var DefaultRGBToYCbCr = RGBToYCbCrCoefficients{
	{0.299, 0.587, 0.114},
	{-0.168735, -0.331264, 0.5},
	{0.5, -0.418688, -0.081312},
}

// RGBToYCbCr returns the forward transform matrix for a matrix code point.
func RGBToYCbCr(matrix MatrixCoefficients, primaries ColorPrimaries) RGBToYCbCrCoefficients {
	k := LumaWeights(matrix, primaries)
	if !k.IsDefined() {
		return DefaultRGBToYCbCr
	}
	kr, kb := k.Kr, k.Kb
	kg := 1 - kr - kb
	return RGBToYCbCrCoefficients{
		{kr, kg, kb},
		{-kr / (1 - kb) / 2, -kg / (1 - kb) / 2, 0.5},
		{0.5, -kg / (1 - kr) / 2, -kb / (1 - kr) / 2},
	}
}
