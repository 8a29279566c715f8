// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package colorstate

import (
	"math"
	"testing"
)

const coeffTolerance = 1e-4

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestLumaWeights(t *testing.T) {
	tests := []struct {
		name      string
		matrix    MatrixCoefficients
		primaries ColorPrimaries
		want      KrKb
	}{
		{"BT.709", MatrixBT709, PrimariesBT709, KrKb{0.2126, 0.0722}},
		{"FCC", MatrixFCC, PrimariesBT470M, KrKb{0.30, 0.11}},
		{"BT.470BG", MatrixBT470BG, PrimariesBT470BG, KrKb{0.299, 0.114}},
		{"BT.601", MatrixBT601, PrimariesBT601, KrKb{0.299, 0.114}},
		{"SMPTE 240M", MatrixSMPTE240M, PrimariesSMPTE240M, KrKb{0.212, 0.087}},
		{"BT.2020 NCL", MatrixBT2020NonConstant, PrimariesBT2020, KrKb{0.2627, 0.0593}},
		{"BT.2020 CL", MatrixBT2020Constant, PrimariesBT2020, KrKb{0.2627, 0.0593}},
		{"chromaticity BT.709", MatrixChromaticityNonConst, PrimariesBT709, KrKb{0.212639, 0.072192}},
		{"chromaticity BT.2020", MatrixChromaticityConstant, PrimariesBT2020, KrKb{0.262700, 0.059302}},
		{"identity", MatrixIdentity, PrimariesBT709, KrKb{}},
		{"YCgCo", MatrixYCgCo, PrimariesBT709, KrKb{}},
		{"unspecified", MatrixUnspecified, PrimariesBT709, KrKb{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LumaWeights(tt.matrix, tt.primaries)
			if !approx(got.Kr, tt.want.Kr, 1e-3) || !approx(got.Kb, tt.want.Kb, 1e-3) {
				t.Errorf("LumaWeights(%d, %d) = %+v, want %+v", tt.matrix, tt.primaries, got, tt.want)
			}
		})
	}
}

func TestYCbCrToRGB(t *testing.T) {
	tests := []struct {
		name   string
		matrix MatrixCoefficients
		want   YCbCrToRGBCoefficients
	}{
		{"BT.601", MatrixBT601, YCbCrToRGBCoefficients{1.402, -0.344136, -0.714136, 1.772}},
		{"BT.709", MatrixBT709, YCbCrToRGBCoefficients{1.5748, -0.187324, -0.468124, 1.8556}},
		{"BT.2020", MatrixBT2020NonConstant, YCbCrToRGBCoefficients{1.4746, -0.164553, -0.571353, 1.8814}},
		{"identity falls back", MatrixIdentity, DefaultYCbCrToRGB},
		{"unknown falls back", MatrixCoefficients(200), DefaultYCbCrToRGB},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := YCbCrToRGB(tt.matrix, PrimariesBT709)
			if !approx(got.RCr, tt.want.RCr, coeffTolerance) ||
				!approx(got.GCb, tt.want.GCb, coeffTolerance) ||
				!approx(got.GCr, tt.want.GCr, coeffTolerance) ||
				!approx(got.BCb, tt.want.BCb, coeffTolerance) {
				t.Errorf("YCbCrToRGB(%d) = %+v, want %+v", tt.matrix, got, tt.want)
			}
		})
	}
}

func TestRGBToYCbCr(t *testing.T) {
	got := RGBToYCbCr(MatrixBT709, PrimariesBT709)
	want := RGBToYCbCrCoefficients{
		{0.2126, 0.7152, 0.0722},
		{-0.114572, -0.385428, 0.5},
		{0.5, -0.454153, -0.045847},
	}
	for i := range want {
		for j := range want[i] {
			if !approx(got[i][j], want[i][j], coeffTolerance) {
				t.Errorf("RGBToYCbCr(BT.709)[%d][%d] = %f, want %f", i, j, got[i][j], want[i][j])
			}
		}
	}

	if def := RGBToYCbCr(MatrixIdentity, PrimariesBT709); def != DefaultRGBToYCbCr {
		t.Errorf("identity matrix should fall back to default, got %v", def)
	}
}

func TestRGBToYCbCrRowsSum(t *testing.T) {
	// White maps to Y=1 and neutral chroma for every defined matrix.
	for _, m := range []MatrixCoefficients{MatrixBT709, MatrixBT601, MatrixSMPTE240M, MatrixBT2020NonConstant, MatrixChromaticityNonConst} {
		c := RGBToYCbCr(m, PrimariesBT709)
		sums := [3]float64{}
		for i := range c {
			sums[i] = c[i][0] + c[i][1] + c[i][2]
		}
		if !approx(sums[0], 1, 1e-9) || !approx(sums[1], 0, 1e-9) || !approx(sums[2], 0, 1e-9) {
			t.Errorf("matrix %d row sums = %v, want [1 0 0]", m, sums)
		}
	}
}

func TestYCbCrInverse(t *testing.T) {
	// Forward followed by inverse reproduces the RGB triple.
	for _, m := range []MatrixCoefficients{MatrixBT709, MatrixBT601, MatrixBT2020NonConstant} {
		fwd := RGBToYCbCr(m, PrimariesBT709)
		inv := YCbCrToRGB(m, PrimariesBT709)

		r, g, b := 0.8, 0.3, 0.1
		y := fwd[0][0]*r + fwd[0][1]*g + fwd[0][2]*b
		cb := fwd[1][0]*r + fwd[1][1]*g + fwd[1][2]*b
		cr := fwd[2][0]*r + fwd[2][1]*g + fwd[2][2]*b

		r2 := y + inv.RCr*cr
		g2 := y + inv.GCb*cb + inv.GCr*cr
		b2 := y + inv.BCb*cb
		if !approx(r, r2, 1e-6) || !approx(g, g2, 1e-6) || !approx(b, b2, 1e-6) {
			t.Errorf("matrix %d: round trip (%f,%f,%f) -> (%f,%f,%f)", m, r, g, b, r2, g2, b2)
		}
	}
}

func TestPrimariesFallback(t *testing.T) {
	if got := Primaries(ColorPrimaries(99)); got != primariesBT709 {
		t.Errorf("Primaries(99) = %+v, want BT.709", got)
	}
	if got := Primaries(PrimariesBT2020); got.Red.X != 0.708 {
		t.Errorf("Primaries(BT.2020).Red.X = %f, want 0.708", got.Red.X)
	}
}
