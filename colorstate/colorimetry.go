// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package colorstate

import "fmt"

// MatrixCoefficients is an ITU-T H.273 matrix coefficients code point.
type MatrixCoefficients uint16

// Matrix coefficients code points.
const (
	MatrixIdentity              MatrixCoefficients = 0 // GBR, no transform
	MatrixBT709                 MatrixCoefficients = 1
	MatrixUnspecified           MatrixCoefficients = 2
	MatrixFCC                   MatrixCoefficients = 4
	MatrixBT470BG               MatrixCoefficients = 5
	MatrixBT601                 MatrixCoefficients = 6
	MatrixSMPTE240M             MatrixCoefficients = 7
	MatrixYCgCo                 MatrixCoefficients = 8
	MatrixBT2020NonConstant     MatrixCoefficients = 9
	MatrixBT2020Constant        MatrixCoefficients = 10
	MatrixSMPTE2085             MatrixCoefficients = 11
	MatrixChromaticityNonConst  MatrixCoefficients = 12
	MatrixChromaticityConstant  MatrixCoefficients = 13
	MatrixICtCp                 MatrixCoefficients = 14
	MatrixYCgCoRe               MatrixCoefficients = 16
	MatrixYCgCoRo               MatrixCoefficients = 17
	matrixCoefficientsReserved3 MatrixCoefficients = 3
)

// ColorPrimaries is an ITU-T H.273 colour primaries code point.
type ColorPrimaries uint16

// Colour primaries code points.
const (
	PrimariesBT709       ColorPrimaries = 1
	PrimariesUnspecified ColorPrimaries = 2
	PrimariesBT470M      ColorPrimaries = 4
	PrimariesBT470BG     ColorPrimaries = 5
	PrimariesBT601       ColorPrimaries = 6
	PrimariesSMPTE240M   ColorPrimaries = 7
	PrimariesGenericFilm ColorPrimaries = 8
	PrimariesBT2020      ColorPrimaries = 9
	PrimariesXYZ         ColorPrimaries = 10
	PrimariesSMPTE431    ColorPrimaries = 11
	PrimariesSMPTE432    ColorPrimaries = 12
	PrimariesEBU3213     ColorPrimaries = 22
)

// TransferCharacteristics is an ITU-T H.273 transfer characteristics code point.
type TransferCharacteristics uint16

// Transfer characteristics code points.
const (
	TransferBT709       TransferCharacteristics = 1
	TransferUnspecified TransferCharacteristics = 2
	TransferBT470M      TransferCharacteristics = 4
	TransferBT470BG     TransferCharacteristics = 5
	TransferBT601       TransferCharacteristics = 6
	TransferSMPTE240M   TransferCharacteristics = 7
	TransferLinear      TransferCharacteristics = 8
	TransferIEC61966    TransferCharacteristics = 11
	TransferSRGB        TransferCharacteristics = 13
	TransferBT2020_10   TransferCharacteristics = 14
	TransferBT2020_12   TransferCharacteristics = 15
	TransferPQ          TransferCharacteristics = 16
	TransferSMPTE428    TransferCharacteristics = 17
	TransferHLG         TransferCharacteristics = 18
)

// Range is the sample range of a Colorimetry.
type Range uint8

const (
	// RangeUnspecified takes the range from the input when resolved.
	RangeUnspecified Range = iota
	// RangeFull uses the whole code value range.
	RangeFull
	// RangeLimited uses the studio range (16..235 luma, 16..240 chroma at 8 bit).
	RangeLimited
)

// Colorimetry is the numeric-to-physical color mapping of the samples.
type Colorimetry struct {
	MatrixCoefficients      MatrixCoefficients
	ColorPrimaries          ColorPrimaries
	TransferCharacteristics TransferCharacteristics
	Range                   Range
}

// DefaultColorimetry returns the colorimetry assumed for unlabeled content:
// BT.709 primaries, sRGB transfer, BT.601 matrix, full range.
func DefaultColorimetry() Colorimetry {
	return Colorimetry{
		MatrixCoefficients:      MatrixBT601,
		ColorPrimaries:          PrimariesBT709,
		TransferCharacteristics: TransferSRGB,
		Range:                   RangeFull,
	}
}

// Unspecified returns a colorimetry whose every field takes its value from
// the input when resolved.
func Unspecified() Colorimetry {
	return Colorimetry{
		MatrixCoefficients:      MatrixUnspecified,
		ColorPrimaries:          PrimariesUnspecified,
		TransferCharacteristics: TransferUnspecified,
		Range:                   RangeUnspecified,
	}
}

// FullRange reports whether samples use the full code value range.
func (c Colorimetry) FullRange() bool {
	return c.Range != RangeLimited
}

// EqualIgnoringTransfer compares everything but the transfer characteristic.
func (c Colorimetry) EqualIgnoringTransfer(o Colorimetry) bool {
	return c.MatrixCoefficients == o.MatrixCoefficients &&
		c.ColorPrimaries == o.ColorPrimaries &&
		c.FullRange() == o.FullRange()
}

// IsConcrete reports whether no field is unspecified.
func (c Colorimetry) IsConcrete() bool {
	return c.MatrixCoefficients != MatrixUnspecified &&
		c.MatrixCoefficients != matrixCoefficientsReserved3 &&
		c.ColorPrimaries != PrimariesUnspecified &&
		c.TransferCharacteristics != TransferUnspecified &&
		c.Range != RangeUnspecified
}

// Resolve replaces every unspecified field of c with the field from base.
func (c Colorimetry) Resolve(base Colorimetry) Colorimetry {
	if c.MatrixCoefficients == MatrixUnspecified || c.MatrixCoefficients == matrixCoefficientsReserved3 {
		c.MatrixCoefficients = base.MatrixCoefficients
	}
	if c.ColorPrimaries == PrimariesUnspecified {
		c.ColorPrimaries = base.ColorPrimaries
	}
	if c.TransferCharacteristics == TransferUnspecified {
		c.TransferCharacteristics = base.TransferCharacteristics
	}
	if c.Range == RangeUnspecified {
		c.Range = base.Range
	}
	return c
}

// WithDefaults resolves c against DefaultColorimetry.
func (c Colorimetry) WithDefaults() Colorimetry {
	return c.Resolve(DefaultColorimetry())
}

// String renders the code points, e.g. "mc=6 cp=1 tc=13 full".
func (c Colorimetry) String() string {
	r := "full"
	switch c.Range {
	case RangeLimited:
		r = "limited"
	case RangeUnspecified:
		r = "range?"
	}
	return fmt.Sprintf("mc=%d cp=%d tc=%d %s",
		c.MatrixCoefficients, c.ColorPrimaries, c.TransferCharacteristics, r)
}
