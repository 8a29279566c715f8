// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pixbuf

import (
	"slices"

	"github.com/gogpu/colorconv/colorstate"
)

// ContentLightLevel is the CTA-861.3 content light level information.
type ContentLightLevel struct {
	MaxContentLightLevel    uint16
	MaxPicAverageLightLevel uint16
}

// MasteringDisplay is the SMPTE ST 2086 mastering display colour volume.
// Chromaticities are in units of 0.00002, luminance in 0.0001 cd/m2.
type MasteringDisplay struct {
	DisplayPrimariesX [3]uint16
	DisplayPrimariesY [3]uint16
	WhitePointX       uint16
	WhitePointY       uint16
	MaxLuminance      uint32
	MinLuminance      uint32
}

// PixelAspectRatio is the ratio of a pixel's width to its height.
type PixelAspectRatio struct {
	Horizontal uint32
	Vertical   uint32
}

// IsSquare reports whether the ratio is 1:1 or unset.
func (p PixelAspectRatio) IsSquare() bool {
	return p.Horizontal == p.Vertical
}

// Timing places an image in a sequence.
type Timing struct {
	Timescale uint32
	Duration  uint32
	PTS       uint64
}

// Metadata is auxiliary information that travels with an image through
// a conversion. Every executed step copies it onto its output.
type Metadata struct {
	// Colorimetry is nil when the image carries no explicit labeling.
	Colorimetry *colorstate.Colorimetry

	ICCProfile         []byte
	PremultipliedAlpha bool

	ContentLightLevel *ContentLightLevel
	MasteringDisplay  *MasteringDisplay
	PixelAspectRatio  PixelAspectRatio

	ContentID string
	Timing    *Timing

	// Warnings collects non-fatal decoder diagnostics.
	Warnings []error
}

// Clone returns a deep copy of m.
func (m Metadata) Clone() Metadata {
	out := m
	if m.Colorimetry != nil {
		c := *m.Colorimetry
		out.Colorimetry = &c
	}
	if m.ContentLightLevel != nil {
		c := *m.ContentLightLevel
		out.ContentLightLevel = &c
	}
	if m.MasteringDisplay != nil {
		d := *m.MasteringDisplay
		out.MasteringDisplay = &d
	}
	if m.Timing != nil {
		t := *m.Timing
		out.Timing = &t
	}
	out.ICCProfile = slices.Clone(m.ICCProfile)
	out.Warnings = slices.Clone(m.Warnings)
	return out
}
