// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package colorconv converts pixel buffers between color representations.
//
// # Overview
//
// A pixel buffer is described by its color state: colorspace (RGB, YCbCr,
// monochrome), chroma layout (4:2:0, 4:2:2, 4:4:4 planar or interleaved
// RGB/RGBA/RRGGBB), bit depth, alpha presence and colorimetry. Given an
// input buffer and a Target, colorconv finds the cheapest chain of
// elementary conversion steps and runs it.
//
// # Quick Start
//
//	import "github.com/gogpu/colorconv"
//
//	img, _ := pixbuf.FromImage(decoded)
//	out, err := colorconv.Convert(img, colorconv.Target{
//	    Colorspace: colorstate.ColorspaceYCbCr,
//	    Chroma:     colorstate.Chroma420,
//	}, colorconv.DefaultOptions())
//
// # Architecture
//
// The module is organized into:
//   - colorstate: the color state value type and H.273 colorimetry
//   - pixbuf: planes, strides, metadata and allocation limits
//   - conv: the operator contract, options and error kinds
//   - pipeline: the operator registry, plan builder and executor
//   - internal/ops: the built-in operators
//
// # Errors
//
// Every failure matches either ErrUnsupportedConversion (no operator chain
// reaches the target) or ErrInternal (the buffer disagrees with its state
// or an allocation limit was hit) with errors.Is.
package colorconv

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = "alpha.1"
)
