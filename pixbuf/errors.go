// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pixbuf

import "errors"

// Common errors for pixel buffer operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("pixbuf: invalid dimensions")

	// ErrInvalidBitDepth is returned for bit depths outside 1..16.
	ErrInvalidBitDepth = errors.New("pixbuf: invalid bit depth")

	// ErrInvalidStride is returned when stride is less than the row size or
	// misaligned for 2-byte samples.
	ErrInvalidStride = errors.New("pixbuf: invalid stride")

	// ErrChannelExists is returned when adding a plane that is already present.
	ErrChannelExists = errors.New("pixbuf: channel already exists")

	// ErrAllocationLimit is returned when a plane would exceed the image Limits.
	ErrAllocationLimit = errors.New("pixbuf: allocation limit exceeded")

	// ErrUnsupportedImage is returned by the image bridge for layouts it
	// cannot represent.
	ErrUnsupportedImage = errors.New("pixbuf: unsupported image layout")
)
