// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pixbuf

import "fmt"

// Limits bounds the memory an Image may allocate.
// A zero field means no limit for that dimension.
type Limits struct {
	// MaxWidth is the largest plane width accepted.
	MaxWidth int

	// MaxHeight is the largest plane height accepted.
	MaxHeight int

	// MaxBytes is the largest total plane memory of one image.
	MaxBytes int64
}

// DefaultLimits returns the limits used by the command line tool:
// 32768x32768 pixels and 2 GiB of plane memory per image.
func DefaultLimits() Limits {
	return Limits{
		MaxWidth:  32768,
		MaxHeight: 32768,
		MaxBytes:  2 << 30,
	}
}

// Check reports whether a plane of the given size may be added to an image
// that already holds allocated bytes.
func (l Limits) Check(width, height int, planeBytes, allocated int64) error {
	if l.MaxWidth > 0 && width > l.MaxWidth {
		return fmt.Errorf("%w: width %d exceeds %d", ErrAllocationLimit, width, l.MaxWidth)
	}
	if l.MaxHeight > 0 && height > l.MaxHeight {
		return fmt.Errorf("%w: height %d exceeds %d", ErrAllocationLimit, height, l.MaxHeight)
	}
	if l.MaxBytes > 0 && allocated+planeBytes > l.MaxBytes {
		return fmt.Errorf("%w: %d bytes exceed %d", ErrAllocationLimit, allocated+planeBytes, l.MaxBytes)
	}
	return nil
}
