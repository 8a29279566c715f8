// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package colorconv

import "github.com/gogpu/colorconv/conv"

// Error kinds, matched with errors.Is.
var (
	ErrUnsupportedConversion = conv.ErrUnsupportedConversion
	ErrInternal              = conv.ErrInternal
)

// Error is the concrete type of every conversion error.
type Error = conv.Error
