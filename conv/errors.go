// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package conv

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a conversion matches exactly one of
// them with errors.Is.
var (
	// ErrUnsupportedConversion is returned when no operator chain connects
	// the input state to the target state.
	ErrUnsupportedConversion = errors.New("conv: unsupported conversion")

	// ErrInternal is returned when an operator finds the live buffer
	// inconsistent with its state or cannot allocate its output.
	ErrInternal = errors.New("conv: internal error")
)

// Error is a conversion failure with its kind and the operation that
// produced it.
type Error struct {
	// Kind is ErrUnsupportedConversion or ErrInternal.
	Kind error

	// Op names the operator or pipeline stage.
	Op string

	// Err is the underlying cause, may be nil.
	Err error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Op != "" {
		msg += " in " + e.Op
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the kind and the cause so errors.Is matches both.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Internal wraps err as an internal error of op.
func Internal(op string, err error) *Error {
	return &Error{Kind: ErrInternal, Op: op, Err: err}
}

// Internalf returns an internal error of op with a formatted cause.
func Internalf(op, format string, args ...any) *Error {
	return &Error{Kind: ErrInternal, Op: op, Err: fmt.Errorf(format, args...)}
}

// Unsupported returns an unsupported-conversion error with a formatted cause.
func Unsupported(op, format string, args ...any) *Error {
	return &Error{Kind: ErrUnsupportedConversion, Op: op, Err: fmt.Errorf(format, args...)}
}
