// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package colorconv

import (
	"log/slog"

	"github.com/gogpu/colorconv/conv"
	"github.com/gogpu/colorconv/pipeline"
)

// Options are the per-conversion settings: chroma resampling preferences
// and alpha composition.
type Options = conv.Options

// DefaultOptions returns the default conversion options.
func DefaultOptions() Options {
	return conv.DefaultOptions()
}

// ConverterOption configures a Converter during creation.
// Use functional options to customize Converter behavior.
//
// Example:
//
//	// Default registry, no plan cache
//	c := colorconv.NewConverter()
//
//	// Custom operators and memoized plans
//	c := colorconv.NewConverter(
//	    colorconv.WithRegistry(reg),
//	    colorconv.WithPlanCache(64),
//	)
type ConverterOption func(*converterOptions)

// converterOptions holds optional configuration for Converter creation.
type converterOptions struct {
	registry  *pipeline.Registry
	planCache int
	logger    *slog.Logger
}

// defaultConverterOptions returns the default converter options.
func defaultConverterOptions() converterOptions {
	return converterOptions{
		registry:  nil, // pipeline.DefaultRegistry() at conversion time
		planCache: 0,
		logger:    nil, // package Logger()
	}
}

// WithRegistry sets the operator registry used to build plans.
// Use this to restrict or extend the built-in operators.
//
// Example:
//
//	reg := pipeline.NewRegistry(myOperators...)
//	c := colorconv.NewConverter(colorconv.WithRegistry(reg))
func WithRegistry(r *pipeline.Registry) ConverterOption {
	return func(o *converterOptions) {
		o.registry = r
	}
}

// WithPlanCache memoizes up to n plans, keyed by input state, target
// state and options. Plans are immutable, so a cached plan is shared by
// concurrent conversions. n <= 0 disables the cache.
func WithPlanCache(n int) ConverterOption {
	return func(o *converterOptions) {
		o.planCache = n
	}
}

// WithLogger sets the logger for the converter's own messages. Without
// it the converter uses the package Logger at the time of each call.
func WithLogger(l *slog.Logger) ConverterOption {
	return func(o *converterOptions) {
		o.logger = l
	}
}
