// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package colorconv

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gogpu/colorconv/colorstate"
	"github.com/gogpu/colorconv/conv"
	"github.com/gogpu/colorconv/internal/cache"
	"github.com/gogpu/colorconv/pipeline"
	"github.com/gogpu/colorconv/pixbuf"
)

// Converter builds and runs conversion plans.
//
// A Converter is safe for concurrent use. The zero value is not usable;
// create one with NewConverter.
type Converter struct {
	registry *pipeline.Registry
	plans    *cache.Cache[planKey, *pipeline.Plan]
	logger   *slog.Logger
}

// planKey identifies a memoized plan. The transfer characteristic is part
// of the key because executed steps label their output with it.
type planKey struct {
	in, target colorstate.State
	opts       conv.Options
}

// NewConverter creates a Converter.
//
// Example:
//
//	c := colorconv.NewConverter(colorconv.WithPlanCache(128))
//	out, err := c.Convert(img, target, colorconv.DefaultOptions())
func NewConverter(opts ...ConverterOption) *Converter {
	o := defaultConverterOptions()
	for _, opt := range opts {
		opt(&o)
	}
	c := &Converter{registry: o.registry, logger: o.logger}
	if o.planCache > 0 {
		c.plans = cache.New[planKey, *pipeline.Plan](o.planCache, hashPlanKey)
	}
	return c
}

func (c *Converter) reg() *pipeline.Registry {
	if c.registry != nil {
		return c.registry
	}
	return pipeline.DefaultRegistry()
}

func (c *Converter) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return Logger()
}

// Plan returns the cheapest plan from in to the state target resolves to.
// The plan is not executed.
func (c *Converter) Plan(in colorstate.State, target Target, opts Options) (*pipeline.Plan, error) {
	out := target.Resolve(in)
	if c.plans == nil {
		return c.reg().Build(in, out, opts)
	}

	var buildErr error
	plan := c.plans.GetOrCreate(planKey{in: in, target: out, opts: opts}, func() (*pipeline.Plan, bool) {
		p, err := c.reg().Build(in, out, opts)
		if err != nil {
			buildErr = err
			return nil, false
		}
		return p, true
	})
	if buildErr != nil {
		return nil, buildErr
	}
	return plan, nil
}

// Convert converts img to target and returns the new buffer. If img
// already has the target state it is returned unchanged. img itself is
// never modified or released.
func (c *Converter) Convert(img *pixbuf.Image, target Target, opts Options) (*pixbuf.Image, error) {
	if img == nil {
		return nil, conv.Internalf("colorconv", "nil image")
	}
	in := img.State()
	plan, err := c.Plan(in, target, opts)
	if err != nil {
		return nil, err
	}
	out, err := plan.Execute(img, opts)
	if err != nil {
		if errors.Is(err, ErrInternal) {
			c.log().Warn("colorconv: conversion failed", "from", in, "plan", plan, "err", err)
		}
		return nil, err
	}
	if log := c.log(); log.Enabled(context.Background(), slog.LevelDebug) {
		log.Debug("colorconv: converted", "from", in, "to", out.State(),
			"steps", plan.Len(), "cost", int(plan.Cost()))
	}
	return out, nil
}

// PlanCacheStats reports plan cache usage.
type PlanCacheStats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// PlanCacheStats returns the plan cache counters. All fields are zero
// when the converter has no plan cache.
func (c *Converter) PlanCacheStats() PlanCacheStats {
	if c.plans == nil {
		return PlanCacheStats{}
	}
	s := c.plans.Stats()
	return PlanCacheStats{
		Len:       s.Len,
		Capacity:  s.Capacity,
		Hits:      s.Hits,
		Misses:    s.Misses,
		Evictions: s.Evictions,
	}
}

// PurgePlanCache drops every memoized plan.
func (c *Converter) PurgePlanCache() {
	if c.plans != nil {
		c.plans.Purge()
	}
}

func hashPlanKey(k planKey) uint64 {
	o := k.opts
	return cache.HashUint64s(
		stateWord(k.in), colorimetryWord(k.in.Colorimetry),
		stateWord(k.target), colorimetryWord(k.target.Colorimetry),
		uint64(o.PreferredChromaDownsampling)|uint64(o.PreferredChromaUpsampling)<<8|
			uint64(o.AlphaComposition)<<16|boolWord(o.OnlyUsePreferredChromaAlgorithm)<<24,
		colorWord(o.BackgroundColor), colorWord(o.SecondaryBackgroundColor),
		uint64(o.CheckerboardSquareSize),
	)
}

func stateWord(s colorstate.State) uint64 {
	return uint64(s.Colorspace) | uint64(s.Chroma)<<8 | boolWord(s.HasAlpha)<<16 | uint64(s.BitsPerPixel)<<24
}

func colorimetryWord(c colorstate.Colorimetry) uint64 {
	return uint64(c.MatrixCoefficients) | uint64(c.ColorPrimaries)<<16 |
		uint64(c.TransferCharacteristics)<<32 | uint64(c.Range)<<48
}

func colorWord(c conv.Color16) uint64 {
	return uint64(c.R) | uint64(c.G)<<16 | uint64(c.B)<<32
}

func boolWord(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

var defaultConverter = NewConverter()

// Convert converts img to target with the default registry.
//
// Example:
//
//	out, err := colorconv.Convert(img, colorconv.Target{
//	    Colorspace: colorstate.ColorspaceRGB,
//	    Chroma:     colorstate.ChromaInterleavedRGBA,
//	}, colorconv.DefaultOptions())
func Convert(img *pixbuf.Image, target Target, opts Options) (*pixbuf.Image, error) {
	return defaultConverter.Convert(img, target, opts)
}
