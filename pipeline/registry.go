// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package pipeline finds and runs the cheapest chain of conversion
// operators between two color states.
//
// A Registry holds the operators. Build runs a uniform-cost search over
// the states the operators can reach and returns a Plan; Execute applies
// the plan's steps to a pixel buffer.
//
//	reg := pipeline.DefaultRegistry()
//	plan, err := reg.Build(img.State(), target, conv.DefaultOptions())
//	if err != nil {
//		return err
//	}
//	out, err := plan.Execute(img, conv.DefaultOptions())
package pipeline

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/gogpu/colorconv/colorstate"
	"github.com/gogpu/colorconv/conv"
	"github.com/gogpu/colorconv/internal/ops"
	"github.com/gogpu/colorconv/pixbuf"
)

// Registry is an ordered, immutable set of operators. Operator order
// breaks ties between plans of equal cost: earlier operators win.
//
// A Registry is safe for concurrent use.
type Registry struct {
	ops []conv.Operator
}

// NewRegistry returns a registry of exactly the given operators.
func NewRegistry(operators ...conv.Operator) *Registry {
	return &Registry{ops: slices.Clone(operators)}
}

// NewStandardRegistry returns a fresh registry of the built-in operators.
// Alpha flattening runs its nested conversions through the new registry.
func NewStandardRegistry() *Registry {
	r := &Registry{}
	r.ops = ops.Default(r.convertStates)
	return r
}

// Operators returns a copy of the registered operators.
func (r *Registry) Operators() []conv.Operator {
	return slices.Clone(r.ops)
}

// Convert builds the plan from img's state to target and executes it.
func (r *Registry) Convert(img *pixbuf.Image, target colorstate.State, opts conv.Options) (*pixbuf.Image, error) {
	if img == nil {
		return nil, conv.Internalf("pipeline", "nil image")
	}
	plan, err := r.Build(img.State(), target, opts)
	if err != nil {
		return nil, err
	}
	return plan.Execute(img, opts)
}

// convertStates backs the nested conversions of alpha flattening.
func (r *Registry) convertStates(img *pixbuf.Image, in, target colorstate.State, opts conv.Options) (*pixbuf.Image, error) {
	plan, err := r.Build(in, target, opts)
	if err != nil {
		return nil, err
	}
	return plan.Execute(img, opts)
}

var (
	defaultMu  sync.Mutex
	defaultReg atomic.Pointer[Registry]
)

// DefaultRegistry returns the process-wide registry of built-in
// operators, creating it on first use. Reads after initialization take
// no lock.
func DefaultRegistry() *Registry {
	if r := defaultReg.Load(); r != nil {
		return r
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if r := defaultReg.Load(); r != nil {
		return r
	}
	r := NewStandardRegistry()
	defaultReg.Store(r)
	slogger().Debug("pipeline: default registry initialized", "operators", len(r.ops))
	return r
}

// ReleaseDefaultRegistry drops the process-wide registry. The next
// DefaultRegistry call builds a new one. Registries already handed out
// keep working.
func ReleaseDefaultRegistry() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultReg.Store(nil)
}
