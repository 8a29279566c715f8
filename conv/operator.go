// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package conv defines the contract between conversion operators and the
// pipeline that chains them.
//
// An Operator advertises which color states it can reach from a given input
// state, each at a cost, and transforms a pixel buffer along one of those
// transitions. Costs are additive along a pipeline; the builder minimizes
// total cost, not step count.
package conv

import (
	"github.com/gogpu/colorconv/colorstate"
	"github.com/gogpu/colorconv/pixbuf"
)

// Cost is the relative speed cost of one conversion step.
type Cost int

// Cost bands.
const (
	// CostTrivial is a fixed-cost pass-through such as dropping a plane.
	CostTrivial Cost = 1

	// CostHardware is a hardware-assisted path.
	CostHardware Cost = 2

	// CostOptimized is an optimized software path.
	CostOptimized Cost = 6

	// CostUnoptimized is a reference software path.
	CostUnoptimized Cost = 11

	// CostSlow is a deliberately slow, high-quality path.
	CostSlow Cost = 16
)

// Candidate is one state an operator can produce, with its cost.
type Candidate struct {
	State colorstate.State
	Cost  Cost
}

// Operator is a stateless conversion capability.
//
// Implementations must be safe for concurrent use and must never mutate
// the image or states passed to them.
type Operator interface {
	// Name returns a stable identifier used in logs and plan dumps.
	Name() string

	// ReachableStates returns the states the operator can produce from in.
	// It returns nil when the operator does not apply to in. The target only
	// biases which of several legal outputs are offered.
	ReachableStates(in, target colorstate.State, opts Options) []Candidate

	// Apply converts img from state in to state out into a newly allocated
	// image. It fails with ErrInternal if img is inconsistent with in.
	Apply(img *pixbuf.Image, in, out colorstate.State, opts Options) (*pixbuf.Image, error)
}
