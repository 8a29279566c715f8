// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/colorconv/colorstate"
	"github.com/gogpu/colorconv/conv"
	"github.com/gogpu/colorconv/pixbuf"
)

// Step is one operator application of a plan.
type Step struct {
	Operator conv.Operator
	In       colorstate.State
	Out      colorstate.State
	Cost     conv.Cost
}

// Plan is an ordered chain of steps. Each step's In equals the previous
// step's Out. An empty plan is a no-op.
type Plan struct {
	steps []Step
	cost  conv.Cost
}

// newPlan checks that steps chain and sums their cost.
func newPlan(steps []Step) (*Plan, error) {
	p := &Plan{steps: steps}
	for i, s := range steps {
		if i > 0 && !steps[i-1].Out.Equal(s.In) {
			return nil, conv.Internalf("pipeline", "step %d (%s) consumes %v, previous step produced %v",
				i, s.Operator.Name(), s.In, steps[i-1].Out)
		}
		p.cost += s.Cost
	}
	return p, nil
}

// Steps returns a copy of the plan's steps.
func (p *Plan) Steps() []Step {
	return append([]Step(nil), p.steps...)
}

// Len returns the number of steps.
func (p *Plan) Len() int { return len(p.steps) }

// Cost returns the summed cost of all steps.
func (p *Plan) Cost() conv.Cost { return p.cost }

// IsNoop reports whether the plan has no steps.
func (p *Plan) IsNoop() bool { return len(p.steps) == 0 }

// String lists the operator names, e.g.
// "rgb_to_ycbcr -> ycbcr444_to_420_average (cost 22)".
func (p *Plan) String() string {
	if p.IsNoop() {
		return "noop"
	}
	names := make([]string, len(p.steps))
	for i, s := range p.steps {
		names[i] = s.Operator.Name()
	}
	return fmt.Sprintf("%s (cost %d)", strings.Join(names, " -> "), p.cost)
}

// Execute runs the plan on img and returns the converted buffer. A no-op
// plan returns img itself. Otherwise img is left untouched and every
// intermediate buffer is released. Each produced buffer is labeled with
// its step's output colorimetry and inherits all other metadata, except
// that a buffer without alpha is never marked premultiplied.
func (p *Plan) Execute(img *pixbuf.Image, opts conv.Options) (*pixbuf.Image, error) {
	if img == nil {
		return nil, conv.Internalf("pipeline", "nil image")
	}
	if p.IsNoop() {
		return img, nil
	}

	log := slogger()
	cur := img
	for i, s := range p.steps {
		next, err := s.Operator.Apply(cur, s.In, s.Out, opts)
		if err == nil && next == nil {
			err = conv.Internalf(s.Operator.Name(), "no output image")
		}
		if err != nil {
			if cur != img {
				pixbuf.Release(cur)
			}
			return nil, classify(s.Operator.Name(), err)
		}

		next.CopyMetadataFrom(cur)
		next.SetColorimetry(s.Out.Colorimetry)
		if !s.Out.HasAlpha {
			next.Metadata().PremultipliedAlpha = false
		}
		if cur != img && cur != next {
			pixbuf.Release(cur)
		}
		cur = next
		log.Debug("pipeline: step executed",
			"index", i, "op", s.Operator.Name(), "out", s.Out)
	}
	return cur, nil
}

// classify makes sure err matches one of the conversion error kinds.
func classify(op string, err error) error {
	if errors.Is(err, conv.ErrInternal) || errors.Is(err, conv.ErrUnsupportedConversion) {
		return err
	}
	return conv.Internal(op, err)
}
