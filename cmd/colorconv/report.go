// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/colorconv/pipeline"
	"github.com/gogpu/colorconv/pixbuf"
)

// report prints the input and output states, the plan and the plane
// memory with numbers formatted for tag.
func report(w io.Writer, tag language.Tag, in, out *pixbuf.Image, plan *pipeline.Plan) {
	p := message.NewPrinter(tag)
	p.Fprintf(w, "input:  %v (%d x %d, %d bytes)\n", in.State(), in.Width(), in.Height(), in.AllocatedBytes())
	p.Fprintf(w, "output: %v (%d x %d, %d bytes)\n", out.State(), out.Width(), out.Height(), out.AllocatedBytes())
	if plan.IsNoop() {
		p.Fprintf(w, "plan:   no conversion needed\n")
		return
	}
	p.Fprintf(w, "plan:   %d steps, cost %d\n", plan.Len(), int(plan.Cost()))
	for i, s := range plan.Steps() {
		p.Fprintf(w, "  %d. %-28s %v\n", i+1, s.Operator.Name(), s.Out)
	}
}
