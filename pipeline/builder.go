// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pipeline

import (
	"container/heap"
	"slices"

	"github.com/gogpu/colorconv/colorstate"
	"github.com/gogpu/colorconv/conv"
)

// searchNode is a state discovered during the search. Until finalized it
// lives in the frontier at index.
type searchNode struct {
	state  colorstate.State
	cost   conv.Cost
	seq    int // discovery order, breaks cost ties
	index  int
	parent *searchNode
	op     conv.Operator
	step   conv.Cost
}

// frontier is a min-heap of searchNodes ordered by (cost, seq).
type frontier []*searchNode

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].cost != f[j].cost {
		return f[i].cost < f[j].cost
	}
	return f[i].seq < f[j].seq
}

func (f frontier) Swap(i, j int) {
	f[i], f[j] = f[j], f[i]
	f[i].index = i
	f[j].index = j
}

func (f *frontier) Push(x any) {
	n := x.(*searchNode)
	n.index = len(*f)
	*f = append(*f, n)
}

func (f *frontier) Pop() any {
	old := *f
	n := old[len(old)-1]
	old[len(old)-1] = nil
	n.index = -1
	*f = old[:len(old)-1]
	return n
}

// Build returns the cheapest plan converting in to target.
//
// States are compared with colorstate.State.Equal, so the transfer
// characteristic never needs converting. If in equals target the plan is
// a no-op. When no chain of operators connects the two states Build
// fails with conv.ErrUnsupportedConversion.
func (r *Registry) Build(in, target colorstate.State, opts conv.Options) (*Plan, error) {
	if err := in.Validate(); err != nil {
		return nil, &conv.Error{Kind: conv.ErrUnsupportedConversion, Op: "pipeline", Err: err}
	}
	if err := target.Validate(); err != nil {
		return nil, &conv.Error{Kind: conv.ErrUnsupportedConversion, Op: "pipeline", Err: err}
	}
	if in.Equal(target) {
		return &Plan{}, nil
	}

	var (
		open    = map[colorstate.State]*searchNode{}
		settled = map[colorstate.State]bool{}
		queue   frontier
		seq     int
	)
	start := &searchNode{state: in}
	heap.Push(&queue, start)
	open[in.Key()] = start

	for queue.Len() > 0 {
		n := heap.Pop(&queue).(*searchNode)
		key := n.state.Key()
		delete(open, key)
		settled[key] = true

		if n.state.Equal(target) {
			plan, err := assemble(n)
			if err != nil {
				return nil, err
			}
			slogger().Debug("pipeline: plan built",
				"from", in, "to", target,
				"steps", plan.Len(), "cost", int(plan.Cost()), "plan", plan)
			return plan, nil
		}

		for _, op := range r.ops {
			for _, c := range op.ReachableStates(n.state, target, opts) {
				k := c.State.Key()
				if settled[k] {
					continue
				}
				cost := n.cost + c.Cost
				if m, ok := open[k]; ok {
					if cost < m.cost {
						m.state, m.cost, m.parent, m.op, m.step = c.State, cost, n, op, c.Cost
						heap.Fix(&queue, m.index)
					}
					continue
				}
				seq++
				m := &searchNode{state: c.State, cost: cost, seq: seq, parent: n, op: op, step: c.Cost}
				heap.Push(&queue, m)
				open[k] = m
			}
		}
	}

	return nil, conv.Unsupported("pipeline", "no conversion from %v to %v", in, target)
}

// assemble walks parent pointers from the goal back to the start.
func assemble(goal *searchNode) (*Plan, error) {
	var steps []Step
	for n := goal; n.parent != nil; n = n.parent {
		steps = append(steps, Step{Operator: n.op, In: n.parent.state, Out: n.state, Cost: n.step})
	}
	slices.Reverse(steps)
	return newPlan(steps)
}
