// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ops

import (
	"testing"

	"github.com/gogpu/colorconv/colorstate"
	"github.com/gogpu/colorconv/conv"
	"github.com/gogpu/colorconv/pixbuf"
)

func TestReplicate(t *testing.T) {
	tests := []struct {
		v, from, to, want int
	}{
		{0, 8, 10, 0},
		{255, 8, 10, 1023},
		{128, 8, 10, 514},
		{255, 8, 16, 65535},
		{0x12, 8, 16, 0x1212},
		{1023, 10, 16, 65535},
		{512, 10, 12, 2050},
		{1, 1, 8, 255},
		{200, 8, 8, 200},
	}
	for _, tt := range tests {
		if got := Replicate(tt.v, tt.from, tt.to); got != tt.want {
			t.Errorf("Replicate(%d, %d, %d) = %d, want %d", tt.v, tt.from, tt.to, got, tt.want)
		}
	}
}

func TestBitDepthRoundTrip(t *testing.T) {
	in := testState(colorstate.ColorspaceRGB, colorstate.Chroma444, false, 8)
	img := newTestImage(t, in, 256, 1, func(_ pixbuf.Channel, x, _ int) int { return x })

	wide := reachable(t, ExpandBitDepth{}, in, withDepth(in, 10), conv.DefaultOptions())
	if wide.BitsPerPixel != 10 {
		t.Fatalf("expanded to %d bits", wide.BitsPerPixel)
	}
	expanded := apply(t, ExpandBitDepth{}, img, in, wide, conv.DefaultOptions())
	if got := at(expanded.Plane(pixbuf.ChannelG), 255, 0); got != 1023 {
		t.Errorf("255 expands to %d, want 1023", got)
	}

	narrow := reachable(t, ReduceBitDepth{}, wide, in, conv.DefaultOptions())
	reduced := apply(t, ReduceBitDepth{}, expanded, wide, narrow, conv.DefaultOptions())
	for _, ch := range []pixbuf.Channel{pixbuf.ChannelR, pixbuf.ChannelG, pixbuf.ChannelB} {
		for x := range 256 {
			if got := at(reduced.Plane(ch), x, 0); got != x {
				t.Fatalf("%v: %d round trips to %d", ch, x, got)
			}
		}
	}
}

func TestReduceTruncates(t *testing.T) {
	in := testState(colorstate.ColorspaceYCbCr, colorstate.Chroma420, true, 12)
	img := newTestImage(t, in, 2, 2, func(_ pixbuf.Channel, _, _ int) int { return 0xfff - 1 })
	dst := apply(t, ReduceBitDepth{}, img, in, withDepth(in, 10), conv.DefaultOptions())
	for _, ch := range dst.Channels() {
		if got := at(dst.Plane(ch), 0, 0); got != 0x3ff {
			t.Errorf("%v = %#x, want 0x3ff", ch, got)
		}
	}
}

func withDepth(s colorstate.State, bpp int) colorstate.State {
	s.BitsPerPixel = bpp
	return s
}

func TestBitDepthGating(t *testing.T) {
	rgb8 := testState(colorstate.ColorspaceRGB, colorstate.Chroma444, false, 8)
	rgb10 := withDepth(rgb8, 10)
	ycgcoR := withMatrix(testState(colorstate.ColorspaceYCbCr, colorstate.Chroma444, false, 8), colorstate.MatrixYCgCoRe)

	tests := []struct {
		name       string
		op         conv.Operator
		in, target colorstate.State
		want       int
	}{
		{"expand toward deeper", ExpandBitDepth{}, rgb8, rgb10, 1},
		{"expand same depth", ExpandBitDepth{}, rgb8, rgb8, 0},
		{"expand beyond 16", ExpandBitDepth{}, rgb8, withDepth(rgb8, 17), 0},
		{"reduce toward shallower", ReduceBitDepth{}, rgb10, rgb8, 1},
		{"reduce below 8", ReduceBitDepth{}, rgb10, withDepth(rgb8, 6), 0},
		{"interleaved", ExpandBitDepth{}, testState(colorstate.ColorspaceRGB, colorstate.ChromaInterleavedRGB, false, 8), rgb10, 0},
		{"ycgco-r", ExpandBitDepth{}, ycgcoR, withDepth(ycgcoR, 10), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(tt.op.ReachableStates(tt.in, tt.target, conv.DefaultOptions())); got != tt.want {
				t.Errorf("offers %d states, want %d", got, tt.want)
			}
		})
	}
}
