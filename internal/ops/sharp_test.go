// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ops

import (
	"testing"

	"github.com/gogpu/colorconv/colorstate"
	"github.com/gogpu/colorconv/conv"
	"github.com/gogpu/colorconv/pixbuf"
)

func sharpOptions() conv.Options {
	opts := conv.DefaultOptions()
	opts.PreferredChromaDownsampling = conv.DownsamplingSharp
	return opts
}

func anyAlgorithm() conv.Options {
	opts := conv.DefaultOptions()
	opts.OnlyUsePreferredChromaAlgorithm = false
	return opts
}

func TestSharpGating(t *testing.T) {
	rgb8 := testState(colorstate.ColorspaceRGB, colorstate.Chroma444, false, 8)
	ycc := testState(colorstate.ColorspaceYCbCr, colorstate.Chroma420, false, 8)

	tests := []struct {
		name       string
		in, target colorstate.State
		opts       conv.Options
		want       int
	}{
		{"preferred", rgb8, ycc, sharpOptions(), 1},
		{"not preferred", rgb8, ycc, conv.DefaultOptions(), 0},
		{"any algorithm, average preferred", rgb8, ycc, anyAlgorithm(), 1},
		{"10 bit input", withDepth(rgb8, 10), withDepth(ycc, 10), sharpOptions(), 0},
		{"ycbcr input", testState(colorstate.ColorspaceYCbCr, colorstate.Chroma444, false, 8), ycc, sharpOptions(), 0},
		{"ycgco target", rgb8, withMatrix(ycc, colorstate.MatrixYCgCo), sharpOptions(), 0},
		{"gbr target", rgb8, withMatrix(ycc, colorstate.MatrixIdentity), sharpOptions(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := SharpYCbCr420{}.ReachableStates(tt.in, tt.target, tt.opts)
			if len(c) != tt.want {
				t.Fatalf("offers %d states, want %d", len(c), tt.want)
			}
			if tt.want == 1 && c[0].Cost != conv.CostSlow {
				t.Errorf("cost = %d, want CostSlow", c[0].Cost)
			}
		})
	}
}

func TestSharpGrayImage(t *testing.T) {
	in := testState(colorstate.ColorspaceRGB, colorstate.Chroma444, true, 8)
	img := newTestImage(t, in, 5, 3, func(ch pixbuf.Channel, x, _ int) int {
		if ch == pixbuf.ChannelAlpha {
			return 200
		}
		return 40 * x
	})

	target := testState(colorstate.ColorspaceYCbCr, colorstate.Chroma420, true, 8)
	out := reachable(t, SharpYCbCr420{}, in, target, sharpOptions())
	dst := apply(t, SharpYCbCr420{}, img, in, out, sharpOptions())

	for _, ch := range []pixbuf.Channel{pixbuf.ChannelCb, pixbuf.ChannelCr} {
		p := dst.Plane(ch)
		if p.Width() != 3 || p.Height() != 2 {
			t.Fatalf("%v plane is %dx%d, want 3x2", ch, p.Width(), p.Height())
		}
		for _, row := range planeValues(p) {
			for _, v := range row {
				if absInt(v-128) > 1 {
					t.Errorf("%v = %d, want ~128 for gray input", ch, v)
				}
			}
		}
	}
	y := dst.Plane(pixbuf.ChannelY)
	for x := range 5 {
		if got := at(y, x, 1); absInt(got-40*x) > 3 {
			t.Errorf("Y[%d] = %d, want ~%d", x, got, 40*x)
		}
	}
	if got := at(dst.Plane(pixbuf.ChannelAlpha), 4, 2); got != 200 {
		t.Errorf("alpha = %d, want 200", got)
	}
}
