// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ops

import (
	"testing"

	"github.com/gogpu/colorconv/colorstate"
	"github.com/gogpu/colorconv/conv"
	"github.com/gogpu/colorconv/pixbuf"
)

func TestMonoToYCbCr420(t *testing.T) {
	in := testState(colorstate.ColorspaceMonochrome, colorstate.ChromaMonochrome, true, 10)
	img := newTestImage(t, in, 3, 3, func(ch pixbuf.Channel, x, y int) int {
		if ch == pixbuf.ChannelAlpha {
			return 1023
		}
		return 100*y + x
	})

	target := withMatrix(testState(colorstate.ColorspaceYCbCr, colorstate.Chroma420, true, 10), colorstate.MatrixBT709)
	out := reachable(t, MonoToYCbCr420{}, in, target, conv.DefaultOptions())
	if out.Colorimetry.MatrixCoefficients != colorstate.MatrixBT709 {
		t.Errorf("matrix = %d, want target matrix", out.Colorimetry.MatrixCoefficients)
	}
	dst := apply(t, MonoToYCbCr420{}, img, in, out, conv.DefaultOptions())

	if !equalGrid(planeValues(dst.Plane(pixbuf.ChannelY)), planeValues(img.Plane(pixbuf.ChannelY))) {
		t.Error("luma changed")
	}
	for _, ch := range []pixbuf.Channel{pixbuf.ChannelCb, pixbuf.ChannelCr} {
		p := dst.Plane(ch)
		if p.Width() != 2 || p.Height() != 2 {
			t.Fatalf("%v plane is %dx%d", ch, p.Width(), p.Height())
		}
		for _, row := range planeValues(p) {
			for _, v := range row {
				if v != 512 {
					t.Fatalf("%v = %d, want 512", ch, v)
				}
			}
		}
	}
	if !dst.HasChannel(pixbuf.ChannelAlpha) {
		t.Error("alpha dropped")
	}
}

func TestYCbCrToMono(t *testing.T) {
	in := testState(colorstate.ColorspaceYCbCr, colorstate.Chroma422, false, 8)
	img := newTestImage(t, in, 4, 2, func(_ pixbuf.Channel, x, y int) int { return 10*x + y })
	mono := testState(colorstate.ColorspaceMonochrome, colorstate.ChromaMonochrome, false, 8)

	out := reachable(t, YCbCrToMono{}, in, mono, conv.DefaultOptions())
	dst := apply(t, YCbCrToMono{}, img, in, out, conv.DefaultOptions())
	if got := dst.Channels(); len(got) != 1 || got[0] != pixbuf.ChannelY {
		t.Errorf("channels = %v, want [Y]", got)
	}
	if !equalGrid(planeValues(dst.Plane(pixbuf.ChannelY)), planeValues(img.Plane(pixbuf.ChannelY))) {
		t.Error("luma changed")
	}
}

func TestMonoToRGB(t *testing.T) {
	in := testState(colorstate.ColorspaceMonochrome, colorstate.ChromaMonochrome, false, 8)
	img := newTestImage(t, in, 2, 2, func(_ pixbuf.Channel, x, y int) int { return 7*x + 50*y })
	target := testState(colorstate.ColorspaceRGB, colorstate.Chroma444, false, 8)

	out := reachable(t, MonoToRGB{}, in, target, conv.DefaultOptions())
	dst := apply(t, MonoToRGB{}, img, in, out, conv.DefaultOptions())
	want := planeValues(img.Plane(pixbuf.ChannelY))
	for _, ch := range []pixbuf.Channel{pixbuf.ChannelR, pixbuf.ChannelG, pixbuf.ChannelB} {
		if got := planeValues(dst.Plane(ch)); !equalGrid(got, want) {
			t.Errorf("%v = %v, want %v", ch, got, want)
		}
	}
}

func TestMonoGating(t *testing.T) {
	mono := testState(colorstate.ColorspaceMonochrome, colorstate.ChromaMonochrome, false, 8)
	limited := mono
	limited.Colorimetry.Range = colorstate.RangeLimited
	ycc := testState(colorstate.ColorspaceYCbCr, colorstate.Chroma420, false, 8)

	tests := []struct {
		name       string
		op         conv.Operator
		in, target colorstate.State
		want       int
	}{
		{"to gbr", MonoToYCbCr420{}, mono, withMatrix(ycc, colorstate.MatrixIdentity), 0},
		{"to ycgco-r", MonoToYCbCr420{}, mono, withMatrix(ycc, colorstate.MatrixYCgCoRe), 0},
		{"to ycgco", MonoToYCbCr420{}, mono, withMatrix(ycc, colorstate.MatrixYCgCo), 1},
		{"from gbr", YCbCrToMono{}, withMatrix(ycc, colorstate.MatrixIdentity), mono, 0},
		{"from rgb", YCbCrToMono{}, testState(colorstate.ColorspaceRGB, colorstate.Chroma444, false, 8), mono, 0},
		{"limited to rgb", MonoToRGB{}, limited, testState(colorstate.ColorspaceRGB, colorstate.Chroma444, false, 8), 0},
		{"full to rgb", MonoToRGB{}, mono, testState(colorstate.ColorspaceRGB, colorstate.Chroma444, false, 8), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(tt.op.ReachableStates(tt.in, tt.target, conv.DefaultOptions())); got != tt.want {
				t.Errorf("offers %d states, want %d", got, tt.want)
			}
		})
	}
}
