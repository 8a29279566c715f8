// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ops

import (
	"bytes"
	"testing"

	"github.com/gogpu/colorconv/colorstate"
	"github.com/gogpu/colorconv/conv"
	"github.com/gogpu/colorconv/pixbuf"
)

func TestInterleavedTargets(t *testing.T) {
	opaque := testState(colorstate.ColorspaceRGB, colorstate.Chroma444, false, 8)
	alpha := withAlphaFlag(opaque, true)
	tests := []struct {
		name       string
		in, target colorstate.State
		want       []colorstate.Chroma
	}{
		{"opaque to opaque", opaque, opaque, []colorstate.Chroma{colorstate.ChromaInterleavedRGB}},
		{"opaque to alpha", opaque, alpha, []colorstate.Chroma{colorstate.ChromaInterleavedRGB, colorstate.ChromaInterleavedRGBA}},
		{"alpha kept", alpha, opaque, []colorstate.Chroma{colorstate.ChromaInterleavedRGBA}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := RGBToInterleaved{}.ReachableStates(tt.in, tt.target, conv.DefaultOptions())
			if len(c) != len(tt.want) {
				t.Fatalf("got %d candidates, want %d", len(c), len(tt.want))
			}
			for i, cand := range c {
				if cand.State.Chroma != tt.want[i] {
					t.Errorf("candidate %d chroma = %v, want %v", i, cand.State.Chroma, tt.want[i])
				}
				if cand.State.HasAlpha != cand.State.Chroma.HasAlpha() {
					t.Errorf("candidate %d alpha flag disagrees with %v", i, cand.State.Chroma)
				}
			}
		})
	}
}

func TestInterleaveSynthesizesAlpha(t *testing.T) {
	in := testState(colorstate.ColorspaceRGB, colorstate.Chroma444, false, 8)
	img := newTestImage(t, in, 3, 2, func(ch pixbuf.Channel, x, y int) int {
		return int(ch)*40 + x + 10*y
	})
	out := in
	out.HasAlpha = true
	out.Chroma = colorstate.ChromaInterleavedRGBA

	dst := apply(t, RGBToInterleaved{}, img, in, out, conv.DefaultOptions())
	row := dst.Plane(pixbuf.ChannelInterleaved).Row8(1)
	want := []byte{
		130, 170, 210, 0xff,
		131, 171, 211, 0xff,
		132, 172, 212, 0xff,
	}
	if !bytes.Equal(row, want) {
		t.Errorf("row 1 = %v, want %v", row, want)
	}

	back := apply(t, InterleavedToRGB{}, dst, out, reachable(t, InterleavedToRGB{}, out, out, conv.DefaultOptions()), conv.DefaultOptions())
	for _, ch := range []pixbuf.Channel{pixbuf.ChannelR, pixbuf.ChannelG, pixbuf.ChannelB} {
		if !equalGrid(planeValues(back.Plane(ch)), planeValues(img.Plane(ch))) {
			t.Errorf("%v plane differs after round trip", ch)
		}
	}
	if got := at(back.Plane(pixbuf.ChannelAlpha), 2, 1); got != 0xff {
		t.Errorf("alpha = %d, want 255", got)
	}
}

func TestRRGGBBByteOrder(t *testing.T) {
	in := testState(colorstate.ColorspaceRGB, colorstate.Chroma444, false, 10)
	img := newTestImage(t, in, 2, 1, func(ch pixbuf.Channel, x, _ int) int {
		return []int{0x3ff, 0x102}[x] - int(ch-pixbuf.ChannelR)
	})

	c := RGBToRRGGBB{}.ReachableStates(in, withAlphaFlag(in, true), conv.DefaultOptions())
	if len(c) != 4 {
		t.Fatalf("got %d candidates, want BE and LE with and without alpha", len(c))
	}

	be := in
	be.Chroma = colorstate.ChromaInterleavedRRGGBBBE
	le := in
	le.Chroma = colorstate.ChromaInterleavedRRGGBBLE

	bePix := apply(t, RGBToRRGGBB{}, img, in, be, conv.DefaultOptions())
	lePix := apply(t, RGBToRRGGBB{}, img, in, le, conv.DefaultOptions())

	wantBE := []byte{0x03, 0xff, 0x03, 0xfe, 0x03, 0xfd, 0x01, 0x02, 0x01, 0x01, 0x01, 0x00}
	if got := bePix.Plane(pixbuf.ChannelInterleaved).Row(0); !bytes.Equal(got, wantBE) {
		t.Errorf("BE row = % x, want % x", got, wantBE)
	}
	wantLE := []byte{0xff, 0x03, 0xfe, 0x03, 0xfd, 0x03, 0x02, 0x01, 0x01, 0x01, 0x00, 0x01}
	if got := lePix.Plane(pixbuf.ChannelInterleaved).Row(0); !bytes.Equal(got, wantLE) {
		t.Errorf("LE row = % x, want % x", got, wantLE)
	}

	for _, tt := range []struct {
		img   *pixbuf.Image
		state colorstate.State
	}{{bePix, be}, {lePix, le}} {
		back := apply(t, RRGGBBToRGB{}, tt.img, tt.state, in, conv.DefaultOptions())
		if !equalGrid(planeValues(back.Plane(pixbuf.ChannelB)), planeValues(img.Plane(pixbuf.ChannelB))) {
			t.Errorf("%v: B plane differs after round trip", tt.state.Chroma)
		}
	}
}

func TestRRGGBBSynthesizedAlphaIsMax(t *testing.T) {
	in := testState(colorstate.ColorspaceRGB, colorstate.Chroma444, false, 12)
	img := newTestImage(t, in, 1, 1, nil)
	out := in
	out.HasAlpha = true
	out.Chroma = colorstate.ChromaInterleavedRRGGBBAALE
	dst := apply(t, RGBToRRGGBB{}, img, in, out, conv.DefaultOptions())
	row := dst.Plane(pixbuf.ChannelInterleaved).Row(0)
	if got := int(row[6]) | int(row[7])<<8; got != 4095 {
		t.Errorf("alpha = %d, want 4095", got)
	}
}

func TestSwapEndiannessInvolution(t *testing.T) {
	in := testState(colorstate.ColorspaceRGB, colorstate.ChromaInterleavedRRGGBBAABE, true, 16)
	img := newTestImage(t, in, 3, 2, func(_ pixbuf.Channel, x, y int) int {
		return x*0x1234 + y*0x0f0f + 1
	})

	once := reachable(t, SwapEndianness{}, in, in, conv.DefaultOptions())
	if once.Chroma != colorstate.ChromaInterleavedRRGGBBAALE {
		t.Fatalf("swap produced %v", once.Chroma)
	}
	swapped := apply(t, SwapEndianness{}, img, in, once, conv.DefaultOptions())
	twice := reachable(t, SwapEndianness{}, once, once, conv.DefaultOptions())
	back := apply(t, SwapEndianness{}, swapped, once, twice, conv.DefaultOptions())

	src, got := img.Plane(pixbuf.ChannelInterleaved), back.Plane(pixbuf.ChannelInterleaved)
	mid := swapped.Plane(pixbuf.ChannelInterleaved)
	for y := range src.Height() {
		if !bytes.Equal(src.Row(y), got.Row(y)) {
			t.Errorf("row %d differs after two swaps", y)
		}
		if bytes.Equal(src.Row(y), mid.Row(y)) {
			t.Errorf("row %d unchanged after one swap", y)
		}
	}
}

func TestInterleaveGating(t *testing.T) {
	tests := []struct {
		name string
		op   conv.Operator
		in   colorstate.State
	}{
		{"rgb_to_interleaved deep", RGBToInterleaved{}, testState(colorstate.ColorspaceRGB, colorstate.Chroma444, false, 10)},
		{"rgb_to_interleaved ycbcr", RGBToInterleaved{}, testState(colorstate.ColorspaceYCbCr, colorstate.Chroma444, false, 8)},
		{"rgb_to_rrggbb 8 bit", RGBToRRGGBB{}, testState(colorstate.ColorspaceRGB, colorstate.Chroma444, false, 8)},
		{"interleaved_to_rgb planar", InterleavedToRGB{}, testState(colorstate.ColorspaceRGB, colorstate.Chroma444, false, 8)},
		{"rrggbb_to_rgb 8 bit interleaved", RRGGBBToRGB{}, testState(colorstate.ColorspaceRGB, colorstate.ChromaInterleavedRGB, false, 8)},
		{"swap 8 bit interleaved", SwapEndianness{}, testState(colorstate.ColorspaceRGB, colorstate.ChromaInterleavedRGBA, true, 8)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if c := tt.op.ReachableStates(tt.in, tt.in, conv.DefaultOptions()); len(c) != 0 {
				t.Errorf("offers %v", c)
			}
		})
	}
}
