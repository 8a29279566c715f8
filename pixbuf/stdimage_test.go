// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pixbuf

import (
	"errors"
	"image"
	"image/color"
	"image/color/palette"
	"testing"

	"github.com/gogpu/colorconv/colorstate"
)

func TestFromImageGray(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 3, 2))
	for i := range src.Pix {
		src.Pix[i] = uint8(i * 40)
	}
	img, err := FromImage(src)
	if err != nil {
		t.Fatal(err)
	}
	s := img.State()
	if s.Colorspace != colorstate.ColorspaceMonochrome || s.BitsPerPixel != 8 {
		t.Errorf("State() = %v", s)
	}
	if got := img.Plane(ChannelY).Row8(1)[2]; got != 200 {
		t.Errorf("Y[1][2] = %d, want 200", got)
	}

	out, err := img.ToImage()
	if err != nil {
		t.Fatal(err)
	}
	g, ok := out.(*image.Gray)
	if !ok {
		t.Fatalf("ToImage() = %T, want *image.Gray", out)
	}
	for i := range src.Pix {
		if g.Pix[i] != src.Pix[i] {
			t.Errorf("Pix[%d] = %d, want %d", i, g.Pix[i], src.Pix[i])
		}
	}
}

func TestFromImageSubImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	src.SetNRGBA(2, 2, color.NRGBA{R: 10, G: 20, B: 30, A: 40})
	sub := src.SubImage(image.Rect(2, 2, 4, 4))

	img, err := FromImage(sub)
	if err != nil {
		t.Fatal(err)
	}
	if img.Width() != 2 || img.Height() != 2 {
		t.Fatalf("size = %dx%d, want 2x2", img.Width(), img.Height())
	}
	row := img.Plane(ChannelInterleaved).Row8(0)
	if row[0] != 10 || row[1] != 20 || row[2] != 30 || row[3] != 40 {
		t.Errorf("first pixel = %v", row[:4])
	}
	if img.Metadata().PremultipliedAlpha {
		t.Error("NRGBA source marked premultiplied")
	}
}

func TestFromImageNRGBA64(t *testing.T) {
	src := image.NewNRGBA64(image.Rect(0, 0, 2, 1))
	src.SetNRGBA64(1, 0, color.NRGBA64{R: 0x1234, G: 0x5678, B: 0x9abc, A: 0xffff})

	img, err := FromImage(src)
	if err != nil {
		t.Fatal(err)
	}
	if img.Chroma() != colorstate.ChromaInterleavedRRGGBBAABE {
		t.Errorf("Chroma() = %v, want RRGGBBAA_BE", img.Chroma())
	}
	out, err := img.ToImage()
	if err != nil {
		t.Fatal(err)
	}
	if got := out.(*image.NRGBA64).NRGBA64At(1, 0); got.R != 0x1234 || got.B != 0x9abc {
		t.Errorf("round trip pixel = %+v", got)
	}
}

func TestFromImageYCbCr(t *testing.T) {
	src := image.NewYCbCr(image.Rect(0, 0, 5, 3), image.YCbCrSubsampleRatio420)
	for i := range src.Y {
		src.Y[i] = uint8(i)
	}
	for i := range src.Cb {
		src.Cb[i] = uint8(100 + i)
		src.Cr[i] = uint8(200 + i)
	}

	img, err := FromImage(src)
	if err != nil {
		t.Fatal(err)
	}
	if img.Chroma() != colorstate.Chroma420 {
		t.Fatalf("Chroma() = %v", img.Chroma())
	}
	if w, h := img.ChannelWidth(ChannelCb), img.ChannelHeight(ChannelCb); w != 3 || h != 2 {
		t.Errorf("Cb plane = %dx%d, want 3x2", w, h)
	}
	if got := img.Plane(ChannelCr).Row8(1)[0]; got != src.Cr[src.CStride] {
		t.Errorf("Cr[1][0] = %d, want %d", got, src.Cr[src.CStride])
	}

	out, err := img.ToImage()
	if err != nil {
		t.Fatal(err)
	}
	y := out.(*image.YCbCr)
	if y.SubsampleRatio != image.YCbCrSubsampleRatio420 {
		t.Errorf("SubsampleRatio = %v", y.SubsampleRatio)
	}
	if y.Y[y.YOffset(4, 2)] != src.Y[src.YOffset(4, 2)] {
		t.Error("Y sample changed in round trip")
	}
}

func TestFromImageFallback(t *testing.T) {
	src := image.NewPaletted(image.Rect(0, 0, 2, 2), palette.Plan9)
	src.SetColorIndex(0, 0, 3)

	img, err := FromImage(src)
	if err != nil {
		t.Fatal(err)
	}
	if img.Chroma() != colorstate.ChromaInterleavedRGBA {
		t.Errorf("Chroma() = %v, want RGBA", img.Chroma())
	}
	want := color.NRGBAModel.Convert(palette.Plan9[3]).(color.NRGBA)
	row := img.Plane(ChannelInterleaved).Row8(0)
	if row[0] != want.R || row[1] != want.G || row[2] != want.B {
		t.Errorf("pixel = %v, want %+v", row[:4], want)
	}
}

func TestToImageUnsupported(t *testing.T) {
	img, _ := New(2, 2, colorstate.ColorspaceRGB, colorstate.Chroma444)
	img.AddPlane(ChannelR, 2, 2, 8)
	if _, err := img.ToImage(); !errors.Is(err, ErrUnsupportedImage) {
		t.Errorf("ToImage() on planar RGB error = %v, want ErrUnsupportedImage", err)
	}
}

func TestScaleTo16(t *testing.T) {
	tests := []struct {
		v        uint16
		bitDepth int
		want     uint16
	}{
		{0xff, 8, 0xffff},
		{0x80, 8, 0x8080},
		{0x3ff, 10, 0xffff},
		{0x200, 10, 0x8020},
		{0xfff, 12, 0xffff},
		{0, 12, 0},
		{0xabcd, 16, 0xabcd},
	}
	for _, tt := range tests {
		if got := scaleTo16(tt.v, tt.bitDepth); got != tt.want {
			t.Errorf("scaleTo16(%#x, %d) = %#x, want %#x", tt.v, tt.bitDepth, got, tt.want)
		}
	}
}
