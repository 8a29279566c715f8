// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/text/language"

	"github.com/gogpu/colorconv"
	"github.com/gogpu/colorconv/colorstate"
	"github.com/gogpu/colorconv/conv"
	"github.com/gogpu/colorconv/pixbuf"
)

func TestParseTarget(t *testing.T) {
	tests := []struct {
		colorspace, chroma, rng string
		matrix                  int
		wantCS                  colorstate.Colorspace
		wantChroma              colorstate.Chroma
		wantErr                 bool
	}{
		{"ycbcr", "420", "", -1, colorstate.ColorspaceYCbCr, colorstate.Chroma420, false},
		{"RGB", "rgba", "full", -1, colorstate.ColorspaceRGB, colorstate.ChromaInterleavedRGBA, false},
		{"mono", "mono", "limited", 1, colorstate.ColorspaceMonochrome, colorstate.ChromaMonochrome, false},
		{"rgb", "rrggbbaa_le", "", -1, colorstate.ColorspaceRGB, colorstate.ChromaInterleavedRRGGBBAALE, false},
		{"lab", "444", "", -1, 0, 0, true},
		{"rgb", "411", "", -1, 0, 0, true},
		{"rgb", "444", "pc", -1, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.colorspace+"/"+tt.chroma, func(t *testing.T) {
			got, err := parseTarget(tt.colorspace, tt.chroma, 0, tt.matrix, tt.rng)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.Colorspace != tt.wantCS || got.Chroma != tt.wantChroma {
				t.Errorf("target = %v/%v, want %v/%v", got.Colorspace, got.Chroma, tt.wantCS, tt.wantChroma)
			}
			if tt.matrix < 0 && got.Colorimetry.MatrixCoefficients != colorstate.MatrixUnspecified {
				t.Errorf("matrix = %d, want unspecified", got.Colorimetry.MatrixCoefficients)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want conv.Color16
	}{
		{"white", conv.Color16{R: 0xffff, G: 0xffff, B: 0xffff}},
		{"Navy", conv.Color16{R: 0, G: 0, B: 128 * 257}},
		{"#ff8000", conv.Color16{R: 0xffff, G: 0x80 * 257, B: 0}},
		{"ccc", conv.Color16{R: 0xcccc, G: 0xcccc, B: 0xcccc}},
	}
	for _, tt := range tests {
		got, err := parseColor(tt.in)
		if err != nil {
			t.Errorf("parseColor(%q) = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
	for _, bad := range []string{"nocolor", "#12345", "#gggggg"} {
		if _, err := parseColor(bad); err == nil {
			t.Errorf("parseColor(%q) succeeded", bad)
		}
	}
}

func TestParseOptions(t *testing.T) {
	opts, err := parseOptions("sharp", "nearest", true, "checkerboard", "black", "white", 8)
	if err != nil {
		t.Fatal(err)
	}
	if opts.PreferredChromaDownsampling != conv.DownsamplingSharp ||
		opts.PreferredChromaUpsampling != conv.UpsamplingNearestNeighbor ||
		opts.OnlyUsePreferredChromaAlgorithm ||
		opts.AlphaComposition != conv.CompositionCheckerboard ||
		opts.BackgroundColor != (conv.Color16{}) ||
		opts.CheckerboardSquareSize != 8 {
		t.Errorf("opts = %+v", opts)
	}
	if _, err := parseOptions("average", "bilinear", false, "none", "white", "white", 0); err == nil {
		t.Error("zero tile size accepted")
	}
}

func testImage(t *testing.T) *pixbuf.Image {
	t.Helper()
	img, err := pixbuf.New(5, 3, colorstate.ColorspaceRGB, colorstate.Chroma444)
	if err != nil {
		t.Fatal(err)
	}
	for i, ch := range []pixbuf.Channel{pixbuf.ChannelR, pixbuf.ChannelG, pixbuf.ChannelB} {
		p, err := img.AddPlane(ch, 5, 3, 8)
		if err != nil {
			t.Fatal(err)
		}
		for y, row := range pixbuf.Rows[uint8](p) {
			for x := range row {
				row[x] = uint8(i*60 + x*10 + y)
			}
		}
	}
	return img
}

func TestDumpRoundTrip(t *testing.T) {
	img, err := colorconv.Convert(testImage(t), colorconv.Target{
		Colorspace: colorstate.ColorspaceYCbCr,
		Chroma:     colorstate.Chroma420,
	}, colorconv.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := encodeDump(&buf, img); err != nil {
		t.Fatal(err)
	}
	w, h, planes, err := decodeDump(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if w != 5 || h != 3 || len(planes) != 3 {
		t.Fatalf("dump = %dx%d with %d planes", w, h, len(planes))
	}
	for hdr, data := range planes {
		p := img.Plane(pixbuf.Channel(hdr.Channel))
		var want []byte
		for y := range p.Height() {
			want = append(want, p.Row(y)...)
		}
		if !bytes.Equal(data, want) {
			t.Errorf("%v plane differs", pixbuf.Channel(hdr.Channel))
		}
	}

	if _, _, _, err := decodeDump(bytes.NewReader([]byte("not zstd"))); err == nil {
		t.Error("garbage decoded")
	}
}

func TestReport(t *testing.T) {
	img := testImage(t)
	c := colorconv.NewConverter()
	plan, err := c.Plan(img.State(), colorconv.Target{Colorspace: colorstate.ColorspaceYCbCr, Chroma: colorstate.Chroma420}, colorconv.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	out, err := plan.Execute(img, colorconv.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	report(&buf, language.English, img, out, plan)
	for _, want := range []string{"plan:   2 steps, cost 22", "rgb_to_ycbcr", "ycbcr444_to_420_average"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("report missing %q:\n%s", want, buf.String())
		}
	}
}
