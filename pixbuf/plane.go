// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pixbuf

import "unsafe"

// Channel identifies a plane of an Image.
type Channel uint8

const (
	// ChannelY is the luma plane of YCbCr and monochrome images.
	ChannelY Channel = iota
	// ChannelCb is the blue-difference chroma plane.
	ChannelCb
	// ChannelCr is the red-difference chroma plane.
	ChannelCr
	// ChannelR is the red plane of planar RGB images.
	ChannelR
	// ChannelG is the green plane of planar RGB images.
	ChannelG
	// ChannelB is the blue plane of planar RGB images.
	ChannelB
	// ChannelAlpha is the alpha plane of planar images.
	ChannelAlpha
	// ChannelInterleaved holds all samples of interleaved layouts.
	ChannelInterleaved

	channelCount
)

// String returns a short channel name.
func (c Channel) String() string {
	switch c {
	case ChannelY:
		return "Y"
	case ChannelCb:
		return "Cb"
	case ChannelCr:
		return "Cr"
	case ChannelR:
		return "R"
	case ChannelG:
		return "G"
	case ChannelB:
		return "B"
	case ChannelAlpha:
		return "A"
	case ChannelInterleaved:
		return "interleaved"
	default:
		return "Unknown"
	}
}

// Sample is the in-memory type of one sample: uint8 for 8-bit planes,
// uint16 for deeper planes.
type Sample interface {
	~uint8 | ~uint16
}

// Plane is one channel's samples stored as rows of Stride bytes.
//
// Samples of up to 8 bits occupy one byte, deeper samples two bytes. Planar
// layouts store wide samples in native byte order; interleaved RRGGBB layouts
// store them in the byte order the layout names.
type Plane struct {
	width    int
	height   int
	bitDepth int
	samples  int // samples per pixel
	stride   int
	data     []byte
}

// Width returns the plane width in pixels.
func (p *Plane) Width() int {
	return p.width
}

// Height returns the plane height in pixels.
func (p *Plane) Height() int {
	return p.height
}

// BitDepth returns the number of significant bits per sample.
func (p *Plane) BitDepth() int {
	return p.bitDepth
}

// SamplesPerPixel returns 1 for planar channels and 3 or 4 for interleaved planes.
func (p *Plane) SamplesPerPixel() int {
	return p.samples
}

// BytesPerSample returns 1 or 2.
func (p *Plane) BytesPerSample() int {
	return bytesPerSample(p.bitDepth)
}

// Stride returns the number of bytes per row including padding.
func (p *Plane) Stride() int {
	return p.stride
}

// RowBytes returns the number of meaningful bytes in a row.
func (p *Plane) RowBytes() int {
	return p.width * p.samples * p.BytesPerSample()
}

// Data returns the raw plane memory, Stride*Height bytes.
func (p *Plane) Data() []byte {
	return p.data
}

// Row returns the meaningful bytes of row y, or nil if y is out of range.
func (p *Plane) Row(y int) []byte {
	if y < 0 || y >= p.height {
		return nil
	}
	start := y * p.stride
	return p.data[start : start+p.RowBytes()]
}

// Row8 returns row y of an 8-bit plane.
func (p *Plane) Row8(y int) []uint8 {
	return Row[uint8](p, y)
}

// Row16 returns row y of a wide plane as native-endian samples.
func (p *Plane) Row16(y int) []uint16 {
	return Row[uint16](p, y)
}

// Row returns row y of p as samples of type T. It returns nil when y is out of
// range or when the size of T does not match the plane's sample width.
func Row[T Sample](p *Plane, y int) []T {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size != p.BytesPerSample() {
		return nil
	}
	row := p.Row(y)
	if len(row) == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(row))), len(row)/size)
}

// MaxValue returns the largest sample value for the plane's bit depth.
func (p *Plane) MaxValue() int {
	return 1<<p.bitDepth - 1
}

func bytesPerSample(bitDepth int) int {
	if bitDepth > 8 {
		return 2
	}
	return 1
}
