// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package pixbuf provides the in-memory pixel buffer consumed and produced by
// color conversions.
//
// An Image owns a set of planes keyed by Channel. Planar layouts use one plane
// per channel; interleaved layouts store every sample in ChannelInterleaved.
// Samples of up to 8 bits take one byte, deeper samples two.
package pixbuf

import (
	"fmt"
	"iter"
	"slices"

	"github.com/gogpu/colorconv/colorstate"
)

// rowAlign is the default row alignment in bytes.
const rowAlign = 16

// Image is a multi-plane pixel buffer with auxiliary metadata.
//
// Thread safety: Image is safe for concurrent reads. Adding planes or
// changing metadata requires external synchronization.
type Image struct {
	width      int
	height     int
	colorspace colorstate.Colorspace
	chroma     colorstate.Chroma

	planes    map[Channel]*Plane
	allocated int64

	meta   Metadata
	limits Limits
}

// Option configures an Image during creation.
type Option func(*Image)

// WithLimits sets the allocation policy checked by AddPlane.
func WithLimits(l Limits) Option {
	return func(img *Image) {
		img.limits = l
	}
}

// New creates an image without planes.
func New(width, height int, cs colorstate.Colorspace, chroma colorstate.Chroma, opts ...Option) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	img := &Image{
		width:      width,
		height:     height,
		colorspace: cs,
		chroma:     chroma,
		planes:     make(map[Channel]*Plane, 4),
	}
	for _, opt := range opts {
		opt(img)
	}
	return img, nil
}

// Width returns the image width in pixels.
func (img *Image) Width() int {
	return img.width
}

// Height returns the image height in pixels.
func (img *Image) Height() int {
	return img.height
}

// Colorspace returns the color model of the samples.
func (img *Image) Colorspace() colorstate.Colorspace {
	return img.colorspace
}

// Chroma returns the sampling layout of the samples.
func (img *Image) Chroma() colorstate.Chroma {
	return img.chroma
}

// Limits returns the allocation policy of the image.
func (img *Image) Limits() Limits {
	return img.limits
}

// AllocatedBytes returns the total plane memory held by the image.
func (img *Image) AllocatedBytes() int64 {
	return img.allocated
}

// AddPlane allocates a zeroed plane with a 16-byte aligned stride.
func (img *Image) AddPlane(ch Channel, width, height, bitDepth int) (*Plane, error) {
	samples := img.samplesFor(ch)
	rowBytes := width * samples * bytesPerSample(bitDepth)
	stride := (rowBytes + rowAlign - 1) &^ (rowAlign - 1)
	return img.AddPlaneWithStride(ch, width, height, bitDepth, stride)
}

// AddPlaneWithStride allocates a zeroed plane with an explicit stride.
// The stride must hold a full row and be even for samples above 8 bits.
func (img *Image) AddPlaneWithStride(ch Channel, width, height, bitDepth, stride int) (*Plane, error) {
	if ch >= channelCount {
		return nil, fmt.Errorf("pixbuf: unknown channel %d", ch)
	}
	if _, ok := img.planes[ch]; ok {
		return nil, fmt.Errorf("%w: %v", ErrChannelExists, ch)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %v plane %dx%d", ErrInvalidDimensions, ch, width, height)
	}
	if bitDepth < 1 || bitDepth > 16 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBitDepth, bitDepth)
	}

	samples := img.samplesFor(ch)
	bps := bytesPerSample(bitDepth)
	rowBytes := width * samples * bps
	if stride < rowBytes || stride%bps != 0 {
		return nil, fmt.Errorf("%w: stride %d for row of %d bytes", ErrInvalidStride, stride, rowBytes)
	}

	size := int64(stride) * int64(height)
	if err := img.limits.Check(width, height, size, img.allocated); err != nil {
		return nil, err
	}

	p := &Plane{
		width:    width,
		height:   height,
		bitDepth: bitDepth,
		samples:  samples,
		stride:   stride,
		data:     defaultPool.Get(int(size)),
	}
	img.planes[ch] = p
	img.allocated += size
	return p, nil
}

func (img *Image) samplesFor(ch Channel) int {
	if ch == ChannelInterleaved {
		return img.chroma.InterleavedSamples()
	}
	return 1
}

// Plane returns the plane for ch, or nil if absent.
func (img *Image) Plane(ch Channel) *Plane {
	return img.planes[ch]
}

// HasChannel reports whether a plane for ch exists.
func (img *Image) HasChannel(ch Channel) bool {
	_, ok := img.planes[ch]
	return ok
}

// Channels returns the present channels in ascending order.
func (img *Image) Channels() []Channel {
	out := make([]Channel, 0, len(img.planes))
	for ch := range img.planes {
		out = append(out, ch)
	}
	slices.Sort(out)
	return out
}

// ChannelWidth returns the width of the plane for ch, or 0 if absent.
func (img *Image) ChannelWidth(ch Channel) int {
	if p := img.planes[ch]; p != nil {
		return p.width
	}
	return 0
}

// ChannelHeight returns the height of the plane for ch, or 0 if absent.
func (img *Image) ChannelHeight(ch Channel) int {
	if p := img.planes[ch]; p != nil {
		return p.height
	}
	return 0
}

// ChannelBitDepth returns the bit depth of the plane for ch, or 0 if absent.
func (img *Image) ChannelBitDepth(ch Channel) int {
	if p := img.planes[ch]; p != nil {
		return p.bitDepth
	}
	return 0
}

// Metadata returns a pointer to the image's auxiliary data.
func (img *Image) Metadata() *Metadata {
	return &img.meta
}

// SetColorimetry labels the image with c.
func (img *Image) SetColorimetry(c colorstate.Colorimetry) {
	img.meta.Colorimetry = &c
}

// Colorimetry returns the image's labeling resolved against the defaults.
func (img *Image) Colorimetry() colorstate.Colorimetry {
	if img.meta.Colorimetry == nil {
		return colorstate.DefaultColorimetry()
	}
	return img.meta.Colorimetry.WithDefaults()
}

// CopyMetadataFrom replaces the metadata of img with a deep copy of src's.
func (img *Image) CopyMetadataFrom(src *Image) {
	img.meta = src.meta.Clone()
}

// PrimaryChannel returns the channel whose bit depth defines the image's
// bit depth.
func PrimaryChannel(cs colorstate.Colorspace, chroma colorstate.Chroma) Channel {
	switch {
	case chroma.IsInterleaved():
		return ChannelInterleaved
	case cs == colorstate.ColorspaceRGB:
		return ChannelR
	default:
		return ChannelY
	}
}

// LayoutChannels returns the channels an image of the given layout holds.
func LayoutChannels(cs colorstate.Colorspace, chroma colorstate.Chroma, alpha bool) []Channel {
	var chans []Channel
	switch {
	case chroma.IsInterleaved():
		return []Channel{ChannelInterleaved}
	case cs == colorstate.ColorspaceRGB:
		chans = []Channel{ChannelR, ChannelG, ChannelB}
	case cs == colorstate.ColorspaceYCbCr:
		chans = []Channel{ChannelY, ChannelCb, ChannelCr}
	default:
		chans = []Channel{ChannelY}
	}
	if alpha {
		chans = append(chans, ChannelAlpha)
	}
	return chans
}

// State derives the color state of the image from its planes and
// colorimetry labeling.
func (img *Image) State() colorstate.State {
	s := colorstate.State{
		Colorspace:   img.colorspace,
		Chroma:       img.chroma,
		BitsPerPixel: img.ChannelBitDepth(PrimaryChannel(img.colorspace, img.chroma)),
		Colorimetry:  img.Colorimetry(),
	}
	if img.chroma.IsInterleaved() {
		s.HasAlpha = img.chroma.HasAlpha()
	} else {
		s.HasAlpha = img.HasChannel(ChannelAlpha)
	}
	return s
}

// Rows iterates over the rows of p as samples of type T.
// It yields nothing when T does not match the plane's sample width.
func Rows[T Sample](p *Plane) iter.Seq2[int, []T] {
	return func(yield func(int, []T) bool) {
		for y := range p.height {
			row := Row[T](p, y)
			if row == nil {
				return
			}
			if !yield(y, row) {
				return
			}
		}
	}
}
