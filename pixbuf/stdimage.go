// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pixbuf

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/colorconv/colorstate"
)

// FromImage copies a standard library image into a new Image.
//
// Gray, Gray16, NRGBA, RGBA, NRGBA64, RGBA64 and YCbCr (4:4:4, 4:2:2,
// 4:2:0) map onto their native layouts. Any other image is rendered to
// NRGBA first. Premultiplied sources set Metadata.PremultipliedAlpha.
func FromImage(src image.Image, opts ...Option) (*Image, error) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	switch s := src.(type) {
	case *image.Gray:
		img, p, err := newSingle(w, h, colorstate.ColorspaceMonochrome, colorstate.ChromaMonochrome, ChannelY, 8, opts)
		if err != nil {
			return nil, err
		}
		for y := range h {
			off := s.PixOffset(b.Min.X, b.Min.Y+y)
			copy(p.Row(y), s.Pix[off:off+w])
		}
		return img, nil

	case *image.Gray16:
		img, p, err := newSingle(w, h, colorstate.ColorspaceMonochrome, colorstate.ChromaMonochrome, ChannelY, 16, opts)
		if err != nil {
			return nil, err
		}
		for y := range h {
			off := s.PixOffset(b.Min.X, b.Min.Y+y)
			row := p.Row16(y)
			for x := range row {
				row[x] = binary.BigEndian.Uint16(s.Pix[off+2*x:])
			}
		}
		return img, nil

	case *image.NRGBA:
		return fromRGBA8(s.Pix, s.Stride, s.PixOffset(b.Min.X, b.Min.Y), w, h, false, opts)

	case *image.RGBA:
		return fromRGBA8(s.Pix, s.Stride, s.PixOffset(b.Min.X, b.Min.Y), w, h, true, opts)

	case *image.NRGBA64:
		return fromRGBA16(s.Pix, s.Stride, s.PixOffset(b.Min.X, b.Min.Y), w, h, false, opts)

	case *image.RGBA64:
		return fromRGBA16(s.Pix, s.Stride, s.PixOffset(b.Min.X, b.Min.Y), w, h, true, opts)

	case *image.YCbCr:
		if img, err := fromYCbCr(s, opts); !errors.Is(err, ErrUnsupportedImage) {
			return img, err
		}
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Copy(dst, image.Point{}, src, b, draw.Src, nil)
	return fromRGBA8(dst.Pix, dst.Stride, 0, w, h, false, opts)
}

func newSingle(w, h int, cs colorstate.Colorspace, chroma colorstate.Chroma, ch Channel, bitDepth int, opts []Option) (*Image, *Plane, error) {
	img, err := New(w, h, cs, chroma, opts...)
	if err != nil {
		return nil, nil, err
	}
	p, err := img.AddPlane(ch, w, h, bitDepth)
	if err != nil {
		return nil, nil, err
	}
	return img, p, nil
}

func fromRGBA8(pix []uint8, stride, off, w, h int, premul bool, opts []Option) (*Image, error) {
	img, p, err := newSingle(w, h, colorstate.ColorspaceRGB, colorstate.ChromaInterleavedRGBA, ChannelInterleaved, 8, opts)
	if err != nil {
		return nil, err
	}
	for y := range h {
		start := off + y*stride
		copy(p.Row(y), pix[start:start+4*w])
	}
	img.meta.PremultipliedAlpha = premul
	img.SetColorimetry(colorstate.DefaultColorimetry())
	return img, nil
}

// fromRGBA16 keeps the big-endian byte order of the standard library.
func fromRGBA16(pix []uint8, stride, off, w, h int, premul bool, opts []Option) (*Image, error) {
	img, p, err := newSingle(w, h, colorstate.ColorspaceRGB, colorstate.ChromaInterleavedRRGGBBAABE, ChannelInterleaved, 16, opts)
	if err != nil {
		return nil, err
	}
	for y := range h {
		start := off + y*stride
		copy(p.Row(y), pix[start:start+8*w])
	}
	img.meta.PremultipliedAlpha = premul
	img.SetColorimetry(colorstate.DefaultColorimetry())
	return img, nil
}

func fromYCbCr(s *image.YCbCr, opts []Option) (*Image, error) {
	var chroma colorstate.Chroma
	switch s.SubsampleRatio {
	case image.YCbCrSubsampleRatio444:
		chroma = colorstate.Chroma444
	case image.YCbCrSubsampleRatio422:
		chroma = colorstate.Chroma422
	case image.YCbCrSubsampleRatio420:
		chroma = colorstate.Chroma420
	default:
		return nil, ErrUnsupportedImage
	}

	b := s.Rect
	w, h := b.Dx(), b.Dy()
	img, err := New(w, h, colorstate.ColorspaceYCbCr, chroma, opts...)
	if err != nil {
		return nil, err
	}

	py, err := img.AddPlane(ChannelY, w, h, 8)
	if err != nil {
		return nil, err
	}
	for y := range h {
		off := s.YOffset(b.Min.X, b.Min.Y+y)
		copy(py.Row(y), s.Y[off:off+w])
	}

	cw, chh := chroma.ChromaSize(w, h)
	_, sy := chroma.Subsampling()
	for _, c := range []struct {
		ch  Channel
		src []uint8
	}{{ChannelCb, s.Cb}, {ChannelCr, s.Cr}} {
		p, err := img.AddPlane(c.ch, cw, chh, 8)
		if err != nil {
			return nil, err
		}
		for y := range chh {
			off := s.COffset(b.Min.X, b.Min.Y+y*sy)
			copy(p.Row(y), c.src[off:off+cw])
		}
	}

	// image.YCbCr is JFIF: BT.601 matrix, full range.
	cm := colorstate.DefaultColorimetry()
	cm.MatrixCoefficients = colorstate.MatrixBT601
	img.SetColorimetry(cm)
	return img, nil
}

// ToImage copies img into a standard library image.
//
// Monochrome becomes Gray or Gray16, 8-bit interleaved layouts NRGBA (RGBA
// when premultiplied), RRGGBB[AA] layouts NRGBA64 (RGBA64 when
// premultiplied) and 8-bit YCbCr 4:4:4/4:2:2/4:2:0 image.YCbCr. Other
// layouts return ErrUnsupportedImage; convert them first.
func (img *Image) ToImage() (image.Image, error) {
	w, h := img.width, img.height
	rect := image.Rect(0, 0, w, h)
	premul := img.meta.PremultipliedAlpha

	switch {
	case img.chroma == colorstate.ChromaMonochrome:
		p := img.Plane(ChannelY)
		if p == nil {
			return nil, fmt.Errorf("%w: missing Y plane", ErrUnsupportedImage)
		}
		if p.bitDepth == 8 {
			dst := image.NewGray(rect)
			for y := range h {
				copy(dst.Pix[y*dst.Stride:], p.Row(y))
			}
			return dst, nil
		}
		dst := image.NewGray16(rect)
		for y := range h {
			row := rowAs16(p, y)
			for x, v := range row {
				binary.BigEndian.PutUint16(dst.Pix[y*dst.Stride+2*x:], v)
			}
		}
		return dst, nil

	case img.chroma == colorstate.ChromaInterleavedRGB || img.chroma == colorstate.ChromaInterleavedRGBA:
		p := img.Plane(ChannelInterleaved)
		if p == nil {
			return nil, fmt.Errorf("%w: missing interleaved plane", ErrUnsupportedImage)
		}
		var pix []uint8
		var stride int
		var dst image.Image
		if premul {
			d := image.NewRGBA(rect)
			pix, stride, dst = d.Pix, d.Stride, d
		} else {
			d := image.NewNRGBA(rect)
			pix, stride, dst = d.Pix, d.Stride, d
		}
		n := p.samples
		for y := range h {
			src := p.Row(y)
			out := pix[y*stride:]
			for x := range w {
				out[4*x+0] = src[n*x+0]
				out[4*x+1] = src[n*x+1]
				out[4*x+2] = src[n*x+2]
				if n == 4 {
					out[4*x+3] = src[n*x+3]
				} else {
					out[4*x+3] = 0xff
				}
			}
		}
		return dst, nil

	case img.chroma.IsHDRInterleaved():
		p := img.Plane(ChannelInterleaved)
		if p == nil {
			return nil, fmt.Errorf("%w: missing interleaved plane", ErrUnsupportedImage)
		}
		var order binary.ByteOrder = binary.LittleEndian
		if img.chroma.IsBigEndian() {
			order = binary.BigEndian
		}
		var pix []uint8
		var stride int
		var dst image.Image
		if premul {
			d := image.NewRGBA64(rect)
			pix, stride, dst = d.Pix, d.Stride, d
		} else {
			d := image.NewNRGBA64(rect)
			pix, stride, dst = d.Pix, d.Stride, d
		}
		n := p.samples
		bd := p.bitDepth
		for y := range h {
			src := p.Row(y)
			out := pix[y*stride:]
			for x := range w {
				for c := range 4 {
					v := uint16(0xffff)
					if c < n {
						v = scaleTo16(order.Uint16(src[2*(n*x+c):]), bd)
					}
					binary.BigEndian.PutUint16(out[2*(4*x+c):], v)
				}
			}
		}
		return dst, nil

	case img.colorspace == colorstate.ColorspaceYCbCr:
		return img.toYCbCr()
	}
	return nil, fmt.Errorf("%w: %v/%v", ErrUnsupportedImage, img.colorspace, img.chroma)
}

func (img *Image) toYCbCr() (image.Image, error) {
	var ratio image.YCbCrSubsampleRatio
	switch img.chroma {
	case colorstate.Chroma444:
		ratio = image.YCbCrSubsampleRatio444
	case colorstate.Chroma422:
		ratio = image.YCbCrSubsampleRatio422
	case colorstate.Chroma420:
		ratio = image.YCbCrSubsampleRatio420
	default:
		return nil, fmt.Errorf("%w: YCbCr/%v", ErrUnsupportedImage, img.chroma)
	}
	py, pcb, pcr := img.Plane(ChannelY), img.Plane(ChannelCb), img.Plane(ChannelCr)
	if py == nil || pcb == nil || pcr == nil || py.bitDepth != 8 || pcb.bitDepth != 8 || pcr.bitDepth != 8 {
		return nil, fmt.Errorf("%w: YCbCr export needs 8-bit Y, Cb and Cr planes", ErrUnsupportedImage)
	}

	dst := image.NewYCbCr(image.Rect(0, 0, img.width, img.height), ratio)
	for y := range img.height {
		copy(dst.Y[y*dst.YStride:], py.Row(y))
	}
	for y := range pcb.height {
		copy(dst.Cb[y*dst.CStride:], pcb.Row(y))
		copy(dst.Cr[y*dst.CStride:], pcr.Row(y))
	}
	return dst, nil
}

// rowAs16 returns row y widened to uint16 and scaled to 16 bits.
func rowAs16(p *Plane, y int) []uint16 {
	out := make([]uint16, p.width)
	if p.bitDepth <= 8 {
		for x, v := range p.Row8(y) {
			out[x] = scaleTo16(uint16(v), p.bitDepth)
		}
		return out
	}
	for x, v := range p.Row16(y) {
		out[x] = scaleTo16(v, p.bitDepth)
	}
	return out
}

// scaleTo16 widens a sample of bitDepth bits to 16 bits by bit replication.
func scaleTo16(v uint16, bitDepth int) uint16 {
	if bitDepth <= 0 || bitDepth >= 16 {
		return v
	}
	out := uint32(v) << (16 - bitDepth)
	for shift := 16 - 2*bitDepth; ; shift -= bitDepth {
		if shift >= 0 {
			out |= uint32(v) << shift
		} else {
			out |= uint32(v) >> -shift
			break
		}
	}
	return uint16(out)
}
