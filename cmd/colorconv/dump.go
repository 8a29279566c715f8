// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/binary"
	"errors"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/gogpu/colorconv/pixbuf"
)

// dumpMagic opens every plane dump.
var dumpMagic = [4]byte{'C', 'C', 'V', '1'}

var errBadDump = errors.New("colorconv: not a plane dump")

// planeHeader precedes the rows of one plane. Rows are written without
// stride padding, samples wider than 8 bits in native order.
type planeHeader struct {
	Channel  uint8
	BitDepth uint8
	Samples  uint8 // per pixel, more than one for interleaved planes
	Width    uint32
	Height   uint32
}

func writeDump(path string, img *pixbuf.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encodeDump(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// encodeDump writes the magic, the image size, the plane count and every
// plane through a zstd stream.
func encodeDump(w io.Writer, img *pixbuf.Image) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return err
	}
	chans := img.Channels()
	if err := binary.Write(enc, binary.LittleEndian, dumpMagic); err != nil {
		_ = enc.Close()
		return err
	}
	head := [3]uint32{uint32(img.Width()), uint32(img.Height()), uint32(len(chans))}
	if err := binary.Write(enc, binary.LittleEndian, head); err != nil {
		_ = enc.Close()
		return err
	}
	for _, ch := range chans {
		p := img.Plane(ch)
		h := planeHeader{
			Channel:  uint8(ch),
			BitDepth: uint8(p.BitDepth()),
			Samples:  uint8(p.SamplesPerPixel()),
			Width:    uint32(p.Width()),
			Height:   uint32(p.Height()),
		}
		if err := binary.Write(enc, binary.LittleEndian, h); err != nil {
			_ = enc.Close()
			return err
		}
		for y := range p.Height() {
			if _, err := enc.Write(p.Row(y)); err != nil {
				_ = enc.Close()
				return err
			}
		}
	}
	return enc.Close()
}

// decodeDump reads a dump back into header and row data per plane.
func decodeDump(r io.Reader) (width, height int, planes map[planeHeader][]byte, err error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return 0, 0, nil, err
	}
	defer dec.Close()

	var magic [4]byte
	if err := binary.Read(dec, binary.LittleEndian, &magic); err != nil {
		return 0, 0, nil, err
	}
	if magic != dumpMagic {
		return 0, 0, nil, errBadDump
	}
	var head [3]uint32
	if err := binary.Read(dec, binary.LittleEndian, &head); err != nil {
		return 0, 0, nil, err
	}
	planes = make(map[planeHeader][]byte, head[2])
	for range head[2] {
		var h planeHeader
		if err := binary.Read(dec, binary.LittleEndian, &h); err != nil {
			return 0, 0, nil, err
		}
		bps := 1
		if h.BitDepth > 8 {
			bps = 2
		}
		data := make([]byte, int(h.Width)*int(h.Height)*bps*int(h.Samples))
		if _, err := io.ReadFull(dec, data); err != nil {
			return 0, 0, nil, err
		}
		planes[h] = data
	}
	return int(head[0]), int(head[1]), planes, nil
}
