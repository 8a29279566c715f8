// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sharpyuv

import (
	"math"
	"sync"
)

// Transfer selects the curve used to blend in linear light.
type Transfer uint8

const (
	// TransferSRGB is the IEC 61966-2-1 curve.
	TransferSRGB Transfer = iota
	// TransferLinear treats samples as already linear.
	TransferLinear
)

// linearMax is the top of the 16-bit linear scale.
const linearMax = 1<<16 - 1

// gammaTables maps between gamma-encoded samples of one bit depth and
// 16-bit linear light.
type gammaTables struct {
	toLinear   []uint32
	fromLinear []uint16
}

var (
	tablesMu sync.Mutex
	tables   = map[int]*gammaTables{}
)

func srgbToLinear(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func linearToSRGB(v float64) float64 {
	if v <= 0.0031308 {
		return v * 12.92
	}
	return 1.055*math.Pow(v, 1/2.4) - 0.055
}

// sRGBTables returns the lazily built tables for bitDepth.
func sRGBTables(bitDepth int) *gammaTables {
	tablesMu.Lock()
	defer tablesMu.Unlock()
	if t, ok := tables[bitDepth]; ok {
		return t
	}

	maxV := float64(int(1)<<bitDepth - 1)
	t := &gammaTables{
		toLinear:   make([]uint32, 1<<bitDepth),
		fromLinear: make([]uint16, linearMax+1),
	}
	for i := range t.toLinear {
		t.toLinear[i] = uint32(srgbToLinear(float64(i)/maxV)*linearMax + 0.5)
	}
	for i := range t.fromLinear {
		t.fromLinear[i] = uint16(linearToSRGB(float64(i)/linearMax)*maxV + 0.5)
	}
	tables[bitDepth] = t
	return t
}

// curve converts between gamma and linear for one bit depth.
type curve struct {
	shift  int // linear identity scale for TransferLinear
	tables *gammaTables
}

func newCurve(tf Transfer, bitDepth int) curve {
	c := curve{shift: 16 - bitDepth}
	if tf == TransferSRGB {
		c.tables = sRGBTables(bitDepth)
	}
	return c
}

func (c curve) toLinear(v uint16) uint32 {
	if c.tables == nil {
		return uint32(v) << c.shift
	}
	return c.tables.toLinear[v]
}

func (c curve) fromLinear(v uint32) uint16 {
	if v > linearMax {
		v = linearMax
	}
	if c.tables == nil {
		return uint16(v >> c.shift)
	}
	return c.tables.fromLinear[v]
}
