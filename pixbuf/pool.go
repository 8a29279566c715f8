// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pixbuf

import (
	"sync"
	"unsafe"
)

// Pool is a thread-safe pool for reusing plane memory.
//
// Pool groups buffers by their exact byte size. Conversion pipelines allocate
// several short-lived intermediate images of identical geometry; returning
// them here reduces GC pressure for repeated conversions.
//
// Thread safety: All methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[int][][]byte
	maxSize int // max buffers per bucket
}

// NewPool creates a pool retaining at most maxPerBucket buffers per size.
// A maxPerBucket of 0 means unlimited (use with caution).
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[int][][]byte),
		maxSize: maxPerBucket,
	}
}

// Get returns a zeroed buffer of exactly n bytes whose start is aligned for
// 2-byte samples.
func (p *Pool) Get(n int) []byte {
	p.mu.Lock()
	bucket := p.buckets[n]
	if len(bucket) > 0 {
		buf := bucket[len(bucket)-1]
		p.buckets[n] = bucket[:len(bucket)-1]
		p.mu.Unlock()

		clear(buf)
		return buf
	}
	p.mu.Unlock()

	return allocAligned(n)
}

// Put returns a buffer for reuse. Buffers beyond the bucket capacity are
// dropped for the GC to reclaim.
func (p *Pool) Put(buf []byte) {
	if len(buf) == 0 {
		return
	}
	n := len(buf)

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[n]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[n] = append(bucket, buf)
}

// Len returns the number of buffers currently retained.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	total := 0
	for _, b := range p.buckets {
		total += len(b)
	}
	return total
}

// allocAligned allocates through a uint16 backing array so wide samples can
// be viewed in place.
func allocAligned(n int) []byte {
	if n == 0 {
		return nil
	}
	backing := make([]uint16, (n+1)/2)
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(backing))), n)
}

// defaultPool backs planes that were not given an explicit pool.
var defaultPool = NewPool(8)

// Release returns the plane memory of img to the default pool.
// img must not be used afterwards.
func Release(img *Image) {
	if img == nil {
		return
	}
	for ch, p := range img.planes {
		defaultPool.Put(p.data)
		p.data = nil
		delete(img.planes, ch)
	}
	img.allocated = 0
}
