// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cache

import "testing"

func BenchmarkGetHit(b *testing.B) {
	c := New[int, int](1024, intHasher)
	for i := range 100 {
		c.Add(i, i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get(50)
	}
}

func BenchmarkAdd(b *testing.B) {
	c := New[int, int](1024, intHasher)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Add(i%2048, i)
	}
}

func BenchmarkGetOrCreateParallel(b *testing.B) {
	c := New[int, int](1024, intHasher)
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			c.GetOrCreate(i%256, func() (int, bool) { return i, true })
			i++
		}
	})
}
