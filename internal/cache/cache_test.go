// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cache

import (
	"sync"
	"sync/atomic"
	"testing"
)

func intHasher(k int) uint64 { return HashUint64s(uint64(k)) }

// oneShard routes every key to shard 0 so eviction order is observable.
func oneShard(int) uint64 { return 0 }

func TestGetAdd(t *testing.T) {
	c := New[int, string](16, intHasher)
	if _, ok := c.Get(1); ok {
		t.Fatal("Get on empty cache hit")
	}
	c.Add(1, "one")
	c.Add(2, "two")
	c.Add(1, "uno")

	if v, ok := c.Get(1); !ok || v != "uno" {
		t.Errorf("Get(1) = %q, %v, want uno, true", v, ok)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}

	st := c.Stats()
	if st.Hits != 1 || st.Misses != 1 {
		t.Errorf("hits/misses = %d/%d, want 1/1", st.Hits, st.Misses)
	}
	if st.HitRate() != 0.5 {
		t.Errorf("HitRate() = %v, want 0.5", st.HitRate())
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	// Capacity 8*ShardCount entries gives 8 per shard; all keys share one.
	c := New[int, int](8*ShardCount, oneShard)
	for i := range 8 {
		c.Add(i, i)
	}
	c.Get(0) // 1 is now the oldest
	c.Add(100, 100)

	if _, ok := c.Get(1); ok {
		t.Error("least recently used entry survived")
	}
	if _, ok := c.Get(0); !ok {
		t.Error("recently used entry evicted")
	}
	if got := c.Stats().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1", got)
	}
	if c.Len() != 8 {
		t.Errorf("Len() = %d, want 8", c.Len())
	}
}

func TestGetOrCreate(t *testing.T) {
	c := New[int, int](0, intHasher)
	calls := 0
	create := func() (int, bool) {
		calls++
		return 42, true
	}
	for range 3 {
		if v := c.GetOrCreate(7, create); v != 42 {
			t.Fatalf("GetOrCreate = %d, want 42", v)
		}
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}
}

func TestGetOrCreateNotKept(t *testing.T) {
	c := New[int, int](0, intHasher)
	v := c.GetOrCreate(1, func() (int, bool) { return -1, false })
	if v != -1 {
		t.Errorf("value = %d, want -1", v)
	}
	if c.Len() != 0 {
		t.Error("uncacheable value was stored")
	}
}

func TestGetOrCreateConcurrent(t *testing.T) {
	c := New[int, int](64, intHasher)
	var calls atomic.Int32
	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := range 16 {
				c.GetOrCreate(k, func() (int, bool) {
					calls.Add(1)
					return k * k, true
				})
			}
		}()
	}
	wg.Wait()
	if got := calls.Load(); got != 16 {
		t.Errorf("create called %d times, want 16", got)
	}
	for k := range 16 {
		if v, ok := c.Get(k); !ok || v != k*k {
			t.Errorf("Get(%d) = %d, %v", k, v, ok)
		}
	}
}

func TestDeletePurge(t *testing.T) {
	c := New[int, int](32, intHasher)
	for i := range 10 {
		c.Add(i, i)
	}
	if !c.Delete(3) || c.Delete(3) {
		t.Error("Delete should succeed once")
	}
	if c.Len() != 9 {
		t.Errorf("Len() = %d, want 9", c.Len())
	}
	c.Purge()
	if c.Len() != 0 {
		t.Errorf("Len() after Purge = %d", c.Len())
	}
	c.Add(1, 1)
	if v, ok := c.Get(1); !ok || v != 1 {
		t.Error("cache unusable after Purge")
	}
}

func TestRecencyList(t *testing.T) {
	var l recency[string, int]
	a := l.pushFront("a", 1)
	b := l.pushFront("b", 2)
	l.pushFront("c", 3)
	l.touch(a)
	l.remove(b)

	var keys []string
	for e := l.head; e != nil; e = e.next {
		keys = append(keys, e.key)
	}
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "c" {
		t.Errorf("order = %v, want [a c]", keys)
	}
	if l.len() != 2 {
		t.Errorf("len = %d, want 2", l.len())
	}
	if e := l.popBack(); e == nil || e.key != "c" {
		t.Errorf("popBack = %v", e)
	}
	l.popBack()
	if l.popBack() != nil || l.head != nil || l.tail != nil {
		t.Error("list not empty")
	}
}

func TestHashUint64s(t *testing.T) {
	if HashUint64s(1, 2) == HashUint64s(2, 1) {
		t.Error("hash ignores order")
	}
	if HashUint64s(5) != HashUint64s(5) {
		t.Error("hash not deterministic")
	}
}
