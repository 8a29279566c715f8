// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package cache provides a generic sharded LRU cache.
//
// The converter keys it by (input state, target state, options) to reuse
// conversion plans across images of the same format:
//
//	plans := cache.New[planKey, *pipeline.Plan](256, hashPlanKey)
//	plan := plans.GetOrCreate(key, func() (*pipeline.Plan, bool) {
//		p, err := reg.Build(in, target, opts)
//		return p, err == nil
//	})
//
// Each shard owns a mutex, a map and a recency list. Eviction is exact LRU
// within a shard. Hit, miss and eviction counters are atomic.
//
// A Cache is safe for concurrent use and must not be copied after creation.
package cache
