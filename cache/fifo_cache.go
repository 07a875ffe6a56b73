// Copyright (C) 2022-2025, dcSpark. All rights reserved.
// See the file LICENSE for licensing terms.

// Package cache provides a small fixed-capacity FIFO cache used to memoize
// pure computations such as payload decoding.
package cache

import "sync"

// FIFOCache evicts the oldest entry once capacity is reached. Updating an
// existing key does not refresh its eviction slot.
type FIFOCache[K comparable, V any] struct {
	lock     sync.RWMutex
	capacity int
	data     map[K]V
	order    []K
}

// NewFIFOCache returns a cache holding at most capacity entries. Capacity
// must be positive.
func NewFIFOCache[K comparable, V any](capacity int) *FIFOCache[K, V] {
	if capacity <= 0 {
		capacity = 1
	}
	return &FIFOCache[K, V]{
		capacity: capacity,
		data:     make(map[K]V, capacity),
	}
}

// Get returns the cached value for key, if present.
func (c *FIFOCache[K, V]) Get(key K) (V, bool) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	v, ok := c.data[key]
	return v, ok
}

// Put stores value under key, evicting the oldest entry when full.
func (c *FIFOCache[K, V]) Put(key K, value V) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if _, ok := c.data[key]; ok {
		c.data[key] = value
		return
	}
	if len(c.order) == c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.data, oldest)
	}
	c.data[key] = value
	c.order = append(c.order, key)
}

// Len returns the number of cached entries.
func (c *FIFOCache[K, V]) Len() int {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return len(c.data)
}
