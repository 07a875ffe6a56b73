// Copyright (C) 2022-2025, dcSpark. All rights reserved.
// See the file LICENSE for licensing terms.

package cache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFIFOCacheEviction(t *testing.T) {
	require := require.New(t)

	c := NewFIFOCache[int, string](2)
	c.Put(1, "one")
	c.Put(2, "two")
	require.Equal(2, c.Len())

	// Inserting a third key evicts the oldest.
	c.Put(3, "three")
	require.Equal(2, c.Len())
	_, ok := c.Get(1)
	require.False(ok)

	v, ok := c.Get(2)
	require.True(ok)
	require.Equal("two", v)
	v, ok = c.Get(3)
	require.True(ok)
	require.Equal("three", v)
}

func TestFIFOCacheUpdateKeepsEvictionSlot(t *testing.T) {
	require := require.New(t)

	c := NewFIFOCache[int, string](2)
	c.Put(1, "one")
	c.Put(2, "two")

	// Updating key 1 does not move it to the back of the queue, so it is
	// still the first to go.
	c.Put(1, "uno")
	v, ok := c.Get(1)
	require.True(ok)
	require.Equal("uno", v)

	c.Put(3, "three")
	_, ok = c.Get(1)
	require.False(ok)
	_, ok = c.Get(2)
	require.True(ok)
}

func TestFIFOCacheCapacityFloor(t *testing.T) {
	require := require.New(t)

	c := NewFIFOCache[int, int](0)
	c.Put(1, 10)
	require.Equal(1, c.Len())

	c.Put(2, 20)
	require.Equal(1, c.Len())
	_, ok := c.Get(1)
	require.False(ok)
	v, ok := c.Get(2)
	require.True(ok)
	require.Equal(20, v)
}
