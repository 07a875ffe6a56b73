// Copyright (C) 2022-2025, dcSpark. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"sync"
	"time"
)

// Clock supplies the current time for vote-period deadlines.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// MockClock is a manually advanced Clock for tests.
type MockClock struct {
	lock sync.Mutex
	now  time.Time
}

func NewMockClock(start time.Time) *MockClock {
	return &MockClock{now: start}
}

func (c *MockClock) Now() time.Time {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.now
}

// Set moves the clock to t.
func (c *MockClock) Set(t time.Time) {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.now = t
}

// Advance moves the clock forward by d.
func (c *MockClock) Advance(d time.Duration) {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.now = c.now.Add(d)
}
