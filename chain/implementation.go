// Copyright (C) 2022-2025, dcSpark. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"sync"

	"github.com/luxfi/geth/common"
)

// ImplementationStore is the proxy layer's active-implementation pointer.
type ImplementationStore interface {
	Active() common.Address
	SetActive(addr common.Address)
}

var _ ImplementationStore = (*MemoryImplementationStore)(nil)

// MemoryImplementationStore holds the pointer in memory.
type MemoryImplementationStore struct {
	lock   sync.RWMutex
	active common.Address
}

func NewMemoryImplementationStore(active common.Address) *MemoryImplementationStore {
	return &MemoryImplementationStore{active: active}
}

func (s *MemoryImplementationStore) Active() common.Address {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.active
}

func (s *MemoryImplementationStore) SetActive(addr common.Address) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.active = addr
}
