// Copyright (C) 2022-2025, dcSpark. All rights reserved.
// See the file LICENSE for licensing terms.

package multisig

import (
	"bytes"
	"fmt"
	"time"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/ids"

	"github.com/dcSpark/multisig-coordination-smartcontract/chain"
	"github.com/dcSpark/multisig-coordination-smartcontract/payload"
)

// transactionStore owns proposal records, their confirmation sets, and the
// append-only creation-order index.
type transactionStore struct {
	self       common.Address
	clock      chain.Clock
	voteWindow time.Duration
	emit       func(Event)

	txs   map[ids.ID]*Transaction
	index []ids.ID
}

func newTransactionStore(self common.Address, clock chain.Clock, voteWindow time.Duration, emit func(Event)) *transactionStore {
	return &transactionStore{
		self:       self,
		clock:      clock,
		voteWindow: voteWindow,
		emit:       emit,
		txs:        make(map[ids.ID]*Transaction),
	}
}

func (s *transactionStore) exists(id ids.ID) bool {
	_, ok := s.txs[id]
	return ok
}

func (s *transactionStore) get(id ids.ID) (*Transaction, bool) {
	tx, ok := s.txs[id]
	return tx, ok
}

// create stores a new proposal and appends its id to the index. The vote
// period is set to now plus the grace window only when the payload carries the
// add-validator selector and the destination is the controlled account itself.
func (s *transactionStore) create(id ids.ID, destination common.Address, value *uint256.Int, data []byte, hasReward bool) (*Transaction, error) {
	if destination == (common.Address{}) {
		return nil, fmt.Errorf("%w: destination", ErrZeroAddress)
	}
	if s.exists(id) {
		return nil, fmt.Errorf("%w: %s", ErrTransactionExists, id)
	}

	var votePeriod time.Time
	if destination == s.self && payload.IsAddValidatorCall(data) {
		votePeriod = s.clock.Now().Add(s.voteWindow)
	}

	tx := &Transaction{
		ID:            id,
		Destination:   destination,
		Value:         value.Clone(),
		Payload:       bytes.Clone(data),
		PayloadHash:   hashPayload(data),
		HasReward:     hasReward,
		VotePeriod:    votePeriod,
		confirmations: make(map[common.Address]bool),
	}
	s.txs[id] = tx
	s.index = append(s.index, id)
	return tx, nil
}

// recordVote sets validator's confirmation flag for id and emits a
// Confirmation event. Votes are append-only.
func (s *transactionStore) recordVote(id ids.ID, validator common.Address) error {
	tx, ok := s.txs[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
	}
	if tx.confirmations[validator] {
		return fmt.Errorf("%w: %s", ErrAlreadyConfirmed, validator)
	}

	tx.confirmations[validator] = true
	s.emit(ConfirmationEvent{
		TxID:      id,
		Validator: validator,
	})
	return nil
}

// confirmationCount counts recorded votes for id among the given validator
// sequence, so votes from removed validators never count.
func (s *transactionStore) confirmationCount(id ids.ID, validators []common.Address) uint64 {
	tx, ok := s.txs[id]
	if !ok {
		return 0
	}
	var count uint64
	for _, v := range validators {
		if tx.confirmations[v] {
			count++
		}
	}
	return count
}

// confirmations returns the validators with a recorded vote for id, in
// validator-sequence order.
func (s *transactionStore) confirmations(id ids.ID, validators []common.Address) []common.Address {
	tx, ok := s.txs[id]
	if !ok {
		return nil
	}
	var out []common.Address
	for _, v := range validators {
		if tx.confirmations[v] {
			out = append(out, v)
		}
	}
	return out
}

// transactionIDs returns identifiers in creation order, keeping a transaction
// when pending matches its un-executed state or executed matches its executed
// state.
func (s *transactionStore) transactionIDs(pending, executed bool) []ids.ID {
	out := make([]ids.ID, 0, len(s.index))
	for _, id := range s.index {
		tx := s.txs[id]
		if (pending && !tx.Executed) || (executed && tx.Executed) {
			out = append(out, id)
		}
	}
	return out
}
