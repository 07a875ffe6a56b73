// Copyright (C) 2022-2025, dcSpark. All rights reserved.
// See the file LICENSE for licensing terms.

package multisig

import (
	"bytes"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/ids"
)

// Address returns the account the engine controls.
func (e *Engine) Address() common.Address {
	return e.address
}

// Validators returns the current validator sequence in storage order.
func (e *Engine) Validators() []common.Address {
	return e.registry.snapshot()
}

// IsValidator reports whether addr is a current validator.
func (e *Engine) IsValidator(addr common.Address) bool {
	return e.registry.contains(addr)
}

// Quorum returns the current confirmation threshold.
func (e *Engine) Quorum() uint64 {
	return e.registry.quorum
}

// StargateAddress returns the current downstream routing tag.
func (e *Engine) StargateAddress() string {
	return e.registry.stargate
}

// WrappingFee returns the fee deducted from reward-bearing proposals.
func (e *Engine) WrappingFee() *uint256.Int {
	return e.fee.Clone()
}

// RewardsCollected returns the accumulated wrapping fees.
func (e *Engine) RewardsCollected() *uint256.Int {
	return e.rewards.Clone()
}

// Implementation returns the active implementation address.
func (e *Engine) Implementation() common.Address {
	return e.implementations.Active()
}

// Events returns the engine's append-only event log.
func (e *Engine) Events() *Log {
	return e.events
}

// Exists reports whether a proposal is stored under id.
func (e *Engine) Exists(id ids.ID) bool {
	return e.store.exists(id)
}

// Transaction returns a copy of the stored proposal.
func (e *Engine) Transaction(id ids.ID) (Transaction, bool) {
	tx, ok := e.store.get(id)
	if !ok {
		return Transaction{}, false
	}
	out := *tx
	out.Value = tx.Value.Clone()
	out.Payload = bytes.Clone(tx.Payload)
	out.confirmations = nil
	return out, true
}

// IsConfirmed reports whether id meets the live quorum: votes counted over
// the current validator sequence against the current quorum value.
func (e *Engine) IsConfirmed(id ids.ID) bool {
	tx, ok := e.store.get(id)
	if !ok {
		return false
	}
	return e.confirmed(tx)
}

// ConfirmationCount returns the number of votes for id from current
// validators.
func (e *Engine) ConfirmationCount(id ids.ID) uint64 {
	return e.store.confirmationCount(id, e.registry.validators)
}

// Confirmations returns the current validators with a recorded vote for id,
// in validator-sequence order.
func (e *Engine) Confirmations(id ids.ID) []common.Address {
	return e.store.confirmations(id, e.registry.validators)
}

// TransactionCount returns the number of stored proposals matching the
// filters: pending selects un-executed proposals, executed selects executed
// ones.
func (e *Engine) TransactionCount(pending, executed bool) int {
	return len(e.store.transactionIDs(pending, executed))
}

// TransactionIDs returns the creation-ordered identifiers matching the
// filters, sliced to the half-open range [from, to).
func (e *Engine) TransactionIDs(from, to int, pending, executed bool) []ids.ID {
	all := e.store.transactionIDs(pending, executed)
	if from < 0 {
		from = 0
	}
	if to > len(all) {
		to = len(all)
	}
	if from >= to {
		return nil
	}
	out := make([]ids.ID, to-from)
	copy(out, all[from:to])
	return out
}
