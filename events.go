// Copyright (C) 2022-2025, dcSpark. All rights reserved.
// See the file LICENSE for licensing terms.

package multisig

import (
	"sync"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/ids"
)

// Event is an externally observable record of an engine state transition.
type Event interface {
	// Type returns the event name as it appears on the contract surface.
	Type() string
}

// ConfirmationEvent records one validator's vote for a transaction.
type ConfirmationEvent struct {
	TxID      ids.ID
	Validator common.Address
}

func (ConfirmationEvent) Type() string { return "Confirmation" }

// ExecutionEvent records a successful external call for a transaction.
type ExecutionEvent struct {
	TxID ids.ID
}

func (ExecutionEvent) Type() string { return "Execution" }

// ExecutionFailureEvent records a failed external call. The transaction stays
// eligible for retry.
type ExecutionFailureEvent struct {
	TxID   ids.ID
	Reason string
}

func (ExecutionFailureEvent) Type() string { return "ExecutionFailure" }

// ValidatorsUpdatedEvent records a change to the validator sequence.
// Validators holds the post-change sequence in storage order.
type ValidatorsUpdatedEvent struct {
	Added      []common.Address
	Removed    []common.Address
	Validators []common.Address
}

func (ValidatorsUpdatedEvent) Type() string { return "ValidatorsUpdated" }

// QuorumChangedEvent records a new quorum threshold and stargate routing tag.
// The two always change together.
type QuorumChangedEvent struct {
	Quorum          uint64
	StargateAddress string
}

func (QuorumChangedEvent) Type() string { return "QuorumChanged" }

// ContractUpgradedEvent records a swap of the active implementation pointer.
type ContractUpgradedEvent struct {
	Implementation common.Address
}

func (ContractUpgradedEvent) Type() string { return "ContractUpgraded" }

// DepositEvent records a plain value transfer into the controlled account.
type DepositEvent struct {
	Sender common.Address
	Amount *uint256.Int
}

func (DepositEvent) Type() string { return "Deposit" }

// Sink consumes events as they are emitted.
type Sink interface {
	Accept(event Event) error
}

// Log is the engine's canonical append-only event record. It never rejects an
// event. Reads may happen concurrently with engine calls.
type Log struct {
	lock   sync.RWMutex
	events []Event
}

// NewLog returns an empty event log.
func NewLog() *Log {
	return &Log{}
}

// Accept appends event to the log. It implements Sink and never fails.
func (l *Log) Accept(event Event) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	l.events = append(l.events, event)
	return nil
}

// Len returns the number of recorded events.
func (l *Log) Len() int {
	l.lock.RLock()
	defer l.lock.RUnlock()

	return len(l.events)
}

// Events returns all recorded events in emission order.
func (l *Log) Events() []Event {
	l.lock.RLock()
	defer l.lock.RUnlock()

	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// ByType returns recorded events with the given type name, in emission order.
func (l *Log) ByType(name string) []Event {
	l.lock.RLock()
	defer l.lock.RUnlock()

	var out []Event
	for _, event := range l.events {
		if event.Type() == name {
			out = append(out, event)
		}
	}
	return out
}
