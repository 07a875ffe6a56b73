// Copyright (C) 2022-2025, dcSpark. All rights reserved.
// See the file LICENSE for licensing terms.

// Package chain defines the host-environment collaborators the multisig
// engine consumes: the ledger that moves value and dispatches calls, the
// active-implementation pointer owned by the proxy layer, and the clock.
// In-memory implementations back the tests and the CLI simulator.
package chain

import (
	"errors"
	"fmt"
	"sync"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"go.uber.org/multierr"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrCallFailed          = errors.New("contract call failed")
)

// Contract is an account with code: it can be invoked with a value and
// calldata and may reject the call.
type Contract interface {
	Call(caller common.Address, value *uint256.Int, data []byte) error
}

// Ledger performs value transfer and call dispatch on behalf of an account.
type Ledger interface {
	// Execute transfers value from sender to destination and, when the
	// destination is a contract, invokes it with data. The transfer and the
	// call succeed or fail together.
	Execute(sender, destination common.Address, value *uint256.Int, data []byte) error

	// BalanceOf returns the current balance of addr.
	BalanceOf(addr common.Address) *uint256.Int
}

var _ Ledger = (*MemoryLedger)(nil)

// MemoryLedger is an in-memory Ledger. The balance table is guarded by a
// lock, but the lock is never held across a contract invocation so contracts
// may re-enter the ledger.
type MemoryLedger struct {
	lock      sync.Mutex
	balances  map[common.Address]*uint256.Int
	contracts map[common.Address]Contract
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		balances:  make(map[common.Address]*uint256.Int),
		contracts: make(map[common.Address]Contract),
	}
}

// Register installs code at addr. Calls routed to addr are dispatched to c.
func (l *MemoryLedger) Register(addr common.Address, c Contract) {
	l.lock.Lock()
	defer l.lock.Unlock()

	l.contracts[addr] = c
}

// Credit adds amount to the balance of addr.
func (l *MemoryLedger) Credit(addr common.Address, amount *uint256.Int) {
	l.lock.Lock()
	defer l.lock.Unlock()

	balance, ok := l.balances[addr]
	if !ok {
		balance = uint256.NewInt(0)
		l.balances[addr] = balance
	}
	balance.Add(balance, amount)
}

func (l *MemoryLedger) BalanceOf(addr common.Address) *uint256.Int {
	l.lock.Lock()
	defer l.lock.Unlock()

	balance, ok := l.balances[addr]
	if !ok {
		return uint256.NewInt(0)
	}
	return balance.Clone()
}

func (l *MemoryLedger) Execute(sender, destination common.Address, value *uint256.Int, data []byte) error {
	if value == nil {
		value = uint256.NewInt(0)
	}
	if err := l.transfer(sender, destination, value); err != nil {
		return err
	}

	contract := l.contractAt(destination)
	if contract == nil {
		return nil
	}
	if err := contract.Call(sender, value, data); err != nil {
		callErr := fmt.Errorf("%w: %v", ErrCallFailed, err)
		// Refund the transfer. The refund can only fail if the contract moved
		// the funds away before rejecting.
		if refundErr := l.transfer(destination, sender, value); refundErr != nil {
			return multierr.Append(callErr, refundErr)
		}
		return callErr
	}
	return nil
}

func (l *MemoryLedger) transfer(from, to common.Address, value *uint256.Int) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	if value.IsZero() || from == to {
		return nil
	}
	fromBalance, ok := l.balances[from]
	if !ok || fromBalance.Lt(value) {
		return fmt.Errorf("%w: %s", ErrInsufficientBalance, from)
	}

	toBalance, ok := l.balances[to]
	if !ok {
		toBalance = uint256.NewInt(0)
		l.balances[to] = toBalance
	}
	fromBalance.Sub(fromBalance, value)
	toBalance.Add(toBalance, value)
	return nil
}

func (l *MemoryLedger) contractAt(addr common.Address) Contract {
	l.lock.Lock()
	defer l.lock.Unlock()

	return l.contracts[addr]
}
