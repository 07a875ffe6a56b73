// Copyright (C) 2022-2025, dcSpark. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"errors"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/stretchr/testify/require"
)

var (
	senderAddr   = common.HexToAddress("0x0000000000000000000000000000000000000001")
	receiverAddr = common.HexToAddress("0x0000000000000000000000000000000000000002")
	thirdAddr    = common.HexToAddress("0x0000000000000000000000000000000000000003")
)

// testContract dispatches incoming calls to onCall when set and accepts them
// otherwise.
type testContract struct {
	onCall func(caller common.Address, value *uint256.Int, data []byte) error
}

func (c *testContract) Call(caller common.Address, value *uint256.Int, data []byte) error {
	if c.onCall == nil {
		return nil
	}
	return c.onCall(caller, value, data)
}

func TestLedgerTransfer(t *testing.T) {
	require := require.New(t)

	l := NewMemoryLedger()
	l.Credit(senderAddr, uint256.NewInt(100))

	require.NoError(l.Execute(senderAddr, receiverAddr, uint256.NewInt(40), nil))
	require.Equal(uint256.NewInt(60), l.BalanceOf(senderAddr))
	require.Equal(uint256.NewInt(40), l.BalanceOf(receiverAddr))

	// Zero and nil values are accepted and move nothing.
	require.NoError(l.Execute(senderAddr, receiverAddr, uint256.NewInt(0), nil))
	require.NoError(l.Execute(senderAddr, receiverAddr, nil, nil))
	require.Equal(uint256.NewInt(60), l.BalanceOf(senderAddr))

	// Self transfers are no-ops regardless of balance.
	require.NoError(l.Execute(thirdAddr, thirdAddr, uint256.NewInt(999), nil))
	require.Equal(uint256.NewInt(0), l.BalanceOf(thirdAddr))
}

func TestLedgerInsufficientBalance(t *testing.T) {
	require := require.New(t)

	l := NewMemoryLedger()
	l.Credit(senderAddr, uint256.NewInt(10))

	err := l.Execute(senderAddr, receiverAddr, uint256.NewInt(11), nil)
	require.ErrorIs(err, ErrInsufficientBalance)
	require.Equal(uint256.NewInt(10), l.BalanceOf(senderAddr))
	require.Equal(uint256.NewInt(0), l.BalanceOf(receiverAddr))
}

func TestLedgerContractCall(t *testing.T) {
	require := require.New(t)

	var gotCaller common.Address
	var gotValue *uint256.Int
	var gotData []byte
	l := NewMemoryLedger()
	l.Credit(senderAddr, uint256.NewInt(100))
	l.Register(receiverAddr, &testContract{
		onCall: func(caller common.Address, value *uint256.Int, data []byte) error {
			gotCaller = caller
			gotValue = value.Clone()
			gotData = data
			return nil
		},
	})

	require.NoError(l.Execute(senderAddr, receiverAddr, uint256.NewInt(25), []byte{0x01}))
	require.Equal(senderAddr, gotCaller)
	require.Equal(uint256.NewInt(25), gotValue)
	require.Equal([]byte{0x01}, gotData)
	require.Equal(uint256.NewInt(25), l.BalanceOf(receiverAddr))
}

func TestLedgerContractRejectionRefunds(t *testing.T) {
	require := require.New(t)

	l := NewMemoryLedger()
	l.Credit(senderAddr, uint256.NewInt(100))
	l.Register(receiverAddr, &testContract{
		onCall: func(common.Address, *uint256.Int, []byte) error {
			return errors.New("rejected")
		},
	})

	err := l.Execute(senderAddr, receiverAddr, uint256.NewInt(30), nil)
	require.ErrorIs(err, ErrCallFailed)

	// The transfer and the call fail together.
	require.Equal(uint256.NewInt(100), l.BalanceOf(senderAddr))
	require.Equal(uint256.NewInt(0), l.BalanceOf(receiverAddr))
}

func TestLedgerNestedExecute(t *testing.T) {
	require := require.New(t)

	// The receiving contract forwards half of what it gets to a third account
	// through a nested Execute. The lock is not held across calls, so this
	// must not deadlock.
	l := NewMemoryLedger()
	l.Credit(senderAddr, uint256.NewInt(100))
	l.Register(receiverAddr, &testContract{
		onCall: func(_ common.Address, value *uint256.Int, _ []byte) error {
			half := new(uint256.Int).Rsh(value, 1)
			return l.Execute(receiverAddr, thirdAddr, half, nil)
		},
	})

	require.NoError(l.Execute(senderAddr, receiverAddr, uint256.NewInt(40), nil))
	require.Equal(uint256.NewInt(60), l.BalanceOf(senderAddr))
	require.Equal(uint256.NewInt(20), l.BalanceOf(receiverAddr))
	require.Equal(uint256.NewInt(20), l.BalanceOf(thirdAddr))
}

func TestLedgerBalanceOfIsACopy(t *testing.T) {
	require := require.New(t)

	l := NewMemoryLedger()
	l.Credit(senderAddr, uint256.NewInt(50))

	balance := l.BalanceOf(senderAddr)
	balance.SetUint64(0)
	require.Equal(uint256.NewInt(50), l.BalanceOf(senderAddr))
}

func TestImplementationStore(t *testing.T) {
	require := require.New(t)

	s := NewMemoryImplementationStore(senderAddr)
	require.Equal(senderAddr, s.Active())

	s.SetActive(receiverAddr)
	require.Equal(receiverAddr, s.Active())
}

func TestMockClock(t *testing.T) {
	require := require.New(t)

	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := NewMockClock(start)
	require.Equal(start, clock.Now())

	clock.Advance(90 * time.Minute)
	require.Equal(start.Add(90*time.Minute), clock.Now())

	clock.Set(start)
	require.Equal(start, clock.Now())
}
