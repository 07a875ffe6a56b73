// Copyright (C) 2022-2025, dcSpark. All rights reserved.
// See the file LICENSE for licensing terms.

package payload

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"
)

var (
	testValidator = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	testOther     = common.HexToAddress("0x00000000000000000000000000000000000000b2")
)

func TestSelectors(t *testing.T) {
	tests := []struct {
		signature string
		selector  Selector
	}{
		{"voteForTransaction(bytes32,address,uint256,bytes,bool)", VoteForTransactionSelector},
		{"executeTransaction(bytes32)", ExecuteTransactionSelector},
		{"addValidator(address,uint256,string)", AddValidatorSelector},
		{"removeValidator(address,uint256,string)", RemoveValidatorSelector},
		{"replaceValidator(address,address,string)", ReplaceValidatorSelector},
		{"changeQuorum(uint256,string)", ChangeQuorumSelector},
		{"upgradeContract(address)", UpgradeContractSelector},
	}
	for _, tt := range tests {
		t.Run(tt.signature, func(t *testing.T) {
			want := common.Keccak256([]byte(tt.signature))[:SelectorLength]
			require.Equal(t, want, tt.selector[:])
		})
	}
}

func TestVoteCallRoundTrip(t *testing.T) {
	require := require.New(t)

	call := VoteCall{
		TransactionID: ids.ID{0x01, 0x02},
		Destination:   testOther,
		Value:         uint256.NewInt(12345),
		Payload:       []byte{0xde, 0xad, 0xbe, 0xef},
		HasReward:     true,
	}
	data, err := call.Pack()
	require.NoError(err)
	require.Equal(VoteForTransactionSelector[:], data[:SelectorLength])

	parsed, err := Parse(data)
	require.NoError(err)
	require.Equal(call, parsed)
}

func TestVoteCallRoundTripEmptyPayload(t *testing.T) {
	require := require.New(t)

	data, err := VoteCall{
		TransactionID: ids.ID{0x07},
		Destination:   testOther,
	}.Pack()
	require.NoError(err)

	parsed, err := Parse(data)
	require.NoError(err)
	call, ok := parsed.(VoteCall)
	require.True(ok)
	require.Equal(ids.ID{0x07}, call.TransactionID)
	require.Equal(testOther, call.Destination)
	require.True(call.Value.IsZero())
	require.Empty(call.Payload)
	require.False(call.HasReward)
}

func TestCallRoundTrips(t *testing.T) {
	tests := []struct {
		name string
		call interface {
			Call
			Pack() ([]byte, error)
		}
	}{
		{"execute", ExecuteCall{TransactionID: ids.ID{0xaa}}},
		{"addValidator", AddValidator{Validator: testValidator, NewQuorum: 3, StargateAddress: "addr1q9x"}},
		{"removeValidator", RemoveValidator{Validator: testValidator, NewQuorum: 2, StargateAddress: "addr1q9x"}},
		{"replaceValidator", ReplaceValidator{OldValidator: testValidator, NewValidator: testOther, StargateAddress: "addr1q9x"}},
		{"changeQuorum", ChangeQuorum{NewQuorum: 4, StargateAddress: ""}},
		{"upgradeContract", UpgradeContract{NewImplementation: testOther}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.call.Pack()
			require.NoError(t, err)

			parsed, err := Parse(data)
			require.NoError(t, err)
			require.Equal(t, tt.call, parsed)
		})
	}
}

func TestParseErrors(t *testing.T) {
	packed, err := AddValidator{Validator: testValidator, NewQuorum: 3}.Pack()
	require.NoError(t, err)

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{name: "nil data", data: nil, wantErr: ErrInvalidPayload},
		{name: "short data", data: []byte{0x01, 0x02}, wantErr: ErrInvalidPayload},
		{name: "unknown selector", data: []byte{0xde, 0xad, 0xbe, 0xef}, wantErr: ErrUnknownSelector},
		{name: "truncated arguments", data: packed[:10], wantErr: ErrInvalidPayload},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseAction(t *testing.T) {
	require := require.New(t)

	data, err := ChangeQuorum{NewQuorum: 2, StargateAddress: "addr1q9x"}.Pack()
	require.NoError(err)
	action, err := ParseAction(data)
	require.NoError(err)
	require.Equal(ChangeQuorum{NewQuorum: 2, StargateAddress: "addr1q9x"}, action)

	// Host-facing methods decode as calls but are not governance actions.
	voteData, err := VoteCall{TransactionID: ids.ID{0x01}, Destination: testOther}.Pack()
	require.NoError(err)
	_, err = ParseAction(voteData)
	require.ErrorIs(err, ErrInvalidPayload)

	execData, err := ExecuteCall{TransactionID: ids.ID{0x01}}.Pack()
	require.NoError(err)
	_, err = ParseAction(execData)
	require.ErrorIs(err, ErrInvalidPayload)
}

func TestIsAddValidatorCall(t *testing.T) {
	require := require.New(t)

	addData, err := AddValidator{Validator: testValidator, NewQuorum: 1, StargateAddress: "x"}.Pack()
	require.NoError(err)
	removeData, err := RemoveValidator{Validator: testValidator, NewQuorum: 1, StargateAddress: "x"}.Pack()
	require.NoError(err)

	require.True(IsAddValidatorCall(addData))
	require.True(IsAddValidatorCall(addData[:SelectorLength]))
	require.False(IsAddValidatorCall(removeData))
	require.False(IsAddValidatorCall(addData[:3]))
	require.False(IsAddValidatorCall(nil))
}
