// Copyright (C) 2022-2025, dcSpark. All rights reserved.
// See the file LICENSE for licensing terms.

package payload

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/ids"
)

// Call is a decoded invocation of the multisig account surface.
type Call interface {
	// Method returns the ABI method name the call encodes.
	Method() string
}

// Action is a Call that mutates governance state. Actions are applied only
// through self-execution of a confirmed proposal, never from a host-facing
// entry point.
type Action interface {
	Call
	governanceAction()
}

// VoteCall proposes or confirms a transaction.
type VoteCall struct {
	TransactionID ids.ID
	Destination   common.Address
	Value         *uint256.Int
	Payload       []byte
	HasReward     bool
}

func (VoteCall) Method() string { return "voteForTransaction" }

func (c VoteCall) Pack() ([]byte, error) {
	value := new(big.Int)
	if c.Value != nil {
		value = c.Value.ToBig()
	}
	return ABI.Pack(c.Method(), [32]byte(c.TransactionID), c.Destination, value, c.Payload, c.HasReward)
}

// ExecuteCall retries execution of a confirmed transaction.
type ExecuteCall struct {
	TransactionID ids.ID
}

func (ExecuteCall) Method() string { return "executeTransaction" }

func (c ExecuteCall) Pack() ([]byte, error) {
	return ABI.Pack(c.Method(), [32]byte(c.TransactionID))
}

// AddValidator appends a validator and applies a new quorum and stargate tag.
type AddValidator struct {
	Validator       common.Address
	NewQuorum       uint64
	StargateAddress string
}

func (AddValidator) Method() string    { return "addValidator" }
func (AddValidator) governanceAction() {}

func (a AddValidator) Pack() ([]byte, error) {
	return ABI.Pack(a.Method(), a.Validator, new(big.Int).SetUint64(a.NewQuorum), a.StargateAddress)
}

// RemoveValidator drops a validator and applies a new quorum and stargate tag.
type RemoveValidator struct {
	Validator       common.Address
	NewQuorum       uint64
	StargateAddress string
}

func (RemoveValidator) Method() string    { return "removeValidator" }
func (RemoveValidator) governanceAction() {}

func (a RemoveValidator) Pack() ([]byte, error) {
	return ABI.Pack(a.Method(), a.Validator, new(big.Int).SetUint64(a.NewQuorum), a.StargateAddress)
}

// ReplaceValidator swaps one validator identity for another in place and
// re-applies the current quorum with a new stargate tag.
type ReplaceValidator struct {
	OldValidator    common.Address
	NewValidator    common.Address
	StargateAddress string
}

func (ReplaceValidator) Method() string    { return "replaceValidator" }
func (ReplaceValidator) governanceAction() {}

func (a ReplaceValidator) Pack() ([]byte, error) {
	return ABI.Pack(a.Method(), a.OldValidator, a.NewValidator, a.StargateAddress)
}

// ChangeQuorum applies a new quorum and stargate tag together.
type ChangeQuorum struct {
	NewQuorum       uint64
	StargateAddress string
}

func (ChangeQuorum) Method() string    { return "changeQuorum" }
func (ChangeQuorum) governanceAction() {}

func (a ChangeQuorum) Pack() ([]byte, error) {
	return ABI.Pack(a.Method(), new(big.Int).SetUint64(a.NewQuorum), a.StargateAddress)
}

// UpgradeContract swaps the active implementation pointer.
type UpgradeContract struct {
	NewImplementation common.Address
}

func (UpgradeContract) Method() string    { return "upgradeContract" }
func (UpgradeContract) governanceAction() {}

func (a UpgradeContract) Pack() ([]byte, error) {
	return ABI.Pack(a.Method(), a.NewImplementation)
}

// Parse decodes data into a typed call. The selector picks the method and the
// remaining bytes must unpack exactly against its argument list.
func Parse(data []byte) (Call, error) {
	if len(data) < SelectorLength {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidPayload, len(data))
	}
	method, err := ABI.MethodById(data[:SelectorLength])
	if err != nil {
		return nil, fmt.Errorf("%w: %x", ErrUnknownSelector, data[:SelectorLength])
	}
	args, err := method.Inputs.Unpack(data[SelectorLength:])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPayload, method.Name, err)
	}

	switch method.Name {
	case "voteForTransaction":
		id, err := asBytes32(args[0])
		if err != nil {
			return nil, err
		}
		destination, err := asAddress(args[1])
		if err != nil {
			return nil, err
		}
		value, err := asUint256(args[2])
		if err != nil {
			return nil, err
		}
		callData, err := asBytes(args[3])
		if err != nil {
			return nil, err
		}
		hasReward, err := asBool(args[4])
		if err != nil {
			return nil, err
		}
		return VoteCall{
			TransactionID: ids.ID(id),
			Destination:   destination,
			Value:         value,
			Payload:       callData,
			HasReward:     hasReward,
		}, nil

	case "executeTransaction":
		id, err := asBytes32(args[0])
		if err != nil {
			return nil, err
		}
		return ExecuteCall{TransactionID: ids.ID(id)}, nil

	case "addValidator":
		validator, err := asAddress(args[0])
		if err != nil {
			return nil, err
		}
		quorum, err := asQuorum(args[1])
		if err != nil {
			return nil, err
		}
		tag, err := asString(args[2])
		if err != nil {
			return nil, err
		}
		return AddValidator{Validator: validator, NewQuorum: quorum, StargateAddress: tag}, nil

	case "removeValidator":
		validator, err := asAddress(args[0])
		if err != nil {
			return nil, err
		}
		quorum, err := asQuorum(args[1])
		if err != nil {
			return nil, err
		}
		tag, err := asString(args[2])
		if err != nil {
			return nil, err
		}
		return RemoveValidator{Validator: validator, NewQuorum: quorum, StargateAddress: tag}, nil

	case "replaceValidator":
		oldValidator, err := asAddress(args[0])
		if err != nil {
			return nil, err
		}
		newValidator, err := asAddress(args[1])
		if err != nil {
			return nil, err
		}
		tag, err := asString(args[2])
		if err != nil {
			return nil, err
		}
		return ReplaceValidator{OldValidator: oldValidator, NewValidator: newValidator, StargateAddress: tag}, nil

	case "changeQuorum":
		quorum, err := asQuorum(args[0])
		if err != nil {
			return nil, err
		}
		tag, err := asString(args[1])
		if err != nil {
			return nil, err
		}
		return ChangeQuorum{NewQuorum: quorum, StargateAddress: tag}, nil

	case "upgradeContract":
		implementation, err := asAddress(args[0])
		if err != nil {
			return nil, err
		}
		return UpgradeContract{NewImplementation: implementation}, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSelector, method.Name)
	}
}

// ParseAction decodes data into a governance action. Calls that decode to the
// host-facing methods are rejected.
func ParseAction(data []byte) (Action, error) {
	call, err := Parse(data)
	if err != nil {
		return nil, err
	}
	action, ok := call.(Action)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a governance action", ErrInvalidPayload, call.Method())
	}
	return action, nil
}

func asAddress(v any) (common.Address, error) {
	addr, ok := v.(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("%w: expected address, got %T", ErrInvalidPayload, v)
	}
	return addr, nil
}

func asBytes32(v any) ([32]byte, error) {
	raw, ok := v.([32]byte)
	if !ok {
		return [32]byte{}, fmt.Errorf("%w: expected bytes32, got %T", ErrInvalidPayload, v)
	}
	return raw, nil
}

func asBytes(v any) ([]byte, error) {
	raw, ok := v.([]byte)
	if !ok {
		return nil, fmt.Errorf("%w: expected bytes, got %T", ErrInvalidPayload, v)
	}
	return raw, nil
}

func asBool(v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: expected bool, got %T", ErrInvalidPayload, v)
	}
	return b, nil
}

func asString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: expected string, got %T", ErrInvalidPayload, v)
	}
	return s, nil
}

func asUint256(v any) (*uint256.Int, error) {
	b, ok := v.(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%w: expected uint256, got %T", ErrInvalidPayload, v)
	}
	value, overflow := uint256.FromBig(b)
	if overflow {
		return nil, fmt.Errorf("%w: value overflows uint256", ErrInvalidPayload)
	}
	return value, nil
}

func asQuorum(v any) (uint64, error) {
	b, ok := v.(*big.Int)
	if !ok {
		return 0, fmt.Errorf("%w: expected uint256, got %T", ErrInvalidPayload, v)
	}
	if !b.IsUint64() {
		return 0, fmt.Errorf("%w: quorum exceeds uint64 range", ErrInvalidPayload)
	}
	return b.Uint64(), nil
}
