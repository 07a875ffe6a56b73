// Copyright (C) 2022-2025, dcSpark. All rights reserved.
// See the file LICENSE for licensing terms.

// Package payload implements the ABI call surface of the multisig account:
// the method selector table, typed calls and governance actions, and the
// pack/parse helpers shared by the engine, its tests, and the CLI tooling.
package payload

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/luxfi/geth/accounts/abi"
)

// RawABI is the JSON interface of the multisig account surface.
const RawABI = `[
	{"type":"function","name":"voteForTransaction","stateMutability":"nonpayable","inputs":[{"name":"transactionId","type":"bytes32"},{"name":"destination","type":"address"},{"name":"value","type":"uint256"},{"name":"payload","type":"bytes"},{"name":"hasReward","type":"bool"}],"outputs":[]},
	{"type":"function","name":"executeTransaction","stateMutability":"nonpayable","inputs":[{"name":"transactionId","type":"bytes32"}],"outputs":[]},
	{"type":"function","name":"addValidator","stateMutability":"nonpayable","inputs":[{"name":"validator","type":"address"},{"name":"newQuorum","type":"uint256"},{"name":"newStargateAddress","type":"string"}],"outputs":[]},
	{"type":"function","name":"removeValidator","stateMutability":"nonpayable","inputs":[{"name":"validator","type":"address"},{"name":"newQuorum","type":"uint256"},{"name":"newStargateAddress","type":"string"}],"outputs":[]},
	{"type":"function","name":"replaceValidator","stateMutability":"nonpayable","inputs":[{"name":"oldValidator","type":"address"},{"name":"newValidator","type":"address"},{"name":"newStargateAddress","type":"string"}],"outputs":[]},
	{"type":"function","name":"changeQuorum","stateMutability":"nonpayable","inputs":[{"name":"newQuorum","type":"uint256"},{"name":"newStargateAddress","type":"string"}],"outputs":[]},
	{"type":"function","name":"upgradeContract","stateMutability":"nonpayable","inputs":[{"name":"newImplementation","type":"address"}],"outputs":[]}
]`

// SelectorLength is the size of the method selector prefix on every call.
const SelectorLength = 4

var (
	ErrInvalidPayload  = errors.New("invalid call payload")
	ErrUnknownSelector = errors.New("unknown method selector")

	// ABI is the parsed contract interface.
	ABI = mustParseABI(RawABI)

	VoteForTransactionSelector = methodSelector("voteForTransaction")
	ExecuteTransactionSelector = methodSelector("executeTransaction")
	AddValidatorSelector       = methodSelector("addValidator")
	RemoveValidatorSelector    = methodSelector("removeValidator")
	ReplaceValidatorSelector   = methodSelector("replaceValidator")
	ChangeQuorumSelector       = methodSelector("changeQuorum")
	UpgradeContractSelector    = methodSelector("upgradeContract")
)

// Selector is the first four bytes of the Keccak-256 hash of a canonical
// method signature.
type Selector [SelectorLength]byte

func (s Selector) String() string {
	return fmt.Sprintf("0x%x", s[:])
}

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("failed to parse multisig ABI: %v", err))
	}
	return parsed
}

func methodSelector(name string) Selector {
	method, ok := ABI.Methods[name]
	if !ok {
		panic(fmt.Sprintf("method %q not in multisig ABI", name))
	}
	return Selector(method.ID)
}

// IsAddValidatorCall reports whether data begins with the addValidator
// selector. Only the four-byte prefix is inspected; the arguments are not
// decoded.
func IsAddValidatorCall(data []byte) bool {
	return len(data) >= SelectorLength && bytes.Equal(data[:SelectorLength], AddValidatorSelector[:])
}
