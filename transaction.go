// Copyright (C) 2022-2025, dcSpark. All rights reserved.
// See the file LICENSE for licensing terms.

package multisig

import (
	"time"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/ids"
)

// Transaction is a proposal to perform one external call from the controlled
// account. It is identified by a caller-chosen 256-bit id and is created at
// most once; later votes must match every stored field.
type Transaction struct {
	ID          ids.ID
	Destination common.Address
	Value       *uint256.Int
	Payload     []byte
	PayloadHash common.Hash
	HasReward   bool
	Executed    bool

	// VotePeriod bounds voting on self-targeted add-validator proposals.
	// Zero for every other payload.
	VotePeriod time.Time

	confirmations map[common.Address]bool
}

// matches reports whether the stored fields equal the proposed fields. The
// payload is compared by hash.
func (tx *Transaction) matches(destination common.Address, value *uint256.Int, payloadHash common.Hash, hasReward bool) bool {
	return tx.Destination == destination &&
		tx.Value.Eq(value) &&
		tx.PayloadHash == payloadHash &&
		tx.HasReward == hasReward
}

// confirmedBy reports whether validator has a recorded vote.
func (tx *Transaction) confirmedBy(validator common.Address) bool {
	return tx.confirmations[validator]
}

// hashPayload returns the Keccak-256 hash of the raw call payload.
func hashPayload(data []byte) common.Hash {
	return common.Keccak256Hash(data)
}
