// Copyright (C) 2022-2025, dcSpark. All rights reserved.
// See the file LICENSE for licensing terms.

package multisig

import "errors"

var (
	// Authorization failures.
	ErrNotValidator        = errors.New("caller is not a current validator")
	ErrReentrantCall       = errors.New("reentrant call rejected")
	ErrGovernanceNotSealed = errors.New("governance action requires self-execution")

	// State-conflict failures.
	ErrTransactionExists   = errors.New("transaction already exists")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrProposalMismatch    = errors.New("proposal fields do not match stored transaction")
	ErrAlreadyConfirmed    = errors.New("transaction already confirmed by validator")
	ErrAlreadyExecuted     = errors.New("transaction already executed")
	ErrValidatorExists     = errors.New("validator already registered")
	ErrUnknownValidator    = errors.New("validator not registered")

	// Invariant failures.
	ErrInvalidQuorum = errors.New("quorum outside strict-majority bounds")
	ErrZeroAddress   = errors.New("zero address not allowed")

	// Deadline failures.
	ErrVotePeriodExpired = errors.New("validator vote period expired")

	// Arithmetic and funding failures.
	ErrFeeExceedsValue = errors.New("wrapping fee exceeds transaction value")

	// ErrUnknownAction marks self-call payloads that decode to no governance
	// action.
	ErrUnknownAction = errors.New("unknown governance action")
)
