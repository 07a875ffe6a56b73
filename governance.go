// Copyright (C) 2022-2025, dcSpark. All rights reserved.
// See the file LICENSE for licensing terms.

package multisig

import (
	"fmt"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/log"

	"github.com/dcSpark/multisig-coordination-smartcontract/payload"
)

// govToken seals governance dispatch. It is minted only inside the execution
// path of a confirmed self-targeted proposal, so registry mutators and the
// implementation upgrade are unreachable from any host-facing entry point.
type govToken struct{}

// applyGovernance decodes data and applies the governance action it carries.
// A failure here surfaces as a soft execution failure of the outer proposal.
func (e *Engine) applyGovernance(tok govToken, data []byte) error {
	action, err := e.decodeAction(data)
	if err != nil {
		return err
	}

	switch a := action.(type) {
	case payload.AddValidator:
		err = e.registry.add(tok, a.Validator, a.NewQuorum, a.StargateAddress)
	case payload.RemoveValidator:
		err = e.registry.remove(tok, a.Validator, a.NewQuorum, a.StargateAddress)
	case payload.ReplaceValidator:
		err = e.registry.replace(tok, a.OldValidator, a.NewValidator, a.StargateAddress)
	case payload.ChangeQuorum:
		err = e.registry.change(tok, a.NewQuorum, a.StargateAddress)
	case payload.UpgradeContract:
		err = e.upgradeContract(tok, a.NewImplementation)
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownAction, action.Method())
	}
	if err != nil {
		return err
	}

	e.metrics.governanceActions.WithLabelValues(action.Method()).Inc()
	e.syncGauges()
	e.log.Info("governance action applied",
		log.String("method", action.Method()),
		log.Int("validators", e.registry.count()),
		log.Uint64("quorum", e.registry.quorum),
	)
	return nil
}

// upgradeContract swaps the active implementation pointer. Upgrading to the
// already-active implementation is a no-op without an event.
func (e *Engine) upgradeContract(_ govToken, implementation common.Address) error {
	if implementation == (common.Address{}) {
		return fmt.Errorf("%w: implementation", ErrZeroAddress)
	}
	if e.implementations.Active() == implementation {
		return nil
	}
	e.implementations.SetActive(implementation)
	e.emit(ContractUpgradedEvent{Implementation: implementation})
	return nil
}

// decodeAction parses a governance payload, memoizing results by payload
// hash. A payload is decoded on every execution attempt, so the memo saves
// repeat ABI unpacks across retries and across proposals sharing a payload.
func (e *Engine) decodeAction(data []byte) (payload.Action, error) {
	key := hashPayload(data)
	if action, ok := e.actionCache.Get(key); ok {
		return action, nil
	}
	action, err := payload.ParseAction(data)
	if err != nil {
		return nil, err
	}
	e.actionCache.Put(key, action)
	return action, nil
}
