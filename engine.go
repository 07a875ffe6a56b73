// Copyright (C) 2022-2025, dcSpark. All rights reserved.
// See the file LICENSE for licensing terms.

// Package multisig implements a quorum-authorized transaction execution
// engine: a validator set collectively controls an account, and every action
// (fund transfer, arbitrary call, or self-governance change) requires a
// strict majority of validator votes before it takes effect.
package multisig

import (
	"errors"
	"fmt"
	"time"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/dcSpark/multisig-coordination-smartcontract/cache"
	"github.com/dcSpark/multisig-coordination-smartcontract/chain"
	"github.com/dcSpark/multisig-coordination-smartcontract/payload"
)

const (
	// DefaultWrappingFee is deducted from reward-bearing proposals at
	// execution: 1e18 base units.
	DefaultWrappingFee = 1_000_000_000_000_000_000

	// DefaultVoteWindow bounds voting on self-targeted add-validator
	// proposals when no window is configured.
	DefaultVoteWindow = 24 * time.Hour

	// DefaultActionCacheSize bounds the decoded governance payload memo.
	DefaultActionCacheSize = 64
)

// Config configures an Engine.
type Config struct {
	// Address is the account the validators collectively control.
	Address common.Address

	// Validators is the initial validator sequence.
	Validators []common.Address

	// Quorum is the initial confirmation threshold. It must be a strict
	// majority of the validator count.
	Quorum uint64

	// StargateAddress is the initial downstream routing tag. It changes only
	// together with the quorum.
	StargateAddress string

	// WrappingFee overrides DefaultWrappingFee when non-nil.
	WrappingFee *uint256.Int

	// VoteWindow overrides DefaultVoteWindow when positive.
	VoteWindow time.Duration

	// Ledger performs external calls on behalf of the controlled account.
	Ledger chain.Ledger

	// Implementations is the proxy layer's active-implementation pointer.
	// Defaults to an in-memory store.
	Implementations chain.ImplementationStore

	// Clock supplies vote-period deadlines. Defaults to the system clock.
	Clock chain.Clock

	// ActionCacheSize overrides DefaultActionCacheSize when positive.
	ActionCacheSize int

	Log     log.Logger
	Metrics *Metrics

	// Sinks receive every emitted event in addition to the engine's own log.
	// A rejecting sink is reported but never fails the emitting operation.
	Sinks []Sink
}

// Engine is the voting and execution state machine. The host environment
// serializes calls, so the engine carries no lock of its own; reentrant
// calls are rejected by an explicit guard on the two top-level entry points.
type Engine struct {
	address    common.Address
	fee        *uint256.Int
	voteWindow time.Duration

	registry *validatorRegistry
	store    *transactionStore
	events   *Log
	sinks    []Sink

	ledger          chain.Ledger
	implementations chain.ImplementationStore
	clock           chain.Clock
	log             log.Logger
	metrics         *Metrics
	actionCache     *cache.FIFOCache[common.Hash, payload.Action]

	rewards *uint256.Int
	entered bool
}

var _ chain.Contract = (*Engine)(nil)

// New validates cfg and returns an Engine controlling cfg.Address.
func New(cfg Config) (*Engine, error) {
	if cfg.Address == (common.Address{}) {
		return nil, fmt.Errorf("%w: engine address", ErrZeroAddress)
	}
	if cfg.Ledger == nil {
		return nil, errors.New("ledger is required")
	}
	if cfg.Implementations == nil {
		cfg.Implementations = chain.NewMemoryImplementationStore(common.Address{})
	}
	if cfg.Clock == nil {
		cfg.Clock = chain.SystemClock{}
	}
	if cfg.Log == nil {
		cfg.Log = log.NoLog{}
	}
	if cfg.Metrics == nil {
		cfg.Metrics = NewMetrics(prometheus.NewRegistry())
	}
	fee := uint256.NewInt(DefaultWrappingFee)
	if cfg.WrappingFee != nil {
		fee = cfg.WrappingFee.Clone()
	}
	voteWindow := DefaultVoteWindow
	if cfg.VoteWindow > 0 {
		voteWindow = cfg.VoteWindow
	}
	cacheSize := DefaultActionCacheSize
	if cfg.ActionCacheSize > 0 {
		cacheSize = cfg.ActionCacheSize
	}

	e := &Engine{
		address:         cfg.Address,
		fee:             fee,
		voteWindow:      voteWindow,
		sinks:           cfg.Sinks,
		events:          NewLog(),
		ledger:          cfg.Ledger,
		implementations: cfg.Implementations,
		clock:           cfg.Clock,
		log:             cfg.Log,
		metrics:         cfg.Metrics,
		actionCache:     cache.NewFIFOCache[common.Hash, payload.Action](cacheSize),
		rewards:         uint256.NewInt(0),
	}

	registry, err := newValidatorRegistry(cfg.Validators, cfg.Quorum, cfg.StargateAddress, e.emit)
	if err != nil {
		return nil, err
	}
	e.registry = registry
	e.store = newTransactionStore(cfg.Address, cfg.Clock, voteWindow, e.emit)
	e.syncGauges()

	e.log.Info("multisig engine initialized",
		log.Stringer("address", cfg.Address),
		log.Int("validators", registry.count()),
		log.Uint64("quorum", registry.quorum),
	)
	return e, nil
}

// VoteForTransaction records caller's confirmation of the identified
// proposal, creating the proposal on first vote, and attempts execution once
// quorum is reached. Every precondition is validated before any state is
// mutated; a failed external call after a committed vote is reported via
// events only.
func (e *Engine) VoteForTransaction(caller common.Address, id ids.ID, destination common.Address, value *uint256.Int, data []byte, hasReward bool) error {
	if e.entered {
		return ErrReentrantCall
	}
	e.entered = true
	defer func() { e.entered = false }()

	if !e.registry.contains(caller) {
		return fmt.Errorf("%w: %s", ErrNotValidator, caller)
	}
	value = normalizeValue(value)

	tx, ok := e.store.get(id)
	if ok {
		if !tx.matches(destination, value, hashPayload(data), hasReward) {
			return fmt.Errorf("%w: %s", ErrProposalMismatch, id)
		}
		if !tx.VotePeriod.IsZero() && e.clock.Now().After(tx.VotePeriod) {
			return fmt.Errorf("%w: %s", ErrVotePeriodExpired, id)
		}
		if tx.confirmedBy(caller) {
			return fmt.Errorf("%w: %s", ErrAlreadyConfirmed, caller)
		}
	}

	// A vote that reaches quorum triggers execution immediately, so the fee
	// bound is surfaced here, before any state changes.
	if (tx == nil || !tx.Executed) && e.reachesQuorumWith(tx, 1) && hasReward && e.fee.Gt(value) {
		return fmt.Errorf("%w: fee %s, value %s", ErrFeeExceedsValue, e.fee, value)
	}

	if tx == nil {
		created, err := e.store.create(id, destination, value, data, hasReward)
		if err != nil {
			return err
		}
		tx = created
		e.metrics.proposalsCreated.Inc()
		e.log.Debug("proposal created",
			log.Stringer("txID", id),
			log.Stringer("destination", destination),
			log.Bool("hasReward", hasReward),
		)
	}
	if err := e.store.recordVote(id, caller); err != nil {
		return err
	}
	e.metrics.confirmations.Inc()
	e.log.Debug("vote recorded",
		log.Stringer("txID", id),
		log.Stringer("validator", caller),
	)
	return e.attemptExecution(id)
}

// ExecuteTransaction retries execution of a confirmed proposal. Any caller
// may invoke it: a proposal whose external call failed stays eligible without
// re-voting.
func (e *Engine) ExecuteTransaction(caller common.Address, id ids.ID) error {
	if e.entered {
		return ErrReentrantCall
	}
	e.entered = true
	defer func() { e.entered = false }()

	tx, ok := e.store.get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
	}
	if tx.Executed {
		return fmt.Errorf("%w: %s", ErrAlreadyExecuted, id)
	}
	e.log.Debug("execution requested",
		log.Stringer("txID", id),
		log.Stringer("caller", caller),
	)
	return e.attemptExecution(id)
}

// attemptExecution performs the guarded one-shot external call. It is
// deliberately reentrancy-unguarded so the vote path and governance
// self-calls can nest inside the outer guard. The executed flag is set
// before the call; an external-call failure resets it, emits
// ExecutionFailure, and returns nil so recorded votes stay committed.
func (e *Engine) attemptExecution(id ids.ID) error {
	tx, ok := e.store.get(id)
	if !ok || tx.Executed || !e.confirmed(tx) {
		return nil
	}

	payable := tx.Value.Clone()
	if tx.HasReward {
		if e.fee.Gt(tx.Value) {
			return fmt.Errorf("%w: fee %s, value %s", ErrFeeExceedsValue, e.fee, tx.Value)
		}
		payable.Sub(payable, e.fee)
	}

	tx.Executed = true
	var callErr error
	if tx.Destination == e.address {
		if len(tx.Payload) > 0 {
			callErr = e.applyGovernance(govToken{}, tx.Payload)
		}
	} else {
		callErr = e.ledger.Execute(e.address, tx.Destination, payable, tx.Payload)
	}

	if callErr != nil {
		tx.Executed = false
		e.metrics.executionFailures.Inc()
		e.emit(ExecutionFailureEvent{
			TxID:   id,
			Reason: callErr.Error(),
		})
		e.log.Warn("execution attempt failed",
			log.Stringer("txID", id),
			log.Err(callErr),
		)
		return nil
	}

	if tx.HasReward {
		e.rewards.Add(e.rewards, e.fee)
	}
	e.metrics.executions.Inc()
	e.emit(ExecutionEvent{TxID: id})
	e.log.Info("transaction executed",
		log.Stringer("txID", id),
		log.Stringer("destination", tx.Destination),
	)
	return nil
}

// Call is the host-facing contract entry point. A plain value transfer is
// accepted as a deposit; vote and execute calldata dispatch to the guarded
// entry points; governance calldata is rejected because the sealed token
// cannot be minted here.
func (e *Engine) Call(caller common.Address, value *uint256.Int, data []byte) error {
	if len(data) == 0 {
		if value != nil && !value.IsZero() {
			e.metrics.deposits.Inc()
			e.emit(DepositEvent{
				Sender: caller,
				Amount: value.Clone(),
			})
		}
		return nil
	}

	call, err := payload.Parse(data)
	if err != nil {
		return err
	}
	switch c := call.(type) {
	case payload.VoteCall:
		return e.VoteForTransaction(caller, c.TransactionID, c.Destination, c.Value, c.Payload, c.HasReward)
	case payload.ExecuteCall:
		return e.ExecuteTransaction(caller, c.TransactionID)
	default:
		return fmt.Errorf("%w: %s", ErrGovernanceNotSealed, call.Method())
	}
}

// confirmed reports whether tx meets the live quorum: votes are counted over
// the current validator sequence against the current quorum value.
func (e *Engine) confirmed(tx *Transaction) bool {
	count := e.store.confirmationCount(tx.ID, e.registry.validators)
	return count >= e.registry.quorum
}

// reachesQuorumWith reports whether tx would meet the live quorum after
// extra additional votes. A nil tx stands for a proposal about to be created.
func (e *Engine) reachesQuorumWith(tx *Transaction, extra uint64) bool {
	count := extra
	if tx != nil {
		count += e.store.confirmationCount(tx.ID, e.registry.validators)
	}
	return count >= e.registry.quorum
}

// emit appends event to the engine log and fans it out to the configured
// sinks. Sink rejections are logged, never propagated.
func (e *Engine) emit(event Event) {
	_ = e.events.Accept(event)

	var errs error
	for _, sink := range e.sinks {
		errs = multierr.Append(errs, sink.Accept(event))
	}
	if errs != nil {
		e.log.Warn("event sink rejected event",
			log.String("type", event.Type()),
			log.Err(errs),
		)
	}
}

func (e *Engine) syncGauges() {
	e.metrics.validatorCount.Set(float64(e.registry.count()))
	e.metrics.quorumSize.Set(float64(e.registry.quorum))
}

func normalizeValue(v *uint256.Int) *uint256.Int {
	if v == nil {
		return uint256.NewInt(0)
	}
	return v
}
