// Copyright (C) 2022-2025, dcSpark. All rights reserved.
// See the file LICENSE for licensing terms.

package multisig

import (
	"fmt"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/math/set"
)

// majorityQuorum returns the minimum strict-majority quorum for count
// validators.
func majorityQuorum(count int) uint64 {
	return uint64(count)/2 + 1
}

// checkQuorum validates quorum against the strict-majority bounds for count
// validators: 0 < quorum <= count and quorum >= floor(count/2)+1.
func checkQuorum(quorum uint64, count int) error {
	if quorum == 0 || quorum > uint64(count) || quorum < majorityQuorum(count) {
		return fmt.Errorf("%w: quorum %d with %d validators", ErrInvalidQuorum, quorum, count)
	}
	return nil
}

// validatorRegistry owns the validator sequence, the membership set, the
// quorum threshold, and the stargate routing tag. The sequence and the set are
// kept consistent at all times. Mutations require the sealed governance token
// and are reachable only through self-execution.
type validatorRegistry struct {
	validators []common.Address
	members    set.Set[common.Address]
	quorum     uint64
	stargate   string
	emit       func(Event)
}

func newValidatorRegistry(validators []common.Address, quorum uint64, stargate string, emit func(Event)) (*validatorRegistry, error) {
	members := set.NewSet[common.Address](len(validators))
	for _, v := range validators {
		if v == (common.Address{}) {
			return nil, fmt.Errorf("%w: validator", ErrZeroAddress)
		}
		if members.Contains(v) {
			return nil, fmt.Errorf("%w: %s", ErrValidatorExists, v)
		}
		members.Add(v)
	}
	if err := checkQuorum(quorum, len(validators)); err != nil {
		return nil, err
	}

	sequence := make([]common.Address, len(validators))
	copy(sequence, validators)
	return &validatorRegistry{
		validators: sequence,
		members:    members,
		quorum:     quorum,
		stargate:   stargate,
		emit:       emit,
	}, nil
}

func (r *validatorRegistry) contains(addr common.Address) bool {
	return r.members.Contains(addr)
}

func (r *validatorRegistry) count() int {
	return len(r.validators)
}

// snapshot returns a copy of the validator sequence in storage order.
func (r *validatorRegistry) snapshot() []common.Address {
	out := make([]common.Address, len(r.validators))
	copy(out, r.validators)
	return out
}

func (r *validatorRegistry) indexOf(addr common.Address) int {
	for i, v := range r.validators {
		if v == addr {
			return i
		}
	}
	return -1
}

// add appends addr to the sequence and applies the new quorum and tag. All
// preconditions are validated before any mutation.
func (r *validatorRegistry) add(_ govToken, addr common.Address, newQuorum uint64, newTag string) error {
	if addr == (common.Address{}) {
		return fmt.Errorf("%w: validator", ErrZeroAddress)
	}
	if r.members.Contains(addr) {
		return fmt.Errorf("%w: %s", ErrValidatorExists, addr)
	}
	if err := checkQuorum(newQuorum, len(r.validators)+1); err != nil {
		return err
	}

	r.validators = append(r.validators, addr)
	r.members.Add(addr)
	r.emit(ValidatorsUpdatedEvent{
		Added:      []common.Address{addr},
		Validators: r.snapshot(),
	})
	r.setQuorum(newQuorum, newTag)
	return nil
}

// remove drops addr by swapping it with the last element and truncating, so
// the order of the remaining validators is not preserved. Prior votes by addr
// are not cleared; live quorum counting excludes them naturally.
func (r *validatorRegistry) remove(_ govToken, addr common.Address, newQuorum uint64, newTag string) error {
	if !r.members.Contains(addr) {
		return fmt.Errorf("%w: %s", ErrUnknownValidator, addr)
	}
	if err := checkQuorum(newQuorum, len(r.validators)-1); err != nil {
		return err
	}

	i := r.indexOf(addr)
	last := len(r.validators) - 1
	r.validators[i] = r.validators[last]
	r.validators = r.validators[:last]
	r.members.Remove(addr)
	r.emit(ValidatorsUpdatedEvent{
		Removed:    []common.Address{addr},
		Validators: r.snapshot(),
	})
	r.setQuorum(newQuorum, newTag)
	return nil
}

// replace swaps from for to in place, preserving the sequence position, and
// re-applies the current quorum together with newTag.
func (r *validatorRegistry) replace(_ govToken, from, to common.Address, newTag string) error {
	if !r.members.Contains(from) {
		return fmt.Errorf("%w: %s", ErrUnknownValidator, from)
	}
	if r.members.Contains(to) {
		return fmt.Errorf("%w: %s", ErrValidatorExists, to)
	}
	if to == (common.Address{}) {
		return fmt.Errorf("%w: validator", ErrZeroAddress)
	}

	r.validators[r.indexOf(from)] = to
	r.members.Remove(from)
	r.members.Add(to)
	r.emit(ValidatorsUpdatedEvent{
		Added:      []common.Address{to},
		Removed:    []common.Address{from},
		Validators: r.snapshot(),
	})
	r.setQuorum(r.quorum, newTag)
	return nil
}

// change validates and applies a new quorum and tag against the current
// validator count.
func (r *validatorRegistry) change(_ govToken, quorum uint64, tag string) error {
	if err := checkQuorum(quorum, len(r.validators)); err != nil {
		return err
	}
	r.setQuorum(quorum, tag)
	return nil
}

// setQuorum stores quorum and tag together. No event is emitted when both
// already hold the given values.
func (r *validatorRegistry) setQuorum(quorum uint64, tag string) {
	if r.quorum == quorum && r.stargate == tag {
		return
	}
	r.quorum = quorum
	r.stargate = tag
	r.emit(QuorumChangedEvent{
		Quorum:          quorum,
		StargateAddress: tag,
	})
}
