// Copyright (C) 2022-2025, dcSpark. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config loads and validates the multisig simulator configuration.
// Values are read from a JSON config file and may be overridden through
// environment variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"go.uber.org/multierr"
)

const (
	defaultLogLevel          = "info"
	defaultMetricsPort       = 9090
	defaultVoteWindowSeconds = 86400
)

// Config is the top-level simulator configuration.
type Config struct {
	LogLevel           string   `mapstructure:"log-level" json:"log-level"`
	MetricsPort        uint16   `mapstructure:"metrics-port" json:"metrics-port"`
	AccountAddress     string   `mapstructure:"account-address" json:"account-address"`
	ValidatorAddresses []string `mapstructure:"validator-addresses" json:"validator-addresses"`
	Quorum             uint64   `mapstructure:"quorum" json:"quorum"`
	StargateAddress    string   `mapstructure:"stargate-address" json:"stargate-address"`
	WrappingFee        string   `mapstructure:"wrapping-fee" json:"wrapping-fee"`
	VoteWindowSeconds  uint64   `mapstructure:"vote-window-seconds" json:"vote-window-seconds"`
	ActionCacheSize    int      `mapstructure:"action-cache-size" json:"action-cache-size"`
	InitialBalance     string   `mapstructure:"initial-balance" json:"initial-balance"`

	// Populated by Validate.
	accountAddress     common.Address
	validatorAddresses []common.Address
	wrappingFee        *uint256.Int
	initialBalance     *uint256.Int
}

// Validate checks the configuration and parses the address and amount fields.
// The accessors below return the parsed values and must not be called before
// Validate succeeds.
func (c *Config) Validate() error {
	if !common.IsHexAddress(c.AccountAddress) {
		return fmt.Errorf("invalid %s %q", AccountAddressKey, c.AccountAddress)
	}
	c.accountAddress = common.HexToAddress(c.AccountAddress)
	if c.accountAddress == (common.Address{}) {
		return fmt.Errorf("%s must not be the zero address", AccountAddressKey)
	}

	if len(c.ValidatorAddresses) == 0 {
		return errors.New("at least one validator address is required")
	}
	var errs error
	seen := make(map[common.Address]bool, len(c.ValidatorAddresses))
	c.validatorAddresses = make([]common.Address, 0, len(c.ValidatorAddresses))
	for _, raw := range c.ValidatorAddresses {
		if !common.IsHexAddress(raw) {
			errs = multierr.Append(errs, fmt.Errorf("invalid validator address %q", raw))
			continue
		}
		addr := common.HexToAddress(raw)
		if seen[addr] {
			errs = multierr.Append(errs, fmt.Errorf("duplicate validator address %s", addr))
			continue
		}
		seen[addr] = true
		c.validatorAddresses = append(c.validatorAddresses, addr)
	}
	if errs != nil {
		return errs
	}

	if c.Quorum == 0 {
		return fmt.Errorf("%s must be positive", QuorumKey)
	}

	if c.WrappingFee != "" {
		fee, err := uint256.FromDecimal(c.WrappingFee)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", WrappingFeeKey, c.WrappingFee, err)
		}
		c.wrappingFee = fee
	}
	if c.InitialBalance != "" {
		balance, err := uint256.FromDecimal(c.InitialBalance)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", InitialBalanceKey, c.InitialBalance, err)
		}
		c.initialBalance = balance
	}
	return nil
}

// Account returns the parsed controlled account address.
func (c *Config) Account() common.Address {
	return c.accountAddress
}

// Validators returns the parsed validator addresses in configured order.
func (c *Config) Validators() []common.Address {
	out := make([]common.Address, len(c.validatorAddresses))
	copy(out, c.validatorAddresses)
	return out
}

// Fee returns the parsed wrapping fee, or nil when unset.
func (c *Config) Fee() *uint256.Int {
	if c.wrappingFee == nil {
		return nil
	}
	return c.wrappingFee.Clone()
}

// Balance returns the parsed initial account balance, or nil when unset.
func (c *Config) Balance() *uint256.Int {
	if c.initialBalance == nil {
		return nil
	}
	return c.initialBalance.Clone()
}

// VoteWindow returns the configured vote window duration.
func (c *Config) VoteWindow() time.Duration {
	return time.Duration(c.VoteWindowSeconds) * time.Second
}
