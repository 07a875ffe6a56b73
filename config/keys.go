// Copyright (C) 2022-2025, dcSpark. All rights reserved.
// See the file LICENSE for licensing terms.

package config

const (
	// Command line option keys
	ConfigFileKey = "config-file"
	VersionKey    = "version"
	HelpKey       = "help"

	// Environment variable keys
	ConfigFileEnvKey = "CONFIG_FILE"

	// Top-level configuration keys
	LogLevelKey           = "log-level"
	MetricsPortKey        = "metrics-port"
	AccountAddressKey     = "account-address"
	ValidatorAddressesKey = "validator-addresses"
	QuorumKey             = "quorum"
	StargateAddressKey    = "stargate-address"
	WrappingFeeKey        = "wrapping-fee"
	VoteWindowSecondsKey  = "vote-window-seconds"
	ActionCacheSizeKey    = "action-cache-size"
	InitialBalanceKey     = "initial-balance"
)
