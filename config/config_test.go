// Copyright (C) 2022-2025, dcSpark. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		LogLevel:       "info",
		AccountAddress: "0x0000000000000000000000000000000000001111",
		ValidatorAddresses: []string{
			"0x00000000000000000000000000000000000000a1",
			"0x00000000000000000000000000000000000000b2",
			"0x00000000000000000000000000000000000000c3",
		},
		Quorum:            2,
		StargateAddress:   "addr1q9x",
		WrappingFee:       "1000",
		VoteWindowSeconds: 3600,
		InitialBalance:    "5000000",
	}
}

func TestValidate(t *testing.T) {
	require := require.New(t)

	cfg := validConfig()
	require.NoError(cfg.Validate())

	require.Equal(common.HexToAddress("0x0000000000000000000000000000000000001111"), cfg.Account())
	require.Len(cfg.Validators(), 3)
	require.Equal(common.HexToAddress("0x00000000000000000000000000000000000000a1"), cfg.Validators()[0])
	require.Equal(uint256.NewInt(1000), cfg.Fee())
	require.Equal(uint256.NewInt(5000000), cfg.Balance())
	require.Equal(time.Hour, cfg.VoteWindow())
}

func TestValidateOptionalAmounts(t *testing.T) {
	require := require.New(t)

	cfg := validConfig()
	cfg.WrappingFee = ""
	cfg.InitialBalance = ""
	require.NoError(cfg.Validate())
	require.Nil(cfg.Fee())
	require.Nil(cfg.Balance())
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{
			name:   "malformed account address",
			mutate: func(c *Config) { c.AccountAddress = "not-an-address" },
		},
		{
			name:   "zero account address",
			mutate: func(c *Config) { c.AccountAddress = "0x0000000000000000000000000000000000000000" },
		},
		{
			name:   "no validators",
			mutate: func(c *Config) { c.ValidatorAddresses = nil },
		},
		{
			name: "malformed validator address",
			mutate: func(c *Config) {
				c.ValidatorAddresses = append(c.ValidatorAddresses, "bogus")
			},
		},
		{
			name: "duplicate validator address",
			mutate: func(c *Config) {
				c.ValidatorAddresses = append(c.ValidatorAddresses, c.ValidatorAddresses[0])
			},
		},
		{
			name:   "zero quorum",
			mutate: func(c *Config) { c.Quorum = 0 },
		},
		{
			name:   "malformed wrapping fee",
			mutate: func(c *Config) { c.WrappingFee = "12z4" },
		},
		{
			name:   "malformed initial balance",
			mutate: func(c *Config) { c.InitialBalance = "-5" },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestNewConfigFromFile(t *testing.T) {
	require := require.New(t)

	raw := `{
		"account-address": "0x0000000000000000000000000000000000001111",
		"validator-addresses": [
			"0x00000000000000000000000000000000000000a1",
			"0x00000000000000000000000000000000000000b2",
			"0x00000000000000000000000000000000000000c3"
		],
		"quorum": 2,
		"stargate-address": "addr1q9x",
		"wrapping-fee": "1000",
		"initial-balance": "5000000"
	}`
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(os.WriteFile(path, []byte(raw), 0o600))

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String(ConfigFileKey, "", "config file path")
	require.NoError(fs.Set(ConfigFileKey, path))

	v, err := BuildViper(fs)
	require.NoError(err)
	cfg, err := NewConfig(v)
	require.NoError(err)

	require.Equal(uint64(2), cfg.Quorum)
	require.Equal("addr1q9x", cfg.StargateAddress)
	require.Len(cfg.Validators(), 3)

	// Omitted keys fall back to defaults.
	require.Equal("info", cfg.LogLevel)
	require.Equal(uint16(9090), cfg.MetricsPort)
	require.Equal(uint64(86400), cfg.VoteWindowSeconds)
}

func TestNewConfigEnvOverride(t *testing.T) {
	require := require.New(t)

	raw := `{
		"account-address": "0x0000000000000000000000000000000000001111",
		"validator-addresses": [
			"0x00000000000000000000000000000000000000a1",
			"0x00000000000000000000000000000000000000b2",
			"0x00000000000000000000000000000000000000c3"
		],
		"quorum": 2
	}`
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(os.WriteFile(path, []byte(raw), 0o600))
	t.Setenv("QUORUM", "3")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String(ConfigFileKey, "", "config file path")
	require.NoError(fs.Set(ConfigFileKey, path))

	v, err := BuildViper(fs)
	require.NoError(err)
	cfg, err := NewConfig(v)
	require.NoError(err)
	require.Equal(uint64(3), cfg.Quorum)
}

func TestBuildViperRequiresConfigFile(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String(ConfigFileKey, "", "config file path")

	_, err := BuildViper(fs)
	require.ErrorContains(t, err, "not set")
}
