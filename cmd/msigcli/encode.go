// Copyright (C) 2022-2025, dcSpark. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/ids"
	"github.com/spf13/cobra"

	"github.com/dcSpark/multisig-coordination-smartcontract/payload"
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode multisig call payloads",
	Long:  `Encode the ABI calldata for the multisig account surface.`,
}

var encodeVoteCmd = &cobra.Command{
	Use:   "vote",
	Short: "Encode a voteForTransaction payload",
	Run: func(cmd *cobra.Command, args []string) {
		idHex, _ := cmd.Flags().GetString("id")
		destHex, _ := cmd.Flags().GetString("destination")
		valueDec, _ := cmd.Flags().GetString("value")
		payloadHex, _ := cmd.Flags().GetString("payload")
		hasReward, _ := cmd.Flags().GetBool("reward")

		txID, err := parseTxID(idHex)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid transaction id: %v\n", err)
			os.Exit(1)
		}
		destination, err := parseAddress(destHex)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid destination: %v\n", err)
			os.Exit(1)
		}
		value, err := parseAmount(valueDec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid value: %v\n", err)
			os.Exit(1)
		}
		callData, err := parseHexData(payloadHex)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid payload: %v\n", err)
			os.Exit(1)
		}

		printCalldata(payload.VoteCall{
			TransactionID: txID,
			Destination:   destination,
			Value:         value,
			Payload:       callData,
			HasReward:     hasReward,
		}.Pack())
	},
}

var encodeExecuteCmd = &cobra.Command{
	Use:   "execute",
	Short: "Encode an executeTransaction payload",
	Run: func(cmd *cobra.Command, args []string) {
		idHex, _ := cmd.Flags().GetString("id")

		txID, err := parseTxID(idHex)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid transaction id: %v\n", err)
			os.Exit(1)
		}
		printCalldata(payload.ExecuteCall{TransactionID: txID}.Pack())
	},
}

var encodeAddValidatorCmd = &cobra.Command{
	Use:   "add-validator",
	Short: "Encode an addValidator governance payload",
	Run: func(cmd *cobra.Command, args []string) {
		validatorHex, _ := cmd.Flags().GetString("validator")
		quorum, _ := cmd.Flags().GetUint64("quorum")
		stargate, _ := cmd.Flags().GetString("stargate")

		validator, err := parseAddress(validatorHex)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid validator: %v\n", err)
			os.Exit(1)
		}
		printCalldata(payload.AddValidator{
			Validator:       validator,
			NewQuorum:       quorum,
			StargateAddress: stargate,
		}.Pack())
	},
}

var encodeRemoveValidatorCmd = &cobra.Command{
	Use:   "remove-validator",
	Short: "Encode a removeValidator governance payload",
	Run: func(cmd *cobra.Command, args []string) {
		validatorHex, _ := cmd.Flags().GetString("validator")
		quorum, _ := cmd.Flags().GetUint64("quorum")
		stargate, _ := cmd.Flags().GetString("stargate")

		validator, err := parseAddress(validatorHex)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid validator: %v\n", err)
			os.Exit(1)
		}
		printCalldata(payload.RemoveValidator{
			Validator:       validator,
			NewQuorum:       quorum,
			StargateAddress: stargate,
		}.Pack())
	},
}

var encodeReplaceValidatorCmd = &cobra.Command{
	Use:   "replace-validator",
	Short: "Encode a replaceValidator governance payload",
	Run: func(cmd *cobra.Command, args []string) {
		oldHex, _ := cmd.Flags().GetString("old")
		newHex, _ := cmd.Flags().GetString("new")
		stargate, _ := cmd.Flags().GetString("stargate")

		oldValidator, err := parseAddress(oldHex)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid old validator: %v\n", err)
			os.Exit(1)
		}
		newValidator, err := parseAddress(newHex)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid new validator: %v\n", err)
			os.Exit(1)
		}
		printCalldata(payload.ReplaceValidator{
			OldValidator:    oldValidator,
			NewValidator:    newValidator,
			StargateAddress: stargate,
		}.Pack())
	},
}

var encodeChangeQuorumCmd = &cobra.Command{
	Use:   "change-quorum",
	Short: "Encode a changeQuorum governance payload",
	Run: func(cmd *cobra.Command, args []string) {
		quorum, _ := cmd.Flags().GetUint64("quorum")
		stargate, _ := cmd.Flags().GetString("stargate")

		printCalldata(payload.ChangeQuorum{
			NewQuorum:       quorum,
			StargateAddress: stargate,
		}.Pack())
	},
}

var encodeUpgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Encode an upgradeContract governance payload",
	Run: func(cmd *cobra.Command, args []string) {
		implementationHex, _ := cmd.Flags().GetString("implementation")

		implementation, err := parseAddress(implementationHex)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid implementation: %v\n", err)
			os.Exit(1)
		}
		printCalldata(payload.UpgradeContract{NewImplementation: implementation}.Pack())
	},
}

var selectorsCmd = &cobra.Command{
	Use:   "selectors",
	Short: "List the method selectors of the multisig account surface",
	Run: func(cmd *cobra.Command, args []string) {
		selectors := []struct {
			method   string
			selector payload.Selector
		}{
			{"voteForTransaction", payload.VoteForTransactionSelector},
			{"executeTransaction", payload.ExecuteTransactionSelector},
			{"addValidator", payload.AddValidatorSelector},
			{"removeValidator", payload.RemoveValidatorSelector},
			{"replaceValidator", payload.ReplaceValidatorSelector},
			{"changeQuorum", payload.ChangeQuorumSelector},
			{"upgradeContract", payload.UpgradeContractSelector},
		}
		for _, s := range selectors {
			fmt.Printf("%-20s %s\n", s.method, s.selector)
		}
	},
}

func init() {
	encodeCmd.AddCommand(encodeVoteCmd)
	encodeCmd.AddCommand(encodeExecuteCmd)
	encodeCmd.AddCommand(encodeAddValidatorCmd)
	encodeCmd.AddCommand(encodeRemoveValidatorCmd)
	encodeCmd.AddCommand(encodeReplaceValidatorCmd)
	encodeCmd.AddCommand(encodeChangeQuorumCmd)
	encodeCmd.AddCommand(encodeUpgradeCmd)

	// Vote command flags
	encodeVoteCmd.Flags().StringP("id", "i", "", "Transaction id (hex, at most 32 bytes)")
	encodeVoteCmd.Flags().StringP("destination", "d", "", "Destination address (hex)")
	encodeVoteCmd.Flags().StringP("value", "v", "0", "Value in base units (decimal)")
	encodeVoteCmd.Flags().StringP("payload", "p", "", "Destination calldata (hex)")
	encodeVoteCmd.Flags().BoolP("reward", "r", false, "Deduct the wrapping fee as a reward")
	encodeVoteCmd.MarkFlagRequired("id")
	encodeVoteCmd.MarkFlagRequired("destination")

	// Execute command flags
	encodeExecuteCmd.Flags().StringP("id", "i", "", "Transaction id (hex, at most 32 bytes)")
	encodeExecuteCmd.MarkFlagRequired("id")

	// Add validator command flags
	encodeAddValidatorCmd.Flags().String("validator", "", "Validator address (hex)")
	encodeAddValidatorCmd.Flags().Uint64("quorum", 0, "Quorum after the change")
	encodeAddValidatorCmd.Flags().String("stargate", "", "New stargate address")
	encodeAddValidatorCmd.MarkFlagRequired("validator")
	encodeAddValidatorCmd.MarkFlagRequired("quorum")

	// Remove validator command flags
	encodeRemoveValidatorCmd.Flags().String("validator", "", "Validator address (hex)")
	encodeRemoveValidatorCmd.Flags().Uint64("quorum", 0, "Quorum after the change")
	encodeRemoveValidatorCmd.Flags().String("stargate", "", "New stargate address")
	encodeRemoveValidatorCmd.MarkFlagRequired("validator")
	encodeRemoveValidatorCmd.MarkFlagRequired("quorum")

	// Replace validator command flags
	encodeReplaceValidatorCmd.Flags().String("old", "", "Validator address to replace (hex)")
	encodeReplaceValidatorCmd.Flags().String("new", "", "Replacement validator address (hex)")
	encodeReplaceValidatorCmd.Flags().String("stargate", "", "New stargate address")
	encodeReplaceValidatorCmd.MarkFlagRequired("old")
	encodeReplaceValidatorCmd.MarkFlagRequired("new")

	// Change quorum command flags
	encodeChangeQuorumCmd.Flags().Uint64("quorum", 0, "New quorum")
	encodeChangeQuorumCmd.Flags().String("stargate", "", "New stargate address")
	encodeChangeQuorumCmd.MarkFlagRequired("quorum")

	// Upgrade command flags
	encodeUpgradeCmd.Flags().String("implementation", "", "New implementation address (hex)")
	encodeUpgradeCmd.MarkFlagRequired("implementation")
}

func printCalldata(data []byte, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode payload: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("0x%x\n", data)
}

// parseTxID decodes a hex transaction id of up to 32 bytes, right-padding
// shorter inputs with zeros.
func parseTxID(s string) (ids.ID, error) {
	raw, err := parseHexData(s)
	if err != nil {
		return ids.ID{}, err
	}
	if len(raw) == 0 {
		return ids.ID{}, fmt.Errorf("empty transaction id")
	}
	if len(raw) > len(ids.ID{}) {
		return ids.ID{}, fmt.Errorf("transaction id longer than 32 bytes")
	}
	var id ids.ID
	copy(id[:], raw)
	return id, nil
}

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%q is not a hex address", s)
	}
	return common.HexToAddress(s), nil
}

func parseAmount(s string) (*uint256.Int, error) {
	if s == "" {
		return uint256.NewInt(0), nil
	}
	return uint256.FromDecimal(s)
}

func parseHexData(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	if s == "" {
		return nil, nil
	}
	return hex.DecodeString(s)
}
