// Copyright (C) 2022-2025, dcSpark. All rights reserved.
// See the file LICENSE for licensing terms.

// msigcli is the command line companion of the multisig coordination engine.
// It encodes the ABI payloads validators submit on chain and simulates the
// full voting, execution, and governance lifecycle against an in-memory
// ledger.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "msigcli",
	Short: "Multisig coordination engine CLI",
	Long: `msigcli drives a local multisig coordination engine.

A validator set collectively controls an account: proposals are created and
confirmed by validator votes, execute exactly once when a strict majority is
reached, and govern the validator set itself through self-targeted calls.`,
	Version: fmt.Sprintf("%s (built %s)", version, buildDate),
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(selectorsCmd)
}
