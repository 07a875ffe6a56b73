// Copyright (C) 2022-2025, dcSpark. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/ids"

	multisig "github.com/dcSpark/multisig-coordination-smartcontract"
	"github.com/dcSpark/multisig-coordination-smartcontract/chain"
)

func main() {
	account := common.HexToAddress("0x0000000000000000000000000000000000001111")
	validators := []common.Address{
		common.HexToAddress("0x00000000000000000000000000000000000000a1"),
		common.HexToAddress("0x00000000000000000000000000000000000000b2"),
		common.HexToAddress("0x00000000000000000000000000000000000000c3"),
	}

	// A 2-of-3 validator set controlling an in-memory account.
	ledger := chain.NewMemoryLedger()
	engine, err := multisig.New(multisig.Config{
		Address:         account,
		Validators:      validators,
		Quorum:          2,
		StargateAddress: "addr1q9x",
		WrappingFee:     uint256.NewInt(100),
		Ledger:          ledger,
	})
	if err != nil {
		panic(err)
	}
	ledger.Register(account, engine)
	ledger.Credit(account, uint256.NewInt(10_000))

	// Two matching votes reach quorum and execute the transfer.
	txID := ids.ID{0x01}
	recipient := common.HexToAddress("0x00000000000000000000000000000000000000fe")
	for _, validator := range validators[:2] {
		if err := engine.VoteForTransaction(validator, txID, recipient, uint256.NewInt(2_500), nil, false); err != nil {
			panic(err)
		}
	}

	tx, _ := engine.Transaction(txID)
	fmt.Printf("Executed: %v\n", tx.Executed)
	fmt.Printf("Confirmations: %d of %d validators\n", engine.ConfirmationCount(txID), len(engine.Validators()))
	fmt.Printf("Recipient balance: %s\n", ledger.BalanceOf(recipient).Dec())
	fmt.Printf("Account balance: %s\n", ledger.BalanceOf(account).Dec())
	for _, event := range engine.Events().Events() {
		fmt.Printf("Event: %s %+v\n", event.Type(), event)
	}
}
