// Copyright (C) 2022-2025, dcSpark. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	multisig "github.com/dcSpark/multisig-coordination-smartcontract"
	"github.com/dcSpark/multisig-coordination-smartcontract/chain"
	"github.com/dcSpark/multisig-coordination-smartcontract/config"
	"github.com/dcSpark/multisig-coordination-smartcontract/payload"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a scripted multisig lifecycle against an in-memory ledger",
	Long: `Run builds a multisig engine from the JSON config file and drives it
through a reward-bearing transfer, a validator addition, and a deposit,
logging every event. With --serve the process then keeps serving prometheus
metrics until interrupted.`,
	Run: func(cmd *cobra.Command, args []string) {
		v, err := config.BuildViper(cmd.Flags())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Couldn't configure flags: %v\n", err)
			os.Exit(1)
		}
		cfg, err := config.NewConfig(v)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Couldn't build config: %v\n", err)
			os.Exit(1)
		}
		serve, _ := cmd.Flags().GetBool("serve")
		if err := runSimulation(cfg, serve); err != nil {
			fmt.Fprintf(os.Stderr, "Simulation failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	// The config file may also be supplied through the CONFIG_FILE environment
	// variable, so the flag is not marked required here.
	runCmd.Flags().String(config.ConfigFileKey, "", "Path to the JSON configuration file")
	runCmd.Flags().Bool("serve", false, "Keep serving prometheus metrics after the scenario completes")
}

func runSimulation(cfg config.Config, serve bool) error {
	logLevel, err := log.ToLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	logger := log.NewLogger(
		"msigcli",
		*log.NewWrappedCore(
			logLevel,
			os.Stdout,
			log.JSON.ConsoleEncoder(),
		),
	)

	registry := prometheus.NewRegistry()
	ledger := chain.NewMemoryLedger()
	engine, err := multisig.New(multisig.Config{
		Address:         cfg.Account(),
		Validators:      cfg.Validators(),
		Quorum:          cfg.Quorum,
		StargateAddress: cfg.StargateAddress,
		WrappingFee:     cfg.Fee(),
		VoteWindow:      cfg.VoteWindow(),
		ActionCacheSize: cfg.ActionCacheSize,
		Ledger:          ledger,
		Log:             logger,
		Metrics:         multisig.NewMetrics(registry),
	})
	if err != nil {
		return fmt.Errorf("failed to build engine: %w", err)
	}
	ledger.Register(cfg.Account(), engine)
	if balance := cfg.Balance(); balance != nil {
		ledger.Credit(cfg.Account(), balance)
	}

	if err := runScenario(logger, engine, ledger); err != nil {
		return err
	}
	if !serve {
		return nil
	}
	return serveMetrics(logger, registry, cfg.MetricsPort)
}

// runScenario drives one reward-bearing transfer, one validator addition, and
// one deposit through the engine, logging the resulting events.
func runScenario(logger log.Logger, engine *multisig.Engine, ledger *chain.MemoryLedger) error {
	validators := engine.Validators()
	quorum := engine.Quorum()
	account := engine.Address()

	recipient := common.HexToAddress("0x00000000000000000000000000000000000000fe")
	value := new(uint256.Int).Add(engine.WrappingFee(), uint256.NewInt(1_000))

	// Make sure the demo transfer is funded.
	if ledger.BalanceOf(account).Lt(value) {
		ledger.Credit(account, new(uint256.Int).Mul(value, uint256.NewInt(2)))
	}

	txID := ids.ID(common.Keccak256Hash([]byte("demo-transfer")))
	logger.Info("proposing reward-bearing transfer",
		log.Stringer("txID", txID),
		log.Stringer("recipient", recipient),
		log.String("value", value.Dec()),
	)
	for _, validator := range validators[:quorum] {
		if err := engine.VoteForTransaction(validator, txID, recipient, value, nil, true); err != nil {
			return fmt.Errorf("vote by %s: %w", validator, err)
		}
	}
	tx, _ := engine.Transaction(txID)
	logger.Info("transfer proposal settled",
		log.Bool("executed", tx.Executed),
		log.String("recipientBalance", ledger.BalanceOf(recipient).Dec()),
		log.String("rewardsCollected", engine.RewardsCollected().Dec()),
	)

	joiner := common.HexToAddress("0x00000000000000000000000000000000000000fd")
	newQuorum := uint64(len(validators)+1)/2 + 1
	data, err := payload.AddValidator{
		Validator:       joiner,
		NewQuorum:       newQuorum,
		StargateAddress: engine.StargateAddress(),
	}.Pack()
	if err != nil {
		return fmt.Errorf("failed to encode addValidator: %w", err)
	}
	govID := ids.ID(common.Keccak256Hash([]byte("demo-add-validator")))
	logger.Info("proposing validator addition",
		log.Stringer("txID", govID),
		log.Stringer("validator", joiner),
		log.Uint64("newQuorum", newQuorum),
	)
	for _, validator := range validators[:quorum] {
		if err := engine.VoteForTransaction(validator, govID, account, nil, data, false); err != nil {
			return fmt.Errorf("vote by %s: %w", validator, err)
		}
	}
	logger.Info("governance proposal settled",
		log.Int("validators", len(engine.Validators())),
		log.Uint64("quorum", engine.Quorum()),
	)

	depositor := common.HexToAddress("0x00000000000000000000000000000000000000fc")
	amount := uint256.NewInt(500)
	ledger.Credit(depositor, amount)
	if err := ledger.Execute(depositor, account, amount, nil); err != nil {
		return fmt.Errorf("deposit failed: %w", err)
	}

	for _, event := range engine.Events().Events() {
		logger.Info("event",
			log.String("type", event.Type()),
			log.String("detail", fmt.Sprintf("%+v", event)),
		)
	}
	logger.Info("scenario complete",
		log.String("accountBalance", ledger.BalanceOf(account).Dec()),
		log.Int("events", engine.Events().Len()),
	)
	return nil
}

// serveMetrics blocks serving the prometheus registry until the process is
// interrupted.
func serveMetrics(logger log.Logger, registry *prometheus.Registry, port uint16) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errGroup, ctx := errgroup.WithContext(ctx)
	errGroup.Go(func() error {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		httpServer := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		}
		// Handle graceful shutdown
		go func() {
			<-ctx.Done()
			_ = httpServer.Shutdown(context.Background())
		}()

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
		return nil
	})

	logger.Info("serving metrics",
		log.Uint64("port", uint64(port)),
	)
	return errGroup.Wait()
}
