package main

import (
	"fmt"
	"os"

	"github.com/AlexZinkM/multichain-wallet/custody"
	"github.com/AlexZinkM/multichain-wallet/internal/client"
	"github.com/AlexZinkM/multichain-wallet/internal/config"
	"github.com/AlexZinkM/multichain-wallet/internal/crypto"
	"github.com/AlexZinkM/multichain-wallet/internal/ledger"
	"github.com/AlexZinkM/multichain-wallet/internal/logger"
	"github.com/AlexZinkM/multichain-wallet/internal/network"
	"github.com/AlexZinkM/multichain-wallet/internal/session"
	"github.com/AlexZinkM/multichain-wallet/internal/storage"
	"github.com/AlexZinkM/multichain-wallet/internal/wallet"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "walletd",
	Short: "Multichain wallet custody service",
	Long:  "Local custody of EVM and Solana wallets: create, import, unlock, send and track transactions.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.Init()
	},
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app holds the wired components shared by the commands
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	db       *storage.LevelDBProvider
	networks *network.Registry
	ledger   *ledger.Ledger
	poller   *ledger.Poller
	custody  *custody.Service
}

func openApp() (*app, error) {
	cfg := config.Get()

	log, err := logger.New(logger.Options{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
	if err != nil {
		return nil, err
	}

	db, err := storage.Open(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open data dir: %w", err)
	}

	networks := network.NewRegistry(cfg.Endpoints(), network.DefaultDialer(log), log)

	l, err := ledger.Open(db, networks, log, ledger.WithConcurrency(cfg.PollConcurrency))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	// no identity provider is wired into the daemon; sign-in reports not authenticated
	binding, err := session.New(db, nil, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	store := wallet.NewStore(db, crypto.NewCodec(crypto.Params{N: cfg.ScryptN}), log)
	rates := client.NewCoinGeckoClient(cfg.CoinGeckoURL)
	poller := ledger.NewPoller(l, cfg.PollInterval, log)

	return &app{
		cfg:      cfg,
		logger:   log,
		db:       db,
		networks: networks,
		ledger:   l,
		poller:   poller,
		custody:  custody.New(store, l, networks, binding, rates, log, custody.WithPoller(poller)),
	}, nil
}

func (a *app) Close() {
	a.poller.Stop()
	a.custody.Session().Close()
	if err := a.db.Close(); err != nil {
		a.logger.Error("Failed to close database", zap.Error(err))
	}
	_ = a.logger.Sync()
}
