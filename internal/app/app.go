// Package app builds the wallet components the binaries share from the
// environment configuration.
package app

import (
	"fmt"

	"github.com/AlexZinkM/dig-wallet/internal/chain"
	"github.com/AlexZinkM/dig-wallet/internal/client"
	"github.com/AlexZinkM/dig-wallet/internal/config"
	"github.com/AlexZinkM/dig-wallet/internal/reserve"
	"github.com/AlexZinkM/dig-wallet/wallet"

	"go.uber.org/zap"
)

// Wallet bundles a keyring manager with an optional node connection.
type Wallet struct {
	Manager *wallet.Manager
	Coins   *wallet.Coins
	Network chain.Network

	reserve *reserve.Registry
}

// NewLogger returns a development logger in verbose mode and a production
// one otherwise.
func NewLogger() (*zap.Logger, error) {
	if config.Get().Verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// OpenKeyring opens the configured keyring without touching the network.
func OpenKeyring(log *zap.Logger) (*Wallet, error) {
	path, err := config.GetKeyringPath()
	if err != nil {
		return nil, err
	}

	options := []wallet.Option{wallet.WithLogger(log)}
	passphrase, ok := config.GetPassphraseBytes()
	if ok {
		options = append(options, wallet.WithPassphrase(passphrase))
	}
	m := wallet.New(path, options...)
	clear(passphrase)

	return &Wallet{Manager: m, Network: config.GetNetwork()}, nil
}

// Open is OpenKeyring plus a full node client and the reservation store.
func Open(log *zap.Logger) (*Wallet, error) {
	w, err := OpenKeyring(log)
	if err != nil {
		return nil, err
	}
	if err := w.connect(log); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}

func (w *Wallet) connect(log *zap.Logger) error {
	cfg := config.Get()

	node, err := client.NewFullNodeClient(config.GetRPCURL(), w.Network, config.GetRPCTLSFiles(), log)
	if err != nil {
		return fmt.Errorf("failed to create full node client: %w", err)
	}

	dir, err := config.GetReserveDir()
	if err != nil {
		return err
	}
	w.reserve, err = reserve.Open(dir, reserve.WithLogger(log))
	if err != nil {
		return err
	}

	w.Coins = wallet.NewCoins(node, w.Network,
		wallet.WithReservations(w.reserve, cfg.ReserveTTL),
		wallet.WithCoinsLogger(log),
		wallet.WithVerbose(cfg.Verbose),
		wallet.WithConcurrency(cfg.ScanConcurrency),
	)
	return nil
}

// Close releases the reservation store and wipes the passphrase.
func (w *Wallet) Close() {
	if w.reserve != nil {
		_ = w.reserve.Close()
	}
	w.Manager.Close()
}
