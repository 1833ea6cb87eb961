// walletd serves the wallet over HTTP.
// Usage: go run ./cmd/walletd
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/AlexZinkM/dig-wallet/docs"
	"github.com/AlexZinkM/dig-wallet/internal/api"
	"github.com/AlexZinkM/dig-wallet/internal/app"
	"github.com/AlexZinkM/dig-wallet/internal/client"
	"github.com/AlexZinkM/dig-wallet/internal/config"
	"github.com/AlexZinkM/dig-wallet/internal/handler"

	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.Init(); err != nil {
		return err
	}
	log, err := app.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	if config.Get().PromptPassphrase {
		if err := config.PromptForPassphrase(); err != nil {
			return err
		}
	}

	w, err := app.Open(log)
	if err != nil {
		log.Warn("full node unavailable, serving keyring only", zap.Error(err))
		if w, err = app.OpenKeyring(log); err != nil {
			return err
		}
	}
	defer w.Close()

	h := handler.NewWalletHandler(w.Manager, w.Coins, client.NewCoinGeckoClient(), w.Network, log)
	srv := &http.Server{
		Addr:              ":" + config.GetPort(),
		Handler:           api.SetupRouter(h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Info("listening",
			zap.String("addr", srv.Addr),
			zap.String("network", w.Network.Name),
			zap.String("keyring", w.Manager.KeyringPath()),
		)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
