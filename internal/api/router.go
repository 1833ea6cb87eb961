package api

import (
	"net/http"

	"github.com/AlexZinkM/dig-wallet/internal/handler"

	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter sets up router with handlers
func SetupRouter(walletHandler *handler.WalletHandler) http.Handler {
	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Keyring
	mux.HandleFunc("/wallet/generate", walletHandler.Generate)
	mux.HandleFunc("/wallet/import", walletHandler.Import)
	mux.HandleFunc("/wallet/list", walletHandler.List)
	mux.HandleFunc("/wallet/delete", walletHandler.Delete)
	mux.HandleFunc("/wallet/address", walletHandler.Address)

	// Ownership proofs
	mux.HandleFunc("/wallet/sign", walletHandler.Sign)
	mux.HandleFunc("/wallet/verify", walletHandler.Verify)

	// Coins
	mux.HandleFunc("/wallet/balance", walletHandler.GetBalance)
	mux.HandleFunc("/wallet/coins/select", walletHandler.SelectCoins)
	mux.HandleFunc("/wallet/coins/spendable", walletHandler.Spendable)

	return mux
}
