package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/AlexZinkM/dig-wallet/internal/chain"
	"github.com/AlexZinkM/dig-wallet/internal/common"
	"github.com/AlexZinkM/dig-wallet/internal/model"
	"github.com/AlexZinkM/dig-wallet/internal/werr"
	"github.com/AlexZinkM/dig-wallet/wallet"

	"go.uber.org/zap"
)

const coinRequestTimeout = 2 * time.Minute

// RateSource quotes XCH in USD.
type RateSource interface {
	GetXCHtoUSDrate(ctx context.Context) (string, error)
}

// WalletHandler serves the wallet operations over HTTP
type WalletHandler struct {
	manager *wallet.Manager
	coins   *wallet.Coins
	rates   RateSource
	network chain.Network
	log     *zap.Logger
}

// NewWalletHandler creates a handler. coins and rates may be nil, in which
// case coin endpoints answer 503 and balances carry no USD value.
func NewWalletHandler(manager *wallet.Manager, coins *wallet.Coins, rates RateSource, network chain.Network, log *zap.Logger) *WalletHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &WalletHandler{
		manager: manager,
		coins:   coins,
		rates:   rates,
		network: network,
		log:     log,
	}
}

// Generate handles POST /wallet/generate
// @Summary      Generate new wallet
// @Description  Generates a 24-word seed phrase and stores it encrypted in the keyring under the given name
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.GenerateRequest  false  "Wallet name (default if empty)"
// @Success      200      {object}  model.GenerateResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /wallet/generate [post]
func (h *WalletHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.GenerateRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeBadRequest(w, err)
			return
		}
	}
	name := walletName(req.Name)

	phrase, err := h.manager.Create(name)
	if err != nil {
		h.writeError(w, err)
		return
	}

	created, err := wallet.FromMnemonic(name, phrase)
	if err != nil {
		h.writeError(w, err)
		return
	}
	address, err := created.OwnerAddress(h.network.AddressPrefix)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.GenerateResponse{
		Success:  true,
		Message:  "Wallet generated successfully",
		Name:     name,
		Address:  address,
		Mnemonic: phrase,
	})
}

// Import handles POST /wallet/import
// @Summary      Import wallet
// @Description  Validates a seed phrase and stores it encrypted in the keyring
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.ImportRequest  true  "Name and seed phrase"
// @Success      200      {object}  model.GenerateResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /wallet/import [post]
func (h *WalletHandler) Import(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, err)
		return
	}
	name := walletName(req.Name)

	phrase, err := h.manager.Import(name, req.Mnemonic)
	if err != nil {
		h.writeError(w, err)
		return
	}

	imported, err := wallet.FromMnemonic(name, phrase)
	if err != nil {
		h.writeError(w, err)
		return
	}
	address, err := imported.OwnerAddress(h.network.AddressPrefix)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.GenerateResponse{
		Success: true,
		Message: "Wallet imported successfully",
		Name:    name,
		Address: address,
	})
}

// List handles GET /wallet/list
// @Summary      List wallets
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.ListResponse
// @Router       /wallet/list [get]
func (h *WalletHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	names, err := h.manager.List()
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.ListResponse{Wallets: names})
}

// Delete handles DELETE /wallet/delete
// @Summary      Delete wallet
// @Description  Removes a wallet from the keyring. The seed phrase is unrecoverable afterwards.
// @Tags         wallet
// @Produce      json
// @Param        name  query     string  true  "Wallet name"
// @Success      200   {object}  model.DeleteResponse
// @Failure      404   {object}  model.ErrorResponse
// @Router       /wallet/delete [delete]
func (h *WalletHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed. Should be DELETE", http.StatusMethodNotAllowed)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		writeBadRequest(w, errors.New("name is required"))
		return
	}

	removed, err := h.manager.Delete(name)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !removed {
		h.writeError(w, werr.WalletNotFound(name))
		return
	}

	writeJSON(w, http.StatusOK, model.DeleteResponse{
		Success: true,
		Message: fmt.Sprintf("Wallet %q deleted", name),
	})
}

// Address handles GET /wallet/address
// @Summary      Wallet address
// @Description  Returns the owner address, puzzle hash, synthetic public key and a QR code of the address
// @Tags         wallet
// @Produce      json
// @Param        name  query     string  false  "Wallet name"
// @Success      200   {object}  model.AddressResponse
// @Failure      404   {object}  model.ErrorResponse
// @Failure      500   {object}  model.ErrorResponse
// @Router       /wallet/address [get]
func (h *WalletHandler) Address(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	wl, err := h.manager.Load(r.URL.Query().Get("name"), false)
	if err != nil {
		h.writeError(w, err)
		return
	}

	ph, err := wl.OwnerPuzzleHash()
	if err != nil {
		h.writeError(w, err)
		return
	}
	address, err := wallet.PuzzleHashToAddress(ph, h.network.AddressPrefix)
	if err != nil {
		h.writeError(w, err)
		return
	}
	publicKey, err := wl.PublicSyntheticKeyHex()
	if err != nil {
		h.writeError(w, err)
		return
	}
	qr, err := wallet.AddressQRCode(address)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.AddressResponse{
		Name:       wl.Name(),
		Address:    address,
		PuzzleHash: ph.String(),
		PublicKey:  publicKey,
		QRCode:     qr,
	})
}

// Sign handles POST /wallet/sign
// @Summary      Prove key ownership
// @Description  Signs the ownership message for a nonce with the wallet's synthetic key
// @Tags         proof
// @Accept       json
// @Produce      json
// @Param        request  body      model.SignRequest  true  "Wallet name and nonce"
// @Success      200      {object}  model.SignResponse
// @Failure      404      {object}  model.ErrorResponse
// @Failure      500      {object}  model.ErrorResponse
// @Router       /wallet/sign [post]
func (h *WalletHandler) Sign(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.SignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, err)
		return
	}

	wl, err := h.manager.Load(req.Name, false)
	if err != nil {
		h.writeError(w, err)
		return
	}
	signature, err := wl.CreateKeyOwnershipSignature(req.Nonce)
	if err != nil {
		h.writeError(w, err)
		return
	}
	publicKey, err := wl.PublicSyntheticKeyHex()
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.SignResponse{Signature: signature, PublicKey: publicKey})
}

// Verify handles POST /wallet/verify
// @Summary      Verify key ownership
// @Description  Checks an ownership signature over a nonce against a synthetic public key
// @Tags         proof
// @Accept       json
// @Produce      json
// @Param        request  body      model.VerifyRequest  true  "Nonce, signature and public key (hex)"
// @Success      200      {object}  model.VerifyResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /wallet/verify [post]
func (h *WalletHandler) Verify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, err)
		return
	}

	valid, err := wallet.VerifyKeyOwnershipSignature(req.Nonce, req.Signature, req.PublicKey)
	if errors.Is(err, werr.ErrCrypto) {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error(), Code: "invalid_signature"})
		return
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.VerifyResponse{Valid: valid})
}

// GetBalance handles GET /wallet/balance
// @Summary      Get wallet balance (USD = XCH * rate)
// @Description  Sums unspent XCH and lineage-proven DIG coins, with the XCH/USD rate when available
// @Tags         coins
// @Produce      json
// @Param        name  query     string  false  "Wallet name"
// @Success      200   {object}  model.BalanceResponse
// @Failure      502   {object}  model.ErrorResponse
// @Failure      503   {object}  model.ErrorResponse
// @Router       /wallet/balance [get]
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}
	if !h.requireNode(w) {
		return
	}

	wl, err := h.manager.Load(r.URL.Query().Get("name"), false)
	if err != nil {
		h.writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), coinRequestTimeout)
	defer cancel()

	mojos, err := wl.XCHBalance(ctx, h.coins)
	if err != nil {
		h.writeError(w, err)
		return
	}
	units, err := wl.TokenBalance(ctx, h.coins)
	if err != nil {
		h.writeError(w, err)
		return
	}
	address, err := wl.OwnerAddress(h.network.AddressPrefix)
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := model.BalanceResponse{
		Address: address,
		XCH:     common.MojosToXCH(mojos),
		DIG:     common.CATUnitsToAmount(units),
	}
	if h.rates != nil {
		rate, err := h.rates.GetXCHtoUSDrate(ctx)
		if err != nil {
			h.log.Warn("failed to get rate", zap.Error(err))
		} else {
			// float only for display
			xchFloat, _ := strconv.ParseFloat(resp.XCH, 64)
			rateFloat, _ := strconv.ParseFloat(rate, 64)
			resp.Rate = rate
			resp.USD = fmt.Sprintf("%.2f", xchFloat*rateFloat)
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// SelectCoins handles POST /wallet/coins/select
// @Summary      Select coins
// @Description  Selects unspent XCH or DIG coins covering amount + fee. Selected coins are reserved until spent or expired.
// @Tags         coins
// @Accept       json
// @Produce      json
// @Param        request  body      model.SelectCoinsRequest  true  "Amount, fee and coins to omit"
// @Success      200      {object}  model.SelectCoinsResponse
// @Failure      409      {object}  model.ErrorResponse
// @Failure      502      {object}  model.ErrorResponse
// @Router       /wallet/coins/select [post]
func (h *WalletHandler) SelectCoins(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. should be POST", http.StatusMethodNotAllowed)
		return
	}
	if !h.requireNode(w) {
		return
	}

	var req model.SelectCoinsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, err)
		return
	}

	parse := common.XCHToMojos
	if req.Token {
		parse = common.AmountToCATUnits
	}
	amount, err := parse(req.Amount)
	if err != nil {
		writeBadRequest(w, err)
		return
	}
	var fee uint64
	if req.Fee != "" {
		if fee, err = parse(req.Fee); err != nil {
			writeBadRequest(w, err)
			return
		}
	}

	wl, err := h.manager.Load(req.Name, false)
	if err != nil {
		h.writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), coinRequestTimeout)
	defer cancel()

	var coins []chain.Coin
	if req.Token {
		coins, err = wl.SelectUnspentTokenCoins(ctx, h.coins, amount, fee, req.Omit)
	} else {
		coins, err = wl.SelectUnspentCoins(ctx, h.coins, amount, fee, req.Omit)
	}
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.SelectCoinsResponse{Coins: coins, Total: chain.SumAmounts(coins)})
}

// Spendable handles GET /wallet/coins/spendable
// @Summary      Coin spendability
// @Description  Reports whether a coin is unspent at the node's latest height
// @Tags         coins
// @Produce      json
// @Param        coin_id  query     string  true  "Coin id (hex)"
// @Success      200      {object}  model.SpendableResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /wallet/coins/spendable [get]
func (h *WalletHandler) Spendable(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}
	if !h.requireNode(w) {
		return
	}

	coinID, err := chain.Bytes32FromHex(r.URL.Query().Get("coin_id"))
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	spendable, err := h.coins.IsCoinSpendable(r.Context(), coinID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.SpendableResponse{CoinID: coinID.String(), Spendable: spendable})
}

func (h *WalletHandler) requireNode(w http.ResponseWriter) bool {
	if h.coins != nil {
		return true
	}
	writeJSON(w, http.StatusServiceUnavailable, model.ErrorResponse{
		Error: "full node is not configured",
		Code:  "node_unavailable",
	})
	return false
}

// writeError maps a wallet error to its status code.
func (h *WalletHandler) writeError(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", zap.String("code", code), zap.Error(err))
	}
	writeJSON(w, status, model.ErrorResponse{Error: err.Error(), Code: code})
}

func statusFor(err error) (int, string) {
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout, "timeout"
	}
	switch werr.KindOf(err) {
	case werr.KindMnemonicRequired:
		return http.StatusBadRequest, "mnemonic_required"
	case werr.KindInvalidMnemonic:
		return http.StatusBadRequest, "invalid_mnemonic"
	case werr.KindCrypto:
		// keyring decryption and key derivation; bad client input is
		// mapped by the handler that parsed it
		return http.StatusInternalServerError, "crypto"
	case werr.KindWalletNotFound:
		return http.StatusNotFound, "wallet_not_found"
	case werr.KindWalletExists:
		return http.StatusConflict, "wallet_exists"
	case werr.KindNoUnspentCoins:
		return http.StatusConflict, "no_unspent_coins"
	case werr.KindNetwork:
		return http.StatusBadGateway, "network"
	case werr.KindCoinSet:
		return http.StatusBadGateway, "coin_set"
	case werr.KindMnemonicNotLoaded:
		return http.StatusInternalServerError, "mnemonic_not_loaded"
	case werr.KindFileSystem:
		return http.StatusInternalServerError, "file_system"
	case werr.KindSerialization:
		return http.StatusInternalServerError, "serialization"
	}
	return http.StatusInternalServerError, "internal"
}

func writeBadRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error(), Code: "bad_request"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func walletName(name string) string {
	if name == "" {
		return wallet.DefaultName
	}
	return name
}
