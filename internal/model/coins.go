package model

import "github.com/AlexZinkM/dig-wallet/internal/chain"

// SelectCoinsRequest represents request for POST /wallet/coins/select.
// Amount and Fee are decimal strings: XCH for native coins, DIG for tokens.
type SelectCoinsRequest struct {
	Name   string       `json:"name"`
	Amount string       `json:"amount" binding:"required"`
	Fee    string       `json:"fee"`
	Token  bool         `json:"token"`
	Omit   []chain.Coin `json:"omit"`
}

// SelectCoinsResponse lists the chosen coins and their total in base units
type SelectCoinsResponse struct {
	Coins []chain.Coin `json:"coins"`
	Total uint64       `json:"total"`
}

// SpendableResponse represents response for GET /wallet/coins/spendable
type SpendableResponse struct {
	CoinID    string `json:"coinId"`
	Spendable bool   `json:"spendable"`
}
