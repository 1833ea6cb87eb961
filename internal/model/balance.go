package model

// BalanceResponse represents response for GET /wallet/balance
type BalanceResponse struct {
	Address string `json:"address"`
	XCH     string `json:"xch"`
	DIG     string `json:"dig"`
	Rate    string `json:"rate,omitempty"`
	USD     string `json:"xch_amount_in_usd,omitempty"`
}
