package model

// GenerateRequest represents request for POST /wallet/generate
type GenerateRequest struct {
	Name string `json:"name"`
}

// ImportRequest represents request for POST /wallet/import
type ImportRequest struct {
	Name     string `json:"name"`
	Mnemonic string `json:"mnemonic" binding:"required"`
}

// GenerateResponse represents response for POST .../generate and .../import.
// Mnemonic is only returned for freshly generated wallets.
type GenerateResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	Mnemonic string `json:"mnemonic,omitempty"`
}

// ListResponse represents response for GET /wallet/list
type ListResponse struct {
	Wallets []string `json:"wallets"`
}

// DeleteResponse represents response for DELETE /wallet/delete
type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AddressResponse represents response for GET /wallet/address
type AddressResponse struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	PuzzleHash string `json:"puzzleHash"`
	PublicKey  string `json:"publicKey"`
	QRCode     string `json:"qrCode"`
}
