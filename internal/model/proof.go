package model

// SignRequest represents request for POST /wallet/sign
type SignRequest struct {
	Name  string `json:"name"`
	Nonce string `json:"nonce" binding:"required"`
}

// SignResponse carries the ownership signature and the key that verifies it
type SignResponse struct {
	Signature string `json:"signature"`
	PublicKey string `json:"publicKey"`
}

// VerifyRequest represents request for POST /wallet/verify
type VerifyRequest struct {
	Nonce     string `json:"nonce" binding:"required"`
	Signature string `json:"signature" binding:"required"`
	PublicKey string `json:"publicKey" binding:"required"`
}

type VerifyResponse struct {
	Valid bool `json:"valid"`
}
