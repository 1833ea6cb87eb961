package model

// KeyringFile represents the keyring document on disk
type KeyringFile struct {
	Wallets map[string]EncryptedEntry `json:"wallets"`
}

// EncryptedEntry represents one wallet's encrypted seed phrase.
// All fields are base64; salt and nonce are fresh for every write.
type EncryptedEntry struct {
	Data  string `json:"data"`
	Nonce string `json:"nonce"`
	Salt  string `json:"salt"`
}
