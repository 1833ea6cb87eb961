package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/AlexZinkM/dig-wallet/internal/model"
	"github.com/AlexZinkM/dig-wallet/internal/werr"

	"golang.org/x/crypto/scrypt"
)

const (
	// scrypt parameters for keyring entries
	// Security is prioritized over performance
	//
	// N=2^18 (~256MB RAM, 0.5-2s) keeps brute force expensive while still
	// fitting the memory limits of small machines.
	scryptN      = 1 << 18
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
	saltLen      = 32
	nonceLen     = 12

	// DefaultPassphrase is used when the user supplies none.
	DefaultPassphrase = "mnemonic-seed"
)

// Params are the scrypt cost parameters. A keyring must be read with the
// parameters it was written with.
type Params struct {
	N int
	R int
	P int
}

// DefaultParams are used by every production keyring.
var DefaultParams = Params{N: scryptN, R: scryptR, P: scryptP}

// EncryptSecret encrypts plaintext with AES-256-GCM under a key derived from
// passphrase and a fresh random salt. A fresh random nonce is used each call.
// passphrase must be []byte for security (caller should zero it after use)
func EncryptSecret(plaintext, passphrase []byte, params Params) (*model.EncryptedEntry, error) {
	// Generate salt and nonce
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, werr.Wrap(werr.KindCrypto, "failed to generate salt", err)
	}

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, werr.Wrap(werr.KindCrypto, "failed to generate nonce", err)
	}

	// Derive key from passphrase
	key, err := scrypt.Key(passphrase, salt, params.N, params.R, params.P, scryptKeyLen)
	if err != nil {
		return nil, werr.Wrap(werr.KindCrypto, "failed to derive key", err)
	}
	defer clear(key)

	aesGCM, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	ciphertext := aesGCM.Seal(nil, nonce, plaintext, nil)

	return &model.EncryptedEntry{
		Data:  base64.StdEncoding.EncodeToString(ciphertext),
		Nonce: base64.StdEncoding.EncodeToString(nonce),
		Salt:  base64.StdEncoding.EncodeToString(salt),
	}, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, werr.Wrap(werr.KindCrypto, "failed to create cipher", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, werr.Wrap(werr.KindCrypto, "failed to create GCM", err)
	}
	return aesGCM, nil
}

func checkNonce(aesGCM cipher.AEAD, nonce []byte) error {
	if len(nonce) != aesGCM.NonceSize() {
		return werr.New(werr.KindCrypto, fmt.Sprintf("nonce must be %d bytes, got %d", aesGCM.NonceSize(), len(nonce)))
	}
	return nil
}
