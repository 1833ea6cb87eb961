package crypto

import (
	"encoding/base64"

	"github.com/AlexZinkM/dig-wallet/internal/model"
	"github.com/AlexZinkM/dig-wallet/internal/werr"

	"golang.org/x/crypto/scrypt"
)

// legacySaltLen marks entries written by the first keyring format, whose key
// is the fixed secret XORed with the salt instead of a KDF output.
const legacySaltLen = 16

var legacySecret = []byte("mnemonic-seed")

type decodedEntry struct {
	ciphertext []byte
	nonce      []byte
	salt       []byte
}

// DecryptSecret reverses EncryptSecret. Legacy entries are decrypted with the
// legacy key regardless of passphrase. Any tampering with ciphertext, nonce or
// salt fails authentication and yields a crypto error.
// passphrase must be []byte for security (caller should zero it after use)
func DecryptSecret(entry *model.EncryptedEntry, passphrase []byte, params Params) ([]byte, error) {
	d, err := decodeEntry(entry)
	if err != nil {
		return nil, err
	}

	var key []byte
	if len(d.salt) == legacySaltLen {
		key = legacyKey(d.salt)
	} else {
		// Derive key from passphrase
		key, err = scrypt.Key(passphrase, d.salt, params.N, params.R, params.P, scryptKeyLen)
		if err != nil {
			return nil, werr.Wrap(werr.KindCrypto, "failed to derive key", err)
		}
	}
	defer clear(key)

	aesGCM, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if err := checkNonce(aesGCM, d.nonce); err != nil {
		return nil, err
	}

	plaintext, err := aesGCM.Open(nil, d.nonce, d.ciphertext, nil)
	if err != nil {
		return nil, werr.Wrap(werr.KindCrypto, "decryption failed", err)
	}
	return plaintext, nil
}

// IsLegacy reports whether entry uses the fixed-secret key format.
func IsLegacy(entry *model.EncryptedEntry) (bool, error) {
	salt, err := base64.StdEncoding.DecodeString(entry.Salt)
	if err != nil {
		return false, werr.Wrap(werr.KindCrypto, "failed to decode salt", err)
	}
	return len(salt) == legacySaltLen, nil
}

func decodeEntry(entry *model.EncryptedEntry) (*decodedEntry, error) {
	// Decode salt and nonce
	salt, err := base64.StdEncoding.DecodeString(entry.Salt)
	if err != nil {
		return nil, werr.Wrap(werr.KindCrypto, "failed to decode salt", err)
	}

	nonce, err := base64.StdEncoding.DecodeString(entry.Nonce)
	if err != nil {
		return nil, werr.Wrap(werr.KindCrypto, "failed to decode nonce", err)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(entry.Data)
	if err != nil {
		return nil, werr.Wrap(werr.KindCrypto, "failed to decode ciphertext", err)
	}

	if len(salt) == 0 {
		return nil, werr.New(werr.KindCrypto, "salt is empty")
	}

	return &decodedEntry{ciphertext: ciphertext, nonce: nonce, salt: salt}, nil
}

func legacyKey(salt []byte) []byte {
	key := make([]byte, scryptKeyLen)
	for i := range key {
		key[i] = legacySecret[i%len(legacySecret)] ^ salt[i%len(salt)]
	}
	return key
}
