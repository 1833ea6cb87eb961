// Package wallet is the public face of the DIG wallet: named identities kept
// in an encrypted keyring, the keys and addresses derived from them,
// ownership proofs and coin selection against a full node.
package wallet

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/AlexZinkM/dig-wallet/internal/address"
	"github.com/AlexZinkM/dig-wallet/internal/bls"
	"github.com/AlexZinkM/dig-wallet/internal/chain"
	"github.com/AlexZinkM/dig-wallet/internal/keys"
	"github.com/AlexZinkM/dig-wallet/internal/proof"
	"github.com/AlexZinkM/dig-wallet/internal/werr"

	"github.com/skip2/go-qrcode"
)

// Errors callers can match with errors.Is.
var (
	ErrMnemonicRequired  = werr.ErrMnemonicRequired
	ErrInvalidMnemonic   = werr.ErrInvalidMnemonic
	ErrMnemonicNotLoaded = werr.ErrMnemonicNotLoaded
	ErrWalletNotFound    = werr.ErrWalletNotFound
	ErrWalletExists      = werr.ErrWalletExists
	ErrCrypto            = werr.ErrCrypto
	ErrNetwork           = werr.ErrNetwork
	ErrCoinSet           = werr.ErrCoinSet
	ErrNoUnspentCoins    = werr.ErrNoUnspentCoins
	ErrFileSystem        = werr.ErrFileSystem
	ErrSerialization     = werr.ErrSerialization
)

// Wallet is one named identity. The zero value is inert: it has no phrase
// and every key operation fails with ErrMnemonicNotLoaded.
type Wallet struct {
	name     string
	mnemonic string
}

// FromMnemonic builds an identity from phrase without touching a keyring.
func FromMnemonic(name, phrase string) (*Wallet, error) {
	if err := keys.ValidateMnemonic(phrase); err != nil {
		return nil, err
	}
	return &Wallet{name: name, mnemonic: keys.NormalizeMnemonic(phrase)}, nil
}

func (w *Wallet) Name() string {
	return w.name
}

// Mnemonic returns the seed phrase.
func (w *Wallet) Mnemonic() (string, error) {
	if w.mnemonic == "" {
		return "", werr.ErrMnemonicNotLoaded
	}
	return w.mnemonic, nil
}

// MasterSecretKey derives the root key from the seed phrase.
func (w *Wallet) MasterSecretKey() (*bls.SecretKey, error) {
	phrase, err := w.Mnemonic()
	if err != nil {
		return nil, err
	}
	return keys.SeedPhraseToMasterKey(phrase)
}

// PrivateSyntheticKey is the key that signs spends and ownership proofs.
func (w *Wallet) PrivateSyntheticKey() (*bls.SecretKey, error) {
	master, err := w.MasterSecretKey()
	if err != nil {
		return nil, err
	}
	sk, _ := keys.MasterKeyToSyntheticKeyPair(master)
	return sk, nil
}

func (w *Wallet) PublicSyntheticKey() (*bls.PublicKey, error) {
	master, err := w.MasterSecretKey()
	if err != nil {
		return nil, err
	}
	return keys.MasterPublicKeyToSyntheticKey(master.PublicKey()), nil
}

// PublicSyntheticKeyHex is the hex form verifiers are handed.
func (w *Wallet) PublicSyntheticKeyHex() (string, error) {
	pk, err := w.PublicSyntheticKey()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(pk.Bytes()), nil
}

// OwnerPuzzleHash is the puzzle hash the wallet receives native coins at.
func (w *Wallet) OwnerPuzzleHash() (chain.Bytes32, error) {
	pk, err := w.PublicSyntheticKey()
	if err != nil {
		return chain.Bytes32{}, err
	}
	return keys.SyntheticPublicKeyToPuzzleHash(pk), nil
}

// OwnerAddress encodes the owner puzzle hash under prefix, e.g. "xch".
func (w *Wallet) OwnerAddress(prefix string) (string, error) {
	ph, err := w.OwnerPuzzleHash()
	if err != nil {
		return "", err
	}
	return address.FromPuzzleHash(ph, prefix)
}

// CreateKeyOwnershipSignature signs the ownership message for nonce.
func (w *Wallet) CreateKeyOwnershipSignature(nonce string) (string, error) {
	sk, err := w.PrivateSyntheticKey()
	if err != nil {
		return "", err
	}
	return proof.Sign(nonce, sk)
}

// VerifyKeyOwnershipSignature checks a hex signature over nonce against a
// hex synthetic public key.
func VerifyKeyOwnershipSignature(nonce, signature, publicKey string) (bool, error) {
	return proof.Verify(nonce, signature, publicKey)
}

// AddressToPuzzleHash decodes a bech32m address.
func AddressToPuzzleHash(addr string) (chain.Bytes32, error) {
	return address.ToPuzzleHash(addr)
}

// PuzzleHashToAddress encodes puzzleHash under prefix.
func PuzzleHashToAddress(puzzleHash chain.Bytes32, prefix string) (string, error) {
	return address.FromPuzzleHash(puzzleHash, prefix)
}

// AddressQRCode renders addr as a base64 PNG.
func AddressQRCode(addr string) (string, error) {
	qr, err := qrcode.New(addr, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	return base64.StdEncoding.EncodeToString(png), nil
}
