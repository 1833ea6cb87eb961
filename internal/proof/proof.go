// Package proof signs and checks nonce challenges that prove control of a
// wallet's synthetic key.
package proof

import (
	"encoding/hex"
	"fmt"

	"github.com/AlexZinkM/dig-wallet/internal/bls"
	"github.com/AlexZinkM/dig-wallet/internal/werr"
)

const preamble = "Signing this message to prove ownership of key.\n\nNonce: "

// Message is the exact byte string signed for nonce.
func Message(nonce string) []byte {
	return []byte(preamble + nonce)
}

// Sign signs the ownership message for nonce and returns the hex signature.
func Sign(nonce string, syntheticSecretKey *bls.SecretKey) (string, error) {
	if syntheticSecretKey == nil {
		return "", werr.New(werr.KindCrypto, "secret key is required")
	}
	sig, err := syntheticSecretKey.Sign(Message(nonce))
	if err != nil {
		return "", werr.Wrap(werr.KindCrypto, "failed to sign message", err)
	}
	return hex.EncodeToString(sig.Bytes()), nil
}

// Verify checks signatureHex over nonce against publicKeyHex. Malformed input
// (bad hex, wrong lengths, points off the curve) is an error; a well formed
// signature that does not match yields false.
func Verify(nonce, signatureHex, publicKeyHex string) (bool, error) {
	sigBytes, err := hex.DecodeString(signatureHex)
	if err != nil {
		return false, werr.Wrap(werr.KindCrypto, "failed to decode signature", err)
	}

	pkBytes, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return false, werr.Wrap(werr.KindCrypto, "failed to decode public key", err)
	}

	if len(pkBytes) != bls.PublicKeySize {
		return false, werr.New(werr.KindCrypto, fmt.Sprintf("invalid public key length %d", len(pkBytes)))
	}
	pk, err := bls.PublicKeyFromBytes(pkBytes)
	if err != nil {
		return false, werr.Wrap(werr.KindCrypto, "invalid public key", err)
	}

	if len(sigBytes) != bls.SignatureSize {
		return false, werr.New(werr.KindCrypto, fmt.Sprintf("invalid signature length %d", len(sigBytes)))
	}
	sig, err := bls.SignatureFromBytes(sigBytes)
	if err != nil {
		return false, werr.Wrap(werr.KindCrypto, "invalid signature", err)
	}

	ok, err := bls.Verify(pk, Message(nonce), sig)
	if err != nil {
		return false, werr.Wrap(werr.KindCrypto, "failed to verify signature", err)
	}
	return ok, nil
}
