// Package bls implements the BLS12-381 key and signature operations a wallet
// needs: key generation from a seed, unhardened child derivation, key
// offsetting, and signing under the augmented scheme (the public key is
// prepended to every message before hashing to G2).
package bls

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"golang.org/x/crypto/hkdf"
)

const (
	SecretKeySize = 32
	PublicKeySize = 48
	SignatureSize = 96

	augSchemeDST = "BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_AUG_"
	keyGenSalt   = "BLS-SIG-KEYGEN-SALT-"
	keyGenOKMLen = 48
)

var (
	groupOrder = fr.Modulus()
	g1Gen      bls12381.G1Affine
)

func init() {
	_, _, g1Gen, _ = bls12381.Generators()
}

// SecretKey is a scalar modulo the group order.
type SecretKey struct {
	s *big.Int
}

// PublicKey is a G1 point.
type PublicKey struct {
	p bls12381.G1Affine
}

// Signature is a G2 point.
type Signature struct {
	p bls12381.G2Affine
}

// KeyGen derives a secret key from seed bytes with HKDF-SHA256 as the BLS
// signature draft's KeyGen does.
func KeyGen(seed []byte) (*SecretKey, error) {
	if len(seed) < 32 {
		return nil, errors.New("seed must be at least 32 bytes")
	}

	ikm := make([]byte, len(seed)+1)
	copy(ikm, seed)
	info := []byte{0, keyGenOKMLen}

	okm := make([]byte, keyGenOKMLen)
	if _, err := io.ReadFull(hkdf.New(sha256.New, ikm, []byte(keyGenSalt), info), okm); err != nil {
		return nil, fmt.Errorf("failed to expand seed: %w", err)
	}
	defer clear(okm)

	s := new(big.Int).SetBytes(okm)
	return &SecretKey{s: s.Mod(s, groupOrder)}, nil
}

// SecretKeyFromBytes parses a 32-byte big-endian scalar.
func SecretKeyFromBytes(b []byte) (*SecretKey, error) {
	if len(b) != SecretKeySize {
		return nil, fmt.Errorf("secret key must be %d bytes, got %d", SecretKeySize, len(b))
	}
	s := new(big.Int).SetBytes(b)
	if s.Cmp(groupOrder) >= 0 {
		return nil, errors.New("secret key is not below the group order")
	}
	return &SecretKey{s: s}, nil
}

// Bytes returns the 32-byte big-endian scalar.
func (sk *SecretKey) Bytes() []byte {
	out := make([]byte, SecretKeySize)
	return sk.s.FillBytes(out)
}

// PublicKey returns sk·G1.
func (sk *SecretKey) PublicKey() *PublicKey {
	pk := &PublicKey{}
	pk.p.ScalarMultiplication(&g1Gen, sk.s)
	return pk
}

// Equal compares scalars.
func (sk *SecretKey) Equal(o *SecretKey) bool {
	return sk.s.Cmp(o.s) == 0
}

// Offset returns (sk + n) mod r.
func (sk *SecretKey) Offset(n *big.Int) *SecretKey {
	s := new(big.Int).Add(sk.s, n)
	return &SecretKey{s: s.Mod(s, groupOrder)}
}

// DeriveUnhardened derives the child at index. The public half can be
// derived without the secret via PublicKey.DeriveUnhardened.
func (sk *SecretKey) DeriveUnhardened(index uint32) *SecretKey {
	return sk.Offset(unhardenedNonce(sk.PublicKey(), index))
}

// Sign signs msg under the augmented scheme.
func (sk *SecretKey) Sign(msg []byte) (*Signature, error) {
	h, err := hashToG2(sk.PublicKey(), msg)
	if err != nil {
		return nil, err
	}
	sig := &Signature{}
	sig.p.ScalarMultiplication(&h, sk.s)
	return sig, nil
}

// PublicKeyFromBytes decodes a compressed G1 point, checking it lies in the
// prime-order subgroup.
func PublicKeyFromBytes(b []byte) (*PublicKey, error) {
	if len(b) != PublicKeySize {
		return nil, fmt.Errorf("public key must be %d bytes, got %d", PublicKeySize, len(b))
	}
	pk := &PublicKey{}
	if _, err := pk.p.SetBytes(b); err != nil {
		return nil, fmt.Errorf("invalid public key: %w", err)
	}
	return pk, nil
}

// Bytes returns the 48-byte compressed encoding.
func (pk *PublicKey) Bytes() []byte {
	b := pk.p.Bytes()
	return b[:]
}

func (pk *PublicKey) Equal(o *PublicKey) bool {
	return pk.p.Equal(&o.p)
}

// Offset returns pk + n·G1, the public counterpart of SecretKey.Offset.
func (pk *PublicKey) Offset(n *big.Int) *PublicKey {
	var delta bls12381.G1Affine
	delta.ScalarMultiplication(&g1Gen, n)

	var sum bls12381.G1Jac
	sum.FromAffine(&pk.p)
	sum.AddMixed(&delta)

	out := &PublicKey{}
	out.p.FromJacobian(&sum)
	return out
}

// DeriveUnhardened derives the child public key at index.
func (pk *PublicKey) DeriveUnhardened(index uint32) *PublicKey {
	return pk.Offset(unhardenedNonce(pk, index))
}

// SignatureFromBytes decodes a compressed G2 point.
func SignatureFromBytes(b []byte) (*Signature, error) {
	if len(b) != SignatureSize {
		return nil, fmt.Errorf("signature must be %d bytes, got %d", SignatureSize, len(b))
	}
	sig := &Signature{}
	if _, err := sig.p.SetBytes(b); err != nil {
		return nil, fmt.Errorf("invalid signature: %w", err)
	}
	return sig, nil
}

// Bytes returns the 96-byte compressed encoding.
func (sig *Signature) Bytes() []byte {
	b := sig.p.Bytes()
	return b[:]
}

// Verify checks sig against pk and msg under the augmented scheme. An error
// is returned only when the pairing itself cannot be computed.
func Verify(pk *PublicKey, msg []byte, sig *Signature) (bool, error) {
	h, err := hashToG2(pk, msg)
	if err != nil {
		return false, err
	}

	var negG1 bls12381.G1Affine
	negG1.Neg(&g1Gen)

	// e(pk, H(pk||m)) · e(-G1, sig) == 1
	ok, err := bls12381.PairingCheck(
		[]bls12381.G1Affine{pk.p, negG1},
		[]bls12381.G2Affine{h, sig.p},
	)
	if err != nil {
		return false, fmt.Errorf("failed to compute pairing: %w", err)
	}
	return ok, nil
}

// SignedOffset interprets a digest as a signed big-endian integer and reduces
// it into [0, r).
func SignedOffset(digest []byte) *big.Int {
	v := new(big.Int).SetBytes(digest)
	if len(digest) > 0 && digest[0]&0x80 != 0 {
		v.Sub(v, new(big.Int).Lsh(big.NewInt(1), uint(8*len(digest))))
	}
	return v.Mod(v, groupOrder)
}

func unhardenedNonce(pk *PublicKey, index uint32) *big.Int {
	h := sha256.New()
	h.Write(pk.Bytes())
	var idx [4]byte
	binary.BigEndian.PutUint32(idx[:], index)
	h.Write(idx[:])

	n := new(big.Int).SetBytes(h.Sum(nil))
	return n.Mod(n, groupOrder)
}

func hashToG2(pk *PublicKey, msg []byte) (bls12381.G2Affine, error) {
	aug := make([]byte, 0, PublicKeySize+len(msg))
	aug = append(aug, pk.Bytes()...)
	aug = append(aug, msg...)

	h, err := bls12381.HashToG2(aug, []byte(augSchemeDST))
	if err != nil {
		return h, fmt.Errorf("failed to hash message to curve: %w", err)
	}
	return h, nil
}
