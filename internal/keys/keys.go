// Package keys turns a seed phrase into the keys and puzzle hash a wallet
// spends and receives with. Nothing here touches storage or the network.
package keys

import (
	"crypto/sha256"
	"math/big"
	"strings"

	"github.com/AlexZinkM/dig-wallet/internal/bls"
	"github.com/AlexZinkM/dig-wallet/internal/chain"
	"github.com/AlexZinkM/dig-wallet/internal/puzzle"
	"github.com/AlexZinkM/dig-wallet/internal/werr"

	"github.com/tyler-smith/go-bip39"
)

const (
	// Wallet derivation path m/12381/8444/2/0, walked without hardening so
	// the public side can be derived from the master public key alone.
	purposeIndex    = 12381
	coinTypeIndex   = 8444
	walletKindIndex = 2
	firstKeyIndex   = 0

	// MnemonicEntropyBits gives a 24-word phrase.
	MnemonicEntropyBits = 256
)

var walletPath = []uint32{purposeIndex, coinTypeIndex, walletKindIndex, firstKeyIndex}

// NormalizeMnemonic lowercases and collapses whitespace.
func NormalizeMnemonic(phrase string) string {
	return strings.Join(strings.Fields(strings.ToLower(phrase)), " ")
}

// ValidateMnemonic checks words and checksum against the English wordlist.
func ValidateMnemonic(phrase string) error {
	normalized := NormalizeMnemonic(phrase)
	if normalized == "" {
		return werr.ErrMnemonicRequired
	}
	if !bip39.IsMnemonicValid(normalized) {
		return werr.ErrInvalidMnemonic
	}
	return nil
}

// NewMnemonic generates a fresh 24-word phrase.
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(MnemonicEntropyBits)
	if err != nil {
		return "", werr.Wrap(werr.KindCrypto, "failed to generate entropy", err)
	}
	defer clear(entropy)

	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", werr.Wrap(werr.KindCrypto, "failed to generate mnemonic", err)
	}
	return phrase, nil
}

// SeedPhraseToMasterKey validates phrase and derives the master secret key
// from its seed (empty passphrase).
func SeedPhraseToMasterKey(phrase string) (*bls.SecretKey, error) {
	if err := ValidateMnemonic(phrase); err != nil {
		return nil, err
	}

	seed, err := bip39.NewSeedWithErrorChecking(NormalizeMnemonic(phrase), "")
	if err != nil {
		return nil, werr.ErrInvalidMnemonic
	}
	defer clear(seed)

	sk, err := bls.KeyGen(seed)
	if err != nil {
		return nil, werr.Wrap(werr.KindCrypto, "failed to derive master key", err)
	}
	return sk, nil
}

// MasterKeyToSyntheticKeyPair walks the wallet path and applies the synthetic
// offset for the default hidden puzzle.
func MasterKeyToSyntheticKeyPair(master *bls.SecretKey) (*bls.SecretKey, *bls.PublicKey) {
	sk := master
	for _, idx := range walletPath {
		sk = sk.DeriveUnhardened(idx)
	}
	synthetic := sk.Offset(syntheticOffset(sk.PublicKey()))
	return synthetic, synthetic.PublicKey()
}

// MasterPublicKeyToSyntheticKey is the public-only counterpart of
// MasterKeyToSyntheticKeyPair.
func MasterPublicKeyToSyntheticKey(master *bls.PublicKey) *bls.PublicKey {
	pk := master
	for _, idx := range walletPath {
		pk = pk.DeriveUnhardened(idx)
	}
	return pk.Offset(syntheticOffset(pk))
}

// SyntheticPublicKeyToPuzzleHash returns the standard receiving puzzle hash.
func SyntheticPublicKeyToPuzzleHash(pk *bls.PublicKey) chain.Bytes32 {
	return puzzle.StandardPuzzleHashFor(pk.Bytes())
}

// TokenPuzzleHash is the puzzle hash token coins of assetID sit at for an
// owner puzzle hash.
func TokenPuzzleHash(assetID, ownerPuzzleHash chain.Bytes32) chain.Bytes32 {
	return puzzle.CATPuzzleHashFor(assetID, ownerPuzzleHash)
}

func syntheticOffset(pk *bls.PublicKey) *big.Int {
	h := sha256.New()
	h.Write(pk.Bytes())
	h.Write(puzzle.DefaultHiddenPuzzleHash[:])
	return bls.SignedOffset(h.Sum(nil))
}
