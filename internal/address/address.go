// Package address converts puzzle hashes to and from bech32m addresses.
package address

import (
	"fmt"

	"github.com/AlexZinkM/dig-wallet/internal/chain"
	"github.com/AlexZinkM/dig-wallet/internal/werr"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// FromPuzzleHash encodes a puzzle hash under the human readable prefix.
func FromPuzzleHash(puzzleHash chain.Bytes32, prefix string) (string, error) {
	data, err := bech32.ConvertBits(puzzleHash[:], 8, 5, true)
	if err != nil {
		return "", werr.Wrap(werr.KindCrypto, "failed to encode address", err)
	}
	addr, err := bech32.EncodeM(prefix, data)
	if err != nil {
		return "", werr.Wrap(werr.KindCrypto, "failed to encode address", err)
	}
	return addr, nil
}

// ToPuzzleHash decodes a bech32m address.
func ToPuzzleHash(address string) (chain.Bytes32, error) {
	var out chain.Bytes32

	_, data, version, err := bech32.DecodeGeneric(address)
	if err != nil {
		return out, werr.Wrap(werr.KindCrypto, "failed to decode address", err)
	}
	if version != bech32.VersionM {
		return out, werr.New(werr.KindCrypto, "address is not bech32m")
	}

	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return out, werr.Wrap(werr.KindCrypto, "failed to decode address", err)
	}
	if len(raw) != len(out) {
		return out, werr.New(werr.KindCrypto, fmt.Sprintf("address holds %d bytes, want 32", len(raw)))
	}
	copy(out[:], raw)
	return out, nil
}

// Prefix returns the human readable part of an address.
func Prefix(address string) (string, error) {
	hrp, _, _, err := bech32.DecodeGeneric(address)
	if err != nil {
		return "", werr.Wrap(werr.KindCrypto, "failed to decode address", err)
	}
	return hrp, nil
}
