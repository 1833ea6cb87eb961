package chain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"math/bits"
	"strings"
)

// Bytes32 is a 32-byte hash: coin ids, puzzle hashes, asset ids.
type Bytes32 [32]byte

// Bytes32FromHex parses a hex string, with or without 0x prefix.
func Bytes32FromHex(s string) (Bytes32, error) {
	var out Bytes32
	raw, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return out, fmt.Errorf("failed to decode hex: %w", err)
	}
	if len(raw) != len(out) {
		return out, fmt.Errorf("expected 32 bytes, got %d", len(raw))
	}
	copy(out[:], raw)
	return out, nil
}

// MustBytes32 is Bytes32FromHex for constants.
func MustBytes32(s string) Bytes32 {
	b, err := Bytes32FromHex(s)
	if err != nil {
		panic(err)
	}
	return b
}

func (b Bytes32) String() string {
	return hex.EncodeToString(b[:])
}

// MarshalText encodes as 0x-prefixed hex, the full node RPC convention.
func (b Bytes32) MarshalText() ([]byte, error) {
	return []byte("0x" + b.String()), nil
}

func (b *Bytes32) UnmarshalText(text []byte) error {
	v, err := Bytes32FromHex(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// Less orders ids bytewise.
func (b Bytes32) Less(o Bytes32) bool {
	for i := range b {
		if b[i] != o[i] {
			return b[i] < o[i]
		}
	}
	return false
}

// Coin is an unspent-output record of the ledger.
type Coin struct {
	ParentCoinInfo Bytes32 `json:"parent_coin_info"`
	PuzzleHash     Bytes32 `json:"puzzle_hash"`
	Amount         uint64  `json:"amount"`
}

// ID returns sha256(parent || puzzle_hash || amount), where amount is the
// minimal signed big-endian encoding used by the chain.
func (c Coin) ID() Bytes32 {
	h := sha256.New()
	h.Write(c.ParentCoinInfo[:])
	h.Write(c.PuzzleHash[:])
	h.Write(EncodeAmount(c.Amount))
	var out Bytes32
	copy(out[:], h.Sum(nil))
	return out
}

// EncodeAmount encodes v as the shortest two's complement big-endian byte
// string. Zero encodes as an empty string.
func EncodeAmount(v uint64) []byte {
	if v == 0 {
		return nil
	}
	buf := make([]byte, 9)
	for i := 8; i > 0; i-- {
		buf[i] = byte(v)
		v >>= 8
	}
	// strip redundant leading zero bytes, keeping one if the next byte has its
	// sign bit set
	i := 0
	for i < 8 && buf[i] == 0 && buf[i+1]&0x80 == 0 {
		i++
	}
	return buf[i:]
}

// CoinState is a coin plus the heights it was created and spent at.
type CoinState struct {
	Coin          Coin    `json:"coin"`
	CreatedHeight *uint32 `json:"created_height,omitempty"`
	SpentHeight   *uint32 `json:"spent_height,omitempty"`
}

// Unspent reports whether the coin has no spend height.
func (s CoinState) Unspent() bool {
	return s.SpentHeight == nil
}

// LineageProof proves a token coin's parent was itself a token coin of the
// same asset.
type LineageProof struct {
	ParentParentCoinInfo Bytes32 `json:"parent_name"`
	ParentInnerPuzzle    Bytes32 `json:"inner_puzzle_hash"`
	ParentAmount         uint64  `json:"amount"`
}

// CoinIDs maps coins to their ids.
func CoinIDs(coins []Coin) []Bytes32 {
	ids := make([]Bytes32, 0, len(coins))
	for _, c := range coins {
		ids = append(ids, c.ID())
	}
	return ids
}

// SumAmounts totals coin amounts, saturating at math.MaxUint64.
func SumAmounts(coins []Coin) uint64 {
	var total uint64
	for _, c := range coins {
		sum, carry := bits.Add64(total, c.Amount, 0)
		if carry != 0 {
			return math.MaxUint64
		}
		total = sum
	}
	return total
}
