// Package puzzle computes tree hashes of curried puzzles without building the
// programs themselves.
package puzzle

import (
	"crypto/sha256"

	"github.com/AlexZinkM/dig-wallet/internal/chain"
)

var (
	// StandardPuzzleHash is the tree hash of p2_delegated_puzzle_or_hidden_puzzle.
	StandardPuzzleHash = chain.MustBytes32("e9aaa49f45bad5c889b86ee3341550c155cfdd10c3a6757de618d20612fffd52")

	// CATPuzzleHash is the tree hash of the CAT v2 outer puzzle.
	CATPuzzleHash = chain.MustBytes32("37bef360ee858133b69d595a906dc45d01af50379dad515eb9518abb7c1d2a7a")

	// DefaultHiddenPuzzleHash is the hidden puzzle committed to by standard
	// synthetic keys.
	DefaultHiddenPuzzleHash = chain.MustBytes32("711d6c4e32c92e53179b199484cf8c897542bc57f2b22582799f9d657eec4699")
)

// opcodes used by the curry template (a (q . MOD) (c (q . ARG) ... 1))
const (
	opQuote = 0x01
	opApply = 0x02
	opCons  = 0x04
)

var (
	quoteTreeHash = HashAtom([]byte{opQuote})
	applyTreeHash = HashAtom([]byte{opApply})
	consTreeHash  = HashAtom([]byte{opCons})
	oneTreeHash   = HashAtom([]byte{0x01})
	nilTreeHash   = HashAtom(nil)
)

// HashAtom is sha256(1 || atom).
func HashAtom(atom []byte) chain.Bytes32 {
	h := sha256.New()
	h.Write([]byte{1})
	h.Write(atom)
	var out chain.Bytes32
	copy(out[:], h.Sum(nil))
	return out
}

// HashPair is sha256(2 || left || right).
func HashPair(left, right chain.Bytes32) chain.Bytes32 {
	h := sha256.New()
	h.Write([]byte{2})
	h.Write(left[:])
	h.Write(right[:])
	var out chain.Bytes32
	copy(out[:], h.Sum(nil))
	return out
}

// CurryTreeHash returns the tree hash of modHash curried with arguments that
// are already tree hashes.
func CurryTreeHash(modHash chain.Bytes32, args ...chain.Bytes32) chain.Bytes32 {
	quotedMod := HashPair(quoteTreeHash, modHash)
	return HashPair(applyTreeHash, HashPair(quotedMod, HashPair(curriedValues(args), nilTreeHash)))
}

func curriedValues(args []chain.Bytes32) chain.Bytes32 {
	if len(args) == 0 {
		return oneTreeHash
	}
	quoted := HashPair(quoteTreeHash, args[0])
	rest := curriedValues(args[1:])
	return HashPair(consTreeHash, HashPair(quoted, HashPair(rest, nilTreeHash)))
}

// StandardPuzzleHashFor is the receiving puzzle hash of a synthetic public key.
func StandardPuzzleHashFor(syntheticPublicKey []byte) chain.Bytes32 {
	return CurryTreeHash(StandardPuzzleHash, HashAtom(syntheticPublicKey))
}

// CATPuzzleHashFor wraps an inner puzzle hash in the CAT puzzle of assetID.
func CATPuzzleHashFor(assetID, innerPuzzleHash chain.Bytes32) chain.Bytes32 {
	return CurryTreeHash(CATPuzzleHash, HashAtom(CATPuzzleHash[:]), HashAtom(assetID[:]), innerPuzzleHash)
}
