package puzzle

import (
	"encoding/hex"
	"testing"

	"github.com/AlexZinkM/dig-wallet/internal/chain"
	"github.com/stretchr/testify/require"
)

func TestAtomHashes(t *testing.T) {
	require.Equal(t, "4bf5122f344554c53bde2ebb8cd2b7e3d1600ad631c385a5d7cce23c7785459a", nilTreeHash.String())
	require.Equal(t, "9dcf97a184f32623d11a73124ceb99a5709b083721e878a16d78f596718ba7b2", oneTreeHash.String())
}

func TestCurryTreeHashDistinguishesArgs(t *testing.T) {
	a := HashAtom([]byte("a"))
	b := HashAtom([]byte("b"))

	require.NotEqual(t, CurryTreeHash(StandardPuzzleHash, a), CurryTreeHash(StandardPuzzleHash, b))
	require.NotEqual(t, CurryTreeHash(StandardPuzzleHash, a, b), CurryTreeHash(StandardPuzzleHash, b, a))
	require.Equal(t, CurryTreeHash(StandardPuzzleHash, a, b), CurryTreeHash(StandardPuzzleHash, a, b))
}

func TestCATPuzzleHashDependsOnAsset(t *testing.T) {
	inner := StandardPuzzleHashFor(make([]byte, 48))
	other := chain.Bytes32{1}

	require.NotEqual(t, CATPuzzleHashFor(chain.DIGAssetID, inner), CATPuzzleHashFor(other, inner))
	require.NotEqual(t, inner, CATPuzzleHashFor(chain.DIGAssetID, inner))
}

func TestStandardPuzzleHashKnownAnswer(t *testing.T) {
	pk, err := hex.DecodeString("93c7d36e915aa1570087c9adc427c3a9bb532efe964dcc3bb04a07bc64308dbd82598a1f49f6ca86a82b32559e41380e")
	require.NoError(t, err)

	ph := StandardPuzzleHashFor(pk)
	require.Equal(t, "d207c1e11fc3b0cd7472e8c7e53c8d2b81709516346c7baa9fbb9070ffccfe89", hex.EncodeToString(ph[:]))

	asset := chain.MustBytes32("a406d3a9de984d03c9591c10d917593b434d5263cabe2b42f6b367df16832f81")
	cat := CATPuzzleHashFor(asset, ph)
	require.Equal(t, "1a0fb6b58621fb2fa657b1b0b6c75bd34a7655b463889aad17fe9425b1a9b764", hex.EncodeToString(cat[:]))
}
