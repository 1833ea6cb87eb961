package address

import (
	"crypto/sha256"
	"strings"
	"testing"

	"github.com/AlexZinkM/dig-wallet/internal/chain"
	"github.com/AlexZinkM/dig-wallet/internal/werr"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	for i := 0; i < 32; i++ {
		ph := chain.Bytes32(sha256.Sum256([]byte{byte(i)}))
		for _, prefix := range []string{"xch", "txch"} {
			addr, err := FromPuzzleHash(ph, prefix)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(addr, prefix+"1"))

			decoded, err := ToPuzzleHash(addr)
			require.NoError(t, err)
			require.Equal(t, ph, decoded)

			hrp, err := Prefix(addr)
			require.NoError(t, err)
			require.Equal(t, prefix, hrp)
		}
	}
}

func TestMainnetLength(t *testing.T) {
	addr, err := FromPuzzleHash(chain.Bytes32{}, "xch")
	require.NoError(t, err)
	require.Len(t, addr, 62)
}

func TestDecodeErrors(t *testing.T) {
	_, err := ToPuzzleHash("not an address")
	require.ErrorIs(t, err, werr.ErrCrypto)

	addr, err := FromPuzzleHash(chain.Bytes32{1}, "xch")
	require.NoError(t, err)
	corrupted := addr[:len(addr)-1] + "q"
	if corrupted == addr {
		corrupted = addr[:len(addr)-1] + "p"
	}
	_, err = ToPuzzleHash(corrupted)
	require.ErrorIs(t, err, werr.ErrCrypto)
}

func TestKnownAddress(t *testing.T) {
	ph := chain.MustBytes32("d207c1e11fc3b0cd7472e8c7e53c8d2b81709516346c7baa9fbb9070ffccfe89")

	addr, err := FromPuzzleHash(ph, "xch")
	require.NoError(t, err)
	require.Equal(t, "xch16grurcglcwcv6arjarr720yd9wqhp9gkx3k8h25lhwg8pl7vl6ysuax0gy", addr)

	addr, err = FromPuzzleHash(ph, "txch")
	require.NoError(t, err)
	require.Equal(t, "txch16grurcglcwcv6arjarr720yd9wqhp9gkx3k8h25lhwg8pl7vl6ys36pefh", addr)

	back, err := ToPuzzleHash("xch16grurcglcwcv6arjarr720yd9wqhp9gkx3k8h25lhwg8pl7vl6ysuax0gy")
	require.NoError(t, err)
	require.Equal(t, ph, back)
}
