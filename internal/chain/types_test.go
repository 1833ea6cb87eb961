package chain

import (
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeAmount(t *testing.T) {
	cases := map[uint64]string{
		0:                 "",
		1:                 "01",
		127:               "7f",
		128:               "0080",
		255:               "00ff",
		256:               "0100",
		1_000_000_000_000: "00e8d4a51000",
		1<<64 - 1:         "00ffffffffffffffff",
	}
	for v, want := range cases {
		require.Equal(t, want, hex.EncodeToString(EncodeAmount(v)), "amount %d", v)
	}
}

func TestCoinID(t *testing.T) {
	coin := Coin{ParentCoinInfo: Bytes32{1}, PuzzleHash: Bytes32{2}}

	ids := map[uint64]string{
		0:                 "ff55c97976a840b4ced964ed49e3794594ba3f675238b5fd25d282b60f70a194",
		128:               "04c07ee03fe9c58b08d4f6679ffa96715aafd8fc633589190c7d64ee6beff550",
		1_000_000_000_000: "37fc91740b305e4e63539640daed324bc239c52ad80c813b2c7c6f07922dd8ad",
	}
	for amount, want := range ids {
		coin.Amount = amount
		require.Equal(t, want, coin.ID().String())
	}
}

func TestBytes32Text(t *testing.T) {
	id := MustBytes32("37fc91740b305e4e63539640daed324bc239c52ad80c813b2c7c6f07922dd8ad")

	b, err := json.Marshal(id)
	require.NoError(t, err)
	require.Equal(t, `"0x37fc91740b305e4e63539640daed324bc239c52ad80c813b2c7c6f07922dd8ad"`, string(b))

	var back Bytes32
	require.NoError(t, json.Unmarshal(b, &back))
	require.Equal(t, id, back)

	_, err = Bytes32FromHex("0x1234")
	require.Error(t, err)
	_, err = Bytes32FromHex("zz")
	require.Error(t, err)
}

func TestNetworkByName(t *testing.T) {
	n, err := NetworkByName("")
	require.NoError(t, err)
	require.Equal(t, Mainnet, n)

	n, err = NetworkByName("testnet11")
	require.NoError(t, err)
	require.Equal(t, "txch", n.AddressPrefix)

	_, err = NetworkByName("testnet10")
	require.Error(t, err)
}

func TestCoinHelpers(t *testing.T) {
	a := Coin{ParentCoinInfo: Bytes32{1}, Amount: 3}
	b := Coin{ParentCoinInfo: Bytes32{2}, Amount: 4}

	require.Equal(t, uint64(7), SumAmounts([]Coin{a, b}))
	huge := Coin{ParentCoinInfo: Bytes32{3}, Amount: 1 << 63}
	require.Equal(t, ^uint64(0), SumAmounts([]Coin{huge, huge, a}))
	require.Equal(t, []Bytes32{a.ID(), b.ID()}, CoinIDs([]Coin{a, b}))
	require.True(t, Bytes32{1}.Less(Bytes32{2}))
	require.False(t, Bytes32{2}.Less(Bytes32{2}))
}
