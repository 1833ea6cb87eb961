package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AlexZinkM/dig-wallet/internal/chain"
	"github.com/stretchr/testify/require"
)

var (
	testCoin = chain.Coin{
		ParentCoinInfo: chain.Bytes32{0x01},
		PuzzleHash:     chain.Bytes32{0x02},
		Amount:         1_000_000_000_000,
	}
	genesis = chain.Mainnet.GenesisChallenge
)

// nodeStub answers RPC endpoints with canned bodies and records requests.
type nodeStub struct {
	replies  map[string]string
	requests map[string]map[string]any
}

func newNode(t *testing.T, replies map[string]string) (*FullNodeClient, *nodeStub) {
	t.Helper()
	stub := &nodeStub{replies: replies, requests: map[string]map[string]any{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		endpoint := r.URL.Path[1:]
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		stub.requests[endpoint] = req

		body, ok := stub.replies[endpoint]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	c, err := NewFullNodeClient(srv.URL+"/", chain.Mainnet, TLSFiles{}, nil)
	require.NoError(t, err)
	return c, stub
}

const recordJSON = `{
	"coin": {
		"parent_coin_info": "0x0100000000000000000000000000000000000000000000000000000000000000",
		"puzzle_hash": "0x0200000000000000000000000000000000000000000000000000000000000000",
		"amount": 1000000000000
	},
	"coinbase": false,
	"confirmed_block_index": 100,
	"spent": %s,
	"spent_block_index": %d,
	"timestamp": 1700000000
}`

func record(spent bool, at int) string {
	s := "false"
	if spent {
		s = "true"
	}
	return fmt.Sprintf(recordJSON, s, at)
}

func TestGetAllUnspentCoins(t *testing.T) {
	c, stub := newNode(t, map[string]string{
		"get_coin_records_by_puzzle_hash": `{"success": true, "coin_records": [` +
			record(false, 0) + `,` + record(true, 150) + `]}`,
	})

	states, err := c.GetAllUnspentCoins(context.Background(), testCoin.PuzzleHash, nil, genesis)
	require.NoError(t, err)
	require.Len(t, states, 1)
	require.Equal(t, testCoin, states[0].Coin)
	require.Equal(t, uint32(100), *states[0].CreatedHeight)
	require.True(t, states[0].Unspent())

	req := stub.requests["get_coin_records_by_puzzle_hash"]
	require.Equal(t, "0x"+testCoin.PuzzleHash.String(), req["puzzle_hash"])
	require.Equal(t, false, req["include_spent_coins"])
	require.NotContains(t, req, "start_height")
}

func TestWrongGenesisIsRefused(t *testing.T) {
	c, stub := newNode(t, map[string]string{})

	_, err := c.GetAllUnspentCoins(context.Background(), testCoin.PuzzleHash, nil, chain.Testnet11.GenesisChallenge)
	require.Error(t, err)
	_, err = c.IsCoinSpent(context.Background(), testCoin.ID(), nil, chain.Testnet11.GenesisChallenge)
	require.Error(t, err)
	require.Empty(t, stub.requests)
}

func TestIsCoinSpent(t *testing.T) {
	c, _ := newNode(t, map[string]string{
		"get_coin_record_by_name": `{"success": true, "coin_record": ` + record(true, 150) + `}`,
	})
	ctx := context.Background()

	spent, err := c.IsCoinSpent(ctx, testCoin.ID(), nil, genesis)
	require.NoError(t, err)
	require.True(t, spent)

	before := uint32(149)
	spent, err = c.IsCoinSpent(ctx, testCoin.ID(), &before, genesis)
	require.NoError(t, err)
	require.False(t, spent)
}

func TestRequestCoinState(t *testing.T) {
	c, stub := newNode(t, map[string]string{
		"get_coin_records_by_names": `{"success": true, "coin_records": [` + record(true, 150) + `]}`,
	})
	ctx := context.Background()

	resp, err := c.RequestCoinState(ctx, []chain.Bytes32{testCoin.ID()}, nil, genesis, true)
	require.NoError(t, err)
	require.Nil(t, resp.Rejected)
	require.Len(t, resp.CoinStates, 1)
	require.Equal(t, uint32(150), *resp.CoinStates[0].SpentHeight)
	require.Equal(t, []any{"0x" + testCoin.ID().String()}, stub.requests["get_coin_records_by_names"]["names"])

	resp, err = c.RequestCoinState(ctx, []chain.Bytes32{testCoin.ID()}, nil, genesis, false)
	require.NoError(t, err)
	require.Empty(t, resp.CoinStates)
}

func TestRejectionsAreNotErrors(t *testing.T) {
	c, _ := newNode(t, map[string]string{
		"get_coin_records_by_names": `{"success": false, "error": "bad names"}`,
		"get_puzzle_and_solution":   `{"success": false, "error": "not spent"}`,
	})
	ctx := context.Background()

	state, err := c.RequestCoinState(ctx, []chain.Bytes32{testCoin.ID()}, nil, genesis, true)
	require.NoError(t, err)
	require.NotNil(t, state.Rejected)
	require.Equal(t, "bad names", state.Rejected.Reason)

	reveal, err := c.RequestPuzzleAndSolution(ctx, testCoin.ID(), 150)
	require.NoError(t, err)
	require.NotNil(t, reveal.Rejected)
}

func TestRequestPuzzleAndSolution(t *testing.T) {
	c, stub := newNode(t, map[string]string{
		"get_puzzle_and_solution": `{"success": true, "coin_solution": {
			"coin": {"parent_coin_info": "0x0100000000000000000000000000000000000000000000000000000000000000",
			         "puzzle_hash": "0x0200000000000000000000000000000000000000000000000000000000000000",
			         "amount": 1},
			"puzzle_reveal": "0xff0180",
			"solution": "0x80"}}`,
	})

	resp, err := c.RequestPuzzleAndSolution(context.Background(), testCoin.ID(), 150)
	require.NoError(t, err)
	require.Equal(t, []byte{0xff, 0x01, 0x80}, resp.Puzzle)
	require.Equal(t, []byte{0x80}, resp.Solution)
	require.Equal(t, float64(150), stub.requests["get_puzzle_and_solution"]["height"])
}

func TestTransportFailureIsError(t *testing.T) {
	c, _ := newNode(t, map[string]string{})

	_, err := c.GetAllUnspentCoins(context.Background(), testCoin.PuzzleHash, nil, genesis)
	require.Error(t, err)

	_, err = c.RequestPuzzleAndSolution(context.Background(), testCoin.ID(), 1)
	require.Error(t, err)
}

func TestMissingCertificateFiles(t *testing.T) {
	_, err := NewFullNodeClient("https://localhost:8555", chain.Mainnet, TLSFiles{
		CertFile: "/nonexistent/private_full_node.crt",
		KeyFile:  "/nonexistent/private_full_node.key",
	}, nil)
	require.Error(t, err)
}
