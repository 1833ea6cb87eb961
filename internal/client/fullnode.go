package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/AlexZinkM/dig-wallet/internal/chain"
	"github.com/AlexZinkM/dig-wallet/internal/coinset"

	"go.uber.org/zap"
)

// TLSFiles locates the full node's private certificates. Empty CertFile
// disables client authentication.
type TLSFiles struct {
	CertFile string
	KeyFile  string
	CAFile   string
}

// FullNodeClient is a client for the full node JSON RPC. It implements
// coinset.Peer for a single network.
type FullNodeClient struct {
	baseURL string
	client  *http.Client
	network chain.Network
	log     *zap.Logger
}

var _ coinset.Peer = (*FullNodeClient)(nil)

// NewFullNodeClient creates a client for the node at rpcURL.
func NewFullNodeClient(rpcURL string, network chain.Network, files TLSFiles, log *zap.Logger) (*FullNodeClient, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if files.CertFile != "" {
		tlsConfig, err := loadTLS(files)
		if err != nil {
			return nil, err
		}
		transport.TLSClientConfig = tlsConfig
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &FullNodeClient{
		baseURL: strings.TrimRight(rpcURL, "/"),
		client: &http.Client{
			Timeout:   15 * time.Second,
			Transport: transport,
		},
		network: network,
		log:     log,
	}, nil
}

// loadTLS builds a mutual TLS config. Node certificates are issued by the
// node's private CA for a fixed name, so only the chain is verified.
func loadTLS(files TLSFiles) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(files.CertFile, files.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load client certificate: %w", err)
	}
	cfg := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}
	if files.CAFile == "" {
		return cfg, nil
	}

	caPEM, err := os.ReadFile(files.CAFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA certificate: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caPEM) {
		return nil, errors.New("no certificates found in CA file")
	}

	cfg.InsecureSkipVerify = true
	cfg.VerifyConnection = func(cs tls.ConnectionState) error {
		if len(cs.PeerCertificates) == 0 {
			return errors.New("node presented no certificate")
		}
		opts := x509.VerifyOptions{Roots: pool, Intermediates: x509.NewCertPool()}
		for _, c := range cs.PeerCertificates[1:] {
			opts.Intermediates.AddCert(c)
		}
		_, err := cs.PeerCertificates[0].Verify(opts)
		return err
	}
	return cfg, nil
}

// Network returns the network the client is bound to.
func (c *FullNodeClient) Network() chain.Network {
	return c.network
}

type rpcStatus struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type coinRecord struct {
	Coin                chain.Coin `json:"coin"`
	Coinbase            bool       `json:"coinbase"`
	ConfirmedBlockIndex uint32     `json:"confirmed_block_index"`
	Spent               bool       `json:"spent"`
	SpentBlockIndex     uint32     `json:"spent_block_index"`
	Timestamp           uint64     `json:"timestamp"`
}

func (r coinRecord) state() chain.CoinState {
	created := r.ConfirmedBlockIndex
	st := chain.CoinState{Coin: r.Coin, CreatedHeight: &created}
	if r.Spent || r.SpentBlockIndex > 0 {
		spent := r.SpentBlockIndex
		st.SpentHeight = &spent
	}
	return st
}

// hexBytes decodes 0x-prefixed hex strings.
type hexBytes []byte

func (h *hexBytes) UnmarshalText(text []byte) error {
	b, err := hex.DecodeString(strings.TrimPrefix(string(text), "0x"))
	if err != nil {
		return err
	}
	*h = b
	return nil
}

// call posts req to endpoint and decodes the reply into resp. A reply with
// success=false is returned as a *coinset.Rejection.
func (c *FullNodeClient) call(ctx context.Context, endpoint string, req, resp any) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", endpoint, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", endpoint, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", endpoint, err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", endpoint, err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to call %s: status %d", endpoint, httpResp.StatusCode)
	}

	var status rpcStatus
	if err := json.Unmarshal(raw, &status); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	if !status.Success {
		return &coinset.Rejection{Reason: status.Error}
	}
	if err := json.Unmarshal(raw, resp); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	c.log.Debug("rpc call", zap.String("endpoint", endpoint))
	return nil
}

func (c *FullNodeClient) checkGenesis(genesisChallenge chain.Bytes32) error {
	if genesisChallenge != c.network.GenesisChallenge {
		return fmt.Errorf("genesis challenge %s does not match %s", genesisChallenge, c.network.Name)
	}
	return nil
}

// GetAllUnspentCoins lists unspent coins at puzzleHash created after
// previousHeight.
func (c *FullNodeClient) GetAllUnspentCoins(ctx context.Context, puzzleHash chain.Bytes32, previousHeight *uint32, genesisChallenge chain.Bytes32) ([]chain.CoinState, error) {
	if err := c.checkGenesis(genesisChallenge); err != nil {
		return nil, err
	}

	req := map[string]any{
		"puzzle_hash":         puzzleHash,
		"include_spent_coins": false,
	}
	if previousHeight != nil {
		req["start_height"] = *previousHeight + 1
	}

	var resp struct {
		CoinRecords []coinRecord `json:"coin_records"`
	}
	if err := c.call(ctx, "get_coin_records_by_puzzle_hash", req, &resp); err != nil {
		return nil, err
	}

	states := make([]chain.CoinState, 0, len(resp.CoinRecords))
	for _, r := range resp.CoinRecords {
		if st := r.state(); st.Unspent() {
			states = append(states, st)
		}
	}
	return states, nil
}

// IsCoinSpent reports whether coinID was spent at or before lastHeight, or at
// all when lastHeight is nil.
func (c *FullNodeClient) IsCoinSpent(ctx context.Context, coinID chain.Bytes32, lastHeight *uint32, genesisChallenge chain.Bytes32) (bool, error) {
	if err := c.checkGenesis(genesisChallenge); err != nil {
		return false, err
	}

	var resp struct {
		CoinRecord coinRecord `json:"coin_record"`
	}
	if err := c.call(ctx, "get_coin_record_by_name", map[string]any{"name": coinID}, &resp); err != nil {
		return false, err
	}

	st := resp.CoinRecord.state()
	if st.SpentHeight == nil {
		return false, nil
	}
	return lastHeight == nil || *st.SpentHeight <= *lastHeight, nil
}

// RequestCoinState fetches the records of coinIDs. A node refusal is
// returned in the response rather than as an error.
func (c *FullNodeClient) RequestCoinState(ctx context.Context, coinIDs []chain.Bytes32, previousHeight *uint32, genesisChallenge chain.Bytes32, includeSpent bool) (*coinset.CoinStateResponse, error) {
	if err := c.checkGenesis(genesisChallenge); err != nil {
		return nil, err
	}

	req := map[string]any{
		"names":               coinIDs,
		"include_spent_coins": includeSpent,
	}
	if previousHeight != nil {
		req["start_height"] = *previousHeight + 1
	}

	var resp struct {
		CoinRecords []coinRecord `json:"coin_records"`
	}
	err := c.call(ctx, "get_coin_records_by_names", req, &resp)
	var rejected *coinset.Rejection
	if errors.As(err, &rejected) {
		return &coinset.CoinStateResponse{Rejected: rejected}, nil
	}
	if err != nil {
		return nil, err
	}

	out := &coinset.CoinStateResponse{}
	for _, r := range resp.CoinRecords {
		st := r.state()
		if !includeSpent && !st.Unspent() {
			continue
		}
		out.CoinStates = append(out.CoinStates, st)
	}
	return out, nil
}

// RequestPuzzleAndSolution fetches the reveal of coinID spent at height.
func (c *FullNodeClient) RequestPuzzleAndSolution(ctx context.Context, coinID chain.Bytes32, height uint32) (*coinset.PuzzleSolutionResponse, error) {
	var resp struct {
		CoinSolution struct {
			Coin         chain.Coin `json:"coin"`
			PuzzleReveal hexBytes   `json:"puzzle_reveal"`
			Solution     hexBytes   `json:"solution"`
		} `json:"coin_solution"`
	}
	err := c.call(ctx, "get_puzzle_and_solution", map[string]any{"coin_id": coinID, "height": height}, &resp)
	var rejected *coinset.Rejection
	if errors.As(err, &rejected) {
		return &coinset.PuzzleSolutionResponse{Rejected: rejected}, nil
	}
	if err != nil {
		return nil, err
	}

	return &coinset.PuzzleSolutionResponse{
		Puzzle:   resp.CoinSolution.PuzzleReveal,
		Solution: resp.CoinSolution.Solution,
	}, nil
}
