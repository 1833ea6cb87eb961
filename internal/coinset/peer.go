package coinset

import (
	"context"

	"github.com/AlexZinkM/dig-wallet/internal/chain"
	"github.com/AlexZinkM/dig-wallet/internal/clvm"
)

// Peer streams coin state and spend reveals from the network. A nil height
// means "from genesis" or "as of the latest block".
type Peer interface {
	GetAllUnspentCoins(ctx context.Context, puzzleHash chain.Bytes32, previousHeight *uint32, genesisChallenge chain.Bytes32) ([]chain.CoinState, error)
	IsCoinSpent(ctx context.Context, coinID chain.Bytes32, lastHeight *uint32, genesisChallenge chain.Bytes32) (bool, error)
	RequestCoinState(ctx context.Context, coinIDs []chain.Bytes32, previousHeight *uint32, genesisChallenge chain.Bytes32, includeSpent bool) (*CoinStateResponse, error)
	RequestPuzzleAndSolution(ctx context.Context, coinID chain.Bytes32, height uint32) (*PuzzleSolutionResponse, error)
}

// Evaluator turns revealed bytes into programs and proves token lineage.
type Evaluator interface {
	Runnable(serialized []byte) (*clvm.Program, error)
	ParseLineage(parent chain.Coin, assetID chain.Bytes32, puzzle, solution *clvm.Program) (*chain.LineageProof, error)
}

// Rejection is a well formed refusal from the peer, as opposed to a
// transport failure.
type Rejection struct {
	Reason string
}

func (r *Rejection) Error() string {
	if r.Reason == "" {
		return "request rejected"
	}
	return "request rejected: " + r.Reason
}

// CoinStateResponse carries either coin states or a rejection.
type CoinStateResponse struct {
	CoinStates []chain.CoinState
	Rejected   *Rejection
}

// PuzzleSolutionResponse carries either a spend reveal or a rejection.
type PuzzleSolutionResponse struct {
	Puzzle   []byte
	Solution []byte
	Rejected *Rejection
}
