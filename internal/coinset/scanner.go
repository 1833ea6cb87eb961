// Package coinset finds a wallet's spendable coins, proves token lineage for
// them and selects coins to meet a payment target.
package coinset

import (
	"context"
	"errors"

	"github.com/AlexZinkM/dig-wallet/internal/chain"
	"github.com/AlexZinkM/dig-wallet/internal/puzzle"
	"github.com/AlexZinkM/dig-wallet/internal/werr"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const DefaultConcurrency = 8

// Scanner queries one network through a Peer.
type Scanner struct {
	peer        Peer
	eval        Evaluator
	genesis     chain.Bytes32
	log         *zap.Logger
	verbose     bool
	concurrency int
}

type Option func(*Scanner)

func WithLogger(log *zap.Logger) Option {
	return func(s *Scanner) {
		if log != nil {
			s.log = log
		}
	}
}

// WithVerbose reports every dropped token coin at warn level.
func WithVerbose(verbose bool) Option {
	return func(s *Scanner) {
		s.verbose = verbose
	}
}

// WithConcurrency bounds how many token coins are verified at once.
func WithConcurrency(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func NewScanner(peer Peer, eval Evaluator, genesisChallenge chain.Bytes32, options ...Option) *Scanner {
	s := &Scanner{
		peer:        peer,
		eval:        eval,
		genesis:     genesisChallenge,
		log:         zap.NewNop(),
		concurrency: DefaultConcurrency,
	}
	for _, o := range options {
		o(s)
	}
	return s
}

// UnspentCoins returns the native coins at puzzleHash minus the omitted ids,
// ordered by coin id.
func (s *Scanner) UnspentCoins(ctx context.Context, puzzleHash chain.Bytes32, omitted []chain.Bytes32) ([]chain.Coin, error) {
	states, err := s.fetch(ctx, puzzleHash, omitted)
	if err != nil {
		return nil, err
	}
	coins := make([]chain.Coin, 0, len(states))
	for _, st := range states {
		coins = append(coins, st.Coin)
	}
	sortByID(coins)
	return coins, nil
}

// UnspentTokenCoins returns the coins of assetID owned by innerPuzzleHash
// whose lineage could be proven, minus omitted ones, ordered by coin id.
// Coins that fail verification are dropped.
func (s *Scanner) UnspentTokenCoins(ctx context.Context, assetID, innerPuzzleHash chain.Bytes32, omitted []chain.Bytes32) ([]chain.Coin, error) {
	ph := puzzle.CATPuzzleHashFor(assetID, innerPuzzleHash)
	states, err := s.fetch(ctx, ph, omitted)
	if err != nil {
		return nil, err
	}

	proven := make([]bool, len(states))
	g := new(errgroup.Group)
	g.SetLimit(s.concurrency)
	for i, st := range states {
		i, st := i, st
		g.Go(func() error {
			if err := s.verifyLineage(ctx, assetID, st); err != nil {
				s.dropped(st.Coin, err)
				return nil
			}
			proven[i] = true
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, werr.Wrap(werr.KindNetwork, "scan cancelled", err)
	}

	coins := make([]chain.Coin, 0, len(states))
	for i, st := range states {
		if proven[i] {
			coins = append(coins, st.Coin)
		}
	}
	sortByID(coins)
	return coins, nil
}

// SelectCoins scans native coins and selects enough to cover amount+fee.
func (s *Scanner) SelectCoins(ctx context.Context, puzzleHash chain.Bytes32, amount, fee uint64, omitted []chain.Bytes32) ([]chain.Coin, error) {
	coins, err := s.UnspentCoins(ctx, puzzleHash, omitted)
	if err != nil {
		return nil, err
	}
	return SelectCoins(coins, amount, fee)
}

// SelectTokenCoins scans proven token coins and selects enough to cover
// amount+fee.
func (s *Scanner) SelectTokenCoins(ctx context.Context, assetID, innerPuzzleHash chain.Bytes32, amount, fee uint64, omitted []chain.Bytes32) ([]chain.Coin, error) {
	coins, err := s.UnspentTokenCoins(ctx, assetID, innerPuzzleHash, omitted)
	if err != nil {
		return nil, err
	}
	return SelectCoins(coins, amount, fee)
}

// Balance sums the native coins at puzzleHash.
func (s *Scanner) Balance(ctx context.Context, puzzleHash chain.Bytes32) (uint64, error) {
	coins, err := s.UnspentCoins(ctx, puzzleHash, nil)
	if err != nil {
		return 0, err
	}
	return chain.SumAmounts(coins), nil
}

// TokenBalance sums the proven token coins of assetID.
func (s *Scanner) TokenBalance(ctx context.Context, assetID, innerPuzzleHash chain.Bytes32) (uint64, error) {
	coins, err := s.UnspentTokenCoins(ctx, assetID, innerPuzzleHash, nil)
	if err != nil {
		return 0, err
	}
	return chain.SumAmounts(coins), nil
}

// IsSpendable reports whether the peer sees coinID as unspent at its latest
// height.
func (s *Scanner) IsSpendable(ctx context.Context, coinID chain.Bytes32) (bool, error) {
	spent, err := s.peer.IsCoinSpent(ctx, coinID, nil, s.genesis)
	if err != nil {
		return false, werr.Wrap(werr.KindNetwork, "failed to check coin status", err)
	}
	return !spent, nil
}

func (s *Scanner) fetch(ctx context.Context, puzzleHash chain.Bytes32, omitted []chain.Bytes32) ([]chain.CoinState, error) {
	states, err := s.peer.GetAllUnspentCoins(ctx, puzzleHash, nil, s.genesis)
	if err != nil {
		return nil, werr.Wrap(werr.KindNetwork, "failed to get unspent coins", err)
	}

	unspent := states[:0:0]
	for _, st := range states {
		if st.Unspent() {
			unspent = append(unspent, st)
		}
	}
	return omit(unspent, omitted), nil
}

// verifyLineage replays the parent spend of a token coin. Every failure is a
// reason to drop the coin.
func (s *Scanner) verifyLineage(ctx context.Context, assetID chain.Bytes32, st chain.CoinState) error {
	coin := st.Coin
	if st.CreatedHeight == nil {
		return werr.New(werr.KindCoinSet, "cannot determine coin creation height")
	}

	// the parent of an unspent coin is always spent
	resp, err := s.peer.RequestCoinState(ctx, []chain.Bytes32{coin.ParentCoinInfo}, nil, s.genesis, true)
	if err != nil {
		return werr.Wrap(werr.KindNetwork, "failed to get coin state", err)
	}
	if resp.Rejected != nil {
		return werr.Wrap(werr.KindCoinSet, "coin state rejected", resp.Rejected)
	}
	if len(resp.CoinStates) == 0 {
		return werr.New(werr.KindCoinSet, "parent coin state not found")
	}
	parent := resp.CoinStates[0].Coin
	if parent.ID() != coin.ParentCoinInfo {
		return werr.New(werr.KindCoinSet, "peer returned a different parent coin")
	}

	reveal, err := s.peer.RequestPuzzleAndSolution(ctx, coin.ParentCoinInfo, *st.CreatedHeight)
	if err != nil {
		return werr.Wrap(werr.KindNetwork, "failed to get puzzle and solution", err)
	}
	if reveal.Rejected != nil {
		return werr.Wrap(werr.KindCoinSet, "parent puzzle solution rejected", reveal.Rejected)
	}

	puz, err := s.eval.Runnable(reveal.Puzzle)
	if err != nil {
		return werr.Wrap(werr.KindCoinSet, "failed to parse parent puzzle", err)
	}
	sol, err := s.eval.Runnable(reveal.Solution)
	if err != nil {
		return werr.Wrap(werr.KindCoinSet, "failed to parse parent solution", err)
	}

	if _, err := s.eval.ParseLineage(parent, assetID, puz, sol); err != nil {
		return werr.Wrap(werr.KindCoinSet, "failed to parse CAT and prove lineage", err)
	}
	return nil
}

func (s *Scanner) dropped(coin chain.Coin, err error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return
	}
	fields := []zap.Field{
		zap.Stringer("coin_id", coin.ID()),
		zap.Uint64("amount", coin.Amount),
		zap.Error(err),
	}
	if s.verbose {
		s.log.Warn("dropping unproven token coin", fields...)
		return
	}
	s.log.Debug("dropping unproven token coin", fields...)
}
