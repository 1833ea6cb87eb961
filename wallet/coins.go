package wallet

import (
	"context"
	"time"

	"github.com/AlexZinkM/dig-wallet/internal/cat"
	"github.com/AlexZinkM/dig-wallet/internal/chain"
	"github.com/AlexZinkM/dig-wallet/internal/coinset"
	"github.com/AlexZinkM/dig-wallet/internal/reserve"

	"go.uber.org/zap"
)

const (
	// DefaultFeeCoinCost is the fee, in mojos, budgeted for one fee coin.
	DefaultFeeCoinCost uint64 = 64_000_000

	// DefaultSpendFee is charged for a batch of coin spends.
	DefaultSpendFee uint64 = 1_000_000

	DefaultReserveTTL = 5 * time.Minute
)

// Coins reads coin state for one network through a peer.
type Coins struct {
	network chain.Network
	assetID chain.Bytes32
	scanner *coinset.Scanner
	reserve *reserve.Registry
	ttl     time.Duration
	log     *zap.Logger
}

type CoinsOption func(*coinsOptions)

type coinsOptions struct {
	assetID     chain.Bytes32
	eval        coinset.Evaluator
	reserve     *reserve.Registry
	ttl         time.Duration
	log         *zap.Logger
	verbose     bool
	concurrency int
}

// WithAssetID scans tokens of assetID instead of DIG.
func WithAssetID(assetID chain.Bytes32) CoinsOption {
	return func(o *coinsOptions) {
		o.assetID = assetID
	}
}

// WithEvaluator replaces the CAT lineage parser.
func WithEvaluator(eval coinset.Evaluator) CoinsOption {
	return func(o *coinsOptions) {
		o.eval = eval
	}
}

// WithReservations keeps selected coins out of later selections for ttl.
func WithReservations(r *reserve.Registry, ttl time.Duration) CoinsOption {
	return func(o *coinsOptions) {
		o.reserve = r
		if ttl > 0 {
			o.ttl = ttl
		}
	}
}

func WithCoinsLogger(log *zap.Logger) CoinsOption {
	return func(o *coinsOptions) {
		if log != nil {
			o.log = log
		}
	}
}

// WithVerbose logs every token coin that fails lineage verification.
func WithVerbose(verbose bool) CoinsOption {
	return func(o *coinsOptions) {
		o.verbose = verbose
	}
}

func WithConcurrency(n int) CoinsOption {
	return func(o *coinsOptions) {
		o.concurrency = n
	}
}

// NewCoins binds peer to network.
func NewCoins(peer coinset.Peer, network chain.Network, options ...CoinsOption) *Coins {
	o := &coinsOptions{
		assetID:     chain.DIGAssetID,
		ttl:         DefaultReserveTTL,
		log:         zap.NewNop(),
		concurrency: coinset.DefaultConcurrency,
	}
	for _, option := range options {
		option(o)
	}
	if o.eval == nil {
		o.eval = cat.NewLineageParser()
	}

	return &Coins{
		network: network,
		assetID: o.assetID,
		scanner: coinset.NewScanner(peer, o.eval, network.GenesisChallenge,
			coinset.WithLogger(o.log),
			coinset.WithVerbose(o.verbose),
			coinset.WithConcurrency(o.concurrency),
		),
		reserve: o.reserve,
		ttl:     o.ttl,
		log:     o.log,
	}
}

func (c *Coins) Network() chain.Network {
	return c.network
}

func (c *Coins) AssetID() chain.Bytes32 {
	return c.assetID
}

// IsCoinSpendable reports whether coinID is unspent at the peer's latest
// height.
func (c *Coins) IsCoinSpendable(ctx context.Context, coinID chain.Bytes32) (bool, error) {
	return c.scanner.IsSpendable(ctx, coinID)
}

// CalculateFee returns the fee for spending coins. The node does not price
// spends yet, so any non-empty batch costs DefaultSpendFee.
func (c *Coins) CalculateFee(coins []chain.Coin) uint64 {
	if len(coins) == 0 {
		return 0
	}
	return DefaultSpendFee
}

// Release returns coins to the selectable pool before their reservation
// expires, e.g. after a spend could not be pushed.
func (c *Coins) Release(coins []chain.Coin) error {
	if c.reserve == nil || len(coins) == 0 {
		return nil
	}
	return c.reserve.Release(chain.CoinIDs(coins)...)
}

// omitted merges the caller's exclusions with live reservations.
func (c *Coins) omitted(coins []chain.Coin) ([]chain.Bytes32, error) {
	ids := chain.CoinIDs(coins)
	if c.reserve == nil {
		return ids, nil
	}
	reserved, err := c.reserve.Reserved()
	if err != nil {
		return nil, err
	}
	for _, r := range reserved {
		ids = append(ids, r.CoinID)
	}
	return ids, nil
}

func (c *Coins) hold(selected []chain.Coin) error {
	if c.reserve == nil {
		return nil
	}
	if err := c.reserve.Reserve(chain.CoinIDs(selected), c.ttl); err != nil {
		return err
	}
	c.log.Debug("coins reserved", zap.Int("count", len(selected)), zap.Duration("ttl", c.ttl))
	return nil
}

// SelectUnspentCoins picks native coins covering amount+fee, skipping omit
// and reserved coins. With a registry, the picked coins are reserved.
func (w *Wallet) SelectUnspentCoins(ctx context.Context, c *Coins, amount, fee uint64, omit []chain.Coin) ([]chain.Coin, error) {
	ph, err := w.OwnerPuzzleHash()
	if err != nil {
		return nil, err
	}
	omitted, err := c.omitted(omit)
	if err != nil {
		return nil, err
	}

	selected, err := c.scanner.SelectCoins(ctx, ph, amount, fee, omitted)
	if err != nil {
		return nil, err
	}
	if err := c.hold(selected); err != nil {
		return nil, err
	}
	return selected, nil
}

// SelectUnspentTokenCoins is SelectUnspentCoins for lineage-proven token
// coins of the configured asset.
func (w *Wallet) SelectUnspentTokenCoins(ctx context.Context, c *Coins, amount, fee uint64, omit []chain.Coin) ([]chain.Coin, error) {
	ph, err := w.OwnerPuzzleHash()
	if err != nil {
		return nil, err
	}
	omitted, err := c.omitted(omit)
	if err != nil {
		return nil, err
	}

	selected, err := c.scanner.SelectTokenCoins(ctx, c.assetID, ph, amount, fee, omitted)
	if err != nil {
		return nil, err
	}
	if err := c.hold(selected); err != nil {
		return nil, err
	}
	return selected, nil
}

// UnspentCoins lists the wallet's native coins.
func (w *Wallet) UnspentCoins(ctx context.Context, c *Coins) ([]chain.Coin, error) {
	ph, err := w.OwnerPuzzleHash()
	if err != nil {
		return nil, err
	}
	return c.scanner.UnspentCoins(ctx, ph, nil)
}

// UnspentTokenCoins lists the wallet's lineage-proven token coins.
func (w *Wallet) UnspentTokenCoins(ctx context.Context, c *Coins) ([]chain.Coin, error) {
	ph, err := w.OwnerPuzzleHash()
	if err != nil {
		return nil, err
	}
	return c.scanner.UnspentTokenCoins(ctx, c.assetID, ph, nil)
}

// XCHBalance sums the wallet's native coins in mojos.
func (w *Wallet) XCHBalance(ctx context.Context, c *Coins) (uint64, error) {
	ph, err := w.OwnerPuzzleHash()
	if err != nil {
		return 0, err
	}
	return c.scanner.Balance(ctx, ph)
}

// TokenBalance sums the wallet's proven token coins in base units.
func (w *Wallet) TokenBalance(ctx context.Context, c *Coins) (uint64, error) {
	ph, err := w.OwnerPuzzleHash()
	if err != nil {
		return 0, err
	}
	return c.scanner.TokenBalance(ctx, c.assetID, ph)
}
