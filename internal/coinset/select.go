package coinset

import (
	"fmt"
	"math/bits"
	"sort"

	"github.com/AlexZinkM/dig-wallet/internal/chain"
	"github.com/AlexZinkM/dig-wallet/internal/werr"
)

type candidate struct {
	coin chain.Coin
	id   chain.Bytes32
}

// arrange orders coins largest first, breaking ties by ascending coin id, so
// selection never depends on the order the peer returned them in.
func arrange(coins []chain.Coin) []candidate {
	out := make([]candidate, 0, len(coins))
	for _, c := range coins {
		out = append(out, candidate{coin: c, id: c.ID()})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].coin.Amount != out[j].coin.Amount {
			return out[i].coin.Amount > out[j].coin.Amount
		}
		return out[i].id.Less(out[j].id)
	})
	return out
}

// Target returns amount+fee, or false if the sum overflows.
func Target(amount, fee uint64) (uint64, bool) {
	sum, carry := bits.Add64(amount, fee, 0)
	return sum, carry == 0
}

// SelectCoins picks a non-empty subset of coins summing to at least
// amount+fee. It prefers, in order: a single coin of exactly the target, the
// smallest single coin covering the target, then the largest coins
// accumulated until the target is reached.
func SelectCoins(coins []chain.Coin, amount, fee uint64) ([]chain.Coin, error) {
	target, ok := Target(amount, fee)
	if !ok {
		return nil, werr.New(werr.KindNoUnspentCoins, "amount plus fee overflows")
	}
	if len(coins) == 0 {
		return nil, werr.ErrNoUnspentCoins
	}

	arranged := arrange(coins)

	for _, c := range arranged {
		if c.coin.Amount == target {
			return []chain.Coin{c.coin}, nil
		}
	}

	var smallest *candidate
	for i := range arranged {
		c := &arranged[i]
		if c.coin.Amount >= target && (smallest == nil || c.coin.Amount < smallest.coin.Amount) {
			smallest = c
		}
	}
	if smallest != nil {
		return []chain.Coin{smallest.coin}, nil
	}

	var (
		selected []chain.Coin
		total    uint64
	)
	for _, c := range arranged {
		selected = append(selected, c.coin)
		var carry uint64
		total, carry = bits.Add64(total, c.coin.Amount, 0)
		// a carry means the sum already exceeds any uint64 target
		if carry != 0 || total >= target {
			return selected, nil
		}
	}

	return nil, werr.New(werr.KindNoUnspentCoins,
		fmt.Sprintf("need %d, have %d across %d coins", target, total, len(coins)))
}

// omit drops states whose coin id is in omitted.
func omit(states []chain.CoinState, omitted []chain.Bytes32) []chain.CoinState {
	if len(omitted) == 0 {
		return states
	}
	skip := make(map[chain.Bytes32]struct{}, len(omitted))
	for _, id := range omitted {
		skip[id] = struct{}{}
	}
	out := states[:0:0]
	for _, s := range states {
		if _, ok := skip[s.Coin.ID()]; !ok {
			out = append(out, s)
		}
	}
	return out
}

// sortByID orders coins by ascending coin id.
func sortByID(coins []chain.Coin) {
	ids := make(map[chain.Coin]chain.Bytes32, len(coins))
	for _, c := range coins {
		ids[c] = c.ID()
	}
	sort.Slice(coins, func(i, j int) bool {
		return ids[coins[i]].Less(ids[coins[j]])
	})
}
