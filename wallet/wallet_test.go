package wallet

import (
	"context"
	"encoding/base64"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AlexZinkM/dig-wallet/internal/chain"
	"github.com/AlexZinkM/dig-wallet/internal/coinset"
	"github.com/AlexZinkM/dig-wallet/internal/keys"
	"github.com/AlexZinkM/dig-wallet/internal/reserve"
	"github.com/stretchr/testify/require"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon " +
	"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon art"

var testParams = ScryptParams{N: 1 << 10, R: 8, P: 1}

func newManager(t *testing.T) *Manager {
	t.Helper()
	m := New(filepath.Join(t.TempDir(), "keyring.json"), WithScryptParams(testParams))
	t.Cleanup(m.Close)
	return m
}

func TestSamePhraseSameIdentity(t *testing.T) {
	m := newManager(t)

	_, err := m.Import("wallet_a", testMnemonic)
	require.NoError(t, err)
	_, err = m.Import("wallet_b", "  "+strings.ToUpper(testMnemonic))
	require.NoError(t, err)

	a, err := m.Load("wallet_a", false)
	require.NoError(t, err)
	b, err := m.Load("wallet_b", false)
	require.NoError(t, err)
	require.Equal(t, "wallet_a", a.Name())

	ma, err := a.MasterSecretKey()
	require.NoError(t, err)
	mb, err := b.MasterSecretKey()
	require.NoError(t, err)
	require.Equal(t, ma.Bytes(), mb.Bytes())

	pka, err := a.PublicSyntheticKeyHex()
	require.NoError(t, err)
	pkb, err := b.PublicSyntheticKeyHex()
	require.NoError(t, err)
	require.Equal(t, pka, pkb)
	require.Len(t, pka, 96)

	addrA, err := a.OwnerAddress(chain.Mainnet.AddressPrefix)
	require.NoError(t, err)
	addrB, err := b.OwnerAddress(chain.Mainnet.AddressPrefix)
	require.NoError(t, err)
	require.Equal(t, addrA, addrB)
	require.True(t, strings.HasPrefix(addrA, "xch1"))

	ph, err := AddressToPuzzleHash(addrA)
	require.NoError(t, err)
	owner, err := a.OwnerPuzzleHash()
	require.NoError(t, err)
	require.Equal(t, owner, ph)

	testAddr, err := PuzzleHashToAddress(ph, chain.Testnet11.AddressPrefix)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(testAddr, "txch1"))

	sigA, err := a.CreateKeyOwnershipSignature("test_nonce_12345")
	require.NoError(t, err)
	sigB, err := b.CreateKeyOwnershipSignature("test_nonce_12345")
	require.NoError(t, err)
	require.Equal(t, sigA, sigB)

	ok, err := VerifyKeyOwnershipSignature("test_nonce_12345", sigA, pka)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = VerifyKeyOwnershipSignature("other_nonce", sigA, pka)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestKnownIdentity(t *testing.T) {
	w, err := FromMnemonic("known", testMnemonic)
	require.NoError(t, err)

	pk, err := w.PublicSyntheticKeyHex()
	require.NoError(t, err)
	require.Equal(t, "93c7d36e915aa1570087c9adc427c3a9bb532efe964dcc3bb04a07bc64308dbd82598a1f49f6ca86a82b32559e41380e", pk)

	addr, err := w.OwnerAddress(chain.Mainnet.AddressPrefix)
	require.NoError(t, err)
	require.Equal(t, "xch16grurcglcwcv6arjarr720yd9wqhp9gkx3k8h25lhwg8pl7vl6ysuax0gy", addr)

	const wantSig = "8bc83ab759955762a36deb1ff7d7ffc0f25fca4f3aec75ebf140bc655ca86355fa03e451bc3e51be8f210715ab491893" +
		"046226d2a14aa37e662e367a1f1a6c272cfef61b9d70a39390f245c9c9e46fe036a05d99f9de191d35ebb2b76f914d9e"
	sig, err := w.CreateKeyOwnershipSignature("test_nonce_12345")
	require.NoError(t, err)
	require.Equal(t, wantSig, sig)

	ok, err := VerifyKeyOwnershipSignature("test_nonce_12345", wantSig, pk)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestLoadDefaultWallet(t *testing.T) {
	m := newManager(t)

	_, err := m.Load("", false)
	require.ErrorIs(t, err, ErrWalletNotFound)

	w, err := m.Load("", true)
	require.NoError(t, err)
	require.Equal(t, DefaultName, w.Name())

	phrase, err := w.Mnemonic()
	require.NoError(t, err)
	require.Len(t, strings.Fields(phrase), 24)

	again, err := m.Load(DefaultName, false)
	require.NoError(t, err)
	againPhrase, err := again.Mnemonic()
	require.NoError(t, err)
	require.Equal(t, phrase, againPhrase)

	names, err := m.List()
	require.NoError(t, err)
	require.Equal(t, []string{DefaultName}, names)
}

func TestExistingNamesAreRefused(t *testing.T) {
	m := newManager(t)

	first, err := m.Create("main")
	require.NoError(t, err)

	_, err = m.Create("main")
	require.ErrorIs(t, err, ErrWalletExists)
	_, err = m.Import("main", testMnemonic)
	require.ErrorIs(t, err, ErrWalletExists)

	w, err := m.Load("main", false)
	require.NoError(t, err)
	phrase, err := w.Mnemonic()
	require.NoError(t, err)
	require.Equal(t, first, phrase)
}

func TestImportValidation(t *testing.T) {
	m := newManager(t)

	_, err := m.Import("empty", "   ")
	require.ErrorIs(t, err, ErrMnemonicRequired)

	_, err = m.Import("bad", "invalid mnemonic phrase that should fail validation")
	require.ErrorIs(t, err, ErrInvalidMnemonic)

	names, err := m.List()
	require.NoError(t, err)
	require.Empty(t, names)
}

func TestDelete(t *testing.T) {
	m := newManager(t)
	_, err := m.Import("gone", testMnemonic)
	require.NoError(t, err)

	removed, err := m.Delete("gone")
	require.NoError(t, err)
	require.True(t, removed)

	removed, err = m.Delete("gone")
	require.NoError(t, err)
	require.False(t, removed)

	_, err = m.Load("gone", false)
	require.ErrorIs(t, err, ErrWalletNotFound)
}

func TestInertWallet(t *testing.T) {
	var w Wallet

	_, err := w.Mnemonic()
	require.ErrorIs(t, err, ErrMnemonicNotLoaded)
	_, err = w.OwnerPuzzleHash()
	require.ErrorIs(t, err, ErrMnemonicNotLoaded)
	_, err = w.CreateKeyOwnershipSignature("nonce")
	require.ErrorIs(t, err, ErrMnemonicNotLoaded)
	_, err = w.SelectUnspentCoins(context.Background(), nil, 1, 0, nil)
	require.ErrorIs(t, err, ErrMnemonicNotLoaded)
}

func TestAddressQRCode(t *testing.T) {
	w, err := FromMnemonic("qr", testMnemonic)
	require.NoError(t, err)
	addr, err := w.OwnerAddress("xch")
	require.NoError(t, err)

	encoded, err := AddressQRCode(addr)
	require.NoError(t, err)
	png, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	require.Equal(t, []byte("\x89PNG"), png[:4])
}

// nativePeer serves native coins only.
type nativePeer struct {
	coins map[chain.Bytes32][]chain.Coin
	spent map[chain.Bytes32]bool
}

func (p *nativePeer) GetAllUnspentCoins(_ context.Context, ph chain.Bytes32, _ *uint32, _ chain.Bytes32) ([]chain.CoinState, error) {
	var out []chain.CoinState
	height := uint32(10)
	for _, c := range p.coins[ph] {
		out = append(out, chain.CoinState{Coin: c, CreatedHeight: &height})
	}
	return out, nil
}

func (p *nativePeer) IsCoinSpent(_ context.Context, id chain.Bytes32, _ *uint32, _ chain.Bytes32) (bool, error) {
	return p.spent[id], nil
}

func (p *nativePeer) RequestCoinState(context.Context, []chain.Bytes32, *uint32, chain.Bytes32, bool) (*coinset.CoinStateResponse, error) {
	return nil, errors.New("not served")
}

func (p *nativePeer) RequestPuzzleAndSolution(context.Context, chain.Bytes32, uint32) (*coinset.PuzzleSolutionResponse, error) {
	return nil, errors.New("not served")
}

func TestSelectionReservesCoins(t *testing.T) {
	w, err := FromMnemonic("coins", testMnemonic)
	require.NoError(t, err)
	ph, err := w.OwnerPuzzleHash()
	require.NoError(t, err)

	big := chain.Coin{ParentCoinInfo: chain.Bytes32{1}, PuzzleHash: ph, Amount: 100}
	small := chain.Coin{ParentCoinInfo: chain.Bytes32{2}, PuzzleHash: ph, Amount: 40}
	peer := &nativePeer{
		coins: map[chain.Bytes32][]chain.Coin{ph: {big, small}},
		spent: map[chain.Bytes32]bool{small.ID(): true},
	}

	registry, err := reserve.Open("", reserve.InMemory())
	require.NoError(t, err)
	t.Cleanup(func() { _ = registry.Close() })

	c := NewCoins(peer, chain.Mainnet, WithReservations(registry, DefaultReserveTTL))
	ctx := context.Background()

	balance, err := w.XCHBalance(ctx, c)
	require.NoError(t, err)
	require.Equal(t, uint64(140), balance)

	got, err := w.SelectUnspentCoins(ctx, c, 100, 0, nil)
	require.NoError(t, err)
	require.Equal(t, []chain.Coin{big}, got)

	got, err = w.SelectUnspentCoins(ctx, c, 30, 0, nil)
	require.NoError(t, err)
	require.Equal(t, []chain.Coin{small}, got)

	_, err = w.SelectUnspentCoins(ctx, c, 1, 0, nil)
	require.ErrorIs(t, err, ErrNoUnspentCoins)

	require.NoError(t, c.Release([]chain.Coin{big}))
	_, err = w.SelectUnspentCoins(ctx, c, 1, 0, []chain.Coin{big})
	require.ErrorIs(t, err, ErrNoUnspentCoins)

	got, err = w.SelectUnspentCoins(ctx, c, 1, 0, nil)
	require.NoError(t, err)
	require.Equal(t, []chain.Coin{big}, got)

	ok, err := c.IsCoinSpendable(ctx, big.ID())
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = c.IsCoinSpendable(ctx, small.ID())
	require.NoError(t, err)
	require.False(t, ok)

	require.Equal(t, DefaultSpendFee, c.CalculateFee(got))
	require.Zero(t, c.CalculateFee(nil))
}

func TestTokenScanFailureDropsCoins(t *testing.T) {
	w, err := FromMnemonic("tokens", testMnemonic)
	require.NoError(t, err)
	ph, err := w.OwnerPuzzleHash()
	require.NoError(t, err)

	tokenPH := keys.TokenPuzzleHash(chain.DIGAssetID, ph)
	peer := &nativePeer{coins: map[chain.Bytes32][]chain.Coin{
		tokenPH: {{ParentCoinInfo: chain.Bytes32{7}, PuzzleHash: tokenPH, Amount: 5}},
	}}
	c := NewCoins(peer, chain.Mainnet)
	require.Equal(t, chain.DIGAssetID, c.AssetID())

	// the parent state cannot be fetched so the coin is unproven
	balance, err := w.TokenBalance(context.Background(), c)
	require.NoError(t, err)
	require.Zero(t, balance)
}
