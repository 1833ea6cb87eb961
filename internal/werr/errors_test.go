package werr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsMatchesKind(t *testing.T) {
	err := Wrap(KindNetwork, "failed to get unspent coins", errors.New("connection refused"))

	require.ErrorIs(t, err, ErrNetwork)
	require.NotErrorIs(t, err, ErrCoinSet)
	require.Equal(t, KindNetwork, KindOf(err))

	wrapped := fmt.Errorf("scan: %w", err)
	require.ErrorIs(t, wrapped, ErrNetwork)
	require.Equal(t, KindNetwork, KindOf(wrapped))
}

func TestUnwrapReachesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(KindFileSystem, "failed to write keyring", cause)

	require.ErrorIs(t, err, cause)
	require.Equal(t, "file system error: failed to write keyring: disk full", err.Error())
}

func TestMessages(t *testing.T) {
	require.Equal(t, "wallet not found: alice", WalletNotFound("alice").Error())
	require.ErrorIs(t, WalletNotFound("alice"), ErrWalletNotFound)
	require.Equal(t, "no unspent coins available", ErrNoUnspentCoins.Error())
	require.Equal(t, "kind(99)", Kind(99).String())
	require.Zero(t, KindOf(errors.New("plain")))
}

func TestDetailedErrorsAreDistinct(t *testing.T) {
	a := New(KindCoinSet, "parent coin state not found")
	b := New(KindCoinSet, "parent coin state not found")

	require.ErrorIs(t, a, a)
	require.NotErrorIs(t, a, b)
	require.ErrorIs(t, a, ErrCoinSet)
}
