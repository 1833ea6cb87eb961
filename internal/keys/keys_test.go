package keys

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/AlexZinkM/dig-wallet/internal/chain"
	"github.com/AlexZinkM/dig-wallet/internal/werr"
	"github.com/stretchr/testify/require"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon " +
	"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon art"

func TestSeedPhraseToMasterKeyDeterministic(t *testing.T) {
	a, err := SeedPhraseToMasterKey(testMnemonic)
	require.NoError(t, err)
	b, err := SeedPhraseToMasterKey(testMnemonic)
	require.NoError(t, err)
	require.Equal(t, a.Bytes(), b.Bytes())

	// whitespace and case do not change the key
	c, err := SeedPhraseToMasterKey("  " + strings.ToUpper(testMnemonic) + "\n")
	require.NoError(t, err)
	require.Equal(t, a.Bytes(), c.Bytes())
}

func TestSeedPhraseToMasterKeyErrors(t *testing.T) {
	_, err := SeedPhraseToMasterKey("")
	require.ErrorIs(t, err, werr.ErrMnemonicRequired)

	_, err = SeedPhraseToMasterKey("   ")
	require.ErrorIs(t, err, werr.ErrMnemonicRequired)

	_, err = SeedPhraseToMasterKey("invalid mnemonic phrase that should fail validation")
	require.ErrorIs(t, err, werr.ErrInvalidMnemonic)

	// valid words, bad checksum
	bad := strings.Repeat("abandon ", 23) + "abandon"
	_, err = SeedPhraseToMasterKey(bad)
	require.ErrorIs(t, err, werr.ErrInvalidMnemonic)
}

func TestSyntheticKeyPair(t *testing.T) {
	master, err := SeedPhraseToMasterKey(testMnemonic)
	require.NoError(t, err)

	sk, pk := MasterKeyToSyntheticKeyPair(master)
	require.True(t, sk.PublicKey().Equal(pk))
	require.True(t, pk.Equal(MasterPublicKeyToSyntheticKey(master.PublicKey())))
	require.False(t, pk.Equal(master.PublicKey()))

	sk2, pk2 := MasterKeyToSyntheticKeyPair(master)
	require.Equal(t, sk.Bytes(), sk2.Bytes())
	require.True(t, pk.Equal(pk2))
}

func TestPuzzleHashes(t *testing.T) {
	master, err := SeedPhraseToMasterKey(testMnemonic)
	require.NoError(t, err)
	_, pk := MasterKeyToSyntheticKeyPair(master)

	ph := SyntheticPublicKeyToPuzzleHash(pk)
	require.Equal(t, ph, SyntheticPublicKeyToPuzzleHash(pk))

	other, err := SeedPhraseToMasterKey("legal winner thank year wave sausage worth useful legal winner thank yellow")
	require.NoError(t, err)
	_, otherPK := MasterKeyToSyntheticKeyPair(other)
	require.NotEqual(t, ph, SyntheticPublicKeyToPuzzleHash(otherPK))
}

func TestNewMnemonic(t *testing.T) {
	phrase, err := NewMnemonic()
	require.NoError(t, err)
	require.Len(t, strings.Fields(phrase), 24)
	require.NoError(t, ValidateMnemonic(phrase))

	again, err := NewMnemonic()
	require.NoError(t, err)
	require.NotEqual(t, phrase, again)
}

func TestKnownAnswers(t *testing.T) {
	master, err := SeedPhraseToMasterKey(testMnemonic)
	require.NoError(t, err)
	require.Equal(t, "345f9d6a5bcadaebe6ceb05e91c44df84f795d24e113fe84b1895a37cc4591e4", hex.EncodeToString(master.Bytes()))
	require.Equal(t,
		"827af93158c0542a234c76fcdfd54766dc39405b259c25f6fc90ca47fb0c73a8f5c745a4489b0a0ed7662044021bac53",
		hex.EncodeToString(master.PublicKey().Bytes()))

	sk := master
	for _, idx := range walletPath {
		sk = sk.DeriveUnhardened(idx)
	}
	require.Equal(t, "31c4571353eabbd614a4ba658132425174d5b9f51f4f6704adebf38c47fb7e59", hex.EncodeToString(sk.Bytes()))

	syntheticSK, syntheticPK := MasterKeyToSyntheticKeyPair(master)
	require.Equal(t, "571b38e03b3f6e0e4b9974d5b5a429e8df8d6df6c90eda53c8b6aad76fd2b9d4", hex.EncodeToString(syntheticSK.Bytes()))
	require.Equal(t,
		"93c7d36e915aa1570087c9adc427c3a9bb532efe964dcc3bb04a07bc64308dbd82598a1f49f6ca86a82b32559e41380e",
		hex.EncodeToString(syntheticPK.Bytes()))
	require.True(t, syntheticPK.Equal(MasterPublicKeyToSyntheticKey(master.PublicKey())))

	ph := SyntheticPublicKeyToPuzzleHash(syntheticPK)
	require.Equal(t, "d207c1e11fc3b0cd7472e8c7e53c8d2b81709516346c7baa9fbb9070ffccfe89", hex.EncodeToString(ph[:]))

	tokenPH := TokenPuzzleHash(chain.DIGAssetID, ph)
	require.Equal(t, "1a0fb6b58621fb2fa657b1b0b6c75bd34a7655b463889aad17fe9425b1a9b764", hex.EncodeToString(tokenPH[:]))
}
