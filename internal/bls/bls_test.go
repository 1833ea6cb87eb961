package bls

import (
	"bytes"
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T, fill byte) *SecretKey {
	t.Helper()
	sk, err := KeyGen(bytes.Repeat([]byte{fill}, 64))
	require.NoError(t, err)
	return sk
}

func TestKeyGenDeterministic(t *testing.T) {
	a := testKey(t, 7)
	b := testKey(t, 7)
	require.Equal(t, a.Bytes(), b.Bytes())
	require.True(t, a.PublicKey().Equal(b.PublicKey()))

	c := testKey(t, 8)
	require.NotEqual(t, a.Bytes(), c.Bytes())
}

func TestKeyGenShortSeed(t *testing.T) {
	_, err := KeyGen(make([]byte, 16))
	require.Error(t, err)
}

func TestSecretKeyRoundTrip(t *testing.T) {
	sk := testKey(t, 1)
	parsed, err := SecretKeyFromBytes(sk.Bytes())
	require.NoError(t, err)
	require.True(t, sk.Equal(parsed))

	_, err = SecretKeyFromBytes(bytes.Repeat([]byte{0xff}, SecretKeySize))
	require.Error(t, err)
}

func TestPublicKeyRoundTrip(t *testing.T) {
	pk := testKey(t, 2).PublicKey()
	require.Len(t, pk.Bytes(), PublicKeySize)

	parsed, err := PublicKeyFromBytes(pk.Bytes())
	require.NoError(t, err)
	require.True(t, pk.Equal(parsed))

	_, err = PublicKeyFromBytes(pk.Bytes()[:47])
	require.Error(t, err)
}

func TestSignVerify(t *testing.T) {
	sk := testKey(t, 3)
	msg := []byte("hello")

	sig, err := sk.Sign(msg)
	require.NoError(t, err)
	require.Len(t, sig.Bytes(), SignatureSize)

	ok, err := Verify(sk.PublicKey(), msg, sig)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = Verify(sk.PublicKey(), []byte("other"), sig)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = Verify(testKey(t, 4).PublicKey(), msg, sig)
	require.NoError(t, err)
	require.False(t, ok)

	decoded, err := SignatureFromBytes(sig.Bytes())
	require.NoError(t, err)
	ok, err = Verify(sk.PublicKey(), msg, decoded)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestSignatureDeterministic(t *testing.T) {
	sk := testKey(t, 5)
	a, err := sk.Sign([]byte("m"))
	require.NoError(t, err)
	b, err := sk.Sign([]byte("m"))
	require.NoError(t, err)
	require.Equal(t, a.Bytes(), b.Bytes())
}

func TestDeriveUnhardenedMatchesPublic(t *testing.T) {
	sk := testKey(t, 6)
	for _, idx := range []uint32{0, 1, 12381, 8444} {
		child := sk.DeriveUnhardened(idx)
		require.True(t, child.PublicKey().Equal(sk.PublicKey().DeriveUnhardened(idx)))
	}
	require.False(t, sk.DeriveUnhardened(0).Equal(sk.DeriveUnhardened(1)))
}

func TestOffsetMatchesPublic(t *testing.T) {
	sk := testKey(t, 9)
	n := big.NewInt(123456789)
	require.True(t, sk.Offset(n).PublicKey().Equal(sk.PublicKey().Offset(n)))
}

func TestSignedOffset(t *testing.T) {
	require.Equal(t, int64(1), SignedOffset([]byte{0x01}).Int64())

	// 0xff is -1 as a signed byte, which reduces to r-1
	want := new(big.Int).Sub(groupOrder, big.NewInt(1))
	require.Equal(t, 0, want.Cmp(SignedOffset([]byte{0xff})))
}

func TestGeneratorEncoding(t *testing.T) {
	sk, err := SecretKeyFromBytes(append(make([]byte, SecretKeySize-1), 1))
	require.NoError(t, err)
	require.Equal(t,
		"97f1d3a73197d7942695638c4fa9ac0fc3688c4f9774b905a14e3a3f171bac586c55e83ff97a1aeffb3af00adb22c6bb",
		hex.EncodeToString(sk.PublicKey().Bytes()))
}

// seed 0x00..0x1f, message "abc", augmented scheme
func TestAugSchemeKnownAnswer(t *testing.T) {
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = byte(i)
	}
	sk, err := KeyGen(seed)
	require.NoError(t, err)
	require.Equal(t, "4a18022aa9097511134fcf6c024da289058c76d14de712ba264e50e306b6d6e3", hex.EncodeToString(sk.Bytes()))
	require.Equal(t,
		"8f336467f057b373bb3c43815a10ec131119d1bf50c14fa3f9ad86c0ec074f920f936a5315a8365a37fee0afa34c32c6",
		hex.EncodeToString(sk.PublicKey().Bytes()))

	const want = "82e63cc0e8b50a97d7345391cacf3fa5e16a1e5bdbf083c77587d4230fc0b648f49b4f5413184882bc70947558611fc8" +
		"075f99ee5ae1986642c7eda0a339460df193312a266f53453623a8b7b17d368abe70c0631601ec775427af30d504bf7b"
	sig, err := sk.Sign([]byte("abc"))
	require.NoError(t, err)
	require.Equal(t, want, hex.EncodeToString(sig.Bytes()))

	raw, err := hex.DecodeString(want)
	require.NoError(t, err)
	decoded, err := SignatureFromBytes(raw)
	require.NoError(t, err)
	ok, err := Verify(sk.PublicKey(), []byte("abc"), decoded)
	require.NoError(t, err)
	require.True(t, ok)
}
