package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	require.Equal(t, "0.000000000000", MojosToXCH(0))
	require.Equal(t, "0.000000000001", MojosToXCH(1))
	require.Equal(t, "1.000000000000", MojosToXCH(1_000_000_000_000))
	require.Equal(t, "0.000064000000", MojosToXCH(64_000_000))
	require.Equal(t, "12.345", CATUnitsToAmount(12345))
	require.Equal(t, "0.007", CATUnitsToAmount(7))
}

func TestParse(t *testing.T) {
	cases := map[string]uint64{
		"1":                 1_000_000_000_000,
		"1.5":               1_500_000_000_000,
		".25":               250_000_000_000,
		" 0.000000000001":   1,
		"2.500000000000000": 2_500_000_000_000,
	}
	for in, want := range cases {
		got, err := XCHToMojos(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	units, err := AmountToCATUnits("12.345")
	require.NoError(t, err)
	require.Equal(t, uint64(12345), units)
}

func TestParseRejects(t *testing.T) {
	for _, in := range []string{"", "abc", "1.2.3", "-1", "0.0000000000001", "99999999999"} {
		_, err := XCHToMojos(in)
		require.Error(t, err, in)
	}
	_, err := AmountToCATUnits("1.0001")
	require.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 999, 1_000_000_000_000, 18_446_744_073_709_551_615} {
		back, err := XCHToMojos(MojosToXCH(v))
		require.NoError(t, err)
		require.Equal(t, v, back)
	}
}

func TestCompareXCHAmounts(t *testing.T) {
	c, err := CompareXCHAmounts("1", "1.000")
	require.NoError(t, err)
	require.Zero(t, c)

	c, err = CompareXCHAmounts("0.1", "1")
	require.NoError(t, err)
	require.Equal(t, -1, c)

	_, err = CompareXCHAmounts("x", "1")
	require.Error(t, err)
}
