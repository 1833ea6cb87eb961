package common

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	XCHDecimals = 12 // XCH has 12 decimals (mojos)
	CATDecimals = 3  // CAT tokens, DIG included, have 3 decimals
)

// MojosToXCH converts mojos to XCH string without float precision loss
func MojosToXCH(mojos uint64) string {
	return formatWithDecimals(mojos, XCHDecimals)
}

// XCHToMojos converts XCH string to mojos without float precision loss
func XCHToMojos(xch string) (uint64, error) {
	return parseWithDecimals(xch, XCHDecimals)
}

// CATUnitsToAmount converts token base units to a decimal string
func CATUnitsToAmount(units uint64) string {
	return formatWithDecimals(units, CATDecimals)
}

// AmountToCATUnits converts a decimal token amount to base units
func AmountToCATUnits(amount string) (uint64, error) {
	return parseWithDecimals(amount, CATDecimals)
}

// formatWithDecimals converts integer to decimal string by inserting decimal point
// Example: formatWithDecimals(24981836, 9) = "0.024981836"
func formatWithDecimals(value uint64, decimals int) string {
	s := strconv.FormatUint(value, 10)

	// Pad with leading zeros if needed
	if len(s) <= decimals {
		s = strings.Repeat("0", decimals-len(s)+1) + s
	}

	// Insert decimal point
	pos := len(s) - decimals
	return s[:pos] + "." + s[pos:]
}

// parseWithDecimals converts decimal string to integer by removing decimal point
// Example: parseWithDecimals("0.024981836", 9) = 24981836
func parseWithDecimals(s string, decimals int) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty string")
	}

	whole, frac, found := strings.Cut(s, ".")
	if found && strings.Contains(frac, ".") {
		return 0, fmt.Errorf("invalid decimal format")
	}
	if whole == "" {
		whole = "0"
	}

	// Reject precision finer than one base unit instead of truncating
	if len(frac) > decimals {
		if strings.TrimRight(frac[decimals:], "0") != "" {
			return 0, fmt.Errorf("amount %q has more than %d decimals", s, decimals)
		}
		frac = frac[:decimals]
	}
	frac += strings.Repeat("0", decimals-len(frac))

	// Combine and parse; ParseUint reports overflow
	n, err := strconv.ParseUint(whole+frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return n, nil
}

// CompareXCHAmounts compares two XCH decimal string amounts without float precision loss.
// Returns: -1 if a < b, 0 if a == b, 1 if a > b, and error if parsing fails
func CompareXCHAmounts(a, b string) (int, error) {
	aVal, err := parseWithDecimals(a, XCHDecimals)
	if err != nil {
		return 0, fmt.Errorf("failed to parse amount '%s': %w", a, err)
	}

	bVal, err := parseWithDecimals(b, XCHDecimals)
	if err != nil {
		return 0, fmt.Errorf("failed to parse amount '%s': %w", b, err)
	}

	if aVal < bVal {
		return -1, nil
	}
	if aVal > bVal {
		return 1, nil
	}
	return 0, nil
}
