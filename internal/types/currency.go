package types

import "strings"

// CurrencyCodeUSD is the ISO 4217 code of the US dollar
const CurrencyCodeUSD = "USD"

// CountryCodeUS is the ISO 3166-1 alpha-2 code of the United States
const CountryCodeUS = "US"

// EqualCode compares two ISO codes ignoring case. Codes are not trimmed, a
// padded code does not match. Empty codes never match.
func EqualCode(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(a, b)
}
