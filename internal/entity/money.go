package domain

import "math"

// Round2 rounds a currency amount to two decimals. All derived monetary
// fields pass through here before being persisted or compared.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Cents converts a two-decimal amount to the smallest currency unit, as
// required by the checkout provider.
func Cents(v float64) int64 {
	return int64(math.Round(v * 100))
}
