package analytics

import (
	"math"

	"github.com/shopspring/decimal"
)

// SafeDivide returns numerator / denominator, or nil when the denominator
// is zero. Every ratio in the reports goes through this helper so that a
// missing denominator yields an absent value, never a fabricated zero.
func SafeDivide(numerator, denominator float64) *float64 {
	if denominator == 0 {
		return nil
	}
	v := numerator / denominator
	return &v
}

// SafePercent returns numerator / denominator * 100 rounded to 2 decimals,
// or nil when the denominator is zero.
func SafePercent(numerator, denominator float64) *float64 {
	r := SafeDivide(numerator, denominator)
	if r == nil {
		return nil
	}
	v := Round2(*r * 100)
	return &v
}

// GrowthPct returns (current - previous) / previous * 100 rounded to
// 2 decimals. Returns nil when previous is nil or zero, so the first
// observed period per partition carries no growth value.
func GrowthPct(current float64, previous *float64) *float64 {
	if previous == nil || *previous == 0 {
		return nil
	}
	v := Round2((current - *previous) / *previous * 100)
	return &v
}

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CentsToUSD converts an integer minor-unit amount to USD.
func CentsToUSD(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
