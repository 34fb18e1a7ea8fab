package domain

import "time"

// CorridorMonthMetric is one row of the transaction revenue report,
// keyed by (currency_pair, month).
// Corresponds to the corridor_month_metrics table in ClickHouse.
// Only completed transactions with an exact same-day exchange rate
// contribute; transactions without a rate row are dropped upstream.
type CorridorMonthMetric struct {
	CurrencyPair string
	Month        time.Time // first instant of the calendar month, UTC

	TransactionCount int
	UniqueUsers      int

	TotalVolumeUSD     float64 // source amounts, USD
	TotalConvertedUSD  float64 // source amount * exchange rate
	TotalFeesUSD       float64
	TotalRevenueUSD    float64
	AvgTransactionUSD  *float64

	// EffectiveFeeRate is total fees / total volume (a ratio, not a percent).
	EffectiveFeeRate *float64

	// Configured fee structure for the corridor (left join; nil when absent)
	ConfiguredFeeType  *string
	ConfiguredFeeValue *float64

	PricingRecommendation string
}

// Pricing recommendation labels
const (
	PricingFeeIncrease    = "Consider fee increase"
	PricingVolumeDiscount = "Potential for volume discounts"
	PricingOptimal        = "Optimal fee range"
)

// User segment labels. The ladder is ordered; first match wins.
const (
	SegmentHighValue = "High-Value"
	SegmentRegular   = "Regular"
	SegmentOccasional = "Occasional"
	SegmentDormant   = "Dormant"
)

// SegmentSummary aggregates the per-user segmentation for reporting.
type SegmentSummary struct {
	Segment       string
	UserCount     int
	TotalValueUSD float64
}
